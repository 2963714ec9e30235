// Copyright 2026 The go-flow Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fcs

import (
	"io"
	"os"

	"golang.org/x/xerrors"

	"github.com/go-flow/fcs/table"
)

// fileState holds the load/save-scoped scalars of a file operation.
// It is reset at the start of every Load or Save and is meaningless in
// between.
type fileState struct {
	delim     byte
	big       bool // source data is big-endian
	datatype  byte // 'I', 'F' or 'D'
	minWidth  int  // smallest per-parameter byte width seen
	maxWidth  int  // largest per-parameter byte width seen
	maxRange  float64
	autoScale bool
	maxEvents int // cap on loaded events; <0 loads all
}

// Option configures a Load or Open operation.
type Option func(*fileState)

// WithMaxEvents caps the number of events loaded into the table. The
// table's NumOriginalEvents still reports the file's true event count.
// A negative n (the default) loads all events.
func WithMaxEvents(n int) Option {
	return func(st *fileState) { st.maxEvents = n }
}

// WithAutoScale rescales all channel values to physical values
// (per $PnE/$PnG) immediately after loading.
func WithAutoScale(on bool) Option {
	return func(st *fileState) { st.autoScale = on }
}

// File is an FCS file: a keyword dictionary plus a columnar event
// table.
//
// A File is not safe for concurrent Load/Save against the same
// instance: one in-flight operation at a time. The table may be shared
// with other holders (see NewFromTable); in-place mutations are
// visible to all of them.
type File struct {
	// Version is the format version tag of the last loaded file, or
	// the version Save will write.
	Version string

	// Dict holds the keyword dictionary.
	Dict *Dict

	// Table holds the decoded events. Nil until a successful Load or
	// a NewFromTable construction.
	Table table.EventTable

	// Log collects warnings and errors of the most recent Load or
	// Save.
	Log *MsgLog

	state fileState
}

// New returns an empty file object.
func New() *File {
	return &File{
		Version: Version31,
		Dict:    NewDict(),
		Log:     &MsgLog{},
	}
}

// NewFromTable returns a file object around an existing event table.
// The table is shared, not copied: mutations made through either
// holder are visible to both.
func NewFromTable(tbl table.EventTable) *File {
	f := New()
	f.Table = tbl
	return f
}

// Open loads the named FCS file.
func Open(name string, opts ...Option) (*File, error) {
	f := New()
	err := f.LoadFile(name, opts...)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// loadFileReader loads the named FCS file through plain file reads.
func (f *File) loadFileReader(name string, opts ...Option) error {
	r, err := os.Open(name)
	if err != nil {
		return xerrors.Errorf("fcs: could not open %q: %w", name, err)
	}
	defer r.Close()

	fi, err := r.Stat()
	if err != nil {
		return xerrors.Errorf("fcs: could not stat %q: %w", name, err)
	}
	return f.Load(r, fi.Size(), opts...)
}

// Load decodes an FCS file from r, replacing f's dictionary and table.
// Recoverable deviations from the standard are recorded on f.Log as
// warnings; structural failures are recorded as errors and returned.
func (f *File) Load(r io.ReaderAt, size int64, opts ...Option) error {
	err := f.load(r, size, opts...)
	if err != nil {
		f.Log.errorf("%v", err)
	}
	return err
}

func (f *File) load(r io.ReaderAt, size int64, opts ...Option) error {
	f.reset(opts...)

	if size < headerLen {
		return xerrors.Errorf("fcs: file is %d bytes, need %d: %w",
			size, headerLen, ErrTruncated)
	}
	buf := make([]byte, headerLen)
	_, err := r.ReadAt(buf, 0)
	if err != nil {
		return xerrors.Errorf("fcs: could not read header: %w", err)
	}
	hdr, err := parseHeader(buf)
	if err != nil {
		return err
	}
	f.Version = hdr.version

	text, err := f.readSegment(r, size, hdr.textBeg, hdr.textEnd, "TEXT")
	if err != nil {
		return err
	}
	if len(text) < 2 {
		return xerrors.Errorf("fcs: TEXT segment is %d bytes: %w", len(text), ErrTruncated)
	}
	f.state.delim = text[0]
	if !validDelimiter(f.state.delim) {
		return xerrors.Errorf("fcs: invalid TEXT delimiter 0x%02x: %w",
			f.state.delim, ErrMalformed)
	}
	err = f.tokenize(text[1:], false)
	if err != nil {
		return err
	}

	err = f.loadSupplementalText(r, size, hdr)
	if err != nil {
		return err
	}

	f.reconcileOffsets(&hdr)

	lay, err := f.validate(hdr, size)
	if err != nil {
		return err
	}

	err = f.readData(r, lay)
	if err != nil {
		return err
	}

	if f.state.autoScale {
		return f.Scale()
	}
	return nil
}

// loadSupplementalText reads and tokenizes the SUPPLEMENTAL TEXT
// segment declared by $BEGINSTEXT/$ENDSTEXT, if any.
func (f *File) loadSupplementalText(r io.ReaderAt, size int64, hdr header) error {
	beg, okBeg := f.Dict.Int("$BEGINSTEXT")
	end, okEnd := f.Dict.Int("$ENDSTEXT")
	if !okBeg || !okEnd || beg == 0 || end == 0 {
		return nil
	}
	if beg == hdr.textBeg {
		f.Log.warnf("fcs: supplemental TEXT points back at the primary TEXT segment, skipped")
		return nil
	}
	seg, err := f.readSegment(r, size, beg, end, "SUPPLEMENTAL TEXT")
	if err != nil {
		return err
	}
	return f.tokenize(seg, true)
}

// readSegment reads the inclusive byte range [beg,end] of a text
// segment.
func (f *File) readSegment(r io.ReaderAt, size, beg, end int64, what string) ([]byte, error) {
	if beg < headerLen || end < beg {
		return nil, xerrors.Errorf("fcs: invalid %s segment offsets [%d,%d]: %w",
			what, beg, end, ErrMalformed)
	}
	if end >= size {
		return nil, xerrors.Errorf("fcs: %s segment ends at %d, file is %d bytes: %w",
			what, end, size, ErrTruncated)
	}
	seg := make([]byte, end-beg+1)
	_, err := r.ReadAt(seg, beg)
	if err != nil {
		return nil, xerrors.Errorf("fcs: could not read %s segment: %w", what, err)
	}
	return seg, nil
}

// reset clears the dictionary, message log and operation state, then
// applies opts.
func (f *File) reset(opts ...Option) {
	f.Dict.Reset()
	f.Log.Reset()
	f.state = fileState{maxEvents: -1}
	for _, opt := range opts {
		opt(&f.state)
	}
}
