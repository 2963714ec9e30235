// Copyright 2026 The go-flow Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fcs

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/xerrors"

	"github.com/go-flow/fcs/table"
	"github.com/go-flow/fcs/vocab"
)

// offsetFieldWidth is the zero-padded width of the segment offsets
// written into $BEGINDATA &co. A fixed width keeps the TEXT segment
// size independent of the offset values, so the layout is computed in
// one pass.
const offsetFieldWidth = 12

// structuralKeys are the tier-1 keywords: they must live in the
// primary TEXT segment, first.
var structuralKeys = []string{
	"$BEGINANALYSIS", "$ENDANALYSIS",
	"$BEGINDATA", "$ENDDATA",
	"$BEGINSTEXT", "$ENDSTEXT",
	"$MODE", "$NEXTDATA", "$BYTEORD", "$DATATYPE", "$PAR", "$TOT",
}

type kvPair struct {
	key string
	val string
}

// Save writes f as an FCS 3.1 file to the named path. A failed write
// surfaces its error immediately; the partial file is removed.
func (f *File) Save(name string) error {
	w, err := os.Create(name)
	if err != nil {
		return xerrors.Errorf("fcs: could not create %q: %w", name, err)
	}
	err = f.Encode(w)
	if err != nil {
		_ = w.Close()
		_ = os.Remove(name)
		return err
	}
	err = w.Close()
	if err != nil {
		_ = os.Remove(name)
		return xerrors.Errorf("fcs: could not close %q: %w", name, err)
	}
	return nil
}

// Encode writes f as an FCS 3.1 file to w: header, TEXT, DATA, an
// optional SUPPLEMENTAL TEXT, and the 8-byte CRC placeholder.
//
// Keywords are partitioned into three priority tiers (structural keys,
// standard parameter/numeric keys, everything else) and placed into
// the primary TEXT segment; lower tiers spill into SUPPLEMENTAL TEXT
// only when an 8-digit header offset field would otherwise overflow.
func (f *File) Encode(w io.Writer) error {
	err := f.encode(w)
	if err != nil {
		f.Log.errorf("%v", err)
	}
	return err
}

func (f *File) encode(w io.Writer) error {
	f.Log.Reset()
	f.state = fileState{maxEvents: -1}

	tbl := f.Table
	if tbl == nil {
		return xerrors.Errorf("fcs: no event table to save: %w", ErrMalformed)
	}

	var (
		nPar  = tbl.NumParams()
		n     = tbl.NumEvents()
		width = 4
		dtype = "F"
	)
	if tbl.Kind() == table.Float64 {
		width = 8
		dtype = "D"
	}
	f.state.datatype = dtype[0]

	f.deriveKeywords(tbl, dtype)

	tiers := f.partitionKeywords()
	delim, err := pickDelimiter(tiers)
	if err != nil {
		return err
	}
	f.state.delim = delim

	// Layout. The structural offset values are fixed-width, so tier
	// sizes do not depend on the offsets themselves.
	dataLen := int64(n) * int64(nPar) * int64(width)
	inText := 3
	textLen := textSize(tiers[:inText], delim, true)
	for textLen-1+headerLen > maxHeaderOffset && inText > 1 {
		inText--
		textLen = textSize(tiers[:inText], delim, true)
	}
	if textLen-1+headerLen > maxHeaderOffset {
		return xerrors.Errorf(
			"fcs: structural keywords alone overflow the TEXT segment: %w", ErrUnsupported,
		)
	}

	hdr := header{version: Version31, textBeg: headerLen, textEnd: headerLen + textLen - 1}
	var dataBeg, dataEnd int64
	if dataLen > 0 {
		dataBeg = hdr.textEnd + 1
		dataEnd = dataBeg + dataLen - 1
	}
	var stextBeg, stextEnd int64
	if inText < 3 {
		stextBeg = hdr.textEnd + 1 + dataLen
		stextEnd = stextBeg + textSize(tiers[inText:], delim, false) - 1
	}

	if dataEnd <= maxHeaderOffset {
		hdr.dataBeg, hdr.dataEnd = dataBeg, dataEnd
	}

	// Patch the offsets into dictionary and tiers.
	offsets := []kvPair{
		{"$BEGINDATA", offsetValue(dataBeg)},
		{"$ENDDATA", offsetValue(dataEnd)},
		{"$BEGINSTEXT", offsetValue(stextBeg)},
		{"$ENDSTEXT", offsetValue(stextEnd)},
		{"$BEGINANALYSIS", offsetValue(0)},
		{"$ENDANALYSIS", offsetValue(0)},
	}
	for _, kv := range offsets {
		f.Dict.set(kv.key, kv.val)
		for i := range tiers[0] {
			if tiers[0][i].key == kv.key {
				tiers[0][i].val = kv.val
			}
		}
	}

	wbuf := bufio.NewWriter(w)
	_, err = wbuf.Write(formatHeader(hdr))
	if err != nil {
		return xerrors.Errorf("fcs: could not write header: %w", err)
	}
	err = writeTextSegment(wbuf, tiers[:inText], delim, true)
	if err != nil {
		return xerrors.Errorf("fcs: could not write TEXT segment: %w", err)
	}
	err = encodeData(wbuf, tbl)
	if err != nil {
		return err
	}
	if inText < 3 {
		err = writeTextSegment(wbuf, tiers[inText:], delim, false)
		if err != nil {
			return xerrors.Errorf("fcs: could not write SUPPLEMENTAL TEXT segment: %w", err)
		}
	}
	_, err = wbuf.WriteString("00000000") // CRC not computed
	if err != nil {
		return xerrors.Errorf("fcs: could not write CRC field: %w", err)
	}
	err = wbuf.Flush()
	if err != nil {
		return xerrors.Errorf("fcs: could not flush output: %w", err)
	}
	return nil
}

// deriveKeywords refreshes the dictionary entries that are owned by
// the event table and the writer.
func (f *File) deriveKeywords(tbl table.EventTable, dtype string) {
	d := f.Dict
	d.set("$MODE", "L")
	d.set("$NEXTDATA", "0")
	d.set("$BYTEORD", "1,2,3,4")
	d.set("$DATATYPE", dtype)
	d.set("$PAR", strconv.Itoa(tbl.NumParams()))
	d.set("$TOT", strconv.Itoa(tbl.NumEvents()))

	// Placeholders keep the TEXT segment size independent of the
	// final offsets; Encode patches the real values in after layout.
	for _, key := range []string{
		"$BEGINDATA", "$ENDDATA",
		"$BEGINSTEXT", "$ENDSTEXT",
		"$BEGINANALYSIS", "$ENDANALYSIS",
	} {
		d.set(key, offsetValue(0))
	}

	// drop per-parameter keys left over from a previously loaded,
	// wider table; they would contradict the $PAR written below.
	for _, key := range d.Keys() {
		attr, err := vocab.Find(key)
		if err != nil || !attr.Flags.Has(vocab.IsParameter) {
			continue
		}
		if vocab.ParameterIndex(key) > tbl.NumParams() {
			d.Delete(key)
		}
	}

	bits := "32"
	if dtype == "D" {
		bits = "64"
	}
	for i := 0; i < tbl.NumParams(); i++ {
		n := i + 1
		d.set(fmt.Sprintf("$P%dB", n), bits)
		d.set(fmt.Sprintf("$P%dN", n), tbl.Name(i))
		if long := tbl.LongName(i); long != "" {
			d.set(fmt.Sprintf("$P%dS", n), long)
		} else {
			d.Delete(fmt.Sprintf("$P%dS", n))
		}
		if _, ok := d.Get(fmt.Sprintf("$P%dE", n)); !ok {
			d.set(fmt.Sprintf("$P%dE", n), "0,0")
		}
		d.set(fmt.Sprintf("$P%dR", n),
			strconv.FormatFloat(tbl.BestMax(i), 'g', -1, 64))
	}
}

// partitionKeywords splits the dictionary into the three priority
// tiers, preserving insertion order inside tiers 2 and 3.
func (f *File) partitionKeywords() [3][]kvPair {
	var tiers [3][]kvPair

	structural := make(map[string]bool, len(structuralKeys))
	for _, key := range structuralKeys {
		structural[key] = true
		v, _ := f.Dict.Get(key)
		tiers[0] = append(tiers[0], kvPair{key, v})
	}

	for _, key := range f.Dict.Keys() {
		if structural[key] {
			continue
		}
		v, _ := f.Dict.Get(key)
		tiers[tierOf(key)-1] = append(tiers[tierOf(key)-1], kvPair{key, v})
	}
	return tiers
}

// tierOf classifies a non-structural keyword: standard keys that are
// required, per-parameter, or numeric belong to tier 2; everything
// else, including keys the vocabulary does not know, to tier 3.
func tierOf(key string) int {
	attr, err := vocab.Find(key)
	if err != nil || !attr.Flags.Has(vocab.Standard) {
		return 3
	}
	if attr.Flags&(vocab.Required|vocab.IsParameter) != 0 ||
		attr.Kind == vocab.Integer || attr.Kind == vocab.Float {
		return 2
	}
	return 3
}

// pickDelimiter returns the first candidate delimiter byte absent from
// every keyword. Values escape embedded delimiters by doubling, but
// the tokenizer grammar has no escape inside keywords.
func pickDelimiter(tiers [3][]kvPair) (byte, error) {
cands:
	for _, delim := range []byte{'/', '\\', '|', '!', '@', '#'} {
		for _, tier := range tiers {
			for _, kv := range tier {
				if strings.IndexByte(kv.key, delim) >= 0 {
					continue cands
				}
			}
		}
		return delim, nil
	}
	return 0, xerrors.Errorf("fcs: no usable TEXT delimiter for the dictionary keys: %w", ErrMalformed)
}

func offsetValue(v int64) string {
	return fmt.Sprintf("%0*d", offsetFieldWidth, v)
}

// textSize returns the serialized byte size of the given tiers,
// including the leading delimiter of a primary TEXT segment.
func textSize(tiers [][]kvPair, delim byte, primary bool) int64 {
	size := int64(0)
	if primary {
		size++
	}
	for _, tier := range tiers {
		for _, kv := range tier {
			size += int64(len(kv.key)) + int64(len(escapeValue(kv.val, delim))) + 2
		}
	}
	return size
}

// writeTextSegment serializes tiers as (keyword delim value delim)*,
// with the leading delimiter byte when primary.
func writeTextSegment(w *bufio.Writer, tiers [][]kvPair, delim byte, primary bool) error {
	if primary {
		err := w.WriteByte(delim)
		if err != nil {
			return err
		}
	}
	for _, tier := range tiers {
		for _, kv := range tier {
			_, err := w.WriteString(kv.key)
			if err != nil {
				return err
			}
			err = w.WriteByte(delim)
			if err != nil {
				return err
			}
			_, err = w.WriteString(escapeValue(kv.val, delim))
			if err != nil {
				return err
			}
			err = w.WriteByte(delim)
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// escapeValue doubles every literal delimiter byte of a value.
func escapeValue(v string, delim byte) string {
	d := string(delim)
	return strings.ReplaceAll(v, d, d+d)
}
