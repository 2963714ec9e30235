// Copyright 2026 The go-flow Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fcs

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/xerrors"
)

// headerLen is the fixed size of the FCS header: a 6-byte version tag,
// 4 blank bytes, and three pairs of 8-digit ASCII byte offsets (TEXT,
// DATA, ANALYSIS).
const headerLen = 58

// maxHeaderOffset is the largest offset an 8-digit header field can
// carry. Files growing past it move their offsets into $BEGINDATA &co
// and zero the header fields (FCS 3.x large-file accommodation).
const maxHeaderOffset = 99999999

// Version tags of the supported FCS revisions.
const (
	Version10 = "FCS1.0"
	Version20 = "FCS2.0"
	Version30 = "FCS3.0"
	Version31 = "FCS3.1"
)

type header struct {
	version string

	textBeg, textEnd int64
	dataBeg, dataEnd int64
	anaBeg, anaEnd   int64
}

// parseHeader decodes the fixed 58-byte header. Blank offset fields
// decode as zero; a zero DATA or ANALYSIS pair defers to the
// dictionary-declared offsets.
func parseHeader(buf []byte) (header, error) {
	var hdr header
	if len(buf) < headerLen {
		return hdr, xerrors.Errorf(
			"fcs: header is %d bytes, need %d: %w",
			len(buf), headerLen, ErrTruncated,
		)
	}

	hdr.version = string(buf[:6])
	switch hdr.version {
	case Version10, Version20, Version30, Version31:
		// ok
	default:
		return hdr, xerrors.Errorf(
			"fcs: unknown version tag %q: %w", hdr.version, ErrUnsupported,
		)
	}

	fields := []*int64{
		&hdr.textBeg, &hdr.textEnd,
		&hdr.dataBeg, &hdr.dataEnd,
		&hdr.anaBeg, &hdr.anaEnd,
	}
	for i, dst := range fields {
		beg := 10 + 8*i
		v, err := parseOffsetField(buf[beg : beg+8])
		if err != nil {
			return hdr, xerrors.Errorf(
				"fcs: could not read header offset field %d: %w", i, err,
			)
		}
		*dst = v
	}
	return hdr, nil
}

// parseOffsetField decodes one 8-byte ASCII offset. All-blank fields
// are zero. Anything else that does not parse as a decimal wraps
// ErrTruncated: in the wild these fields are only ever garbage when
// the file was cut short.
func parseOffsetField(field []byte) (int64, error) {
	s := strings.TrimSpace(string(field))
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil || v < 0 {
		return 0, xerrors.Errorf("invalid offset %q: %w", s, ErrTruncated)
	}
	return v, nil
}

// formatHeader encodes the 58-byte header. Offsets that do not fit the
// 8-digit fields must already have been zeroed by the caller.
func formatHeader(hdr header) []byte {
	buf := make([]byte, 0, headerLen)
	buf = append(buf, hdr.version...)
	buf = append(buf, "    "...)
	for _, v := range []int64{
		hdr.textBeg, hdr.textEnd,
		hdr.dataBeg, hdr.dataEnd,
		hdr.anaBeg, hdr.anaEnd,
	} {
		buf = append(buf, fmt.Sprintf("%8d", v)...)
	}
	return buf
}
