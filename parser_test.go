// Copyright 2026 The go-flow Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fcs

import (
	"reflect"
	"strings"
	"testing"

	"golang.org/x/xerrors"
)

func newTokenizerFile(delim byte) *File {
	f := New()
	f.state.delim = delim
	return f
}

func TestTokenize(t *testing.T) {
	for _, tc := range []struct {
		name  string
		seg   string
		want  map[string]string
		warns int
		err   error
	}{
		{
			name: "normal",
			seg:  "$MODE/L/$CYT/Mock 3000/",
			want: map[string]string{"$MODE": "L", "$CYT": "Mock 3000"},
		},
		{
			name: "escaped-delimiter",
			seg:  "$SRC/patient A//B/",
			want: map[string]string{"$SRC": "patient A/B"},
		},
		{
			name:  "missing-final-delimiter",
			seg:   "$MODE/L/$CYT/Mock 3000",
			want:  map[string]string{"$MODE": "L", "$CYT": "Mock 3000"},
			warns: 1,
		},
		{
			name:  "redundant-trailing-delimiter",
			seg:   "$MODE/L/$CYT/VALUE//",
			want:  map[string]string{"$MODE": "L", "$CYT": "VALUE"},
			warns: 1,
		},
		{
			name:  "trailing-blanks",
			seg:   "$MODE/L/   ",
			want:  map[string]string{"$MODE": "L"},
			warns: 1,
		},
		{
			name:  "leading-blanks",
			seg:   "  $MODE/L/",
			want:  map[string]string{"$MODE": "L"},
			warns: 1,
		},
		{
			name:  "naked-empty-value",
			seg:   "$SMNO//$MODE/L/",
			want:  map[string]string{"$SMNO": "", "$MODE": "L"},
			warns: 1,
		},
		{
			name:  "keyword-normalization",
			seg:   " $mode /L/",
			want:  map[string]string{"$MODE": "L"},
			warns: 1,
		},
		{
			name:  "duplicate-keyword-last-wins",
			seg:   "$MODE/L/$MODE/H/",
			want:  map[string]string{"$MODE": "H"},
			warns: 1,
		},
		{
			name: "keyword-without-value",
			seg:  "$MODE/L/$CYT",
			err:  ErrTruncated,
		},
		{
			name: "keyword-with-open-delimiter",
			seg:  "$MODE/L/$CYT/",
			err:  ErrTruncated,
		},
		{
			name: "empty-segment",
			seg:  "",
			want: map[string]string{},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			f := newTokenizerFile('/')
			err := f.tokenize([]byte(tc.seg), false)
			if tc.err != nil {
				if !xerrors.Is(err, tc.err) {
					t.Fatalf("invalid error: got=%+v, want=%+v", err, tc.err)
				}
				return
			}
			if err != nil {
				t.Fatalf("could not tokenize segment: %+v", err)
			}

			got := make(map[string]string, f.Dict.Len())
			for _, key := range f.Dict.Keys() {
				got[key], _ = f.Dict.Get(key)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("invalid entries:\ngot = %v\nwant= %v", got, tc.want)
			}
			if got, want := len(f.Log.Warnings()), tc.warns; got != want {
				t.Fatalf("invalid warning count: got=%d (%v), want=%d",
					got, f.Log.Warnings(), want)
			}
		})
	}
}

func TestTokenizeEquivalentEndings(t *testing.T) {
	// "...VALUE//" (no third delimiter) parses identically to
	// "...VALUE/", modulo a warning.
	parse := func(seg string) map[string]string {
		f := newTokenizerFile('/')
		err := f.tokenize([]byte(seg), false)
		if err != nil {
			t.Fatalf("could not tokenize %q: %+v", seg, err)
		}
		got := make(map[string]string, f.Dict.Len())
		for _, key := range f.Dict.Keys() {
			got[key], _ = f.Dict.Get(key)
		}
		return got
	}

	clean := parse("$CYT/VALUE/")
	doubled := parse("$CYT/VALUE//")
	if !reflect.DeepEqual(clean, doubled) {
		t.Fatalf("endings differ:\nclean  = %v\ndoubled= %v", clean, doubled)
	}

	f := newTokenizerFile('/')
	if err := f.tokenize([]byte("$CYT/VALUE//"), false); err != nil {
		t.Fatalf("could not tokenize: %+v", err)
	}
	if len(f.Log.Warnings()) == 0 {
		t.Fatalf("expected a warning for the redundant trailing delimiter")
	}
}

func TestTokenizeSupplementalLeadingDelimiter(t *testing.T) {
	f := newTokenizerFile('/')
	err := f.tokenize([]byte("/$CYT/Mock/"), true)
	if err != nil {
		t.Fatalf("could not tokenize: %+v", err)
	}
	if v, _ := f.Dict.Get("$CYT"); v != "Mock" {
		t.Fatalf("invalid $CYT: got=%q, want=%q", v, "Mock")
	}
	warns := f.Log.Warnings()
	if len(warns) != 1 || !strings.Contains(warns[0].Text, "supplemental") {
		t.Fatalf("invalid warnings: %v", warns)
	}
}

func TestTokenizeBadUTF8(t *testing.T) {
	f := newTokenizerFile('/')
	err := f.tokenize([]byte{'$', 'C', 'Y', 'T', '/', 'M', 0xb5, 'k', '/'}, false)
	if err != nil {
		t.Fatalf("could not tokenize: %+v", err)
	}
	if v, _ := f.Dict.Get("$CYT"); v != "M?k" {
		t.Fatalf("invalid sanitized value: got=%q, want=%q", v, "M?k")
	}
	if len(f.Log.Warnings()) != 1 {
		t.Fatalf("invalid warnings: %v", f.Log.Warnings())
	}
}

func TestParseHeader(t *testing.T) {
	for _, tc := range []struct {
		name string
		buf  string
		want header
		err  error
	}{
		{
			name: "normal",
			buf:  "FCS3.1          58     255     256    1023       0       0",
			want: header{
				version: "FCS3.1",
				textBeg: 58, textEnd: 255,
				dataBeg: 256, dataEnd: 1023,
			},
		},
		{
			name: "zero-data-pair",
			buf:  "FCS3.0          58     255       0       0       0       0",
			want: header{version: "FCS3.0", textBeg: 58, textEnd: 255},
		},
		{
			name: "blank-analysis-pair",
			buf:  "FCS2.0          58     255     256    1023                ",
			want: header{
				version: "FCS2.0",
				textBeg: 58, textEnd: 255,
				dataBeg: 256, dataEnd: 1023,
			},
		},
		{
			name: "truncated",
			buf:  "FCS3.1          58",
			err:  ErrTruncated,
		},
		{
			name: "garbage-offset",
			buf:  "FCS3.1          58     255     2xx    1023       0       0",
			err:  ErrTruncated,
		},
		{
			name: "unknown-version",
			buf:  "FCS9.9          58     255     256    1023       0       0",
			err:  ErrUnsupported,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			hdr, err := parseHeader([]byte(tc.buf))
			if tc.err != nil {
				if !xerrors.Is(err, tc.err) {
					t.Fatalf("invalid error: got=%+v, want=%+v", err, tc.err)
				}
				return
			}
			if err != nil {
				t.Fatalf("could not parse header: %+v", err)
			}
			if !reflect.DeepEqual(hdr, tc.want) {
				t.Fatalf("invalid header:\ngot = %#v\nwant= %#v", hdr, tc.want)
			}
		})
	}
}

func TestFormatHeaderRoundTrip(t *testing.T) {
	want := header{
		version: "FCS3.1",
		textBeg: 58, textEnd: 2057,
		dataBeg: 2058, dataEnd: 99999999,
	}
	buf := formatHeader(want)
	if len(buf) != headerLen {
		t.Fatalf("invalid header size: got=%d, want=%d", len(buf), headerLen)
	}
	got, err := parseHeader(buf)
	if err != nil {
		t.Fatalf("could not parse formatted header: %+v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("invalid round-trip:\ngot = %#v\nwant= %#v", got, want)
	}
}
