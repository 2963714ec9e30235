// Copyright 2026 The go-flow Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fcs

import (
	"unicode/utf8"

	"golang.org/x/xerrors"
)

// tokState enumerates the states of the TEXT segment tokenizer.
type tokState uint8

const (
	readyForKeyword tokState = iota // between pairs, before a keyword
	startOfKeyword                  // first keyword byte seen
	delimAfterKeyword
	startOfValue // first value byte seen
	middleOfValue
	delimAfterValue
)

// validDelimiter reports whether b may serve as the TEXT segment
// delimiter: any ASCII byte except NUL and comma, high bit clear.
func validDelimiter(b byte) bool {
	return b != 0 && b != ',' && b&0x80 == 0
}

// tokenize splits a TEXT (or supplemental TEXT) segment into
// dictionary entries. The segment must not include the leading
// delimiter byte of the primary TEXT segment; the delimiter itself
// comes from the file state.
//
// The grammar is (keyword delim value delim)*, with a literal
// delimiter inside a value escaped as a doubled delimiter. Vendor
// deviations are demoted to warnings: leading blanks, naked doubled
// delimiters standing for an empty value, a missing final delimiter at
// end of segment, redundant trailing delimiters or blanks, and a
// repeated delimiter byte at the start of the supplemental segment.
func (f *File) tokenize(seg []byte, supplemental bool) error {
	var (
		delim    = f.state.delim
		state    = readyForKeyword
		kw       []byte
		val      []byte
		blankRun bool
	)

	save := func() error {
		err := f.storeEntry(kw, val)
		kw, val = kw[:0], val[:0]
		return err
	}

	for i := 0; i < len(seg); i++ {
		b := seg[i]
		switch state {
		case readyForKeyword:
			switch {
			case b == ' ':
				if !blankRun {
					if f.Dict.Len() == 0 {
						f.Log.warnf("fcs: blank bytes before the first keyword")
					} else {
						f.Log.warnf("fcs: blank bytes between entries skipped")
					}
					blankRun = true
				}
				continue
			case b == delim:
				if supplemental && i == 0 {
					f.Log.warnf("fcs: supplemental TEXT repeats the delimiter byte")
				} else {
					f.Log.warnf("fcs: redundant delimiter skipped")
				}
			default:
				kw = append(kw, b)
				state = startOfKeyword
			}
			blankRun = false

		case startOfKeyword:
			if b == delim {
				state = delimAfterKeyword
				break
			}
			kw = append(kw, b)

		case delimAfterKeyword:
			if b == delim {
				// naked doubled delimiter: empty value.
				f.Log.warnf("fcs: keyword %q carries an empty value", string(kw))
				if err := save(); err != nil {
					return err
				}
				state = readyForKeyword
				break
			}
			val = append(val, b)
			state = startOfValue

		case startOfValue, middleOfValue:
			if b == delim {
				state = delimAfterValue
				break
			}
			val = append(val, b)
			state = middleOfValue

		case delimAfterValue:
			if b == delim {
				if restBlank(seg[i+1:]) {
					// a doubled delimiter at the very end of the
					// segment is a stray closer, not an escape.
					f.Log.warnf("fcs: redundant trailing delimiter after keyword %q", string(kw))
					if err := save(); err != nil {
						return err
					}
					state = readyForKeyword
					break
				}
				val = append(val, delim) // escaped delimiter
				state = middleOfValue
				break
			}
			if err := save(); err != nil {
				return err
			}
			kw = append(kw, b)
			state = startOfKeyword
		}
	}

	switch state {
	case readyForKeyword:
		// normal end, possibly after trailing blanks or strays.
	case startOfKeyword, delimAfterKeyword:
		return xerrors.Errorf(
			"fcs: keyword %q has no value at end of segment: %w",
			string(kw), ErrTruncated,
		)
	case startOfValue, middleOfValue:
		// missing final closing delimiter: end-of-buffer closes.
		f.Log.warnf("fcs: missing final delimiter after keyword %q", string(kw))
		if err := save(); err != nil {
			return err
		}
	case delimAfterValue:
		if err := save(); err != nil {
			return err
		}
	}
	return nil
}

// restBlank reports whether p holds only blanks.
func restBlank(p []byte) bool {
	for _, b := range p {
		if b != ' ' {
			return false
		}
	}
	return true
}

// storeEntry decodes one keyword/value pair and records it in the
// dictionary. Keywords are ASCII; values are UTF-8 in 3.x files but
// vendors leak 8-bit "extended ASCII", which is sanitized to '?' with
// a warning.
func (f *File) storeEntry(kw, val []byte) error {
	key, err := f.decodeText(kw, "keyword")
	if err != nil {
		return err
	}
	value, err := f.decodeText(val, "value")
	if err != nil {
		return err
	}
	key = normKey(key)
	if key == "" {
		f.Log.warnf("fcs: empty keyword skipped")
		return nil
	}
	if _, dup := f.Dict.Get(key); dup {
		f.Log.warnf("fcs: duplicate keyword %q, last value wins", key)
	}
	f.Dict.set(key, value)
	return nil
}

// decodeText decodes raw as UTF-8. On failure every byte with the high
// bit set is replaced with '?' and decoding is retried once before
// failing with ErrMalformed.
func (f *File) decodeText(raw []byte, what string) (string, error) {
	if utf8.Valid(raw) {
		return string(raw), nil
	}
	f.Log.warnf("fcs: %s holds invalid UTF-8, 8-bit bytes replaced with '?'", what)
	clean := make([]byte, len(raw))
	for i, b := range raw {
		if b&0x80 != 0 {
			b = '?'
		}
		clean[i] = b
	}
	if !utf8.Valid(clean) {
		return "", xerrors.Errorf("fcs: %s is not decodable text: %w", what, ErrMalformed)
	}
	return string(clean), nil
}
