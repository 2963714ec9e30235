// Copyright 2026 The go-flow Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fcs

import (
	"strconv"
	"strings"

	"golang.org/x/xerrors"
)

// Dict is the ordered keyword/value dictionary of an FCS file.
//
// Keys are upper-cased and trimmed, values are trimmed and hold the
// unescaped form (never the doubled-delimiter form stored on disk).
// Iteration order is insertion order.
type Dict struct {
	keys []string
	vals map[string]string
}

// NewDict returns an empty dictionary.
func NewDict() *Dict {
	return &Dict{vals: make(map[string]string)}
}

// Len returns the number of entries.
func (d *Dict) Len() int { return len(d.keys) }

// Keys returns the keywords in insertion order.
func (d *Dict) Keys() []string {
	out := make([]string, len(d.keys))
	copy(out, d.keys)
	return out
}

// Get returns the value of the given keyword, if present.
func (d *Dict) Get(key string) (string, bool) {
	v, ok := d.vals[normKey(key)]
	return v, ok
}

// Int returns the value of the given keyword parsed as an integer. It
// reports false when the keyword is absent or its value does not
// parse.
func (d *Dict) Int(key string) (int64, bool) {
	s, ok := d.Get(key)
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Float returns the value of the given keyword parsed as a float. It
// reports false when the keyword is absent or its value does not
// parse.
func (d *Dict) Float(key string) (float64, bool) {
	s, ok := d.Get(key)
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Set adds or replaces an entry. Keywords derived from the event table
// ($TOT, $PAR, $PnN) are write-protected and fail with
// ErrProtectedKeyword.
func (d *Dict) Set(key, value string) error {
	k := normKey(key)
	if isProtected(k) {
		return xerrors.Errorf("fcs: keyword %q is derived from the event table: %w",
			k, ErrProtectedKeyword)
	}
	d.set(k, value)
	return nil
}

// Delete removes an entry, reporting whether it was present.
func (d *Dict) Delete(key string) bool {
	k := normKey(key)
	if _, ok := d.vals[k]; !ok {
		return false
	}
	delete(d.vals, k)
	for i, kk := range d.keys {
		if kk == k {
			d.keys = append(d.keys[:i], d.keys[i+1:]...)
			break
		}
	}
	return true
}

// Reset drops all entries.
func (d *Dict) Reset() {
	d.keys = d.keys[:0]
	for k := range d.vals {
		delete(d.vals, k)
	}
}

// set stores an entry without the write-protection check. The parser
// and the writer use it for table-derived keywords.
func (d *Dict) set(key, value string) {
	k := normKey(key)
	if _, ok := d.vals[k]; !ok {
		d.keys = append(d.keys, k)
	}
	d.vals[k] = strings.TrimSpace(value)
}

func normKey(key string) string {
	return strings.ToUpper(strings.TrimSpace(key))
}

// isProtected reports whether key is derived from the event table:
// $TOT, $PAR, or any $PnN.
func isProtected(key string) bool {
	switch key {
	case "$TOT", "$PAR":
		return true
	}
	if !strings.HasPrefix(key, "$P") || !strings.HasSuffix(key, "N") || len(key) < 4 {
		return false
	}
	for i := 2; i < len(key)-1; i++ {
		if key[i] < '0' || key[i] > '9' {
			return false
		}
	}
	return true
}
