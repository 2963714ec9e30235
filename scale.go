// Copyright 2026 The go-flow Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fcs

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/xerrors"

	"github.com/go-flow/fcs/table"
)

// Scale converts every parameter's channel values to scale (physical)
// values per the dictionary's $PnE/$PnG declarations.
//
// After a parameter is scaled, its $PnG is removed, its $PnE is reset
// to "0,0" and its $PnR is rewritten to the scaled maximum, so a
// second Scale reads no-op declarations. The event values themselves
// are not protected: callers must not scale a table twice.
func (f *File) Scale() error {
	if f.Table == nil {
		return nil
	}
	for i := 0; i < f.Table.NumParams(); i++ {
		err := f.scaleParameter(i)
		if err != nil {
			return err
		}
	}
	return nil
}

// scaleParameter rescales column i in place.
func (f *File) scaleParameter(i int) error {
	xform, err := f.scaleTransform(i)
	if err != nil {
		return err
	}

	tbl := f.Table
	table.ForEachEventRange(tbl.NumEvents(), func(beg, end int) {
		for ev := beg; ev < end; ev++ {
			tbl.SetValue(i, ev, xform(tbl.Value(i, ev)))
		}
	})

	// Make re-reading the dictionary a no-op.
	n := i + 1
	f.Dict.Delete(fmt.Sprintf("$P%dG", n))
	f.Dict.set(fmt.Sprintf("$P%dE", n), "0,0")

	min, max := xform(tbl.SpecifiedMin(i)), xform(tbl.SpecifiedMax(i))
	tbl.SetSpecifiedMinMax(i, min, max)
	tbl.ComputeDataMinMax(i)
	f.Dict.set(fmt.Sprintf("$P%dR", n), strconv.FormatFloat(max, 'g', -1, 64))
	return nil
}

// scaleTransform builds the channel-to-scale conversion of parameter
// i: logarithmic when $PnE declares decades > 0, linear over $PnG
// otherwise.
func (f *File) scaleTransform(i int) (func(float64) float64, error) {
	n := i + 1

	decades, offset, err := f.amplification(n)
	if err != nil {
		return nil, err
	}

	if decades > 0 {
		r, _ := f.Dict.Float(fmt.Sprintf("$P%dR", n))
		if r <= 0 {
			return nil, xerrors.Errorf(
				"fcs: logarithmic $P%dE with $P%dR=%v: %w", n, n, r, ErrMalformedScale,
			)
		}
		if offset == 0 {
			// zero offsets are a common acquisition-software bug; the
			// 3.1 specification says to read them as 1.0.
			offset = 1
		}
		return func(v float64) float64 {
			return math.Pow(10, decades*v/r) * offset
		}, nil
	}

	gain := 1.0
	if g, ok := f.Dict.Float(fmt.Sprintf("$P%dG", n)); ok {
		if g < 0 {
			return nil, xerrors.Errorf("fcs: negative $P%dG=%v: %w", n, g, ErrMalformedScale)
		}
		if g != 0 {
			gain = g
		}
	}
	return func(v float64) float64 { return v / gain }, nil
}

// amplification decodes $PnE as a (decades, offset) pair. A missing
// keyword reads as linear ("0,0").
func (f *File) amplification(n int) (decades, offset float64, err error) {
	v, ok := f.Dict.Get(fmt.Sprintf("$P%dE", n))
	if !ok {
		return 0, 0, nil
	}
	parts := strings.Split(v, ",")
	if len(parts) != 2 {
		return 0, 0, xerrors.Errorf("fcs: invalid $P%dE %q: %w", n, v, ErrMalformedScale)
	}
	decades, err = strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, xerrors.Errorf("fcs: invalid $P%dE decades %q: %w", n, parts[0], ErrMalformedScale)
	}
	offset, err = strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, xerrors.Errorf("fcs: invalid $P%dE offset %q: %w", n, parts[1], ErrMalformedScale)
	}
	if decades < 0 || offset < 0 {
		return 0, 0, xerrors.Errorf("fcs: negative $P%dE %q: %w", n, v, ErrMalformedScale)
	}
	return decades, offset, nil
}
