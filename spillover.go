// Copyright 2026 The go-flow Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fcs

import (
	"strconv"
	"strings"

	"golang.org/x/xerrors"

	"github.com/go-flow/fcs/table"
)

// Compensate applies the file's spillover matrix ($SPILLOVER, or the
// legacy $COMP) to the event table. A file without a matrix is a
// no-op. The matrix keyword is left in place; compensating twice
// therefore re-applies the matrix, which callers must avoid.
func (f *File) Compensate() error {
	v, ok := f.Dict.Get("$SPILLOVER")
	if !ok {
		v, ok = f.Dict.Get("$COMP")
	}
	if !ok || f.Table == nil {
		return nil
	}
	names, matrix, err := parseSpillover(v)
	if err != nil {
		return err
	}
	return table.Compensate(f.Table, names, matrix)
}

// parseSpillover decodes a spillover keyword value:
//
//	n,name1,...,namen,v11,v12,...,vnn
//
// with n >= 2 and exactly n*n matrix elements in row-major order.
func parseSpillover(v string) (names []string, matrix []float64, err error) {
	fields := strings.Split(v, ",")
	if len(fields) < 1 {
		return nil, nil, xerrors.Errorf("fcs: empty spillover value: %w", ErrMalformed)
	}
	n, err := strconv.Atoi(strings.TrimSpace(fields[0]))
	if err != nil || n < 2 {
		return nil, nil, xerrors.Errorf(
			"fcs: invalid spillover parameter count %q: %w", fields[0], ErrMalformed,
		)
	}
	if len(fields) != 1+n+n*n {
		return nil, nil, xerrors.Errorf(
			"fcs: spillover value holds %d fields, want %d for %d parameters: %w",
			len(fields), 1+n+n*n, n, ErrMalformed,
		)
	}

	names = make([]string, n)
	for i := range names {
		names[i] = strings.TrimSpace(fields[1+i])
	}
	matrix = make([]float64, n*n)
	for i := range matrix {
		matrix[i], err = strconv.ParseFloat(strings.TrimSpace(fields[1+n+i]), 64)
		if err != nil {
			return nil, nil, xerrors.Errorf(
				"fcs: invalid spillover element %q: %w", fields[1+n+i], ErrMalformed,
			)
		}
	}
	return names, matrix, nil
}
