// Copyright 2026 The go-flow Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package table

import (
	"runtime"

	"golang.org/x/sync/errgroup"
	"golang.org/x/xerrors"
	"gonum.org/v1/gonum/mat"
)

// Compensate applies the inverse of the given spillover matrix to the
// named parameters of every event in tbl.
//
// spill is an n x n matrix in row-major order, with n = len(names) and
// n >= 2; its rows and columns are identified by names, which need not
// follow the table's column order. An identity matrix is a no-op. A
// zero diagonal entry or a non-invertible matrix fails with
// ErrSingularMatrix, an unknown name with ErrUnknownParameter; in both
// cases the table is left unmodified. Parameters not named by the
// matrix are untouched.
func Compensate(tbl EventTable, names []string, spill []float64) error {
	n := len(names)
	if n < 2 {
		return xerrors.Errorf("table: compensation needs at least 2 parameters (got=%d)", n)
	}
	if len(spill) != n*n {
		return xerrors.Errorf(
			"table: spillover matrix size mismatch (got=%d elements, want=%d)",
			len(spill), n*n,
		)
	}

	idxs := make([]int, n)
	for i, name := range names {
		idx, ok := tbl.Index(name)
		if !ok {
			return xerrors.Errorf("table: spillover parameter %q: %w", name, ErrUnknownParameter)
		}
		idxs[i] = idx
	}

	for i := 0; i < n; i++ {
		if spill[i*n+i] == 0 {
			return xerrors.Errorf(
				"table: zero diagonal entry in spillover matrix (row=%d): %w",
				i, ErrSingularMatrix,
			)
		}
	}

	if isIdentity(spill, n) {
		return nil
	}

	var inv mat.Dense
	err := inv.Inverse(mat.NewDense(n, n, spill))
	if err != nil {
		return xerrors.Errorf("table: could not invert spillover matrix: %w", ErrSingularMatrix)
	}

	apply := func(beg, end int) {
		vec := make([]float64, n)
		out := make([]float64, n)
		for ev := beg; ev < end; ev++ {
			for k, idx := range idxs {
				vec[k] = tbl.Value(idx, ev)
			}
			for j := 0; j < n; j++ {
				sum := 0.0
				for k := 0; k < n; k++ {
					sum += vec[k] * inv.At(k, j)
				}
				out[j] = sum
			}
			for k, idx := range idxs {
				tbl.SetValue(idx, ev, out[k])
			}
		}
	}

	ForEachEventRange(tbl.NumEvents(), apply)
	return nil
}

// ForEachEventRange splits [0,nEvents) into one contiguous range per
// worker and runs fn on each range concurrently. Ranges never overlap,
// so fn may mutate per-event table state without locking.
func ForEachEventRange(nEvents int, fn func(beg, end int)) {
	workers := runtime.GOMAXPROCS(0)
	if workers > nEvents {
		workers = nEvents
	}
	if workers <= 1 {
		fn(0, nEvents)
		return
	}

	var grp errgroup.Group
	chunk := (nEvents + workers - 1) / workers
	for beg := 0; beg < nEvents; beg += chunk {
		beg := beg
		end := beg + chunk
		if end > nEvents {
			end = nEvents
		}
		grp.Go(func() error {
			fn(beg, end)
			return nil
		})
	}
	_ = grp.Wait() // workers do not fail.
}

func isIdentity(m []float64, n int) bool {
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			want := 0.0
			if i == j {
				want = 1.0
			}
			if m[i*n+j] != want {
				return false
			}
		}
	}
	return true
}
