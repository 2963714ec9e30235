// Copyright 2026 The go-flow Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package table holds the in-memory columnar store of decoded
// flow-cytometry events.
//
// A table holds one dense column per parameter. All columns share one
// value kind (single or double precision) and one length. A *Table may
// be shared between several owners; in-place mutations (Resize,
// Compensate, value writes) are visible to all of them.
package table // import "github.com/go-flow/fcs/table"

import (
	"errors"
	"math"

	"golang.org/x/xerrors"
)

var (
	// ErrDuplicateName reports an AppendParameter with a short name
	// already present in the table.
	ErrDuplicateName = errors.New("duplicate parameter name")

	// ErrNameNotFound reports an operation on a parameter name the
	// table does not hold.
	ErrNameNotFound = errors.New("parameter name not found")

	// ErrUnknownParameter reports a compensation matrix naming a
	// parameter the table does not hold.
	ErrUnknownParameter = errors.New("unknown parameter")

	// ErrSingularMatrix reports a compensation matrix that cannot be
	// inverted.
	ErrSingularMatrix = errors.New("singular compensation matrix")
)

// Kind is the precision of a table's values, fixed for the table's
// lifetime.
type Kind uint8

const (
	Float32 Kind = iota + 1
	Float64
)

func (k Kind) String() string {
	switch k {
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	}
	return "invalid"
}

// EventTable is the surface consumed by everything downstream of the
// file codec: gating, caching, display. One concrete implementation
// exists (Table).
type EventTable interface {
	// Kind returns the value precision shared by all columns.
	Kind() Kind

	// NumParams returns the number of parameter columns.
	NumParams() int
	// NumEvents returns the number of events held by every column.
	NumEvents() int
	// NumOriginalEvents returns the event count of the source file,
	// which exceeds NumEvents when only a prefix was loaded.
	NumOriginalEvents() int
	SetNumOriginalEvents(n int)

	// Name returns the short name of parameter i.
	Name(i int) string
	// LongName returns the optional long name of parameter i.
	LongName(i int) string
	SetLongName(i int, name string)
	// Names returns the short names of all parameters, in column order.
	Names() []string
	// Index returns the column index of the named parameter.
	Index(name string) (int, bool)

	// Value and SetValue access single values, converting through
	// float64 regardless of the table kind.
	Value(i, ev int) float64
	SetValue(i, ev int, v float64)

	// Float32s (resp. Float64s) returns the backing slice of column i
	// when the table kind matches, nil otherwise. The slice aliases
	// table storage.
	Float32s(i int) []float32
	Float64s(i int) []float64

	// SpecifiedMin/Max are the bounds declared by the source file.
	SpecifiedMin(i int) float64
	SpecifiedMax(i int) float64
	SetSpecifiedMinMax(i int, min, max float64)

	// DataMin/Max are the observed bounds cached by the most recent
	// ComputeDataMinMax sweep.
	DataMin(i int) float64
	DataMax(i int) float64

	// BestMin/Max return the specified bound unless the observed data
	// exceeds it. The specified bound is advisory, not authoritative.
	BestMin(i int) float64
	BestMax(i int) float64

	// AppendParameter adds a column with NumEvents zero values and
	// returns its index.
	AppendParameter(name, longName string) (int, error)
	// RemoveParameter drops the named column.
	RemoveParameter(name string) error

	// Resize truncates or zero-extends every column to n events.
	Resize(n int)

	// ComputeDataMinMax sweeps column i and caches the observed
	// bounds. A negative i sweeps all columns.
	ComputeDataMinMax(i int)

	// Copy deep-copies src, including all per-column metadata.
	Copy(src EventTable)
	// CopyValues overwrites column i's values from column j of src
	// without touching names or bounds.
	CopyValues(i int, src EventTable, j int) error
}

type column struct {
	name string
	long string

	f32 []float32
	f64 []float64

	specMin, specMax float64
	dataMin, dataMax float64
}

// Table is the concrete event table.
type Table struct {
	kind Kind
	cols []column

	nEvents  int
	nsEvents int // event count of the source file
}

var _ EventTable = (*Table)(nil)

// New returns an empty table of the given value kind.
func New(kind Kind) *Table {
	return &Table{kind: kind}
}

func (t *Table) Kind() Kind             { return t.kind }
func (t *Table) NumParams() int         { return len(t.cols) }
func (t *Table) NumEvents() int         { return t.nEvents }
func (t *Table) NumOriginalEvents() int { return t.nsEvents }

func (t *Table) SetNumOriginalEvents(n int) {
	if n < t.nEvents {
		n = t.nEvents
	}
	t.nsEvents = n
}

func (t *Table) Name(i int) string     { return t.cols[i].name }
func (t *Table) LongName(i int) string { return t.cols[i].long }

func (t *Table) SetLongName(i int, name string) { t.cols[i].long = name }

func (t *Table) Names() []string {
	names := make([]string, len(t.cols))
	for i, col := range t.cols {
		names[i] = col.name
	}
	return names
}

func (t *Table) Index(name string) (int, bool) {
	for i, col := range t.cols {
		if col.name == name {
			return i, true
		}
	}
	return -1, false
}

func (t *Table) Value(i, ev int) float64 {
	if t.kind == Float32 {
		return float64(t.cols[i].f32[ev])
	}
	return t.cols[i].f64[ev]
}

func (t *Table) SetValue(i, ev int, v float64) {
	if t.kind == Float32 {
		t.cols[i].f32[ev] = float32(v)
		return
	}
	t.cols[i].f64[ev] = v
}

func (t *Table) Float32s(i int) []float32 { return t.cols[i].f32 }
func (t *Table) Float64s(i int) []float64 { return t.cols[i].f64 }

func (t *Table) SpecifiedMin(i int) float64 { return t.cols[i].specMin }
func (t *Table) SpecifiedMax(i int) float64 { return t.cols[i].specMax }

func (t *Table) SetSpecifiedMinMax(i int, min, max float64) {
	t.cols[i].specMin = min
	t.cols[i].specMax = max
}

func (t *Table) DataMin(i int) float64 { return t.cols[i].dataMin }
func (t *Table) DataMax(i int) float64 { return t.cols[i].dataMax }

func (t *Table) BestMin(i int) float64 {
	if t.cols[i].dataMin < t.cols[i].specMin {
		return t.cols[i].dataMin
	}
	return t.cols[i].specMin
}

func (t *Table) BestMax(i int) float64 {
	if t.cols[i].dataMax > t.cols[i].specMax {
		return t.cols[i].dataMax
	}
	return t.cols[i].specMax
}

// AppendParameter adds a column named name with NumEvents zero values.
// The name must be non-empty and not already present.
func (t *Table) AppendParameter(name, longName string) (int, error) {
	if name == "" {
		return -1, xerrors.Errorf("table: empty parameter name: %w", ErrDuplicateName)
	}
	if _, dup := t.Index(name); dup {
		return -1, xerrors.Errorf("table: parameter %q: %w", name, ErrDuplicateName)
	}
	col := column{name: name, long: longName}
	switch t.kind {
	case Float32:
		col.f32 = make([]float32, t.nEvents)
	default:
		col.f64 = make([]float64, t.nEvents)
	}
	t.cols = append(t.cols, col)
	return len(t.cols) - 1, nil
}

// RemoveParameter drops the named column, preserving the order of the
// remaining columns.
func (t *Table) RemoveParameter(name string) error {
	i, ok := t.Index(name)
	if !ok {
		return xerrors.Errorf("table: parameter %q: %w", name, ErrNameNotFound)
	}
	t.cols = append(t.cols[:i], t.cols[i+1:]...)
	return nil
}

// Resize truncates or zero-extends every column to n events.
func (t *Table) Resize(n int) {
	if n < 0 {
		n = 0
	}
	for i := range t.cols {
		col := &t.cols[i]
		switch t.kind {
		case Float32:
			switch {
			case n <= len(col.f32):
				col.f32 = col.f32[:n]
			default:
				col.f32 = append(col.f32, make([]float32, n-len(col.f32))...)
			}
		default:
			switch {
			case n <= len(col.f64):
				col.f64 = col.f64[:n]
			default:
				col.f64 = append(col.f64, make([]float64, n-len(col.f64))...)
			}
		}
	}
	t.nEvents = n
	if t.nsEvents < n {
		t.nsEvents = n
	}
}

// ComputeDataMinMax sweeps column i (all columns when i is negative)
// and caches the observed minimum and maximum. An empty column caches
// zero bounds.
func (t *Table) ComputeDataMinMax(i int) {
	if i < 0 {
		for j := range t.cols {
			t.ComputeDataMinMax(j)
		}
		return
	}
	col := &t.cols[i]
	if t.nEvents == 0 {
		col.dataMin, col.dataMax = 0, 0
		return
	}
	min, max := math.Inf(+1), math.Inf(-1)
	switch t.kind {
	case Float32:
		for _, v := range col.f32 {
			if float64(v) < min {
				min = float64(v)
			}
			if float64(v) > max {
				max = float64(v)
			}
		}
	default:
		for _, v := range col.f64 {
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
		}
	}
	col.dataMin, col.dataMax = min, max
}

// Copy deep-copies src into t, replacing t's kind, columns and counts.
func (t *Table) Copy(src EventTable) {
	t.kind = src.Kind()
	t.nEvents = src.NumEvents()
	t.nsEvents = src.NumOriginalEvents()
	t.cols = make([]column, src.NumParams())
	for i := range t.cols {
		col := &t.cols[i]
		col.name = src.Name(i)
		col.long = src.LongName(i)
		col.specMin, col.specMax = src.SpecifiedMin(i), src.SpecifiedMax(i)
		col.dataMin, col.dataMax = src.DataMin(i), src.DataMax(i)
		switch t.kind {
		case Float32:
			col.f32 = append([]float32(nil), src.Float32s(i)...)
			if col.f32 == nil {
				col.f32 = make([]float32, 0)
			}
		default:
			col.f64 = append([]float64(nil), src.Float64s(i)...)
			if col.f64 == nil {
				col.f64 = make([]float64, 0)
			}
		}
	}
}

// CopyValues overwrites column i's values from column j of src. Names
// and bounds are untouched. The event counts must agree.
func (t *Table) CopyValues(i int, src EventTable, j int) error {
	if src.NumEvents() != t.nEvents {
		return xerrors.Errorf(
			"table: event count mismatch (src=%d dst=%d)",
			src.NumEvents(), t.nEvents,
		)
	}
	for ev := 0; ev < t.nEvents; ev++ {
		t.SetValue(i, ev, src.Value(j, ev))
	}
	return nil
}
