// Copyright 2026 The go-flow Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"path/filepath"
	"testing"

	"github.com/go-flow/fcs"
	"github.com/go-flow/fcs/table"
)

func TestProcess(t *testing.T) {
	tbl := table.New(table.Float32)
	if _, err := tbl.AppendParameter("FSC-A", ""); err != nil {
		t.Fatalf("could not add parameter: %+v", err)
	}
	tbl.Resize(5)
	for ev := 0; ev < 5; ev++ {
		tbl.SetValue(0, ev, float64(ev))
	}
	tbl.ComputeDataMinMax(-1)

	f := fcs.NewFromTable(tbl)
	for _, kv := range [][2]string{
		{"$CYT", "Mock Cytometer 3000"},
		{"$OP", "jane"},
		{"$SRC", "patient 42"},
		{"$BTIM", "10:00:00"},
	} {
		if err := f.Dict.Set(kv[0], kv[1]); err != nil {
			t.Fatalf("could not set keyword %s: %+v", kv[0], err)
		}
	}

	dir := t.TempDir()
	iname := filepath.Join(dir, "in.fcs")
	oname := filepath.Join(dir, "out.fcs")
	if err := f.Save(iname); err != nil {
		t.Fatalf("could not save input file: %+v", err)
	}

	if err := process(oname, iname); err != nil {
		t.Fatalf("could not de-identify: %+v", err)
	}

	g, err := fcs.Open(oname)
	if err != nil {
		t.Fatalf("could not load output file: %+v", err)
	}
	for _, key := range []string{"$OP", "$SRC", "$BTIM"} {
		if _, ok := g.Dict.Get(key); ok {
			t.Errorf("keyword %s survived de-identification", key)
		}
	}
	if v, _ := g.Dict.Get("$CYT"); v != "Mock Cytometer 3000" {
		t.Fatalf("invalid $CYT: %q", v)
	}
	if got, want := g.Table.NumEvents(), 5; got != want {
		t.Fatalf("invalid event count: got=%d, want=%d", got, want)
	}
	if err := process(oname, filepath.Join(dir, "missing.fcs")); err == nil {
		t.Fatalf("expected an error for a missing input file")
	}
}
