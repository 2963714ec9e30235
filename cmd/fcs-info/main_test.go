// Copyright 2026 The go-flow Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-flow/fcs"
	"github.com/go-flow/fcs/table"
)

func makeSampleFile(t *testing.T) string {
	t.Helper()

	tbl := table.New(table.Float32)
	for _, p := range []struct{ name, long string }{
		{"FSC-A", "Forward Scatter"},
		{"SSC-A", "Side Scatter"},
	} {
		_, err := tbl.AppendParameter(p.name, p.long)
		if err != nil {
			t.Fatalf("could not add parameter: %+v", err)
		}
	}
	tbl.Resize(10)
	for ev := 0; ev < 10; ev++ {
		tbl.SetValue(0, ev, float64(ev))
		tbl.SetValue(1, ev, float64(10*ev))
	}
	tbl.ComputeDataMinMax(-1)

	f := fcs.NewFromTable(tbl)
	for _, kv := range [][2]string{
		{"$CYT", "Mock Cytometer 3000"},
		{"$OP", "jane"},
		{"$DATE", "01-AUG-2026"},
	} {
		if err := f.Dict.Set(kv[0], kv[1]); err != nil {
			t.Fatalf("could not set keyword %s: %+v", kv[0], err)
		}
	}

	fname := filepath.Join(t.TempDir(), "sample.fcs")
	if err := f.Save(fname); err != nil {
		t.Fatalf("could not save sample file: %+v", err)
	}
	return fname
}

func TestProcessText(t *testing.T) {
	fname := makeSampleFile(t)

	var buf bytes.Buffer
	err := process(&buf, fname, "text", false, -1)
	if err != nil {
		t.Fatalf("could not process file: %+v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"(FCS3.1)",
		"events:         10",
		"parameters:      2",
		"FSC-A",
		"Forward Scatter",
		"$CYT = Mock Cytometer 3000",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestProcessJSON(t *testing.T) {
	fname := makeSampleFile(t)

	var buf bytes.Buffer
	err := process(&buf, fname, "json", false, -1)
	if err != nil {
		t.Fatalf("could not process file: %+v", err)
	}

	var out jsonFile
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("could not decode output: %+v\n%s", err, buf.String())
	}
	if out.Version != "FCS3.1" || out.Events != 10 {
		t.Fatalf("invalid summary: version=%q events=%d", out.Version, out.Events)
	}
	if len(out.Params) != 2 || out.Params[1].Name != "SSC-A" {
		t.Fatalf("invalid parameters: %+v", out.Params)
	}
	if out.Keywords["$OP"] != "jane" {
		t.Fatalf("invalid keywords: %v", out.Keywords)
	}
}

func TestProcessDeidentify(t *testing.T) {
	fname := makeSampleFile(t)

	var buf bytes.Buffer
	err := process(&buf, fname, "text", true, -1)
	if err != nil {
		t.Fatalf("could not process file: %+v", err)
	}
	out := buf.String()
	for _, gone := range []string{"$OP", "$DATE", "jane"} {
		if strings.Contains(out, gone) {
			t.Errorf("output leaks %q after de-identification:\n%s", gone, out)
		}
	}
	if !strings.Contains(out, "$CYT") {
		t.Errorf("de-identification removed safe keywords:\n%s", out)
	}
}

func TestProcessMaxEvents(t *testing.T) {
	fname := makeSampleFile(t)

	var buf bytes.Buffer
	err := process(&buf, fname, "text", false, 3)
	if err != nil {
		t.Fatalf("could not process file: %+v", err)
	}
	if out := buf.String(); !strings.Contains(out, "events:          3") {
		t.Fatalf("invalid event cap:\n%s", out)
	}
}

func TestProcessBadFormat(t *testing.T) {
	fname := makeSampleFile(t)

	var buf bytes.Buffer
	err := process(&buf, fname, "yaml", false, -1)
	if err == nil {
		t.Fatalf("expected an error for an unknown format")
	}
}
