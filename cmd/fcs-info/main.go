// Copyright 2026 The go-flow Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// fcs-info decodes and displays FCS data files.
//
// Usage: fcs-info [OPTIONS] FILE1 [FILE2 [FILE3 ...]]
//
// Example:
//
//  $> fcs-info ./testdata/sample.fcs
//  === sample.fcs (FCS3.1) ===
//  events:     10000
//  parameters:     4
//    FSC-A  Forward Scatter        [0, 262143]
//    SSC-A  Side Scatter           [0, 262143]
//    FL1-A  FITC                   [0, 262143]
//    TIME                          [0, 262143]
//  keywords:
//    $BYTEORD = 1,2,3,4
//    $CYT     = Mock Cytometer 3000
//  [...]
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/go-flow/fcs"
)

func main() {
	log.SetPrefix("fcs-info: ")
	log.SetFlags(0)

	var (
		format = flag.String("format", "text", "output format (text|json)")
		deid   = flag.Bool("deid", false, "remove identifying keywords before printing")
		maxEvt = flag.Int("max-events", -1, "cap on loaded events (negative: all)")
	)

	flag.Usage = func() {
		fmt.Printf(`fcs-info decodes and displays FCS data files.

Usage: fcs-info [OPTIONS] FILE1 [FILE2 [FILE3 ...]]

Example:

 $> fcs-info ./testdata/sample.fcs
 === sample.fcs (FCS3.1) ===
 events:     10000
 parameters:     4
   FSC-A  Forward Scatter        [0, 262143]
 [...]

`)
		flag.PrintDefaults()
	}

	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		log.Fatalf("missing path to input FCS file")
	}

	for _, fname := range flag.Args() {
		err := process(os.Stdout, fname, *format, *deid, *maxEvt)
		if err != nil {
			log.Fatalf("could not display file %q: %+v", fname, err)
		}
	}
}

func process(w io.Writer, fname, format string, deid bool, maxEvents int) error {
	f, err := fcs.Open(fname, fcs.WithMaxEvents(maxEvents))
	if err != nil {
		return fmt.Errorf("could not load %q: %w", fname, err)
	}

	if deid {
		f.Dict.Deidentify()
	}

	switch format {
	case "text":
		return displayText(w, fname, f)
	case "json":
		return displayJSON(w, fname, f)
	}
	return fmt.Errorf("unknown output format %q", format)
}

func displayText(w io.Writer, fname string, f *fcs.File) error {
	tbl := f.Table
	fmt.Fprintf(w, "=== %s (%s) ===\n", fname, f.Version)
	fmt.Fprintf(w, "events:     % 6d\n", tbl.NumEvents())
	fmt.Fprintf(w, "parameters: % 6d\n", tbl.NumParams())
	for i := 0; i < tbl.NumParams(); i++ {
		fmt.Fprintf(w, "  %-10s %-20s [%g, %g]\n",
			tbl.Name(i), tbl.LongName(i), tbl.BestMin(i), tbl.BestMax(i),
		)
	}
	fmt.Fprintf(w, "keywords:\n")
	for _, key := range f.Dict.Keys() {
		v, _ := f.Dict.Get(key)
		fmt.Fprintf(w, "  %s = %s\n", key, v)
	}
	for _, msg := range f.Log.Warnings() {
		fmt.Fprintf(w, "%s: %s\n", msg.Level, msg.Text)
	}
	return nil
}

type jsonParam struct {
	Name     string  `json:"name"`
	LongName string  `json:"long_name,omitempty"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
}

type jsonFile struct {
	File     string            `json:"file"`
	Version  string            `json:"version"`
	Events   int               `json:"events"`
	Params   []jsonParam       `json:"parameters"`
	Keywords map[string]string `json:"keywords"`
	Warnings []string          `json:"warnings,omitempty"`
}

func displayJSON(w io.Writer, fname string, f *fcs.File) error {
	tbl := f.Table
	out := jsonFile{
		File:     fname,
		Version:  f.Version,
		Events:   tbl.NumEvents(),
		Keywords: make(map[string]string, f.Dict.Len()),
	}
	for i := 0; i < tbl.NumParams(); i++ {
		out.Params = append(out.Params, jsonParam{
			Name:     tbl.Name(i),
			LongName: tbl.LongName(i),
			Min:      tbl.BestMin(i),
			Max:      tbl.BestMax(i),
		})
	}
	for _, key := range f.Dict.Keys() {
		out.Keywords[key], _ = f.Dict.Get(key)
	}
	for _, msg := range f.Log.Warnings() {
		out.Warnings = append(out.Warnings, msg.Text)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
