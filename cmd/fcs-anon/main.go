// Copyright 2026 The go-flow Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// fcs-anon de-identifies FCS data files: it removes every keyword that
// may identify the specimen donor, the operator or the acquisition
// date (plus any keyword the vocabulary does not recognize) and
// rewrites the file.
//
// Usage: fcs-anon [OPTIONS] -o OUTPUT INPUT
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/go-flow/fcs"
)

func main() {
	log.SetPrefix("fcs-anon: ")
	log.SetFlags(0)

	var (
		oname = flag.String("o", "out.fcs", "path to the de-identified output file")
	)

	flag.Usage = func() {
		fmt.Printf(`fcs-anon de-identifies FCS data files.

Usage: fcs-anon [OPTIONS] -o OUTPUT INPUT

`)
		flag.PrintDefaults()
	}

	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		log.Fatalf("missing path to input FCS file")
	}

	err := process(*oname, flag.Arg(0))
	if err != nil {
		log.Fatalf("could not de-identify %q: %+v", flag.Arg(0), err)
	}
}

func process(oname, fname string) error {
	f, err := fcs.Open(fname)
	if err != nil {
		return fmt.Errorf("could not load %q: %w", fname, err)
	}

	n := f.Dict.Deidentify()
	log.Printf("removed %d keyword(s)", n)

	err = f.Save(oname)
	if err != nil {
		return fmt.Errorf("could not save %q: %w", oname, err)
	}
	return nil
}
