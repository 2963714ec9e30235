// Copyright 2026 The go-flow Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fcs reads and writes flow-cytometry event data in the ISAC
// FCS file format, versions 1.0 through 3.1.
//
// An FCS file is a hybrid of a fixed ASCII header, one or two delimited
// keyword/value TEXT segments and a binary DATA segment holding the
// acquired events in row-major order. Decades of vendor software have
// produced files that deviate from the written standard in small but
// persistent ways; this package recovers from the known deviations
// (redundant delimiters, missing closing delimiters, stray bytes,
// inconsistent segment offsets, 8-bit text in ASCII-only files) with a
// warning recorded on the file's message log, and rejects only data
// that is genuinely unusable.
//
// Decoded events are held in a columnar table (package table) of
// single- or double-precision values. Channel values can be rescaled
// to physical values per the $PnE/$PnG keywords, and fluorescence
// spillover can be compensated with the $SPILLOVER matrix.
package fcs // import "github.com/go-flow/fcs"

import (
	"fmt"
	"runtime/debug"
)

// Version returns the version of fcs and its checksum.
// The returned values are only valid in binaries built with module support.
func Version() (version, sum string) {
	b, ok := debug.ReadBuildInfo()
	if !ok {
		return "", ""
	}
	return versionOf(b)
}

func versionOf(b *debug.BuildInfo) (version, sum string) {
	if b == nil {
		return "", ""
	}

	const root = "github.com/go-flow/fcs"
	for _, m := range b.Deps {
		if m.Path != root {
			continue
		}
		if m.Replace != nil {
			switch {
			case m.Replace.Version != "" && m.Replace.Path != "":
				return fmt.Sprintf("%s %s", m.Replace.Path, m.Replace.Version), m.Replace.Sum
			case m.Replace.Version != "":
				return m.Replace.Version, m.Replace.Sum
			case m.Replace.Path != "":
				return m.Replace.Path, m.Replace.Sum
			default:
				return m.Version + "*", ""
			}
		}
		return m.Version, m.Sum
	}
	return "", ""
}
