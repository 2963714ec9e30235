// Copyright 2026 The go-flow Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fcs

import "errors"

// Error kinds returned (wrapped) by Load, Save and the numeric
// engines. Classify with errors.Is.
var (
	// ErrTruncated reports a file that ends before a required field.
	ErrTruncated = errors.New("truncated file")

	// ErrMalformed reports a field that is present but does not parse
	// per the FCS grammar.
	ErrMalformed = errors.New("malformed field")

	// ErrUnsupported reports a recognized but intentionally
	// unimplemented feature (ASCII data, histogram modes,
	// multi-dataset files, non-standard integer widths, unknown
	// format versions).
	ErrUnsupported = errors.New("unsupported feature")

	// ErrMalformedScale reports an unusable $PnE/$PnG/$PnR
	// combination.
	ErrMalformedScale = errors.New("malformed scale")

	// ErrProtectedKeyword reports an attempt to set a keyword that is
	// derived from the event table ($TOT, $PAR, $PnN).
	ErrProtectedKeyword = errors.New("protected keyword")
)
