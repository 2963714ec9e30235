// Copyright 2026 The go-flow Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fcs

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/xerrors"
)

// layout is the decoded shape of the DATA segment, derived from the
// dictionary during validation.
type layout struct {
	dataBeg, dataEnd int64

	nPar     int
	datatype byte
	big      bool

	widths []int     // bytes per parameter value
	ranges []float64 // declared $PnR per parameter, 0 when absent
	names  []string  // $PnN
	longs  []string  // $PnS

	declaredTot int64 // $TOT, -1 when absent
}

// reconcileOffsets cross-checks the header-declared DATA and ANALYSIS
// offsets against $BEGINDATA/$ENDDATA/$BEGINANALYSIS/$ENDANALYSIS. A
// non-zero value always wins over a zero value from the other source;
// conflicting non-zero values are a warning, the dictionary wins.
func (f *File) reconcileOffsets(hdr *header) {
	hdr.dataBeg = f.reconcile("$BEGINDATA", hdr.dataBeg)
	hdr.dataEnd = f.reconcile("$ENDDATA", hdr.dataEnd)
	hdr.anaBeg = f.reconcile("$BEGINANALYSIS", hdr.anaBeg)
	hdr.anaEnd = f.reconcile("$ENDANALYSIS", hdr.anaEnd)
}

func (f *File) reconcile(key string, hv int64) int64 {
	dv, ok := f.Dict.Int(key)
	if !ok || dv == 0 {
		return hv
	}
	if hv != 0 && hv != dv {
		f.Log.warnf("fcs: %s=%d conflicts with header offset %d, dictionary wins",
			key, dv, hv)
	}
	return dv
}

// validate checks presence and well-formedness of the required
// keywords and derives the DATA segment layout. Deprecated or
// unsupported modes fail with ErrUnsupported.
func (f *File) validate(hdr header, size int64) (layout, error) {
	var lay layout
	lay.dataBeg, lay.dataEnd = hdr.dataBeg, hdr.dataEnd

	if mode, ok := f.Dict.Get("$MODE"); ok {
		if !strings.EqualFold(mode, "L") {
			return lay, xerrors.Errorf(
				"fcs: $MODE=%q (histogram data modes): %w", mode, ErrUnsupported,
			)
		}
	} else {
		f.Log.warnf("fcs: missing $MODE, assuming list mode")
	}

	if next, ok := f.Dict.Int("$NEXTDATA"); ok && next != 0 {
		return lay, xerrors.Errorf(
			"fcs: $NEXTDATA=%d (multi-dataset files): %w", next, ErrUnsupported,
		)
	}

	dt, ok := f.Dict.Get("$DATATYPE")
	if !ok {
		return lay, xerrors.Errorf("fcs: missing required keyword $DATATYPE: %w", ErrMalformed)
	}
	switch strings.ToUpper(dt) {
	case "I", "F", "D":
		lay.datatype = strings.ToUpper(dt)[0]
	case "A":
		return lay, xerrors.Errorf("fcs: $DATATYPE=A (ASCII data): %w", ErrUnsupported)
	default:
		return lay, xerrors.Errorf("fcs: invalid $DATATYPE %q: %w", dt, ErrMalformed)
	}
	f.state.datatype = lay.datatype

	big, err := f.byteOrder()
	if err != nil {
		return lay, err
	}
	lay.big = big
	f.state.big = big

	nPar, ok := f.Dict.Int("$PAR")
	if !ok || nPar < 1 {
		return lay, xerrors.Errorf("fcs: missing or invalid $PAR: %w", ErrMalformed)
	}
	lay.nPar = int(nPar)

	lay.widths = make([]int, lay.nPar)
	lay.ranges = make([]float64, lay.nPar)
	lay.names = make([]string, lay.nPar)
	lay.longs = make([]string, lay.nPar)
	seen := make(map[string]int, lay.nPar)
	for i := 0; i < lay.nPar; i++ {
		n := i + 1

		bits, ok := f.Dict.Int(fmt.Sprintf("$P%dB", n))
		if !ok {
			return lay, xerrors.Errorf("fcs: missing or invalid $P%dB: %w", n, ErrMalformed)
		}
		width, err := f.elementWidth(n, int(bits))
		if err != nil {
			return lay, err
		}
		lay.widths[i] = width
		if f.state.minWidth == 0 || width < f.state.minWidth {
			f.state.minWidth = width
		}
		if width > f.state.maxWidth {
			f.state.maxWidth = width
		}

		name, ok := f.Dict.Get(fmt.Sprintf("$P%dN", n))
		if !ok || name == "" {
			return lay, xerrors.Errorf("fcs: missing $P%dN: %w", n, ErrMalformed)
		}
		if prev, dup := seen[name]; dup {
			return lay, xerrors.Errorf(
				"fcs: $P%dN=%q duplicates $P%dN: %w", n, name, prev, ErrMalformed,
			)
		}
		seen[name] = n
		lay.names[i] = name
		lay.longs[i], _ = f.Dict.Get(fmt.Sprintf("$P%dS", n))

		if rstr, ok := f.Dict.Get(fmt.Sprintf("$P%dR", n)); ok {
			r, err := strconv.ParseFloat(strings.TrimSpace(rstr), 64)
			if err != nil {
				return lay, xerrors.Errorf("fcs: invalid $P%dR %q: %w", n, rstr, ErrMalformed)
			}
			lay.ranges[i] = r
			if r > f.state.maxRange {
				f.state.maxRange = r
			}
		} else {
			f.Log.warnf("fcs: missing $P%dR, assuming full element range", n)
		}
	}

	err = f.validateDataBounds(&lay, size)
	if err != nil {
		return lay, err
	}

	if tot, ok := f.Dict.Int("$TOT"); ok {
		lay.declaredTot = tot
	} else {
		lay.declaredTot = -1
		f.Log.warnf("fcs: missing $TOT, deriving the event count from the DATA segment size")
	}
	return lay, nil
}

// validateDataBounds sanity-checks the reconciled DATA offsets against
// the file size. A zero end with a non-zero begin is a known vendor
// bug: the segment is assumed to run to the end of the file, with
// $TOT bounding the usable event count.
func (f *File) validateDataBounds(lay *layout, size int64) error {
	switch {
	case lay.dataBeg == 0 && lay.dataEnd == 0:
		// no DATA segment: an empty dataset.
		return nil
	case lay.dataBeg == 0:
		return xerrors.Errorf("fcs: $ENDDATA=%d with no begin offset: %w",
			lay.dataEnd, ErrMalformed)
	case lay.dataBeg < headerLen || lay.dataBeg >= size:
		return xerrors.Errorf("fcs: DATA segment begins at %d, file is %d bytes: %w",
			lay.dataBeg, size, ErrTruncated)
	case lay.dataEnd == 0:
		lay.dataEnd = size - 1
		f.Log.warnf("fcs: zero $ENDDATA with non-zero begin offset, assuming the segment runs to end of file")
	case lay.dataEnd < lay.dataBeg:
		return xerrors.Errorf("fcs: DATA segment ends at %d, before its begin offset %d: %w",
			lay.dataEnd, lay.dataBeg, ErrMalformed)
	case lay.dataEnd >= size:
		f.Log.warnf("fcs: DATA segment ends at %d, file is %d bytes; loading the available prefix",
			lay.dataEnd, size)
		lay.dataEnd = size - 1
	}
	return nil
}

// elementWidth converts a $PnB bit count into a byte width, enforcing
// the widths this codec supports per data type.
func (f *File) elementWidth(n, bits int) (int, error) {
	switch f.state.datatype {
	case 'F':
		if bits != 32 {
			return 0, xerrors.Errorf(
				"fcs: $P%dB=%d for single-precision data: %w", n, bits, ErrUnsupported,
			)
		}
	case 'D':
		if bits != 64 {
			return 0, xerrors.Errorf(
				"fcs: $P%dB=%d for double-precision data: %w", n, bits, ErrUnsupported,
			)
		}
	default:
		switch bits {
		case 8, 16, 24, 32, 64:
			// ok
		default:
			return 0, xerrors.Errorf(
				"fcs: $P%dB=%d bits (non-standard integer width): %w", n, bits, ErrUnsupported,
			)
		}
	}
	return bits / 8, nil
}

// byteOrder decodes $BYTEORD. Only pure little- and big-endian layouts
// are supported; the mixed orders of some FCS 2.0 hardware are not.
func (f *File) byteOrder() (big bool, err error) {
	v, ok := f.Dict.Get("$BYTEORD")
	if !ok {
		f.Log.warnf("fcs: missing $BYTEORD, assuming little-endian data")
		return false, nil
	}
	switch strings.ReplaceAll(v, " ", "") {
	case "1,2,3,4", "1,2":
		return false, nil
	case "4,3,2,1", "2,1":
		return true, nil
	}
	return false, xerrors.Errorf("fcs: $BYTEORD=%q (mixed byte order): %w", v, ErrUnsupported)
}
