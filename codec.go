// Copyright 2026 The go-flow Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fcs

import (
	"encoding/binary"
	"io"
	"math"
	"math/bits"

	"golang.org/x/xerrors"

	"github.com/go-flow/fcs/table"
)

// eventChunk is the number of events read or written per I/O call.
// Chunking amortizes call overhead without holding two copies of the
// whole DATA segment in memory.
const eventChunk = 4096

// readData decodes the DATA segment into a fresh event table. Rows are
// row-major on disk and scattered into column-major storage; integer
// values are masked per $PnR and widened to floating point.
func (f *File) readData(r io.ReaderAt, lay layout) error {
	eventWidth := 0
	for _, w := range lay.widths {
		eventWidth += w
	}

	var avail int64
	if lay.dataBeg > 0 && eventWidth > 0 {
		segLen := lay.dataEnd - lay.dataBeg + 1
		avail = segLen / int64(eventWidth)
		if segLen%int64(eventWidth) != 0 {
			f.Log.warnf("fcs: DATA segment size %d is not a multiple of the %d-byte event width",
				segLen, eventWidth)
		}
	}

	nAll := avail
	switch {
	case lay.declaredTot < 0:
		// $TOT missing; the segment size is all we have.
	case lay.declaredTot < avail:
		f.Log.warnf("fcs: $TOT=%d but the DATA segment holds %d events, trusting $TOT",
			lay.declaredTot, avail)
		nAll = lay.declaredTot
	case lay.declaredTot > avail:
		f.Log.warnf("fcs: $TOT=%d but the DATA segment holds only %d events",
			lay.declaredTot, avail)
	}

	n := nAll
	if f.state.maxEvents >= 0 && int64(f.state.maxEvents) < n {
		n = int64(f.state.maxEvents)
	}

	masks := make([]uint64, lay.nPar)
	for i, w := range lay.widths {
		masks[i] = rangeMask(lay.ranges[i], uint(8*w))
	}

	tbl := table.New(tableKind(lay, masks))
	for i := 0; i < lay.nPar; i++ {
		_, err := tbl.AppendParameter(lay.names[i], lay.longs[i])
		if err != nil {
			return xerrors.Errorf("fcs: could not add parameter %d: %w", i+1, err)
		}
	}
	tbl.Resize(int(n))
	tbl.SetNumOriginalEvents(int(nAll))
	for i := 0; i < lay.nPar; i++ {
		max := lay.ranges[i]
		if max > 0 && lay.datatype == 'I' {
			max-- // channels run 0..$PnR-1
		}
		tbl.SetSpecifiedMinMax(i, 0, max)
	}

	if n > 0 {
		err := f.decodeEvents(r, lay, tbl, masks, int(n), eventWidth)
		if err != nil {
			return err
		}
	}
	tbl.ComputeDataMinMax(-1)

	f.Table = tbl
	return nil
}

// decodeEvents reads n events in chunks and scatters them into tbl.
func (f *File) decodeEvents(r io.ReaderAt, lay layout, tbl *table.Table, masks []uint64, n, eventWidth int) error {
	order := byteOrderOf(lay.big)
	sec := io.NewSectionReader(r, lay.dataBeg, int64(n)*int64(eventWidth))
	buf := make([]byte, eventChunk*eventWidth)

	uniform := true
	for _, w := range lay.widths {
		if w != lay.widths[0] {
			uniform = false
			break
		}
	}

	for ev := 0; ev < n; {
		m := eventChunk
		if n-ev < m {
			m = n - ev
		}
		_, err := io.ReadFull(sec, buf[:m*eventWidth])
		if err != nil {
			return xerrors.Errorf("fcs: could not read DATA segment events [%d,%d): %w",
				ev, ev+m, wrapEOF(err))
		}
		if uniform {
			f.decodeUniform(lay, tbl, masks, buf, ev, m)
		} else {
			f.decodeMixed(lay, tbl, masks, buf, ev, m, order)
		}
		ev += m
	}
	return nil
}

// decodeUniform is the fast path used when all parameters share one
// element width: the per-parameter width lookup drops out of the inner
// loop.
func (f *File) decodeUniform(lay layout, tbl *table.Table, masks []uint64, buf []byte, evBase, m int) {
	var (
		order = byteOrderOf(lay.big)
		w     = lay.widths[0]
		row   = len(lay.widths) * w
	)
	for k := 0; k < m; k++ {
		p := buf[k*row:]
		for i := range lay.widths {
			f.storeValue(lay, tbl, i, evBase+k, rawValue(p[i*w:(i+1)*w], order), masks[i])
		}
	}
}

// decodeMixed handles per-parameter element widths, required for files
// mixing widths and for 3-byte integers, which have no native machine
// width.
func (f *File) decodeMixed(lay layout, tbl *table.Table, masks []uint64, buf []byte, evBase, m int, order binary.ByteOrder) {
	pos := 0
	for k := 0; k < m; k++ {
		for i, w := range lay.widths {
			f.storeValue(lay, tbl, i, evBase+k, rawValue(buf[pos:pos+w], order), masks[i])
			pos += w
		}
	}
}

// storeValue converts one on-disk element into the table. Integer data
// is masked per $PnR to discard over-range high bits; floating-point
// data is reinterpreted bit-for-bit.
func (f *File) storeValue(lay layout, tbl *table.Table, i, ev int, raw, mask uint64) {
	switch lay.datatype {
	case 'F':
		tbl.SetValue(i, ev, float64(math.Float32frombits(uint32(raw))))
	case 'D':
		tbl.SetValue(i, ev, math.Float64frombits(raw))
	default:
		tbl.SetValue(i, ev, float64(raw&mask))
	}
}

// rawValue decodes one unsigned element of 1, 2, 3, 4 or 8 bytes.
func rawValue(p []byte, order binary.ByteOrder) uint64 {
	switch len(p) {
	case 1:
		return uint64(p[0])
	case 2:
		return uint64(order.Uint16(p))
	case 3:
		if order == binary.ByteOrder(binary.BigEndian) {
			return uint64(p[0])<<16 | uint64(p[1])<<8 | uint64(p[2])
		}
		return uint64(p[2])<<16 | uint64(p[1])<<8 | uint64(p[0])
	case 4:
		return uint64(order.Uint32(p))
	default:
		return order.Uint64(p)
	}
}

// tableKind picks the value precision of the decoded table. Integer
// data widens to single precision unless any parameter may exceed 24
// significant bits, the float32 mantissa.
func tableKind(lay layout, masks []uint64) table.Kind {
	switch lay.datatype {
	case 'F':
		return table.Float32
	case 'D':
		return table.Float64
	}
	for i, w := range lay.widths {
		if w == 8 {
			return table.Float64
		}
		if w == 4 && masks[i] > 1<<24-1 {
			return table.Float64
		}
	}
	return table.Float32
}

// rangeMask returns the smallest power-of-two-minus-one mask covering
// the declared range, or the full element mask when the range is
// absent, non-positive, or exceeds the element width.
func rangeMask(r float64, widthBits uint) uint64 {
	full := ^uint64(0) >> (64 - widthBits)
	if r <= 0 || r > float64(full) {
		return full
	}
	if r > float64(uint64(1)<<63) {
		// the covering power of two exceeds uint64; only the full
		// 64-bit mask can hold such a range.
		return full
	}
	n := uint64(math.Ceil(r))
	mask := uint64(1)<<uint(bits.Len64(n-1)) - 1
	if mask > full {
		return full
	}
	return mask
}

// encodeData gathers the table's column-major values into row-major
// output blocks, in little-endian ("1,2,3,4") order.
func encodeData(w io.Writer, tbl table.EventTable) error {
	var (
		nPar = tbl.NumParams()
		n    = tbl.NumEvents()
	)
	width := 4
	if tbl.Kind() == table.Float64 {
		width = 8
	}
	buf := make([]byte, eventChunk*nPar*width)

	for ev := 0; ev < n; {
		m := eventChunk
		if n-ev < m {
			m = n - ev
		}
		pos := 0
		for k := 0; k < m; k++ {
			for i := 0; i < nPar; i++ {
				if tbl.Kind() == table.Float64 {
					binary.LittleEndian.PutUint64(buf[pos:],
						math.Float64bits(tbl.Value(i, ev+k)))
				} else {
					binary.LittleEndian.PutUint32(buf[pos:],
						math.Float32bits(tbl.Float32s(i)[ev+k]))
				}
				pos += width
			}
		}
		_, err := w.Write(buf[:pos])
		if err != nil {
			return xerrors.Errorf("fcs: could not write DATA segment events [%d,%d): %w",
				ev, ev+m, err)
		}
		ev += m
	}
	return nil
}

func byteOrderOf(big bool) binary.ByteOrder {
	if big {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// wrapEOF converts a clean EOF into ErrTruncated: inside the DATA
// segment an early end of file always means truncation.
func wrapEOF(err error) error {
	if xerrors.Is(err, io.EOF) || xerrors.Is(err, io.ErrUnexpectedEOF) {
		return ErrTruncated
	}
	return err
}
