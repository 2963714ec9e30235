// Copyright 2026 The go-flow Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build unix

package fcs

import "github.com/go-flow/fcs/internal/mmap"

// LoadFile loads the named FCS file into f. The file is memory-mapped
// when possible, so decoding a large DATA segment reads straight from
// the page cache.
func (f *File) LoadFile(name string, opts ...Option) error {
	h, err := mmap.Map(name)
	if err != nil {
		return f.loadFileReader(name, opts...)
	}
	defer h.Close()
	return f.Load(h, int64(h.Len()), opts...)
}
