// Copyright 2026 The go-flow Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !unix

package fcs

// LoadFile loads the named FCS file into f.
func (f *File) LoadFile(name string, opts ...Option) error {
	return f.loadFileReader(name, opts...)
}
