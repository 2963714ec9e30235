// Copyright 2026 The go-flow Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fcs

import "github.com/go-flow/fcs/vocab"

// Deidentify removes every dictionary entry that may identify the
// specimen donor, the operator, or the acquisition date, plus every
// entry the keyword vocabulary does not recognize (unknown keywords
// are treated as unsafe by default). It returns the number of removed
// entries. Deidentify is idempotent.
func (d *Dict) Deidentify() int {
	const unsafe = vocab.PersonalInfo | vocab.UserInfo | vocab.HasDate

	var doomed []string
	for _, key := range d.keys {
		attr, err := vocab.Find(key)
		if err != nil || attr.Flags&unsafe != 0 {
			doomed = append(doomed, key)
		}
	}
	for _, key := range doomed {
		d.Delete(key)
	}
	return len(doomed)
}
