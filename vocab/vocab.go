// Copyright 2026 The go-flow Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package vocab holds the registry of standard FCS keywords.
//
// The registry is built once, on first use, and is safe for concurrent
// lookups afterwards. Keywords with an embedded parameter index (such
// as $P1N, $P2R) are matched structurally against their template
// ($PnN, $PnR).
package vocab // import "github.com/go-flow/fcs/vocab"

import (
	"errors"
	"strings"
	"sync"

	"golang.org/x/xerrors"
)

// ErrUnknownKeyword reports a keyword with neither an exact nor a
// templated registry match.
var ErrUnknownKeyword = errors.New("unknown keyword")

// Kind describes the expected value type of a keyword.
type Kind uint8

const (
	String Kind = iota + 1
	Integer
	Float
	MultiValue // comma-separated list
)

// Category groups keywords by the aspect of the dataset they describe.
type Category uint8

const (
	Layout      Category = iota + 1 // segment offsets
	Dataset                         // mode, data type, dimensions
	Acquisition                     // dates, times, operators
	Instrument                      // cytometer and its setup
	Parameter                       // per-parameter $Pn_ keys
	Gating                          // gates and regions
	Compensation                    // spillover matrices
	Document                        // comments, triggers
	Plate                           // plate/well bookkeeping
	Specimen                        // sample provenance
	Histogram                       // deprecated histogram modes
	Other
)

// Version is a bitmask of the FCS specification versions that define a
// keyword.
type Version uint8

const (
	FCS10 Version = 1 << iota
	FCS20
	FCS30
	FCS31
)

// AllVersions covers every supported specification version.
const AllVersions = FCS10 | FCS20 | FCS30 | FCS31

// FCS3x covers the 3.0 and 3.1 revisions.
const FCS3x = FCS30 | FCS31

// Flags is a bitset of keyword properties.
type Flags uint16

const (
	Standard     Flags = 1 << iota // defined by the ISAC standard
	Required                       // required in at least one version
	Deprecated                     // removed or discouraged in 3.1
	IsParameter                    // carries a $Pn_ parameter index
	IsGate                         // carries a gate/region index
	HasDate                        // value contains a date or time
	PersonalInfo                   // value may identify the specimen donor
	UserInfo                       // value may identify the operator
)

// Has reports whether all bits of mask are set.
func (f Flags) Has(mask Flags) bool { return f&mask == mask }

// Attributes describes one registry entry. Attributes are immutable
// after registry construction.
type Attributes struct {
	Keyword     string // template; 'n' at IndexOffset when indexed
	Description string
	Category    Category
	Kind        Kind
	Versions    Version
	Flags       Flags
	IndexOffset int // byte offset of the embedded index; 0 when none
}

type registry struct {
	exact     map[string]Attributes
	templates []Attributes
}

var (
	regOnce sync.Once
	reg     *registry
)

func load() *registry {
	regOnce.Do(func() {
		reg = &registry{exact: make(map[string]Attributes)}
		for _, attr := range table() {
			if attr.IndexOffset > 0 {
				reg.templates = append(reg.templates, attr)
				continue
			}
			reg.exact[attr.Keyword] = attr
		}
	})
	return reg
}

// Find returns the attributes of the given keyword, looked up by exact
// match first and by structural template match second. The keyword is
// upper-cased and trimmed before matching. Find wraps
// ErrUnknownKeyword when no entry matches.
func Find(keyword string) (Attributes, error) {
	key := strings.ToUpper(strings.TrimSpace(keyword))
	r := load()
	if attr, ok := r.exact[key]; ok {
		return attr, nil
	}
	for _, attr := range r.templates {
		if matchTemplate(attr, key) {
			return attr, nil
		}
	}
	return Attributes{}, xerrors.Errorf("vocab: %q: %w", keyword, ErrUnknownKeyword)
}

// matchTemplate reports whether key instantiates the indexed template
// attr: the prefix up to the index offset matches, a non-empty run of
// decimal digits follows, and the rest equals the template's suffix.
func matchTemplate(attr Attributes, key string) bool {
	off := attr.IndexOffset
	if len(key) <= off || key[:off] != attr.Keyword[:off] {
		return false
	}
	i := off
	for i < len(key) && key[i] >= '0' && key[i] <= '9' {
		i++
	}
	if i == off {
		return false
	}
	return key[i:] == attr.Keyword[off+1:]
}

// ParameterIndex extracts the first run of decimal digits embedded in
// keyword ("$P12N" gives 12). It returns 0 when the keyword carries no
// digits.
func ParameterIndex(keyword string) int {
	idx := 0
	seen := false
	for i := 0; i < len(keyword); i++ {
		c := keyword[i]
		if c < '0' || c > '9' {
			if seen {
				break
			}
			continue
		}
		seen = true
		idx = idx*10 + int(c-'0')
	}
	if !seen {
		return 0
	}
	return idx
}
