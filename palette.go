// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tinyvg

import (
	"math"

	"golang.org/x/exp/slices"
)

// Palette accumulates a color table for a Document under construction. Equal
// colors share an index.
//
// The zero value is an empty Palette.
type Palette struct {
	colors []Color
	index  map[Color]uint64
}

// Index returns c's index in the color table, adding c if it is new.
func (p *Palette) Index(c Color) uint64 {
	if i, ok := p.index[c]; ok {
		return i
	}
	if p.index == nil {
		p.index = map[Color]uint64{}
	}
	i := uint64(len(p.colors))
	p.colors = append(p.colors, c)
	p.index[c] = i
	return i
}

// Len returns the number of distinct colors.
func (p *Palette) Len() int { return len(p.colors) }

// Colors returns the color table, in index order.
func (p *Palette) Colors() []Color {
	return slices.Clone(p.colors)
}

// MaxScale returns the largest Header.Scale for which every unit with an
// absolute value of at most maxAbs fits the coordinate range r. It returns
// false if no scale fits.
func MaxScale(r CoordinateRange, maxAbs float64) (scale uint8, ok bool) {
	bits := r.bits()
	if bits == 0 || math.IsNaN(maxAbs) {
		return 0, false
	}
	maxAbs = math.Abs(maxAbs)
	hi := math.Ldexp(1, int(bits-1)) - 1
	for s := maxScale; s >= 0; s-- {
		if math.Round(math.Ldexp(maxAbs, s)) <= hi {
			return uint8(s), true
		}
	}
	return 0, false
}
