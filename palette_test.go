// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tinyvg

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPalette(t *testing.T) {
	var p Palette
	black, white := Color{0, 0, 0, 1}, Color{1, 1, 1, 1}
	for i, tc := range []struct {
		c    Color
		want uint64
	}{
		{black, 0},
		{white, 1},
		{black, 0},
		{Color{0, 0, 0, 0.5}, 2},
		{white, 1},
	} {
		if got := p.Index(tc.c); got != tc.want {
			t.Errorf("%d: Index(%v): got %d, want %d", i, tc.c, got, tc.want)
		}
	}
	if got, want := p.Len(), 3; got != want {
		t.Errorf("Len: got %d, want %d", got, want)
	}

	colors := p.Colors()
	want := []Color{black, white, {0, 0, 0, 0.5}}
	if diff := cmp.Diff(want, colors); diff != "" {
		t.Errorf("Colors mismatch (-want +got):\n%s", diff)
	}
	colors[0] = white
	if got := p.Index(black); got != 0 {
		t.Errorf("after modifying Colors: Index(black): got %d, want 0", got)
	}
}

func TestMaxScale(t *testing.T) {
	testCases := []struct {
		r      CoordinateRange
		maxAbs float64
		want   uint8
		wantOK bool
	}{
		{CoordinateRangeDefault, 0, 15, true},
		{CoordinateRangeDefault, 0.5, 15, true},
		{CoordinateRangeDefault, 1, 14, true},
		{CoordinateRangeDefault, 100, 8, true},
		{CoordinateRangeDefault, -100, 8, true},
		{CoordinateRangeDefault, 32767, 0, true},
		{CoordinateRangeDefault, 32768, 0, false},
		{CoordinateRangeReduced, 127, 0, true},
		{CoordinateRangeReduced, 200, 0, false},
		{CoordinateRangeReduced, 7.9, 4, true},
		{CoordinateRangeEnhanced, 65535, 15, true},
		{CoordinateRangeEnhanced, 1 << 20, 10, true},
		{CoordinateRangeDefault, math.NaN(), 0, false},
		{CoordinateRangeDefault, math.Inf(+1), 0, false},
		{CoordinateRange(3), 1, 0, false},
	}
	for _, tc := range testCases {
		got, ok := MaxScale(tc.r, tc.maxAbs)
		if got != tc.want || ok != tc.wantOK {
			t.Errorf("%v %v: got %d, %t, want %d, %t", tc.r, tc.maxAbs, got, ok, tc.want, tc.wantOK)
		}
		if !ok {
			continue
		}
		var b buffer
		if !b.encodeUnit(tc.r, got, tc.maxAbs) {
			t.Errorf("%v %v: does not fit scale %d", tc.r, tc.maxAbs, got)
		}
	}
}
