// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tinyvg

import (
	"math"
	"testing"
)

var varUintTestCases = []struct {
	in    buffer
	want  uint64
	wantN int
}{{
	buffer{},
	0,
	0,
}, {
	buffer{0x00},
	0,
	1,
}, {
	buffer{0x7f},
	127,
	1,
}, {
	buffer{0x80, 0x01},
	128,
	2,
}, {
	buffer{0xac, 0x02},
	300,
	2,
}, {
	buffer{0x80, 0x80, 0x01},
	16384,
	3,
}, {
	buffer{0x80},
	0,
	0,
}, {
	buffer{0x80, 0x80},
	0,
	0,
}, {
	buffer{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x01},
	math.MaxUint64,
	10,
}, {
	buffer{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x02},
	0,
	-1,
}, {
	buffer{0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x00},
	0,
	-1,
}}

func TestDecodeVarUint(t *testing.T) {
	for _, tc := range varUintTestCases {
		got, gotN := tc.in.decodeVarUint(maxVarUintLen)
		if got != tc.want || gotN != tc.wantN {
			t.Errorf("in=% x: got %v, %d, want %v, %d", tc.in, got, gotN, tc.want, tc.wantN)
		}
	}
}

func TestEncodeVarUint(t *testing.T) {
	for _, tc := range varUintTestCases {
		if tc.wantN <= 0 {
			continue
		}
		var b buffer
		b.encodeVarUint(tc.want)
		if got, want := string(b), string(tc.in); got != want {
			t.Errorf("value=%v:\ngot  % x\nwant % x", tc.want, got, want)
		}
	}
}

func TestVarUintRoundTrip(t *testing.T) {
	var values []uint64
	for shift := uint(0); shift < 64; shift++ {
		v := uint64(1) << shift
		values = append(values, v-1, v, v+1)
	}
	values = append(values, math.MaxUint64)

	for _, v := range values {
		var b buffer
		b.encodeVarUint(v)
		got, n := b.decodeVarUint(maxVarUintLen)
		if got != v || n != len(b) {
			t.Errorf("value=%d: got %d, %d, want %d, %d", v, got, n, v, len(b))
		}
	}
}

func TestDecodeVarUintMaxLen(t *testing.T) {
	b := buffer{0x80, 0x80, 0x01}
	if _, n := b.decodeVarUint(2); n >= 0 {
		t.Errorf("maxLen=2: got n=%d, want < 0", n)
	}
	if got, n := b.decodeVarUint(3); got != 16384 || n != 3 {
		t.Errorf("maxLen=3: got %d, %d, want 16384, 3", got, n)
	}
}

var unitTestCases = []struct {
	r     CoordinateRange
	scale uint8
	in    buffer
	want  float64
}{
	{CoordinateRangeDefault, 4, buffer{0xc8, 0x00}, 12.5},
	{CoordinateRangeDefault, 0, buffer{0x00, 0x80}, -32768},
	{CoordinateRangeDefault, 0, buffer{0xff, 0x7f}, 32767},
	{CoordinateRangeDefault, 15, buffer{0x00, 0xc0}, -0.5},
	{CoordinateRangeReduced, 0, buffer{0xff}, -1},
	{CoordinateRangeReduced, 1, buffer{0x7f}, 63.5},
	{CoordinateRangeReduced, 2, buffer{0x80}, -32},
	{CoordinateRangeEnhanced, 8, buffer{0x00, 0x01, 0x00, 0x00}, 1},
	{CoordinateRangeEnhanced, 0, buffer{0x00, 0x00, 0x00, 0x80}, math.MinInt32},
	{CoordinateRangeEnhanced, 3, buffer{0xfc, 0xff, 0xff, 0xff}, -0.5},
}

func TestDecodeUnit(t *testing.T) {
	for _, tc := range unitTestCases {
		got, n := tc.in.decodeUnit(tc.r, tc.scale)
		if got != tc.want || n != len(tc.in) {
			t.Errorf("%v scale=%d in=% x: got %v, %d, want %v, %d", tc.r, tc.scale, tc.in, got, n, tc.want, len(tc.in))
		}
		if _, n := tc.in[:len(tc.in)-1].decodeUnit(tc.r, tc.scale); n != 0 {
			t.Errorf("%v scale=%d in=% x truncated: got n=%d, want 0", tc.r, tc.scale, tc.in, n)
		}
	}
}

func TestEncodeUnit(t *testing.T) {
	for _, tc := range unitTestCases {
		var b buffer
		if !b.encodeUnit(tc.r, tc.scale, tc.want) {
			t.Errorf("%v scale=%d value=%v: failed", tc.r, tc.scale, tc.want)
			continue
		}
		if got, want := string(b), string(tc.in); got != want {
			t.Errorf("%v scale=%d value=%v:\ngot  % x\nwant % x", tc.r, tc.scale, tc.want, got, want)
		}
	}
}

func TestEncodeUnitRounding(t *testing.T) {
	testCases := []struct {
		r     CoordinateRange
		scale uint8
		in    float64
		want  buffer // nil means out of range.
	}{
		{CoordinateRangeReduced, 0, 200, nil},
		{CoordinateRangeReduced, 0, 127.4, buffer{0x7f}},
		{CoordinateRangeReduced, 0, 127.5, nil},
		{CoordinateRangeReduced, 0, -128.4, buffer{0x80}},
		{CoordinateRangeReduced, 0, -128.5, nil},
		{CoordinateRangeReduced, 0, 0.5, buffer{0x01}},
		{CoordinateRangeReduced, 0, -0.5, buffer{0xff}},
		{CoordinateRangeReduced, 0, 2.49, buffer{0x02}},
		{CoordinateRangeReduced, 4, 8, nil},
		{CoordinateRangeDefault, 0, 32768, nil},
		{CoordinateRangeDefault, 4, 0.03125, buffer{0x01, 0x00}},
		{CoordinateRangeEnhanced, 0, 1 << 31, nil},
		{CoordinateRangeEnhanced, 0, -1 << 31, buffer{0x00, 0x00, 0x00, 0x80}},
		{CoordinateRangeDefault, 0, math.NaN(), nil},
		{CoordinateRangeDefault, 0, math.Inf(+1), nil},
		{CoordinateRangeDefault, 0, math.Inf(-1), nil},
		{CoordinateRange(3), 0, 0, nil},
	}
	for _, tc := range testCases {
		var b buffer
		ok := b.encodeUnit(tc.r, tc.scale, tc.in)
		if ok != (tc.want != nil) {
			t.Errorf("%v scale=%d value=%v: got ok=%t, want %t", tc.r, tc.scale, tc.in, ok, tc.want != nil)
			continue
		}
		if !ok {
			if len(b) != 0 {
				t.Errorf("%v scale=%d value=%v: wrote % x on failure", tc.r, tc.scale, tc.in, b)
			}
			continue
		}
		if got, want := string(b), string(tc.want); got != want {
			t.Errorf("%v scale=%d value=%v:\ngot  % x\nwant % x", tc.r, tc.scale, tc.in, got, want)
		}
	}
}

func TestSize(t *testing.T) {
	testCases := []struct {
		r    CoordinateRange
		u    uint32
		want buffer // nil means out of range.
	}{
		{CoordinateRangeReduced, 0, buffer{0x00}},
		{CoordinateRangeReduced, 255, buffer{0xff}},
		{CoordinateRangeReduced, 256, nil},
		{CoordinateRangeDefault, 48, buffer{0x30, 0x00}},
		{CoordinateRangeDefault, 65535, buffer{0xff, 0xff}},
		{CoordinateRangeDefault, 65536, nil},
		{CoordinateRangeEnhanced, 65536, buffer{0x00, 0x00, 0x01, 0x00}},
		{CoordinateRangeEnhanced, math.MaxUint32, buffer{0xff, 0xff, 0xff, 0xff}},
	}
	for _, tc := range testCases {
		var b buffer
		ok := b.encodeSize(tc.r, tc.u)
		if ok != (tc.want != nil) {
			t.Errorf("%v %d: got ok=%t, want %t", tc.r, tc.u, ok, tc.want != nil)
			continue
		}
		if !ok {
			continue
		}
		if got, want := string(b), string(tc.want); got != want {
			t.Errorf("%v %d:\ngot  % x\nwant % x", tc.r, tc.u, got, want)
		}
		if got, n := b.decodeSize(tc.r); got != tc.u || n != len(b) {
			t.Errorf("%v % x: got %d, %d, want %d, %d", tc.r, b, got, n, tc.u, len(b))
		}
	}
}

func TestDecodeColor(t *testing.T) {
	testCases := []struct {
		e    ColorEncoding
		in   buffer
		want Color
	}{
		{ColorEncodingRGB565, buffer{0xe0, 0x07}, Color{0, 1, 0, 1}},
		{ColorEncodingRGB565, buffer{0x1f, 0x00}, Color{1, 0, 0, 1}},
		{ColorEncodingRGB565, buffer{0x00, 0xf8}, Color{0, 0, 1, 1}},
		{ColorEncodingRGB565, buffer{0x00, 0x00}, Color{0, 0, 0, 1}},
		{ColorEncodingRGBA8888, buffer{0xff, 0x00, 0x00, 0x80}, Color{1, 0, 0, float32(128) / 255}},
		{ColorEncodingRGBA8888, buffer{0x00, 0xff, 0x33, 0xff}, Color{0, 1, 0.2, 1}},
		{ColorEncodingRGBAF32, buffer{
			0x00, 0x00, 0x80, 0x3e,
			0x00, 0x00, 0x00, 0x3f,
			0x00, 0x00, 0x40, 0x3f,
			0x00, 0x00, 0x80, 0x3f,
		}, Color{0.25, 0.5, 0.75, 1}},
	}
	for _, tc := range testCases {
		got, n := tc.in.decodeColor(tc.e)
		if got != tc.want || n != len(tc.in) || n != colorSize(tc.e) {
			t.Errorf("%v % x: got %v, %d, want %v, %d", tc.e, tc.in, got, n, tc.want, len(tc.in))
		}
		if _, n := tc.in[:len(tc.in)-1].decodeColor(tc.e); n != 0 {
			t.Errorf("%v % x truncated: got n=%d, want 0", tc.e, tc.in, n)
		}
		if tc.e == ColorEncodingRGBAF32 {
			var b buffer
			b.encodeColorF32(tc.want)
			if got, want := string(b), string(tc.in); got != want {
				t.Errorf("encode %v:\ngot  % x\nwant % x", tc.want, got, want)
			}
		}
	}

	if _, n := (buffer{0, 0, 0, 0}).decodeColor(ColorEncodingCustom); n != 0 {
		t.Errorf("custom: got n=%d, want 0", n)
	}
}
