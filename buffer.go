// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tinyvg

import (
	"encoding/binary"
	"math"
)

// maxVarUintLen is the most bytes that a uint64 takes as a VarUInt.
const maxVarUintLen = 10

// buffer holds an encoded TinyVG graphic.
//
// The decodeXxx methods return the decoded value and an integer n, the number
// of bytes that value was encoded in. They return n == 0 if the buffer ends
// before the value does.
//
// The encodeXxx methods append to the buffer, modifying the slice in place.
type buffer []byte

// decodeVarUint decodes 7 bits per byte, least significant group first, with
// the high bit set on every byte but the last. It returns n < 0 if the value
// takes more than maxLen bytes or does not fit in a uint64.
func (b buffer) decodeVarUint(maxLen int) (u uint64, n int) {
	shift := uint(0)
	for i, x := range b {
		if i == maxLen || (shift == 63 && x > 1) {
			return 0, -1
		}
		u |= uint64(x&0x7f) << shift
		if x&0x80 == 0 {
			return u, i + 1
		}
		shift += 7
	}
	return 0, 0
}

func (b *buffer) encodeVarUint(u uint64) {
	for u >= 0x80 {
		*b = append(*b, uint8(u)|0x80)
		u >>= 7
	}
	*b = append(*b, uint8(u))
}

// decodeSize decodes an unsigned integer whose width is given by r.
func (b buffer) decodeSize(r CoordinateRange) (u uint32, n int) {
	switch r {
	case CoordinateRangeReduced:
		if len(b) >= 1 {
			return uint32(b[0]), 1
		}
	case CoordinateRangeDefault:
		if len(b) >= 2 {
			return uint32(binary.LittleEndian.Uint16(b)), 2
		}
	case CoordinateRangeEnhanced:
		if len(b) >= 4 {
			return binary.LittleEndian.Uint32(b), 4
		}
	}
	return 0, 0
}

// encodeSize returns false, leaving b unchanged, if u does not fit the width
// given by r.
func (b *buffer) encodeSize(r CoordinateRange, u uint32) bool {
	bits := r.bits()
	if bits == 0 || (bits < 32 && u >= 1<<bits) {
		return false
	}
	switch bits {
	case 8:
		*b = append(*b, uint8(u))
	case 16:
		*b = binary.LittleEndian.AppendUint16(*b, uint16(u))
	default:
		*b = binary.LittleEndian.AppendUint32(*b, u)
	}
	return true
}

// decodeUnit decodes a signed integer whose width is given by r and divides
// it by 2**scale.
func (b buffer) decodeUnit(r CoordinateRange, scale uint8) (f float64, n int) {
	var i int32
	switch r {
	case CoordinateRangeReduced:
		if len(b) < 1 {
			return 0, 0
		}
		i, n = int32(int8(b[0])), 1
	case CoordinateRangeDefault:
		if len(b) < 2 {
			return 0, 0
		}
		i, n = int32(int16(binary.LittleEndian.Uint16(b))), 2
	case CoordinateRangeEnhanced:
		if len(b) < 4 {
			return 0, 0
		}
		i, n = int32(binary.LittleEndian.Uint32(b)), 4
	default:
		return 0, 0
	}
	return math.Ldexp(float64(i), -int(scale)), n
}

// encodeUnit multiplies f by 2**scale, rounds to the nearest integer (halves
// away from zero) and appends that integer with the width given by r. It
// returns false, leaving b unchanged, if the integer does not fit.
func (b *buffer) encodeUnit(r CoordinateRange, scale uint8, f float64) bool {
	bits := r.bits()
	if bits == 0 {
		return false
	}
	v := math.Round(math.Ldexp(f, int(scale)))
	lo, hi := -math.Ldexp(1, int(bits-1)), math.Ldexp(1, int(bits-1))-1
	if !(lo <= v && v <= hi) {
		return false
	}
	i := int32(v)
	switch bits {
	case 8:
		*b = append(*b, uint8(i))
	case 16:
		*b = binary.LittleEndian.AppendUint16(*b, uint16(i))
	default:
		*b = binary.LittleEndian.AppendUint32(*b, uint32(i))
	}
	return true
}

func (b buffer) decodeColor(e ColorEncoding) (c Color, n int) {
	switch e {
	case ColorEncodingRGBA8888:
		if len(b) < 4 {
			return Color{}, 0
		}
		return Color{
			R: float32(b[0]) / 255,
			G: float32(b[1]) / 255,
			B: float32(b[2]) / 255,
			A: float32(b[3]) / 255,
		}, 4
	case ColorEncodingRGB565:
		if len(b) < 2 {
			return Color{}, 0
		}
		u := binary.LittleEndian.Uint16(b)
		return Color{
			R: float32(u&0x1f) / 31,
			G: float32((u>>5)&0x3f) / 63,
			B: float32((u>>11)&0x1f) / 31,
			A: 1,
		}, 2
	case ColorEncodingRGBAF32:
		if len(b) < 16 {
			return Color{}, 0
		}
		return Color{
			R: math.Float32frombits(binary.LittleEndian.Uint32(b[0:])),
			G: math.Float32frombits(binary.LittleEndian.Uint32(b[4:])),
			B: math.Float32frombits(binary.LittleEndian.Uint32(b[8:])),
			A: math.Float32frombits(binary.LittleEndian.Uint32(b[12:])),
		}, 16
	}
	return Color{}, 0
}

// colorSize returns the number of bytes per color in e, or 0 if e has no
// decoding rule.
func colorSize(e ColorEncoding) int {
	switch e {
	case ColorEncodingRGBA8888:
		return 4
	case ColorEncodingRGB565:
		return 2
	case ColorEncodingRGBAF32:
		return 16
	}
	return 0
}

func (b *buffer) encodeColorF32(c Color) {
	*b = binary.LittleEndian.AppendUint32(*b, math.Float32bits(c.R))
	*b = binary.LittleEndian.AppendUint32(*b, math.Float32bits(c.G))
	*b = binary.LittleEndian.AppendUint32(*b, math.Float32bits(c.B))
	*b = binary.LittleEndian.AppendUint32(*b, math.Float32bits(c.A))
}
