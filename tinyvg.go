// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tinyvg

import (
	"fmt"
)

// Magic is the magic identifier at the start of every TinyVG graphic.
const Magic = "\x72\x56"

// Version is the TinyVG file format version that this package implements.
const Version = 1

// maxScale is the largest valid Header.Scale.
const maxScale = 15

// ColorEncoding is how the colors in the color table are encoded.
type ColorEncoding uint8

const (
	// ColorEncodingRGBA8888 is 4 bytes per color: red, green, blue and
	// alpha.
	ColorEncodingRGBA8888 ColorEncoding = 0
	// ColorEncodingRGB565 is a little-endian uint16 per color: 5 bits of
	// red, 6 bits of green then 5 bits of blue, from the low bits up. Alpha
	// is implicitly 1.
	ColorEncodingRGB565 ColorEncoding = 1
	// ColorEncodingRGBAF32 is 4 little-endian float32 values per color.
	ColorEncodingRGBAF32 ColorEncoding = 2
	// ColorEncodingCustom has no decoding rule and is not supported.
	ColorEncodingCustom ColorEncoding = 3
)

func (c ColorEncoding) String() string {
	switch c {
	case ColorEncodingRGBA8888:
		return "RGBA8888"
	case ColorEncodingRGB565:
		return "RGB565"
	case ColorEncodingRGBAF32:
		return "RGBAF32"
	case ColorEncodingCustom:
		return "Custom"
	}
	return fmt.Sprintf("ColorEncoding(%d)", uint8(c))
}

// CoordinateRange is the width of every geometric field in a graphic.
type CoordinateRange uint8

const (
	// CoordinateRangeDefault encodes units as 16 bit signed integers.
	CoordinateRangeDefault CoordinateRange = 0
	// CoordinateRangeReduced encodes units as 8 bit signed integers.
	CoordinateRangeReduced CoordinateRange = 1
	// CoordinateRangeEnhanced encodes units as 32 bit signed integers.
	CoordinateRangeEnhanced CoordinateRange = 2
)

func (r CoordinateRange) String() string {
	switch r {
	case CoordinateRangeDefault:
		return "default"
	case CoordinateRangeReduced:
		return "reduced"
	case CoordinateRangeEnhanced:
		return "enhanced"
	}
	return fmt.Sprintf("CoordinateRange(%d)", uint8(r))
}

// bits returns the number of bits in a unit or size for r, or 0 if r is not
// a valid coordinate range.
func (r CoordinateRange) bits() uint {
	switch r {
	case CoordinateRangeDefault:
		return 16
	case CoordinateRangeReduced:
		return 8
	case CoordinateRangeEnhanced:
		return 32
	}
	return 0
}

// Header is the fixed part of a TinyVG graphic that precedes the color table.
type Header struct {
	Version uint8

	// Scale is the number of fraction bits in a unit, from 0 to 15.
	Scale uint8

	ColorEncoding   ColorEncoding
	CoordinateRange CoordinateRange

	// Width and Height are the size of the graphic in display units. Zero
	// means unbounded.
	Width  uint32
	Height uint32

	// ColorCount is the number of colors in the color table.
	ColorCount uint64
}

// Color is a color with non-premultiplied channels nominally in the range
// [0, 1].
type Color struct {
	R, G, B, A float32
}

// Point is a point in design space.
type Point struct {
	X, Y float64
}

// Rectangle is an axis-aligned rectangle given by its top-left corner and its
// extent.
type Rectangle struct {
	X, Y, Width, Height float64
}

// Line is a line segment.
type Line struct {
	Start, End Point
}

// Document is a decoded TinyVG graphic.
//
// A Document is not modified by Decode after it is returned, nor by Encode.
type Document struct {
	Header   Header
	Colors   []Color
	Commands []Command
}
