// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package tinyvg implements the TinyVG binary format for vector graphics.

A TinyVG graphic is a header, a color table and then a sequence of draw
commands. Each command fills or strokes some geometry (polygons, rectangles,
lines or paths) with a style: a flat color or a linear or radial gradient
between two colors of the color table.

Decode parses a graphic into a Document and Encode serializes a Document. The
Encoder type writes a graphic piece by piece. This package does not render
graphics; see the raster package for that.


Structure

Every graphic starts with a 2 byte magic identifier, 0x72 0x56, and a version
byte. Then comes one byte that packs three fields: bits 0-3 are the scale,
bits 4-5 the color encoding and bits 6-7 the coordinate range. The width and
height follow, then the number of colors in the color table as a VarUInt.

The color table's encoding is one of RGBA8888 (4 bytes per color), RGB565 (2
bytes per color) or RGBAF32 (16 bytes per color). All three decode to float32
channels. Only RGBAF32 can be encoded.

Each command starts with a tag byte. Bits 0-5 are the command index and bits
6-7 select the kind of the command's style. A zero tag byte ends the graphic.
The outline fill commands have a second style, whose kind is in bits 6-7 of
an extra byte that also holds the number of items, less one, in bits 0-5.


Numbers

A VarUInt is an unsigned integer in 7 bit groups, least significant first,
with the high bit of every byte but the last set. 300 is encoded as the two
bytes 0xac 0x02.

Most counts are stored as a VarUInt holding the count less one, so every
collection has at least one item.

A unit is a coordinate or a length. It is encoded as a little-endian signed
integer whose width is given by the coordinate range: 16 bits by default, 8
bits for the reduced range or 32 bits for the enhanced range. The integer is
the unit's value multiplied by 2**scale. For example, with a scale of 4, the
16 bit integer 200 encodes 12.5. Encoding a unit rounds to the nearest
integer, and fails if that integer is out of range.

The width and height in the header are unsigned integers of the same width.


Paths

A path is a sequence of segments, each a start point followed by primitives:
lines, horizontal and vertical lines, quadratic and cubic Bézier curves,
circular and elliptical arcs, and a close path. The primitive counts of all of
a path's segments are encoded before the first segment.

Each primitive starts with a tag byte. Bits 0-2 are the primitive kind, and
bit 4 is set if a line width follows the tag byte.


Errors

Errors returned by this package are of type *Error, and match one of ErrHeader,
ErrColorTable or ErrCommand according to the part of the graphic that was
being decoded or encoded. Truncated input also matches io.ErrUnexpectedEOF.
*/
package tinyvg // import "golang.org/x/exp/tinyvg"
