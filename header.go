// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tinyvg

import (
	"bytes"
	"io"

	"golang.org/x/xerrors"
)

// Layout of the header's packed scale, color encoding and coordinate range
// byte.
const (
	sccScaleMask          = 0x0f
	sccColorEncodingShift = 4
	sccRangeShift         = 6
	scc2BitMask           = 0x03
)

func packSCC(scale uint8, e ColorEncoding, r CoordinateRange) byte {
	return scale&sccScaleMask |
		(uint8(e)&scc2BitMask)<<sccColorEncodingShift |
		(uint8(r)&scc2BitMask)<<sccRangeShift
}

func unpackSCC(x byte) (scale uint8, e ColorEncoding, r CoordinateRange, err error) {
	scale = x & sccScaleMask
	e = ColorEncoding((x >> sccColorEncodingShift) & scc2BitMask)
	r = CoordinateRange(x >> sccRangeShift)
	if r.bits() == 0 {
		return 0, 0, 0, xerrors.Errorf("coordinate range %d: %w", uint8(r), errInvalidCoordinateRange)
	}
	return scale, e, r, nil
}

func (d *decoder) decodeHeader() error {
	d.kind = KindHeader
	if !bytes.HasPrefix(d.src, []byte(Magic)) {
		if len(d.src) < len(Magic) && bytes.HasPrefix([]byte(Magic), d.src) {
			return io.ErrUnexpectedEOF
		}
		return errBadMagic
	}
	d.off = len(Magic)
	d.print(0, "TinyVG magic identifier\n")

	start := d.off
	version, err := d.byte()
	if err != nil {
		return err
	}
	d.h.Version = version
	d.print(start, "Version: %d\n", version)

	start = d.off
	x, err := d.byte()
	if err != nil {
		return err
	}
	if d.h.Scale, d.h.ColorEncoding, d.h.CoordinateRange, err = unpackSCC(x); err != nil {
		return err
	}
	d.print(start, "Scale %d, color encoding %v, coordinate range %v\n",
		d.h.Scale, d.h.ColorEncoding, d.h.CoordinateRange)

	start = d.off
	if d.h.Width, err = d.size(); err != nil {
		return err
	}
	if d.h.Height, err = d.size(); err != nil {
		return err
	}
	d.print(start, "Size: %d x %d\n", d.h.Width, d.h.Height)

	start = d.off
	if d.h.ColorCount, err = d.varUint(); err != nil {
		return err
	}
	d.print(start, "Color count: %d\n", d.h.ColorCount)
	return nil
}

func (d *decoder) size() (uint32, error) {
	u, n := d.src[d.off:].decodeSize(d.h.CoordinateRange)
	if n == 0 {
		return 0, io.ErrUnexpectedEOF
	}
	d.off += n
	return u, nil
}

func (d *decoder) decodeColorTable() ([]Color, error) {
	d.kind = KindColorTable
	n := d.h.ColorCount
	if d.maxColors > 0 && n > d.maxColors {
		return nil, xerrors.Errorf("%d colors, limit %d: %w", n, d.maxColors, errTooManyColors)
	}
	size := colorSize(d.h.ColorEncoding)
	if size == 0 {
		return nil, xerrors.Errorf("%v: %w", d.h.ColorEncoding, errUnsupportedColorEncoding)
	}
	if n > uint64(len(d.src)-d.off)/uint64(size) {
		return nil, io.ErrUnexpectedEOF
	}

	colors := make([]Color, n)
	for i := range colors {
		start := d.off
		c, m := d.src[d.off:].decodeColor(d.h.ColorEncoding)
		d.off += m
		d.print(start, "Color %d: %.4g %.4g %.4g %.4g\n", i, c.R, c.G, c.B, c.A)
		colors[i] = c
	}
	return colors, nil
}

// checkHeader reports whether h can be encoded.
func checkHeader(h Header) error {
	if h.Scale > maxScale {
		return xerrors.Errorf("scale %d: %w", h.Scale, errInvalidScale)
	}
	if h.CoordinateRange.bits() == 0 {
		return xerrors.Errorf("coordinate range %d: %w", uint8(h.CoordinateRange), errInvalidCoordinateRange)
	}
	if h.ColorEncoding > ColorEncodingCustom {
		return xerrors.Errorf("color encoding %d: %w", uint8(h.ColorEncoding), errUnsupportedColorEncoding)
	}
	return nil
}

func (e *Encoder) encodeHeader(h Header) error {
	if err := checkHeader(h); err != nil {
		return err
	}
	e.buf = append(e.buf, Magic...)
	e.buf = append(e.buf, h.Version, packSCC(h.Scale, h.ColorEncoding, h.CoordinateRange))
	if !e.buf.encodeSize(h.CoordinateRange, h.Width) || !e.buf.encodeSize(h.CoordinateRange, h.Height) {
		return xerrors.Errorf("%d x %d in %v range: %w", h.Width, h.Height, h.CoordinateRange, errSizeOutOfRange)
	}
	e.buf.encodeVarUint(h.ColorCount)
	return nil
}

func (e *Encoder) encodeColorTable(colors []Color) error {
	if e.h.ColorEncoding != ColorEncodingRGBAF32 {
		return xerrors.Errorf("encoding %v: %w", e.h.ColorEncoding, errUnsupportedColorEncoding)
	}
	if uint64(len(colors)) != e.h.ColorCount {
		return xerrors.Errorf("%d colors, header has %d: %w", len(colors), e.h.ColorCount, errColorCountMismatch)
	}
	for _, c := range colors {
		e.buf.encodeColorF32(c)
	}
	return nil
}
