// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tinyvg

import (
	"io"

	"golang.org/x/exp/slog"
	"golang.org/x/xerrors"
)

type printer func(b []byte, format string, args ...interface{})

// DecodeOptions are the optional parameters to the Decode function.
type DecodeOptions struct {
	// Logger, if non-nil, receives a Debug record for the header, the color
	// table and each command.
	Logger *slog.Logger

	// MaxColors, if positive, is the largest color count that Decode accepts.
	MaxColors uint64

	// MaxVarUintLen, if positive, is the most bytes that Decode accepts for a
	// single variable length integer. The default is 10, enough for any
	// uint64.
	MaxVarUintLen int
}

// DecodeHeader decodes only the header of a TinyVG graphic.
func DecodeHeader(src []byte) (Header, error) {
	doc, err := decode(nil, src, nil, true)
	if err != nil {
		return Header{}, err
	}
	return doc.Header, nil
}

// Decode decodes a TinyVG graphic.
//
// Decoding stops at the end of document command. Any bytes after it are
// ignored.
func Decode(src []byte, opts *DecodeOptions) (*Document, error) {
	return decode(nil, src, opts, false)
}

// decoder is a forward cursor over an encoded graphic.
type decoder struct {
	src  buffer
	off  int
	kind Kind
	h    Header

	maxColors     uint64
	maxVarUintLen int
	log           *slog.Logger
	p             printer
}

func decode(p printer, src []byte, opts *DecodeOptions, headerOnly bool) (*Document, error) {
	d := &decoder{
		src:           src,
		maxVarUintLen: maxVarUintLen,
		p:             p,
	}
	if opts != nil {
		d.log = opts.Logger
		d.maxColors = opts.MaxColors
		if opts.MaxVarUintLen > 0 {
			d.maxVarUintLen = opts.MaxVarUintLen
		}
	}

	if err := d.decodeHeader(); err != nil {
		return nil, d.fail(err)
	}
	doc := &Document{Header: d.h}
	if d.log != nil {
		d.log.Debug("tinyvg: decoded header",
			slog.Int("version", int(d.h.Version)),
			slog.Int("scale", int(d.h.Scale)),
			slog.String("colorEncoding", d.h.ColorEncoding.String()),
			slog.String("coordinateRange", d.h.CoordinateRange.String()),
			slog.Uint64("colorCount", d.h.ColorCount))
	}
	if headerOnly {
		return doc, nil
	}

	colors, err := d.decodeColorTable()
	if err != nil {
		return nil, d.fail(err)
	}
	doc.Colors = colors
	if d.log != nil {
		d.log.Debug("tinyvg: decoded color table", slog.Int("offset", d.off), slog.Int("colors", len(colors)))
	}

	if doc.Commands, err = d.decodeCommands(); err != nil {
		return nil, d.fail(err)
	}
	return doc, nil
}

func (d *decoder) decodeCommands() ([]Command, error) {
	d.kind = KindCommand
	var cmds []Command
	for {
		start := d.off
		tag, err := d.byte()
		if err != nil {
			return nil, err
		}
		t, styleBits := unpackTag(tag)
		if t == CommandEndOfDocument {
			if styleBits != 0 {
				return nil, xerrors.Errorf("tag %#02x: %w", tag, errInvalidEndTag)
			}
			d.print(start, "End of document\n")
			return cmds, nil
		}
		if t > CommandTextHint {
			return nil, xerrors.Errorf("index %d: %w", uint8(t), errInvalidCommandIndex)
		}
		if t == CommandTextHint {
			d.print(start, "%v\n", t)
		} else {
			d.print(start, "%v, style %v\n", t, StyleKind(styleBits))
		}

		c, err := d.decodeCommand(t, styleBits)
		if err != nil {
			return nil, err
		}
		if d.log != nil {
			d.log.Debug("tinyvg: decoded command",
				slog.Int("offset", start),
				slog.String("command", t.String()),
				slog.String("style", StyleKind(styleBits).String()))
		}
		cmds = append(cmds, c)
	}
}

func (d *decoder) fail(err error) error {
	return &Error{Kind: d.kind, Offset: d.off, Err: err}
}

// print passes the bytes from start to the cursor to the printer, if any.
func (d *decoder) print(start int, format string, args ...interface{}) {
	if d.p != nil {
		d.p(d.src[start:d.off], format, args...)
	}
}

func (d *decoder) byte() (byte, error) {
	if d.off >= len(d.src) {
		return 0, io.ErrUnexpectedEOF
	}
	x := d.src[d.off]
	d.off++
	return x, nil
}

func (d *decoder) varUint() (uint64, error) {
	u, n := d.src[d.off:].decodeVarUint(d.maxVarUintLen)
	if n == 0 {
		return 0, io.ErrUnexpectedEOF
	}
	if n < 0 {
		return 0, errVarUintTooLong
	}
	d.off += n
	return u, nil
}

// count decodes a VarUInt holding a count less one. Every counted item takes
// at least one byte, so a count larger than the rest of the source is
// reported as truncation.
func (d *decoder) count() (int, error) {
	u, err := d.varUint()
	if err != nil {
		return 0, err
	}
	if u >= uint64(len(d.src)-d.off) {
		return 0, io.ErrUnexpectedEOF
	}
	return int(u) + 1, nil
}

func (d *decoder) unit() (float64, error) {
	f, n := d.src[d.off:].decodeUnit(d.h.CoordinateRange, d.h.Scale)
	if n == 0 {
		return 0, io.ErrUnexpectedEOF
	}
	d.off += n
	return f, nil
}

func (d *decoder) units(fs ...*float64) (err error) {
	for _, f := range fs {
		if *f, err = d.unit(); err != nil {
			return err
		}
	}
	return nil
}

func (d *decoder) point() (p Point, err error) {
	err = d.units(&p.X, &p.Y)
	return p, err
}

func (d *decoder) points(ps ...*Point) (err error) {
	for _, p := range ps {
		if *p, err = d.point(); err != nil {
			return err
		}
	}
	return nil
}

func (d *decoder) colorIndex() (uint64, error) {
	i, err := d.varUint()
	if err != nil {
		return 0, err
	}
	if i >= d.h.ColorCount {
		return 0, xerrors.Errorf("color index %d, %d colors: %w", i, d.h.ColorCount, errColorIndexOutOfRange)
	}
	return i, nil
}
