// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tinyvg

import (
	"golang.org/x/exp/slog"
	"golang.org/x/xerrors"
)

type mode uint8

const (
	modeInitial mode = iota
	modeColorTable
	modeCommands
	modeDone
)

// EncodeOptions are the optional parameters to the Encode function.
type EncodeOptions struct {
	// Logger, if non-nil, receives a Debug record for each command.
	Logger *slog.Logger
}

// Encode encodes a TinyVG graphic.
//
// The encoded color count is len(doc.Colors), whatever doc.Header.ColorCount
// holds. The color table can only be encoded as ColorEncodingRGBAF32.
func Encode(doc *Document, opts *EncodeOptions) ([]byte, error) {
	var e Encoder
	if opts != nil {
		e.Logger = opts.Logger
	}
	h := doc.Header
	h.ColorCount = uint64(len(doc.Colors))
	e.Reset(h)
	e.SetColors(doc.Colors)
	for _, c := range doc.Commands {
		e.Command(c)
	}
	return e.Bytes()
}

// Encoder is a TinyVG encoder.
//
// Reset must be called first, then SetColors (which may be omitted when the
// header's color count is zero), then Command any number of times. Bytes
// returns the encoded form.
//
// The first error is sticky: once a method fails, later methods do nothing
// and Bytes returns that error. Reset clears it.
type Encoder struct {
	// Logger, if non-nil, receives a Debug record for each command.
	Logger *slog.Logger

	buf  buffer
	h    Header
	err  error
	mode mode
}

// Bytes returns the encoded form, terminated by the end of document command.
//
// The returned slice shares the Encoder's buffer. It is valid until the next
// call to Reset, which reuses that buffer. Calling Bytes again without a Reset
// returns the same bytes.
func (e *Encoder) Bytes() ([]byte, error) {
	if e.err != nil {
		return nil, e.err
	}
	if e.mode == modeInitial {
		return nil, e.fail(KindHeader, xerrors.Errorf("Bytes before Reset: %w", errEncoderState))
	}
	if e.mode != modeDone {
		if !e.startCommands() {
			return nil, e.err
		}
		e.buf = append(e.buf, packTag(CommandEndOfDocument, StyleKindFlat))
		e.mode = modeDone
	}
	return []byte(e.buf), nil
}

// Reset resets the Encoder and writes the header h.
func (e *Encoder) Reset(h Header) {
	*e = Encoder{
		Logger: e.Logger,
		buf:    e.buf[:0],
		h:      h,
		mode:   modeColorTable,
	}
	if err := e.encodeHeader(h); err != nil {
		e.fail(KindHeader, err)
	}
}

// SetColors writes the color table. It must have exactly as many colors as
// the header's ColorCount.
func (e *Encoder) SetColors(colors []Color) {
	if e.err != nil {
		return
	}
	if e.mode != modeColorTable {
		e.fail(KindColorTable, xerrors.Errorf("SetColors in %v state: %w", e.mode, errEncoderState))
		return
	}
	if err := e.encodeColorTable(colors); err != nil {
		e.fail(KindColorTable, err)
		return
	}
	e.mode = modeCommands
}

// Command writes c.
func (e *Encoder) Command(c Command) {
	if e.err != nil || !e.startCommands() {
		return
	}
	start := len(e.buf)
	if err := e.encodeCommand(c); err != nil {
		e.fail(KindCommand, err)
		return
	}
	if e.Logger != nil {
		e.Logger.Debug("tinyvg: encoded command",
			slog.Int("offset", start),
			slog.String("command", c.Type().String()),
			slog.Int("bytes", len(e.buf)-start))
	}
}

// startCommands moves to the command stream, checking that the color table is
// done. It returns false if e has failed.
func (e *Encoder) startCommands() bool {
	switch e.mode {
	case modeInitial:
		e.fail(KindCommand, xerrors.Errorf("Command before Reset: %w", errEncoderState))
	case modeColorTable:
		if e.h.ColorCount != 0 {
			e.fail(KindColorTable, xerrors.Errorf("no color table, header has %d colors: %w", e.h.ColorCount, errColorCountMismatch))
			break
		}
		if err := e.encodeColorTable(nil); err != nil {
			e.fail(KindColorTable, err)
			break
		}
		e.mode = modeCommands
	case modeDone:
		e.fail(KindCommand, xerrors.Errorf("Command after Bytes: %w", errEncoderState))
	}
	return e.err == nil
}

func (e *Encoder) fail(k Kind, err error) error {
	e.err = &Error{Kind: k, Offset: len(e.buf), Err: err}
	return e.err
}

func (e *Encoder) unit(f float64) error {
	if !e.buf.encodeUnit(e.h.CoordinateRange, e.h.Scale, f) {
		return xerrors.Errorf("%g at scale %d in %v range: %w", f, e.h.Scale, e.h.CoordinateRange, errUnitOutOfRange)
	}
	return nil
}

func (e *Encoder) units(fs ...float64) error {
	for _, f := range fs {
		if err := e.unit(f); err != nil {
			return err
		}
	}
	return nil
}

func (e *Encoder) point(p Point) error {
	return e.units(p.X, p.Y)
}

func (e *Encoder) points(ps ...Point) error {
	for _, p := range ps {
		if err := e.point(p); err != nil {
			return err
		}
	}
	return nil
}

func (e *Encoder) colorIndex(i uint64) error {
	if i >= e.h.ColorCount {
		return xerrors.Errorf("color index %d, %d colors: %w", i, e.h.ColorCount, errColorIndexOutOfRange)
	}
	e.buf.encodeVarUint(i)
	return nil
}

func (m mode) String() string {
	switch m {
	case modeInitial:
		return "initial"
	case modeColorTable:
		return "color table"
	case modeCommands:
		return "commands"
	case modeDone:
		return "done"
	}
	return "unknown"
}
