// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tinyvg

import (
	"fmt"

	"golang.org/x/xerrors"
)

// StyleKind is the 2 bit discriminant that selects a Style variant.
type StyleKind uint8

const (
	StyleKindFlat   StyleKind = 0
	StyleKindLinear StyleKind = 1
	StyleKindRadial StyleKind = 2
)

func (k StyleKind) String() string {
	switch k {
	case StyleKindFlat:
		return "flat"
	case StyleKindLinear:
		return "linear"
	case StyleKindRadial:
		return "radial"
	}
	return fmt.Sprintf("StyleKind(%d)", uint8(k))
}

func styleKindFromBits(x uint8) (StyleKind, error) {
	if x > uint8(StyleKindRadial) {
		return 0, xerrors.Errorf("style kind %d: %w", x, errInvalidStyleKind)
	}
	return StyleKind(x), nil
}

// Style is how a shape is filled or stroked. It is one of FlatColor,
// LinearGradient or RadialGradient.
type Style interface {
	Kind() StyleKind
}

// FlatColor paints with a single color from the color table.
type FlatColor struct {
	ColorIndex uint64
}

// LinearGradient paints with a gradient from the ColorIndex0 color at Point0
// to the ColorIndex1 color at Point1.
type LinearGradient struct {
	Point0, Point1           Point
	ColorIndex0, ColorIndex1 uint64
}

// RadialGradient paints with a circular gradient centered at Point0. Its
// radius is the distance from Point0 to Point1.
type RadialGradient struct {
	Point0, Point1           Point
	ColorIndex0, ColorIndex1 uint64
}

func (FlatColor) Kind() StyleKind      { return StyleKindFlat }
func (LinearGradient) Kind() StyleKind { return StyleKindLinear }
func (RadialGradient) Kind() StyleKind { return StyleKindRadial }

func (d *decoder) decodeStyle(k StyleKind) (Style, error) {
	start := d.off
	switch k {
	case StyleKindFlat:
		i, err := d.colorIndex()
		if err != nil {
			return nil, err
		}
		d.print(start, "    flat: color %d\n", i)
		return FlatColor{ColorIndex: i}, nil

	case StyleKindLinear, StyleKindRadial:
		var (
			g   LinearGradient
			err error
		)
		if g.Point0, err = d.point(); err != nil {
			return nil, err
		}
		if g.Point1, err = d.point(); err != nil {
			return nil, err
		}
		if g.ColorIndex0, err = d.colorIndex(); err != nil {
			return nil, err
		}
		if g.ColorIndex1, err = d.colorIndex(); err != nil {
			return nil, err
		}
		d.print(start, "    %v: %g,%g color %d to %g,%g color %d\n", k,
			g.Point0.X, g.Point0.Y, g.ColorIndex0, g.Point1.X, g.Point1.Y, g.ColorIndex1)
		if k == StyleKindRadial {
			return RadialGradient(g), nil
		}
		return g, nil
	}
	return nil, xerrors.Errorf("style kind %d: %w", k, errInvalidStyleKind)
}

func (e *Encoder) encodeStyle(s Style) error {
	switch s := s.(type) {
	case FlatColor:
		return e.colorIndex(s.ColorIndex)
	case LinearGradient:
		return e.gradient(s.Point0, s.Point1, s.ColorIndex0, s.ColorIndex1)
	case RadialGradient:
		return e.gradient(s.Point0, s.Point1, s.ColorIndex0, s.ColorIndex1)
	}
	return xerrors.Errorf("%T: %w", s, errUnknownStyle)
}

func (e *Encoder) gradient(p0, p1 Point, c0, c1 uint64) error {
	if err := e.point(p0); err != nil {
		return err
	}
	if err := e.point(p1); err != nil {
		return err
	}
	if err := e.colorIndex(c0); err != nil {
		return err
	}
	return e.colorIndex(c1)
}

// styleKind returns s's kind, checking that s is one of the known variants.
func styleKind(s Style) (StyleKind, error) {
	switch s.(type) {
	case FlatColor, LinearGradient, RadialGradient:
		return s.Kind(), nil
	}
	return 0, xerrors.Errorf("%T: %w", s, errUnknownStyle)
}
