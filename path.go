// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tinyvg

import (
	"fmt"

	"golang.org/x/xerrors"
)

// PrimitiveKind is the 3 bit discriminant that selects a Primitive variant.
type PrimitiveKind uint8

const (
	PrimitiveLine            PrimitiveKind = 0
	PrimitiveHorizontalLine  PrimitiveKind = 1
	PrimitiveVerticalLine    PrimitiveKind = 2
	PrimitiveCubicBezier     PrimitiveKind = 3
	PrimitiveArcCircle       PrimitiveKind = 4
	PrimitiveArcEllipse      PrimitiveKind = 5
	PrimitiveClosePath       PrimitiveKind = 6
	PrimitiveQuadraticBezier PrimitiveKind = 7
)

var primitiveNames = [...]string{
	PrimitiveLine:            "line",
	PrimitiveHorizontalLine:  "horiz",
	PrimitiveVerticalLine:    "vert",
	PrimitiveCubicBezier:     "bezier",
	PrimitiveArcCircle:       "arc_circle",
	PrimitiveArcEllipse:      "arc_ellipse",
	PrimitiveClosePath:       "close",
	PrimitiveQuadraticBezier: "quadratic_bezier",
}

func (k PrimitiveKind) String() string {
	if int(k) < len(primitiveNames) {
		return primitiveNames[k]
	}
	return fmt.Sprintf("PrimitiveKind(%d)", uint8(k))
}

// Layout of a primitive's tag byte and of an arc's flags byte.
const (
	primitiveKindMask  = 0x07
	primitiveWidthFlag = 0x10

	arcLargeFlag = 0x01
	arcSweepFlag = 0x02
)

func packPrimitiveTag(k PrimitiveKind, hasLineWidth bool) byte {
	x := uint8(k) & primitiveKindMask
	if hasLineWidth {
		x |= primitiveWidthFlag
	}
	return x
}

func unpackPrimitiveTag(x byte) (k PrimitiveKind, hasLineWidth bool) {
	return PrimitiveKind(x & primitiveKindMask), x&primitiveWidthFlag != 0
}

func packArcFlags(largeArc, sweep bool) byte {
	x := uint8(0)
	if largeArc {
		x |= arcLargeFlag
	}
	if sweep {
		x |= arcSweepFlag
	}
	return x
}

func unpackArcFlags(x byte) (largeArc, sweep bool) {
	return x&arcLargeFlag != 0, x&arcSweepFlag != 0
}

// Primitive is one element of a Segment. It is one of LineTo,
// HorizontalLineTo, VerticalLineTo, CubicBezierTo, QuadraticBezierTo,
// ArcCircleTo, ArcEllipseTo or ClosePath.
//
// Every Primitive may carry a line width. The format records it but gives it
// no further meaning.
type Primitive interface {
	Kind() PrimitiveKind
	Width() (lineWidth float64, ok bool)
}

// LineWidth is an optional line width, embedded in every Primitive.
type LineWidth struct {
	Valid bool
	Value float64
}

// Width returns the line width and whether one is present.
func (w LineWidth) Width() (float64, bool) { return w.Value, w.Valid }

// LineTo is a straight line to To.
type LineTo struct {
	LineWidth
	To Point
}

// HorizontalLineTo is a horizontal line to X.
type HorizontalLineTo struct {
	LineWidth
	X float64
}

// VerticalLineTo is a vertical line to Y.
type VerticalLineTo struct {
	LineWidth
	Y float64
}

// CubicBezierTo is a cubic Bézier curve to To.
type CubicBezierTo struct {
	LineWidth
	Control0, Control1, To Point
}

// QuadraticBezierTo is a quadratic Bézier curve to To.
type QuadraticBezierTo struct {
	LineWidth
	Control, To Point
}

// ArcCircleTo is a circular arc to To.
type ArcCircleTo struct {
	LineWidth
	LargeArc bool
	Sweep    bool
	Radius   float64
	To       Point
}

// ArcEllipseTo is an elliptical arc to To. Rotation is in degrees.
type ArcEllipseTo struct {
	LineWidth
	LargeArc bool
	Sweep    bool
	RadiusX  float64
	RadiusY  float64
	Rotation float64
	To       Point
}

// ClosePath is a straight line back to the start of the segment.
type ClosePath struct {
	LineWidth
}

func (LineTo) Kind() PrimitiveKind            { return PrimitiveLine }
func (HorizontalLineTo) Kind() PrimitiveKind  { return PrimitiveHorizontalLine }
func (VerticalLineTo) Kind() PrimitiveKind    { return PrimitiveVerticalLine }
func (CubicBezierTo) Kind() PrimitiveKind     { return PrimitiveCubicBezier }
func (QuadraticBezierTo) Kind() PrimitiveKind { return PrimitiveQuadraticBezier }
func (ArcCircleTo) Kind() PrimitiveKind       { return PrimitiveArcCircle }
func (ArcEllipseTo) Kind() PrimitiveKind      { return PrimitiveArcEllipse }
func (ClosePath) Kind() PrimitiveKind         { return PrimitiveClosePath }

// Segment is a sub-path: a start point and at least one primitive.
type Segment struct {
	Start      Point
	Primitives []Primitive
}

// Path is a sequence of at least one Segment.
type Path []Segment

// decodePath decodes a path with n segments. The primitive counts of every
// segment come first, before the first segment's start point.
func (d *decoder) decodePath(n int) (Path, error) {
	start := d.off
	lengths := make([]int, n)
	for i := range lengths {
		m, err := d.count()
		if err != nil {
			return nil, err
		}
		lengths[i] = m
	}
	d.print(start, "    %d segment lengths %v\n", n, lengths)

	path := make(Path, n)
	for i, m := range lengths {
		start := d.off
		p, err := d.point()
		if err != nil {
			return nil, err
		}
		d.print(start, "    segment %d: start %g,%g\n", i, p.X, p.Y)
		prims := make([]Primitive, 0, m)
		for ; m > 0; m-- {
			q, err := d.decodePrimitive()
			if err != nil {
				return nil, err
			}
			prims = append(prims, q)
		}
		path[i] = Segment{Start: p, Primitives: prims}
	}
	return path, nil
}

func (d *decoder) decodePrimitive() (Primitive, error) {
	start := d.off
	tag, err := d.byte()
	if err != nil {
		return nil, err
	}
	k, hasLineWidth := unpackPrimitiveTag(tag)
	w := LineWidth{Valid: hasLineWidth}
	if hasLineWidth {
		if w.Value, err = d.unit(); err != nil {
			return nil, err
		}
	}

	var q Primitive
	switch k {
	case PrimitiveLine:
		p := LineTo{LineWidth: w}
		p.To, err = d.point()
		q = p
	case PrimitiveHorizontalLine:
		p := HorizontalLineTo{LineWidth: w}
		p.X, err = d.unit()
		q = p
	case PrimitiveVerticalLine:
		p := VerticalLineTo{LineWidth: w}
		p.Y, err = d.unit()
		q = p
	case PrimitiveCubicBezier:
		p := CubicBezierTo{LineWidth: w}
		err = d.points(&p.Control0, &p.Control1, &p.To)
		q = p
	case PrimitiveQuadraticBezier:
		p := QuadraticBezierTo{LineWidth: w}
		err = d.points(&p.Control, &p.To)
		q = p
	case PrimitiveArcCircle:
		p := ArcCircleTo{LineWidth: w}
		var flags byte
		if flags, err = d.byte(); err != nil {
			break
		}
		p.LargeArc, p.Sweep = unpackArcFlags(flags)
		if p.Radius, err = d.unit(); err != nil {
			break
		}
		p.To, err = d.point()
		q = p
	case PrimitiveArcEllipse:
		p := ArcEllipseTo{LineWidth: w}
		var flags byte
		if flags, err = d.byte(); err != nil {
			break
		}
		p.LargeArc, p.Sweep = unpackArcFlags(flags)
		if err = d.units(&p.RadiusX, &p.RadiusY, &p.Rotation); err != nil {
			break
		}
		p.To, err = d.point()
		q = p
	case PrimitiveClosePath:
		q = ClosePath{LineWidth: w}
	}
	if err != nil {
		return nil, err
	}
	if d.p != nil {
		d.print(start, "      %v%s\n", k, describeWidth(w))
	}
	return q, nil
}

func describeWidth(w LineWidth) string {
	if !w.Valid {
		return ""
	}
	return fmt.Sprintf(" (line width %g)", w.Value)
}

func (e *Encoder) encodePath(path Path) error {
	if len(path) == 0 {
		return errEmptyPath
	}
	for i, s := range path {
		if len(s.Primitives) == 0 {
			return xerrors.Errorf("segment %d: %w", i, errEmptySegment)
		}
		e.buf.encodeVarUint(uint64(len(s.Primitives) - 1))
	}
	for _, s := range path {
		if err := e.point(s.Start); err != nil {
			return err
		}
		for _, q := range s.Primitives {
			if err := e.encodePrimitive(q); err != nil {
				return err
			}
		}
	}
	return nil
}

func (e *Encoder) encodePrimitive(q Primitive) error {
	switch q.(type) {
	case LineTo, HorizontalLineTo, VerticalLineTo, CubicBezierTo,
		QuadraticBezierTo, ArcCircleTo, ArcEllipseTo, ClosePath:
	default:
		return xerrors.Errorf("%T: %w", q, errUnknownPrimitive)
	}

	w, hasLineWidth := q.Width()
	e.buf = append(e.buf, packPrimitiveTag(q.Kind(), hasLineWidth))
	if hasLineWidth {
		if err := e.unit(w); err != nil {
			return err
		}
	}

	switch q := q.(type) {
	case LineTo:
		return e.point(q.To)
	case HorizontalLineTo:
		return e.unit(q.X)
	case VerticalLineTo:
		return e.unit(q.Y)
	case CubicBezierTo:
		return e.points(q.Control0, q.Control1, q.To)
	case QuadraticBezierTo:
		return e.points(q.Control, q.To)
	case ArcCircleTo:
		e.buf = append(e.buf, packArcFlags(q.LargeArc, q.Sweep))
		if err := e.unit(q.Radius); err != nil {
			return err
		}
		return e.point(q.To)
	case ArcEllipseTo:
		e.buf = append(e.buf, packArcFlags(q.LargeArc, q.Sweep))
		if err := e.units(q.RadiusX, q.RadiusY, q.Rotation); err != nil {
			return err
		}
		return e.point(q.To)
	}
	return nil
}
