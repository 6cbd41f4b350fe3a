// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package raster draws TinyVG graphics onto raster images.
package raster

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/exp/tinyvg"
	"golang.org/x/exp/tinyvg/internal/gradient"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/vector"
	"golang.org/x/xerrors"
)

var (
	errColorIndexOutOfRange = errors.New("raster: color index out of range")
	errUnknownCommand       = errors.New("raster: unknown command")
	errUnknownStyle         = errors.New("raster: unknown style")
)

// Rasterizer draws a TinyVG graphic onto a raster image.
//
// The zero value is usable, in that it has no raster image to draw onto, so
// that calling Draw is a no-op (other than checking the Document's styles).
// Call SetDstImage to change the raster image, before calling Draw or between
// calls to Draw.
//
// Shapes are filled with the non-zero winding rule. Lines are stroked with
// round joins and round caps. The optional line widths of path primitives
// are ignored.
type Rasterizer struct {
	z vector.Rasterizer
	f flattener

	dst    draw.Image
	r      image.Rectangle
	drawOp draw.Op

	// scaleX and scaleY transform the Document's width by height rectangle to
	// the (0, 0) - (r.Dx(), r.Dy()) rectangle.
	scaleX float64
	scaleY float64

	doc       *tinyvg.Document
	firstDraw bool

	gradient gradient.Gradient
}

// SetDstImage sets the Rasterizer to draw onto a destination image, given by
// dst and r, with the given compositing operator. The operator applies to
// the first shape drawn by each call to Draw. Later shapes are composited
// over it.
//
// The graphic is scaled in the X and Y dimensions to fit the rectangle r. The
// scaling factors may differ in the two dimensions. A graphic whose width or
// height is zero is not scaled in that dimension.
func (z *Rasterizer) SetDstImage(dst draw.Image, r image.Rectangle, drawOp draw.Op) {
	z.dst = dst
	if r.Empty() {
		r = image.Rectangle{}
	}
	z.r = r
	z.drawOp = drawOp
}

// Draw draws doc. TextHint commands draw nothing.
func (z *Rasterizer) Draw(doc *tinyvg.Document) error {
	z.doc = doc
	z.firstDraw = true
	z.recalcTransform()
	for i, c := range doc.Commands {
		if err := z.command(c); err != nil {
			return xerrors.Errorf("raster: command %d (%T): %w", i, c, err)
		}
	}
	return nil
}

func (z *Rasterizer) recalcTransform() {
	z.scaleX, z.scaleY = 1, 1
	if w := z.doc.Header.Width; w != 0 {
		z.scaleX = float64(z.r.Dx()) / float64(w)
	}
	if h := z.doc.Header.Height; h != 0 {
		z.scaleY = float64(z.r.Dy()) / float64(h)
	}
}

func (z *Rasterizer) abs(p tinyvg.Point) (x, y float32) {
	return float32(p.X * z.scaleX), float32(p.Y * z.scaleY)
}

// lineWidth converts a line width to pixels.
func (z *Rasterizer) lineWidth(w float64) float32 {
	return float32(w * math.Sqrt(z.scaleX*z.scaleY))
}

func (z *Rasterizer) command(c tinyvg.Command) error {
	switch c := c.(type) {
	case tinyvg.FillPolygon:
		return z.fill(c.Style, func() { z.polygon(z.clamped(), c.Points) })
	case tinyvg.FillRectangles:
		return z.fill(c.Style, func() { z.rectangles(z.clamped(), c.Rectangles) })
	case tinyvg.FillPath:
		return z.fill(c.Style, func() { z.path(z.clamped(), c.Path, true) })

	case tinyvg.DrawLines:
		return z.stroke(c.Style, c.LineWidth, func() { z.lines(&z.f, c.Lines) })
	case tinyvg.DrawLineLoop:
		return z.stroke(c.Style, c.LineWidth, func() { z.polyline(&z.f, c.Points, true) })
	case tinyvg.DrawLineStrip:
		return z.stroke(c.Style, c.LineWidth, func() { z.polyline(&z.f, c.Points, false) })
	case tinyvg.DrawLinePath:
		return z.stroke(c.Style, c.LineWidth, func() { z.path(&z.f, c.Path, false) })

	case tinyvg.OutlineFillPolygon:
		if err := z.fill(c.FillStyle, func() { z.polygon(z.clamped(), c.Points) }); err != nil {
			return err
		}
		return z.stroke(c.LineStyle, c.LineWidth, func() { z.polyline(&z.f, c.Points, true) })
	case tinyvg.OutlineFillRectangles:
		if err := z.fill(c.FillStyle, func() { z.rectangles(z.clamped(), c.Rectangles) }); err != nil {
			return err
		}
		return z.stroke(c.LineStyle, c.LineWidth, func() { z.rectangles(&z.f, c.Rectangles) })
	case tinyvg.OutlineFillPath:
		if err := z.fill(c.FillStyle, func() { z.path(z.clamped(), c.Path, true) }); err != nil {
			return err
		}
		return z.stroke(c.LineStyle, c.LineWidth, func() { z.path(&z.f, c.Path, false) })

	case tinyvg.TextHint:
		return nil
	}
	return errUnknownCommand
}

// fill draws the shapes that trace adds to z.z.
func (z *Rasterizer) fill(s tinyvg.Style, trace func()) error {
	src, err := z.paint(s)
	if err != nil {
		return err
	}
	z.z.Reset(z.r.Dx(), z.r.Dy())
	trace()
	z.draw(src)
	return nil
}

// stroke draws lines of the given width along the polylines that trace adds
// to z.f.
func (z *Rasterizer) stroke(s tinyvg.Style, lineWidth float64, trace func()) error {
	src, err := z.paint(s)
	if err != nil {
		return err
	}
	z.f.reset()
	trace()
	z.f.finish()
	w := z.lineWidth(lineWidth)
	if !(w > 0) {
		return nil
	}
	z.z.Reset(z.r.Dx(), z.r.Dy())
	strokePolylines(z.clamped(), z.f.polylines, w/2)
	z.draw(src)
	return nil
}

func (z *Rasterizer) draw(src image.Image) {
	if z.dst == nil {
		return
	}
	z.z.DrawOp = draw.Over
	if z.firstDraw {
		z.firstDraw = false
		z.z.DrawOp = z.drawOp
	}
	z.z.Draw(z.dst, z.r, src, image.Point{})
}

// paint returns the image that s paints with. Gradients are defined in the
// Document's coordinate space, which is mapped from pixel space by the
// inverse of the scale transform.
func (z *Rasterizer) paint(s tinyvg.Style) (image.Image, error) {
	pix2Dsg := f64.Aff3{
		1 / z.scaleX, 0, 0,
		0, 1 / z.scaleY, 0,
	}
	switch s := s.(type) {
	case tinyvg.FlatColor:
		c, err := z.color(s.ColorIndex)
		if err != nil {
			return nil, err
		}
		return image.NewUniform(c), nil

	case tinyvg.LinearGradient:
		c0, c1, err := z.colors(s.ColorIndex0, s.ColorIndex1)
		if err != nil {
			return nil, err
		}
		z.gradient.InitLinear(s.Point0.X, s.Point0.Y, s.Point1.X, s.Point1.Y, pix2Dsg, c0, c1)
		return &z.gradient, nil

	case tinyvg.RadialGradient:
		c0, c1, err := z.colors(s.ColorIndex0, s.ColorIndex1)
		if err != nil {
			return nil, err
		}
		r := math.Hypot(s.Point1.X-s.Point0.X, s.Point1.Y-s.Point0.Y)
		z.gradient.InitRadial(s.Point0.X, s.Point0.Y, r, pix2Dsg, c0, c1)
		return &z.gradient, nil
	}
	return nil, errUnknownStyle
}

func (z *Rasterizer) colors(i0, i1 uint64) (c0, c1 color.RGBA64, err error) {
	if c0, err = z.color(i0); err != nil {
		return c0, c1, err
	}
	c1, err = z.color(i1)
	return c0, c1, err
}

func (z *Rasterizer) color(i uint64) (color.RGBA64, error) {
	if i >= uint64(len(z.doc.Colors)) {
		return color.RGBA64{}, xerrors.Errorf("index %d, %d colors: %w", i, len(z.doc.Colors), errColorIndexOutOfRange)
	}
	return RGBA64(z.doc.Colors[i]), nil
}

// RGBA64 converts c to an alpha-premultiplied color. Channels are clamped to
// the range [0, 1].
func RGBA64(c tinyvg.Color) color.RGBA64 {
	a := clamp(c.A)
	return color.RGBA64{
		R: uint16(clamp(c.R)*a*0xffff + 0.5),
		G: uint16(clamp(c.G)*a*0xffff + 0.5),
		B: uint16(clamp(c.B)*a*0xffff + 0.5),
		A: uint16(a*0xffff + 0.5),
	}
}

func clamp(x float32) float32 {
	if !(x > 0) {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
