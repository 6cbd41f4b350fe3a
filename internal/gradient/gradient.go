// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gradient provides two color linear and radial gradient images.
package gradient

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/math/f64"
)

// Shape is the gradient shape.
type Shape uint8

const (
	ShapeLinear Shape = iota
	ShapeRadial
)

// Gradient is a very large image.Image (the same size as an image.Uniform)
// whose colors blend from C0 to C1.
//
// Offsets outside of the [0, 1] range map to the colors that 0 and 1 would
// map to.
type Gradient struct {
	Shape Shape

	// Pix2Grad transforms coordinates from pixel space (the arguments to the
	// Image.At method) to gradient space. Gradient space is where a linear
	// gradient ranges from x == 0 to x == 1, and a radial gradient has center
	// (0, 0) and radius 1.
	//
	// For a linear gradient, the bottom row is ignored.
	Pix2Grad f64.Aff3

	// C0 and C1 are the colors at offsets 0 and 1.
	C0, C1 color.RGBA64
}

// InitLinear initializes g to a linear gradient from c0 at (x0, y0) to c1 at
// (x1, y1). Those points are in a source space that pix2Src maps pixel space
// to.
//
// If the two points coincide, every pixel is c0.
func (g *Gradient) InitLinear(x0, y0, x1, y1 float64, pix2Src f64.Aff3, c0, c1 color.RGBA64) {
	g.Shape = ShapeLinear
	g.C0, g.C1 = c0, c1

	dx, dy := x1-x0, y1-y0
	d2 := dx*dx + dy*dy
	if d2 == 0 {
		g.Pix2Grad = f64.Aff3{}
		return
	}
	g.Pix2Grad = Mul(f64.Aff3{
		dx / d2, dy / d2, -(x0*dx + y0*dy) / d2,
		0, 0, 0,
	}, pix2Src)
}

// InitRadial initializes g to a radial gradient from c0 at (cx, cy) to c1 at
// distance r from it. That center and radius are in a source space that
// pix2Src maps pixel space to.
//
// If r is zero, every pixel is c1.
func (g *Gradient) InitRadial(cx, cy, r float64, pix2Src f64.Aff3, c0, c1 color.RGBA64) {
	g.Shape = ShapeRadial
	g.C0, g.C1 = c0, c1

	if r == 0 {
		g.Pix2Grad = f64.Aff3{0, 0, 1, 0, 0, 0}
		return
	}
	g.Pix2Grad = Mul(f64.Aff3{
		1 / r, 0, -cx / r,
		0, 1 / r, -cy / r,
	}, pix2Src)
}

// Mul returns the affine transform that applies b and then a.
func Mul(a, b f64.Aff3) f64.Aff3 {
	return f64.Aff3{
		a[0]*b[0] + a[1]*b[3],
		a[0]*b[1] + a[1]*b[4],
		a[0]*b[2] + a[1]*b[5] + a[2],
		a[3]*b[0] + a[4]*b[3],
		a[3]*b[1] + a[4]*b[4],
		a[3]*b[2] + a[4]*b[5] + a[5],
	}
}

// ColorModel satisfies the image.Image interface.
func (g *Gradient) ColorModel() color.Model {
	return color.RGBA64Model
}

// Bounds satisfies the image.Image interface.
func (g *Gradient) Bounds() image.Rectangle {
	return image.Rectangle{
		Min: image.Point{-1e9, -1e9},
		Max: image.Point{+1e9, +1e9},
	}
}

// At satisfies the image.Image interface.
func (g *Gradient) At(x, y int) color.Color {
	px := float64(x) + 0.5
	py := float64(y) + 0.5

	offset := 0.0
	if g.Shape == ShapeLinear {
		offset = g.Pix2Grad[0]*px + g.Pix2Grad[1]*py + g.Pix2Grad[2]
	} else {
		gx := g.Pix2Grad[0]*px + g.Pix2Grad[1]*py + g.Pix2Grad[2]
		gy := g.Pix2Grad[3]*px + g.Pix2Grad[4]*py + g.Pix2Grad[5]
		offset = math.Sqrt(gx*gx + gy*gy)
	}
	if !(offset > 0) {
		return g.C0
	}
	if offset >= 1 {
		return g.C1
	}
	return color.RGBA64{
		lerp(g.C0.R, g.C1.R, offset),
		lerp(g.C0.G, g.C1.G, offset),
		lerp(g.C0.B, g.C1.B, offset),
		lerp(g.C0.A, g.C1.A, offset),
	}
}

func lerp(a, b uint16, t float64) uint16 {
	return uint16(float64(a) + t*(float64(b)-float64(a)))
}
