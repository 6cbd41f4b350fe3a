// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package raster

import (
	"math"

	"github.com/chewxy/math32"
	"golang.org/x/exp/tinyvg"
)

// pather is implemented by clamper, which feeds the vector.Rasterizer, and by
// *flattener, for stroking. Coordinates are in pixels.
type pather interface {
	MoveTo(ax, ay float32)
	LineTo(bx, by float32)
	QuadTo(bx, by, cx, cy float32)
	CubeTo(bx, by, cx, cy, dx, dy float32)
	ClosePath()
}

// maxCoord bounds the pixel coordinates passed to the vector.Rasterizer,
// whose fixed point arithmetic overflows far beyond the destination.
const maxCoord = 1 << 20

// clamper is a pather that limits every coordinate to [-maxCoord, maxCoord].
// NaN becomes -maxCoord.
type clamper struct {
	p pather
}

// clamped returns the pather that fills and strokes draw through.
func (z *Rasterizer) clamped() pather {
	return clamper{&z.z}
}

func clampCoord(x float32) float32 {
	if !(x > -maxCoord) {
		return -maxCoord
	}
	if x > maxCoord {
		return maxCoord
	}
	return x
}

func (c clamper) MoveTo(ax, ay float32) {
	c.p.MoveTo(clampCoord(ax), clampCoord(ay))
}

func (c clamper) LineTo(bx, by float32) {
	c.p.LineTo(clampCoord(bx), clampCoord(by))
}

func (c clamper) QuadTo(bx, by, cx, cy float32) {
	c.p.QuadTo(clampCoord(bx), clampCoord(by), clampCoord(cx), clampCoord(cy))
}

func (c clamper) CubeTo(bx, by, cx, cy, dx, dy float32) {
	c.p.CubeTo(clampCoord(bx), clampCoord(by), clampCoord(cx), clampCoord(cy), clampCoord(dx), clampCoord(dy))
}

func (c clamper) ClosePath() { c.p.ClosePath() }

func (z *Rasterizer) polygon(p pather, points []tinyvg.Point) {
	z.polyline(p, points, true)
}

func (z *Rasterizer) polyline(p pather, points []tinyvg.Point, closed bool) {
	if len(points) == 0 {
		return
	}
	p.MoveTo(z.abs(points[0]))
	for _, q := range points[1:] {
		p.LineTo(z.abs(q))
	}
	if closed {
		p.ClosePath()
	}
}

func (z *Rasterizer) rectangles(p pather, rects []tinyvg.Rectangle) {
	for _, r := range rects {
		z.polyline(p, []tinyvg.Point{
			{X: r.X, Y: r.Y},
			{X: r.X + r.Width, Y: r.Y},
			{X: r.X + r.Width, Y: r.Y + r.Height},
			{X: r.X, Y: r.Y + r.Height},
		}, true)
	}
}

func (z *Rasterizer) lines(p pather, lines []tinyvg.Line) {
	for _, l := range lines {
		p.MoveTo(z.abs(l.Start))
		p.LineTo(z.abs(l.End))
	}
}

// path traces every segment of path. If closeAll, each segment is closed at
// its end, as filling requires.
func (z *Rasterizer) path(p pather, path tinyvg.Path, closeAll bool) {
	for _, s := range path {
		z.segment(p, s)
		if closeAll {
			p.ClosePath()
		}
	}
}

func (z *Rasterizer) segment(p pather, s tinyvg.Segment) {
	// cur is the current point, in the Document's coordinate space.
	cur := s.Start
	p.MoveTo(z.abs(cur))
	for _, q := range s.Primitives {
		switch q := q.(type) {
		case tinyvg.LineTo:
			cur = q.To
			p.LineTo(z.abs(cur))
		case tinyvg.HorizontalLineTo:
			cur.X = q.X
			p.LineTo(z.abs(cur))
		case tinyvg.VerticalLineTo:
			cur.Y = q.Y
			p.LineTo(z.abs(cur))
		case tinyvg.CubicBezierTo:
			x1, y1 := z.abs(q.Control0)
			x2, y2 := z.abs(q.Control1)
			x, y := z.abs(q.To)
			p.CubeTo(x1, y1, x2, y2, x, y)
			cur = q.To
		case tinyvg.QuadraticBezierTo:
			x1, y1 := z.abs(q.Control)
			x, y := z.abs(q.To)
			p.QuadTo(x1, y1, x, y)
			cur = q.To
		case tinyvg.ArcCircleTo:
			z.arcTo(p, cur, q.Radius, q.Radius, 0, q.LargeArc, q.Sweep, q.To)
			cur = q.To
		case tinyvg.ArcEllipseTo:
			z.arcTo(p, cur, q.RadiusX, q.RadiusY, q.Rotation, q.LargeArc, q.Sweep, q.To)
			cur = q.To
		case tinyvg.ClosePath:
			p.ClosePath()
			cur = s.Start
		}
	}
}

// arcTo approximates an elliptical arc from pen to to by cubic Bézier
// curves. The rotation is in degrees.
//
// It follows the "Conversion from endpoint to center parameterization"
// algorithm of https://www.w3.org/TR/SVG/implnote.html#ArcConversionEndpointToCenter
// working in the Document's coordinate space, since the radii are scaled
// too, and converting to pixels in arcSegmentTo.
func (z *Rasterizer) arcTo(p pather, pen tinyvg.Point, rx, ry, rotation float64, largeArc, sweep bool, to tinyvg.Point) {
	Rx := math.Abs(rx)
	Ry := math.Abs(ry)
	if !(Rx > 0 && Ry > 0) || pen == to {
		p.LineTo(z.abs(to))
		return
	}

	x1, y1 := pen.X, pen.Y
	x2, y2 := to.X, to.Y
	phi := rotation * math.Pi / 180

	// Step 1: Compute (x1′, y1′)
	halfDx := (x1 - x2) / 2
	halfDy := (y1 - y2) / 2
	cosPhi := math.Cos(phi)
	sinPhi := math.Sin(phi)
	x1Prime := +cosPhi*halfDx + sinPhi*halfDy
	y1Prime := -sinPhi*halfDx + cosPhi*halfDy

	// Step 2: Compute (cx′, cy′)
	rxSq := Rx * Rx
	rySq := Ry * Ry
	x1PrimeSq := x1Prime * x1Prime
	y1PrimeSq := y1Prime * y1Prime

	// Scale up radii that are too small to reach.
	radiiCheck := x1PrimeSq/rxSq + y1PrimeSq/rySq
	if radiiCheck > 1 {
		c := math.Sqrt(radiiCheck)
		Rx *= c
		Ry *= c
		rxSq = Rx * Rx
		rySq = Ry * Ry
	}

	denom := rxSq*y1PrimeSq + rySq*x1PrimeSq
	step2 := 0.0
	if a := rxSq*rySq/denom - 1; a > 0 {
		step2 = math.Sqrt(a)
	}
	if largeArc == sweep {
		step2 = -step2
	}
	cxPrime := +step2 * Rx * y1Prime / Ry
	cyPrime := -step2 * Ry * x1Prime / Rx

	// Step 3: Compute (cx, cy) from (cx′, cy′)
	cx := +cosPhi*cxPrime - sinPhi*cyPrime + (x1+x2)/2
	cy := +sinPhi*cxPrime + cosPhi*cyPrime + (y1+y2)/2

	// Step 4: Compute θ1 and Δθ
	ax := (+x1Prime - cxPrime) / Rx
	ay := (+y1Prime - cyPrime) / Ry
	bx := (-x1Prime - cxPrime) / Rx
	by := (-y1Prime - cyPrime) / Ry
	theta1 := angle(1, 0, ax, ay)
	deltaTheta := angle(ax, ay, bx, by)
	if sweep {
		if deltaTheta < 0 {
			deltaTheta += 2 * math.Pi
		}
	} else {
		if deltaTheta > 0 {
			deltaTheta -= 2 * math.Pi
		}
	}

	n := int(math.Ceil(math.Abs(deltaTheta) / (math.Pi/2 + 0.001)))
	for i := 0; i < n; i++ {
		z.arcSegmentTo(p, cx, cy,
			theta1+deltaTheta*float64(i+0)/float64(n),
			theta1+deltaTheta*float64(i+1)/float64(n),
			Rx, Ry, cosPhi, sinPhi,
		)
	}
}

// arcSegmentTo approximates an arc by a cubic Bézier curve. The mathematical
// formulae for the control points are the same as that used by librsvg.
func (z *Rasterizer) arcSegmentTo(p pather, cx, cy, theta1, theta2, rx, ry, cosPhi, sinPhi float64) {
	halfDeltaTheta := (theta2 - theta1) * 0.5
	q := math.Sin(halfDeltaTheta * 0.5)
	t := (8 * q * q) / (3 * math.Sin(halfDeltaTheta))
	cos1 := math.Cos(theta1)
	sin1 := math.Sin(theta1)
	cos2 := math.Cos(theta2)
	sin2 := math.Sin(theta2)
	x1 := rx * (+cos1 - t*sin1)
	y1 := ry * (+sin1 + t*cos1)
	x2 := rx * (+cos2 + t*sin2)
	y2 := ry * (+sin2 - t*cos2)
	x3 := rx * (+cos2)
	y3 := ry * (+sin2)
	bx, by := z.abs(tinyvg.Point{X: cx + cosPhi*x1 - sinPhi*y1, Y: cy + sinPhi*x1 + cosPhi*y1})
	cx2, cy2 := z.abs(tinyvg.Point{X: cx + cosPhi*x2 - sinPhi*y2, Y: cy + sinPhi*x2 + cosPhi*y2})
	dx, dy := z.abs(tinyvg.Point{X: cx + cosPhi*x3 - sinPhi*y3, Y: cy + sinPhi*x3 + cosPhi*y3})
	p.CubeTo(bx, by, cx2, cy2, dx, dy)
}

// angle returns the angle between the u and v vectors.
func angle(ux, uy, vx, vy float64) float64 {
	uNorm := math.Sqrt(ux*ux + uy*uy)
	vNorm := math.Sqrt(vx*vx + vy*vy)
	norm := uNorm * vNorm
	cos := (ux*vx + uy*vy) / norm
	ret := 0.0
	if cos <= -1 {
		ret = math.Pi
	} else if cos >= +1 {
		ret = 0
	} else {
		ret = math.Acos(cos)
	}
	if ux*vy < uy*vx {
		return -ret
	}
	return +ret
}

type point struct {
	x, y float32
}

type polyline struct {
	points []point
	closed bool
}

// flattener is a pather that approximates curves by straight lines,
// collecting polylines for stroking.
type flattener struct {
	polylines []polyline
	cur       []point
	start     point
}

func (f *flattener) reset() {
	f.polylines = f.polylines[:0]
	f.cur = nil
}

// finish ends the current polyline. Polylines with fewer than two points
// are dropped.
func (f *flattener) finish() {
	f.end(false)
}

func (f *flattener) end(closed bool) {
	if len(f.cur) >= 2 {
		f.polylines = append(f.polylines, polyline{points: f.cur, closed: closed})
	}
	f.cur = nil
}

func (f *flattener) pen() point {
	if len(f.cur) == 0 {
		return f.start
	}
	return f.cur[len(f.cur)-1]
}

func (f *flattener) MoveTo(ax, ay float32) {
	f.end(false)
	f.start = point{ax, ay}
	f.cur = append(f.cur, f.start)
}

func (f *flattener) LineTo(bx, by float32) {
	if len(f.cur) == 0 {
		f.cur = append(f.cur, f.start)
	}
	f.cur = append(f.cur, point{bx, by})
}

func (f *flattener) QuadTo(bx, by, cx, cy float32) {
	a := f.pen()
	n := curveSteps(dist(a.x, a.y, bx, by) + dist(bx, by, cx, cy))
	for i := 1; i <= n; i++ {
		t := float32(i) / float32(n)
		s := 1 - t
		f.LineTo(
			s*s*a.x+2*s*t*bx+t*t*cx,
			s*s*a.y+2*s*t*by+t*t*cy,
		)
	}
}

func (f *flattener) CubeTo(bx, by, cx, cy, dx, dy float32) {
	a := f.pen()
	n := curveSteps(dist(a.x, a.y, bx, by) + dist(bx, by, cx, cy) + dist(cx, cy, dx, dy))
	for i := 1; i <= n; i++ {
		t := float32(i) / float32(n)
		s := 1 - t
		f.LineTo(
			s*s*s*a.x+3*s*s*t*bx+3*s*t*t*cx+t*t*t*dx,
			s*s*s*a.y+3*s*s*t*by+3*s*t*t*cy+t*t*t*dy,
		)
	}
}

// ClosePath ends the current polyline as a closed one. Lines that follow
// start again from the start point.
func (f *flattener) ClosePath() {
	f.end(true)
}

func dist(ax, ay, bx, by float32) float32 {
	return math32.Hypot(bx-ax, by-ay)
}

// curveSteps returns how many lines approximate a curve whose control
// polygon is length pixels long.
func curveSteps(length float32) int {
	const maxSteps = 100
	n := int(math32.Ceil(2 * math32.Sqrt(length)))
	if n < 1 {
		return 1
	}
	if n > maxSteps {
		return maxSteps
	}
	return n
}

// kappa is the distance, for a unit circle, from a quarter arc's end points
// to the control points of the cubic Bézier curve that approximates it.
const kappa = 0.5522847498

// strokePolylines adds to p the outline of lines of half width r along each
// polyline. Every piece is wound in the same direction, so that overlapping
// pieces do not cancel out.
func strokePolylines(p pather, polylines []polyline, r float32) {
	for _, l := range polylines {
		pts := l.points
		for i := 0; i+1 < len(pts); i++ {
			strokeLine(p, pts[i], pts[i+1], r)
		}
		if l.closed {
			strokeLine(p, pts[len(pts)-1], pts[0], r)
		}
		for _, c := range pts {
			dot(p, c, r)
		}
	}
}

func strokeLine(p pather, a, b point, r float32) {
	dx, dy := b.x-a.x, b.y-a.y
	l := math32.Hypot(dx, dy)
	if l == 0 {
		return
	}
	nx, ny := -dy/l*r, dx/l*r
	p.MoveTo(a.x+nx, a.y+ny)
	p.LineTo(b.x+nx, b.y+ny)
	p.LineTo(b.x-nx, b.y-ny)
	p.LineTo(a.x-nx, a.y-ny)
	p.ClosePath()
}

// dot adds a circle of radius r centered on c, wound the same way as
// strokeLine's quadrilaterals.
func dot(p pather, c point, r float32) {
	k := kappa * r
	p.MoveTo(c.x+r, c.y)
	p.CubeTo(c.x+r, c.y-k, c.x+k, c.y-r, c.x, c.y-r)
	p.CubeTo(c.x-k, c.y-r, c.x-r, c.y-k, c.x-r, c.y)
	p.CubeTo(c.x-r, c.y+k, c.x-k, c.y+r, c.x, c.y+r)
	p.CubeTo(c.x+k, c.y+r, c.x+r, c.y+k, c.x+r, c.y)
	p.ClosePath()
}
