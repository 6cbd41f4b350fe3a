// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tinyvg

import (
	"fmt"
	"io"
	"unicode/utf8"

	"golang.org/x/xerrors"
)

// CommandType is the 6 bit command index in a command's tag byte.
type CommandType uint8

const (
	CommandEndOfDocument         CommandType = 0
	CommandFillPolygon           CommandType = 1
	CommandFillRectangles        CommandType = 2
	CommandFillPath              CommandType = 3
	CommandDrawLines             CommandType = 4
	CommandDrawLineLoop          CommandType = 5
	CommandDrawLineStrip         CommandType = 6
	CommandDrawLinePath          CommandType = 7
	CommandOutlineFillPolygon    CommandType = 8
	CommandOutlineFillRectangles CommandType = 9
	CommandOutlineFillPath       CommandType = 10
	CommandTextHint              CommandType = 11
)

var commandNames = [...]string{
	CommandEndOfDocument:         "end_of_document",
	CommandFillPolygon:           "fill_polygon",
	CommandFillRectangles:        "fill_rectangles",
	CommandFillPath:              "fill_path",
	CommandDrawLines:             "draw_lines",
	CommandDrawLineLoop:          "draw_line_loop",
	CommandDrawLineStrip:         "draw_line_strip",
	CommandDrawLinePath:          "draw_line_path",
	CommandOutlineFillPolygon:    "outline_fill_polygon",
	CommandOutlineFillRectangles: "outline_fill_rectangles",
	CommandOutlineFillPath:       "outline_fill_path",
	CommandTextHint:              "text_hint",
}

func (t CommandType) String() string {
	if int(t) < len(commandNames) {
		return commandNames[t]
	}
	return fmt.Sprintf("CommandType(%d)", uint8(t))
}

// Layout of a command's tag byte, and of the extra byte that the outline fill
// commands use for their item count and line style.
const (
	tagIndexMask  = 0x3f
	tagStyleShift = 6

	// maxPackedCount is the largest count that fits the 6 bit field, which
	// holds count-1.
	maxPackedCount = tagIndexMask + 1
)

func packTag(t CommandType, k StyleKind) byte {
	return uint8(k)<<tagStyleShift | uint8(t)&tagIndexMask
}

func unpackTag(x byte) (t CommandType, styleBits uint8) {
	return CommandType(x & tagIndexMask), x >> tagStyleShift
}

func packCountStyle(count int, k StyleKind) (byte, error) {
	if count < 1 || count > maxPackedCount {
		return 0, xerrors.Errorf("%d items, want 1 to %d: %w", count, maxPackedCount, errCountOutOfRange)
	}
	return uint8(k)<<tagStyleShift | uint8(count-1), nil
}

func unpackCountStyle(x byte) (count int, styleBits uint8) {
	return int(x&tagIndexMask) + 1, x >> tagStyleShift
}

// Command is one draw command of a Document. It is one of FillPolygon,
// FillRectangles, FillPath, DrawLines, DrawLineLoop, DrawLineStrip,
// DrawLinePath, OutlineFillPolygon, OutlineFillRectangles, OutlineFillPath or
// TextHint.
//
// The end of document command is implicit: it is never part of a Document.
type Command interface {
	Type() CommandType
}

// FillPolygon fills a polygon.
type FillPolygon struct {
	Style  Style
	Points []Point
}

// FillRectangles fills a set of rectangles.
type FillRectangles struct {
	Style      Style
	Rectangles []Rectangle
}

// FillPath fills a path.
type FillPath struct {
	Style Style
	Path  Path
}

// DrawLines draws a set of independent lines.
type DrawLines struct {
	Style     Style
	LineWidth float64
	Lines     []Line
}

// DrawLineLoop draws the outline of a polygon.
type DrawLineLoop struct {
	Style     Style
	LineWidth float64
	Points    []Point
}

// DrawLineStrip draws connected lines through the points.
type DrawLineStrip struct {
	Style     Style
	LineWidth float64
	Points    []Point
}

// DrawLinePath draws the outline of a path.
type DrawLinePath struct {
	Style     Style
	LineWidth float64
	Path      Path
}

// OutlineFillPolygon fills a polygon and then draws its outline. It has at
// most 64 points.
type OutlineFillPolygon struct {
	FillStyle Style
	LineStyle Style
	LineWidth float64
	Points    []Point
}

// OutlineFillRectangles fills rectangles and then draws their outlines. It has
// at most 64 rectangles.
type OutlineFillRectangles struct {
	FillStyle  Style
	LineStyle  Style
	LineWidth  float64
	Rectangles []Rectangle
}

// OutlineFillPath fills a path and then draws its outline. The path has at
// most 64 segments.
type OutlineFillPath struct {
	FillStyle Style
	LineStyle Style
	LineWidth float64
	Path      Path
}

// TextHint is accessibility metadata describing text that the graphic
// depicts. It has no effect on the rendered graphic.
type TextHint struct {
	// Center is the center of the descender line of the text.
	Center Point
	// Rotation is in degrees.
	Rotation float64
	// Height is the distance from the ascender line to the descender line.
	Height float64
	Text   string
	// Glyphs holds, for each glyph, its start and end offset along the
	// descender line from Center.
	Glyphs []Glyph
}

// Glyph is the extent of one glyph of a TextHint.
type Glyph struct {
	Start, End float64
}

func (FillPolygon) Type() CommandType           { return CommandFillPolygon }
func (FillRectangles) Type() CommandType        { return CommandFillRectangles }
func (FillPath) Type() CommandType              { return CommandFillPath }
func (DrawLines) Type() CommandType             { return CommandDrawLines }
func (DrawLineLoop) Type() CommandType          { return CommandDrawLineLoop }
func (DrawLineStrip) Type() CommandType         { return CommandDrawLineStrip }
func (DrawLinePath) Type() CommandType          { return CommandDrawLinePath }
func (OutlineFillPolygon) Type() CommandType    { return CommandOutlineFillPolygon }
func (OutlineFillRectangles) Type() CommandType { return CommandOutlineFillRectangles }
func (OutlineFillPath) Type() CommandType       { return CommandOutlineFillPath }
func (TextHint) Type() CommandType              { return CommandTextHint }

// decodeCommand decodes the payload that follows a command's tag byte.
func (d *decoder) decodeCommand(t CommandType, styleBits uint8) (Command, error) {
	if t == CommandTextHint {
		return d.decodeTextHint()
	}

	k, err := styleKindFromBits(styleBits)
	if err != nil {
		return nil, err
	}

	switch t {
	case CommandOutlineFillPolygon, CommandOutlineFillRectangles, CommandOutlineFillPath:
		return d.decodeOutlineFill(t, k)
	}

	start := d.off
	n, err := d.count()
	if err != nil {
		return nil, err
	}
	d.print(start, "    %d items\n", n)
	s, err := d.decodeStyle(k)
	if err != nil {
		return nil, err
	}

	var lineWidth float64
	switch t {
	case CommandDrawLines, CommandDrawLineLoop, CommandDrawLineStrip, CommandDrawLinePath:
		if lineWidth, err = d.lineWidth(); err != nil {
			return nil, err
		}
	}

	switch t {
	case CommandFillPolygon:
		c := FillPolygon{Style: s}
		c.Points, err = d.pointList(n)
		return c, err
	case CommandFillRectangles:
		c := FillRectangles{Style: s}
		c.Rectangles, err = d.rectangles(n)
		return c, err
	case CommandFillPath:
		c := FillPath{Style: s}
		c.Path, err = d.decodePath(n)
		return c, err
	case CommandDrawLines:
		c := DrawLines{Style: s, LineWidth: lineWidth}
		c.Lines, err = d.lines(n)
		return c, err
	case CommandDrawLineLoop:
		c := DrawLineLoop{Style: s, LineWidth: lineWidth}
		c.Points, err = d.pointList(n)
		return c, err
	case CommandDrawLineStrip:
		c := DrawLineStrip{Style: s, LineWidth: lineWidth}
		c.Points, err = d.pointList(n)
		return c, err
	case CommandDrawLinePath:
		c := DrawLinePath{Style: s, LineWidth: lineWidth}
		c.Path, err = d.decodePath(n)
		return c, err
	}
	return nil, xerrors.Errorf("index %d: %w", uint8(t), errInvalidCommandIndex)
}

func (d *decoder) decodeOutlineFill(t CommandType, fillKind StyleKind) (Command, error) {
	start := d.off
	x, err := d.byte()
	if err != nil {
		return nil, err
	}
	n, lineBits := unpackCountStyle(x)
	lineKind, err := styleKindFromBits(lineBits)
	if err != nil {
		return nil, err
	}
	d.print(start, "    %d items, line style %v\n", n, lineKind)

	fill, err := d.decodeStyle(fillKind)
	if err != nil {
		return nil, err
	}
	line, err := d.decodeStyle(lineKind)
	if err != nil {
		return nil, err
	}
	lineWidth, err := d.lineWidth()
	if err != nil {
		return nil, err
	}

	switch t {
	case CommandOutlineFillPolygon:
		c := OutlineFillPolygon{FillStyle: fill, LineStyle: line, LineWidth: lineWidth}
		c.Points, err = d.pointList(n)
		return c, err
	case CommandOutlineFillRectangles:
		c := OutlineFillRectangles{FillStyle: fill, LineStyle: line, LineWidth: lineWidth}
		c.Rectangles, err = d.rectangles(n)
		return c, err
	}
	c := OutlineFillPath{FillStyle: fill, LineStyle: line, LineWidth: lineWidth}
	c.Path, err = d.decodePath(n)
	return c, err
}

func (d *decoder) decodeTextHint() (Command, error) {
	var (
		c   TextHint
		err error
	)
	start := d.off
	if c.Center, err = d.point(); err != nil {
		return nil, err
	}
	if err = d.units(&c.Rotation, &c.Height); err != nil {
		return nil, err
	}
	d.print(start, "    center %g,%g rotation %g height %g\n", c.Center.X, c.Center.Y, c.Rotation, c.Height)

	start = d.off
	length, err := d.varUint()
	if err != nil {
		return nil, err
	}
	if length > uint64(len(d.src)-d.off) {
		return nil, io.ErrUnexpectedEOF
	}
	text := d.src[d.off : d.off+int(length)]
	d.off += int(length)
	if !utf8.Valid(text) {
		return nil, errInvalidUTF8
	}
	c.Text = string(text)
	d.print(start, "    text %q\n", c.Text)

	start = d.off
	n, err := d.varUint()
	if err != nil {
		return nil, err
	}
	if n > uint64(len(d.src)-d.off) {
		return nil, io.ErrUnexpectedEOF
	}
	d.print(start, "    %d glyphs\n", n)
	c.Glyphs = make([]Glyph, 0, n)
	for ; n > 0; n-- {
		var g Glyph
		if err := d.units(&g.Start, &g.End); err != nil {
			return nil, err
		}
		c.Glyphs = append(c.Glyphs, g)
	}
	return c, nil
}

func (d *decoder) lineWidth() (float64, error) {
	start := d.off
	w, err := d.unit()
	if err != nil {
		return 0, err
	}
	d.print(start, "    line width %g\n", w)
	return w, nil
}

func (d *decoder) pointList(n int) ([]Point, error) {
	points := make([]Point, n)
	for i := range points {
		start := d.off
		p, err := d.point()
		if err != nil {
			return nil, err
		}
		d.print(start, "      %g,%g\n", p.X, p.Y)
		points[i] = p
	}
	return points, nil
}

func (d *decoder) rectangles(n int) ([]Rectangle, error) {
	rects := make([]Rectangle, n)
	for i := range rects {
		start := d.off
		r := &rects[i]
		if err := d.units(&r.X, &r.Y, &r.Width, &r.Height); err != nil {
			return nil, err
		}
		d.print(start, "      %g,%g %gx%g\n", r.X, r.Y, r.Width, r.Height)
	}
	return rects, nil
}

func (d *decoder) lines(n int) ([]Line, error) {
	lines := make([]Line, n)
	for i := range lines {
		start := d.off
		l := &lines[i]
		if err := d.points(&l.Start, &l.End); err != nil {
			return nil, err
		}
		d.print(start, "      %g,%g to %g,%g\n", l.Start.X, l.Start.Y, l.End.X, l.End.Y)
	}
	return lines, nil
}

// encodeCommand appends c's tag byte and payload.
func (e *Encoder) encodeCommand(c Command) error {
	switch c := c.(type) {
	case FillPolygon:
		return e.simple(c.Type(), c.Style, len(c.Points), nil, func() error { return e.pointList(c.Points) })
	case FillRectangles:
		return e.simple(c.Type(), c.Style, len(c.Rectangles), nil, func() error { return e.rectangles(c.Rectangles) })
	case FillPath:
		return e.simple(c.Type(), c.Style, len(c.Path), nil, func() error { return e.encodePath(c.Path) })
	case DrawLines:
		return e.simple(c.Type(), c.Style, len(c.Lines), &c.LineWidth, func() error { return e.lines(c.Lines) })
	case DrawLineLoop:
		return e.simple(c.Type(), c.Style, len(c.Points), &c.LineWidth, func() error { return e.pointList(c.Points) })
	case DrawLineStrip:
		return e.simple(c.Type(), c.Style, len(c.Points), &c.LineWidth, func() error { return e.pointList(c.Points) })
	case DrawLinePath:
		return e.simple(c.Type(), c.Style, len(c.Path), &c.LineWidth, func() error { return e.encodePath(c.Path) })
	case OutlineFillPolygon:
		return e.outlineFill(c.Type(), c.FillStyle, c.LineStyle, c.LineWidth, len(c.Points), func() error { return e.pointList(c.Points) })
	case OutlineFillRectangles:
		return e.outlineFill(c.Type(), c.FillStyle, c.LineStyle, c.LineWidth, len(c.Rectangles), func() error { return e.rectangles(c.Rectangles) })
	case OutlineFillPath:
		return e.outlineFill(c.Type(), c.FillStyle, c.LineStyle, c.LineWidth, len(c.Path), func() error { return e.encodePath(c.Path) })
	case TextHint:
		return e.textHint(c)
	}
	return xerrors.Errorf("%T: %w", c, errUnknownCommand)
}

// simple encodes the commands that have a single style: the tag, the item
// count less one, the style, an optional line width and then the items.
func (e *Encoder) simple(t CommandType, s Style, n int, lineWidth *float64, items func() error) error {
	k, err := styleKind(s)
	if err != nil {
		return err
	}
	if n < 1 {
		if t == CommandFillPath || t == CommandDrawLinePath {
			return errEmptyPath
		}
		return xerrors.Errorf("%v with no items: %w", t, errCountOutOfRange)
	}
	e.buf = append(e.buf, packTag(t, k))
	e.buf.encodeVarUint(uint64(n - 1))
	if err := e.encodeStyle(s); err != nil {
		return err
	}
	if lineWidth != nil {
		if err := e.unit(*lineWidth); err != nil {
			return err
		}
	}
	return items()
}

func (e *Encoder) outlineFill(t CommandType, fill, line Style, lineWidth float64, n int, items func() error) error {
	fillKind, err := styleKind(fill)
	if err != nil {
		return err
	}
	lineKind, err := styleKind(line)
	if err != nil {
		return err
	}
	if n < 1 && t == CommandOutlineFillPath {
		return errEmptyPath
	}
	x, err := packCountStyle(n, lineKind)
	if err != nil {
		return err
	}
	e.buf = append(e.buf, packTag(t, fillKind), x)
	if err := e.encodeStyle(fill); err != nil {
		return err
	}
	if err := e.encodeStyle(line); err != nil {
		return err
	}
	if err := e.unit(lineWidth); err != nil {
		return err
	}
	return items()
}

func (e *Encoder) textHint(c TextHint) error {
	if !utf8.ValidString(c.Text) {
		return errInvalidUTF8
	}
	e.buf = append(e.buf, packTag(CommandTextHint, StyleKindFlat))
	if err := e.point(c.Center); err != nil {
		return err
	}
	if err := e.units(c.Rotation, c.Height); err != nil {
		return err
	}
	e.buf.encodeVarUint(uint64(len(c.Text)))
	e.buf = append(e.buf, c.Text...)
	e.buf.encodeVarUint(uint64(len(c.Glyphs)))
	for _, g := range c.Glyphs {
		if err := e.units(g.Start, g.End); err != nil {
			return err
		}
	}
	return nil
}

func (e *Encoder) pointList(points []Point) error {
	return e.points(points...)
}

func (e *Encoder) rectangles(rects []Rectangle) error {
	for _, r := range rects {
		if err := e.units(r.X, r.Y, r.Width, r.Height); err != nil {
			return err
		}
	}
	return nil
}

func (e *Encoder) lines(lines []Line) error {
	for _, l := range lines {
		if err := e.points(l.Start, l.End); err != nil {
			return err
		}
	}
	return nil
}
