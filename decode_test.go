// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tinyvg

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

const (
	// hdrRGBA is the header of a 16 x 16 graphic at scale 0, with RGBA8888
	// colors in the default coordinate range, up to but excluding the color
	// count.
	hdrRGBA = Magic + "\x01\x00\x10\x00\x10\x00"

	// hdr1 adds a color table of one opaque red.
	hdr1 = hdrRGBA + "\x01\xff\x00\x00\xff"
)

var header1 = Header{
	Version:         1,
	ColorEncoding:   ColorEncodingRGBA8888,
	CoordinateRange: CoordinateRangeDefault,
	Width:           16,
	Height:          16,
	ColorCount:      1,
}

var red = Color{1, 0, 0, 1}

func kindError(k Kind) error {
	switch k {
	case KindHeader:
		return ErrHeader
	case KindColorTable:
		return ErrColorTable
	}
	return ErrCommand
}

func TestDecode(t *testing.T) {
	testCases := []struct {
		name string
		src  string
		want []Command
	}{{
		name: "empty",
		src:  hdr1 + "\x00",
	}, {
		name: "trailing bytes",
		src:  hdr1 + "\x00\xde\xad",
	}, {
		name: "fill polygon",
		src: hdr1 + "\x01\x02\x00" +
			"\x00\x00\x00\x00" +
			"\x0a\x00\x00\x00" +
			"\x0a\x00\x0a\x00" +
			"\x00",
		want: []Command{
			FillPolygon{
				Style:  FlatColor{ColorIndex: 0},
				Points: []Point{{0, 0}, {10, 0}, {10, 10}},
			},
		},
	}, {
		name: "text hint ignores style bits",
		src: hdr1 + "\xcb" +
			"\x01\x00\x02\x00" +
			"\x00\x00\x0c\x00" +
			"\x02hi" +
			"\x01\x00\x00\x05\x00" +
			"\x00",
		want: []Command{
			TextHint{
				Center: Point{1, 2},
				Height: 12,
				Text:   "hi",
				Glyphs: []Glyph{{0, 5}},
			},
		},
	}, {
		name: "draw line path",
		src: hdr1 + "\x07\x00\x00\x02\x00" +
			"\x02" +
			"\x00\x00\x00\x00" +
			"\x14\x01\x00\x03\x05\x00\x0a\x00\x00\x00" +
			"\x02\x07\x00" +
			"\xe6" +
			"\x00",
		want: []Command{
			DrawLinePath{
				Style:     FlatColor{},
				LineWidth: 2,
				Path: Path{{
					Start: Point{0, 0},
					Primitives: []Primitive{
						ArcCircleTo{
							LineWidth: LineWidth{Valid: true, Value: 1},
							LargeArc:  true,
							Sweep:     true,
							Radius:    5,
							To:        Point{10, 0},
						},
						VerticalLineTo{Y: 7},
						ClosePath{},
					},
				}},
			},
		},
	}, {
		name: "outline fill rectangles",
		src: hdr1 + "\x49\x01" +
			"\x00\x00\x00\x00\x04\x00\x00\x00\x00\x00" +
			"\x00" +
			"\x01\x00" +
			"\x00\x00\x00\x00\x01\x00\x01\x00" +
			"\x02\x00\x02\x00\x03\x00\x03\x00" +
			"\x00",
		want: []Command{
			OutlineFillRectangles{
				FillStyle:  LinearGradient{Point1: Point{4, 0}},
				LineStyle:  FlatColor{},
				LineWidth:  1,
				Rectangles: []Rectangle{{0, 0, 1, 1}, {2, 2, 3, 3}},
			},
		},
	}}

	for _, tc := range testCases {
		got, err := Decode([]byte(tc.src), nil)
		if err != nil {
			t.Errorf("%s: %v", tc.name, err)
			continue
		}
		want := &Document{
			Header:   header1,
			Colors:   []Color{red},
			Commands: tc.want,
		}
		if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
			t.Errorf("%s: mismatch (-want +got):\n%s", tc.name, diff)
		}
	}
}

func TestDecodeErrors(t *testing.T) {
	testCases := []struct {
		name     string
		src      string
		opts     *DecodeOptions
		wantKind Kind
		wantErr  error
	}{
		{"empty", "", nil, KindHeader, io.ErrUnexpectedEOF},
		{"short magic", "\x72", nil, KindHeader, io.ErrUnexpectedEOF},
		{"bad magic", "\x72\x57\x01\x00\x10\x00\x10\x00\x00\x00", nil, KindHeader, errBadMagic},
		{"truncated size", Magic + "\x01\x00\x10", nil, KindHeader, io.ErrUnexpectedEOF},
		{"invalid coordinate range", Magic + "\x01\xc0\x10\x10\x00\x00", nil, KindHeader, errInvalidCoordinateRange},
		{"color count too long", hdrRGBA + strings.Repeat("\x80", 10) + "\x00", nil, KindHeader, errVarUintTooLong},
		{"color count longer than limit", hdrRGBA + "\x80\x00\x00", &DecodeOptions{MaxVarUintLen: 1}, KindHeader, errVarUintTooLong},
		{"custom color encoding", Magic + "\x01\x30\x10\x00\x10\x00\x00\x00", nil, KindColorTable, errUnsupportedColorEncoding},
		{"truncated color table", hdrRGBA + "\x02\xff\x00\x00\xff", nil, KindColorTable, io.ErrUnexpectedEOF},
		{"too many colors", hdrRGBA + "\x02\xff\x00\x00\xff\x00\x00\x00\xff\x00", &DecodeOptions{MaxColors: 1}, KindColorTable, errTooManyColors},
		{"missing end", hdr1, nil, KindCommand, io.ErrUnexpectedEOF},
		{"invalid command index", hdr1 + "\x0c", nil, KindCommand, errInvalidCommandIndex},
		{"end tag with style bits", hdr1 + "\x40", nil, KindCommand, errInvalidEndTag},
		{"invalid style kind", hdr1 + "\xc1\x00\x00\x00\x00\x00\x00", nil, KindCommand, errInvalidStyleKind},
		{"invalid line style kind", hdr1 + "\x08\xc0\x00\x00", nil, KindCommand, errInvalidStyleKind},
		{"color index out of range", hdr1 + "\x01\x00\x01\x00\x00\x00\x00\x00", nil, KindCommand, errColorIndexOutOfRange},
		{"count exceeds input", hdr1 + "\x01\xff\xff\x03\x00", nil, KindCommand, io.ErrUnexpectedEOF},
		{"truncated path", hdr1 + "\x03\x00\x00\x00", nil, KindCommand, io.ErrUnexpectedEOF},
		{"truncated point", hdr1 + "\x01\x00\x00\x00\x00", nil, KindCommand, io.ErrUnexpectedEOF},
		{"invalid UTF-8", hdr1 + "\x0b" + strings.Repeat("\x00", 8) + "\x01\xff\x00\x00", nil, KindCommand, errInvalidUTF8},
		{"truncated text", hdr1 + "\x0b" + strings.Repeat("\x00", 8) + "\x05ab", nil, KindCommand, io.ErrUnexpectedEOF},
	}

	for _, tc := range testCases {
		_, err := Decode([]byte(tc.src), tc.opts)
		if err == nil {
			t.Errorf("%s: got nil error", tc.name)
			continue
		}
		var e *Error
		if !errors.As(err, &e) || e.Kind != tc.wantKind {
			t.Errorf("%s: got %v, want a %v error", tc.name, err, tc.wantKind)
		}
		if !errors.Is(err, kindError(tc.wantKind)) {
			t.Errorf("%s: errors.Is(%v, %v) is false", tc.name, err, kindError(tc.wantKind))
		}
		if !errors.Is(err, tc.wantErr) {
			t.Errorf("%s: got %v, want %v", tc.name, err, tc.wantErr)
		}
	}
}

func TestDecodeBadMagicOffset(t *testing.T) {
	_, err := Decode([]byte("GIF89a"), nil)
	var e *Error
	if !errors.As(err, &e) {
		t.Fatalf("got %v, want an *Error", err)
	}
	if e.Kind != KindHeader || e.Offset != 0 {
		t.Errorf("got kind %v at offset %d, want header at offset 0", e.Kind, e.Offset)
	}
	if errors.Is(err, ErrCommand) || errors.Is(err, ErrColorTable) {
		t.Errorf("%v matches the wrong kind", err)
	}
}

func TestDecodeHeader(t *testing.T) {
	// The color table and commands are not decoded, so need not be present.
	got, err := DecodeHeader([]byte(hdrRGBA + "\x01"))
	if err != nil {
		t.Fatal(err)
	}
	if got != header1 {
		t.Errorf("got %+v, want %+v", got, header1)
	}

	if _, err := DecodeHeader([]byte(hdrRGBA)); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("truncated: got %v, want %v", err, io.ErrUnexpectedEOF)
	}
}

func TestDecodeHeaderAllocs(t *testing.T) {
	small := []byte(hdrRGBA + "\x01")
	large := append([]byte(hdrRGBA+"\x01"), make([]byte, 1<<20)...)
	allocs := func(src []byte) float64 {
		return testing.AllocsPerRun(10, func() {
			if _, err := DecodeHeader(src); err != nil {
				t.Fatal(err)
			}
		})
	}
	if a, b := allocs(small), allocs(large); a != b {
		t.Errorf("allocations grow with input size: %v for %d bytes, %v for %d bytes", a, len(small), b, len(large))
	}
}

func TestDisassemble(t *testing.T) {
	src := Magic + "\x01\x20\x10\x00\x10\x00\x01" +
		strings.Repeat("\x00\x00\x80\x3f", 4) +
		"\x01\x00\x00\x01\x00\x02\x00" +
		"\x00"
	w := new(bytes.Buffer)
	if err := Disassemble(w, []byte(src), nil); err != nil {
		t.Fatal(err)
	}
	got := w.String()

	for _, want := range []string{
		fmt.Sprintf("%-23s  %s\n", "72 56", "TinyVG magic identifier"),
		fmt.Sprintf("%-23s  %s\n", "20", "Scale 0, color encoding RGBAF32, coordinate range default"),
		"00 00 80 3f 00 00 80 3f  Color 0: 1 1 1 1\n00 00 80 3f 00 00 80 3f\n",
		fmt.Sprintf("%-23s  %s\n", "01", "fill_polygon, style flat"),
		fmt.Sprintf("%-23s  %s\n", "01 00 02 00", "      1,2"),
		fmt.Sprintf("%-23s  %s\n", "00", "End of document"),
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output does not contain %q:\n%s", want, got)
		}
	}

	if err := Disassemble(io.Discard, []byte(src[:len(src)-1]), nil); !errors.Is(err, ErrCommand) {
		t.Errorf("truncated: got %v, want %v", err, ErrCommand)
	}
}
