// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tinyvg_test

import (
	"fmt"
	"log"

	"golang.org/x/exp/tinyvg"
)

func Example() {
	var palette tinyvg.Palette
	orange := palette.Index(tinyvg.Color{R: 1, G: 0.5, B: 0, A: 1})
	black := palette.Index(tinyvg.Color{R: 0, G: 0, B: 0, A: 1})

	scale, ok := tinyvg.MaxScale(tinyvg.CoordinateRangeDefault, 48)
	if !ok {
		log.Fatal("coordinates do not fit")
	}

	doc := &tinyvg.Document{
		Header: tinyvg.Header{
			Version:         tinyvg.Version,
			Scale:           scale,
			ColorEncoding:   tinyvg.ColorEncodingRGBAF32,
			CoordinateRange: tinyvg.CoordinateRangeDefault,
			Width:           48,
			Height:          48,
		},
		Colors: palette.Colors(),
		Commands: []tinyvg.Command{
			tinyvg.OutlineFillRectangles{
				FillStyle:  tinyvg.FlatColor{ColorIndex: orange},
				LineStyle:  tinyvg.FlatColor{ColorIndex: black},
				LineWidth:  2,
				Rectangles: []tinyvg.Rectangle{{X: 8, Y: 8, Width: 32, Height: 32}},
			},
			tinyvg.TextHint{
				Center: tinyvg.Point{X: 24, Y: 30},
				Height: 12,
				Text:   "Go",
			},
		},
	}

	b, err := tinyvg.Encode(doc, nil)
	if err != nil {
		log.Fatal(err)
	}
	got, err := tinyvg.Decode(b, nil)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("scale %d, %d colors, %d bytes\n", got.Header.Scale, len(got.Colors), len(b))
	for _, c := range got.Commands {
		fmt.Println(c.Type())
	}

	// Output:
	// scale 9, 2 colors, 69 bytes
	// outline_fill_rectangles
	// text_hint
}

func ExampleMaxScale() {
	fmt.Println(tinyvg.MaxScale(tinyvg.CoordinateRangeDefault, 100))
	fmt.Println(tinyvg.MaxScale(tinyvg.CoordinateRangeReduced, 200))
	// Output:
	// 8 true
	// 0 false
}
