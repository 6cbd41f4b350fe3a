// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The tvgraster command rasterizes a TinyVG graphic to a PNG image.
//
// Usage:
//
//	tvgraster [-o out.png] [-width w] [-height h] [-ss n] [-maxpixels n] [-v] file.tvg
//
// The image is the graphic's own size unless -width or -height is given. If
// only one of them is, the other keeps the graphic's aspect ratio. The -ss
// flag draws at n times the size and downsamples the result, which smooths
// edges further at some cost. Images of more than -maxpixels pixels, counted
// at the supersampled size, are refused.
//
// The file name "-" reads from stdin, and the -o name "-" writes to stdout.
// Either must then be a pipe.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"
	"log"
	"math"
	"os"

	"github.com/disintegration/imaging"
	"golang.org/x/exp/slog"
	"golang.org/x/exp/tinyvg"
	"golang.org/x/exp/tinyvg/raster"
	"golang.org/x/term"
)

var (
	outFlag       = flag.String("o", "out.png", "output PNG file, or - for stdout")
	widthFlag     = flag.Int("width", 0, "output width in pixels")
	heightFlag    = flag.Int("height", 0, "output height in pixels")
	ssFlag        = flag.Int("ss", 1, "supersampling factor")
	maxPixelsFlag = flag.Int("maxpixels", 1<<26, "largest number of pixels to draw, supersampling included")
	verboseFlag   = flag.Bool("v", false, "log progress to stderr")
)

const (
	pipeName = "-"

	maxSupersample = 16
)

func usage() {
	fmt.Fprintf(os.Stderr, "usage: tvgraster [flags] file.tvg\n")
	flag.PrintDefaults()
	os.Exit(2)
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("tvgraster: ")
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() != 1 {
		usage()
	}

	level := slog.LevelInfo
	if *verboseFlag {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	src, err := readInput(flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}
	doc, err := tinyvg.Decode(src, &tinyvg.DecodeOptions{Logger: logger})
	if err != nil {
		log.Fatal(err)
	}
	w, h, err := outputSize(doc.Header, *widthFlag, *heightFlag, *ssFlag, *maxPixelsFlag)
	if err != nil {
		log.Fatal(err)
	}
	img, err := render(doc, w, h, *ssFlag)
	if err != nil {
		log.Fatal(err)
	}
	if err := writeOutput(*outFlag, img); err != nil {
		log.Fatal(err)
	}
	logger.Debug("tvgraster: wrote image",
		slog.String("file", *outFlag),
		slog.Int("width", w),
		slog.Int("height", h),
	)
}

func readInput(name string) ([]byte, error) {
	if name != pipeName {
		return os.ReadFile(name)
	}
	if term.IsTerminal(int(os.Stdin.Fd())) {
		return nil, errors.New("`-` should be used with a pipe for stdin")
	}
	return io.ReadAll(os.Stdin)
}

func writeOutput(name string, img image.Image) error {
	if name == pipeName {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			return errors.New("`-` should be used with a pipe for stdout")
		}
		return png.Encode(os.Stdout, img)
	}
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// outputSize returns the image size for a graphic of the given header, given
// the requested width and height, either of which may be zero. The size
// supersampled by ss may have at most maxPixels pixels.
func outputSize(hdr tinyvg.Header, width, height, ss, maxPixels int) (w, h int, err error) {
	if width < 0 || height < 0 {
		return 0, 0, fmt.Errorf("invalid size %d x %d", width, height)
	}
	if ss < 1 || ss > maxSupersample {
		return 0, 0, fmt.Errorf("supersampling factor %d out of range [1, %d]", ss, maxSupersample)
	}
	gw, gh := float64(hdr.Width), float64(hdr.Height)
	fw, fh := float64(width), float64(height)
	switch {
	case width == 0 && height == 0:
		fw, fh = gw, gh
	case height == 0:
		fh = fw
		if gw != 0 {
			fh = math.Floor(fw * gh / gw)
		}
	case width == 0:
		fw = fh
		if gh != 0 {
			fw = math.Floor(fh * gw / gh)
		}
	}
	if fw < 1 || fh < 1 {
		return 0, 0, fmt.Errorf("empty image size %g x %g", fw, fh)
	}
	if n := fw * fh * float64(ss*ss); n > float64(maxPixels) {
		return 0, 0, fmt.Errorf("image size %g x %g at supersampling %d exceeds %d pixels", fw, fh, ss, maxPixels)
	}
	return int(fw), int(fh), nil
}

// render draws doc onto a w by h image, drawing at ss times that size first
// if ss is greater than one.
func render(doc *tinyvg.Document, w, h, ss int) (image.Image, error) {
	if ss < 1 || ss > maxSupersample {
		return nil, fmt.Errorf("supersampling factor %d out of range [1, %d]", ss, maxSupersample)
	}
	dst := image.NewRGBA(image.Rect(0, 0, w*ss, h*ss))
	var z raster.Rasterizer
	z.SetDstImage(dst, dst.Bounds(), draw.Src)
	if err := z.Draw(doc); err != nil {
		return nil, err
	}
	if ss == 1 {
		return dst, nil
	}
	return imaging.Resize(dst, w, h, imaging.Lanczos), nil
}
