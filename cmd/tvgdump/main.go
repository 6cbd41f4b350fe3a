// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The tvgdump command prints a human-readable listing of a TinyVG graphic,
// one line per header field, color and command, beside the bytes that
// encode them.
//
// Usage:
//
//	tvgdump [-header] [-v] file.tvg
//
// The file name "-" reads the graphic from stdin, which must then be a pipe.
//
// The -header flag prints only the header fields. The -v flag logs the
// decoder's progress to stderr.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"golang.org/x/exp/slog"
	"golang.org/x/exp/tinyvg"
	"golang.org/x/term"
)

var (
	headerFlag  = flag.Bool("header", false, "print only the header")
	verboseFlag = flag.Bool("v", false, "log decoding progress to stderr")
)

const pipeName = "-"

func usage() {
	fmt.Fprintf(os.Stderr, "usage: tvgdump [-header] [-v] file.tvg\n")
	flag.PrintDefaults()
	os.Exit(2)
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("tvgdump: ")
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() != 1 {
		usage()
	}

	src, err := readInput(flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}
	if err := run(os.Stdout, os.Stderr, src); err != nil {
		log.Fatal(err)
	}
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

// run writes the listing of src to w and, with -v, decoding logs to logw.
func run(w, logw io.Writer, src []byte) error {
	if *headerFlag {
		h, err := tinyvg.DecodeHeader(src)
		if err != nil {
			return err
		}
		return printHeader(w, h)
	}

	var opts *tinyvg.DecodeOptions
	if *verboseFlag {
		logger := slog.New(slog.NewTextHandler(logw, &slog.HandlerOptions{Level: slog.LevelDebug}))
		opts = &tinyvg.DecodeOptions{Logger: logger}
	}
	return tinyvg.Disassemble(w, src, opts)
}

func printHeader(w io.Writer, h tinyvg.Header) error {
	_, err := fmt.Fprintf(w, "version %d\nscale %d\ncolor encoding %v\ncoordinate range %v\nsize %d x %d\ncolors %d\n",
		h.Version, h.Scale, h.ColorEncoding, h.CoordinateRange, h.Width, h.Height, h.ColorCount)
	return err
}
