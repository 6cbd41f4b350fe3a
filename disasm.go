// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tinyvg

import (
	"fmt"
	"io"
)

// disasmBytesPerLine is how many encoded bytes are listed on each line of
// Disassemble's output. Longer runs continue on lines of their own.
const disasmBytesPerLine = 8

// Disassemble writes a human-readable listing of the TinyVG graphic src to w,
// one line per decoded field, each prefixed by the bytes it was decoded from.
//
// Output stops at the first error, which is returned. A nil opts means the
// Decode defaults.
func Disassemble(w io.Writer, src []byte, opts *DecodeOptions) error {
	var werr error
	p := func(b []byte, format string, args ...interface{}) {
		if werr != nil {
			return
		}
		for {
			n := len(b)
			if n > disasmBytesPerLine {
				n = disasmBytesPerLine
			}
			line := fmt.Sprintf("% x", b[:n])
			if format == "" {
				_, werr = fmt.Fprintf(w, "%s\n", line)
			} else {
				_, werr = fmt.Fprintf(w, "%-*s  "+format, append([]interface{}{3*disasmBytesPerLine - 1, line}, args...)...)
			}
			b, format = b[n:], ""
			if len(b) == 0 || werr != nil {
				return
			}
		}
	}
	if _, err := decode(p, src, opts, false); err != nil {
		return err
	}
	return werr
}
