// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tinyvg

import (
	"errors"
	"fmt"
)

// Kind is the part of a TinyVG graphic that an Error was found in.
type Kind uint8

const (
	KindHeader Kind = iota + 1
	KindColorTable
	KindCommand
)

func (k Kind) String() string {
	switch k {
	case KindHeader:
		return "header"
	case KindColorTable:
		return "color table"
	case KindCommand:
		return "command"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// These errors match, via errors.Is, every *Error of the corresponding Kind.
var (
	ErrHeader     = errors.New("tinyvg: invalid header")
	ErrColorTable = errors.New("tinyvg: invalid color table")
	ErrCommand    = errors.New("tinyvg: invalid command")
)

var (
	errBadMagic                 = errors.New("bad magic identifier")
	errColorCountMismatch       = errors.New("color count does not match header")
	errColorIndexOutOfRange     = errors.New("color index out of range")
	errCountOutOfRange          = errors.New("count out of range")
	errEmptyPath                = errors.New("path has no segments")
	errEmptySegment             = errors.New("segment has no primitives")
	errEncoderState             = errors.New("encoder methods called out of order")
	errInvalidCommandIndex      = errors.New("invalid command index")
	errInvalidCoordinateRange   = errors.New("invalid coordinate range")
	errInvalidEndTag            = errors.New("end of document tag has style bits set")
	errInvalidScale             = errors.New("invalid scale")
	errInvalidStyleKind         = errors.New("invalid style kind")
	errInvalidUTF8              = errors.New("text is not valid UTF-8")
	errSizeOutOfRange           = errors.New("size out of range")
	errTooManyColors            = errors.New("too many colors")
	errUnitOutOfRange           = errors.New("unit out of range")
	errUnknownCommand           = errors.New("unknown command")
	errUnknownPrimitive         = errors.New("unknown path primitive")
	errUnknownStyle             = errors.New("unknown style")
	errUnsupportedColorEncoding = errors.New("unsupported color encoding")
	errVarUintTooLong           = errors.New("variable length integer too long")
)

// Error is the error returned by the decoding and encoding functions.
//
// Offset is the byte offset at which the problem was detected: in the source
// bytes when decoding, in the encoded form so far when encoding.
type Error struct {
	Kind   Kind
	Offset int
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("tinyvg: %v error at offset %d: %v", e.Kind, e.Offset, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is the package level error for e's Kind.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrHeader:
		return e.Kind == KindHeader
	case ErrColorTable:
		return e.Kind == KindColorTable
	case ErrCommand:
		return e.Kind == KindCommand
	}
	return false
}
