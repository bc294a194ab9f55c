/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package lengthprefix implements the frame.Defragmenter contract for
// protocols carrying a fixed-size header from which the total frame length
// can be decoded.
//
// The produced frame is the whole wire frame, header included. The total
// length returned by the strategy is the header plus body length: a frame
// whose decoded total is smaller than the header length, or larger than the
// configured ceiling, is reported as dropped so the caller can resynchronize.
package lengthprefix

import (
	"encoding/binary"

	libsiz "github.com/nabbar/golib/size"

	sckfrm "github.com/nabbar/asyncnet/frame"
)

const (
	// HeaderLenUint32 is the header length of the uint32 strategies.
	HeaderLenUint32 = 4

	// DefaultMaxFrameSize is the sanity ceiling applied when none is given.
	DefaultMaxFrameSize = 64 * libsiz.SizeMega
)

// FuncFrameLength decodes the total frame length (header included) from the
// given header bytes. The given slice holds exactly the configured header
// length.
type FuncFrameLength func(header []byte) int

// New returns a length-prefixed defragmenter reading a headerLen bytes
// header and decoding the total frame length with the given strategy. A
// total exceeding max (or DefaultMaxFrameSize if max is zero) drops the
// frame.
func New(headerLen int, fct FuncFrameLength, max libsiz.Size) sckfrm.Defragmenter {
	if max == 0 {
		max = DefaultMaxFrameSize
	}

	return &dfg{
		h: headerLen,
		f: fct,
		m: max,
	}
}

// Factory returns a frame.Factory producing defragmenters configured with
// the given parameters.
func Factory(headerLen int, fct FuncFrameLength, max libsiz.Size) sckfrm.Factory {
	return func() sckfrm.Defragmenter {
		return New(headerLen, fct, max)
	}
}

// Uint32LittleEndian returns a strategy decoding the total frame length as a
// little-endian uint32.
func Uint32LittleEndian() FuncFrameLength {
	return func(header []byte) int {
		return int(binary.LittleEndian.Uint32(header))
	}
}

// Uint32BigEndian returns a strategy decoding the total frame length as a
// big-endian uint32.
func Uint32BigEndian() FuncFrameLength {
	return func(header []byte) int {
		return int(binary.BigEndian.Uint32(header))
	}
}

// EncodeUint32LittleEndian prefixes the given body with a little-endian
// uint32 total length (header included). Decoding the result with a
// defragmenter configured with Uint32LittleEndian yields the identity.
func EncodeUint32LittleEndian(body []byte) []byte {
	p := make([]byte, HeaderLenUint32+len(body))
	binary.LittleEndian.PutUint32(p, uint32(len(p)))
	copy(p[HeaderLenUint32:], body)
	return p
}

// EncodeUint32BigEndian prefixes the given body with a big-endian uint32
// total length (header included).
func EncodeUint32BigEndian(body []byte) []byte {
	p := make([]byte, HeaderLenUint32+len(body))
	binary.BigEndian.PutUint32(p, uint32(len(p)))
	copy(p[HeaderLenUint32:], body)
	return p
}
