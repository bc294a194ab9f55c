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

// Package mixed implements the frame.Defragmenter contract for protocols
// whose header is not a fixed size: a caller-defined predicate inspects the
// growing byte prefix, reports when the header is complete, and computes the
// expected total frame length from it.
//
// It covers protocols with delimiters, type-dependent lengths, or any
// header-then-length scheme the lengthprefix package cannot express.
package mixed

import (
	libsiz "github.com/nabbar/golib/size"

	sckfrm "github.com/nabbar/asyncnet/frame"
)

// Verdict is the answer of the header predicate for a given byte prefix.
type Verdict uint8

const (
	// NeedMore means the prefix is not long enough to hold the header yet.
	NeedMore Verdict = iota
	// HeaderComplete means the header is complete: the predicate returns the
	// header length and the expected total frame length (header included).
	HeaderComplete
	// HeaderInvalid means the prefix cannot start a valid frame: the frame
	// is dropped and the caller resumes with no leftovers.
	HeaderInvalid
)

// FuncHeader inspects the growing byte prefix of a frame. When it returns
// HeaderComplete, headerLen is the length of the header inside the prefix
// and totalLen the expected total frame length, header included. Both values
// are ignored for other verdicts.
type FuncHeader func(prefix []byte) (v Verdict, headerLen int, totalLen int)

// New returns a mixed defragmenter driven by the given header predicate. A
// total length exceeding max (or lengthprefix's default ceiling rules: 64MB
// if max is zero) drops the frame.
func New(fct FuncHeader, max libsiz.Size) sckfrm.Defragmenter {
	if max == 0 {
		max = 64 * libsiz.SizeMega
	}

	return &dfg{
		f: fct,
		m: max,
	}
}

// Factory returns a frame.Factory producing defragmenters configured with
// the given parameters.
func Factory(fct FuncHeader, max libsiz.Size) sckfrm.Factory {
	return func() sckfrm.Defragmenter {
		return New(fct, max)
	}
}
