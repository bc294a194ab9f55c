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

package frame

import (
	"context"
	"errors"
	"io"
)

const (
	// DefaultChunkSize is the size of the chunks read from the stream while
	// assembling a frame.
	DefaultChunkSize = 32 * 1024
)

// Fill appends bytes read from rd to buf until buf holds at least need
// bytes. The context is checked before each read; when it fires, the
// context error is returned with the bytes collected so far.
//
// On end-of-file before need bytes are collected, Fill returns io.EOF with
// the collected bytes: the caller maps it to StreamClosed. Any other read
// error is returned as-is.
func Fill(ctx context.Context, rd io.Reader, buf []byte, need int) ([]byte, error) {
	for len(buf) < need {
		if e := ctx.Err(); e != nil {
			return buf, e
		}

		p := make([]byte, DefaultChunkSize)
		n, e := rd.Read(p)

		if n > 0 {
			buf = append(buf, p[:n]...)
		}

		if e != nil {
			if errors.Is(e, io.EOF) {
				if len(buf) >= need {
					return buf, nil
				}
				return buf, io.EOF
			}
			return buf, e
		}
	}

	return buf, nil
}
