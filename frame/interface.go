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

// Package frame defines the defragmenter contract: a stateful reader that
// turns an arbitrary byte stream into a sequence of discrete frames, and
// preserves leftover bytes across reads.
//
// A defragmenter reads zero or more chunks from the stream until it can
// either produce a fully assembled frame, signal that the buffered bytes are
// not a recoverable frame, or report the end of the stream. Leftover bytes
// read past the end of a frame are explicit in the contract: the caller
// carries them into the next ReadFrame call.
//
// Reusable implementations live in the lengthprefix and mixed sub-packages.
package frame

import (
	"context"
	"io"

	sckbuf "github.com/nabbar/asyncnet/bufview"
)

// Output is the result of one ReadFrame call.
type Output struct {
	// Status classifies the outcome of the call.
	Status Status

	// Frame is the fully assembled frame body when Status is FrameProduced.
	// The slice is owned by the caller.
	Frame []byte

	// Leftovers holds the bytes read past the end of the produced frame.
	// The caller must pass it back to the next ReadFrame call.
	Leftovers sckbuf.View
}

// Defragmenter is a stateful reader turning a byte stream into frames.
//
// ReadFrame reads from rd until it can return one of:
//   - FrameProduced with the assembled frame and any residual bytes as
//     leftovers for the next call;
//   - FrameDropped when the buffered bytes are not a recoverable frame: the
//     caller must discard the leftovers and call again;
//   - StreamClosed when the stream reports end-of-file before a frame could
//     be completed.
//
// Cancellation is honoured at every read: when the given context fires, the
// call returns the context error. Transport errors of rd propagate as
// themselves; errors raised by user strategies are wrapped with the
// ErrorFrameUnhandled code so that engines can distinguish them.
type Defragmenter interface {
	ReadFrame(ctx context.Context, rd io.Reader, left sckbuf.View) (Output, error)
}

// Factory produces a new Defragmenter instance. It is used to install a
// defragmenter on a peer, in particular when switching protocol.
type Factory func() Defragmenter
