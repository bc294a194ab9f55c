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

// Status classifies the outcome of a ReadFrame call.
type Status uint8

const (
	// FrameProduced means a fully assembled frame is returned.
	FrameProduced Status = iota
	// FrameDropped means the buffered bytes are not a recoverable frame and
	// the caller should resume reading with no leftovers.
	FrameDropped
	// StreamClosed means the stream reported end-of-file before a frame
	// could be completed.
	StreamClosed
)

// String returns a human readable representation of the status.
func (s Status) String() string {
	switch s {
	case FrameProduced:
		return "Frame Produced"
	case FrameDropped:
		return "Frame Dropped"
	case StreamClosed:
		return "Stream Closed"
	default:
		return "unknown read frame status"
	}
}
