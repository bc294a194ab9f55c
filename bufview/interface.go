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

// Package bufview provides a non-owning view over a byte array, defined by a
// backing slice, an offset and a count. The backing array is shared by
// reference: it must not be mutated once handed off to a view.
package bufview

// View is an immutable {base, offset, count} handle over a byte array.
// The zero value is an empty view over a nil array.
type View struct {
	b []byte
	o int
	c int
}

// New returns a view over the count bytes of base starting at offset.
// It returns ErrorRangeInvalid if offset or count is negative or if
// offset+count exceeds the length of base.
func New(base []byte, offset, count int) (View, error) {
	if offset < 0 || count < 0 || offset+count > len(base) {
		return View{}, ErrorRangeInvalid.Error(nil)
	}

	return View{
		b: base,
		o: offset,
		c: count,
	}, nil
}

// Of returns a view over the whole given slice.
func Of(base []byte) View {
	return View{
		b: base,
		o: 0,
		c: len(base),
	}
}
