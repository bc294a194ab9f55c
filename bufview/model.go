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

package bufview

// Len returns the number of bytes covered by the view.
func (v View) Len() int {
	return v.c
}

// Offset returns the offset of the view into its backing array.
func (v View) Offset() int {
	return v.o
}

// IsNil returns true if the view covers no byte.
func (v View) IsNil() bool {
	return v.c == 0
}

// Bytes returns the bytes covered by the view as a sub-slice of the backing
// array. The returned slice shares memory with the backing array.
func (v View) Bytes() []byte {
	if v.b == nil {
		return nil
	}

	return v.b[v.o : v.o+v.c]
}

// Copy materializes the view as a new contiguous byte slice, independent of
// the backing array.
func (v View) Copy() []byte {
	if v.c == 0 {
		return nil
	}

	p := make([]byte, v.c)
	copy(p, v.b[v.o:v.o+v.c])
	return p
}
