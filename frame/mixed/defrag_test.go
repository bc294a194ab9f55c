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

package mixed_test

import (
	"bytes"
	"context"
	"strconv"

	liberr "github.com/nabbar/golib/errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	sckbuf "github.com/nabbar/asyncnet/bufview"
	sckfrm "github.com/nabbar/asyncnet/frame"
	sckfmx "github.com/nabbar/asyncnet/frame/mixed"
)

// headerAsciiLen parses a "<len>:" ASCII header: the total frame length is
// the header plus the declared body length.
func headerAsciiLen(prefix []byte) (sckfmx.Verdict, int, int) {
	i := bytes.IndexByte(prefix, ':')

	if i < 0 {
		if len(prefix) > 8 {
			return sckfmx.HeaderInvalid, 0, 0
		}
		return sckfmx.NeedMore, 0, 0
	}

	n, e := strconv.Atoi(string(prefix[:i]))

	if e != nil || n < 0 {
		return sckfmx.HeaderInvalid, 0, 0
	}

	return sckfmx.HeaderComplete, i + 1, i + 1 + n
}

var _ = Describe("Mixed Defragmenter", func() {
	var (
		ctx context.Context
		dfg sckfrm.Defragmenter
	)

	BeforeEach(func() {
		ctx = context.Background()
		dfg = sckfmx.New(headerAsciiLen, 0)
	})

	Context("with a delimiter based header", func() {
		It("should produce the frame once the header and body are read", func() {
			res, err := dfg.ReadFrame(ctx, bytes.NewReader([]byte("4:ping")), sckbuf.View{})

			Expect(err).ToNot(HaveOccurred())
			Expect(res.Status).To(Equal(sckfrm.FrameProduced))
			Expect(res.Frame).To(Equal([]byte("4:ping")))
			Expect(res.Leftovers.IsNil()).To(BeTrue())
		})

		It("should carry leftovers between frames", func() {
			rd := bytes.NewReader([]byte("1:a2:bc"))

			res, err := dfg.ReadFrame(ctx, rd, sckbuf.View{})
			Expect(err).ToNot(HaveOccurred())
			Expect(res.Status).To(Equal(sckfrm.FrameProduced))
			Expect(res.Frame).To(Equal([]byte("1:a")))

			res, err = dfg.ReadFrame(ctx, rd, res.Leftovers)
			Expect(err).ToNot(HaveOccurred())
			Expect(res.Status).To(Equal(sckfrm.FrameProduced))
			Expect(res.Frame).To(Equal([]byte("2:bc")))
		})
	})

	Context("with an invalid header", func() {
		It("should drop the frame", func() {
			res, err := dfg.ReadFrame(ctx, bytes.NewReader([]byte("x:junk")), sckbuf.View{})

			Expect(err).ToNot(HaveOccurred())
			Expect(res.Status).To(Equal(sckfrm.FrameDropped))
		})

		It("should drop the frame when the header grows unreasonably", func() {
			res, err := dfg.ReadFrame(ctx, bytes.NewReader([]byte("123456789012345")), sckbuf.View{})

			Expect(err).ToNot(HaveOccurred())
			Expect(res.Status).To(Equal(sckfrm.FrameDropped))
		})
	})

	Context("with the stream closing early", func() {
		It("should report StreamClosed on EOF mid-header", func() {
			res, err := dfg.ReadFrame(ctx, bytes.NewReader([]byte("42")), sckbuf.View{})

			Expect(err).ToNot(HaveOccurred())
			Expect(res.Status).To(Equal(sckfrm.StreamClosed))
		})

		It("should report StreamClosed on EOF mid-body", func() {
			res, err := dfg.ReadFrame(ctx, bytes.NewReader([]byte("9:short")), sckbuf.View{})

			Expect(err).ToNot(HaveOccurred())
			Expect(res.Status).To(Equal(sckfrm.StreamClosed))
		})
	})

	Context("with a panicking predicate", func() {
		It("should wrap the failure as an unhandled error", func() {
			bad := sckfmx.New(func(prefix []byte) (sckfmx.Verdict, int, int) {
				panic("boom")
			}, 0)

			_, err := bad.ReadFrame(ctx, bytes.NewReader([]byte("data")), sckbuf.View{})

			Expect(err).To(HaveOccurred())

			er, ok := err.(liberr.Error)
			Expect(ok).To(BeTrue())
			Expect(er.IsCode(sckfrm.ErrorFrameUnhandled)).To(BeTrue())
		})
	})
})
