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

package lengthprefix_test

import (
	"bytes"
	"context"
	"io"

	liberr "github.com/nabbar/golib/errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	sckbuf "github.com/nabbar/asyncnet/bufview"
	sckfrm "github.com/nabbar/asyncnet/frame"
	sckflp "github.com/nabbar/asyncnet/frame/lengthprefix"
)

var _ = Describe("LengthPrefix Defragmenter", func() {
	var (
		ctx context.Context
		dfg sckfrm.Defragmenter
	)

	BeforeEach(func() {
		ctx = context.Background()
		dfg = sckflp.New(sckflp.HeaderLenUint32, sckflp.Uint32LittleEndian(), 0)
	})

	Context("with one complete frame in the stream", func() {
		It("should produce the whole wire frame, header included", func() {
			msg := sckflp.EncodeUint32LittleEndian([]byte("ping"))
			res, err := dfg.ReadFrame(ctx, bytes.NewReader(msg), sckbuf.View{})

			Expect(err).ToNot(HaveOccurred())
			Expect(res.Status).To(Equal(sckfrm.FrameProduced))
			Expect(res.Frame).To(Equal([]byte{0x08, 0x00, 0x00, 0x00, 'p', 'i', 'n', 'g'}))
			Expect(res.Leftovers.IsNil()).To(BeTrue())
		})
	})

	Context("with two frames coalesced in one read", func() {
		It("should produce both frames in order through leftovers", func() {
			var stream []byte
			stream = append(stream, sckflp.EncodeUint32LittleEndian([]byte("a"))...)
			stream = append(stream, sckflp.EncodeUint32LittleEndian([]byte("b"))...)

			rd := bytes.NewReader(stream)

			res, err := dfg.ReadFrame(ctx, rd, sckbuf.View{})
			Expect(err).ToNot(HaveOccurred())
			Expect(res.Status).To(Equal(sckfrm.FrameProduced))
			Expect(res.Frame).To(Equal([]byte{0x05, 0x00, 0x00, 0x00, 'a'}))
			Expect(res.Leftovers.Len()).To(Equal(5))

			res, err = dfg.ReadFrame(ctx, rd, res.Leftovers)
			Expect(err).ToNot(HaveOccurred())
			Expect(res.Status).To(Equal(sckfrm.FrameProduced))
			Expect(res.Frame).To(Equal([]byte{0x05, 0x00, 0x00, 0x00, 'b'}))
			Expect(res.Leftovers.IsNil()).To(BeTrue())
		})
	})

	Context("with bytes arriving one at a time", func() {
		It("should assemble the frame across many reads", func() {
			msg := sckflp.EncodeUint32LittleEndian([]byte("split"))

			pr, pw := io.Pipe()

			go func() {
				defer func() { _ = pw.Close() }()
				for _, b := range msg {
					_, _ = pw.Write([]byte{b})
				}
			}()

			res, err := dfg.ReadFrame(ctx, pr, sckbuf.View{})
			Expect(err).ToNot(HaveOccurred())
			Expect(res.Status).To(Equal(sckfrm.FrameProduced))
			Expect(res.Frame).To(Equal(msg))
		})
	})

	Context("with a header split from its body", func() {
		It("should produce exactly one frame", func() {
			pr, pw := io.Pipe()

			go func() {
				defer func() { _ = pw.Close() }()
				_, _ = pw.Write([]byte{0x05})
				_, _ = pw.Write([]byte{0x00, 0x00, 0x00, 'x'})
			}()

			res, err := dfg.ReadFrame(ctx, pr, sckbuf.View{})
			Expect(err).ToNot(HaveOccurred())
			Expect(res.Status).To(Equal(sckfrm.FrameProduced))
			Expect(res.Frame).To(Equal([]byte{0x05, 0x00, 0x00, 0x00, 'x'}))
		})
	})

	Context("with the stream closing before a frame completes", func() {
		It("should report StreamClosed on EOF mid-header", func() {
			res, err := dfg.ReadFrame(ctx, bytes.NewReader([]byte{0x08, 0x00}), sckbuf.View{})

			Expect(err).ToNot(HaveOccurred())
			Expect(res.Status).To(Equal(sckfrm.StreamClosed))
		})

		It("should report StreamClosed on EOF mid-body", func() {
			res, err := dfg.ReadFrame(ctx, bytes.NewReader([]byte{0x08, 0x00, 0x00, 0x00, 'p'}), sckbuf.View{})

			Expect(err).ToNot(HaveOccurred())
			Expect(res.Status).To(Equal(sckfrm.StreamClosed))
		})

		It("should report StreamClosed on an empty stream", func() {
			res, err := dfg.ReadFrame(ctx, bytes.NewReader(nil), sckbuf.View{})

			Expect(err).ToNot(HaveOccurred())
			Expect(res.Status).To(Equal(sckfrm.StreamClosed))
		})
	})

	Context("with an invalid decoded length", func() {
		It("should drop the frame when the total is below the header length", func() {
			res, err := dfg.ReadFrame(ctx, bytes.NewReader([]byte{0x02, 0x00, 0x00, 0x00, 'x'}), sckbuf.View{})

			Expect(err).ToNot(HaveOccurred())
			Expect(res.Status).To(Equal(sckfrm.FrameDropped))
		})

		It("should drop the frame when the total exceeds the ceiling", func() {
			res, err := dfg.ReadFrame(ctx, bytes.NewReader([]byte{0xFF, 0xFF, 0xFF, 0xFF}), sckbuf.View{})

			Expect(err).ToNot(HaveOccurred())
			Expect(res.Status).To(Equal(sckfrm.FrameDropped))
		})
	})

	Context("with a panicking strategy", func() {
		It("should wrap the failure as an unhandled error", func() {
			bad := sckflp.New(4, func(header []byte) int {
				panic("boom")
			}, 0)

			_, err := bad.ReadFrame(ctx, bytes.NewReader([]byte{0x08, 0x00, 0x00, 0x00}), sckbuf.View{})

			Expect(err).To(HaveOccurred())

			er, ok := err.(liberr.Error)
			Expect(ok).To(BeTrue())
			Expect(er.IsCode(sckfrm.ErrorFrameUnhandled)).To(BeTrue())
		})
	})

	Context("with a cancelled context", func() {
		It("should return the context error", func() {
			x, n := context.WithCancel(ctx)
			n()

			_, err := dfg.ReadFrame(x, bytes.NewReader([]byte{0x08}), sckbuf.View{})

			Expect(err).To(MatchError(context.Canceled))
		})
	})

	Context("encode then decode", func() {
		It("should be the identity on arbitrary payload sequences", func() {
			payloads := [][]byte{
				[]byte(""),
				[]byte("x"),
				[]byte("hello world"),
				bytes.Repeat([]byte{0xAB}, 1024),
			}

			var stream []byte
			for _, p := range payloads {
				stream = append(stream, sckflp.EncodeUint32LittleEndian(p)...)
			}

			rd := bytes.NewReader(stream)
			lft := sckbuf.View{}

			for _, p := range payloads {
				res, err := dfg.ReadFrame(ctx, rd, lft)

				Expect(err).ToNot(HaveOccurred())
				Expect(res.Status).To(Equal(sckfrm.FrameProduced))
				Expect(res.Frame[sckflp.HeaderLenUint32:]).To(Equal(p))

				lft = res.Leftovers
			}
		})
	})

	Context("with a big endian strategy", func() {
		It("should decode big endian totals", func() {
			big := sckflp.New(sckflp.HeaderLenUint32, sckflp.Uint32BigEndian(), 0)
			msg := sckflp.EncodeUint32BigEndian([]byte("pong"))

			res, err := big.ReadFrame(ctx, bytes.NewReader(msg), sckbuf.View{})

			Expect(err).ToNot(HaveOccurred())
			Expect(res.Status).To(Equal(sckfrm.FrameProduced))
			Expect(res.Frame[sckflp.HeaderLenUint32:]).To(Equal([]byte("pong")))
		})
	})
})
