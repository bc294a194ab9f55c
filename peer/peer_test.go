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

package peer_test

import (
	"context"
	"io"
	"net"
	"sync"
	"sync/atomic"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	sckevt "github.com/nabbar/asyncnet"
	sckflp "github.com/nabbar/asyncnet/frame/lengthprefix"
	sckper "github.com/nabbar/asyncnet/peer"
	sckrsn "github.com/nabbar/asyncnet/reason"
)

var _ = Describe("Remote Peer", func() {
	var (
		ctx context.Context
		cnl context.CancelFunc
		lcl net.Conn
		rmt net.Conn
	)

	BeforeEach(func() {
		ctx, cnl = context.WithTimeout(context.Background(), 10*time.Second)
		lcl, rmt = net.Pipe()
	})

	AfterEach(func() {
		if cnl != nil {
			cnl()
		}
		_ = lcl.Close()
		_ = rmt.Close()
	})

	newPeer := func(size int) sckper.RemotePeer {
		rp, err := sckper.New(ctx, lcl, size,
			sckflp.Factory(sckflp.HeaderLenUint32, sckflp.Uint32LittleEndian(), 0),
			nil, nil)
		Expect(err).ToNot(HaveOccurred())
		return rp
	}

	Context("outgoing bytes", func() {
		It("should write enqueued items to the stream in enqueue order", func() {
			rp := newPeer(0)

			var (
				mu  sync.Mutex
				got []byte
				dne = make(chan struct{})
			)

			go func() {
				defer close(dne)
				p := make([]byte, 64)
				for {
					n, e := rmt.Read(p)
					if n > 0 {
						mu.Lock()
						got = append(got, p[:n]...)
						mu.Unlock()
					}
					if e != nil {
						return
					}
				}
			}()

			Expect(rp.Post([]byte("abc"))).To(BeTrue())
			Expect(rp.Post([]byte("def"))).To(BeTrue())

			ok, err := rp.Send(ctx, []byte("ghi"))
			Expect(err).ToNot(HaveOccurred())
			Expect(ok).To(BeTrue())

			Eventually(func() string {
				mu.Lock()
				defer mu.Unlock()
				return string(got)
			}, 2*time.Second, 10*time.Millisecond).Should(Equal("abcdefghi"))

			rp.Teardown()
			Eventually(rp.Done(), 2*time.Second).Should(BeClosed())
			<-dne
		})

		It("should post a sub range of a buffer", func() {
			rp := newPeer(0)

			dne := make(chan []byte, 1)

			go func() {
				p := make([]byte, 8)
				n, _ := rmt.Read(p)
				dne <- p[:n]
			}()

			Expect(rp.PostRange([]byte("abcdef"), 2, 3)).To(BeTrue())
			Expect(rp.PostRange([]byte("abc"), 2, 5)).To(BeFalse())

			Eventually(dne, 2*time.Second).Should(Receive(Equal([]byte("cde"))))

			rp.Teardown()
		})
	})

	Context("close reason latch", func() {
		It("should keep the first reason on double disconnect", func() {
			rp := newPeer(0)

			var (
				cnt = new(atomic.Int32)
				rsn = new(atomic.Int32)
			)

			rp.RegisterFuncClosed(func(p sckevt.Peer, r sckrsn.Reason) {
				cnt.Add(1)
				rsn.Store(int32(r))
			})

			rp.Disconnect(sckrsn.Timeout)
			rp.Disconnect(sckrsn.LocalShutdown)

			Expect(rp.Reason()).To(Equal(sckrsn.Timeout))

			rp.Teardown()
			rp.Teardown()

			Eventually(rp.Done(), 2*time.Second).Should(BeClosed())

			Expect(cnt.Load()).To(Equal(int32(1)))
			Expect(sckrsn.Reason(rsn.Load())).To(Equal(sckrsn.Timeout))
		})

		It("should latch Unknown when torn down with no reason", func() {
			rp := newPeer(0)

			rp.Teardown()
			Eventually(rp.Done(), 2*time.Second).Should(BeClosed())

			Expect(rp.Reason()).To(Equal(sckrsn.Unknown))
			Expect(rp.SetReason(sckrsn.Timeout)).To(BeFalse())
		})
	})

	Context("custom resources", func() {
		It("should close registered closers at teardown", func() {
			rp := newPeer(0)

			cls := &closer{}
			rp.RegisterCloser(cls)

			rp.Teardown()
			Eventually(rp.Done(), 2*time.Second).Should(BeClosed())

			Expect(cls.closed.Load()).To(BeTrue())
		})
	})

	Context("send after teardown", func() {
		It("should refuse post and report a benign false on send", func() {
			rp := newPeer(0)

			rp.Teardown()
			Eventually(rp.Done(), 2*time.Second).Should(BeClosed())

			Expect(rp.Post([]byte("late"))).To(BeFalse())

			ok, err := rp.Send(context.Background(), []byte("late"))
			Expect(ok).To(BeFalse())
			Expect(err).ToNot(HaveOccurred())
		})
	})
})

type closer struct {
	closed atomic.Bool
}

func (c *closer) Close() error {
	c.closed.Store(true)
	return nil
}

var _ io.Closer = &closer{}
