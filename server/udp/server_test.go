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

package udp_test

import (
	"context"
	"net"
	"sync"
	"time"

	libptc "github.com/nabbar/golib/network/protocol"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	sckcfg "github.com/nabbar/asyncnet/config"
	scksru "github.com/nabbar/asyncnet/server/udp"
)

// packets is a concurrency safe collector of received datagrams.
type packets struct {
	mu  sync.Mutex
	lst [][]byte
	adr []net.Addr
}

func (f *packets) add(from net.Addr, p []byte) {
	f.mu.Lock()
	f.lst = append(f.lst, p)
	f.adr = append(f.adr, from)
	f.mu.Unlock()
}

func (f *packets) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.lst)
}

func (f *packets) get(i int) ([]byte, net.Addr) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lst[i], f.adr[i]
}

var _ = Describe("UDP Server", func() {
	var (
		c   context.Context
		cnl context.CancelFunc
		adr string
		srv scksru.ServerUdp
	)

	BeforeEach(func() {
		c, cnl = context.WithCancel(x)
		adr = getTestAddress()

		var err error
		srv, err = scksru.New(nil, sckcfg.ServerUDP{
			Network: libptc.NetworkUDP,
			Address: adr,
		})
		Expect(err).ToNot(HaveOccurred())
	})

	AfterEach(func() {
		if srv != nil {
			_ = srv.Close()
		}
		if cnl != nil {
			cnl()
		}
		time.Sleep(20 * time.Millisecond)
	})

	startServer := func() {
		go func() {
			defer GinkgoRecover()
			_ = srv.Listen(c)
		}()

		Eventually(srv.IsRunning, 2*time.Second, 10*time.Millisecond).Should(BeTrue())
	}

	Context("datagrams", func() {
		It("should deliver one packet event per received datagram", func() {
			rcv := &packets{}
			srv.RegisterFuncPacket(rcv.add)

			startServer()

			co, e := net.Dial(libptc.NetworkUDP.Code(), adr)
			Expect(e).ToNot(HaveOccurred())

			defer func() {
				_ = co.Close()
			}()

			_, e = co.Write([]byte("one"))
			Expect(e).ToNot(HaveOccurred())
			_, e = co.Write([]byte("two"))
			Expect(e).ToNot(HaveOccurred())

			Eventually(rcv.count, 2*time.Second, 10*time.Millisecond).Should(Equal(2))
		})

		It("should echo datagrams to their sender", func() {
			srv.RegisterFuncPacket(func(from net.Addr, data []byte) {
				Expect(srv.Post(from, data)).To(BeTrue())
			})

			startServer()

			co, e := net.Dial(libptc.NetworkUDP.Code(), adr)
			Expect(e).ToNot(HaveOccurred())

			defer func() {
				_ = co.Close()
			}()

			_, e = co.Write([]byte("marco"))
			Expect(e).ToNot(HaveOccurred())

			p := make([]byte, 64)
			Expect(co.SetReadDeadline(time.Now().Add(2 * time.Second))).To(Succeed())

			n, e := co.Read(p)
			Expect(e).ToNot(HaveOccurred())
			Expect(p[:n]).To(Equal([]byte("marco")))
		})

		It("should resolve the Send promise once the datagram is written", func() {
			startServer()

			co, e := net.ListenUDP(libptc.NetworkUDP.Code(), &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
			Expect(e).ToNot(HaveOccurred())

			defer func() {
				_ = co.Close()
			}()

			Expect(srv.Send(c, co.LocalAddr(), []byte("direct"))).To(Succeed())

			p := make([]byte, 64)
			Expect(co.SetReadDeadline(time.Now().Add(2 * time.Second))).To(Succeed())

			n, _, er := co.ReadFromUDP(p)
			Expect(er).ToNot(HaveOccurred())
			Expect(p[:n]).To(Equal([]byte("direct")))
		})

		It("should resolve the Send promise with the item cancellation", func() {
			startServer()

			cx, cn := context.WithCancel(c)
			cn()

			err := srv.Send(cx, &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 9}, []byte("late"))
			Expect(err).To(MatchError(context.Canceled))
		})
	})

	Context("posting while stopped", func() {
		It("should refuse post and report not running on send", func() {
			Expect(srv.Post(&net.UDPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 9}, []byte("x"))).To(BeFalse())

			err := srv.Send(c, &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 9}, []byte("x"))
			Expect(err).To(HaveOccurred())
		})
	})

	Context("lifecycle", func() {
		It("should stop on context cancellation", func() {
			startServer()

			cnl()

			Eventually(srv.IsRunning, 2*time.Second, 10*time.Millisecond).Should(BeFalse())
			Eventually(srv.Done(), 2*time.Second).Should(BeClosed())
		})

		It("should refuse a second concurrent listen", func() {
			startServer()
			Expect(srv.Listen(c)).To(HaveOccurred())
		})
	})
})
