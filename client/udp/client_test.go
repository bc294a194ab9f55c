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
	"sync/atomic"
	"time"

	libptc "github.com/nabbar/golib/network/protocol"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	sckclu "github.com/nabbar/asyncnet/client/udp"
	sckcfg "github.com/nabbar/asyncnet/config"
)

var _ = Describe("UDP Client", func() {
	var (
		c   context.Context
		cnl context.CancelFunc
		rmt *net.UDPConn
		adr string
	)

	BeforeEach(func() {
		c, cnl = context.WithCancel(x)

		var err error
		rmt, err = net.ListenUDP(libptc.NetworkUDP.Code(), &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
		Expect(err).ToNot(HaveOccurred())

		adr = rmt.LocalAddr().String()
	})

	AfterEach(func() {
		if rmt != nil {
			_ = rmt.Close()
		}
		if cnl != nil {
			cnl()
		}
		time.Sleep(20 * time.Millisecond)
	})

	newClient := func() sckclu.ClientUdp {
		cli, err := sckclu.New(nil, sckcfg.ClientUDP{
			Network: libptc.NetworkUDP,
			Address: adr,
		})
		Expect(err).ToNot(HaveOccurred())
		return cli
	}

	startClient := func(cli sckclu.ClientUdp) {
		go func() {
			defer GinkgoRecover()
			_ = cli.Listen(c)
		}()

		Eventually(cli.IsRunning, 2*time.Second, 10*time.Millisecond).Should(BeTrue())
	}

	Context("creation", func() {
		It("should refuse an invalid config", func() {
			cli, err := sckclu.New(nil, sckcfg.ClientUDP{
				Network: libptc.NetworkUDP,
			})

			Expect(err).To(HaveOccurred())
			Expect(cli).To(BeNil())
		})
	})

	Context("sending", func() {
		It("should deliver posted datagrams to the target", func() {
			cli := newClient()
			startClient(cli)

			Eventually(func() bool {
				return cli.Post(nil, []byte("hello"))
			}, 2*time.Second, 10*time.Millisecond).Should(BeTrue())

			p := make([]byte, 64)
			Expect(rmt.SetReadDeadline(time.Now().Add(2 * time.Second))).To(Succeed())

			n, _, e := rmt.ReadFromUDP(p)
			Expect(e).ToNot(HaveOccurred())
			Expect(p[:n]).To(Equal([]byte("hello")))
		})

		It("should resolve the Send promise on a complete write", func() {
			cli := newClient()
			startClient(cli)

			Eventually(func() error {
				return cli.Send(c, nil, []byte("tracked"))
			}, 2*time.Second, 10*time.Millisecond).Should(Succeed())

			p := make([]byte, 64)
			Expect(rmt.SetReadDeadline(time.Now().Add(2 * time.Second))).To(Succeed())

			n, _, e := rmt.ReadFromUDP(p)
			Expect(e).ToNot(HaveOccurred())
			Expect(p[:n]).To(Equal([]byte("tracked")))
		})

		It("should send a sub range of a buffer", func() {
			cli := newClient()
			startClient(cli)

			Eventually(func() error {
				return cli.SendRange(c, nil, []byte("abcdef"), 1, 3)
			}, 2*time.Second, 10*time.Millisecond).Should(Succeed())

			p := make([]byte, 64)
			Expect(rmt.SetReadDeadline(time.Now().Add(2 * time.Second))).To(Succeed())

			n, _, e := rmt.ReadFromUDP(p)
			Expect(e).ToNot(HaveOccurred())
			Expect(p[:n]).To(Equal([]byte("bcd")))
		})
	})

	Context("receiving", func() {
		It("should emit packet events for incoming datagrams", func() {
			var (
				mu  sync.Mutex
				got [][]byte
			)

			cli := newClient()
			cli.RegisterFuncPacket(func(from net.Addr, data []byte) {
				mu.Lock()
				got = append(got, data)
				mu.Unlock()
			})

			startClient(cli)

			// learn the client source address from its first datagram
			Eventually(func() error {
				return cli.Send(c, nil, []byte("syn"))
			}, 2*time.Second, 10*time.Millisecond).Should(Succeed())

			p := make([]byte, 64)
			Expect(rmt.SetReadDeadline(time.Now().Add(2 * time.Second))).To(Succeed())

			_, src, e := rmt.ReadFromUDP(p)
			Expect(e).ToNot(HaveOccurred())

			_, e = rmt.WriteToUDP([]byte("ack"), src)
			Expect(e).ToNot(HaveOccurred())

			Eventually(func() int {
				mu.Lock()
				defer mu.Unlock()
				return len(got)
			}, 2*time.Second, 10*time.Millisecond).Should(Equal(1))

			mu.Lock()
			defer mu.Unlock()
			Expect(got[0]).To(Equal([]byte("ack")))
		})
	})

	Context("lifecycle", func() {
		It("should stop on close and report not running afterwards", func() {
			cli := newClient()
			startClient(cli)

			Expect(cli.Close()).To(Succeed())

			Eventually(cli.IsRunning, 2*time.Second, 10*time.Millisecond).Should(BeFalse())
			Eventually(cli.Done(), 2*time.Second).Should(BeClosed())
		})

		It("should refuse posts once stopped", func() {
			cnt := new(atomic.Int32)

			cli := newClient()
			cli.RegisterFuncSendError(func(to net.Addr, partial int, e error) {
				cnt.Add(1)
			})

			startClient(cli)

			// closing the remote does not fail a udp write, but closing the
			// local socket does: stop then try to send
			Expect(cli.Close()).To(Succeed())
			Eventually(cli.IsRunning, 2*time.Second, 10*time.Millisecond).Should(BeFalse())

			Expect(cli.Post(nil, []byte("late"))).To(BeFalse())
		})
	})
})
