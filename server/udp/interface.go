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

// Package udp provides the UDP server endpoint: it binds the configured
// local endpoint, optionally joins a multicast group, then runs a receive
// loop and a send worker until cancellation. Each enqueued item carries its
// destination address and is written as a single datagram.
package udp

import (
	"context"
	"net"
	"sync/atomic"

	libatm "github.com/nabbar/golib/atomic"
	liberr "github.com/nabbar/golib/errors"
	liblog "github.com/nabbar/golib/logger"

	sckevt "github.com/nabbar/asyncnet"
	sckcfg "github.com/nabbar/asyncnet/config"
	sckque "github.com/nabbar/asyncnet/queue"
)

// FuncMulticast joins or leaves the configured multicast group on the given
// socket. Registering one replaces the default x/net based implementation.
type FuncMulticast func(co *net.UDPConn, group net.IP) error

// ServerUdp is the extended surface of the UDP server endpoint.
type ServerUdp interface {
	sckevt.UdpEndpoint

	// RegisterFuncJoinGroup registers the callback joining the configured
	// multicast group once the socket is bound.
	RegisterFuncJoinGroup(fct FuncMulticast)

	// RegisterFuncLeaveGroup registers the callback leaving the configured
	// multicast group in the teardown path.
	RegisterFuncLeaveGroup(fct FuncMulticast)
}

// New returns a UDP server endpoint for the given configuration. The upd
// callback, if any, can configure the bound socket before use: when it
// returns a connection that is not a *net.UDPConn, the result is ignored.
func New(upd sckevt.UpdateConn, cfg sckcfg.ServerUDP) (ServerUdp, liberr.Error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &srv{
		u:  upd,
		c:  cfg.Clone(),
		r:  new(atomic.Bool),
		qu: libatm.NewValue[sckque.Bounded[item]](),
		cn: libatm.NewValue[context.CancelFunc](),
		dn: libatm.NewValue[chan struct{}](),
		lg: libatm.NewValue[liblog.FuncLog](),
		fe: libatm.NewValue[sckevt.FuncError](),
		fi: libatm.NewValue[sckevt.FuncInfo](),
		fp: libatm.NewValue[sckevt.FuncPacket](),
		fs: libatm.NewValue[sckevt.FuncSendError](),
		fj: libatm.NewValue[FuncMulticast](),
		fl: libatm.NewValue[FuncMulticast](),
	}, nil
}
