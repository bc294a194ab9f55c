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

// Package udp provides the UDP client endpoint: it resolves the configured
// target, connects the datagram socket to the selected address, then runs a
// receive loop and a send worker until cancellation.
//
// Datagrams are sent one-to-one with socket calls: one enqueued item is one
// datagram on the wire. The Send call reports the true end-to-end send
// status of its datagram through a per-item completion promise, always
// resolved, including on socket errors.
package udp

import (
	"context"
	"sync/atomic"

	libatm "github.com/nabbar/golib/atomic"
	liberr "github.com/nabbar/golib/errors"
	liblog "github.com/nabbar/golib/logger"

	sckevt "github.com/nabbar/asyncnet"
	sckcfg "github.com/nabbar/asyncnet/config"
	sckque "github.com/nabbar/asyncnet/queue"
)

// ClientUdp is the extended surface of the UDP client endpoint.
type ClientUdp interface {
	sckevt.UdpEndpoint

	// RegisterFuncSelect registers the callback picking the target IP among
	// the resolved list. Default is the first resolved address.
	RegisterFuncSelect(fct sckevt.SelectAddr)
}

// New returns a UDP client endpoint for the given configuration. The upd
// callback, if any, can configure or wrap the connected socket before use.
func New(upd sckevt.UpdateConn, cfg sckcfg.ClientUDP) (ClientUdp, liberr.Error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cli{
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
		sa: libatm.NewValue[sckevt.SelectAddr](),
	}, nil
}
