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

// Package tcp provides the TCP client engine: it resolves the configured
// hostname, dials the remote endpoint, optionally performs the TLS
// handshake, then instantiates a remote peer and runs the receive loop until
// cancellation or stream close.
//
// The engine starts once: it does not reconnect nor retry. Stopping is
// cooperative, either through the context given to Start or through the
// peer's Disconnect.
package tcp

import (
	"sync/atomic"

	libatm "github.com/nabbar/golib/atomic"
	liberr "github.com/nabbar/golib/errors"
	liblog "github.com/nabbar/golib/logger"

	sckevt "github.com/nabbar/asyncnet"
	sckcfg "github.com/nabbar/asyncnet/config"
	sckfrm "github.com/nabbar/asyncnet/frame"
	sckper "github.com/nabbar/asyncnet/peer"
)

// ClientTcp is the extended surface of the TCP client engine.
type ClientTcp interface {
	sckevt.Client
}

// New returns a TCP client engine for the given configuration. The upd
// callback, if any, can configure or wrap the dialed connection before use.
// The dfg factory produces the initial defragmenter of the connection.
func New(upd sckevt.UpdateConn, dfg sckfrm.Factory, cfg sckcfg.ClientTCP) (ClientTcp, liberr.Error) {
	if dfg == nil {
		return nil, ErrorParamEmpty.Error(nil)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cli{
		u:  upd,
		d:  dfg,
		c:  cfg.Clone(),
		r:  new(atomic.Bool),
		p:  libatm.NewValue[sckper.RemotePeer](),
		lg: libatm.NewValue[liblog.FuncLog](),
		fe: libatm.NewValue[sckevt.FuncError](),
		fi: libatm.NewValue[sckevt.FuncInfo](),
		ff: libatm.NewValue[sckevt.FuncFrame](),
		fn: libatm.NewValue[sckevt.FuncConnection](),
		fc: libatm.NewValue[sckevt.FuncClosed](),
		fu: libatm.NewValue[sckevt.FuncUnhandled](),
		fa: libatm.NewValue[sckevt.FilterAddr](),
	}, nil
}
