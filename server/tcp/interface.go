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

// Package tcp provides the TCP server engine: it binds the configured local
// endpoint, accepts connections until cancellation, and spawns a handler per
// accepted connection running the same post-connect path as the client
// engine (optional TLS handshake, remote peer, receive loop, teardown).
package tcp

import (
	"context"
	"sync/atomic"

	libatm "github.com/nabbar/golib/atomic"
	liberr "github.com/nabbar/golib/errors"
	liblog "github.com/nabbar/golib/logger"

	sckevt "github.com/nabbar/asyncnet"
	sckcfg "github.com/nabbar/asyncnet/config"
	sckfrm "github.com/nabbar/asyncnet/frame"
)

// ServerTcp is the extended surface of the TCP server engine.
type ServerTcp interface {
	sckevt.Server
}

// New returns a TCP server engine for the given configuration. The upd
// callback, if any, can configure or wrap each accepted connection before
// use; the lst callback can configure or wrap the listener. The dfg factory
// produces the initial defragmenter of each accepted connection.
func New(upd sckevt.UpdateConn, lst sckevt.UpdateListener, dfg sckfrm.Factory, cfg sckcfg.ServerTCP) (ServerTcp, liberr.Error) {
	if dfg == nil {
		return nil, ErrorParamEmpty.Error(nil)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &srv{
		u:  upd,
		l:  lst,
		d:  dfg,
		c:  cfg.Clone(),
		r:  new(atomic.Bool),
		g:  new(atomic.Bool),
		nb: new(atomic.Int64),
		cn: libatm.NewValue[context.CancelFunc](),
		dn: libatm.NewValue[chan struct{}](),
		lg: libatm.NewValue[liblog.FuncLog](),
		fe: libatm.NewValue[sckevt.FuncError](),
		fi: libatm.NewValue[sckevt.FuncInfo](),
		ff: libatm.NewValue[sckevt.FuncFrame](),
		fn: libatm.NewValue[sckevt.FuncConnection](),
		fc: libatm.NewValue[sckevt.FuncClosed](),
		fu: libatm.NewValue[sckevt.FuncUnhandled](),
	}, nil
}
