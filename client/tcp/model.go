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

package tcp

import (
	"context"
	"net"
	"sync/atomic"

	libatm "github.com/nabbar/golib/atomic"
	liberr "github.com/nabbar/golib/errors"
	liblog "github.com/nabbar/golib/logger"
	libptc "github.com/nabbar/golib/network/protocol"

	sckevt "github.com/nabbar/asyncnet"
	sckcfg "github.com/nabbar/asyncnet/config"
	sckfrm "github.com/nabbar/asyncnet/frame"
	sckper "github.com/nabbar/asyncnet/peer"
)

type cli struct {
	u sckevt.UpdateConn
	d sckfrm.Factory
	c sckcfg.ClientTCP
	r *atomic.Bool

	p  libatm.Value[sckper.RemotePeer]
	lg libatm.Value[liblog.FuncLog]
	fe libatm.Value[sckevt.FuncError]
	fi libatm.Value[sckevt.FuncInfo]
	ff libatm.Value[sckevt.FuncFrame]
	fn libatm.Value[sckevt.FuncConnection]
	fc libatm.Value[sckevt.FuncClosed]
	fu libatm.Value[sckevt.FuncUnhandled]
	fa libatm.Value[sckevt.FilterAddr]
}

func (o *cli) IsRunning() bool {
	return o.r.Load()
}

func (o *cli) Peer() sckevt.Peer {
	if p := o.p.Load(); p != nil {
		return p
	}

	return nil
}

func (o *cli) Start(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	if o.r.Swap(true) {
		return ErrorAlreadyStarted.Error(nil)
	}

	defer o.r.Store(false)

	o.fctInfo(nil, nil, sckevt.EngineStart)
	defer o.fctInfo(nil, nil, sckevt.EngineStop)

	co, err := o.dial(ctx)

	if err != nil {
		if ctx.Err() != nil {
			return nil
		}

		o.fctError(err)
		return err
	} else if co == nil {
		return nil
	}

	return o.handle(ctx, co)
}

// dial resolves the configured address, applies the registered filter, then
// dials the candidates in order. A nil or empty filtered list falls back to
// dialing the configured hostname directly.
func (o *cli) dial(ctx context.Context) (net.Conn, liberr.Error) {
	hst, prt, er := net.SplitHostPort(o.c.Address)

	if er != nil {
		return nil, ErrorAddressInvalid.Error(er)
	}

	ntw := o.c.Network.Code()
	if ntw == "" {
		ntw = libptc.NetworkTCP.Code()
	}

	o.fctInfo(nil, nil, sckevt.ConnectionResolve)

	adr, er := net.DefaultResolver.LookupIPAddr(ctx, hst)

	if er != nil {
		return nil, ErrorAddressResolve.Error(er)
	}

	ips := make([]net.IP, 0, len(adr))
	for _, a := range adr {
		ips = append(ips, a.IP)
	}

	if f := o.fa.Load(); f != nil {
		ips = f(ips)
	}

	dlr := &net.Dialer{}

	if len(ips) < 1 {
		o.fctInfo(nil, nil, sckevt.ConnectionDial)

		co, e := dlr.DialContext(ctx, ntw, o.c.Address)

		if e != nil {
			return nil, ErrorConnectionDial.Error(e)
		}

		return co, nil
	}

	var lst error

	for _, i := range ips {
		o.fctInfo(nil, nil, sckevt.ConnectionDial)

		co, e := dlr.DialContext(ctx, ntw, net.JoinHostPort(i.String(), prt))

		if e == nil {
			return co, nil
		}

		lst = e

		if ctx.Err() != nil {
			break
		}
	}

	return nil, ErrorConnectionDial.Error(lst)
}

// handle runs the shared post-connect path over the dialed connection.
func (o *cli) handle(ctx context.Context, co net.Conn) error {
	if o.u != nil {
		if c := o.u(co); c != nil {
			co = c
		}
	}

	if o.c.TLS.Enabled {
		o.fctInfo(co.LocalAddr(), co.RemoteAddr(), sckevt.ConnectionHandshake)

		var err liberr.Error

		if co, err = sckper.Handshake(ctx, co, o.c.TLS.TlsConfig(), false); err != nil {
			o.fctError(err)
			return err
		}
	}

	rp, err := sckper.New(ctx, co, o.c.SendQueueSize, o.d, o.fctError, o.fctUnhandled)

	if err != nil {
		_ = co.Close()
		o.fctError(err)
		return err
	}

	o.p.Store(rp)

	o.fctInfo(co.LocalAddr(), co.RemoteAddr(), sckevt.ConnectionNew)
	o.emit(rp, func() {
		if f := o.fn.Load(); f != nil {
			f(rp)
		}
	})

	o.fctInfo(co.LocalAddr(), co.RemoteAddr(), sckevt.ConnectionRead)
	sckper.Serve(rp, o.c.ConnectionTimeout.Time(), o.ff.Load(), o.fctError, o.fctUnhandled)

	o.fctInfo(co.LocalAddr(), co.RemoteAddr(), sckevt.ConnectionClose)
	o.emit(rp, func() {
		if f := o.fc.Load(); f != nil {
			f(rp, rp.Reason())
		}
	})

	return nil
}

// emit runs an engine-level event handler: a panic inside the handler is
// reported as an unhandled error and never stops the engine.
func (o *cli) emit(rp sckevt.Peer, fct func()) {
	defer func() {
		if rec := recover(); rec != nil {
			o.fctUnhandled(rp, sckper.ErrorHandlerPanic.Error(nil))
		}
	}()

	fct()
}
