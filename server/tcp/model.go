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
	"errors"
	"net"
	"sync/atomic"

	libatm "github.com/nabbar/golib/atomic"
	liberr "github.com/nabbar/golib/errors"
	liblog "github.com/nabbar/golib/logger"
	libptc "github.com/nabbar/golib/network/protocol"
	"golang.org/x/sync/errgroup"

	sckevt "github.com/nabbar/asyncnet"
	sckcfg "github.com/nabbar/asyncnet/config"
	sckfrm "github.com/nabbar/asyncnet/frame"
	sckper "github.com/nabbar/asyncnet/peer"
)

type srv struct {
	u sckevt.UpdateConn
	l sckevt.UpdateListener
	d sckfrm.Factory
	c sckcfg.ServerTCP

	r  *atomic.Bool  // accept loop running
	g  *atomic.Bool  // server closed for good
	nb *atomic.Int64 // open peer connections

	cn libatm.Value[context.CancelFunc]
	dn libatm.Value[chan struct{}]

	lg libatm.Value[liblog.FuncLog]
	fe libatm.Value[sckevt.FuncError]
	fi libatm.Value[sckevt.FuncInfo]
	ff libatm.Value[sckevt.FuncFrame]
	fn libatm.Value[sckevt.FuncConnection]
	fc libatm.Value[sckevt.FuncClosed]
	fu libatm.Value[sckevt.FuncUnhandled]
}

func (o *srv) IsRunning() bool {
	return o.r.Load()
}

func (o *srv) IsGone() bool {
	return o.g.Load()
}

func (o *srv) OpenConnections() int64 {
	return o.nb.Load()
}

func (o *srv) Done() <-chan struct{} {
	if d := o.dn.Load(); d != nil {
		return d
	}

	d := make(chan struct{})
	close(d)
	return d
}

func (o *srv) Close() error {
	o.g.Store(true)

	if n := o.cn.Load(); n != nil {
		n()
	}

	return nil
}

func (o *srv) Shutdown(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	_ = o.Close()

	select {
	case <-o.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (o *srv) Listen(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	if o.g.Load() {
		return ErrorServerGone.Error(nil)
	}

	if o.r.Swap(true) {
		return ErrorAlreadyStarted.Error(nil)
	}

	defer o.r.Store(false)

	x, n := context.WithCancel(ctx)
	defer n()

	o.cn.Store(n)

	dn := make(chan struct{})
	o.dn.Store(dn)
	defer close(dn)

	ntw := o.c.Network.Code()
	if ntw == "" {
		ntw = libptc.NetworkTCP.Code()
	}

	lst, er := net.Listen(ntw, o.c.Address)

	if er != nil {
		err := ErrorServerListen.Error(er)
		o.fctError(err)
		return err
	}

	if o.l != nil {
		if l := o.l(lst); l != nil {
			lst = l
		}
	}

	o.fctInfo(lst.Addr(), nil, sckevt.EngineStart)
	defer o.fctInfo(lst.Addr(), nil, sckevt.EngineStop)

	// unblock the pending accept on cancellation
	go func() {
		<-x.Done()
		_ = lst.Close()
	}()

	grp := new(errgroup.Group)

	for {
		co, e := lst.Accept()

		if e != nil {
			if x.Err() != nil || errors.Is(e, net.ErrClosed) {
				break
			}

			if e = sckevt.ErrorFilter(e); e != nil {
				o.fctError(ErrorServerAccept.Error(e))
			}

			continue
		}

		o.nb.Add(1)

		grp.Go(func() error {
			defer o.nb.Add(-1)
			o.handle(x, co)
			return nil
		})
	}

	_ = lst.Close()
	_ = grp.Wait()

	return nil
}

// handle runs the shared post-connect path over one accepted connection.
func (o *srv) handle(ctx context.Context, co net.Conn) {
	if o.u != nil {
		if c := o.u(co); c != nil {
			co = c
		}
	}

	if o.c.TLS.Enabled {
		o.fctInfo(co.LocalAddr(), co.RemoteAddr(), sckevt.ConnectionHandshake)

		var err liberr.Error

		if co, err = sckper.Handshake(ctx, co, o.c.TLS.TlsConfig(), true); err != nil {
			o.fctError(err)
			return
		}
	}

	rp, err := sckper.New(ctx, co, o.c.MaxSendQueuePerPeerSize, o.d, o.fctError, o.fctUnhandled)

	if err != nil {
		_ = co.Close()
		o.fctError(err)
		return
	}

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
}

// emit runs an engine-level event handler: a panic inside the handler is
// reported as an unhandled error and never stops the engine.
func (o *srv) emit(rp sckevt.Peer, fct func()) {
	defer func() {
		if rec := recover(); rec != nil {
			o.fctUnhandled(rp, sckper.ErrorHandlerPanic.Error(nil))
		}
	}()

	fct()
}
