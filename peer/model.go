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

package peer

import (
	"context"
	"io"
	"net"
	"sync/atomic"
	"time"

	libatm "github.com/nabbar/golib/atomic"
	libclo "github.com/nabbar/golib/ioutils/mapCloser"

	sckevt "github.com/nabbar/asyncnet"
	sckbuf "github.com/nabbar/asyncnet/bufview"
	sckfrm "github.com/nabbar/asyncnet/frame"
	sckque "github.com/nabbar/asyncnet/queue"
	sckrsn "github.com/nabbar/asyncnet/reason"
)

// item packages one outgoing buffer view with its cancellation handle.
type item struct {
	d sckbuf.View
	x context.Context
}

type prr struct {
	co net.Conn           // underlying stream, plain or TLS
	x  context.Context    // peer local context
	n  context.CancelFunc // peer local cancellation
	qu sckque.Bounded[item]
	cl libclo.Closer // custom resources holder

	df libatm.Value[sckfrm.Defragmenter]
	sw atomic.Bool   // protocol switched since last frame read
	rs atomic.Uint32 // close reason latch, 0 = unset, else reason+1
	td atomic.Bool   // teardown done
	dn chan struct{} // closed once teardown is complete

	fe sckevt.FuncError
	fu sckevt.FuncUnhandled
	fr libatm.Value[sckevt.FuncFrame]
	fc libatm.Value[sckevt.FuncClosed]
}

func (o *prr) LocalAddr() net.Addr {
	return o.co.LocalAddr()
}

func (o *prr) RemoteAddr() net.Addr {
	return o.co.RemoteAddr()
}

func (o *prr) Context() context.Context {
	return o.x
}

func (o *prr) Conn() net.Conn {
	return o.co
}

func (o *prr) Done() <-chan struct{} {
	return o.dn
}

func (o *prr) Post(data []byte) bool {
	return o.qu.Push(item{
		d: sckbuf.Of(data),
	})
}

func (o *prr) PostRange(data []byte, offset, count int) bool {
	v, e := sckbuf.New(data, offset, count)

	if e != nil {
		return false
	}

	return o.qu.Push(item{
		d: v,
	})
}

func (o *prr) Send(ctx context.Context, data []byte) (bool, error) {
	return o.qu.Send(ctx, item{
		d: sckbuf.Of(data),
		x: ctx,
	})
}

func (o *prr) SendRange(ctx context.Context, data []byte, offset, count int) (bool, error) {
	v, e := sckbuf.New(data, offset, count)

	if e != nil {
		return false, e
	}

	return o.qu.Send(ctx, item{
		d: v,
		x: ctx,
	})
}

func (o *prr) Disconnect(r sckrsn.Reason) {
	o.SetReason(r)
	o.n()
}

func (o *prr) SetReason(r sckrsn.Reason) bool {
	return o.rs.CompareAndSwap(0, uint32(r)+1)
}

func (o *prr) Reason() sckrsn.Reason {
	if v := o.rs.Load(); v > 0 {
		return sckrsn.Reason(v - 1)
	}

	return sckrsn.Unknown
}

func (o *prr) SwitchProtocol(fct sckfrm.Factory) {
	if fct == nil {
		return
	}

	if d := fct(); d != nil {
		o.df.Store(d)
		o.sw.Store(true)
	}
}

func (o *prr) Defragmenter() sckfrm.Defragmenter {
	return o.df.Load()
}

func (o *prr) ConsumeSwitch() bool {
	return o.sw.Swap(false)
}

func (o *prr) RegisterCloser(clo ...io.Closer) {
	o.cl.Add(clo...)
}

func (o *prr) RegisterFuncFrame(fct sckevt.FuncFrame) {
	if fct == nil {
		fct = func(p sckevt.Peer, frame []byte) {}
	}

	o.fr.Store(fct)
}

func (o *prr) RegisterFuncClosed(fct sckevt.FuncClosed) {
	if fct == nil {
		fct = func(p sckevt.Peer, r sckrsn.Reason) {}
	}

	o.fc.Store(fct)
}

func (o *prr) EmitFrame(frame []byte) {
	if f := o.fr.Load(); f != nil {
		f(o, frame)
	}
}

func (o *prr) emitClosed() {
	defer func() {
		if rec := recover(); rec != nil {
			o.fu(o, ErrorHandlerPanic.Error(nil))
		}
	}()

	if f := o.fc.Load(); f != nil {
		f(o, o.Reason())
	}
}

func (o *prr) Teardown() {
	if o.td.Swap(true) {
		return
	}

	// the latch is written exactly once, even on unclassified errors
	o.SetReason(sckrsn.Unknown)
	o.n()

	// unblock any in-flight write so the queue can drain
	_ = o.co.SetWriteDeadline(time.Now())

	o.qu.Complete()
	<-o.qu.Done()

	if e := o.cl.Close(); e != nil {
		if e = sckevt.ErrorFilter(e); e != nil {
			o.fe(e)
		}
	}

	if e := o.co.Close(); e != nil {
		if e = sckevt.ErrorFilter(e); e != nil {
			o.fe(e)
		}
	}

	o.emitClosed()
	close(o.dn)
}
