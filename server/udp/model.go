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

package udp

import (
	"context"
	"errors"
	"net"
	"sync/atomic"
	"time"

	libatm "github.com/nabbar/golib/atomic"
	liblog "github.com/nabbar/golib/logger"
	libptc "github.com/nabbar/golib/network/protocol"
	"golang.org/x/net/ipv4"
	"golang.org/x/net/ipv6"

	sckevt "github.com/nabbar/asyncnet"
	sckbuf "github.com/nabbar/asyncnet/bufview"
	sckcfg "github.com/nabbar/asyncnet/config"
	sckque "github.com/nabbar/asyncnet/queue"
)

// item packages one outgoing datagram with its destination address, its
// cancellation handle and its optional completion promise.
type item struct {
	to net.Addr
	d  sckbuf.View
	x  context.Context
	p  chan error
}

type srv struct {
	u sckevt.UpdateConn
	c sckcfg.ServerUDP
	r *atomic.Bool

	qu libatm.Value[sckque.Bounded[item]]
	cn libatm.Value[context.CancelFunc]
	dn libatm.Value[chan struct{}]

	lg libatm.Value[liblog.FuncLog]
	fe libatm.Value[sckevt.FuncError]
	fi libatm.Value[sckevt.FuncInfo]
	fp libatm.Value[sckevt.FuncPacket]
	fs libatm.Value[sckevt.FuncSendError]
	fj libatm.Value[FuncMulticast]
	fl libatm.Value[FuncMulticast]
}

func (o *srv) IsRunning() bool {
	return o.r.Load()
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
	if n := o.cn.Load(); n != nil {
		n()
	}

	return nil
}

func (o *srv) Listen(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
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
		ntw = libptc.NetworkUDP.Code()
	}

	adr, er := net.ResolveUDPAddr(ntw, o.c.Address)

	if er != nil {
		err := ErrorAddressInvalid.Error(er)
		o.fctError(err)
		return err
	}

	co, er := net.ListenUDP(ntw, adr)

	if er != nil {
		err := ErrorServerListen.Error(er)
		o.fctError(err)
		return err
	}

	if o.u != nil {
		if c := o.u(co); c != nil {
			if u, k := c.(*net.UDPConn); k {
				co = u
			}
		}
	}

	o.fctInfo(co.LocalAddr(), nil, sckevt.EngineStart)
	defer o.fctInfo(co.LocalAddr(), nil, sckevt.EngineStop)

	grp := o.multicastGroup()

	if grp != nil {
		if e := o.joinGroup(co, grp); e != nil {
			_ = co.Close()
			err := ErrorMulticastJoin.Error(e)
			o.fctError(err)
			return err
		}
	}

	qu := sckque.New[item](x, o.c.SendQueueSize, o.worker(co))
	qu.RegisterFuncError(o.fctError)
	o.qu.Store(qu)

	// unblock the pending read on cancellation
	go func() {
		<-x.Done()
		_ = co.SetReadDeadline(time.Now())
	}()

	o.recv(x, co)

	qu.Complete()
	<-qu.Done()

	if grp != nil {
		if e := o.leaveGroup(co, grp); e != nil {
			o.fctError(ErrorMulticastLeave.Error(e))
		}
	}

	if e := co.Close(); e != nil {
		if e = sckevt.ErrorFilter(e); e != nil {
			o.fctError(e)
		}
	}

	return nil
}

func (o *srv) multicastGroup() net.IP {
	if o.c.MulticastGroup == "" {
		return nil
	}

	g := o.c.MulticastGroup

	if h, _, e := net.SplitHostPort(g); e == nil {
		g = h
	}

	return net.ParseIP(g)
}

func (o *srv) joinGroup(co *net.UDPConn, grp net.IP) error {
	if f := o.fj.Load(); f != nil {
		return f(co, grp)
	}

	if grp.To4() != nil {
		return ipv4.NewPacketConn(co).JoinGroup(nil, &net.UDPAddr{IP: grp})
	}

	return ipv6.NewPacketConn(co).JoinGroup(nil, &net.UDPAddr{IP: grp})
}

func (o *srv) leaveGroup(co *net.UDPConn, grp net.IP) error {
	if f := o.fl.Load(); f != nil {
		return f(co, grp)
	}

	if grp.To4() != nil {
		return ipv4.NewPacketConn(co).LeaveGroup(nil, &net.UDPAddr{IP: grp})
	}

	return ipv6.NewPacketConn(co).LeaveGroup(nil, &net.UDPAddr{IP: grp})
}

// worker writes one datagram per item to the destination bound into it and
// resolves the item promise with the true send status.
func (o *srv) worker(co *net.UDPConn) sckque.Worker[item] {
	return func(x context.Context, i item) {
		if i.x != nil && i.x.Err() != nil {
			resolve(i, i.x.Err())
			return
		}

		if i.to == nil {
			e := ErrorParamEmpty.Error(nil)
			o.fctSendError(nil, 0, e)
			resolve(i, e)
			return
		}

		b := i.d.Bytes()
		n, e := co.WriteTo(b, i.to)

		switch {
		case e != nil:
			o.fctSendError(i.to, 0, e)
			resolve(i, ErrorSendFailed.Error(e))
		case n != len(b):
			o.fctSendError(i.to, n, nil)
			resolve(i, ErrorPartialWrite.Error(nil))
		default:
			resolve(i, nil)
		}
	}
}

func resolve(i item, e error) {
	if i.p == nil {
		return
	}

	select {
	case i.p <- e:
	default:
	}
}

func (o *srv) recv(x context.Context, co *net.UDPConn) {
	p := make([]byte, sckevt.DefaultBufferSize)

	for {
		if x.Err() != nil {
			return
		}

		n, adr, e := co.ReadFromUDP(p)

		if n > 0 {
			b := make([]byte, n)
			copy(b, p[:n])
			go o.emitPacket(adr, b)
		}

		if e != nil {
			if x.Err() != nil || errors.Is(e, net.ErrClosed) {
				return
			}

			if e = sckevt.ErrorFilter(e); e != nil {
				o.fctError(ErrorReadSocket.Error(e))
			}
		}
	}
}

func (o *srv) emitPacket(from net.Addr, data []byte) {
	defer func() {
		if rec := recover(); rec != nil {
			o.fctError(ErrorHandlerPanic.Error(nil))
		}
	}()

	if f := o.fp.Load(); f != nil {
		f(from, data)
	}
}

func (o *srv) Post(to net.Addr, data []byte) bool {
	if q := o.qu.Load(); q != nil {
		return q.Push(item{to: to, d: sckbuf.Of(data)})
	}

	return false
}

func (o *srv) PostRange(to net.Addr, data []byte, offset, count int) bool {
	v, e := sckbuf.New(data, offset, count)

	if e != nil {
		return false
	}

	if q := o.qu.Load(); q != nil {
		return q.Push(item{to: to, d: v})
	}

	return false
}

func (o *srv) Enqueue(ctx context.Context, to net.Addr, data []byte) (bool, error) {
	if q := o.qu.Load(); q != nil {
		return q.Send(ctx, item{to: to, d: sckbuf.Of(data), x: ctx})
	}

	return false, nil
}

func (o *srv) Send(ctx context.Context, to net.Addr, data []byte) error {
	return o.send(ctx, to, sckbuf.Of(data))
}

func (o *srv) SendRange(ctx context.Context, to net.Addr, data []byte, offset, count int) error {
	v, e := sckbuf.New(data, offset, count)

	if e != nil {
		return e
	}

	return o.send(ctx, to, v)
}

func (o *srv) send(ctx context.Context, to net.Addr, v sckbuf.View) error {
	if ctx == nil {
		ctx = context.Background()
	}

	q := o.qu.Load()

	if q == nil {
		return ErrorNotRunning.Error(nil)
	}

	p := make(chan error, 1)

	ok, e := q.Send(ctx, item{to: to, d: v, x: ctx, p: p})

	if e != nil {
		return e
	} else if !ok {
		return sckque.ErrorQueueClosed.Error(nil)
	}

	select {
	case e = <-p:
		return e
	case <-ctx.Done():
		return ctx.Err()
	}
}
