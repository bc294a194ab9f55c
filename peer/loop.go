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
	"crypto/tls"
	"net"
	"time"

	liberr "github.com/nabbar/golib/errors"

	sckevt "github.com/nabbar/asyncnet"
	sckbuf "github.com/nabbar/asyncnet/bufview"
	sckfrm "github.com/nabbar/asyncnet/frame"
	sckrsn "github.com/nabbar/asyncnet/reason"
)

// Handshake wraps the given connection into a TLS stream and performs the
// handshake when a tls config is given; otherwise the connection is returned
// unchanged. On handshake failure the connection is closed and an
// ErrorTLSHandshake is returned.
func Handshake(ctx context.Context, co net.Conn, cfg *tls.Config, server bool) (net.Conn, liberr.Error) {
	if cfg == nil {
		return co, nil
	}

	var t *tls.Conn

	if server {
		t = tls.Server(co, cfg)
	} else {
		t = tls.Client(co, cfg)
	}

	if e := t.HandshakeContext(ctx); e != nil {
		_ = co.Close()
		return nil, ErrorTLSHandshake.Error(e)
	}

	return t, nil
}

// Serve runs the receive loop of the given peer until the peer local context
// is cancelled, the stream is closed, or the defragmenter fails, then tears
// the peer down. The close reason is latched according to the outcome before
// the connection-closed events fire.
//
// Each produced frame is dispatched to the per-peer callback then to the
// given engine-level callback, both synchronously on the loop goroutine:
// frame events of one peer are causally ordered on both channels, and a
// protocol switch done inside a handler is guaranteed to apply before the
// next frame read. A slow handler delays the loop, never another peer. A
// panic inside a user handler is reported through fu and never stops the
// loop.
func Serve(rp RemotePeer, timeout time.Duration, ff sckevt.FuncFrame, fe sckevt.FuncError, fu sckevt.FuncUnhandled) {
	var (
		lft sckbuf.View
		co  = rp.Conn()
		x   = rp.Context()
	)

	if ff == nil {
		ff = func(p sckevt.Peer, frame []byte) {}
	}

	if fe == nil {
		fe = func(e ...error) {}
	}

	if fu == nil {
		fu = func(p sckevt.Peer, e error) {}
	}

	// unblock a read pending on the stream when the peer is cancelled
	go func() {
		<-x.Done()
		_ = co.SetReadDeadline(time.Now())
	}()

	defer rp.Teardown()

	for {
		if x.Err() != nil {
			rp.SetReason(sckrsn.LocalShutdown)
			return
		}

		// a protocol switch discards the previous leftovers
		if rp.ConsumeSwitch() {
			lft = sckbuf.View{}
		}

		if timeout > 0 {
			_ = co.SetReadDeadline(time.Now().Add(timeout))
		} else {
			_ = co.SetReadDeadline(time.Time{})
		}

		res, err := rp.Defragmenter().ReadFrame(x, co, lft)

		if err != nil {
			switch {
			case x.Err() != nil:
				// cancellation: keep the reason stored by Disconnect, if any
				rp.SetReason(sckrsn.LocalShutdown)
			case sckevt.IsTimeout(err):
				rp.SetReason(sckrsn.Timeout)
			case isUnhandled(err):
				fu(rp, err)
			default:
				if e := sckevt.ErrorFilter(err); e != nil {
					fe(e)
				}
			}
			return
		}

		switch res.Status {
		case sckfrm.StreamClosed:
			rp.SetReason(sckrsn.RemoteShutdown)
			return

		case sckfrm.FrameDropped:
			lft = sckbuf.View{}

		case sckfrm.FrameProduced:
			lft = res.Leftovers
			frm := res.Frame

			dispatch(rp, fu, func() { rp.EmitFrame(frm) })
			dispatch(rp, fu, func() { ff(rp, frm) })
		}
	}
}

func isUnhandled(err error) bool {
	if e, k := err.(liberr.Error); k {
		return e.IsCode(sckfrm.ErrorFrameUnhandled)
	}

	return false
}

func dispatch(rp RemotePeer, fu sckevt.FuncUnhandled, fct func()) {
	defer func() {
		if rec := recover(); rec != nil {
			fu(rp, ErrorHandlerPanic.Error(nil))
		}
	}()

	fct()
}
