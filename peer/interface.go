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

// Package peer encapsulates one live TCP connection: the underlying stream
// (plain or TLS), the bounded ordered send queue feeding it, the current
// defragmenter, the close-reason latch and the per-peer events.
//
// The send queue worker only captures the stream handle and the error
// callback, never the peer itself, so the peer can be collected once torn
// down. The close-reason latch is written at most once: the first reason
// stored wins and is the one reported by the connection-closed event.
package peer

import (
	"context"
	"net"

	libatm "github.com/nabbar/golib/atomic"
	liberr "github.com/nabbar/golib/errors"
	libclo "github.com/nabbar/golib/ioutils/mapCloser"

	sckevt "github.com/nabbar/asyncnet"
	sckfrm "github.com/nabbar/asyncnet/frame"
	sckque "github.com/nabbar/asyncnet/queue"
	sckrsn "github.com/nabbar/asyncnet/reason"
)

// RemotePeer extends the public asyncnet.Peer surface with the operations
// the owning engine needs to drive the receive loop and the teardown path.
type RemotePeer interface {
	sckevt.Peer

	// Context returns the peer local context, cancelled by Disconnect or
	// when the engine context is cancelled.
	Context() context.Context

	// Conn returns the underlying stream handle.
	Conn() net.Conn

	// Defragmenter returns the defragmenter to use for the next frame read.
	Defragmenter() sckfrm.Defragmenter

	// ConsumeSwitch reports and clears the protocol-switch flag. When true,
	// the engine must discard the leftovers of the previous defragmenter.
	ConsumeSwitch() bool

	// SetReason writes the close-reason latch if it has not been written
	// yet. It returns true if the given reason has been stored.
	SetReason(r sckrsn.Reason) bool

	// EmitFrame invokes the per-peer frame-arrived callback, if any.
	EmitFrame(frame []byte)

	// Teardown closes the peer exactly once: custom resources are closed,
	// the send queue is completed and drained, the stream is closed, and
	// the per-peer connection-closed callback is invoked with the latched
	// reason. Subsequent calls do nothing.
	Teardown()
}

// New returns a RemotePeer over the given established stream. The engine
// context bounds the send queue; size is the queue capacity (< 1 means
// unbounded); dfg produces the initial defragmenter; fe and fu are the
// engine error and unhandled-error callbacks.
func New(ctx context.Context, co net.Conn, size int, dfg sckfrm.Factory, fe sckevt.FuncError, fu sckevt.FuncUnhandled) (RemotePeer, liberr.Error) {
	if co == nil {
		return nil, ErrorParamEmpty.Error(nil)
	} else if dfg == nil {
		return nil, ErrorParamEmpty.Error(nil)
	}

	if ctx == nil {
		ctx = context.Background()
	}

	if fe == nil {
		fe = func(e ...error) {}
	}

	if fu == nil {
		fu = func(p sckevt.Peer, e error) {}
	}

	x, n := context.WithCancel(ctx)

	o := &prr{
		co: co,
		x:  x,
		n:  n,
		fe: fe,
		fu: fu,
		cl: libclo.New(x),
		dn: make(chan struct{}),
		df: libatm.NewValue[sckfrm.Defragmenter](),
		fr: libatm.NewValue[sckevt.FuncFrame](),
		fc: libatm.NewValue[sckevt.FuncClosed](),
	}

	o.df.Store(dfg())

	// the worker captures the stream and the error callback, not the peer
	o.qu = sckque.New[item](ctx, size, workerFunc(co, fe))
	o.qu.RegisterFuncError(fe)

	return o, nil
}

func workerFunc(co net.Conn, fe sckevt.FuncError) sckque.Worker[item] {
	return func(ctx context.Context, i item) {
		if i.x != nil && i.x.Err() != nil {
			return
		}

		if _, e := co.Write(i.d.Bytes()); e != nil {
			if e = sckevt.ErrorFilter(e); e != nil {
				fe(ErrorWriteStream.Error(e))
			}
		}
	}
}
