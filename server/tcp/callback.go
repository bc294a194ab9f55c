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
	"net"

	liblog "github.com/nabbar/golib/logger"
	loglvl "github.com/nabbar/golib/logger/level"

	sckevt "github.com/nabbar/asyncnet"
	sckrsn "github.com/nabbar/asyncnet/reason"
)

func (o *srv) RegisterLogger(fct liblog.FuncLog) {
	if fct == nil {
		return
	}

	o.lg.Store(fct)
}

func (o *srv) RegisterFuncError(fct sckevt.FuncError) {
	if fct == nil {
		fct = func(e ...error) {}
	}

	o.fe.Store(fct)
}

func (o *srv) RegisterFuncInfo(fct sckevt.FuncInfo) {
	if fct == nil {
		fct = func(local, remote net.Addr, state sckevt.ConnState) {}
	}

	o.fi.Store(fct)
}

func (o *srv) RegisterFuncFrame(fct sckevt.FuncFrame) {
	if fct == nil {
		fct = func(p sckevt.Peer, frame []byte) {}
	}

	o.ff.Store(fct)
}

func (o *srv) RegisterFuncConnection(fct sckevt.FuncConnection) {
	if fct == nil {
		fct = func(p sckevt.Peer) {}
	}

	o.fn.Store(fct)
}

func (o *srv) RegisterFuncClosed(fct sckevt.FuncClosed) {
	if fct == nil {
		fct = func(p sckevt.Peer, r sckrsn.Reason) {}
	}

	o.fc.Store(fct)
}

func (o *srv) RegisterFuncUnhandled(fct sckevt.FuncUnhandled) {
	if fct == nil {
		fct = func(p sckevt.Peer, e error) {}
	}

	o.fu.Store(fct)
}

func (o *srv) logError(msg string, err ...error) {
	if l := o.lg.Load(); l != nil {
		if lg := l(); lg != nil {
			lg.Entry(loglvl.ErrorLevel, msg).ErrorAdd(true, err...).Log()
		}
	}
}

func (o *srv) logInfo(msg string, arg ...interface{}) {
	if l := o.lg.Load(); l != nil {
		if lg := l(); lg != nil {
			lg.Entry(loglvl.InfoLevel, msg, arg...).Log()
		}
	}
}

func (o *srv) fctError(e ...error) {
	o.logError("tcp server error", e...)

	if f := o.fe.Load(); f != nil {
		f(e...)
	}
}

func (o *srv) fctInfo(local, remote net.Addr, state sckevt.ConnState) {
	o.logInfo("tcp server: %s", state.String())

	if f := o.fi.Load(); f != nil {
		f(local, remote, state)
	}
}

func (o *srv) fctUnhandled(p sckevt.Peer, e error) {
	o.logError("tcp server unhandled error", e)

	if f := o.fu.Load(); f != nil {
		f(p, e)
	}
}
