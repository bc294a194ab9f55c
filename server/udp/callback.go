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
	"net"

	liblog "github.com/nabbar/golib/logger"
	loglvl "github.com/nabbar/golib/logger/level"

	sckevt "github.com/nabbar/asyncnet"
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

func (o *srv) RegisterFuncPacket(fct sckevt.FuncPacket) {
	if fct == nil {
		fct = func(from net.Addr, data []byte) {}
	}

	o.fp.Store(fct)
}

func (o *srv) RegisterFuncSendError(fct sckevt.FuncSendError) {
	if fct == nil {
		fct = func(to net.Addr, partial int, e error) {}
	}

	o.fs.Store(fct)
}

func (o *srv) RegisterFuncJoinGroup(fct FuncMulticast) {
	if fct == nil {
		return
	}

	o.fj.Store(fct)
}

func (o *srv) RegisterFuncLeaveGroup(fct FuncMulticast) {
	if fct == nil {
		return
	}

	o.fl.Store(fct)
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
	o.logError("udp server error", e...)

	if f := o.fe.Load(); f != nil {
		f(e...)
	}
}

func (o *srv) fctInfo(local, remote net.Addr, state sckevt.ConnState) {
	o.logInfo("udp server: %s", state.String())

	if f := o.fi.Load(); f != nil {
		f(local, remote, state)
	}
}

func (o *srv) fctSendError(to net.Addr, partial int, e error) {
	if e != nil {
		o.logError("udp server send error", e)
	}

	if f := o.fs.Load(); f != nil {
		f(to, partial, e)
	}
}
