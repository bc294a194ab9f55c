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

import liberr "github.com/nabbar/golib/errors"

const (
	// ErrorParamEmpty to ErrorParamEmpty+9 are reserved for this package.
	ErrorParamEmpty liberr.CodeError = iota + liberr.MinAvailable + 90
	ErrorAlreadyStarted
	ErrorNotRunning
	ErrorAddressInvalid
	ErrorAddressResolve
	ErrorConnectionDial
	ErrorPartialWrite
	ErrorSendFailed
	ErrorReadSocket
	ErrorHandlerPanic
)

var isCodeError = false

func IsCodeError() bool {
	return isCodeError
}

func init() {
	isCodeError = liberr.ExistInMapMessage(ErrorParamEmpty)
	liberr.RegisterIdFctMessage(ErrorParamEmpty, getMessage)
}

func getMessage(code liberr.CodeError) (message string) {
	switch code {
	case liberr.UNK_ERROR:
		return ""
	case ErrorParamEmpty:
		return "given parameters is empty"
	case ErrorAlreadyStarted:
		return "client is already started"
	case ErrorNotRunning:
		return "client is not running"
	case ErrorAddressInvalid:
		return "configured address is not a valid host:port"
	case ErrorAddressResolve:
		return "cannot resolve the configured hostname"
	case ErrorConnectionDial:
		return "cannot connect the datagram socket"
	case ErrorPartialWrite:
		return "datagram has been partially written to the socket"
	case ErrorSendFailed:
		return "error while writing the datagram to the socket"
	case ErrorReadSocket:
		return "error while reading the datagram socket"
	case ErrorHandlerPanic:
		return "user event handler recover a panic"
	}

	return ""
}
