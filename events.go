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

package asyncnet

import (
	"net"

	sckrsn "github.com/nabbar/asyncnet/reason"
)

// FuncError is the callback type receiving errors of an endpoint.
type FuncError func(e ...error)

// FuncInfo is the callback type receiving lifecycle states of an endpoint,
// with the local and remote addresses known at that point (either may be nil).
type FuncInfo func(local, remote net.Addr, state ConnState)

// FuncFrame is the callback type receiving a reassembled frame for a peer.
// The frame slice is owned by the callback and will not be reused.
type FuncFrame func(p Peer, frame []byte)

// FuncConnection is the callback type called once a peer connection is
// established (after the TLS handshake, if any).
type FuncConnection func(p Peer)

// FuncClosed is the callback type called exactly once when a peer connection
// is torn down, with the classified close reason.
type FuncClosed func(p Peer, r sckrsn.Reason)

// FuncUnhandled is the callback type receiving errors raised by a
// defragmenter or a user event handler that the engine cannot classify.
// The peer may be nil when the error is not bound to a connection.
type FuncUnhandled func(p Peer, e error)

// FuncPacket is the callback type receiving one datagram of a UDP endpoint.
type FuncPacket func(from net.Addr, data []byte)

// FuncSendError is the callback type called when a UDP send worker could not
// fully write a datagram: partial is the number of bytes written on a short
// write, e is the socket error otherwise.
type FuncSendError func(to net.Addr, partial int, e error)

// UpdateConn allows the caller to configure or wrap a connection before the
// endpoint uses it. Returning nil keeps the given connection unchanged.
type UpdateConn func(co net.Conn) net.Conn

// UpdateListener allows the caller to configure or wrap a listener before the
// server uses it. Returning nil keeps the given listener unchanged.
type UpdateListener func(l net.Listener) net.Listener

// FilterAddr filters the resolved IP list of a TCP client before dialing.
// Returning a nil or empty slice makes the client fall back to dialing the
// configured hostname directly.
type FilterAddr func(addr []net.IP) []net.IP

// SelectAddr picks the IP a UDP client connects to among the resolved list.
// Returning nil makes the client use the first resolved address.
type SelectAddr func(addr []net.IP) net.IP
