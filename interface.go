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
	"context"
	"io"
	"net"

	liblog "github.com/nabbar/golib/logger"

	sckfrm "github.com/nabbar/asyncnet/frame"
	sckrsn "github.com/nabbar/asyncnet/reason"
)

// Peer is one live TCP connection and the state associated with it.
//
// A Peer is created by an engine (client or server) once the connection is
// established (and the TLS handshake done, if any). It exposes the outgoing
// send queue, the protocol switch and the per-peer events.
//
// All methods are safe for concurrent use from any goroutine.
type Peer interface {
	// LocalAddr returns the local network address of the underlying connection.
	LocalAddr() net.Addr

	// RemoteAddr returns the remote network address of the underlying connection.
	RemoteAddr() net.Addr

	// Post tries to enqueue the given data into the peer's send queue without
	// waiting. It returns false if the queue is full or completed.
	//
	// The data slice is shared by reference and must not be mutated by the
	// caller once handed off.
	Post(data []byte) bool

	// PostRange is Post over the sub-part of data defined by offset / count.
	// It returns false if the range is not valid for the given slice.
	PostRange(data []byte, offset, count int) bool

	// Send enqueues the given data into the peer's send queue, waiting for a
	// free slot if the queue is full. It returns true once the item has been
	// enqueued, or false if the queue has been completed before the item
	// could be enqueued. If the given context is cancelled first while the
	// peer is still running, the context error is returned.
	Send(ctx context.Context, data []byte) (bool, error)

	// SendRange is Send over the sub-part of data defined by offset / count.
	SendRange(ctx context.Context, data []byte, offset, count int) (bool, error)

	// Disconnect stores the given close reason (if none has been stored yet)
	// and triggers the peer local cancellation. The receive loop unwinds and
	// the connection-closed event is emitted with the first stored reason.
	// Calling Disconnect more than once has no further effect.
	Disconnect(r sckrsn.Reason)

	// SwitchProtocol replaces the current defragmenter with one produced by
	// the given factory. The switch takes effect at the next frame read and
	// never preempts a read already in progress. Leftover bytes buffered by
	// the previous defragmenter are discarded.
	SwitchProtocol(fct sckfrm.Factory)

	// RegisterCloser attaches opaque closable resources to the peer. They are
	// closed when the peer is torn down.
	RegisterCloser(clo ...io.Closer)

	// RegisterFuncFrame registers the per-peer frame-arrived callback.
	RegisterFuncFrame(fct FuncFrame)

	// RegisterFuncClosed registers the per-peer connection-closed callback.
	RegisterFuncClosed(fct FuncClosed)

	// Reason returns the close reason stored for this peer, or
	// reason.Unknown while the peer is still running.
	Reason() sckrsn.Reason

	// Done returns a channel closed once the peer is fully torn down.
	Done() <-chan struct{}
}

// Client is a TCP client engine. Start dials the configured remote endpoint,
// runs the receive loop and returns once the connection is torn down or the
// given context is cancelled.
type Client interface {
	// Start resolves the configured hostname, dials the remote endpoint,
	// optionally performs the TLS handshake, then runs the receive loop until
	// the context is cancelled or the connection is closed. It is a blocking
	// call: run it in a dedicated goroutine if needed.
	Start(ctx context.Context) error

	// IsRunning returns true while Start is running.
	IsRunning() bool

	// Peer returns the current remote peer, or nil while no connection is
	// established.
	Peer() Peer

	// RegisterLogger registers the function used to retrieve the logger
	// instance of this engine.
	RegisterLogger(fct liblog.FuncLog)

	// RegisterFuncError registers the callback receiving engine errors.
	RegisterFuncError(fct FuncError)

	// RegisterFuncInfo registers the callback receiving lifecycle states.
	RegisterFuncInfo(fct FuncInfo)

	// RegisterFuncFrame registers the engine-level frame-arrived callback.
	RegisterFuncFrame(fct FuncFrame)

	// RegisterFuncConnection registers the connection-established callback.
	RegisterFuncConnection(fct FuncConnection)

	// RegisterFuncClosed registers the engine-level connection-closed callback.
	RegisterFuncClosed(fct FuncClosed)

	// RegisterFuncUnhandled registers the callback receiving unhandled
	// defragmenter or handler errors.
	RegisterFuncUnhandled(fct FuncUnhandled)

	// RegisterFuncFilter registers the resolved-addresses filter applied
	// before dialing. Default is identity.
	RegisterFuncFilter(fct FilterAddr)
}

// Server is a TCP server engine. Listen binds the configured local endpoint
// and accepts connections until the given context is cancelled.
type Server interface {
	// Listen binds the configured address and accepts connections until the
	// context is cancelled or Close is called. Each accepted connection is
	// handled in its own goroutine. It is a blocking call.
	Listen(ctx context.Context) error

	// IsRunning returns true while the listener is accepting connections.
	IsRunning() bool

	// IsGone returns true once the server has been closed and will not
	// accept connections anymore.
	IsGone() bool

	// OpenConnections returns the number of currently open peer connections.
	OpenConnections() int64

	// Done returns a channel closed once the accept loop and all peer
	// handlers have returned.
	Done() <-chan struct{}

	// Close stops the listener and disconnects all peers.
	Close() error

	// Shutdown stops the listener then waits for all peer handlers to return
	// or for the given context to expire.
	Shutdown(ctx context.Context) error

	RegisterLogger(fct liblog.FuncLog)
	RegisterFuncError(fct FuncError)
	RegisterFuncInfo(fct FuncInfo)
	RegisterFuncFrame(fct FuncFrame)
	RegisterFuncConnection(fct FuncConnection)
	RegisterFuncClosed(fct FuncClosed)
	RegisterFuncUnhandled(fct FuncUnhandled)
}

// UdpEndpoint is a datagram endpoint, client or server. A client endpoint is
// connected to its configured target and ignores the destination address of
// posted items; a server endpoint sends each item to the address bound into
// it.
type UdpEndpoint interface {
	// Listen binds (server) or connects (client) the datagram socket, then
	// runs the receive loop and the send worker until the context is
	// cancelled or Close is called. It is a blocking call.
	Listen(ctx context.Context) error

	// IsRunning returns true while the endpoint is processing datagrams.
	IsRunning() bool

	// Done returns a channel closed once the endpoint is fully stopped.
	Done() <-chan struct{}

	// Close stops the endpoint.
	Close() error

	// Post tries to enqueue one datagram without waiting. For a client
	// endpoint, to may be nil. It returns false if the queue is full or the
	// endpoint is stopped.
	Post(to net.Addr, data []byte) bool

	// PostRange is Post over the sub-part of data defined by offset / count.
	PostRange(to net.Addr, data []byte, offset, count int) bool

	// Enqueue enqueues one datagram, waiting for a free slot if the queue is
	// full. It returns true once enqueued, false if the endpoint stopped
	// before the item could be enqueued, or the context error if the given
	// context is cancelled first.
	Enqueue(ctx context.Context, to net.Addr, data []byte) (bool, error)

	// Send enqueues one datagram and waits until it has actually been written
	// to the socket. It returns nil on a complete write, ErrorPartialWrite on
	// a short write, the context error on cancellation, or the socket error.
	Send(ctx context.Context, to net.Addr, data []byte) error

	// SendRange is Send over the sub-part of data defined by offset / count.
	SendRange(ctx context.Context, to net.Addr, data []byte, offset, count int) error

	RegisterLogger(fct liblog.FuncLog)
	RegisterFuncError(fct FuncError)
	RegisterFuncInfo(fct FuncInfo)

	// RegisterFuncPacket registers the packet-arrived callback.
	RegisterFuncPacket(fct FuncPacket)

	// RegisterFuncSendError registers the send-error callback, called on
	// short writes or socket errors of the send worker.
	RegisterFuncSendError(fct FuncSendError)
}
