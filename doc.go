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

// Package asyncnet exposes the shared public surface of the asyncnet library:
// the Client, Server, Peer and UdpEndpoint interfaces, the callback function
// types used to subscribe to lifecycle and data events, and some common
// helpers shared by all transport implementations.
//
// The library provides reusable client and server endpoints for custom binary
// protocols carried over TCP (optionally TLS) and UDP. Applications supply
// the message framing through the frame.Defragmenter contract and subscribe
// to events through the Register* functions of each endpoint.
//
// Sub-packages:
//   - bufview: non-owning view over a byte array
//   - reason: classified close reason of a peer
//   - queue: bounded ordered send queue with a single worker
//   - frame: defragmenter contract turning a stream into frames
//   - frame/lengthprefix: fixed-header, length-prefixed defragmenter
//   - frame/mixed: caller-defined header-then-length defragmenter
//   - peer: one live TCP connection and its state
//   - config: configuration structs for all endpoints
//   - client/tcp, client/udp: client endpoints
//   - server/tcp, server/udp: server endpoints
//
// Event surface:
//
// The primary event surface is callback registration. Every endpoint accepts
// at most one callback per event kind; registering again replaces the
// previous one. Frame callbacks run synchronously on the receive loop of the
// peer (per-peer first, then engine-level): frame events of one peer are
// causally ordered, and a protocol switch done inside a handler applies
// before the next frame read. Lifecycle callbacks are emitted in causal
// order for a same peer. Handlers of distinct peers run concurrently.
package asyncnet
