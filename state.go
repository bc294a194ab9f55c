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

// ConnState is the lifecycle state reported to the FuncInfo callback of an
// endpoint. States are reported in causal order for a same connection.
type ConnState uint8

const (
	// EngineStart is reported when an engine starts (client-started /
	// server-started).
	EngineStart ConnState = iota
	// ConnectionResolve is reported before resolving the remote hostname.
	ConnectionResolve
	// ConnectionDial is reported before dialing the remote endpoint.
	ConnectionDial
	// ConnectionHandshake is reported before the TLS handshake.
	ConnectionHandshake
	// ConnectionNew is reported once a connection is established.
	ConnectionNew
	// ConnectionRead is reported when the receive loop starts.
	ConnectionRead
	// ConnectionClose is reported when a connection is torn down.
	ConnectionClose
	// EngineReady is reported by a UDP client once its socket is bound and
	// connected to the selected target address.
	EngineReady
	// EngineStop is reported when an engine stops (client-stopped /
	// server-stopped).
	EngineStop
)

// String returns a human readable representation of the state.
func (s ConnState) String() string {
	switch s {
	case EngineStart:
		return "Start Engine"
	case ConnectionResolve:
		return "Resolve Remote Address"
	case ConnectionDial:
		return "Dial Connection"
	case ConnectionHandshake:
		return "Handshake TLS Stream"
	case ConnectionNew:
		return "New Connection"
	case ConnectionRead:
		return "Read Incoming Stream"
	case ConnectionClose:
		return "Close Connection"
	case EngineReady:
		return "Ready Engine"
	case EngineStop:
		return "Stop Engine"
	default:
		return "unknown connection state"
	}
}
