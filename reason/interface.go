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

// Package reason defines the classified cause of a peer's termination.
//
// The close reason of a peer is latched exactly once on teardown: the first
// reason stored wins, any later store is ignored. The zero value is Unknown.
package reason

import "strings"

// Reason is the classified cause of a peer's termination.
type Reason uint8

const (
	// Unknown is the default reason, used when the connection terminates
	// because of an unclassified error. It is the zero value.
	Unknown Reason = iota
	// RemoteShutdown means the remote end closed the stream.
	RemoteShutdown
	// LocalShutdown means the local end requested the disconnection or the
	// engine has been cancelled.
	LocalShutdown
	// Timeout means no complete frame could be read within the configured
	// connection timeout.
	Timeout
)

// Parse returns the Reason matching the given string, or Unknown if the
// string matches no known reason. Matching is case-insensitive.
func Parse(s string) Reason {
	switch {
	case strings.EqualFold(s, RemoteShutdown.Code()), strings.EqualFold(s, "remote"):
		return RemoteShutdown
	case strings.EqualFold(s, LocalShutdown.Code()), strings.EqualFold(s, "local"):
		return LocalShutdown
	case strings.EqualFold(s, Timeout.Code()):
		return Timeout
	default:
		return Unknown
	}
}

func parseBytes(p []byte) Reason {
	return Parse(string(p))
}
