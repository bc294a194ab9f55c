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

package config

import (
	"bytes"
	"encoding/json"
)

var _defaultConfigClientTCP = []byte(`
{
   "network":"tcp",
   "address":"localhost:9000",
   "connectionTimeout":"30s",
   "sendQueueSize":128,
   "tls":{
      "enabled":false,
      "serverName":"",
      "config":{}
   }
}
`)

var _defaultConfigServerTCP = []byte(`
{
   "network":"tcp",
   "address":"0.0.0.0:9000",
   "connectionTimeout":"30s",
   "maxSendQueuePerPeerSize":128,
   "tls":{
      "enabled":false,
      "serverName":"",
      "config":{}
   }
}
`)

var _defaultConfigClientUDP = []byte(`
{
   "network":"udp",
   "address":"localhost:9001",
   "sendQueueSize":128
}
`)

var _defaultConfigServerUDP = []byte(`
{
   "network":"udp",
   "address":"0.0.0.0:9001",
   "sendQueueSize":128,
   "multicastGroup":""
}
`)

func defaultConfig(model []byte, indent string) []byte {
	var res = bytes.NewBuffer(make([]byte, 0))

	if err := json.Indent(res, model, indent, "  "); err != nil {
		return model
	}

	return res.Bytes()
}

// DefaultConfigClientTCP returns a JSON skeleton of the ClientTCP config.
func DefaultConfigClientTCP(indent string) []byte {
	return defaultConfig(_defaultConfigClientTCP, indent)
}

// DefaultConfigServerTCP returns a JSON skeleton of the ServerTCP config.
func DefaultConfigServerTCP(indent string) []byte {
	return defaultConfig(_defaultConfigServerTCP, indent)
}

// DefaultConfigClientUDP returns a JSON skeleton of the ClientUDP config.
func DefaultConfigClientUDP(indent string) []byte {
	return defaultConfig(_defaultConfigClientUDP, indent)
}

// DefaultConfigServerUDP returns a JSON skeleton of the ServerUDP config.
func DefaultConfigServerUDP(indent string) []byte {
	return defaultConfig(_defaultConfigServerUDP, indent)
}
