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
	"crypto/tls"

	libtls "github.com/nabbar/golib/certificates"
)

// TLS wraps the certificates configuration with the enablement flag and the
// server name of an endpoint.
type TLS struct {
	// Enabled defines if the endpoint must wrap its stream into a TLS layer.
	Enabled bool `mapstructure:"enabled" json:"enabled" yaml:"enabled" toml:"enabled"`

	// ServerName is the expected server name of the remote certificate
	// (client side) or the name announced by the local certificate (server
	// side, optional).
	ServerName string `mapstructure:"serverName" json:"serverName,omitempty" yaml:"serverName,omitempty" toml:"serverName,omitempty"`

	// Config is the certificates configuration: certificate pairs, root and
	// client CA pools, client authentication mode, versions, ciphers and
	// curves.
	Config libtls.Config `mapstructure:"config" json:"config,omitempty" yaml:"config,omitempty" toml:"config,omitempty"`
}

// Clone returns an independent copy of the configuration.
func (t TLS) Clone() TLS {
	return TLS{
		Enabled:    t.Enabled,
		ServerName: t.ServerName,
		Config:     t.Config,
	}
}

// TlsConfig materializes the certificates configuration into a *tls.Config
// for the configured server name. It returns nil if TLS is not enabled.
func (t TLS) TlsConfig() *tls.Config {
	if !t.Enabled {
		return nil
	}

	return t.Config.New().TLS(t.ServerName)
}
