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
	"fmt"
	"net"

	libval "github.com/go-playground/validator/v10"
	libdur "github.com/nabbar/golib/duration"
	liberr "github.com/nabbar/golib/errors"
	libptc "github.com/nabbar/golib/network/protocol"
)

// ClientTCP is the configuration of a TCP client engine.
type ClientTCP struct {
	// Network is the network protocol to dial (tcp, tcp4, tcp6).
	Network libptc.NetworkProtocol `mapstructure:"network" json:"network" yaml:"network" toml:"network"`

	// Address is the remote endpoint to dial, as host:port. The host part
	// is resolved then filtered through the registered address filter.
	Address string `mapstructure:"address" json:"address" yaml:"address" toml:"address" validate:"required"`

	// ConnectionTimeout is the maximum duration of one receive cycle.
	// A zero value disables the timeout.
	ConnectionTimeout libdur.Duration `mapstructure:"connectionTimeout" json:"connectionTimeout" yaml:"connectionTimeout" toml:"connectionTimeout"`

	// SendQueueSize is the hard capacity of the send queue. A value lower
	// than 1 means unbounded.
	SendQueueSize int `mapstructure:"sendQueueSize" json:"sendQueueSize" yaml:"sendQueueSize" toml:"sendQueueSize"`

	// TLS configures the optional TLS layer of the connection.
	TLS TLS `mapstructure:"tls" json:"tls" yaml:"tls" toml:"tls"`
}

// Validate checks the configuration against the awaiting model.
func (c *ClientTCP) Validate() liberr.Error {
	err := ErrorValidatorError.Error(nil)

	if er := libval.New().Struct(c); er != nil {
		if e, ok := er.(*libval.InvalidValidationError); ok {
			err.Add(e)
		}

		for _, e := range er.(libval.ValidationErrors) {
			//nolint goerr113
			err.Add(fmt.Errorf("config field '%s' is not validated by constraint '%s'", e.StructNamespace(), e.ActualTag()))
		}
	}

	if c.Address != "" {
		if _, _, e := net.SplitHostPort(c.Address); e != nil {
			err.Add(e)
		}
	}

	if err.HasParent() {
		return err
	}

	return nil
}

// Clone returns an independent copy of the configuration.
func (c *ClientTCP) Clone() ClientTCP {
	return ClientTCP{
		Network:           c.Network,
		Address:           c.Address,
		ConnectionTimeout: c.ConnectionTimeout,
		SendQueueSize:     c.SendQueueSize,
		TLS:               c.TLS.Clone(),
	}
}

// ClientUDP is the configuration of a UDP client endpoint.
type ClientUDP struct {
	// Network is the network protocol to use (udp, udp4, udp6).
	Network libptc.NetworkProtocol `mapstructure:"network" json:"network" yaml:"network" toml:"network"`

	// Address is the remote endpoint to connect the datagram socket to, as
	// host:port. The host part is resolved, then one address is picked
	// through the registered select callback (default is the first one).
	Address string `mapstructure:"address" json:"address" yaml:"address" toml:"address" validate:"required"`

	// SendQueueSize is the hard capacity of the send queue. A value lower
	// than 1 means unbounded.
	SendQueueSize int `mapstructure:"sendQueueSize" json:"sendQueueSize" yaml:"sendQueueSize" toml:"sendQueueSize"`
}

// Validate checks the configuration against the awaiting model.
func (c *ClientUDP) Validate() liberr.Error {
	err := ErrorValidatorError.Error(nil)

	if er := libval.New().Struct(c); er != nil {
		if e, ok := er.(*libval.InvalidValidationError); ok {
			err.Add(e)
		}

		for _, e := range er.(libval.ValidationErrors) {
			//nolint goerr113
			err.Add(fmt.Errorf("config field '%s' is not validated by constraint '%s'", e.StructNamespace(), e.ActualTag()))
		}
	}

	if c.Address != "" {
		if _, _, e := net.SplitHostPort(c.Address); e != nil {
			err.Add(e)
		}
	}

	if err.HasParent() {
		return err
	}

	return nil
}

// Clone returns an independent copy of the configuration.
func (c *ClientUDP) Clone() ClientUDP {
	return ClientUDP{
		Network:       c.Network,
		Address:       c.Address,
		SendQueueSize: c.SendQueueSize,
	}
}
