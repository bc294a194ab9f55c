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
	libmap "github.com/go-viper/mapstructure/v2"
	libdur "github.com/nabbar/golib/duration"
	libptc "github.com/nabbar/golib/network/protocol"
	libsiz "github.com/nabbar/golib/size"
	spfvpr "github.com/spf13/viper"

	sckrsn "github.com/nabbar/asyncnet/reason"
)

// DecoderHooks returns the mapstructure decode hooks needed to decode the
// configuration structs of this package from string based sources.
func DecoderHooks() []libmap.DecodeHookFunc {
	return []libmap.DecodeHookFunc{
		libptc.ViperDecoderHook(),
		libdur.ViperDecoderHook(),
		libsiz.ViperDecoderHook(),
		sckrsn.ViperDecoderHook(),
	}
}

// UnmarshalViper decodes the given viper key into the given configuration
// struct, with the decode hooks of this package installed.
func UnmarshalViper(vpr *spfvpr.Viper, key string, cfg interface{}) error {
	return vpr.UnmarshalKey(key, cfg, spfvpr.DecodeHook(libmap.ComposeDecodeHookFunc(DecoderHooks()...)))
}
