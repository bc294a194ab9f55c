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

package reason

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

func (r *Reason) unmarshall(val []byte) error {
	*r = parseBytes([]byte(strings.Trim(string(val), "\"'")))
	return nil
}

func (r Reason) MarshalJSON() ([]byte, error) {
	t := r.String()
	b := make([]byte, 0, len(t)+2)
	b = append(b, '"')
	b = append(b, []byte(t)...)
	b = append(b, '"')
	return b, nil
}

func (r *Reason) UnmarshalJSON(bytes []byte) error {
	return r.unmarshall(bytes)
}

func (r Reason) MarshalYAML() (interface{}, error) {
	return r.String(), nil
}

func (r *Reason) UnmarshalYAML(value *yaml.Node) error {
	return r.unmarshall([]byte(value.Value))
}

func (r Reason) MarshalTOML() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *Reason) UnmarshalTOML(i interface{}) error {
	if p, k := i.([]byte); k {
		return r.unmarshall(p)
	}
	if p, k := i.(string); k {
		return r.unmarshall([]byte(p))
	}
	return fmt.Errorf("reason: value not in valid format")
}

func (r Reason) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *Reason) UnmarshalText(bytes []byte) error {
	return r.unmarshall(bytes)
}

func (r Reason) MarshalCBOR() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *Reason) UnmarshalCBOR(bytes []byte) error {
	return r.unmarshall(bytes)
}
