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

package lengthprefix

import (
	"context"
	"errors"
	"fmt"
	"io"

	libsiz "github.com/nabbar/golib/size"

	sckbuf "github.com/nabbar/asyncnet/bufview"
	sckfrm "github.com/nabbar/asyncnet/frame"
)

type dfg struct {
	h int                 // header length
	f FuncFrameLength     // total frame length strategy
	m libsiz.Size         // sanity ceiling of the total frame length
}

func (o *dfg) ReadFrame(ctx context.Context, rd io.Reader, left sckbuf.View) (res sckfrm.Output, err error) {
	if o == nil || o.f == nil || o.h < 1 {
		return sckfrm.Output{}, sckfrm.ErrorInstance.Error(nil)
	}

	// a strategy failure must not look like a transport error
	defer func() {
		if rec := recover(); rec != nil {
			res = sckfrm.Output{}
			err = sckfrm.ErrorFrameUnhandled.Error(fmt.Errorf("%v", rec))
		}
	}()

	var (
		e   error
		buf = left.Copy()
	)

	if buf, e = sckfrm.Fill(ctx, rd, buf, o.h); e != nil {
		if errors.Is(e, io.EOF) {
			return sckfrm.Output{Status: sckfrm.StreamClosed}, nil
		}
		return sckfrm.Output{}, e
	}

	total := o.f(buf[:o.h])

	if total < o.h || libsiz.Size(total) > o.m {
		return sckfrm.Output{Status: sckfrm.FrameDropped}, nil
	}

	if buf, e = sckfrm.Fill(ctx, rd, buf, total); e != nil {
		if errors.Is(e, io.EOF) {
			return sckfrm.Output{Status: sckfrm.StreamClosed}, nil
		}
		return sckfrm.Output{}, e
	}

	return sckfrm.Output{
		Status:    sckfrm.FrameProduced,
		Frame:     buf[:total:total],
		Leftovers: sckbuf.Of(buf[total:]),
	}, nil
}
