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

package queue

import (
	"context"
	"sync"
	"sync/atomic"
)

type bql[T any] struct {
	x context.Context
	s int       // capacity, < 1 means unbounded
	f Worker[T] // worker function

	mx sync.Mutex
	qu []T           // pending items, FIFO
	cl atomic.Bool   // completed
	wk chan struct{} // worker wake signal
	rm chan struct{} // room broadcast, closed and renewed on each pop
	dn chan struct{} // worker stopped

	fe atomic.Value // error callback func(e ...error)
}

func (o *bql[T]) RegisterFuncError(fct func(e ...error)) {
	if fct == nil {
		fct = func(e ...error) {}
	}

	o.fe.Store(fct)
}

func (o *bql[T]) fctError(e ...error) {
	if f, k := o.fe.Load().(func(e ...error)); k && f != nil {
		f(e...)
	}
}

func (o *bql[T]) Len() int {
	o.mx.Lock()
	defer o.mx.Unlock()

	return len(o.qu)
}

func (o *bql[T]) Done() <-chan struct{} {
	return o.dn
}

func (o *bql[T]) Push(item T) bool {
	o.mx.Lock()
	defer o.mx.Unlock()

	if o.cl.Load() || o.x.Err() != nil {
		return false
	} else if o.s > 0 && len(o.qu) >= o.s {
		return false
	}

	o.qu = append(o.qu, item)
	o.wake()

	return true
}

func (o *bql[T]) Send(ctx context.Context, item T) (bool, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	for {
		o.mx.Lock()

		if o.cl.Load() || o.x.Err() != nil {
			o.mx.Unlock()
			return false, nil
		}

		if o.s < 1 || len(o.qu) < o.s {
			o.qu = append(o.qu, item)
			o.wake()
			o.mx.Unlock()
			return true, nil
		}

		rm := o.rm
		o.mx.Unlock()

		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-o.x.Done():
			// engine cancellation looks the same as a refused queue
			return false, nil
		case <-rm:
		}
	}
}

func (o *bql[T]) Complete() {
	o.mx.Lock()

	if !o.cl.Swap(true) {
		// release producers waiting for room so they observe completion
		close(o.rm)
		o.rm = make(chan struct{})
		o.wake()
	}

	o.mx.Unlock()
}

// wake must be called with the mutex held.
func (o *bql[T]) wake() {
	select {
	case o.wk <- struct{}{}:
	default:
	}
}

func (o *bql[T]) pop() (item T, ok bool, closed bool) {
	o.mx.Lock()
	defer o.mx.Unlock()

	if len(o.qu) > 0 {
		item = o.qu[0]
		o.qu = o.qu[1:]

		// broadcast room to all waiting producers
		close(o.rm)
		o.rm = make(chan struct{})

		return item, true, false
	}

	return item, false, o.cl.Load()
}

func (o *bql[T]) worker() {
	defer close(o.dn)

	for {
		item, ok, closed := o.pop()

		if ok {
			o.process(item)
			continue
		}

		if closed {
			return
		}

		select {
		case <-o.wk:
		case <-o.x.Done():
			return
		}
	}
}

func (o *bql[T]) process(item T) {
	defer func() {
		if rec := recover(); rec != nil {
			o.fctError(ErrorWorkerPanic.Error(nil))
		}
	}()

	o.f(o.x, item)
}
