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

// Package queue provides a bounded, strictly ordered, single-consumer /
// multi-producer FIFO driving one worker goroutine.
//
// Ordering is a caller-visible guarantee: items successfully enqueued are
// handed to the worker function strictly in enqueue order, one at a time,
// and the worker function runs to completion before the next item starts.
// A single worker is also what keeps TLS stream writes safe, as they are not
// safe for concurrent use.
//
// Completion drains the items already enqueued: a caller whose Push or Send
// returned true is guaranteed its item reaches the worker, unless the queue
// context is cancelled first.
package queue

import "context"

// Worker is the function processing each item of the queue. It runs on the
// queue's single worker goroutine: a failure must be reported through the
// worker's own side channels, it never halts the queue. A panic inside the
// worker is recovered and reported through the registered error callback.
type Worker[T any] func(ctx context.Context, item T)

// Bounded is a bounded ordered FIFO with one worker.
//
// All producer methods are safe for concurrent use from any goroutine.
type Bounded[T any] interface {
	// Push tries to enqueue the given item without waiting. It returns false
	// if the queue is full or completed.
	Push(item T) bool

	// Send enqueues the given item, waiting until there is room. It returns
	// true once the item has been enqueued, or false if the queue has been
	// completed (or its context cancelled) before the item could be
	// enqueued. If the given context fires first, its error is returned.
	Send(ctx context.Context, item T) (bool, error)

	// Complete closes the queue: no further item is accepted, the worker
	// drains the items already enqueued then stops. Complete is idempotent.
	Complete()

	// Len returns the number of items currently enqueued.
	Len() int

	// Done returns a channel closed once the worker has stopped.
	Done() <-chan struct{}

	// RegisterFuncError registers the callback receiving queue internal
	// errors, like a recovered worker panic.
	RegisterFuncError(fct func(e ...error))
}

// New returns a Bounded queue of the given capacity, driving the given
// worker function. A size lower than 1 means unbounded. Once the given
// context is cancelled, the queue refuses new items even if Complete has not
// been called; the worker still hands the items it finds pending to the
// worker function, with the cancelled context, and stops the next time it
// has to wait for an item.
func New[T any](ctx context.Context, size int, fct Worker[T]) Bounded[T] {
	if ctx == nil {
		ctx = context.Background()
	}

	if fct == nil {
		fct = func(ctx context.Context, item T) {}
	}

	o := &bql[T]{
		x:  ctx,
		s:  size,
		f:  fct,
		wk: make(chan struct{}, 1),
		rm: make(chan struct{}),
		dn: make(chan struct{}),
	}

	go o.worker()

	return o
}
