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

package queue_test

import (
	"context"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	sckque "github.com/nabbar/asyncnet/queue"
)

// gate is a worker that blocks each item until released, recording the
// processed items in order.
type gate struct {
	mu   sync.Mutex
	out  []int
	step chan struct{}
}

func newGate() *gate {
	return &gate{step: make(chan struct{}, 128)}
}

func (g *gate) worker(ctx context.Context, item int) {
	select {
	case <-g.step:
	case <-ctx.Done():
		return
	}

	g.mu.Lock()
	g.out = append(g.out, item)
	g.mu.Unlock()
}

func (g *gate) release(n int) {
	for i := 0; i < n; i++ {
		g.step <- struct{}{}
	}
}

func (g *gate) processed() []int {
	g.mu.Lock()
	defer g.mu.Unlock()

	res := make([]int, len(g.out))
	copy(res, g.out)
	return res
}

var _ = Describe("Bounded Queue", func() {
	var (
		ctx context.Context
		cnl context.CancelFunc
	)

	BeforeEach(func() {
		ctx, cnl = context.WithTimeout(context.Background(), 10*time.Second)
	})

	AfterEach(func() {
		if cnl != nil {
			cnl()
		}
	})

	Context("ordering", func() {
		It("should process items strictly in enqueue order", func() {
			g := newGate()
			q := sckque.New[int](ctx, 0, g.worker)

			for i := 0; i < 10; i++ {
				Expect(q.Push(i)).To(BeTrue())
			}

			g.release(10)
			q.Complete()

			Eventually(q.Done(), 2*time.Second).Should(BeClosed())
			Expect(g.processed()).To(Equal([]int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}))
		})
	})

	Context("backpressure", func() {
		It("should refuse Push at capacity and accept again after consumption", func() {
			g := newGate()
			q := sckque.New[int](ctx, 1, g.worker)

			// first item is picked up by the worker, which blocks on the gate
			Expect(q.Push(1)).To(BeTrue())

			Eventually(func() int {
				return q.Len()
			}, time.Second, 5*time.Millisecond).Should(Equal(0))

			// queue slot now holds the second item
			Expect(q.Push(2)).To(BeTrue())
			Expect(q.Push(3)).To(BeFalse())

			// release the worker: item 1 done, item 2 picked up
			g.release(1)

			Eventually(func() bool {
				return q.Push(4)
			}, time.Second, 5*time.Millisecond).Should(BeTrue())

			g.release(3)
			q.Complete()
			Eventually(q.Done(), 2*time.Second).Should(BeClosed())

			Expect(g.processed()).To(Equal([]int{1, 2, 4}))
		})

		It("should make Send wait for room", func() {
			g := newGate()
			q := sckque.New[int](ctx, 1, g.worker)

			Expect(q.Push(1)).To(BeTrue())
			Eventually(func() int { return q.Len() }, time.Second, 5*time.Millisecond).Should(Equal(0))
			Expect(q.Push(2)).To(BeTrue())

			done := make(chan bool, 1)

			go func() {
				defer GinkgoRecover()
				ok, err := q.Send(ctx, 3)
				Expect(err).ToNot(HaveOccurred())
				done <- ok
			}()

			Consistently(done, 100*time.Millisecond).ShouldNot(Receive())

			g.release(1)

			Eventually(done, time.Second).Should(Receive(BeTrue()))

			g.release(2)
			q.Complete()
			Eventually(q.Done(), 2*time.Second).Should(BeClosed())
		})
	})

	Context("cancellation", func() {
		It("should surface the caller context error while waiting", func() {
			g := newGate()
			q := sckque.New[int](ctx, 1, g.worker)

			Expect(q.Push(1)).To(BeTrue())
			Eventually(func() int { return q.Len() }, time.Second, 5*time.Millisecond).Should(Equal(0))
			Expect(q.Push(2)).To(BeTrue())

			x, n := context.WithTimeout(ctx, 50*time.Millisecond)
			defer n()

			ok, err := q.Send(x, 3)

			Expect(ok).To(BeFalse())
			Expect(err).To(MatchError(context.DeadlineExceeded))
		})

		It("should return a benign false when the queue context is cancelled", func() {
			x, n := context.WithCancel(ctx)
			q := sckque.New[int](x, 1, func(ctx context.Context, item int) {})

			n()
			Eventually(q.Done(), time.Second).Should(BeClosed())

			ok, err := q.Send(context.Background(), 1)
			Expect(ok).To(BeFalse())
			Expect(err).ToNot(HaveOccurred())

			Expect(q.Push(1)).To(BeFalse())
		})
	})

	Context("completion", func() {
		It("should drain already enqueued items then stop", func() {
			g := newGate()
			q := sckque.New[int](ctx, 0, g.worker)

			for i := 0; i < 5; i++ {
				Expect(q.Push(i)).To(BeTrue())
			}

			q.Complete()

			// enqueue after completion is refused
			Expect(q.Push(99)).To(BeFalse())

			ok, err := q.Send(ctx, 99)
			Expect(ok).To(BeFalse())
			Expect(err).ToNot(HaveOccurred())

			g.release(5)
			Eventually(q.Done(), 2*time.Second).Should(BeClosed())

			Expect(g.processed()).To(Equal([]int{0, 1, 2, 3, 4}))
		})

		It("should be idempotent", func() {
			q := sckque.New[int](ctx, 0, func(ctx context.Context, item int) {})

			q.Complete()
			q.Complete()

			Eventually(q.Done(), time.Second).Should(BeClosed())
		})
	})

	Context("worker failure", func() {
		It("should recover a worker panic and keep processing", func() {
			var (
				mu  sync.Mutex
				out []int
				rec int
			)

			q := sckque.New[int](ctx, 0, func(ctx context.Context, item int) {
				if item == 1 {
					panic("boom")
				}

				mu.Lock()
				out = append(out, item)
				mu.Unlock()
			})

			q.RegisterFuncError(func(e ...error) {
				mu.Lock()
				rec++
				mu.Unlock()
			})

			Expect(q.Push(0)).To(BeTrue())
			Expect(q.Push(1)).To(BeTrue())
			Expect(q.Push(2)).To(BeTrue())

			q.Complete()
			Eventually(q.Done(), 2*time.Second).Should(BeClosed())

			mu.Lock()
			defer mu.Unlock()
			Expect(out).To(Equal([]int{0, 2}))
			Expect(rec).To(Equal(1))
		})
	})
})
