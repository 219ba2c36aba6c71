// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
)

// ErrQueueClosed is returned when work is submitted to a closed queue.
var ErrQueueClosed = errors.New("serial queue is closed")

// SerialQueue runs submitted units of work one at a time, strictly in
// submission order, on a single consumer goroutine. The backlog is unbounded.
//
// Once submitted, a unit always runs to completion. A context passed to Do or
// Call only bounds how long the caller waits for the result.
//
// Units must not wait on work submitted to the same queue, and must not call
// Close; both deadlock.
type SerialQueue struct {
	name string

	mu      sync.Mutex
	pending []func()
	closed  bool

	wake chan struct{}
	done chan struct{}
}

// NewSerialQueue starts the consumer goroutine of a new queue.
func NewSerialQueue(name string) *SerialQueue {
	q := &SerialQueue{
		name: name,
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}
	go q.loop()
	return q
}

func (q *SerialQueue) Name() string {
	return q.name
}

func (q *SerialQueue) loop() {
	defer close(q.done)
	for {
		q.mu.Lock()
		for len(q.pending) == 0 {
			if q.closed {
				q.mu.Unlock()
				return
			}
			q.mu.Unlock()
			<-q.wake
			q.mu.Lock()
		}
		fn := q.pending[0]
		q.pending[0] = nil
		q.pending = q.pending[1:]
		q.mu.Unlock()

		fn()
	}
}

func (q *SerialQueue) enqueue(fn func()) error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return ErrQueueClosed
	}
	q.pending = append(q.pending, fn)
	q.mu.Unlock()

	q.signal()
	return nil
}

func (q *SerialQueue) signal() {
	select {
	case q.wake <- struct{}{}:
	default:
	}
}

// Submit enqueues fn and returns immediately. A panic inside fn is not
// recovered and takes the process down.
func (q *SerialQueue) Submit(fn func()) error {
	return q.enqueue(fn)
}

// SubmitWithResult enqueues fn and returns immediately. done receives the
// result on the queue goroutine right after fn finishes, before the next unit
// starts.
func SubmitWithResult[T any](q *SerialQueue, fn func() (T, error), done func(T, error)) error {
	return q.enqueue(func() {
		v, err := fn()
		if done != nil {
			done(v, err)
		}
	})
}

// Do runs fn on the queue and waits for it. See [Call].
func (q *SerialQueue) Do(ctx context.Context, fn func() error) error {
	_, err := Call(ctx, q, func() (struct{}, error) {
		return struct{}{}, fn()
	})
	return err
}

const (
	callWaiting int32 = iota
	callDelivered
	callAbandoned
)

type outcome[T any] struct {
	val      T
	err      error
	panicked bool
	panicVal any
}

// Call runs fn on the queue and waits for its result.
//
// A panic raised by fn is re-raised in the caller. If the caller stopped
// waiting because ctx was done, the panic is re-raised on the queue goroutine
// instead, so it is never swallowed.
func Call[T any](ctx context.Context, q *SerialQueue, fn func() (T, error)) (T, error) {
	var zero T
	res := make(chan outcome[T], 1)
	var state atomic.Int32

	err := q.enqueue(func() {
		var out outcome[T]
		func() {
			defer func() {
				if p := recover(); p != nil {
					out = outcome[T]{panicked: true, panicVal: p}
				}
			}()
			out.val, out.err = fn()
		}()

		if !state.CompareAndSwap(callWaiting, callDelivered) {
			if out.panicked {
				panic(out.panicVal)
			}
			return
		}
		res <- out
	})
	if err != nil {
		return zero, err
	}

	select {
	case out := <-res:
		return unwrap(out)
	case <-ctx.Done():
		if state.CompareAndSwap(callWaiting, callAbandoned) {
			return zero, ctx.Err()
		}
		return unwrap(<-res)
	}
}

func unwrap[T any](out outcome[T]) (T, error) {
	if out.panicked {
		panic(out.panicVal)
	}
	return out.val, out.err
}

// Close stops accepting work, waits for the backlog to drain and stops the
// consumer goroutine. Close is idempotent.
func (q *SerialQueue) Close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()

	q.signal()
	<-q.done
}
