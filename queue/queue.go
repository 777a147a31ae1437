// SPDX-License-Identifier: EPL-2.0

// Package queue provides an unbounded FIFO that never blocks either side.
//
// New returns the two ends of a queue. The Sender may be shared by any number
// of goroutines; the Receiver belongs to exactly one consumer goroutine,
// typically an audio callback that must not wait or allocate:
//
//	tx, rx := queue.New[int]()
//	tx.Send(1)
//	tx.Send(2)
//	rx.Drain(func(v int) { fmt.Println(v) }) // 1, 2
//
// Values are moved through the queue: once sent, the producer should not
// touch a value again, so only one goroutine ever uses it at a time.
package queue

import "sync/atomic"

type node[T any] struct {
	next atomic.Pointer[node[T]]
	val  T
}

type shared[T any] struct {
	tail   atomic.Pointer[node[T]]
	closed atomic.Bool
}

// Sender is the producing end of a queue.
type Sender[T any] struct {
	q *shared[T]
}

// Receiver is the consuming end of a queue.
// Its methods must only be called from one goroutine at a time.
type Receiver[T any] struct {
	q    *shared[T]
	head *node[T] // already consumed; head.next is the oldest pending value
}

// New creates a queue and returns its two ends.
func New[T any]() (*Sender[T], *Receiver[T]) {
	q := &shared[T]{}
	stub := &node[T]{}
	q.tail.Store(stub)

	return &Sender[T]{q: q}, &Receiver[T]{q: q, head: stub}
}

// Send appends v to the queue. It never blocks. It fails with
// ErrDisconnected once the Receiver has been closed.
func (s *Sender[T]) Send(v T) error {
	if s.q.closed.Load() {
		return ErrDisconnected
	}

	n := &node[T]{val: v}
	prev := s.q.tail.Swap(n)
	prev.next.Store(n)

	return nil
}

// Disconnected reports whether the Receiver has been closed.
func (s *Sender[T]) Disconnected() bool {
	return s.q.closed.Load()
}

// TryRecv pops the oldest available value. It returns false when nothing is
// available right now.
func (r *Receiver[T]) TryRecv() (T, bool) {
	var zero T

	next := r.head.next.Load()
	if next == nil {
		return zero, false
	}

	v := next.val
	next.val = zero // the node stays as the new head; drop its reference
	r.head = next

	return v, true
}

// Drain passes every currently available value to fn, oldest first, and
// returns how many there were. Values sent while Drain runs may or may not be
// included. Drain never waits.
func (r *Receiver[T]) Drain(fn func(T)) int {
	n := 0
	for {
		v, ok := r.TryRecv()
		if !ok {
			return n
		}
		fn(v)
		n++
	}
}

// Close disconnects the queue. Later sends fail; values still pending can be
// drained.
func (r *Receiver[T]) Close() {
	r.q.closed.Store(true)
}
