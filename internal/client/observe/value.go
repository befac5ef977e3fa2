// Package observe provides a mutex-guarded value whose changes are pushed to
// subscribers. Components expose their state through it instead of sharing a
// global "current user".
package observe

import "sync"

// Value holds a T. Updates run to completion under the lock; subscribers are
// called after the lock is released, in subscription order.
type Value[T any] struct {
	mu     sync.Mutex
	v      T
	subs   []subscription[T]
	nextID int
}

type subscription[T any] struct {
	id int
	fn func(T)
}

// NewValue returns a Value holding initial.
func NewValue[T any](initial T) *Value[T] {
	return &Value[T]{v: initial}
}

// Get returns the current value.
func (o *Value[T]) Get() T {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.v
}

// Set replaces the value and notifies subscribers.
func (o *Value[T]) Set(v T) {
	o.Update(func(T) T { return v })
}

// Update applies fn to the current value atomically and notifies subscribers
// with the result, which is also returned.
func (o *Value[T]) Update(fn func(T) T) T {
	o.mu.Lock()
	o.v = fn(o.v)
	v := o.v
	subs := make([]subscription[T], len(o.subs))
	copy(subs, o.subs)
	o.mu.Unlock()

	for _, s := range subs {
		s.fn(v)
	}
	return v
}

// Subscribe registers fn for future changes and returns a function that
// removes it. Calling the returned function more than once is harmless.
func (o *Value[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.nextID++
	id := o.nextID
	o.subs = append(o.subs, subscription[T]{id: id, fn: fn})

	return func() {
		o.mu.Lock()
		defer o.mu.Unlock()
		for i, s := range o.subs {
			if s.id == id {
				o.subs = append(o.subs[:i], o.subs[i+1:]...)
				return
			}
		}
	}
}
