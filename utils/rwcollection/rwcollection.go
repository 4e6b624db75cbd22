// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package rwcollection guards a container with a reader/writer lock and hands
// out scoped views of it.
//
// A goroutine holding a read view must release it before asking for a write
// view on the same collection, otherwise it deadlocks.
package rwcollection

import "sync"

type RWCollection[T any] struct {
	lock  sync.RWMutex
	value T
}

func New[T any](value T) *RWCollection[T] {
	return &RWCollection[T]{value: value}
}

// ReadView is a shared view of the collection. Many read views may be held at
// once.
type ReadView[T any] struct {
	c        *RWCollection[T]
	released bool
}

// WriteView is an exclusive view of the collection.
type WriteView[T any] struct {
	c        *RWCollection[T]
	released bool
}

// ReadView blocks until no write view is held.
func (c *RWCollection[T]) ReadView() *ReadView[T] {
	c.lock.RLock()
	return &ReadView[T]{c: c}
}

// WriteView blocks until no other view is held.
func (c *RWCollection[T]) WriteView() *WriteView[T] {
	c.lock.Lock()
	return &WriteView[T]{c: c}
}

// Read calls [f] while holding a read view.
func (c *RWCollection[T]) Read(f func(T)) {
	v := c.ReadView()
	defer v.Release()

	f(v.Get())
}

// Write calls [f] while holding a write view.
func (c *RWCollection[T]) Write(f func(T)) {
	v := c.WriteView()
	defer v.Release()

	f(v.Get())
}

// Get returns the guarded container. It must not be mutated through a read
// view or used after Release.
func (v *ReadView[T]) Get() T {
	return v.c.value
}

// Release is idempotent.
func (v *ReadView[T]) Release() {
	if v.released {
		return
	}
	v.released = true
	v.c.lock.RUnlock()
}

// Get returns the guarded container. It must not be used after Release.
func (v *WriteView[T]) Get() T {
	return v.c.value
}

// Release is idempotent.
func (v *WriteView[T]) Release() {
	if v.released {
		return
	}
	v.released = true
	v.c.lock.Unlock()
}
