// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package linked

// ListElement is an element of a linked list.
type ListElement[T any] struct {
	next, prev *ListElement[T]
	list       *List[T]

	Value T
}

// Next returns the next element or nil.
func (e *ListElement[T]) Next() *ListElement[T] {
	if p := e.next; e.list != nil && p != &e.list.sentinel {
		return p
	}
	return nil
}

// Prev returns the previous element or nil.
func (e *ListElement[T]) Prev() *ListElement[T] {
	if p := e.prev; e.list != nil && p != &e.list.sentinel {
		return p
	}
	return nil
}

// List is a doubly linked list with a sentinel node.
//
// The zero value is an empty list ready to use.
type List[T any] struct {
	sentinel ListElement[T]
	length   int
}

func (l *List[T]) lazyInit() {
	if l.sentinel.next == nil {
		l.sentinel.next = &l.sentinel
		l.sentinel.prev = &l.sentinel
	}
}

func (l *List[T]) Len() int {
	return l.length
}

// Front returns the first element or nil.
func (l *List[T]) Front() *ListElement[T] {
	if l.length == 0 {
		return nil
	}
	return l.sentinel.next
}

// Back returns the last element or nil.
func (l *List[T]) Back() *ListElement[T] {
	if l.length == 0 {
		return nil
	}
	return l.sentinel.prev
}

// PushBack inserts [e] at the back of the list. [e] must not be in a list.
func (l *List[T]) PushBack(e *ListElement[T]) {
	l.lazyInit()
	l.insertAfter(e, l.sentinel.prev)
}

// MoveToBack moves [e] to the back of the list. [e] must be in this list.
func (l *List[T]) MoveToBack(e *ListElement[T]) {
	if e.list != l || l.sentinel.prev == e {
		return
	}
	l.unlink(e)
	l.insertAfter(e, l.sentinel.prev)
}

// Remove removes [e] from the list. [e] must be in this list.
func (l *List[T]) Remove(e *ListElement[T]) {
	if e.list != l {
		return
	}
	l.unlink(e)
	e.next = nil
	e.prev = nil
	e.list = nil
}

func (l *List[T]) insertAfter(e, at *ListElement[T]) {
	e.prev = at
	e.next = at.next
	e.prev.next = e
	e.next.prev = e
	e.list = l
	l.length++
}

func (l *List[T]) unlink(e *ListElement[T]) {
	e.prev.next = e.next
	e.next.prev = e.prev
	l.length--
}
