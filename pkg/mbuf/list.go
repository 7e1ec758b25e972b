// Copyright 2026 The mbufchain Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package mbuf

// List is an intrusive doubly-linked list of *MBuf: the link pointers live
// on the MBuf itself, so every operation here is O(1) and allocation-free.
// This is the same shape as pkg/ilist's generic Linker/Element pair,
// specialized directly to *MBuf since a chain never links any other
// element type.
//
// The zero value is an empty list.
type List struct {
	head *MBuf
	tail *MBuf
	len  int
}

// Empty reports whether l has no elements.
func (l *List) Empty() bool { return l.head == nil }

// Len returns the number of elements in l.
func (l *List) Len() int { return l.len }

// Front returns the first element of l, or nil.
func (l *List) Front() *MBuf { return l.head }

// Back returns the last element of l, or nil.
func (l *List) Back() *MBuf { return l.tail }

// PushFront inserts m at the front of l.
func (l *List) PushFront(m *MBuf) {
	m.next = l.head
	m.prev = nil
	if l.head != nil {
		l.head.prev = m
	} else {
		l.tail = m
	}
	l.head = m
	l.len++
}

// PushBack inserts m at the back of l.
func (l *List) PushBack(m *MBuf) {
	m.prev = l.tail
	m.next = nil
	if l.tail != nil {
		l.tail.next = m
	} else {
		l.head = m
	}
	l.tail = m
	l.len++
}

// PushListBack moves every element of other onto the back of l, in order,
// leaving other empty. This is an O(1) splice, the shape required for
// committing a datagram's MBuf batch onto a chain in one step.
func (l *List) PushListBack(other *List) {
	if other.head == nil {
		return
	}
	if l.tail != nil {
		l.tail.next = other.head
		other.head.prev = l.tail
	} else {
		l.head = other.head
	}
	l.tail = other.tail
	l.len += other.len
	other.head = nil
	other.tail = nil
	other.len = 0
}

// Remove removes m from l. m must currently be an element of l.
func (l *List) Remove(m *MBuf) {
	if m.prev != nil {
		m.prev.next = m.next
	} else {
		l.head = m.next
	}
	if m.next != nil {
		m.next.prev = m.prev
	} else {
		l.tail = m.prev
	}
	m.next = nil
	m.prev = nil
	l.len--
}

// PopFront removes and returns the first element of l, or nil if l is
// empty.
func (l *List) PopFront() *MBuf {
	m := l.head
	if m != nil {
		l.Remove(m)
	}
	return m
}

// Next returns the element following m in whatever list it is linked
// into, or nil.
func (m *MBuf) Next() *MBuf { return m.next }

// Prev returns the element preceding m in whatever list it is linked into,
// or nil.
func (m *MBuf) Prev() *MBuf { return m.prev }
