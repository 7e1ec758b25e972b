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

// Package mbufchain implements the in-kernel byte-chain buffer backing
// byte-stream and datagram IPC channels: an ordered sequence of
// page-granular MBufs with read/write/peek operations, atomic datagram
// commit, and page lifecycle management through a PageSource.
//
// A Chain performs no synchronization of its own. Callers (typically one
// dispatcher holding one mutex per endpoint) must serialize all access;
// concurrent operations on the same Chain are a caller bug.
package mbufchain

import (
	"github.com/driftkernel/mbufchain/pkg/mbuf"
	"github.com/driftkernel/mbufchain/pkg/pagesource"
	"github.com/driftkernel/mbufchain/pkg/status"
	"github.com/driftkernel/mbufchain/pkg/usercopy"
)

// Mode selects whether a Chain stores a continuous byte stream or an
// ordered sequence of atomic datagrams. A Chain never mixes the two over
// its lifetime.
type Mode int

const (
	// Stream mode: byte-oriented, no boundaries between writes.
	Stream Mode = iota
	// Datagram mode: message-oriented; each write is one atomic datagram,
	// and reads return at most one datagram.
	Datagram
)

// MaxSize is the maximum number of bytes any Chain will hold.
const MaxSize = mbuf.SizeMax

// Chain is an ordered list of MBufs forming a byte stream or a queue of
// datagrams.
type Chain struct {
	mode Mode

	pages  pagesource.Source
	copier usercopy.Copier

	buffers mbuf.List

	// readCursorOff is the byte offset within buffers.Front() at which
	// the next read begins.
	readCursorOff int

	// size is the total valid bytes across all MBufs, minus
	// readCursorOff bytes already consumed at the front.
	size int
}

// New creates an empty Chain of the given mode, backed by pages for
// physical page allocation/release and copier for user-boundary transfers.
func New(mode Mode, pages pagesource.Source, copier usercopy.Copier) *Chain {
	return &Chain{mode: mode, pages: pages, copier: copier}
}

// Mode returns the chain's stream/datagram mode.
func (c *Chain) Mode() Mode { return c.mode }

// Size returns the total number of bytes stored in the chain. If datagram
// is true and the chain is non-empty, it instead returns the size of the
// next datagram to be read; in stream mode this always returns 0 when
// datagram is true.
func (c *Chain) Size(datagram bool) int {
	// front.PktLen() is always 0 in stream mode (it is only ever set by
	// WriteDatagram), so this naturally returns 0 for datagram=true on a
	// stream chain without a separate mode check.
	if datagram && c.size > 0 {
		return c.buffers.Front().PktLen()
	}
	return c.size
}

// IsEmpty reports whether the chain holds no bytes.
func (c *Chain) IsEmpty() bool { return c.size == 0 }

// IsFull reports whether the chain has reached MaxSize.
func (c *Chain) IsFull() bool { return c.size >= MaxSize }

// MaxSize returns the maximum number of bytes the chain will hold.
func (c *Chain) MaxSize() int { return MaxSize }

// Close destroys every MBuf still held by the chain and returns their
// pages to the PageSource.
func (c *Chain) Close() {
	c.freeAll(&c.buffers)
	c.size = 0
	c.readCursorOff = 0
}

// allocBatch allocates exactly n MBufs as a single all-or-nothing batch.
// On failure it returns status.ErrRetryLater and an empty list.
func (c *Chain) allocBatch(n int) (mbuf.List, *status.Status) {
	var list mbuf.List
	if n == 0 {
		return list, nil
	}
	pages, err := c.pages.Alloc(n)
	if err != nil {
		return list, status.ErrRetryLater
	}
	for _, pg := range pages {
		list.PushBack(mbuf.New(pg))
	}
	return list, nil
}

// freeAll releases every MBuf in list, in a single batched call to the
// PageSource, and empties list.
func (c *Chain) freeAll(list *mbuf.List) {
	if list.Empty() {
		return
	}
	pages := make([]*pagesource.Page, 0, list.Len())
	for m := list.PopFront(); m != nil; m = list.PopFront() {
		pages = append(pages, m.Release())
	}
	c.pages.Free(pages)
}
