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

// Package pagesource provides fixed-size physical-page allocation for
// mbufchain. It is a lower-level allocator that hands out and reclaims
// pages of a fixed size, external to and unaware of mbufchain's
// higher-level bookkeeping.
package pagesource

import "errors"

// Size is the fixed size, in bytes, of every page this package allocates.
// mbuf.PayloadSize is derived from this constant.
const Size = 4096

// ErrAllocFailed is returned when a batch allocation cannot be satisfied in
// full. Per the all-or-nothing contract, no pages are handed out on failure.
var ErrAllocFailed = errors.New("pagesource: allocation failed")

// Page is a single fixed-size physical page. Its Bytes slice is exactly
// Size bytes long and is the kernel-addressable view mbuf.MBuf is
// constructed into.
type Page struct {
	// Bytes is the page's backing storage.
	Bytes []byte

	// owner identifies which Source this page must be returned to.
	owner Source
}

// Source allocates and frees fixed-size pages in batches. Allocation is
// all-or-nothing: either n pages are returned, or ErrAllocFailed and no
// pages are held by the caller.
type Source interface {
	// Alloc allocates exactly n pages, or fails without allocating any.
	Alloc(n int) ([]*Page, error)

	// Free returns pages to the source. Every page must have come from a
	// call to Alloc on the same Source.
	Free(pages []*Page)
}
