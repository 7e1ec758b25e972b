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

package pagesource

import "sync"

// PoolSource is a bounded, in-process Source backed by plain byte slices.
// It is used by tests and by the demo binary when it isn't asked to mmap
// real pages, and it is where the chain's retry-later back-pressure paths
// are exercised: once capacity pages are outstanding, further allocation
// fails until pages are freed.
type PoolSource struct {
	mu        sync.Mutex
	capacity  int
	allocated int
}

// NewPoolSource returns a PoolSource that will hand out at most capacity
// pages at any one time. A capacity of 0 means unbounded.
func NewPoolSource(capacity int) *PoolSource {
	return &PoolSource{capacity: capacity}
}

// Alloc implements Source.
func (p *PoolSource) Alloc(n int) ([]*Page, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.capacity > 0 && p.allocated+n > p.capacity {
		return nil, ErrAllocFailed
	}

	pages := make([]*Page, n)
	for i := range pages {
		pages[i] = &Page{
			Bytes: make([]byte, Size),
			owner: p,
		}
	}
	p.allocated += n
	return pages, nil
}

// Free implements Source.
func (p *PoolSource) Free(pages []*Page) {
	if len(pages) == 0 {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, pg := range pages {
		if pg.owner != p {
			panic("pagesource: page returned to a pool that did not allocate it")
		}
		p.allocated--
	}
}

// InUse returns the number of pages currently allocated from p. Exposed for
// tests asserting that no pages are ever leaked.
func (p *PoolSource) InUse() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.allocated
}
