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

import (
	"fmt"
	"sync"

	"golang.org/x/sys/unix"

	"github.com/driftkernel/mbufchain/pkg/mbuflog"
)

// MmapSource is a Source backed by real, page-aligned anonymous memory
// mappings, one mmap call per page. Using mmap rather than make([]byte,
// Size) guarantees the alignment mbufchain's page-granular accounting
// assumes.
type MmapSource struct {
	mu       sync.Mutex
	capacity int
	live     map[*Page]struct{}
	logger   *mbuflog.Logger
}

// NewMmapSource returns an MmapSource that will keep at most capacity pages
// mapped at once. A capacity of 0 means unbounded.
func NewMmapSource(capacity int) *MmapSource {
	return &MmapSource{
		capacity: capacity,
		live:     make(map[*Page]struct{}),
	}
}

// SetLogger attaches logger to m; allocation failures are logged through it.
// A nil logger (the default) disables logging.
func (m *MmapSource) SetLogger(logger *mbuflog.Logger) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logger = logger
}

// Alloc implements Source.
func (m *MmapSource) Alloc(n int) ([]*Page, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.capacity > 0 && len(m.live)+n > m.capacity {
		if m.logger != nil {
			m.logger.Sugar().Warnw("mmap alloc refused: capacity exceeded",
				"requested", n, "in_use", len(m.live), "capacity", m.capacity)
		}
		return nil, ErrAllocFailed
	}

	pages := make([]*Page, 0, n)
	for i := 0; i < n; i++ {
		b, err := unix.Mmap(-1, 0, Size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
		if err != nil {
			// All-or-nothing: unwind whatever this batch has mapped so far.
			for _, pg := range pages {
				unix.Munmap(pg.Bytes)
			}
			if m.logger != nil {
				m.logger.Sugar().Errorw("mmap alloc failed", "error", err, "requested", n, "mapped_before_failure", len(pages))
			}
			return nil, fmt.Errorf("%w: mmap: %v", ErrAllocFailed, err)
		}
		pg := &Page{Bytes: b, owner: m}
		pages = append(pages, pg)
	}
	for _, pg := range pages {
		m.live[pg] = struct{}{}
	}
	return pages, nil
}

// Free implements Source.
func (m *MmapSource) Free(pages []*Page) {
	if len(pages) == 0 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, pg := range pages {
		if pg.owner != m {
			panic("pagesource: page returned to a mapping it was not allocated from")
		}
		delete(m.live, pg)
		if err := unix.Munmap(pg.Bytes); err != nil {
			panic(fmt.Sprintf("pagesource: munmap failed: %v", err))
		}
	}
}

// InUse returns the number of pages currently mapped. Exposed for tests.
func (m *MmapSource) InUse() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.live)
}
