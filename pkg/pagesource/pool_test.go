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
	"errors"
	"testing"
)

func TestPoolSourceAllocFree(t *testing.T) {
	p := NewPoolSource(0)

	pages, err := p.Alloc(4)
	if err != nil {
		t.Fatalf("Alloc(4) error = %v", err)
	}
	if len(pages) != 4 {
		t.Fatalf("Alloc(4) returned %d pages", len(pages))
	}
	for _, pg := range pages {
		if len(pg.Bytes) != Size {
			t.Errorf("page has %d bytes, want %d", len(pg.Bytes), Size)
		}
	}
	if got := p.InUse(); got != 4 {
		t.Fatalf("InUse() = %d, want 4", got)
	}

	p.Free(pages[:2])
	if got := p.InUse(); got != 2 {
		t.Fatalf("InUse() after partial free = %d, want 2", got)
	}

	p.Free(pages[2:])
	if got := p.InUse(); got != 0 {
		t.Fatalf("InUse() after full free = %d, want 0", got)
	}
}

func TestPoolSourceAllocIsAllOrNothing(t *testing.T) {
	p := NewPoolSource(2)

	if _, err := p.Alloc(3); !errors.Is(err, ErrAllocFailed) {
		t.Fatalf("Alloc(3) over capacity 2: err = %v, want ErrAllocFailed", err)
	}
	if got := p.InUse(); got != 0 {
		t.Fatalf("InUse() after failed Alloc = %d, want 0 (no partial allocation)", got)
	}

	pages, err := p.Alloc(2)
	if err != nil {
		t.Fatalf("Alloc(2) at capacity: err = %v", err)
	}
	if _, err := p.Alloc(1); !errors.Is(err, ErrAllocFailed) {
		t.Fatalf("Alloc(1) once full: err = %v, want ErrAllocFailed", err)
	}

	p.Free(pages)
}

func TestPoolSourceFreeWrongOwnerPanics(t *testing.T) {
	a := NewPoolSource(0)
	b := NewPoolSource(0)

	pages, err := a.Alloc(1)
	if err != nil {
		t.Fatalf("Alloc(1) error = %v", err)
	}

	defer func() {
		if recover() == nil {
			t.Error("Free on the wrong Source did not panic")
		}
	}()
	b.Free(pages)
}

func TestPoolSourceZeroLengthFreeIsNoop(t *testing.T) {
	p := NewPoolSource(1)
	p.Free(nil)
	if got := p.InUse(); got != 0 {
		t.Fatalf("InUse() = %d, want 0", got)
	}
}
