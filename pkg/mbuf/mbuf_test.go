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

import (
	"testing"

	"github.com/driftkernel/mbufchain/pkg/metrics"
	"github.com/driftkernel/mbufchain/pkg/pagesource"
)

func newTestPage() *pagesource.Page {
	return &pagesource.Page{Bytes: make([]byte, pagesource.Size)}
}

func TestNumBuffersForPayload(t *testing.T) {
	cases := []struct {
		payload int
		want    int
	}{
		{0, 0},
		{-5, 0},
		{1, 1},
		{PayloadSize, 1},
		{PayloadSize + 1, 2},
		{2 * PayloadSize, 2},
		{2*PayloadSize + 1, 3},
	}
	for _, c := range cases {
		if got := NumBuffersForPayload(c.payload); got != c.want {
			t.Errorf("NumBuffersForPayload(%d) = %d, want %d", c.payload, got, c.want)
		}
	}
}

func TestNewAccountsBytes(t *testing.T) {
	before := metrics.Snapshot()
	m := New(newTestPage())
	if got, want := metrics.Snapshot(), before+Sizeof; got != want {
		t.Errorf("metrics.Snapshot() after New = %d, want %d", got, want)
	}
	m.Release()
	if got := metrics.Snapshot(); got != before {
		t.Errorf("metrics.Snapshot() after Release = %d, want %d", got, before)
	}
}

func TestGrowAndRem(t *testing.T) {
	m := New(newTestPage())
	defer m.Release()

	if m.Len() != 0 || m.Rem() != PayloadSize || m.Full() {
		t.Fatalf("fresh MBuf: len=%d rem=%d full=%v, want 0/%d/false", m.Len(), m.Rem(), m.Full(), PayloadSize)
	}

	copy(m.AvailableAt(), []byte("hello"))
	m.Grow(5)
	if m.Len() != 5 || m.Rem() != PayloadSize-5 {
		t.Fatalf("after Grow(5): len=%d rem=%d, want 5/%d", m.Len(), m.Rem(), PayloadSize-5)
	}
	if got := string(m.Data()); got != "hello" {
		t.Errorf("Data() = %q, want %q", got, "hello")
	}
	if got := string(m.DataAt(1)); got != "ello" {
		t.Errorf("DataAt(1) = %q, want %q", got, "ello")
	}

	m.Grow(m.Rem())
	if !m.Full() {
		t.Error("MBuf should be full after growing to PayloadSize")
	}
}

func TestPktLenDefaultsToZero(t *testing.T) {
	m := New(newTestPage())
	defer m.Release()
	if m.PktLen() != 0 {
		t.Errorf("PktLen() on a fresh MBuf = %d, want 0", m.PktLen())
	}
	m.SetPktLen(3000)
	if m.PktLen() != 3000 {
		t.Errorf("PktLen() after SetPktLen(3000) = %d, want 3000", m.PktLen())
	}
}

func TestListPushPopOrder(t *testing.T) {
	var l List
	a := New(newTestPage())
	b := New(newTestPage())
	c := New(newTestPage())
	defer func() {
		a.Release()
		b.Release()
		c.Release()
	}()

	l.PushBack(a)
	l.PushBack(b)
	l.PushBack(c)

	if l.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", l.Len())
	}
	if l.Front() != a || l.Back() != c {
		t.Fatalf("Front/Back = %p/%p, want %p/%p", l.Front(), l.Back(), a, c)
	}

	got := l.PopFront()
	if got != a {
		t.Fatalf("PopFront() = %p, want %p", got, a)
	}
	if l.Len() != 2 || l.Front() != b {
		t.Fatalf("after PopFront: Len()=%d Front()=%p, want 2/%p", l.Len(), l.Front(), b)
	}
}

func TestListPushListBackSplicesAndEmptiesSource(t *testing.T) {
	var dst, src List
	a := New(newTestPage())
	b := New(newTestPage())
	defer func() {
		a.Release()
		b.Release()
	}()

	dst.PushBack(a)
	src.PushBack(b)

	dst.PushListBack(&src)

	if !src.Empty() {
		t.Errorf("src.Empty() = false after PushListBack, want true")
	}
	if dst.Len() != 2 || dst.Front() != a || dst.Back() != b {
		t.Fatalf("dst after splice: len=%d front=%p back=%p, want 2/%p/%p", dst.Len(), dst.Front(), dst.Back(), a, b)
	}
	if a.Next() != b || b.Prev() != a {
		t.Error("splice did not link a <-> b correctly")
	}
}

func TestListRemoveFromMiddle(t *testing.T) {
	var l List
	a := New(newTestPage())
	b := New(newTestPage())
	c := New(newTestPage())
	defer func() {
		a.Release()
		b.Release()
		c.Release()
	}()
	l.PushBack(a)
	l.PushBack(b)
	l.PushBack(c)

	l.Remove(b)

	if l.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", l.Len())
	}
	if a.Next() != c || c.Prev() != a {
		t.Error("Remove(b) did not relink a <-> c")
	}
}
