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

// Package mbuf defines the page-sized node mbufchain chains together to
// form a byte stream or a sequence of datagrams.
//
// A real kernel constructs an MBuf in place at the start of a freshly
// allocated physical page: the struct's own header and its payload array
// occupy the same page, so freeing the page frees the MBuf with no separate
// deallocation. A hosted Go process has no equivalent of placement-new over
// a page's direct-mapped kernel view, so MBuf here is an ordinary
// heap-allocated struct that owns a reference to its backing page and
// treats PayloadSize bytes of that page as its data array; the byte
// accounting (HeaderSize, PayloadSize, sizeof(MBuf) == PageSize) is kept
// exactly as specified so the invariants and metrics stay faithful even
// though the struct itself is no longer physically resident in the page.
package mbuf

import (
	"github.com/driftkernel/mbufchain/pkg/metrics"
	"github.com/driftkernel/mbufchain/pkg/pagesource"
)

// PageSize is the fixed size, in bytes, of the physical page backing every
// MBuf.
const PageSize = pagesource.Size

// HeaderSize is the space an MBuf's list linkage and small integer fields
// would occupy if laid out in the page directly: two pointers for the
// doubly-linked list (16 bytes on a 64-bit host), len and pktLen (4 bytes
// each), the owning page back-pointer (8 bytes), and 8 bytes of padding.
// Frozen after the type's first release to keep the byte accounting
// ABI-stable.
const HeaderSize = 40

// PayloadSize is the number of payload bytes available in a single MBuf.
// Exposed for test use.
const PayloadSize = PageSize - HeaderSize

// SizeMax is the maximum number of bytes an MBufChain will hold.
const SizeMax = 128 * PayloadSize

// Sizeof is the accounting size of one MBuf for the purposes of the
// external byte counter: conceptually sizeof(MBuf) == PageSize, matching
// the page that backs it.
const Sizeof = PageSize

// NumBuffersForPayload returns the number of MBufs needed to hold a
// payload of the given size.
func NumBuffersForPayload(payload int) int {
	if payload <= 0 {
		return 0
	}
	return 1 + (payload-1)/PayloadSize
}

// MBuf is one payload-carrying node of an MBufChain.
type MBuf struct {
	next, prev *MBuf

	// page is the physical page backing this MBuf's payload. Destroying
	// the MBuf returns page to its Source.
	page *pagesource.Page

	// len is the number of valid payload bytes currently stored.
	len int

	// pktLen is set on the first MBuf of a datagram to the datagram's
	// total length; zero on every other MBuf, and always zero in stream
	// mode.
	pktLen int

	data []byte
}

// New constructs an MBuf over a freshly allocated page. It takes ownership
// of page and records the byte accounting increment.
func New(page *pagesource.Page) *MBuf {
	metrics.AddMBuf(Sizeof)
	return &MBuf{
		page: page,
		data: page.Bytes[:PayloadSize],
	}
}

// Release runs the MBuf's destructor bookkeeping and returns the page it
// was backed by, so the caller can batch-free it through the PageSource.
// The MBuf must not be used after Release.
func (m *MBuf) Release() *pagesource.Page {
	metrics.RemoveMBuf(Sizeof)
	page := m.page
	m.page = nil
	m.data = nil
	return page
}

// Len returns the number of valid payload bytes in m.
func (m *MBuf) Len() int { return m.len }

// PktLen returns m's datagram-framing length: the full datagram length if
// m leads a datagram, 0 otherwise.
func (m *MBuf) PktLen() int { return m.pktLen }

// SetPktLen sets m's datagram-framing length.
func (m *MBuf) SetPktLen(n int) { m.pktLen = n }

// Rem returns the number of free payload bytes remaining in m.
func (m *MBuf) Rem() int { return PayloadSize - m.len }

// Full reports whether m has no remaining payload capacity.
func (m *MBuf) Full() bool { return m.len == PayloadSize }

// Data returns the valid payload bytes of m, i.e. data[:len].
func (m *MBuf) Data() []byte { return m.data[:m.len] }

// DataAt returns the payload bytes of m starting at offset.
func (m *MBuf) DataAt(offset int) []byte { return m.data[offset:m.len] }

// Grow appends n bytes to m's valid length. The caller is responsible for
// having already written those bytes into m's backing storage.
func (m *MBuf) Grow(n int) { m.len += n }

// AvailableAt returns the writable tail of m's backing storage starting at
// its current length, i.e. where the next write should land.
func (m *MBuf) AvailableAt() []byte { return m.data[m.len:] }
