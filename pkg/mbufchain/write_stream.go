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

package mbufchain

import (
	"github.com/driftkernel/mbufchain/pkg/mbuf"
	"github.com/driftkernel/mbufchain/pkg/status"
)

// WriteStream appends up to length bytes of stream data read from
// src[srcOffset:] and reports how many bytes were actually written.
//
// It is a best-effort, possibly-partial append: there is no atomicity
// contract in stream mode, so producers can always tell how much of their
// buffer was actually delivered.
func (c *Chain) WriteStream(src []byte, srcOffset, length int) (written int, st *status.Status) {
	effective := length
	if room := MaxSize - c.size; effective > room {
		effective = room
	}
	if effective < 0 {
		effective = 0
	}

	pos := 0

	// Fill the tail of the existing back MBuf before allocating a new
	// page.
	if back := c.buffers.Back(); back != nil && back.Rem() > 0 {
		copyLen := back.Rem()
		if remaining := effective - pos; copyLen > remaining {
			copyLen = remaining
		}
		if copyLen > 0 {
			n, err := c.copier.CopyFromUser(src, srcOffset+pos, back.AvailableAt(), copyLen)
			back.Grow(n)
			c.size += n
			pos += n
			if err != nil {
				return pos, status.ErrUserFault
			}
		}
	}

	if pos != effective {
		batch, allocErr := c.allocBatch(mbuf.NumBuffersForPayload(effective - pos))
		if allocErr != nil {
			// Allocation failed: keep whatever landed in the existing
			// back MBuf and report it as a short but successful write,
			// unless nothing was written at all.
			if pos == 0 {
				return 0, status.ErrRetryLater
			}
			return pos, nil
		}

		for buf := batch.PopFront(); buf != nil; buf = batch.PopFront() {
			toCopy := buf.Rem()
			if left := effective - pos; toCopy > left {
				toCopy = left
			}

			n, err := c.copier.CopyFromUser(src, srcOffset+pos, buf.AvailableAt(), toCopy)
			buf.Grow(n)
			c.size += n
			pos += n
			if n > 0 {
				c.buffers.PushBack(buf)
			}
			if err != nil {
				c.freeUnattached(buf, n, &batch)
				return pos, status.ErrUserFault
			}
			if pos == effective {
				break
			}
		}
	}

	if pos == 0 {
		return 0, status.ErrRetryLater
	}
	return pos, nil
}

// freeUnattached returns every MBuf from a just-allocated write batch that
// never received data to the PageSource, after a fault has stopped the
// copy loop partway through. faulted is the buffer the fault occurred on;
// it was already appended to c.buffers above if it received at least one
// byte (faultedGotBytes > 0), in which case it is left untouched here.
// Everything still left in batch was never even reached and is always
// unattached. Bytes already copied stay in the chain; only still-unattached,
// just-allocated MBufs are returned to the PageSource.
func (c *Chain) freeUnattached(faulted *mbuf.MBuf, faultedGotBytes int, batch *mbuf.List) {
	var toFree mbuf.List
	if faultedGotBytes == 0 {
		toFree.PushBack(faulted)
	}
	toFree.PushListBack(batch)
	c.freeAll(&toFree)
}
