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

// Peek copies up to length bytes from the front of the chain into
// dst[dstOffset:] without consuming them: size and the read cursor are left
// exactly as they were.
func (c *Chain) Peek(dst []byte, dstOffset, length int, datagram bool) (actual int, st *status.Status) {
	return c.readOrPeek(dst, dstOffset, length, datagram, false)
}

// Read copies up to length bytes from the front of the chain into
// dst[dstOffset:] and consumes them. In datagram mode a read always
// finishes (or discards) exactly one whole datagram, even when the
// caller's buffer is smaller than the datagram.
func (c *Chain) Read(dst []byte, dstOffset, length int, datagram bool) (actual int, st *status.Status) {
	return c.readOrPeek(dst, dstOffset, length, datagram, true)
}

// readOrPeek implements the shared walk both Read and Peek are built on,
// parameterized by consume: false leaves the chain untouched, true retires
// MBufs and advances the read cursor as bytes are copied out.
func (c *Chain) readOrPeek(dst []byte, dstOffset, length int, datagram, consume bool) (actual int, st *status.Status) {
	if c.size == 0 {
		return 0, nil
	}

	if datagram {
		if pktLen := c.buffers.Front().PktLen(); length > pktLen {
			length = pktLen
		}
	}

	var freeList mbuf.List
	cursor := c.readCursorOff
	cur := c.buffers.Front()
	pos := 0
	fault := false

	for pos < length && cur != nil {
		toCopy := cur.Len() - cursor
		if left := length - pos; toCopy > left {
			toCopy = left
		}

		n, err := c.copier.CopyToUser(dst, dstOffset+pos, cur.DataAt(cursor), toCopy)
		pos += n

		if !consume {
			// Local cursor/iterator only; the chain is never touched.
			cursor = 0
			cur = cur.Next()
			if err != nil {
				fault = true
				break
			}
			continue
		}

		cursor += n
		c.size -= n

		// A datagram read always retires the MBuf it just touched, even
		// if that MBuf wasn't fully drained: any bytes the caller didn't
		// ask for are discarded along with it.
		if cursor == cur.Len() || datagram {
			if datagram {
				c.size -= cur.Len() - cursor
			}
			freeList.PushBack(c.buffers.PopFront())
			cursor = 0
			cur = c.buffers.Front()
		}

		if err != nil {
			fault = true
			break
		}
	}

	if consume {
		// Drain any remaining continuation MBufs of the same datagram
		// that the main loop never reached, so the next read starts on
		// a clean datagram boundary.
		if datagram {
			for !c.buffers.Empty() && c.buffers.Front().PktLen() == 0 {
				front := c.buffers.Front()
				c.size -= front.Len() - cursor
				freeList.PushBack(c.buffers.PopFront())
				cursor = 0
			}
		}
		c.readCursorOff = cursor
		c.freeAll(&freeList)
	}

	if fault {
		return pos, status.ErrUserFault
	}
	return pos, nil
}
