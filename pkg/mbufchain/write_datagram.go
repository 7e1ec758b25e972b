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

// WriteDatagram commits len bytes read from src[srcOffset:] as a single
// atomic datagram: either the whole message lands and becomes visible as
// one logical unit, or the chain is left completely unchanged.
func (c *Chain) WriteDatagram(src []byte, srcOffset, length int) (written int, st *status.Status) {
	if length == 0 {
		return 0, status.ErrInvalidArgument
	}
	if length > MaxSize {
		return 0, status.ErrOutOfRange
	}
	if length+c.size > MaxSize {
		return 0, status.ErrRetryLater
	}

	batch, allocErr := c.allocBatch(mbuf.NumBuffersForPayload(length))
	if allocErr != nil {
		return 0, status.ErrRetryLater
	}

	pos := 0
	for buf := batch.Front(); buf != nil; buf = buf.Next() {
		toCopy := buf.Rem()
		if left := length - pos; toCopy > left {
			toCopy = left
		}
		n, err := c.copier.CopyFromUser(src, srcOffset+pos, buf.AvailableAt(), toCopy)
		buf.Grow(n)
		pos += n
		if err != nil {
			// All-or-nothing: discard the entire batch, the chain is
			// left exactly as it was before this call.
			c.freeAll(&batch)
			return 0, status.ErrInvalidArgument
		}
	}

	batch.Front().SetPktLen(length)
	c.buffers.PushListBack(&batch)
	c.size += length
	return length, nil
}
