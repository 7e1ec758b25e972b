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

package usercopy

import "sync/atomic"

// FaultAfter wraps a Copier and injects ErrFault once the total number of
// bytes it has been asked to copy (summed across both directions) reaches
// a configured threshold. It exists to drive test scenarios that require a
// fault partway through a multi-MBuf transfer.
type FaultAfter struct {
	next      Copier
	threshold int64
	done      int64 // atomic
}

// NewFaultAfter returns a Copier that behaves like next until threshold
// total bytes have been copied, then faults on every subsequent call. A
// call that straddles the threshold partially succeeds: bytes up to the
// threshold are copied for real (matching a real page-fault, which happens
// mid-copy at a specific address, not at a call boundary) and the call
// still reports ErrFault.
func NewFaultAfter(next Copier, threshold int) *FaultAfter {
	return &FaultAfter{next: next, threshold: int64(threshold)}
}

// Reset zeroes the injector's byte counter so it can be reused.
func (f *FaultAfter) Reset() {
	atomic.StoreInt64(&f.done, 0)
}

func (f *FaultAfter) advance(n int) (allowed int, fault bool) {
	done := atomic.LoadInt64(&f.done)
	remaining := f.threshold - done
	if remaining <= 0 {
		return 0, true
	}
	if int64(n) <= remaining {
		atomic.AddInt64(&f.done, int64(n))
		return n, false
	}
	atomic.AddInt64(&f.done, remaining)
	return int(remaining), true
}

// CopyFromUser implements Copier.
func (f *FaultAfter) CopyFromUser(src []byte, offset int, dst []byte, n int) (int, error) {
	allowed, fault := f.advance(n)
	var copied int
	if allowed > 0 {
		var err error
		copied, err = f.next.CopyFromUser(src, offset, dst, allowed)
		if err != nil {
			return copied, err
		}
	}
	if fault {
		return copied, ErrFault
	}
	return copied, nil
}

// CopyToUser implements Copier.
func (f *FaultAfter) CopyToUser(dst []byte, offset int, src []byte, n int) (int, error) {
	allowed, fault := f.advance(n)
	var copied int
	if allowed > 0 {
		var err error
		copied, err = f.next.CopyToUser(dst, offset, src, allowed)
		if err != nil {
			return copied, err
		}
	}
	if fault {
		return copied, ErrFault
	}
	return copied, nil
}
