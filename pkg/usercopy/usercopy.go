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

// Package usercopy provides the fault-checked user/kernel copy primitive
// mbufchain relies on to move bytes across the user/kernel boundary. Real
// kernels fault these copies when the user pointer is unmapped or
// unreadable/unwritable; this package models that boundary for a hosted Go
// process, where the "user buffer" is just a []byte owned by the caller.
package usercopy

import "errors"

// ErrFault is returned when a copy could not be completed. On fault the
// destination is considered clobbered up to an unspecified prefix;
// mbufchain never reads clobbered bytes back.
var ErrFault = errors.New("usercopy: fault")

// Copier moves bytes between a caller-supplied buffer and a
// kernel-addressable slice. It reports both the number of bytes actually
// moved and a fault rather than a bare ok/fault signal: a real page fault
// happens mid-copy at a specific address, and mbufchain's partial-progress
// contract depends on knowing exactly how many bytes landed before it did.
type Copier interface {
	// CopyFromUser copies up to n bytes from src[offset:offset+n] into
	// dst, returning how many bytes were actually copied. len(dst) must
	// be >= n. A non-nil error means a fault occurred after copying the
	// returned number of bytes; nothing beyond that count in dst is
	// meaningful.
	CopyFromUser(src []byte, offset int, dst []byte, n int) (int, error)

	// CopyToUser copies up to n bytes from src into dst[offset:offset+n],
	// returning how many bytes were actually copied. len(src) must be
	// >= n.
	CopyToUser(dst []byte, offset int, src []byte, n int) (int, error)
}

// Slice is a Copier over plain byte slices with no fault injection. It is
// the copier used by production callers of the demo (there is no real
// user/kernel boundary in a hosted process) and by tests that don't care
// about fault paths.
type Slice struct{}

// CopyFromUser implements Copier.
func (Slice) CopyFromUser(src []byte, offset int, dst []byte, n int) (int, error) {
	copy(dst[:n], src[offset:offset+n])
	return n, nil
}

// CopyToUser implements Copier.
func (Slice) CopyToUser(dst []byte, offset int, src []byte, n int) (int, error) {
	copy(dst[offset:offset+n], src[:n])
	return n, nil
}
