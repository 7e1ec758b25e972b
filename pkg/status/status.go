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

// Package status defines the closed error space returned by mbufchain
// operations. It is deliberately its own type rather than a wrapped stdlib
// error: callers switch on the outcome, and a distinct comparable type keeps
// a stray fmt.Errorf from silently becoming a valid Status.
package status

// Code identifies one of the outcomes an mbufchain operation can report.
type Code int

const (
	// codeOK indicates the operation completed as requested, possibly with
	// zero bytes transferred. Represented by a nil *Status.
	codeOK Code = iota
	codeInvalidArgument
	codeOutOfRange
	codeRetryLater
	codeUserFault
)

// Status is the error type returned by mbufchain operations. A nil *Status
// means ok.
type Status struct {
	code Code
	msg  string
}

// Error implements the error interface.
func (s *Status) Error() string {
	if s == nil {
		return "ok"
	}
	return s.msg
}

// Code returns the outcome this Status represents.
func (s *Status) Code() Code {
	if s == nil {
		return codeOK
	}
	return s.code
}

// Sentinel statuses. Compare by pointer equality (== or errors.Is), never by
// message text.
var (
	// ErrInvalidArgument: zero-length datagram, or a user-copy fault during
	// a datagram write (which rolls the chain back to its prior state).
	ErrInvalidArgument = &Status{code: codeInvalidArgument, msg: "invalid argument"}

	// ErrOutOfRange: a datagram larger than MaxSize.
	ErrOutOfRange = &Status{code: codeOutOfRange, msg: "out of range"}

	// ErrRetryLater: temporary back-pressure — insufficient space or a
	// page allocation failure. The caller should retry after a read.
	ErrRetryLater = &Status{code: codeRetryLater, msg: "retry later"}

	// ErrUserFault: a user-copy fault during a stream write or during a
	// read/peek. The accompanying byte count reports progress made before
	// the fault.
	ErrUserFault = &Status{code: codeUserFault, msg: "user copy fault"}
)

// IsOK reports whether s represents successful completion.
func IsOK(s *Status) bool {
	return s == nil
}
