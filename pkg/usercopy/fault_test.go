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

import (
	"errors"
	"testing"
)

func TestSliceCopyRoundTrip(t *testing.T) {
	src := []byte("hello world")
	dst := make([]byte, 5)

	n, err := Slice{}.CopyFromUser(src, 6, dst, 5)
	if err != nil {
		t.Fatalf("CopyFromUser error = %v", err)
	}
	if n != 5 || string(dst) != "world" {
		t.Fatalf("CopyFromUser: n=%d dst=%q, want 5/%q", n, dst, "world")
	}

	out := make([]byte, 11)
	n, err = Slice{}.CopyToUser(out, 0, src, len(src))
	if err != nil {
		t.Fatalf("CopyToUser error = %v", err)
	}
	if n != len(src) || string(out) != string(src) {
		t.Fatalf("CopyToUser: n=%d out=%q, want %d/%q", n, out, len(src), src)
	}
}

func TestFaultAfterSplitsACallAtTheThreshold(t *testing.T) {
	f := NewFaultAfter(Slice{}, 10)

	src := make([]byte, 20)
	for i := range src {
		src[i] = byte(i)
	}
	dst := make([]byte, 20)

	n, err := f.CopyFromUser(src, 0, dst, 20)
	if !errors.Is(err, ErrFault) {
		t.Fatalf("CopyFromUser error = %v, want ErrFault", err)
	}
	if n != 10 {
		t.Fatalf("CopyFromUser copied %d bytes before fault, want 10", n)
	}
	if got, want := dst[:10], src[:10]; string(got) != string(want) {
		t.Errorf("bytes copied before the fault = %v, want %v", got, want)
	}
	for _, b := range dst[10:] {
		if b != 0 {
			t.Fatalf("bytes past the fault were written: dst[10:] = %v", dst[10:])
		}
	}
}

func TestFaultAfterFaultsImmediatelyOnceExhausted(t *testing.T) {
	f := NewFaultAfter(Slice{}, 4)
	dst := make([]byte, 4)
	src := make([]byte, 4)

	if _, err := f.CopyFromUser(src, 0, dst, 4); err != nil {
		t.Fatalf("first call: err = %v, want nil", err)
	}

	n, err := f.CopyFromUser(src, 0, dst, 4)
	if !errors.Is(err, ErrFault) {
		t.Fatalf("second call: err = %v, want ErrFault", err)
	}
	if n != 0 {
		t.Fatalf("second call copied %d bytes, want 0", n)
	}
}

func TestFaultAfterResetAllowsReuse(t *testing.T) {
	f := NewFaultAfter(Slice{}, 4)
	dst := make([]byte, 4)
	src := make([]byte, 4)

	f.CopyFromUser(src, 0, dst, 4)
	f.Reset()

	if _, err := f.CopyFromUser(src, 0, dst, 4); err != nil {
		t.Fatalf("after Reset: err = %v, want nil", err)
	}
}
