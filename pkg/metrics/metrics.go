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

// Package metrics tracks the process-wide total of bytes consumed by MBuf
// headers, an external counter maintained outside the chain's own scope.
// It is deliberately best-effort: a missed or double count here never
// affects chain correctness, only observability.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/driftkernel/mbufchain/pkg/atomicbitops"
)

// MBufBytes is the process-wide gauge of bytes consumed by MBuf headers
// across every chain in the process, incremented on MBuf construction and
// decremented on destruction. A Prometheus gauge's Add is lock-free, which
// is what "best-effort, relaxed-atomic" means in practice.
var MBufBytes = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "mbufchain",
	Name:      "mbuf_header_bytes",
	Help:      "Total bytes currently consumed by MBuf headers across all chains.",
})

// snapshot mirrors MBufBytes as a relaxed atomic counter so tests can
// assert on it without scraping a Prometheus registry.
var snapshot atomicbitops.Int64

// AddMBuf records the creation of an MBuf of the given size in bytes.
func AddMBuf(size int64) {
	MBufBytes.Add(float64(size))
	snapshot.Add(size)
}

// RemoveMBuf records the destruction of an MBuf of the given size in
// bytes.
func RemoveMBuf(size int64) {
	MBufBytes.Add(-float64(size))
	snapshot.Add(-size)
}

// Snapshot returns the current value of the counter.
func Snapshot() int64 {
	return snapshot.Load()
}
