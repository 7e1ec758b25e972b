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

package main

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/driftkernel/mbufchain/pkg/mbufchain"
	"github.com/driftkernel/mbufchain/pkg/metrics"
	"github.com/driftkernel/mbufchain/pkg/usercopy"
)

func init() {
	var readBufSize int
	defineCommand(&cli.Command{
		Name:  "datagram",
		Usage: "Write each message as one datagram, then read them back in order.",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:  "message",
				Usage: "one datagram per occurrence of this flag",
			},
			&cli.IntFlag{
				Name:        "read-buf-size",
				Usage:       "bytes available per read; smaller than a datagram truncates it",
				Destination: &readBufSize,
				Value:       4096,
			},
		},
		Action: func(c *cli.Context) error {
			msgs := c.StringSlice("message")
			if len(msgs) == 0 {
				msgs = []string{"first datagram", "second datagram", "third"}
			}
			return runDatagram(msgs, readBufSize)
		},
	})
}

func runDatagram(messages []string, readBufSize int) error {
	chain := mbufchain.New(mbufchain.Datagram, pages, usercopy.Slice{})
	defer chain.Close()

	for i, msg := range messages {
		src := []byte(msg)
		n, st := chain.WriteDatagram(src, 0, len(src))
		if st != nil {
			return fmt.Errorf("write_datagram %d: %w", i, st)
		}
		logger.Sugar().Infow("write_datagram", "index", i, "len", n, "chain_size", chain.Size(false))
	}

	var received []string
	for i := 0; i < len(messages); i++ {
		if chain.IsEmpty() {
			break
		}
		next := chain.Size(true)
		dst := make([]byte, readBufSize)
		actual, st := chain.Read(dst, 0, len(dst), true)
		if st != nil {
			return fmt.Errorf("read_datagram %d: %w", i, st)
		}
		logger.Sugar().Infow("read_datagram", "index", i, "pkt_len", next, "actual", actual)
		received = append(received, string(dst[:actual]))
	}

	logger.Sugar().Infow("datagram roundtrip complete",
		"count", len(received),
		"mbuf_header_bytes", metrics.Snapshot(),
	)
	fmt.Printf("read back %d datagrams: %s\n", len(received), strings.Join(received, " | "))
	return nil
}
