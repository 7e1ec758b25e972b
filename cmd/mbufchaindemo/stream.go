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

	"github.com/urfave/cli/v2"

	"github.com/driftkernel/mbufchain/pkg/mbufchain"
	"github.com/driftkernel/mbufchain/pkg/metrics"
	"github.com/driftkernel/mbufchain/pkg/usercopy"
)

func init() {
	var message string
	var chunkSize int
	defineCommand(&cli.Command{
		Name:  "stream",
		Usage: "Write a message into a stream chain in chunks, then read it back.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "message",
				Usage:       "bytes to write",
				Destination: &message,
				Value:       "hello, mbufchain",
			},
			&cli.IntFlag{
				Name:        "chunk-size",
				Usage:       "bytes written per write_stream call",
				Destination: &chunkSize,
				Value:       5,
			},
		},
		Action: func(c *cli.Context) error {
			return runStream(message, chunkSize)
		},
	})
}

func runStream(message string, chunkSize int) error {
	chain := mbufchain.New(mbufchain.Stream, pages, usercopy.Slice{})
	defer chain.Close()

	src := []byte(message)
	if chunkSize <= 0 {
		chunkSize = len(src)
	}

	written := 0
	for written < len(src) {
		end := written + chunkSize
		if end > len(src) {
			end = len(src)
		}
		n, st := chain.WriteStream(src, written, end-written)
		if st != nil {
			return fmt.Errorf("write_stream at offset %d: %w", written, st)
		}
		written += n
		logger.Sugar().Infow("write_stream", "offset", written-n, "n", n, "chain_size", chain.Size(false))
	}

	dst := make([]byte, len(src))
	actual, st := chain.Read(dst, 0, len(dst), false)
	if st != nil {
		return fmt.Errorf("read: %w", st)
	}

	logger.Sugar().Infow("stream roundtrip complete",
		"written", written,
		"read", actual,
		"matches", string(dst[:actual]) == message,
		"mbuf_header_bytes", metrics.Snapshot(),
	)
	fmt.Printf("wrote %d bytes, read back %q\n", written, dst[:actual])
	return nil
}
