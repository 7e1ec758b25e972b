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

// Command mbufchaindemo exercises mbufchain end to end: it builds a Chain
// over a real PageSource and Copier and drives stream or datagram traffic
// through it, printing what the chain reports at each step.
package main

import (
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/driftkernel/mbufchain/pkg/config"
	"github.com/driftkernel/mbufchain/pkg/mbuflog"
	"github.com/driftkernel/mbufchain/pkg/pagesource"
)

var (
	cfg    *config.Config
	logger *mbuflog.Logger
	runID  string
	pages  pagesource.Source
)

var app = &cli.App{
	Name:  "mbufchaindemo",
	Usage: "drive byte-stream and datagram traffic through an mbufchain.Chain.",
	Before: func(c *cli.Context) error {
		cfg = config.LoadOrDefault()

		var err error
		if cfg.Logging.Development {
			logger, err = mbuflog.New(mbuflog.DevelopmentConfig())
		} else {
			logger, err = mbuflog.New(mbuflog.Config{
				Level:       cfg.Logging.Level,
				Development: cfg.Logging.Development,
				OutputPaths: []string{"stdout"},
			})
		}
		if err != nil {
			return fmt.Errorf("build logger: %w", err)
		}

		runID = uuid.NewString()
		logger = &mbuflog.Logger{Logger: logger.With(zap.String("run_id", runID))}

		switch cfg.Pages.Backend {
		case "mmap":
			mmapSource := pagesource.NewMmapSource(cfg.Pages.Capacity)
			mmapSource.SetLogger(logger)
			pages = mmapSource
		default:
			pages = pagesource.NewPoolSource(cfg.Pages.Capacity)
		}

		logger.Sugar().Infow("mbufchaindemo starting",
			"page_backend", cfg.Pages.Backend,
			"page_capacity", cfg.Pages.Capacity,
		)
		return nil
	},
	After: func(c *cli.Context) error {
		if logger != nil {
			logger.Sync()
		}
		return nil
	},
}

func defineCommand(command *cli.Command) {
	app.Commands = append(app.Commands, command)
}

func main() {
	sort.Sort(cli.CommandsByName(app.Commands))
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
