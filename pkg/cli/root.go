// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
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

package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/recipedex/pkg/logging"
)

const (
	name           = "recipedex"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Execute runs the recipedex CLI with the process arguments and exits
// non-zero on error. It is called by main.main().
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cli.Command {
	return &cli.Command{
		Name:                  name,
		Usage:                 "Index and query recipes by ingredient",
		Version:               fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		EnableShellCompletion: true,
		Description: `recipedex builds an index over a recipe catalog and answers:

  types       which recipe categories involve an ingredient in a role
  recipes     which recipes of a category involve an ingredient
  all         every recipe of a category
  categories  the registered categories and their catalysts

Catalogs are read from files, HTTP(S) URLs, ConfigMaps (cm://namespace/name)
or OCI registries (oci://registry/repository:tag).
Several --catalog flags are merged in order. Without one the embedded sample
catalog is used.

Ingredients are written as item:<name>[@damage] or fluid:<name>[*amount].`,
		Flags: []cli.Flag{
			logLevelFlag(),
		},
		Before: initLogger,
		Commands: []*cli.Command{
			typesCmd(),
			recipesCmd(),
			allCmd(),
			categoriesCmd(),
			validateCmd(),
			mergeCmd(),
			pushCmd(),
			serveCmd(),
		},
	}
}

// initLogger configures slog after flags are parsed so --log-level takes
// effect before any command executes.
func initLogger(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	level := cmd.String("log-level")
	logging.SetDefaultStructuredLoggerWithLevel(name, version, level)
	slog.Debug("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
		"logLevel", level)
	return ctx, nil
}
