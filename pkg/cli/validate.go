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

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/recipedex/pkg/api"
)

func validateCmd() *cli.Command {
	return &cli.Command{
		Name:                  "validate",
		EnableShellCompletion: true,
		Usage:                 "Validate a catalog and report how its recipes were indexed",
		Description: `Load the catalogs, build the index and print the build report: per
category, the number of indexed, invalid and failed recipes, and the number
of uncategorized recipes no category handles.

Structural errors (duplicate or missing category uids, malformed catalysts,
recipes naming unknown categories) fail the command.

# Examples

  recipedex validate -c catalog.yaml

Fail when any recipe was skipped (useful for CI/CD):
  recipedex validate -c catalog.yaml --fail-on-skip`,
		Flags: indexFlags(&cli.BoolFlag{
			Name:  "fail-on-skip",
			Usage: "Exit with non-zero status if any recipe was left out of the index",
		}),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			m, err := loadIndex(ctx, cmd)
			if err != nil {
				return fmt.Errorf("catalog is invalid: %w", err)
			}

			report := api.Report(m)
			if err := writeOutput(ctx, cmd, report); err != nil {
				return err
			}

			slog.Info("validation completed",
				"indexed", report.Indexed(),
				"skipped", report.Skipped(),
				"unhandled", report.Unhandled)

			if cmd.Bool("fail-on-skip") && report.Skipped() > 0 {
				return fmt.Errorf("validation failed: %d recipe(s) were not indexed", report.Skipped())
			}
			return nil
		},
	}
}
