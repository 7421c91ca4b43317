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

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/recipedex/pkg/header"
)

func mergeCmd() *cli.Command {
	return &cli.Command{
		Name:                  "merge",
		EnableShellCompletion: true,
		Usage:                 "Merge catalogs into one",
		Description: `Load every --catalog concurrently and write a single catalog holding
their categories and recipes in order. Categories declared more than once
keep their first declaration and collect the catalysts of later ones.

# Examples

  recipedex merge -c base.yaml -c modpack.yaml -o merged.yaml

Publish the merged catalog to a ConfigMap:
  recipedex merge -c base.yaml -c https://example.com/extra.yaml -o cm://recipes/catalog`,
		Flags: indexFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if len(cmd.StringSlice("catalog")) == 0 {
				return fmt.Errorf("at least one --catalog is required")
			}
			doc, err := loadCatalog(ctx, cmd)
			if err != nil {
				return err
			}
			if err := doc.Validate(); err != nil {
				return err
			}
			doc.Init(header.KindCatalog, header.APIVersion, version)
			return writeOutput(ctx, cmd, doc)
		},
	}
}
