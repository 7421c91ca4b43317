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

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/recipedex/pkg/api"
)

func typesCmd() *cli.Command {
	return &cli.Command{
		Name:                  "types",
		EnableShellCompletion: true,
		Usage:                 "List recipe categories involving an ingredient",
		Description: `List the recipe categories in which an ingredient plays a role, in
category registration order.

# Examples

Categories producing iron ingots:
  recipedex types -i item:iron_ingot

Categories a furnace is a catalyst for:
  recipedex types -i item:furnace -r catalyst -t table`,
		Flags: indexFlags(ingredientFlag(), roleFlag()),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			focus, err := api.ParseFocus(cmd.String("ingredient"), cmd.String("role"))
			if err != nil {
				return err
			}
			m, err := loadIndex(ctx, cmd)
			if err != nil {
				return err
			}
			doc, err := api.Types(m, focus)
			if err != nil {
				return err
			}
			return writeOutput(ctx, cmd, doc)
		},
	}
}

func recipesCmd() *cli.Command {
	return &cli.Command{
		Name:                  "recipes",
		EnableShellCompletion: true,
		Usage:                 "List recipes of a category involving an ingredient",
		Description: `List the recipes of a category in which an ingredient plays a role.
When the ingredient is a catalyst of the category every recipe of the
category is listed.

# Examples

Smelting recipes using iron ore:
  recipedex recipes -k smelting -i item:iron_ore -r input

Everything a furnace can make:
  recipedex recipes -k smelting -i item:furnace -r catalyst`,
		Flags: indexFlags(categoryFlag(), ingredientFlag(), roleFlag()),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			focus, err := api.ParseFocus(cmd.String("ingredient"), cmd.String("role"))
			if err != nil {
				return err
			}
			m, err := loadIndex(ctx, cmd)
			if err != nil {
				return err
			}
			doc, err := api.Recipes(m, cmd.String("category"), focus)
			if err != nil {
				return err
			}
			return writeOutput(ctx, cmd, doc)
		},
	}
}

func allCmd() *cli.Command {
	return &cli.Command{
		Name:                  "all",
		EnableShellCompletion: true,
		Usage:                 "List every recipe of a category",
		Flags:                 indexFlags(categoryFlag()),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			m, err := loadIndex(ctx, cmd)
			if err != nil {
				return err
			}
			doc, err := api.AllRecipes(m, cmd.String("category"))
			if err != nil {
				return err
			}
			return writeOutput(ctx, cmd, doc)
		},
	}
}

func categoriesCmd() *cli.Command {
	return &cli.Command{
		Name:                  "categories",
		EnableShellCompletion: true,
		Usage:                 "List recipe categories and their catalysts",
		Flags:                 indexFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			m, err := loadIndex(ctx, cmd)
			if err != nil {
				return err
			}
			return writeOutput(ctx, cmd, api.Categories(m))
		},
	}
}
