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
	"github.com/NVIDIA/recipedex/pkg/server"
)

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:                  "serve",
		EnableShellCompletion: true,
		Usage:                 "Serve the recipe query API",
		Description: `Build the index and serve it over HTTP:

  GET /v1/types?ingredient=<ref>&role=<role>
  GET /v1/recipes?category=<uid>[&ingredient=<ref>&role=<role>]
  GET /v1/categories
  GET /v1/report

With --watch the index is rebuilt whenever the catalog file changes; a
catalog that fails to build leaves the current index in place.`,
		Flags: []cli.Flag{
			catalogFlag(),
			kubeconfigFlag(),
			plainHTTPFlag(),
			insecureTLSFlag(),
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Listening port",
				Value:   8080,
				Sources: cli.EnvVars("PORT"),
			},
			&cli.BoolFlag{
				Name:  "watch",
				Usage: "Rebuild the index when the catalog file changes",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return api.Serve(ctx, api.Config{
				Version:       version,
				Catalogs:      cmd.StringSlice("catalog"),
				Watch:         cmd.Bool("watch"),
				Kubeconfig:    cmd.String("kubeconfig"),
				Registry:      registryOptions(cmd),
				ServerOptions: []server.Option{server.WithPort(int(cmd.Int("port")))},
			})
		},
	}
}
