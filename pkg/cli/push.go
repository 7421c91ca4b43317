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
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/recipedex/pkg/header"
	"github.com/NVIDIA/recipedex/pkg/oci"
	"github.com/NVIDIA/recipedex/pkg/serializer"
)

func pushCmd() *cli.Command {
	return &cli.Command{
		Name:                  "push",
		EnableShellCompletion: true,
		Usage:                 "Publish a catalog to an OCI registry",
		ArgsUsage:             "oci://registry/repository[:tag]",
		Description: `Merge and validate the --catalog sources and push the result as an OCI
artifact. The tag defaults to the recipedex version. Registry credentials
are read from the Docker credential store.

The pushed catalog can be used as a source anywhere --catalog is accepted.

# Examples

  recipedex push -c catalog.yaml oci://ghcr.io/org/catalogs:v1

Reproducible push to a local registry:
  recipedex push -c catalog.yaml --plain-http --created 2025-01-01T00:00:00Z \
    oci://localhost:5000/catalogs:v1`,
		Flags: []cli.Flag{
			catalogFlag(),
			kubeconfigFlag(),
			plainHTTPFlag(),
			insecureTLSFlag(),
			formatFlag(),
			&cli.StringFlag{
				Name:  "created",
				Usage: "RFC 3339 timestamp recorded in the manifest for reproducible pushes",
			},
			&cli.StringSliceFlag{
				Name:  "annotation",
				Usage: "Extra manifest annotation as key=value, can be repeated",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			target := cmd.Args().First()
			if target == "" {
				return fmt.Errorf("an oci:// target is required")
			}
			ref, err := oci.ParseReference(target)
			if err != nil {
				return err
			}
			if ref.Tag == "" {
				ref = ref.WithTag(version)
			}

			format, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}
			if format == serializer.FormatTable {
				return fmt.Errorf("catalogs can only be pushed as %s or %s", serializer.FormatYAML, serializer.FormatJSON)
			}

			annotations, err := parseAnnotations(cmd.StringSlice("annotation"))
			if err != nil {
				return err
			}

			doc, err := loadCatalog(ctx, cmd)
			if err != nil {
				return err
			}
			if err := doc.Validate(); err != nil {
				return err
			}
			doc.Init(header.KindCatalog, header.APIVersion, version)

			data, err := serializer.Marshal(format, doc)
			if err != nil {
				return err
			}

			res, err := oci.PushRemote(ctx, ref, data, oci.PushOptions{
				MediaType:   oci.MediaTypeFor(string(format)),
				Version:     version,
				Created:     cmd.String("created"),
				Annotations: annotations,
			}, registryOptions(cmd))
			if err != nil {
				return err
			}

			slog.Info("catalog published", "reference", res.Reference, "digest", res.Digest)
			fmt.Fprintf(cmd.Root().Writer, "%s@%s\n", res.Reference, res.Digest)
			return nil
		},
	}
}

// parseAnnotations turns key=value pairs into a map.
func parseAnnotations(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	out := make(map[string]string, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid annotation %q, expected key=value", p)
		}
		out[k] = v
	}
	return out, nil
}
