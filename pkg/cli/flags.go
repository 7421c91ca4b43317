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

	"github.com/NVIDIA/recipedex/pkg/api"
	"github.com/NVIDIA/recipedex/pkg/catalog"
	"github.com/NVIDIA/recipedex/pkg/ingredient"
	"github.com/NVIDIA/recipedex/pkg/oci"
	"github.com/NVIDIA/recipedex/pkg/recipe"
	"github.com/NVIDIA/recipedex/pkg/serializer"
)

func logLevelFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "log-level",
		Usage:   "log level (debug, info, warn, error)",
		Value:   "info",
		Sources: cli.EnvVars("LOG_LEVEL"),
	}
}

func catalogFlag() cli.Flag {
	return &cli.StringSliceFlag{
		Name:    "catalog",
		Aliases: []string{"c"},
		Usage: `Path/URI of a recipe catalog, can be repeated.
	Supports: file paths, HTTP/HTTPS URLs, ConfigMap URIs (cm://namespace/name)
	or OCI artifacts (oci://registry/repository:tag).`,
		Sources: cli.EnvVars("RECIPEDEX_CATALOG"),
	}
}

func kubeconfigFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "kubeconfig",
		Usage:   "Path to kubeconfig used for ConfigMap catalogs and outputs",
		Sources: cli.EnvVars("RECIPEDEX_KUBECONFIG"),
	}
}

func plainHTTPFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:    "plain-http",
		Usage:   "Use HTTP instead of HTTPS for oci:// registries",
		Sources: cli.EnvVars("RECIPEDEX_PLAIN_HTTP"),
	}
}

func insecureTLSFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:    "insecure-tls",
		Usage:   "Skip TLS verification for oci:// registries",
		Sources: cli.EnvVars("RECIPEDEX_INSECURE_TLS"),
	}
}

func outputFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "Output destination: file path or ConfigMap URI (cm://namespace/name); stdout when empty",
	}
}

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"t"},
		Usage:   fmt.Sprintf("Output format (supported values: %s)", strings.Join(serializer.SupportedFormats(), ", ")),
		Value:   string(serializer.FormatYAML),
	}
}

func ingredientFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "ingredient",
		Aliases: []string{"i"},
		Usage:   "Focused ingredient (item:<name>[@damage] or fluid:<name>[*amount])",
	}
}

func roleFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "role",
		Aliases: []string{"r"},
		Usage:   fmt.Sprintf("Role of the focused ingredient (supported values: %s)", strings.Join(ingredient.SupportedRoles(), ", ")),
		Value:   api.DefaultRole.String(),
	}
}

func categoryFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "category",
		Aliases:  []string{"k"},
		Usage:    "Recipe category uid",
		Required: true,
	}
}

// parseOutputFormat returns the --format value, rejecting unknown formats.
func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	f := serializer.Format(cmd.String("format"))
	if f.IsUnknown() {
		return "", fmt.Errorf("unknown output format: %q, supported values: %v", f, serializer.SupportedFormats())
	}
	return f, nil
}

// loadCatalog loads and merges the --catalog sources.
func loadCatalog(ctx context.Context, cmd *cli.Command) (*catalog.Document, error) {
	paths := cmd.StringSlice("catalog")
	slog.Debug("loading catalog", "sources", paths)
	doc, err := catalog.LoadAll(ctx, paths, sourceOptions(cmd)...)
	if err != nil {
		return nil, err
	}
	if err := doc.CheckVersion(version); err != nil {
		return nil, err
	}
	return doc, nil
}

// sourceOptions are the serializer options for reading --catalog sources.
func sourceOptions(cmd *cli.Command) []serializer.Option {
	return []serializer.Option{
		serializer.WithKubeconfig(cmd.String("kubeconfig")),
		serializer.WithRegistryOptions(registryOptions(cmd)),
	}
}

func registryOptions(cmd *cli.Command) oci.RemoteOptions {
	return oci.RemoteOptions{
		PlainHTTP:   cmd.Bool("plain-http"),
		InsecureTLS: cmd.Bool("insecure-tls"),
	}
}

// loadIndex loads the --catalog sources and builds the recipe index.
func loadIndex(ctx context.Context, cmd *cli.Command) (*recipe.Manager, error) {
	doc, err := loadCatalog(ctx, cmd)
	if err != nil {
		return nil, err
	}
	return doc.Build(ctx,
		recipe.WithVersion(version),
		recipe.WithDiagnostics(recipe.NewSlogDiagnostics(slog.Default())),
	)
}

// writeOutput serializes doc to --output in --format.
func writeOutput(ctx context.Context, cmd *cli.Command, doc any) error {
	outFormat, err := parseOutputFormat(cmd)
	if err != nil {
		return err
	}

	ser := serializer.NewFileWriterOrStdout(outFormat, cmd.String("output"),
		serializer.WithKubeconfig(cmd.String("kubeconfig")))
	defer func() {
		if closer, ok := ser.(serializer.Closer); ok {
			if err := closer.Close(); err != nil {
				slog.Warn("failed to close serializer", "error", err)
			}
		}
	}()

	if err := ser.Serialize(ctx, doc); err != nil {
		return fmt.Errorf("failed to serialize output: %w", err)
	}
	return nil
}

// indexFlags are shared by every command that queries the index.
func indexFlags(extra ...cli.Flag) []cli.Flag {
	return append(extra, catalogFlags()...)
}

// catalogFlags select and reach the catalog sources.
func catalogFlags() []cli.Flag {
	return []cli.Flag{catalogFlag(), kubeconfigFlag(), plainHTTPFlag(), insecureTLSFlag(), outputFlag(), formatFlag()}
}
