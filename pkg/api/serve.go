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

package api

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/NVIDIA/recipedex/pkg/catalog"
	"github.com/NVIDIA/recipedex/pkg/defaults"
	"github.com/NVIDIA/recipedex/pkg/oci"
	"github.com/NVIDIA/recipedex/pkg/recipe"
	"github.com/NVIDIA/recipedex/pkg/serializer"
	"github.com/NVIDIA/recipedex/pkg/server"
)

const name = "recipedexd"

// Config configures Serve.
type Config struct {
	// Version is reported by the server and stamped on built indexes.
	Version string
	// Catalogs are the catalog sources, merged in order. None serves the
	// embedded catalog.
	Catalogs []string
	// Watch rebuilds the index when the catalog file changes. It requires a
	// single local catalog file.
	Watch bool
	// Kubeconfig is used for cm:// catalogs.
	Kubeconfig string
	// Registry configures the connection for oci:// catalogs.
	Registry oci.RemoteOptions
	// ServerOptions are applied after the defaults.
	ServerOptions []server.Option
}

// ConfigFromEnv returns the Config described by the environment:
// RECIPEDEX_CATALOG (comma separated sources), RECIPEDEX_WATCH,
// RECIPEDEX_KUBECONFIG and RECIPEDEX_PLAIN_HTTP.
func ConfigFromEnv(version string) Config {
	cfg := Config{
		Version:    version,
		Kubeconfig: os.Getenv("RECIPEDEX_KUBECONFIG"),
	}
	for _, c := range strings.Split(os.Getenv("RECIPEDEX_CATALOG"), ",") {
		if c = strings.TrimSpace(c); c != "" {
			cfg.Catalogs = append(cfg.Catalogs, c)
		}
	}
	cfg.Watch = envBool("RECIPEDEX_WATCH")
	cfg.Registry.PlainHTTP = envBool("RECIPEDEX_PLAIN_HTTP")
	return cfg
}

func envBool(key string) bool {
	v := os.Getenv(key)
	if v == "" {
		return false
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid boolean environment variable, ignoring", "key", key, "value", v, "error", err)
	}
	return b
}

// Serve loads the catalog, builds the index and serves the query API until
// ctx is done or the process is signaled.
func Serve(ctx context.Context, cfg Config) error {
	buildOpts := []recipe.Option{
		recipe.WithVersion(cfg.Version),
		recipe.WithDiagnostics(recipe.NewSlogDiagnostics(slog.Default())),
	}

	if cfg.Watch && (len(cfg.Catalogs) != 1 || !isLocalFile(cfg.Catalogs[0])) {
		return fmt.Errorf("watch requires a single local catalog file, got %q", cfg.Catalogs)
	}

	holder, err := loadIndex(ctx, cfg, buildOpts)
	if err != nil {
		return err
	}

	h := NewHandler(holder)
	opts := append([]server.Option{
		server.WithName(name),
		server.WithVersion(cfg.Version),
		server.WithHandler(h.Routes()),
		server.WithReadiness(h.Ready),
	}, cfg.ServerOptions...)
	s := server.New(opts...)

	var tasks []func(context.Context) error
	if cfg.Watch {
		w := catalog.NewWatcher(cfg.Catalogs[0], holder,
			catalog.WithBuildOptions(buildOpts...),
			catalog.WithReaderVersion(cfg.Version))
		tasks = append(tasks, w.Run)
	}

	if err := s.Run(ctx, tasks...); err != nil {
		slog.Error("server exited with error", "error", err)
		return err
	}
	return nil
}

func loadIndex(ctx context.Context, cfg Config, opts []recipe.Option) (*recipe.Holder, error) {
	ctx, cancel := context.WithTimeout(ctx, defaults.IndexBuildTimeout)
	defer cancel()

	doc, err := catalog.LoadAll(ctx, cfg.Catalogs,
		serializer.WithKubeconfig(cfg.Kubeconfig),
		serializer.WithRegistryOptions(cfg.Registry))
	if err != nil {
		return nil, err
	}
	if err := doc.CheckVersion(cfg.Version); err != nil {
		return nil, err
	}
	m, err := doc.Build(ctx, opts...)
	if err != nil {
		return nil, err
	}
	r := m.Report()
	slog.Info("recipe index built",
		slog.Any("catalogs", cfg.Catalogs),
		slog.String("build", m.ID()),
		slog.Int("categories", len(r.Categories)),
		slog.Int("indexed", r.Indexed()),
		slog.Int("skipped", r.Skipped()),
	)
	return recipe.NewHolder(m), nil
}

func isLocalFile(path string) bool {
	if path == "" || strings.Contains(path, "://") {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
