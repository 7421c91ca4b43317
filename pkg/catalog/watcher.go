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

package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/NVIDIA/recipedex/pkg/defaults"
	"github.com/NVIDIA/recipedex/pkg/recipe"
)

// Watcher rebuilds the index when a catalog file changes and stores the
// result in a Holder. A failed rebuild keeps the current index.
type Watcher struct {
	path     string
	holder   *recipe.Holder
	debounce time.Duration
	opts     []recipe.Option
	version  string

	// reloaded receives the outcome of every reload triggered by a change.
	reloaded chan error
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithDebounce sets how long the watcher waits for writes to settle.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// WithBuildOptions sets the options of every index build.
func WithBuildOptions(opts ...recipe.Option) WatcherOption {
	return func(w *Watcher) {
		w.opts = opts
	}
}

// WithReaderVersion rejects reloaded catalogs requiring a release newer
// than v.
func WithReaderVersion(v string) WatcherOption {
	return func(w *Watcher) {
		w.version = v
	}
}

// NewWatcher returns a watcher for the catalog file at path.
func NewWatcher(path string, holder *recipe.Holder, opts ...WatcherOption) *Watcher {
	w := &Watcher{
		path:     path,
		holder:   holder,
		debounce: defaults.CatalogReloadDebounce,
		reloaded: make(chan error, 1),
	}
	for _, o := range opts {
		o(w)
	}
	return w
}

// Reloaded returns a channel receiving the result of each change-triggered
// reload. Results are dropped when nobody reads them.
func (w *Watcher) Reloaded() <-chan error {
	return w.reloaded
}

// Reload loads the catalog and stores the new index.
func (w *Watcher) Reload(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, defaults.IndexBuildTimeout)
	defer cancel()

	m, err := w.build(ctx)
	if err != nil {
		catalogReloadsTotal.WithLabelValues("error").Inc()
		slog.Error("catalog reload failed, keeping current index",
			slog.String("path", w.path), slog.String("error", err.Error()))
		return err
	}

	prev := w.holder.Store(m)
	catalogReloadsTotal.WithLabelValues("success").Inc()
	attrs := []any{slog.String("path", w.path), slog.String("build", m.ID())}
	if prev != nil {
		attrs = append(attrs, slog.String("previous", prev.ID()))
	}
	slog.Info("catalog reloaded", attrs...)
	return nil
}

func (w *Watcher) build(ctx context.Context) (*recipe.Manager, error) {
	doc, err := Load(ctx, w.path)
	if err != nil {
		return nil, err
	}
	if err := doc.CheckVersion(w.version); err != nil {
		return nil, err
	}
	return doc.Build(ctx, w.opts...)
}

// Run watches the catalog directory until ctx is done. Writes are debounced
// and each settled change triggers a Reload.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating fsnotify watcher: %w", err)
	}
	defer fsw.Close()

	// Editors replace files by rename, so watch the directory.
	dir := filepath.Dir(w.path)
	if err := fsw.Add(dir); err != nil {
		return fmt.Errorf("watching directory %s: %w", dir, err)
	}
	slog.Debug("watching catalog", slog.String("path", w.path))

	var (
		timer   *time.Timer
		pending <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !w.isRelevantEvent(event) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			pending = timer.C

		case <-pending:
			pending = nil
			err := w.Reload(ctx)
			select {
			case w.reloaded <- err:
			default:
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			slog.Warn("catalog watcher error", slog.String("error", err.Error()))
		}
	}
}

func (w *Watcher) isRelevantEvent(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return false
	}
	return filepath.Base(event.Name) == filepath.Base(w.path)
}
