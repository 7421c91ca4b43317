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
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/recipedex/pkg/ingredient"
	"github.com/NVIDIA/recipedex/pkg/recipe"
)

const brokenCatalog = `kind: Catalog
categories:
  - uid: smelting
  - uid: smelting
`

func TestWatcher_Reload(t *testing.T) {
	dir := t.TempDir()
	path := writeCatalog(t, dir, "catalog.yaml", smeltingCatalog)
	holder := recipe.NewHolder(nil)
	w := NewWatcher(path, holder)
	ctx := context.Background()

	require.NoError(t, w.Reload(ctx))
	require.True(t, holder.Ready())
	first := holder.Load()
	assert.Len(t, first.AllRecipes("smelting"), 1)

	// A broken catalog keeps the current index.
	writeCatalog(t, dir, "catalog.yaml", brokenCatalog)
	require.Error(t, w.Reload(ctx))
	assert.Same(t, first, holder.Load())

	writeCatalog(t, dir, "catalog.yaml", smeltingCatalog+`  - id: gold_ingot
    category: smelting
    inputs: ["item:gold_ore"]
    outputs: ["item:gold_ingot"]
`)
	require.NoError(t, w.Reload(ctx))
	assert.NotSame(t, first, holder.Load())
	assert.Len(t, holder.Load().AllRecipes("smelting"), 2)

	// Readers holding the old index are unaffected.
	assert.Len(t, first.AllRecipes("smelting"), 1)
}

func TestWatcher_ReloadRejectsNewerCatalog(t *testing.T) {
	dir := t.TempDir()
	path := writeCatalog(t, dir, "catalog.yaml", smeltingCatalog)
	holder := recipe.NewHolder(nil)
	w := NewWatcher(path, holder, WithReaderVersion("v0.2.0"))
	ctx := context.Background()

	require.NoError(t, w.Reload(ctx))
	first := holder.Load()

	writeCatalog(t, dir, "catalog.yaml", "requires: v0.5\n"+smeltingCatalog)
	err := w.Reload(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires recipedex v0.5")
	assert.Same(t, first, holder.Load())
}

func TestWatcher_Run(t *testing.T) {
	dir := t.TempDir()
	path := writeCatalog(t, dir, "catalog.yaml", smeltingCatalog)
	holder := recipe.NewHolder(nil)
	w := NewWatcher(path, holder, WithDebounce(20*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	// Give the watcher time to register the directory.
	time.Sleep(50 * time.Millisecond)

	// Unrelated files are ignored.
	writeCatalog(t, dir, "notes.txt", "hello")
	select {
	case <-w.Reloaded():
		t.Fatal("unexpected reload for unrelated file")
	case <-time.After(100 * time.Millisecond):
	}
	assert.False(t, holder.Ready())

	writeCatalog(t, dir, "catalog.yaml", craftingCatalog)
	select {
	case err := <-w.Reloaded():
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("expected reload after catalog change")
	}

	m := holder.Load()
	require.NotNil(t, m)
	types, err := m.RecipeTypes(recipe.NewFocus(ingredient.RoleOutput, Item{Name: "stick"}))
	require.NoError(t, err)
	assert.Equal(t, []recipe.TypeID{"crafting"}, types)
}

func TestWatcher_RunMissingDirectory(t *testing.T) {
	w := NewWatcher(filepath.Join(t.TempDir(), "missing", "catalog.yaml"), recipe.NewHolder(nil))
	err := w.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "watching directory")
}
