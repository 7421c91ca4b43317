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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes/fake"

	rdxerrors "github.com/NVIDIA/recipedex/pkg/errors"
	"github.com/NVIDIA/recipedex/pkg/serializer"
)

const smeltingCatalog = `kind: Catalog
apiVersion: recipedex.nvidia.com/v1alpha1
categories:
  - uid: smelting
    catalysts: ["item:furnace"]
recipes:
  - id: iron_ingot
    category: smelting
    inputs: ["item:iron_ore"]
    outputs: ["item:iron_ingot"]
`

const craftingCatalog = `{
  "categories": [{"uid": "crafting", "catalysts": ["item:crafting_table"]}],
  "recipes": [{"id": "stick", "category": "crafting", "inputs": ["item:planks"], "outputs": ["item:stick"]}]
}`

func writeCatalog(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	t.Run("yaml file", func(t *testing.T) {
		doc, err := Load(ctx, writeCatalog(t, dir, "smelting.yaml", smeltingCatalog))
		require.NoError(t, err)
		require.Len(t, doc.Categories, 1)
		assert.Equal(t, "smelting", doc.Categories[0].UID)
		assert.Equal(t, []string{"item:furnace"}, doc.Categories[0].Catalysts)
	})

	t.Run("json file", func(t *testing.T) {
		doc, err := Load(ctx, writeCatalog(t, dir, "crafting.json", craftingCatalog))
		require.NoError(t, err)
		require.Len(t, doc.Recipes, 1)
		assert.Equal(t, "stick", doc.Recipes[0].ID)
	})

	t.Run("empty path loads default", func(t *testing.T) {
		doc, err := Load(ctx, "")
		require.NoError(t, err)
		assert.NotEmpty(t, doc.Categories)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(ctx, filepath.Join(dir, "missing.yaml"))
		require.Error(t, err)
		assert.Equal(t, rdxerrors.ErrCodeInvalidConfiguration, rdxerrors.CodeOf(err))
	})

	t.Run("configmap", func(t *testing.T) {
		cs := fake.NewClientset(&corev1.ConfigMap{
			ObjectMeta: metav1.ObjectMeta{Name: "catalog", Namespace: "recipes"},
			Data:       map[string]string{"recipedex.yaml": smeltingCatalog},
		})
		doc, err := Load(ctx, "cm://recipes/catalog", serializer.WithKubeClient(cs))
		require.NoError(t, err)
		require.Len(t, doc.Recipes, 1)
		assert.Equal(t, "iron_ingot", doc.Recipes[0].ID)
	})
}

func TestLoadAll(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeCatalog(t, dir, "smelting.yaml", smeltingCatalog),
		writeCatalog(t, dir, "crafting.json", craftingCatalog),
	}

	doc, err := LoadAll(context.Background(), paths)
	require.NoError(t, err)
	require.Len(t, doc.Categories, 2)
	assert.Equal(t, "smelting", doc.Categories[0].UID)
	assert.Equal(t, "crafting", doc.Categories[1].UID)
	assert.Len(t, doc.Recipes, 2)

	_, err = LoadAll(context.Background(), append(paths, filepath.Join(dir, "missing.yaml")))
	assert.Error(t, err)
}
