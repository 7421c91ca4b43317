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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rdxerrors "github.com/NVIDIA/recipedex/pkg/errors"
	"github.com/NVIDIA/recipedex/pkg/header"
	"github.com/NVIDIA/recipedex/pkg/ingredient"
	"github.com/NVIDIA/recipedex/pkg/recipe"
)

func buildDefault(t *testing.T) *recipe.Manager {
	t.Helper()
	doc, err := Default()
	require.NoError(t, err)
	m, err := doc.Build(context.Background(), recipe.WithVersion("test"))
	require.NoError(t, err)
	return m
}

func ids(records []*Recipe) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.ID)
	}
	return out
}

func TestDefault(t *testing.T) {
	doc, err := Default()
	require.NoError(t, err)
	assert.Equal(t, header.KindCatalog, doc.Kind)
	assert.Equal(t, header.APIVersion, doc.APIVersion)
	require.NoError(t, doc.Validate())
	assert.NotEmpty(t, doc.Categories)
	assert.NotEmpty(t, doc.Recipes)
}

func TestDocument_Build_Default(t *testing.T) {
	m := buildDefault(t)
	focus := func(v ingredient.Value, role ingredient.Role) recipe.Focus { return recipe.NewFocus(role, v) }

	t.Run("types of an output", func(t *testing.T) {
		types, err := m.RecipeTypes(focus(Item{Name: "iron_ingot"}, ingredient.RoleOutput))
		require.NoError(t, err)
		assert.Equal(t, []recipe.TypeID{"smelting"}, types)
	})

	t.Run("types of a catalyst", func(t *testing.T) {
		types, err := m.RecipeTypes(focus(Item{Name: "furnace"}, ingredient.RoleCatalyst))
		require.NoError(t, err)
		assert.Equal(t, []recipe.TypeID{"smelting"}, types)

		types, err = m.RecipeTypes(focus(Item{Name: "furnace"}, ingredient.RoleOutput))
		require.NoError(t, err)
		assert.Equal(t, []recipe.TypeID{"crafting"}, types)
	})

	t.Run("catalyst expands to every recipe", func(t *testing.T) {
		got, err := recipe.RecipesOf(m, Type("smelting"), focus(Item{Name: "furnace"}, ingredient.RoleCatalyst))
		require.NoError(t, err)
		assert.Equal(t, []string{"iron_ingot", "gold_ingot", "glass"}, ids(got))
	})

	t.Run("inputs", func(t *testing.T) {
		got, err := recipe.RecipesOf(m, Type("crafting"), focus(Item{Name: "iron_ingot"}, ingredient.RoleInput))
		require.NoError(t, err)
		assert.Equal(t, []string{"iron_pickaxe"}, ids(got))
	})

	t.Run("damage variants group", func(t *testing.T) {
		types, err := m.RecipeTypes(focus(Item{Name: "potion"}, ingredient.RoleOutput))
		require.NoError(t, err)
		assert.Equal(t, []recipe.TypeID{"brewing"}, types)
	})

	t.Run("uncategorized recipe routed by handler", func(t *testing.T) {
		types, err := m.RecipeTypes(focus(Fluid{Name: "water"}, ingredient.RoleOutput))
		require.NoError(t, err)
		assert.Equal(t, []recipe.TypeID{"fluid_filling"}, types)

		types, err = m.RecipeTypes(focus(Fluid{Name: "water"}, ingredient.RoleInput))
		require.NoError(t, err)
		assert.Equal(t, []recipe.TypeID{"brewing"}, types)
	})

	t.Run("render only", func(t *testing.T) {
		got, err := recipe.RecipesOf(m, Type("smelting"), focus(Item{Name: "coal"}, ingredient.RoleRenderOnly))
		require.NoError(t, err)
		assert.Equal(t, []string{"iron_ingot", "gold_ingot"}, ids(got))
	})

	t.Run("titles", func(t *testing.T) {
		c, ok := m.Category("fluid_filling")
		require.True(t, ok)
		assert.Equal(t, "Fluid Filling", c.Title())
		c, ok = m.Category("smelting")
		require.True(t, ok)
		assert.Equal(t, "Smelting", c.Title())
	})

	t.Run("catalysts in declared order", func(t *testing.T) {
		assert.Equal(t, []ingredient.Value{Item{Name: "furnace"}, Item{Name: "blast_furnace"}}, m.Catalysts("smelting"))
	})

	t.Run("report", func(t *testing.T) {
		r := m.Report()
		assert.Equal(t, "test", r.Version)
		assert.Equal(t, 9, r.Indexed())
		assert.Zero(t, r.Skipped())
	})
}

func TestDocument_Build_SkipsBadRecipes(t *testing.T) {
	doc := &Document{
		Categories: []CategorySpec{{UID: "smelting"}},
		Recipes: []RecipeSpec{
			{ID: "ok", Category: "smelting", Inputs: []string{"item:iron_ore"}, Outputs: []string{"item:iron_ingot"}},
			{ID: "no_outputs", Category: "smelting", Inputs: []string{"item:sand"}},
			{ID: "bad_ref", Category: "smelting", Inputs: []string{"item:"}, Outputs: []string{"item:glass"}},
			{ID: "unrouted", Outputs: []string{"item:glass"}},
		},
	}

	m, err := doc.Build(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"ok"}, ids(recipe.AllRecipesOf(m, Type("smelting"))))

	r := m.Report()
	require.Len(t, r.Categories, 1)
	assert.Equal(t, 1, r.Categories[0].Indexed)
	assert.Equal(t, 1, r.Categories[0].Invalid)
	assert.Equal(t, 1, r.Categories[0].Failed)
	assert.Equal(t, 1, r.Unhandled)

	// The bad reference did not leak a partial association.
	types, err := m.RecipeTypes(recipe.NewFocus(ingredient.RoleOutput, Item{Name: "glass"}))
	require.NoError(t, err)
	assert.Empty(t, types)
}

func TestDocument_Validate(t *testing.T) {
	tests := []struct {
		name    string
		doc     Document
		wantErr string
	}{
		{
			name: "valid",
			doc: Document{
				Categories: []CategorySpec{{UID: "smelting", Catalysts: []string{"item:furnace"}, Handles: []string{"item:*_ingot"}}},
				Recipes:    []RecipeSpec{{Category: "smelting"}, {Category: ""}},
			},
		},
		{
			name:    "wrong kind",
			doc:     Document{Header: header.Header{Kind: header.KindRecipeList}},
			wantErr: "unexpected kind",
		},
		{
			name:    "wrong api version",
			doc:     Document{Header: header.Header{APIVersion: "v0"}},
			wantErr: "unsupported apiVersion",
		},
		{
			name:    "missing uid",
			doc:     Document{Categories: []CategorySpec{{Title: "Smelting"}}},
			wantErr: "uid is required",
		},
		{
			name:    "duplicate uid",
			doc:     Document{Categories: []CategorySpec{{UID: "smelting"}, {UID: "smelting"}}},
			wantErr: "already registered",
		},
		{
			name:    "bad catalyst",
			doc:     Document{Categories: []CategorySpec{{UID: "smelting", Catalysts: []string{"furnace"}}}},
			wantErr: "invalid ingredient reference",
		},
		{
			name:    "bad handles pattern",
			doc:     Document{Categories: []CategorySpec{{UID: "smelting", Handles: []string{"item:["}}}},
			wantErr: "handles pattern",
		},
		{
			name:    "unknown category",
			doc:     Document{Recipes: []RecipeSpec{{ID: "x", Category: "smelting"}}},
			wantErr: "not registered",
		},
		{
			name:    "bad requires",
			doc:     Document{Requires: "latest"},
			wantErr: "requires \"latest\"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.doc.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Equal(t, rdxerrors.ErrCodeInvalidConfiguration, rdxerrors.CodeOf(err))
		})
	}
}

func TestDocument_Build_InvalidDocument(t *testing.T) {
	doc := &Document{Recipes: []RecipeSpec{{ID: "x", Category: "missing"}}}
	_, err := doc.Build(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, recipe.ErrUnknownType)
}

func TestDocument_Merge(t *testing.T) {
	a := NewDocument("v1")
	a.Categories = []CategorySpec{{UID: "smelting", Catalysts: []string{"item:furnace"}}}
	a.Recipes = []RecipeSpec{{ID: "iron", Category: "smelting"}}

	b := &Document{
		Categories: []CategorySpec{
			{UID: "smelting", Title: "Ignored", Catalysts: []string{"item:furnace", "item:blast_furnace"}},
			{UID: "crafting"},
		},
		Recipes: []RecipeSpec{{ID: "stick", Category: "crafting"}},
	}

	merged := a.Merge(b, nil)
	assert.Equal(t, header.KindCatalog, merged.Kind)
	require.Len(t, merged.Categories, 2)
	assert.Empty(t, merged.Categories[0].Title)
	assert.Equal(t, []string{"item:furnace", "item:blast_furnace"}, merged.Categories[0].Catalysts)
	assert.Equal(t, "crafting", merged.Categories[1].UID)
	assert.Len(t, merged.Recipes, 2)

	// Inputs are left untouched.
	assert.Equal(t, []string{"item:furnace"}, a.Categories[0].Catalysts)
}

func TestRecipe_Spec(t *testing.T) {
	spec := RecipeSpec{
		ID:         "awkward_potion",
		Category:   "brewing",
		Inputs:     []string{"item:nether_wart", "fluid:water*1000"},
		Outputs:    []string{"item:potion@16"},
		RenderOnly: []string{"item:blaze_powder"},
	}
	r := spec.Record()
	require.NoError(t, r.parseErr)
	got := r.Spec()
	assert.Equal(t, spec.Inputs, got.Inputs)
	assert.Equal(t, spec.Outputs, got.Outputs)
	assert.Equal(t, spec.RenderOnly, got.RenderOnly)
	assert.Len(t, r.Slots(), 4)
}

func TestDocument_CheckVersion(t *testing.T) {
	tests := []struct {
		name     string
		requires string
		running  string
		wantErr  string
	}{
		{name: "no requirement", running: "v0.1.0"},
		{name: "met", requires: "v0.3", running: "v0.3.2"},
		{name: "dev build", requires: "v9.0.0", running: "dev"},
		{name: "too old", requires: "v0.4", running: "v0.3.9", wantErr: "requires recipedex v0.4 or newer"},
		{name: "invalid", requires: "next", running: "v1.0.0", wantErr: "invalid catalog"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := (&Document{Requires: tt.requires}).CheckVersion(tt.running)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Equal(t, rdxerrors.ErrCodeInvalidConfiguration, rdxerrors.CodeOf(err))
		})
	}
}

func TestDocument_MergeRequires(t *testing.T) {
	a := &Document{Requires: "v0.2"}
	b := &Document{Requires: "v0.3.1"}
	c := &Document{}

	assert.Equal(t, "v0.3.1", a.Merge(b, c).Requires)
	assert.Equal(t, "v0.3.1", b.Merge(a).Requires)
	assert.Equal(t, "v0.2", c.Merge(a).Requires)
	assert.Equal(t, "bogus", a.Merge(&Document{Requires: "bogus"}).Requires)
}
