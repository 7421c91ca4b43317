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

package recipe

import (
	"log/slog"
	"slices"
	"time"

	"github.com/NVIDIA/recipedex/pkg/ingredient"
)

// Manager is the built, immutable recipe index. All methods are safe for
// concurrent use. Rebuild with a Builder and swap through a Holder to change
// the indexed data.
type Manager struct {
	id          string
	version     string
	builtAt     time.Time
	resolver    ingredient.Resolver
	roleContext map[ingredient.Role]ingredient.Context

	registry  *registry
	maps      map[ingredient.Role]*recipeMap
	catalysts *catalystTable
	report    Report
}

// ID returns the unique id of this build.
func (m *Manager) ID() string {
	return m.id
}

// Version returns the version set with WithVersion.
func (m *Manager) Version() string {
	return m.version
}

// BuiltAt returns when the index was built.
func (m *Manager) BuiltAt() time.Time {
	return m.builtAt
}

// RecipeTypes returns the recipe types in which the focused ingredient
// participates under the focus role, in first-occurrence order.
func (m *Manager) RecipeTypes(focus Focus) ([]TypeID, error) {
	queriesTotal.WithLabelValues("recipe_types").Inc()
	uid, ok, err := m.identity(focus)
	if err != nil || !ok {
		return []TypeID{}, err
	}
	return append([]TypeID{}, m.maps[focus.Role].recipeTypes(uid)...), nil
}

// RecipeTypesForFocuses returns the union of RecipeTypes over focuses,
// ordered by category registration order.
func (m *Manager) RecipeTypesForFocuses(focuses ...Focus) ([]TypeID, error) {
	seen := make(map[TypeID]struct{})
	out := []TypeID{}
	for _, f := range focuses {
		types, err := m.RecipeTypes(f)
		if err != nil {
			return nil, err
		}
		for _, t := range types {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			out = append(out, t)
		}
	}
	m.SortTypes(out)
	return out, nil
}

// Recipes returns the records of typ in which the focused ingredient
// participates. If the ingredient is a catalyst of typ, every record of typ
// follows the directly matched ones, without duplicates.
func (m *Manager) Recipes(typ TypeID, focus Focus) ([]any, error) {
	queriesTotal.WithLabelValues("recipes").Inc()
	uid, ok, err := m.identity(focus)
	if err != nil || !ok {
		return []any{}, err
	}
	direct := m.maps[focus.Role].recipes(typ, uid)
	if !m.catalysts.isCatalyst(typ, uid) {
		return records(direct), nil
	}
	catalystExpansionsTotal.Inc()
	return distinct(direct, m.registry.recipesForType(typ)), nil
}

// AllRecipes returns every indexed record of typ in registration order.
// Unknown types yield an empty list.
func (m *Manager) AllRecipes(typ TypeID) []any {
	queriesTotal.WithLabelValues("all_recipes").Inc()
	return records(m.registry.recipesForType(typ))
}

// RecipeCount returns the number of indexed records of typ without copying
// them. It is not counted as a query.
func (m *Manager) RecipeCount(typ TypeID) int {
	return len(m.registry.recipesForType(typ))
}

// Categories returns the registered categories in registration order.
func (m *Manager) Categories() []Descriptor {
	return slices.Clone(m.registry.order)
}

// Category returns the category registered for id.
func (m *Manager) Category(id TypeID) (Descriptor, bool) {
	return m.registry.category(id)
}

// Catalysts returns the catalysts declared for typ in declaration order.
func (m *Manager) Catalysts(typ TypeID) []ingredient.Value {
	cs := m.catalysts.catalystsFor(typ)
	out := make([]ingredient.Value, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.value)
	}
	return out
}

// CatalystIDs returns the identities of the catalysts of typ under the
// catalyst role context, in declaration order.
func (m *Manager) CatalystIDs(typ TypeID) []ingredient.UID {
	cs := m.catalysts.catalystsFor(typ)
	out := make([]ingredient.UID, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.uid)
	}
	return out
}

// IsCatalyst reports whether v is a declared catalyst of typ.
func (m *Manager) IsCatalyst(typ TypeID, v ingredient.Value) bool {
	if v == nil {
		return false
	}
	uid, err := m.resolver.Identity(v, m.roleContext[ingredient.RoleCatalyst])
	if err != nil {
		return false
	}
	return m.catalysts.isCatalyst(typ, uid)
}

// Report returns the build report.
func (m *Manager) Report() Report {
	r := m.report
	r.Categories = slices.Clone(m.report.Categories)
	return r
}

// RecipesOf is Recipes for a typed recipe type.
func RecipesOf[T any](m *Manager, typ Type[T], focus Focus) ([]T, error) {
	list, err := m.Recipes(typ.ID(), focus)
	if err != nil {
		return nil, err
	}
	return typed[T](list), nil
}

// AllRecipesOf is AllRecipes for a typed recipe type.
func AllRecipesOf[T any](m *Manager, typ Type[T]) []T {
	return typed[T](m.AllRecipes(typ.ID()))
}

// identity resolves the focus under its role context. ok is false when the
// value cannot be resolved, which is a query miss rather than an error.
// A panicking ingredient helper is also a miss.
func (m *Manager) identity(focus Focus) (ingredient.UID, bool, error) {
	v, err := focus.value()
	if err != nil {
		return ingredient.UID{}, false, err
	}
	uid, err := safeIdentity(m.resolver, v, m.roleContext[focus.Role])
	if err != nil {
		slog.Debug("focus did not resolve", "focus", focus.String(), "error", err)
		return ingredient.UID{}, false, nil
	}
	return uid, true, nil
}

// contexts returns the distinct identity contexts used by any role.
func (m *Manager) contexts() []ingredient.Context {
	var out []ingredient.Context
	for _, role := range ingredient.Roles() {
		c := m.roleContext[role]
		if !slices.Contains(out, c) {
			out = append(out, c)
		}
	}
	return out
}

func records(entries []entry) []any {
	out := make([]any, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.record)
	}
	return out
}

// distinct concatenates lists keeping the first occurrence of each record.
func distinct(lists ...[]entry) []any {
	n := 0
	for _, l := range lists {
		n += len(l)
	}
	seen := make(map[any]struct{}, n)
	out := make([]any, 0, n)
	for _, l := range lists {
		for _, e := range l {
			if _, ok := seen[e.key]; ok {
				continue
			}
			seen[e.key] = struct{}{}
			out = append(out, e.record)
		}
	}
	return out
}

func typed[T any](list []any) []T {
	out := make([]T, 0, len(list))
	for _, r := range list {
		if t, ok := r.(T); ok {
			out = append(out, t)
		}
	}
	return out
}
