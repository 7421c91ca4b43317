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
	"fmt"
	"strconv"
	"strings"

	"github.com/NVIDIA/recipedex/pkg/catalog"
	rdxerrors "github.com/NVIDIA/recipedex/pkg/errors"
	"github.com/NVIDIA/recipedex/pkg/header"
	"github.com/NVIDIA/recipedex/pkg/ingredient"
	"github.com/NVIDIA/recipedex/pkg/recipe"
)

// DefaultRole is the focus role when a query names none: the recipes
// producing the ingredient.
const DefaultRole = ingredient.RoleOutput

// FocusSpec is the document form of a query focus.
type FocusSpec struct {
	Ingredient string `json:"ingredient" yaml:"ingredient"`
	Role       string `json:"role" yaml:"role"`
}

// CategorySummary describes one category.
type CategorySummary struct {
	UID       string   `json:"uid" yaml:"uid"`
	Title     string   `json:"title" yaml:"title"`
	Catalysts []string `json:"catalysts,omitempty" yaml:"catalysts,omitempty"`
	Recipes   int      `json:"recipes" yaml:"recipes"`
}

// TypeList answers which recipe types involve an ingredient.
type TypeList struct {
	header.Header `json:",inline" yaml:",inline"`

	Focus FocusSpec         `json:"focus" yaml:"focus"`
	Types []CategorySummary `json:"types" yaml:"types"`
}

// RecipeList holds recipes of one category.
type RecipeList struct {
	header.Header `json:",inline" yaml:",inline"`

	Category string              `json:"category" yaml:"category"`
	Focus    *FocusSpec          `json:"focus,omitempty" yaml:"focus,omitempty"`
	Recipes  []catalog.RecipeSpec `json:"recipes" yaml:"recipes"`
}

// CategoryList lists every registered category.
type CategoryList struct {
	header.Header `json:",inline" yaml:",inline"`

	Categories []CategorySummary `json:"categories" yaml:"categories"`
}

// BuildReport is the document form of an index build report.
type BuildReport struct {
	header.Header `json:",inline" yaml:",inline"`

	recipe.Report `json:",inline" yaml:",inline"`
}

// ParseFocus returns the focus on the ingredient reference ref in role.
// An empty ref yields a focus without values, which queries reject.
// An empty role selects DefaultRole.
func ParseFocus(ref, role string) (recipe.Focus, error) {
	r := DefaultRole
	if role != "" {
		parsed, err := ingredient.ParseRole(role)
		if err != nil {
			return recipe.Focus{}, rdxerrors.WrapWithContext(rdxerrors.ErrCodeInvalidRequest,
				"invalid role", err, map[string]any{"supported": ingredient.SupportedRoles()})
		}
		r = parsed
	}
	if ref == "" {
		return recipe.Focus{Role: r}, nil
	}
	v, err := catalog.ParseRef(ref)
	if err != nil {
		return recipe.Focus{}, rdxerrors.Wrap(rdxerrors.ErrCodeInvalidRequest, "invalid ingredient", err)
	}
	return recipe.NewFocus(r, v), nil
}

func focusSpec(f recipe.Focus) FocusSpec {
	spec := FocusSpec{Role: f.Role.String()}
	if len(f.Values) == 1 {
		spec.Ingredient = catalog.FormatRef(f.Values[0])
	}
	return spec
}

// Types returns the categories involving the focused ingredient, in
// category registration order.
func Types(m *recipe.Manager, focus recipe.Focus) (*TypeList, error) {
	ids, err := m.RecipeTypes(focus)
	if err != nil {
		return nil, err
	}
	doc := &TypeList{Focus: focusSpec(focus), Types: make([]CategorySummary, 0, len(ids))}
	doc.Init(header.KindRecipeTypeList, header.APIVersion, m.Version())
	for _, id := range ids {
		doc.Types = append(doc.Types, summary(m, id))
	}
	return doc, nil
}

// Recipes returns the recipes of category involving the focused ingredient.
// A catalyst of the category yields every recipe of the category.
func Recipes(m *recipe.Manager, category string, focus recipe.Focus) (*RecipeList, error) {
	if err := knownCategory(m, category); err != nil {
		return nil, err
	}
	records, err := recipe.RecipesOf(m, catalog.Type(category), focus)
	if err != nil {
		return nil, err
	}
	f := focusSpec(focus)
	return recipeList(m, category, &f, records), nil
}

// AllRecipes returns every recipe of category.
func AllRecipes(m *recipe.Manager, category string) (*RecipeList, error) {
	if err := knownCategory(m, category); err != nil {
		return nil, err
	}
	return recipeList(m, category, nil, recipe.AllRecipesOf(m, catalog.Type(category))), nil
}

// Categories lists the registered categories in registration order.
func Categories(m *recipe.Manager) *CategoryList {
	cats := m.Categories()
	doc := &CategoryList{Categories: make([]CategorySummary, 0, len(cats))}
	doc.Init(header.KindCategoryList, header.APIVersion, m.Version())
	for _, c := range cats {
		doc.Categories = append(doc.Categories, summary(m, c.TypeID()))
	}
	return doc
}

// Report returns the build report of m.
func Report(m *recipe.Manager) *BuildReport {
	doc := &BuildReport{Report: m.Report()}
	doc.Init(header.KindBuildReport, header.APIVersion, m.Version())
	return doc
}

func knownCategory(m *recipe.Manager, category string) error {
	if category == "" {
		return rdxerrors.New(rdxerrors.ErrCodeInvalidRequest, "category is required")
	}
	if _, ok := m.Category(recipe.TypeID(category)); !ok {
		return rdxerrors.WrapWithContext(rdxerrors.ErrCodeNotFound, "category not found",
			recipe.ErrUnknownType, map[string]any{"category": category})
	}
	return nil
}

func summary(m *recipe.Manager, id recipe.TypeID) CategorySummary {
	s := CategorySummary{
		UID:       string(id),
		Catalysts: catalog.FormatRefs(m.Catalysts(id)),
		Recipes:   m.RecipeCount(id),
	}
	if c, ok := m.Category(id); ok {
		s.Title = c.Title()
	}
	return s
}

func recipeList(m *recipe.Manager, category string, focus *FocusSpec, records []*catalog.Recipe) *RecipeList {
	doc := &RecipeList{Category: category, Focus: focus, Recipes: make([]catalog.RecipeSpec, 0, len(records))}
	doc.Init(header.KindRecipeList, header.APIVersion, m.Version())
	for _, r := range records {
		spec := r.Spec()
		spec.Category = category
		doc.Recipes = append(doc.Recipes, spec)
	}
	return doc
}

// TableHeader implements serializer.TableRenderer.
func (d *TypeList) TableHeader() []string {
	return []string{"CATEGORY", "TITLE", "RECIPES", "CATALYSTS"}
}

// TableRows implements serializer.TableRenderer.
func (d *TypeList) TableRows() [][]string {
	return summaryRows(d.Types)
}

// TableHeader implements serializer.TableRenderer.
func (d *CategoryList) TableHeader() []string {
	return []string{"CATEGORY", "TITLE", "RECIPES", "CATALYSTS"}
}

// TableRows implements serializer.TableRenderer.
func (d *CategoryList) TableRows() [][]string {
	return summaryRows(d.Categories)
}

// TableHeader implements serializer.TableRenderer.
func (d *RecipeList) TableHeader() []string {
	return []string{"ID", "INPUTS", "OUTPUTS", "CATALYSTS"}
}

// TableRows implements serializer.TableRenderer.
func (d *RecipeList) TableRows() [][]string {
	rows := make([][]string, 0, len(d.Recipes))
	for i, r := range d.Recipes {
		id := r.ID
		if id == "" {
			id = fmt.Sprintf("#%d", i+1)
		}
		rows = append(rows, []string{id, joinRefs(r.Inputs), joinRefs(r.Outputs), joinRefs(r.Catalysts)})
	}
	return rows
}

func summaryRows(list []CategorySummary) [][]string {
	rows := make([][]string, 0, len(list))
	for _, s := range list {
		rows = append(rows, []string{s.UID, s.Title, strconv.Itoa(s.Recipes), joinRefs(s.Catalysts)})
	}
	return rows
}

func joinRefs(refs []string) string {
	if len(refs) == 0 {
		return "-"
	}
	return strings.Join(refs, ",")
}
