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
	"errors"
	"fmt"
	"log/slog"
	"path"

	rdxerrors "github.com/NVIDIA/recipedex/pkg/errors"
	"github.com/NVIDIA/recipedex/pkg/header"
	"github.com/NVIDIA/recipedex/pkg/ingredient"
	"github.com/NVIDIA/recipedex/pkg/recipe"
	"github.com/NVIDIA/recipedex/pkg/version"
)

// Document is a catalog of categories and recipes.
//
//	kind: Catalog
//	apiVersion: recipedex.nvidia.com/v1alpha1
//	categories:
//	  - uid: smelting
//	    catalysts: ["item:furnace"]
//	recipes:
//	  - id: iron_ingot
//	    category: smelting
//	    inputs: ["item:iron_ore"]
//	    outputs: ["item:iron_ingot"]
type Document struct {
	header.Header `json:",inline" yaml:",inline"`

	// Requires is the oldest recipedex release able to read the catalog.
	Requires string `json:"requires,omitempty" yaml:"requires,omitempty"`

	Categories []CategorySpec `json:"categories,omitempty" yaml:"categories,omitempty"`
	Recipes    []RecipeSpec   `json:"recipes,omitempty" yaml:"recipes,omitempty"`
}

// CategorySpec declares a category and its catalysts.
type CategorySpec struct {
	UID       string   `json:"uid" yaml:"uid"`
	Title     string   `json:"title,omitempty" yaml:"title,omitempty"`
	Catalysts []string `json:"catalysts,omitempty" yaml:"catalysts,omitempty"`

	// Handles lists output reference patterns ("fluid:*", "item:*_ingot").
	// Recipes without a category are routed to the first category with a
	// matching pattern.
	Handles []string `json:"handles,omitempty" yaml:"handles,omitempty"`
}

// RecipeSpec declares one recipe. An empty Category leaves routing to the
// category handlers.
type RecipeSpec struct {
	ID         string   `json:"id,omitempty" yaml:"id,omitempty"`
	Category   string   `json:"category,omitempty" yaml:"category,omitempty"`
	Inputs     []string `json:"inputs,omitempty" yaml:"inputs,omitempty"`
	Outputs    []string `json:"outputs,omitempty" yaml:"outputs,omitempty"`
	Catalysts  []string `json:"catalysts,omitempty" yaml:"catalysts,omitempty"`
	RenderOnly []string `json:"renderOnly,omitempty" yaml:"renderOnly,omitempty"`
}

// NewDocument returns an empty catalog document with its header set.
func NewDocument(version string) *Document {
	d := &Document{}
	d.Init(header.KindCatalog, header.APIVersion, version)
	return d
}

// Validate checks the document structure. Malformed ingredient references
// in recipes are not structural: those recipes are skipped at build time.
func (d *Document) Validate() error {
	var errs []error
	if d.Kind != "" && d.Kind != header.KindCatalog {
		errs = append(errs, fmt.Errorf("unexpected kind %q, want %q", d.Kind, header.KindCatalog))
	}
	if d.APIVersion != "" && d.APIVersion != header.APIVersion {
		errs = append(errs, fmt.Errorf("unsupported apiVersion %q", d.APIVersion))
	}
	if d.Requires != "" {
		if _, err := version.Parse(d.Requires); err != nil {
			errs = append(errs, fmt.Errorf("requires %q: %w", d.Requires, err))
		}
	}

	seen := make(map[string]bool, len(d.Categories))
	for i, c := range d.Categories {
		if c.UID == "" {
			errs = append(errs, fmt.Errorf("categories[%d]: uid is required", i))
			continue
		}
		if seen[c.UID] {
			errs = append(errs, fmt.Errorf("categories[%d]: %w: %s", i, recipe.ErrDuplicateType, c.UID))
		}
		seen[c.UID] = true
		if _, err := ParseRefs(c.Catalysts); err != nil {
			errs = append(errs, fmt.Errorf("categories[%d] %s: %w", i, c.UID, err))
		}
		for _, p := range c.Handles {
			if _, err := path.Match(p, ""); err != nil {
				errs = append(errs, fmt.Errorf("categories[%d] %s: handles pattern %q: %w", i, c.UID, p, err))
			}
		}
	}
	for i, r := range d.Recipes {
		if r.Category != "" && !seen[r.Category] {
			errs = append(errs, fmt.Errorf("recipes[%d] %s: %w: %s", i, r.ID, recipe.ErrUnknownType, r.Category))
		}
	}

	if err := errors.Join(errs...); err != nil {
		return rdxerrors.Wrap(rdxerrors.ErrCodeInvalidConfiguration, "invalid catalog", err)
	}
	return nil
}

// CheckVersion fails when the catalog requires a newer release than running.
func (d *Document) CheckVersion(running string) error {
	ok, err := version.Satisfies(running, d.Requires)
	if err != nil {
		return rdxerrors.Wrap(rdxerrors.ErrCodeInvalidConfiguration, "invalid catalog", err)
	}
	if !ok {
		return rdxerrors.NewWithContext(rdxerrors.ErrCodeInvalidConfiguration,
			fmt.Sprintf("catalog requires recipedex %s or newer", d.Requires),
			map[string]any{"requires": d.Requires, "running": running})
	}
	return nil
}

// Records converts the recipe specs to records. Typed records are returned
// by category; uncategorized ones are returned in order.
func (d *Document) Records() (typed map[string][]*Recipe, untyped []*Recipe) {
	typed = make(map[string][]*Recipe)
	for _, spec := range d.Recipes {
		r := spec.Record()
		if spec.Category == "" {
			untyped = append(untyped, r)
			continue
		}
		typed[spec.Category] = append(typed[spec.Category], r)
	}
	return typed, untyped
}

// Record converts s to a recipe record. Reference errors are kept on the
// record and reported when the index extracts it.
func (s RecipeSpec) Record() *Recipe {
	r := &Recipe{ID: s.ID, Category: recipe.TypeID(s.Category)}
	var errs []error
	parse := func(field string, refs []string) []ingredient.Value {
		values, err := ParseRefs(refs)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", field, err))
		}
		return values
	}
	r.Inputs = parse("inputs", s.Inputs)
	r.Outputs = parse("outputs", s.Outputs)
	r.Catalysts = parse("catalysts", s.Catalysts)
	r.RenderOnly = parse("renderOnly", s.RenderOnly)
	if err := errors.Join(errs...); err != nil {
		r.parseErr = fmt.Errorf("recipe %q: %w", s.ID, err)
	}
	return r
}

// Build validates d and builds an index over it.
func (d *Document) Build(ctx context.Context, opts ...recipe.Option) (*recipe.Manager, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	b := recipe.NewBuilder(NewResolver(), opts...)
	for _, c := range d.Categories {
		b.AddCategories(NewCategory(c.UID, c.Title))
		if len(c.Handles) > 0 {
			b.AddHandler(outputHandler(c.UID, c.Handles))
		}
		catalysts, err := ParseRefs(c.Catalysts)
		if err != nil {
			return nil, rdxerrors.Wrap(rdxerrors.ErrCodeInvalidConfiguration, "invalid catalyst", err)
		}
		b.AddCatalyst(recipe.TypeID(c.UID), catalysts...)
	}

	typed, untyped := d.Records()
	for _, c := range d.Categories {
		recipe.AddRecipe(b, Type(c.UID), typed[c.UID]...)
	}
	for _, r := range untyped {
		b.AddUntypedRecipe(r)
	}

	slog.Debug("building catalog index",
		slog.Int("categories", len(d.Categories)),
		slog.Int("recipes", len(d.Recipes)),
		slog.Int("uncategorized", len(untyped)),
	)
	return b.Build(ctx)
}

// Merge appends the categories and recipes of others to a copy of d.
// Categories already declared keep their first declaration; catalysts and
// handles of later declarations are appended.
func (d *Document) Merge(others ...*Document) *Document {
	out := &Document{Header: d.Header}
	index := make(map[string]int)
	add := func(doc *Document) {
		out.Requires = newest(out.Requires, doc.Requires)
		for _, c := range doc.Categories {
			if i, ok := index[c.UID]; ok {
				out.Categories[i].Catalysts = appendMissing(out.Categories[i].Catalysts, c.Catalysts...)
				out.Categories[i].Handles = appendMissing(out.Categories[i].Handles, c.Handles...)
				continue
			}
			index[c.UID] = len(out.Categories)
			c.Catalysts = append([]string(nil), c.Catalysts...)
			c.Handles = append([]string(nil), c.Handles...)
			out.Categories = append(out.Categories, c)
		}
		out.Recipes = append(out.Recipes, doc.Recipes...)
	}
	add(d)
	for _, o := range others {
		if o != nil {
			add(o)
		}
	}
	return out
}

// newest returns the later of two version requirements. Unparseable values
// are kept so Validate reports them.
func newest(a, b string) string {
	if a == "" {
		return b
	}
	if b == "" {
		return a
	}
	va, errA := version.Parse(a)
	if errA != nil {
		return a
	}
	vb, errB := version.Parse(b)
	if errB != nil || vb.Compare(va) > 0 {
		return b
	}
	return a
}

func appendMissing(list []string, values ...string) []string {
	for _, v := range values {
		found := false
		for _, have := range list {
			if have == v {
				found = true
				break
			}
		}
		if !found {
			list = append(list, v)
		}
	}
	return list
}
