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
	"fmt"
	"path"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/NVIDIA/recipedex/pkg/ingredient"
	"github.com/NVIDIA/recipedex/pkg/recipe"
)

// Recipe is the record type of every catalog category.
type Recipe struct {
	ID         string
	Category   recipe.TypeID
	Inputs     []ingredient.Value
	Outputs    []ingredient.Value
	Catalysts  []ingredient.Value
	RenderOnly []ingredient.Value

	// parseErr is set when the recipe's spec has malformed references.
	// Extraction reports it so the build skips the recipe.
	parseErr error
}

// Slots reports the ingredient slots of r.
func (r *Recipe) Slots() []recipe.Slot {
	slots := make([]recipe.Slot, 0, len(r.Inputs)+len(r.Outputs)+len(r.Catalysts)+len(r.RenderOnly))
	slots = append(slots, recipe.Inputs(r.Inputs...)...)
	slots = append(slots, recipe.Outputs(r.Outputs...)...)
	slots = append(slots, recipe.Catalysts(r.Catalysts...)...)
	slots = append(slots, recipe.RenderOnly(r.RenderOnly...)...)
	return slots
}

// Spec returns the document form of r.
func (r *Recipe) Spec() RecipeSpec {
	return RecipeSpec{
		ID:         r.ID,
		Category:   string(r.Category),
		Inputs:     FormatRefs(r.Inputs),
		Outputs:    FormatRefs(r.Outputs),
		Catalysts:  FormatRefs(r.Catalysts),
		RenderOnly: FormatRefs(r.RenderOnly),
	}
}

// Type returns the recipe type of a catalog category.
func Type(uid string) recipe.Type[*Recipe] {
	return recipe.NewType[*Recipe](uid)
}

// NewCategory returns the descriptor of a catalog category. An empty title
// is derived from the uid. Recipes without outputs are invalid.
func NewCategory(uid, title string) *recipe.Category[*Recipe] {
	if title == "" {
		title = Title(uid)
	}
	return recipe.NewCategory(Type(uid), extract,
		recipe.WithTitle[*Recipe](title),
		recipe.WithValidator(func(r *Recipe) bool {
			return r != nil && (len(r.Outputs) > 0 || r.parseErr != nil)
		}),
	)
}

func extract(r *Recipe) ([]recipe.Slot, error) {
	if r.parseErr != nil {
		return nil, r.parseErr
	}
	return r.Slots(), nil
}

// Title derives a display title from a category uid:
// "blast_furnace" becomes "Blast Furnace".
func Title(uid string) string {
	words := strings.FieldsFunc(uid, func(r rune) bool {
		return r == '_' || r == '-' || r == '.' || r == '/' || r == ':'
	})
	return cases.Title(language.English).String(strings.Join(words, " "))
}

// outputHandler routes recipes without a category to uid when any output
// reference matches one of patterns (path.Match syntax, e.g. "fluid:*").
func outputHandler(uid string, patterns []string) recipe.Handler {
	return recipe.Handler{
		Name:     fmt.Sprintf("%s outputs %s", uid, strings.Join(patterns, ",")),
		Category: recipe.TypeID(uid),
		Matches: func(record any) bool {
			r, ok := record.(*Recipe)
			if !ok {
				return false
			}
			for _, out := range r.Outputs {
				ref := FormatRef(out)
				for _, p := range patterns {
					if matched, _ := path.Match(p, ref); matched {
						return true
					}
				}
			}
			return false
		},
	}
}
