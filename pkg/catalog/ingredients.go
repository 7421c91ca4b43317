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
	"strconv"

	"github.com/NVIDIA/recipedex/pkg/ingredient"
)

const (
	// KindItem is the ingredient kind of solid items.
	KindItem ingredient.Kind = "item"
	// KindFluid is the ingredient kind of fluids.
	KindFluid ingredient.Kind = "fluid"
)

// Item is a stack of a named item. Damage distinguishes variants of the same
// item, such as tool durability or dye color.
type Item struct {
	Name   string
	Damage int
}

// IngredientKind implements ingredient.Value.
func (Item) IngredientKind() ingredient.Kind { return KindItem }

// String returns the reference form of the item.
func (i Item) String() string { return FormatRef(i) }

// Fluid is an amount of a named fluid.
type Fluid struct {
	Name   string
	Amount int
}

// IngredientKind implements ingredient.Value.
func (Fluid) IngredientKind() ingredient.Kind { return KindFluid }

// String returns the reference form of the fluid.
func (f Fluid) String() string { return FormatRef(f) }

// NewResolver returns an identity resolver for items and fluids.
//
// Items resolve to their name under ingredient.ContextRecipe, so every damage
// variant finds the same recipes, and to name@damage under
// ingredient.ContextIngredient. Fluids resolve to their name in both contexts.
func NewResolver() *ingredient.Manager {
	m := ingredient.NewManager()
	m.MustRegister(ingredient.NewHelper(KindItem, itemUID))
	m.MustRegister(ingredient.NewHelper(KindFluid, fluidUID))
	return m
}

func itemUID(i Item, ctx ingredient.Context) (string, error) {
	if i.Name == "" {
		return "", fmt.Errorf("item has no name")
	}
	if ctx == ingredient.ContextIngredient {
		return i.Name + "@" + strconv.Itoa(i.Damage), nil
	}
	return i.Name, nil
}

func fluidUID(f Fluid, _ ingredient.Context) (string, error) {
	if f.Name == "" {
		return "", fmt.Errorf("fluid has no name")
	}
	return f.Name, nil
}
