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
	"fmt"
	"sync"

	"github.com/NVIDIA/recipedex/pkg/ingredient"
)

const (
	kindItem  ingredient.Kind = "item"
	kindFluid ingredient.Kind = "fluid"
)

// item is identified by name under ContextRecipe and by name and damage
// under ContextIngredient.
type item struct {
	name   string
	damage int
}

func (item) IngredientKind() ingredient.Kind { return kindItem }

func (i item) String() string { return i.name }

type fluid struct{ name string }

func (fluid) IngredientKind() ingredient.Kind { return kindFluid }

// unknown has no registered helper.
type unknown struct{}

func (unknown) IngredientKind() ingredient.Kind { return "unknown" }

func testResolver() *ingredient.Manager {
	m := ingredient.NewManager()
	m.MustRegister(ingredient.NewHelper(kindItem, func(v item, ctx ingredient.Context) (string, error) {
		if v.name == "" {
			return "", fmt.Errorf("item without name")
		}
		if ctx == ingredient.ContextIngredient {
			return fmt.Sprintf("%s@%d", v.name, v.damage), nil
		}
		return v.name, nil
	}))
	m.MustRegister(ingredient.NewHelper(kindFluid, func(v fluid, _ ingredient.Context) (string, error) {
		return v.name, nil
	}))
	return m
}

// smelt is a one-in one-out recipe.
type smelt struct {
	in, out item
	broken  bool
}

func extractSmelt(s *smelt) ([]Slot, error) {
	return append(Inputs(s.in), Outputs(s.out)...), nil
}

// shaped has any number of inputs and one output.
type shaped struct {
	inputs []ingredient.Value
	output ingredient.Value
}

func extractShaped(s shaped) ([]Slot, error) {
	return append(Inputs(s.inputs...), Outputs(s.output)...), nil
}

var (
	smelting = NewType[*smelt]("smelting")
	crafting = NewType[shaped]("crafting")

	ironOre   = item{name: "iron_ore"}
	ironIngot = item{name: "iron_ingot"}
	goldOre   = item{name: "gold_ore"}
	goldIngot = item{name: "gold_ingot"}
	furnace   = item{name: "furnace"}
	table     = item{name: "crafting_table"}
	stick     = item{name: "stick"}
	plank     = item{name: "plank"}
	bedrock   = item{name: "bedrock"}
	water     = fluid{name: "water"}
)

func smeltingCategory() *Category[*smelt] {
	return NewCategory(smelting, extractSmelt,
		WithTitle[*smelt]("Smelting"),
		WithValidator(func(s *smelt) bool { return !s.broken }))
}

func craftingCategory() *Category[shaped] {
	return NewCategory(crafting, extractShaped, WithTitle[shaped]("Crafting"))
}

// recordingDiagnostics captures everything sent to the sink.
type recordingDiagnostics struct {
	mu     sync.Mutex
	errors []error
	debug  []string
	seen   map[string]struct{}
}

func newRecordingDiagnostics() *recordingDiagnostics {
	return &recordingDiagnostics{seen: make(map[string]struct{})}
}

func (d *recordingDiagnostics) Error(_ string, cause error, _ ...any) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.errors = append(d.errors, cause)
}

func (d *recordingDiagnostics) DebugOnce(kindKey, _ string, _ ...any) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.seen[kindKey]; ok {
		return
	}
	d.seen[kindKey] = struct{}{}
	d.debug = append(d.debug, kindKey)
}
