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

// Package catalog is the host data model of recipedex: item and fluid
// ingredients, a generic Recipe record and the Catalog document that
// declares categories, catalysts and recipes.
//
// Ingredients are written as references:
//
//	item:iron_ingot
//	item:potion@16
//	fluid:water*1000
//
// Items group by name when indexed as recipe ingredients and match on
// name and damage as exact ingredients. Fluids match on name alone.
//
// A Document builds a recipe index directly:
//
//	doc, err := catalog.Load(ctx, "catalog.yaml")
//	if err != nil {
//	    return err
//	}
//	m, err := doc.Build(ctx)
//
// Watcher keeps a recipe.Holder current while the catalog file changes.
package catalog
