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

// Package api serves recipe index queries over HTTP.
//
// Endpoints:
//
//	GET /v1/types?ingredient=item:iron_ingot&role=output
//	GET /v1/recipes?category=smelting&ingredient=item:furnace&role=catalyst
//	GET /v1/recipes?category=smelting
//	GET /v1/categories
//	GET /v1/report
//
// The role defaults to output. A query without an ingredient is rejected
// with INVALID_FOCUS, an unknown category with NOT_FOUND. Until an index is
// loaded every endpoint answers 503.
//
// The query functions (Types, Recipes, AllRecipes, Categories, Report)
// return the same documents the recipedex CLI prints.
package api
