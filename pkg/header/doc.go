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

// Package header provides the common header of recipedex documents.
//
// Catalogs and query results carry a Kubernetes-style header so that files,
// ConfigMaps and API responses identify themselves the same way:
//
//	kind: Catalog
//	apiVersion: recipedex.nvidia.com/v1alpha1
//	metadata:
//	  timestamp: "2026-01-10T10:30:00Z"
//	  version: v0.4.0
//
// Embed Header inline in a document type:
//
//	type Document struct {
//	    header.Header `json:",inline" yaml:",inline"`
//	    Categories []CategorySpec `json:"categories" yaml:"categories"`
//	}
//
// and initialize it before writing:
//
//	doc.Init(header.KindRecipeList, header.APIVersion, version)
//
// # Kind Field
//
// The Kind field identifies the document type:
//   - Catalog: categories, recipes and catalysts to index
//   - RecipeTypeList: recipe types matching a focus
//   - RecipeList: recipes of one type matching a focus
//   - CategoryList: registered categories
//   - BuildReport: outcome of an index build
//
// Readers should check Kind and APIVersion before interpreting the body.
package header
