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

// Package cli implements the recipedex command-line interface.
//
// # Overview
//
// recipedex loads one or more recipe catalogs, builds the recipe index and
// answers ingredient-centric questions about it: which categories involve
// an ingredient, and which recipes of a category do.
//
// # Commands
//
// types - Categories involving an ingredient:
//
//	recipedex types -i item:iron_ingot [-r output|input|catalyst]
//
// recipes - Recipes of a category involving an ingredient:
//
//	recipedex recipes -k smelting -i item:furnace -r catalyst
//
// A catalyst of the category matches every recipe of that category.
//
// all - Every recipe of a category:
//
//	recipedex all -k crafting
//
// categories - Registered categories with their catalysts and recipe counts:
//
//	recipedex categories -t table
//
// validate - Build the index and print the build report:
//
//	recipedex validate -c catalog.yaml [--fail-on-skip]
//
// merge - Merge several catalogs into one:
//
//	recipedex merge -c base.yaml -c extra.yaml -o merged.yaml
//
// push - Publish the merged catalog as an OCI artifact:
//
//	recipedex push -c catalog.yaml oci://ghcr.io/org/catalogs:v1
//
// serve - Serve the query API over HTTP:
//
//	recipedex serve -c catalog.yaml --watch --port 8080
//
// # Catalog Sources
//
// --catalog accepts file paths, HTTP(S) URLs, ConfigMap URIs
// (cm://namespace/name) and OCI artifacts (oci://registry/repository:tag)
// and can be repeated. Without it the embedded
// sample catalog is used.
//
// # Output
//
// Query results are written as yaml (default), json or table to stdout, a
// file or a ConfigMap (--output cm://namespace/name).
//
// # Environment
//
//   - LOG_LEVEL: log level (debug, info, warn, error)
//   - RECIPEDEX_CATALOG: default catalog sources
//   - RECIPEDEX_KUBECONFIG: kubeconfig for ConfigMap sources and outputs
//   - PORT: serve listening port
package cli
