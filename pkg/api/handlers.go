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
	"net/http"

	rdxerrors "github.com/NVIDIA/recipedex/pkg/errors"
	"github.com/NVIDIA/recipedex/pkg/recipe"
	"github.com/NVIDIA/recipedex/pkg/serializer"
	"github.com/NVIDIA/recipedex/pkg/server"
)

// Handler serves queries against the index held by a recipe.Holder.
type Handler struct {
	holder *recipe.Holder
}

// NewHandler returns a Handler over holder.
func NewHandler(holder *recipe.Holder) *Handler {
	return &Handler{holder: holder}
}

// Routes returns the API routes keyed by path.
func (h *Handler) Routes() map[string]http.HandlerFunc {
	return map[string]http.HandlerFunc{
		"/v1/types":      h.HandleTypes,
		"/v1/recipes":    h.HandleRecipes,
		"/v1/categories": h.HandleCategories,
		"/v1/report":     h.HandleReport,
	}
}

// Ready reports an error until an index is loaded.
func (h *Handler) Ready() error {
	if !h.holder.Ready() {
		return rdxerrors.New(rdxerrors.ErrCodeUnavailable, "recipe index not loaded")
	}
	return nil
}

// HandleTypes serves GET /v1/types?ingredient=<ref>&role=<role>.
func (h *Handler) HandleTypes(w http.ResponseWriter, r *http.Request) {
	m, ok := h.index(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	focus, err := ParseFocus(q.Get("ingredient"), q.Get("role"))
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Invalid focus", nil)
		return
	}
	doc, err := Types(m, focus)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Failed to list recipe types", nil)
		return
	}
	serializer.RespondJSON(w, http.StatusOK, doc)
}

// HandleRecipes serves GET /v1/recipes?category=<uid>[&ingredient=<ref>&role=<role>].
// Without an ingredient every recipe of the category is returned.
func (h *Handler) HandleRecipes(w http.ResponseWriter, r *http.Request) {
	m, ok := h.index(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	category := q.Get("category")

	if q.Get("ingredient") == "" && q.Get("role") == "" {
		doc, err := AllRecipes(m, category)
		if err != nil {
			server.WriteErrorFromErr(w, r, err, "Failed to list recipes", nil)
			return
		}
		serializer.RespondJSON(w, http.StatusOK, doc)
		return
	}

	focus, err := ParseFocus(q.Get("ingredient"), q.Get("role"))
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Invalid focus", nil)
		return
	}
	doc, err := Recipes(m, category, focus)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Failed to list recipes", nil)
		return
	}
	serializer.RespondJSON(w, http.StatusOK, doc)
}

// HandleCategories serves GET /v1/categories.
func (h *Handler) HandleCategories(w http.ResponseWriter, r *http.Request) {
	m, ok := h.index(w, r)
	if !ok {
		return
	}
	serializer.RespondJSON(w, http.StatusOK, Categories(m))
}

// HandleReport serves GET /v1/report.
func (h *Handler) HandleReport(w http.ResponseWriter, r *http.Request) {
	m, ok := h.index(w, r)
	if !ok {
		return
	}
	serializer.RespondJSON(w, http.StatusOK, Report(m))
}

// index checks the method and returns the current index.
func (h *Handler) index(w http.ResponseWriter, r *http.Request) (*recipe.Manager, bool) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		server.WriteError(w, r, http.StatusMethodNotAllowed, rdxerrors.ErrCodeMethodNotAllowed,
			"Method not allowed", false, map[string]any{"method": r.Method})
		return nil, false
	}
	m := h.holder.Load()
	if m == nil {
		server.WriteError(w, r, http.StatusServiceUnavailable, rdxerrors.ErrCodeUnavailable,
			"Recipe index not loaded", true, nil)
		return nil, false
	}
	return m, true
}
