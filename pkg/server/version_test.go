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

package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNegotiateAPIVersion(t *testing.T) {
	tests := []struct {
		name   string
		accept string
		want   string
	}{
		{"no accept header", "", DefaultAPIVersion},
		{"plain json", "application/json", DefaultAPIVersion},
		{"vendor v1", "application/vnd.nvidia.recipedex.v1+json", "v1"},
		{"vendor v1 with params", "application/vnd.nvidia.recipedex.v1+json; q=0.9", "v1"},
		{"vendor v1 after other types", "text/html, application/vnd.nvidia.recipedex.v1+yaml", "v1"},
		{"unsupported version", "application/vnd.nvidia.recipedex.v2+json", DefaultAPIVersion},
		{"malformed version", "application/vnd.nvidia.recipedex.vBAD+json", DefaultAPIVersion},
		{"other vendor", "application/vnd.example.v1+json", DefaultAPIVersion},
		{"garbage", ";;;", DefaultAPIVersion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.accept != "" {
				req.Header.Set("Accept", tt.accept)
			}
			assert.Equal(t, tt.want, negotiateAPIVersion(req))
		})
	}
}

func TestSetAPIVersionHeader(t *testing.T) {
	w := httptest.NewRecorder()
	SetAPIVersionHeader(w, "v1")
	assert.Equal(t, "v1", w.Header().Get("X-API-Version"))
	assert.Contains(t, w.Header().Values("Vary"), "Accept")
}
