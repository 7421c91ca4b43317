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
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rdxerrors "github.com/NVIDIA/recipedex/pkg/errors"
)

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestErrorCodeMapping(t *testing.T) {
	tests := []struct {
		code      rdxerrors.ErrorCode
		status    int
		retryable bool
	}{
		{rdxerrors.ErrCodeInvalidRequest, http.StatusBadRequest, false},
		{rdxerrors.ErrCodeInvalidFocus, http.StatusBadRequest, false},
		{rdxerrors.ErrCodeNotFound, http.StatusNotFound, false},
		{rdxerrors.ErrCodeMethodNotAllowed, http.StatusMethodNotAllowed, false},
		{rdxerrors.ErrCodeInvalidConfiguration, http.StatusUnprocessableEntity, false},
		{rdxerrors.ErrCodeInvalidRecipe, http.StatusUnprocessableEntity, false},
		{rdxerrors.ErrCodeRateLimitExceeded, http.StatusTooManyRequests, true},
		{rdxerrors.ErrCodeUnavailable, http.StatusServiceUnavailable, true},
		{rdxerrors.ErrCodeTimeout, http.StatusGatewayTimeout, true},
		{rdxerrors.ErrCodeInternal, http.StatusInternalServerError, true},
		{rdxerrors.ErrorCode("SOMETHING_ELSE"), http.StatusInternalServerError, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.status, HTTPStatusFromCode(tt.code))
			assert.Equal(t, tt.retryable, retryableFromCode(tt.code))
		})
	}
}

func TestMergeDetails(t *testing.T) {
	assert.Nil(t, mergeDetails(nil, nil))
	assert.Nil(t, mergeDetails(map[string]any{}, map[string]any{}))

	got := mergeDetails(
		map[string]any{"category": "smelting", "role": "input"},
		map[string]any{"role": "output"},
	)
	assert.Equal(t, map[string]any{"category": "smelting", "role": "output"}, got)
}

func TestWriteError(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/v1/recipes", nil)
	req = req.WithContext(context.WithValue(req.Context(), contextKeyRequestID, "req-123"))
	w := httptest.NewRecorder()

	WriteError(w, req, http.StatusBadRequest, rdxerrors.ErrCodeInvalidRequest,
		"category is required", false, map[string]any{"parameter": "category"})

	require.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, "INVALID_REQUEST", resp.Code)
	assert.Equal(t, "category is required", resp.Message)
	assert.Equal(t, "req-123", resp.RequestID)
	assert.False(t, resp.Retryable)
	assert.Equal(t, "category", resp.Details["parameter"])
	assert.False(t, resp.Timestamp.IsZero())
}

func TestWriteError_GeneratesRequestID(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, httptest.NewRequest(http.MethodGet, "/", nil), http.StatusNotFound,
		rdxerrors.ErrCodeNotFound, "missing", false, nil)

	resp := decodeError(t, w)
	assert.NotEmpty(t, resp.RequestID)
	assert.Nil(t, resp.Details)
}

func TestWriteErrorFromErr(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantCode    string
		wantMessage string
		wantDetails map[string]any
	}{
		{
			name: "structured error with cause",
			err: rdxerrors.WrapWithContext(rdxerrors.ErrCodeUnavailable, "index not loaded",
				errors.New("catalog missing"), map[string]any{"catalog": "default"}),
			wantStatus:  http.StatusServiceUnavailable,
			wantCode:    "SERVICE_UNAVAILABLE",
			wantMessage: "index not loaded",
			wantDetails: map[string]any{"catalog": "default", "error": "catalog missing", "route": "/v1/types"},
		},
		{
			name:        "wrapped structured error",
			err:         fmt.Errorf("query: %w", rdxerrors.New(rdxerrors.ErrCodeInvalidFocus, "focus has no values")),
			wantStatus:  http.StatusBadRequest,
			wantCode:    "INVALID_FOCUS",
			wantMessage: "focus has no values",
			wantDetails: map[string]any{"route": "/v1/types"},
		},
		{
			name:        "plain error",
			err:         errors.New("boom"),
			wantStatus:  http.StatusInternalServerError,
			wantCode:    "INTERNAL",
			wantMessage: "query failed",
			wantDetails: map[string]any{"error": "boom", "route": "/v1/types"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			WriteErrorFromErr(w, httptest.NewRequest(http.MethodGet, "/v1/types", nil), tt.err,
				"query failed", map[string]any{"route": "/v1/types"})

			require.Equal(t, tt.wantStatus, w.Code)
			resp := decodeError(t, w)
			assert.Equal(t, tt.wantCode, resp.Code)
			assert.Equal(t, tt.wantMessage, resp.Message)
			assert.Equal(t, tt.wantDetails, resp.Details)
		})
	}
}
