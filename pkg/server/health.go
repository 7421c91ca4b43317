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
	"time"

	rdxerrors "github.com/NVIDIA/recipedex/pkg/errors"
	"github.com/NVIDIA/recipedex/pkg/serializer"
)

// HealthResponse is the body of the /health and /ready probes.
type HealthResponse struct {
	Status    string    `json:"status" yaml:"status"`
	Name      string    `json:"name,omitempty" yaml:"name,omitempty"`
	Version   string    `json:"version,omitempty" yaml:"version,omitempty"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	Reason    string    `json:"reason,omitempty" yaml:"reason,omitempty"`
}

func (s *Server) probe(w http.ResponseWriter, r *http.Request, status int, body HealthResponse) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		WriteError(w, r, http.StatusMethodNotAllowed, rdxerrors.ErrCodeMethodNotAllowed,
			"Method not allowed", false, map[string]any{"method": r.Method})
		return
	}
	w.Header().Set("Cache-Control", "no-store")
	body.Name = s.config.Name
	body.Version = s.config.Version
	body.Timestamp = time.Now().UTC()
	serializer.RespondJSON(w, status, body)
}

// handleHealth reports liveness; it succeeds whenever the process serves HTTP.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.probe(w, r, http.StatusOK, HealthResponse{Status: "healthy"})
}

// handleReady reports whether the server has started and its readiness
// check passes.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if reason := s.notReadyReason(); reason != "" {
		s.probe(w, r, http.StatusServiceUnavailable, HealthResponse{Status: "not_ready", Reason: reason})
		return
	}
	s.probe(w, r, http.StatusOK, HealthResponse{Status: "ready"})
}

// notReadyReason returns why the server cannot serve traffic, or "".
func (s *Server) notReadyReason() string {
	s.mu.RLock()
	ready := s.ready
	s.mu.RUnlock()

	if !ready {
		return "service is initializing"
	}
	if s.config.Readiness != nil {
		if err := s.config.Readiness(); err != nil {
			return err.Error()
		}
	}
	return ""
}
