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

// Package server is the HTTP server shared by recipedex services.
//
// It provides health and readiness probes, Prometheus metrics and a
// middleware chain for API handlers:
//
//   - request count, latency and response size per route pattern
//   - API version negotiation from vendor media types in Accept
//   - request IDs (X-Request-Id), kept when well-formed, else a new UUID
//   - panic recovery
//   - token bucket rate limiting (golang.org/x/time/rate) with Retry-After
//   - one debug log line per request
//
// # Usage
//
//	s := server.New(
//	    server.WithName("recipedexd"),
//	    server.WithVersion(version),
//	    server.WithHandler(map[string]http.HandlerFunc{
//	        "/v1/types": typesHandler,
//	    }),
//	)
//	if err := s.Run(ctx); err != nil {
//	    return err
//	}
//
// Run stops on SIGINT or SIGTERM and drains in-flight requests for up to
// ShutdownTimeout. PORT and SHUTDOWN_TIMEOUT_SECONDS override the defaults.
//
// # System Endpoints
//
//	GET /health   liveness, always 200
//	GET /ready    readiness, 503 until started and the readiness check passes
//	GET /metrics  Prometheus metrics
//	GET /         server name, version and routes
//
// # Error Handling
//
// All errors return a consistent JSON structure:
//
//	{
//	  "code": "INVALID_FOCUS",
//	  "message": "focus is not bound to a single ingredient",
//	  "details": {"values": 0},
//	  "requestId": "550e8400-e29b-41d4-a716-446655440000",
//	  "timestamp": "2025-12-22T12:00:00Z",
//	  "retryable": false
//	}
//
// WriteErrorFromErr derives the status code from the error code of a
// pkg/errors StructuredError. When rate limited, the server returns 429
// with a Retry-After header.
package server
