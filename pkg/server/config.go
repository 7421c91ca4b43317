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
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/NVIDIA/recipedex/pkg/defaults"
)

// Config holds server configuration
type Config struct {
	// Server identity
	Name    string
	Version string

	// Additional Handlers to be added to the server, keyed by path pattern
	Handlers map[string]http.HandlerFunc

	// Readiness reports whether the server can serve API traffic.
	// A nil Readiness is always ready once the server started.
	Readiness func() error

	// Server configuration
	Address string
	Port    int

	// Rate limiting configuration
	RateLimit      rate.Limit // requests per second
	RateLimitBurst int        // burst size

	// Timeouts
	ReadTimeout       time.Duration
	ReadHeaderTimeout time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration
}

// Environment variables read by NewConfig.
const (
	EnvPort            = "PORT"
	EnvRateLimit       = "RATE_LIMIT"
	EnvRateLimitBurst  = "RATE_LIMIT_BURST"
	EnvShutdownSeconds = "SHUTDOWN_TIMEOUT_SECONDS"
)

// NewConfig returns the default configuration with environment overrides
// applied. Malformed or non-positive values are ignored.
func NewConfig() *Config {
	cfg := &Config{
		Name:              "recipedexd",
		Version:           "dev",
		Port:              8080,
		RateLimit:         100,
		RateLimitBurst:    200,
		ReadTimeout:       defaults.ServerReadTimeout,
		ReadHeaderTimeout: defaults.ServerReadHeaderTimeout,
		WriteTimeout:      defaults.ServerWriteTimeout,
		IdleTimeout:       defaults.ServerIdleTimeout,
		ShutdownTimeout:   defaults.ServerShutdownTimeout,
	}

	if n, ok := positiveEnv(EnvPort); ok && n <= 65535 {
		cfg.Port = n
	}
	if n, ok := positiveEnv(EnvRateLimit); ok {
		cfg.RateLimit = rate.Limit(n)
	}
	if n, ok := positiveEnv(EnvRateLimitBurst); ok {
		cfg.RateLimitBurst = n
	}
	// matches the pod's termination grace period when set
	if n, ok := positiveEnv(EnvShutdownSeconds); ok {
		cfg.ShutdownTimeout = time.Duration(n) * time.Second
	}
	return cfg
}

func positiveEnv(key string) (int, bool) {
	v, found := os.LookupEnv(key)
	if !found {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n <= 0 {
		slog.Warn("ignoring invalid environment value", "key", key, "value", v)
		return 0, false
	}
	return n, true
}

// Option configures the server.
type Option func(*Server)

// WithConfig replaces the server configuration.
func WithConfig(cfg *Config) Option {
	return func(s *Server) {
		if cfg != nil {
			s.config = cfg
		}
	}
}

// WithName sets the server name reported by the root handler and logs.
func WithName(name string) Option {
	return func(s *Server) {
		s.config.Name = name
	}
}

// WithVersion sets the server version.
func WithVersion(version string) Option {
	return func(s *Server) {
		s.config.Version = version
	}
}

// WithHandler adds API handlers keyed by path pattern. API handlers run
// behind the middleware chain.
func WithHandler(handlers map[string]http.HandlerFunc) Option {
	return func(s *Server) {
		if s.config.Handlers == nil {
			s.config.Handlers = make(map[string]http.HandlerFunc, len(handlers))
		}
		for path, h := range handlers {
			s.config.Handlers[path] = h
		}
	}
}

// WithPort sets the listening port.
func WithPort(port int) Option {
	return func(s *Server) {
		s.config.Port = port
	}
}

// WithRateLimit sets the request rate limit and burst.
func WithRateLimit(limit rate.Limit, burst int) Option {
	return func(s *Server) {
		s.config.RateLimit = limit
		s.config.RateLimitBurst = burst
	}
}

// WithReadiness sets the readiness check used by /ready.
func WithReadiness(check func() error) Option {
	return func(s *Server) {
		s.config.Readiness = check
	}
}
