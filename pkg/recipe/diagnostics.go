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

package recipe

import (
	"log/slog"
	"sync"
)

// Diagnostics receives reports of records skipped during a build.
type Diagnostics interface {
	// Error reports a failure for one record.
	Error(msg string, cause error, attrs ...any)
	// DebugOnce reports msg the first time kindKey is seen and drops later reports.
	DebugOnce(kindKey, msg string, attrs ...any)
}

type slogDiagnostics struct {
	logger *slog.Logger

	mu   sync.Mutex
	seen map[string]struct{}
}

// NewSlogDiagnostics returns Diagnostics writing to logger.
// A nil logger uses slog.Default().
func NewSlogDiagnostics(logger *slog.Logger) Diagnostics {
	if logger == nil {
		logger = slog.Default()
	}
	return &slogDiagnostics{
		logger: logger,
		seen:   make(map[string]struct{}),
	}
}

func (d *slogDiagnostics) Error(msg string, cause error, attrs ...any) {
	if cause != nil {
		attrs = append(attrs, "error", cause)
	}
	d.logger.Error(msg, attrs...)
}

func (d *slogDiagnostics) DebugOnce(kindKey, msg string, attrs ...any) {
	d.mu.Lock()
	if _, ok := d.seen[kindKey]; ok {
		d.mu.Unlock()
		return
	}
	d.seen[kindKey] = struct{}{}
	d.mu.Unlock()

	d.logger.Debug(msg, append(attrs, "kind", kindKey)...)
}
