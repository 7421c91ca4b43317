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
	"time"
)

// CategoryStats counts what happened to the records of one category.
type CategoryStats struct {
	Type      TypeID `json:"type" yaml:"type"`
	Title     string `json:"title" yaml:"title"`
	Indexed   int    `json:"indexed" yaml:"indexed"`
	Invalid   int    `json:"invalid" yaml:"invalid"`
	Failed    int    `json:"failed" yaml:"failed"`
	Catalysts int    `json:"catalysts" yaml:"catalysts"`
}

// Report summarizes an index build.
type Report struct {
	BuildID    string          `json:"buildId" yaml:"buildId"`
	Version    string          `json:"version,omitempty" yaml:"version,omitempty"`
	BuiltAt    time.Time       `json:"builtAt" yaml:"builtAt"`
	Categories []CategoryStats `json:"categories" yaml:"categories"`
	// Unhandled counts untyped records no handler could place.
	Unhandled int `json:"unhandled" yaml:"unhandled"`
}

// Indexed returns the number of indexed records across categories.
func (r Report) Indexed() int {
	n := 0
	for _, c := range r.Categories {
		n += c.Indexed
	}
	return n
}

// Skipped returns the number of records left out of the index.
func (r Report) Skipped() int {
	n := r.Unhandled
	for _, c := range r.Categories {
		n += c.Invalid + c.Failed
	}
	return n
}
