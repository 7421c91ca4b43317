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
	"sync/atomic"
)

// Holder shares the current index with readers and lets a rebuilt index
// replace it atomically. Readers keep using the Manager they loaded.
type Holder struct {
	current atomic.Pointer[Manager]
}

// NewHolder returns a Holder serving m. m may be nil until the first Store.
func NewHolder(m *Manager) *Holder {
	h := &Holder{}
	if m != nil {
		h.current.Store(m)
	}
	return h
}

// Load returns the current index, or nil if none has been stored.
func (h *Holder) Load() *Manager {
	return h.current.Load()
}

// Store replaces the current index and returns the previous one.
func (h *Holder) Store(m *Manager) *Manager {
	return h.current.Swap(m)
}

// Ready reports whether an index is available.
func (h *Holder) Ready() bool {
	return h.current.Load() != nil
}
