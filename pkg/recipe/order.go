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
	"cmp"
	"slices"
)

// CompareTypes orders recipe types by category registration order.
// Unregistered types sort after registered ones, by id.
func (m *Manager) CompareTypes(a, b TypeID) int {
	ra, rb := m.registry.rank(a), m.registry.rank(b)
	switch {
	case ra >= 0 && rb >= 0:
		return cmp.Compare(ra, rb)
	case ra >= 0:
		return -1
	case rb >= 0:
		return 1
	default:
		return cmp.Compare(a, b)
	}
}

// SortTypes sorts ids in place by category registration order.
func (m *Manager) SortTypes(ids []TypeID) {
	slices.SortStableFunc(ids, m.CompareTypes)
}
