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
	"github.com/NVIDIA/recipedex/pkg/ingredient"
)

// catalyst is one declared catalyst of a recipe type. uid is its identity
// under the catalyst role context; ids holds it under every context in use.
type catalyst struct {
	value ingredient.Value
	uid   ingredient.UID
	ids   []ingredient.UID
}

// catalystTable records which ingredients unlock whole recipe types.
type catalystTable struct {
	byType map[TypeID][]catalyst
	member map[TypeID]map[ingredient.UID]struct{}
}

func newCatalystTable() *catalystTable {
	return &catalystTable{
		byType: make(map[TypeID][]catalyst),
		member: make(map[TypeID]map[ingredient.UID]struct{}),
	}
}

// add declares c a catalyst of typ. Returns false if its primary identity is
// already declared for typ.
func (t *catalystTable) add(typ TypeID, c catalyst) bool {
	set, ok := t.member[typ]
	if !ok {
		set = make(map[ingredient.UID]struct{})
		t.member[typ] = set
	}
	for _, existing := range t.byType[typ] {
		if existing.uid == c.uid {
			return false
		}
	}
	for _, id := range c.ids {
		set[id] = struct{}{}
	}
	t.byType[typ] = append(t.byType[typ], c)
	return true
}

// isCatalyst reports whether uid is a catalyst of typ.
func (t *catalystTable) isCatalyst(typ TypeID, uid ingredient.UID) bool {
	_, ok := t.member[typ][uid]
	return ok
}

// catalystsFor returns the catalysts of typ in declaration order.
func (t *catalystTable) catalystsFor(typ TypeID) []catalyst {
	return t.byType[typ]
}
