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

// bucket holds the records of one recipe type for one ingredient,
// in insertion order, with a membership set over the full history.
type bucket struct {
	entries []entry
	seen    map[any]struct{}
}

func (b *bucket) add(e entry) bool {
	if _, ok := b.seen[e.key]; ok {
		return false
	}
	b.seen[e.key] = struct{}{}
	b.entries = append(b.entries, e)
	return true
}

// association is everything one ingredient identity is indexed under for a role.
type association struct {
	types  []TypeID
	byType map[TypeID]*bucket
}

func (a *association) bucket(typ TypeID) *bucket {
	if b, ok := a.byType[typ]; ok {
		return b
	}
	b := &bucket{seen: make(map[any]struct{})}
	a.byType[typ] = b
	a.types = append(a.types, typ)
	return b
}

// recipeMap indexes ingredient identities to recipe types and records for a
// single role.
type recipeMap struct {
	role    ingredient.Role
	entries map[ingredient.UID]*association
}

func newRecipeMap(role ingredient.Role) *recipeMap {
	return &recipeMap{
		role:    role,
		entries: make(map[ingredient.UID]*association),
	}
}

func (m *recipeMap) association(uid ingredient.UID) *association {
	if a, ok := m.entries[uid]; ok {
		return a
	}
	a := &association{byType: make(map[TypeID]*bucket)}
	m.entries[uid] = a
	return a
}

// add indexes e of typ under uid.
func (m *recipeMap) add(uid ingredient.UID, typ TypeID, e entry) {
	m.association(uid).bucket(typ).add(e)
}

// addType associates typ with uid without a record.
func (m *recipeMap) addType(uid ingredient.UID, typ TypeID) {
	m.association(uid).bucket(typ)
}

// recipeTypes returns the types uid participates in, in first-occurrence order.
func (m *recipeMap) recipeTypes(uid ingredient.UID) []TypeID {
	a, ok := m.entries[uid]
	if !ok {
		return nil
	}
	return a.types
}

// recipes returns the records of typ uid participates in, in insertion order.
func (m *recipeMap) recipes(typ TypeID, uid ingredient.UID) []entry {
	a, ok := m.entries[uid]
	if !ok {
		return nil
	}
	b, ok := a.byType[typ]
	if !ok {
		return nil
	}
	return b.entries
}

// size returns the number of indexed identities.
func (m *recipeMap) size() int {
	return len(m.entries)
}
