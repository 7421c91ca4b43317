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
	"reflect"
)

// ordinal identifies a non-pointer record by its registration position.
type ordinal int

// entry is a record paired with the key used to compare it by identity.
type entry struct {
	key    any
	record any
}

// identityKey returns the identity of a record. Pointer records compare by
// address; every other record is distinct from all others.
func identityKey(record any, pos int) any {
	if record == nil {
		return ordinal(pos)
	}
	if reflect.TypeOf(record).Kind() == reflect.Pointer {
		return record
	}
	return ordinal(pos)
}

// registry maps recipe types to their descriptors and records.
// Category order is registration order.
type registry struct {
	order   []Descriptor
	index   map[TypeID]int
	records map[TypeID][]entry
	seen    map[TypeID]map[any]struct{}
}

func newRegistry() *registry {
	return &registry{
		index:   make(map[TypeID]int),
		records: make(map[TypeID][]entry),
		seen:    make(map[TypeID]map[any]struct{}),
	}
}

// addCategory appends d. The caller has already rejected duplicates.
func (r *registry) addCategory(d Descriptor) {
	id := d.TypeID()
	r.index[id] = len(r.order)
	r.order = append(r.order, d)
	r.seen[id] = make(map[any]struct{})
}

// addRecord appends e under typ unless a record with the same identity is
// already present. Returns false for duplicates.
func (r *registry) addRecord(typ TypeID, e entry) bool {
	seen, ok := r.seen[typ]
	if !ok {
		return false
	}
	if _, dup := seen[e.key]; dup {
		return false
	}
	seen[e.key] = struct{}{}
	r.records[typ] = append(r.records[typ], e)
	return true
}

func (r *registry) category(id TypeID) (Descriptor, bool) {
	i, ok := r.index[id]
	if !ok {
		return nil, false
	}
	return r.order[i], true
}

// rank returns the registration position of id, or -1 if unknown.
func (r *registry) rank(id TypeID) int {
	if i, ok := r.index[id]; ok {
		return i
	}
	return -1
}

// recipesForType returns the entries of typ. Unknown types yield nil.
func (r *registry) recipesForType(typ TypeID) []entry {
	return r.records[typ]
}
