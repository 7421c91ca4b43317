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
	"errors"

	"github.com/NVIDIA/recipedex/pkg/ingredient"
)

var (
	// ErrDuplicateType is returned when two different categories share a TypeID.
	ErrDuplicateType = errors.New("recipe type already registered")
	// ErrUnknownType is returned when a registration references an unregistered TypeID.
	ErrUnknownType = errors.New("recipe type not registered")
	// ErrInvalidFocus is returned when a focus does not name exactly one ingredient value.
	ErrInvalidFocus = errors.New("focus must name exactly one ingredient value")
	// ErrRecordType is returned when a record is not of its category's record type.
	ErrRecordType = errors.New("record does not match category record type")
)

// TypeID identifies a recipe type (category) independent of its record type.
type TypeID string

// String returns the string representation of the TypeID.
func (t TypeID) String() string {
	return string(t)
}

// Type identifies a recipe type whose records are of type T.
type Type[T any] struct {
	id TypeID
}

// NewType creates a Type with the given unique id.
func NewType[T any](uid string) Type[T] {
	return Type[T]{id: TypeID(uid)}
}

// ID returns the untyped identifier.
func (t Type[T]) ID() TypeID {
	return t.id
}

// String returns the type uid.
func (t Type[T]) String() string {
	return string(t.id)
}

// Slot is one ingredient a recipe consumes, produces, requires or displays.
type Slot struct {
	Role  ingredient.Role
	Value ingredient.Value
}

// Inputs returns input slots for values.
func Inputs(values ...ingredient.Value) []Slot {
	return slotsFor(ingredient.RoleInput, values)
}

// Outputs returns output slots for values.
func Outputs(values ...ingredient.Value) []Slot {
	return slotsFor(ingredient.RoleOutput, values)
}

// Catalysts returns catalyst slots for values.
func Catalysts(values ...ingredient.Value) []Slot {
	return slotsFor(ingredient.RoleCatalyst, values)
}

// RenderOnly returns render-only slots for values.
func RenderOnly(values ...ingredient.Value) []Slot {
	return slotsFor(ingredient.RoleRenderOnly, values)
}

func slotsFor(role ingredient.Role, values []ingredient.Value) []Slot {
	out := make([]Slot, 0, len(values))
	for _, v := range values {
		out = append(out, Slot{Role: role, Value: v})
	}
	return out
}
