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

package ingredient

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownKind is returned when no Helper is registered for a value's Kind.
	ErrUnknownKind = errors.New("unknown ingredient kind")
	// ErrNilValue is returned when a nil ingredient value is resolved.
	ErrNilValue = errors.New("ingredient value is nil")
	// ErrEmptyID is returned when a Helper produces an empty unique id.
	ErrEmptyID = errors.New("ingredient unique id is empty")
)

// Kind identifies a family of ingredient values, such as items or fluids.
type Kind string

// String returns the string representation of the Kind.
func (k Kind) String() string {
	return string(k)
}

// Value is an ingredient value supplied by the host.
type Value interface {
	IngredientKind() Kind
}

// UID is the identity of an ingredient value under a Context.
type UID struct {
	Kind Kind   `json:"kind" yaml:"kind"`
	Key  string `json:"key" yaml:"key"`
}

// String returns "kind:key".
func (u UID) String() string {
	return fmt.Sprintf("%s:%s", u.Kind, u.Key)
}

// IsZero reports whether the UID is unset.
func (u UID) IsZero() bool {
	return u.Kind == "" && u.Key == ""
}

// Context selects how coarse an identity is.
type Context int

const (
	// ContextRecipe groups values that are equivalent for recipe lookup.
	ContextRecipe Context = iota
	// ContextIngredient distinguishes every variant of a value.
	ContextIngredient
)

// String returns the string representation of the Context.
func (c Context) String() string {
	switch c {
	case ContextRecipe:
		return "recipe"
	case ContextIngredient:
		return "ingredient"
	default:
		return fmt.Sprintf("context(%d)", int(c))
	}
}
