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
	"fmt"
)

// Descriptor is the type-erased view of a recipe category used by the index.
// Categories are built with NewCategory; the interface exists so categories
// with different record types can share one registry.
type Descriptor interface {
	// TypeID returns the recipe type the category owns.
	TypeID() TypeID
	// Title returns a display title.
	Title() string
	// Extract reports the ingredient slots of a record.
	Extract(record any) ([]Slot, error)
	// IsValid reports whether a record should be indexed.
	IsValid(record any) bool
	// Owns reports whether record is of the category's record type.
	Owns(record any) bool
}

// Category describes a recipe type whose records are of type T.
type Category[T any] struct {
	typ     Type[T]
	title   string
	extract func(T) ([]Slot, error)
	valid   func(T) bool
}

// CategoryOption configures a Category.
type CategoryOption[T any] func(*Category[T])

// WithTitle sets the category display title. Defaults to the type uid.
func WithTitle[T any](title string) CategoryOption[T] {
	return func(c *Category[T]) {
		c.title = title
	}
}

// WithValidator sets the predicate deciding which records are indexed.
// Records failing it are skipped and reported during the build.
func WithValidator[T any](valid func(T) bool) CategoryOption[T] {
	return func(c *Category[T]) {
		c.valid = valid
	}
}

// NewCategory creates a category for typ. extract reports the ingredient slots
// of each record and may return an error for records it cannot handle.
func NewCategory[T any](typ Type[T], extract func(T) ([]Slot, error), opts ...CategoryOption[T]) *Category[T] {
	c := &Category[T]{
		typ:     typ,
		title:   typ.String(),
		extract: extract,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Type returns the typed recipe type.
func (c *Category[T]) Type() Type[T] {
	return c.typ
}

// TypeID implements Descriptor.
func (c *Category[T]) TypeID() TypeID {
	return c.typ.ID()
}

// Title implements Descriptor.
func (c *Category[T]) Title() string {
	return c.title
}

// Owns implements Descriptor.
func (c *Category[T]) Owns(record any) bool {
	_, ok := record.(T)
	return ok
}

// Extract implements Descriptor.
func (c *Category[T]) Extract(record any) ([]Slot, error) {
	typed, ok := record.(T)
	if !ok {
		return nil, fmt.Errorf("%w: %s expects %T, got %T", ErrRecordType, c.typ, *new(T), record)
	}
	if c.extract == nil {
		return nil, fmt.Errorf("category %s has no extraction function", c.typ)
	}
	return c.extract(typed)
}

// IsValid implements Descriptor.
func (c *Category[T]) IsValid(record any) bool {
	typed, ok := record.(T)
	if !ok {
		return false
	}
	if c.valid == nil {
		return true
	}
	return c.valid(typed)
}
