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
	"fmt"
	"sync"
)

// Helper computes unique ids for the values of one Kind.
type Helper interface {
	Kind() Kind
	UniqueID(v Value, ctx Context) (string, error)
}

// Resolver turns ingredient values into identities.
// The recipe index consumes this interface and never inspects values itself.
type Resolver interface {
	Identity(v Value, ctx Context) (UID, error)
	IsKnown(v Value) bool
}

type helperFunc[V Value] struct {
	kind Kind
	fn   func(V, Context) (string, error)
}

// NewHelper adapts a typed function into a Helper for kind.
// Values of kind that are not of type V are rejected.
func NewHelper[V Value](kind Kind, fn func(v V, ctx Context) (string, error)) Helper {
	return &helperFunc[V]{kind: kind, fn: fn}
}

func (h *helperFunc[V]) Kind() Kind {
	return h.kind
}

func (h *helperFunc[V]) UniqueID(v Value, ctx Context) (string, error) {
	typed, ok := v.(V)
	if !ok {
		return "", fmt.Errorf("ingredient of kind %s has unexpected type %T", h.kind, v)
	}
	return h.fn(typed, ctx)
}

// Manager holds the registered Helpers and resolves identities.
// Registration is safe for concurrent use; once registration is complete,
// lookups do not contend.
type Manager struct {
	mu      sync.RWMutex
	helpers map[Kind]Helper
	kinds   []Kind
}

// NewManager creates an empty Manager.
func NewManager() *Manager {
	return &Manager{
		helpers: make(map[Kind]Helper),
	}
}

// Register adds a Helper. Returns an error if its Kind is already registered.
func (m *Manager) Register(h Helper) error {
	if h == nil {
		return fmt.Errorf("helper is nil")
	}
	kind := h.Kind()
	if kind == "" {
		return fmt.Errorf("helper kind is empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.helpers[kind]; exists {
		return fmt.Errorf("ingredient kind %s already registered", kind)
	}
	m.helpers[kind] = h
	m.kinds = append(m.kinds, kind)
	return nil
}

// MustRegister is a convenience function that panics on registration error.
func (m *Manager) MustRegister(h Helper) {
	if err := m.Register(h); err != nil {
		panic(err)
	}
}

// Kinds returns the registered kinds in registration order.
func (m *Manager) Kinds() []Kind {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Kind, len(m.kinds))
	copy(out, m.kinds)
	return out
}

// Helper returns the Helper registered for kind.
func (m *Manager) Helper(kind Kind) (Helper, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	h, ok := m.helpers[kind]
	return h, ok
}

// IsKnown reports whether v is non-nil and has a registered Kind.
func (m *Manager) IsKnown(v Value) bool {
	if v == nil {
		return false
	}
	_, ok := m.Helper(v.IngredientKind())
	return ok
}

// Identity resolves v under ctx.
func (m *Manager) Identity(v Value, ctx Context) (UID, error) {
	if v == nil {
		return UID{}, ErrNilValue
	}
	kind := v.IngredientKind()
	h, ok := m.Helper(kind)
	if !ok {
		return UID{}, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
	key, err := h.UniqueID(v, ctx)
	if err != nil {
		return UID{}, fmt.Errorf("failed to resolve %s ingredient: %w", kind, err)
	}
	if key == "" {
		return UID{}, fmt.Errorf("%w: kind %s", ErrEmptyID, kind)
	}
	return UID{Kind: kind, Key: key}, nil
}
