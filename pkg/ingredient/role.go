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
	"strings"
)

// Role is the function an ingredient serves in a recipe.
type Role int

const (
	// RoleInput is consumed by the recipe.
	RoleInput Role = iota
	// RoleOutput is produced by the recipe.
	RoleOutput
	// RoleCatalyst is required but not consumed.
	RoleCatalyst
	// RoleRenderOnly is displayed with the recipe without taking part in it.
	RoleRenderOnly
)

var roleNames = map[Role]string{
	RoleInput:      "input",
	RoleOutput:     "output",
	RoleCatalyst:   "catalyst",
	RoleRenderOnly: "render_only",
}

// Roles returns every role in declaration order.
func Roles() []Role {
	return []Role{RoleInput, RoleOutput, RoleCatalyst, RoleRenderOnly}
}

// SupportedRoles returns the role names accepted by ParseRole.
func SupportedRoles() []string {
	out := make([]string, 0, len(roleNames))
	for _, r := range Roles() {
		out = append(out, r.String())
	}
	return out
}

// String returns the string representation of the Role.
func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return fmt.Sprintf("role(%d)", int(r))
}

// IsValid reports whether r is a declared role.
func (r Role) IsValid() bool {
	_, ok := roleNames[r]
	return ok
}

// ParseRole parses a role name. Matching is case-insensitive and accepts
// "render-only" as well as "render_only".
func ParseRole(s string) (Role, error) {
	name := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	for r, n := range roleNames {
		if n == name {
			return r, nil
		}
	}
	return 0, fmt.Errorf("invalid role %q, supported values: %v", s, SupportedRoles())
}

// MarshalText implements encoding.TextMarshaler.
func (r Role) MarshalText() ([]byte, error) {
	if !r.IsValid() {
		return nil, fmt.Errorf("invalid role %d", int(r))
	}
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Role) UnmarshalText(text []byte) error {
	parsed, err := ParseRole(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
