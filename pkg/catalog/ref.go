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

package catalog

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/NVIDIA/recipedex/pkg/ingredient"
)

// ErrInvalidRef is returned for malformed ingredient references.
var ErrInvalidRef = errors.New("invalid ingredient reference")

// ParseRef parses an ingredient reference:
//
//	item:<name>[@damage]
//	fluid:<name>[*amount]
func ParseRef(ref string) (ingredient.Value, error) {
	kind, rest, ok := strings.Cut(strings.TrimSpace(ref), ":")
	if !ok {
		return nil, fmt.Errorf("%w %q: expected <kind>:<name>", ErrInvalidRef, ref)
	}

	switch ingredient.Kind(kind) {
	case KindItem:
		name, damage, hasDamage := strings.Cut(rest, "@")
		item := Item{Name: name}
		if hasDamage {
			n, err := strconv.Atoi(damage)
			if err != nil || n < 0 {
				return nil, fmt.Errorf("%w %q: damage must be a non-negative integer", ErrInvalidRef, ref)
			}
			item.Damage = n
		}
		if err := checkName(ref, item.Name); err != nil {
			return nil, err
		}
		return item, nil

	case KindFluid:
		name, amount, hasAmount := strings.Cut(rest, "*")
		fluid := Fluid{Name: name}
		if hasAmount {
			n, err := strconv.Atoi(amount)
			if err != nil || n <= 0 {
				return nil, fmt.Errorf("%w %q: amount must be a positive integer", ErrInvalidRef, ref)
			}
			fluid.Amount = n
		}
		if err := checkName(ref, fluid.Name); err != nil {
			return nil, err
		}
		return fluid, nil

	default:
		return nil, fmt.Errorf("%w %q: unsupported kind %q", ErrInvalidRef, ref, kind)
	}
}

// ParseRefs parses every reference in refs.
func ParseRefs(refs []string) ([]ingredient.Value, error) {
	out := make([]ingredient.Value, 0, len(refs))
	for _, r := range refs {
		v, err := ParseRef(r)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// FormatRef returns the reference form of v. Values of other kinds are
// formatted as <kind>:<value>.
func FormatRef(v ingredient.Value) string {
	switch t := v.(type) {
	case Item:
		if t.Damage != 0 {
			return fmt.Sprintf("item:%s@%d", t.Name, t.Damage)
		}
		return "item:" + t.Name
	case Fluid:
		if t.Amount != 0 {
			return fmt.Sprintf("fluid:%s*%d", t.Name, t.Amount)
		}
		return "fluid:" + t.Name
	case nil:
		return ""
	default:
		return fmt.Sprintf("%s:%v", v.IngredientKind(), v)
	}
}

// FormatRefs formats every value in values.
func FormatRefs(values []ingredient.Value) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, FormatRef(v))
	}
	return out
}

func checkName(ref, name string) error {
	if name == "" {
		return fmt.Errorf("%w %q: name is empty", ErrInvalidRef, ref)
	}
	if strings.ContainsAny(name, " \t\n:@*") {
		return fmt.Errorf("%w %q: name contains reserved characters", ErrInvalidRef, ref)
	}
	return nil
}
