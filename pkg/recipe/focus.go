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

	rdxerrors "github.com/NVIDIA/recipedex/pkg/errors"
	"github.com/NVIDIA/recipedex/pkg/ingredient"
)

// Focus is a query key: the ingredient values a caller is looking at and the
// role they play. Queries accept only foci bound to exactly one value.
type Focus struct {
	Role   ingredient.Role
	Values []ingredient.Value
}

// NewFocus returns a Focus on a single value.
func NewFocus(role ingredient.Role, v ingredient.Value) Focus {
	return Focus{Role: role, Values: []ingredient.Value{v}}
}

// String returns a human-readable description of the focus.
func (f Focus) String() string {
	if len(f.Values) == 1 && f.Values[0] != nil {
		return fmt.Sprintf("%s %v", f.Role, f.Values[0])
	}
	return fmt.Sprintf("%s (%d values)", f.Role, len(f.Values))
}

// value returns the single concrete value of the focus.
func (f Focus) value() (ingredient.Value, error) {
	if !f.Role.IsValid() {
		return nil, rdxerrors.WrapWithContext(rdxerrors.ErrCodeInvalidFocus,
			"focus has an unsupported role", ErrInvalidFocus,
			map[string]any{"role": int(f.Role)})
	}
	if len(f.Values) != 1 || f.Values[0] == nil {
		return nil, rdxerrors.WrapWithContext(rdxerrors.ErrCodeInvalidFocus,
			"focus is not bound to a single ingredient", ErrInvalidFocus,
			map[string]any{"values": len(f.Values)})
	}
	return f.Values[0], nil
}
