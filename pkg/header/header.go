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

package header

import (
	"fmt"
	"time"
)

// Kind names the shape of a recipedex document.
type Kind string

const (
	KindCatalog        Kind = "Catalog"
	KindRecipeTypeList Kind = "RecipeTypeList"
	KindRecipeList     Kind = "RecipeList"
	KindCategoryList   Kind = "CategoryList"
	KindBuildReport    Kind = "BuildReport"
)

// APIVersion is the schema version stamped on every document.
const APIVersion = "recipedex.nvidia.com/v1alpha1"

// Well-known metadata keys.
const (
	MetaTimestamp = "timestamp"
	MetaVersion   = "version"
)

var kinds = []Kind{KindCatalog, KindRecipeTypeList, KindRecipeList, KindCategoryList, KindBuildReport}

func (k Kind) String() string { return string(k) }

// IsValid reports whether k is one of the document kinds above.
func (k Kind) IsValid() bool {
	for _, known := range kinds {
		if k == known {
			return true
		}
	}
	return false
}

// ParseKind converts s into a Kind, rejecting unknown names.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if !k.IsValid() {
		return "", fmt.Errorf("unknown document kind %q", s)
	}
	return k, nil
}

// Header is embedded inline by every document recipedex reads or writes.
type Header struct {
	Kind       Kind              `json:"kind,omitempty" yaml:"kind,omitempty"`
	APIVersion string            `json:"apiVersion,omitempty" yaml:"apiVersion,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Init resets h for a freshly produced document. The metadata map is
// replaced, so anything carried over from a source document is dropped.
func (h *Header) Init(kind Kind, apiVersion, version string) {
	h.Kind = kind
	h.APIVersion = apiVersion
	h.Metadata = map[string]string{
		MetaTimestamp: time.Now().UTC().Format(time.RFC3339),
	}
	if version != "" {
		h.Metadata[MetaVersion] = version
	}
}

// DocumentHeader exposes the header of any document that embeds it.
func (h Header) DocumentHeader() Header { return h }

// Version returns the producing recipedex version, or "" when unset.
func (h Header) Version() string { return h.Metadata[MetaVersion] }

// Timestamp returns the time the document was produced. ok is false when
// the timestamp is missing or malformed.
func (h Header) Timestamp() (ts time.Time, ok bool) {
	v, found := h.Metadata[MetaTimestamp]
	if !found {
		return time.Time{}, false
	}
	ts, err := time.Parse(time.RFC3339, v)
	return ts, err == nil
}
