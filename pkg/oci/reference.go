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

package oci

import (
	"fmt"
	"strings"

	"github.com/distribution/reference"

	rdxerrors "github.com/NVIDIA/recipedex/pkg/errors"
)

// URIScheme is the URI scheme for catalogs stored in an OCI registry
// (e.g., "oci://ghcr.io/org/catalogs:v1").
const URIScheme = "oci://"

// Reference is a parsed oci:// catalog location.
type Reference struct {
	// Registry is the registry host (e.g., "ghcr.io", "localhost:5000").
	Registry string
	// Repository is the repository path (e.g., "nvidia/catalogs").
	Repository string
	// Tag is the artifact tag. Empty means no tag was given; callers
	// apply their own default.
	Tag string
}

// IsReference reports whether s uses the oci:// scheme.
func IsReference(s string) bool {
	return strings.HasPrefix(s, URIScheme)
}

// ParseReference parses oci://registry/repository[:tag]. Digests are not
// accepted because catalogs are addressed by tag.
func ParseReference(uri string) (*Reference, error) {
	if !IsReference(uri) {
		return nil, rdxerrors.New(rdxerrors.ErrCodeInvalidRequest,
			fmt.Sprintf("OCI reference must start with %s: %q", URIScheme, uri))
	}

	ref, err := reference.ParseNormalizedNamed(strings.TrimPrefix(uri, URIScheme))
	if err != nil {
		return nil, rdxerrors.Wrap(rdxerrors.ErrCodeInvalidRequest, "invalid OCI reference", err)
	}
	if _, ok := ref.(reference.Digested); ok {
		return nil, rdxerrors.New(rdxerrors.ErrCodeInvalidRequest,
			fmt.Sprintf("OCI reference must use a tag, not a digest: %q", uri))
	}

	r := &Reference{
		Registry:   reference.Domain(ref),
		Repository: reference.Path(ref),
	}
	if tagged, ok := ref.(reference.Tagged); ok {
		r.Tag = tagged.Tag()
	}
	return r, nil
}

// String returns the oci:// form of the reference.
func (r *Reference) String() string {
	return URIScheme + r.ImageReference()
}

// ImageReference returns the reference without the oci:// scheme.
func (r *Reference) ImageReference() string {
	if r.Tag == "" {
		return r.Name()
	}
	return fmt.Sprintf("%s:%s", r.Name(), r.Tag)
}

// Name returns registry/repository.
func (r *Reference) Name() string {
	return fmt.Sprintf("%s/%s", r.Registry, r.Repository)
}

// WithTag returns a copy of the reference with tag.
func (r *Reference) WithTag(tag string) *Reference {
	c := *r
	c.Tag = tag
	return &c
}
