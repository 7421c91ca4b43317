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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseReference(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantReg  string
		wantRepo string
		wantTag  string
		wantErr  bool
	}{
		{
			name:     "with tag",
			input:    "oci://ghcr.io/nvidia/catalogs:v1.0.0",
			wantReg:  "ghcr.io",
			wantRepo: "nvidia/catalogs",
			wantTag:  "v1.0.0",
		},
		{
			name:     "without tag",
			input:    "oci://ghcr.io/nvidia/catalogs",
			wantReg:  "ghcr.io",
			wantRepo: "nvidia/catalogs",
		},
		{
			name:     "with port",
			input:    "oci://localhost:5000/test/catalog:v1",
			wantReg:  "localhost:5000",
			wantRepo: "test/catalog",
			wantTag:  "v1",
		},
		{
			name:     "docker hub shorthand",
			input:    "oci://catalogs:latest",
			wantReg:  "docker.io",
			wantRepo: "library/catalogs",
			wantTag:  "latest",
		},
		{name: "missing scheme", input: "ghcr.io/nvidia/catalogs:v1", wantErr: true},
		{name: "uppercase repository", input: "oci://ghcr.io/NVIDIA/catalogs", wantErr: true},
		{name: "empty", input: "oci://", wantErr: true},
		{
			name:    "digest",
			input:   "oci://ghcr.io/nvidia/catalogs@sha256:" + "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, err := ParseReference(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantReg, ref.Registry)
			assert.Equal(t, tt.wantRepo, ref.Repository)
			assert.Equal(t, tt.wantTag, ref.Tag)
		})
	}
}

func TestReference_String(t *testing.T) {
	ref, err := ParseReference("oci://localhost:5000/test/catalog")
	require.NoError(t, err)

	assert.Equal(t, "oci://localhost:5000/test/catalog", ref.String())
	assert.Equal(t, "localhost:5000/test/catalog", ref.ImageReference())

	tagged := ref.WithTag("v2")
	assert.Equal(t, "oci://localhost:5000/test/catalog:v2", tagged.String())
	assert.Equal(t, "localhost:5000/test/catalog:v2", tagged.ImageReference())
	assert.Empty(t, ref.Tag, "WithTag must not modify the receiver")
}

func TestIsReference(t *testing.T) {
	assert.True(t, IsReference("oci://ghcr.io/nvidia/catalogs"))
	assert.False(t, IsReference("cm://recipes/catalog"))
	assert.False(t, IsReference("catalog.yaml"))
}
