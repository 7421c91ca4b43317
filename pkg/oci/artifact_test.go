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
	"context"
	"encoding/json"
	"testing"

	ociv1 "github.com/opencontainers/image-spec/specs-go/v1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	oras "oras.land/oras-go/v2"
	"oras.land/oras-go/v2/content"
	"oras.land/oras-go/v2/content/memory"
)

const testCatalog = `kind: Catalog
apiVersion: recipedex.nvidia.com/v1alpha1
categories:
  - uid: crafting
`

func TestPushPull(t *testing.T) {
	ctx := context.Background()
	store := memory.New()

	desc, err := Push(ctx, store, []byte(testCatalog), PushOptions{
		Tag:     "v1",
		Version: "v1.2.3",
		Created: "2025-01-01T00:00:00Z",
	})
	require.NoError(t, err)
	assert.Equal(t, ociv1.MediaTypeImageManifest, desc.MediaType)

	data, mediaType, err := Pull(ctx, store, "v1")
	require.NoError(t, err)
	assert.Equal(t, testCatalog, string(data))
	assert.Equal(t, MediaTypeCatalogYAML, mediaType)
	assert.Equal(t, "yaml", FormatOf(mediaType))
}

func TestPush_ManifestAnnotations(t *testing.T) {
	ctx := context.Background()
	store := memory.New()

	desc, err := Push(ctx, store, []byte(`{}`), PushOptions{
		Tag:         "v1",
		MediaType:   MediaTypeCatalogJSON,
		Version:     "v1.2.3",
		Created:     "2025-01-01T00:00:00Z",
		Annotations: map[string]string{"com.example.team": "recipes"},
	})
	require.NoError(t, err)

	raw, err := content.FetchAll(ctx, store, desc)
	require.NoError(t, err)
	var manifest ociv1.Manifest
	require.NoError(t, json.Unmarshal(raw, &manifest))

	assert.Equal(t, ArtifactType, manifest.ArtifactType)
	assert.Equal(t, "v1.2.3", manifest.Annotations[ociv1.AnnotationVersion])
	assert.Equal(t, "2025-01-01T00:00:00Z", manifest.Annotations[ociv1.AnnotationCreated])
	assert.Equal(t, "recipes", manifest.Annotations["com.example.team"])
	require.Len(t, manifest.Layers, 1)
	assert.Equal(t, MediaTypeCatalogJSON, manifest.Layers[0].MediaType)
	assert.Equal(t, "catalog.json", manifest.Layers[0].Annotations[ociv1.AnnotationTitle])
}

func TestPush_Reproducible(t *testing.T) {
	ctx := context.Background()
	opts := PushOptions{Tag: "v1", Created: "2025-01-01T00:00:00Z"}

	a, err := Push(ctx, memory.New(), []byte(testCatalog), opts)
	require.NoError(t, err)
	b, err := Push(ctx, memory.New(), []byte(testCatalog), opts)
	require.NoError(t, err)
	assert.Equal(t, a.Digest, b.Digest)
}

func TestPush_RequiresTag(t *testing.T) {
	_, err := Push(context.Background(), memory.New(), []byte(testCatalog), PushOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tag is required")
}

func TestPull_UnknownTag(t *testing.T) {
	_, _, err := Pull(context.Background(), memory.New(), "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to resolve catalog")
}

func TestPull_WrongArtifactType(t *testing.T) {
	ctx := context.Background()
	store := memory.New()

	layer, err := oras.PushBytes(ctx, store, "text/plain", []byte("hello"))
	require.NoError(t, err)
	manifest, err := oras.PackManifest(ctx, store, oras.PackManifestVersion1_1, "application/vnd.example.other",
		oras.PackManifestOptions{Layers: []ociv1.Descriptor{layer}})
	require.NoError(t, err)
	require.NoError(t, store.Tag(ctx, manifest, "v1"))

	_, _, err = Pull(ctx, store, "v1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a recipe catalog")
}

func TestMediaTypeFor(t *testing.T) {
	assert.Equal(t, MediaTypeCatalogJSON, MediaTypeFor("json"))
	assert.Equal(t, MediaTypeCatalogYAML, MediaTypeFor("yaml"))
	assert.Equal(t, MediaTypeCatalogYAML, MediaTypeFor(""))
}

func TestPushRemote_RequiresTag(t *testing.T) {
	ref, err := ParseReference("oci://localhost:5000/test/catalog")
	require.NoError(t, err)

	_, err = PushRemote(context.Background(), ref, []byte(testCatalog), PushOptions{}, RemoteOptions{PlainHTTP: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tag is required")
}
