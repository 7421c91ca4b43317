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
	"fmt"
	"strings"

	ociv1 "github.com/opencontainers/image-spec/specs-go/v1"
	oras "oras.land/oras-go/v2"
	"oras.land/oras-go/v2/content"

	rdxerrors "github.com/NVIDIA/recipedex/pkg/errors"
)

const (
	// ArtifactType is the OCI artifact type of a recipe catalog.
	ArtifactType = "application/vnd.nvidia.recipedex.catalog"

	// MediaTypeCatalogYAML is the layer media type of a YAML catalog.
	MediaTypeCatalogYAML = "application/vnd.nvidia.recipedex.catalog.v1+yaml"

	// MediaTypeCatalogJSON is the layer media type of a JSON catalog.
	MediaTypeCatalogJSON = "application/vnd.nvidia.recipedex.catalog.v1+json"
)

// PushOptions configures Push.
type PushOptions struct {
	// Tag is the tag applied to the pushed manifest.
	Tag string
	// MediaType is the catalog layer media type. Defaults to MediaTypeCatalogYAML.
	MediaType string
	// Version is recorded as org.opencontainers.image.version.
	Version string
	// Created is recorded as org.opencontainers.image.created for
	// reproducible manifests. Omitted when empty.
	Created string
	// Annotations are extra manifest annotations.
	Annotations map[string]string
}

// Push stores data as a single-layer catalog artifact in dst and tags it.
func Push(ctx context.Context, dst oras.Target, data []byte, opts PushOptions) (ociv1.Descriptor, error) {
	if opts.Tag == "" {
		return ociv1.Descriptor{}, rdxerrors.New(rdxerrors.ErrCodeInvalidRequest, "tag is required to push a catalog")
	}
	mediaType := opts.MediaType
	if mediaType == "" {
		mediaType = MediaTypeCatalogYAML
	}

	layer, err := oras.PushBytes(ctx, dst, mediaType, data)
	if err != nil {
		return ociv1.Descriptor{}, fmt.Errorf("failed to push catalog layer: %w", err)
	}
	layer.Annotations = map[string]string{
		ociv1.AnnotationTitle: "catalog." + extension(mediaType),
	}

	annotations := map[string]string{
		ociv1.AnnotationVendor: "NVIDIA",
		ociv1.AnnotationTitle:  "recipedex catalog",
	}
	if opts.Version != "" {
		annotations[ociv1.AnnotationVersion] = opts.Version
	}
	if opts.Created != "" {
		annotations[ociv1.AnnotationCreated] = opts.Created
	}
	for k, v := range opts.Annotations {
		annotations[k] = v
	}

	manifest, err := oras.PackManifest(ctx, dst, oras.PackManifestVersion1_1, ArtifactType, oras.PackManifestOptions{
		Layers:              []ociv1.Descriptor{layer},
		ManifestAnnotations: annotations,
	})
	if err != nil {
		return ociv1.Descriptor{}, fmt.Errorf("failed to pack manifest: %w", err)
	}

	if err := dst.Tag(ctx, manifest, opts.Tag); err != nil {
		return ociv1.Descriptor{}, fmt.Errorf("failed to tag manifest %s: %w", opts.Tag, err)
	}
	return manifest, nil
}

// Pull returns the catalog stored under tag in src and its layer media type.
func Pull(ctx context.Context, src oras.ReadOnlyTarget, tag string) ([]byte, string, error) {
	desc, err := src.Resolve(ctx, tag)
	if err != nil {
		return nil, "", rdxerrors.Wrap(rdxerrors.ErrCodeNotFound,
			fmt.Sprintf("failed to resolve catalog %s", tag), err)
	}

	raw, err := content.FetchAll(ctx, src, desc)
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch manifest: %w", err)
	}

	var manifest ociv1.Manifest
	if err := json.Unmarshal(raw, &manifest); err != nil {
		return nil, "", fmt.Errorf("failed to decode manifest: %w", err)
	}
	if manifest.ArtifactType != ArtifactType {
		return nil, "", rdxerrors.New(rdxerrors.ErrCodeInvalidRequest,
			fmt.Sprintf("%s is not a recipe catalog (artifact type %q)", tag, manifest.ArtifactType))
	}

	for _, layer := range manifest.Layers {
		if layer.MediaType != MediaTypeCatalogYAML && layer.MediaType != MediaTypeCatalogJSON {
			continue
		}
		data, err := content.FetchAll(ctx, src, layer)
		if err != nil {
			return nil, "", fmt.Errorf("failed to fetch catalog layer: %w", err)
		}
		return data, layer.MediaType, nil
	}
	return nil, "", rdxerrors.New(rdxerrors.ErrCodeInvalidRequest,
		fmt.Sprintf("%s has no catalog layer", tag))
}

// MediaTypeFor returns the catalog layer media type for a format name.
func MediaTypeFor(format string) string {
	if format == "json" {
		return MediaTypeCatalogJSON
	}
	return MediaTypeCatalogYAML
}

// FormatOf returns the format name ("json" or "yaml") of a catalog layer media type.
func FormatOf(mediaType string) string {
	return extension(mediaType)
}

func extension(mediaType string) string {
	if strings.HasSuffix(mediaType, "+json") {
		return "json"
	}
	return "yaml"
}
