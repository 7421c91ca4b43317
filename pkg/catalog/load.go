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
	"context"
	_ "embed"
	"fmt"

	"golang.org/x/sync/errgroup"

	rdxerrors "github.com/NVIDIA/recipedex/pkg/errors"
	"github.com/NVIDIA/recipedex/pkg/serializer"
)

//go:embed data/default.yaml
var defaultCatalog []byte

// Default returns the embedded sample catalog.
func Default() (*Document, error) {
	doc, err := serializer.FromBytes[Document](serializer.FormatYAML, defaultCatalog)
	if err != nil {
		return nil, rdxerrors.Wrap(rdxerrors.ErrCodeInternal, "failed to decode embedded catalog", err)
	}
	return doc, nil
}

// Load reads the catalog at path. Files, http(s) URLs, cm://namespace/name
// ConfigMaps and oci://registry/repository:tag artifacts are supported. An
// empty path loads the embedded catalog.
func Load(ctx context.Context, path string, opts ...serializer.Option) (*Document, error) {
	if path == "" {
		return Default()
	}
	doc, err := serializer.FromFile[Document](ctx, path, opts...)
	if err != nil {
		return nil, rdxerrors.Wrap(rdxerrors.ErrCodeInvalidConfiguration,
			fmt.Sprintf("failed to load catalog %s", path), err)
	}
	return doc, nil
}

// LoadAll reads every path concurrently and merges the documents in the
// order given.
func LoadAll(ctx context.Context, paths []string, opts ...serializer.Option) (*Document, error) {
	if len(paths) == 0 {
		return Default()
	}

	docs := make([]*Document, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	for i, p := range paths {
		g.Go(func() error {
			doc, err := Load(gctx, p, opts...)
			if err != nil {
				return err
			}
			docs[i] = doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return docs[0].Merge(docs[1:]...), nil
}
