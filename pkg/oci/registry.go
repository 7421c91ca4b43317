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
	"crypto/tls"
	"log/slog"
	"net/http"

	"oras.land/oras-go/v2/registry/remote"
	"oras.land/oras-go/v2/registry/remote/auth"
	"oras.land/oras-go/v2/registry/remote/credentials"

	"github.com/NVIDIA/recipedex/pkg/defaults"
	rdxerrors "github.com/NVIDIA/recipedex/pkg/errors"
)

// RemoteOptions configures the registry connection.
type RemoteOptions struct {
	// PlainHTTP uses HTTP instead of HTTPS.
	PlainHTTP bool
	// InsecureTLS skips TLS certificate verification.
	InsecureTLS bool
}

// PushResult describes a pushed catalog.
type PushResult struct {
	// Digest is the manifest digest.
	Digest string
	// Reference is registry/repository:tag.
	Reference string
}

// NewRepository opens the remote repository of ref. Credentials come from
// the Docker credential store when one is configured.
func NewRepository(ref *Reference, opts RemoteOptions) (*remote.Repository, error) {
	repo, err := remote.NewRepository(ref.Name())
	if err != nil {
		return nil, rdxerrors.Wrap(rdxerrors.ErrCodeInvalidRequest, "failed to initialize remote repository", err)
	}
	repo.PlainHTTP = opts.PlainHTTP
	repo.Client = newAuthClient(opts)
	return repo, nil
}

// PushRemote pushes data to the registry location ref. ref must carry a tag.
func PushRemote(ctx context.Context, ref *Reference, data []byte, push PushOptions, opts RemoteOptions) (*PushResult, error) {
	if ref.Tag == "" {
		return nil, rdxerrors.New(rdxerrors.ErrCodeInvalidRequest, "tag is required to push a catalog")
	}
	repo, err := NewRepository(ref, opts)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaults.RegistryPushTimeout)
	defer cancel()

	push.Tag = ref.Tag
	desc, err := Push(ctx, repo, data, push)
	if err != nil {
		return nil, rdxerrors.Wrap(rdxerrors.ErrCodeUnavailable, "failed to push catalog to registry", err)
	}

	slog.Info("catalog pushed",
		"reference", ref.ImageReference(),
		"digest", desc.Digest.String())

	return &PushResult{
		Digest:    desc.Digest.String(),
		Reference: ref.ImageReference(),
	}, nil
}

// PullRemote fetches the catalog at ref. A missing tag defaults to "latest".
func PullRemote(ctx context.Context, ref *Reference, opts RemoteOptions) ([]byte, string, error) {
	if ref.Tag == "" {
		ref = ref.WithTag("latest")
	}
	repo, err := NewRepository(ref, opts)
	if err != nil {
		return nil, "", err
	}
	ctx, cancel := context.WithTimeout(ctx, defaults.RegistryPullTimeout)
	defer cancel()

	slog.Debug("pulling catalog", "reference", ref.ImageReference())
	return Pull(ctx, repo, ref.Tag)
}

func newAuthClient(opts RemoteOptions) *auth.Client {
	credStore, err := credentials.NewStoreFromDocker(credentials.StoreOptions{})
	if err != nil {
		slog.Debug("docker credential store unavailable", "error", err)
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if !opts.PlainHTTP && opts.InsecureTLS {
		if transport.TLSClientConfig == nil {
			transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec
		} else {
			transport.TLSClientConfig.InsecureSkipVerify = true //nolint:gosec
		}
	}

	client := &auth.Client{
		Client: &http.Client{Transport: transport},
		Cache:  auth.NewCache(),
	}
	if credStore != nil {
		client.Credential = credentials.Credential(credStore)
	}
	return client
}
