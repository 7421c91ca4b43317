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

// Package oci stores recipe catalogs as OCI artifacts.
//
// A catalog is pushed as a single-layer OCI 1.1 artifact of type
// ArtifactType whose layer holds the YAML or JSON catalog document. Any
// OCI-compliant registry (GHCR, ECR, Docker Hub, a local registry) can
// host it, and catalog sources of the form oci://registry/repository:tag
// are pulled back through the same package.
//
// Push and Pull work against any oras.Target, such as a remote repository
// or an in-memory store:
//
//	desc, err := oci.Push(ctx, store, data, oci.PushOptions{Tag: "v1"})
//	data, mediaType, err := oci.Pull(ctx, store, "v1")
//
// PushRemote and PullRemote open the registry named by a Reference,
// authenticating with the Docker credential store when available:
//
//	ref, err := oci.ParseReference("oci://ghcr.io/nvidia/catalogs:v1")
//	res, err := oci.PushRemote(ctx, ref, data, oci.PushOptions{Version: version}, oci.RemoteOptions{})
package oci
