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

package defaults

import "time"

// Index lifecycle.
const (
	// IndexBuildTimeout bounds one index build, catalog loading included.
	IndexBuildTimeout = 2 * time.Minute

	// CatalogReloadDebounce coalesces a burst of file events into one rebuild.
	CatalogReloadDebounce = 250 * time.Millisecond
)

// HTTP server.
const (
	ServerReadTimeout       = 10 * time.Second
	ServerReadHeaderTimeout = 5 * time.Second
	ServerWriteTimeout      = 30 * time.Second
	ServerIdleTimeout       = 120 * time.Second

	// ServerShutdownTimeout is how long in-flight requests get to drain.
	ServerShutdownTimeout = 30 * time.Second
)

// Catalog sources.
const (
	// HTTPClientTimeout caps a whole http(s):// catalog fetch.
	HTTPClientTimeout         = 30 * time.Second
	HTTPConnectTimeout        = 5 * time.Second
	HTTPTLSHandshakeTimeout   = 5 * time.Second
	HTTPResponseHeaderTimeout = 10 * time.Second
	HTTPIdleConnTimeout       = 90 * time.Second
	HTTPKeepAlive             = 30 * time.Second

	ConfigMapReadTimeout  = 15 * time.Second
	ConfigMapWriteTimeout = 30 * time.Second

	// RegistryPullTimeout covers resolving and fetching an oci:// catalog.
	RegistryPullTimeout = 60 * time.Second
	// RegistryPushTimeout covers uploading blobs, manifest and tag.
	RegistryPushTimeout = 2 * time.Minute

	// MaxCatalogBytes caps the size of a catalog fetched over HTTP.
	MaxCatalogBytes = 32 << 20
)
