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

// Package serializer reads and writes recipedex documents.
//
// Documents are written as JSON, YAML or a human-readable table:
//
//	w := serializer.NewFileWriterOrStdout(serializer.FormatYAML, output)
//	if c, ok := w.(serializer.Closer); ok {
//	    defer c.Close()
//	}
//	if err := w.Serialize(ctx, result); err != nil {
//	    return err
//	}
//
// The output path may be empty (stdout), a file, or a ConfigMap URI of the
// form cm://namespace/name, which is created or updated with server-side apply.
//
// Documents are read from local files, HTTP(S) URLs, ConfigMaps or OCI
// artifacts (oci://registry/repository:tag, see package oci):
//
//	doc, err := serializer.FromFile[catalog.Document](ctx, "cm://recipes/catalog")
//
// File formats follow the extension. URLs prefer a JSON or YAML
// Content-Type and otherwise use the extension. ConfigMaps store the document
// under the "recipedex.<ext>" data key with the format recorded in "format".
// OCI artifacts carry the format in their layer media type.
//
// Documents implementing TableRenderer control their table layout; all
// others are flattened into FIELD/VALUE rows.
//
// For HTTP responses:
//
//	serializer.RespondJSON(w, http.StatusOK, data)
package serializer
