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

package serializer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/NVIDIA/recipedex/pkg/k8s/client"
	"github.com/NVIDIA/recipedex/pkg/oci"
)

// Option configures how documents are read from and written to remote sources.
type Option func(*options)

type options struct {
	kube       client.Interface
	kubeconfig string
	key        string
	http       *HttpReader
	registry   oci.RemoteOptions
}

func newOptions(opts []Option) options {
	o := options{key: DefaultConfigMapKey}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithKubeClient uses cs for ConfigMap access instead of discovering a client.
func WithKubeClient(cs client.Interface) Option {
	return func(o *options) {
		o.kube = cs
	}
}

// WithKubeconfig builds the ConfigMap client from an explicit kubeconfig file.
func WithKubeconfig(path string) Option {
	return func(o *options) {
		o.kubeconfig = path
	}
}

// WithConfigMapKey sets the ConfigMap data key prefix.
func WithConfigMapKey(key string) Option {
	return func(o *options) {
		if key != "" {
			o.key = key
		}
	}
}

// WithHttpReader sets the reader used for http:// and https:// sources.
func WithHttpReader(r *HttpReader) Option {
	return func(o *options) {
		o.http = r
	}
}

// WithRegistryOptions configures the connection used for oci:// sources.
func WithRegistryOptions(ro oci.RemoteOptions) Option {
	return func(o *options) {
		o.registry = ro
	}
}

func (o options) kubeClient() (client.Interface, error) {
	if o.kube != nil {
		return o.kube, nil
	}
	cs, _, err := client.ForKubeconfig(o.kubeconfig)
	if err != nil {
		return nil, fmt.Errorf("failed to get kubernetes client: %w", err)
	}
	return cs, nil
}

func (o options) dataKey(f Format) string {
	return fmt.Sprintf("%s.%s", o.key, f.Extension())
}

// Reader deserializes JSON or YAML documents from an io.Reader.
// Close releases the source if it is an io.Closer; it is safe to call
// multiple times.
type Reader struct {
	format Format
	input  io.Reader
	closer io.Closer
}

// NewReader creates a Reader for format. Table format cannot be read.
func NewReader(format Format, input io.Reader) (*Reader, error) {
	if format.IsUnknown() {
		return nil, fmt.Errorf("unknown format: %s", format)
	}
	if format == FormatTable {
		return nil, fmt.Errorf("table format does not support deserialization")
	}

	r := &Reader{
		format: format,
		input:  input,
	}
	if closer, ok := input.(io.Closer); ok {
		r.closer = closer
	}
	return r, nil
}

// Deserialize decodes the input into v, which must be a pointer.
func (r *Reader) Deserialize(v any) error {
	if r == nil {
		return fmt.Errorf("reader is nil")
	}
	if r.input == nil {
		return fmt.Errorf("input source is nil")
	}

	switch r.format {
	case FormatJSON:
		if err := json.NewDecoder(r.input).Decode(v); err != nil {
			return fmt.Errorf("failed to decode JSON: %w", err)
		}
		return nil
	case FormatYAML:
		if err := yaml.NewDecoder(r.input).Decode(v); err != nil {
			return fmt.Errorf("failed to decode YAML: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported format for deserialization: %s", r.format)
	}
}

// Close releases any resources held by the Reader.
func (r *Reader) Close() error {
	if r == nil || r.closer == nil {
		return nil
	}
	err := r.closer.Close()
	r.closer = nil
	return err
}

// ReadSource returns the raw document at path and its format.
//
// Supported sources:
//   - local files: ./catalog.yaml, /etc/recipedex/catalog.json
//   - HTTP(S) URLs: https://example.com/catalog.yaml
//   - ConfigMaps: cm://namespace/name
//   - OCI artifacts: oci://registry/repository:tag
//
// Files take their format from the extension. URLs use the Content-Type
// and fall back to the extension. ConfigMaps and OCI artifacts record it.
func ReadSource(ctx context.Context, path string, opts ...Option) ([]byte, Format, error) {
	o := newOptions(opts)

	switch {
	case strings.HasPrefix(path, ConfigMapURIScheme):
		namespace, name, err := ParseConfigMapURI(path)
		if err != nil {
			return nil, "", err
		}
		return readConfigMap(ctx, namespace, name, o)

	case oci.IsReference(path):
		ref, err := oci.ParseReference(path)
		if err != nil {
			return nil, "", err
		}
		data, mediaType, err := oci.PullRemote(ctx, ref, o.registry)
		if err != nil {
			return nil, "", fmt.Errorf("failed to pull OCI artifact: %w", err)
		}
		return data, Format(oci.FormatOf(mediaType)), nil

	case strings.HasPrefix(path, "http://"), strings.HasPrefix(path, "https://"):
		hr := o.http
		if hr == nil {
			hr = NewHttpReader()
		}
		f, err := hr.Fetch(ctx, path)
		if err != nil {
			return nil, "", fmt.Errorf("failed to download remote file: %w", err)
		}
		return f.Data, f.Format, nil

	default:
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, "", fmt.Errorf("failed to open file: %w", err)
		}
		return data, FormatFromPath(path), nil
	}
}

// FromBytes decodes data in format into a new T.
func FromBytes[T any](format Format, data []byte) (*T, error) {
	r, err := NewReader(format, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	var v T
	if err := r.Deserialize(&v); err != nil {
		return nil, err
	}
	return &v, nil
}

// FromFile reads and decodes the document at path into a new T.
// See ReadSource for the supported sources.
//
//	doc, err := serializer.FromFile[catalog.Document](ctx, "cm://recipes/catalog")
func FromFile[T any](ctx context.Context, path string, opts ...Option) (*T, error) {
	data, format, err := ReadSource(ctx, path, opts...)
	if err != nil {
		return nil, err
	}
	slog.Debug("determined file format",
		slog.String("path", path),
		slog.String("format", string(format)),
	)

	v, err := FromBytes[T](format, data)
	if err != nil {
		return nil, fmt.Errorf("failed to deserialize object from %q: %w", path, err)
	}
	return v, nil
}
