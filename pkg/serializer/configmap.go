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
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	accorev1 "k8s.io/client-go/applyconfigurations/core/v1"

	"github.com/NVIDIA/recipedex/pkg/defaults"
	"github.com/NVIDIA/recipedex/pkg/header"
)

const (
	// ConfigMapURIScheme prefixes ConfigMap locations: cm://namespace/name.
	ConfigMapURIScheme = "cm://"

	// DefaultConfigMapKey is the data key prefix; documents are stored
	// under "<key>.<ext>", for example "recipedex.yaml".
	DefaultConfigMapKey = "recipedex"

	fieldManager = "recipedex"
)

// ConfigMapWriter writes serialized data to a Kubernetes ConfigMap.
// The ConfigMap is created if it doesn't exist, or updated if it does.
type ConfigMapWriter struct {
	namespace string
	name      string
	format    Format
	opts      options
}

// NewConfigMapWriter creates a ConfigMapWriter for namespace/name.
func NewConfigMapWriter(namespace, name string, format Format, opts ...Option) *ConfigMapWriter {
	return &ConfigMapWriter{
		namespace: namespace,
		name:      name,
		format:    normalize(format),
		opts:      newOptions(opts),
	}
}

// Serialize applies a ConfigMap holding doc. The ConfigMap has:
//   - data.<key>.<ext>: the serialized document
//   - data.format: the format used
//   - data.timestamp: RFC 3339 time the document was created
func (w *ConfigMapWriter) Serialize(ctx context.Context, doc any) error {
	writeCtx, cancel := context.WithTimeout(ctx, defaults.ConfigMapWriteTimeout)
	defer cancel()

	cs, err := w.opts.kubeClient()
	if err != nil {
		return err
	}

	content, err := Marshal(w.format, doc)
	if err != nil {
		return fmt.Errorf("failed to serialize document: %w", err)
	}

	kind, version, timestamp := "Document", "unknown", time.Now().UTC().Format(time.RFC3339)
	if d, ok := doc.(interface{ DocumentHeader() header.Header }); ok {
		h := d.DocumentHeader()
		if h.Kind != "" {
			kind = h.Kind.String()
		}
		if v := h.Version(); v != "" {
			version = v
		}
		if ts, ok := h.Timestamp(); ok {
			timestamp = ts.Format(time.RFC3339)
		}
	}

	cm := accorev1.ConfigMap(w.name, w.namespace).
		WithLabels(map[string]string{
			"app.kubernetes.io/name":      "recipedex",
			"app.kubernetes.io/component": strings.ToLower(kind),
			"app.kubernetes.io/version":   version,
		}).
		WithData(map[string]string{
			w.opts.dataKey(w.format): string(content),
			"format":                 string(w.format),
			"timestamp":              timestamp,
		})

	slog.Info("applying ConfigMap",
		"namespace", w.namespace,
		"name", w.name,
		"format", w.format,
		"kind", kind)

	_, err = cs.CoreV1().ConfigMaps(w.namespace).Apply(writeCtx, cm, metav1.ApplyOptions{
		FieldManager: fieldManager,
		Force:        true,
	})
	if err != nil {
		return fmt.Errorf("failed to apply ConfigMap %s/%s: %w", w.namespace, w.name, err)
	}
	return nil
}

// Close is a no-op; ConfigMapWriter holds no resources.
func (w *ConfigMapWriter) Close() error {
	return nil
}

// readConfigMap returns the document stored in namespace/name and its format.
// The format named by data.format is tried first, then YAML and JSON.
func readConfigMap(ctx context.Context, namespace, name string, o options) ([]byte, Format, error) {
	readCtx, cancel := context.WithTimeout(ctx, defaults.ConfigMapReadTimeout)
	defer cancel()

	cs, err := o.kubeClient()
	if err != nil {
		return nil, "", err
	}

	cm, err := cs.CoreV1().ConfigMaps(namespace).Get(readCtx, name, metav1.GetOptions{})
	if err != nil {
		return nil, "", fmt.Errorf("failed to get ConfigMap %s/%s: %w", namespace, name, err)
	}

	candidates := []Format{FormatYAML, FormatJSON}
	if f := Format(cm.Data["format"]); f == FormatJSON || f == FormatYAML {
		candidates = append([]Format{f}, candidates...)
	}
	for _, f := range candidates {
		if data, ok := cm.Data[o.dataKey(f)]; ok {
			slog.Debug("reading from ConfigMap",
				"namespace", namespace,
				"name", name,
				"format", f,
				"size", len(data))
			return []byte(data), f, nil
		}
	}
	return nil, "", fmt.Errorf("ConfigMap %s/%s has no %s data", namespace, name, o.key)
}

// ParseConfigMapURI splits cm://namespace/name into its components.
func ParseConfigMapURI(uri string) (namespace, name string, err error) {
	if !strings.HasPrefix(uri, ConfigMapURIScheme) {
		return "", "", fmt.Errorf("invalid ConfigMap URI: must start with %s", ConfigMapURIScheme)
	}

	parts := strings.SplitN(strings.TrimPrefix(uri, ConfigMapURIScheme), "/", 2)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("invalid ConfigMap URI format: expected %snamespace/name, got %s", ConfigMapURIScheme, uri)
	}

	namespace = strings.TrimSpace(parts[0])
	name = strings.TrimSpace(parts[1])
	if namespace == "" {
		return "", "", fmt.Errorf("invalid ConfigMap URI: namespace cannot be empty")
	}
	if name == "" {
		return "", "", fmt.Errorf("invalid ConfigMap URI: name cannot be empty")
	}
	return namespace, name, nil
}
