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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes/fake"

	"github.com/NVIDIA/recipedex/pkg/header"
)

func TestParseConfigMapURI(t *testing.T) {
	tests := []struct {
		name          string
		uri           string
		wantNamespace string
		wantName      string
		wantErr       bool
	}{
		{name: "valid URI", uri: "cm://recipes/catalog", wantNamespace: "recipes", wantName: "catalog"},
		{name: "valid URI with spaces", uri: "cm://recipes / catalog ", wantNamespace: "recipes", wantName: "catalog"},
		{name: "missing scheme", uri: "recipes/catalog", wantErr: true},
		{name: "wrong scheme", uri: "http://recipes/catalog", wantErr: true},
		{name: "missing name", uri: "cm://recipes/", wantErr: true},
		{name: "missing namespace", uri: "cm:///catalog", wantErr: true},
		{name: "missing separator", uri: "cm://recipes", wantErr: true},
		{name: "empty URI", uri: "", wantErr: true},
		{name: "only scheme", uri: "cm://", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			namespace, name, err := ParseConfigMapURI(tt.uri)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantNamespace, namespace)
			assert.Equal(t, tt.wantName, name)
		})
	}
}

type testDocument struct {
	header.Header `json:",inline" yaml:",inline"`
	Types         []string `json:"types" yaml:"types"`
}

func TestConfigMapWriter_RoundTrip(t *testing.T) {
	cs := fake.NewClientset()
	ctx := context.Background()

	doc := testDocument{Types: []string{"smelting", "crafting"}}
	doc.Init(header.KindRecipeTypeList, header.APIVersion, "v0.1.0")

	w := NewConfigMapWriter("recipes", "types", FormatYAML, WithKubeClient(cs))
	require.NoError(t, w.Serialize(ctx, doc))
	require.NoError(t, w.Close())

	cm, err := cs.CoreV1().ConfigMaps("recipes").Get(ctx, "types", metav1.GetOptions{})
	require.NoError(t, err)
	assert.Equal(t, "yaml", cm.Data["format"])
	assert.Equal(t, doc.Metadata["timestamp"], cm.Data["timestamp"])
	assert.Equal(t, "recipetypelist", cm.Labels["app.kubernetes.io/component"])
	assert.Equal(t, "v0.1.0", cm.Labels["app.kubernetes.io/version"])
	assert.Contains(t, cm.Data["recipedex.yaml"], "- smelting")

	got, err := FromFile[testDocument](ctx, "cm://recipes/types", WithKubeClient(cs))
	require.NoError(t, err)
	assert.Equal(t, doc.Types, got.Types)
	assert.Equal(t, header.KindRecipeTypeList, got.Kind)

	// rewriting in another format replaces the ConfigMap content
	w = NewConfigMapWriter("recipes", "types", FormatJSON, WithKubeClient(cs))
	require.NoError(t, w.Serialize(ctx, map[string]int{"count": 2}))
	cm, err = cs.CoreV1().ConfigMaps("recipes").Get(ctx, "types", metav1.GetOptions{})
	require.NoError(t, err)
	assert.Equal(t, "json", cm.Data["format"])
	assert.Equal(t, "document", cm.Labels["app.kubernetes.io/component"])
}

func TestNewConfigMapWriter_UnknownFormat(t *testing.T) {
	w := NewConfigMapWriter("recipes", "types", Format("xml"))
	assert.Equal(t, FormatJSON, w.format)
	assert.Equal(t, DefaultConfigMapKey, w.opts.key)
}
