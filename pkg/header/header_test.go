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

package header

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseKind(t *testing.T) {
	for _, k := range kinds {
		got, err := ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}

	for _, bad := range []string{"", "Snapshot", "catalog"} {
		_, err := ParseKind(bad)
		assert.Error(t, err, bad)
		assert.False(t, Kind(bad).IsValid())
	}
}

func TestHeader_Init(t *testing.T) {
	h := Header{Metadata: map[string]string{"source": "stale"}}
	h.Init(KindBuildReport, APIVersion, "v1.0.0")

	assert.Equal(t, KindBuildReport, h.Kind)
	assert.Equal(t, APIVersion, h.APIVersion)
	assert.Equal(t, "v1.0.0", h.Version())
	assert.NotContains(t, h.Metadata, "source")

	ts, ok := h.Timestamp()
	require.True(t, ok)
	assert.WithinDuration(t, time.Now(), ts, time.Minute)

	h.Init(KindCatalog, APIVersion, "")
	assert.Empty(t, h.Version())
	assert.NotContains(t, h.Metadata, MetaVersion)
}

func TestHeader_Timestamp(t *testing.T) {
	var h Header
	_, ok := h.Timestamp()
	assert.False(t, ok)

	h.Metadata = map[string]string{MetaTimestamp: "yesterday"}
	_, ok = h.Timestamp()
	assert.False(t, ok)
}

func TestHeader_InlineYAML(t *testing.T) {
	type doc struct {
		Header `json:",inline" yaml:",inline"`
		Names  []string `json:"names" yaml:"names"`
	}

	in := []byte("kind: RecipeList\napiVersion: recipedex.nvidia.com/v1alpha1\nmetadata:\n  version: v0.2.0\nnames: [smelting]\n")
	var d doc
	require.NoError(t, yaml.Unmarshal(in, &d))

	h := d.DocumentHeader()
	assert.Equal(t, KindRecipeList, h.Kind)
	assert.Equal(t, "v0.2.0", h.Version())
	assert.Equal(t, []string{"smelting"}, d.Names)
}
