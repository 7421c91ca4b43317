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

package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/recipedex/pkg/oci"
	"github.com/NVIDIA/recipedex/pkg/serializer"
)

// runFlags parses args against flags and hands the parsed command to check.
func runFlags(t *testing.T, flags []cli.Flag, args []string, check func(*cli.Command)) {
	t.Helper()
	cmd := &cli.Command{
		Name:  "probe",
		Flags: flags,
		Action: func(_ context.Context, c *cli.Command) error {
			check(c)
			return nil
		},
	}
	require.NoError(t, cmd.Run(context.Background(), append([]string{"probe"}, args...)))
}

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		args    []string
		want    serializer.Format
		wantErr bool
	}{
		{nil, serializer.FormatYAML, false},
		{[]string{"--format", "json"}, serializer.FormatJSON, false},
		{[]string{"-t", "table"}, serializer.FormatTable, false},
		{[]string{"--format", "xml"}, "", true},
		{[]string{"--format", ""}, "", true},
	}

	for _, tt := range tests {
		runFlags(t, []cli.Flag{formatFlag()}, tt.args, func(c *cli.Command) {
			got, err := parseOutputFormat(c)
			if tt.wantErr {
				assert.Error(t, err, "%v", tt.args)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRegistryOptions(t *testing.T) {
	runFlags(t, catalogFlags(), []string{"--plain-http"}, func(c *cli.Command) {
		assert.Equal(t, oci.RemoteOptions{PlainHTTP: true}, registryOptions(c))
	})

	t.Setenv("RECIPEDEX_INSECURE_TLS", "true")
	runFlags(t, catalogFlags(), nil, func(c *cli.Command) {
		assert.Equal(t, oci.RemoteOptions{InsecureTLS: true}, registryOptions(c))
	})
}

func TestCatalogFlag_FromEnv(t *testing.T) {
	t.Setenv("RECIPEDEX_CATALOG", "a.yaml,b.yaml")
	runFlags(t, catalogFlags(), nil, func(c *cli.Command) {
		assert.Equal(t, []string{"a.yaml", "b.yaml"}, c.StringSlice("catalog"))
	})
}

func TestWriteOutput_File(t *testing.T) {
	out := filepath.Join(t.TempDir(), "types.json")
	doc := map[string][]string{"types": {"smelting"}}

	runFlags(t, catalogFlags(), []string{"--output", out, "--format", "json"}, func(c *cli.Command) {
		require.NoError(t, writeOutput(context.Background(), c, doc))
	})

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.JSONEq(t, `{"types":["smelting"]}`, string(data))
}
