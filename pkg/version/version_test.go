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

package version

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Version
		wantErr error
	}{
		{in: "1", want: Version{Major: 1, Precision: 1}},
		{in: "v1.2", want: Version{Major: 1, Minor: 2, Precision: 2}},
		{in: "1.2.3", want: Version{Major: 1, Minor: 2, Patch: 3, Precision: 3}},
		{in: "v0.4.0-rc.1", want: Version{Minor: 4, Precision: 3, Extras: "-rc.1"}},
		{in: "1.2.3+abc.def", want: Version{Major: 1, Minor: 2, Patch: 3, Precision: 3, Extras: "+abc.def"}},
		{in: "", wantErr: ErrEmptyVersion},
		{in: "1.2.3.4", wantErr: ErrTooManyComponents},
		{in: "dev", wantErr: ErrNonNumeric},
		{in: "1..2", wantErr: ErrNonNumeric},
		{in: "-1", wantErr: ErrNonNumeric},
		{in: "1.+2", wantErr: ErrNonNumeric},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"1.2.3", "1.2.3", 0},
		{"1.2.3", "1.2.4", -1},
		{"1.3", "1.2.9", 1},
		{"1.2", "1.2.9", 0},
		{"2", "1.9.9", 1},
		{"0.9.0", "1", -1},
		{"1.2.3-rc.1", "1.2.3", 0},
	}
	for _, tt := range tests {
		t.Run(tt.a+"_vs_"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, MustParse(tt.a).Compare(MustParse(tt.b)))
		})
	}
}

func TestSatisfies(t *testing.T) {
	tests := []struct {
		name     string
		running  string
		required string
		want     bool
		wantErr  bool
	}{
		{name: "no requirement", running: "v0.1.0", required: "", want: true},
		{name: "newer", running: "v0.3.1", required: "v0.3", want: true},
		{name: "equal", running: "v0.3.0", required: "0.3.0", want: true},
		{name: "older", running: "v0.2.9", required: "v0.3", want: false},
		{name: "dev build", running: "dev", required: "v9", want: true},
		{name: "bad requirement", running: "v1.0.0", required: "latest", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Satisfies(tt.running, tt.required)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMustParse_Panics(t *testing.T) {
	assert.Panics(t, func() { MustParse("x.y") })
}

func versionGen() *rapid.Generator[Version] {
	return rapid.Custom(func(t *rapid.T) Version {
		v := Version{
			Major:     rapid.IntRange(0, 50).Draw(t, "major"),
			Precision: rapid.IntRange(1, 3).Draw(t, "precision"),
		}
		if v.Precision > 1 {
			v.Minor = rapid.IntRange(0, 50).Draw(t, "minor")
		}
		if v.Precision > 2 {
			v.Patch = rapid.IntRange(0, 50).Draw(t, "patch")
		}
		return v
	})
}

func TestStringParses(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		v := versionGen().Draw(t, "v")
		got, err := Parse(v.String())
		if err != nil {
			t.Fatalf("Parse(%q): %v", v.String(), err)
		}
		if got != v {
			t.Fatalf("Parse(%q) = %+v, want %+v", v.String(), got, v)
		}
	})
}

func TestCompareAntisymmetric(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := versionGen().Draw(t, "a")
		b := versionGen().Draw(t, "b")
		if a.Compare(b) != -b.Compare(a) {
			t.Fatalf("Compare not antisymmetric for %v and %v", a, b)
		}
	})
}

func FuzzParse(f *testing.F) {
	for _, s := range []string{"1", "v1.2", "1.2.3", "1.2.3-rc.1", "", ".", "1..2", "-1", "a.b.c", "1.2.3.4", " 1"} {
		f.Add(s)
	}
	f.Fuzz(func(t *testing.T, in string) {
		v, err := Parse(in)
		if err != nil {
			return
		}
		if v.Precision < 1 || v.Precision > 3 || v.Major < 0 || v.Minor < 0 || v.Patch < 0 {
			t.Fatalf("Parse(%q) = %+v", in, v)
		}
		if v.Compare(v) != 0 {
			t.Fatalf("%v does not equal itself", v)
		}
	})
}
