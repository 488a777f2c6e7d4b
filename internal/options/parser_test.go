// Copyright 2026 The Lattice Authors.
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

package options

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInputsPreserveOrder(t *testing.T) {
	p := NewArgumentParser(NewStandardOptionTable())
	parsed, d := p.Parse([]string{"a.lat", "b.lat", "-emit-object", "c.lat"})
	require.Nil(t, d)
	assert.Equal(t, []string{"a.lat", "b.lat", "c.lat"}, parsed.AllInputs())
}

func TestParseStdinSentinel(t *testing.T) {
	p := NewArgumentParser(NewStandardOptionTable())
	parsed, d := p.Parse([]string{"-"})
	require.Nil(t, d)
	assert.Equal(t, []string{"-"}, parsed.AllInputs())
}

func TestParseJoinedValue(t *testing.T) {
	p := NewArgumentParser(NewStandardOptionTable())
	parsed, d := p.Parse([]string{"-debug-info-format=codeview"})
	require.Nil(t, d)
	entry, ok := parsed.LastByOption(OptDebugInfoFormat)
	require.True(t, ok)
	assert.Equal(t, "codeview", entry.Argument.Value)
}

func TestParseSeparateValueMissing(t *testing.T) {
	p := NewArgumentParser(NewStandardOptionTable())
	_, d := p.Parse([]string{"-o"})
	require.NotNil(t, d)
	assert.Equal(t, "error_missing_value", string(d.ID))
}

func TestParseSeparateValue(t *testing.T) {
	p := NewArgumentParser(NewStandardOptionTable())
	parsed, d := p.Parse([]string{"-o", "out.exe"})
	require.Nil(t, d)
	entry, ok := parsed.LastByOption(OptOutput)
	require.True(t, ok)
	assert.Equal(t, "out.exe", entry.Argument.Value)
}

func TestParseJoinedOrSeparateJoinedSuffix(t *testing.T) {
	p := NewArgumentParser(NewStandardOptionTable())
	parsed, d := p.Parse([]string{"-Ivendor/include", "a.lat"})
	require.Nil(t, d)
	entry, ok := parsed.LastByOption(OptSearchPath)
	require.True(t, ok)
	assert.Equal(t, "vendor/include", entry.Argument.Value)
}

func TestParseJoinedOrSeparateFallsBackToNextToken(t *testing.T) {
	p := NewArgumentParser(NewStandardOptionTable())
	parsed, d := p.Parse([]string{"-I", "vendor/include", "a.lat"})
	require.Nil(t, d)
	entry, ok := parsed.LastByOption(OptSearchPath)
	require.True(t, ok)
	assert.Equal(t, "vendor/include", entry.Argument.Value)
}

func TestParseJoinedOrSeparateMissingValue(t *testing.T) {
	p := NewArgumentParser(NewStandardOptionTable())
	_, d := p.Parse([]string{"-I"})
	require.NotNil(t, d)
	assert.Equal(t, "error_missing_value", string(d.ID))
}

func TestParseUnknownOption(t *testing.T) {
	p := NewArgumentParser(NewStandardOptionTable())
	_, d := p.Parse([]string{"-not-a-real-option"})
	require.NotNil(t, d)
	assert.Equal(t, "error_unknown_option", string(d.ID))
}

func TestParseRemainingArgsConsumesRest(t *testing.T) {
	p := NewArgumentParser(NewStandardOptionTable())
	parsed, d := p.Parse([]string{"a.lat", OptXcc, "-I", "include", "-DFOO=1"})
	require.Nil(t, d)
	entry, ok := parsed.LastByOption(OptXcc)
	require.True(t, ok)
	assert.Equal(t, []string{"-I", "include", "-DFOO=1"}, entry.Argument.Multi)
}

func TestParsePreservesDuplicates(t *testing.T) {
	p := NewArgumentParser(NewStandardOptionTable())
	parsed, d := p.Parse([]string{"-g", "-gnone", "-g"})
	require.Nil(t, d)
	var spellings []string
	for _, e := range parsed.All() {
		spellings = append(spellings, e.Spelling)
	}
	assert.Equal(t, []string{OptG, OptGNone, OptG}, spellings)

	last, ok := parsed.LastByGroup(GroupDebugLevel)
	require.True(t, ok)
	assert.Equal(t, OptG, last.Spelling)
}

func TestResponseFileExpansion(t *testing.T) {
	p := NewArgumentParser(NewStandardOptionTable())
	p.ReadFile = func(path string) ([]byte, error) {
		assert.Equal(t, "args.txt", path)
		return []byte("-emit-object a.lat\nb.lat"), nil
	}
	parsed, d := p.Parse([]string{"@args.txt"})
	require.Nil(t, d)
	assert.Equal(t, []string{"a.lat", "b.lat"}, parsed.AllInputs())
	_, ok := parsed.LastByOption(OptEmitObject)
	assert.True(t, ok)
}

func TestForEachModifyingIsIdempotent(t *testing.T) {
	p := NewArgumentParser(NewStandardOptionTable())
	parsed, d := p.Parse([]string{"-o", "rel/out.exe"})
	require.Nil(t, d)

	apply := func() {
		parsed.ForEachModifying(func(e *ParsedOption) {
			if e.Option != nil && e.Option.Attributes.IsPath && e.Argument.Kind == ArgSingle {
				e.Argument.Value = "/work/" + trimRelPrefix(e.Argument.Value)
			}
		})
	}
	apply()
	first, _ := parsed.LastByOption(OptOutput)
	apply()
	second, _ := parsed.LastByOption(OptOutput)
	assert.Equal(t, first.Argument.Value, second.Argument.Value)
}

func trimRelPrefix(v string) string {
	if len(v) >= len("/work/") && v[:len("/work/")] == "/work/" {
		return v[len("/work/"):]
	}
	return v
}
