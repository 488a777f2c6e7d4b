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

package driver

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lattice-lang/latticec/internal/depgraph"
)

func writeSummaryFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "a.deps")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLineSummaryCodecDecodesDefinesAndUses(t *testing.T) {
	path := writeSummaryFile(t, "define interface topLevel Widget abc123\nuse implementation nominal Other\n")

	summary, err := LineSummaryCodec{}.Decode(path)
	require.NoError(t, err)

	require.Len(t, summary.Defines, 1)
	assert.Equal(t, depgraph.AspectInterface, summary.Defines[0].Key.Aspect)
	assert.Equal(t, depgraph.DesignatorTopLevel, summary.Defines[0].Key.Designator.Kind)
	assert.Equal(t, "Widget", summary.Defines[0].Key.Designator.Name)
	assert.EqualValues(t, "abc123", summary.Defines[0].Fingerprint)

	require.Len(t, summary.Uses, 1)
	assert.Equal(t, depgraph.AspectImplementation, summary.Uses[0].Aspect)
	assert.Equal(t, "Other", summary.Uses[0].Designator.Name)
}

func TestLineSummaryCodecSkipsBlankLines(t *testing.T) {
	path := writeSummaryFile(t, "\n\ndefine interface topLevel Widget abc123\n\n")

	summary, err := LineSummaryCodec{}.Decode(path)
	require.NoError(t, err)
	assert.Len(t, summary.Defines, 1)
}

func TestLineSummaryCodecRejectsMalformedDefine(t *testing.T) {
	path := writeSummaryFile(t, "define interface topLevel Widget\n")
	_, err := LineSummaryCodec{}.Decode(path)
	assert.Error(t, err)
}

func TestLineSummaryCodecRejectsUnknownDirective(t *testing.T) {
	path := writeSummaryFile(t, "delete interface topLevel Widget\n")
	_, err := LineSummaryCodec{}.Decode(path)
	assert.Error(t, err)
}

func TestLineSummaryCodecEmptyFileIsWellFormed(t *testing.T) {
	path := writeSummaryFile(t, "")
	summary, err := LineSummaryCodec{}.Decode(path)
	require.NoError(t, err)

	_, ok := depgraph.New().Integrate(summary, "a.lat")
	assert.True(t, ok, "an empty summary must not be mistaken for a malformed one")
}

func TestLineSummaryCodecMissingFile(t *testing.T) {
	_, err := LineSummaryCodec{}.Decode(filepath.Join(t.TempDir(), "missing.deps"))
	assert.Error(t, err)
}
