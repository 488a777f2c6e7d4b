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

package depgraph

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteDotProducesWellFormedGraph(t *testing.T) {
	g := New()
	key := topLevelKey("Widget")
	_, ok := g.Integrate(Summary{Defines: []Define{{Key: key, Fingerprint: "v1"}}}, "def.lattice")
	require.True(t, ok)
	_, ok = g.Integrate(Summary{Uses: []DependencyKey{key}}, "user.lattice")
	require.True(t, ok)

	var buf bytes.Buffer
	require.NoError(t, WriteDot(g, &buf))

	out := buf.String()
	assert.Contains(t, out, "digraph depgraph {")
	assert.Contains(t, out, "n0 [label=")
	assert.Contains(t, out, "}")
}
