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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lattice-lang/latticec/internal/collections"
	"github.com/lattice-lang/latticec/internal/diag"
	"github.com/lattice-lang/latticec/internal/plan"
)

func TestBindSummaryRejectsConflictingRebinding(t *testing.T) {
	g := New()
	require.NoError(t, g.BindSummary("a.lattice", "a.deps"))
	assert.NoError(t, g.BindSummary("a.lattice", "a.deps"))
	assert.Error(t, g.BindSummary("a.lattice", "other.deps"))
	assert.Error(t, g.BindSummary("other.lattice", "a.deps"))
}

func TestIntegrateAddsDefines(t *testing.T) {
	g := New()
	key := topLevelKey("Widget")
	changes, ok := g.Integrate(Summary{Defines: []Define{{Key: key, Fingerprint: "v1"}}}, "a.lattice")

	require.True(t, ok)
	require.Len(t, changes.Nodes, 1)
	assert.Equal(t, key, changes.Nodes[0].Key)

	h, found := g.finder.Lookup("a.lattice", key)
	require.True(t, found)
	assert.EqualValues(t, "v1", g.finder.Node(h).Fingerprint)
}

func TestIntegrateRejectsMalformedSummary(t *testing.T) {
	g := New()
	_, ok := g.Integrate(Summary{}, "a.lattice")
	assert.False(t, ok)
}

func TestIntegrateIsIdempotentOnUnchangedSummary(t *testing.T) {
	g := New()
	key := topLevelKey("Widget")
	summary := Summary{Defines: []Define{{Key: key, Fingerprint: "v1"}}}

	_, ok := g.Integrate(summary, "a.lattice")
	require.True(t, ok)

	changes, ok := g.Integrate(summary, "a.lattice")
	require.True(t, ok)
	assert.True(t, changes.Empty())
}

func TestIntegrateReportsChangedFingerprint(t *testing.T) {
	g := New()
	key := topLevelKey("Widget")
	_, ok := g.Integrate(Summary{Defines: []Define{{Key: key, Fingerprint: "v1"}}}, "a.lattice")
	require.True(t, ok)

	changes, ok := g.Integrate(Summary{Defines: []Define{{Key: key, Fingerprint: "v2"}}}, "a.lattice")
	require.True(t, ok)
	require.Len(t, changes.Nodes, 1)
	assert.EqualValues(t, "v2", changes.Nodes[0].Fingerprint)
}

func TestIntegrateRemovesDroppedDefines(t *testing.T) {
	g := New()
	keyA := topLevelKey("A")
	keyB := topLevelKey("B")
	_, ok := g.Integrate(Summary{Defines: []Define{{Key: keyA, Fingerprint: "v1"}, {Key: keyB, Fingerprint: "v1"}}}, "a.lattice")
	require.True(t, ok)

	changes, ok := g.Integrate(Summary{Defines: []Define{{Key: keyA, Fingerprint: "v1"}}}, "a.lattice")
	require.True(t, ok)
	require.Len(t, changes.Nodes, 1)
	assert.Equal(t, keyB, changes.Nodes[0].Key)

	_, found := g.finder.Lookup("a.lattice", keyB)
	assert.False(t, found)
}

func TestIntegrateRecordsUseEdges(t *testing.T) {
	g := New()
	key := topLevelKey("Widget")
	_, ok := g.Integrate(Summary{Uses: []DependencyKey{key}}, "user.lattice")
	require.True(t, ok)

	assert.True(t, g.finder.UsingInputs(key).Contains(InputHandle("user.lattice")))
}

func TestIntegrateTracksNewExternalDependency(t *testing.T) {
	g := New()
	key := DependencyKey{Aspect: AspectInterface, Designator: ExternalDepend("OtherModule.Widget")}
	changes, ok := g.Integrate(Summary{Uses: []DependencyKey{key}}, "user.lattice")

	require.True(t, ok)
	require.Len(t, changes.Nodes, 1)
	assert.True(t, g.externalDependencies.Contains(key))

	changes, ok = g.Integrate(Summary{Uses: []DependencyKey{key}}, "user2.lattice")
	require.True(t, ok)
	assert.True(t, changes.Empty(), "re-observing the same external dependency reports no new change")
}

func newFileMapWithDependencies(inputs ...string) *plan.OutputFileMap {
	fm := plan.NewOutputFileMap()
	for _, in := range inputs {
		fm.Set(in, plan.OutputDependencies, in+".deps")
	}
	return fm
}

func TestBuildInitialFailsWhenAnInputLacksDependenciesOutput(t *testing.T) {
	g := New()
	fm := plan.NewOutputFileMap()
	engine := diag.NewEngine()

	_, ok := g.BuildInitial([]InputHandle{"a.lattice"}, collections.Set[InputHandle]{}, fm, nil, engine)

	assert.False(t, ok)
	require.NotEmpty(t, engine.All())
	assert.Equal(t, diag.KindRemark, engine.All()[0].Kind)
}

func TestBuildInitialBindsEveryInput(t *testing.T) {
	g := New()
	fm := newFileMapWithDependencies("a.lattice", "b.lattice")
	engine := diag.NewEngine()

	malformed, ok := g.BuildInitial([]InputHandle{"a.lattice", "b.lattice"}, collections.Set[InputHandle]{}, fm, nil, engine)

	require.True(t, ok)
	assert.Empty(t, malformed)
	assert.Empty(t, engine.All())
	assert.Equal(t, SummaryHandle("a.lattice.deps"), g.sourceInputToSummary["a.lattice"])
}

func TestBuildInitialIntegratesPreviousInputs(t *testing.T) {
	g := New()
	fm := newFileMapWithDependencies("a.lattice")
	engine := diag.NewEngine()
	key := topLevelKey("Widget")

	loaded := false
	load := func(in InputHandle) (Summary, error) {
		loaded = true
		assert.Equal(t, InputHandle("a.lattice"), in)
		return Summary{Defines: []Define{{Key: key, Fingerprint: "v1"}}}, nil
	}

	malformed, ok := g.BuildInitial([]InputHandle{"a.lattice"}, collections.SetOf[InputHandle]("a.lattice"), fm, load, engine)

	require.True(t, ok)
	assert.True(t, loaded)
	assert.Empty(t, malformed)
	_, found := g.finder.Lookup("a.lattice", key)
	assert.True(t, found)
}

func TestBuildInitialCollectsMalformedPreviousSummaries(t *testing.T) {
	g := New()
	fm := newFileMapWithDependencies("a.lattice")
	engine := diag.NewEngine()

	load := func(in InputHandle) (Summary, error) { return Summary{}, errors.New("boom") }

	malformed, ok := g.BuildInitial([]InputHandle{"a.lattice"}, collections.SetOf[InputHandle]("a.lattice"), fm, load, engine)

	require.True(t, ok)
	assert.Equal(t, []InputHandle{"a.lattice"}, malformed)
}

func TestFindDependentSourceFilesTracesOneHop(t *testing.T) {
	g := New()
	key := topLevelKey("Widget")
	_, ok := g.Integrate(Summary{Defines: []Define{{Key: key, Fingerprint: "v1"}}}, "def.lattice")
	require.True(t, ok)
	_, ok = g.Integrate(Summary{Uses: []DependencyKey{key}}, "user.lattice")
	require.True(t, ok)
	require.NoError(t, g.BindSummary("def.lattice", "def.deps"))

	deps := g.FindDependentSourceFiles("def.lattice")
	assert.ElementsMatch(t, []InputHandle{"def.lattice", "user.lattice"}, deps)
}

func TestFindDependentSourceFilesTransitiveChain(t *testing.T) {
	g := New()
	keyA := topLevelKey("A")
	keyB := topLevelKey("B")

	_, ok := g.Integrate(Summary{Defines: []Define{{Key: keyA, Fingerprint: "v1"}}}, "a.lattice")
	require.True(t, ok)
	_, ok = g.Integrate(Summary{Defines: []Define{{Key: keyB, Fingerprint: "v1"}}, Uses: []DependencyKey{keyA}}, "b.lattice")
	require.True(t, ok)
	_, ok = g.Integrate(Summary{Uses: []DependencyKey{keyB}}, "c.lattice")
	require.True(t, ok)
	require.NoError(t, g.BindSummary("a.lattice", "a.deps"))

	deps := g.FindDependentSourceFiles("a.lattice")
	assert.ElementsMatch(t, []InputHandle{"a.lattice", "b.lattice", "c.lattice"}, deps)
}

func TestFindDependentSourceFilesUnboundInputReturnsNil(t *testing.T) {
	g := New()
	assert.Nil(t, g.FindDependentSourceFiles("nope.lattice"))
}

func TestTraceIsMonotonicWithinAWave(t *testing.T) {
	g := New()
	key := topLevelKey("Widget")
	_, ok := g.Integrate(Summary{Defines: []Define{{Key: key, Fingerprint: "v1"}}}, "def.lattice")
	require.True(t, ok)
	require.NoError(t, g.BindSummary("def.lattice", "def.deps"))

	first := g.FindDependentSourceFiles("def.lattice")
	assert.Contains(t, first, InputHandle("def.lattice"))

	second := g.FindDependentSourceFiles("def.lattice")
	assert.Empty(t, second, "already-traced nodes are skipped within the same wave")
}

func TestClearTracedForChangedAllowsRetrace(t *testing.T) {
	g := New()
	key := topLevelKey("Widget")
	_, ok := g.Integrate(Summary{Defines: []Define{{Key: key, Fingerprint: "v1"}}}, "def.lattice")
	require.True(t, ok)
	require.NoError(t, g.BindSummary("def.lattice", "def.deps"))

	node := g.finder.Node(0)
	_ = g.FindDependentSourceFiles("def.lattice")
	g.ClearTracedForChanged([]Node{node})

	second := g.FindDependentSourceFiles("def.lattice")
	assert.Contains(t, second, InputHandle("def.lattice"))
}

func TestFindSourceFilesToRecompileWhenNodesChangeIsReflexive(t *testing.T) {
	g := New()
	key := topLevelKey("Widget")
	_, ok := g.Integrate(Summary{Defines: []Define{{Key: key, Fingerprint: "v1"}}}, "def.lattice")
	require.True(t, ok)

	changed := []Node{g.finder.Node(0)}
	result := g.FindSourceFilesToRecompileWhenNodesChange(changed)
	assert.Contains(t, result, InputHandle("def.lattice"))
}

func TestTraceExternalDependencyInvokesCallbackForUntracedUsers(t *testing.T) {
	g := New()
	key := DependencyKey{Aspect: AspectInterface, Designator: ExternalDepend("Other.Widget")}
	_, ok := g.Integrate(Summary{Uses: []DependencyKey{key}}, "user.lattice")
	require.True(t, ok)

	var seen []InputHandle
	g.TraceExternalDependency(key, func(in InputHandle) { seen = append(seen, in) })
	assert.Equal(t, []InputHandle{"user.lattice"}, seen)
}

func TestTraceExternalDependencySkipsAlreadyTracedUsers(t *testing.T) {
	g := New()
	key := DependencyKey{Aspect: AspectInterface, Designator: ExternalDepend("Other.Widget")}
	_, ok := g.Integrate(Summary{Defines: []Define{{Key: topLevelKey("Local"), Fingerprint: "v1"}}, Uses: []DependencyKey{key}}, "user.lattice")
	require.True(t, ok)
	require.NoError(t, g.BindSummary("user.lattice", "user.deps"))

	g.FindDependentSourceFiles("user.lattice")

	var seen []InputHandle
	g.TraceExternalDependency(key, func(in InputHandle) { seen = append(seen, in) })
	assert.Empty(t, seen)
}

func TestVerifyInvariantsPassesOnWellFormedGraph(t *testing.T) {
	g := New()
	_, ok := g.Integrate(Summary{Defines: []Define{{Key: topLevelKey("Widget"), Fingerprint: "v1"}}}, "a.lattice")
	require.True(t, ok)
	require.NoError(t, g.BindSummary("a.lattice", "a.deps"))

	assert.NoError(t, g.VerifyInvariants())
}

func TestVerifyInvariantsCatchesBrokenSummaryInjection(t *testing.T) {
	g := New()
	g.sourceInputToSummary["a.lattice"] = "a.deps"
	assert.Error(t, g.VerifyInvariants())
}
