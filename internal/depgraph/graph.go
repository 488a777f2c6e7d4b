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
	"fmt"

	"github.com/lattice-lang/latticec/internal/collections"
	"github.com/lattice-lang/latticec/internal/diag"
	"github.com/lattice-lang/latticec/internal/plan"
)

// Graph is the in-memory fine-grained dependency graph for one driver run.
type Graph struct {
	finder *NodeFinder

	externalDependencies collections.Set[DependencyKey]
	tracedNodes          collections.Set[NodeHandle]

	sourceInputToSummary map[InputHandle]SummaryHandle
	summaryToSourceInput map[SummaryHandle]InputHandle
}

// New returns an empty Graph.
func New() *Graph {
	return &Graph{
		finder:               NewNodeFinder(),
		externalDependencies: collections.Set[DependencyKey]{},
		tracedNodes:          collections.Set[NodeHandle]{},
		sourceInputToSummary: map[InputHandle]SummaryHandle{},
		summaryToSourceInput: map[SummaryHandle]InputHandle{},
	}
}

// BindSummary records the (input, summaryFile) pairing, enforcing
// spec.md §3's "sourceInputToSummaryFile bidirectional map is an
// injection both ways": rebinding either side to a value already bound to
// something else is rejected.
func (g *Graph) BindSummary(input InputHandle, summary SummaryHandle) error {
	if existing, ok := g.sourceInputToSummary[input]; ok && existing != summary {
		return fmt.Errorf("depgraph: input %q already bound to summary %q", input, existing)
	}
	if existing, ok := g.summaryToSourceInput[summary]; ok && existing != input {
		return fmt.Errorf("depgraph: summary %q already bound to input %q", summary, existing)
	}
	g.sourceInputToSummary[input] = summary
	g.summaryToSourceInput[summary] = input
	return nil
}

// Integrate implements spec.md §4.4's Integrator.integrate: folds summary
// (produced for input) into the graph, returning the set of nodes whose
// fingerprint changed, were newly added, were removed because the summary
// no longer defines them, or gained an external-dependency edge. ok is false on a malformed summary (recognized here as nil
// Defines and nil Uses both absent, signaling the frontend could not
// produce one); a malformed summary leaves the graph untouched.
func (g *Graph) Integrate(summary Summary, input InputHandle) (Changes, bool) {
	if summary.Defines == nil && summary.Uses == nil {
		return Changes{}, false
	}

	var changes Changes
	seenKeys := collections.Set[DependencyKey]{}

	for _, def := range summary.Defines {
		seenKeys.Add(def.Key)
		if h, ok := g.finder.Lookup(input, def.Key); ok {
			existing := g.finder.Node(h)
			if existing.Fingerprint != def.Fingerprint {
				existing.Fingerprint = def.Fingerprint
				g.finder.Replace(h, existing)
				changes.Nodes = append(changes.Nodes, existing)
			}
			continue
		}
		node := Node{Key: def.Key, Fingerprint: def.Fingerprint, OwningInput: input}
		g.finder.Insert(node)
		changes.Nodes = append(changes.Nodes, node)
	}

	for _, h := range g.finder.NodesOwnedBy(input) {
		n := g.finder.Node(h)
		if !seenKeys.Contains(n.Key) {
			g.finder.Remove(input, n.Key)
			changes.Nodes = append(changes.Nodes, n)
		}
	}

	for _, used := range summary.Uses {
		g.finder.RecordUse(used, input)
		if used.Designator.Kind == DesignatorExternalDepend {
			if !g.externalDependencies.Contains(used) {
				g.externalDependencies.Add(used)
				changes.Nodes = append(changes.Nodes, Node{Key: used})
			}
		}
	}

	return changes, true
}

// BuildInitial implements spec.md §4.4's initial graph build: every input
// lacking a dependencies-typed output fails the whole build (remark
// emitted, ok=false). Inputs present in previousInputs have their existing
// summary integrated; malformed ones are collected (not aborted on) so the
// driver can force-recompile them. Inputs not in previousInputs are left
// unintegrated — there is no prior summary to consume.
func (g *Graph) BuildInitial(
	inputs []InputHandle,
	previousInputs collections.Set[InputHandle],
	fileMap *plan.OutputFileMap,
	loadSummary func(InputHandle) (Summary, error),
	engine *diag.Engine,
) (malformed []InputHandle, ok bool) {
	for _, in := range inputs {
		path, found := fileMap.Lookup(string(in), plan.OutputDependencies)
		if !found {
			engine.Report(diag.Remark(diag.DefectUnhandledModeOption,
				"input %q has no dependency-summary output location; cannot build initial graph", in))
			return nil, false
		}
		if err := g.BindSummary(in, SummaryHandle(path)); err != nil {
			engine.Report(diag.Defect(diag.DefectGraphInvariantViolation, "%v", err))
			return nil, false
		}
	}

	for _, in := range inputs {
		if !previousInputs.Contains(in) {
			continue
		}
		summary, err := loadSummary(in)
		if err != nil {
			malformed = append(malformed, in)
			continue
		}
		if _, ok := g.Integrate(summary, in); !ok {
			malformed = append(malformed, in)
		}
	}

	return malformed, true
}

// trace is the shared traversal behind FindDependentSourceFiles and
// FindSourceFilesToRecompileWhenNodesChange: a previously-untraced,
// reflexive-transitive walk over use-edges. Each visited node with an
// owning input contributes that input to the result, and so does every
// input recorded as using it — even one that defines nothing of its own,
// so a pure consumer still lands back in the recompile set. Visited nodes
// are added to the traced set so later calls within the same wave skip
// them.
func (g *Graph) trace(seeds []Node) []InputHandle {
	queue := append([]Node(nil), seeds...)
	result := collections.Set[InputHandle]{}

	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]

		h, ok := g.handleOf(n)
		if ok {
			if g.tracedNodes.Contains(h) {
				continue
			}
			g.tracedNodes.Add(h)
		}

		if n.hasOwner() {
			result.Add(n.OwningInput)
		}

		for usingInput := range g.finder.UsingInputs(n.Key) {
			result.Add(usingInput)
			for _, nh := range g.finder.NodesOwnedBy(usingInput) {
				queue = append(queue, g.finder.Node(nh))
			}
		}
	}

	return result.Values()
}

// handleOf recovers the arena handle of a node with an owner, so the
// traced-set can be keyed by handle instead of by value.
func (g *Graph) handleOf(n Node) (NodeHandle, bool) {
	if !n.hasOwner() {
		return 0, false
	}
	return g.finder.Lookup(n.OwningInput, n.Key)
}

// FindDependentSourceFiles implements spec.md §4.4's first-wave selection
// step for one changed input: traces from every node input's bound
// summary owns.
func (g *Graph) FindDependentSourceFiles(input InputHandle) []InputHandle {
	if _, ok := g.sourceInputToSummary[input]; !ok {
		return nil
	}
	var seeds []Node
	for _, h := range g.finder.NodesOwnedBy(input) {
		seeds = append(seeds, g.finder.Node(h))
	}
	return g.trace(seeds)
}

// FindSourceFilesToRecompileWhenNodesChange implements spec.md §4.4's
// second-wave selection: traces from exactly the given changed nodes.
func (g *Graph) FindSourceFilesToRecompileWhenNodesChange(changed []Node) []InputHandle {
	return g.trace(changed)
}

// ClearTracedForChanged implements the wave-boundary rule: nodes known to
// have changed are removed from the traced set so their uses are
// re-examined in the next wave.
func (g *Graph) ClearTracedForChanged(changed []Node) {
	for _, n := range changed {
		if h, ok := g.handleOf(n); ok {
			delete(g.tracedNodes, h)
		}
	}
}

// TraceExternalDependency implements spec.md §4.4's external-dependency
// traversal: for each input using the interface aspect of key, invoke
// callback with that input, but only if none of the input's own nodes has
// already been traced this wave.
func (g *Graph) TraceExternalDependency(key DependencyKey, callback func(InputHandle)) {
	interfaceKey := DependencyKey{Aspect: AspectInterface, Designator: key.Designator}
	for usingInput := range g.finder.UsingInputs(interfaceKey) {
		untraced := true
		for _, nh := range g.finder.NodesOwnedBy(usingInput) {
			if g.tracedNodes.Contains(nh) {
				untraced = false
				break
			}
		}
		if untraced {
			callback(usingInput)
		}
	}
}

// VerifyInvariants implements spec.md §4.4's opt-in verification: walks
// both indices and asserts the invariants named in §3. Returns the first
// violation found, or nil.
func (g *Graph) VerifyInvariants() error {
	for input, byKey := range g.finder.byOwningInput {
		for key, h := range byKey {
			n := g.finder.Node(h)
			if n.OwningInput != input || n.Key != key {
				return fmt.Errorf("depgraph: node %v stored under (%v, %v) but identifies as (%v, %v)", h, input, key, n.OwningInput, n.Key)
			}
			if _, ok := g.finder.byKey[key]; !ok {
				return fmt.Errorf("depgraph: node %v's key %v missing from by-key index", h, key)
			}
		}
	}

	for input, summary := range g.sourceInputToSummary {
		back, ok := g.summaryToSourceInput[summary]
		if !ok || back != input {
			return fmt.Errorf("depgraph: sourceInputToSummaryFile is not an injection at input %q", input)
		}
	}
	for summary, input := range g.summaryToSourceInput {
		back, ok := g.sourceInputToSummary[input]
		if !ok || back != summary {
			return fmt.Errorf("depgraph: sourceInputToSummaryFile is not an injection at summary %q", summary)
		}
	}

	return nil
}
