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

// Package depgraph is the fine-grained incremental-build dependency engine
// spec.md §4.4 describes: a graph of semantic entities ("nodes") integrated
// from per-input dependency summaries, used to decide which inputs a
// changed input forces back through the compiler.
package depgraph

import "github.com/lattice-lang/latticec/internal/fingerprint"

// Aspect distinguishes whether a DependencyKey names the public interface
// of an entity or its private implementation; a change to the latter never
// forces recompilation of the former's users.
type Aspect string

const (
	AspectInterface      Aspect = "interface"
	AspectImplementation Aspect = "implementation"
)

// DesignatorKind is the closed tag of DependencyKey.Designator. The
// per-language node kinds (topLevel, nominal, member, dynamicLookup, ...)
// are producer-defined and opaque to the graph beyond their string form;
// externalDepend is the one variant the graph itself must recognize.
type DesignatorKind string

const (
	DesignatorTopLevel      DesignatorKind = "topLevel"
	DesignatorNominal       DesignatorKind = "nominal"
	DesignatorMember        DesignatorKind = "member"
	DesignatorDynamicLookup DesignatorKind = "dynamicLookup"
	DesignatorExternalDepend DesignatorKind = "externalDepend"
)

// Designator is the tagged union over per-language dependency node kinds
// plus the externalDepend(name) variant spec.md §3 names.
type Designator struct {
	Kind DesignatorKind
	Name string
}

// ExternalDepend builds the designator for a dependency on an entity
// defined outside the current module.
func ExternalDepend(name string) Designator {
	return Designator{Kind: DesignatorExternalDepend, Name: name}
}

// DependencyKey identifies one semantic entity's interface or
// implementation.
type DependencyKey struct {
	Aspect     Aspect
	Designator Designator
}

// InputHandle references one compilation input, matching
// internal/plan.InputFile.Path.
type InputHandle string

// SummaryHandle references the per-input dependency summary file an input
// is paired with. Kept distinct from InputHandle (rather than reusing it)
// so the sourceInputToSummaryFile bidirectional map spec.md §3 names is a
// real injection to verify, not a tautology.
type SummaryHandle string

// NodeHandle is a stable arena index. Per spec.md §9's design note on
// breaking the Node↔NodeFinder↔Graph ownership cycle, nodes never hold a
// back-pointer to the graph; callers that need to deref a handle go
// through NodeFinder.Node.
type NodeHandle int

// Node is one semantic entity as last observed: its key, its content
// fingerprint (empty for a node with no fingerprint, e.g. a pure usage
// marker), and the input that defines it (absent for a purely external
// interface node).
type Node struct {
	Key         DependencyKey
	Fingerprint fingerprint.Fingerprint
	OwningInput InputHandle
}

func (n Node) hasOwner() bool { return n.OwningInput != "" }

// Define is one entry in a per-input dependency summary's define list.
type Define struct {
	Key         DependencyKey
	Fingerprint fingerprint.Fingerprint
}

// Summary is the external frontend's per-input dependency summary,
// spec.md §4.4's "serialized summary enumerating the (DependencyKey,
// fingerprint) pairs of entities it defines and the DependencyKeys it
// uses".
type Summary struct {
	Defines []Define
	Uses    []DependencyKey
}

// Changes is the result of one successful Integrate call: every node that
// was newly added, whose fingerprint changed, that was removed because the
// summary no longer defines it, or whose external-dependency edges
// appeared.
type Changes struct {
	Nodes []Node
}

// Empty reports whether no node changed.
func (c Changes) Empty() bool { return len(c.Nodes) == 0 }
