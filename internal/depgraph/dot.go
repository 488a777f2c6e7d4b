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
	"io"
)

// WriteDot dumps the graph as Graphviz source: one node per arena entry,
// labeled with its aspect/kind/name and owning input, plus, for each
// use-edge recorded in the by-key index, one edge from every node the
// using input owns to the used key; a using input that owns no node
// contributes no edge. Debug tooling only; never parsed back in.
func WriteDot(g *Graph, w io.Writer) error {
	if _, err := fmt.Fprintln(w, "digraph depgraph {"); err != nil {
		return err
	}

	for h, n := range g.finder.arena {
		label := fmt.Sprintf("%s %s(%s)", n.Key.Aspect, n.Key.Designator.Kind, n.Key.Designator.Name)
		if n.hasOwner() {
			label += fmt.Sprintf("\\nowner=%s", n.OwningInput)
		}
		if _, err := fmt.Fprintf(w, "  n%d [label=%q];\n", h, label); err != nil {
			return err
		}
	}

	for key, users := range g.finder.byKey {
		target := fmt.Sprintf("%s %s(%s)", key.Aspect, key.Designator.Kind, key.Designator.Name)
		for usingInput := range users {
			for _, h := range g.finder.NodesOwnedBy(usingInput) {
				if _, err := fmt.Fprintf(w, "  n%d -> %q;\n", h, target); err != nil {
					return err
				}
			}
		}
	}

	if _, err := fmt.Fprintln(w, "}"); err != nil {
		return err
	}
	return nil
}
