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
	"fmt"
	"io"

	"github.com/lattice-lang/latticec/internal/options"
)

// HelpRenderer is the human-facing help-rendering collaborator spec.md §1
// names as out of scope for the core.
type HelpRenderer interface {
	Render(w io.Writer, table *options.OptionTable, hidden bool)
}

// PlainTextHelpRenderer lists every recognized spelling, one per line,
// sorted. It carries no knowledge of per-option descriptions: spec.md
// treats help text itself as a non-goal, so this collaborator exists only
// to give cmd/latticec something real to call for -help/-help-hidden.
type PlainTextHelpRenderer struct{}

// Render implements HelpRenderer. With hidden set, each spelling is
// annotated with its kind and group, the extra detail -help-hidden
// requests over plain -help.
func (PlainTextHelpRenderer) Render(w io.Writer, table *options.OptionTable, hidden bool) {
	fmt.Fprintln(w, "Usage: latticec [options] <inputs>")
	for _, s := range table.Spellings() {
		if !hidden {
			fmt.Fprintf(w, "  %s\n", s)
			continue
		}
		opt, _ := table.Lookup(s)
		fmt.Fprintf(w, "  %s (kind=%d group=%q)\n", s, opt.Kind, opt.Group)
	}
}
