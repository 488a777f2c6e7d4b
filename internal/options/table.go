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
	"sort"
	"strings"

	"github.com/lattice-lang/latticec/internal/collections"
)

// OptionTable is the static, compile-time-known option schema. Lookup by
// spelling is O(1); longest-prefix matching for partially-joined tokens
// (e.g. "-gline-tables-only" vs "-g") walks the table's spellings sorted by
// decreasing length, the same shape as the driver's real option parser.
type OptionTable struct {
	bySpelling map[string]*Option
	// spellingsByLength is bySpelling's keys sorted longest-first, rebuilt
	// lazily so repeated Add calls stay O(1) amortized.
	spellingsByLength []string
	dirty             bool
}

// NewOptionTable returns an empty table.
func NewOptionTable() *OptionTable {
	return &OptionTable{bySpelling: make(map[string]*Option)}
}

// Add registers an option. Panics on a duplicate spelling: the schema is
// compile-time-known and a collision is always a programmer error, never a
// runtime condition.
func (t *OptionTable) Add(opt Option) *OptionTable {
	if _, exists := t.bySpelling[opt.Spelling]; exists {
		panic("options: duplicate spelling " + opt.Spelling)
	}
	t.bySpelling[opt.Spelling] = &opt
	t.dirty = true
	return t
}

// Lookup returns the option with the exact given spelling, resolving
// aliases to their canonical target.
func (t *OptionTable) Lookup(spelling string) (*Option, bool) {
	opt, ok := t.bySpelling[spelling]
	if !ok {
		return nil, false
	}
	if opt.Kind == KindAlias {
		return t.Lookup(opt.AliasOf)
	}
	return opt, true
}

// MatchPrefix finds the option whose spelling is the longest prefix of
// token, returning the option and the token's remaining suffix (the part
// past the spelling). Used for joined/joined-or-separate matching where a
// token like "-debug-info-format=dwarf" must match the "-debug-info-format="
// option over any shorter prefix.
func (t *OptionTable) MatchPrefix(token string) (opt *Option, suffix string, ok bool) {
	t.ensureSorted()
	for _, spelling := range t.spellingsByLength {
		if strings.HasPrefix(token, spelling) {
			matched := t.bySpelling[spelling]
			resolved := matched
			if resolved.Kind == KindAlias {
				resolved, _ = t.Lookup(resolved.AliasOf)
			}
			return resolved, token[len(spelling):], true
		}
	}
	return nil, "", false
}

func (t *OptionTable) ensureSorted() {
	if !t.dirty {
		return
	}
	spellings := make([]string, 0, len(t.bySpelling))
	for spelling := range t.bySpelling {
		spellings = append(spellings, spelling)
	}
	sort.Slice(spellings, func(i, j int) bool {
		if len(spellings[i]) != len(spellings[j]) {
			return len(spellings[i]) > len(spellings[j])
		}
		return spellings[i] < spellings[j]
	})
	t.spellingsByLength = spellings
	t.dirty = false
}

// InGroup returns every option belonging to the given group, for callers
// (e.g. diagnostics listing valid values) that need the whole group rather
// than a single lookup.
func (t *OptionTable) InGroup(group Group) []*Option {
	var result []*Option
	for _, opt := range t.bySpelling {
		if opt.Group == group && opt.Kind != KindAlias {
			result = append(result, opt)
		}
	}
	return result
}

// Spellings returns every registered spelling, sorted for deterministic
// iteration (help rendering, snapshot tests).
func (t *OptionTable) Spellings() []string {
	return collections.ToSet(spellingsOf(t.bySpelling)).SortedValues(strings.Compare)
}

func spellingsOf(m map[string]*Option) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
