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

// Argument is one of: none, a single string, or multiple strings. Only one
// of the fields is meaningful; Kind says which.
type Argument struct {
	Kind  ArgumentKind
	Value string
	Multi []string
}

type ArgumentKind int

const (
	ArgNone ArgumentKind = iota
	ArgSingle
	ArgMulti
)

func NoArgument() Argument           { return Argument{Kind: ArgNone} }
func SingleArgument(v string) Argument { return Argument{Kind: ArgSingle, Value: v} }
func MultiArgument(vs []string) Argument {
	return Argument{Kind: ArgMulti, Multi: vs}
}

// ParsedOption is a single entry in the ParsedOptions log: either a matched
// option (identified by its canonical spelling) or an input-file marker.
type ParsedOption struct {
	// Spelling is the canonical option spelling, or "" for an input marker.
	Spelling string
	IsInput  bool
	Argument Argument
	// Option is the schema entry this was matched against; nil for inputs.
	Option *Option
}

// ParsedOptions is the ordered, append-only log the parser produces.
// Consuming an entry never removes it; the only in-place transform allowed
// is ForEachModifying, used exclusively for the working-directory rewrite.
type ParsedOptions struct {
	entries []ParsedOption
}

func NewParsedOptions() *ParsedOptions {
	return &ParsedOptions{}
}

// Append records a new entry, preserving order and multiplicity.
func (p *ParsedOptions) Append(entry ParsedOption) {
	p.entries = append(p.entries, entry)
}

// All returns every entry in order of appearance.
func (p *ParsedOptions) All() []ParsedOption {
	return p.entries
}

// LastByGroup returns the last-appearing entry whose option belongs to
// group, used by mode/debug-level derivation's "last option wins" rule.
func (p *ParsedOptions) LastByGroup(group Group) (ParsedOption, bool) {
	for i := len(p.entries) - 1; i >= 0; i-- {
		e := p.entries[i]
		if e.Option != nil && e.Option.Group == group {
			return e, true
		}
	}
	return ParsedOption{}, false
}

// LastByOption returns the last-appearing entry matching the given
// canonical spelling.
func (p *ParsedOptions) LastByOption(spelling string) (ParsedOption, bool) {
	for i := len(p.entries) - 1; i >= 0; i-- {
		e := p.entries[i]
		if e.Spelling == spelling {
			return e, true
		}
	}
	return ParsedOption{}, false
}

// ContainsAnyOf reports whether any of the given spellings were parsed.
func (p *ParsedOptions) ContainsAnyOf(spellings ...string) bool {
	for _, e := range p.entries {
		for _, s := range spellings {
			if e.Spelling == s {
				return true
			}
		}
	}
	return false
}

// ForEachModifying applies fn to every entry in place. This is the sole
// mutation path ParsedOptions exposes; the driver uses it exactly once, to
// rewrite path-valued arguments against a resolved working directory.
func (p *ParsedOptions) ForEachModifying(fn func(*ParsedOption)) {
	for i := range p.entries {
		fn(&p.entries[i])
	}
}

// AllInputs returns every input-marker entry's argument value, in source
// order.
func (p *ParsedOptions) AllInputs() []string {
	var inputs []string
	for _, e := range p.entries {
		if e.IsInput {
			inputs = append(inputs, e.Argument.Value)
		}
	}
	return inputs
}
