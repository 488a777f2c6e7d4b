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

// Package options defines the compile-time option schema (OptionTable) and
// the argv parser (ArgumentParser) that turns an argv tail into an ordered,
// queryable ParsedOptions stream. Nothing here derives a build plan; that is
// internal/plan's job.
package options

import "fmt"

// Kind is how an Option consumes argv tokens once matched.
type Kind int

const (
	// KindFlag takes no argument.
	KindFlag Kind = iota
	// KindSeparate consumes the next argv token as its value.
	KindSeparate
	// KindJoined takes the remainder of the matched token as its value
	// (e.g. "-debug-info-format=dwarf").
	KindJoined
	// KindJoinedOrSeparate prefers a joined suffix, falling back to the next
	// token when the matched token carries no suffix.
	KindJoinedOrSeparate
	// KindInput marks the input pseudo-option; never matched by spelling.
	KindInput
	// KindRemainingArgs consumes every remaining argv token as a multi-value
	// argument (e.g. "-Xcc" passthrough groups).
	KindRemainingArgs
	// KindAlias resolves to a canonical option before consumption rules run.
	KindAlias
)

// Group names a related set of options where "last one wins" semantics
// apply (the "modes" group, the "g" debug-level group, etc).
type Group string

const (
	GroupNone         Group = ""
	GroupModes        Group = "modes"
	GroupDebugLevel   Group = "g"
	GroupOptimization Group = "O"
)

// Attributes is the boolean tag set spec.md §3 calls "attribute set": a
// small number of independent flags rather than a closed enum, because an
// option can carry any combination of them.
type Attributes struct {
	// IsPath marks an option whose argument is a filesystem path; the
	// working-directory pass rewrites these to absolute paths.
	IsPath bool
	// AffectsIncrementalBuild marks an option whose mere presence changes
	// whether a prior build record may be trusted (see BuildRecordStore's
	// options hash).
	AffectsIncrementalBuild bool
	// IsInputPseudoOption marks the synthetic "input file" entry used by
	// ParsedOptions.AllInputs; never set on a real spelled option.
	IsInputPseudoOption bool
	// ExcludedDriverKinds lists driver kinds for which this option is not
	// recognized, even though it appears in the shared table.
	ExcludedDriverKinds []string
}

// Option is one entry in the schema: a canonical spelling plus its kind,
// group, attributes, and (for aliases) canonical target.
type Option struct {
	Spelling   string
	Kind       Kind
	Group      Group
	Attributes Attributes
	// AliasOf is the canonical spelling this option resolves to. Only
	// meaningful when Kind == KindAlias.
	AliasOf string
}

func (o Option) String() string {
	return fmt.Sprintf("Option(%s)", o.Spelling)
}

// ExcludedFor reports whether this option is not recognized under the given
// driver kind name.
func (o Option) ExcludedFor(driverKind string) bool {
	for _, excluded := range o.Attributes.ExcludedDriverKinds {
		if excluded == driverKind {
			return true
		}
	}
	return false
}
