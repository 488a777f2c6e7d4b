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

// Package extindex defines the serializable mapping from an external
// dependency's name (spec.md §3's DependencyKey `externalDepend(name)`
// designator) to the module that owns it, produced by cmd/lattice-autolink
// and consumed by internal/depgraph's external-dependency resolution.
package extindex

import (
	"cmp"
	"encoding/json"
	"fmt"
	"log"
	"maps"
	"slices"

	"github.com/lattice-lang/latticec/internal/collections"
)

type (
	// ModuleReference names the module that owns an external dependency.
	ModuleReference struct {
		Module string `json:"module"`
	}

	// UniqueIndex maps an external dependency name to exactly one owning
	// module.
	UniqueIndex map[string]ModuleReference

	// AmbiguousTargets is the list of at least 2 modules that all claim to
	// own the same external dependency name.
	AmbiguousTargets []ModuleReference

	// AmbiguousIndex maps an external dependency name to the modules that
	// ambiguously claim to own it.
	AmbiguousIndex map[string]AmbiguousTargets

	// Index is the full resolution result cmd/lattice-autolink writes:
	// every external dependency name this workspace knows about, split
	// into unique and ambiguous resolutions.
	Index struct {
		Unique    UniqueIndex    `json:"unique"`
		Ambiguous AmbiguousIndex `json:"ambiguous"`
	}
)

func compareModuleRefs(a, b ModuleReference) int {
	return cmp.Compare(a.Module, b.Module)
}

// Validate reports an error if targets has fewer than 2 entries or contains
// a duplicate module.
func (targets AmbiguousTargets) Validate() error {
	if len(targets) < 2 {
		return fmt.Errorf("ambiguous targets must contain at least 2 elements, got %d", len(targets))
	}
	if duplicates := collections.FindDuplicates(targets); len(duplicates) > 0 {
		sorted := collections.ToSet(duplicates).SortedValues(compareModuleRefs)
		return fmt.Errorf("duplicate modules in list %v: %v", targets, sorted)
	}
	return nil
}

// Validate checks every entry in idx.
func (idx AmbiguousIndex) Validate() error {
	for _, targets := range idx {
		if err := targets.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks that no external dependency name appears in both the
// unique and ambiguous sections, and that every ambiguous entry is
// well-formed.
func (idx Index) Validate() error {
	names := append(slices.Collect(maps.Keys(idx.Unique)), slices.Collect(maps.Keys(idx.Ambiguous))...)
	if duplicates := collections.FindDuplicates(names); len(duplicates) > 0 {
		sorted := collections.ToSet(duplicates).SortedValues(cmp.Compare[string])
		return fmt.Errorf("external dependency name present in both sections: %v", sorted)
	}
	return idx.Ambiguous.Validate()
}

// Parse decodes and validates an Index previously written by Encode.
func Parse(data []byte) (Index, error) {
	var idx Index
	if err := json.Unmarshal(data, &idx); err != nil {
		return idx, err
	}
	if err := idx.Validate(); err != nil {
		return idx, err
	}
	return idx, nil
}

// Encode serializes idx as indented JSON. Panics only on an internal
// encoding failure, which cannot happen for this struct shape.
func (idx Index) Encode() []byte {
	result, err := json.MarshalIndent(idx, "", "  ")
	if err != nil {
		log.Panicf("failed to encode external dependency index: %v", err)
	}
	return result
}

// Resolve looks up name, reporting whether it resolved to exactly one
// module (ref, true, nil), resolved ambiguously (ModuleReference{}, false,
// error naming the candidates), or was not found at all (ModuleReference{},
// false, nil).
func (idx Index) Resolve(name string) (ModuleReference, bool, error) {
	if ref, ok := idx.Unique[name]; ok {
		return ref, true, nil
	}
	if targets, ok := idx.Ambiguous[name]; ok {
		sorted := collections.ToSet(targets).SortedValues(compareModuleRefs)
		return ModuleReference{}, false, fmt.Errorf("external dependency %q is ambiguous among %v", name, sorted)
	}
	return ModuleReference{}, false, nil
}

// Merge combines all entries of a and b into a new Index, moving any name
// that resolves to more than one distinct module across the two into the
// ambiguous section.
func Merge(a, b Index) Index {
	out := Index{Unique: UniqueIndex{}, Ambiguous: AmbiguousIndex{}}

	var allNames []string
	allNames = append(allNames, slices.Collect(maps.Keys(a.Unique))...)
	allNames = append(allNames, slices.Collect(maps.Keys(a.Ambiguous))...)
	allNames = append(allNames, slices.Collect(maps.Keys(b.Unique))...)
	allNames = append(allNames, slices.Collect(maps.Keys(b.Ambiguous))...)
	names := collections.ToSet(allNames)

	for name := range names {
		var candidates []ModuleReference
		if ref, ok := a.Unique[name]; ok {
			candidates = append(candidates, ref)
		}
		candidates = append(candidates, a.Ambiguous[name]...)
		if ref, ok := b.Unique[name]; ok {
			candidates = append(candidates, ref)
		}
		candidates = append(candidates, b.Ambiguous[name]...)

		unique := collections.ToSet(candidates)
		switch len(unique) {
		case 1:
			out.Unique[name] = candidates[0]
		default:
			out.Ambiguous[name] = unique.SortedValues(compareModuleRefs)
		}
	}
	return out
}
