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

import "github.com/lattice-lang/latticec/internal/collections"

// NodeFinder maintains the two indices spec.md §3 names over an
// arena of nodes: by owning input (DependencyKey → node) and by
// DependencyKey (the set of inputs using that key). Both are kept in
// lock-step: inserting a node always ensures its key has an entry — even
// an empty one — in the by-key index.
type NodeFinder struct {
	arena []Node

	byOwningInput map[InputHandle]map[DependencyKey]NodeHandle
	byKey         map[DependencyKey]collections.Set[InputHandle]
}

// NewNodeFinder returns an empty NodeFinder.
func NewNodeFinder() *NodeFinder {
	return &NodeFinder{
		byOwningInput: map[InputHandle]map[DependencyKey]NodeHandle{},
		byKey:         map[DependencyKey]collections.Set[InputHandle]{},
	}
}

// Node dereferences a handle. Panics on an invalid handle: handles are
// only ever produced by this NodeFinder and never outlive it.
func (f *NodeFinder) Node(h NodeHandle) Node {
	return f.arena[h]
}

// Lookup returns the handle of the node owned by input with the given key,
// if any.
func (f *NodeFinder) Lookup(input InputHandle, key DependencyKey) (NodeHandle, bool) {
	byKey, ok := f.byOwningInput[input]
	if !ok {
		return 0, false
	}
	h, ok := byKey[key]
	return h, ok
}

// NodesOwnedBy returns every node input owns, in no particular order.
func (f *NodeFinder) NodesOwnedBy(input InputHandle) []NodeHandle {
	byKey := f.byOwningInput[input]
	handles := make([]NodeHandle, 0, len(byKey))
	for _, h := range byKey {
		handles = append(handles, h)
	}
	return handles
}

// UsingInputs returns the set of inputs recorded as using key.
func (f *NodeFinder) UsingInputs(key DependencyKey) collections.Set[InputHandle] {
	return f.byKey[key]
}

// ensureKey guarantees key has a (possibly empty) entry in byKey, the
// "every node with an owning input appears in both indices" invariant.
func (f *NodeFinder) ensureKey(key DependencyKey) {
	if _, ok := f.byKey[key]; !ok {
		f.byKey[key] = collections.Set[InputHandle]{}
	}
}

// Insert adds a new node and returns its handle. The caller is responsible
// for checking Lookup first; Insert never deduplicates.
func (f *NodeFinder) Insert(n Node) NodeHandle {
	h := NodeHandle(len(f.arena))
	f.arena = append(f.arena, n)
	if n.hasOwner() {
		if f.byOwningInput[n.OwningInput] == nil {
			f.byOwningInput[n.OwningInput] = map[DependencyKey]NodeHandle{}
		}
		f.byOwningInput[n.OwningInput][n.Key] = h
	}
	f.ensureKey(n.Key)
	return h
}

// Replace overwrites the node stored at h, preserving its handle.
func (f *NodeFinder) Replace(h NodeHandle, n Node) {
	f.arena[h] = n
}

// Remove deletes the node input owns with the given key, if present. The
// by-key entry is left in place (possibly now pointing at no owner) since
// other inputs may still record a use-edge against that key.
func (f *NodeFinder) Remove(input InputHandle, key DependencyKey) {
	byKey, ok := f.byOwningInput[input]
	if !ok {
		return
	}
	delete(byKey, key)
	if len(byKey) == 0 {
		delete(f.byOwningInput, input)
	}
}

// RecordUse adds a use-edge from key to usingInput. Edges are a set:
// re-recording is idempotent.
func (f *NodeFinder) RecordUse(key DependencyKey, usingInput InputHandle) {
	f.ensureKey(key)
	f.byKey[key].Add(usingInput)
}
