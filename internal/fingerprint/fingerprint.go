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

// Package fingerprint computes the content-hash fingerprints spec.md §3
// attaches to DependencyGraph nodes: a Fingerprint changes iff the semantic
// entity it names changed, independent of incidental formatting in the
// external-dependency summary that carried it.
package fingerprint

import (
	"encoding/hex"

	"github.com/minio/highwayhash"
)

// Fingerprint is the hex-encoded HighwayHash-64 digest of a semantic
// entity's serialized form. The zero value never compares equal to a real
// fingerprint (a real digest is always 16 hex characters).
type Fingerprint string

// key is fixed: fingerprints are compared across build invocations, never
// across machines with different keys, so a stable well-known key (not a
// per-process random one) is required for the digest to be reproducible.
var key = []byte("LatticeDependencyGraphHashKeyV1!")

// Of hashes data with HighwayHash-64 and returns the resulting Fingerprint.
// Panics only if the fixed key is malformed, which would be a programming
// error in this package, not a caller mistake.
func Of(data []byte) Fingerprint {
	h, err := highwayhash.New64(key)
	if err != nil {
		panic("fingerprint: invalid key: " + err.Error())
	}
	_, _ = h.Write(data)
	sum := h.Sum(nil)
	return Fingerprint(hex.EncodeToString(sum))
}

// OfStrings hashes the concatenation of parts, each preceded by its length
// as a single NUL-terminated decimal field, so that ("ab","c") and
// ("a","bc") never collide on the same digest.
func OfStrings(parts ...string) Fingerprint {
	var buf []byte
	for _, p := range parts {
		buf = appendLengthPrefixed(buf, p)
	}
	return Of(buf)
}

func appendLengthPrefixed(buf []byte, s string) []byte {
	n := len(s)
	var digits [20]byte
	i := len(digits)
	if n == 0 {
		i--
		digits[i] = '0'
	}
	for n > 0 {
		i--
		digits[i] = byte('0' + n%10)
		n /= 10
	}
	buf = append(buf, digits[i:]...)
	buf = append(buf, 0)
	buf = append(buf, s...)
	return buf
}
