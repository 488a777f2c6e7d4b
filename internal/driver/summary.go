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
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/lattice-lang/latticec/internal/depgraph"
	"github.com/lattice-lang/latticec/internal/fingerprint"
)

// SummaryCodec decodes the per-input dependency summary spec.md §6 treats
// as "an external, opaque blob produced by the frontend", returning
// defines/uses or reporting the summary as malformed.
type SummaryCodec interface {
	Decode(path string) (depgraph.Summary, error)
}

// LineSummaryCodec decodes a per-input summary from simple line-oriented
// text, one declaration per line:
//
//	define <aspect> <kind> <name> <fingerprint>
//	use <aspect> <kind> <name>
//
// This line format is the core's own choice for the opaque blob spec.md
// defers naming; it is never produced by the core itself, only consumed.
type LineSummaryCodec struct{}

// Decode implements SummaryCodec.
func (LineSummaryCodec) Decode(path string) (depgraph.Summary, error) {
	f, err := os.Open(path)
	if err != nil {
		return depgraph.Summary{}, fmt.Errorf("driver: opening summary %q: %w", path, err)
	}
	defer f.Close()

	var summary depgraph.Summary
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "define":
			if len(fields) != 5 {
				return depgraph.Summary{}, fmt.Errorf("driver: summary %q line %d: malformed define", path, lineNo)
			}
			key := depgraph.DependencyKey{
				Aspect:     depgraph.Aspect(fields[1]),
				Designator: depgraph.Designator{Kind: depgraph.DesignatorKind(fields[2]), Name: fields[3]},
			}
			summary.Defines = append(summary.Defines, depgraph.Define{Key: key, Fingerprint: fingerprint.Fingerprint(fields[4])})
		case "use":
			if len(fields) != 4 {
				return depgraph.Summary{}, fmt.Errorf("driver: summary %q line %d: malformed use", path, lineNo)
			}
			key := depgraph.DependencyKey{
				Aspect:     depgraph.Aspect(fields[1]),
				Designator: depgraph.Designator{Kind: depgraph.DesignatorKind(fields[2]), Name: fields[3]},
			}
			summary.Uses = append(summary.Uses, key)
		default:
			return depgraph.Summary{}, fmt.Errorf("driver: summary %q line %d: unknown directive %q", path, lineNo, fields[0])
		}
	}
	if err := scanner.Err(); err != nil {
		return depgraph.Summary{}, err
	}

	if summary.Defines == nil && summary.Uses == nil {
		summary.Defines = []depgraph.Define{}
	}
	return summary, nil
}
