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
	"encoding/json"
	"fmt"
	"os"

	"github.com/lattice-lang/latticec/internal/plan"
)

// fileMapDocument is the on-disk shape of a -output-file-map JSON file: a
// map from input path ("" for the whole-module sentinel) to a map from
// output-type string to output path. This external format is not named by
// spec.md beyond "queried, never mutated after load"; encoding/json is used
// because no retrieved library parses this ad hoc per-tool file shape any
// better than the standard decoder does.
type fileMapDocument map[string]map[string]string

// LoadOutputFileMap reads and parses the JSON file at path into a
// plan.OutputFileMap.
func LoadOutputFileMap(path string) (*plan.OutputFileMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("driver: reading output file map %q: %w", path, err)
	}

	var doc fileMapDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("driver: parsing output file map %q: %w", path, err)
	}

	fm := plan.NewOutputFileMap()
	for input, outputs := range doc {
		for typ, output := range outputs {
			fm.Set(input, plan.OutputType(typ), output)
		}
	}
	return fm, nil
}
