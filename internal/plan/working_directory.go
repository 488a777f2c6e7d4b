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

package plan

import (
	"path/filepath"

	"github.com/lattice-lang/latticec/internal/options"
)

// ResolveWorkingDirectory reads -working-directory (if present), resolving
// it to an absolute path against cwd, and applies it in place to every
// path-valued option and every input in parsed. This is the sole in-place
// transform ParsedOptions permits. It is idempotent: applying it twice
// yields the same result as applying it once, because an already-absolute
// value is left untouched by filepath.Join/IsAbs.
func ResolveWorkingDirectory(parsed *options.ParsedOptions, cwd string) string {
	entry, ok := parsed.LastByOption(options.OptWorkingDirectory)
	if !ok {
		return ""
	}

	workingDir := entry.Argument.Value
	if !filepath.IsAbs(workingDir) {
		if cwd == "" {
			// No CWD available: the value itself must already be absolute.
			// Leave it as given; callers treat a still-relative result as a
			// user-input error.
			return workingDir
		}
		workingDir = filepath.Join(cwd, workingDir)
	}

	resolve := func(value string) string {
		if value == options.StdinSentinel || filepath.IsAbs(value) {
			return value
		}
		return filepath.Join(workingDir, value)
	}

	parsed.ForEachModifying(func(e *options.ParsedOption) {
		if e.IsInput {
			e.Argument.Value = resolve(e.Argument.Value)
			return
		}
		if e.Option == nil || !e.Option.Attributes.IsPath {
			return
		}
		switch e.Argument.Kind {
		case options.ArgSingle:
			e.Argument.Value = resolve(e.Argument.Value)
		case options.ArgMulti:
			for i, v := range e.Argument.Multi {
				e.Argument.Multi[i] = resolve(v)
			}
		}
	})

	return workingDir
}
