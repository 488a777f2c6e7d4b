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

import "github.com/lattice-lang/latticec/internal/options"

// singleCompileOnlyModes are mode options that force CompilerMode to
// singleCompile regardless of whole-module-optimization or input count.
var singleCompileOnlyModes = map[string]bool{
	options.OptEmitPCH:             true,
	options.OptEmitImportedModules: true,
	options.OptIndexFile:           true,
}

var replFamilyModes = map[string]bool{
	options.OptRepl:                 true,
	options.OptDeprecatedIntegrated: true,
	options.OptLLDBRepl:             true,
}

// DeriveCompilerMode implements spec.md §4.2's mode derivation rules.
func DeriveCompilerMode(driverKind DriverKind, parsed *options.ParsedOptions, inputs []InputFile) CompilerMode {
	if last, ok := parsed.LastByGroup(options.GroupModes); ok {
		if singleCompileOnlyModes[last.Spelling] {
			return ModeSingleCompile
		}
		if replFamilyModes[last.Spelling] {
			return ModeRepl
		}
	}

	if driverKind == DriverInteractive {
		if len(inputs) == 0 {
			return ModeRepl
		}
		return ModeImmediate
	}

	if parsed.ContainsAnyOf(options.OptWholeModuleOptimization) {
		return ModeSingleCompile
	}
	if parsed.ContainsAnyOf(options.OptEnableBatchMode, options.OptNumThreads) {
		return ModeBatchCompile
	}

	return ModeStandardCompile
}
