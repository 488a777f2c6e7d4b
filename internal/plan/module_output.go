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
	"github.com/lattice-lang/latticec/internal/diag"
	"github.com/lattice-lang/latticec/internal/options"
)

// DeriveModuleOutputKind implements spec.md §4.2's module-output rules:
// topLevel if explicitly requested, auxiliary if whole-module-optimization
// with non-none debug info implicitly requires one, absent otherwise; then
// forced to absent (with a diagnostic) under repl/immediate.
func DeriveModuleOutputKind(mode CompilerMode, parsed *options.ParsedOptions, debugLevel *DebugInfoLevel, engine *diag.Engine) ModuleOutputKind {
	kind := ModuleOutputNone
	switch {
	case parsed.ContainsAnyOf(options.OptEmitModule, options.OptEmitModulePath):
		kind = ModuleOutputTopLevel
	case mode == ModeSingleCompile && debugLevel != nil && *debugLevel != DebugInfoNone:
		kind = ModuleOutputAuxiliary
	}

	if kind != ModuleOutputNone && (mode == ModeRepl || mode == ModeImmediate) {
		engine.Report(diag.Error(diag.ErrModeCannotEmitModule, "mode %q cannot emit a module", mode))
		return ModuleOutputNone
	}
	return kind
}
