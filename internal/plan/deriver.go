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
	"strconv"

	"github.com/lattice-lang/latticec/internal/diag"
	"github.com/lattice-lang/latticec/internal/options"
)

// PlanDeriver runs the ordered pipeline of pure derivation steps spec.md
// §4.2 describes, consulting a diag.Engine for every diagnostic the steps
// raise. Derivation short-circuits (returns ok=false) only when the driver
// kind itself cannot be determined; every other error is recorded on engine
// and derivation continues so all problems in one invocation are reported
// together, matching spec.md §7's "short-circuits the plan and surface a
// single aggregated failure" (the aggregation happens at the Driver facade,
// which inspects engine.HasErrors() after Derive returns).
type PlanDeriver struct {
	Argv0 string
	CWD   string
}

// Derive runs the full pipeline over parsed, returning the resulting plan
// and whether derivation could proceed far enough to produce one.
func (d PlanDeriver) Derive(parsed *options.ParsedOptions, engine *diag.Engine) (CompilationPlan, bool) {
	driverKind, ok := DeriveDriverKind(d.Argv0, parsed, engine)
	if !ok {
		return CompilationPlan{}, false
	}

	workingDirectory := ResolveWorkingDirectory(parsed, d.CWD)
	if workingDirectory != "" && !filepath.IsAbs(workingDirectory) {
		engine.Report(diag.Error(diag.ErrInvalidArgValue, "-working-directory %q must be absolute when no current directory is known", workingDirectory))
	}
	inputs := CollectInputs(parsed)
	mode := DeriveCompilerMode(driverKind, parsed, inputs)
	compilerOutputType, linkerOutputType := PrimaryOutputs(driverKind, mode, parsed, engine)
	debugLevel, debugFormat := DeriveDebugInfo(parsed, engine)
	moduleOutputKind := DeriveModuleOutputKind(mode, parsed, debugLevel, engine)
	moduleName := DeriveModuleName(mode, linkerOutputType, compilerOutputType, parsed, inputs, engine)

	target := ""
	if entry, ok := parsed.LastByOption(options.OptTarget); ok {
		target = entry.Argument.Value
	}

	numThreads := 0
	if entry, ok := parsed.LastByOption(options.OptNumThreads); ok {
		n, err := strconv.Atoi(entry.Argument.Value)
		if err != nil || n <= 0 {
			engine.Report(diag.Error(diag.ErrInvalidArgValue, "-num-threads requires a positive integer, got %q", entry.Argument.Value))
		} else {
			numThreads = n
		}
	}

	return CompilationPlan{
		DriverKind:         driverKind,
		CompilerMode:       mode,
		Inputs:             inputs,
		CompilerOutputType: compilerOutputType,
		LinkerOutputType:   linkerOutputType,
		DebugInfoLevel:     debugLevel,
		DebugInfoFormat:    debugFormat,
		ModuleOutputKind:   moduleOutputKind,
		ModuleName:         moduleName,
		WorkingDirectory:   workingDirectory,
		Target:             target,
		NumThreads:         numThreads,
	}, true
}
