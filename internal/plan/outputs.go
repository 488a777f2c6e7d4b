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

func outType(t OutputType) *OutputType { return &t }

// primaryOutputTable is the explicit per-mode-option table spec.md §6
// refers to ("by the explicit table in §6").
var primaryOutputTable = map[string]struct {
	compiler *OutputType
	linker   *OutputType
}{
	options.OptEmitExecutable: {outType(OutputObject), outType(LinkerExecutable)},
	options.OptEmitLibrary:    {outType(OutputObject), outType(LinkerDynamicLibrary)},
	options.OptEmitObject:     {outType(OutputObject), nil},
	options.OptEmitAssembly:   {outType(OutputAssembly), nil},
	options.OptEmitSIL:        {outType(OutputSIL), nil},
	options.OptEmitSILGen:     {outType(OutputSILGen), nil},
	options.OptEmitSIB:        {outType(OutputSIB), nil},
	options.OptEmitSIBGen:     {outType(OutputSIBGen), nil},
	options.OptEmitIR:         {outType(OutputIR), nil},
	options.OptEmitBC:         {outType(OutputBC), nil},
	// Analysis-only modes produce no primary codegen artifact.
	options.OptEmitPCH:                  {nil, nil},
	options.OptEmitImportedModules:      {nil, nil},
	options.OptIndexFile:                {nil, nil},
	options.OptUpdateCode:               {nil, nil},
	options.OptDumpAST:                  {nil, nil},
	options.OptParse:                    {nil, nil},
	options.OptResolveImports:           {nil, nil},
	options.OptTypecheck:                {nil, nil},
	options.OptDumpParse:                {nil, nil},
	options.OptEmitSyntax:               {nil, nil},
	options.OptPrintAST:                 {nil, nil},
	options.OptDumpTypeRefinement:       {nil, nil},
	options.OptDumpScopeMaps:            {nil, nil},
	options.OptDumpInterfaceHash:        {nil, nil},
	options.OptDumpTypeInfo:             {nil, nil},
	options.OptVerifyDebugInfo:          {nil, nil},
}

// PrimaryOutputs derives (compilerOutputType, linkerOutputType) from the
// "modes" group, applying the -static/-emit-library and -emit-module
// fallback rules and reporting the diagnostics spec.md §4.2 names.
func PrimaryOutputs(driverKind DriverKind, mode CompilerMode, parsed *options.ParsedOptions, engine *diag.Engine) (*OutputType, *OutputType) {
	isStatic := parsed.ContainsAnyOf(options.OptStatic)

	if last, ok := parsed.LastByGroup(options.GroupModes); ok {
		if row, known := primaryOutputTable[last.Spelling]; known {
			compiler, linker := row.compiler, row.linker
			if last.Spelling == options.OptEmitExecutable && isStatic {
				engine.Report(diag.Error(diag.ErrStaticEmitExecutableDisallowed, "-static cannot be combined with -emit-executable"))
			}
			if last.Spelling == options.OptEmitLibrary && isStatic {
				linker = outType(LinkerStaticLibrary)
			}
			return compiler, linker
		}
	}

	if parsed.ContainsAnyOf(options.OptEmitModule, options.OptEmitModulePath) {
		return outType(OutputLatticeModule), nil
	}

	if mode == ModeRepl || mode == ModeImmediate {
		return nil, nil
	}

	return outType(OutputObject), outType(LinkerExecutable)
}
