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

package options

// Canonical spellings recognized by the latticec driver, per spec.md §6.
const (
	OptWorkingDirectory = "-working-directory"
	OptOutput           = "-o"
	OptModuleName       = "-module-name"
	OptTarget           = "-target"
	OptOutputFileMap    = "-output-file-map"

	// OptEmitDependencyGraphDot is a debug-only escape hatch: when present,
	// the driver dumps the incremental dependency graph built during this
	// invocation as Graphviz dot to the given path. It never affects which
	// inputs get recompiled.
	OptEmitDependencyGraphDot = "-emit-dependency-graph-dot"

	OptEmitExecutable      = "-emit-executable"
	OptEmitLibrary         = "-emit-library"
	OptEmitObject          = "-emit-object"
	OptEmitAssembly        = "-emit-assembly"
	OptEmitSIL             = "-emit-sil"
	OptEmitSILGen          = "-emit-silgen"
	OptEmitSIB             = "-emit-sib"
	OptEmitSIBGen          = "-emit-sibgen"
	OptEmitIR              = "-emit-ir"
	OptEmitBC              = "-emit-bc"
	OptEmitPCH             = "-emit-pch"
	OptEmitImportedModules = "-emit-imported-modules"
	OptIndexFile           = "-index-file"
	OptUpdateCode          = "-update-code"
	OptDumpAST             = "-dump-ast"
	OptParse               = "-parse"
	OptResolveImports      = "-resolve-imports"
	OptTypecheck           = "-typecheck"
	OptDumpParse           = "-dump-parse"
	OptEmitSyntax          = "-emit-syntax"
	OptPrintAST            = "-print-ast"
	OptDumpTypeRefinement  = "-dump-type-refinement-contexts"
	OptDumpScopeMaps       = "-dump-scope-maps"
	OptDumpInterfaceHash   = "-dump-interface-hash"
	OptDumpTypeInfo        = "-dump-type-info"
	OptVerifyDebugInfo     = "-verify-debug-info"

	OptStatic                  = "-static"
	OptEmitModule              = "-emit-module"
	OptEmitModulePath          = "-emit-module-path"
	OptWholeModuleOptimization = "-whole-module-optimization"
	OptNumThreads              = "-num-threads"
	OptEnableBatchMode         = "-enable-batch-mode"

	// OptSearchPath adds a module search directory. It accepts either a
	// joined suffix ("-Ifoo") or a separate next token ("-I foo"), the
	// classic compiler include/search-path convention.
	OptSearchPath = "-I"

	OptRepl                 = "-repl"
	OptDeprecatedIntegrated = "-deprecated-integrated-repl"
	OptLLDBRepl             = "-lldb-repl"
	OptInteractive          = "-i"

	OptG               = "-g"
	OptGLineTablesOnly = "-gline-tables-only"
	OptGDwarfTypes     = "-gdwarf-types"
	OptGNone           = "-gnone"
	// OptDebugInfoFormat includes the trailing "=": it is a joined-only
	// option, so its canonical spelling is the full matched prefix.
	OptDebugInfoFormat = "-debug-info-format="

	OptParseAsLibrary = "-parse-as-library"
	OptParseStdlib    = "-parse-stdlib"

	// OptDriverMode includes the trailing "=" for the same reason as
	// OptDebugInfoFormat above.
	OptDriverMode = "--driver-mode="
	OptFrontend   = "-frontend"
	OptModulewrap = "-modulewrap"

	OptHelp       = "-help"
	OptHelpHidden = "-help-hidden"

	// OptXcc is a remaining-args passthrough group: everything after it is
	// forwarded verbatim to the external C-family compiler collaborator.
	OptXcc = "-Xcc"
)

// NewStandardOptionTable builds the schema for every option spec.md §6
// names. No entry sets Attributes.ExcludedDriverKinds, so every option is
// recognized under every driver kind and the same table serves them all.
func NewStandardOptionTable() *OptionTable {
	t := NewOptionTable()

	path := Attributes{IsPath: true}
	incremental := Attributes{AffectsIncrementalBuild: true}
	pathIncremental := Attributes{IsPath: true, AffectsIncrementalBuild: true}

	t.Add(Option{Spelling: OptWorkingDirectory, Kind: KindSeparate, Attributes: path})
	t.Add(Option{Spelling: OptOutput, Kind: KindSeparate, Attributes: pathIncremental})
	t.Add(Option{Spelling: OptModuleName, Kind: KindSeparate, Attributes: incremental})
	t.Add(Option{Spelling: OptTarget, Kind: KindSeparate})
	t.Add(Option{Spelling: OptOutputFileMap, Kind: KindSeparate, Attributes: pathIncremental})
	t.Add(Option{Spelling: OptEmitDependencyGraphDot, Kind: KindSeparate, Attributes: path})
	t.Add(Option{Spelling: OptSearchPath, Kind: KindJoinedOrSeparate, Attributes: pathIncremental})

	modeFlags := []string{
		OptEmitExecutable, OptEmitLibrary, OptEmitObject, OptEmitAssembly,
		OptEmitSIL, OptEmitSILGen, OptEmitSIB, OptEmitSIBGen, OptEmitIR,
		OptEmitBC, OptEmitPCH, OptEmitImportedModules, OptIndexFile,
		OptUpdateCode, OptDumpAST, OptParse, OptResolveImports, OptTypecheck,
		OptDumpParse, OptEmitSyntax, OptPrintAST, OptDumpTypeRefinement,
		OptDumpScopeMaps, OptDumpInterfaceHash, OptDumpTypeInfo,
		OptVerifyDebugInfo,
	}
	for _, spelling := range modeFlags {
		t.Add(Option{Spelling: spelling, Kind: KindFlag, Group: GroupModes, Attributes: incremental})
	}

	t.Add(Option{Spelling: OptStatic, Kind: KindFlag, Attributes: incremental})
	// -emit-module/-emit-module-path are intentionally NOT in GroupModes:
	// they control ModuleOutputKind orthogonally to the primary-output mode
	// (spec.md §4.2 "Primary outputs").
	t.Add(Option{Spelling: OptEmitModule, Kind: KindFlag, Attributes: incremental})
	t.Add(Option{Spelling: OptEmitModulePath, Kind: KindSeparate, Attributes: pathIncremental})
	t.Add(Option{Spelling: OptWholeModuleOptimization, Kind: KindFlag, Attributes: incremental})
	t.Add(Option{Spelling: OptNumThreads, Kind: KindSeparate, Attributes: incremental})
	t.Add(Option{Spelling: OptEnableBatchMode, Kind: KindFlag, Attributes: incremental})

	t.Add(Option{Spelling: OptRepl, Kind: KindFlag, Group: GroupModes})
	t.Add(Option{Spelling: OptDeprecatedIntegrated, Kind: KindFlag, Group: GroupModes})
	t.Add(Option{Spelling: OptLLDBRepl, Kind: KindFlag, Group: GroupModes})
	t.Add(Option{Spelling: OptInteractive, Kind: KindFlag, Group: GroupModes})

	t.Add(Option{Spelling: OptG, Kind: KindFlag, Group: GroupDebugLevel, Attributes: incremental})
	t.Add(Option{Spelling: OptGLineTablesOnly, Kind: KindFlag, Group: GroupDebugLevel, Attributes: incremental})
	t.Add(Option{Spelling: OptGDwarfTypes, Kind: KindFlag, Group: GroupDebugLevel, Attributes: incremental})
	t.Add(Option{Spelling: OptGNone, Kind: KindFlag, Group: GroupDebugLevel, Attributes: incremental})
	t.Add(Option{Spelling: OptDebugInfoFormat, Kind: KindJoined, Attributes: incremental})

	t.Add(Option{Spelling: OptParseAsLibrary, Kind: KindFlag, Attributes: incremental})
	t.Add(Option{Spelling: OptParseStdlib, Kind: KindFlag, Attributes: incremental})

	t.Add(Option{Spelling: OptDriverMode, Kind: KindJoined})
	t.Add(Option{Spelling: OptFrontend, Kind: KindFlag})
	t.Add(Option{Spelling: OptModulewrap, Kind: KindFlag})

	t.Add(Option{Spelling: OptHelp, Kind: KindFlag})
	t.Add(Option{Spelling: OptHelpHidden, Kind: KindFlag})

	t.Add(Option{Spelling: OptXcc, Kind: KindRemainingArgs})

	return t
}
