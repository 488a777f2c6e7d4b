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

// Package plan derives a CompilationPlan from ParsedOptions through a
// pipeline of small, independently testable pure functions, as spec.md §4.2
// requires. Nothing here touches the filesystem beyond path arithmetic.
package plan

// DriverKind is which persona the driver adopts, derived from argv[0]'s
// basename or an explicit override.
type DriverKind string

const (
	DriverBatch       DriverKind = "batch"       // latticec
	DriverInteractive DriverKind = "interactive" // lattice
	DriverFrontend    DriverKind = "frontend"    // -frontend escape hatch
	DriverModulewrap  DriverKind = "modulewrap"   // -modulewrap escape hatch
	DriverAutolink    DriverKind = "autolink"     // lattice-autolink, delegates entirely
)

// CompilerMode decides whether a single invocation handles every input
// (whole-module) or each input is compiled separately, plus REPL/immediate.
type CompilerMode string

const (
	ModeStandardCompile CompilerMode = "standardCompile"
	ModeSingleCompile    CompilerMode = "singleCompile"
	ModeBatchCompile     CompilerMode = "batchCompile"
	ModeCompilePCM       CompilerMode = "compilePCM"
	ModeRepl             CompilerMode = "repl"
	ModeImmediate        CompilerMode = "immediate"
)

// FileType classifies an InputFile by extension.
type FileType string

const (
	FileTypeSource FileType = "source" // primary source language (.lat)
	FileTypeObject FileType = "object" // unknown extensions default here
	FileTypeModule FileType = "module" // precompiled module (.latmodule)
	FileTypeHeaderBridge FileType = "headerBridge"
)

// InputFile pairs a file reference with its derived type. IsStdin is true
// only for the "-" sentinel, which is always typed as FileTypeSource.
type InputFile struct {
	Path     string
	IsStdin  bool
	FileType FileType
}

// OutputType enumerates the kinds of artifact a compiler or linker
// invocation may produce.
type OutputType string

const (
	OutputObject        OutputType = "object"
	OutputAssembly       OutputType = "assembly"
	OutputIR             OutputType = "ir"
	OutputBC             OutputType = "bc"
	OutputSIL            OutputType = "sil"
	OutputSILGen         OutputType = "silgen"
	OutputSIB            OutputType = "sib"
	OutputSIBGen         OutputType = "sibgen"
	OutputLatticeModule  OutputType = "latticeModule"
	OutputDependencies   OutputType = "dependencies" // the swiftDeps-analog summary
	OutputNone           OutputType = ""

	LinkerExecutable     OutputType = "executable"
	LinkerDynamicLibrary OutputType = "dynamicLibrary"
	LinkerStaticLibrary  OutputType = "staticLibrary"
)

// DebugInfoLevel is derived from the last option in the "g" group.
type DebugInfoLevel string

const (
	DebugInfoNone      DebugInfoLevel = "none"
	DebugInfoLineTables DebugInfoLevel = "lineTables"
	DebugInfoDwarfTypes DebugInfoLevel = "dwarfTypes"
	DebugInfoASTTypes   DebugInfoLevel = "astTypes"
)

// DebugInfoFormat is derived from -debug-info-format=, defaulting to dwarf.
type DebugInfoFormat string

const (
	DebugFormatDwarf    DebugInfoFormat = "dwarf"
	DebugFormatCodeView DebugInfoFormat = "codeView"
)

// ModuleOutputKind says whether (and why) a module artifact is produced.
type ModuleOutputKind string

const (
	ModuleOutputNone      ModuleOutputKind = ""
	ModuleOutputTopLevel  ModuleOutputKind = "topLevel"
	ModuleOutputAuxiliary ModuleOutputKind = "auxiliary"
)

// BadModuleNameSentinel replaces an identifier that fails validation.
const BadModuleNameSentinel = "__bad__"

// StdlibModuleName is the one module name reserved for the standard
// library; using it requires -parse-stdlib.
const StdlibModuleName = "Lattice"

// OutputFileMap maps (input, output type) to an output path, plus a
// whole-module sentinel key for outputs not tied to one input.
type OutputFileMap struct {
	entries map[outputKey]string
}

type outputKey struct {
	input string // "" denotes the whole-module sentinel
	typ   OutputType
}

// WholeModuleSentinel is the OutputFileMap key for outputs that describe the
// module as a whole rather than one input (the build-record path lookup
// uses this).
const WholeModuleSentinel = ""

func NewOutputFileMap() *OutputFileMap {
	return &OutputFileMap{entries: make(map[outputKey]string)}
}

// Set records the output path for (input, typ). input == WholeModuleSentinel
// records a whole-module output.
func (m *OutputFileMap) Set(input string, typ OutputType, path string) {
	m.entries[outputKey{input, typ}] = path
}

// Lookup returns the output path for (input, typ), if present.
func (m *OutputFileMap) Lookup(input string, typ OutputType) (string, bool) {
	if m == nil {
		return "", false
	}
	path, ok := m.entries[outputKey{input, typ}]
	return path, ok
}

// CompilationPlan is fixed after derivation; mutating it afterward is a
// defect (spec.md §3).
type CompilationPlan struct {
	DriverKind         DriverKind
	CompilerMode       CompilerMode
	Inputs             []InputFile
	OutputFileMap      *OutputFileMap
	CompilerOutputType *OutputType // nil means "none"
	LinkerOutputType   *OutputType // nil means "none"
	DebugInfoLevel     *DebugInfoLevel
	DebugInfoFormat    DebugInfoFormat
	ModuleOutputKind   ModuleOutputKind
	ModuleName         string
	WorkingDirectory   string // "" if unset
	Target             string // "" if unset
	NumThreads         int    // 0 means -num-threads wasn't given
}
