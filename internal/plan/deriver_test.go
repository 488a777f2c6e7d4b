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
	"testing"

	"github.com/lattice-lang/latticec/internal/diag"
	"github.com/lattice-lang/latticec/internal/options"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func derive(t *testing.T, argv []string) (CompilationPlan, *diag.Engine) {
	t.Helper()
	table := options.NewStandardOptionTable()
	parser := options.NewArgumentParser(table)
	parsed, perr := parser.Parse(argv[1:])
	require.Nil(t, perr)

	engine := diag.NewEngine()
	p, ok := PlanDeriver{Argv0: argv[0]}.Derive(parsed, engine)
	require.True(t, ok)
	return p, engine
}

// S2 — interactive REPL.
func TestInteractiveWithNoInputsIsRepl(t *testing.T) {
	p, engine := derive(t, []string{"lattice"})
	assert.Equal(t, DriverInteractive, p.DriverKind)
	assert.Equal(t, ModeRepl, p.CompilerMode)
	assert.Equal(t, "REPL", p.ModuleName)
	assert.Equal(t, ModuleOutputNone, p.ModuleOutputKind)
	assert.Nil(t, p.LinkerOutputType)
	assert.False(t, engine.HasErrors())
}

// S3 — single-input object build.
func TestBatchSingleInputObjectBuild(t *testing.T) {
	p, engine := derive(t, []string{"latticec", "a.lat"})
	assert.Equal(t, DriverBatch, p.DriverKind)
	assert.Equal(t, ModeStandardCompile, p.CompilerMode)
	require.NotNil(t, p.CompilerOutputType)
	assert.Equal(t, OutputObject, *p.CompilerOutputType)
	require.NotNil(t, p.LinkerOutputType)
	assert.Equal(t, LinkerExecutable, *p.LinkerOutputType)
	assert.Equal(t, "a", p.ModuleName)
	assert.False(t, engine.HasErrors())
}

func TestNumThreadsSelectsBatchCompile(t *testing.T) {
	p, engine := derive(t, []string{"latticec", "-num-threads", "4", "a.lat"})
	assert.Equal(t, ModeBatchCompile, p.CompilerMode)
	assert.Equal(t, 4, p.NumThreads)
	assert.False(t, engine.HasErrors())
}

func TestInvalidNumThreadsReportsError(t *testing.T) {
	p, engine := derive(t, []string{"latticec", "-num-threads", "not-a-number", "a.lat"})
	assert.Equal(t, 0, p.NumThreads)
	require.True(t, engine.HasErrors())
	assert.Equal(t, diag.ErrInvalidArgValue, engine.All()[0].ID)
}

func TestZeroNumThreadsReportsError(t *testing.T) {
	_, engine := derive(t, []string{"latticec", "-num-threads", "0", "a.lat"})
	require.True(t, engine.HasErrors())
	assert.Equal(t, diag.ErrInvalidArgValue, engine.All()[0].ID)
}

// S4 — WMO with explicit module.
func TestWholeModuleOptimizationWithExplicitModule(t *testing.T) {
	p, engine := derive(t, []string{
		"latticec", "-whole-module-optimization", "-module-name", "M",
		"a.lat", "b.lat", "-o", "libM.dylib", "-emit-library",
	})
	assert.Equal(t, ModeSingleCompile, p.CompilerMode)
	require.NotNil(t, p.LinkerOutputType)
	assert.Equal(t, LinkerDynamicLibrary, *p.LinkerOutputType)
	assert.Equal(t, "M", p.ModuleName)
	assert.False(t, engine.HasErrors())
}

// S5 — bad module name derived from -o.
func TestBadModuleNameFromOutputPath(t *testing.T) {
	p, engine := derive(t, []string{"latticec", "-emit-library", "-o", "lib123.dylib", "a.lat"})
	assert.Equal(t, BadModuleNameSentinel, p.ModuleName)
	require.True(t, engine.HasErrors())
	assert.Equal(t, diag.ErrBadModuleName, engine.All()[len(engine.All())-1].ID)
}

func TestStaticEmitExecutableIsDisallowed(t *testing.T) {
	_, engine := derive(t, []string{"latticec", "-emit-executable", "-static", "a.lat"})
	require.True(t, engine.HasErrors())
	assert.Equal(t, diag.ErrStaticEmitExecutableDisallowed, engine.All()[0].ID)
}

func TestDebugInfoFormatWithoutGIsError(t *testing.T) {
	_, engine := derive(t, []string{"latticec", "-debug-info-format=dwarf", "a.lat"})
	require.True(t, engine.HasErrors())
	assert.Equal(t, diag.ErrOptionMissingRequiredArgument, engine.All()[0].ID)
}

func TestCodeViewIncompatibleWithLineTablesOnly(t *testing.T) {
	_, engine := derive(t, []string{"latticec", "-gline-tables-only", "-debug-info-format=codeview", "a.lat"})
	require.True(t, engine.HasErrors())
	assert.Equal(t, diag.ErrArgumentNotAllowedWith, engine.All()[0].ID)
}

func TestModuleUnderReplIsRejected(t *testing.T) {
	p, engine := derive(t, []string{"lattice", "-emit-module"})
	assert.Equal(t, ModuleOutputNone, p.ModuleOutputKind)
	require.True(t, engine.HasErrors())
	assert.Equal(t, diag.ErrModeCannotEmitModule, engine.All()[0].ID)
}

func TestStdlibModuleNameRequiresParseStdlib(t *testing.T) {
	p, engine := derive(t, []string{"latticec", "-module-name", "Lattice", "a.lat"})
	assert.Equal(t, BadModuleNameSentinel, p.ModuleName)
	require.True(t, engine.HasErrors())
	assert.Equal(t, diag.ErrStdlibModuleName, engine.All()[0].ID)
}

func TestStdlibModuleNameAllowedWithParseStdlib(t *testing.T) {
	p, engine := derive(t, []string{"latticec", "-module-name", "Lattice", "-parse-stdlib", "a.lat"})
	assert.Equal(t, "Lattice", p.ModuleName)
	assert.False(t, engine.HasErrors())
}

func TestInvalidDriverName(t *testing.T) {
	table := options.NewStandardOptionTable()
	parser := options.NewArgumentParser(table)
	parsed, perr := parser.Parse([]string{"a.lat"})
	require.Nil(t, perr)

	engine := diag.NewEngine()
	_, ok := PlanDeriver{Argv0: "notadriver"}.Derive(parsed, engine)
	require.False(t, ok)
	require.True(t, engine.HasErrors())
	assert.Equal(t, diag.ErrInvalidDriverName, engine.All()[0].ID)
}

func TestWorkingDirectoryRewritesPathsAndInputs(t *testing.T) {
	table := options.NewStandardOptionTable()
	parser := options.NewArgumentParser(table)
	parsed, perr := parser.Parse([]string{"-working-directory", "/abs/work", "a.lat", "-o", "rel/out.o"})
	require.Nil(t, perr)

	engine := diag.NewEngine()
	p, ok := PlanDeriver{Argv0: "latticec"}.Derive(parsed, engine)
	require.True(t, ok)
	assert.Equal(t, "/abs/work", p.WorkingDirectory)
	assert.Equal(t, "/abs/work/a.lat", p.Inputs[0].Path)

	entry, found := parsed.LastByOption(options.OptOutput)
	require.True(t, found)
	assert.Equal(t, "/abs/work/rel/out.o", entry.Argument.Value)
}
