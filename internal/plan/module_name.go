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
	"strings"
	"unicode"

	"github.com/lattice-lang/latticec/internal/diag"
	"github.com/lattice-lang/latticec/internal/options"
)

// buildingExecutable implements spec.md §4.2's tie-break: true iff
// linkerOutputType is executable; false for a library; otherwise true iff
// -parse-as-library/-parse-stdlib are absent and there is exactly one
// input.
func buildingExecutable(linkerOutputType *OutputType, parsed *options.ParsedOptions, inputCount int) bool {
	if linkerOutputType != nil {
		switch *linkerOutputType {
		case LinkerExecutable:
			return true
		case LinkerDynamicLibrary, LinkerStaticLibrary:
			return false
		}
	}
	return !parsed.ContainsAnyOf(options.OptParseAsLibrary, options.OptParseStdlib) && inputCount == 1
}

func basenameWithoutExt(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// DeriveModuleName implements spec.md §4.2's first-nonempty-rule-wins
// module name derivation, followed by identifier validation.
func DeriveModuleName(mode CompilerMode, linkerOutputType *OutputType, compilerOutputType *OutputType, parsed *options.ParsedOptions, inputs []InputFile, engine *diag.Engine) string {
	name := deriveRawModuleName(mode, linkerOutputType, compilerOutputType, parsed, inputs)
	return validateModuleName(name, parsed, engine)
}

func deriveRawModuleName(mode CompilerMode, linkerOutputType *OutputType, compilerOutputType *OutputType, parsed *options.ParsedOptions, inputs []InputFile) string {
	if entry, ok := parsed.LastByOption(options.OptModuleName); ok && entry.Argument.Value != "" {
		return entry.Argument.Value
	}

	if mode == ModeRepl {
		return "REPL"
	}

	if entry, ok := parsed.LastByOption(options.OptOutput); ok && entry.Argument.Value != "" {
		base := basenameWithoutExt(entry.Argument.Value)
		rawBase := filepath.Base(entry.Argument.Value)
		isLibrary := linkerOutputType != nil && (*linkerOutputType == LinkerDynamicLibrary || *linkerOutputType == LinkerStaticLibrary)
		hasExt := filepath.Ext(rawBase) != ""
		if isLibrary && hasExt && strings.HasPrefix(base, "lib") {
			base = strings.TrimPrefix(base, "lib")
		}
		if base != "" {
			return base
		}
	}

	if len(inputs) == 1 && !inputs[0].IsStdin {
		if base := basenameWithoutExt(inputs[0].Path); base != "" {
			return base
		}
	}

	if compilerOutputType == nil || buildingExecutable(linkerOutputType, parsed, len(inputs)) {
		return "main"
	}

	return ""
}

// isIdentifier reports whether name matches the host language's identifier
// production: a leading letter or underscore followed by letters, digits,
// or underscores. Hand-rolled against unicode instead of a library because
// no retrieved dependency validates an arbitrary language's identifier
// grammar.
func isIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_':
		case unicode.IsLetter(r):
		case unicode.IsDigit(r) && i > 0:
		default:
			return false
		}
	}
	return true
}

func validateModuleName(name string, parsed *options.ParsedOptions, engine *diag.Engine) string {
	if name == "" {
		return name
	}
	if name == StdlibModuleName && !parsed.ContainsAnyOf(options.OptParseStdlib) {
		engine.Report(diag.Error(diag.ErrStdlibModuleName, "module name %q is reserved for the standard library; pass -parse-stdlib", name))
		return BadModuleNameSentinel
	}
	if !isIdentifier(name) {
		engine.Report(diag.Error(diag.ErrBadModuleName, "%q is not a valid module name", name))
		return BadModuleNameSentinel
	}
	return name
}
