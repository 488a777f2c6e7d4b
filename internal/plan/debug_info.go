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

var debugLevelBySpelling = map[string]DebugInfoLevel{
	options.OptG:               DebugInfoASTTypes,
	options.OptGLineTablesOnly: DebugInfoLineTables,
	options.OptGDwarfTypes:     DebugInfoDwarfTypes,
	options.OptGNone:           DebugInfoNone,
}

// DeriveDebugInfo implements spec.md §4.2's debug-info level/format rules.
func DeriveDebugInfo(parsed *options.ParsedOptions, engine *diag.Engine) (*DebugInfoLevel, DebugInfoFormat) {
	var level *DebugInfoLevel
	if last, ok := parsed.LastByGroup(options.GroupDebugLevel); ok {
		l := debugLevelBySpelling[last.Spelling]
		level = &l
	}

	format := DebugFormatDwarf
	if entry, ok := parsed.LastByOption(options.OptDebugInfoFormat); ok {
		if level == nil {
			engine.Report(diag.Error(diag.ErrOptionMissingRequiredArgument, "-debug-info-format requires a -g option"))
		}
		switch entry.Argument.Value {
		case "dwarf":
			format = DebugFormatDwarf
		case "codeview":
			format = DebugFormatCodeView
			if parsed.ContainsAnyOf(options.OptGLineTablesOnly, options.OptGDwarfTypes) {
				engine.Report(diag.Error(diag.ErrArgumentNotAllowedWith, "-debug-info-format=codeview is not allowed with %s or %s", options.OptGLineTablesOnly, options.OptGDwarfTypes))
			}
		default:
			engine.Report(diag.Error(diag.ErrInvalidArgValue, "invalid -debug-info-format value %q", entry.Argument.Value))
			format = DebugFormatDwarf
		}
	}

	return level, format
}
