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

	"github.com/lattice-lang/latticec/internal/diag"
	"github.com/lattice-lang/latticec/internal/options"
)

var basenameToDriverKind = map[string]DriverKind{
	"latticec":         DriverBatch,
	"lattice":          DriverInteractive,
	"lattice-autolink":  DriverAutolink,
}

// DeriveDriverKind maps argv[0]'s basename, an optional --driver-mode=
// override, or the -frontend/-modulewrap escape hatches to a DriverKind.
func DeriveDriverKind(argv0 string, parsed *options.ParsedOptions, engine *diag.Engine) (DriverKind, bool) {
	if parsed.ContainsAnyOf(options.OptFrontend) {
		return DriverFrontend, true
	}
	if parsed.ContainsAnyOf(options.OptModulewrap) {
		return DriverModulewrap, true
	}
	if entry, ok := parsed.LastByOption(options.OptDriverMode); ok {
		kind, ok := basenameToDriverKind[entry.Argument.Value]
		if !ok {
			engine.Report(diag.Error(diag.ErrInvalidDriverName, "invalid --driver-mode value %q", entry.Argument.Value))
			return "", false
		}
		return kind, true
	}

	base := filepath.Base(argv0)
	if kind, ok := basenameToDriverKind[base]; ok {
		return kind, true
	}
	engine.Report(diag.Error(diag.ErrInvalidDriverName, "unrecognized driver name %q", base))
	return "", false
}
