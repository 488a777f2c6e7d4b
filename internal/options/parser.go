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

import (
	"fmt"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/lattice-lang/latticec/internal/diag"
)

// StdinSentinel is the argv token that requests reading the primary source
// from standard input.
const StdinSentinel = "-"

// ArgumentParser consumes an argv tail against an OptionTable and produces a
// ParsedOptions stream, left to right, preserving order and multiplicity.
type ArgumentParser struct {
	Table *OptionTable
	// ExpandGlobs enables glob expansion of input tokens containing glob
	// metacharacters ("*", "?", "[...]") via doublestar, a supplemental
	// feature beyond spec.md's literal input handling.
	ExpandGlobs bool
	// ReadFile is used to expand "@file" response-file tokens. Defaults to
	// os.ReadFile; overridable for tests.
	ReadFile func(string) ([]byte, error)
}

// NewArgumentParser returns a parser bound to table with default I/O.
func NewArgumentParser(table *OptionTable) *ArgumentParser {
	return &ArgumentParser{Table: table, ReadFile: os.ReadFile}
}

// Parse processes argv left to right into a ParsedOptions value. On a
// malformed token it returns the first diagnostic (missing-value or
// unknown-option) and a nil result.
func (p *ArgumentParser) Parse(argv []string) (*ParsedOptions, *diag.Diagnostic) {
	expanded, err := p.expandResponseFiles(argv)
	if err != nil {
		d := diag.Error(diag.ErrMissingValue, "%v", err)
		return nil, &d
	}

	result := NewParsedOptions()
	i := 0
	for i < len(expanded) {
		token := expanded[i]
		switch {
		case token == StdinSentinel:
			result.Append(ParsedOption{IsInput: true, Argument: SingleArgument(token)})
			i++
		case !strings.HasPrefix(token, "-") || token == "":
			for _, in := range p.expandInput(token) {
				result.Append(ParsedOption{IsInput: true, Argument: SingleArgument(in)})
			}
			i++
		default:
			consumed, d := p.consumeOption(expanded, i, result)
			if d != nil {
				return nil, d
			}
			i += consumed
		}
	}
	return result, nil
}

func (p *ArgumentParser) expandInput(token string) []string {
	if !p.ExpandGlobs || !doublestar.ValidatePattern(token) || !strings.ContainsAny(token, "*?[") {
		return []string{token}
	}
	matches, err := doublestar.FilepathGlob(token)
	if err != nil || len(matches) == 0 {
		return []string{token}
	}
	return matches
}

func (p *ArgumentParser) expandResponseFiles(argv []string) ([]string, error) {
	var out []string
	for _, token := range argv {
		if !strings.HasPrefix(token, "@") || token == "@" {
			out = append(out, token)
			continue
		}
		path := token[1:]
		readFile := p.ReadFile
		if readFile == nil {
			readFile = os.ReadFile
		}
		content, err := readFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read response file %q: %w", path, err)
		}
		out = append(out, strings.Fields(string(content))...)
	}
	return out, nil
}

// consumeOption matches expanded[i] against the table and appends the
// resulting ParsedOption(s), returning how many argv tokens were consumed.
func (p *ArgumentParser) consumeOption(argv []string, i int, result *ParsedOptions) (int, *diag.Diagnostic) {
	token := argv[i]
	opt, suffix, ok := p.Table.MatchPrefix(token)
	if !ok {
		d := diag.Error(diag.ErrUnknownOption, "unknown argument: %q", token)
		return 0, &d
	}

	switch opt.Kind {
	case KindFlag:
		result.Append(ParsedOption{Spelling: opt.Spelling, Argument: NoArgument(), Option: opt})
		return 1, nil

	case KindJoined:
		result.Append(ParsedOption{Spelling: opt.Spelling, Argument: SingleArgument(suffix), Option: opt})
		return 1, nil

	case KindSeparate:
		if i+1 >= len(argv) {
			d := diag.Error(diag.ErrMissingValue, "missing argument to %q", opt.Spelling)
			return 0, &d
		}
		result.Append(ParsedOption{Spelling: opt.Spelling, Argument: SingleArgument(argv[i+1]), Option: opt})
		return 2, nil

	case KindJoinedOrSeparate:
		if suffix != "" {
			result.Append(ParsedOption{Spelling: opt.Spelling, Argument: SingleArgument(suffix), Option: opt})
			return 1, nil
		}
		if i+1 >= len(argv) {
			d := diag.Error(diag.ErrMissingValue, "missing argument to %q", opt.Spelling)
			return 0, &d
		}
		result.Append(ParsedOption{Spelling: opt.Spelling, Argument: SingleArgument(argv[i+1]), Option: opt})
		return 2, nil

	case KindRemainingArgs:
		rest := append([]string(nil), argv[i+1:]...)
		result.Append(ParsedOption{Spelling: opt.Spelling, Argument: MultiArgument(rest), Option: opt})
		return len(argv) - i, nil

	default:
		d := diag.Defect(diag.DefectUnhandledModeOption, "option %q has unhandled kind", opt.Spelling)
		return 0, &d
	}
}
