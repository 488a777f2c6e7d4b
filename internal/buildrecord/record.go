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

// Package buildrecord persists the summary of a prior build spec.md §3
// names BuildRecord: enough to decide, on the next invocation, whether
// incremental compilation is safe to attempt.
package buildrecord

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/lattice-lang/latticec/internal/options"
)

// JobOutcome is the per-input result of the previous build's compile job.
type JobOutcome string

const (
	JobSucceeded JobOutcome = "succeeded"
	JobFailed    JobOutcome = "failed"
	JobSkipped   JobOutcome = "skipped"
)

// Record is the persisted summary of a previous build, spec.md §3's
// BuildRecord: tool version, a hash of the incremental-affecting options,
// the time the build started, per-input modification times as observed at
// that time, the inputs it skipped, and per-job outcomes.
type Record struct {
	ToolVersion   string
	ArgsHash      string
	StartedAt     time.Time
	InputModTimes map[string]time.Time
	SkippedInputs []string
	JobOutcomes   map[string]JobOutcome
}

// ComputeArgsHash implements spec.md §4.3's options hash: the spellings of
// every non-input parsed option whose attribute AffectsIncrementalBuild is
// set, sorted ascending, concatenated, SHA-256, hex-encoded. It covers
// presence of such an option, not its value.
func ComputeArgsHash(parsed *options.ParsedOptions) string {
	var spellings []string
	for _, e := range parsed.All() {
		if e.IsInput || e.Option == nil || !e.Option.Attributes.AffectsIncrementalBuild {
			continue
		}
		spellings = append(spellings, e.Spelling)
	}
	sort.Strings(spellings)

	h := sha256.New()
	for _, s := range spellings {
		h.Write([]byte(s))
	}
	return hex.EncodeToString(h.Sum(nil))
}

const (
	keyToolVersion = "tool_version"
	keyArgsHash    = "args_hash"
	keyStartedAt   = "started_at"
	prefixModTime  = "input_mtime."
	keySkipped     = "skipped"
	prefixJob      = "job."
)

// Encode serializes r as ordered, human-readable key=value text, one entry
// per line, matching spec.md §6's "compatible with the legacy tool" text
// format requirement. Keys are emitted in a fixed, sorted order so two
// encodings of an equal Record are byte-identical.
func (r Record) Encode() []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s=%s\n", keyToolVersion, r.ToolVersion)
	fmt.Fprintf(&buf, "%s=%s\n", keyArgsHash, r.ArgsHash)
	fmt.Fprintf(&buf, "%s=%s\n", keyStartedAt, r.StartedAt.UTC().Format(time.RFC3339Nano))

	paths := make([]string, 0, len(r.InputModTimes))
	for p := range r.InputModTimes {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	for _, p := range paths {
		fmt.Fprintf(&buf, "%s%s=%s\n", prefixModTime, p, r.InputModTimes[p].UTC().Format(time.RFC3339Nano))
	}

	skipped := append([]string(nil), r.SkippedInputs...)
	sort.Strings(skipped)
	for _, p := range skipped {
		fmt.Fprintf(&buf, "%s=%s\n", keySkipped, p)
	}

	jobPaths := make([]string, 0, len(r.JobOutcomes))
	for p := range r.JobOutcomes {
		jobPaths = append(jobPaths, p)
	}
	sort.Strings(jobPaths)
	for _, p := range jobPaths {
		fmt.Fprintf(&buf, "%s%s=%s\n", prefixJob, p, r.JobOutcomes[p])
	}

	return buf.Bytes()
}

// Parse decodes the key=value text Encode produces. Unknown keys are
// ignored rather than rejected, so a future tool version can add fields
// without breaking old readers.
func Parse(data []byte) (Record, error) {
	r := Record{
		InputModTimes: map[string]time.Time{},
		JobOutcomes:   map[string]JobOutcome{},
	}
	lines := strings.Split(string(data), "\n")
	for i, line := range lines {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		eq := strings.IndexByte(line, '=')
		if eq < 0 {
			return Record{}, fmt.Errorf("buildrecord: line %d: missing '=': %q", i+1, line)
		}
		key, value := line[:eq], line[eq+1:]

		switch {
		case key == keyToolVersion:
			r.ToolVersion = value
		case key == keyArgsHash:
			r.ArgsHash = value
		case key == keyStartedAt:
			t, err := time.Parse(time.RFC3339Nano, value)
			if err != nil {
				return Record{}, fmt.Errorf("buildrecord: line %d: %w", i+1, err)
			}
			r.StartedAt = t
		case strings.HasPrefix(key, prefixModTime):
			t, err := time.Parse(time.RFC3339Nano, value)
			if err != nil {
				return Record{}, fmt.Errorf("buildrecord: line %d: %w", i+1, err)
			}
			r.InputModTimes[strings.TrimPrefix(key, prefixModTime)] = t
		case key == keySkipped:
			r.SkippedInputs = append(r.SkippedInputs, value)
		case strings.HasPrefix(key, prefixJob):
			r.JobOutcomes[strings.TrimPrefix(key, prefixJob)] = JobOutcome(value)
		}
	}
	return r, nil
}
