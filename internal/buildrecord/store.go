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

package buildrecord

import (
	"archive/tar"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/lattice-lang/latticec/internal/diag"
	"github.com/lattice-lang/latticec/internal/plan"
	"github.com/ulikunitz/xz"
)

// Store locates, loads, and writes the build-record file for one driver
// invocation, per spec.md §4.3.
type Store struct {
	// HistoryPath, if non-empty, receives a rolling tar+xz archive of every
	// superseded record. Supplemental to spec.md's core contract.
	HistoryPath string
}

// Locate implements spec.md §4.3's "the build-record path is the existing
// output of type dependencies for the whole-module sentinel key". Reports
// warning_incremental_requires_build_record_entry and returns ok=false when
// the file map is absent or lacks that entry.
func Locate(fileMap *plan.OutputFileMap, engine *diag.Engine) (string, bool) {
	path, ok := fileMap.Lookup(plan.WholeModuleSentinel, plan.OutputDependencies)
	if !ok {
		engine.Report(diag.Warning(diag.WarnIncrementalRequiresBuildRecordEntry,
			"incremental compilation requires a build-record output location; disabling"))
		return "", false
	}
	return path, true
}

// RejectReason names why a previously loaded Record was not admitted.
type RejectReason string

const (
	RejectNone                RejectReason = ""
	RejectToolVersionMismatch  RejectReason = "compiler version mismatch"
	RejectDifferentArguments   RejectReason = "different arguments"
	RejectUnreadableOrMalformed RejectReason = "unreadable or malformed build record"
)

// Load reads and admits or rejects the build record at path against the
// current invocation's toolVersion and argsHash, per spec.md §4.3's
// admit/reject rules. A reject always disables incremental compilation;
// the returned Record is the zero value in that case.
func Load(path, toolVersion, argsHash string) (Record, RejectReason) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Record{}, RejectUnreadableOrMalformed
	}
	r, err := Parse(data)
	if err != nil {
		return Record{}, RejectUnreadableOrMalformed
	}
	if r.ToolVersion != toolVersion {
		return Record{}, RejectToolVersionMismatch
	}
	if r.ArgsHash != "" && r.ArgsHash != argsHash {
		return Record{}, RejectDifferentArguments
	}
	return r, RejectNone
}

// Write implements spec.md §4.3's write procedure: best-effort rename the
// existing record to "<name>~", then write the new record, reporting a
// warning (never failing the build) on any error. If s.HistoryPath is set,
// the superseded record (if present) is appended to the rolling archive
// before being overwritten.
func (s Store) Write(path string, r Record, engine *diag.Engine) {
	if s.HistoryPath != "" {
		if prior, err := os.ReadFile(path); err == nil {
			if err := s.archive(prior); err != nil {
				engine.Report(diag.Warning(diag.WarnBuildRecordUnwritable, "could not archive previous build record: %v", err))
			}
		}
	}

	backup := path + "~"
	_ = os.Rename(path, backup) // best-effort; absence of a prior file is fine.

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		engine.Report(diag.Warning(diag.WarnBuildRecordUnwritable, "could not create build record directory: %v", err))
		return
	}
	if err := os.WriteFile(path, r.Encode(), 0o644); err != nil {
		engine.Report(diag.Warning(diag.WarnBuildRecordUnwritable, "could not write build record: %v", err))
	}
}

// archive appends entry (a previous record's raw bytes) to a tar+xz
// archive at s.HistoryPath, grounded on the teacher's xz.NewReader archive
// handling in index/internal/bcr/registry.go (mirrored here on the write
// side: xz.NewWriter wrapping a tar.Writer instead of xz.NewReader feeding
// an extractor).
func (s Store) archive(entry []byte) error {
	var existing []byte
	if data, err := os.ReadFile(s.HistoryPath); err == nil {
		existing = data
	}

	var buf bytes.Buffer
	xw, err := xz.NewWriter(&buf)
	if err != nil {
		return fmt.Errorf("buildrecord: opening xz writer: %w", err)
	}
	tw := tar.NewWriter(xw)

	if len(existing) > 0 {
		xr, err := xz.NewReader(bytes.NewReader(existing))
		if err == nil {
			tr := tar.NewReader(xr)
			for {
				hdr, err := tr.Next()
				if err != nil {
					break
				}
				content := make([]byte, hdr.Size)
				if _, err := io.ReadFull(tr, content); err != nil {
					// best-effort: a short read on a corrupt prior archive entry
					// drops that entry from the rewritten archive.
					continue
				}
				if err := tw.WriteHeader(hdr); err != nil {
					return err
				}
				if _, err := tw.Write(content); err != nil {
					return err
				}
			}
		}
	}

	hdr := &tar.Header{
		Name:    fmt.Sprintf("build-record-%d.txt", time.Now().UnixNano()),
		Mode:    0o644,
		Size:    int64(len(entry)),
		ModTime: time.Now(),
	}
	if err := tw.WriteHeader(hdr); err != nil {
		return err
	}
	if _, err := tw.Write(entry); err != nil {
		return err
	}
	if err := tw.Close(); err != nil {
		return err
	}
	if err := xw.Close(); err != nil {
		return err
	}

	return os.WriteFile(s.HistoryPath, buf.Bytes(), 0o644)
}
