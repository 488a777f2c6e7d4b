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

package driver

import (
	"context"
	"os/exec"

	"golang.org/x/sync/errgroup"

	"github.com/lattice-lang/latticec/internal/buildrecord"
)

// Job is one external compile invocation the executor dispatches, scoped
// to a single input (or the whole module, for whole-module compiles).
type Job struct {
	Input   string
	Command string
	Args    []string
}

// JobResult is what a completed Job reports back to the core, drained
// sequentially per spec.md §5's "results are returned to the core one at a
// time via a queue the core drains sequentially".
type JobResult struct {
	Input   string
	Outcome buildrecord.JobOutcome
	Err     error
}

// JobExecutor is the out-of-scope frontend/linker-invocation collaborator
// spec.md §1 names. The core depends only on this interface; how jobs are
// actually spawned is not part of the planning/incremental core.
type JobExecutor interface {
	Run(ctx context.Context, jobs []Job) ([]JobResult, error)
}

// ProcessJobExecutor runs each job as a real child process, in parallel,
// using golang.org/x/sync/errgroup the way spec.md §5 describes the
// executor: parallel dispatch, sequential drain back into the core.
type ProcessJobExecutor struct {
	// MaxConcurrency caps how many jobs run at once; 0 means unlimited.
	MaxConcurrency int
}

// Run implements JobExecutor.
func (e ProcessJobExecutor) Run(ctx context.Context, jobs []Job) ([]JobResult, error) {
	results := make([]JobResult, len(jobs))

	g, ctx := errgroup.WithContext(ctx)
	if e.MaxConcurrency > 0 {
		g.SetLimit(e.MaxConcurrency)
	}

	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			cmd := exec.CommandContext(ctx, job.Command, job.Args...)
			err := cmd.Run()
			switch {
			case err == nil:
				results[i] = JobResult{Input: job.Input, Outcome: buildrecord.JobSucceeded}
			default:
				results[i] = JobResult{Input: job.Input, Outcome: buildrecord.JobFailed, Err: err}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
