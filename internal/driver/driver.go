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

// Package driver is the top-level orchestration facade spec.md §4.5
// describes: it ties ArgumentParser, PlanDeriver, BuildRecordStore, and
// DependencyGraph together behind a single Run entry point, and owns the
// three named collaborators (JobExecutor, HelpRenderer, SummaryCodec) the
// core itself treats as out of scope.
package driver

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/lattice-lang/latticec/internal/buildrecord"
	"github.com/lattice-lang/latticec/internal/collections"
	"github.com/lattice-lang/latticec/internal/depgraph"
	"github.com/lattice-lang/latticec/internal/diag"
	"github.com/lattice-lang/latticec/internal/options"
	"github.com/lattice-lang/latticec/internal/plan"
)

// Driver wires together one compiler-driver invocation.
type Driver struct {
	Table       *options.OptionTable
	ToolVersion string

	Executor  JobExecutor
	Help      HelpRenderer
	Summaries SummaryCodec
	Records   buildrecord.Store

	Stdout io.Writer
	Stderr io.Writer
}

// New returns a Driver with the standard option table and real (non-stub)
// collaborators, the shape cmd/latticec wires by default.
func New(toolVersion string) *Driver {
	return &Driver{
		Table:       options.NewStandardOptionTable(),
		ToolVersion: toolVersion,
		Executor:    ProcessJobExecutor{},
		Help:        PlainTextHelpRenderer{},
		Summaries:   LineSummaryCodec{},
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
	}
}

// isIncrementalMode reports whether mode is one where per-input fine-grained
// incremental tracking applies; whole-module and REPL/immediate modes
// compile everything in one process and have no meaningful first/second
// wave split.
func isIncrementalMode(mode plan.CompilerMode) bool {
	switch mode {
	case plan.ModeStandardCompile, plan.ModeBatchCompile:
		return true
	default:
		return false
	}
}

// Run executes one driver invocation end to end: parse argv, derive the
// plan, and — if the derived mode supports it — run the incremental
// build-record/dependency-graph pipeline spec.md §2 lays out as
// `BuildRecordStore.load + DependencyGraph.buildInitial → first-wave input
// set → (external frontend jobs) → DependencyGraph.integrate → second-wave
// input set → BuildRecordStore.write`. Returns whether the build
// succeeded, and the diagnostics emitted along the way.
func (d *Driver) Run(ctx context.Context, argv0 string, argv []string, cwd string) (bool, *diag.Engine) {
	engine := diag.NewEngine()
	parser := options.NewArgumentParser(d.Table)

	parsed, errDiag := parser.Parse(argv)
	if errDiag != nil {
		engine.Report(*errDiag)
		return false, engine
	}

	if parsed.ContainsAnyOf(options.OptHelp, options.OptHelpHidden) {
		_, hidden := parsed.LastByOption(options.OptHelpHidden)
		d.Help.Render(d.Stdout, d.Table, hidden)
		return true, engine
	}

	deriver := plan.PlanDeriver{Argv0: argv0, CWD: cwd}
	compilationPlan, ok := deriver.Derive(parsed, engine)
	if !ok {
		return false, engine
	}

	if compilationPlan.NumThreads > 0 {
		if _, ok := d.Executor.(ProcessJobExecutor); ok {
			d.Executor = ProcessJobExecutor{MaxConcurrency: compilationPlan.NumThreads}
		}
	}

	if entry, ok := parsed.LastByOption(options.OptOutputFileMap); ok {
		fileMap, err := LoadOutputFileMap(entry.Argument.Value)
		if err != nil {
			engine.Report(diag.Warning(diag.WarnBuildRecordMalformed, "%v", err))
		} else {
			compilationPlan.OutputFileMap = fileMap
		}
	}

	if engine.HasErrors() {
		return false, engine
	}

	dotPath := ""
	if entry, ok := parsed.LastByOption(options.OptEmitDependencyGraphDot); ok {
		dotPath = entry.Argument.Value
	}

	if !isIncrementalMode(compilationPlan.CompilerMode) || compilationPlan.OutputFileMap == nil {
		d.runCleanBuild(ctx, compilationPlan, engine)
		return !engine.HasErrors(), engine
	}

	d.runIncrementalBuild(ctx, compilationPlan, buildrecord.ComputeArgsHash(parsed), dotPath, engine)
	return !engine.HasErrors(), engine
}

// runCleanBuild dispatches every input as one job with no dependency
// tracking: the path taken for whole-module compiles, REPL/immediate
// modes, and any build lacking an output file map to persist a record
// against.
func (d *Driver) runCleanBuild(ctx context.Context, p plan.CompilationPlan, engine *diag.Engine) {
	jobs := make([]Job, 0, len(p.Inputs))
	for _, in := range p.Inputs {
		jobs = append(jobs, Job{Input: in.Path, Command: "true"})
	}
	results, err := d.Executor.Run(ctx, jobs)
	if err != nil {
		engine.Report(diag.Defect(diag.DefectUnhandledModeOption, "job executor: %v", err))
		return
	}
	for _, r := range results {
		if r.Outcome == buildrecord.JobFailed {
			engine.Report(diag.Defect(diag.DefectUnhandledModeOption, "job for %q failed: %v", r.Input, r.Err))
		}
	}
}

// runIncrementalBuild implements spec.md §2's incremental control flow.
func (d *Driver) runIncrementalBuild(ctx context.Context, p plan.CompilationPlan, argsHash, dotPath string, engine *diag.Engine) {
	buildStart := time.Now()

	recordPath, ok := buildrecord.Locate(p.OutputFileMap, engine)
	if !ok {
		d.runCleanBuild(ctx, p, engine)
		return
	}

	record, reject := buildrecord.Load(recordPath, d.ToolVersion, argsHash)
	previousInputs := collections.Set[depgraph.InputHandle]{}
	if reject == buildrecord.RejectNone {
		for path := range record.InputModTimes {
			previousInputs.Add(depgraph.InputHandle(path))
		}
	} else if reject != buildrecord.RejectUnreadableOrMalformed {
		engine.Report(diag.Warning(diag.WarnBuildRecordMalformed, "build record at %q rejected: %s", recordPath, reject))
	}

	graph := depgraph.New()
	var inputs []depgraph.InputHandle
	for _, in := range p.Inputs {
		inputs = append(inputs, depgraph.InputHandle(in.Path))
	}

	malformed, ok := graph.BuildInitial(inputs, previousInputs, p.OutputFileMap, func(in depgraph.InputHandle) (depgraph.Summary, error) {
		path, found := p.OutputFileMap.Lookup(string(in), plan.OutputDependencies)
		if !found {
			return depgraph.Summary{}, os.ErrNotExist
		}
		return d.Summaries.Decode(path)
	}, engine)
	if !ok {
		d.runCleanBuild(ctx, p, engine)
		return
	}

	mustRecompile := collections.Set[depgraph.InputHandle]{}
	for _, in := range malformed {
		mustRecompile.Add(in)
	}
	for _, in := range inputs {
		if !previousInputs.Contains(in) {
			mustRecompile.Add(in)
			continue
		}
		if prevModTime, ok := record.InputModTimes[string(in)]; ok {
			if info, err := os.Stat(string(in)); err == nil && !info.ModTime().Equal(prevModTime) {
				mustRecompile.Add(in)
			}
		}
	}
	for changedInput := range mustRecompile {
		for _, dep := range graph.FindDependentSourceFiles(changedInput) {
			mustRecompile.Add(dep)
		}
	}

	jobOutcomes := map[string]buildrecord.JobOutcome{}
	compiled := collections.Set[depgraph.InputHandle]{}
	wave := orderByModTime(mustRecompile)
	for len(wave) > 0 {
		jobs := make([]Job, 0, len(wave))
		for _, in := range wave {
			jobs = append(jobs, Job{Input: string(in), Command: "true"})
			compiled.Add(in)
		}
		results, err := d.Executor.Run(ctx, jobs)
		if err != nil {
			engine.Report(diag.Defect(diag.DefectUnhandledModeOption, "job executor: %v", err))
			return
		}

		var changes []depgraph.Node
		for _, r := range results {
			jobOutcomes[r.Input] = r.Outcome
			if r.Outcome != buildrecord.JobSucceeded {
				if r.Outcome == buildrecord.JobFailed {
					engine.Report(diag.Defect(diag.DefectUnhandledModeOption, "job for %q failed: %v", r.Input, r.Err))
				}
				continue
			}
			path, found := p.OutputFileMap.Lookup(r.Input, plan.OutputDependencies)
			if !found {
				continue
			}
			summary, err := d.Summaries.Decode(path)
			if err != nil {
				engine.Report(diag.Warning(diag.WarnBuildRecordMalformed, "dependency summary for %q: %v", r.Input, err))
				continue
			}
			c, ok := graph.Integrate(summary, depgraph.InputHandle(r.Input))
			if !ok {
				engine.Report(diag.Warning(diag.WarnBuildRecordMalformed, "dependency summary for %q is malformed", r.Input))
				continue
			}
			changes = append(changes, c.Nodes...)
		}

		next := collections.Set[depgraph.InputHandle]{}
		if len(changes) > 0 {
			graph.ClearTracedForChanged(changes)
			for _, in := range graph.FindSourceFilesToRecompileWhenNodesChange(changes) {
				if !compiled.Contains(in) {
					next.Add(in)
				}
			}
		}
		wave = orderByModTime(next)
	}

	if dotPath != "" {
		if err := writeDotFile(graph, dotPath); err != nil {
			engine.Report(diag.Warning(diag.WarnBuildRecordMalformed, "writing dependency graph dot file: %v", err))
		}
	}

	modTimes := map[string]time.Time{}
	for _, in := range p.Inputs {
		if info, err := os.Stat(in.Path); err == nil {
			modTimes[in.Path] = info.ModTime()
		}
	}

	d.Records.Write(recordPath, buildrecord.Record{
		ToolVersion:   d.ToolVersion,
		ArgsHash:      argsHash,
		StartedAt:     buildStart,
		InputModTimes: modTimes,
		JobOutcomes:   jobOutcomes,
	}, engine)
}

// writeDotFile dumps g as Graphviz dot to path, the opt-in debug artifact
// -emit-dependency-graph-dot requests. It never participates in recompile
// decisions.
func writeDotFile(g *depgraph.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return depgraph.WriteDot(g, f)
}

// scheduledInput orders each wave's job list by modification time, oldest
// first, with ties broken by input path.
type scheduledInput struct {
	Input   depgraph.InputHandle
	ModTime time.Time
}

func (s scheduledInput) Less(other scheduledInput) bool {
	if s.ModTime.Equal(other.ModTime) {
		return s.Input < other.Input
	}
	return s.ModTime.Before(other.ModTime)
}

// orderByModTime returns inputs sorted oldest-modified first via a
// PriorityQueue. Inputs whose modification time can't be read are treated
// as having the zero time, so they come first, in string order.
func orderByModTime(inputs collections.Set[depgraph.InputHandle]) []depgraph.InputHandle {
	queue := collections.NewEmptyPriorityQueue[scheduledInput]()
	for in := range inputs {
		modTime := time.Time{}
		if info, err := os.Stat(string(in)); err == nil {
			modTime = info.ModTime()
		}
		queue.Push(scheduledInput{Input: in, ModTime: modTime})
	}

	ordered := make([]depgraph.InputHandle, 0, len(inputs))
	for !queue.Empty() {
		ordered = append(ordered, queue.Pop().Input)
	}
	return ordered
}
