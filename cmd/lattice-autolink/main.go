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

// Command lattice-autolink walks a workspace manifest declaring
// external_dep(name = ..., module = ...) statements and writes the
// resulting name-to-module index internal/depgraph consults when it
// resolves an externalDepend(name) designator.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bazelbuild/buildtools/build"
	"github.com/spf13/cobra"

	"github.com/lattice-lang/latticec/internal/collections"
	"github.com/lattice-lang/latticec/internal/extindex"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "lattice-autolink: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var manifestPath, outputPath string
	var verbose bool

	cmd := &cobra.Command{
		Use:   "lattice-autolink",
		Short: "Resolve a workspace manifest into an external dependency index",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(manifestPath, outputPath, verbose)
		},
	}

	cmd.Flags().StringVar(&manifestPath, "manifest", "./WORKSPACE.lattice", "path to the manifest containing external_dep directives")
	cmd.Flags().StringVar(&outputPath, "out", "./external-deps.json", "path to write the resolved index to")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "log each resolved or ambiguous dependency")

	return cmd
}

func run(manifestPath, outputPath string, verbose bool) error {
	content, err := os.ReadFile(manifestPath)
	if err != nil {
		return fmt.Errorf("reading manifest %s: %w", manifestPath, err)
	}

	manifestFile, err := build.ParseModule(filepath.Base(manifestPath), content)
	if err != nil {
		return fmt.Errorf("parsing manifest %s: %w", manifestPath, err)
	}

	deps := extractExternalDeps(*manifestFile)
	idx := resolveIndex(deps, verbose)

	if err := idx.Validate(); err != nil {
		return fmt.Errorf("resolved index is inconsistent: %w", err)
	}

	if err := os.WriteFile(outputPath, idx.Encode(), 0o644); err != nil {
		return fmt.Errorf("writing index to %s: %w", outputPath, err)
	}
	return nil
}

// externalDep is one external_dep(name = "...", module = "...") directive
// read from the manifest.
type externalDep struct {
	Name   string
	Module string
}

func extractExternalDeps(manifestFile build.File) []externalDep {
	return collections.FilterMapSlice(manifestFile.Stmt, parseExternalDep)
}

func parseExternalDep(stmt build.Expr) (externalDep, bool) {
	call, ok := stmt.(*build.CallExpr)
	if !ok {
		return externalDep{}, false
	}
	receiver, ok := call.X.(*build.Ident)
	if !ok || receiver.Name != "external_dep" {
		return externalDep{}, false
	}
	return parseExternalDepArgs(call.List)
}

func parseExternalDepArgs(args []build.Expr) (externalDep, bool) {
	dep := externalDep{}
	for idx, arg := range args {
		switch arg := arg.(type) {
		case *build.StringExpr:
			switch idx {
			case 0:
				dep.Name = arg.Value
			case 1:
				dep.Module = arg.Value
			}
		case *build.AssignExpr:
			param, ok := arg.LHS.(*build.Ident)
			if !ok {
				continue
			}
			rhs, ok := arg.RHS.(*build.StringExpr)
			if !ok {
				continue
			}
			switch param.Name {
			case "name":
				dep.Name = rhs.Value
			case "module":
				dep.Module = rhs.Value
			}
		}
	}
	if dep.Name == "" || dep.Module == "" {
		return externalDep{}, false
	}
	return dep, true
}

// resolveIndex groups deps by name, moving any name claimed by more than
// one distinct module into the ambiguous section.
func resolveIndex(deps []externalDep, verbose bool) extindex.Index {
	byName := map[string][]extindex.ModuleReference{}
	var order []string
	for _, dep := range deps {
		if _, seen := byName[dep.Name]; !seen {
			order = append(order, dep.Name)
		}
		byName[dep.Name] = append(byName[dep.Name], extindex.ModuleReference{Module: dep.Module})
	}

	idx := extindex.Index{Unique: extindex.UniqueIndex{}, Ambiguous: extindex.AmbiguousIndex{}}
	for _, name := range order {
		candidates := collections.ToSet(byName[name])
		switch len(candidates) {
		case 1:
			idx.Unique[name] = byName[name][0]
			if verbose {
				fmt.Fprintf(os.Stderr, "%-30s: resolved -> %s\n", name, byName[name][0].Module)
			}
		default:
			sorted := candidates.SortedValues(func(a, b extindex.ModuleReference) int {
				if a.Module < b.Module {
					return -1
				}
				if a.Module > b.Module {
					return 1
				}
				return 0
			})
			idx.Ambiguous[name] = sorted
			if verbose {
				fmt.Fprintf(os.Stderr, "%-30s: ambiguous among %v\n", name, sorted)
			}
		}
	}
	return idx
}
