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

// Command latticec is the Lattice compiler driver: it parses argv through
// internal/options, derives a build plan through internal/plan, and — for
// modes that support it — runs the incremental build-record/dependency-graph
// pipeline through internal/driver.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/lattice-lang/latticec/internal/driver"
)

// version is overridden at link time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cwd, err := os.Getwd()
	if err != nil {
		log.Fatalf("latticec: failed to resolve working directory: %v", err)
	}

	d := driver.New(version)
	ok, engine := d.Run(context.Background(), filepath.Base(os.Args[0]), os.Args[1:], cwd)

	for _, diagnostic := range engine.All() {
		fmt.Fprintf(d.Stderr, "latticec: %s\n", diagnostic.Error())
	}

	if !ok {
		os.Exit(1)
	}
}
