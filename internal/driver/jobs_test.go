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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lattice-lang/latticec/internal/buildrecord"
)

func TestProcessJobExecutorRunsEachJob(t *testing.T) {
	e := ProcessJobExecutor{}
	jobs := []Job{
		{Input: "a.lat", Command: "true"},
		{Input: "b.lat", Command: "true"},
	}

	results, err := e.Run(context.Background(), jobs)
	require.NoError(t, err)
	require.Len(t, results, 2)
	for _, r := range results {
		assert.Equal(t, buildrecord.JobSucceeded, r.Outcome)
	}
}

func TestProcessJobExecutorReportsFailure(t *testing.T) {
	e := ProcessJobExecutor{}
	jobs := []Job{{Input: "a.lat", Command: "false"}}

	results, err := e.Run(context.Background(), jobs)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, buildrecord.JobFailed, results[0].Outcome)
	assert.Error(t, results[0].Err)
}

func TestProcessJobExecutorEmptyJobList(t *testing.T) {
	e := ProcessJobExecutor{}
	results, err := e.Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}
