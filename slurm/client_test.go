// Copyright 2026 The foldrun Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package slurm

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marl/foldrun/config"
)

// MockCommandRunner allows to mock the scheduler client tools
type MockCommandRunner struct {
	MockRunCommand func(name string, args ...string) (string, error)
	calls          [][]string
}

func (m *MockCommandRunner) RunCommand(ctx context.Context, name string, args ...string) (string, error) {
	m.calls = append(m.calls, append([]string{name}, args...))
	if m.MockRunCommand != nil {
		return m.MockRunCommand(name, args...)
	}
	return "", nil
}

func testClient(runner commandRunner) *Client {
	c := NewClient(config.JobConfig{})
	c.runner = runner
	return c
}

func TestSubmitParsesJobID(t *testing.T) {
	t.Parallel()
	runner := &MockCommandRunner{
		MockRunCommand: func(name string, args ...string) (string, error) {
			return "Submitted batch job 4242\n", nil
		},
	}
	jobID, err := testClient(runner).Submit(context.Background(), "/tmp/foldrun_1.sbatch")
	require.NoError(t, err)
	assert.Equal(t, "4242", jobID)
	require.Len(t, runner.calls, 1)
	assert.Equal(t, []string{"sbatch", "/tmp/foldrun_1.sbatch"}, runner.calls[0])
}

func TestSubmitUnexpectedOutput(t *testing.T) {
	t.Parallel()
	runner := &MockCommandRunner{
		MockRunCommand: func(name string, args ...string) (string, error) {
			return "sbatch: error: invalid partition specified", nil
		},
	}
	_, err := testClient(runner).Submit(context.Background(), "x.sbatch")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected sbatch output")
}

func TestSubmitCommandFailure(t *testing.T) {
	t.Parallel()
	runner := &MockCommandRunner{
		MockRunCommand: func(name string, args ...string) (string, error) {
			return "sbatch: error: Batch script is empty!", errors.New("exit status 1")
		},
	}
	_, err := testClient(runner).Submit(context.Background(), "x.sbatch")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Batch script is empty")
}

func TestJobInfoParsesArrayTasks(t *testing.T) {
	t.Parallel()
	runner := &MockCommandRunner{
		MockRunCommand: func(name string, args ...string) (string, error) {
			return "4242_0|classifier-train|RUNNING|None|2:03\n4242_1|classifier-train|PENDING|Resources|0:00\n", nil
		},
	}
	infos, err := testClient(runner).JobInfo(context.Background(), "4242")
	require.NoError(t, err)
	require.Len(t, infos, 2)
	assert.Equal(t, JobInfo{ID: "4242_0", Name: "classifier-train", State: "RUNNING", Reason: "None", RunTime: "2:03"}, infos[0])
	assert.Equal(t, "PENDING", infos[1].State)
}

func TestJobInfoNoJobFound(t *testing.T) {
	t.Parallel()
	runner := &MockCommandRunner{
		MockRunCommand: func(name string, args ...string) (string, error) {
			return "", nil
		},
	}
	_, err := testClient(runner).JobInfo(context.Background(), "4242")
	require.Error(t, err)
	assert.True(t, IsNoJobFoundError(err))

	runner = &MockCommandRunner{
		MockRunCommand: func(name string, args ...string) (string, error) {
			return "slurm_load_jobs error: Invalid job id specified", errors.New("exit status 1")
		},
	}
	_, err = testClient(runner).JobInfo(context.Background(), "4242")
	require.Error(t, err)
	assert.True(t, IsNoJobFoundError(err))
}

func TestJobInfoMalformedOutput(t *testing.T) {
	t.Parallel()
	runner := &MockCommandRunner{
		MockRunCommand: func(name string, args ...string) (string, error) {
			return "nonsense", nil
		},
	}
	_, err := testClient(runner).JobInfo(context.Background(), "4242")
	require.Error(t, err)
	assert.False(t, IsNoJobFoundError(err))
}

func TestCancel(t *testing.T) {
	t.Parallel()
	runner := &MockCommandRunner{}
	require.NoError(t, testClient(runner).Cancel(context.Background(), "4242"))
	require.Len(t, runner.calls, 1)
	assert.Equal(t, []string{"scancel", "4242"}, runner.calls[0])
}
