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
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWaitUntilCompleted(t *testing.T) {
	t.Parallel()
	outputs := []string{
		"4242_0|j|RUNNING|None|0:01\n4242_1|j|RUNNING|None|0:01\n",
		"4242_0|j|COMPLETED|None|0:10\n4242_1|j|COMPLETING|None|0:10\n",
		"4242_0|j|COMPLETED|None|0:10\n4242_1|j|COMPLETED|None|0:11\n",
	}
	call := 0
	runner := &MockCommandRunner{
		MockRunCommand: func(name string, args ...string) (string, error) {
			out := outputs[call]
			if call < len(outputs)-1 {
				call++
			}
			return out, nil
		},
	}
	state, err := testClient(runner).Wait(context.Background(), "4242", time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, "COMPLETED", state)
	assert.Equal(t, len(outputs)-1, call)
}

func TestWaitFailedState(t *testing.T) {
	t.Parallel()
	runner := &MockCommandRunner{
		MockRunCommand: func(name string, args ...string) (string, error) {
			return "4242_0|j|COMPLETED|None|0:10\n4242_1|j|FAILED|NonZeroExitCode|0:10\n", nil
		},
	}
	state, err := testClient(runner).Wait(context.Background(), "4242", time.Millisecond)
	require.Error(t, err)
	assert.Equal(t, "FAILED", state)
	assert.Contains(t, err.Error(), `finished unsuccessfully with state "FAILED"`)
}

func TestWaitPurgedJobIsUnknown(t *testing.T) {
	t.Parallel()
	runner := &MockCommandRunner{
		MockRunCommand: func(name string, args ...string) (string, error) {
			return "", nil
		},
	}
	state, err := testClient(runner).Wait(context.Background(), "4242", time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, "UNKNOWN", state)
}

func TestWaitCancelled(t *testing.T) {
	t.Parallel()
	runner := &MockCommandRunner{
		MockRunCommand: func(name string, args ...string) (string, error) {
			return "4242_0|j|RUNNING|None|0:01\n", nil
		},
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := testClient(runner).Wait(ctx, "4242", time.Millisecond)
	require.Error(t, err)
	assert.Equal(t, context.Canceled, err)
}

func TestAggregateState(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		infos []JobInfo
		want  string
	}{
		{name: "AllCompleted", infos: []JobInfo{{State: "COMPLETED"}, {State: "COMPLETED"}}, want: "COMPLETED"},
		{name: "StillPending", infos: []JobInfo{{State: "COMPLETED"}, {State: "PENDING"}}, want: "PENDING"},
		{name: "FirstFailureWins", infos: []JobInfo{{State: "TIMEOUT"}, {State: "FAILED"}}, want: "TIMEOUT"},
		{name: "TransientBeatsFailure", infos: []JobInfo{{State: "FAILED"}, {State: "RUNNING"}}, want: "RUNNING"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, aggregateState(tt.infos))
		})
	}
}
