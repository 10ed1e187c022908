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
	"time"

	"github.com/pkg/errors"

	"github.com/marl/foldrun/config"
	"github.com/marl/foldrun/log"
)

// Wait polls the queue until every array task of the given job reaches a
// terminal state and returns the aggregate state.
//
// COMPLETED is the only aggregate state returned without error. When the
// scheduler has already purged the job from its queue the state is UNKNOWN:
// the job is gone, whether it succeeded must be read from its outputs.
func (c *Client) Wait(ctx context.Context, jobID string, interval time.Duration) (string, error) {
	if interval <= 0 {
		interval = config.DefaultMonitoringTimeInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-ticker.C:
			infos, err := c.JobInfo(ctx, jobID)
			if err != nil {
				if IsNoJobFoundError(err) {
					log.Debugf("job %q is no longer queued", jobID)
					return unknownState, nil
				}
				return "", err
			}
			state := aggregateState(infos)
			if isTransientState(state) {
				log.Debugf("job %q state: %s", jobID, state)
				continue
			}
			if state == completedState {
				return state, nil
			}
			return state, errors.Errorf("job %q finished unsuccessfully with state %q", jobID, state)
		}
	}
}

// aggregateState reduces per-array-task states to one job state: still
// transient while any task is, then the first failure, else COMPLETED.
func aggregateState(infos []JobInfo) string {
	failed := ""
	for _, info := range infos {
		if isTransientState(info.State) {
			return info.State
		}
		if info.State != completedState && failed == "" {
			failed = info.State
		}
	}
	if failed != "" {
		return failed
	}
	return completedState
}
