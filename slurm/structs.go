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

// JobInfo is the queue state of one job or one array task as reported by
// squeue.
type JobInfo struct {
	ID      string
	Name    string
	State   string
	Reason  string
	RunTime string
}

// transientStates are the queue states a job goes through before settling,
// monitoring keeps on while a task is in one of them.
var transientStates = map[string]struct{}{
	"RUNNING":     {},
	"PENDING":     {},
	"COMPLETING":  {},
	"CONFIGURING": {},
	"SIGNALING":   {},
	"RESIZING":    {},
}

// completedState is the only successful terminal state. Anything else
// terminal (FAILED, CANCELLED, TIMEOUT, OUT_OF_MEMORY, ...) is a failure.
const completedState = "COMPLETED"

// unknownState is reported when the job is no longer known to the queue,
// typically because the scheduler already purged it.
const unknownState = "UNKNOWN"

func isTransientState(state string) bool {
	_, ok := transientStates[state]
	return ok
}
