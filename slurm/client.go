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

// Package slurm submits fold-training job arrays to the scheduler and tracks
// them through the scheduler client tools on the login node.
package slurm

import (
	"context"
	"regexp"
	"strings"

	"github.com/pkg/errors"

	"github.com/marl/foldrun/config"
	"github.com/marl/foldrun/helper/executil"
	"github.com/marl/foldrun/log"
)

// commandRunner abstracts the scheduler client tools so tests can mock them
type commandRunner interface {
	RunCommand(ctx context.Context, name string, args ...string) (string, error)
}

type localRunner struct{}

func (localRunner) RunCommand(ctx context.Context, name string, args ...string) (string, error) {
	out, err := executil.Command(ctx, name, args...).CombinedOutput()
	return string(out), err
}

type noJobFound struct {
	msg string
}

func (e *noJobFound) Error() string {
	return e.msg
}

// IsNoJobFoundError reports whether err means the job is not (or no longer)
// known to the scheduler queue.
func IsNoJobFoundError(err error) bool {
	_, ok := errors.Cause(err).(*noJobFound)
	return ok
}

// A Client drives the scheduler through its command-line tools.
type Client struct {
	runner  commandRunner
	sbatch  string
	squeue  string
	scancel string
}

// NewClient creates a scheduler client using the tool paths of the given
// configuration, defaulting to the bare tool names resolved through PATH.
func NewClient(cfg config.JobConfig) *Client {
	c := &Client{
		runner:  localRunner{},
		sbatch:  cfg.SbatchPath,
		squeue:  cfg.SqueuePath,
		scancel: cfg.ScancelPath,
	}
	if c.sbatch == "" {
		c.sbatch = "sbatch"
	}
	if c.squeue == "" {
		c.squeue = "squeue"
	}
	if c.scancel == "" {
		c.scancel = "scancel"
	}
	return c
}

var submittedRegexp = regexp.MustCompile(`Submitted batch job (\d+)`)

// Submit submits the given batch script and returns the scheduler job ID.
func (c *Client) Submit(ctx context.Context, scriptPath string) (string, error) {
	out, err := c.runner.RunCommand(ctx, c.sbatch, scriptPath)
	if err != nil {
		return "", errors.Wrapf(err, "sbatch failed: %s", strings.TrimSpace(out))
	}
	return parseSubmissionOutput(out)
}

func parseSubmissionOutput(out string) (string, error) {
	matches := submittedRegexp.FindStringSubmatch(out)
	if matches == nil {
		return "", errors.Errorf("unexpected sbatch output %q", strings.TrimSpace(out))
	}
	log.Debugf("parsed job ID %q from sbatch output", matches[1])
	return matches[1], nil
}

// JobInfo returns the queue state of the given job, one entry per array task.
// A *noJobFound error is returned when the queue no longer lists the job.
func (c *Client) JobInfo(ctx context.Context, jobID string) ([]JobInfo, error) {
	out, err := c.runner.RunCommand(ctx, c.squeue, "--noheader", "-j", jobID, "-o", "%i|%j|%T|%r|%M")
	if err != nil {
		// squeue exits non-zero for an unknown job id on most versions
		if strings.Contains(out, "Invalid job id") {
			return nil, &noJobFound{msg: "no job found with id " + jobID}
		}
		return nil, errors.Wrapf(err, "squeue failed: %s", strings.TrimSpace(out))
	}
	return parseJobInfo(out, jobID)
}

func parseJobInfo(out, jobID string) ([]JobInfo, error) {
	var infos []JobInfo
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := strings.Split(line, "|")
		if len(fields) != 5 {
			return nil, errors.Errorf("unexpected squeue output line %q", line)
		}
		infos = append(infos, JobInfo{
			ID:      fields[0],
			Name:    fields[1],
			State:   fields[2],
			Reason:  fields[3],
			RunTime: fields[4],
		})
	}
	if len(infos) == 0 {
		return nil, &noJobFound{msg: "no job found with id " + jobID}
	}
	return infos, nil
}

// Cancel cancels the given job and all its array tasks.
func (c *Client) Cancel(ctx context.Context, jobID string) error {
	out, err := c.runner.RunCommand(ctx, c.scancel, jobID)
	return errors.Wrapf(err, "scancel failed: %s", strings.TrimSpace(out))
}
