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

// Package launcher runs one training-program invocation per cross-validation
// fold and applies the shared-storage permission fix-up afterwards.
package launcher

import (
	"context"
	"os"
	"time"

	"github.com/armon/go-metrics"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	uuid "github.com/satori/go.uuid"

	"github.com/marl/foldrun/config"
	"github.com/marl/foldrun/helper/executil"
	"github.com/marl/foldrun/log"
)

// ArrayTaskIDEnvVar is the scheduler-provided per-array-task index consumed
// as the fold number when no explicit fold is configured.
const ArrayTaskIDEnvVar = "SLURM_ARRAY_TASK_ID"

// A Result describes one terminated training-program invocation.
type Result struct {
	// ID is a unique identifier of this launch attempt.
	ID string
	// Fold is the cross-validation fold forwarded to the trainer.
	Fold string
	// Command is the full argv of the trainer invocation.
	Command []string
	// ExitCode is the trainer exit status. It is -1 when the trainer could
	// not be started or was killed before exiting on its own.
	ExitCode int
	// StartTime and Duration delimit the trainer run.
	StartTime time.Time
	Duration  time.Duration
}

// processRunner abstracts the blocking execution of the training program so
// tests can intercept it.
type processRunner interface {
	run(ctx context.Context, dir string, env []string, name string, args ...string) error
}

type defaultRunner struct{}

func (defaultRunner) run(ctx context.Context, dir string, env []string, name string, args ...string) error {
	cmd := executil.Command(ctx, name, args...)
	cmd.Dir = dir
	cmd.Env = env
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// A Launcher translates the configuration and the scheduler array index into
// a single trainer invocation.
type Launcher struct {
	cfg     config.Configuration
	runner  processRunner
	modules *moduleSystem
}

// New creates a Launcher for the given configuration.
func New(cfg config.Configuration) *Launcher {
	return &Launcher{
		cfg:     cfg,
		runner:  defaultRunner{},
		modules: newModuleSystem(cfg.ModulesCommand),
	}
}

// ResolveFold returns the fold forwarded to the trainer: the configured fold
// if any, else the scheduler array-task index, verbatim in both cases. No
// range check is performed, the trainer owns fold validation.
func (l *Launcher) ResolveFold() (string, error) {
	fold := l.cfg.Fold
	if fold == "" {
		fold = os.Getenv(ArrayTaskIDEnvVar)
	}
	if fold == "" {
		return "", errors.Errorf("no fold to train: set --fold or run as a scheduler array task (%s)", ArrayTaskIDEnvVar)
	}
	return fold, nil
}

// Launch runs the training program for the resolved fold and waits for it to
// terminate.
//
// The permission fix-up on the output directory runs whatever the trainer
// exit status is: sibling array tasks keep writing to the same tree and a
// failed fold must not leave it unreadable to the group. Trainer failure and
// fix-up failures are both reported, the returned Result always carries the
// trainer exit code.
func (l *Launcher) Launch(ctx context.Context) (*Result, error) {
	fold, err := l.ResolveFold()
	if err != nil {
		return nil, err
	}

	env := os.Environ()
	if len(l.cfg.Modules) > 0 {
		moduleEnv, err := l.modules.Load(ctx, l.cfg.Modules)
		if err != nil {
			// The toolchain may already be on PATH so a load failure is not
			// fatal, the trainer will fail by itself if it is not.
			log.Printf("failed to load environment modules: %v", err)
		}
		env = append(env, moduleEnv...)
	}

	args := TrainerArgs(l.cfg, fold)
	res := &Result{
		ID:        uuid.NewV4().String(),
		Fold:      fold,
		Command:   append([]string{l.cfg.TrainerProgram}, args...),
		StartTime: time.Now(),
	}

	log.Printf("launch %s: running %q for fold %s", res.ID, l.cfg.TrainerProgram, fold)
	log.Debugf("launch %s: full command %v", res.ID, res.Command)
	runErr := l.runner.run(ctx, l.cfg.WorkingDirectory, env, l.cfg.TrainerProgram, args...)
	res.Duration = time.Since(res.StartTime)
	res.ExitCode = executil.ExitCode(runErr)
	metrics.MeasureSince([]string{"trainer", "run"}, res.StartTime)
	metrics.IncrCounter([]string{"trainer", "runs"}, 1)

	var errs *multierror.Error
	if runErr != nil {
		metrics.IncrCounter([]string{"trainer", "failures"}, 1)
		errs = multierror.Append(errs, errors.Wrapf(runErr, "training program %q failed for fold %s", l.cfg.TrainerProgram, fold))
	}

	if l.cfg.OutputDirectory != "" {
		if err := FixPermissions(l.cfg.OutputDirectory, l.cfg.OutputGroup); err != nil {
			errs = multierror.Append(errs, errors.Wrapf(err, "failed to fix permissions on output directory %q", l.cfg.OutputDirectory))
		}
	}

	return res, errs.ErrorOrNil()
}
