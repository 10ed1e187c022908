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

package launcher

import (
	"context"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/marl/foldrun/helper/executil"
	"github.com/marl/foldrun/log"
)

const defaultModulesCommand = "modulecmd"

// outputRunner runs a command and returns its combined output. It exists so
// tests can mock the environment-modules command.
type outputRunner interface {
	runOutput(ctx context.Context, name string, args ...string) (string, error)
}

type execOutputRunner struct{}

func (execOutputRunner) runOutput(ctx context.Context, name string, args ...string) (string, error) {
	out, err := executil.Command(ctx, name, args...).CombinedOutput()
	return string(out), err
}

// moduleSystem loads environment modules (CUDA toolkit, cuDNN, ...) the way a
// login shell would, by asking the module command for the "sh" rendition of a
// load and applying the emitted variable assignments to the trainer
// environment.
type moduleSystem struct {
	command string
	runner  outputRunner
}

func newModuleSystem(command string) *moduleSystem {
	if command == "" {
		command = defaultModulesCommand
	}
	return &moduleSystem{command: command, runner: execOutputRunner{}}
}

// Load returns the environment changes of the named modules as "KEY=VALUE"
// entries. Modules are loaded in order, later modules see nothing of earlier
// ones: each load is an independent module command invocation.
func (m *moduleSystem) Load(ctx context.Context, names []string) ([]string, error) {
	var env []string
	for _, name := range names {
		log.Debugf("loading module %q via %q", name, m.command)
		out, err := m.runner.runOutput(ctx, m.command, "sh", "load", name)
		if err != nil {
			return env, errors.Wrapf(err, "failed to load module %q: %s", name, strings.TrimSpace(out))
		}
		env = append(env, ParseShellExports(out)...)
	}
	return env, nil
}

// ParseShellExports extracts variable assignments from the sh output of the
// module command, e.g.:
//
//	CUDA_HOME=/share/apps/cuda/8.0.44 ;export CUDA_HOME;
//	PATH="/share/apps/cuda/8.0.44/bin:$PATH" ;export PATH;
//
// Entries are returned in "KEY=VALUE" form, with surrounding quotes removed
// and $NAME/${NAME} references expanded against the current environment, as
// the shell evaluating that output would do. Modules prepending to PATH rely
// on this.
func ParseShellExports(out string) []string {
	var env []string
	entries := strings.FieldsFunc(out, func(r rune) bool {
		return r == '\n' || r == ';'
	})
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		entry = strings.TrimPrefix(entry, "export ")
		eq := strings.Index(entry, "=")
		if eq <= 0 {
			continue
		}
		key := strings.TrimSpace(entry[:eq])
		if strings.ContainsAny(key, " \t") {
			continue
		}
		val := strings.TrimSpace(entry[eq+1:])
		val = strings.Trim(val, `"'`)
		val = os.Expand(val, os.Getenv)
		env = append(env, key+"="+val)
	}
	return env
}
