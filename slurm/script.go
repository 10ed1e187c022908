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
	"io"
	"os"
	"path/filepath"
	"text/template"

	"github.com/pkg/errors"

	"github.com/marl/foldrun/config"
	"github.com/marl/foldrun/helper/sizeutil"
	"github.com/marl/foldrun/helper/stringutil"
)

// The generated batch script re-invokes this binary for the launch itself so
// that fold resolution, module loading and the permission fix-up follow the
// exact same code path as a local run.
var scriptTemplate = template.Must(template.New("sbatch").Parse(`#!/bin/bash
#SBATCH --job-name={{.JobName}}
#SBATCH --array=0-{{.ArrayMax}}
#SBATCH --nodes={{.Nodes}}
{{- if .Partition}}
#SBATCH --partition={{.Partition}}
{{- end}}
{{- if .Gres}}
#SBATCH --gres={{.Gres}}
{{- end}}
{{- if ne .MemoryMB 0}}
#SBATCH --mem={{.MemoryMB}}
{{- end}}
{{- if ne .CPUsPerTask 0}}
#SBATCH --cpus-per-task={{.CPUsPerTask}}
{{- end}}
{{- if .Time}}
#SBATCH --time={{.Time}}
{{- end}}
{{- if .MailType}}
#SBATCH --mail-type={{.MailType}}
{{- end}}
{{- if .MailUser}}
#SBATCH --mail-user={{.MailUser}}
{{- end}}
#SBATCH --output={{.OutputPattern}}

{{range .Modules -}}
module load {{.}}
{{end}}
{{.Executable}} launch{{if .ConfigFile}} --config {{.ConfigFile}}{{end}} --fold "${SLURM_ARRAY_TASK_ID}"
`))

// ScriptParams feed the batch script template.
type ScriptParams struct {
	JobName       string
	ArrayMax      int
	Partition     string
	Nodes         int
	Gres          string
	MemoryMB      int
	CPUsPerTask   int
	Time          string
	MailType      string
	MailUser      string
	OutputPattern string
	Modules       []string
	Executable    string
	ConfigFile    string
}

// NewScriptParams translates the configuration into template parameters.
// executable is the path of the foldrun binary the script will re-invoke and
// configFile, when not empty, is forwarded to that invocation.
func NewScriptParams(cfg config.Configuration, executable, configFile string) (ScriptParams, error) {
	p := ScriptParams{
		JobName:       cfg.Job.Name,
		ArrayMax:      cfg.Folds - 1,
		Partition:     cfg.Job.Partition,
		Nodes:         cfg.Job.Nodes,
		Gres:          cfg.Job.Gres,
		CPUsPerTask:   cfg.Job.CPUsPerTask,
		Time:          cfg.Job.Time,
		MailType:      cfg.Job.MailType,
		MailUser:      cfg.Job.MailUser,
		OutputPattern: "%x-%A_%a.out",
		Modules:       cfg.Modules,
		Executable:    executable,
		ConfigFile:    configFile,
	}
	if cfg.Folds <= 0 {
		return p, errors.Errorf("invalid fold count %d", cfg.Folds)
	}
	if p.JobName == "" {
		p.JobName = config.DefaultJobName
	}
	if p.Nodes <= 0 {
		p.Nodes = 1
	}
	if p.Executable == "" {
		return p, errors.New("missing launcher executable path")
	}
	if cfg.Job.Memory != "" {
		mb, err := sizeutil.ConvertToMB(cfg.Job.Memory)
		if err != nil {
			return p, errors.Wrapf(err, "invalid job memory request %q", cfg.Job.Memory)
		}
		p.MemoryMB = mb
	}
	return p, nil
}

// RenderScript writes the batch script for the given parameters.
func RenderScript(w io.Writer, p ScriptParams) error {
	return errors.Wrap(scriptTemplate.Execute(w, p), "failed to render batch script")
}

// WriteScript renders the batch script into a uniquely named file under dir
// and returns its path.
func WriteScript(dir string, p ScriptParams) (string, error) {
	path := filepath.Join(dir, stringutil.UniqueTimestampedName("foldrun_", ".sbatch"))
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0700)
	if err != nil {
		return "", errors.Wrapf(err, "failed to create batch script %q", path)
	}
	defer f.Close()
	if err := RenderScript(f, p); err != nil {
		return "", err
	}
	return path, nil
}
