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

package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/marl/foldrun/log"
	"github.com/marl/foldrun/slurm"
)

var submitWait bool
var submitFollow bool

func init() {
	RootCmd.AddCommand(submitCmd)
	submitCmd.PersistentFlags().BoolVarP(&submitWait, "wait", "w", false, "Wait for the job array to reach a terminal state")
	submitCmd.PersistentFlags().BoolVarP(&submitFollow, "follow", "f", false, "Stream the output of the first array task (implies --wait)")
}

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit the fold sweep as a scheduler job array",
	Long: `Generate a batch script running one launch per cross-validation fold and
submit it as a job array, one array task per fold.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfig()

		executable, err := os.Executable()
		if err != nil {
			errExit(err)
		}
		scriptDir := cfg.WorkingDirectory
		if scriptDir == "" {
			scriptDir = "."
		}
		params, err := slurm.NewScriptParams(cfg, executable, viper.ConfigFileUsed())
		if err != nil {
			errExit(err)
		}
		scriptPath, err := slurm.WriteScript(scriptDir, params)
		if err != nil {
			errExit(err)
		}
		log.Debugf("generated batch script %q", scriptPath)

		ctx := context.Background()
		client := slurm.NewClient(cfg.Job)
		jobID, err := client.Submit(ctx, scriptPath)
		if err != nil {
			errExit(err)
		}
		fmt.Printf("Submitted job array %s (%d folds, script %s)\n", jobID, cfg.Folds, scriptPath)

		if !submitWait && !submitFollow {
			return nil
		}

		if submitFollow {
			// output file of the first array task, per the script output pattern
			outputFile := fmt.Sprintf("%s-%s_0.out", params.JobName, jobID)
			followCtx, stopFollowing := context.WithCancel(ctx)
			defer stopFollowing()
			go func() {
				if err := slurm.FollowOutput(followCtx, os.Stdout, outputFile); err != nil {
					log.Printf("cannot follow %q: %v", outputFile, err)
				}
			}()
		}

		state, err := client.Wait(ctx, jobID, cfg.Job.MonitoringTimeInterval)
		if err != nil {
			errExit(err)
		}
		fmt.Printf("Job %s finished with state %s\n", jobID, colorizeState(state))
		return nil
	},
}
