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
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/marl/foldrun/launcher"
	"github.com/marl/foldrun/log"
)

func init() {
	RootCmd.AddCommand(launchCmd)
}

var launchCmd = &cobra.Command{
	Use:   "launch",
	Short: "Run the training program for one fold",
	Long: `Run the training program for one cross-validation fold and wait for it.

The fold comes from --fold when given, else from the scheduler array-task
index. After the trainer terminates the output directory tree is made
readable to the configured group. The foldrun exit code mirrors the trainer
exit code.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfig()
		if err := launcher.InitTelemetry(cfg.Telemetry); err != nil {
			log.Printf("telemetry disabled: %v", err)
		}

		res, err := launcher.New(cfg).Launch(context.Background())
		if res != nil {
			printLaunchResult(res)
		}
		if err != nil {
			fmt.Println(err)
			if res != nil && res.ExitCode > 0 {
				os.Exit(res.ExitCode)
			}
			os.Exit(1)
		}
		return nil
	},
}

func printLaunchResult(res *launcher.Result) {
	status := "succeeded"
	sprint := fmt.Sprint
	if res.ExitCode != 0 {
		status = fmt.Sprintf("failed with exit code %d", res.ExitCode)
		if !noColor {
			sprint = color.New(color.FgHiRed, color.Bold).SprintFunc()
		}
	} else if !noColor {
		sprint = color.New(color.FgHiGreen, color.Bold).SprintFunc()
	}
	fmt.Printf("fold %s %s after %s (run %s)\n", res.Fold, sprint(status), res.Duration.Round(time.Second), res.ID)
}
