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

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/marl/foldrun/helper/tabutil"
	"github.com/marl/foldrun/slurm"
)

func init() {
	RootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status <jobID> [<jobID>...]",
	Short: "Show the queue state of submitted job arrays",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfig()
		client := slurm.NewClient(cfg.Job)
		ctx := context.Background()

		table := tabutil.NewTable()
		table.AddHeaders("Task id", "Name", "State", "Reason", "Run time")
		for _, jobID := range args {
			infos, err := client.JobInfo(ctx, jobID)
			if err != nil {
				if slurm.IsNoJobFoundError(err) {
					table.AddRow(jobID, "", colorizeState("UNKNOWN"), "no longer queued", "")
					continue
				}
				errExit(err)
			}
			for _, info := range infos {
				table.AddRow(info.ID, info.Name, colorizeState(info.State), info.Reason, info.RunTime)
			}
		}
		fmt.Println(table.Render())
		return nil
	},
}

func colorizeState(state string) string {
	if noColor {
		return state
	}
	switch state {
	case "COMPLETED":
		return color.New(color.FgHiGreen, color.Bold).SprintFunc()(state)
	case "FAILED", "CANCELLED", "TIMEOUT", "OUT_OF_MEMORY", "NODE_FAIL", "BOOT_FAIL", "DEADLINE":
		return color.New(color.FgHiRed, color.Bold).SprintFunc()(state)
	case "RUNNING", "COMPLETING":
		return color.CyanString("%s", state)
	case "PENDING", "CONFIGURING":
		return color.New(color.FgHiYellow, color.Bold).SprintFunc()(state)
	default:
		return color.New(color.Bold).SprintFunc()(state)
	}
}
