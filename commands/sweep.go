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
	"time"

	"github.com/spf13/cobra"

	"github.com/marl/foldrun/helper/tabutil"
	"github.com/marl/foldrun/launcher"
	"github.com/marl/foldrun/log"
)

func init() {
	RootCmd.AddCommand(sweepCmd)
}

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Run the training program for every fold locally",
	Long: `Run the training program for every configured fold concurrently on the
current machine, mirroring the fan-out of a scheduler job array.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfig()
		if err := launcher.InitTelemetry(cfg.Telemetry); err != nil {
			log.Printf("telemetry disabled: %v", err)
		}

		results, err := launcher.New(cfg).RunAll(context.Background())

		table := tabutil.NewTable()
		table.AddHeaders("Fold", "Run id", "Exit code", "Duration")
		for _, res := range results {
			if res == nil {
				continue
			}
			table.AddRow(res.Fold, res.ID, res.ExitCode, res.Duration.Round(time.Second))
		}
		fmt.Println(table.Render())
		if err != nil {
			errExit(err)
		}
		return nil
	},
}
