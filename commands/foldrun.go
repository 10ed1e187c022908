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

// Package commands implements the foldrun command-line interface.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var noColor bool

// RootCmd is the root of the foldrun commands tree
var RootCmd = &cobra.Command{
	Use:   "foldrun",
	Short: "Cross-validation training job launcher",
	Long: `foldrun launches one classifier-training run per cross-validation fold,
either directly on the current machine or as a scheduler job array.
The fold number of a scheduled run comes from the array-task index.
`,
	SilenceErrors: true,
	Run: func(cmd *cobra.Command, args []string) {
		err := cmd.Help()
		if err != nil {
			fmt.Print(err)
		}
	},
}

func errExit(msg interface{}) {
	fmt.Println(msg)
	os.Exit(1)
}
