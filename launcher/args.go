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
	"strconv"

	"github.com/marl/foldrun/config"
)

// TrainerArgs assembles the training program command line for one fold.
//
// The flag order is fixed so that the invocation is reproducible across runs.
// The credential flags are always emitted, empty or not, and the fold value is
// forwarded verbatim as the last positional argument.
func TrainerArgs(cfg config.Configuration, fold string) []string {
	args := []string{
		"--random-state", strconv.Itoa(cfg.RandomState),
		"--model-type", cfg.ModelType,
		"--feature-mode", cfg.FeatureMode,
		"--num-epochs", strconv.Itoa(cfg.NumEpochs),
		"--train-batch-size", strconv.Itoa(cfg.TrainBatchSize),
		"--gsheet-id", cfg.GSheetID,
		"--google-dev-app-name", cfg.GoogleDevAppName,
	}
	if cfg.ParameterSearch {
		args = append(args, "--parameter-search")
	}
	if cfg.ParameterSearchTrainWithoutValid {
		args = append(args, "--parameter-search-train-without-valid")
	}
	if cfg.ParameterSearchNoValidFold {
		args = append(args, "--parameter-search-no-valid-fold")
	}
	args = append(args,
		"--parameter-search-valid-ratio", strconv.FormatFloat(cfg.ParameterSearchValidRatio, 'g', -1, 64),
		"--svm-kernel-type", cfg.SVMKernelType,
	)
	if cfg.Verbose {
		args = append(args, "--verbose")
	}
	return append(args, cfg.FeaturesDirectory, cfg.OutputDirectory, fold)
}
