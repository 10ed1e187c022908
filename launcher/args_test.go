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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marl/foldrun/config"
)

func fullConfig() config.Configuration {
	return config.Configuration{
		FeaturesDirectory:                "/data/features",
		OutputDirectory:                  "/data/out",
		TrainerProgram:                   "train",
		RandomState:                      20171021,
		ModelType:                        "mlp",
		FeatureMode:                      "framewise",
		NumEpochs:                        50,
		TrainBatchSize:                   32,
		ParameterSearch:                  true,
		ParameterSearchTrainWithoutValid: true,
		ParameterSearchNoValidFold:       true,
		ParameterSearchValidRatio:        0.15,
		SVMKernelType:                    "linear",
		Verbose:                          true,
	}
}

func TestTrainerArgsStableOrder(t *testing.T) {
	t.Parallel()
	args := TrainerArgs(fullConfig(), "3")
	expected := []string{
		"--random-state", "20171021",
		"--model-type", "mlp",
		"--feature-mode", "framewise",
		"--num-epochs", "50",
		"--train-batch-size", "32",
		"--gsheet-id", "",
		"--google-dev-app-name", "",
		"--parameter-search",
		"--parameter-search-train-without-valid",
		"--parameter-search-no-valid-fold",
		"--parameter-search-valid-ratio", "0.15",
		"--svm-kernel-type", "linear",
		"--verbose",
		"/data/features", "/data/out", "3",
	}
	require.Equal(t, expected, args)

	// The assembly must be deterministic
	assert.Equal(t, args, TrainerArgs(fullConfig(), "3"))
}

func TestTrainerArgsFoldPassedVerbatim(t *testing.T) {
	t.Parallel()
	// No transformation nor validation of the fold value is performed here,
	// the trainer owns that contract
	for _, fold := range []string{"0", "7", "007", "not-a-number"} {
		args := TrainerArgs(fullConfig(), fold)
		require.Equal(t, fold, args[len(args)-1])
	}
}

func TestTrainerArgsCredentialsForwarded(t *testing.T) {
	t.Parallel()
	cfg := fullConfig()
	cfg.GSheetID = "sheet-42"
	cfg.GoogleDevAppName = "reporter"
	args := TrainerArgs(cfg, "1")
	assert.Contains(t, args, "sheet-42")
	assert.Contains(t, args, "reporter")
}

func TestTrainerArgsBooleanFlagsOmittedWhenOff(t *testing.T) {
	t.Parallel()
	cfg := fullConfig()
	cfg.ParameterSearch = false
	cfg.ParameterSearchTrainWithoutValid = false
	cfg.ParameterSearchNoValidFold = false
	cfg.Verbose = false
	args := TrainerArgs(cfg, "1")
	assert.NotContains(t, args, "--parameter-search")
	assert.NotContains(t, args, "--parameter-search-train-without-valid")
	assert.NotContains(t, args, "--parameter-search-no-valid-fold")
	assert.NotContains(t, args, "--verbose")
	// Positional arguments keep closing the command line
	require.Equal(t, []string{"/data/features", "/data/out", "1"}, args[len(args)-3:])
}
