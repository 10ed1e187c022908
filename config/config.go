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

// Package config defines configuration structures
package config

import (
	"strings"
	"time"

	"github.com/spf13/cast"
)

// DefaultRandomState is the default seed forwarded to the training program
const DefaultRandomState int = 20171021

// DefaultModelType is the default classifier architecture
const DefaultModelType string = "mlp"

// DefaultFeatureMode is the default input feature aggregation mode
const DefaultFeatureMode string = "framewise"

// DefaultNumEpochs is the default number of training epochs
const DefaultNumEpochs int = 50

// DefaultTrainBatchSize is the default training batch size
const DefaultTrainBatchSize int = 32

// DefaultParameterSearchValidRatio is the default validation split ratio
// used during hyperparameter search
const DefaultParameterSearchValidRatio float64 = 0.15

// DefaultSVMKernelType is the default kernel used when the model type is an SVM
const DefaultSVMKernelType string = "linear"

// DefaultFolds is the default number of cross-validation folds, and therefore
// the default size of a submitted job array
const DefaultFolds int = 10

// DefaultTrainerProgram is the default name of the external training program
const DefaultTrainerProgram string = "train"

// DefaultJobName is the default scheduler job name
const DefaultJobName string = "classifier-train"

// DefaultJobTime is the default wall-clock limit requested from the scheduler
const DefaultJobTime string = "7-00:00:00"

// DefaultJobMemory is the default memory request per job-array task
const DefaultJobMemory string = "64GB"

// DefaultJobGres is the default generic-resource request (one GPU)
const DefaultJobGres string = "gpu:1"

// DefaultJobCPUsPerTask is the default CPU request per job-array task
const DefaultJobCPUsPerTask int = 4

// DefaultMonitoringTimeInterval is the default polling interval used while
// waiting for a submitted job to reach a terminal state
const DefaultMonitoringTimeInterval = 5 * time.Second

// Configuration holds config information filled by Cobra and Viper (see
// commands package for more information)
type Configuration struct {
	WorkingDirectory                 string
	SourceDirectory                  string
	FeaturesDirectory                string
	OutputDirectory                  string
	OutputGroup                      string
	TrainerProgram                   string
	Fold                             string
	Folds                            int
	RandomState                      int
	ModelType                        string
	FeatureMode                      string
	NumEpochs                        int
	TrainBatchSize                   int
	GSheetID                         string
	GoogleDevAppName                 string
	ParameterSearch                  bool
	ParameterSearchTrainWithoutValid bool
	ParameterSearchNoValidFold       bool
	ParameterSearchValidRatio        float64
	SVMKernelType                    string
	Verbose                          bool
	Modules                          []string
	ModulesCommand                   string
	Job                              JobConfig
	Telemetry                        Telemetry
	Extra                            ExtraConfig
}

// JobConfig holds the resource-request metadata declared to the scheduler and
// the paths of the scheduler client tools.
type JobConfig struct {
	Name                   string
	Partition              string
	Nodes                  int
	Gres                   string
	Memory                 string
	CPUsPerTask            int
	Time                   string
	MailType               string
	MailUser               string
	SbatchPath             string
	SqueuePath             string
	ScancelPath            string
	MonitoringTimeInterval time.Duration
}

// Telemetry holds the configuration for run metrics
type Telemetry struct {
	ServiceName     string
	StatsdAddress   string
	DisableHostName bool
}

// ExtraConfig holds scheduler passthrough parameters for a given site.
//
// It has methods to automatically cast data to the desired type.
type ExtraConfig map[string]interface{}

// Get returns the raw value of a given configuration key
func (ec ExtraConfig) Get(name string) interface{} {
	return ec[name]
}

// GetString returns the value of the given key casted into a string.
// An empty string is returned if not found.
func (ec ExtraConfig) GetString(name string) string {
	return cast.ToString(ec[name])
}

// GetStringOrDefault returns the value of the given key casted into a string.
// The given default value is returned if not found.
func (ec ExtraConfig) GetStringOrDefault(name, defaultValue string) string {
	if res := ec.GetString(name); res != "" {
		return res
	}
	return defaultValue
}

// GetBool returns the value of the given key casted into a boolean.
// False is returned if not found.
func (ec ExtraConfig) GetBool(name string) bool {
	return cast.ToBool(ec[name])
}

// GetInt returns the value of the given key casted into an int.
// Zero is returned if not found.
func (ec ExtraConfig) GetInt(name string) int {
	return cast.ToInt(ec[name])
}

// GetStringSlice returns the value of the given key casted into a slice of
// string. If the corresponding raw value is a string, it is split on comas.
// A nil or empty slice is returned if not found.
func (ec ExtraConfig) GetStringSlice(name string) []string {
	val := ec[name]
	switch v := val.(type) {
	case string:
		return strings.Split(v, ",")
	default:
		return cast.ToStringSlice(ec[name])
	}
}
