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
	"path/filepath"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/marl/foldrun/config"
	"github.com/marl/foldrun/launcher"
	"github.com/marl/foldrun/log"
)

var cfgFile string

// DefaultModules are the environment modules loaded before the trainer runs
var DefaultModules = []string{"cuda/8.0.44", "cudnn/8.0v5.1"}

func init() {
	setConfig()
	cobra.OnInitialize(initConfig)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// enable ability to specify config file via flag
		viper.SetConfigFile(cfgFile)
	}
	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		log.Debugln("Using config file:", viper.ConfigFileUsed())
	} else {
		log.Debugln("Config not found... ")
	}
	log.SetDebug(viper.GetBool("debug"))
}

func setConfig() {
	pf := RootCmd.PersistentFlags()

	pf.StringVarP(&cfgFile, "config", "c", "", "config file (default is ./config.foldrun.[json|yaml], $HOME/.foldrun/ then /etc/foldrun/)")
	pf.BoolVar(&noColor, "no-color", false, "Disable coloring output")
	pf.BoolP("debug", "d", false, "Enable debug logging")

	// Flags definition for the training invocation
	pf.String("working_directory", "", "Directory the training program is started in")
	pf.String("source_directory", "", "Directory of the training program checkout")
	pf.String("features_directory", "", "Directory of the precomputed input features")
	pf.String("output_directory", "", "Directory the training program writes models and metrics to")
	pf.String("output_group", "", "Group given read access to the output directory tree after a run")
	pf.String("trainer_program", config.DefaultTrainerProgram, "Name or path of the external training program")
	pf.String("fold", "", "Cross-validation fold to train. Defaults to the scheduler array-task index")
	pf.Int("folds", config.DefaultFolds, "Total number of cross-validation folds")
	pf.Int("random_state", config.DefaultRandomState, "Random seed forwarded to the training program")
	pf.String("model_type", config.DefaultModelType, "Classifier architecture (e.g. mlp, svm)")
	pf.String("feature_mode", config.DefaultFeatureMode, "Input feature aggregation mode (e.g. framewise)")
	pf.Int("num_epochs", config.DefaultNumEpochs, "Number of training epochs")
	pf.Int("train_batch_size", config.DefaultTrainBatchSize, "Training batch size")
	pf.String("gsheet_id", "", "Spreadsheet id of the external reporting integration (may be empty)")
	pf.String("google_dev_app_name", "", "Application name of the external reporting integration (may be empty)")
	pf.Bool("parameter_search", true, "Run a hyperparameter search")
	pf.Bool("parameter_search_train_without_valid", true, "Retrain on train+valid data after the search")
	pf.Bool("parameter_search_no_valid_fold", true, "Use a random validation split instead of a held-out fold")
	pf.Float64("parameter_search_valid_ratio", config.DefaultParameterSearchValidRatio, "Validation split ratio used during the search")
	pf.String("svm_kernel_type", config.DefaultSVMKernelType, "SVM kernel when the model type is an SVM")
	pf.Bool("verbose", true, "Ask the training program for verbose output")
	pf.StringSlice("modules", DefaultModules, "Environment modules loaded before the trainer runs")
	pf.String("modules_command", "", "Path of the environment-modules command (default modulecmd)")

	// Flags definition for the scheduler resource request
	pf.String("job_name", config.DefaultJobName, "Scheduler job name")
	pf.String("job_partition", "", "Scheduler partition to submit to")
	pf.Int("job_nodes", 1, "Node count requested per array task")
	pf.String("job_gres", config.DefaultJobGres, "Generic resources requested per array task (e.g. gpu:1)")
	pf.String("job_memory", config.DefaultJobMemory, "Memory requested per array task, plain MB or human readable (e.g. 64GB)")
	pf.Int("job_cpus_per_task", config.DefaultJobCPUsPerTask, "CPUs requested per array task")
	pf.String("job_time", config.DefaultJobTime, "Wall-clock limit requested per array task")
	pf.String("job_mail_type", "", "Scheduler notification policy (e.g. ALL, END, FAIL)")
	pf.String("job_mail_user", "", "Notification recipient")
	pf.String("sbatch_path", "", "Path of the sbatch tool (default resolved through PATH)")
	pf.String("squeue_path", "", "Path of the squeue tool (default resolved through PATH)")
	pf.String("scancel_path", "", "Path of the scancel tool (default resolved through PATH)")
	pf.Duration("monitoring_time_interval", config.DefaultMonitoringTimeInterval, "Queue polling interval while waiting for a job")

	// Flags definition for telemetry
	pf.String("telemetry_service_name", "", "Metrics service name")
	pf.String("telemetry_statsd_address", "", "Address of a statsd server to report run metrics to")
	pf.Bool("telemetry_disable_hostname", false, "Do not prefix metrics with the hostname")

	// Environment Variables
	viper.SetEnvPrefix("foldrun") // will be uppercased automatically - become "FOLDRUN_"
	viper.AutomaticEnv()          // read in environment variables that match

	for _, key := range []string{
		"debug",
		"working_directory", "source_directory", "features_directory", "output_directory",
		"output_group", "trainer_program", "fold", "folds", "random_state", "model_type",
		"feature_mode", "num_epochs", "train_batch_size", "gsheet_id", "google_dev_app_name",
		"parameter_search", "parameter_search_train_without_valid", "parameter_search_no_valid_fold",
		"parameter_search_valid_ratio", "svm_kernel_type", "verbose", "modules", "modules_command",
		"job_name", "job_partition", "job_nodes", "job_gres", "job_memory", "job_cpus_per_task",
		"job_time", "job_mail_type", "job_mail_user", "sbatch_path", "squeue_path", "scancel_path",
		"monitoring_time_interval",
		"telemetry_service_name", "telemetry_statsd_address", "telemetry_disable_hostname",
	} {
		viper.BindPFlag(key, pf.Lookup(key))
		viper.BindEnv(key)
	}

	// The scheduler injects the fold as the array-task index
	viper.BindEnv("fold", "FOLDRUN_FOLD", launcher.ArrayTaskIDEnvVar)

	// Configuration file directories
	viper.SetConfigName("config.foldrun") // name of config file (without extension)
	viper.AddConfigPath("/etc/foldrun/")
	if home, err := homedir.Dir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".foldrun"))
	}
	viper.AddConfigPath(".")
}

func getConfig() config.Configuration {
	configuration := config.Configuration{}
	configuration.WorkingDirectory = viper.GetString("working_directory")
	configuration.SourceDirectory = viper.GetString("source_directory")
	configuration.FeaturesDirectory = viper.GetString("features_directory")
	configuration.OutputDirectory = viper.GetString("output_directory")
	configuration.OutputGroup = viper.GetString("output_group")
	configuration.TrainerProgram = viper.GetString("trainer_program")
	configuration.Fold = viper.GetString("fold")
	configuration.Folds = viper.GetInt("folds")
	configuration.RandomState = viper.GetInt("random_state")
	configuration.ModelType = viper.GetString("model_type")
	configuration.FeatureMode = viper.GetString("feature_mode")
	configuration.NumEpochs = viper.GetInt("num_epochs")
	configuration.TrainBatchSize = viper.GetInt("train_batch_size")
	configuration.GSheetID = viper.GetString("gsheet_id")
	configuration.GoogleDevAppName = viper.GetString("google_dev_app_name")
	configuration.ParameterSearch = viper.GetBool("parameter_search")
	configuration.ParameterSearchTrainWithoutValid = viper.GetBool("parameter_search_train_without_valid")
	configuration.ParameterSearchNoValidFold = viper.GetBool("parameter_search_no_valid_fold")
	configuration.ParameterSearchValidRatio = viper.GetFloat64("parameter_search_valid_ratio")
	configuration.SVMKernelType = viper.GetString("svm_kernel_type")
	configuration.Verbose = viper.GetBool("verbose")
	configuration.Modules = viper.GetStringSlice("modules")
	configuration.ModulesCommand = viper.GetString("modules_command")
	configuration.Job.Name = viper.GetString("job_name")
	configuration.Job.Partition = viper.GetString("job_partition")
	configuration.Job.Nodes = viper.GetInt("job_nodes")
	configuration.Job.Gres = viper.GetString("job_gres")
	configuration.Job.Memory = viper.GetString("job_memory")
	configuration.Job.CPUsPerTask = viper.GetInt("job_cpus_per_task")
	configuration.Job.Time = viper.GetString("job_time")
	configuration.Job.MailType = viper.GetString("job_mail_type")
	configuration.Job.MailUser = viper.GetString("job_mail_user")
	configuration.Job.SbatchPath = viper.GetString("sbatch_path")
	configuration.Job.SqueuePath = viper.GetString("squeue_path")
	configuration.Job.ScancelPath = viper.GetString("scancel_path")
	configuration.Job.MonitoringTimeInterval = viper.GetDuration("monitoring_time_interval")
	configuration.Telemetry.ServiceName = viper.GetString("telemetry_service_name")
	configuration.Telemetry.StatsdAddress = viper.GetString("telemetry_statsd_address")
	configuration.Telemetry.DisableHostName = viper.GetBool("telemetry_disable_hostname")
	configuration.Extra = viper.GetStringMap("extra")
	return configuration
}
