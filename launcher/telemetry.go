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
	"time"

	"github.com/armon/go-metrics"
	"github.com/pkg/errors"

	"github.com/marl/foldrun/config"
)

// InitTelemetry configures the process-global metrics sink used to time
// trainer runs. Without a statsd address metrics stay in an in-memory sink
// dumpable with SIGUSR1.
func InitTelemetry(cfg config.Telemetry) error {
	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "foldrun"
	}
	metricsConf := metrics.DefaultConfig(serviceName)
	metricsConf.EnableHostname = !cfg.DisableHostName

	var sink metrics.MetricSink
	if cfg.StatsdAddress != "" {
		var err error
		sink, err = metrics.NewStatsdSink(cfg.StatsdAddress)
		if err != nil {
			return errors.Wrapf(err, "failed to connect statsd sink to %q", cfg.StatsdAddress)
		}
	} else {
		inmem := metrics.NewInmemSink(10*time.Second, time.Minute)
		metrics.DefaultInmemSignal(inmem)
		sink = inmem
	}

	_, err := metrics.NewGlobal(metricsConf, sink)
	return errors.Wrap(err, "failed to initialize telemetry")
}
