// Copyright 2024 Matrix Origin
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

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/matrixorigin/vectorkit/pkg/config"
	"github.com/matrixorigin/vectorkit/pkg/logutil"
)

func main() {
	if err := runMain(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runMain(args []string, out io.Writer) error {
	flags := pflag.NewFlagSet("vecbench", pflag.ContinueOnError)
	configFile := flags.String("cfg", "", "toml configuration, defaults are used when empty")
	iterations := flags.Int("iterations", 0, "runs per workload")
	elements := flags.Int("elements", 0, "elements touched by each run")
	workers := flags.Int("workers", 0, "size of the worker pool")
	workloads := flags.StringSlice("workloads", nil, "workloads to run")
	allocator := flags.String("allocator", "", "allocator kind: go, class or mmap")
	limit := flags.Uint64("limit", 0, "allocator byte budget, 0 for unlimited")
	metricsAddr := flags.String("metrics-addr", "", "address serving prometheus metrics")
	logLevel := flags.String("log-level", "", "log level")
	if err := flags.Parse(args); err != nil {
		return err
	}

	cfg, err := parseConfig(*configFile)
	if err != nil {
		return err
	}
	if flags.Changed("iterations") {
		cfg.Bench.Iterations = *iterations
	}
	if flags.Changed("elements") {
		cfg.Bench.Elements = *elements
	}
	if flags.Changed("workers") {
		cfg.Bench.Workers = *workers
	}
	if flags.Changed("workloads") {
		cfg.Bench.Workloads = *workloads
	}
	if flags.Changed("allocator") {
		cfg.Allocator.Kind = *allocator
	}
	if flags.Changed("limit") {
		cfg.Allocator.Limit = *limit
	}
	if flags.Changed("metrics-addr") {
		cfg.Bench.MetricsAddr = *metricsAddr
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = *logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	setupLogger(cfg)

	b, err := newBench(cfg)
	if err != nil {
		return err
	}
	defer b.close()

	reports, err := b.run()
	if err != nil {
		return err
	}
	for _, r := range reports {
		if r.err != nil {
			logutil.Error("workload failed", zap.String("workload", r.name), zap.Error(r.err))
			fmt.Fprintf(out, "%-14s failed: %v\n", r.name, r.err)
			continue
		}
		fmt.Fprintf(out, "%-14s %s\n", r.name, r.result)
	}
	return firstError(reports)
}

func parseConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}
