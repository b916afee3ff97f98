// Copyright 2021 Matrix Origin
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

// Package config loads the TOML configuration shared by the container
// tooling: logging, vector defaults, the allocator chain and benchmarks.
package config

import (
	"errors"
	"io/fs"
	"os"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap/zapcore"

	"github.com/matrixorigin/vectorkit/pkg/common/malloc"
	"github.com/matrixorigin/vectorkit/pkg/common/moerr"
	"github.com/matrixorigin/vectorkit/pkg/container/vector"
	"github.com/matrixorigin/vectorkit/pkg/logutil"
)

const (
	defaultIterations = 10
	defaultElements   = 100000
	defaultWorkers    = 4
)

// DefaultWorkloads lists every workload known to vecbench.
var DefaultWorkloads = []string{
	"append",
	"insert-front",
	"erase-front",
	"resize",
	"copy-assign",
}

type Config struct {
	Log       logutil.LogConfig `toml:"log"`
	Vector    VectorConfig      `toml:"vector"`
	Allocator malloc.Config     `toml:"allocator"`
	Bench     BenchConfig       `toml:"bench"`
}

// VectorConfig is the [vector] section.
type VectorConfig struct {
	//slots reserved by an empty vector. default: 4
	DefaultCapacity int `toml:"default-capacity"`
}

// BenchConfig is the [bench] section.
type BenchConfig struct {
	//runs per workload. default: 10
	Iterations int `toml:"iterations"`

	//elements touched by each run. default: 100000
	Elements int `toml:"elements"`

	//size of the goroutine pool running workloads. default: 4
	Workers int `toml:"workers"`

	//workloads to run, all of them when empty
	Workloads []string `toml:"workloads"`

	//address serving /metrics, disabled when empty
	MetricsAddr string `toml:"metrics-addr"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{
		Log: logutil.LogConfig{
			Level:  "info",
			Format: "console",
		},
		Vector: VectorConfig{
			DefaultCapacity: vector.DefaultCapacity,
		},
		Bench: BenchConfig{
			Iterations: defaultIterations,
			Elements:   defaultElements,
			Workers:    defaultWorkers,
			Workloads:  append([]string(nil), DefaultWorkloads...),
		},
	}
	cfg.Allocator.SetDefaults()
	return cfg
}

// Load decodes path over the defaults and validates the result. Keys the
// file sets override defaults, unknown keys are rejected.
func Load(path string) (*Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, moerr.NewFileNotFoundNoCtx(path)
		}
		return nil, moerr.NewBadConfigNoCtx("%s: %v", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			keys = append(keys, key.String())
		}
		return nil, moerr.NewBadConfigNoCtx("%s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	if len(cfg.Bench.Workloads) == 0 {
		cfg.Bench.Workloads = append([]string(nil), DefaultWorkloads...)
	}
	cfg.Allocator.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Dump writes cfg as TOML, e.g. to generate a template file.
func Dump(cfg *Config, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(cfg)
}

func (c *Config) Validate() error {
	if c.Log.Level != "" {
		if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
			return moerr.NewBadConfigNoCtx("log level %q", c.Log.Level)
		}
	}
	switch c.Log.Format {
	case "", "console", "json":
	default:
		return moerr.NewBadConfigNoCtx("log format %q", c.Log.Format)
	}
	if c.Vector.DefaultCapacity < 0 {
		return moerr.NewBadConfigNoCtx("default-capacity must not be negative, got %d", c.Vector.DefaultCapacity)
	}
	if err := c.Allocator.Validate(); err != nil {
		return err
	}
	if c.Bench.Iterations <= 0 {
		return moerr.NewBadConfigNoCtx("iterations must be positive, got %d", c.Bench.Iterations)
	}
	if c.Bench.Elements < 0 {
		return moerr.NewBadConfigNoCtx("elements must not be negative, got %d", c.Bench.Elements)
	}
	if c.Bench.Workers <= 0 {
		return moerr.NewBadConfigNoCtx("workers must be positive, got %d", c.Bench.Workers)
	}
	for _, w := range c.Bench.Workloads {
		if !slices.Contains(DefaultWorkloads, w) {
			return moerr.NewBadConfigNoCtx("unknown workload %q", w)
		}
	}
	return nil
}
