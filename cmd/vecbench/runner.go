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
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	"github.com/matrixorigin/vectorkit/pkg/common/malloc"
	"github.com/matrixorigin/vectorkit/pkg/common/moerr"
	"github.com/matrixorigin/vectorkit/pkg/config"
	"github.com/matrixorigin/vectorkit/pkg/container/vector"
	"github.com/matrixorigin/vectorkit/pkg/logutil"
	"github.com/matrixorigin/vectorkit/pkg/util/profiler"
)

type report struct {
	name   string
	result *profiler.Result
	err    error
}

func firstError(reports []report) error {
	for _, r := range reports {
		if r.err != nil {
			return r.err
		}
	}
	return nil
}

// bench owns everything shared by the workloads: the allocator chain, the
// worker pool and the metrics.
type bench struct {
	cfg     *config.Config
	alloc   malloc.Allocator[int64]
	opts    []vector.Option[int64]
	pool    *ants.Pool
	metrics *benchMetrics
	server  *http.Server
}

func newBench(cfg *config.Config) (*bench, error) {
	metrics, err := newBenchMetrics(cfg.Allocator.Kind)
	if err != nil {
		return nil, err
	}
	allocCfg := cfg.Allocator
	if cfg.Bench.MetricsAddr != "" {
		allocCfg.Metrics = true
	}
	alloc, err := malloc.NewNumericAllocator[int64](allocCfg, metrics.allocator)
	if err != nil {
		return nil, err
	}
	pool, err := ants.NewPool(cfg.Bench.Workers)
	if err != nil {
		return nil, err
	}

	b := &bench{
		cfg:     cfg,
		alloc:   alloc,
		pool:    pool,
		metrics: metrics,
		opts: []vector.Option[int64]{
			vector.WithAllocator(alloc),
			vector.WithCapacity[int64](cfg.Vector.DefaultCapacity),
			vector.WithLogger[int64](logutil.GetLogger("vector")),
		},
	}
	if cfg.Bench.MetricsAddr != "" {
		ln, err := net.Listen("tcp", cfg.Bench.MetricsAddr)
		if err != nil {
			pool.Release()
			return nil, err
		}
		b.server = serveMetrics(ln, metrics.registry)
	}
	return b, nil
}

// run profiles every configured workload, each on its own pool worker.
// Workloads never share a vector.
func (b *bench) run() ([]report, error) {
	names := b.cfg.Bench.Workloads
	reports := make([]report, len(names))
	var wg sync.WaitGroup
	for i, name := range names {
		reports[i].name = name
		w, ok := workloads[name]
		if !ok {
			reports[i].err = moerr.NewBadConfigNoCtx("unknown workload %q", name)
			continue
		}
		wg.Add(1)
		err := b.pool.Submit(func() {
			defer wg.Done()
			defer func() {
				if p := recover(); p != nil {
					logutil.Error("workload panicked", zap.String("workload", name), zap.Any("panic", p))
					reports[i].result = nil
					reports[i].err = moerr.NewInternalErrorNoCtx("workload %s panicked: %v", name, p)
				}
			}()
			reports[i].result, reports[i].err = b.profile(name, w)
		})
		if err != nil {
			wg.Done()
			wg.Wait()
			return nil, err
		}
	}
	wg.Wait()
	return reports, nil
}

func (b *bench) profile(name string, w workload) (*profiler.Result, error) {
	runs := b.metrics.runs.WithLabelValues(name)
	res, err := profiler.Profile(b.cfg.Bench.Iterations, func() error {
		start := time.Now()
		defer func() {
			runs.Observe(time.Since(start).Seconds())
		}()
		return w(b.opts, b.cfg.Bench.Elements)
	})
	if err != nil {
		return nil, err
	}
	logutil.Info("workload finished",
		append([]zap.Field{zap.String("workload", name)}, res.Fields()...)...)
	return res, nil
}

func (b *bench) close() {
	if b.server != nil {
		shutdownMetrics(b.server)
	}
	b.pool.Release()
}
