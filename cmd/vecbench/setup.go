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
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/matrixorigin/vectorkit/pkg/common/malloc"
	"github.com/matrixorigin/vectorkit/pkg/config"
	"github.com/matrixorigin/vectorkit/pkg/logutil"
)

const (
	metricsNamespace = "vectorkit"
	metricsSubsystem = "vecbench"
)

var setupLoggerOnce sync.Once

func setupLogger(cfg *config.Config) {
	setupLoggerOnce.Do(func() {
		logutil.SetupMOLogger(&cfg.Log)
	})
}

type benchMetrics struct {
	registry  *prometheus.Registry
	allocator *malloc.Metrics
	runs      *prometheus.HistogramVec
}

func newBenchMetrics(kind string) (*benchMetrics, error) {
	m := &benchMetrics{
		registry:  prometheus.NewRegistry(),
		allocator: malloc.NewMetrics(metricsNamespace, metricsSubsystem, prometheus.Labels{"allocator": kind}),
		runs: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "workload_run_seconds",
			Help:      "Duration of a single workload run.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}, []string{"workload"}),
	}
	if err := m.allocator.Register(m.registry); err != nil {
		return nil, err
	}
	if err := m.registry.Register(m.runs); err != nil {
		return nil, err
	}
	return m, nil
}

// serveMetrics serves the registry on ln until the returned server is shut down.
func serveMetrics(ln net.Listener, reg *prometheus.Registry) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logutil.Error("metrics server stopped", zap.Error(err))
		}
	}()
	logutil.Info("serving metrics", zap.String("addr", ln.Addr().String()))
	return srv
}

func shutdownMetrics(srv *http.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logutil.Warn("metrics server shutdown", zap.Error(err))
	}
}
