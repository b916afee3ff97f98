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

// Package profiler times repeated runs of a function and summarizes them.
package profiler

import (
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"

	"github.com/matrixorigin/vectorkit/pkg/common/moerr"
	"github.com/matrixorigin/vectorkit/pkg/util"
)

// stubbed in tests
var monotime = util.MonotimeNS

type Result struct {
	Runs []time.Duration
	Mean time.Duration
	// sample standard deviation, 0 for a single run
	StdDev time.Duration
	// StdDev / Mean
	RelError float64
}

// Profile runs f n times and times every run. It stops at the first error.
func Profile(n int, f func() error) (*Result, error) {
	if n <= 0 {
		return nil, moerr.NewInvalidArgNoCtx("profile runs", n)
	}
	runs := make([]time.Duration, 0, n)
	samples := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		start := monotime()
		if err := f(); err != nil {
			return nil, err
		}
		d := time.Duration(monotime() - start)
		runs = append(runs, d)
		samples = append(samples, float64(d))
	}

	res := &Result{Runs: runs}
	if n == 1 {
		res.Mean = runs[0]
		return res, nil
	}
	mean, std := stat.MeanStdDev(samples, nil)
	res.Mean = time.Duration(math.Round(mean))
	res.StdDev = time.Duration(math.Round(std))
	if mean > 0 {
		res.RelError = std / mean
	}
	return res, nil
}

func (r *Result) String() string {
	if len(r.Runs) == 1 {
		return fmt.Sprintf("duration: %v", r.Mean)
	}
	return fmt.Sprintf("duration: %v +- %v, error: %.5f", r.Mean, r.StdDev, r.RelError)
}

// Fields renders r for structured logging.
func (r *Result) Fields() []zap.Field {
	return []zap.Field{
		zap.Int("runs", len(r.Runs)),
		zap.Duration("mean", r.Mean),
		zap.Duration("stddev", r.StdDev),
		zap.Float64("error", r.RelError),
	}
}
