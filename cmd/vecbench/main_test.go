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
	"bytes"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lni/goutils/leaktest"
	"github.com/panjf2000/ants/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/matrixorigin/vectorkit/pkg/common/moerr"
	"github.com/matrixorigin/vectorkit/pkg/config"
	"github.com/matrixorigin/vectorkit/pkg/container/vector"
)

func TestMain(m *testing.M) {
	// the package-level default pool would otherwise show up in every
	// leak check
	ants.Release()
	m.Run()
}

func TestWorkloads(t *testing.T) {
	for name, w := range workloads {
		t.Run(name, func(t *testing.T) {
			for _, n := range []int{0, 1, 5, 100} {
				require.NoError(t, w(nil, n), "elements %d", n)
			}
		})
	}
	require.Len(t, workloads, len(config.DefaultWorkloads))
	for _, name := range config.DefaultWorkloads {
		require.Contains(t, workloads, name)
	}
}

func TestWorkloadsOOM(t *testing.T) {
	cfg := config.Default()
	cfg.Allocator.Limit = 64
	cfg.Bench.Iterations = 1
	cfg.Bench.Elements = 1000
	cfg.Bench.Workloads = []string{"append"}

	b, err := newBench(cfg)
	require.NoError(t, err)
	defer b.close()
	reports, err := b.run()
	require.NoError(t, err)
	require.Len(t, reports, 1)
	require.True(t, moerr.IsMoErrCode(reports[0].err, moerr.ErrOOM))
	require.Error(t, firstError(reports))
}

func TestWorkloadPanic(t *testing.T) {
	workloads["pop-empty"] = func(opts []vector.Option[int64], n int) error {
		v, err := vector.New(opts...)
		if err != nil {
			return err
		}
		defer v.Free()
		v.PopBack()
		return nil
	}
	defer delete(workloads, "pop-empty")

	cfg := config.Default()
	cfg.Bench.Iterations = 1
	cfg.Bench.Elements = 10
	cfg.Bench.Workers = 2
	cfg.Bench.Workloads = []string{"append", "pop-empty"}

	b, err := newBench(cfg)
	require.NoError(t, err)
	defer b.close()
	reports, err := b.run()
	require.NoError(t, err)
	require.Len(t, reports, 2)
	require.NoError(t, reports[0].err)
	require.NotNil(t, reports[0].result)
	require.Nil(t, reports[1].result)
	require.True(t, moerr.IsMoErrCode(reports[1].err, moerr.ErrInternal))
	require.Contains(t, reports[1].err.Error(), "pop-empty")
	require.Equal(t, reports[1].err, firstError(reports))
}

func TestBench(t *testing.T) {
	defer leaktest.AfterTest(t)()

	cfg := config.Default()
	cfg.Allocator.Kind = "class"
	cfg.Allocator.Metrics = true
	cfg.Bench.Iterations = 2
	cfg.Bench.Elements = 200
	cfg.Bench.Workers = 2

	b, err := newBench(cfg)
	require.NoError(t, err)
	reports, err := b.run()
	require.NoError(t, err)
	require.NoError(t, firstError(reports))
	require.Len(t, reports, len(config.DefaultWorkloads))
	for i, r := range reports {
		require.Equal(t, config.DefaultWorkloads[i], r.name)
		require.Len(t, r.result.Runs, 2)
	}

	// every workload frees what it allocates
	require.Equal(t, float64(0), testutil.ToFloat64(b.metrics.allocator.InuseBytes))
	require.Greater(t, testutil.ToFloat64(b.metrics.allocator.AllocateObjects), float64(0))
	require.Equal(t, len(config.DefaultWorkloads), testutil.CollectAndCount(b.metrics.runs))
	b.close()
}

func TestServeMetrics(t *testing.T) {
	defer leaktest.AfterTest(t)()

	m, err := newBenchMetrics("go")
	require.NoError(t, err)
	m.allocator.InuseBytes.Set(42)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	srv := serveMetrics(ln, m.registry)
	defer shutdownMetrics(srv)

	client := &http.Client{Transport: &http.Transport{DisableKeepAlives: true}}
	resp, err := client.Get("http://" + ln.Addr().String() + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), `vectorkit_vecbench_inuse_bytes{allocator="go"} 42`)
}

func TestRunMain(t *testing.T) {
	var out bytes.Buffer
	err := runMain([]string{
		"--iterations", "1",
		"--elements", "50",
		"--workers", "1",
		"--workloads", "append,resize",
		"--allocator", "mmap",
	}, &out)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	require.True(t, strings.HasPrefix(lines[0], "append"))
	require.True(t, strings.HasPrefix(lines[1], "resize"))
}

func TestRunMainConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bench.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[vector]
default-capacity = 0

[bench]
iterations = 1
elements = 10
workloads = ["copy-assign"]
`), 0644))

	var out bytes.Buffer
	require.NoError(t, runMain([]string{"--cfg", path}, &out))
	require.True(t, strings.HasPrefix(out.String(), "copy-assign"))

	// flags override the file
	out.Reset()
	err := runMain([]string{"--cfg", path, "--workloads", "sort"}, &out)
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrBadConfig))

	err = runMain([]string{"--cfg", filepath.Join(t.TempDir(), "missing.toml")}, &out)
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrFileNotFound))

	require.Error(t, runMain([]string{"--no-such-flag"}, &out))
}

func TestWorkloadOptions(t *testing.T) {
	cfg := config.Default()
	cfg.Vector.DefaultCapacity = 32
	b, err := newBench(cfg)
	require.NoError(t, err)
	defer b.close()

	v, err := vector.New(b.opts...)
	require.NoError(t, err)
	require.Equal(t, 32, v.Cap())
	v.Free()
}
