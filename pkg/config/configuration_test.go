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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/matrixorigin/vectorkit/pkg/common/malloc"
	"github.com/matrixorigin/vectorkit/pkg/common/moerr"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vectorkit.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	require.Equal(t, 4, cfg.Vector.DefaultCapacity)
	require.Equal(t, malloc.KindGo, cfg.Allocator.Kind)
	require.Equal(t, DefaultWorkloads, cfg.Bench.Workloads)

	// callers may modify their copy
	cfg.Bench.Workloads[0] = "resize"
	require.Equal(t, "append", Default().Bench.Workloads[0])
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[log]
level = "debug"
format = "json"
filename = "/tmp/vectorkit.log"
max-size = 64

[vector]
default-capacity = 16

[allocator]
kind = "class"
limit = 1048576
class-size-factor = 2.0
metrics = true

[bench]
iterations = 3
elements = 1000
workers = 2
workloads = ["append", "resize"]
metrics-addr = "127.0.0.1:9100"
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "debug", cfg.Log.Level)
	require.Equal(t, "json", cfg.Log.Format)
	require.Equal(t, 64, cfg.Log.MaxSize)
	require.Equal(t, 16, cfg.Vector.DefaultCapacity)
	require.Equal(t, malloc.Config{
		Kind:            malloc.KindClass,
		Limit:           1 << 20,
		ClassSizeFactor: 2,
		MaxBufferSize:   malloc.DefaultMaxBufferSize,
		Metrics:         true,
	}, cfg.Allocator)
	require.Equal(t, BenchConfig{
		Iterations:  3,
		Elements:    1000,
		Workers:     2,
		Workloads:   []string{"append", "resize"},
		MetricsAddr: "127.0.0.1:9100",
	}, cfg.Bench)
}

func TestLoadPartial(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
[bench]
iterations = 7
`))
	require.NoError(t, err)
	want := Default()
	want.Bench.Iterations = 7
	require.Equal(t, want, cfg)

	cfg, err = Load(writeConfig(t, `
[bench]
workloads = []
`))
	require.NoError(t, err)
	require.Equal(t, DefaultWorkloads, cfg.Bench.Workloads)

	// explicit zero is honored
	cfg, err = Load(writeConfig(t, `
[vector]
default-capacity = 0
`))
	require.NoError(t, err)
	require.Equal(t, 0, cfg.Vector.DefaultCapacity)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		code    uint16
	}{
		{"syntax", "[log\nlevel = 1", moerr.ErrBadConfig},
		{"type", "[bench]\niterations = \"ten\"", moerr.ErrBadConfig},
		{"unknown key", "[vector]\ncapacity = 3", moerr.ErrBadConfig},
		{"unknown section", "[cache]\nsize = 3", moerr.ErrBadConfig},
		{"level", "[log]\nlevel = \"loud\"", moerr.ErrBadConfig},
		{"format", "[log]\nformat = \"xml\"", moerr.ErrBadConfig},
		{"capacity", "[vector]\ndefault-capacity = -1", moerr.ErrBadConfig},
		{"allocator kind", "[allocator]\nkind = \"arena\"", moerr.ErrBadConfig},
		{"class factor", "[allocator]\nkind = \"class\"\nclass-size-factor = 0.5", moerr.ErrBadConfig},
		{"iterations", "[bench]\niterations = 0", moerr.ErrBadConfig},
		{"elements", "[bench]\nelements = -1", moerr.ErrBadConfig},
		{"workers", "[bench]\nworkers = 0", moerr.ErrBadConfig},
		{"workload", "[bench]\nworkloads = [\"sort\"]", moerr.ErrBadConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			require.True(t, moerr.IsMoErrCode(err, tt.code), "%v", err)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrFileNotFound), "%v", err)
}

func TestDump(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dump.toml")
	cfg := Default()
	cfg.Allocator.Kind = malloc.KindMmap
	cfg.Bench.MetricsAddr = ":9100"
	require.NoError(t, Dump(cfg, path))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, cfg, loaded)
}
