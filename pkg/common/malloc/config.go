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

package malloc

import (
	"github.com/matrixorigin/vectorkit/pkg/common/moerr"
)

const (
	KindGo    = "go"
	KindClass = "class"
	KindMmap  = "mmap"
)

// Config is the [allocator] section of the configuration file.
type Config struct {
	// Kind selects the base allocator: go, class or mmap.
	Kind string `toml:"kind"`
	// Limit is a byte budget, 0 means unlimited.
	Limit uint64 `toml:"limit"`
	// ClassSizeFactor and MaxBufferSize tune the class allocator.
	ClassSizeFactor float64 `toml:"class-size-factor"`
	MaxBufferSize   uint64  `toml:"max-buffer-size"`
	// Metrics wraps the chain in a MetricsAllocator.
	Metrics bool `toml:"metrics"`
}

func (c *Config) SetDefaults() {
	if c.Kind == "" {
		c.Kind = KindGo
	}
	if c.ClassSizeFactor == 0 {
		c.ClassSizeFactor = DefaultClassSizeFactor
	}
	if c.MaxBufferSize == 0 {
		c.MaxBufferSize = DefaultMaxBufferSize
	}
}

func (c *Config) Validate() error {
	switch c.Kind {
	case KindGo, KindClass, KindMmap:
	default:
		return moerr.NewBadConfigNoCtx("unknown allocator kind %q", c.Kind)
	}
	if c.Kind == KindClass && c.ClassSizeFactor <= 1 {
		return moerr.NewBadConfigNoCtx("class-size-factor must be greater than 1, got %v", c.ClassSizeFactor)
	}
	return nil
}

// NewAllocator builds the allocator chain described by cfg: base
// allocator, then the byte budget, then metrics. metrics may be nil when
// cfg.Metrics is false. The mmap kind needs a numeric element type, see
// NewNumericAllocator.
func NewAllocator[T any](cfg Config, metrics *Metrics) (Allocator[T], error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	var base Allocator[T]
	switch cfg.Kind {
	case KindGo:
		base = NewGoAllocator[T]()
	case KindClass:
		ca, err := NewClassAllocator[T](cfg.MaxBufferSize, cfg.ClassSizeFactor)
		if err != nil {
			return nil, err
		}
		base = ca
	case KindMmap:
		return nil, moerr.NewNotSupportedNoCtx("mmap allocator for non-numeric element type")
	}
	return wrap(cfg, base, metrics)
}

// NewNumericAllocator is NewAllocator for pointer-free element types,
// which additionally supports the mmap kind.
func NewNumericAllocator[T Numeric](cfg Config, metrics *Metrics) (Allocator[T], error) {
	cfg.SetDefaults()
	if cfg.Kind != KindMmap {
		return NewAllocator[T](cfg, metrics)
	}
	return wrap[T](cfg, NewMmapAllocator[T](), metrics)
}

func wrap[T any](cfg Config, base Allocator[T], metrics *Metrics) (Allocator[T], error) {
	ret := base
	if cfg.Limit > 0 {
		ret = NewLimitAllocator[T](cfg.Kind, ret, cfg.Limit)
	}
	if cfg.Metrics {
		if metrics == nil {
			return nil, moerr.NewInvalidArgNoCtx("metrics", nil)
		}
		ret = NewMetricsAllocator[T](ret, metrics)
	}
	return ret, nil
}
