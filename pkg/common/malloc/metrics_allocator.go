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
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics is the collector set updated by MetricsAllocator.
type Metrics struct {
	AllocateBytes   prometheus.Counter
	InuseBytes      prometheus.Gauge
	AllocateObjects prometheus.Counter
	InuseObjects    prometheus.Gauge
}

func NewMetrics(namespace, subsystem string, labels prometheus.Labels) *Metrics {
	return &Metrics{
		AllocateBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   subsystem,
			Name:        "allocate_bytes_total",
			Help:        "Bytes handed out by the allocator.",
			ConstLabels: labels,
		}),
		InuseBytes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   subsystem,
			Name:        "inuse_bytes",
			Help:        "Bytes allocated and not yet deallocated.",
			ConstLabels: labels,
		}),
		AllocateObjects: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   subsystem,
			Name:        "allocate_objects_total",
			Help:        "Buffers handed out by the allocator.",
			ConstLabels: labels,
		}),
		InuseObjects: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   subsystem,
			Name:        "inuse_objects",
			Help:        "Buffers allocated and not yet deallocated.",
			ConstLabels: labels,
		}),
	}
}

func (m *Metrics) Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.AllocateBytes,
		m.InuseBytes,
		m.AllocateObjects,
		m.InuseObjects,
	}
}

func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, c := range m.Collectors() {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

type MetricsAllocator[T any] struct {
	upstream Allocator[T]
	metrics  *Metrics
}

var _ Allocator[int] = new(MetricsAllocator[int])

func NewMetricsAllocator[T any](
	upstream Allocator[T],
	metrics *Metrics,
) *MetricsAllocator[T] {
	return &MetricsAllocator[T]{
		upstream: upstream,
		metrics:  metrics,
	}
}

func (m *MetricsAllocator[T]) Allocate(n uint64, hints Hints) ([]T, Deallocator, error) {
	buf, dec, err := m.upstream.Allocate(n, hints)
	if err != nil {
		return nil, nil, err
	}
	if n == 0 {
		return buf, dec, nil
	}
	size := float64(BytesOf[T](n))
	m.metrics.AllocateBytes.Add(size)
	m.metrics.InuseBytes.Add(size)
	m.metrics.AllocateObjects.Inc()
	m.metrics.InuseObjects.Inc()

	return buf, ChainDeallocator(
		dec,
		FuncDeallocator(func(Hints) {
			m.metrics.InuseBytes.Sub(size)
			m.metrics.InuseObjects.Dec()
		}),
	), nil
}
