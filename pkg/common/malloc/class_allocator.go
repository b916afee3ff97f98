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
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/matrixorigin/vectorkit/pkg/common/moerr"
	"github.com/matrixorigin/vectorkit/pkg/logutil"
)

const (
	minClassSize           = 128
	maxClassSize           = 8 * MB
	DefaultClassSizeFactor = 1.5
	DefaultMaxBufferSize   = 64 * MB
)

// ClassAllocator rounds requests up to a size class and keeps a bounded
// free list per class, so that buffers released by one container are
// recycled by the next one growing into the same class.
type ClassAllocator[T any] struct {
	// classSizes is in elements, ascending
	classSizes []uint64
	pools      []classAllocatorPool[T]
}

type classAllocatorPool[T any] struct {
	numAlloc atomic.Int64
	numReuse atomic.Int64
	numFree  atomic.Int64
	ch       chan []T
}

type classAllocatorHandle[T any] struct {
	buf       []T
	class     int
	allocator *ClassAllocator[T]
	freed     atomic.Bool
}

// ClassStats reports per-class counters.
type ClassStats struct {
	Elements uint64
	Alloc    int64
	Reuse    int64
	Free     int64
	Cached   int
}

var _ Allocator[int] = new(ClassAllocator[int])

func NewClassAllocator[T any](
	maxBufferSize uint64,
	classSizeFactor float64,
) (*ClassAllocator[T], error) {
	if classSizeFactor <= 1 {
		return nil, moerr.NewInvalidArgNoCtx("class size factor", classSizeFactor)
	}
	elemSize := SizeOf[T]()
	if elemSize == 0 {
		elemSize = 1
	}

	classSizes := func() (ret []uint64) {
		var last uint64
		for size := float64(minClassSize); size <= maxClassSize; size *= classSizeFactor {
			n := uint64(size) / elemSize
			if n == 0 || n == last {
				continue
			}
			ret = append(ret, n)
			last = n
		}
		return
	}()

	classSumSize := func() (ret uint64) {
		for _, n := range classSizes {
			ret += n * elemSize
		}
		return
	}()

	bufferedObjectsPerClass := 0
	if classSumSize > 0 {
		bufferedObjectsPerClass = int(maxBufferSize / classSumSize)
	}

	logutil.Debug("malloc",
		zap.Any("max buffer size", maxBufferSize),
		zap.Any("classes", len(classSizes)),
		zap.Any("class size factor", classSizeFactor),
		zap.Any("element size", elemSize),
		zap.Any("buffer objects per class", bufferedObjectsPerClass),
	)

	ret := &ClassAllocator[T]{
		classSizes: classSizes,
		pools:      make([]classAllocatorPool[T], len(classSizes)),
	}
	for i := range ret.pools {
		ret.pools[i].ch = make(chan []T, bufferedObjectsPerClass)
	}
	return ret, nil
}

func (c *ClassAllocator[T]) requestSizeToClass(n uint64) int {
	for class, classSize := range c.classSizes {
		if classSize >= n {
			return class
		}
	}
	return -1
}

func (c *ClassAllocator[T]) classAllocate(class int, hints Hints) []T {
	pool := &c.pools[class]
	pool.numAlloc.Add(1)
	select {
	case buf := <-pool.ch:
		pool.numReuse.Add(1)
		if !hints.Has(NoClear) {
			clear(buf)
		}
		return buf
	default:
		return make([]T, c.classSizes[class])
	}
}

func (c *ClassAllocator[T]) Allocate(n uint64, hints Hints) ([]T, Deallocator, error) {
	if n == 0 {
		return nil, dumbDeallocator, nil
	}
	if err := checkElements[T](n); err != nil {
		return nil, nil, err
	}
	class := c.requestSizeToClass(n)
	if class == -1 {
		return make([]T, n), dumbDeallocator, nil
	}
	buf := c.classAllocate(class, hints)
	handle := &classAllocatorHandle[T]{
		buf:       buf,
		class:     class,
		allocator: c,
	}
	return buf[:n:n], handle, nil
}

// Stats returns a snapshot of every class.
func (c *ClassAllocator[T]) Stats() []ClassStats {
	ret := make([]ClassStats, len(c.classSizes))
	for i := range c.pools {
		ret[i] = ClassStats{
			Elements: c.classSizes[i],
			Alloc:    c.pools[i].numAlloc.Load(),
			Reuse:    c.pools[i].numReuse.Load(),
			Free:     c.pools[i].numFree.Load(),
			Cached:   len(c.pools[i].ch),
		}
	}
	return ret
}

func (h *classAllocatorHandle[T]) Deallocate(hints Hints) {
	if !h.freed.CompareAndSwap(false, true) {
		panic(moerr.NewInvalidStateNoCtx("double free of class %d buffer", h.class))
	}
	pool := &h.allocator.pools[h.class]
	pool.numFree.Add(1)
	if hints.Has(DoNotReuse) {
		return
	}
	select {
	case pool.ch <- h.buf:
	default:
	}
}
