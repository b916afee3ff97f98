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
	"unsafe"

	"golang.org/x/exp/constraints"

	"github.com/matrixorigin/vectorkit/pkg/common/moerr"
)

// Numeric element types hold no pointers, so their buffers may live in
// memory the garbage collector does not scan.
type Numeric interface {
	constraints.Integer | constraints.Float | constraints.Complex
}

// stubbed in tests
var (
	mmapFunc   = mmap
	munmapFunc = munmap
)

// MmapAllocator backs every buffer with its own anonymous mapping, which
// is returned to the OS as soon as the buffer is deallocated.
type MmapAllocator[T Numeric] struct {
	mapped atomic.Int64
}

var _ Allocator[int64] = new(MmapAllocator[int64])

func NewMmapAllocator[T Numeric]() *MmapAllocator[T] {
	return new(MmapAllocator[T])
}

func (m *MmapAllocator[T]) Allocate(n uint64, _ Hints) ([]T, Deallocator, error) {
	if n == 0 {
		return nil, dumbDeallocator, nil
	}
	if err := checkElements[T](n); err != nil {
		return nil, nil, err
	}
	size := BytesOf[T](n)
	mem, err := mmapFunc(int(size))
	if err != nil {
		return nil, nil, moerr.NewOOMNoCtx().WithDetail(err.Error())
	}
	m.mapped.Add(int64(size))
	// fresh anonymous mappings are zero filled
	buf := unsafe.Slice((*T)(unsafe.Pointer(unsafe.SliceData(mem))), n)
	return buf, FuncDeallocator(func(Hints) {
		if err := munmapFunc(mem); err != nil {
			panic(err)
		}
		m.mapped.Add(-int64(size))
	}), nil
}

// Mapped returns the bytes currently mapped by this allocator.
func (m *MmapAllocator[T]) Mapped() int64 {
	return m.mapped.Load()
}
