// Copyright 2022 - 2024 Matrix Origin
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

// Package malloc provides pluggable strategies for obtaining element
// buffers. Buffers are typed so that the garbage collector keeps scanning
// element types holding pointers.
package malloc

import (
	"math"
	"unsafe"

	"github.com/matrixorigin/vectorkit/pkg/common/moerr"
)

const (
	KB = 1 << 10
	MB = 1 << 20
	GB = 1 << 30

	// MaxAllocBytes bounds a single allocation. The Go heap cannot address
	// more than 2^47 bytes on 64-bit platforms.
	MaxAllocBytes = 1 << 47
)

// Hints tune a single allocation or deallocation.
type Hints uint64

const (
	NoHints Hints = 0
	// NoClear skips zeroing a recycled buffer. Only safe when the caller
	// overwrites every slot before reading it.
	NoClear Hints = 1 << 0
	// DoNotReuse asks the allocator to drop the buffer instead of caching it.
	DoNotReuse Hints = 1 << 1
)

func (h Hints) Has(flag Hints) bool {
	return h&flag != 0
}

// Allocator returns buffers of exactly n elements (len == cap == n).
// Buffers are zeroed unless NoClear is given. The Deallocator must be
// called exactly once when the buffer is no longer used.
type Allocator[T any] interface {
	Allocate(n uint64, hints Hints) ([]T, Deallocator, error)
}

type Deallocator interface {
	Deallocate(hints Hints)
}

// FuncDeallocator adapts a plain function.
type FuncDeallocator func(hints Hints)

func (f FuncDeallocator) Deallocate(hints Hints) {
	f(hints)
}

type noopDeallocator struct{}

func (noopDeallocator) Deallocate(Hints) {}

var dumbDeallocator Deallocator = noopDeallocator{}

type chainDeallocator []Deallocator

func (c chainDeallocator) Deallocate(hints Hints) {
	for _, dec := range c {
		dec.Deallocate(hints)
	}
}

// ChainDeallocator runs the deallocators in order. Nil entries are skipped.
func ChainDeallocator(decs ...Deallocator) Deallocator {
	var ret chainDeallocator
	for _, dec := range decs {
		if dec == nil || dec == dumbDeallocator {
			continue
		}
		if c, ok := dec.(chainDeallocator); ok {
			ret = append(ret, c...)
			continue
		}
		ret = append(ret, dec)
	}
	switch len(ret) {
	case 0:
		return dumbDeallocator
	case 1:
		return ret[0]
	}
	return ret
}

// SizeOf returns the in-memory size of one T.
func SizeOf[T any]() uint64 {
	var zero T
	return uint64(unsafe.Sizeof(zero))
}

// BytesOf returns the number of bytes backing n elements of T.
func BytesOf[T any](n uint64) uint64 {
	return n * SizeOf[T]()
}

// MaxElements is the largest n any allocator in this package accepts for T.
func MaxElements[T any]() uint64 {
	size := SizeOf[T]()
	if size == 0 {
		return math.MaxInt
	}
	return min(MaxAllocBytes/size, math.MaxInt)
}

func checkElements[T any](n uint64) error {
	if n > MaxElements[T]() {
		return moerr.NewOOMNoCtx().WithDetail("allocation exceeds max elements")
	}
	return nil
}
