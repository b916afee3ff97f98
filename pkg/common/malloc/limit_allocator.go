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
	"fmt"
	"sync/atomic"

	"github.com/matrixorigin/vectorkit/pkg/common/moerr"
)

// LimitAllocator enforces a byte budget over an upstream allocator.
// Requests that would push the in-use bytes above the budget fail with
// ErrOOM before the upstream is asked.
type LimitAllocator[T any] struct {
	name     string
	upstream Allocator[T]
	limit    uint64

	inuse atomic.Uint64
	peak  PeakInuseTracker
}

var _ Allocator[int] = new(LimitAllocator[int])

func NewLimitAllocator[T any](name string, upstream Allocator[T], limit uint64) *LimitAllocator[T] {
	return &LimitAllocator[T]{
		name:     name,
		upstream: upstream,
		limit:    limit,
	}
}

func (l *LimitAllocator[T]) Allocate(n uint64, hints Hints) ([]T, Deallocator, error) {
	if err := checkElements[T](n); err != nil {
		return nil, nil, err
	}
	size := BytesOf[T](n)
	for {
		curr := l.inuse.Load()
		if curr+size > l.limit {
			return nil, nil, moerr.NewOOMNoCtx().WithDetail(
				fmt.Sprintf("%s: request %d bytes, in use %d of %d", l.name, size, curr, l.limit))
		}
		if l.inuse.CompareAndSwap(curr, curr+size) {
			l.peak.Update(curr + size)
			break
		}
	}

	buf, dec, err := l.upstream.Allocate(n, hints)
	if err != nil {
		l.inuse.Add(^(size - 1))
		return nil, nil, err
	}
	return buf, ChainDeallocator(
		dec,
		FuncDeallocator(func(Hints) {
			l.inuse.Add(^(size - 1))
		}),
	), nil
}

// CurrNB returns the bytes currently handed out.
func (l *LimitAllocator[T]) CurrNB() uint64 {
	return l.inuse.Load()
}

// PeakNB returns the high-water mark of CurrNB.
func (l *LimitAllocator[T]) PeakNB() uint64 {
	return l.peak.Load().Value
}

func (l *LimitAllocator[T]) Cap() uint64 {
	return l.limit
}
