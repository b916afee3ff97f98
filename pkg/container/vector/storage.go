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

package vector

import (
	"go.uber.org/zap"

	"github.com/matrixorigin/vectorkit/pkg/common/malloc"
	"github.com/matrixorigin/vectorkit/pkg/common/moerr"
)

// allocate obtains a zeroed buffer of exactly n slots.
func (v *Vector[T]) allocate(n int) ([]T, malloc.Deallocator, error) {
	if n > v.MaxSize() {
		return nil, nil, moerr.NewOOMNoCtx().WithDetail("vector size exceeds max size")
	}
	if n == 0 {
		return nil, nil, nil
	}
	buf, dec, err := v.alloc.Allocate(uint64(n), malloc.NoHints)
	if err != nil {
		return nil, nil, err
	}
	return buf, dec, nil
}

// release hands the buffer back. Live elements must already be destroyed.
func (v *Vector[T]) release() {
	if v.dec != nil {
		v.dec.Deallocate(malloc.NoHints)
	}
	v.buf, v.dec = nil, nil
}

// reallocate moves the live elements into a buffer of exactly n slots.
// On failure v is unchanged.
func (v *Vector[T]) reallocate(n int) error {
	buf, dec, err := v.allocate(n)
	if err != nil {
		v.logger.Debug("vector reallocation failed",
			zap.Int("from", len(v.buf)),
			zap.Int("to", n),
			zap.Error(err),
		)
		return err
	}
	relocateInto(buf, v.buf, v.length)
	v.logger.Debug("vector reallocated",
		zap.Int("from", len(v.buf)),
		zap.Int("to", n),
		zap.Int("length", v.length),
	)
	v.release()
	v.buf, v.dec = buf, dec
	return nil
}

// growTo makes the capacity at least n.
func (v *Vector[T]) growTo(n int) error {
	if n <= len(v.buf) {
		return nil
	}
	return v.reallocate(n)
}

// nextCapacity applies the growth policy for a request of required slots.
func (v *Vector[T]) nextCapacity(required int) int {
	c := len(v.buf)
	grown := c + c/2 + 1
	if maxSize := v.MaxSize(); grown > maxSize || grown < c {
		grown = maxSize
	}
	return max(required, grown)
}

// reserveFor makes room for extra more elements, growing geometrically.
func (v *Vector[T]) reserveFor(extra int) error {
	if extra <= len(v.buf)-v.length {
		return nil
	}
	if extra > v.MaxSize()-v.length {
		return moerr.NewOOMNoCtx().WithDetail("vector size exceeds max size")
	}
	return v.reallocate(v.nextCapacity(v.length + extra))
}

// Reserve grows the capacity to exactly n when n exceeds it. It never shrinks.
func (v *Vector[T]) Reserve(n int) error {
	return v.growTo(n)
}

// ShrinkToFit reallocates so that Cap() == Len().
func (v *Vector[T]) ShrinkToFit() error {
	if len(v.buf) == v.length {
		return nil
	}
	return v.reallocate(v.length)
}
