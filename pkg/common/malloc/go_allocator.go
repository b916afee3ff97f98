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

// GoAllocator hands out buffers from the Go heap and leaves reclamation to
// the garbage collector.
type GoAllocator[T any] struct{}

var _ Allocator[int] = GoAllocator[int]{}

func NewGoAllocator[T any]() GoAllocator[T] {
	return GoAllocator[T]{}
}

func (GoAllocator[T]) Allocate(n uint64, _ Hints) ([]T, Deallocator, error) {
	if n == 0 {
		return nil, dumbDeallocator, nil
	}
	if err := checkElements[T](n); err != nil {
		return nil, nil, err
	}
	return make([]T, n), dumbDeallocator, nil
}
