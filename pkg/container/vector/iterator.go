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
	"iter"

	"github.com/matrixorigin/vectorkit/pkg/common/moerr"
)

// Iterator is a position in a Vector. It is a plain value: it does not
// track mutations, and any reallocation or shift of the vector changes the
// element it names. Dereferencing at or past Len() panics.
type Iterator[T any] struct {
	v   *Vector[T]
	pos int
}

func (v *Vector[T]) Begin() Iterator[T] {
	return Iterator[T]{v: v}
}

func (v *Vector[T]) End() Iterator[T] {
	return Iterator[T]{v: v, pos: v.length}
}

// IteratorAt returns an iterator at offset pos.
func (v *Vector[T]) IteratorAt(pos int) Iterator[T] {
	return Iterator[T]{v: v, pos: pos}
}

func (it Iterator[T]) Pos() int {
	return it.pos
}

func (it Iterator[T]) Next() Iterator[T] {
	return Iterator[T]{v: it.v, pos: it.pos + 1}
}

func (it Iterator[T]) Prev() Iterator[T] {
	return Iterator[T]{v: it.v, pos: it.pos - 1}
}

func (it Iterator[T]) Add(n int) Iterator[T] {
	return Iterator[T]{v: it.v, pos: it.pos + n}
}

func (it Iterator[T]) Sub(n int) Iterator[T] {
	return Iterator[T]{v: it.v, pos: it.pos - n}
}

// Distance returns it - other.
func (it Iterator[T]) Distance(other Iterator[T]) int {
	return it.pos - other.pos
}

func (it Iterator[T]) Get() T {
	return it.v.Index(it.pos)
}

func (it Iterator[T]) Ptr() *T {
	return it.v.Ref(it.pos)
}

func (it Iterator[T]) Set(val T) {
	it.v.Set(it.pos, val)
}

func (it Iterator[T]) Equal(other Iterator[T]) bool {
	return it.v == other.v && it.pos == other.pos
}

func (it Iterator[T]) Less(other Iterator[T]) bool {
	return it.pos < other.pos
}

func (it Iterator[T]) Const() ConstIterator[T] {
	return ConstIterator[T]{it: it}
}

// ConstIterator is a read-only Iterator.
type ConstIterator[T any] struct {
	it Iterator[T]
}

func (v *Vector[T]) CBegin() ConstIterator[T] {
	return v.Begin().Const()
}

func (v *Vector[T]) CEnd() ConstIterator[T] {
	return v.End().Const()
}

func (it ConstIterator[T]) Pos() int {
	return it.it.pos
}

func (it ConstIterator[T]) Next() ConstIterator[T] {
	return ConstIterator[T]{it: it.it.Next()}
}

func (it ConstIterator[T]) Prev() ConstIterator[T] {
	return ConstIterator[T]{it: it.it.Prev()}
}

func (it ConstIterator[T]) Add(n int) ConstIterator[T] {
	return ConstIterator[T]{it: it.it.Add(n)}
}

func (it ConstIterator[T]) Sub(n int) ConstIterator[T] {
	return ConstIterator[T]{it: it.it.Sub(n)}
}

func (it ConstIterator[T]) Distance(other ConstIterator[T]) int {
	return it.it.Distance(other.it)
}

func (it ConstIterator[T]) Get() T {
	return it.it.Get()
}

func (it ConstIterator[T]) Equal(other ConstIterator[T]) bool {
	return it.it.Equal(other.it)
}

func (it ConstIterator[T]) Less(other ConstIterator[T]) bool {
	return it.it.Less(other.it)
}

// rangeOf returns the live elements of [first, last). Both ends must belong
// to the same vector; a range past Len() panics like Index.
func rangeOf[T any](first, last ConstIterator[T]) []T {
	if first.it.v != last.it.v {
		panic(moerr.NewInvalidArgNoCtx("iterator", "range spans two vectors"))
	}
	if last.Pos() <= first.Pos() {
		return nil
	}
	return first.it.v.Data()[first.Pos():last.Pos()]
}

// ReverseIterator walks a vector backwards. It wraps a base iterator and
// dereferences the element just before it, so RBegin wraps End and REnd
// wraps Begin.
type ReverseIterator[T any] struct {
	base Iterator[T]
}

func (v *Vector[T]) RBegin() ReverseIterator[T] {
	return ReverseIterator[T]{base: v.End()}
}

func (v *Vector[T]) REnd() ReverseIterator[T] {
	return ReverseIterator[T]{base: v.Begin()}
}

func (it ReverseIterator[T]) Base() Iterator[T] {
	return it.base
}

func (it ReverseIterator[T]) Next() ReverseIterator[T] {
	return ReverseIterator[T]{base: it.base.Prev()}
}

func (it ReverseIterator[T]) Prev() ReverseIterator[T] {
	return ReverseIterator[T]{base: it.base.Next()}
}

func (it ReverseIterator[T]) Add(n int) ReverseIterator[T] {
	return ReverseIterator[T]{base: it.base.Sub(n)}
}

func (it ReverseIterator[T]) Sub(n int) ReverseIterator[T] {
	return ReverseIterator[T]{base: it.base.Add(n)}
}

func (it ReverseIterator[T]) Distance(other ReverseIterator[T]) int {
	return other.base.Distance(it.base)
}

func (it ReverseIterator[T]) Get() T {
	return it.base.Prev().Get()
}

func (it ReverseIterator[T]) Ptr() *T {
	return it.base.Prev().Ptr()
}

func (it ReverseIterator[T]) Set(val T) {
	it.base.Prev().Set(val)
}

func (it ReverseIterator[T]) Equal(other ReverseIterator[T]) bool {
	return it.base.Equal(other.base)
}

func (it ReverseIterator[T]) Less(other ReverseIterator[T]) bool {
	return other.base.Less(it.base)
}

func (it ReverseIterator[T]) Const() ConstReverseIterator[T] {
	return ConstReverseIterator[T]{it: it}
}

// ConstReverseIterator is a read-only ReverseIterator.
type ConstReverseIterator[T any] struct {
	it ReverseIterator[T]
}

func (v *Vector[T]) CRBegin() ConstReverseIterator[T] {
	return v.RBegin().Const()
}

func (v *Vector[T]) CREnd() ConstReverseIterator[T] {
	return v.REnd().Const()
}

func (it ConstReverseIterator[T]) Base() ConstIterator[T] {
	return it.it.base.Const()
}

func (it ConstReverseIterator[T]) Next() ConstReverseIterator[T] {
	return ConstReverseIterator[T]{it: it.it.Next()}
}

func (it ConstReverseIterator[T]) Prev() ConstReverseIterator[T] {
	return ConstReverseIterator[T]{it: it.it.Prev()}
}

func (it ConstReverseIterator[T]) Add(n int) ConstReverseIterator[T] {
	return ConstReverseIterator[T]{it: it.it.Add(n)}
}

func (it ConstReverseIterator[T]) Sub(n int) ConstReverseIterator[T] {
	return ConstReverseIterator[T]{it: it.it.Sub(n)}
}

func (it ConstReverseIterator[T]) Distance(other ConstReverseIterator[T]) int {
	return it.it.Distance(other.it)
}

func (it ConstReverseIterator[T]) Get() T {
	return it.it.Get()
}

func (it ConstReverseIterator[T]) Equal(other ConstReverseIterator[T]) bool {
	return it.it.Equal(other.it)
}

func (it ConstReverseIterator[T]) Less(other ConstReverseIterator[T]) bool {
	return it.it.Less(other.it)
}

// All yields index/value pairs in order. The vector must not be resized
// while iterating.
func (v *Vector[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; i < v.length; i++ {
			if !yield(i, v.buf[i]) {
				return
			}
		}
	}
}

func (v *Vector[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := 0; i < v.length; i++ {
			if !yield(v.buf[i]) {
				return
			}
		}
	}
}

// Backward yields index/value pairs from the last element to the first.
func (v *Vector[T]) Backward() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := v.length - 1; i >= 0; i-- {
			if !yield(i, v.buf[i]) {
				return
			}
		}
	}
}
