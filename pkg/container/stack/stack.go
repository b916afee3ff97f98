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

// Package stack provides a LIFO adapter over any container supporting
// back insertion and removal, backed by vector.Vector by default.
package stack

import (
	"iter"

	"golang.org/x/exp/constraints"

	"github.com/matrixorigin/vectorkit/pkg/common/moerr"
	"github.com/matrixorigin/vectorkit/pkg/container/vector"
)

// Container is what a Stack needs from its underlying sequence. Values
// yields from the bottom of the stack to the top.
type Container[T any] interface {
	PushBack(val T) error
	EmplaceBack(init func(*T)) (*T, error)
	PopBack()
	Back() T
	Empty() bool
	Len() int
	Values() iter.Seq[T]
}

var _ Container[int] = new(vector.Vector[int])

type Stack[T any] struct {
	c Container[T]
}

// New returns an empty stack backed by a vector built with opts.
func New[T any](opts ...vector.Option[T]) (*Stack[T], error) {
	v, err := vector.New(opts...)
	if err != nil {
		return nil, err
	}
	return &Stack[T]{c: v}, nil
}

// NewFrom adapts c; its last element is the top of the stack.
func NewFrom[T any](c Container[T]) *Stack[T] {
	return &Stack[T]{c: c}
}

func (s *Stack[T]) Push(val T) error {
	return s.c.PushBack(val)
}

// Emplace constructs the new top in place.
func (s *Stack[T]) Emplace(init func(*T)) (*T, error) {
	return s.c.EmplaceBack(init)
}

// Pop removes the top. It panics on an empty stack.
func (s *Stack[T]) Pop() {
	s.c.PopBack()
}

// TryPop removes and returns the top.
func (s *Stack[T]) TryPop() (T, error) {
	val, err := s.TryTop()
	if err != nil {
		return val, err
	}
	s.c.PopBack()
	return val, nil
}

func (s *Stack[T]) Top() T {
	return s.c.Back()
}

func (s *Stack[T]) TryTop() (T, error) {
	if s.c.Empty() {
		var zero T
		return zero, moerr.NewEmptyVectorNoCtx()
	}
	return s.c.Back(), nil
}

func (s *Stack[T]) Empty() bool {
	return s.c.Empty()
}

func (s *Stack[T]) Len() int {
	return s.c.Len()
}

// Values yields from bottom to top.
func (s *Stack[T]) Values() iter.Seq[T] {
	return s.c.Values()
}

func (s *Stack[T]) Swap(other *Stack[T]) {
	s.c, other.c = other.c, s.c
}

func Swap[T any](a, b *Stack[T]) {
	a.Swap(b)
}

// Clone copies the stack. A vector-backed stack is cloned with the
// vector's allocator and hooks; any other container is copied into a
// new vector.
func (s *Stack[T]) Clone() (*Stack[T], error) {
	if v, ok := s.c.(*vector.Vector[T]); ok {
		w, err := v.Clone()
		if err != nil {
			return nil, err
		}
		return &Stack[T]{c: w}, nil
	}
	w, err := vector.FromSeq(s.c.Values())
	if err != nil {
		return nil, err
	}
	return &Stack[T]{c: w}, nil
}

// Free releases the underlying container when it holds a buffer.
func (s *Stack[T]) Free() {
	if f, ok := s.c.(interface{ Free() }); ok {
		f.Free()
	}
}

func Equal[T comparable](a, b *Stack[T]) bool {
	return EqualFunc(a, b, func(x, y T) bool {
		return x == y
	})
}

func NotEqual[T comparable](a, b *Stack[T]) bool {
	return !Equal(a, b)
}

func EqualFunc[T any](a, b *Stack[T], eq func(T, T) bool) bool {
	if a.Len() != b.Len() {
		return false
	}
	return CompareFunc(a, b, func(x, y T) int {
		if eq(x, y) {
			return 0
		}
		return 1
	}) == 0
}

// Compare orders stacks lexicographically from bottom to top.
func Compare[T constraints.Ordered](a, b *Stack[T]) int {
	return CompareFunc(a, b, func(x, y T) int {
		switch {
		case x < y:
			return -1
		case y < x:
			return 1
		}
		return 0
	})
}

func CompareFunc[T any](a, b *Stack[T], cmp func(T, T) int) int {
	nextA, stopA := iter.Pull(a.Values())
	defer stopA()
	nextB, stopB := iter.Pull(b.Values())
	defer stopB()
	for {
		x, okA := nextA()
		y, okB := nextB()
		switch {
		case !okA && !okB:
			return 0
		case !okA:
			return -1
		case !okB:
			return 1
		}
		if c := cmp(x, y); c != 0 {
			return c
		}
	}
}

func Less[T constraints.Ordered](a, b *Stack[T]) bool {
	return Compare(a, b) < 0
}

func LessEqual[T constraints.Ordered](a, b *Stack[T]) bool {
	return Compare(a, b) <= 0
}

func Greater[T constraints.Ordered](a, b *Stack[T]) bool {
	return Compare(a, b) > 0
}

func GreaterEqual[T constraints.Ordered](a, b *Stack[T]) bool {
	return Compare(a, b) >= 0
}
