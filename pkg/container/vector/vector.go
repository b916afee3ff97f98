// Copyright 2021 Matrix Origin
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

// Package vector implements Vector, a generic growable array with explicit
// capacity management, pluggable buffer allocation and value semantics.
package vector

import (
	"fmt"
	"iter"
	"strings"

	"go.uber.org/zap"

	"github.com/matrixorigin/vectorkit/pkg/common/malloc"
	"github.com/matrixorigin/vectorkit/pkg/common/moerr"
)

// DefaultCapacity is the number of slots reserved by New.
const DefaultCapacity = 4

// storage is the part of a Vector exchanged by assignment.
type storage[T any] struct {
	// buf backs capacity slots, len(buf) == cap(buf) == capacity.
	// Slots in [length, capacity) always hold the zero value.
	buf []T
	dec malloc.Deallocator
	// number of live elements
	length int
}

// Vector is a contiguous sequence of T. A Vector owns its buffer and must
// not be copied by value, use Clone. Free returns the buffer to the
// allocator; a freed Vector is empty and may be reused.
//
// A Vector is not safe for concurrent use.
type Vector[T any] struct {
	storage[T]

	alloc     malloc.Allocator[T]
	copier    func(T) T
	destroyer func(*T)
	logger    *zap.Logger
	// initial capacity used by New
	capacity int
}

type Option[T any] func(*Vector[T])

// WithAllocator sets the buffer allocation strategy, malloc.GoAllocator by default.
func WithAllocator[T any](alloc malloc.Allocator[T]) Option[T] {
	return func(v *Vector[T]) {
		v.alloc = alloc
	}
}

// WithCapacity overrides DefaultCapacity for New.
func WithCapacity[T any](n int) Option[T] {
	return func(v *Vector[T]) {
		v.capacity = n
	}
}

// WithCopier installs the function used whenever an element is copied
// into the vector, e.g. to deep copy elements holding references.
func WithCopier[T any](copier func(T) T) Option[T] {
	return func(v *Vector[T]) {
		v.copier = copier
	}
}

// WithDestroyer installs a hook run once on every element leaving the
// vector by erase, pop, shrink, clear, assignment or Free.
func WithDestroyer[T any](destroyer func(*T)) Option[T] {
	return func(v *Vector[T]) {
		v.destroyer = destroyer
	}
}

func WithLogger[T any](logger *zap.Logger) Option[T] {
	return func(v *Vector[T]) {
		v.logger = logger
	}
}

func newEmpty[T any](opts []Option[T]) *Vector[T] {
	v := &Vector[T]{
		capacity: DefaultCapacity,
	}
	for _, opt := range opts {
		opt(v)
	}
	if v.alloc == nil {
		v.alloc = malloc.NewGoAllocator[T]()
	}
	if v.logger == nil {
		v.logger = zap.NewNop()
	}
	return v
}

// emptyLike returns an empty vector sharing v's allocator and hooks.
func (v *Vector[T]) emptyLike() *Vector[T] {
	return &Vector[T]{
		alloc:     v.alloc,
		copier:    v.copier,
		destroyer: v.destroyer,
		logger:    v.logger,
		capacity:  v.capacity,
	}
}

func checkSize(n int) error {
	if n < 0 {
		return moerr.NewInvalidArgNoCtx("vector size", n)
	}
	return nil
}

// New returns an empty vector with DefaultCapacity slots reserved.
func New[T any](opts ...Option[T]) (*Vector[T], error) {
	v := newEmpty(opts)
	if err := checkSize(v.capacity); err != nil {
		return nil, err
	}
	if err := v.growTo(v.capacity); err != nil {
		return nil, err
	}
	return v, nil
}

// NewWithSize returns a vector of n zero values with capacity n.
func NewWithSize[T any](n int, opts ...Option[T]) (*Vector[T], error) {
	if err := checkSize(n); err != nil {
		return nil, err
	}
	v := newEmpty(opts)
	if err := v.growTo(n); err != nil {
		return nil, err
	}
	v.length = n
	return v, nil
}

// NewFilled returns a vector of n copies of val with capacity n.
func NewFilled[T any](n int, val T, opts ...Option[T]) (*Vector[T], error) {
	if err := checkSize(n); err != nil {
		return nil, err
	}
	v := newEmpty(opts)
	if err := v.fill(n, val); err != nil {
		return nil, err
	}
	return v, nil
}

// FromRange copies the elements of [first, last).
func FromRange[T any](first, last ConstIterator[T], opts ...Option[T]) (*Vector[T], error) {
	v := newEmpty(opts)
	if err := v.copyRange(first, last); err != nil {
		return nil, err
	}
	return v, nil
}

// FromValues copies vals; the capacity equals len(vals).
func FromValues[T any](vals []T, opts ...Option[T]) (*Vector[T], error) {
	v := newEmpty(opts)
	if err := v.copyValues(vals); err != nil {
		return nil, err
	}
	return v, nil
}

// FromSeq collects seq, growing like repeated PushBack.
func FromSeq[T any](seq iter.Seq[T], opts ...Option[T]) (*Vector[T], error) {
	v := newEmpty(opts)
	for val := range seq {
		if err := v.PushBack(val); err != nil {
			v.Free()
			return nil, err
		}
	}
	return v, nil
}

// Clone returns a copy of v with capacity v.Len(). The copy shares v's
// allocator and hooks.
func (v *Vector[T]) Clone() (*Vector[T], error) {
	w := v.emptyLike()
	if err := w.copyValues(v.Data()); err != nil {
		return nil, err
	}
	return w, nil
}

// Move transfers the contents of v to a new vector in O(1). v is left
// empty with no buffer.
func Move[T any](v *Vector[T]) *Vector[T] {
	w := v.emptyLike()
	w.storage, v.storage = v.storage, storage[T]{}
	return w
}

// Swap exchanges the contents of v and w in O(1), including allocators and
// hooks. No element is copied.
func (v *Vector[T]) Swap(w *Vector[T]) {
	*v, *w = *w, *v
}

func Swap[T any](a, b *Vector[T]) {
	a.Swap(b)
}

// Free destroys every element and releases the buffer.
func (v *Vector[T]) Free() {
	v.destroyRange(0, v.length)
	v.length = 0
	v.release()
}

func (v *Vector[T]) Len() int {
	return v.length
}

func (v *Vector[T]) Cap() int {
	return len(v.buf)
}

func (v *Vector[T]) Empty() bool {
	return v.length == 0
}

// MaxSize is the largest length the allocator can ever provide for T.
func (v *Vector[T]) MaxSize() int {
	return int(malloc.MaxElements[T]())
}

// Data returns the live elements. The slice aliases the buffer until the
// next reallocation; its capacity is clipped so appends never touch dead slots.
func (v *Vector[T]) Data() []T {
	return v.buf[:v.length:v.length]
}

// Index returns element i. It panics when i is outside [0, Len()).
func (v *Vector[T]) Index(i int) T {
	return v.buf[:v.length][i]
}

// Ref returns a pointer to element i, valid until the next reallocation.
func (v *Vector[T]) Ref(i int) *T {
	return &v.buf[:v.length][i]
}

// Set replaces element i, destroying the previous value.
func (v *Vector[T]) Set(i int, val T) {
	_ = v.buf[:v.length][i]
	v.destroyAt(i)
	v.constructAt(i, val)
}

// At is the bounds checked form of Index.
func (v *Vector[T]) At(i int) (T, error) {
	if i < 0 || i >= v.length {
		var zero T
		return zero, moerr.NewOutOfRangeNoCtx("vector index", "index %d, length %d", i, v.length)
	}
	return v.buf[i], nil
}

func (v *Vector[T]) Front() T {
	return v.Index(0)
}

func (v *Vector[T]) Back() T {
	return v.Index(v.length - 1)
}

func (v *Vector[T]) TryFront() (T, error) {
	if v.length == 0 {
		var zero T
		return zero, moerr.NewEmptyVectorNoCtx()
	}
	return v.buf[0], nil
}

func (v *Vector[T]) TryBack() (T, error) {
	if v.length == 0 {
		var zero T
		return zero, moerr.NewEmptyVectorNoCtx()
	}
	return v.buf[v.length-1], nil
}

func (v *Vector[T]) String() string {
	var buf strings.Builder
	buf.WriteByte('[')
	for i, val := range v.Data() {
		if i > 0 {
			buf.WriteByte(' ')
		}
		fmt.Fprint(&buf, val)
	}
	buf.WriteByte(']')
	return buf.String()
}
