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
	"github.com/matrixorigin/vectorkit/pkg/common/moerr"
)

// offsetOf validates an insertion position, which may equal End().
func (v *Vector[T]) offsetOf(pos Iterator[T]) int {
	if pos.v != v {
		panic(moerr.NewInvalidArgNoCtx("iterator", "iterator of another vector"))
	}
	if pos.pos < 0 || pos.pos > v.length {
		panic(moerr.NewOutOfRangeNoCtx("vector position", "position %d, length %d", pos.pos, v.length))
	}
	return pos.pos
}

// openGap makes n uninitialized slots at off by shifting the tail right.
// Growth happens first, so on error nothing has moved.
func (v *Vector[T]) openGap(off, n int) error {
	if err := v.reserveFor(n); err != nil {
		return err
	}
	moveRange(v.buf, off+n, off, v.length-off)
	clear(v.buf[off : off+n])
	v.length += n
	return nil
}

// closeGap removes the n destroyed slots at off by shifting the tail left.
func (v *Vector[T]) closeGap(off, n int) {
	moveRange(v.buf, off, off+n, v.length-off-n)
	clear(v.buf[v.length-n : v.length])
	v.length -= n
}

// EmplaceBack constructs a new last element in place. init receives a
// pointer to the zeroed slot and may be nil.
func (v *Vector[T]) EmplaceBack(init func(*T)) (*T, error) {
	if err := v.reserveFor(1); err != nil {
		return nil, err
	}
	p := v.emplaceAt(v.length, init)
	v.length++
	return p, nil
}

func (v *Vector[T]) PushBack(val T) error {
	if v.copier != nil {
		val = v.copier(val)
	}
	_, err := v.EmplaceBack(func(p *T) {
		*p = val
	})
	return err
}

// PopBack destroys the last element. It panics on an empty vector.
func (v *Vector[T]) PopBack() {
	if v.length == 0 {
		panic(moerr.NewEmptyVectorNoCtx())
	}
	v.length--
	v.destroyAt(v.length)
}

func (v *Vector[T]) TryPopBack() error {
	if v.length == 0 {
		return moerr.NewEmptyVectorNoCtx()
	}
	v.PopBack()
	return nil
}

// Insert copies val before pos and returns an iterator to it.
func (v *Vector[T]) Insert(pos Iterator[T], val T) (Iterator[T], error) {
	off := v.offsetOf(pos)
	if err := v.openGap(off, 1); err != nil {
		return pos, err
	}
	v.constructAt(off, val)
	return v.IteratorAt(off), nil
}

// Emplace constructs a new element in place before pos.
func (v *Vector[T]) Emplace(pos Iterator[T], init func(*T)) (Iterator[T], error) {
	off := v.offsetOf(pos)
	if err := v.openGap(off, 1); err != nil {
		return pos, err
	}
	v.emplaceAt(off, init)
	return v.IteratorAt(off), nil
}

// InsertN inserts n copies of val before pos and returns an iterator to
// the first of them, or pos when n is 0.
func (v *Vector[T]) InsertN(pos Iterator[T], n int, val T) (Iterator[T], error) {
	off := v.offsetOf(pos)
	if err := checkSize(n); err != nil {
		return pos, err
	}
	if n == 0 {
		return pos, nil
	}
	if err := v.openGap(off, n); err != nil {
		return pos, err
	}
	for i := off; i < off+n; i++ {
		v.constructAt(i, val)
	}
	return v.IteratorAt(off), nil
}

// InsertRange inserts copies of [first, last) before pos. The range may
// belong to v itself.
func (v *Vector[T]) InsertRange(pos Iterator[T], first, last ConstIterator[T]) (Iterator[T], error) {
	off := v.offsetOf(pos)
	vals := rangeOf(first, last)
	if len(vals) == 0 {
		return pos, nil
	}
	if first.it.v == v {
		// snapshot, the gap would shift the source
		vals = append([]T(nil), vals...)
	}
	return v.insertValues(off, vals)
}

// InsertValues inserts copies of vals before pos.
func (v *Vector[T]) InsertValues(pos Iterator[T], vals ...T) (Iterator[T], error) {
	return v.insertValues(v.offsetOf(pos), vals)
}

func (v *Vector[T]) insertValues(off int, vals []T) (Iterator[T], error) {
	if len(vals) == 0 {
		return v.IteratorAt(off), nil
	}
	if err := v.openGap(off, len(vals)); err != nil {
		return v.IteratorAt(off), err
	}
	for i, val := range vals {
		v.constructAt(off+i, val)
	}
	return v.IteratorAt(off), nil
}

// Erase removes the element at pos and returns an iterator to the element
// that followed it.
func (v *Vector[T]) Erase(pos Iterator[T]) Iterator[T] {
	off := v.offsetOf(pos)
	if off == v.length {
		panic(moerr.NewOutOfRangeNoCtx("vector position", "erase at end, length %d", v.length))
	}
	v.destroyAt(off)
	v.closeGap(off, 1)
	return v.IteratorAt(off)
}

// EraseRange removes [first, last) and returns an iterator at first.
func (v *Vector[T]) EraseRange(first, last Iterator[T]) Iterator[T] {
	f, l := v.offsetOf(first), v.offsetOf(last)
	if f > l {
		panic(moerr.NewOutOfRangeNoCtx("vector range", "first %d after last %d", f, l))
	}
	if f == l {
		return first
	}
	v.destroyRange(f, l)
	v.closeGap(f, l-f)
	return v.IteratorAt(f)
}

// Resize sets the length to n, appending zero values or destroying the
// excess elements.
func (v *Vector[T]) Resize(n int) error {
	if err := checkSize(n); err != nil {
		return err
	}
	if n <= v.length {
		v.destroyRange(n, v.length)
		v.length = n
		return nil
	}
	if err := v.reserveFor(n - v.length); err != nil {
		return err
	}
	// dead slots are already zero
	v.length = n
	return nil
}

// ResizeWith is Resize appending copies of val.
func (v *Vector[T]) ResizeWith(n int, val T) error {
	if err := checkSize(n); err != nil {
		return err
	}
	if n <= v.length {
		v.destroyRange(n, v.length)
		v.length = n
		return nil
	}
	if err := v.reserveFor(n - v.length); err != nil {
		return err
	}
	for i := v.length; i < n; i++ {
		v.constructAt(i, val)
	}
	v.length = n
	return nil
}

// Clear destroys every element and keeps the buffer.
func (v *Vector[T]) Clear() {
	v.destroyRange(0, v.length)
	v.length = 0
}
