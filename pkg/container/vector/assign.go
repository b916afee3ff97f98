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

// fill makes v hold n copies of val in a buffer of exactly n slots.
// v must be empty.
func (v *Vector[T]) fill(n int, val T) error {
	if err := v.growTo(n); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		v.constructAt(i, val)
	}
	v.length = n
	return nil
}

// copyValues makes the empty v hold copies of vals with capacity len(vals).
func (v *Vector[T]) copyValues(vals []T) error {
	if err := v.growTo(len(vals)); err != nil {
		return err
	}
	for i, val := range vals {
		v.constructAt(i, val)
	}
	v.length = len(vals)
	return nil
}

func (v *Vector[T]) copyRange(first, last ConstIterator[T]) error {
	return v.copyValues(rangeOf(first, last))
}

// adopt takes over tmp's contents and frees the previous ones through tmp.
func (v *Vector[T]) adopt(tmp *Vector[T]) {
	v.storage, tmp.storage = tmp.storage, v.storage
	tmp.Free()
}

// CopyFrom replaces the contents of v with copies of other's elements.
// The new capacity equals other.Len(). When copying fails v is unchanged.
func (v *Vector[T]) CopyFrom(other *Vector[T]) error {
	if v == other {
		return nil
	}
	tmp := v.emptyLike()
	if err := tmp.copyValues(other.Data()); err != nil {
		return err
	}
	v.adopt(tmp)
	return nil
}

// MoveFrom destroys the contents of v and takes other's buffer in O(1).
// other is left empty with no buffer.
func (v *Vector[T]) MoveFrom(other *Vector[T]) {
	if v == other {
		return
	}
	tmp := v.emptyLike()
	tmp.storage, other.storage = other.storage, storage[T]{}
	v.adopt(tmp)
}

// Assign replaces the contents of v with n copies of val.
func (v *Vector[T]) Assign(n int, val T) error {
	if err := checkSize(n); err != nil {
		return err
	}
	tmp := v.emptyLike()
	if err := tmp.fill(n, val); err != nil {
		return err
	}
	v.adopt(tmp)
	return nil
}

// AssignRange replaces the contents of v with copies of [first, last),
// which may belong to v.
func (v *Vector[T]) AssignRange(first, last ConstIterator[T]) error {
	tmp := v.emptyLike()
	if err := tmp.copyRange(first, last); err != nil {
		return err
	}
	v.adopt(tmp)
	return nil
}

func (v *Vector[T]) AssignValues(vals ...T) error {
	tmp := v.emptyLike()
	if err := tmp.copyValues(vals); err != nil {
		return err
	}
	v.adopt(tmp)
	return nil
}
