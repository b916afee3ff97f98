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

// constructAt places val into the uninitialized slot i.
func (v *Vector[T]) constructAt(i int, val T) {
	if v.copier != nil {
		val = v.copier(val)
	}
	v.buf[i] = val
}

// emplaceAt builds the element in place in the uninitialized slot i.
func (v *Vector[T]) emplaceAt(i int, init func(*T)) *T {
	p := &v.buf[i]
	if init != nil {
		init(p)
	}
	return p
}

func (v *Vector[T]) destroyAt(i int) {
	if v.destroyer != nil {
		v.destroyer(&v.buf[i])
	}
	var zero T
	v.buf[i] = zero
}

func (v *Vector[T]) destroyRange(b, e int) {
	if v.destroyer != nil {
		for i := b; i < e; i++ {
			v.destroyer(&v.buf[i])
		}
	}
	clear(v.buf[b:e])
}
