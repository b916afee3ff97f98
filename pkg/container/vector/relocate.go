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

// moveRange moves count elements from src to dest within buf. The ranges
// may overlap. Slots left behind keep their old bits and must be
// overwritten or cleared by the caller.
func moveRange[T any](buf []T, dest, src, count int) {
	if count <= 0 || dest == src {
		return
	}
	if dest < src {
		for i := 0; i < count; i++ {
			buf[dest+i] = buf[src+i]
		}
		return
	}
	for i := count - 1; i >= 0; i-- {
		buf[dest+i] = buf[src+i]
	}
}

// relocateInto moves the first count elements of src into the fresh
// buffer dst and clears them in src.
func relocateInto[T any](dst, src []T, count int) {
	copy(dst[:count], src[:count])
	clear(src[:count])
}
