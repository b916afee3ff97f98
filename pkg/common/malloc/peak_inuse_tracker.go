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
	"sync/atomic"
	"time"
)

// PeakInuseTracker records the highest value it has been updated with.
type PeakInuseTracker struct {
	ptr atomic.Pointer[PeakInuseValue]
}

type PeakInuseValue struct {
	Value uint64
	Time  time.Time
}

var zeroPeak PeakInuseValue

func (p *PeakInuseTracker) Update(n uint64) {
	for {
		// read
		ptr := p.ptr.Load()
		if ptr != nil && n <= ptr.Value {
			return
		}
		// update
		if p.ptr.CompareAndSwap(ptr, &PeakInuseValue{
			Value: n,
			Time:  time.Now(),
		}) {
			return
		}
	}
}

func (p *PeakInuseTracker) Load() PeakInuseValue {
	if ptr := p.ptr.Load(); ptr != nil {
		return *ptr
	}
	return zeroPeak
}
