// Copyright 2022 Matrix Origin
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

package util

import (
	"time"
)

type TimeMono = uint64

type TimeNano = uint64

var globalStartTime = time.Now()

// MonotimeNS returns nanoseconds elapsed on the monotonic clock since the
// process started. Use it for durations, never for wall time.
func MonotimeNS() TimeMono {
	return TimeMono(time.Since(globalStartTime))
}

func Now() time.Time {
	return time.Now()
}

// NowNS returns wall time in unix nanoseconds.
func NowNS() TimeNano {
	return TimeNano(time.Now().UnixNano())
}
