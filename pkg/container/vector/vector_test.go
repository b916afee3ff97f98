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
	"reflect"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/smartystreets/goconvey/convey"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/matrixorigin/vectorkit/pkg/common/malloc"
	"github.com/matrixorigin/vectorkit/pkg/common/moerr"
)

func requireElements[T any](t *testing.T, v *Vector[T], want ...T) {
	t.Helper()
	if want == nil {
		want = []T{}
	}
	require.Empty(t, cmp.Diff(want, append([]T{}, v.Data()...), cmp.Exporter(func(reflect.Type) bool { return true })))
	require.LessOrEqual(t, v.Len(), v.Cap())
}

func newMetricsAllocator[T any](t *testing.T) (malloc.Allocator[T], *malloc.Metrics) {
	metrics := malloc.NewMetrics("vectorkit", "vector_test", prometheus.Labels{"test": t.Name()})
	return malloc.NewMetricsAllocator[T](malloc.NewGoAllocator[T](), metrics), metrics
}

func TestScenarios(t *testing.T) {
	convey.Convey("push 0..9 from the default capacity", t, func() {
		v, err := New[int]()
		convey.So(err, convey.ShouldBeNil)
		convey.So(v.Cap(), convey.ShouldEqual, DefaultCapacity)
		for i := 0; i < 10; i++ {
			convey.So(v.PushBack(i), convey.ShouldBeNil)
		}
		convey.So(v.Len(), convey.ShouldEqual, 10)
		convey.So(v.Cap(), convey.ShouldEqual, 11)
		convey.So(v.Data(), convey.ShouldResemble, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9})
	})

	convey.Convey("insert then erase in the middle", t, func() {
		v, err := FromValues([]int{1, 2, 3})
		convey.So(err, convey.ShouldBeNil)
		it, err := v.Insert(v.Begin().Add(1), 9)
		convey.So(err, convey.ShouldBeNil)
		convey.So(it.Pos(), convey.ShouldEqual, 1)
		convey.So(it.Get(), convey.ShouldEqual, 9)
		convey.So(v.Data(), convey.ShouldResemble, []int{1, 9, 2, 3})

		it = v.Erase(v.Begin().Add(1))
		convey.So(it.Get(), convey.ShouldEqual, 2)
		convey.So(v.Data(), convey.ShouldResemble, []int{1, 2, 3})
	})

	convey.Convey("resize up then down", t, func() {
		v, err := FromValues([]int{1, 2, 3})
		convey.So(err, convey.ShouldBeNil)
		convey.So(v.Resize(5), convey.ShouldBeNil)
		convey.So(v.Data(), convey.ShouldResemble, []int{1, 2, 3, 0, 0})
		convey.So(v.Resize(2), convey.ShouldBeNil)
		convey.So(v.Data(), convey.ShouldResemble, []int{1, 2})
		convey.So(v.Cap(), convey.ShouldEqual, 5)
	})

	convey.Convey("swap exchanges buffers only", t, func() {
		alloc, metrics := newMetricsAllocator[int](t)
		a, err := FromValues([]int{1, 2}, WithAllocator(alloc))
		convey.So(err, convey.ShouldBeNil)
		b, err := FromValues([]int{3, 4, 5}, WithAllocator(alloc))
		convey.So(err, convey.ShouldBeNil)
		pa, pb := &a.Data()[0], &b.Data()[0]
		allocs := testutil.ToFloat64(metrics.AllocateObjects)

		Swap(a, b)
		convey.So(a.Data(), convey.ShouldResemble, []int{3, 4, 5})
		convey.So(b.Data(), convey.ShouldResemble, []int{1, 2})
		convey.So(&a.Data()[0], convey.ShouldPointTo, pb)
		convey.So(&b.Data()[0], convey.ShouldPointTo, pa)
		convey.So(a.Cap(), convey.ShouldEqual, 3)
		convey.So(b.Cap(), convey.ShouldEqual, 2)
		convey.So(testutil.ToFloat64(metrics.AllocateObjects), convey.ShouldEqual, allocs)
	})

	convey.Convey("checked access past the end", t, func() {
		v, err := FromValues([]int{1, 2, 3})
		convey.So(err, convey.ShouldBeNil)
		_, err = v.At(v.Len())
		convey.So(moerr.IsMoErrCode(err, moerr.ErrOutOfRange), convey.ShouldBeTrue)
		_, err = v.At(-1)
		convey.So(moerr.IsMoErrCode(err, moerr.ErrOutOfRange), convey.ShouldBeTrue)
		val, err := v.At(2)
		convey.So(err, convey.ShouldBeNil)
		convey.So(val, convey.ShouldEqual, 3)
	})
}

func TestConstructors(t *testing.T) {
	v, err := NewWithSize[string](3)
	require.NoError(t, err)
	requireElements(t, v, "", "", "")
	require.Equal(t, 3, v.Cap())

	v, err = NewFilled(2, "x")
	require.NoError(t, err)
	requireElements(t, v, "x", "x")
	require.Equal(t, 2, v.Cap())

	v, err = NewWithSize[string](0)
	require.NoError(t, err)
	require.True(t, v.Empty())
	require.Equal(t, 0, v.Cap())

	_, err = NewWithSize[string](-1)
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrInvalidArg))
	_, err = New(WithCapacity[string](-1))
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrInvalidArg))

	v, err = New(WithCapacity[string](0))
	require.NoError(t, err)
	require.Equal(t, 0, v.Cap())
	require.NoError(t, v.PushBack("a"))
	require.Equal(t, 1, v.Cap())

	src, err := FromValues([]int{1, 2, 3, 4, 5})
	require.NoError(t, err)
	w, err := FromRange(src.CBegin().Add(1), src.CEnd().Sub(1))
	require.NoError(t, err)
	requireElements(t, w, 2, 3, 4)
	require.Equal(t, 3, w.Cap())

	w, err = FromSeq(src.Values())
	require.NoError(t, err)
	requireElements(t, w, 1, 2, 3, 4, 5)

	w, err = FromValues[int](nil)
	require.NoError(t, err)
	require.True(t, w.Empty())
}

func TestValueSemantics(t *testing.T) {
	a, err := FromValues([]int{1, 2, 3})
	require.NoError(t, err)

	b, err := a.Clone()
	require.NoError(t, err)
	require.True(t, Equal(a, b))
	b.Set(0, 100)
	require.NoError(t, b.PushBack(4))
	requireElements(t, a, 1, 2, 3)
	requireElements(t, b, 100, 2, 3, 4)

	c := Move(b)
	requireElements(t, c, 100, 2, 3, 4)
	require.Equal(t, 0, b.Len())
	require.Equal(t, 0, b.Cap())
	// a moved-from vector is still usable
	require.NoError(t, b.PushBack(7))
	requireElements(t, b, 7)
}

func TestCopier(t *testing.T) {
	v, err := New(WithCopier(func(s []int) []int {
		return append([]int(nil), s...)
	}))
	require.NoError(t, err)

	elem := []int{1, 2}
	require.NoError(t, v.PushBack(elem))
	_, err = v.Insert(v.Begin(), elem)
	require.NoError(t, err)
	elem[0] = 100
	require.Equal(t, []int{1, 2}, v.Index(0))
	require.Equal(t, []int{1, 2}, v.Index(1))

	w, err := v.Clone()
	require.NoError(t, err)
	(*v.Ref(0))[1] = 200
	require.Equal(t, []int{1, 2}, w.Index(0))
}

func TestDestroyer(t *testing.T) {
	counts := make(map[int]int)
	destroyer := func(p *int) {
		counts[*p]++
	}
	v, err := FromValues([]int{1, 2, 3, 4, 5, 6, 7}, WithDestroyer(destroyer))
	require.NoError(t, err)

	v.Erase(v.Begin().Add(1))
	require.Equal(t, map[int]int{2: 1}, counts)
	v.PopBack()
	require.Equal(t, 1, counts[7])
	// relocation does not destroy
	require.NoError(t, v.Reserve(100))
	require.NoError(t, v.ShrinkToFit())
	require.Len(t, counts, 2)

	require.NoError(t, v.Resize(4))
	require.Equal(t, 1, counts[6])
	v.EraseRange(v.Begin(), v.Begin().Add(1))
	require.Equal(t, 1, counts[1])
	require.NoError(t, v.AssignValues(10, 11))
	require.Equal(t, 1, counts[3])
	require.Equal(t, 1, counts[4])
	require.Equal(t, 1, counts[5])
	v.Set(0, 12)
	require.Equal(t, 1, counts[10])
	v.Clear()
	v.Free()
	for val, n := range counts {
		require.Equal(t, 1, n, "element %d", val)
	}
	require.Len(t, counts, 10)
}

func TestFree(t *testing.T) {
	alloc, err := malloc.NewClassAllocator[int](malloc.DefaultMaxBufferSize, malloc.DefaultClassSizeFactor)
	require.NoError(t, err)
	v, err := New(WithAllocator[int](alloc))
	require.NoError(t, err)
	for i := 0; i < 100; i++ {
		require.NoError(t, v.PushBack(i))
	}
	v.Free()
	require.Equal(t, 0, v.Len())
	require.Equal(t, 0, v.Cap())

	var alloced, freed int64
	for _, stats := range alloc.Stats() {
		alloced += stats.Alloc
		freed += stats.Free
	}
	require.Equal(t, alloced, freed)

	// a freed vector is reusable and sees recycled zeroed buffers
	require.NoError(t, v.Resize(50))
	for _, val := range v.Data() {
		require.Equal(t, 0, val)
	}
	v.Free()
}

func TestAccess(t *testing.T) {
	v, err := FromValues([]int{1, 2, 3})
	require.NoError(t, err)
	require.Equal(t, 1, v.Front())
	require.Equal(t, 3, v.Back())
	*v.Ref(1) = 20
	require.Equal(t, 20, v.Index(1))
	require.Equal(t, "[1 20 3]", v.String())

	require.Panics(t, func() { v.Index(3) })
	require.Panics(t, func() { v.Ref(-1) })

	val, err := v.TryFront()
	require.NoError(t, err)
	require.Equal(t, 1, val)
	val, err = v.TryBack()
	require.NoError(t, err)
	require.Equal(t, 3, val)

	v.Clear()
	require.Equal(t, 3, v.Cap())
	require.Panics(t, func() { v.Front() })
	require.Panics(t, func() { v.Back() })
	_, err = v.TryFront()
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrEmptyVector))
	_, err = v.TryBack()
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrEmptyVector))

	// dead slots are not reachable through Data
	require.NoError(t, v.PushBack(1))
	require.Equal(t, 1, cap(v.Data()))
}

func TestLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	v, err := New(WithLogger[int](zap.New(core)), WithCapacity[int](1))
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		require.NoError(t, v.PushBack(i))
	}
	// 0 -> 1 -> 2 -> 4
	entries := logs.FilterMessage("vector reallocated").All()
	require.Len(t, entries, 3)
	require.Equal(t, int64(4), entries[2].ContextMap()["to"])
}
