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

package main

import (
	"github.com/matrixorigin/vectorkit/pkg/common/moerr"
	"github.com/matrixorigin/vectorkit/pkg/container/vector"
)

// maxFrontElements bounds the quadratic front workloads.
const maxFrontElements = 10000

type workload func(opts []vector.Option[int64], n int) error

var workloads = map[string]workload{
	"append":       appendWorkload,
	"insert-front": insertFrontWorkload,
	"erase-front":  eraseFrontWorkload,
	"resize":       resizeWorkload,
	"copy-assign":  copyAssignWorkload,
}

func appendWorkload(opts []vector.Option[int64], n int) error {
	v, err := vector.New(opts...)
	if err != nil {
		return err
	}
	defer v.Free()
	for i := 0; i < n; i++ {
		if err := v.PushBack(int64(i)); err != nil {
			return err
		}
	}
	return checkLen(v, n)
}

func insertFrontWorkload(opts []vector.Option[int64], n int) error {
	n = min(n, maxFrontElements)
	v, err := vector.New(opts...)
	if err != nil {
		return err
	}
	defer v.Free()
	for i := 0; i < n; i++ {
		if _, err := v.Insert(v.Begin(), int64(i)); err != nil {
			return err
		}
	}
	if n > 0 && v.Front() != int64(n-1) {
		return moerr.NewInternalErrorNoCtx("insert-front: front %d, want %d", v.Front(), n-1)
	}
	return checkLen(v, n)
}

func eraseFrontWorkload(opts []vector.Option[int64], n int) error {
	n = min(n, maxFrontElements)
	v, err := vector.NewWithSize(n, opts...)
	if err != nil {
		return err
	}
	defer v.Free()
	for i := range v.Data() {
		v.Set(i, int64(i))
	}
	for i := 0; !v.Empty(); i++ {
		if v.Front() != int64(i) {
			return moerr.NewInternalErrorNoCtx("erase-front: front %d, want %d", v.Front(), i)
		}
		v.Erase(v.Begin())
	}
	return nil
}

func resizeWorkload(opts []vector.Option[int64], n int) error {
	v, err := vector.New(opts...)
	if err != nil {
		return err
	}
	defer v.Free()
	for step := 1; step <= 4; step++ {
		if err := v.ResizeWith(n*step/4, int64(step)); err != nil {
			return err
		}
	}
	if err := v.Resize(n / 2); err != nil {
		return err
	}
	if err := v.ShrinkToFit(); err != nil {
		return err
	}
	return checkLen(v, n/2)
}

func copyAssignWorkload(opts []vector.Option[int64], n int) error {
	src, err := vector.NewFilled(n, 7, opts...)
	if err != nil {
		return err
	}
	defer src.Free()
	dst, err := vector.New(opts...)
	if err != nil {
		return err
	}
	defer dst.Free()
	if err := dst.CopyFrom(src); err != nil {
		return err
	}
	clone, err := dst.Clone()
	if err != nil {
		return err
	}
	defer clone.Free()
	if !vector.Equal(src, clone) {
		return moerr.NewInternalErrorNoCtx("copy-assign: copies differ")
	}
	return nil
}

func checkLen(v *vector.Vector[int64], n int) error {
	if v.Len() != n {
		return moerr.NewInternalErrorNoCtx("length %d, want %d", v.Len(), n)
	}
	return nil
}
