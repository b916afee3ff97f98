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
	"errors"
	"testing"

	"github.com/prashantv/gostub"
	"github.com/stretchr/testify/require"

	"github.com/matrixorigin/vectorkit/pkg/common/moerr"
)

func TestMmapAllocator(t *testing.T) {
	a := NewMmapAllocator[float64]()

	buf, dec, err := a.Allocate(1024, NoHints)
	require.NoError(t, err)
	require.Len(t, buf, 1024)
	require.Equal(t, int64(8192), a.Mapped())
	for i := range buf {
		require.Equal(t, float64(0), buf[i])
		buf[i] = float64(i) / 2
	}
	require.Equal(t, 511.5, buf[1023])
	dec.Deallocate(NoHints)
	require.Equal(t, int64(0), a.Mapped())

	buf, dec, err = a.Allocate(0, NoHints)
	require.NoError(t, err)
	require.Nil(t, buf)
	dec.Deallocate(NoHints)
}

func TestMmapAllocatorFailure(t *testing.T) {
	stubs := gostub.Stub(&mmapFunc, func(int) ([]byte, error) {
		return nil, errors.New("cannot allocate memory")
	})
	defer stubs.Reset()

	a := NewMmapAllocator[int32]()
	_, _, err := a.Allocate(16, NoHints)
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrOOM))
	require.Equal(t, "cannot allocate memory", moerr.DowncastError(err).Detail())
	require.Equal(t, int64(0), a.Mapped())
}

func TestMmapAllocatorUnmap(t *testing.T) {
	var unmapped int
	stubs := gostub.Stub(&munmapFunc, func(mem []byte) error {
		unmapped += len(mem)
		return munmap(mem)
	})
	defer stubs.Reset()

	a := NewMmapAllocator[uint16]()
	_, dec, err := a.Allocate(100, NoHints)
	require.NoError(t, err)
	dec.Deallocate(NoHints)
	require.Equal(t, 200, unmapped)
}
