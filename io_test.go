// Copyright 2021 Airbus Defence and Space
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package gdalgo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBandReadWrite(t *testing.T) {
	ds, err := Create(Memory, "", 1, Byte, 8, 4)
	require.NoError(t, err)
	defer ds.Close()
	band := ds.Bands()[0]

	buf := make([]uint8, 32)
	for i := range buf {
		buf[i] = uint8(i)
	}
	require.NoError(t, WriteBand(band, 0, 0, buf, 8, 4))

	read := make([]uint8, 32)
	require.NoError(t, ReadBand(band, 0, 0, read, 8, 4))
	assert.Equal(t, buf, read)

	// windowed read at (2,1), 3x2 pixels
	win := make([]uint8, 6)
	require.NoError(t, ReadBand(band, 2, 1, win, 3, 2))
	assert.Equal(t, []uint8{10, 11, 12, 18, 19, 20}, win)
}

func TestBandReadConverted(t *testing.T) {
	ds, err := Create(Memory, "", 1, Byte, 4, 4)
	require.NoError(t, err)
	defer ds.Close()
	band := ds.Bands()[0]
	require.NoError(t, band.Fill(12, 0))

	f64, err := ReadBandAll[float64](band)
	require.NoError(t, err)
	require.Len(t, f64, 16)
	assert.Equal(t, 12.0, f64[0])

	i32 := make([]int32, 16)
	require.NoError(t, ReadBand(band, 0, 0, i32, 4, 4))
	assert.Equal(t, int32(12), i32[15])
}

func TestBandResampledRead(t *testing.T) {
	ds, err := Create(Memory, "", 1, Byte, 8, 8)
	require.NoError(t, err)
	defer ds.Close()
	band := ds.Bands()[0]
	require.NoError(t, band.Fill(10, 0))

	// read the full 8x8 window into a 4x4 buffer
	buf := make([]uint8, 16)
	require.NoError(t, ReadBand(band, 0, 0, buf, 4, 4, Window(8, 8), Resampling(Average)))
	for _, v := range buf {
		assert.Equal(t, uint8(10), v)
	}
}

func TestBandIOErrors(t *testing.T) {
	ds, err := Create(Memory, "", 1, Byte, 8, 8)
	require.NoError(t, err)
	defer ds.Close()
	band := ds.Bands()[0]

	buf := make([]uint8, 64)
	assert.Error(t, ReadBand(band, 0, 0, buf, 0, 8))
	assert.Error(t, ReadBand(band, 0, 0, buf, 8, -1))
	assert.Error(t, ReadBand(band, 0, 0, buf[:10], 8, 8))
	assert.Error(t, ReadBand(band, 0, 0, buf, 8, 8, LineSpacing(100)))
}

func TestBlockReadWrite(t *testing.T) {
	ds, err := Create(Memory, "", 1, Byte, 100, 50)
	require.NoError(t, err)
	defer ds.Close()
	band := ds.Bands()[0]
	st := band.Structure()

	for blk, ok := st.FirstBlock(), true; ok; blk, ok = blk.Next() {
		buf := NewBuffer[uint8](blk.W, blk.H)
		for i := range buf.Data {
			buf.Data[i] = uint8(blk.Y0 % 256)
		}
		require.NoError(t, WriteBlock(band, blk, buf))
	}

	blk := st.Block(0, 10)
	buf, err := ReadBlock[uint8](band, blk)
	require.NoError(t, err)
	assert.Equal(t, 100, buf.Width)
	assert.Equal(t, uint8(10), buf.Elem(50, 0))

	assert.Error(t, WriteBlock(band, blk, NewBuffer[uint8](1, 1)))
}

func TestDatasetReadWrite(t *testing.T) {
	ds, err := Create(Memory, "", 3, Byte, 4, 4)
	require.NoError(t, err)
	defer ds.Close()
	for i, band := range ds.Bands() {
		require.NoError(t, band.Fill(float64(i+1), 0))
	}

	// pixel interleaved is the default layout
	px := make([]uint8, 48)
	require.NoError(t, ReadDataset(ds, 0, 0, px, 4, 4))
	assert.Equal(t, []uint8{1, 2, 3, 1, 2, 3}, px[0:6])

	bi := make([]uint8, 48)
	require.NoError(t, ReadDataset(ds, 0, 0, bi, 4, 4, BandInterleaved()))
	assert.Equal(t, uint8(1), bi[0])
	assert.Equal(t, uint8(1), bi[15])
	assert.Equal(t, uint8(2), bi[16])
	assert.Equal(t, uint8(3), bi[47])

	// single band selection, 0-indexed
	single := make([]uint8, 16)
	require.NoError(t, ReadDataset(ds, 0, 0, single, 4, 4, Bands(2)))
	assert.Equal(t, uint8(3), single[0])
}

func TestDatasetWrite(t *testing.T) {
	ds, err := Create(Memory, "", 2, Byte, 2, 2)
	require.NoError(t, err)
	defer ds.Close()

	px := []uint8{1, 2, 1, 2, 1, 2, 1, 2}
	require.NoError(t, WriteDataset(ds, 0, 0, px, 2, 2))

	b0, err := ReadBandAll[uint8](ds.Bands()[0])
	require.NoError(t, err)
	assert.Equal(t, []uint8{1, 1, 1, 1}, b0)
	b1, err := ReadBandAll[uint8](ds.Bands()[1])
	require.NoError(t, err)
	assert.Equal(t, []uint8{2, 2, 2, 2}, b1)
}

func TestDatasetIOErrors(t *testing.T) {
	ds, err := Create(Memory, "", 3, Byte, 4, 4)
	require.NoError(t, err)
	defer ds.Close()

	buf := make([]uint8, 48)
	assert.Error(t, ReadDataset(ds, 0, 0, buf, 0, 4))
	assert.Error(t, ReadDataset(ds, 0, 0, buf[:10], 4, 4))
	assert.Error(t, ReadDataset(ds, 0, 0, buf, 4, 4, Bands()))

	require.NoError(t, ds.Close())
	assert.ErrorIs(t, ReadDataset(ds, 0, 0, buf, 4, 4), ErrBorrowedClosed)
}
