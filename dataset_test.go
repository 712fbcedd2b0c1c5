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
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatasetStructure(t *testing.T) {
	ds, err := Create(Memory, "", 3, Byte, 100, 50)
	require.NoError(t, err)
	defer ds.Close()

	st := ds.Structure()
	assert.Equal(t, 100, st.SizeX)
	assert.Equal(t, 50, st.SizeY)
	assert.Equal(t, 3, st.NBands)
	assert.Equal(t, Byte, st.DataType)

	bands := ds.Bands()
	require.Len(t, bands, 3)
	bst := bands[0].Structure()
	assert.Equal(t, 100, bst.SizeX)
	assert.Equal(t, 50, bst.SizeY)
}

func TestRasterBand(t *testing.T) {
	ds, err := Create(Memory, "", 3, Byte, 10, 10)
	require.NoError(t, err)
	defer ds.Close()

	_, err = ds.RasterBand(1)
	assert.NoError(t, err)
	_, err = ds.RasterBand(3)
	assert.NoError(t, err)

	var npe *NullPointerError
	_, err = ds.RasterBand(0)
	require.Error(t, err)
	assert.True(t, errors.As(err, &npe))
	_, err = ds.RasterBand(4)
	require.Error(t, err)
	assert.True(t, errors.As(err, &npe))
}

func TestGeoTransform(t *testing.T) {
	ds, err := Create(Memory, "", 1, Byte, 10, 10)
	require.NoError(t, err)
	defer ds.Close()

	_, err = ds.GeoTransform()
	assert.Error(t, err)

	gt := [6]float64{440720, 60, 0, 3751320, 0, -60}
	require.NoError(t, ds.SetGeoTransform(gt))
	got, err := ds.GeoTransform()
	require.NoError(t, err)
	assert.Equal(t, gt, got)
}

func TestProjection(t *testing.T) {
	ds, err := Create(Memory, "", 1, Byte, 10, 10)
	require.NoError(t, err)
	defer ds.Close()

	sr, err := NewSpatialRefFromEPSG(4326)
	require.NoError(t, err)
	defer sr.Close()

	require.NoError(t, ds.SetSpatialRef(sr))
	assert.Contains(t, ds.Projection(), "WGS 84")
	got := ds.SpatialRef()
	require.NotNil(t, got)
	assert.True(t, got.IsSame(sr))

	wkt, err := sr.WKT()
	require.NoError(t, err)
	require.NoError(t, ds.SetProjection(wkt))
	assert.Contains(t, ds.Projection(), "WGS 84")

	assert.Error(t, ds.SetProjection("not a wkt string"))
}

func TestNoData(t *testing.T) {
	tf := tempfile()
	defer os.Remove(tf)
	ds, err := Create(GTiff, tf, 1, Byte, 8, 8)
	require.NoError(t, err)
	defer ds.Close()

	band := ds.Bands()[0]
	_, ok := band.NoData()
	assert.False(t, ok)

	require.NoError(t, ds.SetNoData(42))
	nd, ok := band.NoData()
	assert.True(t, ok)
	assert.Equal(t, 42.0, nd)

	require.NoError(t, band.SetNoData(5))
	nd, ok = band.NoData()
	assert.True(t, ok)
	assert.Equal(t, 5.0, nd)

	require.NoError(t, band.ClearNoData())
	_, ok = band.NoData()
	assert.False(t, ok)
}

func TestScaleOffset(t *testing.T) {
	ds, err := Create(Memory, "", 1, Byte, 8, 8)
	require.NoError(t, err)
	defer ds.Close()

	band := ds.Bands()[0]
	require.NoError(t, band.SetScaleOffset(2.0, 0.5))
	st := band.Structure()
	assert.Equal(t, 2.0, st.Scale)
	assert.Equal(t, 0.5, st.Offset)
}

func TestColorInterp(t *testing.T) {
	ds, err := Create(Memory, "", 3, Byte, 8, 8)
	require.NoError(t, err)
	defer ds.Close()

	band := ds.Bands()[0]
	require.NoError(t, band.SetColorInterp(CIRed))
	assert.Equal(t, CIRed, band.ColorInterp())
	assert.Equal(t, "Red", band.ColorInterp().Name())
}

func TestFill(t *testing.T) {
	ds, err := Create(Memory, "", 1, Byte, 8, 8)
	require.NoError(t, err)
	defer ds.Close()

	band := ds.Bands()[0]
	require.NoError(t, band.Fill(3, 0))
	data, err := ReadBandAll[uint8](band)
	require.NoError(t, err)
	require.Len(t, data, 64)
	for _, v := range data {
		assert.Equal(t, uint8(3), v)
	}
}

func TestMaskBands(t *testing.T) {
	ds, err := Create(Memory, "", 1, Byte, 8, 8)
	require.NoError(t, err)
	defer ds.Close()

	band := ds.Bands()[0]
	// GMF_ALL_VALID
	assert.Equal(t, 0x01, band.MaskFlags())

	// GMF_PER_DATASET
	msk, err := ds.CreateMaskBand(0x02)
	require.NoError(t, err)
	assert.NotEqual(t, 0, band.MaskFlags()&0x02)
	require.NoError(t, msk.Fill(255, 0))

	mb := band.MaskBand()
	data, err := ReadBandAll[uint8](mb)
	require.NoError(t, err)
	assert.Equal(t, uint8(255), data[0])
}

func TestBuildOverviews(t *testing.T) {
	tf := tempfile()
	defer os.Remove(tf)
	ds, err := Create(GTiff, tf, 1, Byte, 64, 64)
	require.NoError(t, err)
	defer ds.Close()
	band := ds.Bands()[0]

	require.NoError(t, ds.BuildOverviews(Levels(2, 4)))
	ovrs := band.Overviews()
	require.Len(t, ovrs, 2)
	assert.Equal(t, 32, ovrs[0].Structure().SizeX)
	assert.Equal(t, 16, ovrs[1].Structure().SizeX)

	require.NoError(t, ds.ClearOverviews())
	assert.Len(t, band.Overviews(), 0)

	// levels are computed from MinSize when not given explicitly
	require.NoError(t, ds.BuildOverviews(MinSize(16), Resampling(Average)))
	assert.Len(t, band.Overviews(), 2)

	assert.Error(t, ds.BuildOverviews(Levels(1)))
}

func TestTranslate(t *testing.T) {
	ds, err := Create(Memory, "", 1, Byte, 10, 10)
	require.NoError(t, err)
	defer ds.Close()
	require.NoError(t, ds.Bands()[0].Fill(7, 0))

	out, err := ds.Translate("/vsimem/translated.tif", []string{"-outsize", "5", "5"}, GTiff)
	require.NoError(t, err)
	st := out.Structure()
	assert.Equal(t, 5, st.SizeX)
	assert.Equal(t, 5, st.SizeY)
	data, err := ReadBandAll[uint8](out.Bands()[0])
	require.NoError(t, err)
	assert.Equal(t, uint8(7), data[0])
	require.NoError(t, out.Close())
	require.NoError(t, VSIUnlink("/vsimem/translated.tif"))

	_, err = ds.Translate("/this/path/does/not/exist/out.tif", nil, GTiff)
	assert.Error(t, err)
}

func TestBorrowedClosed(t *testing.T) {
	ds, err := Create(Memory, "", 1, Byte, 8, 8)
	require.NoError(t, err)
	band := ds.Bands()[0]
	require.NoError(t, ds.Close())

	assert.ErrorIs(t, band.SetNoData(1), ErrBorrowedClosed)
	assert.ErrorIs(t, band.ClearNoData(), ErrBorrowedClosed)
	assert.ErrorIs(t, band.Fill(0, 0), ErrBorrowedClosed)
	assert.ErrorIs(t, band.SetColorInterp(CIGray), ErrBorrowedClosed)
	_, err = band.CreateMask(0x02)
	assert.ErrorIs(t, err, ErrBorrowedClosed)
	buf := make([]uint8, 64)
	assert.ErrorIs(t, ReadBand(band, 0, 0, buf, 8, 8), ErrBorrowedClosed)
	_, err = ReadBandAll[uint8](band)
	assert.ErrorIs(t, err, ErrBorrowedClosed)

	// infallible getters return zero values rather than touching the
	// freed native handle
	assert.Equal(t, BandStructure{}, band.Structure())
	_, ok := band.NoData()
	assert.False(t, ok)
	assert.Equal(t, CIUndefined, band.ColorInterp())
	assert.Equal(t, 0, band.MaskFlags())
	assert.Nil(t, band.Overviews())
	assert.Empty(t, band.Metadata("AREA_OR_POINT"))
	assert.Nil(t, band.Metadatas())
	assert.Nil(t, band.MetadataDomains())
	assert.Empty(t, band.Description())
	assert.ErrorIs(t, band.SetMetadata("k", "v"), ErrBorrowedClosed)
	assert.ErrorIs(t, band.SetDescription("d"), ErrBorrowedClosed)

	_, err = ds.RasterBand(1)
	assert.ErrorIs(t, err, ErrBorrowedClosed)
}
