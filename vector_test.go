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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func vectorFixture(t *testing.T) (*Dataset, Layer) {
	t.Helper()
	ds, err := CreateVector(Memory, "")
	require.NoError(t, err)
	sr, err := NewSpatialRefFromEPSG(4326)
	require.NoError(t, err)
	defer sr.Close()
	lyr, err := ds.CreateLayer("places", sr, GTPoint,
		NewFieldDefinition("name", FTString),
		NewFieldDefinition("pop", FTInt64),
		NewFieldDefinition("area", FTReal))
	require.NoError(t, err)
	return ds, lyr
}

func TestCreateLayer(t *testing.T) {
	ds, lyr := vectorFixture(t)
	defer ds.Close()

	assert.Equal(t, "places", lyr.Name())
	assert.Equal(t, GTPoint, lyr.Type())
	lsr := lyr.SpatialRef()
	require.NotNil(t, lsr)
	assert.Equal(t, "4326", lsr.AuthorityCode(""))

	cnt, err := lyr.FeatureCount()
	require.NoError(t, err)
	assert.Equal(t, 0, cnt)

	layers := ds.Layers()
	require.Len(t, layers, 1)
	assert.Equal(t, "places", layers[0].Name())

	require.NoError(t, lyr.CreateField(NewFieldDefinition("rank", FTInt)))
	f, err := lyr.NewFeature(nil)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, f.SetIntField("rank", 3))
	rank, err := f.IntField("rank")
	require.NoError(t, err)
	assert.Equal(t, int64(3), rank)
}

func TestFeatures(t *testing.T) {
	ds, lyr := vectorFixture(t)
	defer ds.Close()

	gm, err := NewGeometryFromWKT("POINT (2 49)", nil)
	require.NoError(t, err)
	defer gm.Close()

	f, err := lyr.NewFeature(gm)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, f.FID(), int64(0))
	require.NoError(t, f.SetStringField("name", "paris"))
	require.NoError(t, f.SetIntField("pop", 2000000))
	require.NoError(t, f.SetFloatField("area", 105.4))
	require.NoError(t, lyr.UpdateFeature(f))
	f.Close()

	cnt, err := lyr.FeatureCount()
	require.NoError(t, err)
	assert.Equal(t, 1, cnt)

	lyr.ResetReading()
	rf := lyr.NextFeature()
	require.NotNil(t, rf)
	defer rf.Close()
	name, err := rf.StringField("name")
	require.NoError(t, err)
	assert.Equal(t, "paris", name)
	pop, err := rf.IntField("pop")
	require.NoError(t, err)
	assert.Equal(t, int64(2000000), pop)
	area, err := rf.FloatField("area")
	require.NoError(t, err)
	assert.Equal(t, 105.4, area)

	g := rf.Geometry()
	require.NotNil(t, g)
	assert.Equal(t, GTPoint, g.Type())
	assert.Equal(t, [4]float64{2, 49, 2, 49}, g.Bounds())

	assert.Nil(t, lyr.NextFeature())
}

func TestFeatureFieldErrors(t *testing.T) {
	ds, lyr := vectorFixture(t)
	defer ds.Close()

	f, err := lyr.NewFeature(nil)
	require.NoError(t, err)
	defer f.Close()

	var ifte *InvalidFieldTypeError
	_, err = f.IntField("name")
	require.Error(t, err)
	assert.True(t, errors.As(err, &ifte))
	_, err = f.FloatField("name")
	assert.Error(t, err)
	_, err = f.StringField("pop")
	assert.Error(t, err)
	err = f.SetIntField("name", 1)
	require.Error(t, err)
	assert.True(t, errors.As(err, &ifte))

	_, err = f.IntField("nosuchfield")
	assert.Error(t, err)
}

func TestDeleteFeature(t *testing.T) {
	ds, lyr := vectorFixture(t)
	defer ds.Close()

	gm, err := NewGeometryFromWKT("POINT (0 0)", nil)
	require.NoError(t, err)
	defer gm.Close()
	f, err := lyr.NewFeature(gm)
	require.NoError(t, err)
	defer f.Close()

	cnt, _ := lyr.FeatureCount()
	require.Equal(t, 1, cnt)
	require.NoError(t, lyr.DeleteFeature(f))
	cnt, _ = lyr.FeatureCount()
	assert.Equal(t, 0, cnt)
}

func TestExecuteSQL(t *testing.T) {
	ds, lyr := vectorFixture(t)
	defer ds.Close()

	for i := 0; i < 3; i++ {
		gm, err := NewGeometryFromWKT("POINT (0 0)", nil)
		require.NoError(t, err)
		f, err := lyr.NewFeature(gm)
		require.NoError(t, err)
		require.NoError(t, f.SetIntField("pop", int64(i)))
		require.NoError(t, lyr.UpdateFeature(f))
		f.Close()
		gm.Close()
	}

	rs, err := ds.ExecuteSQL("SELECT * FROM places WHERE pop > 0", "")
	require.NoError(t, err)
	cnt, err := rs.FeatureCount()
	require.NoError(t, err)
	assert.Equal(t, 2, cnt)
	rs.Close()

	_, err = ds.ExecuteSQL("SELECT * FROM nosuchlayer", "")
	assert.Error(t, err)
}

func TestGeometryWKTWKB(t *testing.T) {
	gm, err := NewGeometryFromWKT("POINT (2 49)", nil)
	require.NoError(t, err)
	defer gm.Close()
	assert.False(t, gm.Empty())

	wkt, err := gm.WKT()
	require.NoError(t, err)
	assert.Contains(t, wkt, "POINT")

	wkb, err := gm.WKB()
	require.NoError(t, err)
	require.NotEmpty(t, wkb)

	g2, err := NewGeometryFromWKB(wkb, nil)
	require.NoError(t, err)
	defer g2.Close()
	assert.Equal(t, gm.Bounds(), g2.Bounds())

	_, err = NewGeometryFromWKB(nil, nil)
	assert.Error(t, err)
	_, err = NewGeometryFromWKT("NOT A WKT", nil)
	assert.Error(t, err)

	gj, err := gm.GeoJSON()
	require.NoError(t, err)
	assert.Contains(t, gj, "Point")

	cl, err := gm.Clone()
	require.NoError(t, err)
	defer cl.Close()
	assert.Equal(t, gm.Bounds(), cl.Bounds())
}

func TestGeometryOperations(t *testing.T) {
	gm, err := NewGeometryFromWKT("POINT (2 49)", nil)
	require.NoError(t, err)
	defer gm.Close()

	buffered, err := gm.Buffer(1, 8)
	require.NoError(t, err)
	defer buffered.Close()
	assert.Equal(t, GTPolygon, buffered.Type())
	b := buffered.Bounds()
	assert.InDelta(t, 1.0, b[0], 1e-6)
	assert.InDelta(t, 3.0, b[2], 1e-6)

	simplified, err := buffered.Simplify(0.5)
	require.NoError(t, err)
	defer simplified.Close()
	assert.False(t, simplified.Empty())
}

func TestGeometryReproject(t *testing.T) {
	sr, err := NewSpatialRefFromEPSG(4326)
	require.NoError(t, err)
	defer sr.Close()
	merc, err := NewSpatialRefFromEPSG(3857)
	require.NoError(t, err)
	defer merc.Close()

	gm, err := NewGeometryFromWKT("POINT (2 49)", sr)
	require.NoError(t, err)
	defer gm.Close()
	gsr := gm.SpatialRef()
	require.NotNil(t, gsr)
	assert.True(t, gsr.IsSame(sr))

	require.NoError(t, gm.Reproject(merc))
	b := gm.Bounds()
	assert.Greater(t, b[0]*b[0]+b[1]*b[1], 1e10)

	gm2, err := NewGeometryFromWKT("POINT (2 49)", sr)
	require.NoError(t, err)
	defer gm2.Close()
	trn, err := NewTransform(sr, merc)
	require.NoError(t, err)
	defer trn.Close()
	require.NoError(t, gm2.Transform(trn))
	assert.InDelta(t, b[0], gm2.Bounds()[0], 1e-3)
}

func TestGeometryOwnership(t *testing.T) {
	ds, lyr := vectorFixture(t)
	defer ds.Close()

	f, err := lyr.NewFeature(nil)
	require.NoError(t, err)
	defer f.Close()

	gm, err := NewGeometryFromWKT("POINT (1 2)", nil)
	require.NoError(t, err)
	require.NoError(t, f.SetGeometryDirectly(gm))
	// gm is now owned by the feature, Close must be a no-op
	gm.Close()

	g := f.Geometry()
	require.NotNil(t, g)
	assert.Equal(t, [4]float64{1, 2, 1, 2}, g.Bounds())

	// a borrowed geometry cannot be given away
	f2, err := lyr.NewFeature(nil)
	require.NoError(t, err)
	defer f2.Close()
	assert.Error(t, f2.SetGeometryDirectly(g))
	assert.NoError(t, f2.SetGeometry(g))

	stolen := f.StealGeometry()
	require.NotNil(t, stolen)
	assert.Equal(t, [4]float64{1, 2, 1, 2}, stolen.Bounds())
	stolen.Close()
}

func TestLayerClosedOwner(t *testing.T) {
	ds, lyr := vectorFixture(t)
	require.NoError(t, ds.Close())

	_, err := lyr.FeatureCount()
	assert.ErrorIs(t, err, ErrBorrowedClosed)
	_, err = lyr.NewFeature(nil)
	assert.ErrorIs(t, err, ErrBorrowedClosed)
	assert.ErrorIs(t, lyr.DeleteFeature(&Feature{}), ErrBorrowedClosed)

	// getters on a borrowed layer whose dataset is gone return zero values
	assert.Empty(t, lyr.Name())
	assert.Equal(t, GTUnknown, lyr.Type())
	assert.Nil(t, lyr.SpatialRef())
	lyr.ResetReading()
	assert.Nil(t, lyr.NextFeature())
}
