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
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpatialRefFromEPSG(t *testing.T) {
	sr, err := NewSpatialRefFromEPSG(4326)
	require.NoError(t, err)
	defer sr.Close()

	assert.True(t, sr.Geographic())
	assert.Equal(t, "EPSG", sr.AuthorityName(""))
	assert.Equal(t, "4326", sr.AuthorityCode(""))

	sm, err := sr.SemiMajor()
	require.NoError(t, err)
	assert.InDelta(t, 6378137.0, sm, 1e-3)
	sn, err := sr.SemiMinor()
	require.NoError(t, err)
	assert.InDelta(t, 6356752.3, sn, 1e-1)

	_, err = NewSpatialRefFromEPSG(-1)
	assert.Error(t, err)
}

func TestSpatialRefFromWKT(t *testing.T) {
	sr, err := NewSpatialRefFromEPSG(4326)
	require.NoError(t, err)
	defer sr.Close()
	wkt, err := sr.WKT()
	require.NoError(t, err)
	assert.Contains(t, wkt, "WGS 84")

	sr2, err := NewSpatialRefFromWKT(wkt)
	require.NoError(t, err)
	defer sr2.Close()
	assert.True(t, sr.IsSame(sr2))

	_, err = NewSpatialRefFromWKT("definitely not wkt")
	assert.Error(t, err)
}

func TestSpatialRefFromProj4(t *testing.T) {
	sr, err := NewSpatialRefFromProj4("+proj=longlat +datum=WGS84 +no_defs")
	require.NoError(t, err)
	defer sr.Close()
	assert.True(t, sr.Geographic())

	_, err = NewSpatialRefFromProj4("+proj=nonexistentproj")
	assert.Error(t, err)
}

func TestSpatialRefClone(t *testing.T) {
	sr, err := NewSpatialRefFromEPSG(3857)
	require.NoError(t, err)
	defer sr.Close()

	cl, err := sr.Clone()
	require.NoError(t, err)
	defer cl.Close()
	assert.True(t, sr.IsSame(cl))
	assert.False(t, cl.Geographic())

	other, err := NewSpatialRefFromEPSG(4326)
	require.NoError(t, err)
	defer other.Close()
	assert.False(t, sr.IsSame(other))
}

func TestAutoIdentifyEPSG(t *testing.T) {
	sr, err := NewSpatialRefFromProj4("+proj=longlat +datum=WGS84 +no_defs")
	require.NoError(t, err)
	defer sr.Close()

	assert.Equal(t, "", sr.AuthorityCode(""))
	require.NoError(t, sr.AutoIdentifyEPSG())
	assert.Equal(t, "4326", sr.AuthorityCode(""))
}

func TestTransform(t *testing.T) {
	src, err := NewSpatialRefFromEPSG(4326)
	require.NoError(t, err)
	defer src.Close()
	dst, err := NewSpatialRefFromEPSG(3857)
	require.NoError(t, err)
	defer dst.Close()

	trn, err := NewTransform(src, dst)
	require.NoError(t, err)
	defer trn.Close()

	x := []float64{49.0}
	y := []float64{2.0}
	ok := []bool{false}
	require.NoError(t, trn.TransformEx(x, y, nil, ok))
	assert.True(t, ok[0])
	// the point ends up somewhere in web mercator meters
	assert.Greater(t, math.Abs(x[0])+math.Abs(y[0]), 1e5)
}

func TestTransformErrors(t *testing.T) {
	src, err := NewSpatialRefFromEPSG(4326)
	require.NoError(t, err)
	defer src.Close()

	// no transformation path exists to an engineering CRS
	local, err := NewSpatialRefFromWKT(`LOCAL_CS["arbitrary",LOCAL_DATUM["unknown",0],UNIT["metre",1],AXIS["X",EAST],AXIS["Y",NORTH]]`)
	require.NoError(t, err)
	defer local.Close()

	_, err = NewTransform(src, local)
	assert.Error(t, err)
}
