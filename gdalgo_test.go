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

func init() {
	RegisterInternalDrivers()
}

func tempfile() string {
	f, err := os.CreateTemp("", "")
	if err != nil {
		panic(err)
	}
	f.Close()
	os.Remove(f.Name())
	return f.Name()
}

func TestVersion(t *testing.T) {
	v := Version()
	assert.GreaterOrEqual(t, v.Major(), 3)
	assert.GreaterOrEqual(t, v.Minor(), 0)
	assert.GreaterOrEqual(t, v.Revision(), 0)
	assert.True(t, CheckMinVersion(2, 0, 0))
	assert.False(t, CheckMinVersion(v.Major()+1, 0, 0))
	assert.NotPanics(t, func() { AssertMinVersion(2, 0, 0) })
	assert.Panics(t, func() { AssertMinVersion(v.Major()+1, 0, 0) })
}

func TestOpenClose(t *testing.T) {
	tf := tempfile()
	defer os.Remove(tf)
	ds, err := Create(GTiff, tf, 2, Byte, 16, 16)
	require.NoError(t, err)
	assert.NoError(t, ds.Close())

	ds, err = Open(tf)
	require.NoError(t, err)
	st := ds.Structure()
	assert.Equal(t, 16, st.SizeX)
	assert.Equal(t, 16, st.SizeY)
	assert.Equal(t, 2, st.NBands)
	assert.Equal(t, Byte, st.DataType)

	assert.NoError(t, ds.Close())
	assert.Error(t, ds.Close())
}

func TestOpenFailures(t *testing.T) {
	_, err := Open("/this/path/does/not/exist.tif")
	assert.Error(t, err)
	var npe *NullPointerError
	assert.True(t, errors.As(err, &npe))

	tf := tempfile()
	defer os.Remove(tf)
	ds, err := Create(GTiff, tf, 1, Byte, 8, 8)
	require.NoError(t, err)
	require.NoError(t, ds.Close())

	// a raster file must not open as a vector dataset
	_, err = Open(tf, VectorOnly())
	assert.Error(t, err)

	ds, err = Open(tf, RasterOnly(), Drivers("GTiff"))
	require.NoError(t, err)
	assert.NoError(t, ds.Close())

	// restricting to a driver that cannot handle the file must fail
	_, err = Open(tf, Drivers("GeoJSON"))
	assert.Error(t, err)
}
