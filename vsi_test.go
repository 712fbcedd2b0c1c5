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
	"bytes"
	"fmt"
	"io"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// makeTiff returns the bytes of a small single band geotiff filled with fill
func makeTiff(t *testing.T, fill float64) []byte {
	t.Helper()
	ds, err := Create(Memory, "", 1, Byte, 16, 16)
	require.NoError(t, err)
	defer ds.Close()
	require.NoError(t, ds.Bands()[0].Fill(fill, 0))
	out, err := ds.Translate("/vsimem/maketiff.tif", nil, GTiff)
	require.NoError(t, err)
	require.NoError(t, out.Close())
	defer func() { require.NoError(t, VSIUnlink("/vsimem/maketiff.tif")) }()

	vf, err := VSIOpen("/vsimem/maketiff.tif")
	require.NoError(t, err)
	data, err := io.ReadAll(vf)
	require.NoError(t, err)
	require.NoError(t, vf.Close())
	return data
}

func TestVSIFile(t *testing.T) {
	data := makeTiff(t, 5)
	require.NotEmpty(t, data)
	// classic tiff magic
	assert.True(t, bytes.HasPrefix(data, []byte("II")) || bytes.HasPrefix(data, []byte("MM")))

	vf, err := VSIOpen("/vsimem/doesnotexist.tif")
	assert.Error(t, err)
	assert.Nil(t, vf)

	assert.Error(t, VSIUnlink("/vsimem/doesnotexist.tif"))
}

func TestVSIFileCloseTwice(t *testing.T) {
	ds, err := Create(Memory, "", 1, Byte, 4, 4)
	require.NoError(t, err)
	defer ds.Close()
	out, err := ds.Translate("/vsimem/closetwice.tif", nil, GTiff)
	require.NoError(t, err)
	require.NoError(t, out.Close())
	defer VSIUnlink("/vsimem/closetwice.tif")

	vf, err := VSIOpen("/vsimem/closetwice.tif")
	require.NoError(t, err)
	require.NoError(t, vf.Close())
	assert.Error(t, vf.Close())
	_, err = vf.Read(make([]byte, 1))
	assert.Error(t, err)
}

type bufVSIReader struct {
	*bytes.Reader
}

func (b bufVSIReader) Size() (uint64, error) {
	return uint64(b.Reader.Size()), nil
}

type mapKeyReader map[string][]byte

func (m mapKeyReader) VSIReader(key string) (VSIReader, error) {
	data, ok := m[key]
	if !ok {
		return nil, syscall.ENOENT
	}
	return bufVSIReader{bytes.NewReader(data)}, nil
}

func TestVSIHandler(t *testing.T) {
	kr := mapKeyReader{
		"test.tif": makeTiff(t, 7),
	}
	require.NoError(t, RegisterVSIHandler("gdalgotest://", kr))
	assert.Error(t, RegisterVSIHandler("gdalgotest://", kr))
	assert.Error(t, RegisterVSIHandler("otherprefix://", nil))

	ds, err := Open("gdalgotest://test.tif")
	require.NoError(t, err)
	defer ds.Close()
	st := ds.Structure()
	assert.Equal(t, 16, st.SizeX)
	data, err := ReadBandAll[uint8](ds.Bands()[0])
	require.NoError(t, err)
	assert.Equal(t, uint8(7), data[0])
	assert.Equal(t, uint8(7), data[255])

	_, err = Open("gdalgotest://missing.tif")
	assert.Error(t, err)
}

type mapSizerReaderAt map[string][]byte

func (m mapSizerReaderAt) ReadAt(key string, buf []byte, off int64) (int, error) {
	data, ok := m[key]
	if !ok {
		return 0, syscall.ENOENT
	}
	if off >= int64(len(data)) {
		return 0, io.EOF
	}
	n := copy(buf, data[off:])
	if n < len(buf) {
		return n, io.EOF
	}
	return n, nil
}

func (m mapSizerReaderAt) Size(key string) (int64, error) {
	data, ok := m[key]
	if !ok {
		return 0, fmt.Errorf("not found: %s", key)
	}
	return int64(len(data)), nil
}

func TestVSIAdapter(t *testing.T) {
	adapter := mapSizerReaderAt{
		"adapted.tif": makeTiff(t, 9),
	}
	require.NoError(t, RegisterVSIAdapter("gdalgoadapter://", adapter))

	ds, err := Open("gdalgoadapter://adapted.tif")
	require.NoError(t, err)
	defer ds.Close()
	data, err := ReadBandAll[uint8](ds.Bands()[0])
	require.NoError(t, err)
	assert.Equal(t, uint8(9), data[0])
}
