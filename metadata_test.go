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

func TestMetadata(t *testing.T) {
	ds, err := Create(Memory, "", 1, Byte, 8, 8)
	require.NoError(t, err)
	defer ds.Close()

	assert.Equal(t, "", ds.Metadata("MISSING"))
	require.NoError(t, ds.SetMetadata("AREA_OR_POINT", "Point"))
	assert.Equal(t, "Point", ds.Metadata("AREA_OR_POINT"))

	require.NoError(t, ds.SetMetadata("FOO", "BAR", Domain("custom")))
	assert.Equal(t, "BAR", ds.Metadata("FOO", Domain("custom")))
	assert.Equal(t, "", ds.Metadata("FOO"))

	md := ds.Metadatas(Domain("custom"))
	assert.Equal(t, map[string]string{"FOO": "BAR"}, md)

	domains := ds.MetadataDomains()
	assert.Contains(t, domains, "custom")

	assert.Error(t, ds.SetMetadata("BAD\x00KEY", "v"))
}

func TestMetadataMap(t *testing.T) {
	assert.Nil(t, metadataMap(nil))
	md := metadataMap([]string{
		"KEY=VALUE",
		"EMPTY=",
		"<xmldoc/>",
		"PATH=a=b",
	})
	assert.Equal(t, map[string]string{
		"KEY":       "VALUE",
		"EMPTY":     "",
		"<xmldoc/>": "",
		"PATH":      "a=b",
	}, md)
}

func TestDescription(t *testing.T) {
	ds, err := Create(Memory, "", 2, Byte, 8, 8)
	require.NoError(t, err)
	defer ds.Close()

	band := ds.Bands()[0]
	require.NoError(t, band.SetDescription("red"))
	assert.Equal(t, "red", band.Description())
}
