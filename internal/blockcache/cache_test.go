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

package blockcache_test

import (
	"fmt"
	"testing"

	"github.com/geoforge/gdalgo/internal/blockcache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func blockPayload(key string, id uint) []byte {
	return []byte(fmt.Sprintf("%s/%d", key, id))
}

func TestCacheInvalidSize(t *testing.T) {
	_, err := blockcache.NewCache(0)
	assert.Error(t, err)
}

func TestCacheRoundtrip(t *testing.T) {
	cache, err := blockcache.NewCache(8)
	require.NoError(t, err)
	for id := uint(0); id < 8; id++ {
		cache.Add("scene.tif", id, blockPayload("scene.tif", id))
	}
	for id := uint(0); id < 8; id++ {
		b, ok := cache.Get("scene.tif", id)
		assert.True(t, ok, "block %d", id)
		assert.Equal(t, blockPayload("scene.tif", id), b)
	}
	_, ok := cache.Get("scene.tif", 8)
	assert.False(t, ok)
	_, ok = cache.Get("other.tif", 0)
	assert.False(t, ok)
}

func TestCacheEviction(t *testing.T) {
	cache, _ := blockcache.NewCache(4)
	for id := uint(0); id < 5; id++ {
		cache.Add("scene.tif", id, blockPayload("scene.tif", id))
	}
	// the newest block survives, an older one was evicted
	_, ok := cache.Get("scene.tif", 4)
	assert.True(t, ok)
	evicted := 0
	for id := uint(0); id < 4; id++ {
		if _, ok := cache.Get("scene.tif", id); !ok {
			evicted++
		}
	}
	assert.Greater(t, evicted, 0)
}

func TestCachePurgeKey(t *testing.T) {
	cache, _ := blockcache.NewCache(16)
	for id := uint(0); id < 3; id++ {
		cache.Add("a", id, blockPayload("a", id))
		cache.Add("ab", id, blockPayload("ab", id))
	}
	cache.PurgeKey("a")
	for id := uint(0); id < 3; id++ {
		_, ok := cache.Get("a", id)
		assert.False(t, ok, "a block %d not purged", id)
		// "ab" shares a prefix with "a" but keeps its blocks
		b, ok := cache.Get("ab", id)
		assert.True(t, ok, "ab block %d lost", id)
		assert.Equal(t, blockPayload("ab", id), b)
	}
}

func TestCachePurge(t *testing.T) {
	cache, _ := blockcache.NewCache(16)
	cache.Add("scene.tif", 0, blockPayload("scene.tif", 0))
	cache.Purge()
	_, ok := cache.Get("scene.tif", 0)
	assert.False(t, ok)
}

func TestCacheInstanceIsolation(t *testing.T) {
	// two caches handed the same key/id must not see each other's blocks
	c1, _ := blockcache.NewCache(4)
	c2, _ := blockcache.NewCache(4)
	c1.Add("scene.tif", 0, []byte("one"))
	c2.Add("scene.tif", 0, []byte("two"))
	b1, ok := c1.Get("scene.tif", 0)
	require.True(t, ok)
	b2, ok := c2.Get("scene.tif", 0)
	require.True(t, ok)
	assert.Equal(t, []byte("one"), b1)
	assert.Equal(t, []byte("two"), b2)
}
