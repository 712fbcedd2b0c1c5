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

package blockcache

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru"
)

// Cache is the default in-memory lru Cacher implementation. A random
// discriminator is mixed into the lru keys so that two Caches handed the same
// keys do not collide.
type Cache struct {
	c      *lru.Cache
	random string
}

var _ Cacher = &Cache{}

// NewCache creates a Cacher keeping up to entries blocks in memory.
func NewCache(entries uint) (*Cache, error) {
	c, err := lru.New(int(entries))
	if err != nil {
		return nil, fmt.Errorf("lru.new: %w", err)
	}
	const letters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	r := rand.New(rand.NewSource(time.Now().Unix()))
	b := make([]byte, 5)
	for i := range b {
		b[i] = letters[r.Intn(len(letters))]
	}
	return &Cache{c: c, random: string(b)}, nil
}

// Add inserts a block to the cache
func (cg *Cache) Add(key string, id uint, data []byte) {
	cg.c.Add(cg.skey(key, id), data)
}

// Get fetches a block from the cache
func (cg *Cache) Get(key string, id uint) ([]byte, bool) {
	cb, ok := cg.c.Get(cg.skey(key, id))
	if !ok {
		return nil, false
	}
	return cb.([]byte), true
}

// PurgeKey drops all blocks of key from the cache
func (cg *Cache) PurgeKey(key string) {
	prefix := fmt.Sprintf("%s-%s-", key, cg.random)
	for _, k := range cg.c.Keys() {
		if strings.HasPrefix(k.(string), prefix) {
			cg.c.Remove(k)
		}
	}
}

// Purge empties the cache
func (cg *Cache) Purge() {
	cg.c.Purge()
}

func (cg *Cache) skey(key string, id uint) string {
	return fmt.Sprintf("%s-%s-%d", key, cg.random, id)
}
