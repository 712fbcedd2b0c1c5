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

// Package blockcache caches fixed-size chunks of a remote reader, deduplicating
// concurrent requests to the same chunk.
package blockcache

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/vburenin/nsync"
)

// KeyReaderAt is the interface that wraps the basic ReadAt method for the
// resource identified by key.
//
// ReadAt follows the io.ReaderAt contract: it reads len(p) bytes into p
// starting at offset off, blocks until all requested bytes are available or
// an error occurs, and returns io.EOF (with n < len(p)) when reading past the
// end of the resource. Clients may issue parallel ReadAt calls on the same
// key.
type KeyReaderAt interface {
	ReadAt(key string, p []byte, off int64) (int, error)
}

// Cacher is the block store used by BlockCache.
//
// Add inserts data for the given key and block id, Get fetches it back along
// with whether it was present, PurgeKey drops all blocks of a key, and Purge
// empties the store.
type Cacher interface {
	Add(key string, blockID uint, data []byte)
	Get(key string, blockID uint) ([]byte, bool)
	PurgeKey(key string)
	Purge()
}

// NamedOnceMutex is a locker on arbitrary lock names.
//
// Lock tries to acquire the named lock: it returns true if the lock was
// acquired, or blocks until the holder releases it and returns false.
// Unlock must be called once by a client whose Lock returned true.
type NamedOnceMutex interface {
	Lock(key interface{}) bool
	Unlock(key interface{})
}

// BlockCache exposes a KeyReaderAt that feeds primarily from an internal
// cache of fixed-size blocks, ensuring that concurrent requests to the same
// block result in a single call to the source reader.
type BlockCache struct {
	blockSize   int64
	blmu        NamedOnceMutex
	cache       Cacher
	reader      KeyReaderAt
	splitRanges bool
}

// New creates a BlockCache of blockSize-sized chunks of reader, stored in
// cache. If split is set, a request spanning multiple blocks is served by
// concurrent per-block reads instead of a single range read.
//
// Panics if blockSize is 0.
func New(reader KeyReaderAt, cache Cacher, blockSize uint, split bool) *BlockCache {
	if blockSize == 0 {
		panic("blockcache: zero block size")
	}
	return &BlockCache{
		blockSize:   int64(blockSize),
		blmu:        nsync.NewNamedOnceMutex(),
		cache:       cache,
		reader:      reader,
		splitRanges: split,
	}
}

// SetLocker overrides the block-level locker used to deduplicate concurrent
// reads, e.g. with a distributed lock when the Cacher is shared between
// processes.
func (b *BlockCache) SetLocker(mu NamedOnceMutex) {
	b.blmu = mu
}

// PurgeKey drops all cached blocks of key.
func (b *BlockCache) PurgeKey(key string) {
	b.cache.PurgeKey(key)
}

// Purge drops all cached blocks.
func (b *BlockCache) Purge() {
	b.cache.Purge()
}

// ReadAt reads len(p) bytes at offset off from the (cached) resource
// identified by key. See KeyReaderAt for the full contract.
func (b *BlockCache) ReadAt(key string, p []byte, off int64) (int, error) {
	written, err := b.ReadAtMulti(key, [][]byte{p}, []int64{off})
	return written[0], err
}

// ReadAtMulti populates each bufs[i] from offset offs[i], hitting the source
// reader only for blocks missing from the cache. Returns io.EOF if any buffer
// could not be fully populated.
func (b *BlockCache) ReadAtMulti(key string, bufs [][]byte, offs []int64) ([]int, error) {
	needed := make(map[int64]bool)
	for i := range bufs {
		first := offs[i] / b.blockSize
		last := (offs[i] + int64(len(bufs[i])) - 1) / b.blockSize
		for blk := first; blk <= last; blk++ {
			needed[blk] = true
		}
	}
	written := make([]int, len(bufs))
	mu := &sync.Mutex{}
	var err error
	seterr := func(e error) {
		mu.Lock()
		if err == nil {
			err = e
		}
		mu.Unlock()
	}

	if b.splitRanges {
		wg := sync.WaitGroup{}
		for blk := range needed {
			wg.Add(1)
			go func(id int64) {
				defer wg.Done()
				data, berr := b.getBlock(key, id)
				if berr != nil {
					seterr(berr)
					return
				}
				b.applyBlock(mu, id, data, written, bufs, offs)
			}(blk)
		}
		wg.Wait()
	} else {
		// serve what the cache has, then coalesce the misses into
		// consecutive ranges fetched with a single read each
		missing := make([]int64, 0)
		for blk := range needed {
			data, ok := b.cache.Get(key, uint(blk))
			if ok {
				b.applyBlock(mu, blk, data, written, bufs, offs)
			} else {
				missing = append(missing, blk)
			}
		}
		if len(missing) > 0 {
			sort.Slice(missing, func(i, j int) bool { return missing[i] < missing[j] })
			wg := sync.WaitGroup{}
			fetch := func(rng blockRange) {
				blocks, berr := b.getRange(key, rng)
				if berr != nil {
					seterr(berr)
					return
				}
				for i := range blocks {
					b.applyBlock(mu, rng.start+int64(i), blocks[i], written, bufs, offs)
				}
			}
			rng := blockRange{start: missing[0], end: missing[0]}
			for k := 1; k < len(missing); k++ {
				if missing[k] == missing[k-1]+1 {
					rng.end = missing[k]
					continue
				}
				wg.Add(1)
				go func(rng blockRange) {
					defer wg.Done()
					fetch(rng)
				}(rng)
				rng = blockRange{start: missing[k], end: missing[k]}
			}
			fetch(rng)
			wg.Wait()
			if err != nil {
				return written, err
			}
		}
	}
	if err == nil {
		for i, buf := range bufs {
			if written[i] != len(buf) {
				err = io.EOF
			}
		}
	}
	return written, err
}

type blockRange struct {
	start int64
	end   int64
}

// getBlock returns the content of a single block, from the cache if
// available. A cache miss results in a single call to the source reader even
// under concurrent requests for the same block.
func (b *BlockCache) getBlock(key string, id int64) ([]byte, error) {
	data, ok := b.cache.Get(key, uint(id))
	if ok {
		return data, nil
	}
	blockID := b.blockKey(key, id)
	if !b.blmu.Lock(blockID) {
		// another goroutine fetched the block while we waited
		return b.getBlock(key, id)
	}
	defer b.blmu.Unlock(blockID)
	buf := make([]byte, b.blockSize)
	n, err := b.reader.ReadAt(key, buf, id*b.blockSize)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	buf = buf[0:n]
	if n == 0 {
		buf = nil
	}
	b.cache.Add(key, uint(id), buf)
	return buf, nil
}

// getRange fetches the consecutive blocks of rng with a single read on the
// source reader, while holding the per-block locks so concurrent requests for
// any block of the range wait for this read.
func (b *BlockCache) getRange(key string, rng blockRange) ([][]byte, error) {
	blocks := make([][]byte, rng.end-rng.start+1)
	if rng.start == rng.end {
		var err error
		blocks[0], err = b.getBlock(key, rng.start)
		return blocks, err
	}
	done := make(chan bool)
	defer close(done)
	for id := rng.start; id <= rng.end; id++ {
		go func(id int64) {
			blockID := b.blockKey(key, id)
			if b.blmu.Lock(blockID) {
				<-done
				b.blmu.Unlock(blockID)
			}
		}(id)
	}
	buf := make([]byte, (rng.end-rng.start+1)*b.blockSize)
	n, err := b.reader.ReadAt(key, buf, rng.start*b.blockSize)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	left := int64(n)
	for i := int64(0); i <= rng.end-rng.start && left > 0; i++ {
		ll := left
		if ll > b.blockSize {
			ll = b.blockSize
		}
		blocks[i] = make([]byte, ll)
		copy(blocks[i], buf[i*b.blockSize:i*b.blockSize+ll])
		left -= ll
		b.cache.Add(key, uint(rng.start+i), blocks[i])
	}
	return blocks, nil
}

// applyBlock copies the relevant part of a block's data into each buffer it
// intersects.
func (b *BlockCache) applyBlock(mu *sync.Mutex, block int64, data []byte, written []int, bufs [][]byte, offs []int64) {
	if len(data) == 0 {
		return
	}
	blockStart := block * b.blockSize
	blockEnd := blockStart + int64(len(data))
	for i := 0; i < len(bufs); i++ {
		bufStart, bufEnd := offs[i], offs[i]+int64(len(bufs[i]))
		if blockStart >= bufEnd || blockEnd <= bufStart {
			continue
		}
		dstOff := int64(0)
		srcOff := int64(0)
		srcLen := int64(len(data))
		if blockStart < bufStart {
			srcOff = bufStart - blockStart
			srcLen -= srcOff
		} else {
			dstOff = blockStart - bufStart
		}
		if trim := blockEnd - bufEnd; trim > 0 {
			srcLen -= trim
		}
		if srcLen > 0 {
			mu.Lock()
			written[i] += copy(bufs[i][dstOff:], data[srcOff:srcOff+srcLen])
			mu.Unlock()
		}
	}
}

func (b *BlockCache) blockKey(key string, id int64) string {
	return fmt.Sprintf("%s-%d", key, id)
}
