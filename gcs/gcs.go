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

// Package gcs exposes objects stored on google cloud storage buckets through
// a gs:// virtual filesystem, with block-level caching and request
// deduplication.
package gcs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"syscall"

	"github.com/geoforge/gdalgo"
	"github.com/geoforge/gdalgo/internal/blockcache"

	"cloud.google.com/go/storage"
	lru "github.com/hashicorp/golang-lru"
	"google.golang.org/api/googleapi"
)

// handlerConfig collects the tunables of RegisterHandler before the handler
// itself is assembled.
type handlerConfig struct {
	prefix             string
	client             *storage.Client
	cacher             blockcache.Cacher
	blockSize          int
	maxCachedBlocks    int
	maxCachedMetadatas int
	handleBufferSize   int
	handleCacheSize    int
	billingProjectID   string
	splitRanges        bool
}

func defaultConfig() handlerConfig {
	return handlerConfig{
		prefix:             "gs://",
		blockSize:          1024 * 1024,
		maxCachedBlocks:    1000,
		handleBufferSize:   64 * 1024,
		handleCacheSize:    64 * 1024 * 2,
		maxCachedMetadatas: 10000,
	}
}

// Option is an option that can be passed to RegisterHandler
type Option func(c *handlerConfig)

// Prefix is the prefix that a file must have in order to be handled by this
// handler. Defaults to "gs://", i.e. this handler will be used when calling
// gdalgo.Open("gs://mybucket/myfile.tif")
func Prefix(prefix string) Option {
	return func(c *handlerConfig) {
		c.prefix = prefix
	}
}

// Client sets the cloud.google.com/go/storage.Client that will be used
// by the handler
func Client(cl *storage.Client) Option {
	return func(c *handlerConfig) {
		c.client = cl
	}
}

// Cacher allows to plugin a custom cache mechanism instead of the default in
// memory lru cache. MaxCachedBlocks() will not be honored if you provide your
// own cacher, it is up to your cacher implementation to handle block eviction
func Cacher(cacher blockcache.Cacher) Option {
	return func(c *handlerConfig) {
		c.cacher = cacher
	}
}

// BlockSize sets the size of requests that will go out to the storage API.
// Defaults to 1Mb
func BlockSize(bs int) Option {
	if bs < 1 {
		panic("invalid blocksize")
	}
	return func(c *handlerConfig) {
		c.blockSize = bs
	}
}

// MaxCachedBlocks sets the number of blocks to keep in the lru cache.
// Defaults to 1000
func MaxCachedBlocks(n int) Option {
	if n < 1 {
		panic("invalid max cached blocks")
	}
	return func(c *handlerConfig) {
		c.maxCachedBlocks = n
	}
}

// VSIHandleBuffer sets the buffer size of each native file handle. See
// gdalgo.VSIHandlerBufferSize
func VSIHandleBuffer(n int) Option {
	if n != 0 && n < 1024 {
		panic("invalid handle buffer")
	}
	return func(c *handlerConfig) {
		c.handleBufferSize = n
	}
}

// VSIHandleCache sets the cache size of each native file handle. See
// gdalgo.VSIHandlerCacheSize
func VSIHandleCache(n int) Option {
	if n != 0 && n < 1024 {
		panic("invalid handle cache")
	}
	return func(c *handlerConfig) {
		c.handleCacheSize = n
	}
}

// BillingProject sets the project name which should be billed for the
// requests. This is mandatory if the bucket is in requester-pays mode.
func BillingProject(projectID string) Option {
	return func(c *handlerConfig) {
		c.billingProjectID = projectID
	}
}

// SplitConsecutiveRanges forces multiple parallel requests for individual
// blocks when a requested chunk spans multiple blocks, instead of emitting a
// single request spanning multiple blocks. Can be useful for e.g. a tile
// server processing concurrent requests on neighbouring image regions.
func SplitConsecutiveRanges(split bool) Option {
	return func(c *handlerConfig) {
		c.splitRanges = split
	}
}

// MaxCachedMetadatas sets the number of filenames whose size will be kept in
// cache. This also accounts for non-existing files, i.e. calling Open() twice
// on a non-existing file will not result in an API call going to the storage
// endpoint the second time
func MaxCachedMetadatas(n int) Option {
	if n < 1 {
		panic("invalid max cached metadatas")
	}
	return func(c *handlerConfig) {
		c.maxCachedMetadatas = n
	}
}

// sizeCache remembers object sizes across handles, including the fact that an
// object does not exist.
type sizeCache struct {
	lru *lru.Cache
}

const sizeMissing = int64(-1)

func newSizeCache(n int) sizeCache {
	c, _ := lru.New(n)
	return sizeCache{lru: c}
}

func (sc sizeCache) size(key string) (int64, bool) {
	s, ok := sc.lru.Get(key)
	if !ok {
		return 0, false
	}
	return s.(int64), true
}

func (sc sizeCache) setSize(key string, size int64) {
	sc.lru.Add(key, size)
}

func (sc sizeCache) markMissing(key string) {
	sc.lru.Add(key, sizeMissing)
}

type gcsHandler struct {
	ctx              context.Context
	client           *storage.Client
	blockCache       *blockcache.BlockCache
	sizes            sizeCache
	billingProjectID string
}

// RegisterHandler registers a vsi handler to the native library in order to
// use cloud.google.com/go/storage APIs to access objects on cloud storage
// buckets
func RegisterHandler(ctx context.Context, opts ...Option) error {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}
	handler := &gcsHandler{
		ctx:              ctx,
		client:           cfg.client,
		sizes:            newSizeCache(cfg.maxCachedMetadatas),
		billingProjectID: cfg.billingProjectID,
	}
	if handler.client == nil {
		cl, err := storage.NewClient(ctx)
		if err != nil {
			return fmt.Errorf("storage.newclient: %w", err)
		}
		handler.client = cl
	}
	cacher := cfg.cacher
	if cacher == nil {
		cacher, _ = blockcache.NewCache(uint(cfg.maxCachedBlocks))
	}
	handler.blockCache = blockcache.New(handler, cacher, uint(cfg.blockSize), cfg.splitRanges)
	return gdalgo.RegisterVSIHandler(cfg.prefix, handler,
		gdalgo.VSIHandlerBufferSize(cfg.handleBufferSize),
		gdalgo.VSIHandlerCacheSize(cfg.handleCacheSize))
}

// splitKey splits a prefix-stripped vsi key into bucket and object.
func splitKey(key string) (bucket, object string, err error) {
	key = strings.TrimPrefix(key, "/")
	bucket, object, _ = strings.Cut(key, "/")
	if bucket == "" || object == "" {
		return "", "", fmt.Errorf("invalid key %s", key)
	}
	return bucket, object, nil
}

// precheck avoids hitting the storage API for reads on keys whose nonexistence
// or size is already known.
func (gcs *gcsHandler) precheck(key string, off int64) error {
	if size, ok := gcs.sizes.size(key); ok {
		if size == sizeMissing {
			return syscall.ENOENT
		}
		if off >= size {
			return io.EOF
		}
	}
	return nil
}

func (gcs *gcsHandler) object(bucket, object string) *storage.ObjectHandle {
	gbucket := gcs.client.Bucket(bucket)
	if gcs.billingProjectID != "" {
		gbucket = gbucket.UserProject(gcs.billingProjectID)
	}
	return gbucket.Object(object)
}

func (gcs *gcsHandler) ReadAt(key string, p []byte, off int64) (int, error) {
	if err := gcs.precheck(key, off); err != nil {
		return 0, err
	}
	bucket, object, err := splitKey(key)
	if err != nil {
		return 0, err
	}
	r, err := gcs.object(bucket, object).NewRangeReader(gcs.ctx, off, int64(len(p)))
	if err != nil {
		var gerr *googleapi.Error
		switch {
		case off > 0 && errors.As(err, &gerr) && gerr.Code == 416:
			return 0, io.EOF
		case off == 0 && errors.Is(err, storage.ErrObjectNotExist):
			gcs.sizes.markMissing(key)
			return 0, syscall.ENOENT
		}
		return 0, fmt.Errorf("new reader for gs://%s/%s: %w", bucket, object, err)
	}
	defer r.Close()
	if sz := r.Attrs.Size; sz > 0 {
		gcs.sizes.setSize(key, sz)
	}
	n, err := io.ReadFull(r, p)
	if err == io.ErrUnexpectedEOF {
		err = io.EOF
	}
	return n, err
}

func (gcs *gcsHandler) VSIReader(key string) (gdalgo.VSIReader, error) {
	return gcsObjectReader{key: key, gcs: gcs}, nil
}

type gcsObjectReader struct {
	key string
	gcs *gcsHandler
}

func (v gcsObjectReader) ReadAt(buf []byte, off int64) (int, error) {
	if err := v.gcs.precheck(v.key, off); err != nil {
		return 0, err
	}
	return v.gcs.blockCache.ReadAt(v.key, buf, off)
}

func (v gcsObjectReader) ReadAtMulti(bufs [][]byte, offs []int64) ([]int, error) {
	if size, ok := v.gcs.sizes.size(v.key); ok {
		if size == sizeMissing {
			return nil, syscall.ENOENT
		}
		for _, off := range offs {
			if off >= size {
				return nil, io.EOF
			}
		}
	}
	return v.gcs.blockCache.ReadAtMulti(v.key, bufs, offs)
}

func (v gcsObjectReader) Size() (uint64, error) {
	size, ok := v.gcs.sizes.size(v.key)
	if !ok {
		buf := make([]byte, 1)
		_, _ = v.ReadAt(buf, 0) //ignore errors as we just want to populate the size cache
		size, ok = v.gcs.sizes.size(v.key)
	}
	if !ok {
		return 0, fmt.Errorf("size cache miss")
	}
	if size == sizeMissing {
		return 0, syscall.ENOENT
	}
	return uint64(size), nil
}
