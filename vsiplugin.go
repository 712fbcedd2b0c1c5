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

/*
#include "gdalgo.h"
#include <stdlib.h>
*/
import "C"
import (
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"unsafe"
)

// VSIReader is the interface that must be returned by a VSIKeyReader for a
// given key (i.e. filename)
//
// Size() is used as a probe to determine whether the given key exists, and
// must return an error if no such key exists. The actual file size may or may
// not be effectively used depending on the underlying driver opening the file
//
// VSIReader may also optionally implement VSIMultiReader, which is used by
// the GTiff driver when reading pixels. If not provided, ReadAt will be
// called concurrently for each requested range.
type VSIReader interface {
	io.ReaderAt
	Size() (uint64, error)
}

// VSIMultiReader is an optional interface a VSIReader can implement to serve
// several ranges in a single call.
type VSIMultiReader interface {
	ReadAtMulti(bufs [][]byte, offs []int64) ([]int, error)
}

// VSIKeyReader is the interface that must be provided to RegisterVSIHandler.
// It returns a VSIReader for the given key.
//
// After
//
//	RegisterVSIHandler("scheme://", handler)
//
// calling Open("scheme://myfile.txt") will make the library call
//
//	handler.VSIReader("myfile.txt")
type VSIKeyReader interface {
	VSIReader(key string) (VSIReader, error)
}

var vsiHandlers struct {
	sync.RWMutex
	prefixes map[string]VSIKeyReader
}

// vsiReaderForKey resolves the full filename passed by the native plugin
// (prefix included) to the VSIReader serving it. Sets errmsg on failure.
func vsiReaderForKey(ckey *C.char, errmsg **C.char) VSIReader {
	key := C.GoString(ckey)
	vsiHandlers.RLock()
	defer vsiHandlers.RUnlock()
	for prefix, handler := range vsiHandlers.prefixes {
		if strings.HasPrefix(key, prefix) {
			rdr, err := handler.VSIReader(key[len(prefix):])
			if err != nil {
				*errmsg = C.CString(err.Error())
				return nil
			}
			return rdr
		}
	}
	*errmsg = C.CString("no handler registered for prefix")
	return nil
}

//export gdalgoVSIPluginSize
func gdalgoVSIPluginSize(key *C.char, errmsg **C.char) C.longlong {
	rdr := vsiReaderForKey(key, errmsg)
	if rdr == nil {
		return -1
	}
	size, err := rdr.Size()
	if err != nil {
		*errmsg = C.CString(err.Error())
		return -1
	}
	return C.longlong(size)
}

//export gdalgoVSIPluginRead
func gdalgoVSIPluginRead(key *C.char, buffer unsafe.Pointer, want C.size_t, off C.longlong, errmsg **C.char) C.size_t {
	if want == 0 {
		return 0
	}
	rdr := vsiReaderForKey(key, errmsg)
	if rdr == nil {
		return 0
	}
	buf := unsafe.Slice((*byte)(buffer), int(want))
	n, err := rdr.ReadAt(buf, int64(off))
	if err != nil && err != io.EOF {
		*errmsg = C.CString(err.Error())
	}
	return C.size_t(n)
}

//export gdalgoVSIPluginMultiRead
func gdalgoVSIPluginMultiRead(key *C.char, nRanges C.int, ppData unsafe.Pointer, pOffsets unsafe.Pointer, pSizes unsafe.Pointer, errmsg **C.char) C.int {
	if nRanges == 0 {
		return -1
	}
	rdr := vsiReaderForKey(key, errmsg)
	if rdr == nil {
		return -1
	}
	n := int(nRanges)
	cbuffers := unsafe.Slice((*unsafe.Pointer)(ppData), n)
	offsets := unsafe.Slice((*C.ulonglong)(pOffsets), n)
	sizes := unsafe.Slice((*C.size_t)(pSizes), n)

	bufs := make([][]byte, n)
	offs := make([]int64, n)
	for b := range bufs {
		bufs[b] = unsafe.Slice((*byte)(cbuffers[b]), int(sizes[b]))
		offs[b] = int64(offsets[b])
	}
	if mrdr, ok := rdr.(VSIMultiReader); ok {
		_, err := mrdr.ReadAtMulti(bufs, offs)
		if err != nil && err != io.EOF {
			*errmsg = C.CString(err.Error())
			return -1
		}
		return 0
	}
	ret := int64(0)
	var wg sync.WaitGroup
	var errmu sync.Mutex
	wg.Add(n)
	for b := range bufs {
		go func(bidx int) {
			defer wg.Done()
			rlen, err := rdr.ReadAt(bufs[bidx], offs[bidx])
			if err != nil && err != io.EOF {
				errmu.Lock()
				if *errmsg == nil {
					*errmsg = C.CString(err.Error())
				}
				errmu.Unlock()
				atomic.StoreInt64(&ret, -1)
				return
			}
			if rlen != len(bufs[bidx]) {
				errmu.Lock()
				if *errmsg == nil {
					*errmsg = C.CString("short read")
				}
				errmu.Unlock()
				atomic.StoreInt64(&ret, -1)
			}
		}(b)
	}
	wg.Wait()
	return C.int(atomic.LoadInt64(&ret))
}

// KeySizerReaderAt is the interface expected by RegisterVSIAdapter
//
// ReadAt() is a standard io.ReaderAt that takes a key (i.e. filename) as
// argument.
//
// Size() is used as a probe to determine whether the given key exists, and
// must return an error if no such key exists.
//
// It may also optionally implement KeyMultiReader. osio.Adapter implements
// this interface.
type KeySizerReaderAt interface {
	ReadAt(key string, buf []byte, off int64) (int, error)
	Size(key string) (int64, error)
}

// KeyMultiReader is an optional interface that can be implemented by a
// KeySizerReaderAt to serve several ranges in a single call.
type KeyMultiReader interface {
	ReadAtMulti(key string, bufs [][]byte, offs []int64) ([]int, error)
}

type adapterKeyReader struct {
	kr KeySizerReaderAt
}

func (ka adapterKeyReader) VSIReader(key string) (VSIReader, error) {
	ar := adapterReader{kr: ka.kr, key: key}
	if _, ok := ka.kr.(KeyMultiReader); ok {
		return adapterMultiReader{ar}, nil
	}
	return ar, nil
}

type adapterReader struct {
	kr  KeySizerReaderAt
	key string
}

func (ar adapterReader) ReadAt(buf []byte, off int64) (int, error) {
	return ar.kr.ReadAt(ar.key, buf, off)
}

func (ar adapterReader) Size() (uint64, error) {
	size, err := ar.kr.Size(ar.key)
	if err != nil {
		return 0, err
	}
	return uint64(size), nil
}

type adapterMultiReader struct {
	adapterReader
}

func (ar adapterMultiReader) ReadAtMulti(bufs [][]byte, offs []int64) ([]int, error) {
	return ar.kr.(KeyMultiReader).ReadAtMulti(ar.key, bufs, offs)
}

// RegisterVSIAdapter registers a KeySizerReaderAt (e.g. an osio.Adapter) as
// the handler serving all filenames starting with prefix.
//
// After
//
//	RegisterVSIAdapter("scheme://", adapter)
//
// calling Open("scheme://myfile.txt") will make the library call
//
//	adapter.ReadAt("myfile.txt", buf, offset)
func RegisterVSIAdapter(prefix string, adapter KeySizerReaderAt, opts ...VSIHandlerOption) error {
	if adapter == nil {
		return fmt.Errorf("missing adapter")
	}
	return RegisterVSIHandler(prefix, adapterKeyReader{adapter}, opts...)
}

type vsiHandlerOpts struct {
	bufferSize, cacheSize C.size_t
}

// VSIHandlerOption is an option that can be passed to RegisterVSIHandler
type VSIHandlerOption func(v *vsiHandlerOpts)

// VSIHandlerBufferSize sets the size of the native block size used for
// caching. Must be positive, can be set to 0 to disable this behavior (not
// recommended).
//
// Defaults to 64Kb
func VSIHandlerBufferSize(s int) VSIHandlerOption {
	return func(o *vsiHandlerOpts) {
		o.bufferSize = C.size_t(s)
	}
}

// VSIHandlerCacheSize sets the total number of native bytes used as cache
// *per handle*.
//
// Defaults to 128Kb
func VSIHandlerCacheSize(s int) VSIHandlerOption {
	return func(o *vsiHandlerOpts) {
		o.cacheSize = C.size_t(s)
	}
}

// RegisterVSIHandler registers keyReader as the handler serving all filenames
// starting with prefix. The registration is global and cannot be undone.
func RegisterVSIHandler(prefix string, keyReader VSIKeyReader, opts ...VSIHandlerOption) error {
	opt := vsiHandlerOpts{
		bufferSize: 64 * 1024,
		cacheSize:  2 * 64 * 1024,
	}
	for _, o := range opts {
		o(&opt)
	}
	if keyReader == nil {
		return fmt.Errorf("missing keyReader")
	}
	vsiHandlers.Lock()
	defer vsiHandlers.Unlock()
	if vsiHandlers.prefixes == nil {
		vsiHandlers.prefixes = make(map[string]VSIKeyReader)
	}
	if vsiHandlers.prefixes[prefix] != nil {
		return fmt.Errorf("handler already registered on prefix %s", prefix)
	}
	cprefix, err := cString(prefix)
	if err != nil {
		return err
	}
	defer C.free(unsafe.Pointer(cprefix))
	if C.gdalgoVSIInstallGoHandler(cprefix, opt.bufferSize, opt.cacheSize) != 0 {
		return fmt.Errorf("failed to install handler on prefix %s", prefix)
	}
	vsiHandlers.prefixes[prefix] = keyReader
	return nil
}
