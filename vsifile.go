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
	"unsafe"
)

// VSIFile is a handle on a file of one of gdal's virtual filesystems
// (/vsimem/, /vsizip/, /vsicurl/ ...). It implements io.ReadCloser.
type VSIFile struct {
	handle *C.VSILFILE
}

// VSIOpen opens path for reading
func VSIOpen(path string, opts ...VSIOpenOption) (*VSIFile, error) {
	vo := &vsiOpenOpts{}
	for _, o := range opts {
		o.setVSIOpenOpt(vo)
	}
	cpath, err := cString(path)
	if err != nil {
		return nil, err
	}
	defer C.free(unsafe.Pointer(cpath))
	cgc := createCGOContext(nil, vo.errorHandler)
	hndl := C.gdalgoVSIOpen(cgc.cPointer(), cpath)
	cerr := cgc.close()
	if hndl == nil {
		return nil, nullPointerError("VSIFOpenExL", cerr)
	}
	if cerr != nil {
		return nil, cerr
	}
	return &VSIFile{handle: hndl}, nil
}

// Close closes the VSIFile. Must be called exactly once.
func (vf *VSIFile) Close() error {
	if vf.handle == nil {
		return fmt.Errorf("already closed")
	}
	cgc := createCGOContext(nil, nil)
	C.gdalgoVSIClose(cgc.cPointer(), vf.handle)
	vf.handle = nil
	return cgc.close()
}

// Read is the standard io.Reader interface
func (vf *VSIFile) Read(buf []byte) (int, error) {
	if vf.handle == nil {
		return 0, fmt.Errorf("already closed")
	}
	if len(buf) == 0 {
		return 0, nil
	}
	cgc := createCGOContext(nil, nil)
	n := C.gdalgoVSIRead(cgc.cPointer(), vf.handle, unsafe.Pointer(&buf[0]), C.int(len(buf)))
	if err := cgc.close(); err != nil {
		return int(n), err
	}
	if int(n) < len(buf) {
		return int(n), io.EOF
	}
	return int(n), nil
}

// VSIUnlink deletes path from its virtual filesystem
func VSIUnlink(path string, opts ...VSIUnlinkOption) error {
	uo := &vsiUnlinkOpts{}
	for _, o := range opts {
		o.setVSIUnlinkOpt(uo)
	}
	cpath, err := cString(path)
	if err != nil {
		return err
	}
	defer C.free(unsafe.Pointer(cpath))
	cgc := createCGOContext(nil, uo.errorHandler)
	C.gdalgoVSIUnlink(cgc.cPointer(), cpath)
	return cgc.close()
}
