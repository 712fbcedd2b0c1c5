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
	"strings"
	"unsafe"
)

// Metadata returns the dataset/band metadata value for the given key, or ""
// if unset
func (mo majorObject) Metadata(key string, opts ...MetadataOption) string {
	mopts := metadataOpts{}
	for _, opt := range opts {
		opt.setMetadataOpt(&mopts)
	}
	ckey := C.CString(key)
	cdom := C.CString(mopts.domain)
	defer C.free(unsafe.Pointer(ckey))
	defer C.free(unsafe.Pointer(cdom))
	str := C.GDALGetMetadataItem(mo.cHandle, ckey, cdom)
	return C.GoString(str)
}

// Metadatas returns all dataset/band metadata key/value pairs of a domain
func (mo majorObject) Metadatas(opts ...MetadataOption) map[string]string {
	mopts := metadataOpts{}
	for _, opt := range opts {
		opt.setMetadataOpt(&mopts)
	}
	cdom := C.CString(mopts.domain)
	defer C.free(unsafe.Pointer(cdom))
	strs := C.GDALGetMetadata(mo.cHandle, cdom)
	return metadataMap(cStringArrayToSlice(strs))
}

// metadataMap parses a native metadata list. Entries are usually KEY=VALUE,
// but some domains (e.g. xml:) hold flat strings that become keys with an
// empty value.
func metadataMap(strslice []string) map[string]string {
	if len(strslice) == 0 {
		return nil
	}
	ret := make(map[string]string)
	for _, str := range strslice {
		switch idx := strings.Index(str, "="); {
		case idx == -1:
			ret[str] = ""
		case idx == len(str)-1:
			ret[str[0:idx]] = ""
		default:
			ret[str[0:idx]] = str[idx+1:]
		}
	}
	return ret
}

// SetMetadata sets a metadata key/value pair
func (mo majorObject) SetMetadata(key, value string, opts ...MetadataOption) error {
	mopts := metadataOpts{}
	for _, opt := range opts {
		opt.setMetadataOpt(&mopts)
	}
	ckey, err := cString(key)
	if err != nil {
		return err
	}
	defer C.free(unsafe.Pointer(ckey))
	cval, err := cString(value)
	if err != nil {
		return err
	}
	defer C.free(unsafe.Pointer(cval))
	cdom := C.CString(mopts.domain)
	defer C.free(unsafe.Pointer(cdom))
	cgc := createCGOContext(nil, mopts.errorHandler)
	C.gdalgoSetMetadataItem(cgc.cPointer(), mo.cHandle, ckey, cval, cdom)
	return cgc.close()
}

// MetadataDomains returns all the domains that contain metadata
func (mo majorObject) MetadataDomains() []string {
	strs := C.GDALGetMetadataDomainList(mo.cHandle)
	defer C.CSLDestroy(strs)
	return cStringArrayToSlice(strs)
}

// Description returns the description/name of the dataset/band
func (mo majorObject) Description() string {
	return C.GoString(C.GDALGetDescription(mo.cHandle))
}

// SetDescription sets the description of the dataset/band
func (mo majorObject) SetDescription(description string, opts ...MetadataOption) error {
	mopts := metadataOpts{}
	for _, opt := range opts {
		opt.setMetadataOpt(&mopts)
	}
	cname, err := cString(description)
	if err != nil {
		return err
	}
	defer C.free(unsafe.Pointer(cname))
	cgc := createCGOContext(nil, mopts.errorHandler)
	C.gdalgoSetDescription(cgc.cPointer(), mo.cHandle, cname)
	return cgc.close()
}
