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
import "unsafe"

// CslStringList wraps a native NULL-terminated list of "NAME=VALUE" strings.
// The zero value is an empty list ready for use. A CslStringList owns native
// memory and must be Closed; Close is idempotent.
type CslStringList struct {
	cList **C.char
}

// Set adds or replaces the NAME=VALUE pair for name. An empty value removes
// the pair.
func (csl *CslStringList) Set(name, value string) error {
	cname, err := cString(name)
	if err != nil {
		return err
	}
	defer C.free(unsafe.Pointer(cname))
	cval, err := cString(value)
	if err != nil {
		return err
	}
	defer C.free(unsafe.Pointer(cval))
	csl.cList = C.CSLSetNameValue(csl.cList, cname, cval)
	return nil
}

// AddString appends a raw string to the list.
func (csl *CslStringList) AddString(s string) error {
	cs, err := cString(s)
	if err != nil {
		return err
	}
	defer C.free(unsafe.Pointer(cs))
	csl.cList = C.CSLAddString(csl.cList, cs)
	return nil
}

// FetchNameValue returns the value associated with name, and whether the pair
// exists. A pair set to the empty string is reported as existing.
func (csl *CslStringList) FetchNameValue(name string) (value string, ok bool) {
	cname, err := cString(name)
	if err != nil {
		return "", false
	}
	defer C.free(unsafe.Pointer(cname))
	cval := C.CSLFetchNameValue(csl.cList, cname)
	if cval == nil {
		return "", false
	}
	return C.GoString(cval), true
}

// FindString returns the index of the first entry exactly matching s, or -1.
func (csl *CslStringList) FindString(s string) int {
	cs, err := cString(s)
	if err != nil {
		return -1
	}
	defer C.free(unsafe.Pointer(cs))
	return int(C.CSLFindString(csl.cList, cs))
}

// Count returns the number of entries in the list.
func (csl *CslStringList) Count() int {
	return int(C.CSLCount(csl.cList))
}

// List returns a copy of the list's entries as go strings.
func (csl *CslStringList) List() []string {
	return cStringArrayToSlice(csl.cList)
}

// Close releases the native list. The list reverts to an empty list and may
// be reused.
func (csl *CslStringList) Close() {
	if csl.cList != nil {
		C.CSLDestroy(csl.cList)
		csl.cList = nil
	}
}

// SetConfigOption sets a global configuration option, overriding the
// environment variable of the same name. See
// https://gdal.org/user/configoptions.html
func SetConfigOption(name, value string) error {
	cname, err := cString(name)
	if err != nil {
		return err
	}
	defer C.free(unsafe.Pointer(cname))
	cval, err := cString(value)
	if err != nil {
		return err
	}
	defer C.free(unsafe.Pointer(cval))
	C.CPLSetConfigOption(cname, cval)
	return nil
}

// GetConfigOption returns the value of a global configuration option, or def
// if it is not set either globally or through the environment.
func GetConfigOption(name, def string) string {
	cname, err := cString(name)
	if err != nil {
		return def
	}
	defer C.free(unsafe.Pointer(cname))
	cdef := C.CString(def)
	defer C.free(unsafe.Pointer(cdef))
	return C.GoString(C.CPLGetConfigOption(cname, cdef))
}

// ClearConfigOption unsets a global configuration option. The environment
// variable of the same name, if set, becomes visible again.
func ClearConfigOption(name string) error {
	cname, err := cString(name)
	if err != nil {
		return err
	}
	defer C.free(unsafe.Pointer(cname))
	C.CPLSetConfigOption(cname, nil)
	return nil
}
