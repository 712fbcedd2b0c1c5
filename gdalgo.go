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

// Package gdalgo is a memory-safe go wrapper around the gdal C library. All
// native handles are wrapped in owning go structs whose Close method releases
// the native object exactly once, or in borrowed views (Band, Layer) whose
// lifetime is checked against their owning Dataset at run time.
package gdalgo

/*
#include "gdalgo.h"
#include <stdlib.h>

#cgo pkg-config: gdal
#cgo LDFLAGS: -ldl
*/
import "C"
import (
	"fmt"
	"path/filepath"
	"strconv"
	"unsafe"
)

// DataType is a pixel data type
type DataType int

const (
	//Unknown / Unset Datatype
	Unknown = DataType(C.GDT_Unknown)
	//Byte / UInt8
	Byte = DataType(C.GDT_Byte)
	//UInt16 DataType
	UInt16 = DataType(C.GDT_UInt16)
	//Int8 DataType (GDAL>=3.7.0)
	Int8 = DataType(C.GDT_Int8)
	//Int16 DataType
	Int16 = DataType(C.GDT_Int16)
	//UInt32 DataType
	UInt32 = DataType(C.GDT_UInt32)
	//Int32 DataType
	Int32 = DataType(C.GDT_Int32)
	//Float32 DataType
	Float32 = DataType(C.GDT_Float32)
	//Float64 DataType
	Float64 = DataType(C.GDT_Float64)
	//CFloat32 is a complex Float32
	CFloat32 = DataType(C.GDT_CFloat32)
	//CFloat64 is a complex Float64
	CFloat64 = DataType(C.GDT_CFloat64)
)

// String implements Stringer
func (dtype DataType) String() string {
	return C.GoString(C.GDALGetDataTypeName(C.GDALDataType(dtype)))
}

// Size returns the number of bytes needed for one instance of DataType
func (dtype DataType) Size() int {
	switch dtype {
	case Byte, Int8:
		return 1
	case Int16, UInt16:
		return 2
	case Int32, UInt32, Float32:
		return 4
	case Float64, CFloat32:
		return 8
	case CFloat64:
		return 16
	default:
		panic("unsupported type")
	}
}

// ErrorCategory wraps GDAL's error severity levels
type ErrorCategory int

const (
	// CE_None is not an error
	CE_None = ErrorCategory(C.CE_None)
	// CE_Debug is a debug level
	CE_Debug = ErrorCategory(C.CE_Debug)
	// CE_Warning is a warning level
	CE_Warning = ErrorCategory(C.CE_Warning)
	// CE_Failure is an error
	CE_Failure = ErrorCategory(C.CE_Failure)
	// CE_Fatal is an unrecoverable error. The native library may be left in an
	// unusable state after one of these has been emitted.
	CE_Fatal = ErrorCategory(C.CE_Fatal)
)

// String implements Stringer
func (ec ErrorCategory) String() string {
	switch ec {
	case CE_None:
		return "None"
	case CE_Debug:
		return "Debug"
	case CE_Warning:
		return "Warning"
	case CE_Failure:
		return "Failure"
	case CE_Fatal:
		return "Fatal"
	}
	return fmt.Sprintf("ErrorCategory(%d)", int(ec))
}

// ColorInterp is a band's color interpretation
type ColorInterp int

const (
	//CIUndefined is an undefined ColorInterp
	CIUndefined = ColorInterp(C.GCI_Undefined)
	//CIGray is a gray level ColorInterp
	CIGray = ColorInterp(C.GCI_GrayIndex)
	//CIPalette is a paletted ColorInterp
	CIPalette = ColorInterp(C.GCI_PaletteIndex)
	//CIRed is a Red ColorInterp
	CIRed = ColorInterp(C.GCI_RedBand)
	//CIGreen is a Green ColorInterp
	CIGreen = ColorInterp(C.GCI_GreenBand)
	//CIBlue is a Blue ColorInterp
	CIBlue = ColorInterp(C.GCI_BlueBand)
	//CIAlpha is an Alpha/Transparency ColorInterp
	CIAlpha = ColorInterp(C.GCI_AlphaBand)
)

// Name returns the ColorInterp's name
func (colorInterp ColorInterp) Name() string {
	return C.GoString(C.GDALGetColorInterpretationName(C.GDALColorInterp(colorInterp)))
}

// IOOperation determines whether ReadBand/WriteBand style calls copy pixels
// from the raster into the provided buffer, or the other way around
type IOOperation C.GDALRWFlag

const (
	//IORead copies pixels from the band/dataset into the provided buffer
	IORead IOOperation = C.GF_Read
	//IOWrite copies pixels from the provided buffer into the band/dataset
	IOWrite = C.GF_Write
)

// ResamplingAlg is a resampling method
type ResamplingAlg int

const (
	//Nearest resampling
	Nearest ResamplingAlg = iota
	//Bilinear resampling
	Bilinear
	//Cubic resampling
	Cubic
	//CubicSpline resampling
	CubicSpline
	//Lanczos resampling
	Lanczos
	//Average resampling
	Average
	//Gauss resampling
	Gauss
	//Mode resampling
	Mode
)

// String implements Stringer
func (ra ResamplingAlg) String() string {
	switch ra {
	case Nearest:
		return "nearest"
	case Average:
		return "average"
	case Bilinear:
		return "bilinear"
	case Cubic:
		return "cubic"
	case CubicSpline:
		return "cubicspline"
	case Lanczos:
		return "lanczos"
	case Gauss:
		return "gauss"
	case Mode:
		return "mode"
	default:
		panic("unsupported resampling")
	}
}

func (ra ResamplingAlg) rioAlg() (C.GDALRIOResampleAlg, error) {
	switch ra {
	case Nearest:
		return C.GRIORA_NearestNeighbour, nil
	case Average:
		return C.GRIORA_Average, nil
	case Bilinear:
		return C.GRIORA_Bilinear, nil
	case Cubic:
		return C.GRIORA_Cubic, nil
	case CubicSpline:
		return C.GRIORA_CubicSpline, nil
	case Lanczos:
		return C.GRIORA_Lanczos, nil
	case Gauss:
		return C.GRIORA_Gauss, nil
	case Mode:
		return C.GRIORA_Mode, nil
	default:
		return C.GRIORA_NearestNeighbour, fmt.Errorf("%s resampling not supported for IO", ra.String())
	}
}

type majorObject struct {
	cHandle C.GDALMajorObjectH
}

// Dataset is an owning wrapper around a GDALDatasetH
type Dataset struct {
	majorObject
}

// handle returns a pointer to the underlying GDALDatasetH
func (ds *Dataset) handle() C.GDALDatasetH {
	return C.GDALDatasetH(ds.majorObject.cHandle)
}

// CHandle exposes the raw native handle, for use with gdal entrypoints not
// covered by this library. The handle remains owned by ds and must not be
// released through it.
func (ds *Dataset) CHandle() unsafe.Pointer {
	return unsafe.Pointer(ds.majorObject.cHandle)
}

// Open calls GDALOpenEx() with the provided options. It returns nil and an
// error in case there was an error opening the provided dataset name.
//
// name may be a filename or any string supported by gdal (e.g. a /vsixxx
// path, the xml string representing a vrt dataset, etc...)
//
// Unless PreventAutoRegistration was called, the first call to Open registers
// all compiled-in drivers.
func Open(name string, options ...OpenOption) (*Dataset, error) {
	ensureRegistered()
	oopts := openOpts{
		flags:        C.GDAL_OF_READONLY | C.GDAL_OF_VERBOSE_ERROR,
		siblingFiles: []string{filepath.Base(name)},
	}
	for _, opt := range options {
		opt.setOpenOpt(&oopts)
	}
	csiblings := sliceToCStringArray(oopts.siblingFiles)
	coopts := sliceToCStringArray(oopts.options)
	cdrivers := sliceToCStringArray(oopts.drivers)
	defer csiblings.free()
	defer coopts.free()
	defer cdrivers.free()
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))

	cgc := createCGOContext(oopts.config, oopts.errorHandler)

	retds := C.gdalgoOpen(cgc.cPointer(), cname, C.uint(oopts.flags),
		cdrivers.cPointer(), coopts.cPointer(), csiblings.cPointer())

	err := cgc.close()
	if retds == nil {
		return nil, nullPointerError("GDALOpenEx", err)
	}
	if err != nil {
		return nil, err
	}
	return &Dataset{majorObject{C.GDALMajorObjectH(retds)}}, nil
}

// Close releases the dataset. Must be called exactly once; a second call
// returns an error without touching native memory.
func (ds *Dataset) Close(opts ...CloseOption) error {
	co := &closeOpts{}
	for _, o := range opts {
		o.setCloseOpt(co)
	}
	if ds.cHandle == nil {
		return fmt.Errorf("close called more than once")
	}
	cgc := createCGOContext(nil, co.errorHandler)
	C.gdalgoClose(cgc.cPointer(), ds.handle())
	ds.cHandle = nil
	return cgc.close()
}

// LibVersion is the GDAL lib versioning scheme
type LibVersion int

// Major returns the GDAL major version (e.g. "3" in 3.2.1)
func (lv LibVersion) Major() int {
	return int(lv) / 1000000
}

// Minor return the GDAL minor version (e.g. "2" in 3.2.1)
func (lv LibVersion) Minor() int {
	return (int(lv) - lv.Major()*1000000) / 10000
}

// Revision returns the GDAL revision number (e.g. "1" in 3.2.1)
func (lv LibVersion) Revision() int {
	return (int(lv) - lv.Major()*1000000 - lv.Minor()*10000) / 100
}

// AssertMinVersion will panic if the runtime version is not at least major.minor.revision
func AssertMinVersion(major, minor, revision int) {
	if !CheckMinVersion(major, minor, revision) {
		runtimeVersion := Version()
		panic(fmt.Errorf("runtime version %d.%d.%d < %d.%d.%d",
			runtimeVersion.Major(), runtimeVersion.Minor(), runtimeVersion.Revision(), major, minor, revision))
	}
}

// CheckMinVersion will return true if the runtime version is at least major.minor.revision
func CheckMinVersion(major, minor, revision int) bool {
	runtimeVersion := Version()
	if runtimeVersion.Major() < major ||
		(runtimeVersion.Major() == major && runtimeVersion.Minor() < minor) ||
		(runtimeVersion.Major() == major && runtimeVersion.Minor() == minor && runtimeVersion.Revision() < revision) {
		return false
	}
	return true
}

// Version returns the runtime version of the gdal library
func Version() LibVersion {
	cstr := C.CString("VERSION_NUM")
	defer C.free(unsafe.Pointer(cstr))
	version := C.GoString(C.GDALVersionInfo(cstr))
	iversion, _ := strconv.Atoi(version)
	return LibVersion(iversion)
}

func init() {
	compiledVersion := LibVersion(C.GDAL_VERSION_NUM)
	AssertMinVersion(compiledVersion.Major(), compiledVersion.Minor(), 0)
}

//export goCtxErrorHandler
func goCtxErrorHandler(loggerID C.int, ec C.int, code C.int, msg *C.char) C.int {
	//returns 0 if the received ec/code/msg is not an actual error,
	//!0 if msg should be considered an error
	lfn := getErrorHandler(int(loggerID))
	err := lfn.fn(ErrorCategory(ec), int(code), C.GoString(msg))
	if err != nil {
		lfn.err = combine(lfn.err, err)
		return 1
	}
	return 0
}

type cgoContext struct {
	cctx *C.cctx
	opts cStringArray
}

func createCGOContext(configOptions []string, eh ErrorHandler) cgoContext {
	cgc := cgoContext{
		opts: sliceToCStringArray(configOptions),
		cctx: (*C.cctx)(C.malloc(C.size_t(unsafe.Sizeof(C.cctx{})))),
	}
	cgc.cctx.configOptions = cgc.opts.cPointer()
	cgc.cctx.failed = 0
	cgc.cctx.errCategory = C.int(CE_None)
	cgc.cctx.errCode = 0
	cgc.cctx.errMessage = nil
	if eh != nil {
		cgc.cctx.handlerIdx = C.int(registerErrorHandler(eh))
	} else {
		cgc.cctx.handlerIdx = 0
	}
	return cgc
}

func (cgc cgoContext) cPointer() *C.cctx {
	return cgc.cctx
}

// frees the context and returns any error it may contain
func (cgc cgoContext) close() error {
	cgc.opts.free()
	defer C.free(unsafe.Pointer(cgc.cctx))
	if cgc.cctx.errMessage != nil {
		defer C.free(unsafe.Pointer(cgc.cctx.errMessage))
		return &NativeError{
			Category: ErrorCategory(cgc.cctx.errCategory),
			Code:     int(cgc.cctx.errCode),
			Message:  C.GoString(cgc.cctx.errMessage),
		}
	}
	if cgc.cctx.handlerIdx != 0 {
		defer unregisterErrorHandler(int(cgc.cctx.handlerIdx))
		return getErrorHandler(int(cgc.cctx.handlerIdx)).err
	}
	return nil
}
