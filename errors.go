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
	"errors"
	"fmt"
	"strings"
	"sync"
	"unsafe"
)

// ErrBorrowedClosed is returned when using a Band or Layer whose owning
// Dataset has been closed.
var ErrBorrowedClosed = errors.New("owning dataset is closed")

// NativeError wraps an error reported by the gdal library through the CPL
// error stack.
type NativeError struct {
	// Category is the severity the error was reported with. Always
	// CE_Warning or higher.
	Category ErrorCategory
	// Code is the CPLE_XXX error number
	Code int
	// Message contains the reported message(s). When a single native call
	// emits several reports, messages after the first are appended on
	// separate lines.
	Message string
}

func (err *NativeError) Error() string {
	return err.Message
}

// NullPointerError is returned when a native call that should have produced a
// handle returned a null pointer.
type NullPointerError struct {
	// Call is the name of the native entrypoint that returned null
	Call string
	// Message is the error message captured alongside the null return, if any
	Message string
}

func (err *NullPointerError) Error() string {
	if err.Message != "" {
		return fmt.Sprintf("%s returned a null pointer: %s", err.Call, err.Message)
	}
	return fmt.Sprintf("%s returned a null pointer", err.Call)
}

// nullPointerError builds the error for a null handle return, folding in the
// message of any error captured during the same call.
func nullPointerError(call string, captured error) error {
	npe := &NullPointerError{Call: call}
	var nerr *NativeError
	if errors.As(captured, &nerr) {
		npe.Message = nerr.Message
	} else if captured != nil {
		npe.Message = captured.Error()
	}
	return npe
}

// InvalidFieldTypeError is returned by a Feature's typed field accessors when
// the field does not hold the requested type.
type InvalidFieldTypeError struct {
	// Field is the field name
	Field string
	// Type is the field's actual type
	Type FieldType
	// Call is the accessor that was used
	Call string
}

func (err *InvalidFieldTypeError) Error() string {
	return fmt.Sprintf("%s: field %s has type %d", err.Call, err.Field, int(err.Type))
}

// StringConversionError is returned when a go string cannot be passed to the
// native library, i.e. when it contains an embedded NUL byte.
type StringConversionError struct {
	Value string
}

func (err *StringConversionError) Error() string {
	return fmt.Sprintf("string %q cannot be converted to a C string", err.Value)
}

// cString converts s for native consumption, failing on embedded NUL bytes.
// The returned pointer must be freed with C.free.
func cString(s string) (*C.char, error) {
	if strings.IndexByte(s, 0) >= 0 {
		return nil, &StringConversionError{Value: s}
	}
	return C.CString(s), nil
}

func combine(e1, e2 error) error {
	if e1 == nil {
		return e2
	}
	if e2 == nil {
		return e1
	}
	return fmt.Errorf("%w\n%s", e1, e2.Error())
}

var errorHandlerMu sync.Mutex
var errorHandlerIndex int

// ErrorHandler is a function that can be used to override the default
// behavior of treating all messages with severity >= CE_Warning as errors.
// When an ErrorHandler is passed as an option (via ErrLogger) to a gdalgo
// function, all logs/errors emitted by gdal will be passed to this function,
// which can decide whether the parameters correspond to an actual error
// or not.
//
// If the ErrorHandler returns nil, the parent function will not return an
// error. It is up to the ErrorHandler to log the message if needed.
//
// If the ErrorHandler returns an error, that error will be returned as-is to
// the caller of the parent function
type ErrorHandler func(ec ErrorCategory, code int, msg string) error

type errorHandlerWrapper struct {
	fn  ErrorHandler
	err error
}

var errorHandlers = make(map[int]*errorHandlerWrapper)

func registerErrorHandler(fn ErrorHandler) int {
	errorHandlerMu.Lock()
	defer errorHandlerMu.Unlock()
	errorHandlerIndex++
	for errorHandlerIndex == 0 || errorHandlers[errorHandlerIndex] != nil {
		errorHandlerIndex++
	}
	errorHandlers[errorHandlerIndex] = &errorHandlerWrapper{fn: fn}
	return errorHandlerIndex
}

func getErrorHandler(i int) *errorHandlerWrapper {
	errorHandlerMu.Lock()
	defer errorHandlerMu.Unlock()
	return errorHandlers[i]
}

func unregisterErrorHandler(i int) {
	errorHandlerMu.Lock()
	defer errorHandlerMu.Unlock()
	delete(errorHandlers, i)
}

var globalHandlerMu sync.Mutex
var globalHandler ErrorHandler

// InstallErrorHandler routes every error report not captured by an individual
// gdalgo call to fn, replacing any previously installed handler. fn may be
// called concurrently from multiple goroutines and must be safe for
// concurrent use; reports emitted from a single thread reach it in emission
// order. fn's return value is ignored.
//
// A CE_Fatal report may be followed by the native library aborting the
// process, whatever fn does with it.
func InstallErrorHandler(fn ErrorHandler) {
	globalHandlerMu.Lock()
	defer globalHandlerMu.Unlock()
	globalHandler = fn
	C.gdalgoInstallGlobalErrorHandler()
}

// RemoveErrorHandler restores the default native error handling.
func RemoveErrorHandler() {
	globalHandlerMu.Lock()
	defer globalHandlerMu.Unlock()
	C.gdalgoRemoveGlobalErrorHandler()
	globalHandler = nil
}

//export goGlobalErrorHandler
func goGlobalErrorHandler(ec C.int, code C.int, msg *C.char) {
	globalHandlerMu.Lock()
	fn := globalHandler
	globalHandlerMu.Unlock()
	if fn != nil {
		_ = fn(ErrorCategory(ec), int(code), C.GoString(msg))
	}
}

// emitCPLError pushes a report onto the native error stack, as a native
// library call would.
func emitCPLError(ec ErrorCategory, code int, msg string) {
	cmsg := C.CString(msg)
	defer C.free(unsafe.Pointer(cmsg))
	C.gdalgoEmitError(C.int(ec), C.int(code), cmsg)
}

type errorAndLoggingOpts struct {
	eh     ErrorHandler
	config []string
}

type errorCallback struct {
	fn ErrorHandler
}

type errorAndLoggingOption interface {
	setErrorAndLoggingOpt(elo *errorAndLoggingOpts)
}

// ErrLogger routes the reports emitted during a single gdalgo call to fn. See
// ErrorHandler for how fn's return value is interpreted.
func ErrLogger(fn ErrorHandler) interface {
	errorAndLoggingOption
	BandCreateMaskOption
	BandIOOption
	BuildOverviewsOption
	ClearOverviewsOption
	CloseOption
	CreateLayerOption
	CreateSpatialRefOption
	DatasetCreateMaskOption
	DatasetCreateOption
	DatasetIOOption
	DatasetTranslateOption
	DeleteFeatureOption
	ExecuteSQLOption
	FeatureCountOption
	FillBandOption
	GeoJSONOption
	GeometryTransformOption
	GeometryReprojectOption
	GeometryWKBOption
	GeometryWKTOption
	GetGeoTransformOption
	MetadataOption
	NewFeatureOption
	NewGeometryOption
	OpenOption
	SetColorInterpOption
	SetGeometryOption
	SetNoDataOption
	SetScaleOffsetOption
	SetGeoTransformOption
	SetProjectionOption
	SetSpatialRefOption
	SimplifyOption
	BufferOption
	TransformOption
	UpdateFeatureOption
	VSIOpenOption
	VSIUnlinkOption
	WKTExportOption
} {
	return errorCallback{fn}
}

func (ec errorCallback) setErrorAndLoggingOpt(elo *errorAndLoggingOpts) {
	elo.eh = ec.fn
}
func (ec errorCallback) setBandCreateMaskOpt(o *bandCreateMaskOpts) {
	o.errorHandler = ec.fn
}
func (ec errorCallback) setBandIOOpt(o *bandIOOpts) {
	o.errorHandler = ec.fn
}
func (ec errorCallback) setBuildOverviewsOpt(o *buildOvrOpts) {
	o.errorHandler = ec.fn
}
func (ec errorCallback) setClearOverviewsOpt(o *clearOvrOpts) {
	o.errorHandler = ec.fn
}
func (ec errorCallback) setCloseOpt(o *closeOpts) {
	o.errorHandler = ec.fn
}
func (ec errorCallback) setCreateLayerOpt(o *createLayerOpts) {
	o.errorHandler = ec.fn
}
func (ec errorCallback) setCreateSpatialRefOpt(o *createSpatialRefOpts) {
	o.errorHandler = ec.fn
}
func (ec errorCallback) setDatasetCreateMaskOpt(o *dsCreateMaskOpts) {
	o.errorHandler = ec.fn
}
func (ec errorCallback) setDatasetCreateOpt(o *dsCreateOpts) {
	o.errorHandler = ec.fn
}
func (ec errorCallback) setDatasetIOOpt(o *datasetIOOpts) {
	o.errorHandler = ec.fn
}
func (ec errorCallback) setDatasetTranslateOpt(o *dsTranslateOpts) {
	o.errorHandler = ec.fn
}
func (ec errorCallback) setDeleteFeatureOpt(o *deleteFeatureOpts) {
	o.errorHandler = ec.fn
}
func (ec errorCallback) setExecuteSQLOpt(o *executeSQLOpts) {
	o.errorHandler = ec.fn
}
func (ec errorCallback) setFeatureCountOpt(o *featureCountOpts) {
	o.errorHandler = ec.fn
}
func (ec errorCallback) setFillBandOpt(o *fillBandOpts) {
	o.errorHandler = ec.fn
}
func (ec errorCallback) setGeojsonOpt(o *geojsonOpts) {
	o.errorHandler = ec.fn
}
func (ec errorCallback) setGeometryTransformOpt(o *geometryTransformOpts) {
	o.errorHandler = ec.fn
}
func (ec errorCallback) setGeometryReprojectOpt(o *geometryReprojectOpts) {
	o.errorHandler = ec.fn
}
func (ec errorCallback) setGeometryWKBOpt(o *geometryWKBOpts) {
	o.errorHandler = ec.fn
}
func (ec errorCallback) setGeometryWKTOpt(o *geometryWKTOpts) {
	o.errorHandler = ec.fn
}
func (ec errorCallback) setGetGeoTransformOpt(o *getGeoTransformOpts) {
	o.errorHandler = ec.fn
}
func (ec errorCallback) setMetadataOpt(o *metadataOpts) {
	o.errorHandler = ec.fn
}
func (ec errorCallback) setNewFeatureOpt(o *newFeatureOpts) {
	o.errorHandler = ec.fn
}
func (ec errorCallback) setNewGeometryOpt(o *newGeometryOpts) {
	o.errorHandler = ec.fn
}
func (ec errorCallback) setOpenOpt(oo *openOpts) {
	oo.errorHandler = ec.fn
}
func (ec errorCallback) setSetColorInterpOpt(o *setColorInterpOpts) {
	o.errorHandler = ec.fn
}
func (ec errorCallback) setSetGeometryOpt(o *setGeometryOpts) {
	o.errorHandler = ec.fn
}
func (ec errorCallback) setSetNoDataOpt(o *setNodataOpts) {
	o.errorHandler = ec.fn
}
func (ec errorCallback) setSetScaleOffsetOpt(o *setScaleOffsetOpts) {
	o.errorHandler = ec.fn
}
func (ec errorCallback) setSetGeoTransformOpt(o *setGeoTransformOpts) {
	o.errorHandler = ec.fn
}
func (ec errorCallback) setSetProjectionOpt(o *setProjectionOpts) {
	o.errorHandler = ec.fn
}
func (ec errorCallback) setSetSpatialRefOpt(o *setSpatialRefOpts) {
	o.errorHandler = ec.fn
}
func (ec errorCallback) setSimplifyOpt(o *simplifyOpts) {
	o.errorHandler = ec.fn
}
func (ec errorCallback) setBufferOpt(o *bufferOpts) {
	o.errorHandler = ec.fn
}
func (ec errorCallback) setTransformOpt(o *trnOpts) {
	o.errorHandler = ec.fn
}
func (ec errorCallback) setUpdateFeatureOpt(o *updateFeatureOpts) {
	o.errorHandler = ec.fn
}
func (ec errorCallback) setVSIOpenOpt(o *vsiOpenOpts) {
	o.errorHandler = ec.fn
}
func (ec errorCallback) setVSIUnlinkOpt(o *vsiUnlinkOpts) {
	o.errorHandler = ec.fn
}
func (ec errorCallback) setWKTExportOpt(o *srWKTOpts) {
	o.errorHandler = ec.fn
}
