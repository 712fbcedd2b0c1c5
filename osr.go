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
	"unsafe"
)

// SpatialRef is a wrapper around OGRSpatialReferenceH. All constructors set
// the traditional GIS axis mapping strategy (x=longitude/easting,
// y=latitude/northing) whatever the authority declares.
type SpatialRef struct {
	handle  C.OGRSpatialReferenceH
	isOwned bool
}

// NewSpatialRefFromWKT creates a SpatialRef from an opengis WKT description
func NewSpatialRefFromWKT(wkt string, opts ...CreateSpatialRefOption) (*SpatialRef, error) {
	cso := &createSpatialRefOpts{}
	for _, o := range opts {
		o.setCreateSpatialRefOpt(cso)
	}
	cwkt, err := cString(wkt)
	if err != nil {
		return nil, err
	}
	defer C.free(unsafe.Pointer(cwkt))
	cgc := createCGOContext(nil, cso.errorHandler)
	hndl := C.gdalgoCreateWKTSpatialRef(cgc.cPointer(), cwkt)
	cerr := cgc.close()
	if hndl == nil {
		return nil, nullPointerError("OSRImportFromWkt", cerr)
	}
	if cerr != nil {
		return nil, cerr
	}
	return &SpatialRef{handle: hndl, isOwned: true}, nil
}

// NewSpatialRefFromProj4 creates a SpatialRef from a proj4 string
func NewSpatialRefFromProj4(proj string, opts ...CreateSpatialRefOption) (*SpatialRef, error) {
	cso := &createSpatialRefOpts{}
	for _, o := range opts {
		o.setCreateSpatialRefOpt(cso)
	}
	cproj, err := cString(proj)
	if err != nil {
		return nil, err
	}
	defer C.free(unsafe.Pointer(cproj))
	cgc := createCGOContext(nil, cso.errorHandler)
	hndl := C.gdalgoCreateProj4SpatialRef(cgc.cPointer(), cproj)
	cerr := cgc.close()
	if hndl == nil {
		return nil, nullPointerError("OSRImportFromProj4", cerr)
	}
	if cerr != nil {
		return nil, cerr
	}
	return &SpatialRef{handle: hndl, isOwned: true}, nil
}

// NewSpatialRefFromEPSG creates a SpatialRef from an epsg code
func NewSpatialRefFromEPSG(code int, opts ...CreateSpatialRefOption) (*SpatialRef, error) {
	cso := &createSpatialRefOpts{}
	for _, o := range opts {
		o.setCreateSpatialRefOpt(cso)
	}
	cgc := createCGOContext(nil, cso.errorHandler)
	hndl := C.gdalgoCreateEPSGSpatialRef(cgc.cPointer(), C.int(code))
	cerr := cgc.close()
	if hndl == nil {
		return nil, nullPointerError("OSRImportFromEPSG", cerr)
	}
	if cerr != nil {
		return nil, cerr
	}
	return &SpatialRef{handle: hndl, isOwned: true}, nil
}

// Clone returns an owned copy of sr. Cloning a borrowed SpatialRef (e.g. one
// returned by Dataset.SpatialRef) is how to keep it alive past its owner.
func (sr *SpatialRef) Clone(opts ...CreateSpatialRefOption) (*SpatialRef, error) {
	cso := &createSpatialRefOpts{}
	for _, o := range opts {
		o.setCreateSpatialRefOpt(cso)
	}
	cgc := createCGOContext(nil, cso.errorHandler)
	hndl := C.gdalgoCloneSpatialRef(cgc.cPointer(), sr.handle)
	cerr := cgc.close()
	if hndl == nil {
		return nil, nullPointerError("OSRClone", cerr)
	}
	if cerr != nil {
		return nil, cerr
	}
	return &SpatialRef{handle: hndl, isOwned: true}, nil
}

// Close releases memory. A no-op on borrowed SpatialRefs and on second calls.
func (sr *SpatialRef) Close() {
	if sr.handle == nil || !sr.isOwned {
		return
	}
	C.OSRRelease(sr.handle)
	sr.handle = nil
	sr.isOwned = false
}

// WKT returns the spatial reference as an opengis WKT string
func (sr *SpatialRef) WKT(opts ...WKTExportOption) (string, error) {
	wo := &srWKTOpts{}
	for _, o := range opts {
		o.setWKTExportOpt(wo)
	}
	cgc := createCGOContext(nil, wo.errorHandler)
	cwkt := C.gdalgoExportToWKT(cgc.cPointer(), sr.handle)
	err := cgc.close()
	if cwkt == nil {
		return "", nullPointerError("OSRExportToWkt", err)
	}
	defer C.CPLFree(unsafe.Pointer(cwkt))
	if err != nil {
		return "", err
	}
	return C.GoString(cwkt), nil
}

// Geographic returns whether the SpatialRef is geographic
func (sr *SpatialRef) Geographic() bool {
	return C.OSRIsGeographic(sr.handle) != 0
}

// SemiMajor returns the SpatialRef's semi-major axis length in meters
func (sr *SpatialRef) SemiMajor() (float64, error) {
	var ogrerr C.OGRErr
	sm := C.OSRGetSemiMajor(sr.handle, &ogrerr)
	if ogrerr != C.OGRERR_NONE {
		return float64(sm), &NativeError{Category: CE_Failure, Code: int(ogrerr),
			Message: "failed to get semi-major axis"}
	}
	return float64(sm), nil
}

// SemiMinor returns the SpatialRef's semi-minor axis length in meters
func (sr *SpatialRef) SemiMinor() (float64, error) {
	var ogrerr C.OGRErr
	sm := C.OSRGetSemiMinor(sr.handle, &ogrerr)
	if ogrerr != C.OGRERR_NONE {
		return float64(sm), &NativeError{Category: CE_Failure, Code: int(ogrerr),
			Message: "failed to get semi-minor axis"}
	}
	return float64(sm), nil
}

// IsSame returns whether sr and other describe the same spatial reference,
// ignoring formatting differences
func (sr *SpatialRef) IsSame(other *SpatialRef) bool {
	return C.OSRIsSame(sr.handle, other.handle) != 0
}

// AuthorityName returns the name of the authority (usually "EPSG") governing
// the given target node of the spatial reference, or the root node if target
// is empty. Returns "" if undefined.
func (sr *SpatialRef) AuthorityName(target string) string {
	cstr := (*C.char)(nil)
	if len(target) > 0 {
		cstr = C.CString(target)
		defer C.free(unsafe.Pointer(cstr))
	}
	cret := C.OSRGetAuthorityName(sr.handle, cstr)
	if cret != nil {
		return C.GoString(cret)
	}
	return ""
}

// AuthorityCode returns the code (e.g. "4326") assigned by the authority for
// the given target node, or the root node if target is empty. Returns "" if
// undefined.
func (sr *SpatialRef) AuthorityCode(target string) string {
	cstr := (*C.char)(nil)
	if len(target) > 0 {
		cstr = C.CString(target)
		defer C.free(unsafe.Pointer(cstr))
	}
	cret := C.OSRGetAuthorityCode(sr.handle, cstr)
	if cret != nil {
		return C.GoString(cret)
	}
	return ""
}

// AutoIdentifyEPSG populates the authority nodes of the spatial reference
// with EPSG codes when an unambiguous match exists
func (sr *SpatialRef) AutoIdentifyEPSG() error {
	if ogrerr := C.OSRAutoIdentifyEPSG(sr.handle); ogrerr != C.OGRERR_NONE {
		return &NativeError{Category: CE_Failure, Code: int(ogrerr),
			Message: "failed to identify epsg code"}
	}
	return nil
}

// Transform transforms coordinates from one SpatialRef to another
type Transform struct {
	handle C.OGRCoordinateTransformationH
	dst    C.OGRSpatialReferenceH //dst cached for Geometry.Transform
}

// NewTransform creates a transformation object from src to dst
func NewTransform(src, dst *SpatialRef, opts ...TransformOption) (*Transform, error) {
	to := &trnOpts{}
	for _, o := range opts {
		o.setTransformOpt(to)
	}
	cgc := createCGOContext(nil, to.errorHandler)
	hndl := C.gdalgoNewCoordinateTransformation(cgc.cPointer(), src.handle, dst.handle)
	err := cgc.close()
	if hndl == nil {
		return nil, nullPointerError("OCTNewCoordinateTransformation", err)
	}
	if err != nil {
		return nil, err
	}
	return &Transform{handle: hndl, dst: dst.handle}, nil
}

// Close releases the transformation object. A no-op on second calls.
func (trn *Transform) Close() {
	if trn.handle == nil {
		return
	}
	C.OCTDestroyCoordinateTransformation(trn.handle)
	trn.handle = nil
}

// TransformEx reprojects points in place
//
// x and y may not be nil and must be of the same length
//
// z may be nil, or of the same length as x and y
//
// successful may be nil, or of the same length as x and y. If non nil,
// it will contain true or false depending on wether the corresponding point
// succeeded transformation or not.
//
// TODO: create a version of this function that accepts *C.double to avoid
// useless copies
func (trn *Transform) TransformEx(x []float64, y []float64, z []float64, successful []bool) error {
	cx := make([]C.double, len(x))
	cy := make([]C.double, len(x))
	pcx, pcy := (*C.double)(unsafe.Pointer(&cx[0])), (*C.double)(unsafe.Pointer(&cy[0]))
	pcz := (*C.double)(nil)
	pcs := (*C.int)(nil)
	var cz []C.double
	var cs []C.int
	if len(z) > 0 {
		cz = make([]C.double, len(x))
		pcz = (*C.double)(unsafe.Pointer(&cz[0]))
	}
	if len(successful) > 0 {
		cs = make([]C.int, len(x))
		pcs = (*C.int)(unsafe.Pointer(&cs[0]))
	}
	for i := range x {
		cx[i] = C.double(x[i])
		cy[i] = C.double(y[i])
		if cz != nil {
			cz[i] = C.double(z[i])
		}
	}
	ret := C.OCTTransformEx(trn.handle, C.int(len(x)), pcx, pcy, pcz, pcs)
	for i := range x {
		x[i] = float64(cx[i])
		y[i] = float64(cy[i])
		if cz != nil {
			z[i] = float64(cz[i])
		}
		if cs != nil {
			if cs[i] > 0 {
				successful[i] = true
			} else {
				successful[i] = false
			}
		}
	}
	if ret == 0 {
		return &NativeError{Category: CE_Failure, Message: "some or all points failed to transform"}
	}
	return nil
}
