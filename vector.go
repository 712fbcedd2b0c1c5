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
	"unsafe"
)

// GeometryType is a geometry type
type GeometryType uint32

const (
	//GTUnknown is a GeometryType
	GTUnknown = GeometryType(C.wkbUnknown)
	//GTPoint is a GeometryType
	GTPoint = GeometryType(C.wkbPoint)
	//GTLineString is a GeometryType
	GTLineString = GeometryType(C.wkbLineString)
	//GTPolygon is a GeometryType
	GTPolygon = GeometryType(C.wkbPolygon)
	//GTMultiPoint is a GeometryType
	GTMultiPoint = GeometryType(C.wkbMultiPoint)
	//GTMultiLineString is a GeometryType
	GTMultiLineString = GeometryType(C.wkbMultiLineString)
	//GTMultiPolygon is a GeometryType
	GTMultiPolygon = GeometryType(C.wkbMultiPolygon)
	//GTGeometryCollection is a GeometryType
	GTGeometryCollection = GeometryType(C.wkbGeometryCollection)
	//GTNone is a GeometryType
	GTNone = GeometryType(C.wkbNone)
)

// FieldType is a vector field (attribute/column) type
type FieldType C.OGRFieldType

const (
	//FTInt is a Simple 32bit integer
	FTInt = FieldType(C.OFTInteger)
	//FTReal is a Double Precision floating point
	FTReal = FieldType(C.OFTReal)
	//FTString is a String of ASCII chars
	FTString = FieldType(C.OFTString)
	//FTInt64 is a Single 64bit integer
	FTInt64 = FieldType(C.OFTInteger64)
	//FTIntList is a List of 32bit integers
	FTIntList = FieldType(C.OFTIntegerList)
	//FTRealList is a list of doubles
	FTRealList = FieldType(C.OFTRealList)
	//FTStringList is a list of strings
	FTStringList = FieldType(C.OFTStringList)
	//FTBinary is Raw Binary data
	FTBinary = FieldType(C.OFTBinary)
	//FTDate is a Date
	FTDate = FieldType(C.OFTDate)
	//FTTime is a Time
	FTTime = FieldType(C.OFTTime)
	//FTDateTime is a Date and Time
	FTDateTime = FieldType(C.OFTDateTime)
	//FTInt64List is a List of 64bit integers
	FTInt64List = FieldType(C.OFTInteger64List)
)

// FieldDefinition defines a single attribute to be created on a layer
type FieldDefinition struct {
	name  string
	ftype FieldType
}

// NewFieldDefinition creates a FieldDefinition. Pass it to
// Dataset.CreateLayer to add the field to the created layer.
func NewFieldDefinition(name string, fdtype FieldType) *FieldDefinition {
	return &FieldDefinition{
		name:  name,
		ftype: fdtype,
	}
}

func (fld *FieldDefinition) setCreateLayerOpt(o *createLayerOpts) {
	o.fields = append(o.fields, fld)
}

func (fld *FieldDefinition) createHandle() (C.OGRFieldDefnH, error) {
	cName, err := cString(fld.name)
	if err != nil {
		return nil, err
	}
	defer C.free(unsafe.Pointer(cName))
	return C.OGR_Fld_Create(cName, C.OGRFieldType(fld.ftype)), nil
}

// Layer is a view on a vector layer of a Dataset. Like a Band, a Layer does
// not own native memory and must not be used once its owning dataset is
// closed.
type Layer struct {
	majorObject
	ds *Dataset
}

// handle returns a pointer to the underlying OGRLayerH
func (layer Layer) handle() C.OGRLayerH {
	return C.OGRLayerH(layer.majorObject.cHandle)
}

func (layer Layer) closedOwner() bool {
	return layer.ds != nil && layer.ds.cHandle == nil
}

// Name returns the layer name
func (layer Layer) Name() string {
	if layer.closedOwner() {
		return ""
	}
	return C.GoString(C.OGR_L_GetName(layer.handle()))
}

// Type returns the layer geometry type.
func (layer Layer) Type() GeometryType {
	if layer.closedOwner() {
		return GTUnknown
	}
	return GeometryType(C.OGR_L_GetGeomType(layer.handle()))
}

// SpatialRef returns the spatial reference of the layer, or nil if the owning
// dataset has been closed. The returned SpatialRef is borrowed from the layer
// and should not be closed
func (layer Layer) SpatialRef() *SpatialRef {
	if layer.closedOwner() {
		return nil
	}
	hndl := C.OGR_L_GetSpatialRef(layer.handle())
	return &SpatialRef{handle: hndl, isOwned: false}
}

// FeatureCount returns the number of features in the layer
func (layer Layer) FeatureCount(opts ...FeatureCountOption) (int, error) {
	if layer.closedOwner() {
		return 0, ErrBorrowedClosed
	}
	fco := &featureCountOpts{}
	for _, o := range opts {
		o.setFeatureCountOpt(fco)
	}
	var count C.int
	cgc := createCGOContext(nil, fco.errorHandler)
	C.gdalgoLayerFeatureCount(cgc.cPointer(), layer.handle(), &count)
	if err := cgc.close(); err != nil {
		return 0, err
	}
	return int(count), nil
}

// ResetReading makes Layer.NextFeature return the first feature of the layer
func (layer Layer) ResetReading() {
	if layer.closedOwner() {
		return
	}
	C.OGR_L_ResetReading(layer.handle())
}

// NextFeature returns the layer's next feature, or nil if there are no more
// features. The returned feature is owned by the caller and must be Closed.
func (layer Layer) NextFeature() *Feature {
	if layer.closedOwner() {
		return nil
	}
	hndl := C.OGR_L_GetNextFeature(layer.handle())
	if hndl == nil {
		return nil
	}
	return &Feature{handle: hndl}
}

// NewFeature creates a feature on the layer, with geom as its geometry. geom
// may be nil and remains owned by the caller. The returned feature must be
// Closed.
func (layer Layer) NewFeature(geom *Geometry, opts ...NewFeatureOption) (*Feature, error) {
	if layer.closedOwner() {
		return nil, ErrBorrowedClosed
	}
	nfo := &newFeatureOpts{}
	for _, o := range opts {
		o.setNewFeatureOpt(nfo)
	}
	var geomHandle C.OGRGeometryH
	if geom != nil {
		geomHandle = geom.handle
	}
	cgc := createCGOContext(nil, nfo.errorHandler)
	hndl := C.gdalgoLayerNewFeature(cgc.cPointer(), layer.handle(), geomHandle)
	err := cgc.close()
	if hndl == nil {
		return nil, nullPointerError("OGR_L_CreateFeature", err)
	}
	if err != nil {
		return nil, err
	}
	return &Feature{handle: hndl}, nil
}

// UpdateFeature rewrites an updated feature in the Layer
func (layer Layer) UpdateFeature(feat *Feature, opts ...UpdateFeatureOption) error {
	if layer.closedOwner() {
		return ErrBorrowedClosed
	}
	ufo := &updateFeatureOpts{}
	for _, o := range opts {
		o.setUpdateFeatureOpt(ufo)
	}
	cgc := createCGOContext(nil, ufo.errorHandler)
	C.gdalgoLayerSetFeature(cgc.cPointer(), layer.handle(), feat.handle)
	return cgc.close()
}

// DeleteFeature deletes feature from the Layer
func (layer Layer) DeleteFeature(feat *Feature, opts ...DeleteFeatureOption) error {
	if layer.closedOwner() {
		return ErrBorrowedClosed
	}
	dfo := &deleteFeatureOpts{}
	for _, o := range opts {
		o.setDeleteFeatureOpt(dfo)
	}
	cgc := createCGOContext(nil, dfo.errorHandler)
	C.gdalgoLayerDeleteFeature(cgc.cPointer(), layer.handle(), feat.handle)
	return cgc.close()
}

// CreateField adds an attribute field to the layer. Not all drivers support
// adding fields to a layer that already contains features.
func (layer Layer) CreateField(fld *FieldDefinition) error {
	if layer.closedOwner() {
		return ErrBorrowedClosed
	}
	fh, err := fld.createHandle()
	if err != nil {
		return err
	}
	defer C.OGR_Fld_Destroy(fh)
	if ogrerr := C.OGR_L_CreateField(layer.handle(), fh, 1); ogrerr != C.OGRERR_NONE {
		return &NativeError{Category: CE_Failure, Code: int(ogrerr),
			Message: fmt.Sprintf("failed to create field %s", fld.name)}
	}
	return nil
}

// CreateLayer creates a new vector layer on the dataset. Attribute fields may
// be added at creation time by passing FieldDefinitions as options.
func (ds *Dataset) CreateLayer(name string, sr *SpatialRef, gtype GeometryType, opts ...CreateLayerOption) (Layer, error) {
	co := createLayerOpts{}
	for _, opt := range opts {
		opt.setCreateLayerOpt(&co)
	}
	var srHandle C.OGRSpatialReferenceH
	if sr != nil {
		srHandle = sr.handle
	}
	cname, err := cString(name)
	if err != nil {
		return Layer{}, err
	}
	defer C.free(unsafe.Pointer(cname))
	cgc := createCGOContext(nil, co.errorHandler)
	hndl := C.gdalgoCreateLayer(cgc.cPointer(), ds.handle(), cname, srHandle,
		C.OGRwkbGeometryType(gtype))
	cerr := cgc.close()
	if hndl == nil {
		return Layer{}, nullPointerError("GDALDatasetCreateLayer", cerr)
	}
	if cerr != nil {
		return Layer{}, cerr
	}
	layer := Layer{majorObject{C.GDALMajorObjectH(hndl)}, ds}
	for _, fld := range co.fields {
		fhndl, err := fld.createHandle()
		if err != nil {
			return Layer{}, err
		}
		fgc := createCGOContext(nil, co.errorHandler)
		C.gdalgoLayerCreateField(fgc.cPointer(), layer.handle(), fhndl)
		err = fgc.close()
		C.OGR_Fld_Destroy(fhndl)
		if err != nil {
			return Layer{}, err
		}
	}
	return layer, nil
}

// Layers returns all the dataset's vector layers
func (ds *Dataset) Layers() []Layer {
	clayers := []Layer{}
	count := int(C.GDALDatasetGetLayerCount(ds.handle()))
	for i := 0; i < count; i++ {
		hndl := C.GDALDatasetGetLayer(ds.handle(), C.int(i))
		clayers = append(clayers, Layer{majorObject{C.GDALMajorObjectH(hndl)}, ds})
	}
	return clayers
}

// ResultSet is a layer returned by Dataset.ExecuteSQL. Unlike a plain Layer
// it owns native memory and must be Closed.
type ResultSet struct {
	Layer
}

// ExecuteSQL runs an SQL statement against the dataset's layers. dialect
// selects the SQL dialect ("", "OGRSQL" or "SQLITE"). Statements that return
// no result set (e.g. DDL) yield a ResultSet whose layer count is zero; such
// a ResultSet must still be Closed.
func (ds *Dataset) ExecuteSQL(sql, dialect string, opts ...ExecuteSQLOption) (*ResultSet, error) {
	eso := &executeSQLOpts{}
	for _, o := range opts {
		o.setExecuteSQLOpt(eso)
	}
	csql, err := cString(sql)
	if err != nil {
		return nil, err
	}
	defer C.free(unsafe.Pointer(csql))
	cdialect := (*C.char)(nil)
	if len(dialect) > 0 {
		cdialect = C.CString(dialect)
		defer C.free(unsafe.Pointer(cdialect))
	}
	cgc := createCGOContext(nil, eso.errorHandler)
	hndl := C.gdalgoExecuteSQL(cgc.cPointer(), ds.handle(), csql, cdialect)
	if cerr := cgc.close(); cerr != nil {
		if hndl != nil {
			C.GDALDatasetReleaseResultSet(ds.handle(), hndl)
		}
		return nil, cerr
	}
	return &ResultSet{Layer{majorObject{C.GDALMajorObjectH(hndl)}, ds}}, nil
}

// Close releases the result set. A no-op on second calls.
func (rs *ResultSet) Close() {
	if rs.cHandle == nil {
		return
	}
	if rs.ds == nil || rs.ds.cHandle == nil {
		rs.cHandle = nil
		return
	}
	cgc := createCGOContext(nil, nil)
	C.gdalgoReleaseResultSet(cgc.cPointer(), rs.ds.handle(), rs.handle())
	cgc.close()
	rs.cHandle = nil
}

// Feature is a Layer feature. A Feature owns native memory and must be
// Closed.
type Feature struct {
	handle C.OGRFeatureH
}

// FID returns the feature's id
func (f *Feature) FID() int64 {
	return int64(C.OGR_F_GetFID(f.handle))
}

// Geometry returns the feature's geometry. The returned Geometry is borrowed
// from the feature: closing it is a no-op, and it must not be used once the
// feature is closed. Use StealGeometry to detach it from the feature.
func (f *Feature) Geometry() *Geometry {
	hndl := C.OGR_F_GetGeometryRef(f.handle)
	return &Geometry{handle: hndl, isOwned: false}
}

// StealGeometry detaches the feature's geometry. The returned Geometry is
// owned by the caller and outlives the feature; the feature is left without
// a geometry.
func (f *Feature) StealGeometry() *Geometry {
	hndl := C.OGR_F_StealGeometry(f.handle)
	return &Geometry{handle: hndl, isOwned: true}
}

// SetGeometry copies geom into the feature. geom remains owned by the caller.
func (f *Feature) SetGeometry(geom *Geometry, opts ...SetGeometryOption) error {
	sgo := &setGeometryOpts{}
	for _, o := range opts {
		o.setSetGeometryOpt(sgo)
	}
	cgc := createCGOContext(nil, sgo.errorHandler)
	C.gdalgoFeatureSetGeometry(cgc.cPointer(), f.handle, geom.handle)
	return cgc.close()
}

// SetGeometryDirectly transfers ownership of geom to the feature. geom must
// be an owned Geometry; on success it becomes invalid and must no longer be
// used (its Close becomes a no-op).
func (f *Feature) SetGeometryDirectly(geom *Geometry, opts ...SetGeometryOption) error {
	if !geom.isOwned {
		return fmt.Errorf("cannot transfer ownership of a borrowed geometry")
	}
	sgo := &setGeometryOpts{}
	for _, o := range opts {
		o.setSetGeometryOpt(sgo)
	}
	cgc := createCGOContext(nil, sgo.errorHandler)
	C.gdalgoFeatureSetGeometryDirectly(cgc.cPointer(), f.handle, geom.handle)
	if err := cgc.close(); err != nil {
		return err
	}
	geom.handle = nil
	geom.isOwned = false
	return nil
}

// Close releases resources associated to a feature. A no-op on second calls.
func (f *Feature) Close() {
	if f.handle == nil {
		return
	}
	C.OGR_F_Destroy(f.handle)
	f.handle = nil
}

func (f *Feature) fieldIndex(name string) (C.int, FieldType, error) {
	cname, err := cString(name)
	if err != nil {
		return 0, 0, err
	}
	defer C.free(unsafe.Pointer(cname))
	idx := C.OGR_F_GetFieldIndex(f.handle, cname)
	if idx < 0 {
		return 0, 0, fmt.Errorf("feature has no field %s", name)
	}
	fdefn := C.OGR_F_GetFieldDefnRef(f.handle, idx)
	return idx, FieldType(C.OGR_Fld_GetType(fdefn)), nil
}

// IntField returns the value of the named integer field. Returns an
// *InvalidFieldTypeError if the field is not of type FTInt or FTInt64.
func (f *Feature) IntField(name string) (int64, error) {
	idx, ftype, err := f.fieldIndex(name)
	if err != nil {
		return 0, err
	}
	if ftype != FTInt && ftype != FTInt64 {
		return 0, &InvalidFieldTypeError{Field: name, Type: ftype, Call: "IntField"}
	}
	return int64(C.OGR_F_GetFieldAsInteger64(f.handle, idx)), nil
}

// FloatField returns the value of the named floating point field. Returns an
// *InvalidFieldTypeError if the field is not of type FTReal.
func (f *Feature) FloatField(name string) (float64, error) {
	idx, ftype, err := f.fieldIndex(name)
	if err != nil {
		return 0, err
	}
	if ftype != FTReal {
		return 0, &InvalidFieldTypeError{Field: name, Type: ftype, Call: "FloatField"}
	}
	return float64(C.OGR_F_GetFieldAsDouble(f.handle, idx)), nil
}

// StringField returns the value of the named string field. Returns an
// *InvalidFieldTypeError if the field is not of type FTString.
func (f *Feature) StringField(name string) (string, error) {
	idx, ftype, err := f.fieldIndex(name)
	if err != nil {
		return "", err
	}
	if ftype != FTString {
		return "", &InvalidFieldTypeError{Field: name, Type: ftype, Call: "StringField"}
	}
	return C.GoString(C.OGR_F_GetFieldAsString(f.handle, idx)), nil
}

// SetIntField sets the named field to an integer value. The field must exist
// and be of type FTInt or FTInt64.
func (f *Feature) SetIntField(name string, value int64) error {
	idx, ftype, err := f.fieldIndex(name)
	if err != nil {
		return err
	}
	if ftype != FTInt && ftype != FTInt64 {
		return &InvalidFieldTypeError{Field: name, Type: ftype, Call: "SetIntField"}
	}
	C.OGR_F_SetFieldInteger64(f.handle, idx, C.GIntBig(value))
	return nil
}

// SetFloatField sets the named field to a floating point value. The field
// must exist and be of type FTReal.
func (f *Feature) SetFloatField(name string, value float64) error {
	idx, ftype, err := f.fieldIndex(name)
	if err != nil {
		return err
	}
	if ftype != FTReal {
		return &InvalidFieldTypeError{Field: name, Type: ftype, Call: "SetFloatField"}
	}
	C.OGR_F_SetFieldDouble(f.handle, idx, C.double(value))
	return nil
}

// SetStringField sets the named field to a string value. The field must exist
// and be of type FTString.
func (f *Feature) SetStringField(name string, value string) error {
	idx, ftype, err := f.fieldIndex(name)
	if err != nil {
		return err
	}
	if ftype != FTString {
		return &InvalidFieldTypeError{Field: name, Type: ftype, Call: "SetStringField"}
	}
	cval, err := cString(value)
	if err != nil {
		return err
	}
	defer C.free(unsafe.Pointer(cval))
	C.OGR_F_SetFieldString(f.handle, idx, cval)
	return nil
}

// Geometry wraps an OGRGeometryH. Geometries returned by constructors are
// owned and must be Closed; geometries returned by Feature.Geometry are
// borrowed and follow their feature's lifetime.
type Geometry struct {
	handle  C.OGRGeometryH
	isOwned bool
}

// NewGeometryFromWKT creates a geometry from its WKT representation. sr may
// be nil; if given, it is assigned to the geometry (the geometry keeps a
// reference, sr may be closed by the caller).
func NewGeometryFromWKT(wkt string, sr *SpatialRef, opts ...NewGeometryOption) (*Geometry, error) {
	no := &newGeometryOpts{}
	for _, o := range opts {
		o.setNewGeometryOpt(no)
	}
	var srHandle C.OGRSpatialReferenceH
	if sr != nil {
		srHandle = sr.handle
	}
	cwkt, err := cString(wkt)
	if err != nil {
		return nil, err
	}
	defer C.free(unsafe.Pointer(cwkt))
	cgc := createCGOContext(nil, no.errorHandler)
	hndl := C.gdalgoNewGeometryFromWKT(cgc.cPointer(), cwkt, srHandle)
	cerr := cgc.close()
	if hndl == nil {
		return nil, nullPointerError("OGR_G_CreateFromWkt", cerr)
	}
	if cerr != nil {
		return nil, cerr
	}
	return &Geometry{handle: hndl, isOwned: true}, nil
}

// NewGeometryFromWKB creates a geometry from its WKB representation. sr may
// be nil.
func NewGeometryFromWKB(wkb []byte, sr *SpatialRef, opts ...NewGeometryOption) (*Geometry, error) {
	no := &newGeometryOpts{}
	for _, o := range opts {
		o.setNewGeometryOpt(no)
	}
	if len(wkb) == 0 {
		return nil, fmt.Errorf("empty wkb")
	}
	var srHandle C.OGRSpatialReferenceH
	if sr != nil {
		srHandle = sr.handle
	}
	cgc := createCGOContext(nil, no.errorHandler)
	hndl := C.gdalgoNewGeometryFromWKB(cgc.cPointer(), unsafe.Pointer(&wkb[0]),
		C.int(len(wkb)), srHandle)
	cerr := cgc.close()
	if hndl == nil {
		return nil, nullPointerError("OGR_G_CreateFromWkb", cerr)
	}
	if cerr != nil {
		return nil, cerr
	}
	return &Geometry{handle: hndl, isOwned: true}, nil
}

// Close releases the geometry's native memory. A no-op on borrowed geometries
// and on second calls.
func (g *Geometry) Close() {
	if g.handle == nil || !g.isOwned {
		return
	}
	C.OGR_G_DestroyGeometry(g.handle)
	g.handle = nil
	g.isOwned = false
}

// Empty returns whether the geometry contains no points
func (g *Geometry) Empty() bool {
	return C.OGR_G_IsEmpty(g.handle) != 0
}

// Type returns the geometry type.
func (g *Geometry) Type() GeometryType {
	return GeometryType(C.OGR_G_GetGeometryType(g.handle))
}

// Bounds returns the geometry's envelope as [minx, miny, maxx, maxy]
func (g *Geometry) Bounds() [4]float64 {
	var env C.OGREnvelope
	C.OGR_G_GetEnvelope(g.handle, &env)
	return [4]float64{float64(env.MinX), float64(env.MinY), float64(env.MaxX), float64(env.MaxY)}
}

// Clone returns an owned copy of the geometry
func (g *Geometry) Clone() (*Geometry, error) {
	hndl := C.OGR_G_Clone(g.handle)
	if hndl == nil {
		return nil, nullPointerError("OGR_G_Clone", nil)
	}
	return &Geometry{handle: hndl, isOwned: true}, nil
}

// SpatialRef returns the geometry's spatial reference. The returned
// SpatialRef is borrowed and should not be closed
func (g *Geometry) SpatialRef() *SpatialRef {
	hndl := C.OGR_G_GetSpatialReference(g.handle)
	return &SpatialRef{handle: hndl, isOwned: false}
}

// SetSpatialRef assigns a spatial reference to the geometry without modifying
// its coordinates. sr remains owned by the caller.
func (g *Geometry) SetSpatialRef(sr *SpatialRef) {
	C.OGR_G_AssignSpatialReference(g.handle, sr.handle)
}

// Reproject reprojects the geometry's coordinates in place to the given
// SpatialRef. The geometry must have a spatial reference assigned.
func (g *Geometry) Reproject(to *SpatialRef, opts ...GeometryReprojectOption) error {
	gr := &geometryReprojectOpts{}
	for _, o := range opts {
		o.setGeometryReprojectOpt(gr)
	}
	cgc := createCGOContext(nil, gr.errorHandler)
	C.gdalgoGeometryTransformTo(cgc.cPointer(), g.handle, to.handle)
	return cgc.close()
}

// Transform reprojects the geometry's coordinates in place with a
// pre-created Transform, which is cheaper than Reproject when processing
// many geometries.
func (g *Geometry) Transform(trn *Transform, opts ...GeometryTransformOption) error {
	gt := &geometryTransformOpts{}
	for _, o := range opts {
		o.setGeometryTransformOpt(gt)
	}
	cgc := createCGOContext(nil, gt.errorHandler)
	C.gdalgoGeometryTransform(cgc.cPointer(), g.handle, trn.handle, trn.dst)
	return cgc.close()
}

// Simplify returns a new owned geometry simplified with the given tolerance,
// preserving topology.
func (g *Geometry) Simplify(tolerance float64, opts ...SimplifyOption) (*Geometry, error) {
	so := &simplifyOpts{}
	for _, o := range opts {
		o.setSimplifyOpt(so)
	}
	cgc := createCGOContext(nil, so.errorHandler)
	hndl := C.gdalgoGeometrySimplify(cgc.cPointer(), g.handle, C.double(tolerance))
	err := cgc.close()
	if hndl == nil {
		return nil, nullPointerError("OGR_G_SimplifyPreserveTopology", err)
	}
	if err != nil {
		return nil, err
	}
	return &Geometry{handle: hndl, isOwned: true}, nil
}

// Buffer returns a new owned geometry containing all points within distance
// of g, approximating circular arcs with segments points per quadrant.
func (g *Geometry) Buffer(distance float64, segments int, opts ...BufferOption) (*Geometry, error) {
	bo := &bufferOpts{}
	for _, o := range opts {
		o.setBufferOpt(bo)
	}
	cgc := createCGOContext(nil, bo.errorHandler)
	hndl := C.gdalgoGeometryBuffer(cgc.cPointer(), g.handle, C.double(distance), C.int(segments))
	err := cgc.close()
	if hndl == nil {
		return nil, nullPointerError("OGR_G_Buffer", err)
	}
	if err != nil {
		return nil, err
	}
	return &Geometry{handle: hndl, isOwned: true}, nil
}

// WKT returns the geometry's WKT representation
func (g *Geometry) WKT(opts ...GeometryWKTOption) (string, error) {
	wo := &geometryWKTOpts{}
	for _, o := range opts {
		o.setGeometryWKTOpt(wo)
	}
	cgc := createCGOContext(nil, wo.errorHandler)
	cwkt := C.gdalgoExportGeometryWKT(cgc.cPointer(), g.handle)
	err := cgc.close()
	if cwkt == nil {
		return "", nullPointerError("OGR_G_ExportToWkt", err)
	}
	defer C.CPLFree(unsafe.Pointer(cwkt))
	if err != nil {
		return "", err
	}
	return C.GoString(cwkt), nil
}

// WKB returns the geometry's little-endian WKB representation
func (g *Geometry) WKB(opts ...GeometryWKBOption) ([]byte, error) {
	wo := &geometryWKBOpts{}
	for _, o := range opts {
		o.setGeometryWKBOpt(wo)
	}
	var cwkb unsafe.Pointer
	var clen C.int
	cgc := createCGOContext(nil, wo.errorHandler)
	C.gdalgoExportGeometryWKB(cgc.cPointer(), &cwkb, &clen, g.handle)
	if err := cgc.close(); err != nil {
		return nil, err
	}
	wkb := C.GoBytes(cwkb, clen)
	C.CPLFree(cwkb)
	return wkb, nil
}

// GeoJSON returns the geometry as a geojson fragment, with coordinates
// rounded to 9 significant digits unless overridden with SignificantDigits
func (g *Geometry) GeoJSON(opts ...GeoJSONOption) (string, error) {
	gjo := &geojsonOpts{
		precision: 9,
	}
	for _, o := range opts {
		o.setGeojsonOpt(gjo)
	}
	cgc := createCGOContext(nil, gjo.errorHandler)
	cgj := C.gdalgoExportGeometryGeoJSON(cgc.cPointer(), g.handle, C.int(gjo.precision))
	err := cgc.close()
	if cgj == nil {
		return "", nullPointerError("OGR_G_ExportToJsonEx", err)
	}
	defer C.CPLFree(unsafe.Pointer(cgj))
	if err != nil {
		return "", err
	}
	return C.GoString(cgj), nil
}
