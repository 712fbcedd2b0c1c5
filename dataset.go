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
	"unsafe"
)

// Structure returns the dataset's Structure
func (ds *Dataset) Structure() DatasetStructure {
	var sx, sy, bsx, bsy, bandCount, dtype C.int
	C.gdalgoDatasetStructure(ds.handle(), &sx, &sy, &bsx, &bsy, &bandCount, &dtype)
	return DatasetStructure{
		BandStructure: BandStructure{
			SizeX:      int(sx),
			SizeY:      int(sy),
			BlockSizeX: int(bsx),
			BlockSizeY: int(bsy),
			DataType:   DataType(int(dtype)),
		},
		NBands: int(bandCount),
	}
}

// Bands returns all dataset bands.
func (ds *Dataset) Bands() []Band {
	cnt := int(C.GDALGetRasterCount(ds.handle()))
	ret := make([]Band, cnt)
	for i := 0; i < cnt; i++ {
		hndl := C.GDALGetRasterBand(ds.handle(), C.int(i+1))
		ret[i] = Band{majorObject{C.GDALMajorObjectH(hndl)}, ds}
	}
	return ret
}

// RasterBand returns the band'th Band of the dataset. Bands are numbered
// starting from 1, as in the native library; passing 0 or a value greater
// than the band count returns a *NullPointerError.
func (ds *Dataset) RasterBand(band int) (Band, error) {
	if ds.cHandle == nil {
		return Band{}, ErrBorrowedClosed
	}
	cgc := createCGOContext(nil, nil)
	hndl := C.gdalgoRasterBand(cgc.cPointer(), ds.handle(), C.int(band))
	err := cgc.close()
	if hndl == nil {
		return Band{}, nullPointerError("GDALGetRasterBand", err)
	}
	if err != nil {
		return Band{}, err
	}
	return Band{majorObject{C.GDALMajorObjectH(hndl)}, ds}, nil
}

// GeoTransform returns the affine transform mapping pixel/line coordinates to
// the dataset's projected coordinates:
//
//	Xgeo = gt[0] + Xpixel*gt[1] + Yline*gt[2]
//	Ygeo = gt[3] + Xpixel*gt[4] + Yline*gt[5]
func (ds *Dataset) GeoTransform(opts ...GetGeoTransformOption) ([6]float64, error) {
	gto := &getGeoTransformOpts{}
	for _, o := range opts {
		o.setGetGeoTransformOpt(gto)
	}
	ret := [6]float64{}
	gt := make([]C.double, 6)
	cgt := (*C.double)(unsafe.Pointer(&gt[0]))
	cgc := createCGOContext(nil, gto.errorHandler)
	C.gdalgoGetGeoTransform(cgc.cPointer(), ds.handle(), cgt)
	if err := cgc.close(); err != nil {
		return ret, err
	}
	for i := range ret {
		ret[i] = float64(gt[i])
	}
	return ret, nil
}

// SetGeoTransform sets the affine transform of the dataset. See GeoTransform
// for the coefficient layout.
func (ds *Dataset) SetGeoTransform(transform [6]float64, opts ...SetGeoTransformOption) error {
	gto := &setGeoTransformOpts{}
	for _, o := range opts {
		o.setSetGeoTransformOpt(gto)
	}
	gt := make([]C.double, 6)
	for i := range transform {
		gt[i] = C.double(transform[i])
	}
	cgt := (*C.double)(unsafe.Pointer(&gt[0]))
	cgc := createCGOContext(nil, gto.errorHandler)
	C.gdalgoSetGeoTransform(cgc.cPointer(), ds.handle(), cgt)
	return cgc.close()
}

// Projection returns the projection of the dataset as WKT, or the empty
// string if unset
func (ds *Dataset) Projection() string {
	return C.GoString(C.GDALGetProjectionRef(ds.handle()))
}

// SetProjection sets the dataset's projection from a WKT string
func (ds *Dataset) SetProjection(wkt string, opts ...SetProjectionOption) error {
	po := &setProjectionOpts{}
	for _, o := range opts {
		o.setSetProjectionOpt(po)
	}
	var cwkt = (*C.char)(nil)
	if len(wkt) > 0 {
		cwkt = C.CString(wkt)
		defer C.free(unsafe.Pointer(cwkt))
	}
	cgc := createCGOContext(nil, po.errorHandler)
	C.gdalgoSetProjection(cgc.cPointer(), ds.handle(), cwkt)
	return cgc.close()
}

// SpatialRef returns a borrowed view on the dataset's spatial reference.
// The returned SpatialRef remains owned by the dataset: calling Close on it
// is a no-op, and it must not be used after the dataset is closed.
func (ds *Dataset) SpatialRef() *SpatialRef {
	hndl := C.GDALGetSpatialRef(ds.handle())
	return &SpatialRef{handle: hndl, isOwned: false}
}

// SetSpatialRef sets the dataset's spatial reference. sr remains owned by the
// caller.
func (ds *Dataset) SetSpatialRef(sr *SpatialRef, opts ...SetSpatialRefOption) error {
	so := &setSpatialRefOpts{}
	for _, o := range opts {
		o.setSetSpatialRefOpt(so)
	}
	var srHandle C.OGRSpatialReferenceH
	if sr != nil {
		srHandle = sr.handle
	}
	cgc := createCGOContext(nil, so.errorHandler)
	C.gdalgoDatasetSetSpatialRef(cgc.cPointer(), ds.handle(), srHandle)
	return cgc.close()
}

// SetNoData sets the nodata value on all the dataset's bands
func (ds *Dataset) SetNoData(nd float64, opts ...SetNoDataOption) error {
	sndo := &setNodataOpts{}
	for _, opt := range opts {
		opt.setSetNoDataOpt(sndo)
	}
	cgc := createCGOContext(nil, sndo.errorHandler)
	C.gdalgoSetDatasetNoDataValue(cgc.cPointer(), ds.handle(), C.double(nd))
	return cgc.close()
}

// CreateMaskBand creates a dataset-wide mask (nodata) band shared by all bands.
//
// See https://gdal.org/development/rfc/rfc15_nodatabitmask.html for how flag
// should be used
func (ds *Dataset) CreateMaskBand(flags int, opts ...DatasetCreateMaskOption) (Band, error) {
	gopts := dsCreateMaskOpts{}
	for _, opt := range opts {
		opt.setDatasetCreateMaskOpt(&gopts)
	}
	cgc := createCGOContext(gopts.config, gopts.errorHandler)
	hndl := C.gdalgoCreateDatasetMaskBand(cgc.cPointer(), ds.handle(), C.int(flags))
	err := cgc.close()
	if hndl == nil {
		return Band{}, nullPointerError("GDALCreateDatasetMaskBand", err)
	}
	if err != nil {
		return Band{}, err
	}
	return Band{majorObject{C.GDALMajorObjectH(hndl)}, ds}, nil
}

// BuildOverviews computes the dataset's overviews.
//
// If neither Levels() nor MinSize() is provided, the levels are computed by
// successive halving until the smallest overview fits in a 256 pixel tile.
func (ds *Dataset) BuildOverviews(opts ...BuildOverviewsOption) error {
	bovr := buildOvrOpts{
		resampling: Average,
		minSize:    256,
	}
	for _, opt := range opts {
		opt.setBuildOverviewsOpt(&bovr)
	}
	if len(bovr.levels) == 0 {
		st := ds.Structure()
		sz := st.SizeX
		if st.SizeY > sz {
			sz = st.SizeY
		}
		for lvl := 2; sz/(lvl/2) > bovr.minSize; lvl *= 2 {
			bovr.levels = append(bovr.levels, lvl)
		}
	}
	if len(bovr.levels) == 0 {
		return nil //nothing to do
	}
	for _, l := range bovr.levels {
		if l < 2 {
			return errors.New("invalid overview level")
		}
	}
	nLevels := C.int(len(bovr.levels))
	cLevels := cIntArray(bovr.levels)
	nBands := C.int(len(bovr.bands))
	cBands := (*C.int)(nil)
	if len(bovr.bands) > 0 {
		cBands = cIntArray(bovr.bands)
	}
	cResample := C.CString(bovr.resampling.String())
	defer C.free(unsafe.Pointer(cResample))

	cgc := createCGOContext(bovr.config, bovr.errorHandler)
	C.gdalgoBuildOverviews(cgc.cPointer(), ds.handle(), cResample, nLevels, cLevels,
		nBands, cBands)
	return cgc.close()
}

// ClearOverviews deletes all existing overviews
func (ds *Dataset) ClearOverviews(opts ...ClearOverviewsOption) error {
	co := &clearOvrOpts{}
	for _, o := range opts {
		o.setClearOverviewsOpt(co)
	}
	cgc := createCGOContext(nil, co.errorHandler)
	C.gdalgoClearOverviews(cgc.cPointer(), ds.handle())
	return cgc.close()
}

// Translate runs the library version of gdal_translate.
// See the gdal_translate doc page to determine the valid flags/opts that can
// be set in switches.
//
// Example switches:
//
//	[]string{"-a_nodata", "255", "-co", "TILED=YES"}
//
// Creation options and driver may be set either in the switches slice with
//
//	switches:=[]string{"-co","TILED=YES","-of","GTiff"}
//
// or through options with
//
//	ds.Translate(dst, switches, CreationOption("TILED=YES","BLOCKXSIZE=256"), GTiff)
func (ds *Dataset) Translate(dstDS string, switches []string, opts ...DatasetTranslateOption) (*Dataset, error) {
	gopts := dsTranslateOpts{}
	for _, opt := range opts {
		opt.setDatasetTranslateOpt(&gopts)
	}
	for _, copt := range gopts.creation {
		switches = append(switches, "-co", copt)
	}
	if gopts.driver != "" {
		dname := string(gopts.driver)
		if dm, ok := driverMappings[gopts.driver]; ok {
			dname = dm.rasterName
		}
		switches = append(switches, "-of", dname)
	}
	cswitches := sliceToCStringArray(switches)
	defer cswitches.free()
	cname := C.CString(dstDS)
	defer C.free(unsafe.Pointer(cname))

	cgc := createCGOContext(gopts.config, gopts.errorHandler)
	hndl := C.gdalgoTranslate(cgc.cPointer(), cname, ds.handle(), cswitches.cPointer())
	err := cgc.close()
	if hndl == nil {
		return nil, nullPointerError("GDALTranslate", err)
	}
	if err != nil {
		return nil, err
	}
	return &Dataset{majorObject{C.GDALMajorObjectH(hndl)}}, nil
}
