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
*/
import "C"

// Band is a view on a single raster band of a Dataset. A Band does not own
// native memory: it remains valid only while its owning dataset is open, and
// its fallible operations return ErrBorrowedClosed afterwards.
type Band struct {
	majorObject
	ds *Dataset
}

// handle returns a pointer to the underlying GDALRasterBandH
func (band Band) handle() C.GDALRasterBandH {
	return C.GDALRasterBandH(band.majorObject.cHandle)
}

// closedOwner reports whether the band's owning dataset has been closed.
func (band Band) closedOwner() bool {
	return band.ds != nil && band.ds.cHandle == nil
}

// Structure returns the band's Structure. Returns a zero Structure if the
// owning dataset has been closed.
func (band Band) Structure() BandStructure {
	if band.closedOwner() {
		return BandStructure{}
	}
	var sx, sy, bsx, bsy, dtype C.int
	var scale, offset C.double
	C.gdalgoBandStructure(band.handle(), &sx, &sy, &bsx, &bsy, &scale, &offset, &dtype)
	return BandStructure{
		SizeX:      int(sx),
		SizeY:      int(sy),
		BlockSizeX: int(bsx),
		BlockSizeY: int(bsy),
		Scale:      float64(scale),
		Offset:     float64(offset),
		DataType:   DataType(int(dtype)),
	}
}

// NoData returns the band's nodata value. If ok is false, the band does not
// have a nodata value set
func (band Band) NoData() (nodata float64, ok bool) {
	if band.closedOwner() {
		return 0, false
	}
	cok := C.int(0)
	cn := C.GDALGetRasterNoDataValue(band.handle(), &cok)
	if cok != 0 {
		return float64(cn), true
	}
	return 0, false
}

// SetNoData sets the band's nodata value
func (band Band) SetNoData(nd float64, opts ...SetNoDataOption) error {
	if band.closedOwner() {
		return ErrBorrowedClosed
	}
	sndo := &setNodataOpts{}
	for _, opt := range opts {
		opt.setSetNoDataOpt(sndo)
	}
	cgc := createCGOContext(nil, sndo.errorHandler)
	C.gdalgoSetRasterNoDataValue(cgc.cPointer(), band.handle(), C.double(nd))
	return cgc.close()
}

// ClearNoData clears the band's nodata value
func (band Band) ClearNoData(opts ...SetNoDataOption) error {
	if band.closedOwner() {
		return ErrBorrowedClosed
	}
	sndo := &setNodataOpts{}
	for _, opt := range opts {
		opt.setSetNoDataOpt(sndo)
	}
	cgc := createCGOContext(nil, sndo.errorHandler)
	C.gdalgoDeleteRasterNoDataValue(cgc.cPointer(), band.handle())
	return cgc.close()
}

// SetScaleOffset sets the band's scale and offset
func (band Band) SetScaleOffset(scale, offset float64, opts ...SetScaleOffsetOption) error {
	if band.closedOwner() {
		return ErrBorrowedClosed
	}
	soo := &setScaleOffsetOpts{}
	for _, opt := range opts {
		opt.setSetScaleOffsetOpt(soo)
	}
	cgc := createCGOContext(nil, soo.errorHandler)
	C.gdalgoSetRasterScaleOffset(cgc.cPointer(), band.handle(), C.double(scale), C.double(offset))
	return cgc.close()
}

// Overviews returns the overviews of the band, from largest to smallest
func (band Band) Overviews() []Band {
	if band.closedOwner() {
		return nil
	}
	cnt := int(C.GDALGetOverviewCount(band.handle()))
	ret := make([]Band, cnt)
	for i := 0; i < cnt; i++ {
		hndl := C.GDALGetOverview(band.handle(), C.int(i))
		ret[i] = Band{majorObject{C.GDALMajorObjectH(hndl)}, band.ds}
	}
	return ret
}

// ColorInterp returns the band's color interpretation (defaults to Gray)
func (band Band) ColorInterp() ColorInterp {
	if band.closedOwner() {
		return CIUndefined
	}
	colorInterp := C.GDALGetRasterColorInterpretation(band.handle())
	return ColorInterp(colorInterp)
}

// SetColorInterp sets the band's color interpretation
func (band Band) SetColorInterp(colorInterp ColorInterp, opts ...SetColorInterpOption) error {
	if band.closedOwner() {
		return ErrBorrowedClosed
	}
	scio := &setColorInterpOpts{}
	for _, opt := range opts {
		opt.setSetColorInterpOpt(scio)
	}
	cgc := createCGOContext(nil, scio.errorHandler)
	C.gdalgoSetRasterColorInterpretation(cgc.cPointer(), band.handle(), C.GDALColorInterp(colorInterp))
	return cgc.close()
}

// Fill sets the whole band uniformly to (real,imag)
func (band Band) Fill(real, imag float64, opts ...FillBandOption) error {
	if band.closedOwner() {
		return ErrBorrowedClosed
	}
	fo := &fillBandOpts{}
	for _, opt := range opts {
		opt.setFillBandOpt(fo)
	}
	cgc := createCGOContext(nil, fo.errorHandler)
	C.gdalgoFillRaster(cgc.cPointer(), band.handle(), C.double(real), C.double(imag))
	return cgc.close()
}

// MaskFlags returns the mask flags associated with the band.
//
// See https://gdal.org/development/rfc/rfc15_nodatabitmask.html for how the
// flags should be interpreted
func (band Band) MaskFlags() int {
	if band.closedOwner() {
		return 0
	}
	return int(C.GDALGetMaskFlags(band.handle()))
}

// MaskBand returns the mask (nodata) band of this band. May be generated from
// the band's nodata value, an alpha band, or a per-dataset or per-band mask.
func (band Band) MaskBand() Band {
	if band.closedOwner() {
		return Band{ds: band.ds}
	}
	hndl := C.GDALGetMaskBand(band.handle())
	return Band{majorObject{C.GDALMajorObjectH(hndl)}, band.ds}
}

// Metadata returns the band metadata value for the given key, or "" if unset
// or if the owning dataset has been closed
func (band Band) Metadata(key string, opts ...MetadataOption) string {
	if band.closedOwner() {
		return ""
	}
	return band.majorObject.Metadata(key, opts...)
}

// Metadatas returns all band metadata key/value pairs of a domain
func (band Band) Metadatas(opts ...MetadataOption) map[string]string {
	if band.closedOwner() {
		return nil
	}
	return band.majorObject.Metadatas(opts...)
}

// SetMetadata sets a band metadata key/value pair
func (band Band) SetMetadata(key, value string, opts ...MetadataOption) error {
	if band.closedOwner() {
		return ErrBorrowedClosed
	}
	return band.majorObject.SetMetadata(key, value, opts...)
}

// MetadataDomains returns all the domains that contain band metadata
func (band Band) MetadataDomains() []string {
	if band.closedOwner() {
		return nil
	}
	return band.majorObject.MetadataDomains()
}

// Description returns the description/name of the band
func (band Band) Description() string {
	if band.closedOwner() {
		return ""
	}
	return band.majorObject.Description()
}

// SetDescription sets the description of the band
func (band Band) SetDescription(description string, opts ...MetadataOption) error {
	if band.closedOwner() {
		return ErrBorrowedClosed
	}
	return band.majorObject.SetDescription(description, opts...)
}

// CreateMask creates a mask (nodata) band for this band.
//
// See https://gdal.org/development/rfc/rfc15_nodatabitmask.html for how flag
// should be used
func (band Band) CreateMask(flags int, opts ...BandCreateMaskOption) (Band, error) {
	if band.closedOwner() {
		return Band{}, ErrBorrowedClosed
	}
	gopts := bandCreateMaskOpts{}
	for _, opt := range opts {
		opt.setBandCreateMaskOpt(&gopts)
	}
	cgc := createCGOContext(gopts.config, gopts.errorHandler)
	hndl := C.gdalgoCreateMaskBand(cgc.cPointer(), band.handle(), C.int(flags))
	err := cgc.close()
	if hndl == nil {
		return Band{}, nullPointerError("GDALCreateMaskBand", err)
	}
	if err != nil {
		return Band{}, err
	}
	return Band{majorObject{C.GDALMajorObjectH(hndl)}, band.ds}, nil
}
