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
import (
	"fmt"
	"reflect"
	"unsafe"
)

// PixelType is the constraint satisfied by the go types a raster band can be
// read into or written from. The native library converts between the band's
// storage type and the buffer's type on the fly.
type PixelType interface {
	~uint8 | ~int8 | ~uint16 | ~int16 | ~uint32 | ~int32 | ~float32 | ~float64 | ~complex64 | ~complex128
}

// bufferDataType returns the native data type matching T. Complex buffers map
// to CFloat32/CFloat64 as the library has no narrower complex types.
func bufferDataType[T PixelType]() DataType {
	var t T
	switch reflect.ValueOf(t).Kind() {
	case reflect.Uint8:
		return Byte
	case reflect.Int8:
		return Int8
	case reflect.Uint16:
		return UInt16
	case reflect.Int16:
		return Int16
	case reflect.Uint32:
		return UInt32
	case reflect.Int32:
		return Int32
	case reflect.Float32:
		return Float32
	case reflect.Float64:
		return Float64
	case reflect.Complex64:
		return CFloat32
	case reflect.Complex128:
		return CFloat64
	default:
		panic("unsupported buffer type")
	}
}

// bandIO is the shared implementation of ReadBand and WriteBand.
func bandIO[T PixelType](band Band, rw IOOperation, xoff, yoff int, buffer []T,
	width, height int, opts ...BandIOOption) error {
	if band.closedOwner() {
		return ErrBorrowedClosed
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("cannot perform io with a %dx%d buffer", width, height)
	}
	ro := bandIOOpts{}
	for _, opt := range opts {
		opt.setBandIOOpt(&ro)
	}
	if ro.dsWidth == 0 {
		ro.dsWidth = width
	}
	if ro.dsHeight == 0 {
		ro.dsHeight = height
	}
	if ro.pixelSpacing == 0 {
		ro.pixelSpacing = 1
	}
	if ro.lineSpacing == 0 {
		ro.lineSpacing = width * ro.pixelSpacing
	}
	minLen := (height-1)*ro.lineSpacing + (width-1)*ro.pixelSpacing + 1
	if len(buffer) < minLen {
		return fmt.Errorf("buffer len %d smaller than required %d", len(buffer), minLen)
	}
	dtype := bufferDataType[T]()
	dsize := dtype.Size()
	ralg, err := ro.resampling.rioAlg()
	if err != nil {
		return err
	}

	cgc := createCGOContext(ro.config, ro.errorHandler)
	C.gdalgoBandRasterIO(cgc.cPointer(), band.handle(), C.GDALRWFlag(rw),
		C.int(xoff), C.int(yoff), C.int(ro.dsWidth), C.int(ro.dsHeight),
		unsafe.Pointer(&buffer[0]), C.int(width), C.int(height),
		C.GDALDataType(dtype),
		C.int(ro.pixelSpacing*dsize), C.int(ro.lineSpacing*dsize), ralg)
	return cgc.close()
}

// ReadBand reads the given window of the band into buffer, converting pixels
// to T. buffer must hold at least width*height elements (more if PixelSpacing
// or LineSpacing is set). The read is resampled if the Window option selects a
// dataset region of a different size than width x height.
func ReadBand[T PixelType](band Band, xoff, yoff int, buffer []T, width, height int, opts ...BandIOOption) error {
	return bandIO(band, IORead, xoff, yoff, buffer, width, height, opts...)
}

// WriteBand writes buffer into the given window of the band, converting
// pixels from T to the band's storage type. See ReadBand for the buffer
// layout rules.
func WriteBand[T PixelType](band Band, xoff, yoff int, buffer []T, width, height int, opts ...BandIOOption) error {
	return bandIO(band, IOWrite, xoff, yoff, buffer, width, height, opts...)
}

// ReadBandAll reads the whole band into a newly allocated buffer at full
// resolution.
func ReadBandAll[T PixelType](band Band, opts ...BandIOOption) ([]T, error) {
	if band.closedOwner() {
		return nil, ErrBorrowedClosed
	}
	st := band.Structure()
	buf := make([]T, st.SizeX*st.SizeY)
	if err := bandIO(band, IORead, 0, 0, buf, st.SizeX, st.SizeY, opts...); err != nil {
		return nil, err
	}
	return buf, nil
}

// datasetIO is the shared implementation of ReadDataset and WriteDataset.
func datasetIO[T PixelType](ds *Dataset, rw IOOperation, xoff, yoff int, buffer []T,
	width, height int, opts ...DatasetIOOption) error {
	if ds.cHandle == nil {
		return ErrBorrowedClosed
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("cannot perform io with a %dx%d buffer", width, height)
	}
	ro := datasetIOOpts{}
	for _, opt := range opts {
		opt.setDatasetIOOpt(&ro)
	}
	if ro.bands == nil {
		for i := 1; i <= ds.Structure().NBands; i++ {
			ro.bands = append(ro.bands, i)
		}
	}
	if len(ro.bands) == 0 {
		return fmt.Errorf("cannot perform io on 0 bands")
	}
	nbands := len(ro.bands)
	if ro.dsWidth == 0 {
		ro.dsWidth = width
	}
	if ro.dsHeight == 0 {
		ro.dsHeight = height
	}
	if ro.bandInterleave {
		// all pixels of band 1, then all pixels of band 2, etc...
		if ro.pixelSpacing == 0 {
			ro.pixelSpacing = 1
		}
		if ro.lineSpacing == 0 {
			ro.lineSpacing = width * ro.pixelSpacing
		}
		if ro.bandSpacing == 0 {
			ro.bandSpacing = height * ro.lineSpacing
		}
	} else {
		// pixel interleaved: r1g1b1,r2g2b2...
		if ro.bandSpacing == 0 {
			ro.bandSpacing = 1
		}
		if ro.pixelSpacing == 0 {
			ro.pixelSpacing = nbands * ro.bandSpacing
		}
		if ro.lineSpacing == 0 {
			ro.lineSpacing = width * ro.pixelSpacing
		}
	}
	minLen := (nbands-1)*ro.bandSpacing + (height-1)*ro.lineSpacing + (width-1)*ro.pixelSpacing + 1
	if len(buffer) < minLen {
		return fmt.Errorf("buffer len %d smaller than required %d", len(buffer), minLen)
	}
	dtype := bufferDataType[T]()
	dsize := dtype.Size()
	ralg, err := ro.resampling.rioAlg()
	if err != nil {
		return err
	}
	cBands := cIntArray(ro.bands)

	cgc := createCGOContext(ro.config, ro.errorHandler)
	C.gdalgoDatasetRasterIO(cgc.cPointer(), ds.handle(), C.GDALRWFlag(rw),
		C.int(xoff), C.int(yoff), C.int(ro.dsWidth), C.int(ro.dsHeight),
		unsafe.Pointer(&buffer[0]), C.int(width), C.int(height),
		C.GDALDataType(dtype),
		C.int(nbands), cBands,
		C.int(ro.pixelSpacing*dsize), C.int(ro.lineSpacing*dsize), C.int(ro.bandSpacing*dsize),
		ralg)
	return cgc.close()
}

// ReadDataset reads the given window of multiple bands in a single call. By
// default all bands are read pixel-interleaved; use Bands and BandInterleaved
// to change this.
func ReadDataset[T PixelType](ds *Dataset, xoff, yoff int, buffer []T, width, height int, opts ...DatasetIOOption) error {
	return datasetIO(ds, IORead, xoff, yoff, buffer, width, height, opts...)
}

// WriteDataset writes the given window of multiple bands in a single call.
// See ReadDataset for the buffer layout rules.
func WriteDataset[T PixelType](ds *Dataset, xoff, yoff int, buffer []T, width, height int, opts ...DatasetIOOption) error {
	return datasetIO(ds, IOWrite, xoff, yoff, buffer, width, height, opts...)
}

// Buffer is a rectangular block of pixels in row-major order.
type Buffer[T PixelType] struct {
	Width, Height int
	Data          []T
}

// NewBuffer allocates a width x height Buffer
func NewBuffer[T PixelType](width, height int) Buffer[T] {
	return Buffer[T]{Width: width, Height: height, Data: make([]T, width*height)}
}

// Elem returns the pixel at column x, line y
func (b Buffer[T]) Elem(x, y int) T {
	return b.Data[y*b.Width+x]
}

// ReadBlock reads the pixels covered by blk, e.g. while iterating over
// BandStructure.FirstBlock
func ReadBlock[T PixelType](band Band, blk Block, opts ...BandIOOption) (Buffer[T], error) {
	buf := NewBuffer[T](blk.W, blk.H)
	err := ReadBand(band, blk.X0, blk.Y0, buf.Data, blk.W, blk.H, opts...)
	return buf, err
}

// WriteBlock writes buf to the pixels covered by blk. buf must have blk's
// dimensions.
func WriteBlock[T PixelType](band Band, blk Block, buf Buffer[T], opts ...BandIOOption) error {
	if buf.Width != blk.W || buf.Height != blk.H {
		return fmt.Errorf("buffer size %dx%d does not match block size %dx%d",
			buf.Width, buf.Height, blk.W, blk.H)
	}
	return WriteBand(band, blk.X0, blk.Y0, buf.Data, blk.W, blk.H, opts...)
}
