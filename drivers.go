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
	"sync"
	"unsafe"
)

//DriverName is a GDAL driver
type DriverName string

const (
	//GTiff GeoTIFF
	GTiff DriverName = "GTiff"
	//GeoJSON geojson
	GeoJSON DriverName = "GeoJSON"
	//Memory in memory driver
	Memory DriverName = "Memory"
	//VRT is a VRT
	VRT DriverName = "VRT"
	//Shapefile is an ESRI Shapefile
	Shapefile DriverName = "ESRI Shapefile"
	//GeoPackage is a geo-package
	GeoPackage DriverName = "GPKG"
	//OpenJPEG is an OpenJPEG JPEG2000
	OpenJPEG DriverName = "OpenJPEG"
	//DIMAP is a Dimap
	DIMAP DriverName = "DIMAP"
	//HFA is an erdas img
	HFA DriverName = "HFA"
	//Mitab is a mapinfo mif/tab file
	Mitab DriverName = "Mitab"
)

type driverMapping struct {
	rasterName     string
	vectorName     string
	rasterRegister string
	vectorRegister string
}

var driverMappings = map[DriverName]driverMapping{
	GTiff: {
		rasterName:     "GTiff",
		rasterRegister: "GDALRegister_GTiff",
	},
	Memory: {
		rasterName:     "MEM",
		vectorName:     "Memory",
		rasterRegister: "GDALRegister_MEM",
		vectorRegister: "RegisterOGRMEM",
	},
	GeoJSON: {
		vectorName:     "GeoJSON",
		vectorRegister: "RegisterOGRGeoJSON",
	},
	VRT: {
		rasterName:     "VRT",
		vectorName:     "OGR_VRT",
		rasterRegister: "GDALRegister_VRT",
		vectorRegister: "RegisterOGRVRT",
	},
	Shapefile: {
		vectorName:     "ESRI Shapefile",
		vectorRegister: "RegisterOGRShape",
	},
	GeoPackage: {
		rasterName:     "GPKG",
		vectorName:     "GPKG",
		rasterRegister: "RegisterOGRGeoPackage",
		vectorRegister: "RegisterOGRGeoPackage",
	},
	OpenJPEG: {
		rasterName:     "OpenJPEG",
		rasterRegister: "GDALRegister_JP2OpenJPEG",
	},
	DIMAP: {
		rasterName:     "DIMAP",
		rasterRegister: "GDALRegister_DIMAP",
	},
	HFA: {
		rasterName:     "HFA",
		rasterRegister: "GDALRegister_HFA",
	},
	Mitab: {
		vectorName:     "Mapinfo File",
		vectorRegister: "RegisterOGRTAB",
	},
}

func (dn DriverName) setDatasetTranslateOpt(to *dsTranslateOpts) {
	to.driver = dn
}

//compile time check
var _ DatasetTranslateOption = DriverName("")

// registration tracks the process-wide lazy registration state. Open and
// Create trigger a single RegisterAll unless PreventAutoRegistration was
// called first.
var registration struct {
	sync.Mutex
	done      bool
	prevented bool
}

//RegisterAll registers all compiled-in drivers. Calling it multiple times is
//harmless: the native registry keeps a single entry per driver.
func RegisterAll() {
	registration.Lock()
	defer registration.Unlock()
	registerAllLocked()
}

func registerAllLocked() {
	C.GDALAllRegister()
	registration.done = true
}

// PreventAutoRegistration disables the implicit RegisterAll performed by the
// first Open or Create. Drivers must then be registered explicitly with
// RegisterAll, RegisterRaster/RegisterVector or RegisterDriver.
func PreventAutoRegistration() {
	registration.Lock()
	defer registration.Unlock()
	registration.prevented = true
}

func ensureRegistered() {
	registration.Lock()
	defer registration.Unlock()
	if !registration.done && !registration.prevented {
		registerAllLocked()
	}
}

// DestroyDriverManager deregisters every driver and frees the native driver
// manager. Open datasets keep working, but no new dataset can be opened until
// drivers are registered again. It also re-arms auto-registration.
func DestroyDriverManager() {
	registration.Lock()
	defer registration.Unlock()
	C.GDALDestroyDriverManager()
	registration.done = false
	registration.prevented = false
}

// DriverCount returns the number of registered drivers
func DriverCount() int {
	return int(C.GDALGetDriverCount())
}

// DriverByIndex returns the idx'th registered driver. It returns false if idx
// is out of range
func DriverByIndex(idx int) (Driver, bool) {
	hndl := C.GDALGetDriver(C.int(idx))
	if hndl == nil {
		return Driver{}, false
	}
	return Driver{majorObject{C.GDALMajorObjectH(hndl)}}, true
}

// DriverByName returns the registered driver with the given short name. The
// name is matched verbatim against the native registry, i.e. "MEM" and not
// the Memory alias. It returns false if no such driver is registered.
func DriverByName(name string) (Driver, bool) {
	return getDriver(name)
}

// RegisterDriver adds drv to the native registry and returns its index. A
// driver obtained from a DeregisterDriver'ed Driver may be re-registered.
func RegisterDriver(drv Driver) int {
	return int(C.GDALRegisterDriver(drv.handle()))
}

// DeregisterDriver removes drv from the native registry. The driver object
// itself remains valid and may be registered again.
func DeregisterDriver(drv Driver) {
	C.GDALDeregisterDriver(drv.handle())
}

// RegisterRaster registers a raster driver by name.
//
// Calling RegisterRaster(DriverName) with one of the predefined DriverNames
// provided by the library will register the corresponding raster driver.
//
// Calling RegisterRaster(DriverName("XXX")) with "XXX" any string will result
// in calling the function GDALRegister_XXX() if it could be found inside the
// libgdal binary. This allows to register any raster driver known to gdal but
// not explicitly defined inside this wrapper. Note that "XXX" must be
// provided exactly (i.e. respecting uppercase/lowercase) the same as the
// names of the C functions GDALRegister_XXX() that can be found in gdal.h
func RegisterRaster(drivers ...DriverName) error {
	for _, driver := range drivers {
		fnname := fmt.Sprintf("GDALRegister_%s", driver)
		if drv, ok := driverMappings[driver]; ok {
			if drv.rasterRegister == "" {
				return fmt.Errorf("%s driver does not handle rasters", driver)
			}
			fnname = drv.rasterRegister
		}
		if err := registerDriver(fnname); err != nil {
			return err
		}
	}
	return nil
}

// RegisterVector registers a vector driver by name.
//
// Calling RegisterVector(DriverName) with one of the predefined DriverNames
// provided by the library will register the corresponding vector driver.
//
// Calling RegisterVector(DriverName("XXX")) with "XXX" any string will result
// in calling the function RegisterOGRXXX() if it could be found inside the
// libgdal binary. This allows to register any vector driver known to gdal but
// not explicitly defined inside this wrapper. Note that "XXX" must be
// provided exactly (i.e. respecting uppercase/lowercase) the same as the
// names of the C functions RegisterOGRXXX() that can be found in
// ogrsf_frmts.h
func RegisterVector(drivers ...DriverName) error {
	for _, driver := range drivers {
		fnname := fmt.Sprintf("RegisterOGR%s", driver)
		if drv, ok := driverMappings[driver]; ok {
			if drv.vectorRegister == "" {
				return fmt.Errorf("%s driver does not handle vectors", driver)
			}
			fnname = drv.vectorRegister
		}
		if err := registerDriver(fnname); err != nil {
			return err
		}
	}
	return nil
}

func registerDriver(fnname string) error {
	cfnname := C.CString(fnname)
	defer C.free(unsafe.Pointer(cfnname))
	ret := C.gdalgoRegisterDriver(cfnname)
	if ret != 0 {
		return fmt.Errorf("failed to call function %s", fnname)
	}
	return nil
}

// RegisterInternalDrivers is a shorthand for registering "essential" gdal/ogr
// drivers.
//
// It is equivalent to calling RegisterRaster("VRT","MEM","GTiff") and
// RegisterVector("MEM","VRT","GeoJSON")
func RegisterInternalDrivers() {
	//These are always built in and should never error
	_ = RegisterRaster(VRT, Memory, GTiff)
	_ = RegisterVector(VRT, Memory, GeoJSON)
}

// Driver is a non-owning view on a gdal format driver. It remains valid after
// DeregisterDriver, and only becomes invalid when the driver manager is
// destroyed.
type Driver struct {
	majorObject
}

// handle() returns a pointer to the underlying GDALDriverH
func (drv Driver) handle() C.GDALDriverH {
	return C.GDALDriverH(drv.majorObject.cHandle)
}

// ShortName returns the driver's short (registry) name, e.g. "GTiff"
func (drv Driver) ShortName() string {
	return C.GoString(C.GDALGetDriverShortName(drv.handle()))
}

// LongName returns the driver's descriptive name, e.g. "GeoTIFF"
func (drv Driver) LongName() string {
	return C.GoString(C.GDALGetDriverLongName(drv.handle()))
}

// VectorDriver returns a Driver by name. It returns false if the named driver
// does not exist
func VectorDriver(name DriverName) (Driver, bool) {
	if dn, ok := driverMappings[name]; ok {
		if dn.vectorName == "" {
			return Driver{}, false
		}
		return getDriver(dn.vectorName)
	}
	return getDriver(string(name))
}

// RasterDriver returns a Driver by name. It returns false if the named driver
// does not exist
func RasterDriver(name DriverName) (Driver, bool) {
	if dn, ok := driverMappings[name]; ok {
		if dn.rasterName == "" {
			return Driver{}, false
		}
		return getDriver(dn.rasterName)
	}
	return getDriver(string(name))
}

func getDriver(name string) (Driver, bool) {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	hndl := C.GDALGetDriverByName(cname)
	if hndl != nil {
		return Driver{majorObject{C.GDALMajorObjectH(hndl)}}, true
	}
	return Driver{}, false
}

// Create wraps GDALCreate and uses driver to create a new raster dataset with
// the given name (usually filename), size, type and bands.
func Create(driver DriverName, name string, nBands int, dtype DataType, width, height int, opts ...DatasetCreateOption) (*Dataset, error) {
	ensureRegistered()
	drvname := string(driver)
	if drv, ok := driverMappings[driver]; ok {
		if drv.rasterName == "" {
			return nil, fmt.Errorf("%s does not support raster creation", driver)
		}
		drvname = drv.rasterName
	}
	drv, ok := getDriver(drvname)
	if !ok {
		return nil, fmt.Errorf("failed to get driver %s", drvname)
	}
	gopts := dsCreateOpts{}
	for _, opt := range opts {
		opt.setDatasetCreateOpt(&gopts)
	}
	createOpts := sliceToCStringArray(gopts.creation)
	cname := C.CString(name)
	defer createOpts.free()
	defer C.free(unsafe.Pointer(cname))

	cgc := createCGOContext(gopts.config, gopts.errorHandler)
	hndl := C.gdalgoCreate(cgc.cPointer(), drv.handle(), cname,
		C.int(width), C.int(height), C.int(nBands), C.GDALDataType(dtype),
		createOpts.cPointer())
	err := cgc.close()
	if hndl == nil {
		return nil, nullPointerError("GDALCreate", err)
	}
	if err != nil {
		return nil, err
	}
	return &Dataset{majorObject{C.GDALMajorObjectH(hndl)}}, nil
}

// CreateVector uses driver to create a new vector dataset with the given name
// (usually filename) and options
func CreateVector(driver DriverName, name string, opts ...DatasetCreateOption) (*Dataset, error) {
	ensureRegistered()
	drvname := string(driver)
	if drv, ok := driverMappings[driver]; ok {
		if drv.vectorName == "" {
			return nil, fmt.Errorf("%s does not support vector creation", driver)
		}
		drvname = drv.vectorName
	}
	drv, ok := getDriver(drvname)
	if !ok {
		return nil, fmt.Errorf("failed to get driver %s", drvname)
	}
	gopts := dsCreateOpts{}
	for _, opt := range opts {
		opt.setDatasetCreateOpt(&gopts)
	}
	createOpts := sliceToCStringArray(gopts.creation)
	cname := C.CString(name)
	defer createOpts.free()
	defer C.free(unsafe.Pointer(cname))

	cgc := createCGOContext(gopts.config, gopts.errorHandler)
	hndl := C.gdalgoCreate(cgc.cPointer(), drv.handle(), cname,
		0, 0, 0, C.GDT_Unknown, createOpts.cPointer())
	err := cgc.close()
	if hndl == nil {
		return nil, nullPointerError("GDALCreate", err)
	}
	if err != nil {
		return nil, err
	}
	return &Dataset{majorObject{C.GDALMajorObjectH(hndl)}}, nil
}
