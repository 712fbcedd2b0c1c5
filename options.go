package gdalgo

import "sort"

type openOpts struct {
	flags        uint
	drivers      []string //list of drivers that can be tried to open the given name
	options      []string //driver specific open options (see gdal docs for each driver)
	siblingFiles []string //list of sidecar files
	config       []string
	errorHandler ErrorHandler
}

// OpenOption is an option passed to Open()
//
// Available OpenOptions are:
//
// • Drivers
//
// • SiblingFiles
//
// • ConfigOption
//
// • Update
//
// • DriverOpenOption
//
// • RasterOnly
//
// • VectorOnly
//
// • ErrLogger
type OpenOption interface {
	setOpenOpt(oo *openOpts)
}

type closeOpts struct {
	errorHandler ErrorHandler
}

// CloseOption is an option passed to Dataset.Close()
//
// Available options are:
//
// • ErrLogger
type CloseOption interface {
	setCloseOpt(co *closeOpts)
}

type dsCreateOpts struct {
	config       []string
	creation     []string
	errorHandler ErrorHandler
}

// DatasetCreateOption is an option that can be passed to Create()
//
// Available DatasetCreateOptions are:
//
// • CreationOption
//
// • ConfigOption
//
// • ErrLogger
type DatasetCreateOption interface {
	setDatasetCreateOpt(dc *dsCreateOpts)
}

type bandCreateMaskOpts struct {
	config       []string
	errorHandler ErrorHandler
}

// BandCreateMaskOption is an option that can be passed to Band.CreateMask()
//
// Available BandCreateMaskOptions are:
//
// • ConfigOption
//
// • ErrLogger
type BandCreateMaskOption interface {
	setBandCreateMaskOpt(dcm *bandCreateMaskOpts)
}

type dsCreateMaskOpts struct {
	config       []string
	errorHandler ErrorHandler
}

// DatasetCreateMaskOption is an option that can be passed to Dataset.CreateMaskBand()
//
// Available DatasetCreateMaskOptions are:
//
// • ConfigOption
//
// • ErrLogger
type DatasetCreateMaskOption interface {
	setDatasetCreateMaskOpt(dcm *dsCreateMaskOpts)
}

type bandIOOpts struct {
	config                    []string
	dsWidth, dsHeight         int
	resampling                ResamplingAlg
	pixelSpacing, lineSpacing int
	errorHandler              ErrorHandler
}

// BandIOOption is an option to modify the default behavior of ReadBand and
// WriteBand
//
// Available BandIOOptions are:
//
// • Window
//
// • Resampling
//
// • ConfigOption
//
// • PixelSpacing
//
// • LineSpacing
//
// • ErrLogger
type BandIOOption interface {
	setBandIOOpt(ro *bandIOOpts)
}

type datasetIOOpts struct {
	config                                 []string
	bands                                  []int
	dsWidth, dsHeight                      int
	resampling                             ResamplingAlg
	bandInterleave                         bool //return r1r2...rn,g1g2...gn,b1b2...bn instead of r1g1b1,r2g2b2,...,rngnbn
	bandSpacing, pixelSpacing, lineSpacing int
	errorHandler                           ErrorHandler
}

// DatasetIOOption is an option to modify the default behavior of ReadDataset
// and WriteDataset
//
// Available DatasetIOOptions are:
//
// • Window
//
// • Resampling
//
// • ConfigOption
//
// • Bands
//
// • BandInterleaved
//
// • PixelSpacing
//
// • LineSpacing
//
// • BandSpacing
//
// • ErrLogger
type DatasetIOOption interface {
	setDatasetIOOpt(ro *datasetIOOpts)
}

type buildOvrOpts struct {
	config       []string
	minSize      int
	resampling   ResamplingAlg
	bands        []int
	levels       []int
	errorHandler ErrorHandler
}

// BuildOverviewsOption is an option to specify how overview building should behave.
//
// Available BuildOverviewsOptions are:
//
// • ConfigOption
//
// • Resampling
//
// • Levels
//
// • MinSize
//
// • Bands
//
// • ErrLogger
type BuildOverviewsOption interface {
	setBuildOverviewsOpt(bo *buildOvrOpts)
}

type clearOvrOpts struct {
	errorHandler ErrorHandler
}

// ClearOverviewsOption is an option passed to Dataset.ClearOverviews
//
// Available options are:
//
// • ErrLogger
type ClearOverviewsOption interface {
	setClearOverviewsOpt(co *clearOvrOpts)
}

type dsTranslateOpts struct {
	config       []string
	creation     []string
	driver       DriverName
	errorHandler ErrorHandler
}

// DatasetTranslateOption is an option that can be passed to Dataset.Translate()
//
// Available DatasetTranslateOptions are:
//
// • ConfigOption
//
// • CreationOption
//
// • DriverName
//
// • ErrLogger
type DatasetTranslateOption interface {
	setDatasetTranslateOpt(dto *dsTranslateOpts)
}

type setNodataOpts struct {
	errorHandler ErrorHandler
}

// SetNoDataOption is an option that can be passed to Band.SetNoData(),
// Band.ClearNoData() or Dataset.SetNoData()
//
// Available options are:
//
// • ErrLogger
type SetNoDataOption interface {
	setSetNoDataOpt(ndo *setNodataOpts)
}

type setScaleOffsetOpts struct {
	errorHandler ErrorHandler
}

// SetScaleOffsetOption is an option that can be passed to Band.SetScaleOffset()
//
// Available options are:
//
// • ErrLogger
type SetScaleOffsetOption interface {
	setSetScaleOffsetOpt(so *setScaleOffsetOpts)
}

type setColorInterpOpts struct {
	errorHandler ErrorHandler
}

// SetColorInterpOption is an option that can be passed to Band.SetColorInterp()
//
// Available options are:
//
// • ErrLogger
type SetColorInterpOption interface {
	setSetColorInterpOpt(ci *setColorInterpOpts)
}

type fillBandOpts struct {
	errorHandler ErrorHandler
}

// FillBandOption is an option that can be passed to Band.Fill()
//
// Available options are:
//
// • ErrLogger
type FillBandOption interface {
	setFillBandOpt(fb *fillBandOpts)
}

type metadataOpts struct {
	domain       string
	errorHandler ErrorHandler
}

// MetadataOption is an option that can be passed to metadata related calls
//
// Available MetadataOptions are:
//
// • Domain
//
// • ErrLogger
type MetadataOption interface {
	setMetadataOpt(mo *metadataOpts)
}

type getGeoTransformOpts struct {
	errorHandler ErrorHandler
}

// GetGeoTransformOption is an option that can be passed to Dataset.GeoTransform()
//
// Available options are:
//
// • ErrLogger
type GetGeoTransformOption interface {
	setGetGeoTransformOpt(o *getGeoTransformOpts)
}

type setGeoTransformOpts struct {
	errorHandler ErrorHandler
}

// SetGeoTransformOption is an option that can be passed to Dataset.SetGeoTransform()
//
// Available options are:
//
// • ErrLogger
type SetGeoTransformOption interface {
	setSetGeoTransformOpt(o *setGeoTransformOpts)
}

type setProjectionOpts struct {
	errorHandler ErrorHandler
}

// SetProjectionOption is an option that can be passed to Dataset.SetProjection()
//
// Available options are:
//
// • ErrLogger
type SetProjectionOption interface {
	setSetProjectionOpt(o *setProjectionOpts)
}

type setSpatialRefOpts struct {
	errorHandler ErrorHandler
}

// SetSpatialRefOption is an option that can be passed to Dataset.SetSpatialRef()
//
// Available options are:
//
// • ErrLogger
type SetSpatialRefOption interface {
	setSetSpatialRefOpt(o *setSpatialRefOpts)
}

type createLayerOpts struct {
	fields       []*FieldDefinition
	errorHandler ErrorHandler
}

// CreateLayerOption is an option that can be passed to Dataset.CreateLayer()
//
// Available options are:
//
// • FieldDefinition (may be used multiple times) to add attribute fields to the layer
//
// • ErrLogger
type CreateLayerOption interface {
	setCreateLayerOpt(clo *createLayerOpts)
}

type newFeatureOpts struct {
	errorHandler ErrorHandler
}

// NewFeatureOption is an option that can be passed to Layer.NewFeature
//
// Available options are:
//
// • ErrLogger
type NewFeatureOption interface {
	setNewFeatureOpt(nfo *newFeatureOpts)
}

type updateFeatureOpts struct {
	errorHandler ErrorHandler
}

// UpdateFeatureOption is an option that can be passed to Layer.UpdateFeature
//
// Available options are:
//
// • ErrLogger
type UpdateFeatureOption interface {
	setUpdateFeatureOpt(ufo *updateFeatureOpts)
}

type deleteFeatureOpts struct {
	errorHandler ErrorHandler
}

// DeleteFeatureOption is an option that can be passed to Layer.DeleteFeature
//
// Available options are:
//
// • ErrLogger
type DeleteFeatureOption interface {
	setDeleteFeatureOpt(dfo *deleteFeatureOpts)
}

type featureCountOpts struct {
	errorHandler ErrorHandler
}

// FeatureCountOption is an option that can be passed to Layer.FeatureCount
//
// Available options are:
//
// • ErrLogger
type FeatureCountOption interface {
	setFeatureCountOpt(fco *featureCountOpts)
}

type setGeometryOpts struct {
	errorHandler ErrorHandler
}

// SetGeometryOption is an option that can be passed to Feature.SetGeometry and
// Feature.SetGeometryDirectly
//
// Available options are:
//
// • ErrLogger
type SetGeometryOption interface {
	setSetGeometryOpt(sgo *setGeometryOpts)
}

type executeSQLOpts struct {
	errorHandler ErrorHandler
}

// ExecuteSQLOption is an option that can be passed to Dataset.ExecuteSQL
//
// Available options are:
//
// • ErrLogger
type ExecuteSQLOption interface {
	setExecuteSQLOpt(eso *executeSQLOpts)
}

type createSpatialRefOpts struct {
	errorHandler ErrorHandler
}

// CreateSpatialRefOption is an option that can be passed when creating a new
// SpatialRef
//
// Available options are:
//
// • ErrLogger
type CreateSpatialRefOption interface {
	setCreateSpatialRefOpt(o *createSpatialRefOpts)
}

type srWKTOpts struct {
	errorHandler ErrorHandler
}

// WKTExportOption is an option that can be passed to SpatialRef.WKT()
//
// Available options are:
//
// • ErrLogger
type WKTExportOption interface {
	setWKTExportOpt(sro *srWKTOpts)
}

type trnOpts struct {
	errorHandler ErrorHandler
}

// TransformOption is an option that can be passed to NewTransform
//
// Available options are:
//
// • ErrLogger
type TransformOption interface {
	setTransformOpt(o *trnOpts)
}

type geometryTransformOpts struct {
	errorHandler ErrorHandler
}

// GeometryTransformOption is an option that can be passed to Geometry.Transform
//
// Available options are:
//
// • ErrLogger
type GeometryTransformOption interface {
	setGeometryTransformOpt(o *geometryTransformOpts)
}

type geometryReprojectOpts struct {
	errorHandler ErrorHandler
}

// GeometryReprojectOption is an option that can be passed to Geometry.Reproject
//
// Available options are:
//
// • ErrLogger
type GeometryReprojectOption interface {
	setGeometryReprojectOpt(o *geometryReprojectOpts)
}

type geometryWKTOpts struct {
	errorHandler ErrorHandler
}

// GeometryWKTOption is an option that can be passed to Geometry.WKT
//
// Available options are:
//
// • ErrLogger
type GeometryWKTOption interface {
	setGeometryWKTOpt(o *geometryWKTOpts)
}

type geometryWKBOpts struct {
	errorHandler ErrorHandler
}

// GeometryWKBOption is an option that can be passed to Geometry.WKB
//
// Available options are:
//
// • ErrLogger
type GeometryWKBOption interface {
	setGeometryWKBOpt(o *geometryWKBOpts)
}

type geojsonOpts struct {
	precision    int
	errorHandler ErrorHandler
}

// GeoJSONOption is an option that can be passed to Geometry.GeoJSON
//
// Available options are:
//
// • SignificantDigits
//
// • ErrLogger
type GeoJSONOption interface {
	setGeojsonOpt(gjo *geojsonOpts)
}

type simplifyOpts struct {
	errorHandler ErrorHandler
}

// SimplifyOption is an option that can be passed to Geometry.Simplify
//
// Available options are:
//
// • ErrLogger
type SimplifyOption interface {
	setSimplifyOpt(o *simplifyOpts)
}

type bufferOpts struct {
	errorHandler ErrorHandler
}

// BufferOption is an option that can be passed to Geometry.Buffer
//
// Available options are:
//
// • ErrLogger
type BufferOption interface {
	setBufferOpt(o *bufferOpts)
}

type newGeometryOpts struct {
	errorHandler ErrorHandler
}

// NewGeometryOption is an option that can be passed when creating a new
// Geometry
//
// Available options are:
//
// • ErrLogger
type NewGeometryOption interface {
	setNewGeometryOpt(o *newGeometryOpts)
}

type vsiOpenOpts struct {
	errorHandler ErrorHandler
}

// VSIOpenOption is an option that can be passed to VSIOpen
//
// Available options are:
//
// • ErrLogger
type VSIOpenOption interface {
	setVSIOpenOpt(o *vsiOpenOpts)
}

type vsiUnlinkOpts struct {
	errorHandler ErrorHandler
}

// VSIUnlinkOption is an option that can be passed to VSIUnlink
//
// Available options are:
//
// • ErrLogger
type VSIUnlinkOption interface {
	setVSIUnlinkOpt(o *vsiUnlinkOpts)
}

type siblingFilesOpt struct {
	files []string
}

// SiblingFiles specifies the list of files that may be opened alongside the
// principal dataset name.
//
// files must not contain a directory component (i.e. are expected to be in
// the same directory as the main dataset)
//
// SiblingFiles may be used in 3 different manners:
//
// • By default, i.e. by not using the option, gdalgo will consider that there
// are no sibling files at all and will prevent any scanning or probing of
// specific sibling files by passing a list of sibling files to gdal
// containing only the main file
//
// • By passing a list of files, only those files will be probed
//
// • By passing SiblingFiles() (i.e. with an empty list of files), the default
// gdal behavior of reading the directory content and/or probing for
// well-known sidecar filenames will be used
func SiblingFiles(files ...string) interface {
	OpenOption
} {
	return siblingFilesOpt{files}
}
func (sf siblingFilesOpt) setOpenOpt(oo *openOpts) {
	if len(sf.files) > 0 {
		oo.siblingFiles = append(oo.siblingFiles, sf.files...)
	} else {
		oo.siblingFiles = nil
	}
}

type driversOpt struct {
	drivers []string
}

// Drivers specifies the list of drivers that are allowed to try opening the
// dataset
func Drivers(drivers ...string) interface {
	OpenOption
} {
	return driversOpt{drivers}
}
func (do driversOpt) setOpenOpt(oo *openOpts) {
	oo.drivers = append(oo.drivers, do.drivers...)
}

type driverOpenOption struct {
	oo []string
}

// DriverOpenOption adds a list of KEY=VALUE driver specific open options (see
// gdal docs for each driver)
func DriverOpenOption(opts ...string) interface {
	OpenOption
} {
	return driverOpenOption{opts}
}
func (doo driverOpenOption) setOpenOpt(oo *openOpts) {
	oo.options = append(oo.options, doo.oo...)
}

type updateOpt struct{}

// Update is an OpenOption that instructs gdal to open the dataset for
// writing/updating
func Update() interface {
	OpenOption
} {
	return updateOpt{}
}

func (uo updateOpt) setOpenOpt(oo *openOpts) {
	//unset readonly
	oo.flags = oo.flags &^ 0x00 //RO is 0x00
	oo.flags |= 0x01            //GDAL_OF_UPDATE
}

type vectorOnlyOpt struct{}

// VectorOnly limits drivers to vector ones (incompatible with RasterOnly() )
func VectorOnly() interface {
	OpenOption
} {
	return vectorOnlyOpt{}
}
func (vo vectorOnlyOpt) setOpenOpt(oo *openOpts) {
	oo.flags |= 0x04 //GDAL_OF_VECTOR
}

type rasterOnlyOpt struct{}

// RasterOnly limits drivers to raster ones (incompatible with VectorOnly() )
func RasterOnly() interface {
	OpenOption
} {
	return rasterOnlyOpt{}
}
func (ro rasterOnlyOpt) setOpenOpt(oo *openOpts) {
	oo.flags |= 0x02 //GDAL_OF_RASTER
}

type configOpts struct {
	config []string
}

// ConfigOption sets a configuration option for a gdal library call. See the
// specific gdal function doc page and specific driver docs for allowed
// values.
//
// Notable options are GDAL_NUM_THREADS=8
//
// The option is set thread-locally for the duration of the wrapped native
// call only.
func ConfigOption(cfgs ...string) interface {
	BuildOverviewsOption
	DatasetCreateOption
	DatasetTranslateOption
	DatasetCreateMaskOption
	BandCreateMaskOption
	OpenOption
	DatasetIOOption
	BandIOOption
	errorAndLoggingOption
} {
	return configOpts{cfgs}
}

func (co configOpts) setBuildOverviewsOpt(bo *buildOvrOpts) {
	bo.config = append(bo.config, co.config...)
}
func (co configOpts) setDatasetCreateOpt(dc *dsCreateOpts) {
	dc.config = append(dc.config, co.config...)
}
func (co configOpts) setDatasetTranslateOpt(dc *dsTranslateOpts) {
	dc.config = append(dc.config, co.config...)
}
func (co configOpts) setDatasetCreateMaskOpt(dcm *dsCreateMaskOpts) {
	dcm.config = append(dcm.config, co.config...)
}
func (co configOpts) setBandCreateMaskOpt(bcm *bandCreateMaskOpts) {
	bcm.config = append(bcm.config, co.config...)
}
func (co configOpts) setOpenOpt(oo *openOpts) {
	oo.config = append(oo.config, co.config...)
}
func (co configOpts) setDatasetIOOpt(oo *datasetIOOpts) {
	oo.config = append(oo.config, co.config...)
}
func (co configOpts) setBandIOOpt(oo *bandIOOpts) {
	oo.config = append(oo.config, co.config...)
}
func (co configOpts) setErrorAndLoggingOpt(elo *errorAndLoggingOpts) {
	elo.config = append(elo.config, co.config...)
}

type creationOpts struct {
	creation []string
}

// CreationOption are options to pass to a driver when creating a dataset, to
// be passed in the form KEY=VALUE
//
// Examples are: BLOCKXSIZE=256, COMPRESS=LZW, NUM_THREADS=8, etc...
func CreationOption(opts ...string) interface {
	DatasetCreateOption
	DatasetTranslateOption
} {
	return creationOpts{opts}
}

func (co creationOpts) setDatasetCreateOpt(dc *dsCreateOpts) {
	dc.creation = append(dc.creation, co.creation...)
}
func (co creationOpts) setDatasetTranslateOpt(dc *dsTranslateOpts) {
	dc.creation = append(dc.creation, co.creation...)
}

type bandOpt struct {
	bnds []int
}

// Bands specifies which dataset bands should be read/written. By default all
// dataset bands are read/written.
//
/// Note: bnds is 0-indexed so as to be consistent with Dataset.Bands(),
// whereas in GDAL terminology, bands are 1-indexed. i.e. for a 3 band dataset
// you should pass Bands(0,1,2) and not Bands(1,2,3).
func Bands(bnds ...int) interface {
	DatasetIOOption
	BuildOverviewsOption
} {
	ib := make([]int, len(bnds))
	for i := range bnds {
		ib[i] = bnds[i] + 1
	}
	return bandOpt{ib}
}

func (bo bandOpt) setDatasetIOOpt(ro *datasetIOOpts) {
	ro.bands = bo.bnds
}
func (bo bandOpt) setBuildOverviewsOpt(ovr *buildOvrOpts) {
	ovr.bands = bo.bnds
}

type bandSpacingOpt struct {
	sp int
}
type pixelSpacingOpt struct {
	sp int
}
type lineSpacingOpt struct {
	sp int
}

func (so bandSpacingOpt) setDatasetIOOpt(ro *datasetIOOpts) {
	ro.bandSpacing = so.sp
}
func (so pixelSpacingOpt) setDatasetIOOpt(ro *datasetIOOpts) {
	ro.pixelSpacing = so.sp
}
func (so lineSpacingOpt) setDatasetIOOpt(ro *datasetIOOpts) {
	ro.lineSpacing = so.sp
}
func (so lineSpacingOpt) setBandIOOpt(bo *bandIOOpts) {
	bo.lineSpacing = so.sp
}
func (so pixelSpacingOpt) setBandIOOpt(bo *bandIOOpts) {
	bo.pixelSpacing = so.sp
}

// BandSpacing sets the number of elements from one pixel to the next band of
// the same pixel. If not provided, it will be calculated from the buffer size
func BandSpacing(stride int) interface {
	DatasetIOOption
} {
	return bandSpacingOpt{stride}
}

// PixelSpacing sets the number of elements from one pixel to the next pixel
// in the same row. If not provided, it will be calculated from the number of
// bands
func PixelSpacing(stride int) interface {
	DatasetIOOption
	BandIOOption
} {
	return pixelSpacingOpt{stride}
}

// LineSpacing sets the number of elements from one pixel to the pixel of the
// same band one row below. If not provided, it will be calculated from the
// number of bands and buffer width
func LineSpacing(stride int) interface {
	DatasetIOOption
	BandIOOption
} {
	return lineSpacingOpt{stride}
}

type windowOpt struct {
	sx, sy int
}

// Window specifies the size of the dataset window to read/write. By default
// use the size of the input/output buffer (i.e. no resampling)
func Window(sx, sy int) interface {
	DatasetIOOption
	BandIOOption
} {
	return windowOpt{sx, sy}
}

func (wo windowOpt) setDatasetIOOpt(ro *datasetIOOpts) {
	ro.dsWidth = wo.sx
	ro.dsHeight = wo.sy
}
func (wo windowOpt) setBandIOOpt(ro *bandIOOpts) {
	ro.dsWidth = wo.sx
	ro.dsHeight = wo.sy
}

type bandInterleaveOp struct{}

// BandInterleaved makes ReadDataset return a band interleaved buffer instead
// of a pixel interleaved one.
//
// For example, pixels of a three band RGB image will be returned in order
// r1r2r3...rn, g1g2g3...gn, b1b2b3...bn instead of the default
// r1g1b1, r2g2b2, r3g3b3, ... rngnbn
//
// BandInterleaved should not be used in conjunction with BandSpacing,
// LineSpacing, or PixelSpacing
func BandInterleaved() interface {
	DatasetIOOption
} {
	return bandInterleaveOp{}
}

func (bio bandInterleaveOp) setDatasetIOOpt(ro *datasetIOOpts) {
	ro.bandInterleave = true
}

type minSizeOpt struct {
	s int
}

// MinSize makes BuildOverviews automatically compute the overview levels
// until the smallest overview size is less than s.
//
// Should not be used together with Levels()
func MinSize(s int) interface {
	BuildOverviewsOption
} {
	return minSizeOpt{s}
}

func (ms minSizeOpt) setBuildOverviewsOpt(bo *buildOvrOpts) {
	bo.minSize = ms.s
}

type resamplingOpt struct {
	m ResamplingAlg
}

// Resampling defines the resampling algorithm to use.
// If unset will usually default to NEAREST. See gdal docs for which
// algorithms are available.
func Resampling(alg ResamplingAlg) interface {
	BuildOverviewsOption
	DatasetIOOption
	BandIOOption
} {
	return resamplingOpt{alg}
}
func (ro resamplingOpt) setBuildOverviewsOpt(bo *buildOvrOpts) {
	bo.resampling = ro.m
}
func (ro resamplingOpt) setDatasetIOOpt(io *datasetIOOpts) {
	io.resampling = ro.m
}
func (ro resamplingOpt) setBandIOOpt(io *bandIOOpts) {
	io.resampling = ro.m
}

type levelsOpt struct {
	lvl []int
}

// Levels set the overview levels to be computed. This is usually:
//
//	Levels(2,4,8,16,32)
func Levels(levels ...int) interface {
	BuildOverviewsOption
} {
	return levelsOpt{levels}
}
func (lo levelsOpt) setBuildOverviewsOpt(bo *buildOvrOpts) {
	slevels := make([]int, len(lo.lvl))
	copy(slevels, lo.lvl)
	sort.Slice(slevels, func(i, j int) bool {
		return slevels[i] < slevels[j]
	})
	bo.levels = slevels
}

type domainOpt struct {
	domain string
}

// Domain specifies the gdal metadata domain to use
func Domain(mdDomain string) interface {
	MetadataOption
} {
	return domainOpt{mdDomain}
}
func (mdo domainOpt) setMetadataOpt(mo *metadataOpts) {
	mo.domain = mdo.domain
}

type significantDigits int

func (sd significantDigits) setGeojsonOpt(o *geojsonOpts) {
	o.precision = int(sd)
}

// SignificantDigits sets the number of significant digits after the decimal
// separator that should be kept for geojson output
func SignificantDigits(n int) interface {
	GeoJSONOption
} {
	return significantDigits(n)
}
