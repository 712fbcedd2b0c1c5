package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/airbusgeo/cogger"
	"github.com/airbusgeo/osio"
	"github.com/geoforge/gdalgo"
	"github.com/spf13/cobra"
)

// gcsLocation is a parsed gs://bucket/object URI.
type gcsLocation struct {
	bucket string
	object string
}

// parseGCSURI splits a gs:// URI into bucket and object. ok is false for
// anything that is not a gs:// URI with both a bucket and an object.
func parseGCSURI(uri string) (loc gcsLocation, ok bool) {
	rest, found := strings.CutPrefix(uri, "gs://")
	if !found {
		return gcsLocation{}, false
	}
	bucket, object, found := strings.Cut(rest, "/")
	if !found || bucket == "" {
		return gcsLocation{}, false
	}
	object = strings.Trim(object, "/")
	if object == "" {
		return gcsLocation{}, false
	}
	return gcsLocation{bucket: bucket, object: object}, true
}

type cogifyConfig struct {
	outfile         string
	blockSize       string
	numCachedBlocks int
	tmpdir          string
	overviews       bool
}

var cfg cogifyConfig

var cogCommand = &cobra.Command{
	Use:   "cogify [flags] -- infile [gdal switches]*",
	Short: "convert a generic tiff to COG",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return cogify(cmd.Context(), cfg, args[0], args[1:])
	},
}

func init() {
	flags := cogCommand.Flags()
	flags.StringVarP(&cfg.outfile, "out", "o", "out-cog.tif", "output cog name")
	flags.StringVarP(&cfg.blockSize, "gs.blocksize", "b", "512k", "gs:// block size")
	flags.IntVarP(&cfg.numCachedBlocks, "gs.numblocks", "n", 512, "number of gs:// blocks to cache")
	flags.StringVar(&cfg.tmpdir, "tmp", ".", "directory to use for temp file")
	flags.BoolVar(&cfg.overviews, "ovr", true, "compute overviews")
}

func main() {
	if err := cogCommand.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setupGCS creates the storage client and plugs a caching gs:// handler into
// the VSI layer so that gdal can read the input directly from the bucket.
func setupGCS(ctx context.Context, cfg cogifyConfig) (*storage.Client, error) {
	stcl, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create gcs storage client: %w", err)
	}
	gs, err := osio.GCSHandle(ctx, osio.GCSClient(stcl))
	if err != nil {
		return nil, fmt.Errorf("osio.gcshandle: %w", err)
	}
	gsa, err := osio.NewAdapter(gs, osio.BlockSize(cfg.blockSize), osio.NumCachedBlocks(cfg.numCachedBlocks))
	if err != nil {
		return nil, fmt.Errorf("osio.newadapter: %w", err)
	}
	if err := gdalgo.RegisterVSIAdapter("gs://", gsa); err != nil {
		return nil, fmt.Errorf("gdalgo.registervsiadapter: %w", err)
	}
	return stcl, nil
}

// translateToTemp runs the gdal translation of infile into a tiled bigtiff in
// cfg.tmpdir and returns the temp file path. The caller removes the file.
func translateToTemp(cfg cogifyConfig, infile string, gdalArgs []string) (string, error) {
	inds, err := gdalgo.Open(infile, gdalgo.RasterOnly())
	if err != nil {
		return "", fmt.Errorf("open %s: %w", infile, err)
	}
	defer inds.Close()

	if len(gdalArgs) == 0 {
		gdalArgs = []string{
			"-co", "BLOCKXSIZE=256",
			"-co", "BLOCKYSIZE=256",
			"-co", "COMPRESS=LZW",
		}
	}
	gdalArgs = append(gdalArgs,
		"-co", "TILED=YES",
		"-co", "BIGTIFF=YES",
		"-of", "GTiff",
	)

	tmpf, err := os.CreateTemp(cfg.tmpdir, "*.tif")
	if err != nil {
		return "", err
	}
	tmpf.Close()
	tmpfname := tmpf.Name()

	outds, err := inds.Translate(tmpfname, gdalArgs)
	if err != nil {
		os.Remove(tmpfname)
		return "", fmt.Errorf("translate: %w", err)
	}
	if cfg.overviews {
		if err := outds.BuildOverviews(); err != nil {
			outds.Close()
			os.Remove(tmpfname)
			return "", fmt.Errorf("build overviews: %w", err)
		}
	}
	if err := outds.Close(); err != nil {
		os.Remove(tmpfname)
		return "", fmt.Errorf("close temp tif: %w", err)
	}
	return tmpfname, nil
}

func cogify(ctx context.Context, cfg cogifyConfig, infile string, gdalArgs []string) error {
	_, inGCS := parseGCSURI(infile)
	outLoc, outGCS := parseGCSURI(cfg.outfile)

	var stcl *storage.Client
	if inGCS || outGCS {
		var err error
		if stcl, err = setupGCS(ctx, cfg); err != nil {
			return err
		}
	}
	gdalgo.RegisterAll()

	tmpfname, err := translateToTemp(cfg, infile, gdalArgs)
	if err != nil {
		return err
	}
	defer os.Remove(tmpfname)

	tmpf, err := os.Open(tmpfname)
	if err != nil {
		return fmt.Errorf("re-open temp tif %s: %w", tmpfname, err)
	}
	defer tmpf.Close()

	var out io.WriteCloser
	if outGCS {
		out = stcl.Bucket(outLoc.bucket).Object(outLoc.object).NewWriter(ctx)
	} else {
		if out, err = os.Create(cfg.outfile); err != nil {
			return fmt.Errorf("create %s: %w", cfg.outfile, err)
		}
	}
	if err := cogger.Rewrite(out, tmpf); err != nil {
		return fmt.Errorf("cogger.rewrite: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close %s: %w", cfg.outfile, err)
	}
	return nil
}
