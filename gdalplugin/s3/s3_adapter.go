package main

import "C"

import (
	"context"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/airbusgeo/osio"
	"github.com/airbusgeo/osio/s3"
	"github.com/geoforge/gdalgo"
)

var ctx context.Context

func blockSize() string {
	s := strings.TrimSpace(os.Getenv("GDALGO_BLOCKSIZE"))
	if s == "" {
		return "512k"
	}
	return s
}

func numBlocks() int {
	s := os.Getenv("GDALGO_NUMBLOCKS")
	s = strings.TrimSpace(s)
	if len(s) == 0 {
		return 1024
	}
	ii, err := strconv.Atoi(s)
	if err != nil || ii <= 0 {
		log.Printf("failed to parse GDALGO_NUMBLOCKS %s", s)
		return 0
	}
	return ii
}

// GDALRegister_s3 is called by gdal when loading this shared library. It is
// not meant to be used directly from go.
//
//export GDALRegister_s3
func GDALRegister_s3() {
	ctx = context.Background()
	opts := []osio.AdapterOption{}
	if bs := blockSize(); bs != "" {
		opts = append(opts, osio.BlockSize(bs))
	}
	if nb := numBlocks(); nb > 0 {
		opts = append(opts, osio.NumCachedBlocks(nb))
	}
	s3h, err := s3.Handle(ctx)
	if err != nil {
		log.Printf("s3.handle() failed: %v", err)
		return
	}
	sLog := os.Getenv("GDALGO_LOG")
	if sLog != "" && strings.ToUpper(sLog) != "FALSE" {
		opts = append(opts, osio.WithLogger(osio.StdLogger))
	}
	s3a, err := osio.NewAdapter(s3h, opts...)
	if err != nil {
		log.Printf("osio.newadapter() failed: %v", err)
		return
	}
	err = gdalgo.RegisterVSIAdapter("s3://", s3a)
	if err != nil {
		log.Printf("gdalgo.registervsiadapter() failed: %v", err)
		return
	}
	go func() {
		<-ctx.Done()
	}()
}

func main() {}
