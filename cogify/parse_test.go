package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseGCSURI(t *testing.T) {
	tests := []struct {
		name   string
		uri    string
		bucket string
		object string
		ok     bool
	}{
		{"local path", "/tmp/in.tif", "", "", false},
		{"wrong scheme", "s3://bucket/object", "", "", false},
		{"bare scheme", "gs://", "", "", false},
		{"bucket only", "gs://bucket", "", "", false},
		{"bucket trailing slash", "gs://bucket/", "", "", false},
		{"missing bucket", "gs:///object", "", "", false},
		{"simple object", "gs://bucket/in.tif", "bucket", "in.tif", true},
		{"nested object", "gs://bucket/a/b/in.tif", "bucket", "a/b/in.tif", true},
		{"trailing slash stripped", "gs://bucket/a/b/", "bucket", "a/b", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, ok := parseGCSURI(tt.uri)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.bucket, loc.bucket)
			assert.Equal(t, tt.object, loc.object)
		})
	}
}
