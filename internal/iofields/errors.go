package iofields

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gnplet/pkg/errcode"
)

// ReadError creates an error for a field file that cannot be opened.
func ReadError(path string, err error) error {
	msg := "Cannot read fields from <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.FieldsReadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot read %s: %w", fn, path, err),
	}
}

// DecodeError creates an error for fields that are not a valid
// FeatureCollection or shapefile.
func DecodeError(src string, err error) error {
	msg := `Cannot decode fields from <em>%s</em>

<em>How to fix:</em>
  1. Fields must be a GeoJSON FeatureCollection or an ESRI shapefile
  2. Geometries must be Polygon or MultiPolygon`
	vars := []any{src}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.FieldsDecodeError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot decode %s: %w", fn, src, err),
	}
}

// WriteError creates an error for an output file that cannot be written.
func WriteError(path string, err error) error {
	msg := "Cannot write results to <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.FieldsWriteError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot write %s: %w", fn, path, err),
	}
}
