// Package iofields reads agricultural fields from GeoJSON and ESRI
// shapefiles and writes model results as GeoJSON, CSV and XLSX.
package iofields

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gnames/gnplet/pkg/field"
)

// AcreM2 is the number of square meters in an acre.
const AcreM2 = 4046.86

// Feature is one input field: the record the model runs on plus the
// source properties and geometry that are carried to the output.
type Feature struct {
	Record     field.Record
	Properties map[string]any
	Geometry   json.RawMessage
}

// Read reads fields from a GeoJSON (.geojson, .json) or shapefile (.shp)
// path.
func Read(path string) ([]Feature, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".geojson", ".json":
		return ReadGeoJSON(path)
	case ".shp":
		return ReadShapefile(path)
	default:
		return nil, ReadError(path,
			fmt.Errorf("unsupported file extension %q", ext))
	}
}
