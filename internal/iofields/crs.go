package iofields

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/proj"
	"github.com/gnames/gnplet/pkg/num"
)

// crsKind tells whether planar coordinates of a collection are meters of
// a projection or longitude/latitude degrees.
type crsKind int

const (
	crsUnknown crsKind = iota
	crsProjected
	crsGeographic
)

// noteGeographic is the condition of a field whose area cannot be measured
// because its coordinates are longitude/latitude.
const noteGeographic = "area_ac is missing and coordinates are " +
	"longitude/latitude, reproject fields to an equal-area CRS " +
	"such as EPSG:5070"

// geographicEPSG are EPSG codes of common geographic coordinate systems.
var geographicEPSG = map[string]struct{}{
	"4326": {}, // WGS 84
	"4269": {}, // NAD83
	"4267": {}, // NAD27
	"4258": {}, // ETRS89
	"4617": {}, // NAD83(CSRS)
	"4283": {}, // GDA94
	"4674": {}, // SIRGAS 2000
}

var epsgRe = regexp.MustCompile(`(?i)EPSG:{1,2}(?:[\d.]*:)?(\d+)`)

// footprint is what the model needs from a feature geometry.
type footprint struct {
	// area is the planar area in squared units of the coordinates.
	area   num.Float
	bounds *geom.Bounds
	// note explains a geometry the area cannot come from.
	note string
}

func polygonFootprint(p geom.Polygonal) footprint {
	var area float64
	for _, v := range p.Polygons() {
		if a := v.Area(); a < 0 {
			area -= a
		} else {
			area += a
		}
	}
	return footprint{area: num.Of(area), bounds: p.Bounds()}
}

// srKind classifies a WKT or PROJ.4 definition.
func srKind(def string) crsKind {
	def = strings.TrimSpace(def)
	if def == "" {
		return crsUnknown
	}
	sr, err := proj.Parse(def)
	if err == nil {
		if sr.Name == "longlat" {
			return crsGeographic
		}
		return crsProjected
	}
	switch up := strings.ToUpper(def); {
	case strings.HasPrefix(up, "PROJCS"):
		return crsProjected
	case strings.HasPrefix(up, "GEOGCS"):
		return crsGeographic
	}
	return crsUnknown
}

// nameKind classifies a named CRS of the legacy GeoJSON "crs" member, for
// example "urn:ogc:def:crs:EPSG::5070" or "EPSG:4326".
func nameKind(name string) crsKind {
	name = strings.TrimSpace(name)
	if strings.Contains(strings.ToUpper(name), "CRS84") {
		return crsGeographic
	}
	if m := epsgRe.FindStringSubmatch(name); m != nil {
		if _, ok := geographicEPSG[m[1]]; ok {
			return crsGeographic
		}
		return crsProjected
	}
	return srKind(name)
}

// geoJSONCRS classifies the "crs" member of a FeatureCollection.
func geoJSONCRS(crs any) crsKind {
	m, ok := crs.(map[string]any)
	if !ok {
		return crsUnknown
	}
	props, _ := m["properties"].(map[string]any)
	name, _ := props["name"].(string)
	return nameKind(name)
}

// prjCRS classifies the .prj file next to a shapefile. A missing file
// gives crsUnknown.
func prjCRS(shpPath string) crsKind {
	path := strings.TrimSuffix(shpPath, ".shp") + ".prj"
	if strings.HasSuffix(shpPath, ".SHP") {
		path = strings.TrimSuffix(shpPath, ".SHP") + ".PRJ"
	}
	bs, err := os.ReadFile(path)
	if err != nil {
		return crsUnknown
	}
	return srKind(string(bs))
}

// resolveCRS decides an unknown CRS from coordinates: a collection that
// fits entirely into longitude/latitude ranges is geographic.
func resolveCRS(kind crsKind, fps []footprint) crsKind {
	if kind != crsUnknown {
		return kind
	}
	b := geom.NewBounds()
	for _, v := range fps {
		b.Extend(v.bounds)
	}
	if b.Empty() {
		return crsProjected
	}
	if b.Min.X >= -180 && b.Max.X <= 180 && b.Min.Y >= -90 && b.Max.Y <= 90 {
		return crsGeographic
	}
	return crsProjected
}

// areas converts footprints to areas in square meters. Geographic
// coordinates give undefined areas with a note.
func areas(kind crsKind, fps []footprint) []footprint {
	kind = resolveCRS(kind, fps)
	res := make([]footprint, len(fps))
	for i, v := range fps {
		res[i] = v
		if kind == crsGeographic && v.area.IsDefined() {
			res[i].area = num.Undef()
			res[i].note = noteGeographic
		}
	}
	return res
}

func unsupportedGeometry(kind string) footprint {
	return footprint{
		area: num.Undef(),
		note: fmt.Sprintf("area_ac is missing and %s geometry has no area", kind),
	}
}
