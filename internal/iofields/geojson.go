package iofields

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/encoding/geojson"
	"github.com/gnames/gnfmt"
	"github.com/gnames/gnplet/pkg/num"
)

// FeatureCollection is a GeoJSON feature collection with geometries kept
// as raw JSON.
type FeatureCollection struct {
	Type     string         `json:"type"`
	CRS      any            `json:"crs,omitempty"`
	Features []GeoJSONField `json:"features"`
}

// GeoJSONField is a GeoJSON feature.
type GeoJSONField struct {
	Type       string          `json:"type"`
	ID         any             `json:"id,omitempty"`
	Properties map[string]any  `json:"properties"`
	Geometry   json.RawMessage `json:"geometry"`
}

type rawGeometry struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

// ReadGeoJSON reads a FeatureCollection file.
func ReadGeoJSON(path string) ([]Feature, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ReadError(path, err)
	}
	defer f.Close()

	res, err := DecodeGeoJSON(f)
	if err != nil {
		return nil, DecodeError(path, err)
	}
	return res, nil
}

// DecodeGeoJSON decodes a FeatureCollection. Features keep their order.
func DecodeGeoJSON(r io.Reader) ([]Feature, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var fc FeatureCollection
	enc := gnfmt.GNjson{}
	if err = enc.Decode(data, &fc); err != nil {
		return nil, err
	}
	if fc.Type != "FeatureCollection" {
		return nil, fmt.Errorf("expected FeatureCollection, got %q", fc.Type)
	}

	fps := make([]footprint, len(fc.Features))
	for i, v := range fc.Features {
		fps[i] = geometryFootprint(v.Geometry)
	}
	fps = areas(geoJSONCRS(fc.CRS), fps)

	res := make([]Feature, len(fc.Features))
	for i, v := range fc.Features {
		if v.Properties == nil {
			v.Properties = make(map[string]any)
		}
		if _, ok := newProps(v.Properties).get("siteid", "field_id"); !ok &&
			v.ID != nil {
			v.Properties["field_id"] = v.ID
		}
		res[i] = Feature{
			Record:     toRecord(v.Properties, fps[i], i),
			Properties: v.Properties,
			Geometry:   v.Geometry,
		}
	}
	return res, nil
}

// geometryFootprint measures a Polygon or MultiPolygon in the units of its
// coordinates. Other or broken geometries get a note instead of an area.
func geometryFootprint(raw json.RawMessage) footprint {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return footprint{
			area: num.Undef(),
			note: "area_ac is missing and the feature has no geometry",
		}
	}

	var g rawGeometry
	if err := json.Unmarshal(raw, &g); err != nil {
		return unsupportedGeometry("malformed")
	}

	switch g.Type {
	case "Polygon":
		gg, err := geojson.Decode(raw)
		if err != nil {
			return unsupportedGeometry("malformed Polygon")
		}
		p, ok := gg.(geom.Polygonal)
		if !ok {
			return unsupportedGeometry("malformed Polygon")
		}
		return polygonFootprint(p)
	case "MultiPolygon":
		var coords [][][][]float64
		if err := json.Unmarshal(g.Coordinates, &coords); err != nil {
			return unsupportedGeometry("malformed MultiPolygon")
		}
		mp := make(geom.MultiPolygon, len(coords))
		for i, poly := range coords {
			mp[i] = toPolygon(poly)
		}
		return polygonFootprint(mp)
	default:
		return unsupportedGeometry(g.Type)
	}
}

func toPolygon(rings [][][]float64) geom.Polygon {
	res := make(geom.Polygon, len(rings))
	for i, ring := range rings {
		path := make(geom.Path, 0, len(ring))
		for _, pt := range ring {
			if len(pt) < 2 {
				continue
			}
			path = append(path, geom.Point{X: pt[0], Y: pt[1]})
		}
		res[i] = path
	}
	return res
}
