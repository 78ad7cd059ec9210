package iofields

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/encoding/geojson"
	"github.com/ctessum/geom/encoding/shp"
	"github.com/gnames/gnplet/pkg/num"
)

// ReadShapefile reads fields from an ESRI shapefile. Attribute values are
// carried to the output as strings. The coordinate system comes from the
// .prj file next to it.
func ReadShapefile(path string) ([]Feature, error) {
	d, err := shp.NewDecoder(path)
	if err != nil {
		return nil, ReadError(path, err)
	}
	defer d.Close()

	fields := d.Reader.Fields()
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.String()
	}

	var (
		attrs []map[string]any
		geoms []json.RawMessage
		fps   []footprint
	)
	for {
		g, row, more := d.DecodeRowFields(names...)
		if !more || d.Error() != nil {
			break
		}

		m := make(map[string]any, len(row))
		for k, v := range row {
			v = strings.TrimSpace(strings.Trim(v, "\x00"))
			if v == "" {
				continue
			}
			m[k] = v
		}

		fp := footprint{
			area: num.Undef(),
			note: "area_ac is missing and the feature has no geometry",
		}
		var raw []byte
		if g != nil {
			if p, ok := g.(geom.Polygonal); ok {
				fp = polygonFootprint(p)
			} else {
				kind := strings.TrimPrefix(fmt.Sprintf("%T", g), "geom.")
				fp = unsupportedGeometry(kind)
				fp.bounds = g.Bounds()
			}
			if raw, err = geojson.Encode(g); err != nil {
				raw = nil
			}
		}

		attrs = append(attrs, m)
		geoms = append(geoms, raw)
		fps = append(fps, fp)
	}
	if err = d.Error(); err != nil {
		return nil, DecodeError(path, err)
	}

	fps = areas(prjCRS(path), fps)
	res := make([]Feature, len(attrs))
	for i, m := range attrs {
		res[i] = Feature{
			Record:     toRecord(m, fps[i], i),
			Properties: m,
			Geometry:   geoms[i],
		}
	}
	return res, nil
}
