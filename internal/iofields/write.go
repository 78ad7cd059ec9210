package iofields

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"maps"
	"path/filepath"

	"github.com/gnames/gnfmt"
	"github.com/gnames/gnplet/internal/iofs"
	"github.com/gnames/gnplet/pkg/plet"
	"github.com/xuri/excelize/v2"
)

// Output formats.
const (
	FormatGeoJSON = "geojson"
	FormatCSV     = "csv"
	FormatXLSX    = "xlsx"
)

const (
	conditionsProp = "plet_conditions"
	issuesProp     = "plet_issues"
	sheetName      = "plet"
)

// Properties returns output properties of a feature: its source
// properties, every derived value (nil when undefined) and the reported
// conditions.
func Properties(f Feature, r plet.Result) map[string]any {
	res := make(map[string]any, len(f.Properties)+len(plet.ColumnNames())+2)
	maps.Copy(res, f.Properties)
	if _, ok := newProps(f.Properties).get("siteid", "field_id"); !ok {
		res["field_id"] = f.Record.ID
	}
	for _, c := range r.DerivedColumns() {
		res[c.Name] = c.Value()
	}
	conds := r.Conditions
	if conds == nil {
		conds = []plet.Condition{}
	}
	res[conditionsProp] = conds
	if len(r.Issues) > 0 {
		res[issuesProp] = r.Issues
	}
	return res
}

// Collection builds the output FeatureCollection. Features and results
// must be in the same order.
func Collection(feats []Feature, res []plet.Result) (FeatureCollection, error) {
	if len(feats) != len(res) {
		return FeatureCollection{}, fmt.Errorf(
			"%d features and %d results", len(feats), len(res))
	}
	fc := FeatureCollection{
		Type:     "FeatureCollection",
		Features: make([]GeoJSONField, len(feats)),
	}
	for i, f := range feats {
		geometry := f.Geometry
		if len(geometry) == 0 {
			geometry = []byte("null")
		}
		fc.Features[i] = GeoJSONField{
			Type:       "Feature",
			Properties: Properties(f, res[i]),
			Geometry:   geometry,
		}
	}
	return fc, nil
}

// EncodeGeoJSON writes results as a FeatureCollection.
func EncodeGeoJSON(w io.Writer, feats []Feature, res []plet.Result) error {
	fc, err := Collection(feats, res)
	if err != nil {
		return err
	}
	enc := gnfmt.GNjson{Pretty: true}
	bs, err := enc.Encode(fc)
	if err != nil {
		return err
	}
	_, err = w.Write(bs)
	return err
}

// EncodeCSV writes one row per result with a stable header. Undefined
// values are empty cells.
func EncodeCSV(w io.Writer, res []plet.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(append(plet.ColumnNames(), conditionsProp)); err != nil {
		return err
	}
	for _, r := range res {
		cols := r.Columns()
		row := make([]string, 0, len(cols)+1)
		for _, c := range cols {
			row = append(row, c.String())
		}
		row = append(row, conditionsCell(r))
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// SaveXLSX writes results to a workbook with a single sheet.
func SaveXLSX(path string, res []plet.Result) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return err
	}

	header := make([]any, 0, len(plet.ColumnNames())+1)
	for _, v := range plet.ColumnNames() {
		header = append(header, v)
	}
	header = append(header, conditionsProp)
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return err
	}

	for i, r := range res {
		cols := r.Columns()
		row := make([]any, 0, len(cols)+1)
		for _, c := range cols {
			row = append(row, c.Value())
		}
		row = append(row, conditionsCell(r))
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err = f.SetSheetRow(sheetName, cell, &row); err != nil {
			return err
		}
	}

	if err := iofs.EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}
	return f.SaveAs(path)
}

func conditionsCell(r plet.Result) string {
	var buf bytes.Buffer
	for i, c := range r.Conditions {
		if i > 0 {
			buf.WriteString("; ")
		}
		buf.WriteString(c.String())
	}
	for _, is := range r.Issues {
		if buf.Len() > 0 {
			buf.WriteString("; ")
		}
		buf.WriteString(is.String())
	}
	return buf.String()
}

// Write saves results to dir in every requested format. Files are named
// stem.geojson, stem.csv and stem.xlsx. It returns the written paths.
func Write(
	dir, stem string,
	formats []string,
	feats []Feature,
	res []plet.Result,
) ([]string, error) {
	var paths []string
	for _, format := range formats {
		path := filepath.Join(dir, stem+"."+format)
		var err error
		switch format {
		case FormatGeoJSON:
			var buf bytes.Buffer
			if err = EncodeGeoJSON(&buf, feats, res); err == nil {
				err = iofs.WriteFile(path, buf.Bytes())
			}
		case FormatCSV:
			var buf bytes.Buffer
			if err = EncodeCSV(&buf, res); err == nil {
				err = iofs.WriteFile(path, buf.Bytes())
			}
		case FormatXLSX:
			err = SaveXLSX(path, res)
		default:
			err = fmt.Errorf("unknown format %q", format)
		}
		if err != nil {
			return paths, WriteError(path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
