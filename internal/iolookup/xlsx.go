package iolookup

import (
	"strings"

	"github.com/gnames/gnplet/pkg/lookup"
	"github.com/xuri/excelize/v2"
)

// ReadXLSX reads lookup tables from a workbook with a sheet per table.
// Sheets are matched by table name, other sheets are ignored.
func ReadXLSX(path string) ([]lookup.Raw, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, LoadError(path, err)
	}
	defer f.Close()

	sheets := make(map[string]string)
	for _, v := range f.GetSheetList() {
		sheets[strings.ToLower(strings.TrimSpace(v))] = v
	}

	var res []lookup.Raw
	for _, name := range lookup.AllNames() {
		sheet, ok := sheets[name.String()]
		if !ok {
			continue
		}
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, LoadError(path+"#"+sheet, err)
		}
		raw := lookup.Raw{Name: name}
		if len(rows) > 0 {
			raw.Header = rows[0]
			raw.Rows = rows[1:]
		}
		res = append(res, raw)
	}
	return res, nil
}
