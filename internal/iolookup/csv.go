package iolookup

import (
	"encoding/csv"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gnames/gnplet/pkg/lookup"
)

// ReadDir reads lookup tables from a directory of CSV files named after
// the tables (cn.csv, usle.csv, ...). Missing files are skipped, the
// lookup repository decides whether a table is required.
func ReadDir(dir string) ([]lookup.Raw, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, LoadError(dir, err)
	}
	if !info.IsDir() {
		return nil, LoadError(dir, errors.New("not a directory"))
	}

	var res []lookup.Raw
	for _, name := range lookup.AllNames() {
		path := filepath.Join(dir, name.String()+".csv")
		raw, err := readCSV(path, name)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, LoadError(path, err)
		}
		res = append(res, raw)
	}
	return res, nil
}

func readCSV(path string, name lookup.Name) (lookup.Raw, error) {
	res := lookup.Raw{Name: name}

	f, err := os.Open(path)
	if err != nil {
		return res, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	rows, err := r.ReadAll()
	if err != nil {
		return res, err
	}
	if len(rows) == 0 {
		return res, nil
	}
	res.Header = rows[0]
	res.Rows = rows[1:]
	return res, nil
}
