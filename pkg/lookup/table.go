package lookup

import (
	"fmt"
	"strconv"
	"strings"
)

const keySep = "\x1f"

// Table is an immutable table keyed by a composite string key.
type Table[R any] struct {
	name Name
	rows map[string]R
}

func newTable[R any](
	name Name,
	rows []R,
	key func(R) []string,
) (*Table[R], error) {
	res := &Table[R]{name: name, rows: make(map[string]R, len(rows))}
	for i, r := range rows {
		parts := key(r)
		k := compositeKey(parts...)
		if _, ok := res.rows[k]; ok {
			return nil, &ConfigError{
				Table: name,
				Row:   i + 1,
				Msg: fmt.Sprintf("duplicate key {%s}",
					strings.Join(parts, ", ")),
			}
		}
		res.rows[k] = r
	}
	return res, nil
}

// Resolve returns the row for the key parts and true, or the zero row and
// false if no row matches.
func (t *Table[R]) Resolve(key ...string) (R, bool) {
	var zero R
	if t == nil {
		return zero, false
	}
	r, ok := t.rows[compositeKey(key...)]
	if !ok {
		return zero, false
	}
	return r, true
}

// Name returns the table name.
func (t *Table[R]) Name() Name {
	return t.name
}

// Len returns the number of rows.
func (t *Table[R]) Len() int {
	if t == nil {
		return 0
	}
	return len(t.rows)
}

func compositeKey(parts ...string) string {
	norm := make([]string, len(parts))
	for i, v := range parts {
		norm[i] = normalize(v)
	}
	return strings.Join(norm, keySep)
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NormalizeFIPS converts numeric county codes to their five-digit form, so
// that 1001, "1001.0" and "01001" match the same row.
func NormalizeFIPS(s string) string {
	s = strings.TrimSpace(s)
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 || f != float64(int64(f)) {
		return normalize(s)
	}
	return fmt.Sprintf("%05d", int64(f))
}
