// Package num provides an optional float value used for every model
// coefficient and derived quantity.
//
// A Float is either defined and holds a finite value, or undefined. The zero
// value is undefined, so a forgotten assignment never turns into a silent
// zero. Arithmetic propagates undefined values: if any operand is undefined,
// or the operation has no finite result (division by zero, negative base
// with a fractional exponent), the result is undefined.
package num

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// Float is a float64 that can be undefined.
type Float struct {
	val float64
	ok  bool
}

// Of returns a defined Float. NaN and infinite values produce an
// undefined Float.
func Of(v float64) Float {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Float{}
	}
	return Float{val: v, ok: true}
}

// Undef returns an undefined Float.
func Undef() Float {
	return Float{}
}

// Get returns the value and true if the Float is defined.
func (f Float) Get() (float64, bool) {
	return f.val, f.ok
}

// IsDefined reports whether f holds a value.
func (f Float) IsDefined() bool {
	return f.ok
}

// Or returns the value of f, or d if f is undefined.
func (f Float) Or(d float64) float64 {
	if !f.ok {
		return d
	}
	return f.val
}

// OrElse returns f if it is defined, otherwise g.
func (f Float) OrElse(g Float) Float {
	if f.ok {
		return f
	}
	return g
}

// OfPtr converts a nullable database value.
func OfPtr(v *float64) Float {
	if v == nil {
		return Float{}
	}
	return Of(*v)
}

// Ptr returns a pointer to the value, or nil for an undefined Float.
func (f Float) Ptr() *float64 {
	if !f.ok {
		return nil
	}
	v := f.val
	return &v
}

// Add returns f + g.
func (f Float) Add(g Float) Float {
	if !f.ok || !g.ok {
		return Float{}
	}
	return Of(f.val + g.val)
}

// Sub returns f - g.
func (f Float) Sub(g Float) Float {
	if !f.ok || !g.ok {
		return Float{}
	}
	return Of(f.val - g.val)
}

// Mul returns f * g.
func (f Float) Mul(g Float) Float {
	if !f.ok || !g.ok {
		return Float{}
	}
	return Of(f.val * g.val)
}

// Div returns f / g. Division by zero is undefined.
func (f Float) Div(g Float) Float {
	if !f.ok || !g.ok || g.val == 0 {
		return Float{}
	}
	return Of(f.val / g.val)
}

// Pow returns f raised to the power e.
func (f Float) Pow(e float64) Float {
	if !f.ok {
		return Float{}
	}
	return Of(math.Pow(f.val, e))
}

// Scale returns f * k.
func (f Float) Scale(k float64) Float {
	return f.Mul(Of(k))
}

// Round returns f rounded half away from zero to the given number of
// decimal places.
func (f Float) Round(places int) Float {
	if !f.ok {
		return Float{}
	}
	p := math.Pow(10, float64(places))
	return Of(math.Round(f.val*p) / p)
}

// Gt reports whether f is defined and greater than v.
func (f Float) Gt(v float64) bool {
	return f.ok && f.val > v
}

// Equal reports whether f and g are both undefined, or both defined with
// the same value.
func (f Float) Equal(g Float) bool {
	return f.ok == g.ok && f.val == g.val
}

// String returns the value formatted with the shortest representation,
// or an empty string for undefined values.
func (f Float) String() string {
	if !f.ok {
		return ""
	}
	return strconv.FormatFloat(f.val, 'f', -1, 64)
}

// MarshalJSON encodes undefined values as null.
func (f Float) MarshalJSON() ([]byte, error) {
	if !f.ok {
		return []byte("null"), nil
	}
	return json.Marshal(f.val)
}

// UnmarshalJSON decodes null as an undefined value.
func (f *Float) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*f = Float{}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = Of(v)
	return nil
}

// Parse converts a string to a Float. An empty string (after trimming) or
// "NA"/"NaN" gives an undefined value; any other non-numeric string is an
// error.
func Parse(s string) (Float, error) {
	s = strings.TrimSpace(s)
	switch s {
	case "", "NA", "na", "NaN", "nan", "null":
		return Float{}, nil
	}
	v, err := cast.ToFloat64E(s)
	if err != nil {
		return Float{}, err
	}
	return Of(v), nil
}
