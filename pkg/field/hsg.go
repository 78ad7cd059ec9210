package field

import "strings"

// Hydrologic soil groups.
const (
	HSGA  = "A"
	HSGB  = "B"
	HSGC  = "C"
	HSGD  = "D"
	HSGAD = "A/D"
	HSGBD = "B/D"
	HSGCD = "C/D"
)

var validHSG = map[string]struct{}{
	HSGA: {}, HSGB: {}, HSGC: {}, HSGD: {},
	HSGAD: {}, HSGBD: {}, HSGCD: {},
}

// NormalizeHSG trims and upper-cases a soil group code.
func NormalizeHSG(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// IsValidHSG reports whether s is a known soil group code.
func IsValidHSG(s string) bool {
	_, ok := validHSG[NormalizeHSG(s)]
	return ok
}

// IsDualHSG reports whether s is a dual group such as B/D.
func IsDualHSG(s string) bool {
	s = NormalizeHSG(s)
	return len(s) == 3 && s[1] == '/'
}

// ReclassHSG resolves dual soil groups by drainage: drained soils take the
// first group, undrained soils take D. Single groups are returned as is.
func ReclassHSG(s string, drained bool) string {
	s = NormalizeHSG(s)
	if !IsDualHSG(s) {
		return s
	}
	if drained {
		return s[:1]
	}
	return HSGD
}
