// Package field describes an agricultural field as it enters the PLET
// calculation: identity plus the climate, soil, land-use, animal, manure and
// BMP attributes collected by external data pipelines.
//
// All numeric attributes are optional. A missing attribute is accepted at
// ingestion and makes the quantities that depend on it undefined.
package field

import "github.com/gnames/gnplet/pkg/num"

// Record is one agricultural parcel.
type Record struct {
	// ID is a unique field identifier.
	ID string `json:"field_id"`

	// Year the attributes describe.
	Year int `json:"year,omitempty"`

	// AreaAcres is the field area in acres.
	AreaAcres num.Float `json:"area_ac"`

	// AARain is average annual rainfall (inches).
	AARain num.Float `json:"aa_rain"`

	// RainCor is the rainfall correction factor.
	RainCor num.Float `json:"r_cor"`

	// RainDays is the average number of rainy days per year.
	RainDays num.Float `json:"rain_days"`

	// RainDayCor is the rain-day correction factor.
	RainDayCor num.Float `json:"rd_cor"`

	// HSG is the hydrologic soil group (A, B, C, D, A/D, B/D, C/D).
	HSG string `json:"hsg"`

	// Drained overrides the default drainage assumption for dual
	// hydrologic soil groups. Nil means use the default.
	Drained *bool `json:"drained,omitempty"`

	// LandUse is the land-use code before the crosswalk.
	LandUse string `json:"land_use"`

	// FIPS is the county administrative code.
	FIPS string `json:"fips"`

	// NAnimals is the number of animals on the field.
	NAnimals num.Float `json:"n_animals"`

	// AnimalType is the species; empty means the configured default.
	AnimalType string `json:"animal_type,omitempty"`

	// NMonths is the number of months per year manure is applied.
	NMonths num.Float `json:"n_months"`

	// ManureArea is the area receiving manure (acres). Informational.
	ManureArea num.Float `json:"manure_area"`

	// BMPName identifies the practice; empty means no practice change.
	BMPName string `json:"bmp_name,omitempty"`

	// BMPAcres is the acreage the practice is applied to.
	BMPAcres num.Float `json:"bmp_acres"`

	// AreaNote explains why AreaAcres could not be measured from the
	// field geometry. Empty when the area was given or measured.
	AreaNote string `json:"-"`
}

// HasBMP reports whether a practice is assigned to the field.
func (r Record) HasBMP() bool {
	return r.BMPName != ""
}
