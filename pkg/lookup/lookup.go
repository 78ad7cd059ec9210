// Package lookup implements the repository of PLET reference tables.
//
// Each coefficient family (curve numbers, USLE factors, nutrient
// concentrations, BMP efficiencies, ...) lives in its own immutable keyed
// table. Tables are built once from rows supplied by a loader (CSV files,
// an XLSX workbook or a database) and are safe for concurrent reads
// afterward. Building fails with a ConfigError for a malformed table: a
// missing required table or column, a non-numeric value in a numeric
// column, or a duplicate key. Resolving a missing key never fails, it
// reports that no row matched.
package lookup

// Name identifies a lookup table. It is also the file stem of the CSV file
// and the sheet name in an XLSX workbook.
type Name string

// Lookup tables.
const (
	LandUseTable             Name = "lu"
	CurveNumberTable         Name = "cn"
	USLETable                Name = "usle"
	RunoffNutrientTable      Name = "runoff_nutrients"
	BMPEfficiencyTable       Name = "bmp_eff_vals"
	AnimalWeightTable        Name = "animal_wts"
	AnimalNutrientRatioTable Name = "animal_nutrient_ratio"
	GWInfiltrationTable      Name = "gw_infil_frac"
	GWNutrientTable          Name = "gw_nutrients"
)

// AllNames returns every known table name.
func AllNames() []Name {
	return []Name{
		LandUseTable,
		CurveNumberTable,
		USLETable,
		RunoffNutrientTable,
		BMPEfficiencyTable,
		AnimalWeightTable,
		AnimalNutrientRatioTable,
		GWInfiltrationTable,
		GWNutrientTable,
	}
}

// IsRequired reports whether the model cannot run without the table.
// Groundwater and animal nutrient ratio tables only feed supplementary
// outputs and may be absent.
func (n Name) IsRequired() bool {
	switch n {
	case AnimalNutrientRatioTable, GWInfiltrationTable, GWNutrientTable:
		return false
	default:
		return true
	}
}

// IsKnown reports whether n is one of the lookup tables.
func (n Name) IsKnown() bool {
	for _, v := range AllNames() {
		if v == n {
			return true
		}
	}
	return false
}

func (n Name) String() string {
	return string(n)
}
