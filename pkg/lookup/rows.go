package lookup

import "github.com/gnames/gnplet/pkg/num"

// CoverCropCategory is the BMP category of cover-crop practices.
const CoverCropCategory = "cover_crop"

// LandUse maps a land-use code to the canonical user land use.
type LandUse struct {
	LandUse string
	UserLU  string
}

// CurveNumber is the runoff curve number for a soil group and land use.
type CurveNumber struct {
	HSG     string
	LandUse string
	CN      num.Float
	Notes   string
}

// USLE holds the five RUSLE/USLE factors of a county and land use.
type USLE struct {
	FIPS      string
	LandUse   string
	R         num.Float
	K         num.Float
	LS        num.Float
	C         num.Float
	P         num.Float
	StateName string
	County    string
}

// RunoffNutrient holds nutrient concentrations in runoff (mg/L) outside
// and during the manure application window.
type RunoffNutrient struct {
	LandUse     string
	AnimalInten string
	NConc       num.Float
	PConc       num.Float
	NConcManure num.Float
	PConcManure num.Float
}

// BMPEfficiency holds efficiencies of a practice on a land use.
type BMPEfficiency struct {
	BMPName  string
	LandUse  string
	NEff     num.Float
	PEff     num.Float
	SedEff   num.Float
	WQFlag   bool
	Category string
	FullName string
}

// IsCoverCrop reports whether the practice is a cover crop.
func (b BMPEfficiency) IsCoverCrop() bool {
	return normalize(b.Category) == CoverCropCategory
}

// AnimalWeight is the live weight of one animal of a species (lbs).
type AnimalWeight struct {
	AnimalType string
	WeightLbs  num.Float
}

// AnimalNutrientRatio holds manure nutrient ratios of a species.
type AnimalNutrientRatio struct {
	AnimalType string
	NRatio     num.Float
	PRatio     num.Float
}

// GWInfiltration is the infiltration fraction of a soil group.
type GWInfiltration struct {
	HSG  string
	Frac num.Float
}

// GWNutrient holds groundwater nutrient concentrations (mg/L).
type GWNutrient struct {
	LandUse string
	NConc   num.Float
	PConc   num.Float
}

// Data carries raw rows of every table before they are keyed.
type Data struct {
	LandUses             []LandUse
	CurveNumbers         []CurveNumber
	USLEs                []USLE
	RunoffNutrients      []RunoffNutrient
	BMPEfficiencies      []BMPEfficiency
	AnimalWeights        []AnimalWeight
	AnimalNutrientRatios []AnimalNutrientRatio
	GWInfiltrations      []GWInfiltration
	GWNutrients          []GWNutrient
}

// Len returns the number of rows loaded for a table.
func (d *Data) Len(n Name) int {
	switch n {
	case LandUseTable:
		return len(d.LandUses)
	case CurveNumberTable:
		return len(d.CurveNumbers)
	case USLETable:
		return len(d.USLEs)
	case RunoffNutrientTable:
		return len(d.RunoffNutrients)
	case BMPEfficiencyTable:
		return len(d.BMPEfficiencies)
	case AnimalWeightTable:
		return len(d.AnimalWeights)
	case AnimalNutrientRatioTable:
		return len(d.AnimalNutrientRatios)
	case GWInfiltrationTable:
		return len(d.GWInfiltrations)
	case GWNutrientTable:
		return len(d.GWNutrients)
	default:
		return 0
	}
}
