// Package schema provides database models of the PLET lookup tables.
// Table names match lookup table names, so a table imported from
// cn.csv is stored as "cn". Undefined coefficients are stored as NULL.
package schema

// LandUse is a row of the land-use crosswalk.
type LandUse struct {
	ID      uint   `gorm:"primaryKey"`
	LandUse string `gorm:"column:land_use;size:100;not null;uniqueIndex"`
	UserLU  string `gorm:"column:user_lu;size:100;not null"`
}

// TableName sets the table name for GORM.
func (LandUse) TableName() string { return "lu" }

// CurveNumber is a runoff curve number of a soil group and land use.
type CurveNumber struct {
	ID      uint     `gorm:"primaryKey"`
	HSG     string   `gorm:"column:hsg;size:3;not null;uniqueIndex:idx_cn_key"`
	LandUse string   `gorm:"column:land_use;size:100;not null;uniqueIndex:idx_cn_key"`
	CNValue *float64 `gorm:"column:cn_value"`
	Notes   string   `gorm:"column:notes;type:text"`
}

// TableName sets the table name for GORM.
func (CurveNumber) TableName() string { return "cn" }

// USLE holds RUSLE factors of a county and land use.
type USLE struct {
	ID        uint     `gorm:"primaryKey"`
	FIPS      string   `gorm:"column:fips;size:5;not null;uniqueIndex:idx_usle_key"`
	LandUse   string   `gorm:"column:land_use;size:100;not null;uniqueIndex:idx_usle_key"`
	RFact     *float64 `gorm:"column:r_fact"`
	KFact     *float64 `gorm:"column:k_fact"`
	LSFact    *float64 `gorm:"column:ls_fact"`
	CFact     *float64 `gorm:"column:c_fact"`
	PFact     *float64 `gorm:"column:p_fact"`
	StateName string   `gorm:"column:state_name;size:50"`
	Name      string   `gorm:"column:name;size:100"`
}

// TableName sets the table name for GORM.
func (USLE) TableName() string { return "usle" }

// RunoffNutrient holds runoff nutrient concentrations (mg/L).
type RunoffNutrient struct {
	ID          uint     `gorm:"primaryKey"`
	LandUse     string   `gorm:"column:land_use;size:100;not null;uniqueIndex:idx_rn_key"`
	AnimalInten string   `gorm:"column:animal_inten;size:20;not null;uniqueIndex:idx_rn_key"`
	NConc       *float64 `gorm:"column:n_conc"`
	PConc       *float64 `gorm:"column:p_conc"`
	NConcM      *float64 `gorm:"column:n_conc_m"`
	PConcM      *float64 `gorm:"column:p_conc_m"`
}

// TableName sets the table name for GORM.
func (RunoffNutrient) TableName() string { return "runoff_nutrients" }

// BMPEfficiency holds efficiencies of a BMP on a land use.
type BMPEfficiency struct {
	ID          uint     `gorm:"primaryKey"`
	BMPName     string   `gorm:"column:bmp_name;size:100;not null;uniqueIndex:idx_bmp_key"`
	LandUse     string   `gorm:"column:land_use;size:100;not null;uniqueIndex:idx_bmp_key"`
	NEff        *float64 `gorm:"column:n_eff"`
	PEff        *float64 `gorm:"column:p_eff"`
	SedEff      *float64 `gorm:"column:sed_eff"`
	WQFlag      bool     `gorm:"column:wq_flag;not null;default:false"`
	BMPCat      string   `gorm:"column:bmp_cat;size:50"`
	BMPFullName string   `gorm:"column:bmp_full_name;size:255"`
}

// TableName sets the table name for GORM.
func (BMPEfficiency) TableName() string { return "bmp_eff_vals" }

// AnimalWeight is the live weight of a species (lbs).
type AnimalWeight struct {
	ID         uint     `gorm:"primaryKey"`
	AnimalType string   `gorm:"column:animal_type;size:50;not null;uniqueIndex"`
	WtLbs      *float64 `gorm:"column:wt_lbs"`
}

// TableName sets the table name for GORM.
func (AnimalWeight) TableName() string { return "animal_wts" }

// AnimalNutrientRatio holds manure nutrient ratios of a species.
type AnimalNutrientRatio struct {
	ID         uint     `gorm:"primaryKey"`
	AnimalType string   `gorm:"column:animal_type;size:50;not null;uniqueIndex"`
	NRatio     *float64 `gorm:"column:n_ratio"`
	PRatio     *float64 `gorm:"column:p_ratio"`
}

// TableName sets the table name for GORM.
func (AnimalNutrientRatio) TableName() string { return "animal_nutrient_ratio" }

// GWInfiltration is the groundwater infiltration fraction of a soil group.
type GWInfiltration struct {
	ID          uint     `gorm:"primaryKey"`
	HSG         string   `gorm:"column:hsg;size:3;not null;uniqueIndex"`
	GWInfilFrac *float64 `gorm:"column:gw_infil_frac"`
}

// TableName sets the table name for GORM.
func (GWInfiltration) TableName() string { return "gw_infil_frac" }

// GWNutrient holds groundwater nutrient concentrations (mg/L).
type GWNutrient struct {
	ID      uint     `gorm:"primaryKey"`
	LandUse string   `gorm:"column:land_use;size:100;not null;uniqueIndex"`
	NConc   *float64 `gorm:"column:n_conc"`
	PConc   *float64 `gorm:"column:p_conc"`
}

// TableName sets the table name for GORM.
func (GWNutrient) TableName() string { return "gw_nutrients" }
