package schema

import (
	"gorm.io/gorm"
)

// AllModels returns all schema models for GORM AutoMigrate.
func AllModels() []interface{} {
	return []interface{}{
		&LandUse{},
		&CurveNumber{},
		&USLE{},
		&RunoffNutrient{},
		&BMPEfficiency{},
		&AnimalWeight{},
		&AnimalNutrientRatio{},
		&GWInfiltration{},
		&GWNutrient{},
	}
}

// TableNames returns names of all lookup tables.
func TableNames() []string {
	models := AllModels()
	res := make([]string, len(models))
	for i, v := range models {
		res[i] = v.(interface{ TableName() string }).TableName()
	}
	return res
}

// Migrate runs GORM AutoMigrate to create or update schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(AllModels()...)
}
