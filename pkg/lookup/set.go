package lookup

// Set is the Lookup Repository: one keyed table per coefficient family.
type Set struct {
	LandUses             *Table[LandUse]
	CurveNumbers         *Table[CurveNumber]
	USLEs                *Table[USLE]
	RunoffNutrients      *Table[RunoffNutrient]
	BMPEfficiencies      *Table[BMPEfficiency]
	AnimalWeights        *Table[AnimalWeight]
	AnimalNutrientRatios *Table[AnimalNutrientRatio]
	GWInfiltrations      *Table[GWInfiltration]
	GWNutrients          *Table[GWNutrient]
}

// New keys the rows of every table. It fails with a ConfigError if a
// required table has no rows or any table has duplicate keys.
func New(d Data) (*Set, error) {
	for _, n := range AllNames() {
		if n.IsRequired() && d.Len(n) == 0 {
			return nil, &ConfigError{Table: n, Msg: "table is missing or empty"}
		}
	}

	var err error
	res := &Set{}

	res.LandUses, err = newTable(LandUseTable, d.LandUses,
		func(r LandUse) []string { return []string{r.LandUse} })
	if err != nil {
		return nil, err
	}

	res.CurveNumbers, err = newTable(CurveNumberTable, d.CurveNumbers,
		func(r CurveNumber) []string { return []string{r.HSG, r.LandUse} })
	if err != nil {
		return nil, err
	}

	res.USLEs, err = newTable(USLETable, d.USLEs,
		func(r USLE) []string {
			return []string{NormalizeFIPS(r.FIPS), r.LandUse}
		})
	if err != nil {
		return nil, err
	}

	res.RunoffNutrients, err = newTable(RunoffNutrientTable, d.RunoffNutrients,
		func(r RunoffNutrient) []string {
			return []string{r.LandUse, r.AnimalInten}
		})
	if err != nil {
		return nil, err
	}

	res.BMPEfficiencies, err = newTable(BMPEfficiencyTable, d.BMPEfficiencies,
		func(r BMPEfficiency) []string { return []string{r.BMPName, r.LandUse} })
	if err != nil {
		return nil, err
	}

	res.AnimalWeights, err = newTable(AnimalWeightTable, d.AnimalWeights,
		func(r AnimalWeight) []string { return []string{r.AnimalType} })
	if err != nil {
		return nil, err
	}

	res.AnimalNutrientRatios, err = newTable(AnimalNutrientRatioTable,
		d.AnimalNutrientRatios,
		func(r AnimalNutrientRatio) []string { return []string{r.AnimalType} })
	if err != nil {
		return nil, err
	}

	res.GWInfiltrations, err = newTable(GWInfiltrationTable, d.GWInfiltrations,
		func(r GWInfiltration) []string { return []string{r.HSG} })
	if err != nil {
		return nil, err
	}

	res.GWNutrients, err = newTable(GWNutrientTable, d.GWNutrients,
		func(r GWNutrient) []string { return []string{r.LandUse} })
	if err != nil {
		return nil, err
	}

	return res, nil
}

// Resolve looks up a row by table name and key parts. The row is returned
// as the table's row type. It returns false for a missing key or an
// unknown table.
func (s *Set) Resolve(name Name, key ...string) (any, bool) {
	switch name {
	case LandUseTable:
		return resolveAny(s.LandUses, key)
	case CurveNumberTable:
		return resolveAny(s.CurveNumbers, key)
	case USLETable:
		if len(key) > 0 {
			key = append([]string{NormalizeFIPS(key[0])}, key[1:]...)
		}
		return resolveAny(s.USLEs, key)
	case RunoffNutrientTable:
		return resolveAny(s.RunoffNutrients, key)
	case BMPEfficiencyTable:
		return resolveAny(s.BMPEfficiencies, key)
	case AnimalWeightTable:
		return resolveAny(s.AnimalWeights, key)
	case AnimalNutrientRatioTable:
		return resolveAny(s.AnimalNutrientRatios, key)
	case GWInfiltrationTable:
		return resolveAny(s.GWInfiltrations, key)
	case GWNutrientTable:
		return resolveAny(s.GWNutrients, key)
	default:
		return nil, false
	}
}

func resolveAny[R any](t *Table[R], key []string) (any, bool) {
	r, ok := t.Resolve(key...)
	if !ok {
		return nil, false
	}
	return r, true
}

// UserLandUse returns the canonical land use for a land-use code.
func (s *Set) UserLandUse(landUse string) (string, bool) {
	r, ok := s.LandUses.Resolve(landUse)
	if !ok {
		return "", false
	}
	return normalize(r.UserLU), true
}

// CurveNumber resolves {soil group, user land use}.
func (s *Set) CurveNumber(hsg, userLU string) (CurveNumber, bool) {
	return s.CurveNumbers.Resolve(hsg, userLU)
}

// USLE resolves {county code, user land use}.
func (s *Set) USLE(fips, userLU string) (USLE, bool) {
	return s.USLEs.Resolve(NormalizeFIPS(fips), userLU)
}

// RunoffNutrient resolves {user land use, animal intensity}.
func (s *Set) RunoffNutrient(userLU, inten string) (RunoffNutrient, bool) {
	return s.RunoffNutrients.Resolve(userLU, inten)
}

// BMPEfficiency resolves {BMP name, user land use}.
func (s *Set) BMPEfficiency(bmp, userLU string) (BMPEfficiency, bool) {
	return s.BMPEfficiencies.Resolve(bmp, userLU)
}

// AnimalWeight resolves an animal species.
func (s *Set) AnimalWeight(animalType string) (AnimalWeight, bool) {
	return s.AnimalWeights.Resolve(animalType)
}

// AnimalNutrientRatio resolves an animal species.
func (s *Set) AnimalNutrientRatio(animalType string) (AnimalNutrientRatio, bool) {
	return s.AnimalNutrientRatios.Resolve(animalType)
}

// GWInfiltration resolves a soil group.
func (s *Set) GWInfiltration(hsg string) (GWInfiltration, bool) {
	return s.GWInfiltrations.Resolve(hsg)
}

// GWNutrient resolves a user land use.
func (s *Set) GWNutrient(userLU string) (GWNutrient, bool) {
	return s.GWNutrients.Resolve(userLU)
}

// Stats returns the number of rows per table.
func (s *Set) Stats() map[Name]int {
	return map[Name]int{
		LandUseTable:             s.LandUses.Len(),
		CurveNumberTable:         s.CurveNumbers.Len(),
		USLETable:                s.USLEs.Len(),
		RunoffNutrientTable:      s.RunoffNutrients.Len(),
		BMPEfficiencyTable:       s.BMPEfficiencies.Len(),
		AnimalWeightTable:        s.AnimalWeights.Len(),
		AnimalNutrientRatioTable: s.AnimalNutrientRatios.Len(),
		GWInfiltrationTable:      s.GWInfiltrations.Len(),
		GWNutrientTable:          s.GWNutrients.Len(),
	}
}
