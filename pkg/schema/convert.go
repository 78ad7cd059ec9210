package schema

import (
	"github.com/gnames/gnplet/pkg/lookup"
	"github.com/gnames/gnplet/pkg/num"
)

// Rows holds models of every lookup table.
type Rows struct {
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

// FromData converts parsed lookup rows to database models.
func FromData(d lookup.Data) Rows {
	var res Rows
	for _, v := range d.LandUses {
		res.LandUses = append(res.LandUses,
			LandUse{LandUse: v.LandUse, UserLU: v.UserLU})
	}
	for _, v := range d.CurveNumbers {
		res.CurveNumbers = append(res.CurveNumbers, CurveNumber{
			HSG: v.HSG, LandUse: v.LandUse, CNValue: v.CN.Ptr(), Notes: v.Notes,
		})
	}
	for _, v := range d.USLEs {
		res.USLEs = append(res.USLEs, USLE{
			FIPS:      lookup.NormalizeFIPS(v.FIPS),
			LandUse:   v.LandUse,
			RFact:     v.R.Ptr(),
			KFact:     v.K.Ptr(),
			LSFact:    v.LS.Ptr(),
			CFact:     v.C.Ptr(),
			PFact:     v.P.Ptr(),
			StateName: v.StateName,
			Name:      v.County,
		})
	}
	for _, v := range d.RunoffNutrients {
		res.RunoffNutrients = append(res.RunoffNutrients, RunoffNutrient{
			LandUse:     v.LandUse,
			AnimalInten: v.AnimalInten,
			NConc:       v.NConc.Ptr(),
			PConc:       v.PConc.Ptr(),
			NConcM:      v.NConcManure.Ptr(),
			PConcM:      v.PConcManure.Ptr(),
		})
	}
	for _, v := range d.BMPEfficiencies {
		res.BMPEfficiencies = append(res.BMPEfficiencies, BMPEfficiency{
			BMPName:     v.BMPName,
			LandUse:     v.LandUse,
			NEff:        v.NEff.Ptr(),
			PEff:        v.PEff.Ptr(),
			SedEff:      v.SedEff.Ptr(),
			WQFlag:      v.WQFlag,
			BMPCat:      v.Category,
			BMPFullName: v.FullName,
		})
	}
	for _, v := range d.AnimalWeights {
		res.AnimalWeights = append(res.AnimalWeights,
			AnimalWeight{AnimalType: v.AnimalType, WtLbs: v.WeightLbs.Ptr()})
	}
	for _, v := range d.AnimalNutrientRatios {
		res.AnimalNutrientRatios = append(res.AnimalNutrientRatios,
			AnimalNutrientRatio{
				AnimalType: v.AnimalType,
				NRatio:     v.NRatio.Ptr(),
				PRatio:     v.PRatio.Ptr(),
			})
	}
	for _, v := range d.GWInfiltrations {
		res.GWInfiltrations = append(res.GWInfiltrations,
			GWInfiltration{HSG: v.HSG, GWInfilFrac: v.Frac.Ptr()})
	}
	for _, v := range d.GWNutrients {
		res.GWNutrients = append(res.GWNutrients, GWNutrient{
			LandUse: v.LandUse, NConc: v.NConc.Ptr(), PConc: v.PConc.Ptr(),
		})
	}
	return res
}

// Data converts database models back to lookup rows.
func (r Rows) Data() lookup.Data {
	var res lookup.Data
	for _, v := range r.LandUses {
		res.LandUses = append(res.LandUses,
			lookup.LandUse{LandUse: v.LandUse, UserLU: v.UserLU})
	}
	for _, v := range r.CurveNumbers {
		res.CurveNumbers = append(res.CurveNumbers, lookup.CurveNumber{
			HSG: v.HSG, LandUse: v.LandUse, CN: num.OfPtr(v.CNValue), Notes: v.Notes,
		})
	}
	for _, v := range r.USLEs {
		res.USLEs = append(res.USLEs, lookup.USLE{
			FIPS:      v.FIPS,
			LandUse:   v.LandUse,
			R:         num.OfPtr(v.RFact),
			K:         num.OfPtr(v.KFact),
			LS:        num.OfPtr(v.LSFact),
			C:         num.OfPtr(v.CFact),
			P:         num.OfPtr(v.PFact),
			StateName: v.StateName,
			County:    v.Name,
		})
	}
	for _, v := range r.RunoffNutrients {
		res.RunoffNutrients = append(res.RunoffNutrients, lookup.RunoffNutrient{
			LandUse:     v.LandUse,
			AnimalInten: v.AnimalInten,
			NConc:       num.OfPtr(v.NConc),
			PConc:       num.OfPtr(v.PConc),
			NConcManure: num.OfPtr(v.NConcM),
			PConcManure: num.OfPtr(v.PConcM),
		})
	}
	for _, v := range r.BMPEfficiencies {
		res.BMPEfficiencies = append(res.BMPEfficiencies, lookup.BMPEfficiency{
			BMPName:  v.BMPName,
			LandUse:  v.LandUse,
			NEff:     num.OfPtr(v.NEff),
			PEff:     num.OfPtr(v.PEff),
			SedEff:   num.OfPtr(v.SedEff),
			WQFlag:   v.WQFlag,
			Category: v.BMPCat,
			FullName: v.BMPFullName,
		})
	}
	for _, v := range r.AnimalWeights {
		res.AnimalWeights = append(res.AnimalWeights, lookup.AnimalWeight{
			AnimalType: v.AnimalType, WeightLbs: num.OfPtr(v.WtLbs),
		})
	}
	for _, v := range r.AnimalNutrientRatios {
		res.AnimalNutrientRatios = append(res.AnimalNutrientRatios,
			lookup.AnimalNutrientRatio{
				AnimalType: v.AnimalType,
				NRatio:     num.OfPtr(v.NRatio),
				PRatio:     num.OfPtr(v.PRatio),
			})
	}
	for _, v := range r.GWInfiltrations {
		res.GWInfiltrations = append(res.GWInfiltrations, lookup.GWInfiltration{
			HSG: v.HSG, Frac: num.OfPtr(v.GWInfilFrac),
		})
	}
	for _, v := range r.GWNutrients {
		res.GWNutrients = append(res.GWNutrients, lookup.GWNutrient{
			LandUse: v.LandUse, NConc: num.OfPtr(v.NConc), PConc: num.OfPtr(v.PConc),
		})
	}
	return res
}
