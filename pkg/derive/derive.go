// Package derive computes the secondary metrics shown alongside a prediction.
// Every function here is pure: the same FormState always yields the same
// DerivedFields.
package derive

import (
	"math"

	"github.com/goliatone/go-insurepredict/pkg/catalog"
	"github.com/goliatone/go-insurepredict/pkg/model"
)

// Tiering resolves the city tier for a city name.
type Tiering interface {
	Category(city string) model.CityCategory
}

// Calculator derives secondary fields using a configurable city partition.
type Calculator struct {
	tiers Tiering
}

// New returns a calculator. A nil tiering falls back to the embedded catalog.
func New(tiers Tiering) *Calculator {
	if tiers == nil {
		tiers = catalog.MustDefault()
	}
	return &Calculator{tiers: tiers}
}

// Derive computes all derived fields for state.
func (c *Calculator) Derive(state model.FormState) model.DerivedFields {
	raw := RawBMI(state.Height, state.Weight)
	return model.DerivedFields{
		BMI:           round2(raw),
		AgeGroup:      AgeGroupFor(state.Age),
		LifestyleRisk: LifestyleRiskFor(state.Smoker, raw),
		CityCategory:  c.CityCategory(state.City),
	}
}

// CityCategory returns the tier for city.
func (c *Calculator) CityCategory(city string) model.CityCategory {
	if c == nil || c.tiers == nil {
		return model.CityTier3
	}
	return c.tiers.Category(city)
}

// BMI returns weight / height² rounded to two decimals, or 0 when height is
// not positive.
func BMI(height, weight float64) float64 {
	return round2(RawBMI(height, weight))
}

// RawBMI is BMI without rounding.
func RawBMI(height, weight float64) float64 {
	if height <= 0 {
		return 0
	}
	return weight / (height * height)
}

// AgeGroupFor buckets age: <25 Young, <45 Adult, <60 Middle-aged, else Senior.
func AgeGroupFor(age int) model.AgeGroup {
	switch {
	case age < 25:
		return model.AgeGroupYoung
	case age < 45:
		return model.AgeGroupAdult
	case age < 60:
		return model.AgeGroupMiddleAged
	default:
		return model.AgeGroupSenior
	}
}

// LifestyleRiskFor is High when the user smokes and bmi > 30, Medium when
// exactly one holds, Low otherwise.
func LifestyleRiskFor(smoker bool, bmi float64) model.LifestyleRisk {
	obese := bmi > 30
	switch {
	case smoker && obese:
		return model.LifestyleRiskHigh
	case smoker || obese:
		return model.LifestyleRiskMedium
	default:
		return model.LifestyleRiskLow
	}
}

func round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return math.Round(v*100) / 100
}
