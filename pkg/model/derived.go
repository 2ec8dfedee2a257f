package model

// AgeGroup buckets the user's age.
type AgeGroup string

const (
	AgeGroupYoung      AgeGroup = "Young"
	AgeGroupAdult      AgeGroup = "Adult"
	AgeGroupMiddleAged AgeGroup = "Middle-aged"
	AgeGroupSenior     AgeGroup = "Senior"
)

// LifestyleRisk combines smoking and BMI into a coarse risk level.
type LifestyleRisk string

const (
	LifestyleRiskLow    LifestyleRisk = "Low"
	LifestyleRiskMedium LifestyleRisk = "Medium"
	LifestyleRiskHigh   LifestyleRisk = "High"
)

// CityCategory is the three-level city tier used as a location proxy.
type CityCategory string

const (
	CityTier1 CityCategory = "Tier 1"
	CityTier2 CityCategory = "Tier 2"
	CityTier3 CityCategory = "Tier 3"
)

// DerivedFields are pure functions of a FormState. They are recomputed on
// demand and never fed back into the state.
type DerivedFields struct {
	BMI           float64       `json:"bmi"`
	AgeGroup      AgeGroup      `json:"age_group"`
	LifestyleRisk LifestyleRisk `json:"lifestyle_risk"`
	CityCategory  CityCategory  `json:"city_category"`
}
