package model

// Field keys used by validation errors, form posts, and view events.
const (
	FieldAge              = "age"
	FieldHeight           = "height"
	FieldWeight           = "weight"
	FieldIncomeLPA        = "income_lpa"
	FieldCity             = "city"
	FieldSmoker           = "smoker"
	FieldOccupation       = "occupation"
	FieldOccupationSearch = "occupation_search"
	FieldEndpoint         = "apiEndpoint"
	FieldAPI              = "api"
)

// FormState is the mutable record of user input. The zero value is the
// default state of a freshly mounted or reset form.
type FormState struct {
	Age        int        `json:"age"`
	Height     float64    `json:"height"`
	Weight     float64    `json:"weight"`
	IncomeLPA  float64    `json:"income_lpa"`
	City       string     `json:"city"`
	Smoker     bool       `json:"smoker"`
	Occupation Occupation `json:"occupation"`
}

// PredictionRequest is the wire payload sent to the prediction endpoint. Only
// raw fields are sent; derived fields stay local.
type PredictionRequest struct {
	Age        int     `json:"age"`
	Height     float64 `json:"height"`
	Weight     float64 `json:"weight"`
	City       string  `json:"city"`
	Smoker     bool    `json:"smoker"`
	Occupation string  `json:"occupation"`
	IncomeLPA  float64 `json:"income_lpa"`
}

// Request builds the wire payload for the current state.
func (s FormState) Request() PredictionRequest {
	return PredictionRequest{
		Age:        s.Age,
		Height:     s.Height,
		Weight:     s.Weight,
		City:       s.City,
		Smoker:     s.Smoker,
		Occupation: string(s.Occupation),
		IncomeLPA:  s.IncomeLPA,
	}
}
