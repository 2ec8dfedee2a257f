package formview

import (
	"github.com/goliatone/go-insurepredict/components/autocomplete"
	"github.com/goliatone/go-insurepredict/pkg/model"
)

// Snapshot is an immutable copy of the view used for rendering.
type Snapshot struct {
	State    model.FormState        `json:"state"`
	Endpoint string                 `json:"apiEndpoint"`
	Derived  model.DerivedFields    `json:"derived"`
	Errors   model.ValidationErrors `json:"errors"`

	CityOptions  []autocomplete.Option `json:"cityOptions"`
	CityDropdown bool                  `json:"cityDropdown"`

	OccupationSearch   string                `json:"occupationSearch"`
	OccupationInput    string                `json:"occupationInput"`
	OccupationOptions  []autocomplete.Option `json:"occupationOptions"`
	OccupationDropdown bool                  `json:"occupationDropdown"`

	Busy   bool                    `json:"busy"`
	Phase  Phase                   `json:"phase"`
	Result *model.PredictionResult `json:"result,omitempty"`
}

// Error returns the message for field, or "".
func (s Snapshot) Error(field string) string {
	return s.Errors[field]
}

// HasResult reports whether a prediction is available.
func (s Snapshot) HasResult() bool {
	return s.Result != nil
}

// ShowCityOptions reports whether the city dropdown is visible.
func (s Snapshot) ShowCityOptions() bool {
	return s.CityDropdown && len(s.CityOptions) > 0
}
