package validation

import (
	"math"
	"sort"
	"strings"

	"github.com/goliatone/go-insurepredict/pkg/model"
)

// Messages surfaced for invalid fields.
const (
	MsgAge               = "Age must be between 1 and 119"
	MsgHeight            = "Height must be between 0 and 2.5 meters"
	MsgWeight            = "Weight must be greater than 0"
	MsgIncome            = "Income must be greater than 0"
	MsgCity              = "City is required"
	MsgOccupation        = "Occupation is required"
	MsgOccupationUnknown = "Occupation must be one of the listed options"
	MsgEndpoint          = "API endpoint is required"
)

// Bounds of the numeric rules. Upper bounds are exclusive.
const (
	MaxAge    = 120
	MaxHeight = 2.5
)

// Validate evaluates every rule against state and endpoint and returns the
// collected messages. Rules are independent and never short-circuit; the
// form is valid iff the result is empty.
func Validate(state model.FormState, endpoint string) model.ValidationErrors {
	errs := model.ValidationErrors{}

	if state.Age <= 0 || state.Age >= MaxAge {
		errs[model.FieldAge] = MsgAge
	}
	if !positive(state.Height) || state.Height >= MaxHeight {
		errs[model.FieldHeight] = MsgHeight
	}
	if !positive(state.Weight) {
		errs[model.FieldWeight] = MsgWeight
	}
	if !positive(state.IncomeLPA) {
		errs[model.FieldIncomeLPA] = MsgIncome
	}
	if strings.TrimSpace(state.City) == "" {
		errs[model.FieldCity] = MsgCity
	}
	switch {
	case strings.TrimSpace(string(state.Occupation)) == "":
		errs[model.FieldOccupation] = MsgOccupation
	case !state.Occupation.Valid():
		errs[model.FieldOccupation] = MsgOccupationUnknown
	}
	if strings.TrimSpace(endpoint) == "" {
		errs[model.FieldEndpoint] = MsgEndpoint
	}

	return errs
}

// Error adapts a non-empty ValidationErrors into an error value so callers
// can propagate validation failures through ordinary error returns.
type Error struct {
	Fields model.ValidationErrors
}

// Check runs Validate and returns *Error when any rule fails.
func Check(state model.FormState, endpoint string) error {
	errs := Validate(state, endpoint)
	if errs.Valid() {
		return nil
	}
	return &Error{Fields: errs}
}

func (e *Error) Error() string {
	if e == nil || len(e.Fields) == 0 {
		return "validation: form is invalid"
	}
	keys := make([]string, 0, len(e.Fields))
	for key := range e.Fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, key+": "+e.Fields[key])
	}
	return "validation: " + strings.Join(parts, "; ")
}

// Issues flattens the error into the issue list used by JSON responses.
func (e *Error) Issues() []Issue {
	if e == nil {
		return nil
	}
	out := make([]Issue, 0, len(e.Fields))
	for _, field := range e.Fields.Fields() {
		out = append(out, Issue{Path: "/" + field, Field: field, Message: e.Fields[field]})
	}
	return out
}

// Issue is a single validation message with optional location metadata.
type Issue struct {
	Path    string `json:"path,omitempty"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func positive(v float64) bool {
	return v > 0 && !math.IsNaN(v) && !math.IsInf(v, 0)
}
