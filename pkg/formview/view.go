package formview

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/goliatone/go-insurepredict/components/autocomplete"
	"github.com/goliatone/go-insurepredict/pkg/catalog"
	"github.com/goliatone/go-insurepredict/pkg/derive"
	"github.com/goliatone/go-insurepredict/pkg/model"
	"github.com/goliatone/go-insurepredict/pkg/predict"
	"github.com/goliatone/go-insurepredict/pkg/validation"
)

var (
	// ErrBusy is returned by Submit while a previous submission is in flight.
	ErrBusy = errors.New("formview: submission already in progress")
	// ErrUnknownField is returned by Edit and Focus for unrecognised fields.
	ErrUnknownField = errors.New("formview: unknown field")
	// ErrUnknownOccupation is returned by SelectOccupation for values outside
	// the fixed occupation set.
	ErrUnknownOccupation = errors.New("formview: unknown occupation")
)

// View is the state of one form instance. It is safe for concurrent use.
type View struct {
	mu sync.Mutex

	state    model.FormState
	endpoint string
	errors   model.ValidationErrors
	result   *model.PredictionResult

	cityOptions      []autocomplete.Candidate
	cityOpen         bool
	occupationSearch string
	occupationOpen   bool

	busy  bool
	phase Phase

	predictor   predict.Predictor
	calc        *derive.Calculator
	cities      *autocomplete.Component
	occupations *autocomplete.Component
	logger      *zap.Logger
	observers   []PhaseObserver
}

// New creates a view in the Idle phase with default field values.
func New(opts ...Option) *View {
	v := &View{
		errors: model.ValidationErrors{},
		phase:  PhaseIdle,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(v)
		}
	}
	if v.calc == nil {
		v.calc = derive.New(nil)
	}
	if v.cities == nil {
		v.cities = autocomplete.Cities(catalog.MustDefault().Cities)
	}
	if v.occupations == nil {
		v.occupations = autocomplete.Occupations()
	}
	if v.predictor == nil {
		v.predictor = predict.New(predict.WithLogger(v.logger))
	}
	return v
}

// Edit applies raw input to field. Numeric fields that fail to parse become
// zero. Any error recorded under field is cleared.
func (v *View) Edit(field, raw string) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	switch field {
	case model.FieldAge:
		v.state.Age = parseWhole(raw)
	case model.FieldHeight:
		v.state.Height = parseNumber(raw)
	case model.FieldWeight:
		v.state.Weight = parseNumber(raw)
	case model.FieldIncomeLPA:
		v.state.IncomeLPA = parseNumber(raw)
	case model.FieldSmoker:
		v.state.Smoker = parseCheckbox(raw)
	case model.FieldOccupation:
		v.state.Occupation = model.Occupation(strings.TrimSpace(raw))
	case model.FieldCity:
		v.state.City = raw
		v.cityOptions = v.cities.Search(raw)
		v.cityOpen = raw != ""
	case model.FieldOccupationSearch:
		v.occupationSearch = raw
		v.occupationOpen = true
	case model.FieldEndpoint:
		v.endpoint = raw
	default:
		return ErrUnknownField
	}

	delete(v.errors, field)
	return nil
}

// Focus handles an input gaining focus.
func (v *View) Focus(field string) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	switch field {
	case model.FieldCity:
		if v.state.City != "" {
			v.cityOptions = v.cities.Search(v.state.City)
			v.cityOpen = true
		}
	case model.FieldOccupationSearch, model.FieldOccupation:
		v.occupationOpen = true
	default:
		if !isField(field) {
			return ErrUnknownField
		}
	}
	return nil
}

// SelectCity writes city, closes the dropdown and clears the city error.
func (v *View) SelectCity(city string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.state.City = city
	v.cityOpen = false
	v.cityOptions = nil
	delete(v.errors, model.FieldCity)
}

// SelectOccupation writes the canonical occupation value and shows its label
// in the search box.
func (v *View) SelectOccupation(value string) error {
	occupation, ok := model.ParseOccupation(strings.TrimSpace(value))
	if !ok {
		return ErrUnknownOccupation
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	v.state.Occupation = occupation
	v.occupationSearch = occupation.Label()
	v.occupationOpen = false
	delete(v.errors, model.FieldOccupation)
	return nil
}

// Click closes both dropdowns when target is outside the autocomplete
// regions.
func (v *View) Click(target Target) {
	if !target.Outside() {
		return
	}
	v.mu.Lock()
	defer v.mu.Unlock()

	v.cityOpen = false
	v.occupationOpen = false
}

// Reset restores default field values and clears results, errors, options
// and dropdowns. The endpoint is kept.
func (v *View) Reset() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.state = model.FormState{}
	v.result = nil
	v.errors = model.ValidationErrors{}
	v.cityOptions = nil
	v.cityOpen = false
	v.occupationSearch = ""
	v.occupationOpen = false
}

// Submit validates the form and, when valid, posts the raw fields to the
// endpoint once. It returns a *validation.Error when the form is invalid,
// the prediction error on failure, and ErrBusy when a submission is already
// in flight. The view records the outcome in every case.
func (v *View) Submit(ctx context.Context) error {
	v.mu.Lock()
	if v.busy {
		v.mu.Unlock()
		return ErrBusy
	}

	v.transition(PhaseValidating)
	var invalid *validation.Error
	if err := validation.Check(v.state, v.endpoint); errors.As(err, &invalid) {
		v.errors = invalid.Fields
		v.transition(PhaseIdle)
		v.mu.Unlock()
		v.logger.Debug("form rejected", zap.Strings("fields", invalid.Fields.Fields()))
		return &validation.Error{Fields: invalid.Fields.Clone()}
	}
	v.errors = model.ValidationErrors{}

	v.result = nil
	v.busy = true
	v.transition(PhaseSubmitting)

	state := v.state
	endpoint := strings.TrimSpace(v.endpoint)
	derived := v.calc.Derive(state)
	v.mu.Unlock()

	v.logger.Debug("submitting prediction",
		zap.String("endpoint", endpoint),
		zap.Float64("bmi", derived.BMI),
		zap.String("age_group", string(derived.AgeGroup)),
		zap.String("lifestyle_risk", string(derived.LifestyleRisk)),
		zap.String("city_category", string(derived.CityCategory)),
	)

	result, err := v.predictor.Predict(ctx, endpoint, state.Request())

	v.mu.Lock()
	defer v.mu.Unlock()
	v.busy = false
	if err != nil {
		v.errors = model.ValidationErrors{model.FieldAPI: predict.Message(err)}
		v.transition(PhaseFailure)
		v.transition(PhaseIdle)
		v.logger.Info("prediction failed", zap.String("endpoint", endpoint), zap.Error(err))
		return err
	}

	v.result = &result
	v.transition(PhaseSuccess)
	v.transition(PhaseIdle)
	v.logger.Info("prediction received",
		zap.String("endpoint", endpoint),
		zap.String("category", result.PredictedCategory),
	)
	return nil
}

// Snapshot returns a copy of the current view state.
func (v *View) Snapshot() Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()

	snap := Snapshot{
		State:              v.state,
		Endpoint:           v.endpoint,
		Derived:            v.calc.Derive(v.state),
		Errors:             v.errors.Clone(),
		CityOptions:        toOptions(v.cityOptions),
		CityDropdown:       v.cityOpen,
		OccupationSearch:   v.occupationSearch,
		OccupationInput:    v.occupationSearch,
		OccupationOptions:  toOptions(v.occupations.Search(v.occupationSearch)),
		OccupationDropdown: v.occupationOpen,
		Busy:               v.busy,
		Phase:              v.phase,
	}
	if snap.OccupationInput == "" && v.state.Occupation != "" {
		snap.OccupationInput = v.state.Occupation.Label()
	}
	if v.result != nil {
		result := *v.result
		snap.Result = &result
	}
	return snap
}

// Endpoint returns the current endpoint value.
func (v *View) Endpoint() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.endpoint
}

func (v *View) transition(to Phase) {
	from := v.phase
	v.phase = to
	for _, observer := range v.observers {
		observer(from, to)
	}
}

func toOptions(candidates []autocomplete.Candidate) []autocomplete.Option {
	out := make([]autocomplete.Option, 0, len(candidates))
	for _, candidate := range candidates {
		out = append(out, candidate.Option())
	}
	return out
}

func parseNumber(raw string) float64 {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(value) {
		return 0
	}
	return value
}

func parseWhole(raw string) int {
	value := parseNumber(raw)
	if math.IsInf(value, 0) || math.Abs(value) > math.MaxInt32 {
		return 0
	}
	return int(value)
}

func parseCheckbox(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "t", "true", "on", "yes", "y":
		return true
	default:
		return false
	}
}

func isField(field string) bool {
	switch field {
	case model.FieldAge, model.FieldHeight, model.FieldWeight, model.FieldIncomeLPA,
		model.FieldCity, model.FieldSmoker, model.FieldOccupation,
		model.FieldOccupationSearch, model.FieldEndpoint:
		return true
	}
	return false
}
