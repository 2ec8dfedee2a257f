package formview

import (
	"go.uber.org/zap"

	"github.com/goliatone/go-insurepredict/components/autocomplete"
	"github.com/goliatone/go-insurepredict/pkg/derive"
	"github.com/goliatone/go-insurepredict/pkg/predict"
)

// Option configures a View.
type Option func(*View)

// WithPredictor sets the prediction client. Defaults to predict.New().
func WithPredictor(p predict.Predictor) Option {
	return func(v *View) {
		if p != nil {
			v.predictor = p
		}
	}
}

// WithCalculator sets the derived-field calculator.
func WithCalculator(c *derive.Calculator) Option {
	return func(v *View) {
		if c != nil {
			v.calc = c
		}
	}
}

// WithCities sets the city autocomplete instance.
func WithCities(c *autocomplete.Component) Option {
	return func(v *View) {
		if c != nil {
			v.cities = c
		}
	}
}

// WithOccupations sets the occupation autocomplete instance.
func WithOccupations(c *autocomplete.Component) Option {
	return func(v *View) {
		if c != nil {
			v.occupations = c
		}
	}
}

// WithEndpoint pre-fills the endpoint field.
func WithEndpoint(endpoint string) Option {
	return func(v *View) {
		v.endpoint = endpoint
	}
}

// WithLogger attaches a logger. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(v *View) {
		if logger != nil {
			v.logger = logger
		}
	}
}

// WithPhaseObserver registers a phase transition callback.
func WithPhaseObserver(fn PhaseObserver) Option {
	return func(v *View) {
		if fn != nil {
			v.observers = append(v.observers, fn)
		}
	}
}
