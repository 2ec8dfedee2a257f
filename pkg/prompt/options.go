package prompt

import (
	"io"

	"go.uber.org/zap"

	"github.com/goliatone/go-insurepredict/components/autocomplete"
)

// OutputFormat controls how the prediction is printed.
type OutputFormat string

const (
	// OutputFormatPrettyText prints one "Label: value" line per fact.
	OutputFormatPrettyText OutputFormat = "pretty"
	// OutputFormatJSON prints the category and derived fields as JSON.
	OutputFormatJSON OutputFormat = "json"
)

// Option configures the Runner.
type Option func(*Runner)

// WithPromptDriver overrides the survey driver.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Runner) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithOutput sets where the result is written.
func WithOutput(out io.Writer) Option {
	return func(r *Runner) {
		if out != nil {
			r.out = out
		}
	}
}

// WithOutputFormat selects pretty or JSON output.
func WithOutputFormat(format OutputFormat) Option {
	return func(r *Runner) {
		if format != "" {
			r.format = format
		}
	}
}

// WithCities sets the component used for city suggestions.
func WithCities(c *autocomplete.Component) Option {
	return func(r *Runner) {
		if c != nil {
			r.cities = c
		}
	}
}

// WithOccupations sets the component used for the occupation filter.
func WithOccupations(c *autocomplete.Component) Option {
	return func(r *Runner) {
		if c != nil {
			r.occupations = c
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}
