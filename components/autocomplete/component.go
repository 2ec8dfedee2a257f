package autocomplete

import "net/http"

// Component bundles one autocomplete instance: its candidates, limits and
// routing helpers.
type Component struct {
	opts Options
}

// New constructs a component with default options plus any overrides.
func New(fns ...OptionFn) *Component {
	return &Component{opts: NewOptions(fns...)}
}

// FromOptions wraps a pre-built Options value such as CityOptions(...).
func FromOptions(opts Options) *Component {
	return &Component{opts: opts.normalise()}
}

// Cities is the city instance over the given names.
func Cities(cities []string, fns ...OptionFn) *Component {
	return FromOptions(CityOptions(cities, fns...))
}

// Occupations is the occupation instance.
func Occupations(fns ...OptionFn) *Component {
	return FromOptions(OccupationOptions(fns...))
}

// Options returns a copy of the component configuration.
func (c *Component) Options() Options {
	if c == nil {
		return DefaultOptions()
	}
	return c.opts.normalise()
}

// Search filters the component's candidates with its default limit.
func (c *Component) Search(query string) []Candidate {
	if c == nil {
		return nil
	}
	return Search(c.opts.Candidates, query, 0, c.opts)
}

// Candidates returns a copy of the full candidate list.
func (c *Component) Candidates() []Candidate {
	if c == nil {
		return nil
	}
	return append([]Candidate(nil), c.opts.Candidates...)
}

// Lookup returns the candidate whose value equals value.
func (c *Component) Lookup(value string) (Candidate, bool) {
	if c == nil {
		return Candidate{}, false
	}
	for _, candidate := range c.opts.Candidates {
		if candidate.Value == value {
			return candidate, true
		}
	}
	return Candidate{}, false
}

// Handler returns a net/http handler for suggestion queries.
func (c *Component) Handler() http.Handler {
	if c == nil {
		return Handler()
	}
	return HandlerWithOptions(c.opts)
}

// RegisterRoutes mounts the component handler under basePath.
func (c *Component) RegisterRoutes(mux Mux, basePath string) (string, error) {
	if c == nil {
		c = New()
	}
	patterns, err := RegisterRoutes(mux, basePath, c)
	if err != nil {
		return "", err
	}
	return patterns[0], nil
}
