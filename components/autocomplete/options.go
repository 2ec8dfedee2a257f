package autocomplete

// EmptySearchMode decides what a blank query returns.
type EmptySearchMode string

const (
	// EmptySearchNone returns nothing for a blank query (cities).
	EmptySearchNone EmptySearchMode = "none"
	// EmptySearchAll returns every candidate for a blank query (occupations).
	EmptySearchAll EmptySearchMode = "all"
)

// NoLimit disables truncation when used as DefaultLimit or MaxLimit.
const NoLimit = 0

const (
	cityRoute       = "/api/cities"
	occupationRoute = "/api/occupations"
	cityLimit       = 10
)

// Options configures one autocomplete instance.
type Options struct {
	RoutePath       string
	SearchParam     string
	LimitParam      string
	DefaultLimit    int
	MaxLimit        int
	EmptySearchMode EmptySearchMode

	// Candidates nil means the embedded city catalog.
	Candidates []Candidate
}

// OptionFn mutates Options.
type OptionFn func(*Options)

// DefaultOptions describe the city input: ten results and nothing for a
// blank query.
func DefaultOptions() Options {
	return Options{
		RoutePath:       cityRoute,
		SearchParam:     "q",
		LimitParam:      "limit",
		DefaultLimit:    cityLimit,
		MaxLimit:        cityLimit,
		EmptySearchMode: EmptySearchNone,
	}
}

// NewOptions applies fns over DefaultOptions and fills any field left blank.
func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn != nil {
			fn(&opts)
		}
	}
	return opts.normalise()
}

func (o Options) normalise() Options {
	def := DefaultOptions()
	if o.RoutePath == "" {
		o.RoutePath = def.RoutePath
	}
	if o.SearchParam == "" {
		o.SearchParam = def.SearchParam
	}
	if o.LimitParam == "" {
		o.LimitParam = def.LimitParam
	}
	if o.DefaultLimit < 0 {
		o.DefaultLimit = def.DefaultLimit
	}
	if o.MaxLimit < 0 {
		o.MaxLimit = NoLimit
	}
	if o.EmptySearchMode == "" {
		o.EmptySearchMode = EmptySearchNone
	}
	if o.Candidates != nil {
		o.Candidates = append([]Candidate{}, o.Candidates...)
	}
	return o
}

// CityOptions configures an instance over the given city names.
func CityOptions(cities []string, fns ...OptionFn) Options {
	base := []OptionFn{WithCandidates(CityCandidates(cities))}
	return NewOptions(append(base, fns...)...)
}

// OccupationOptions configures the unlimited occupation instance.
func OccupationOptions(fns ...OptionFn) Options {
	base := []OptionFn{
		WithRoutePath(occupationRoute),
		WithDefaultLimit(NoLimit),
		WithMaxLimit(NoLimit),
		WithEmptySearchMode(EmptySearchAll),
		WithCandidates(OccupationCandidates()),
	}
	return NewOptions(append(base, fns...)...)
}

func WithRoutePath(path string) OptionFn {
	return func(o *Options) { o.RoutePath = path }
}

func WithSearchParam(name string) OptionFn {
	return func(o *Options) { o.SearchParam = name }
}

func WithLimitParam(name string) OptionFn {
	return func(o *Options) { o.LimitParam = name }
}

func WithDefaultLimit(limit int) OptionFn {
	return func(o *Options) { o.DefaultLimit = limit }
}

func WithMaxLimit(limit int) OptionFn {
	return func(o *Options) { o.MaxLimit = limit }
}

func WithEmptySearchMode(mode EmptySearchMode) OptionFn {
	return func(o *Options) { o.EmptySearchMode = mode }
}

// WithCandidates replaces the candidate list with a copy of candidates.
func WithCandidates(candidates []Candidate) OptionFn {
	return func(o *Options) {
		if candidates == nil {
			o.Candidates = nil
			return
		}
		o.Candidates = append([]Candidate{}, candidates...)
	}
}

// clampLimit resolves a requested limit. A negative request yields zero
// results; zero falls back to DefaultLimit. -1 means no truncation.
func clampLimit(limit int, opts Options) int {
	if limit < 0 {
		return 0
	}
	if limit == 0 {
		limit = opts.DefaultLimit
	}
	if opts.MaxLimit > 0 && (limit == NoLimit || limit > opts.MaxLimit) {
		return opts.MaxLimit
	}
	if limit == NoLimit {
		return -1
	}
	return limit
}
