package render

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
)

// DefaultFormat is used when no format is requested.
const DefaultFormat = "html"

// ErrUnknownFormat is returned for a format no renderer is registered under.
var ErrUnknownFormat = errors.New("render: unknown format")

// Registry maps output formats to renderers. The server picks one per
// request from the format query parameter.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]Renderer
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: map[string]Renderer{}}
}

// DefaultRegistry holds the HTML and JSON renderers.
func DefaultRegistry(opts ...HTMLOption) (*Registry, error) {
	html, err := NewHTML(opts...)
	if err != nil {
		return nil, err
	}
	r := NewRegistry()
	if err := r.Register(html); err != nil {
		return nil, err
	}
	if err := r.Register(JSON{}); err != nil {
		return nil, err
	}
	return r, nil
}

// Register adds renderer under its Name. Names are unique.
func (r *Registry) Register(renderer Renderer) error {
	if renderer == nil || renderer.Name() == "" {
		return errors.New("render: a named renderer is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	name := renderer.Name()
	if _, dup := r.byName[name]; dup {
		return fmt.Errorf("render: format %q already registered", name)
	}
	r.byName[name] = renderer
	return nil
}

// ForFormat resolves a requested format. Matching ignores case and
// surrounding space; blank selects DefaultFormat.
func (r *Registry) ForFormat(format string) (Renderer, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = DefaultFormat
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	renderer, ok := r.byName[format]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownFormat, format)
	}
	return renderer, nil
}

// Formats lists the registered format names in order.
func (r *Registry) Formats() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
