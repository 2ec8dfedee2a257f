package autocomplete

import (
	"errors"
	"net/http"
	"path"
	"strings"
)

// Mux is satisfied by *http.ServeMux.
type Mux interface {
	Handle(pattern string, handler http.Handler)
}

// ErrMissingMux is returned when routes are registered on a nil mux.
var ErrMissingMux = errors.New("autocomplete: missing mux")

// MountPath returns where a component with the given options is served
// under basePath.
func MountPath(basePath string, fns ...OptionFn) string {
	return joinRoute(basePath, NewOptions(fns...).RoutePath)
}

// RegisterRoutes mounts one handler per component under basePath and
// returns the registered patterns in argument order. Nil components are
// skipped.
func RegisterRoutes(mux Mux, basePath string, components ...*Component) ([]string, error) {
	if mux == nil {
		return nil, ErrMissingMux
	}
	patterns := make([]string, 0, len(components))
	for _, c := range components {
		if c == nil {
			continue
		}
		pattern := joinRoute(basePath, c.opts.RoutePath)
		mux.Handle(pattern, HandlerWithOptions(c.opts))
		patterns = append(patterns, pattern)
	}
	return patterns, nil
}

func joinRoute(basePath, routePath string) string {
	routePath = strings.TrimSpace(routePath)
	if routePath == "" {
		routePath = "/"
	}
	return path.Join("/", strings.TrimSpace(basePath), routePath)
}
