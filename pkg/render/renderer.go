// Package render turns landing and form snapshots into HTML or JSON pages.
package render

import (
	"context"
)

// Renderer converts a Page into bytes (HTML, JSON).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, page Page, options RenderOptions) ([]byte, error)
}
