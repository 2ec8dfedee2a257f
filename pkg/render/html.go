package render

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	"github.com/goliatone/go-insurepredict/pkg/render/template"
	"github.com/goliatone/go-insurepredict/pkg/render/template/gotemplate"
)

//go:embed templates/*.tpl
var templatesFS embed.FS

// Templates returns the embedded page templates.
func Templates() fs.FS {
	sub, err := fs.Sub(templatesFS, "templates")
	if err != nil {
		panic(fmt.Sprintf("render: templates fs: %v", err))
	}
	return sub
}

// HTMLOption customises the HTML renderer.
type HTMLOption func(*htmlConfig)

type htmlConfig struct {
	engine  template.TemplateRenderer
	theme   *Theme
	baseDir string
}

// WithTemplateRenderer swaps the template engine.
func WithTemplateRenderer(engine template.TemplateRenderer) HTMLOption {
	return func(cfg *htmlConfig) {
		cfg.engine = engine
	}
}

// WithTheme overrides the default theme.
func WithTheme(t *Theme) HTMLOption {
	return func(cfg *htmlConfig) {
		cfg.theme = t
	}
}

// WithTemplateDir loads templates from dir ahead of the embedded set.
func WithTemplateDir(dir string) HTMLOption {
	return func(cfg *htmlConfig) {
		cfg.baseDir = dir
	}
}

// HTML renders pages through pongo2 templates.
type HTML struct {
	engine template.TemplateRenderer
	theme  *Theme
}

var _ Renderer = (*HTML)(nil)

// NewHTML constructs the HTML renderer with the embedded templates and the
// default theme unless overridden.
func NewHTML(opts ...HTMLOption) (*HTML, error) {
	cfg := &htmlConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}

	if cfg.theme == nil {
		t, err := NewTheme(nil)
		if err != nil {
			return nil, err
		}
		cfg.theme = t
	}

	if cfg.engine == nil {
		engineOpts := []gotemplate.Option{gotemplate.WithFS(Templates())}
		if cfg.baseDir != "" {
			engineOpts = append(engineOpts, gotemplate.WithBaseDir(cfg.baseDir))
		}
		engine, err := gotemplate.New(engineOpts...)
		if err != nil {
			return nil, fmt.Errorf("render: template engine: %w", err)
		}
		cfg.engine = engine
	}

	return &HTML{engine: cfg.engine, theme: cfg.theme}, nil
}

func (h *HTML) Name() string {
	return "html"
}

func (h *HTML) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render picks the template matching page.Kind.
func (h *HTML) Render(_ context.Context, page Page, options RenderOptions) ([]byte, error) {
	cfg, err := h.theme.Config(options.Variant)
	if err != nil {
		return nil, err
	}

	name, err := templateFor(page, cfg.Partials)
	if err != nil {
		return nil, err
	}

	out, err := h.engine.RenderTemplate(name, map[string]any{
		"page":  page,
		"theme": buildThemeContext(cfg),
	})
	if err != nil {
		return nil, fmt.Errorf("render: %s page: %w", page.Kind, err)
	}
	return []byte(out), nil
}

func templateFor(page Page, partials map[string]string) (string, error) {
	switch page.Kind {
	case KindLanding:
		if page.Landing == nil {
			return "", fmt.Errorf("render: landing page without content")
		}
		return partials[PartialLanding], nil
	case KindPredict:
		if page.Form == nil {
			return "", fmt.Errorf("render: predict page without form")
		}
		return partials[PartialPredict], nil
	default:
		return "", fmt.Errorf("render: unknown page kind %q", page.Kind)
	}
}
