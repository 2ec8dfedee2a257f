package render

import (
	"fmt"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-insurepredict/pkg/model"
)

const (
	themeName   = "insurepredict"
	assetPrefix = "/assets"

	AssetStylesheet = "stylesheet"
	AssetScript     = "script"

	PartialLanding = "page.landing"
	PartialPredict = "page.predict"
)

func defaultPartials() map[string]string {
	return map[string]string{
		PartialLanding: "landing.tpl",
		PartialPredict: "predict.tpl",
	}
}

// DefaultManifest describes the built-in theme. Category tokens drive the
// result badge colours; the dark variant overrides surfaces and text.
func DefaultManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    themeName,
		Version: "1.0.0",
		Tokens: map[string]string{
			"brand":               "#2563eb",
			"surface":             "#ffffff",
			"page":                "#f9fafb",
			"text":                "#111827",
			"muted":               "#4b5563",
			"danger":              "#dc2626",
			"category.high":       "#dc2626",
			"category.high.bg":    "#fef2f2",
			"category.medium":     "#ca8a04",
			"category.medium.bg":  "#fefce8",
			"category.low":        "#16a34a",
			"category.low.bg":     "#f0fdf4",
			"category.neutral":    "#4b5563",
			"category.neutral.bg": "#f9fafb",
		},
		Templates: defaultPartials(),
		Assets: theme.Assets{
			Prefix: assetPrefix,
			Files: map[string]string{
				AssetStylesheet: "app.css",
				AssetScript:     "app.js",
			},
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens: map[string]string{
					"surface":             "#1f2937",
					"page":                "#111827",
					"text":                "#f9fafb",
					"muted":               "#d1d5db",
					"category.high.bg":    "#450a0a",
					"category.medium.bg":  "#422006",
					"category.low.bg":     "#052e16",
					"category.neutral.bg": "#1f2937",
				},
			},
		},
	}
}

// Theme resolves partials, tokens and assets through a go-theme selector.
type Theme struct {
	selector theme.ThemeSelector
	name     string
}

// NewTheme registers manifest with a go-theme registry, which validates it,
// and selects from that registry.
func NewTheme(manifest *theme.Manifest) (*Theme, error) {
	if manifest == nil {
		manifest = DefaultManifest()
	}
	registry := theme.NewRegistry()
	if err := registry.Register(manifest); err != nil {
		return nil, fmt.Errorf("render: register theme: %w", err)
	}
	return NewThemeFromProvider(registry, manifest.Name, ""), nil
}

// NewThemeFromProvider selects themeName from provider. defaultVariant is
// used when a render asks for no variant.
func NewThemeFromProvider(provider theme.ThemeProvider, themeName, defaultVariant string) *Theme {
	return &Theme{
		selector: theme.Selector{
			Registry:       provider,
			DefaultTheme:   themeName,
			DefaultVariant: defaultVariant,
		},
		name: themeName,
	}
}

// Selection returns the theme selection for variant.
func (t *Theme) Selection(variant string) (*theme.Selection, error) {
	selection, err := t.selector.Select(t.name, strings.TrimSpace(variant))
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	if selection.Variant != "" {
		if _, ok := selection.Manifest.Variants[selection.Variant]; !ok {
			return nil, fmt.Errorf("render: unknown theme variant %q", selection.Variant)
		}
	}
	return selection, nil
}

// Config builds the renderer config for variant. Variant tokens, templates and
// asset files override the base manifest.
func (t *Theme) Config(variant string) (*theme.RendererConfig, error) {
	selection, err := t.Selection(variant)
	if err != nil {
		return nil, err
	}
	cfg := selection.RendererTheme(defaultPartials())
	cfg.CSSVars = cssVars(cfg.Tokens)
	return &cfg, nil
}

// CategoryClass maps a prediction level to the CSS class styled by the
// category tokens.
func CategoryClass(level model.Level) string {
	return "category category-" + string(level)
}

type themeContext struct {
	Name         string            `json:"name"`
	Variant      string            `json:"variant"`
	Tokens       map[string]string `json:"tokens,omitempty"`
	CSSVars      map[string]string `json:"cssVars,omitempty"`
	CSSVarsStyle string            `json:"css_vars_style,omitempty"`
	Stylesheet   string            `json:"stylesheet,omitempty"`
	Script       string            `json:"script,omitempty"`
}

func buildThemeContext(cfg *theme.RendererConfig) themeContext {
	if cfg == nil {
		return themeContext{}
	}
	ctx := themeContext{
		Name:    cfg.Theme,
		Variant: cfg.Variant,
		Tokens:  copyStringMap(cfg.Tokens),
		CSSVars: copyStringMap(cfg.CSSVars),
	}
	ctx.CSSVarsStyle = cssVarsStyle(ctx.CSSVars)
	if cfg.AssetURL != nil {
		ctx.Stylesheet = cfg.AssetURL(AssetStylesheet)
		ctx.Script = cfg.AssetURL(AssetScript)
	}
	return ctx
}

// cssVars turns "category.high" into "--category-high". go-theme keeps the
// dots, which CSS custom properties in app.css do not use.
func cssVars(tokens map[string]string) map[string]string {
	out := make(map[string]string, len(tokens))
	for key, value := range tokens {
		out["--"+strings.ReplaceAll(key, ".", "-")] = value
	}
	return out
}

func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(":root {\n")
	for _, key := range keys {
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(vars[key])
		b.WriteString(";\n")
	}
	b.WriteString("}")
	return b.String()
}

func copyStringMap(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}
