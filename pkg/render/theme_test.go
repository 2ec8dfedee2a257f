package render

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	theme "github.com/goliatone/go-theme"
)

func TestThemeConfigBase(t *testing.T) {
	th, err := NewTheme(nil)
	if err != nil {
		t.Fatalf("new theme: %v", err)
	}

	cfg, err := th.Config("")
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	if cfg.Theme != "insurepredict" || cfg.Variant != "" {
		t.Fatalf("unexpected selection %q/%q", cfg.Theme, cfg.Variant)
	}
	if got := cfg.CSSVars["--category-high"]; got != "#dc2626" {
		t.Fatalf("expected high token as css var, got %q", got)
	}
	if got := cfg.AssetURL(AssetStylesheet); got != "/assets/app.css" {
		t.Fatalf("unexpected stylesheet url %q", got)
	}
	if got := cfg.AssetURL("missing"); got != "" {
		t.Fatalf("unknown asset should resolve empty, got %q", got)
	}
	if got := cfg.Partials[PartialPredict]; got != "predict.tpl" {
		t.Fatalf("unexpected predict partial %q", got)
	}
}

func TestThemeConfigDarkVariantOverrides(t *testing.T) {
	th, err := NewTheme(nil)
	if err != nil {
		t.Fatalf("new theme: %v", err)
	}

	cfg, err := th.Config("dark")
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	if cfg.Tokens["surface"] != "#1f2937" {
		t.Fatalf("expected dark surface, got %q", cfg.Tokens["surface"])
	}
	if cfg.Tokens["category.high"] != "#dc2626" {
		t.Fatalf("base tokens should survive the merge, got %q", cfg.Tokens["category.high"])
	}

	base, _ := th.Config("")
	if base.Tokens["surface"] != "#ffffff" {
		t.Fatalf("variant merge leaked into the manifest: %q", base.Tokens["surface"])
	}
}

func TestThemeUnknownVariant(t *testing.T) {
	th, err := NewTheme(nil)
	if err != nil {
		t.Fatalf("new theme: %v", err)
	}
	if _, err := th.Config("neon"); err == nil {
		t.Fatal("expected error for unknown variant")
	}
}

func TestThemeVariantTemplateOverride(t *testing.T) {
	manifest := DefaultManifest()
	manifest.Variants["compact"] = theme.Variant{
		Templates: map[string]string{PartialLanding: "landing_compact.tpl"},
	}
	th, err := NewTheme(manifest)
	if err != nil {
		t.Fatalf("new theme: %v", err)
	}

	cfg, err := th.Config("compact")
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	if cfg.Partials[PartialLanding] != "landing_compact.tpl" {
		t.Fatalf("expected variant partial, got %q", cfg.Partials[PartialLanding])
	}
	if cfg.Partials[PartialPredict] != "predict.tpl" {
		t.Fatalf("expected base partial, got %q", cfg.Partials[PartialPredict])
	}
}

func TestThemeFromProviderSelectsRegisteredTheme(t *testing.T) {
	registry := theme.NewRegistry()
	if err := registry.Register(DefaultManifest()); err != nil {
		t.Fatalf("register default: %v", err)
	}
	alt := DefaultManifest()
	alt.Name = "contrast"
	alt.Tokens["brand"] = "#000000"
	if err := registry.Register(alt); err != nil {
		t.Fatalf("register contrast: %v", err)
	}

	th := NewThemeFromProvider(registry, "contrast", "dark")

	cfg, err := th.Config("")
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	if cfg.Theme != "contrast" || cfg.Variant != "dark" {
		t.Fatalf("unexpected selection %q/%q", cfg.Theme, cfg.Variant)
	}
	if cfg.Tokens["brand"] != "#000000" {
		t.Fatalf("expected contrast brand token, got %q", cfg.Tokens["brand"])
	}
	if cfg.Tokens["surface"] != "#1f2937" {
		t.Fatalf("expected default variant tokens, got %q", cfg.Tokens["surface"])
	}
}

func TestThemeFromProviderUnknownTheme(t *testing.T) {
	th := NewThemeFromProvider(theme.NewRegistry(), "missing", "")
	if _, err := th.Config(""); err == nil {
		t.Fatal("expected error for unregistered theme")
	}
}

func TestCSSVarsStyleSorted(t *testing.T) {
	got := cssVarsStyle(map[string]string{
		"--text":  "#111",
		"--brand": "#222",
	})
	want := ":root {\n--brand: #222;\n--text: #111;\n}"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("style mismatch (-want +got):\n%s", diff)
	}
	if cssVarsStyle(nil) != "" {
		t.Fatal("expected empty style for no vars")
	}
}

func TestBuildThemeContext(t *testing.T) {
	th, err := NewTheme(nil)
	if err != nil {
		t.Fatalf("new theme: %v", err)
	}
	cfg, err := th.Config("")
	if err != nil {
		t.Fatalf("config: %v", err)
	}

	ctx := buildThemeContext(cfg)
	if ctx.Stylesheet != "/assets/app.css" || ctx.Script != "/assets/app.js" {
		t.Fatalf("unexpected asset urls %q %q", ctx.Stylesheet, ctx.Script)
	}
	if !strings.Contains(ctx.CSSVarsStyle, "--category-low: #16a34a;") {
		t.Fatalf("style missing category token:\n%s", ctx.CSSVarsStyle)
	}
	if got := buildThemeContext(nil); got.Name != "" {
		t.Fatalf("nil config should produce empty context, got %+v", got)
	}
}
