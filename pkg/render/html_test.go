package render

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goliatone/go-insurepredict/components/autocomplete"
	"github.com/goliatone/go-insurepredict/pkg/formview"
	"github.com/goliatone/go-insurepredict/pkg/landing"
	"github.com/goliatone/go-insurepredict/pkg/model"
)

func newHTML(t *testing.T) *HTML {
	t.Helper()
	renderer, err := NewHTML()
	if err != nil {
		t.Fatalf("new html renderer: %v", err)
	}
	return renderer
}

func render(t *testing.T, r Renderer, page Page, opts RenderOptions) string {
	t.Helper()
	out, err := r.Render(context.Background(), page, opts)
	if err != nil {
		t.Fatalf("render %s: %v", page.Kind, err)
	}
	return string(out)
}

func assertContains(t *testing.T, out string, fragments ...string) {
	t.Helper()
	for _, fragment := range fragments {
		if !strings.Contains(out, fragment) {
			t.Fatalf("output missing %q:\n%s", fragment, out)
		}
	}
}

func TestHTMLRendersLanding(t *testing.T) {
	out := render(t, newHTML(t), LandingPage(landing.New(true)), RenderOptions{})

	assertContains(t, out,
		"<title>InsurePredict</title>",
		"Predict Your Insurance Premium in Seconds",
		`class="nav-links open"`,
		`<span class="step-number">1</span>`,
		`href="/predict"`,
		"AI-Powered Accuracy",
		`<link rel="stylesheet" href="/assets/app.css">`,
		"--category-high: #dc2626;",
	)
}

func TestHTMLRendersEmptyForm(t *testing.T) {
	out := render(t, newHTML(t), PredictPage(formview.Snapshot{}), RenderOptions{})

	assertContains(t, out,
		"<h1>Insurance Premium Predictor</h1>",
		"API Endpoint URL",
		`placeholder="https://your-api-endpoint.com/predict"`,
		"Age *",
		"Height (meters) *",
		"Weight (kg) *",
		"Annual Income (LPA) *",
		"City *",
		"Occupation *",
		"I am a smoker",
		">Predict Premium Category</button>",
		">Reset</button>",
		`id="age" name="age" type="number" value=""`,
	)
	if strings.Contains(out, "Prediction Result") {
		t.Fatal("empty form should not render a result panel")
	}
	if strings.Contains(out, `class="options"`) {
		t.Fatal("closed dropdowns should not render options")
	}
}

func TestHTMLRendersErrorsEscaped(t *testing.T) {
	page := PredictPage(formview.Snapshot{
		Errors: model.ValidationErrors{
			model.FieldAPI:  `boom "quoted" & <i>styled</i>`,
			model.FieldCity: "City is required",
		},
	})
	out := render(t, newHTML(t), page, RenderOptions{})

	assertContains(t, out,
		`<div class="error api-error">boom &quot;quoted&quot; &amp; styled</div>`,
		`<p class="error">City is required</p>`,
	)
	if strings.Contains(out, "<i>styled</i>") {
		t.Fatal("remote markup leaked into the page")
	}
}

func TestHTMLRendersDropdownsAndResult(t *testing.T) {
	page := PredictPage(formview.Snapshot{
		State: model.FormState{Age: 30, Height: 1.75, Weight: 70, City: "Mum", Smoker: true},
		Derived: model.DerivedFields{
			BMI:           22.857142,
			AgeGroup:      model.AgeGroupAdult,
			LifestyleRisk: model.LifestyleRiskMedium,
			CityCategory:  model.CityTier1,
		},
		CityOptions:        []autocomplete.Option{{Value: "Mumbai", Label: "Mumbai"}},
		CityDropdown:       true,
		OccupationDropdown: true,
		Busy:               true,
		Result:             &model.PredictionResult{PredictedCategory: "medium"},
	})
	out := render(t, newHTML(t), page, RenderOptions{})

	assertContains(t, out,
		`<button type="submit" name="select_city" value="Mumbai">Mumbai</button>`,
		NoOccupationsMessage,
		`value="on" checked`,
		"disabled>Predicting...</button>",
		`class="card result category category-medium"`,
		"Premium Category: <strong>MEDIUM</strong>",
		"<dd>22.86</dd>",
		"<dd>Adult</dd>",
		"<dd>Medium</dd>",
	)
}

func TestHTMLDarkVariant(t *testing.T) {
	out := render(t, newHTML(t), LandingPage(landing.New(false)), RenderOptions{Variant: "dark"})
	assertContains(t, out, `data-variant="dark"`, "--surface: #1f2937;")

	if _, err := newHTML(t).Render(context.Background(), LandingPage(landing.New(false)), RenderOptions{Variant: "neon"}); err == nil {
		t.Fatal("expected error for unknown variant")
	}
}

func TestHTMLRejectsIncompletePages(t *testing.T) {
	r := newHTML(t)
	for _, page := range []Page{
		{Kind: KindLanding},
		{Kind: KindPredict},
		{Kind: "other"},
	} {
		if _, err := r.Render(context.Background(), page, RenderOptions{}); err == nil {
			t.Fatalf("expected error for %+v", page)
		}
	}
}

func TestJSONRendersPageModel(t *testing.T) {
	page := PredictPage(formview.Snapshot{State: model.FormState{City: "Pune"}})
	out := render(t, JSON{}, page, RenderOptions{})

	var decoded struct {
		Kind string `json:"kind"`
		Form struct {
			Values map[string]string `json:"values"`
		} `json:"form"`
	}
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.Kind != "predict" || decoded.Form.Values["city"] != "Pune" {
		t.Fatalf("unexpected json page: %s", out)
	}
}

func TestRegistryFormats(t *testing.T) {
	registry, err := DefaultRegistry()
	if err != nil {
		t.Fatalf("default registry: %v", err)
	}

	if err := registry.Register(JSON{Indent: true}); err == nil {
		t.Fatal("expected duplicate registration error")
	}
	if got := strings.Join(registry.Formats(), ","); got != "html,json" {
		t.Fatalf("unexpected formats %q", got)
	}
	if _, err := registry.ForFormat("pdf"); !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}

	cases := map[string]string{
		"":       "html",
		" JSON ": "json",
		"html":   "html",
	}
	for format, want := range cases {
		renderer, err := registry.ForFormat(format)
		if err != nil {
			t.Fatalf("format %q: %v", format, err)
		}
		if renderer.Name() != want {
			t.Fatalf("format %q resolved to %q, want %q", format, renderer.Name(), want)
		}
	}
}

func TestAssetHandlerServesEmbeddedFiles(t *testing.T) {
	srv := httptest.NewServer(AssetHandler("/assets"))
	defer srv.Close()

	res, err := http.Get(srv.URL + "/assets/app.css")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer res.Body.Close()

	body, _ := io.ReadAll(res.Body)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	if !strings.Contains(string(body), ".category-high") {
		t.Fatalf("unexpected stylesheet body:\n%s", body)
	}
}
