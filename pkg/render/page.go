package render

import (
	"strconv"

	"github.com/goliatone/go-insurepredict/components/autocomplete"
	"github.com/goliatone/go-insurepredict/pkg/formview"
	"github.com/goliatone/go-insurepredict/pkg/landing"
	"github.com/goliatone/go-insurepredict/pkg/model"
)

// Kind selects the page template.
type Kind string

const (
	KindLanding Kind = "landing"
	KindPredict Kind = "predict"
)

const (
	predictTitle    = "Insurance Premium Predictor"
	predictSubtitle = "Enter your details to predict your insurance premium category"

	submitLabel     = "Predict Premium Category"
	submittingLabel = "Predicting..."

	// NoOccupationsMessage is shown when the occupation filter matches nothing.
	NoOccupationsMessage = "No occupations found. Please select from available options."
)

// Page is the render input. Exactly one of Landing or Form is set.
type Page struct {
	Kind    Kind          `json:"kind"`
	Title   string        `json:"title"`
	Brand   string        `json:"brand"`
	Landing *landing.View `json:"landing,omitempty"`
	Form    *Form         `json:"form,omitempty"`
}

// Form is the flattened predict form. Numbers are pre-formatted so the
// template never prints a zero value as "0".
type Form struct {
	Action   string            `json:"action"`
	Subtitle string            `json:"subtitle"`
	Endpoint string            `json:"apiEndpoint"`
	Values   map[string]string `json:"values"`
	Smoker   bool              `json:"smoker"`
	Errors   map[string]string `json:"errors"`

	CityOptions     []autocomplete.Option `json:"cityOptions"`
	ShowCityOptions bool                  `json:"showCityOptions"`

	OccupationInput       string   `json:"occupationInput"`
	Occupation            string   `json:"occupation"`
	OccupationOptions     []Choice `json:"occupationOptions"`
	ShowOccupationOptions bool     `json:"showOccupationOptions"`
	NoOccupations         string   `json:"noOccupations,omitempty"`

	Busy        bool   `json:"busy"`
	SubmitLabel string `json:"submitLabel"`
	Phase       string `json:"phase"`

	Result *Result `json:"result,omitempty"`
}

// Choice is an occupation option with its selection state.
type Choice struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Hint     string `json:"hint,omitempty"`
	Selected bool   `json:"selected"`
}

// Result is the prediction panel.
type Result struct {
	Category      string `json:"category"`
	Display       string `json:"display"`
	Level         string `json:"level"`
	Class         string `json:"class"`
	BMI           string `json:"bmi"`
	AgeGroup      string `json:"ageGroup"`
	LifestyleRisk string `json:"lifestyleRisk"`
	CityCategory  string `json:"cityCategory"`
}

// LandingPage wraps a landing view.
func LandingPage(view landing.View) Page {
	return Page{
		Kind:    KindLanding,
		Title:   view.Brand,
		Brand:   view.Brand,
		Landing: &view,
	}
}

// PredictPage flattens a form snapshot.
func PredictPage(snap formview.Snapshot) Page {
	state := snap.State
	form := &Form{
		Action:   landing.PredictPath,
		Subtitle: predictSubtitle,
		Endpoint: snap.Endpoint,
		Values: map[string]string{
			model.FieldAge:       formatInt(state.Age),
			model.FieldHeight:    formatFloat(state.Height),
			model.FieldWeight:    formatFloat(state.Weight),
			model.FieldIncomeLPA: formatFloat(state.IncomeLPA),
			model.FieldCity:      state.City,
		},
		Smoker:                state.Smoker,
		Errors:                PlainTextMap(snap.Errors),
		CityOptions:           append([]autocomplete.Option(nil), snap.CityOptions...),
		ShowCityOptions:       snap.ShowCityOptions(),
		OccupationInput:       snap.OccupationInput,
		Occupation:            string(state.Occupation),
		ShowOccupationOptions: snap.OccupationDropdown,
		Busy:                  snap.Busy,
		SubmitLabel:           submitLabel,
		Phase:                 string(snap.Phase),
	}
	if snap.Busy {
		form.SubmitLabel = submittingLabel
	}

	form.OccupationOptions = make([]Choice, 0, len(snap.OccupationOptions))
	for _, opt := range snap.OccupationOptions {
		form.OccupationOptions = append(form.OccupationOptions, Choice{
			Value:    opt.Value,
			Label:    opt.Label,
			Hint:     opt.Hint,
			Selected: opt.Value == form.Occupation,
		})
	}
	if snap.OccupationDropdown && len(form.OccupationOptions) == 0 {
		form.NoOccupations = NoOccupationsMessage
	}

	if snap.Result != nil {
		level := snap.Result.Level()
		form.Result = &Result{
			Category:      PlainText(snap.Result.PredictedCategory),
			Display:       PlainText(snap.Result.Display()),
			Level:         string(level),
			Class:         CategoryClass(level),
			BMI:           FormatBMI(state.Height, snap.Derived.BMI),
			AgeGroup:      string(snap.Derived.AgeGroup),
			LifestyleRisk: string(snap.Derived.LifestyleRisk),
			CityCategory:  string(snap.Derived.CityCategory),
		}
	}

	return Page{
		Kind:  KindPredict,
		Title: predictTitle,
		Brand: landing.Brand,
		Form:  form,
	}
}

// FormatBMI prints two decimals, or "N/A" without a usable height.
func FormatBMI(height, bmi float64) string {
	if height <= 0 {
		return "N/A"
	}
	return strconv.FormatFloat(bmi, 'f', 2, 64)
}

func formatInt(v int) string {
	if v == 0 {
		return ""
	}
	return strconv.Itoa(v)
}

func formatFloat(v float64) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
