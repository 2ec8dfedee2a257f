// Package landing holds the static marketing content shown at "/". The only
// state is whether the mobile menu is open.
package landing

import (
	"net/url"
	"strings"
)

// Brand is the product name used across pages.
const Brand = "InsurePredict"

// PredictPath is where every call to action points.
const PredictPath = "/predict"

// MenuParam is the query parameter that opens the mobile menu.
const MenuParam = "menu"

type Feature struct {
	Icon        string `json:"icon"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type Step struct {
	Number      int    `json:"number"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type Link struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

// View is the landing page model.
type View struct {
	Brand    string    `json:"brand"`
	MenuOpen bool      `json:"menuOpen"`
	Headline string    `json:"headline"`
	Tagline  string    `json:"tagline"`
	Intro    string    `json:"intro"`
	Features []Feature `json:"features"`
	Steps    []Step    `json:"steps"`
	Nav      []Link    `json:"nav"`
	CTA      Link      `json:"cta"`
	Closing  string    `json:"closing"`
	About    string    `json:"about"`
	MenuHref string    `json:"menuHref"`
}

var features = []Feature{
	{Icon: "🧠", Title: "AI-Powered Accuracy", Description: "Advanced machine learning algorithms analyze your profile for precise premium predictions."},
	{Icon: "⚡", Title: "Instant Results", Description: "Get your insurance premium category in seconds with our lightning-fast prediction engine."},
	{Icon: "🔒", Title: "Privacy First", Description: "Your data is processed securely and never stored. Complete privacy guaranteed."},
	{Icon: "📊", Title: "Comprehensive Analysis", Description: "Multi-factor analysis including BMI, lifestyle, demographics, and location data."},
	{Icon: "📍", Title: "Location Intelligence", Description: "Smart city classification system for more accurate regional premium estimates."},
	{Icon: "💼", Title: "Career-Aware", Description: "Occupation-specific risk assessment for personalized premium calculations."},
}

var steps = []Step{
	{Number: 1, Title: "Enter Your Details", Description: "Provide basic information like age, height, weight, income, city, and occupation. Our smart autocomplete makes it quick and effortless."},
	{Number: 2, Title: "AI Analysis", Description: "Our advanced machine learning model analyzes your profile, calculating BMI, lifestyle risk, age group, and city tier for accurate predictions."},
	{Number: 3, Title: "Get Results", Description: "Receive your premium category (High, Medium, or Low) instantly, along with detailed insights about your comprehensive risk profile."},
}

// New returns the landing view with the menu open or closed.
func New(menuOpen bool) View {
	menuHref := "/?" + MenuParam + "=open"
	if menuOpen {
		menuHref = "/"
	}
	return View{
		Brand:    Brand,
		MenuOpen: menuOpen,
		Headline: "Predict Your Insurance Premium in Seconds",
		Tagline:  "AI-Powered Insurance Predictions",
		Intro:    "Advanced machine learning analyzes your profile to provide instant, accurate insurance premium category predictions. Make informed decisions before you apply.",
		Features: append([]Feature(nil), features...),
		Steps:    append([]Step(nil), steps...),
		Nav: []Link{
			{Label: "Features", Href: "#features"},
			{Label: "How It Works", Href: "#how-it-works"},
		},
		CTA:      Link{Label: "Start Prediction", Href: PredictPath},
		Closing:  "Join thousands of users who trust " + Brand + " for accurate, instant insurance premium predictions. Make informed decisions today.",
		About:    "AI-powered insurance premium prediction tool that helps you understand your insurance costs before you apply. Make smarter insurance decisions with confidence.",
		MenuHref: menuHref,
	}
}

// FromQuery builds the view from request query values.
func FromQuery(values url.Values) View {
	return New(MenuOpenFrom(values))
}

// MenuOpenFrom reports whether the query asks for an open menu.
func MenuOpenFrom(values url.Values) bool {
	switch strings.ToLower(strings.TrimSpace(values.Get(MenuParam))) {
	case "open", "1", "true":
		return true
	}
	return false
}
