package autocomplete

import (
	"strings"

	"github.com/goliatone/go-insurepredict/pkg/model"
)

// Candidate is a selectable entry. Value is the canonical value written to
// the form; Label is the display text; Aliases are extra match keys.
type Candidate struct {
	Value   string
	Label   string
	Hint    string
	Aliases []string
}

// Option is the JSON shape returned by the handler.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Hint  string `json:"hint,omitempty"`
}

// Option converts the candidate into its wire shape.
func (c Candidate) Option() Option {
	return Option{Value: c.Value, Label: c.label(), Hint: c.Hint}
}

func (c Candidate) label() string {
	if c.Label != "" {
		return c.Label
	}
	return c.Value
}

// Matches reports whether query is a case-insensitive substring of the label
// or an alias. An empty query matches everything.
func (c Candidate) Matches(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	return c.matches(q)
}

func (c Candidate) matches(q string) bool {
	if strings.Contains(strings.ToLower(c.label()), q) {
		return true
	}
	for _, alias := range c.Aliases {
		if strings.Contains(strings.ToLower(alias), q) {
			return true
		}
	}
	return false
}

// CityCandidates maps plain city names into candidates.
func CityCandidates(cities []string) []Candidate {
	out := make([]Candidate, 0, len(cities))
	for _, city := range cities {
		city = strings.TrimSpace(city)
		if city == "" {
			continue
		}
		out = append(out, Candidate{Value: city, Label: city})
	}
	return out
}

// OccupationCandidates returns the fixed occupation set. Each entry matches
// on its label, its value with underscores replaced by spaces, and its raw
// value.
func OccupationCandidates() []Candidate {
	occupations := model.Occupations()
	out := make([]Candidate, 0, len(occupations))
	for _, occupation := range occupations {
		value := string(occupation)
		out = append(out, Candidate{
			Value:   value,
			Label:   occupation.Label(),
			Hint:    occupation.Hint(),
			Aliases: []string{strings.ReplaceAll(value, "_", " "), value},
		})
	}
	return out
}
