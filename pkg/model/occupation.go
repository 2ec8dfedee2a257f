package model

import "strings"

// Occupation is one of the fixed occupation values understood by the
// prediction endpoint.
type Occupation string

const (
	OccupationRetired       Occupation = "retired"
	OccupationFreelancer    Occupation = "freelancer"
	OccupationStudent       Occupation = "student"
	OccupationGovernmentJob Occupation = "government_job"
	OccupationBusinessOwner Occupation = "business_owner"
	OccupationUnemployed    Occupation = "unemployed"
	OccupationPrivateJob    Occupation = "private_job"
)

var occupations = []Occupation{
	OccupationRetired,
	OccupationFreelancer,
	OccupationStudent,
	OccupationGovernmentJob,
	OccupationBusinessOwner,
	OccupationUnemployed,
	OccupationPrivateJob,
}

var occupationHints = map[Occupation]string{
	OccupationGovernmentJob: "Govt. Employee",
	OccupationBusinessOwner: "Entrepreneur",
	OccupationPrivateJob:    "Corporate",
}

// Occupations returns the fixed occupation set in display order.
func Occupations() []Occupation {
	return append([]Occupation(nil), occupations...)
}

// ParseOccupation returns the occupation matching raw exactly.
func ParseOccupation(raw string) (Occupation, bool) {
	for _, occupation := range occupations {
		if string(occupation) == raw {
			return occupation, true
		}
	}
	return "", false
}

// Valid reports whether o belongs to the fixed set.
func (o Occupation) Valid() bool {
	_, ok := ParseOccupation(string(o))
	return ok
}

// Label formats the value for display: underscores become spaces and each
// word is title-cased ("government_job" -> "Government Job").
func (o Occupation) Label() string {
	words := strings.Fields(strings.ReplaceAll(string(o), "_", " "))
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}

// Hint returns the optional secondary label shown next to a few occupations.
func (o Occupation) Hint() string {
	return occupationHints[o]
}
