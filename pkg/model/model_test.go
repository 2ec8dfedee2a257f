package model

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestOccupationLabelAndHint(t *testing.T) {
	cases := []struct {
		occupation Occupation
		label      string
		hint       string
	}{
		{OccupationRetired, "Retired", ""},
		{OccupationGovernmentJob, "Government Job", "Govt. Employee"},
		{OccupationBusinessOwner, "Business Owner", "Entrepreneur"},
		{OccupationPrivateJob, "Private Job", "Corporate"},
	}
	for _, tc := range cases {
		if got := tc.occupation.Label(); got != tc.label {
			t.Fatalf("%s label: want %q, got %q", tc.occupation, tc.label, got)
		}
		if got := tc.occupation.Hint(); got != tc.hint {
			t.Fatalf("%s hint: want %q, got %q", tc.occupation, tc.hint, got)
		}
	}
}

func TestOccupationsFixedOrder(t *testing.T) {
	want := []Occupation{
		"retired", "freelancer", "student", "government_job",
		"business_owner", "unemployed", "private_job",
	}
	if diff := cmp.Diff(want, Occupations()); diff != "" {
		t.Fatalf("occupations mismatch (-want +got):\n%s", diff)
	}
	if Occupation("astronaut").Valid() {
		t.Fatalf("expected unknown occupation to be invalid")
	}
}

func TestPredictionResultLevel(t *testing.T) {
	cases := map[string]Level{
		"High":   LevelHigh,
		"MEDIUM": LevelMedium,
		" low ":  LevelLow,
		"severe": LevelNeutral,
		"":       LevelNeutral,
	}
	for category, want := range cases {
		if got := (PredictionResult{PredictedCategory: category}).Level(); got != want {
			t.Fatalf("%q: want %s, got %s", category, want, got)
		}
	}
	if got := (PredictionResult{PredictedCategory: "Medium"}).Display(); got != "MEDIUM" {
		t.Fatalf("unexpected display %q", got)
	}
}

func TestRequestCarriesRawFieldsOnly(t *testing.T) {
	state := FormState{
		Age: 30, Height: 1.75, Weight: 70, IncomeLPA: 8,
		City: "Mumbai", Occupation: OccupationPrivateJob,
	}
	data, err := json.Marshal(state.Request())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"age":30,"height":1.75,"weight":70,"city":"Mumbai","smoker":false,"occupation":"private_job","income_lpa":8}`
	if string(data) != want {
		t.Fatalf("payload mismatch:\nwant %s\ngot  %s", want, data)
	}
}

func TestValidationErrorsHelpers(t *testing.T) {
	errs := ValidationErrors{"city": "City is required", "age": "bad"}
	if errs.Valid() || !errs.Has("age") {
		t.Fatalf("unexpected helpers result")
	}
	clone := errs.Clone()
	delete(clone, "age")
	if !errs.Has("age") {
		t.Fatalf("clone must not alias the original")
	}
	if diff := cmp.Diff([]string{"age", "city"}, errs.Fields()); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
	var empty ValidationErrors
	if !empty.Valid() || empty.Clone() == nil {
		t.Fatalf("nil errors should be valid and clone to an empty map")
	}
}
