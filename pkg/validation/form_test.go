package validation

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-insurepredict/pkg/model"
)

func validState() model.FormState {
	return model.FormState{
		Age:        30,
		Height:     1.75,
		Weight:     70,
		IncomeLPA:  8,
		City:       "Mumbai",
		Occupation: model.OccupationPrivateJob,
	}
}

const endpoint = "http://localhost:8000/predict"

func TestValidate_ValidState(t *testing.T) {
	if errs := Validate(validState(), endpoint); !errs.Valid() {
		t.Fatalf("expected no errors, got %#v", errs)
	}
	if err := Check(validState(), endpoint); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}

func TestValidate_EmptyFormReportsEveryField(t *testing.T) {
	errs := Validate(model.FormState{}, "   ")

	want := model.ValidationErrors{
		model.FieldAge:        MsgAge,
		model.FieldHeight:     MsgHeight,
		model.FieldWeight:     MsgWeight,
		model.FieldIncomeLPA:  MsgIncome,
		model.FieldCity:       MsgCity,
		model.FieldOccupation: MsgOccupation,
		model.FieldEndpoint:   MsgEndpoint,
	}
	if diff := cmp.Diff(want, errs); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
	if len(errs) != 7 {
		t.Fatalf("expected exactly 7 entries, got %d", len(errs))
	}
}

func TestValidate_AgeBoundaries(t *testing.T) {
	cases := map[int]bool{
		-1:  false,
		0:   false,
		1:   true,
		119: true,
		120: false,
		150: false,
	}
	for age, valid := range cases {
		state := validState()
		state.Age = age
		errs := Validate(state, endpoint)
		if got := !errs.Has(model.FieldAge); got != valid {
			t.Fatalf("age %d: expected valid=%v, errors %#v", age, valid, errs)
		}
	}
}

func TestValidate_HeightBoundaries(t *testing.T) {
	cases := map[float64]bool{
		0:          false,
		-0.5:       false,
		0.01:       true,
		2.499:      true,
		2.5:        false,
		3:          false,
		math.NaN(): false,
	}
	for height, valid := range cases {
		state := validState()
		state.Height = height
		errs := Validate(state, endpoint)
		if got := !errs.Has(model.FieldHeight); got != valid {
			t.Fatalf("height %v: expected valid=%v, errors %#v", height, valid, errs)
		}
	}
}

func TestValidate_RulesAreIndependent(t *testing.T) {
	state := validState()
	state.Weight = 0
	state.City = "  "

	errs := Validate(state, endpoint)
	want := model.ValidationErrors{
		model.FieldWeight: MsgWeight,
		model.FieldCity:   MsgCity,
	}
	if diff := cmp.Diff(want, errs); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_IncomeAndInfinity(t *testing.T) {
	state := validState()
	state.IncomeLPA = math.Inf(1)
	state.Weight = -3
	errs := Validate(state, endpoint)
	if !errs.Has(model.FieldIncomeLPA) || !errs.Has(model.FieldWeight) {
		t.Fatalf("expected income and weight errors, got %#v", errs)
	}
}

func TestValidate_UnknownOccupation(t *testing.T) {
	state := validState()
	state.Occupation = "astronaut"
	errs := Validate(state, endpoint)
	if errs[model.FieldOccupation] != MsgOccupationUnknown {
		t.Fatalf("expected unknown occupation message, got %#v", errs)
	}
}

func TestCheck_ReturnsTypedError(t *testing.T) {
	state := validState()
	state.City = ""

	err := Check(state, "")
	var verr *Error
	if !errors.As(err, &verr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if !strings.Contains(err.Error(), "city: City is required") {
		t.Fatalf("unexpected message %q", err.Error())
	}
	want := []Issue{
		{Path: "/apiEndpoint", Field: model.FieldEndpoint, Message: MsgEndpoint},
		{Path: "/city", Field: model.FieldCity, Message: MsgCity},
	}
	if diff := cmp.Diff(want, verr.Issues()); diff != "" {
		t.Fatalf("issues mismatch (-want +got):\n%s", diff)
	}
}
