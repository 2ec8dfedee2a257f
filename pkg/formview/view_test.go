package formview

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-insurepredict/components/autocomplete"
	"github.com/goliatone/go-insurepredict/pkg/model"
	"github.com/goliatone/go-insurepredict/pkg/predict"
	"github.com/goliatone/go-insurepredict/pkg/validation"
)

type stubPredictor struct {
	mu      sync.Mutex
	calls   []model.PredictionRequest
	result  model.PredictionResult
	err     error
	block   chan struct{}
	entered chan struct{}
}

func (s *stubPredictor) Predict(_ context.Context, _ string, payload model.PredictionRequest) (model.PredictionResult, error) {
	s.mu.Lock()
	s.calls = append(s.calls, payload)
	s.mu.Unlock()
	if s.entered != nil {
		s.entered <- struct{}{}
	}
	if s.block != nil {
		<-s.block
	}
	return s.result, s.err
}

func (s *stubPredictor) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

func fill(t *testing.T, v *View) {
	t.Helper()
	edits := [][2]string{
		{model.FieldEndpoint, "http://localhost:8000/predict"},
		{model.FieldAge, "30"},
		{model.FieldHeight, "1.75"},
		{model.FieldWeight, "70"},
		{model.FieldIncomeLPA, "8"},
		{model.FieldCity, "Mumbai"},
	}
	for _, edit := range edits {
		if err := v.Edit(edit[0], edit[1]); err != nil {
			t.Fatalf("edit %s: %v", edit[0], err)
		}
	}
	if err := v.SelectOccupation("private_job"); err != nil {
		t.Fatalf("select occupation: %v", err)
	}
}

func TestSubmit_EmptyFormReportsSevenErrorsWithoutNetwork(t *testing.T) {
	stub := &stubPredictor{}
	v := New(WithPredictor(stub))

	err := v.Submit(context.Background())
	var verr *validation.Error
	if !errors.As(err, &verr) {
		t.Fatalf("expected *validation.Error, got %v", err)
	}

	snap := v.Snapshot()
	want := []string{"age", "apiEndpoint", "city", "height", "income_lpa", "occupation", "weight"}
	if diff := cmp.Diff(want, snap.Errors.Fields()); diff != "" {
		t.Fatalf("error fields mismatch (-want +got):\n%s", diff)
	}
	if stub.callCount() != 0 {
		t.Fatalf("expected no network call, got %d", stub.callCount())
	}
	if snap.Phase != PhaseIdle || snap.Busy {
		t.Fatalf("expected idle and not busy, got %s busy=%v", snap.Phase, snap.Busy)
	}
}

func TestSubmit_SuccessStoresResultAndDerived(t *testing.T) {
	stub := &stubPredictor{result: model.PredictionResult{PredictedCategory: "Medium"}}
	var phases []Phase
	v := New(WithPredictor(stub), WithPhaseObserver(func(_, to Phase) { phases = append(phases, to) }))
	fill(t, v)

	if err := v.Submit(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}

	snap := v.Snapshot()
	if !snap.HasResult() || snap.Result.Display() != "MEDIUM" {
		t.Fatalf("unexpected result: %#v", snap.Result)
	}
	wantDerived := model.DerivedFields{
		BMI:           22.86,
		AgeGroup:      model.AgeGroupAdult,
		LifestyleRisk: model.LifestyleRiskLow,
		CityCategory:  model.CityTier1,
	}
	if diff := cmp.Diff(wantDerived, snap.Derived); diff != "" {
		t.Fatalf("derived mismatch (-want +got):\n%s", diff)
	}
	if len(snap.Errors) != 0 {
		t.Fatalf("expected no errors, got %#v", snap.Errors)
	}

	wantPayload := model.PredictionRequest{
		Age: 30, Height: 1.75, Weight: 70, City: "Mumbai",
		Smoker: false, Occupation: "private_job", IncomeLPA: 8,
	}
	if diff := cmp.Diff([]model.PredictionRequest{wantPayload}, stub.calls); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}

	wantPhases := []Phase{PhaseValidating, PhaseSubmitting, PhaseSuccess, PhaseIdle}
	if diff := cmp.Diff(wantPhases, phases); diff != "" {
		t.Fatalf("phases mismatch (-want +got):\n%s", diff)
	}
}

func TestSubmit_FailureSurfacesRemoteMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"model unavailable"}`))
	}))
	defer srv.Close()

	v := New(WithPredictor(predict.New()))
	fill(t, v)
	if err := v.Edit(model.FieldEndpoint, srv.URL); err != nil {
		t.Fatalf("edit endpoint: %v", err)
	}

	if err := v.Submit(context.Background()); !predict.IsApplication(err) {
		t.Fatalf("expected application error, got %v", err)
	}

	snap := v.Snapshot()
	want := model.ValidationErrors{model.FieldAPI: "model unavailable"}
	if diff := cmp.Diff(want, snap.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
	if snap.HasResult() || snap.Busy || snap.Phase != PhaseIdle {
		t.Fatalf("unexpected snapshot after failure: %#v", snap)
	}
}

func TestSubmit_FailureClearsPreviousResult(t *testing.T) {
	stub := &stubPredictor{result: model.PredictionResult{PredictedCategory: "Low"}}
	v := New(WithPredictor(stub))
	fill(t, v)
	if err := v.Submit(context.Background()); err != nil {
		t.Fatalf("first submit: %v", err)
	}

	stub.err = &predict.TransportError{Err: errors.New("connection refused")}
	if err := v.Submit(context.Background()); err == nil {
		t.Fatalf("expected failure")
	}
	snap := v.Snapshot()
	if snap.HasResult() {
		t.Fatalf("expected result to be cleared")
	}
	if snap.Error(model.FieldAPI) != "connection refused" {
		t.Fatalf("unexpected api error %q", snap.Error(model.FieldAPI))
	}
}

func TestSubmit_WhileBusyReturnsErrBusy(t *testing.T) {
	stub := &stubPredictor{
		result:  model.PredictionResult{PredictedCategory: "High"},
		block:   make(chan struct{}),
		entered: make(chan struct{}, 1),
	}
	v := New(WithPredictor(stub))
	fill(t, v)

	done := make(chan error, 1)
	go func() { done <- v.Submit(context.Background()) }()
	<-stub.entered

	if snap := v.Snapshot(); !snap.Busy || snap.Phase != PhaseSubmitting {
		t.Fatalf("expected busy submitting snapshot, got busy=%v phase=%s", snap.Busy, snap.Phase)
	}
	if err := v.Edit(model.FieldWeight, "72"); err != nil {
		t.Fatalf("edits must stay responsive: %v", err)
	}
	if err := v.Submit(context.Background()); !errors.Is(err, ErrBusy) {
		t.Fatalf("expected ErrBusy, got %v", err)
	}

	close(stub.block)
	if err := <-done; err != nil {
		t.Fatalf("submit: %v", err)
	}
	if stub.callCount() != 1 {
		t.Fatalf("expected a single call, got %d", stub.callCount())
	}
}

func TestEdit_ClearsOnlyEditedFieldError(t *testing.T) {
	v := New(WithPredictor(&stubPredictor{}))
	_ = v.Submit(context.Background())

	if err := v.Edit(model.FieldAge, "40"); err != nil {
		t.Fatalf("edit: %v", err)
	}
	if err := v.Edit(model.FieldOccupationSearch, "gov"); err != nil {
		t.Fatalf("edit: %v", err)
	}

	snap := v.Snapshot()
	if snap.Errors.Has(model.FieldAge) {
		t.Fatalf("expected age error cleared")
	}
	if !snap.Errors.Has(model.FieldOccupation) || !snap.Errors.Has(model.FieldHeight) {
		t.Fatalf("expected other errors kept, got %#v", snap.Errors)
	}
}

func TestEdit_ParsesInput(t *testing.T) {
	v := New(WithPredictor(&stubPredictor{}))
	_ = v.Edit(model.FieldAge, "abc")
	_ = v.Edit(model.FieldHeight, " 1.6 ")
	_ = v.Edit(model.FieldWeight, "NaN")
	_ = v.Edit(model.FieldSmoker, "on")

	state := v.Snapshot().State
	if state.Age != 0 || state.Height != 1.6 || state.Weight != 0 || !state.Smoker {
		t.Fatalf("unexpected state: %#v", state)
	}
	if err := v.Edit("nickname", "x"); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
}

func TestCityAutocomplete(t *testing.T) {
	v := New(
		WithPredictor(&stubPredictor{}),
		WithCities(autocomplete.Cities([]string{"Mumbai", "Delhi", "Bangalore", "Hyderabad", "Chennai", "Kolkata"})),
	)

	_ = v.Edit(model.FieldCity, "ban")
	snap := v.Snapshot()
	if !snap.ShowCityOptions() || len(snap.CityOptions) != 1 || snap.CityOptions[0].Value != "Bangalore" {
		t.Fatalf("unexpected city options: %#v open=%v", snap.CityOptions, snap.CityDropdown)
	}

	_ = v.Edit(model.FieldCity, "")
	if v.Snapshot().CityDropdown {
		t.Fatalf("expected dropdown closed for empty city")
	}

	_ = v.Edit(model.FieldCity, "del")
	v.SelectCity("Delhi")
	snap = v.Snapshot()
	if snap.State.City != "Delhi" || snap.CityDropdown || len(snap.CityOptions) != 0 {
		t.Fatalf("unexpected state after select: %#v", snap)
	}

	if err := v.Focus(model.FieldCity); err != nil {
		t.Fatalf("focus: %v", err)
	}
	if !v.Snapshot().ShowCityOptions() {
		t.Fatalf("expected focus to reopen city options")
	}
}

func TestOccupationAutocomplete(t *testing.T) {
	v := New(WithPredictor(&stubPredictor{}))

	_ = v.Focus(model.FieldOccupationSearch)
	snap := v.Snapshot()
	if !snap.OccupationDropdown || len(snap.OccupationOptions) != 7 {
		t.Fatalf("expected all occupations open, got %d open=%v", len(snap.OccupationOptions), snap.OccupationDropdown)
	}

	_ = v.Edit(model.FieldOccupationSearch, "business o")
	snap = v.Snapshot()
	if len(snap.OccupationOptions) != 1 || snap.OccupationOptions[0].Value != "business_owner" {
		t.Fatalf("unexpected options: %#v", snap.OccupationOptions)
	}

	if err := v.SelectOccupation("astronaut"); !errors.Is(err, ErrUnknownOccupation) {
		t.Fatalf("expected ErrUnknownOccupation, got %v", err)
	}
	if err := v.SelectOccupation("business_owner"); err != nil {
		t.Fatalf("select: %v", err)
	}
	snap = v.Snapshot()
	if snap.State.Occupation != model.OccupationBusinessOwner || snap.OccupationInput != "Business Owner" || snap.OccupationDropdown {
		t.Fatalf("unexpected state after select: %#v", snap)
	}
}

func TestClick_OutsideClosesDropdowns(t *testing.T) {
	v := New(WithPredictor(&stubPredictor{}))
	_ = v.Edit(model.FieldCity, "m")
	_ = v.Focus(model.FieldOccupationSearch)

	v.Click(Target{RegionOccupation})
	snap := v.Snapshot()
	if !snap.CityDropdown || !snap.OccupationDropdown {
		t.Fatalf("click inside a region must keep dropdowns open")
	}

	v.Click(nil)
	snap = v.Snapshot()
	if snap.CityDropdown || snap.OccupationDropdown {
		t.Fatalf("click outside must close dropdowns")
	}
}

func TestReset_KeepsEndpoint(t *testing.T) {
	stub := &stubPredictor{result: model.PredictionResult{PredictedCategory: "Low"}}
	v := New(WithPredictor(stub))
	fill(t, v)
	_ = v.Submit(context.Background())

	v.Reset()
	snap := v.Snapshot()
	if snap.State != (model.FormState{}) {
		t.Fatalf("expected default state, got %#v", snap.State)
	}
	if snap.HasResult() || len(snap.Errors) != 0 || snap.OccupationSearch != "" || snap.CityDropdown || snap.OccupationDropdown {
		t.Fatalf("unexpected snapshot after reset: %#v", snap)
	}
	if snap.Endpoint != "http://localhost:8000/predict" {
		t.Fatalf("expected endpoint to survive reset, got %q", snap.Endpoint)
	}
}

func TestSnapshot_IsACopy(t *testing.T) {
	stub := &stubPredictor{result: model.PredictionResult{PredictedCategory: "High"}}
	v := New(WithPredictor(stub))
	fill(t, v)
	_ = v.Submit(context.Background())

	snap := v.Snapshot()
	snap.Result.PredictedCategory = "tampered"
	snap.Errors["age"] = "tampered"

	again := v.Snapshot()
	if again.Result.PredictedCategory != "High" || again.Errors.Has("age") {
		t.Fatalf("snapshot mutation leaked into the view")
	}
}
