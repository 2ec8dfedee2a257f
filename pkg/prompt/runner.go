// Package prompt fills the prediction form from a terminal. It drives the
// same formview.View the web pages use.
package prompt

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-insurepredict/components/autocomplete"
	"github.com/goliatone/go-insurepredict/pkg/catalog"
	"github.com/goliatone/go-insurepredict/pkg/formview"
	"github.com/goliatone/go-insurepredict/pkg/model"
	"github.com/goliatone/go-insurepredict/pkg/predict"
	"github.com/goliatone/go-insurepredict/pkg/render"
	"github.com/goliatone/go-insurepredict/pkg/validation"
)

// promptOrder is the order fields are asked in.
var promptOrder = []string{
	model.FieldEndpoint,
	model.FieldAge,
	model.FieldHeight,
	model.FieldWeight,
	model.FieldIncomeLPA,
	model.FieldCity,
	model.FieldSmoker,
	model.FieldOccupation,
}

// Runner walks the user through the form and submits it.
type Runner struct {
	driver      PromptDriver
	out         io.Writer
	format      OutputFormat
	cities      *autocomplete.Component
	occupations *autocomplete.Component
	logger      *zap.Logger
}

// New constructs a Runner with a survey driver writing to stdout.
func New(options ...Option) *Runner {
	r := &Runner{
		out:    os.Stdout,
		format: OutputFormatPrettyText,
		logger: zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.driver == nil {
		r.driver = NewSurveyDriver(r.out)
	}
	if r.cities == nil {
		r.cities = autocomplete.Cities(catalog.MustDefault().Cities)
	}
	if r.occupations == nil {
		r.occupations = autocomplete.Occupations()
	}
	return r
}

// Run prompts every field, submits, and prints the result. Fields that fail
// validation are reported and asked again until the form is valid. A
// prediction failure is reported and returned.
func (r *Runner) Run(ctx context.Context, view *formview.View) error {
	if ctx == nil {
		return errors.New("prompt: context is required")
	}
	if view == nil {
		return ErrNoView
	}

	fields := promptOrder
	for {
		for _, field := range fields {
			if err := r.promptField(ctx, view, field); err != nil {
				return err
			}
		}

		err := view.Submit(ctx)
		if err == nil {
			return r.print(view.Snapshot())
		}

		var invalid *validation.Error
		if !errors.As(err, &invalid) {
			_ = r.driver.Info(ctx, "Prediction failed: "+predict.Message(err))
			return err
		}

		for _, issue := range invalid.Issues() {
			_ = r.driver.Info(ctx, fmt.Sprintf("Invalid %s: %s", issue.Field, issue.Message))
		}
		fields = failing(invalid.Fields)
		if len(fields) == 0 {
			return err
		}
		r.logger.Debug("prompt: asking again", zap.Strings("fields", fields))
	}
}

func (r *Runner) promptField(ctx context.Context, view *formview.View, field string) error {
	snap := view.Snapshot()
	switch field {
	case model.FieldEndpoint:
		return r.promptText(ctx, view, field, InputConfig{
			Message: "API Endpoint URL",
			Default: snap.Endpoint,
			Help:    "e.g. https://your-api-endpoint.com/predict",
		})
	case model.FieldAge:
		return r.promptNumber(ctx, view, field, "Age", formatInt(snap.State.Age), true)
	case model.FieldHeight:
		return r.promptNumber(ctx, view, field, "Height (meters)", formatFloat(snap.State.Height), false)
	case model.FieldWeight:
		return r.promptNumber(ctx, view, field, "Weight (kg)", formatFloat(snap.State.Weight), false)
	case model.FieldIncomeLPA:
		return r.promptNumber(ctx, view, field, "Annual Income (LPA)", formatFloat(snap.State.IncomeLPA), false)
	case model.FieldCity:
		return r.promptCity(ctx, view, snap.State.City)
	case model.FieldSmoker:
		smoker, err := r.driver.Confirm(ctx, ConfirmConfig{
			Message: "I am a smoker",
			Default: snap.State.Smoker,
		})
		if err != nil {
			return err
		}
		return view.Edit(model.FieldSmoker, strconv.FormatBool(smoker))
	case model.FieldOccupation:
		return r.promptOccupation(ctx, view, snap.State.Occupation)
	default:
		return fmt.Errorf("prompt: unknown field %q", field)
	}
}

func (r *Runner) promptText(ctx context.Context, view *formview.View, field string, cfg InputConfig) error {
	value, err := r.driver.Input(ctx, cfg)
	if err != nil {
		return err
	}
	return view.Edit(field, strings.TrimSpace(value))
}

func (r *Runner) promptNumber(ctx context.Context, view *formview.View, field, label, current string, whole bool) error {
	for {
		input, err := r.driver.Input(ctx, InputConfig{Message: label, Default: current})
		if err != nil {
			return err
		}
		input = strings.TrimSpace(input)

		if whole {
			_, err = strconv.Atoi(input)
		} else {
			_, err = strconv.ParseFloat(input, 64)
		}
		if err != nil {
			_ = r.driver.Info(ctx, fmt.Sprintf("Invalid %s: %q is not a number", label, input))
			continue
		}
		return view.Edit(field, input)
	}
}

func (r *Runner) promptCity(ctx context.Context, view *formview.View, current string) error {
	value, err := r.driver.Input(ctx, InputConfig{
		Message: "City",
		Default: current,
		Help:    "Press Tab for suggestions",
		Suggest: func(toComplete string) []string {
			return autocomplete.Values(r.cities.Search(toComplete))
		},
	})
	if err != nil {
		return err
	}
	value = strings.TrimSpace(value)
	if err := view.Edit(model.FieldCity, value); err != nil {
		return err
	}
	for _, candidate := range r.cities.Candidates() {
		if strings.EqualFold(candidate.Value, value) {
			view.SelectCity(candidate.Value)
			break
		}
	}
	return nil
}

func (r *Runner) promptOccupation(ctx context.Context, view *formview.View, current model.Occupation) error {
	candidates := r.occupations.Candidates()
	labels := make([]string, 0, len(candidates))
	defaultIndex := -1
	for i, candidate := range candidates {
		labels = append(labels, candidate.Option().Label)
		if candidate.Value == string(current) {
			defaultIndex = i
		}
	}

	for {
		idx, err := r.driver.Select(ctx, SelectConfig{
			Message:      "Occupation",
			Options:      labels,
			DefaultIndex: defaultIndex,
			Filter: func(filter string, _ string, index int) bool {
				return index >= 0 && index < len(candidates) && candidates[index].Matches(filter)
			},
		})
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(candidates) {
			_ = r.driver.Info(ctx, "No occupations found. Please select from available options.")
			continue
		}
		return view.SelectOccupation(candidates[idx].Value)
	}
}

type output struct {
	PredictedCategory string              `json:"predicted_category"`
	Derived           model.DerivedFields `json:"derived"`
}

func (r *Runner) print(snap formview.Snapshot) error {
	if snap.Result == nil {
		return errors.New("prompt: submit finished without a result")
	}

	if r.format == OutputFormatJSON {
		enc := json.NewEncoder(r.out)
		enc.SetIndent("", "  ")
		return enc.Encode(output{
			PredictedCategory: snap.Result.PredictedCategory,
			Derived:           snap.Derived,
		})
	}

	_, err := fmt.Fprintf(r.out,
		"Premium Category: %s\nBMI: %s\nAge Group: %s\nLifestyle Risk: %s\nCity Tier: %s\n",
		snap.Result.Display(),
		render.FormatBMI(snap.State.Height, snap.Derived.BMI),
		snap.Derived.AgeGroup,
		snap.Derived.LifestyleRisk,
		snap.Derived.CityCategory,
	)
	return err
}

func failing(errs model.ValidationErrors) []string {
	out := make([]string, 0, len(errs))
	for _, field := range promptOrder {
		if errs.Has(field) {
			out = append(out, field)
		}
	}
	return out
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
