// Package model defines the value types shared by the form view, the
// validator, the derived-field calculator, and the prediction client.
//
// FormState is the single source of truth for user input. DerivedFields and
// PredictionResult are computed from it (or returned for it) and are never
// written back into it.
package model
