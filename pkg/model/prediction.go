package model

import "strings"

// PredictionResult is the prediction endpoint's response body.
type PredictionResult struct {
	PredictedCategory string `json:"predicted_category"`
}

// Level is the display bucket of a predicted category.
type Level string

const (
	LevelHigh    Level = "high"
	LevelMedium  Level = "medium"
	LevelLow     Level = "low"
	LevelNeutral Level = "neutral"
)

// Level maps the category case-insensitively; unknown values are neutral.
func (r PredictionResult) Level() Level {
	switch strings.ToLower(strings.TrimSpace(r.PredictedCategory)) {
	case "high":
		return LevelHigh
	case "medium":
		return LevelMedium
	case "low":
		return LevelLow
	default:
		return LevelNeutral
	}
}

// Display returns the category as shown in the result panel.
func (r PredictionResult) Display() string {
	return strings.ToUpper(r.PredictedCategory)
}
