package prompt

import "errors"

var (
	// ErrAborted signals the user aborted input (Ctrl+C).
	ErrAborted = errors.New("prompt: aborted")
	// ErrNoView is returned when Run is called without a form view.
	ErrNoView = errors.New("prompt: form view is required")
)
