package predict

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyEndpoint is returned when Predict is called without an endpoint.
var ErrEmptyEndpoint = errors.New("predict: endpoint is required")

const fallbackTransportMessage = "failed to reach the prediction endpoint"

// TransportError means no usable HTTP response was obtained.
type TransportError struct {
	Endpoint string
	Err      error
}

func (e *TransportError) Error() string {
	if e == nil || e.Err == nil {
		return "predict: " + fallbackTransportMessage
	}
	return "predict: transport: " + e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Message is the user facing text for the failure.
func (e *TransportError) Message() string {
	if e == nil || e.Err == nil {
		return fallbackTransportMessage
	}
	if msg := strings.TrimSpace(e.Err.Error()); msg != "" {
		return msg
	}
	return fallbackTransportMessage
}

// ApplicationError means the endpoint responded but the response is not a
// successful prediction.
type ApplicationError struct {
	StatusCode int
	// Remote is the "error" string from the response body, if any.
	Remote string
	// Reason describes the failure when Remote is empty and the status was 2xx.
	Reason string
	Err    error
}

func (e *ApplicationError) Error() string {
	if e == nil {
		return "predict: application error"
	}
	return fmt.Sprintf("predict: status %d: %s", e.StatusCode, e.Message())
}

func (e *ApplicationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Message is the user facing text: the remote error string, otherwise a
// generic status message, otherwise the local reason.
func (e *ApplicationError) Message() string {
	if e == nil {
		return ""
	}
	if remote := strings.TrimSpace(e.Remote); remote != "" {
		return remote
	}
	if e.StatusCode < 200 || e.StatusCode > 299 {
		return fmt.Sprintf("prediction endpoint returned status %d", e.StatusCode)
	}
	if e.Reason != "" {
		return e.Reason
	}
	return "prediction endpoint returned an unusable response"
}

// Message returns the single user facing string for err.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var appErr *ApplicationError
	if errors.As(err, &appErr) {
		return appErr.Message()
	}
	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		return transportErr.Message()
	}
	return strings.TrimPrefix(err.Error(), "predict: ")
}

// IsApplication reports whether err is an *ApplicationError.
func IsApplication(err error) bool {
	var appErr *ApplicationError
	return errors.As(err, &appErr)
}

// IsTransport reports whether err is a *TransportError.
func IsTransport(err error) bool {
	var transportErr *TransportError
	return errors.As(err, &transportErr)
}
