// Package testsupport holds helpers shared by package tests: golden file
// access, template output capture and a fake prediction service.
package testsupport

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
)

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}

// PredictionEndpoint is a fake prediction service that records the bodies it
// receives and replies with a fixed status and body.
type PredictionEndpoint struct {
	*httptest.Server

	mu     sync.Mutex
	bodies [][]byte
}

// NewPredictionEndpoint starts a fake endpoint. It is closed via t.Cleanup.
func NewPredictionEndpoint(t *testing.T, status int, body string) *PredictionEndpoint {
	t.Helper()

	endpoint := &PredictionEndpoint{}
	endpoint.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		endpoint.mu.Lock()
		endpoint.bodies = append(endpoint.bodies, raw)
		endpoint.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(endpoint.Close)
	return endpoint
}

// Calls reports how many requests the endpoint received.
func (e *PredictionEndpoint) Calls() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.bodies)
}

// LastBody returns the most recent request body, or nil.
func (e *PredictionEndpoint) LastBody() []byte {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.bodies) == 0 {
		return nil
	}
	return append([]byte(nil), e.bodies[len(e.bodies)-1]...)
}
