package contract

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-insurepredict/pkg/validation"
)

// Schema names defined by the embedded document.
const (
	SchemaUserInput          = "UserInput"
	SchemaPredictionResponse = "PredictionResponse"
	SchemaErrorResponse      = "ErrorResponse"
	SchemaHealthResponse     = "HealthResponse"
)

//go:embed data/openapi.yaml
var rawDocument []byte

var (
	defaultOnce     sync.Once
	defaultContract *Contract
	defaultErr      error
)

// ErrUnknownSchema is returned when a schema name is not part of the document.
var ErrUnknownSchema = errors.New("contract: unknown schema")

// Contract is a loaded and validated endpoint description.
type Contract struct {
	doc *openapi3.T
	raw []byte
}

// Operation summarises one path operation of the document.
type Operation struct {
	ID      string
	Method  string
	Path    string
	Summary string
}

// Error reports a payload that does not satisfy a schema.
type Error struct {
	Schema string
	Issues []validation.Issue
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return "contract: validation failed"
	}
	if len(e.Issues) == 0 {
		return fmt.Sprintf("contract: %s: %v", e.Schema, e.Err)
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		if issue.Field != "" {
			parts = append(parts, issue.Field+": "+issue.Message)
			continue
		}
		parts = append(parts, issue.Message)
	}
	return fmt.Sprintf("contract: %s: %s", e.Schema, strings.Join(parts, "; "))
}

func (e *Error) Unwrap() error { return e.Err }

// Raw returns a copy of the embedded OpenAPI document.
func Raw() []byte {
	return append([]byte(nil), rawDocument...)
}

// Load parses and validates the embedded document. The result is cached;
// ctx only bounds the first load.
func Load(ctx context.Context) (*Contract, error) {
	defaultOnce.Do(func() {
		defaultContract, defaultErr = Parse(ctx, rawDocument)
	})
	return defaultContract, defaultErr
}

// Parse loads an OpenAPI document from raw bytes and validates it.
func Parse(ctx context.Context, raw []byte) (*Contract, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, errors.New("contract: document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("contract: load document: %w", err)
	}
	if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return nil, fmt.Errorf("contract: validate: %w", err)
	}
	if doc.Paths == nil || doc.Paths.Len() == 0 {
		return nil, errors.New("contract: document does not contain any paths")
	}
	return &Contract{doc: doc, raw: append([]byte(nil), raw...)}, nil
}

// Raw returns a copy of the document c was parsed from.
func (c *Contract) Raw() []byte {
	if c == nil {
		return nil
	}
	return append([]byte(nil), c.raw...)
}

// Version reports info.version of the document.
func (c *Contract) Version() string {
	if c == nil || c.doc == nil || c.doc.Info == nil {
		return ""
	}
	return c.doc.Info.Version
}

// Operations lists the document operations sorted by path then method.
func (c *Contract) Operations() []Operation {
	if c == nil || c.doc == nil || c.doc.Paths == nil {
		return nil
	}
	out := make([]Operation, 0, 4)
	for path, item := range c.doc.Paths.Map() {
		if item == nil {
			continue
		}
		for method, op := range item.Operations() {
			if op == nil {
				continue
			}
			id := op.OperationID
			if id == "" {
				id = strings.ToLower(method) + ":" + path
			}
			out = append(out, Operation{ID: id, Method: method, Path: path, Summary: op.Summary})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Path != out[j].Path {
			return out[i].Path < out[j].Path
		}
		return out[i].Method < out[j].Method
	})
	return out
}

// ValidateInput checks a request payload against UserInput.
func (c *Contract) ValidateInput(body any) error {
	return c.Validate(SchemaUserInput, body, openapi3.VisitAsRequest())
}

// ValidatePrediction checks a success body against PredictionResponse.
func (c *Contract) ValidatePrediction(body any) error {
	return c.Validate(SchemaPredictionResponse, body, openapi3.VisitAsResponse())
}

// Validate checks body against the named component schema. body may be raw
// JSON bytes, a json.RawMessage, or any value that marshals to JSON.
func (c *Contract) Validate(name string, body any, opts ...openapi3.SchemaValidationOption) error {
	schema, err := c.schema(name)
	if err != nil {
		return err
	}
	value, err := generic(body)
	if err != nil {
		return &Error{Schema: name, Err: err, Issues: []validation.Issue{{Message: "body is not valid JSON"}}}
	}

	opts = append(opts, openapi3.MultiErrors())
	if err := schema.VisitJSON(value, opts...); err != nil {
		return &Error{Schema: name, Err: err, Issues: validation.IssuesFromError(err)}
	}
	return nil
}

func (c *Contract) schema(name string) (*openapi3.Schema, error) {
	if c == nil || c.doc == nil || c.doc.Components == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSchema, name)
	}
	ref, ok := c.doc.Components.Schemas[name]
	if !ok || ref == nil || ref.Value == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSchema, name)
	}
	return ref.Value, nil
}

// generic converts body into the map/slice/float64 shape VisitJSON expects.
func generic(body any) (any, error) {
	var raw []byte
	switch v := body.(type) {
	case nil:
		return nil, nil
	case []byte:
		raw = v
	case json.RawMessage:
		raw = v
	case map[string]any, []any, string, float64, bool:
		return v, nil
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		raw = encoded
	}

	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}
