package validation

import (
	"errors"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/google/go-cmp/cmp"
)

func TestIssuesFromError_SchemaErrors(t *testing.T) {
	schema := openapi3.NewObjectSchema().
		WithProperty("predicted_category", openapi3.NewStringSchema()).
		WithProperty("age", openapi3.NewIntegerSchema())
	schema.Required = []string{"predicted_category"}

	err := schema.VisitJSON(map[string]any{"age": "old"}, openapi3.MultiErrors())
	if err == nil {
		t.Fatalf("expected validation error")
	}

	issues := IssuesFromError(err)
	fields := make(map[string]bool, len(issues))
	for _, issue := range issues {
		fields[issue.Field] = true
		if issue.Message == "" {
			t.Fatalf("expected message for %#v", issue)
		}
	}
	if !fields["predicted_category"] || !fields["age"] {
		t.Fatalf("expected issues for predicted_category and age, got %#v", issues)
	}
}

func TestIssuesFromError_PlainError(t *testing.T) {
	issues := IssuesFromError(errors.New("contract: bad value at #/properties/city"))
	want := []Issue{{Path: "#/properties/city", Field: "city", Message: "bad value"}}
	if diff := cmp.Diff(want, issues); diff != "" {
		t.Fatalf("issues mismatch (-want +got):\n%s", diff)
	}
}

func TestFieldFromPointer(t *testing.T) {
	cases := map[string]string{
		"":                  "",
		"/age":              "age",
		"#/properties/city": "city",
		"/items/0/name":     "items.0.name",
		"/a~1b":             "a/b",
	}
	for in, want := range cases {
		if got := fieldFromPointer(in); got != want {
			t.Fatalf("pointer %q: got %q want %q", in, got, want)
		}
	}
}

func TestIssuesFromError_PlainErrorWithoutLocation(t *testing.T) {
	issues := IssuesFromError(errors.New("boom"))
	if diff := cmp.Diff([]Issue{{Message: "boom"}}, issues); diff != "" {
		t.Fatalf("issues mismatch (-want +got):\n%s", diff)
	}
}
