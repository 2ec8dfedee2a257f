package validation

import (
	"errors"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// IssuesFromError flattens kin-openapi schema errors into issues. Each
// issue carries the JSON pointer of the offending value and the same
// location as a dotted field name.
func IssuesFromError(err error) []Issue {
	if err == nil {
		return nil
	}

	var multi openapi3.MultiError
	if errors.As(err, &multi) {
		var out []Issue
		for _, item := range multi {
			out = append(out, IssuesFromError(item)...)
		}
		return out
	}

	var schemaErr *openapi3.SchemaError
	if errors.As(err, &schemaErr) {
		issue := Issue{Message: strings.TrimSpace(schemaErr.Reason)}
		if pointer := schemaErr.JSONPointer(); len(pointer) > 0 {
			issue.Path = "/" + strings.Join(pointer, "/")
		}
		if issue.Message == "" {
			issue.Message = "does not satisfy " + schemaErr.SchemaField
		}
		issue.Field = fieldFromPointer(issue.Path)
		return []Issue{issue}
	}

	// Plain errors may name a location as "... at #/properties/x".
	msg := strings.TrimPrefix(strings.TrimSpace(err.Error()), "contract: ")
	issue := Issue{Message: msg}
	if head, tail, ok := cutLast(msg, " at "); ok && strings.HasPrefix(tail, "#/") {
		issue.Path = strings.TrimRight(tail, ".,;)")
		issue.Message = head
	}
	issue.Field = fieldFromPointer(issue.Path)
	return []Issue{issue}
}

func cutLast(s, sep string) (string, string, bool) {
	i := strings.LastIndex(s, sep)
	if i < 0 {
		return s, "", false
	}
	return s[:i], strings.TrimSpace(s[i+len(sep):]), true
}

var pointerUnescaper = strings.NewReplacer("~1", "/", "~0", "~")

// fieldFromPointer turns "/a/0/b" into "a.0.b" and "#/properties/a" into
// "a".
func fieldFromPointer(pointer string) string {
	pointer = strings.TrimPrefix(strings.TrimPrefix(pointer, "#"), "/")
	if pointer == "" {
		return ""
	}

	var out []string
	parts := strings.Split(pointer, "/")
	for i := 0; i < len(parts); i++ {
		segment := pointerUnescaper.Replace(parts[i])
		switch {
		case segment == "":
		case segment == "properties" && i+1 < len(parts):
			i++
			out = append(out, pointerUnescaper.Replace(parts[i]))
		default:
			out = append(out, segment)
		}
	}
	return strings.Join(out, ".")
}
