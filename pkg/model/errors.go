package model

import "sort"

// ValidationErrors maps a field key to a human readable message. An empty
// mapping means the form is valid.
type ValidationErrors map[string]string

// Valid reports whether no field carries a message.
func (e ValidationErrors) Valid() bool {
	return len(e) == 0
}

// Has reports whether field carries a message.
func (e ValidationErrors) Has(field string) bool {
	_, ok := e[field]
	return ok
}

// Clone returns an independent copy. A nil receiver yields an empty map.
func (e ValidationErrors) Clone() ValidationErrors {
	out := make(ValidationErrors, len(e))
	for key, value := range e {
		out[key] = value
	}
	return out
}

// Fields returns the keys carrying a message in sorted order.
func (e ValidationErrors) Fields() []string {
	keys := make([]string, 0, len(e))
	for key := range e {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
