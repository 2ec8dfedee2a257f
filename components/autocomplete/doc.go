// Package autocomplete provides the suggestion filter used by the city and
// occupation inputs, plus a small net/http handler that returns JSON options
// for them.
//
// Matching is a case-insensitive substring test against each candidate's
// label and aliases. Results keep candidate order. The handler responds to
// GET and HEAD requests and supports query and limit parameters.
package autocomplete
