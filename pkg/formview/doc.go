// Package formview holds the state of one premium prediction form: field
// values, per-field errors, the two autocomplete dropdowns and the submission
// lifecycle. Renderers (HTML, terminal) read immutable snapshots and feed user
// events back through the View methods.
package formview
