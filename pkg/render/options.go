package render

// RenderOptions carry per-request presentation choices.
type RenderOptions struct {
	// Variant selects a theme variant ("" for the base theme, "dark").
	Variant string
}
