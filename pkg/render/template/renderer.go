package template

import "io"

// TemplateRenderer is the engine contract the HTML renderer relies on.
// Output is returned and also copied to every writer in out.
type TemplateRenderer interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(content string, data any, out ...io.Writer) (string, error)
}
