package render

import (
	"context"
	"encoding/json"
	"fmt"
)

// JSON renders the page model itself. The server exposes it with
// ?format=json for scripted clients.
type JSON struct {
	Indent bool
}

var _ Renderer = JSON{}

func (JSON) Name() string {
	return "json"
}

func (JSON) ContentType() string {
	return "application/json"
}

func (j JSON) Render(_ context.Context, page Page, _ RenderOptions) ([]byte, error) {
	var (
		out []byte
		err error
	)
	if j.Indent {
		out, err = json.MarshalIndent(page, "", "  ")
	} else {
		out, err = json.Marshal(page)
	}
	if err != nil {
		return nil, fmt.Errorf("render: encode page: %w", err)
	}
	return out, nil
}
