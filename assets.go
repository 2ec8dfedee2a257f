package insurepredict

import (
	"io/fs"

	"github.com/goliatone/go-insurepredict/pkg/render"
)

// EmbeddedTemplates exposes the built-in page templates so callers can copy
// or extend them (see render.WithTemplateDir).
func EmbeddedTemplates() fs.FS {
	return render.Templates()
}

// AssetsFS exposes the stylesheet and page script.
//
// Typical mount:
//
//	mux.Handle("/assets/",
//	  http.StripPrefix("/assets/",
//	    http.FileServerFS(insurepredict.AssetsFS()),
//	  ),
//	)
func AssetsFS() fs.FS {
	return render.Assets()
}
