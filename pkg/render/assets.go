package render

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed assets/*
var assetsFS embed.FS

// Assets returns the embedded static files (stylesheet and script).
func Assets() fs.FS {
	sub, err := fs.Sub(assetsFS, "assets")
	if err != nil {
		panic("render: assets fs: " + err.Error())
	}
	return sub
}

// AssetHandler serves Assets with prefix stripped.
func AssetHandler(prefix string) http.Handler {
	if prefix == "" {
		prefix = assetPrefix
	}
	return http.StripPrefix(prefix, http.FileServer(http.FS(Assets())))
}
