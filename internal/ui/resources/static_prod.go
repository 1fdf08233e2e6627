//go:build !dev

package resources

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed static/*
var staticFS embed.FS

// Dir returns "" in release builds: assets are embedded and never change.
func Dir() string {
	return ""
}

// FS returns the embedded static assets.
func FS() fs.FS {
	fsys, err := fs.Sub(staticFS, "static")
	if err != nil {
		// fs.Sub only fails for invalid paths.
		panic(err)
	}
	return fsys
}

// Handler returns an HTTP handler for serving the embedded static files.
func Handler() http.Handler {
	fileServer := http.FileServer(http.FS(FS()))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Embedded assets are immutable for the life of the binary.
		w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		http.StripPrefix("/static/", fileServer).ServeHTTP(w, r)
	})
}
