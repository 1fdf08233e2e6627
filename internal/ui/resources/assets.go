// Package resources provides the static assets of the landing page.
package resources

import "io/fs"

// StaticDirectoryPath is the path to static assets from the project root.
const StaticDirectoryPath = "internal/ui/resources/static"

// StaticPath returns the URL path for a static asset.
func StaticPath(path string) string {
	return "/static/" + path
}

// ReadFile reads a single static asset.
func ReadFile(name string) ([]byte, error) {
	return fs.ReadFile(FS(), name)
}
