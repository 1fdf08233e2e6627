package commands

import (
	"embed"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

//go:embed all:templates
var templateFS embed.FS

// copyTemplate copies an embedded template directory to the target path.
// It handles special file renames (e.g., "gitignore" -> ".gitignore").
func copyTemplate(templateName, targetDir string, force bool) error {
	root := path.Join("templates", templateName)

	return fs.WalkDir(templateFS, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		relPath := strings.TrimPrefix(strings.TrimPrefix(p, root), "/")
		if relPath == "" {
			return nil
		}

		targetPath := filepath.Join(targetDir, filepath.FromSlash(renameSpecialFiles(relPath)))

		if d.IsDir() {
			return os.MkdirAll(targetPath, 0o750)
		}

		if !force {
			if _, err := os.Stat(targetPath); err == nil {
				return nil // Skip existing files
			}
		}

		content, err := templateFS.ReadFile(p)
		if err != nil {
			return err
		}

		return os.WriteFile(targetPath, content, 0o600)
	})
}

// renameSpecialFiles handles files that need renaming (e.g., dotfiles).
func renameSpecialFiles(p string) string {
	dir, base := path.Split(p)

	switch base {
	case "gitignore":
		return dir + ".gitignore"
	default:
		return p
	}
}

// listTemplateFiles returns all files in a template for display purposes.
func listTemplateFiles(templateName string) ([]string, error) {
	var files []string
	root := path.Join("templates", templateName)

	err := fs.WalkDir(templateFS, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			relPath := strings.TrimPrefix(strings.TrimPrefix(p, root), "/")
			files = append(files, renameSpecialFiles(relPath))
		}
		return nil
	})

	return files, err
}
