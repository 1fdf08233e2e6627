package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/officehoursq/officehoursq/internal/theme"
)

// generateThemeDocs generates the design token reference.
func generateThemeDocs(outDir string) error {
	log.Printf("Generating theme docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0o750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	def := theme.Default()
	if err := def.Validate(); err != nil {
		return fmt.Errorf("invalid theme: %w", err)
	}

	w := NewMarkdownWriter()
	w.Frontmatter("Theme", "OfficeHoursQ design tokens")
	w.GeneratedMarker()

	w.Header(1, "Theme")
	w.Paragraph("Every themed class on the landing page resolves to one of these tokens. " +
		"The stylesheet served at " + InlineCode("/theme.css") + " defines a custom property and a utility class for each.")

	w.Header(2, "Colors")
	var colorRows [][]string
	for _, t := range def.OfKind(theme.KindColor) {
		contrast := "-"
		if t.Name != "background" {
			ratio, err := def.Contrast(t.Name, "background")
			if err != nil {
				return err
			}
			contrast = fmt.Sprintf("%.2f:1", ratio)
		}
		colorRows = append(colorRows, []string{
			InlineCode(t.Name),
			InlineCode(t.Value),
			InlineCode(def.Class(theme.UtilityBg, t.Short())),
			contrast,
		})
	}
	w.Table([]string{"Token", "Value", "Background class", "Contrast on background"}, colorRows)

	w.Header(2, "Fonts")
	var fontRows [][]string
	for _, t := range def.OfKind(theme.KindFont) {
		fontRows = append(fontRows, []string{InlineCode(t.Name), InlineCode(t.Value), InlineCode(def.Class(theme.UtilityFont, t.Short()))})
	}
	w.Table([]string{"Token", "Stack", "Class"}, fontRows)

	w.Header(2, "Radii")
	var radiusRows [][]string
	for _, t := range def.OfKind(theme.KindRadius) {
		radiusRows = append(radiusRows, []string{InlineCode(t.Name), InlineCode(t.Value), InlineCode(def.Class(theme.UtilityRounded, t.Short()))})
	}
	w.Table([]string{"Token", "Value", "Class"}, radiusRows)

	filename := filepath.Join(outDir, "theme.md")
	if err := os.WriteFile(filename, w.Bytes(), 0o600); err != nil {
		return err
	}
	log.Printf("  Generated theme.md")
	return nil
}
