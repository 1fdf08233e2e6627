// Package main provides a generator that extracts CLI, configuration and theme
// metadata from the OfficeHoursQ source and generates markdown documentation.
//
// Usage:
//
//	go run ./scripts/gendocs -gen=cli -outdir=docs/cli
//	go run ./scripts/gendocs -gen=schema -outdir=docs/concepts
//	go run ./scripts/gendocs -gen=theme -outdir=docs/design
//	go run ./scripts/gendocs -gen=all
package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"
)

var (
	genFlag    = flag.String("gen", "all", "what to generate: cli, schema, theme, all")
	outDirFlag = flag.String("outdir", "", "output directory (defaults based on gen type)")
)

// generators maps each -gen value to its generator and default output directory.
var generators = map[string]struct {
	dir string
	run func(outDir string) error
}{
	"cli":    {dir: filepath.Join("docs", "cli"), run: generateCLIDocs},
	"schema": {dir: filepath.Join("docs", "concepts"), run: generateSchemaDocs},
	"theme":  {dir: filepath.Join("docs", "design"), run: generateThemeDocs},
}

func main() {
	flag.Parse()

	// Validate gen flag
	if _, ok := generators[*genFlag]; !ok && *genFlag != "all" {
		log.Fatalf("unknown -gen value: %s (use: cli, schema, theme, all)", *genFlag)
	}

	// Find project root (where go.mod is)
	projectRoot, err := findProjectRoot()
	if err != nil {
		log.Fatalf("failed to find project root: %v", err)
	}

	log.Printf("Project root: %s", projectRoot)

	if err := generate(*genFlag, *outDirFlag, projectRoot); err != nil {
		log.Fatal(err)
	}

	log.Println("Done!")
}

// generate runs one generator, or all of them into their default directories.
func generate(gen, outDir, projectRoot string) error {
	names := []string{gen}
	if gen == "all" {
		names = []string{"cli", "schema", "theme"}
		outDir = ""
	}

	for _, name := range names {
		g := generators[name]
		dir := outDir
		if dir == "" {
			dir = filepath.Join(projectRoot, g.dir)
		}
		if err := g.run(dir); err != nil {
			return err
		}
	}
	return nil
}

// findProjectRoot walks up from current directory to find go.mod.
func findProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}
