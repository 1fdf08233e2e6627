// Package testutil provides test utilities for CLI testing.
package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/officehoursq/officehoursq/internal/cli/config"
)

// SetupTestProject creates a temporary project directory, writes
// officehoursq.yaml with the given content (skipped when empty) and makes it
// the working directory for the rest of the test.
func SetupTestProject(t *testing.T, configYAML string) string {
	t.Helper()

	tmpDir := t.TempDir()
	if configYAML != "" {
		if err := os.WriteFile(filepath.Join(tmpDir, config.ConfigFileNames[0]), []byte(configYAML), 0o600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}
	}
	t.Chdir(tmpDir)
	config.ResetConfig()

	return tmpDir
}

// Result holds the captured output of a command run.
type Result struct {
	Out    string
	ErrOut string
	Err    error
}

// Execute runs root with args, capturing stdout and stderr.
func Execute(t *testing.T, root *cobra.Command, args ...string) Result {
	t.Helper()

	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	root.SetOut(out)
	root.SetErr(errOut)
	root.SetArgs(args)

	err := root.Execute()
	return Result{Out: out.String(), ErrOut: errOut.String(), Err: err}
}

// ansiPattern matches ANSI escape codes.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// AssertNoANSI checks that a string contains no ANSI escape codes.
func AssertNoANSI(t *testing.T, s string) {
	t.Helper()
	if ansiPattern.MatchString(s) {
		t.Errorf("string contains ANSI escape codes: %q", s)
	}
}

// AssertValidMarkdown performs basic markdown validation.
// It checks for unclosed code fences and empty headers.
func AssertValidMarkdown(t *testing.T, md string) {
	t.Helper()

	// Check for balanced code fences
	fenceCount := strings.Count(md, "```")
	if fenceCount%2 != 0 {
		t.Errorf("unbalanced code fences in markdown: found %d occurrences", fenceCount)
	}

	// Check that headers have content
	lines := strings.Split(md, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") && strings.TrimLeft(trimmed, "# ") == "" {
			t.Errorf("empty header at line %d: %q", i+1, line)
		}
	}
}
