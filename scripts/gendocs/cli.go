package main

import (
	"cmp"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/officehoursq/officehoursq/internal/cli"
	"github.com/officehoursq/officehoursq/internal/cli/config"
)

// generateCLIDocs writes an index page and one page per command.
func generateCLIDocs(outDir string) error {
	log.Printf("Generating CLI docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0o750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	root := cli.NewRootCmd()
	pages := map[string][]byte{"index.md": cliIndex(root)}
	for _, cmd := range documented(root) {
		pages[cmd.Name()+".md"] = commandPage(cmd)
	}

	for name, body := range pages {
		if err := os.WriteFile(filepath.Join(outDir, name), body, 0o600); err != nil {
			return err
		}
		log.Printf("  Generated %s", name)
	}
	return nil
}

// documented returns the user-facing subcommands of root.
func documented(root *cobra.Command) []*cobra.Command {
	var cmds []*cobra.Command
	for _, cmd := range root.Commands() {
		if cmd.IsAvailableCommand() {
			cmds = append(cmds, cmd)
		}
	}
	return cmds
}

func cliIndex(root *cobra.Command) []byte {
	w := NewMarkdownWriter()
	w.Frontmatter("CLI Reference", "Command-line interface reference for OfficeHoursQ")
	w.GeneratedMarker()

	w.Header(1, "CLI Reference")
	w.Paragraph(root.Long)

	var rows [][]string
	for _, cmd := range documented(root) {
		rows = append(rows, []string{
			fmt.Sprintf("[%s](/cli/%s)", InlineCode(cmd.Name()), cmd.Name()),
			cleanDescription(cmd.Short),
		})
	}
	w.Header(2, "Commands")
	w.Table([]string{"Command", "Description"}, rows)

	w.Header(2, "Global Options")
	writeFlagsTable(w, root.PersistentFlags())

	w.Header(2, "Settings")
	w.Paragraph(fmt.Sprintf("Settings are layered: built-in defaults, then %s, then %s environment variables, then flags. "+
		"Each setting below can be given at any layer.", InlineCode(config.ConfigFileNames[0]), InlineCode(config.EnvPrefix+"*")))
	w.Table([]string{"Config key", "Environment", "Flags"}, settingRows(root))

	w.Paragraph(fmt.Sprintf("Commands exit with status 1 and print %s to stderr when they fail. "+
		"%s also exits 1 when any check reports an error.", InlineCode("Error: ..."), InlineCode("officehoursq doctor")))

	return w.Bytes()
}

// settingRows lists every config key reachable from a flag, plus the
// session secret which is deliberately not a flag.
func settingRows(root *cobra.Command) [][]string {
	flagsByKey := map[string][]string{}
	collect := func(f *pflag.Flag) {
		if key, ok := config.FlagKey(f.Name); ok && !slices.Contains(flagsByKey[key], "--"+f.Name) {
			flagsByKey[key] = append(flagsByKey[key], "--"+f.Name)
		}
	}
	root.PersistentFlags().VisitAll(collect)
	for _, cmd := range documented(root) {
		cmd.LocalFlags().VisitAll(collect)
	}
	flagsByKey["server.session_secret"] = nil

	keys := make([]string, 0, len(flagsByKey))
	for key := range flagsByKey {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	rows := make([][]string, 0, len(keys))
	for _, key := range keys {
		flags := "-"
		if names := flagsByKey[key]; len(names) > 0 {
			quoted := make([]string, len(names))
			for i, n := range names {
				quoted[i] = InlineCode(n)
			}
			flags = strings.Join(quoted, ", ")
		}
		rows = append(rows, []string{InlineCode(key), InlineCode(config.EnvVar(key)), flags})
	}
	return rows
}

func commandPage(cmd *cobra.Command) []byte {
	w := NewMarkdownWriter()
	w.Frontmatter(cmd.Name(), cmd.Short)
	w.GeneratedMarker()

	w.Header(1, cmd.Name())
	w.Paragraph(cmp.Or(cmd.Long, cmd.Short))

	w.Header(2, "Usage")
	w.CodeBlock("bash", cmd.UseLine())

	if cmd.HasLocalFlags() {
		w.Header(2, "Options")
		writeFlagsTable(w, cmd.LocalFlags())
	}

	if cmd.Example != "" {
		w.Header(2, "Examples")
		w.CodeBlock("bash", cleanExample(cmd.Example))
	}

	w.Paragraph(fmt.Sprintf("Global options are listed in the [CLI reference](/cli/). Run %s for the same text in a terminal.",
		InlineCode(cmd.CommandPath()+" --help")))

	return w.Bytes()
}

// writeFlagsTable lists flags with the setting each one overrides.
func writeFlagsTable(w *MarkdownWriter, flags *pflag.FlagSet) {
	var rows [][]string
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}

		option := InlineCode("--" + f.Name)
		if f.Shorthand != "" {
			option += ", " + InlineCode("-"+f.Shorthand)
		}

		def := "-"
		if f.DefValue != "" && f.DefValue != "[]" {
			def = InlineCode(f.DefValue)
		}

		setting := "-"
		if key, ok := config.FlagKey(f.Name); ok {
			setting = InlineCode(key)
		}

		rows = append(rows, []string{option, def, setting, cleanDescription(f.Usage)})
	})
	w.Table([]string{"Option", "Default", "Setting", "Description"}, rows)
}

// cleanExample strips the indentation shared by every non-blank line.
func cleanExample(example string) string {
	lines := strings.Split(example, "\n")

	indent := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		n := len(line) - len(strings.TrimLeft(line, " \t"))
		if indent == -1 || n < indent {
			indent = n
		}
	}

	for i, line := range lines {
		if len(line) >= indent && indent > 0 {
			lines[i] = line[indent:]
		}
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
