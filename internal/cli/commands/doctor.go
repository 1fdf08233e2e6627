package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"regexp"
	"slices"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/officehoursq/officehoursq/internal/cli/config"
	"github.com/officehoursq/officehoursq/internal/landing"
	"github.com/officehoursq/officehoursq/internal/theme"
	"github.com/officehoursq/officehoursq/internal/ui/resources"
)

// ErrUnhealthy is returned by doctor when at least one check fails with an error.
var ErrUnhealthy = errors.New("health check failed")

// requiredAssets must be present in the bundled static directory.
var requiredAssets = []string{"landing.css", "favicon.svg"}

// contrastPairs are the foreground/background combinations used by the page,
// with the minimum ratio each must reach.
var contrastPairs = []struct {
	fg, bg string
	min    float64
}{
	{"text-primary", "background", theme.ContrastAA},
	{"text-secondary", "background", theme.ContrastAA},
	{"text-primary", "card", theme.ContrastAA},
	{"text-secondary", "card", theme.ContrastAA},
	{"text-primary", "accent", theme.ContrastLargeAA},
	{"accent", "background", theme.ContrastLargeAA},
}

// DoctorOptions holds options for the doctor command.
type DoctorOptions struct {
	Format string // Output format: text, markdown, json
}

// NewDoctorCommand creates the doctor command.
func NewDoctorCommand() *cobra.Command {
	opts := &DoctorOptions{}
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check configuration, theme and assets",
		Long: `Check that this OfficeHoursQ installation is ready to serve.

The doctor command reports:
- Configuration problems (invalid values, development secrets, wildcard CORS)
- Theme problems (invalid tokens, text contrast below WCAG thresholds)
- Asset problems (missing static files, classes without a style rule)
- Rendering problems for each landing variant

It exits with an error when any check fails.`,
		Example: `  # Run health check
  officehoursq doctor

  # Output as JSON
  officehoursq doctor --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDoctor(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "text", "Output format: text, markdown, json")

	return cmd
}

// DoctorOutput is the JSON output for the doctor command.
type DoctorOutput struct {
	Summary         Summary       `json:"summary"`
	HealthChecks    []HealthCheck `json:"health_checks"`
	Score           int           `json:"score"`
	Recommendations []string      `json:"recommendations"`
	IssueCount      int           `json:"issue_count"`
}

// Summary describes what was checked.
type Summary struct {
	Environment string `json:"environment"`
	ConfigFile  string `json:"config_file,omitempty"`
	Variant     string `json:"variant"`
	Tokens      int    `json:"tokens"`
	Assets      int    `json:"assets"`
}

// HealthCheck represents a single health check result.
type HealthCheck struct {
	RuleID     string   `json:"rule_id"`
	Name       string   `json:"name"`
	Group      string   `json:"group"`
	Status     string   `json:"status"` // "pass", "warn", "error"
	IssueCount int      `json:"issue_count"`
	Details    []string `json:"details,omitempty"`
}

func newCheck(id, name, group, failStatus string, details []string) HealthCheck {
	status := "pass"
	if len(details) > 0 {
		status = failStatus
	}
	return HealthCheck{RuleID: id, Name: name, Group: group, Status: status, IssueCount: len(details), Details: details}
}

func runDoctor(cmd *cobra.Command, opts *DoctorOptions) error {
	cc := NewCommandContext(cmd)

	out := buildDoctorOutput(cmd.Context(), cc.Cfg, theme.Default())
	cc.Logger.Debug("doctor finished", "score", out.Score, "issues", out.IssueCount)

	w := cmd.OutOrStdout()
	var err error
	switch strings.ToLower(opts.Format) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(out)
	case "md", "markdown":
		renderDoctorMarkdown(w, out)
	case "", "text":
		renderDoctorText(w, out)
	default:
		return fmt.Errorf("unknown format %q (available: text, markdown, json)", opts.Format)
	}
	if err != nil {
		return err
	}

	for _, check := range out.HealthChecks {
		if check.Status == "error" {
			return fmt.Errorf("%w: %s", ErrUnhealthy, check.Name)
		}
	}
	return nil
}

func buildDoctorOutput(ctx context.Context, cfg *config.Config, def theme.Definition) *DoctorOutput {
	checks := []HealthCheck{
		newCheck("CF01", "Configuration is valid", "configuration", "error", errorLines(cfg.Validate())),
		newCheck("CF02", "Session secret is set outside development", "configuration", "warn", checkSecret(cfg)),
		newCheck("CF03", "CORS origins are explicit", "configuration", "warn", checkCORS(cfg)),
		newCheck("TH01", "Theme tokens are valid", "theme", "error", errorLines(def.Validate())),
		newCheck("TH02", "Text contrast meets WCAG", "theme", "warn", checkContrast(def)),
	}

	assets, missing := checkAssets()
	checks = append(checks, newCheck("AS01", "Static assets are bundled", "assets", "error", missing))

	rendered, renderErrs := renderVariants(ctx, def)
	checks = append(checks,
		newCheck("AS02", "Every landing class has a style rule", "assets", "warn", checkClassCoverage(def, rendered)),
		newCheck("RN01", "Every landing variant renders", "rendering", "error", renderErrs),
	)

	// Sort health checks by group then by rule ID
	sort.SliceStable(checks, func(i, j int) bool {
		if checks[i].Group != checks[j].Group {
			return checks[i].Group < checks[j].Group
		}
		return checks[i].RuleID < checks[j].RuleID
	})

	issues := 0
	for _, c := range checks {
		issues += c.IssueCount
	}

	return &DoctorOutput{
		Summary: Summary{
			Environment: cfg.Environment,
			ConfigFile:  config.GetConfigFileUsed(),
			Variant:     cfg.Landing.Variant,
			Tokens:      def.Len(),
			Assets:      assets,
		},
		HealthChecks:    checks,
		Score:           calculateHealthScore(checks),
		Recommendations: generateRecommendations(checks),
		IssueCount:      issues,
	}
}

// errorLines splits a (possibly joined) error into one line per problem.
func errorLines(err error) []string {
	if err == nil {
		return nil
	}
	return strings.Split(err.Error(), "\n")
}

func checkSecret(cfg *config.Config) []string {
	if cfg.UsesDefaultSecret() && cfg.Environment != config.DefaultEnv {
		return []string{fmt.Sprintf("environment %q uses the built-in development secret", cfg.Environment)}
	}
	return nil
}

func checkCORS(cfg *config.Config) []string {
	if slices.Contains(cfg.Server.CORSOrigins, "*") {
		return []string{"wildcard origin combined with credentials lets any site read API responses"}
	}
	return nil
}

func checkContrast(def theme.Definition) []string {
	var details []string
	for _, p := range contrastPairs {
		ratio, err := def.Contrast(p.fg, p.bg)
		if err != nil {
			details = append(details, err.Error())
			continue
		}
		if ratio < p.min {
			details = append(details, fmt.Sprintf("%s on %s is %.2f:1, below %.1f:1", p.fg, p.bg, ratio, p.min))
		}
	}
	return details
}

// checkAssets returns how many required assets are present and names the missing ones.
func checkAssets() (int, []string) {
	var missing []string
	for _, name := range requiredAssets {
		if _, err := resources.ReadFile(name); err != nil {
			missing = append(missing, fmt.Sprintf("%s: %v", name, err))
		}
	}
	return len(requiredAssets) - len(missing), missing
}

func renderVariants(ctx context.Context, def theme.Definition) ([]string, []string) {
	var pages, errs []string
	for _, v := range landing.Variants() {
		page, err := landing.Render(ctx, v, landing.Options{Theme: def})
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", v, err))
			continue
		}
		pages = append(pages, page)
	}
	return pages, errs
}

var classAttr = regexp.MustCompile(`class="([^"]*)"`)

// checkClassCoverage lists classes used by the pages that neither the theme
// stylesheet nor the layout stylesheet defines.
func checkClassCoverage(def theme.Definition, pages []string) []string {
	layout, _ := resources.ReadFile("landing.css")
	css := def.CSS() + string(layout)

	seen := map[string]bool{}
	var missing []string
	for _, page := range pages {
		for _, m := range classAttr.FindAllStringSubmatch(page, -1) {
			for _, class := range strings.Fields(m[1]) {
				if seen[class] {
					continue
				}
				seen[class] = true
				if !hasRule(css, class) {
					missing = append(missing, class)
				}
			}
		}
	}
	return missing
}

// hasRule reports whether css contains a selector for class. A match must end
// the selector or be followed by a pseudo-class.
func hasRule(css, class string) bool {
	sel := "." + theme.EscapeClass(class)
	for i := strings.Index(css, sel); i >= 0; {
		end := i + len(sel)
		if end < len(css) && strings.ContainsRune(" :,{", rune(css[end])) {
			return true
		}
		next := strings.Index(css[end:], sel)
		if next < 0 {
			break
		}
		i = end + next
	}
	return false
}

// calculateHealthScore computes a health score from 0-100.
// Warnings cost 5 points per issue and errors 10.
func calculateHealthScore(checks []HealthCheck) int {
	score := 100
	for _, check := range checks {
		switch check.Status {
		case "error":
			score -= check.IssueCount * 10
		case "warn":
			score -= check.IssueCount * 5
		}
	}
	return max(score, 0)
}

// generateRecommendations creates actionable recommendations based on findings.
func generateRecommendations(checks []HealthCheck) []string {
	var recommendations []string
	for _, check := range checks {
		if check.IssueCount == 0 {
			continue
		}
		if rec := getRecommendation(check.RuleID); rec != "" {
			recommendations = append(recommendations, rec)
		}
	}
	return recommendations
}

// getRecommendation returns a recommendation for a specific rule.
func getRecommendation(ruleID string) string {
	switch ruleID {
	case "CF01":
		return "Fix the configuration values listed above in officehoursq.yaml or the OHQ_* environment"
	case "CF02":
		return "Set OHQ_SESSION_SECRET to a long random value"
	case "CF03":
		return "List the front-end origins in server.cors_origins instead of *"
	case "TH01":
		return "Correct the invalid theme tokens"
	case "TH02":
		return "Lighten the text colors or darken the surfaces they sit on"
	case "AS01":
		return "Rebuild the binary so the static directory is embedded"
	case "AS02":
		return "Add the missing classes to landing.css or the theme"
	case "RN01":
		return "Check the landing components for the failing variant"
	default:
		return ""
	}
}

var (
	doctorTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#6366F1"))
	doctorBold  = lipgloss.NewStyle().Bold(true)
	doctorMuted = lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF"))
	doctorPass  = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
	doctorWarn  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B"))
	doctorError = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
)

func renderDoctorText(w io.Writer, out *DoctorOutput) {
	p := func(format string, args ...any) { _, _ = fmt.Fprintf(w, format, args...) }

	// Header
	p("\n%s\n%s\n\n", doctorTitle.Render("OfficeHoursQ Health Report"), doctorMuted.Render(strings.Repeat("=", 55)))

	// Summary
	p("%s\n", doctorBold.Render("Summary"))
	p("   Environment: %s | Variant: %s\n", out.Summary.Environment, out.Summary.Variant)
	p("   Tokens: %d | Assets: %d\n", out.Summary.Tokens, out.Summary.Assets)
	if out.Summary.ConfigFile != "" {
		p("   Config: %s\n", out.Summary.ConfigFile)
	}
	p("\n%s\n\n", doctorBold.Render("Health Checks"))

	currentGroup := ""
	titleCaser := cases.Title(language.English)
	for _, check := range out.HealthChecks {
		if check.Group != currentGroup {
			currentGroup = check.Group
			p("%s\n%s\n", doctorBold.Render("   "+titleCaser.String(currentGroup)), doctorMuted.Render("   "+strings.Repeat("-", 40)))
		}

		icon := doctorPass.Render("✓")
		switch check.Status {
		case "warn":
			icon = doctorWarn.Render("!")
		case "error":
			icon = doctorError.Render("✗")
		}

		status := fmt.Sprintf("%s %s: %s", icon, check.RuleID, check.Name)
		if check.IssueCount > 0 {
			status += fmt.Sprintf(" (%d issues)", check.IssueCount)
		}
		p("   %s\n", status)

		// Show first 3 details for issues
		for i, detail := range check.Details {
			if i >= 3 {
				p("%s\n", doctorMuted.Render(fmt.Sprintf("       ... and %d more", len(check.Details)-3)))
				break
			}
			p("%s\n", doctorMuted.Render("       - "+detail))
		}
	}

	// Health Score
	scoreStyle := doctorPass
	if out.Score < 70 {
		scoreStyle = doctorWarn
	}
	if out.Score < 50 {
		scoreStyle = doctorError
	}
	p("\n%s\n   Health Score: %s\n\n", doctorMuted.Render(strings.Repeat("=", 55)), scoreStyle.Render(fmt.Sprintf("%d/100", out.Score)))

	// Recommendations
	if len(out.Recommendations) > 0 {
		p("%s\n", doctorBold.Render("Recommendations"))
		for i, rec := range out.Recommendations {
			p("   %d. %s\n", i+1, rec)
		}
		p("\n")
	}
}

func renderDoctorMarkdown(w io.Writer, out *DoctorOutput) {
	p := func(format string, args ...any) { _, _ = fmt.Fprintf(w, format, args...) }

	p("# OfficeHoursQ Health Report\n\n")

	p("## Summary\n\n")
	p("- **Environment**: %s\n", out.Summary.Environment)
	p("- **Variant**: %s\n", out.Summary.Variant)
	p("- **Tokens**: %d\n", out.Summary.Tokens)
	p("- **Assets**: %d\n\n", out.Summary.Assets)

	p("## Health Checks\n\n")

	currentGroup := ""
	titleCaser := cases.Title(language.English)
	for _, check := range out.HealthChecks {
		if check.Group != currentGroup {
			currentGroup = check.Group
			p("### %s\n\n", titleCaser.String(currentGroup))
		}

		p("- **[%s]** %s: %s", strings.ToUpper(check.Status), check.RuleID, check.Name)
		if check.IssueCount > 0 {
			p(" (%d issues)", check.IssueCount)
		}
		p("\n")

		for _, detail := range check.Details {
			p("  - %s\n", detail)
		}
	}

	p("\n## Health Score\n\n**%d/100**\n\n", out.Score)

	if len(out.Recommendations) > 0 {
		p("## Recommendations\n\n")
		for i, rec := range out.Recommendations {
			p("%d. %s\n", i+1, rec)
		}
		p("\n")
	}
}
