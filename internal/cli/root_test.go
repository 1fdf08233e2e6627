package cli

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/officehoursq/officehoursq/internal/cli/config"
	"github.com/officehoursq/officehoursq/internal/cli/testutil"
)

func TestRootCmd_Subcommands(t *testing.T) {
	root := NewRootCmd()

	want := []string{"version", "serve", "render", "export", "theme", "doctor", "init", "completion"}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, cmd.Name())
	}

	for _, flag := range []string{"config", "env", "verbose", "log-format"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestRootCmd_Version(t *testing.T) {
	testutil.SetupTestProject(t, "")

	res := testutil.Execute(t, NewRootCmd(), "version")
	require.NoError(t, res.Err)
	assert.Contains(t, res.Out, "OfficeHoursQ v"+Version)

	res = testutil.Execute(t, NewRootCmd(), "--version")
	require.NoError(t, res.Err)
	assert.Contains(t, res.Out, "officehoursq "+Version)
}

func TestRootCmd_RenderUsesConfigVariant(t *testing.T) {
	testutil.SetupTestProject(t, "landing:\n  variant: card\n")

	res := testutil.Execute(t, NewRootCmd(), "render")
	require.NoError(t, res.Err)
	assert.Contains(t, res.Out, "bg-card")
	assert.NotContains(t, res.Out, `href="/login"`)

	res = testutil.Execute(t, NewRootCmd(), "render", "--variant", "hero")
	require.NoError(t, res.Err)
	assert.Contains(t, res.Out, `href="/login"`)
}

func TestRootCmd_RenderMarkdown(t *testing.T) {
	testutil.SetupTestProject(t, "")

	res := testutil.Execute(t, NewRootCmd(), "render", "--format", "markdown")
	require.NoError(t, res.Err)
	testutil.AssertNoANSI(t, res.Out)
	testutil.AssertValidMarkdown(t, res.Out)
	assert.Contains(t, res.Out, "OfficeHoursQ")
}

func TestRootCmd_EnvOverridesFile(t *testing.T) {
	testutil.SetupTestProject(t, "landing:\n  variant: hero\n")
	t.Setenv("OHQ_LANDING__VARIANT", "card")

	res := testutil.Execute(t, NewRootCmd(), "render")
	require.NoError(t, res.Err)
	assert.Contains(t, res.Out, "bg-card")
}

func TestRootCmd_InvalidConfig(t *testing.T) {
	testutil.SetupTestProject(t, "landing:\n  variant: banner\nlog_format: xml\n")

	res := testutil.Execute(t, NewRootCmd(), "render")
	require.Error(t, res.Err)
	assert.Contains(t, res.Err.Error(), "invalid configuration")
	assert.Contains(t, res.Err.Error(), "landing.variant")
	assert.Contains(t, res.Err.Error(), "log_format")
}

func TestRootCmd_VerboseLogsToStderr(t *testing.T) {
	testutil.SetupTestProject(t, "server:\n  port: 9001\n")

	res := testutil.Execute(t, NewRootCmd(), "-v", "--log-format", "json", "theme", "--format", "json")
	require.NoError(t, res.Err)
	assert.Contains(t, res.ErrOut, `"msg":"configuration loaded"`)
	assert.Contains(t, res.ErrOut, `"port":9001`)
	assert.Contains(t, res.Out, `"colors"`)
}

func TestRootCmd_Completion(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		res := testutil.Execute(t, NewRootCmd(), "completion", shell)
		require.NoError(t, res.Err, shell)
		assert.Contains(t, res.Out, "officehoursq", shell)
	}

	res := testutil.Execute(t, NewRootCmd(), "completion", "tcsh")
	assert.Error(t, res.Err)
}

func TestRootCmd_StoresConfigInContext(t *testing.T) {
	testutil.SetupTestProject(t, "server:\n  port: 9002\nlanding:\n  variant: card\n")

	var got *config.Config
	root := NewRootCmd()
	root.AddCommand(&cobra.Command{
		Use: "capture",
		RunE: func(cmd *cobra.Command, _ []string) error {
			got = config.FromContext(cmd.Context())
			return nil
		},
	})

	res := testutil.Execute(t, root, "capture", "--env", "staging")
	require.NoError(t, res.Err)
	require.NotNil(t, got)
	assert.Equal(t, 9002, got.Server.Port)
	assert.Equal(t, "card", got.Landing.Variant)
	assert.Equal(t, "staging", got.Environment)
}
