package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetFlags restores every flag to its default so commands can run more than once per process
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

// executeCommand runs the root command in-process and returns stdout
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	t.Cleanup(func() { cfg = nil })

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return stdout.String(), err
}

// clearCredentials keeps the developer's environment out of the test
func clearCredentials(t *testing.T) {
	t.Helper()
	for _, key := range []string{"GEMINI_API_KEY", "RESUME_API_KEY", "DATABASE_URL", "RESUME_DATABASE_URL", "JWT_SECRET", "RESUME_JWT_SECRET", "RESUME_AS_OF"} {
		t.Setenv(key, "")
	}
}

func writeTestFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestExperienceCommand_Intervals(t *testing.T) {
	clearCredentials(t)

	out, err := executeCommand(t, "experience",
		"--interval", "01/2020:12/2021",
		"--interval", "06/2021:Present",
		"--as-of", "2024-01")

	require.NoError(t, err)
	assert.Equal(t, "Total experience: 4 years (4.00 years)\n", out)
}

func TestExperienceCommand_FileJSON(t *testing.T) {
	clearCredentials(t)
	path := writeTestFile(t, "history.json", `{"work_experience": [
		{"start_date": "Mar 2022", "end_date": "Aug 2023"},
		{"start_date": "", "end_date": "2015"}
	]}`)

	out, err := executeCommand(t, "experience", "--in", path, "--json", "--as-of", "2024-01")
	require.NoError(t, err)

	assert.Contains(t, out, `"total_months": 18`)
	assert.Contains(t, out, `"display": "1 year, 6 months"`)
	assert.Contains(t, out, `"reason": "missing_field"`)
}

func TestExperienceCommand_UsesConfiguredAsOf(t *testing.T) {
	clearCredentials(t)
	t.Setenv("RESUME_AS_OF", "2021-01")

	out, err := executeCommand(t, "experience", "--interval", "01/2020:present")

	require.NoError(t, err)
	assert.Equal(t, "Total experience: 1 year (1.00 years)\n", out)
}

func TestExperienceCommand_RequiresInput(t *testing.T) {
	clearCredentials(t)

	_, err := executeCommand(t, "experience")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one of the flags")
}

func TestExperienceCommand_InvalidFile(t *testing.T) {
	clearCredentials(t)
	path := writeTestFile(t, "history.json", `{"work_experience": "not a list"}`)

	_, err := executeCommand(t, "experience", "--in", path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load work history")
}

func TestParseIntervalFlag(t *testing.T) {
	r, err := parseIntervalFlag(" Jan 2020 : Present ")
	require.NoError(t, err)
	assert.Equal(t, "Jan 2020", r.Start)
	assert.Equal(t, "Present", r.End)

	r, err = parseIntervalFlag("01/2020:")
	require.NoError(t, err)
	assert.Equal(t, "", r.End)

	_, err = parseIntervalFlag("01/2020-12/2021")
	assert.Error(t, err)
}

func TestParseCommand_RequiresAPIKey(t *testing.T) {
	clearCredentials(t)
	path := writeTestFile(t, "resume.txt", "Jane Doe")

	_, err := executeCommand(t, "parse", "--in", path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "GEMINI_API_KEY")
}

func TestBatchCommand_RequiresDir(t *testing.T) {
	clearCredentials(t)

	_, err := executeCommand(t, "batch")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "required")
}

func TestTokenCommand(t *testing.T) {
	clearCredentials(t)
	t.Setenv("JWT_SECRET", "cli-test-secret-0123456789")

	out, err := executeCommand(t, "token", "--subject", "ci-bot", "--ttl", "1h")
	require.NoError(t, err)

	token := strings.TrimSpace(out)
	assert.Len(t, strings.Split(token, "."), 3)
}

func TestTokenCommand_RequiresSecret(t *testing.T) {
	clearCredentials(t)

	_, err := executeCommand(t, "token", "--subject", "ci-bot")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestValidateCommand(t *testing.T) {
	clearCredentials(t)

	valid := writeTestFile(t, "history.json", `[{"start_date": "01/2020", "end_date": "Present"}]`)
	out, err := executeCommand(t, "validate", "--in", valid, "--schema", "work_history")
	require.NoError(t, err)
	assert.Contains(t, out, "is valid")

	_, err = executeCommand(t, "validate", "--in", valid, "--schema", "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown schema")
}

func TestValidateFile_SchemaFile(t *testing.T) {
	schema := writeTestFile(t, "schema.json", `{"type": "object", "required": ["name"]}`)
	good := writeTestFile(t, "good.json", `{"name": "x"}`)
	bad := writeTestFile(t, "bad.json", `{}`)

	assert.NoError(t, validateFile(good, "", schema))
	assert.Error(t, validateFile(bad, "", schema))
}

func TestConfigFlag_MissingFile(t *testing.T) {
	clearCredentials(t)

	_, err := executeCommand(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "experience", "--interval", "01/2020:02/2020")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestConfigFlag_File(t *testing.T) {
	clearCredentials(t)
	path := writeTestFile(t, "config.yaml", "as_of: \"2022-01\"\n")

	out, err := executeCommand(t, "--config", path, "experience", "--interval", "01/2020:Present")

	require.NoError(t, err)
	assert.Equal(t, "Total experience: 2 years (2.00 years)\n", out)
}
