package cli

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stefanpenner/bujo/pkg/config"
)

var fixedNow = time.Date(2026, time.March, 14, 15, 0, 0, 0, time.Local)

// setupTestEnv isolates HOME and $BUJO_DIR, pins the clock, and returns a
// data directory that does not exist yet.
func setupTestEnv(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(config.EnvDir, "")

	prev := now
	now = func() time.Time { return fixedNow }
	t.Cleanup(func() { now = prev })

	return filepath.Join(home, "journal")
}

// execute runs the root command with args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// mustExecute runs a command against dir and fails the test on error.
func mustExecute(t *testing.T, dir string, args ...string) string {
	t.Helper()
	out, err := execute(t, append([]string{"--dir", dir}, args...)...)
	require.NoError(t, err, "bujo %v", args)
	return out
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "bujo", cmd.Use)
	assert.Contains(t, cmd.Long, "daily id")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := [][]string{
		{"init"},
		{"clean"},
		{"print"},
		{"debug"},
		{"add"},
		{"delete"},
		{"daily"},
		{"daily", "complete"},
		{"daily", "schedule"},
		{"daily", "subtask"},
		{"migrate"},
		{"archive"},
		{"archive", "list"},
		{"tui"},
	}

	for _, path := range commands {
		name := path[len(path)-1]
		t.Run(name, func(t *testing.T) {
			subCmd, _, err := cmd.Find(path)
			require.NoError(t, err, "command %v should exist", path)
			assert.Equal(t, name, subCmd.Name())
		})
	}
}

func TestDebugAlias(t *testing.T) {
	cmd := NewRootCommand()
	subCmd, _, err := cmd.Find([]string{"raw"})
	require.NoError(t, err)
	assert.Equal(t, "debug", subCmd.Name())
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	jsonFlag := cmd.PersistentFlags().Lookup("json")
	require.NotNil(t, jsonFlag)
	assert.Equal(t, "false", jsonFlag.DefValue)

	dirFlag := cmd.PersistentFlags().Lookup("dir")
	require.NotNil(t, dirFlag)
	assert.Equal(t, "", dirFlag.DefValue)
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, GetExitCode(nil))
	assert.Equal(t, ExitFailure, GetExitCode(assert.AnError))
	assert.Equal(t, ExitCommandError, GetExitCode(NewExitError(ExitCommandError, "usage")))
	assert.Equal(t, ExitFailure, GetExitCode(WrapExitError(ExitFailure, "failed", assert.AnError)))
}

func TestExitErrorMessage(t *testing.T) {
	assert.Equal(t, "usage", NewExitError(ExitCommandError, "usage").Error())
	assert.Equal(t, "failed: "+assert.AnError.Error(), WrapExitError(ExitFailure, "failed", assert.AnError).Error())
	assert.Equal(t, assert.AnError.Error(), (&ExitError{Code: ExitFailure, Err: assert.AnError}).Error())
}
