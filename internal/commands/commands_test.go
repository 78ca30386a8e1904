package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bankfeed-dev/bankfeed/internal/bankerr"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "user-config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestBanksCommand(t *testing.T) {
	out, err := runCommand(t, "banks")
	require.NoError(t, err)
	assert.Equal(t, "dummy\nnordea\nrevolut\nswedbank\n", out)
}

func TestFetchCommandMissingConfig(t *testing.T) {
	_, err := runCommand(t, "fetch", "dummy", "--config", filepath.Join(t.TempDir(), "nope.yaml"))
	require.ErrorIs(t, err, bankerr.ErrConfig)
}

func TestFetchCommandUnknownBank(t *testing.T) {
	cfgPath := writeConfig(t, "bank: {}\n")

	_, err := runCommand(t, "fetch", "nosuch", "--config", cfgPath)
	require.ErrorIs(t, err, bankerr.ErrConfig)
	assert.Contains(t, err.Error(), `unknown bank "nosuch"`)
}

func TestFetchCommandDummy(t *testing.T) {
	color.NoColor = true
	cfgPath := writeConfig(t, "bank: {}\n")

	out, err := runCommand(t, "fetch", "dummy", "--config", cfgPath, "--no-spinner")
	require.NoError(t, err)
	assert.Contains(t, out, "Progress step 5")
	assert.Contains(t, out, "Dummy")
	assert.Contains(t, out, "-929.23")
	assert.Contains(t, out, "Available Amount")
}
