package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huynhanx03/go-ringqueue/pkg/datastructs/queue"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(strings.NewReader(stdin), &out)
	cmd.SetArgs(args)
	cmd.SetErr(&bytes.Buffer{})
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCmd_DefaultCapacity(t *testing.T) {
	out, err := execute(t, numberedLines(12), "--log-level", "error")
	require.NoError(t, err)
	assert.Equal(t, strings.Join(strings.Split(numberedLines(12), "\n")[2:], "\n"), out)
}

func TestRootCmd_LinesFlag(t *testing.T) {
	out, err := execute(t, "a\nb\nc\n", "-n", "1", "--log-level", "error")
	require.NoError(t, err)
	assert.Equal(t, "c\n", out)
}

func TestRootCmd_InvalidLines(t *testing.T) {
	for _, n := range []string{"0", "-4"} {
		_, err := execute(t, "a\n", "-n", n, "--log-level", "error")
		require.Error(t, err, "lines %s", n)
		assert.ErrorIs(t, err, queue.ErrInvalidCapacity)
	}
}

func TestRootCmd_LinesAboveMax(t *testing.T) {
	_, err := execute(t, "a\n", "-n", "1073741825", "--log-level", "error")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds maximum")
}

func TestRootCmd_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ringtail.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logger:\n  log_level: error\nqueue:\n  capacity: 3\n  round_to_power_of_two: true\n"), 0o600))

	out, err := execute(t, numberedLines(6), "--config", path)
	require.NoError(t, err)
	// 3 rounds up to 4.
	assert.Equal(t, "line 3\nline 4\nline 5\nline 6\n", out)

	// -n wins over the file and disables rounding.
	out, err = execute(t, numberedLines(6), "--config", path, "-n", "3")
	require.NoError(t, err)
	assert.Equal(t, "line 4\nline 5\nline 6\n", out)
}

func TestRootCmd_BadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ringtail.yaml")
	require.NoError(t, os.WriteFile(path, []byte("queue:\n  capacity: 0\n"), 0o600))

	_, err := execute(t, "a\n", "--config", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

func TestRootCmd_BadLogLevel(t *testing.T) {
	_, err := execute(t, "a\n", "--log-level", "chatty")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}

func TestRootCmd_Files(t *testing.T) {
	a := writeFile(t, "a.txt", "1\n2\n3\n")
	out, err := execute(t, "", "-n", "2", "--log-level", "error", a)
	require.NoError(t, err)
	assert.Equal(t, "2\n3\n", out)
}
