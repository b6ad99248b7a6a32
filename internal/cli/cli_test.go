package cli_test

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rshade/listkit/internal/cli"
	"github.com/rshade/listkit/internal/config"
)

// setupCLITest isolates the configuration directory and global state.
func setupCLITest(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv(config.EnvHome, home)
	t.Setenv(config.EnvConfig, "")
	t.Cleanup(config.ResetGlobalConfigForTest)
	return home
}

// executeCLI runs the root command with args and returns combined output.
func executeCLI(t *testing.T, env map[string]string, args ...string) (string, error) {
	t.Helper()
	if env == nil {
		env = map[string]string{config.EnvLogLevel: "error"}
	}
	lookupEnv := func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}

	var buf bytes.Buffer
	cmd := cli.NewRootCmdWithEnv("test", lookupEnv)
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return buf.String(), err
}

// writeNumberedList writes a text source with a header followed by n entries.
func writeNumberedList(t *testing.T, n int) string {
	t.Helper()
	var b strings.Builder
	b.WriteString("# Items\n")
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "item %d\n", i)
	}
	path := filepath.Join(t.TempDir(), "items.txt")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o600))
	return path
}
