package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

func newCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("endpoint", "", "")
	cmd.Flags().String("key-file", "", "")
	cmd.Flags().Duration("timeout", 0, "")
	cmd.Flags().String("log-level", "", "")
	return cmd
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "familycoin.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv("XDG_CONFIG_HOME", t.TempDir())
		c, err := Load(newCmd(), "")
		require.NoError(t, err)
		require.Equal(t, "http://localhost:8000", c.Endpoint)
		require.Equal(t, 15*time.Second, c.Timeout)
		require.Equal(t, 60*time.Second, c.CacheTTL)
		require.Equal(t, "warn", c.LogLevel)
		require.False(t, c.AuthHeuristics)
	})

	t.Run("file", func(t *testing.T) {
		path := writeConfig(t, "endpoint: https://coin.example\ntimeout: 3s\ncache_size: 64\nauth_heuristics: true\nkey_file: /keys/me.pem\n")
		c, err := Load(newCmd(), path)
		require.NoError(t, err)
		require.Equal(t, "https://coin.example", c.Endpoint)
		require.Equal(t, 3*time.Second, c.Timeout)
		require.Equal(t, 64, c.CacheSize)
		require.True(t, c.AuthHeuristics)
		require.Equal(t, "/keys/me.pem", c.KeyFile)
	})

	t.Run("file in working directory", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "familycoin.yaml"), []byte("log_level: debug\n"), 0o600))
		t.Chdir(dir)
		t.Setenv("XDG_CONFIG_HOME", t.TempDir())
		c, err := Load(newCmd(), "")
		require.NoError(t, err)
		require.Equal(t, "debug", c.LogLevel)
	})

	t.Run("env overrides file", func(t *testing.T) {
		path := writeConfig(t, "endpoint: https://coin.example\n")
		t.Setenv("FAMILYCOIN_ENDPOINT", "http://env.example:9000")
		t.Setenv("FAMILYCOIN_CACHE_TTL", "5s")
		c, err := Load(newCmd(), path)
		require.NoError(t, err)
		require.Equal(t, "http://env.example:9000", c.Endpoint)
		require.Equal(t, 5*time.Second, c.CacheTTL)
	})

	t.Run("flags override env", func(t *testing.T) {
		t.Setenv("FAMILYCOIN_KEY_FILE", "/env.pem")
		t.Setenv("FAMILYCOIN_TIMEOUT", "20s")
		cmd := newCmd()
		require.NoError(t, cmd.Flags().Parse([]string{"--key-file", "/flag.pem"}))
		c, err := Load(cmd, writeConfig(t, ""))
		require.NoError(t, err)
		require.Equal(t, "/flag.pem", c.KeyFile)
		require.Equal(t, 20*time.Second, c.Timeout)
	})

	t.Run("missing explicit file", func(t *testing.T) {
		_, err := Load(newCmd(), filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
	})

	t.Run("malformed file", func(t *testing.T) {
		_, err := Load(newCmd(), writeConfig(t, "endpoint: [\n"))
		require.Error(t, err)
	})

	t.Run("invalid values", func(t *testing.T) {
		_, err := Load(newCmd(), writeConfig(t, "endpoint: ftp://coin.example\n"))
		require.ErrorContains(t, err, "scheme")

		_, err = Load(newCmd(), writeConfig(t, "timeout: 0s\n"))
		require.ErrorContains(t, err, "timeout")
	})
}
