package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/grahms/variantweaver"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "variantweaver.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Run("defaults without a config file", func(t *testing.T) {
		t.Chdir(t.TempDir())
		config, err := Load("", nil)
		require.NoError(t, err)
		require.Equal(t, "info", config.LogLevel)
		require.Equal(t, "console", config.LogFormat)
		require.Equal(t, "ignore", config.Unclosed)
		require.Equal(t, 4, config.Jobs)
	})

	t.Run("file values override defaults", func(t *testing.T) {
		path := writeConfig(t, "log_level: debug\nunclosed: strict\njobs: 2\n")
		config, err := Load(path, nil)
		require.NoError(t, err)
		require.Equal(t, "debug", config.LogLevel)
		require.Equal(t, "strict", config.Unclosed)
		require.Equal(t, 2, config.Jobs)
	})

	t.Run("env overrides the file", func(t *testing.T) {
		path := writeConfig(t, "log_level: debug\n")
		t.Setenv("VARIANTWEAVER_LOG_LEVEL", "error")
		config, err := Load(path, nil)
		require.NoError(t, err)
		require.Equal(t, "error", config.LogLevel)
	})

	t.Run("changed flags override env", func(t *testing.T) {
		t.Setenv("VARIANTWEAVER_UNCLOSED", "audit")
		flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
		flags.String("unclosed", "ignore", "")
		flags.Int("jobs", 4, "")
		require.NoError(t, flags.Parse([]string{"--unclosed=strict"}))

		t.Chdir(t.TempDir())
		config, err := Load("", flags)
		require.NoError(t, err)
		require.Equal(t, "strict", config.Unclosed)
		require.Equal(t, 4, config.Jobs)
	})

	t.Run("missing explicit file is an error", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
		require.Error(t, err)
	})

	t.Run("jobs is at least one", func(t *testing.T) {
		config, err := Load(writeConfig(t, "jobs: 0\n"), nil)
		require.NoError(t, err)
		require.Equal(t, 1, config.Jobs)
	})
}

func TestConfigPolicy(t *testing.T) {
	cases := map[string]variantweaver.UnclosedPolicy{
		"":       variantweaver.UnclosedIgnore,
		"ignore": variantweaver.UnclosedIgnore,
		"Audit":  variantweaver.UnclosedAudit,
		"strict": variantweaver.UnclosedStrict,
	}
	for in, want := range cases {
		got, err := Config{Unclosed: in}.Policy()
		require.NoError(t, err)
		require.Equal(t, want, got)
	}

	_, err := Config{Unclosed: "sometimes"}.Policy()
	require.Error(t, err)
}
