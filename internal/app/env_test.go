package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadEnvSkipsMissingAndKeepsExisting(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envPath, []byte("DIETA_TEST_FROM_FILE=file\nDIETA_TEST_PRESET=file\n"), 0o600))

	t.Setenv("DIETA_TEST_PRESET", "process")
	t.Setenv("DIETA_TEST_FROM_FILE", "")
	require.NoError(t, os.Unsetenv("DIETA_TEST_FROM_FILE"))

	loaded, err := LoadEnv(filepath.Join(dir, "missing.env"), envPath)
	require.NoError(t, err)
	require.Equal(t, []string{envPath}, loaded)
	require.Equal(t, "file", os.Getenv("DIETA_TEST_FROM_FILE"))
	require.Equal(t, "process", os.Getenv("DIETA_TEST_PRESET"))
}

func TestNewLoggerQuietByDefault(t *testing.T) {
	logger, err := NewLogger(false)
	require.NoError(t, err)
	require.False(t, logger.Core().Enabled(-1))

	verbose, err := NewLogger(true)
	require.NoError(t, err)
	require.True(t, verbose.Core().Enabled(-1))
}
