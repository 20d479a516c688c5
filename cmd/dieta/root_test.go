package dieta

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestRootHelp(t *testing.T) {
	out, err := run(t, "--help")
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestInitCommandIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dieta.db")
	for i := 0; i < 2; i++ {
		out, err := run(t, "--db", path, "init")
		require.NoErrorf(t, err, "init run %d", i+1)
		assert.Contains(t, out, "Initialized dieta database")
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "dieta ")
}

func TestTodayWithoutPlan(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dieta.db")
	out, err := run(t, "--db", path, "today", "--date", "2026-03-01")
	require.NoError(t, err)
	assert.Contains(t, out, "Plan: not set")
	assert.Contains(t, out, "Eaten: 0 kcal")
}
