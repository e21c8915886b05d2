package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jci-public/numerics/internal/config"
)

func TestInitConfigurationFileWritesLoadableConfig(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "numerics.yaml")

	require.NoError(t, initConfigurationFile(path))

	_, err := os.Stat(path)
	require.NoError(t, err)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Contains(t, cfg.BaseUnits, "m")
	assert.Contains(t, cfg.Units, "N")
}

func TestInitConfigurationFileDefaultsPathWhenEmpty(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })

	require.NoError(t, initConfigurationFile(""))
	_, err = os.Stat(filepath.Join(dir, "numerics.yaml"))
	require.NoError(t, err)
}
