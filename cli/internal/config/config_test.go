package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "default", cfg.CurrentProfile)
	assert.Empty(t, cfg.Profiles)
}

func TestSaveAndLoadProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.SaveProfile("staging", "http://oracle.staging:8000"))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "staging", loaded.CurrentProfile)

	profile, err := loaded.GetProfile("")
	require.NoError(t, err)
	assert.Equal(t, "http://oracle.staging:8000", profile.ServerURL)
}

func TestGetProfileNotFound(t *testing.T) {
	cfg := Default()
	_, err := cfg.GetProfile("missing")
	assert.Error(t, err)
}

func TestRemoveProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.SaveProfile("local", "http://localhost:8000"))
	require.NoError(t, cfg.RemoveProfile("local"))

	_, err = cfg.GetProfile("local")
	assert.Error(t, err)
	assert.Empty(t, cfg.CurrentProfile)

	_, err = os.Stat(path)
	assert.NoError(t, err)
}
