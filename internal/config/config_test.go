package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "depspec.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_MissingOptionalFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "depspec.yaml"), false)
	require.NoError(t, err)

	assert.Equal(t, DefaultSpeciesDatabase, cfg.SpeciesDatabase)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.False(t, cfg.AerosolPreset)
	assert.False(t, cfg.StrictDatabase)
}

func TestLoad_MissingRequiredFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "depspec.yaml"), true)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_ReadsValues(t *testing.T) {
	path := writeConfig(t, `
species_database: /data/species_database.yml
aerosol_preset: true
aerosol_catalogue: aerosols.csv
strict_database: true
log_level: debug
`)

	cfg, err := Load(path, true)
	require.NoError(t, err)

	assert.Equal(t, "/data/species_database.yml", cfg.SpeciesDatabase)
	assert.True(t, cfg.AerosolPreset)
	assert.Equal(t, "aerosols.csv", cfg.AerosolCatalogue)
	assert.True(t, cfg.StrictDatabase)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.ClassifierOptions().AerosolPreset)
}

func TestLoad_AppliesDefaultsToPartialFile(t *testing.T) {
	path := writeConfig(t, "aerosol_preset: true\n")

	cfg, err := Load(path, true)
	require.NoError(t, err)
	assert.Equal(t, DefaultSpeciesDatabase, cfg.SpeciesDatabase)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
}

func TestLoad_Invalid(t *testing.T) {
	t.Run("bad yaml", func(t *testing.T) {
		_, err := Load(writeConfig(t, "log_level: [\n"), true)
		assert.ErrorContains(t, err, "failed to parse config file")
	})

	t.Run("unknown log level", func(t *testing.T) {
		_, err := Load(writeConfig(t, "log_level: loud\n"), true)
		assert.ErrorContains(t, err, "invalid configuration")
	})
}
