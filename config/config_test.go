package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, 1000, cfg.PointCount)
	assert.Equal(t, float32(5.0), cfg.PointSize)
	assert.Equal(t, float32(0.8), cfg.Intensity)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pointdrift.toml")
	content := `
point_count = 5000
point_size = 3.5
background = "wallpaper.png"
basic_renderer = true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.PointCount)
	assert.Equal(t, float32(3.5), cfg.PointSize)
	assert.Equal(t, "wallpaper.png", cfg.Background)
	assert.True(t, cfg.BasicRenderer)

	// Untouched fields keep their defaults.
	assert.Equal(t, float32(0.8), cfg.Intensity)
	assert.Equal(t, 1280, cfg.Width)
}

func TestLoadMissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestLoadRejectsBadValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("point_count = -1\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsInvalidToml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.toml")
	require.NoError(t, os.WriteFile(path, []byte("point_count = [oops\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
