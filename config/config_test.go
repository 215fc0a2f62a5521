package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
}

func TestLoadConfigOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "imaging.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
convert:
  format: webp
  max_width: 640
background:
  key_color: "#00ff00"
  tolerance: 40
batch:
  workers: 3
`), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "webp", cfg.Convert.Format)
	assert.Equal(t, uint32(640), cfg.Convert.MaxWidth)
	assert.Equal(t, 85, cfg.Convert.Quality, "unset keys keep their default")
	assert.True(t, cfg.Convert.PreserveAspect)
	assert.Equal(t, "#00ff00", cfg.Background.KeyColor)
	assert.Equal(t, uint8(40), cfg.Background.Tolerance)
	assert.Equal(t, 3, cfg.Batch.Workers)
	assert.Equal(t, 500, cfg.Watch.DebounceMillis)
}

func TestLoadConfigErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadConfig(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	tests := map[string]string{
		"syntax":          "convert: [",
		"format":          "convert:\n  format: heic\n",
		"quality":         "convert:\n  quality: 101\n",
		"color":           "background:\n  key_color: green\n",
		"tolerance range": "background:\n  tolerance: 300\n",
		"workers":         "batch:\n  workers: -1\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name+".yaml")
			require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
			_, err := LoadConfig(path)
			assert.Error(t, err)
		})
	}
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	cfg := DefaultConfig()
	cfg.Background.SoftenEdges = true
	cfg.Verbose = true
	require.NoError(t, cfg.SaveConfig(path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestYAMLUsesSnakeCaseKeys(t *testing.T) {
	out, err := DefaultConfig().YAML()
	require.NoError(t, err)
	assert.Contains(t, string(out), "key_color:")
	assert.Contains(t, string(out), "#FFFFFF")
	assert.Contains(t, string(out), "debounce_ms: 500")
}
