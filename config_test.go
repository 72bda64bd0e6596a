package golay

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/op/go-logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pd0mz/go-golay/container"
)

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
error_probability: 0.05
seed: 42
on_uncorrectable: abort
padding: exact
container: bmp
log_level: debug
`))
	require.NoError(t, err)
	assert.Equal(t, 0.05, cfg.ErrorProbability)
	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, Abort, cfg.Policy())
	assert.Equal(t, ExactPadding, cfg.PaddingPolicy())
	assert.Equal(t, container.BMP, cfg.ContainerKind())
	assert.Equal(t, logging.DEBUG, cfg.Level())
}

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := ParseConfig([]byte(`seed: 7`))
	require.NoError(t, err)
	assert.Equal(t, 0.01, cfg.ErrorProbability)
	assert.Equal(t, Substitute, cfg.Policy())
	assert.Equal(t, LegacyPadding, cfg.PaddingPolicy())
	assert.Equal(t, container.Raw, cfg.ContainerKind())
	assert.Equal(t, logging.INFO, cfg.Level())
}

func TestParseConfigInvalid(t *testing.T) {
	for _, test := range []string{
		`error_probability: 1.5`,
		`error_probability: -0.1`,
		`on_uncorrectable: retry`,
		`padding: none`,
		`container: gif`,
		`log_level: loud`,
		`unknown_field: 1`,
	} {
		_, err := ParseConfig([]byte(test))
		assert.ErrorIs(t, err, ErrInvalidConfig, test)
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "golay.yaml")
	require.NoError(t, os.WriteFile(path, []byte("error_probability: 0.2\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 0.2, cfg.ErrorProbability)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
