package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carprice/internal/config"
)

func TestOpen(t *testing.T) {
	artifact := filepath.Join(t.TempDir(), "model.json5")
	require.NoError(t, os.WriteFile(artifact, []byte(`{name: "tiny", intercept: 42}`), 0644))

	b, err := Open(config.ModelConfig{Backend: config.BackendLinear, Artifact: artifact})
	require.NoError(t, err)
	assert.Equal(t, "tiny", b.Name())

	b, err = Open(config.ModelConfig{Backend: config.BackendRemote, RemoteURL: "http://localhost:1/predict", TimeoutSec: 1})
	require.NoError(t, err)
	assert.Equal(t, "remote", b.Name())
}

func TestOpen_Errors(t *testing.T) {
	_, err := Open(config.ModelConfig{Backend: "tflite"})
	assert.ErrorIs(t, err, config.ErrInvalidBackend)

	_, err = Open(config.ModelConfig{Backend: config.BackendLinear, Artifact: filepath.Join(t.TempDir(), "nope.json5")})
	assert.ErrorIs(t, err, os.ErrNotExist)
}
