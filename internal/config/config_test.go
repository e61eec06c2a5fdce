package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFileFrom_MissingFileIsZeroValue(t *testing.T) {
	fc, err := LoadFileFrom(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, FileConfig{}, fc)
}

func TestLoadFileFrom_ParsesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
llm:
  model: gpt-4o
  base_url: http://localhost:8080/v1
defaults:
  prefer_paru: true
  yes: true
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	fc, err := LoadFileFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o", fc.LLM.Model)
	assert.Equal(t, "http://localhost:8080/v1", fc.LLM.BaseURL)
	assert.True(t, fc.Defaults.PreferParu)
	assert.True(t, fc.Defaults.Yes)
	assert.False(t, fc.Defaults.NoSudo)
}

func TestLoadFileFrom_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("llm: [unclosed"), 0o644))

	_, err := LoadFileFrom(path)
	assert.Error(t, err)
}

func TestModel_Precedence(t *testing.T) {
	var fc FileConfig
	fc.LLM.Model = "file-model"

	t.Setenv(EnvModel, "env-model")
	assert.Equal(t, "env-model", Model(fc))

	t.Setenv(EnvModel, "")
	assert.Equal(t, "file-model", Model(fc))

	assert.Equal(t, DefaultModel, Model(FileConfig{}))
}

func TestAPIKey(t *testing.T) {
	t.Setenv(EnvAPIKey, "sk-test")
	assert.Equal(t, "sk-test", APIKey())

	t.Setenv(EnvAPIKey, "")
	assert.Empty(t, APIKey())
}
