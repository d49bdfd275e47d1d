package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettings_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	s, err := LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, "info", s.LogLevel)
	assert.Equal(t, "console", s.Format)
	assert.Equal(t, 0, s.BaseYear)
	assert.Equal(t, 8, s.Workers)
	assert.Equal(t, ":8080", s.Server.Addr)
	assert.Equal(t, 1<<20, s.Server.MaxBodyBytes)
}

func TestLoadSettings_EnvOverride(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("CORPUS_LOG_LEVEL", "debug")
	t.Setenv("CORPUS_BASE_YEAR", "2030")
	t.Setenv("CORPUS_SERVER_ADDR", "127.0.0.1:9090")

	s, err := LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, "debug", s.LogLevel)
	assert.Equal(t, 2030, s.BaseYear)
	assert.Equal(t, "127.0.0.1:9090", s.Server.Addr)
}

func TestLoadSettingsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus.yaml")
	content := "format: json\nworkers: 2\nserver:\n  addr: \":7070\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	s, err := LoadSettingsFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "json", s.Format)
	assert.Equal(t, 2, s.Workers)
	assert.Equal(t, ":7070", s.Server.Addr)
	assert.Equal(t, "info", s.LogLevel)
}

func TestLoadSettingsFromFile_Missing(t *testing.T) {
	_, err := LoadSettingsFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestSettingsValidate(t *testing.T) {
	s := Settings{Workers: 0, Server: ServerSettings{Addr: ":80"}}
	assert.ErrorContains(t, s.Validate(), "workers")

	s.Workers = 1
	s.BaseYear = -1
	assert.ErrorContains(t, s.Validate(), "base_year")

	s.BaseYear = 2025
	s.Server.Addr = ""
	assert.ErrorContains(t, s.Validate(), "server.addr")
}
