package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, ".tablesmith", cfg.Workspace)
	assert.Equal(t, "default", cfg.Schema)
	assert.Equal(t, 8815, cfg.Server.Port)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte("schema: shop\nserver:\n  port: 9001\n"), 0o644))

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "shop", cfg.Schema)
	assert.Equal(t, 9001, cfg.Server.Port)
	// untouched keys keep their defaults
	assert.Equal(t, ".tablesmith", cfg.Workspace)
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 9001\n"), 0o644))

	t.Setenv("TABLESMITH_SERVER_PORT", "9002")
	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, 9002, cfg.Server.Port)
}

func TestFlagsOverrideEverything(t *testing.T) {
	t.Setenv("TABLESMITH_SCHEMA", "from-env")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("schema", "default", "")
	require.NoError(t, fs.Parse([]string{"--schema", "from-flag"}))

	cfg, err := Load("", fs)
	require.NoError(t, err)
	assert.Equal(t, "from-flag", cfg.Schema)
}

func TestDatabasePath(t *testing.T) {
	cfg := &Config{Workspace: "/tmp/ws"}
	assert.Equal(t, filepath.Join("/tmp/ws", "workspace.db"), cfg.DatabasePath())
}
