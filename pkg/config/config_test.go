package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stefanpenner/bujo/pkg/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromPrecedence(t *testing.T) {
	home := t.TempDir()
	t.Setenv(EnvDir, "")

	cfg, err := LoadFrom(home, "")
	require.NoError(t, err)
	assert.Equal(t, store.DefaultDataDir(), cfg.DataDir)
	assert.Equal(t, filepath.Join(home, RCFileName), cfg.RCPath)

	require.NoError(t, os.WriteFile(filepath.Join(home, RCFileName), []byte("data_dir: /from/rc\n"), 0644))
	cfg, err = LoadFrom(home, "")
	require.NoError(t, err)
	assert.Equal(t, "/from/rc", cfg.DataDir)

	t.Setenv(EnvDir, "/from/env")
	cfg, err = LoadFrom(home, "")
	require.NoError(t, err)
	assert.Equal(t, "/from/env", cfg.DataDir)

	cfg, err = LoadFrom(home, "/from/flag")
	require.NoError(t, err)
	assert.Equal(t, "/from/flag", cfg.DataDir)
}

func TestLoadFromLegacyJSON(t *testing.T) {
	home := t.TempDir()
	t.Setenv(EnvDir, "")
	rc := `{"home":"/home/me","bujorc":"/home/me/.bujorc","data_dir":"/home/me/.bujo_data"}`
	require.NoError(t, os.WriteFile(filepath.Join(home, RCFileName), []byte(rc), 0644))

	cfg, err := LoadFrom(home, "")
	require.NoError(t, err)
	assert.Equal(t, "/home/me/.bujo_data", cfg.DataDir)
	assert.Equal(t, home, cfg.Home)
}

func TestLoadFromBadRC(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(home, RCFileName), []byte("data_dir: [unclosed"), 0644))

	_, err := LoadFrom(home, "")
	assert.Error(t, err)
}

func TestInitializeAndClean(t *testing.T) {
	home := t.TempDir()
	t.Setenv(EnvDir, "")
	dataDir := filepath.Join(home, "journal")
	cfg, err := LoadFrom(home, dataDir)
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, cfg.Initialize(&out))
	assert.Contains(t, out.String(), "Created "+cfg.RCPath)
	assert.Contains(t, out.String(), "Created data directory")
	assert.True(t, cfg.Store().Exists())

	// The rc file points at the data directory.
	again, err := LoadFrom(home, "")
	require.NoError(t, err)
	assert.Equal(t, dataDir, again.DataDir)

	out.Reset()
	require.NoError(t, cfg.Initialize(&out))
	assert.Contains(t, out.String(), "already exists")

	out.Reset()
	require.NoError(t, cfg.Clean(&out))
	assert.Contains(t, out.String(), "Deleted "+cfg.RCPath)
	assert.Contains(t, out.String(), "Deleted "+dataDir)
	_, err = os.Stat(dataDir)
	assert.True(t, os.IsNotExist(err))

	out.Reset()
	require.NoError(t, cfg.Clean(&out))
	assert.Contains(t, out.String(), "No .bujorc to delete")
	assert.Contains(t, out.String(), "No data directory to delete")
}
