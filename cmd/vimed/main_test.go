package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vimed-graphrag/vimed-cli/internal/adapters/driven/config/file"
	"github.com/vimed-graphrag/vimed-cli/internal/adapters/driving/cli"
	"github.com/vimed-graphrag/vimed-cli/internal/core/domain"
)

func TestBuild_Ephemeral(t *testing.T) {
	dir := t.TempDir()

	s, err := build(cli.Options{Ephemeral: true, ConfigDir: dir, Server: "http://gpu-box:8000/"})

	require.NoError(t, err)
	assert.Equal(t, "http://gpu-box:8000/api/graph/visualize", s.Visualization.Endpoint())
	assert.Equal(t, filepath.Join(dir, "logs", "vimed.log"), s.LogFile)
	assert.Nil(t, s.Watcher)
	assert.NoFileExists(t, filepath.Join(dir, file.FileName))
}

func TestBuild_InvalidServer(t *testing.T) {
	_, err := build(cli.Options{Ephemeral: true, ConfigDir: t.TempDir(), Server: "gpu-box"})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestBuild_FromConfigFile(t *testing.T) {
	dir := t.TempDir()
	store, err := file.NewConfigStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set("backend.base_url", "http://10.0.0.5:8000"))
	require.NoError(t, store.Set("upload.watch_dir", filepath.Join(dir, "inbox")))
	require.NoError(t, store.Set("log.file", filepath.Join(dir, "custom.log")))
	require.NoError(t, store.Set("graph.cache_dir", filepath.Join(dir, "cache")))

	s, err := build(cli.Options{ConfigDir: dir})

	require.NoError(t, err)
	assert.Equal(t, "http://10.0.0.5:8000/api/graph/visualize", s.Visualization.Endpoint())
	require.NotNil(t, s.Watcher)
	assert.Equal(t, filepath.Join(dir, "inbox"), s.Watcher.Dir())
	assert.Equal(t, filepath.Join(dir, "custom.log"), s.LogFile)
	assert.Equal(t, filepath.Join(dir, file.FileName), s.Settings.ConfigPath())
}
