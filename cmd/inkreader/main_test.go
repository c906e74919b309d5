package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_DocumentArgumentIsRemembered(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.json")
	t.Chdir(dir)

	cfg, err := loadConfig(&CLI{Document: "cloud-ink.json", Config: cfgPath})
	require.NoError(t, err)

	wd, err := os.Getwd()
	require.NoError(t, err)
	book := filepath.Join(wd, "cloud-ink.json")
	assert.Equal(t, book, cfg.Document)

	// What the app does once the book has loaded
	require.NoError(t, cfg.SetDocument(book))

	next, err := loadConfig(&CLI{Config: cfgPath})
	require.NoError(t, err)
	assert.Equal(t, book, next.Document)
}

func TestLoadConfig_Overrides(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.json")

	cfg, err := loadConfig(&CLI{
		Document:  "https://example.com/novel.json",
		Config:    cfgPath,
		Store:     "sqlite",
		LogLevel:  "debug",
		LogFormat: "json",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/novel.json", cfg.Document, "URLs are kept as given")
	assert.Equal(t, "sqlite", cfg.Store)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)

	_, err = loadConfig(&CLI{Config: cfgPath, Store: "floppy"})
	assert.Error(t, err)
}

func TestResolveDocument(t *testing.T) {
	abs, err := resolveDocument("novel.json")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(abs))

	url, err := resolveDocument("http://localhost:8080/novel.json")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/novel.json", url)
}
