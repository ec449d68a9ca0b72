package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, DefaultConfig(), *cfg)
	assert.Equal(t, DefaultDialogsFile, cfg.Dialogs.File)
	assert.Equal(t, DefaultAssetsDir, cfg.Assets.Dir)
	assert.Zero(t, cfg.Fetch.Timeout)
}

func TestLoad_EmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultServerAddr, cfg.Server.Addr)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
dialogs:
  dir: https://example.com/dialogs
  file: other.json
assets:
  dir: /srv/stickers/
server:
  addr: ":9000"
fetch:
  timeout: 5s
tui:
  theme: gruvbox
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://example.com/dialogs", cfg.Dialogs.Dir)
	assert.Equal(t, "other.json", cfg.Dialogs.File)
	assert.Equal(t, DefaultFilePattern, cfg.Dialogs.Pattern, "unset keys keep defaults")
	assert.Equal(t, "/srv/stickers/", cfg.Assets.Dir)
	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, 5*time.Second, cfg.Fetch.Timeout)
	assert.Equal(t, "gruvbox", cfg.TUI.Theme)

	src := cfg.Source()
	assert.True(t, src.IsRemote())
	assert.Equal(t, "https://example.com/dialogs/other.json", src.Location())
	assert.Equal(t, 5*time.Second, src.Timeout)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{name: "malformed yaml", content: "dialogs: [", wantErr: "parse config file"},
		{name: "unknown theme", content: "tui:\n  theme: neon\n", wantErr: "tui.theme"},
		{name: "bad addr", content: "server:\n  addr: nope\n", wantErr: "server.addr"},
		{name: "negative timeout", content: "fetch:\n  timeout: -1s\n", wantErr: "fetch.timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfig_WithFile(t *testing.T) {
	cfg := DefaultConfig()

	other := cfg.WithFile("picked.json")
	assert.Equal(t, "picked.json", other.Dialogs.File)
	assert.Equal(t, DefaultDialogsFile, cfg.Dialogs.File, "receiver is unchanged")

	same := cfg.WithFile("")
	assert.Equal(t, DefaultDialogsFile, same.Dialogs.File)
}
