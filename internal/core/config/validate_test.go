package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fieldNames(t *testing.T, err error) []string {
	t.Helper()

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)

	names := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		names = append(names, fe.Field)
	}
	return names
}

func localConfig(t *testing.T) (*Config, string) {
	t.Helper()

	root := t.TempDir()
	dialogsDir := filepath.Join(root, "dialogs")
	assetsDir := filepath.Join(root, "stickers")
	require.NoError(t, os.MkdirAll(dialogsDir, 0o755))
	require.NoError(t, os.MkdirAll(assetsDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dialogsDir, "a.json"), []byte("[]"), 0o644))

	cfg := DefaultConfig()
	cfg.Dialogs.Dir = dialogsDir
	cfg.Dialogs.File = "a.json"
	cfg.Assets.Dir = assetsDir + "/"
	return &cfg, root
}

func TestValidateDeep(t *testing.T) {
	t.Run("valid local layout", func(t *testing.T) {
		cfg, _ := localConfig(t)
		assert.NoError(t, cfg.ValidateDeep(""))
	})

	t.Run("missing transcript", func(t *testing.T) {
		cfg, _ := localConfig(t)
		cfg.Dialogs.File = "missing.json"

		err := cfg.ValidateDeep("")
		assert.Contains(t, fieldNames(t, err), "dialogs.file")
	})

	t.Run("assets dir is a file", func(t *testing.T) {
		cfg, root := localConfig(t)
		file := filepath.Join(root, "not-a-dir")
		require.NoError(t, os.WriteFile(file, nil, 0o644))
		cfg.Assets.Dir = file

		err := cfg.ValidateDeep("")
		assert.Contains(t, fieldNames(t, err), "assets.dir")
	})

	t.Run("config path is a directory", func(t *testing.T) {
		cfg, root := localConfig(t)

		err := cfg.ValidateDeep(root)
		assert.Contains(t, fieldNames(t, err), "config_file")
	})

	t.Run("bad pattern", func(t *testing.T) {
		cfg, _ := localConfig(t)
		cfg.Dialogs.Pattern = "[unclosed"

		err := cfg.ValidateDeep("")
		assert.Contains(t, fieldNames(t, err), "dialogs.pattern")
	})

	t.Run("remote sources skip io checks", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Dialogs.Dir = "https://example.com/d"
		cfg.Assets.Dir = "https://example.com/s/"

		assert.NoError(t, cfg.ValidateDeep(""))
	})

	t.Run("structural errors come first", func(t *testing.T) {
		cfg, _ := localConfig(t)
		cfg.TUI.Theme = "neon"

		err := cfg.ValidateDeep("")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "tui.theme")
	})
}

func TestWarnings(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Dialogs.Dir = "https://example.com/d"
	cfg.Assets.Dir = "./stickers"

	warnings := cfg.Warnings()

	categories := make([]string, 0, len(warnings))
	for _, w := range warnings {
		categories = append(categories, w.Category)
	}
	assert.ElementsMatch(t, []string{"Dialogs", "Assets", "Fetch"}, categories)
}
