package commands

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog/log"

	"github.com/colonyops/dialogview/internal/core/config"
	"github.com/colonyops/dialogview/internal/core/dialog"
	"github.com/colonyops/dialogview/internal/core/logging"
)

var errRemoteDir = errors.New("transcript discovery needs a local dialogs.dir")

// loadDialogs performs the one fetch of the configured transcript.
func loadDialogs(ctx context.Context, cfg *config.Config) (dialog.Collection, error) {
	src := cfg.Source()
	ctx = logging.WithSource(ctx, src.Location())

	log.Debug().Ctx(ctx).Msg("loading dialogs")
	dialogs, err := src.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	log.Debug().Ctx(ctx).Int("dialogs", dialogs.Len()).Msg("dialogs loaded")
	return dialogs, nil
}

// discoverFiles lists transcript files under dir matching pattern, relative
// to dir and sorted.
func discoverFiles(dir, pattern string) ([]string, error) {
	if dialog.IsURL(dir) {
		return nil, errRemoteDir
	}
	if pattern == "" {
		pattern = config.DefaultFilePattern
	}

	matches, err := doublestar.Glob(os.DirFS(dir), pattern, doublestar.WithFilesOnly())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("glob %s: %w", pattern, err)
	}

	slices.Sort(matches)
	return matches, nil
}
