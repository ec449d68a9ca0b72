package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/urfave/cli/v3"
)

type FilesCmd struct {
	flags *Flags

	// flags
	pattern string
}

// NewFilesCmd creates a new files command
func NewFilesCmd(flags *Flags) *FilesCmd {
	return &FilesCmd{flags: flags}
}

// Register adds the files command to the application
func (cmd *FilesCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "files",
		Usage:       "List transcript files under dialogs.dir",
		UsageText:   "dialogview files [--pattern GLOB]",
		Description: "Lists transcript files relative to dialogs.dir. Any listed name can be passed to --file.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "pattern",
				Usage:       "doublestar glob (defaults to dialogs.pattern)",
				Destination: &cmd.pattern,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *FilesCmd) run(_ context.Context, c *cli.Command) error {
	cfg := cmd.flags.Config

	pattern := cmd.pattern
	if pattern == "" {
		pattern = cfg.Dialogs.Pattern
	}
	if pattern != "" && !doublestar.ValidatePattern(pattern) {
		return fmt.Errorf("invalid pattern %q", pattern)
	}

	files, err := discoverFiles(cfg.Dialogs.Dir, pattern)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		fmt.Fprintf(os.Stderr, "No transcripts found under %s\n", cfg.Dialogs.Dir)
		return nil
	}

	out := c.Root().Writer
	for _, f := range files {
		_, _ = fmt.Fprintln(out, f)
	}
	return nil
}
