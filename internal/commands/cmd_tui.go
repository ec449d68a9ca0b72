package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/colonyops/dialogview/internal/core/styles"
	"github.com/colonyops/dialogview/internal/tui"
)

type TuiCmd struct {
	flags *Flags

	// flags
	pick bool
}

// NewTuiCmd creates a new tui command
func NewTuiCmd(flags *Flags) *TuiCmd {
	return &TuiCmd{flags: flags}
}

// Flags returns the TUI-specific flags for registration on the root command
func (cmd *TuiCmd) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:        "pick",
			Usage:       "choose the transcript from the files under dialogs.dir",
			Destination: &cmd.pick,
		},
	}
}

// Register adds the view command to the application
func (cmd *TuiCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "view",
		Usage:     "Browse the transcript in the terminal",
		UsageText: "dialogview view [--pick]",
		Description: `Opens the transcript viewer. Use ←/→ (or p/n) to move between dialogs,
g/G to jump to the first or last dialog, and q to quit.

Use --pick to choose a transcript from the files under dialogs.dir.`,
		Flags:  cmd.Flags(),
		Action: cmd.run,
	})

	return app
}

// Run executes the TUI. Exported for use as default command.
func (cmd *TuiCmd) Run(ctx context.Context, c *cli.Command) error {
	return cmd.run(ctx, c)
}

func (cmd *TuiCmd) run(ctx context.Context, _ *cli.Command) error {
	cfg := cmd.flags.Config

	stopProfiler, err := startProfiler(ctx, cmd.flags.ProfilerPort)
	if err != nil {
		return err
	}
	defer stopProfiler()

	if cmd.pick {
		file, err := cmd.pickFile()
		if err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return err
		}
		cfg = cfg.WithFile(file)
	}

	src := cfg.Source()
	m := tui.New(tui.Options{
		Context:  ctx,
		Source:   src,
		Location: src.Location(),
		AssetDir: cfg.Assets.Dir,
	})

	finalModel, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		return fmt.Errorf("run tui: %w", err)
	}

	if st := finalModel.(tui.Model).Viewer().State(); st.Err != nil {
		return st.Err
	}
	return nil
}

func (cmd *TuiCmd) pickFile() (string, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return "", errors.New("--pick needs an interactive terminal")
	}

	cfg := cmd.flags.Config
	files, err := discoverFiles(cfg.Dialogs.Dir, cfg.Dialogs.Pattern)
	if err != nil {
		return "", err
	}
	if len(files) == 0 {
		return "", fmt.Errorf("no transcripts matching %q under %s", cfg.Dialogs.Pattern, cfg.Dialogs.Dir)
	}

	choice := cfg.Dialogs.File
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Transcript").
				Description(cfg.Dialogs.Dir).
				Options(huh.NewOptions(files...)...).
				Value(&choice),
		),
	).WithTheme(styles.FormTheme()).Run()
	if err != nil {
		return "", fmt.Errorf("form: %w", err)
	}

	log.Debug().Str("file", choice).Msg("transcript picked")
	return choice, nil
}
