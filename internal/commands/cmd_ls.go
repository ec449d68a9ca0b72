package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/dialogview/pkg/iojson"
)

type LsCmd struct {
	flags *Flags

	// flags
	jsonOutput bool
}

// NewLsCmd creates a new ls command
func NewLsCmd(flags *Flags) *LsCmd {
	return &LsCmd{flags: flags}
}

// Register adds the ls command to the application
func (cmd *LsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "ls",
		Usage:     "List the dialogs in the transcript",
		UsageText: "dialogview ls [--json]",
		Description: `Displays a table of every dialog with its index, id, line count, and sticker count.

Use --json for one JSON object per line.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON lines",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *LsCmd) run(ctx context.Context, c *cli.Command) error {
	out := c.Root().Writer

	dialogs, err := loadDialogs(ctx, cmd.flags.Config)
	if err != nil {
		if cmd.jsonOutput {
			_ = iojson.WriteError(out, "load dialogs", map[string]any{"error": err.Error()})
		}
		return err
	}

	if dialogs.Len() == 0 {
		if !cmd.jsonOutput {
			fmt.Fprintf(os.Stderr, "No dialogs found\n")
		}
		return nil
	}

	summaries := dialogs.Summaries()

	if cmd.jsonOutput {
		for _, s := range summaries {
			if err := iojson.WriteLine(out, s); err != nil {
				return fmt.Errorf("encode dialog: %w", err)
			}
		}
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "INDEX\tTITLE\tLINES\tSTICKERS")
	for _, s := range summaries {
		_, _ = fmt.Fprintf(w, "%d\t%s\t%d\t%d\n", s.Index, s.Title, s.Lines, s.Images)
	}
	return w.Flush()
}
