package commands

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/colonyops/dialogview/internal/core/dialog"
	"github.com/colonyops/dialogview/internal/core/viewer"
)

const defaultShowWidth = 80

type ShowCmd struct {
	flags *Flags

	// flags
	index int
	raw   bool
}

// NewShowCmd creates a new show command
func NewShowCmd(flags *Flags) *ShowCmd {
	return &ShowCmd{flags: flags}
}

// Register adds the show command to the application
func (cmd *ShowCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "show",
		Usage:     "Print one dialog",
		UsageText: "dialogview show [--index N] [--raw]",
		Description: `Prints the dialog at the given 0-based index as rendered markdown.

Use --raw to print the markdown source, for example when piping to a file.`,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:        "index",
				Aliases:     []string{"i"},
				Usage:       "0-based dialog index",
				Destination: &cmd.index,
			},
			&cli.BoolFlag{
				Name:        "raw",
				Usage:       "print markdown without terminal styling",
				Destination: &cmd.raw,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ShowCmd) run(ctx context.Context, c *cli.Command) error {
	cfg := cmd.flags.Config

	dialogs, err := loadDialogs(ctx, cfg)
	if err != nil {
		return err
	}

	surface, ok := viewer.Render(dialogs, cmd.index, cfg.Assets.Dir)
	if !ok {
		return fmt.Errorf("dialog index %d out of range [0, %d]", cmd.index, dialogs.Len()-1)
	}

	md := dialogMarkdown(surface)
	out := c.Root().Writer

	if cmd.raw {
		_, err := fmt.Fprint(out, md)
		return err
	}

	rendered, err := renderMarkdown(md, terminalWidth())
	if err != nil {
		return fmt.Errorf("render markdown: %w", err)
	}
	_, err = fmt.Fprint(out, rendered)
	return err
}

// dialogMarkdown writes a surface as a markdown document, one paragraph per
// line of the dialog.
func dialogMarkdown(s viewer.Surface) string {
	var b strings.Builder

	for _, n := range s.Nodes {
		switch n.Kind {
		case viewer.NodeTitle:
			fmt.Fprintf(&b, "# %s\n\n", escapeMarkdown(n.Text))
		case viewer.NodeText:
			fmt.Fprintf(&b, "**%s:** %s\n\n", roleLabel(n.Role), escapeMarkdown(n.Text))
		case viewer.NodeImage:
			fmt.Fprintf(&b, "**%s:** ![%s](<%s>)\n\n", roleLabel(n.Role), n.Alt, n.Src)
		case viewer.NodePlaceholder, viewer.NodeError:
			fmt.Fprintf(&b, "_%s_\n\n", escapeMarkdown(n.Text))
		case viewer.NodeNav:
			fmt.Fprintf(&b, "---\n\n%d/%d\n", n.Nav.Index+1, n.Nav.Total)
		}
	}

	return b.String()
}

func roleLabel(r dialog.Role) string {
	if r == dialog.RoleUser {
		return "User"
	}
	return "Assistant"
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"#", `\#`,
	"<", `\<`,
	"[", `\[`,
	"]", `\]`,
)

var (
	bulletMarker  = regexp.MustCompile(`(?m)^([ \t]*)([>+=-])`)
	orderedMarker = regexp.MustCompile(`(?m)^([ \t]*)(\d+)([.)])`)
)

// escapeMarkdown keeps dialog text literal, including quote and list markers
// at the start of a line.
func escapeMarkdown(s string) string {
	s = markdownEscaper.Replace(s)
	s = bulletMarker.ReplaceAllString(s, `$1\$2`)
	return orderedMarker.ReplaceAllString(s, `$1$2\$3`)
}

func renderMarkdown(md string, width int) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(max(width-4, 20)),
	)
	if err != nil {
		return "", err
	}
	return r.Render(md)
}

func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return defaultShowWidth
	}
	w, _, err := term.GetSize(fd)
	if err != nil || w <= 0 {
		return defaultShowWidth
	}
	return w
}
