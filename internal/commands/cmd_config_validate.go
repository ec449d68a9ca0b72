package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/hay-kot/criterio"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/dialogview/internal/core/config"
	"github.com/colonyops/dialogview/internal/core/styles"
	"github.com/colonyops/dialogview/pkg/iojson"
)

type ConfigValidateCmd struct {
	flags  *Flags
	format string
}

// NewConfigValidateCmd creates a new config validate command.
func NewConfigValidateCmd(flags *Flags) *ConfigValidateCmd {
	return &ConfigValidateCmd{flags: flags}
}

// Register adds the config validate command to the application.
func (cmd *ConfigValidateCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "config",
		Usage: "Configuration management commands",
		Commands: []*cli.Command{
			{
				Name:        "validate",
				Usage:       "Validate configuration file",
				UsageText:   "dialogview config validate [options]",
				Description: "Validates the configuration file, checking the transcript source, the sticker directory, and the server address.",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "format",
						Usage:       "output format (text, json)",
						Value:       "text",
						Destination: &cmd.format,
					},
				},
				Action: cmd.run,
			},
		},
	})

	return app
}

type validationIssue struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func (cmd *ConfigValidateCmd) run(_ context.Context, c *cli.Command) error {
	cfg := cmd.flags.Config
	issues := validationIssues(cfg.ValidateDeep(cmd.flags.ConfigPath))
	warnings := cfg.Warnings()

	if cmd.format == "json" {
		out := struct {
			Valid    bool                       `json:"valid"`
			Errors   []validationIssue          `json:"errors,omitempty"`
			Warnings []config.ValidationWarning `json:"warnings,omitempty"`
		}{
			Valid:    len(issues) == 0,
			Errors:   issues,
			Warnings: warnings,
		}
		if err := iojson.Write(c.Root().Writer, out); err != nil {
			return err
		}
	} else {
		cmd.outputText(issues, warnings)
	}

	if len(issues) > 0 {
		return cli.Exit("", 1)
	}
	return nil
}

func (cmd *ConfigValidateCmd) outputText(issues []validationIssue, warnings []config.ValidationWarning) {
	w := os.Stderr

	_, _ = fmt.Fprintln(w, styles.CommandHeaderStyle.Render("Config"), cmd.flags.ConfigPath)
	_, _ = fmt.Fprintln(w, styles.DividerStyle.Render(strings.Repeat("─", 40)))

	for _, warn := range warnings {
		_, _ = fmt.Fprintf(w, "  %s %s: %s\n", styles.WarningStyle.Render("●"), warn.Category, warn.Message)
		if warn.Item != "" {
			_, _ = fmt.Fprintf(w, "    %s\n", warn.Item)
		}
	}

	for _, issue := range issues {
		label := issue.Field
		if label == "" {
			label = "config"
		}
		_, _ = fmt.Fprintf(w, "  %s %s: %s\n", styles.ErrorStyle.Render("✘"), label, issue.Message)
	}

	_, _ = fmt.Fprintln(w)
	if len(issues) == 0 {
		_, _ = fmt.Fprintln(w, styles.SuccessStyle.Render("✔ Configuration is valid"))
		return
	}
	_, _ = fmt.Fprintln(w, styles.ErrorStyle.Render(fmt.Sprintf("%d error(s) found", len(issues))))
}

// validationIssues flattens criterio field errors; any other error becomes a
// single issue without a field.
func validationIssues(err error) []validationIssue {
	if err == nil {
		return nil
	}

	var fieldErrs criterio.FieldErrors
	if !errors.As(err, &fieldErrs) {
		return []validationIssue{{Message: err.Error()}}
	}

	issues := make([]validationIssue, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		issues = append(issues, validationIssue{Field: fe.Field, Message: fe.Err.Error()})
	}
	return issues
}
