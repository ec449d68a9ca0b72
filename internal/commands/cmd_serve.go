package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/dialogview/internal/core/logging"
	"github.com/colonyops/dialogview/internal/web"
)

type ServeCmd struct {
	flags *Flags

	// flags
	addr string
}

// NewServeCmd creates a new serve command
func NewServeCmd(flags *Flags) *ServeCmd {
	return &ServeCmd{flags: flags}
}

// Register adds the serve command to the application
func (cmd *ServeCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "serve",
		Usage:     "Serve the transcript viewer over HTTP",
		UsageText: "dialogview serve [--addr host:port]",
		Description: `Loads the transcript once and serves it as a web page, one dialog per page.

Stickers are served from assets.dir under /assets/. A JSON view of each dialog
is available under /api/dialogs.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "addr",
				Usage:       "listen address (defaults to server.addr)",
				Sources:     cli.EnvVars("DIALOGVIEW_ADDR"),
				Destination: &cmd.addr,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ServeCmd) run(ctx context.Context, _ *cli.Command) error {
	cfg := cmd.flags.Config

	addr := cmd.addr
	if addr == "" {
		addr = cfg.Server.Addr
	}

	src := cfg.Source()
	srv, err := web.New(web.Options{
		AssetDir: cfg.Assets.Dir,
		Location: src.Location(),
	})
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	stopProfiler, err := startProfiler(ctx, cmd.flags.ProfilerPort)
	if err != nil {
		return err
	}
	defer stopProfiler()

	// A failed load is logged by the viewer and shown on every page.
	_ = srv.Load(logging.WithSource(ctx, src.Location()), src)

	_, _ = fmt.Fprintf(os.Stderr, "Serving %s on http://%s\n", src.Location(), addr)
	return srv.ListenAndServe(ctx, addr)
}
