package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

// TranscriptCompleter returns a ShellCompleteFunc that suggests transcript
// files under dialogs.dir. Set this as the ShellComplete field on any
// cli.Command whose --file value names a transcript.
//
// When the user's last typed argument starts with "-", it falls back to the
// default flag completion behavior.
func TranscriptCompleter(flags *Flags) cli.ShellCompleteFunc {
	return func(ctx context.Context, cmd *cli.Command) {
		if args := cmd.Args(); args.Present() {
			last := args.Slice()[args.Len()-1]
			if len(last) > 0 && last[0] == '-' {
				cli.DefaultCompleteWithFlags(ctx, cmd)
				return
			}
		}

		if flags.Config == nil {
			return
		}

		files, err := discoverFiles(flags.Config.Dialogs.Dir, flags.Config.Dialogs.Pattern)
		if err != nil {
			return
		}

		w := cmd.Root().Writer
		for _, f := range files {
			_, _ = fmt.Fprintln(w, f)
		}
	}
}
