package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// ContextHook extracts dialog_id and source from context and adds them to log events.
type ContextHook struct{}

// Run adds contextual fields to the zerolog event.
func (h ContextHook) Run(e *zerolog.Event, level zerolog.Level, msg string) {
	ctx := e.GetCtx()
	if ctx == context.Background() || ctx == nil {
		return
	}

	if dialogID := GetDialogID(ctx); dialogID != "" {
		e.Str("dialog_id", dialogID)
	}

	if source := GetSource(ctx); source != "" {
		e.Str("source", source)
	}
}
