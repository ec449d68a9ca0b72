package logging

import "context"

type contextKey string

const (
	dialogIDKey contextKey = "dialog_id"
	sourceKey   contextKey = "source"
)

// WithDialogID adds a dialog ID to the context.
func WithDialogID(ctx context.Context, dialogID string) context.Context {
	return context.WithValue(ctx, dialogIDKey, dialogID)
}

// WithSource adds the transcript location to the context.
func WithSource(ctx context.Context, source string) context.Context {
	return context.WithValue(ctx, sourceKey, source)
}

// GetDialogID retrieves the dialog ID from the context.
// Returns empty string if not present.
func GetDialogID(ctx context.Context) string {
	if id, ok := ctx.Value(dialogIDKey).(string); ok {
		return id
	}
	return ""
}

// GetSource retrieves the transcript location from the context.
// Returns empty string if not present.
func GetSource(ctx context.Context) string {
	if src, ok := ctx.Value(sourceKey).(string); ok {
		return src
	}
	return ""
}
