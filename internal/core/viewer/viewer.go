// Package viewer implements the dialog viewer: one explicit state value that
// is loaded once, paginated with Previous/Next, and rendered to a Surface.
package viewer

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/colonyops/dialogview/internal/core/dialog"
	"github.com/colonyops/dialogview/internal/core/logging"
)

// ErrAlreadyLoaded is returned when Load or Complete is called twice.
var ErrAlreadyLoaded = errors.New("dialogs already loaded")

// Phase is the viewer lifecycle.
type Phase int

const (
	PhaseUnloaded Phase = iota
	PhaseLoaded
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseLoaded:
		return "loaded"
	case PhaseFailed:
		return "failed"
	default:
		return "unloaded"
	}
}

// State is the viewer's single mutable value. Index is only meaningful once
// Phase is PhaseLoaded and Dialogs is non-empty, and then always lies in
// [0, len(Dialogs)-1].
type State struct {
	Dialogs dialog.Collection
	Index   int
	Phase   Phase
	Err     error
}

// Fetcher performs the one load of the transcript.
type Fetcher interface {
	Fetch(ctx context.Context) (dialog.Collection, error)
}

// Viewer owns a State and the Surface last rendered from it.
type Viewer struct {
	state    State
	surface  Surface
	assetDir string
	log      zerolog.Logger
}

// New creates an unloaded viewer. Sticker sources are assetDir followed by
// the escaped filename.
func New(assetDir string) *Viewer {
	return &Viewer{
		assetDir: assetDir,
		log:      logging.Component("viewer"),
	}
}

// Load fetches the transcript and renders the first dialog. A failed fetch
// moves the viewer to PhaseFailed and renders the error; it is not retried.
func (v *Viewer) Load(ctx context.Context, f Fetcher) error {
	if v.state.Phase != PhaseUnloaded {
		return ErrAlreadyLoaded
	}

	dialogs, err := f.Fetch(ctx)
	return v.Complete(dialogs, err)
}

// Complete applies the result of a fetch that ran elsewhere, such as in a
// background command. It returns fetchErr unchanged so callers can log it.
func (v *Viewer) Complete(dialogs dialog.Collection, fetchErr error) error {
	if v.state.Phase != PhaseUnloaded {
		return ErrAlreadyLoaded
	}

	if fetchErr != nil {
		v.state.Phase = PhaseFailed
		v.state.Err = fetchErr
		v.surface = ErrorSurface(fetchErr)
		v.log.Error().Err(fetchErr).Msg("failed to load dialogs")
		return fetchErr
	}

	if dialogs == nil {
		dialogs = dialog.Collection{}
	}
	v.state.Dialogs = dialogs
	v.state.Index = 0
	v.state.Phase = PhaseLoaded
	v.log.Debug().Int("dialogs", dialogs.Len()).Msg("dialogs loaded")

	v.Render(0)
	return nil
}

// Render replaces the surface with dialog index. Out of range indexes are
// ignored and leave both state and surface untouched, as are calls made
// before a successful load.
func (v *Viewer) Render(index int) bool {
	if v.state.Phase != PhaseLoaded {
		return false
	}

	s, ok := Render(v.state.Dialogs, index, v.assetDir)
	if !ok {
		v.log.Debug().Int("index", index).Msg("render index out of range")
		return false
	}

	if v.state.Dialogs.Len() > 0 {
		v.state.Index = index
	}
	v.surface = s
	return true
}

// CanPrev reports whether Previous is enabled.
func (v *Viewer) CanPrev() bool {
	return v.state.Phase == PhaseLoaded && v.state.Index > 0
}

// CanNext reports whether Next is enabled.
func (v *Viewer) CanNext() bool {
	return v.state.Phase == PhaseLoaded && v.state.Index < v.state.Dialogs.Len()-1
}

// Prev moves to the previous dialog. It is a no-op when Previous is disabled.
func (v *Viewer) Prev() bool {
	if !v.CanPrev() {
		return false
	}
	return v.Render(v.state.Index - 1)
}

// Next moves to the next dialog. It is a no-op when Next is disabled.
func (v *Viewer) Next() bool {
	if !v.CanNext() {
		return false
	}
	return v.Render(v.state.Index + 1)
}

// Goto jumps to index through the same guard as Render.
func (v *Viewer) Goto(index int) bool {
	return v.Render(index)
}

// Last jumps to the final dialog.
func (v *Viewer) Last() bool {
	return v.Render(v.state.Dialogs.Len() - 1)
}

// State returns a copy of the current state.
func (v *Viewer) State() State {
	return v.state
}

// Surface returns the last rendered surface.
func (v *Viewer) Surface() Surface {
	return v.surface
}

// Current returns the record on display.
func (v *Viewer) Current() (dialog.Record, bool) {
	if v.state.Phase != PhaseLoaded {
		return dialog.Record{}, false
	}
	return v.state.Dialogs.At(v.state.Index)
}
