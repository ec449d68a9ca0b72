// Package tui implements the Bubble Tea transcript viewer.
package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/colonyops/dialogview/internal/core/dialog"
	"github.com/colonyops/dialogview/internal/core/logging"
	"github.com/colonyops/dialogview/internal/core/styles"
	"github.com/colonyops/dialogview/internal/core/viewer"
	"github.com/colonyops/dialogview/internal/tui/jsoncolor"
)

// Options configures the TUI.
type Options struct {
	Context  context.Context // bounds the fetch; defaults to context.Background
	Source   viewer.Fetcher  // transcript to load on start
	Location string          // shown while loading
	AssetDir string          // sticker prefix for rendered image nodes
}

type dialogsLoadedMsg struct {
	dialogs dialog.Collection
	err     error
}

// Model is the Bubble Tea model for the transcript viewer.
type Model struct {
	ctx      context.Context
	viewer   *viewer.Viewer
	source   viewer.Fetcher
	location string

	keys     keyMap
	help     help.Model
	spinner  spinner.Model
	viewport viewport.Model

	width    int
	height   int
	raw      bool
	quitting bool
	log      zerolog.Logger
}

// New creates a TUI model. The transcript is fetched by Init.
func New(opts Options) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.SpinnerStyle

	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	return Model{
		ctx:      ctx,
		viewer:   viewer.New(opts.AssetDir),
		source:   opts.Source,
		location: opts.Location,
		keys:     defaultKeyMap(),
		help:     help.New(),
		spinner:  s,
		viewport: viewport.New(defaultWidth, 20),
		width:    defaultWidth,
		height:   24,
		log:      logging.Component("tui"),
	}
}

// Init starts the single transcript fetch.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadDialogs())
}

// Viewer exposes the viewer state, mainly for tests and the final summary.
func (m Model) Viewer() *viewer.Viewer {
	return m.viewer
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.refresh()
		return m, nil

	case dialogsLoadedMsg:
		return m.handleLoaded(msg)

	case spinner.TickMsg:
		if m.viewer.State().Phase != viewer.PhaseUnloaded {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleLoaded(msg dialogsLoadedMsg) (tea.Model, tea.Cmd) {
	// The viewer logs a failed load; the error stays in its state.
	_ = m.viewer.Complete(msg.dialogs, msg.err)
	m.refresh()
	m.viewport.GotoTop()
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.refresh()
		return m, nil
	case key.Matches(msg, m.keys.Raw):
		m.raw = !m.raw
		m.refresh()
		m.viewport.GotoTop()
		return m, nil
	case key.Matches(msg, m.keys.Prev):
		return m.navigate(m.viewer.Prev())
	case key.Matches(msg, m.keys.Next):
		return m.navigate(m.viewer.Next())
	case key.Matches(msg, m.keys.First):
		return m.navigate(m.viewer.Goto(0))
	case key.Matches(msg, m.keys.Last):
		return m.navigate(m.viewer.Last())
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) navigate(moved bool) (tea.Model, tea.Cmd) {
	if !moved {
		return m, nil
	}

	if rec, ok := m.viewer.Current(); ok {
		ctx := logging.WithDialogID(context.Background(), rec.ID)
		m.log.Debug().Ctx(ctx).Int("index", m.viewer.State().Index).Msg("dialog shown")
	}

	m.refresh()
	m.viewport.GotoTop()
	return m, nil
}

// refresh sizes the viewport around the header and footer and re-renders
// the transcript into it.
func (m *Model) refresh() {
	surface := m.viewer.Surface()

	chrome := lipgloss.Height(m.header(surface)) + lipgloss.Height(m.footer(surface))
	m.viewport.Width = m.width
	m.viewport.Height = max(m.height-chrome, 1)
	m.viewport.SetContent(m.content(surface))
}

// content is the rendered transcript, or the current record as JSON when
// the raw view is on.
func (m Model) content(s viewer.Surface) string {
	if !m.raw {
		return renderBody(s, m.width)
	}

	rec, ok := m.viewer.Current()
	if !ok {
		return renderBody(s, m.width)
	}

	out, err := jsoncolor.Marshal(rec)
	if err != nil {
		m.log.Error().Err(err).Msg("encode record")
		return renderBody(s, m.width)
	}
	return out
}

func (m Model) header(s viewer.Surface) string {
	return renderTitle(s, m.width)
}

func (m Model) footer(s viewer.Surface) string {
	var b strings.Builder
	if nav, ok := s.Nav(); ok {
		b.WriteString(renderNav(nav, m.width))
		b.WriteString("\n")
	}
	b.WriteString(styles.HelpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// View renders the model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	surface := m.viewer.Surface()
	if m.viewer.State().Phase == viewer.PhaseUnloaded {
		loading := lipgloss.JoinHorizontal(lipgloss.Left, m.spinner.View(), " Loading "+m.location)
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, loading)
	}

	parts := make([]string, 0, 3)
	if header := m.header(surface); header != "" {
		parts = append(parts, header)
	}
	parts = append(parts, m.viewport.View(), m.footer(surface))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) loadDialogs() tea.Cmd {
	ctx, src := m.ctx, m.source
	return func() tea.Msg {
		if src == nil {
			return dialogsLoadedMsg{dialogs: dialog.Collection{}}
		}
		dialogs, err := src.Fetch(ctx)
		return dialogsLoadedMsg{dialogs: dialogs, err: err}
	}
}
