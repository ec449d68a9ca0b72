// Package styles provides shared lipgloss styles for CLI and TUI components.
package styles

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// CurrentPalette holds the active theme palette.
var CurrentPalette Palette

// Style exports.
var (
	// CLI styles.
	CommandHeaderStyle lipgloss.Style
	DividerStyle       lipgloss.Style
	SuccessStyle       lipgloss.Style
	WarningStyle       lipgloss.Style
	ErrorStyle         lipgloss.Style

	// Transcript styles.
	TitleStyle            lipgloss.Style
	UserBubbleStyle       lipgloss.Style
	AssistantBubbleStyle  lipgloss.Style
	UserStickerStyle      lipgloss.Style
	AssistantStickerStyle lipgloss.Style
	RoleLabelStyle        lipgloss.Style
	PlaceholderStyle      lipgloss.Style
	LoadErrorStyle        lipgloss.Style

	// Navigation styles.
	NavEnabledStyle  lipgloss.Style
	NavDisabledStyle lipgloss.Style
	NavPositionStyle lipgloss.Style
	HelpStyle        lipgloss.Style
	SpinnerStyle     lipgloss.Style

	// Raw record styles.
	JSONKeyStyle    lipgloss.Style
	JSONStringStyle lipgloss.Style
	JSONNumberStyle lipgloss.Style
	JSONBoolStyle   lipgloss.Style
	JSONNullStyle   lipgloss.Style
	JSONPunctStyle  lipgloss.Style
)

// SetTheme sets the active palette and rebuilds all global styles.
func SetTheme(p Palette) {
	CurrentPalette = p

	CommandHeaderStyle = lipgloss.NewStyle().
		Foreground(p.Primary).
		Bold(true)
	DividerStyle = lipgloss.NewStyle().
		Foreground(p.Muted)
	SuccessStyle = lipgloss.NewStyle().Foreground(p.Success)
	WarningStyle = lipgloss.NewStyle().Foreground(p.Warning)
	ErrorStyle = lipgloss.NewStyle().Foreground(p.Error)

	TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Foreground).
		Align(lipgloss.Center).
		MarginTop(1).
		MarginBottom(1)
	UserBubbleStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Primary).
		Foreground(p.Foreground).
		Padding(0, 1)
	AssistantBubbleStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Surface).
		Foreground(p.Foreground).
		Padding(0, 1)
	UserStickerStyle = lipgloss.NewStyle().
		Foreground(p.Secondary).
		Italic(true)
	AssistantStickerStyle = lipgloss.NewStyle().
		Foreground(p.Success).
		Italic(true)
	RoleLabelStyle = lipgloss.NewStyle().
		Foreground(p.Muted)
	PlaceholderStyle = lipgloss.NewStyle().
		Foreground(p.Muted).
		Align(lipgloss.Center)
	LoadErrorStyle = lipgloss.NewStyle().
		Foreground(p.Error).
		Align(lipgloss.Center)

	NavEnabledStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Background(p.Primary).
		Foreground(p.Background).
		Bold(true)
	NavDisabledStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Background(p.Surface).
		Foreground(p.Muted)
	NavPositionStyle = lipgloss.NewStyle().
		Foreground(p.Muted)
	HelpStyle = lipgloss.NewStyle().
		Foreground(p.Muted)
	SpinnerStyle = lipgloss.NewStyle().
		Foreground(p.Primary)

	JSONKeyStyle = lipgloss.NewStyle().Foreground(p.Primary)
	JSONStringStyle = lipgloss.NewStyle().Foreground(p.Success)
	JSONNumberStyle = lipgloss.NewStyle().Foreground(p.Warning)
	JSONBoolStyle = lipgloss.NewStyle().Foreground(p.Secondary)
	JSONNullStyle = lipgloss.NewStyle().Foreground(p.Error)
	JSONPunctStyle = lipgloss.NewStyle().Foreground(p.Muted)
}

// FormTheme returns a huh theme using the active palette.
func FormTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = t.Focused.Title.Foreground(CurrentPalette.Primary).Bold(true)
	t.Focused.Description = t.Focused.Description.Foreground(CurrentPalette.Muted)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(CurrentPalette.Primary)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(CurrentPalette.Success)
	t.Focused.UnselectedOption = t.Focused.UnselectedOption.Foreground(CurrentPalette.Foreground)
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(CurrentPalette.Error)

	return t
}

// nolint:gochecknoinits // bootstrap default theme before any style is accessed.
func init() {
	SetTheme(themes[DefaultTheme])
}
