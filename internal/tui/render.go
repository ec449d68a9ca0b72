package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/colonyops/dialogview/internal/core/dialog"
	"github.com/colonyops/dialogview/internal/core/styles"
	"github.com/colonyops/dialogview/internal/core/viewer"
)

const (
	defaultWidth = 80
	// bubbleChrome is the border plus horizontal padding of a bubble.
	bubbleChrome = 4
	stickerIcon  = "▣"
)

// renderTitle renders the surface title centered, or "" if it has none.
func renderTitle(s viewer.Surface, width int) string {
	title, ok := s.Title()
	if !ok {
		return ""
	}
	return styles.TitleStyle.Width(width).Render(title)
}

// renderBody renders every transcript node between the title and the nav
// controls, one block per node.
func renderBody(s viewer.Surface, width int) string {
	if width <= 0 {
		width = defaultWidth
	}

	body := s.Body()
	blocks := make([]string, 0, len(body))
	for _, n := range body {
		blocks = append(blocks, renderNode(n, width))
	}
	return strings.Join(blocks, "\n")
}

func renderNode(n viewer.Node, width int) string {
	switch n.Kind {
	case viewer.NodeText:
		return alignRole(n.Role, renderBubble(n, width), width)
	case viewer.NodeImage:
		style := styles.AssistantStickerStyle
		if n.Role == dialog.RoleUser {
			style = styles.UserStickerStyle
		}
		return alignRole(n.Role, style.Render(stickerIcon+" "+n.Text), width)
	case viewer.NodePlaceholder:
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, styles.PlaceholderStyle.Render(n.Text))
	case viewer.NodeError:
		wrapped := wordwrap.String(n.Text, width)
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, styles.LoadErrorStyle.Render(wrapped))
	default:
		return ""
	}
}

func renderBubble(n viewer.Node, width int) string {
	maxText := width*3/4 - bubbleChrome
	if maxText < 10 {
		maxText = 10
	}

	style := styles.AssistantBubbleStyle
	if n.Role == dialog.RoleUser {
		style = styles.UserBubbleStyle
	}
	return style.Render(wordwrap.String(n.Text, maxText))
}

// alignRole puts user lines on the right and assistant lines on the left.
func alignRole(role dialog.Role, block string, width int) string {
	if role == dialog.RoleUser {
		return lipgloss.PlaceHorizontal(width, lipgloss.Right, block)
	}
	return block
}

// renderNav renders the Previous/Next pair with the current position.
func renderNav(nav viewer.Nav, width int) string {
	prev := styles.NavDisabledStyle.Render(viewer.PrevLabel)
	if nav.PrevEnabled {
		prev = styles.NavEnabledStyle.Render(viewer.PrevLabel)
	}

	next := styles.NavDisabledStyle.Render(viewer.NextLabel)
	if nav.NextEnabled {
		next = styles.NavEnabledStyle.Render(viewer.NextLabel)
	}

	pos := styles.NavPositionStyle.Render(fmt.Sprintf("%d/%d", nav.Index+1, nav.Total))
	row := lipgloss.JoinHorizontal(lipgloss.Center, prev, "  ", pos, "  ", next)
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, row)
}
