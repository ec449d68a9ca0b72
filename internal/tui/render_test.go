package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/colonyops/dialogview/internal/core/dialog"
	"github.com/colonyops/dialogview/internal/core/viewer"
	"github.com/colonyops/dialogview/pkg/tuitest"
)

func TestRenderBody_Alignment(t *testing.T) {
	s, _ := viewer.Render(dialog.Collection{{Lines: []string{"A: hi", "B: yo"}}}, 0, "/assets/")

	lines := strings.Split(tuitest.StripANSI(renderBody(s, 60)), "\n")

	var userLine, assistantLine string
	for _, l := range lines {
		switch {
		case strings.Contains(l, "hi"):
			userLine = l
		case strings.Contains(l, "yo"):
			assistantLine = l
		}
	}

	assert.Greater(t, strings.Index(userLine, "hi"), 30, "user bubbles are right aligned")
	assert.Less(t, strings.Index(assistantLine, "yo"), 10, "assistant bubbles are left aligned")
}

func TestRenderBody_Wraps(t *testing.T) {
	long := strings.Repeat("word ", 40)
	s, _ := viewer.Render(dialog.Collection{{Lines: []string{"B: " + long}}}, 0, "")

	out := tuitest.StripANSI(renderBody(s, 40))
	for _, l := range strings.Split(out, "\n") {
		assert.LessOrEqual(t, len([]rune(l)), 40)
	}
}

func TestRenderBody_Sticker(t *testing.T) {
	s, _ := viewer.Render(dialog.Collection{{Lines: []string{"A:cat.jpeg"}}}, 0, "/assets/")

	out := tuitest.StripANSI(renderBody(s, 60))
	assert.Contains(t, out, stickerIcon+" cat.jpeg")
}

func TestRenderBody_ZeroWidth(t *testing.T) {
	out := renderBody(viewer.PlaceholderSurface(), 0)
	assert.Contains(t, tuitest.StripANSI(out), viewer.PlaceholderText)
}

func TestRenderNav(t *testing.T) {
	out := tuitest.StripANSI(renderNav(viewer.Nav{Index: 4, Total: 9, PrevEnabled: true, NextEnabled: true}, 60))

	assert.Contains(t, out, "Previous")
	assert.Contains(t, out, "5/9")
	assert.Contains(t, out, "Next")
}

func TestRenderTitle(t *testing.T) {
	assert.Empty(t, renderTitle(viewer.PlaceholderSurface(), 40))

	s, _ := viewer.Render(dialog.Collection{{ID: "dlg"}}, 0, "")
	assert.Contains(t, tuitest.StripANSI(renderTitle(s, 40)), "dlg")
}
