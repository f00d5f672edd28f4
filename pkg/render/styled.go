package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"researchfeed/pkg/slides"
)

const (
	thumbWidth = 24
	largeWidth = 72
)

// Thumbnail renders a slide as a small content-only preview for the deck
// navigator strip. No controls, minimal styling work: many of these
// render at once.
func Thumbnail(s *slides.Slide) string {
	p := slides.PaletteFor(s.Theme)
	box := lipgloss.NewStyle().
		Width(thumbWidth).
		Padding(0, 1).
		Background(lipgloss.Color(p.Background)).
		Foreground(lipgloss.Color(p.Foreground))

	lines := make([]string, 0, 3)
	for i, n := range Frame(s) {
		if i >= 3 {
			break
		}
		lines = append(lines, truncate(n.Text, thumbWidth-2))
	}

	return box.Render(strings.Join(lines, "\n"))
}

// Large renders a slide at presentation scale: full frame, typography per
// node kind, theme palette applied.
func Large(s *slides.Slide) string {
	p := slides.PaletteFor(s.Theme)

	base := lipgloss.NewStyle().
		Background(lipgloss.Color(p.Background)).
		Foreground(lipgloss.Color(p.Foreground)).
		Width(largeWidth - 4)

	heading := base.Bold(true)
	secondary := base.Foreground(lipgloss.Color(p.Accent))
	quote := base.Italic(true)
	placeholder := base.Faint(true).Italic(true)

	lines := make([]string, 0, 8)
	for _, n := range Frame(s) {
		style := base
		switch {
		case n.Placeholder:
			style = placeholder
		case n.Kind == Heading:
			style = heading
		case n.Kind == Secondary || n.Kind == Attribution:
			style = secondary
		case n.Kind == QuoteText:
			style = quote
		}

		text := n.Text
		if n.Kind == Bullet {
			text = "• " + text
		}
		lines = append(lines, style.Render(text))
	}

	frame := lipgloss.NewStyle().
		Width(largeWidth).
		Padding(1, 2).
		Background(lipgloss.Color(p.Background))

	return frame.Render(strings.Join(lines, "\n"))
}

func truncate(s string, max int) string {
	if max <= 1 || len(s) <= max {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
