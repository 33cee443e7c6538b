package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vinser/pathbot/internal/style"
)

// Page renders page with title at the top, content block and footer at the bottom.
// Style of content is left intact.
func Page(title, renderedContent, footer string, width, height, termWidth, termHeight int) string {
	renderedTopPattern := style.TopPattern.Render(strings.Repeat("/", width))
	renderedTitle := style.Title.Render(title)
	renderedFooter := style.Footer.Render(footer)

	// Content is placed at the top of the remaining height so the page does
	// not jump when notifications come and go.
	availableHeight := height - lipgloss.Height(renderedTopPattern) - lipgloss.Height(renderedTitle) - lipgloss.Height(renderedFooter)
	placedContent := lipgloss.PlaceVertical(availableHeight, lipgloss.Top, renderedContent)

	view := lipgloss.JoinVertical(
		lipgloss.Left,
		renderedTopPattern,
		renderedTitle,
		placedContent,
		renderedFooter,
	)
	if termWidth > 0 && termHeight > 0 {
		return lipgloss.Place(termWidth, termHeight, lipgloss.Center, lipgloss.Center, view)
	}
	return view
}

// Section renders a labelled block of lines, skipping empty ones.
func Section(label string, lines ...string) string {
	var b strings.Builder
	b.WriteString(style.Label.Render(label))
	for _, l := range lines {
		if l == "" {
			continue
		}
		b.WriteString("\n  ")
		b.WriteString(strings.ReplaceAll(l, "\n", "\n  "))
	}
	return b.String()
}
