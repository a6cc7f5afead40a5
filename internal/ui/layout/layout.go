// Package layout draws the frame around every screen: a header with the
// screen title, the body, and a footer of key hints.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/lessonplan/internal/ui/theme"
)

const (
	MinWidth  = 80
	MinHeight = 24

	// CompactWidth is the width below which screens stack their columns.
	CompactWidth = 100

	appName = "Lessonplan"
)

// KeyHint is a key binding shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// IsCompactWidth reports whether width is too narrow for two columns.
func IsCompactWidth(width int) bool {
	return width < CompactWidth
}

// IsTooSmall reports whether the terminal is below the minimum size.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// Frame is the chrome around the active screen.
type Frame struct {
	Title  string
	Status string
	Hints  []KeyHint
}

// Render draws the frame at width x height and fills the body with
// body(width, bodyHeight). Body output taller than the space left is
// clipped. Terminals below the minimum size get a resize notice instead.
func (f Frame) Render(width, height int, body func(width, height int) string) string {
	if IsTooSmall(width, height) {
		return tooSmall(width, height)
	}

	header := f.header(width)
	footer := f.footer(width)
	bodyHeight := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)

	content := lipgloss.NewStyle().
		Width(width).
		Height(bodyHeight).
		MaxHeight(bodyHeight).
		Render(body(width, bodyHeight))

	return header + "\n" + content + "\n" + footer
}

func tooSmall(width, height int) string {
	return lipgloss.NewStyle().
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Width(width).
		Height(height).
		Render(fmt.Sprintf(
			"Cửa sổ quá nhỏ\n\nCần tối thiểu %d x %d\nHiện tại: %d x %d",
			MinWidth, MinHeight, width, height,
		))
}

func bar(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border)
}

// header puts the app name on the left, the title in the middle and the
// status on the right.
func (f Frame) header(width int) string {
	name := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("  " + appName)
	title := lipgloss.NewStyle().Foreground(theme.Text).Render(f.Title)
	status := lipgloss.NewStyle().Foreground(theme.TextDim).Render(f.Status)

	// Border and padding take four cells.
	free := max(width-4, 0) - lipgloss.Width(name) - lipgloss.Width(title) - lipgloss.Width(status)
	left := max(free/2, 1)
	right := max(free-left, 1)

	return bar(width).Render(name + strings.Repeat(" ", left) + title + strings.Repeat(" ", right) + status)
}

// footer lists as many hints as fit on one line, in order.
func (f Frame) footer(width int) string {
	key := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	desc := lipgloss.NewStyle().Foreground(theme.TextDim)

	line := ""
	for _, h := range f.Hints {
		next := key.Render(h.Key) + " " + desc.Render(h.Description)
		if line != "" {
			next = line + "   " + next
		}
		if lipgloss.Width(next) > width-6 {
			break
		}
		line = next
	}
	return bar(width).Render("  " + line)
}
