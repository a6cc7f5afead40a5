package components

import (
	"github.com/abhisek/lessonplan/internal/ui/theme"
)

// Button is a styled button. An inactive button renders dimmed.
type Button struct {
	Label   string
	Active  bool
	Focused bool
}

// NewButton creates a new button.
func NewButton(label string, active bool) Button {
	return Button{Label: label, Active: active}
}

// View renders the button.
func (b Button) View() string {
	prefix := "  "
	if b.Focused {
		prefix = "▸ "
	}
	if b.Active {
		return theme.ButtonActive.Render(prefix + b.Label)
	}
	return theme.ButtonInactive.Render(prefix + b.Label)
}
