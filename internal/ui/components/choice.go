package components

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lessonplan/internal/ui/theme"
)

// Choice is a single-line selector that cycles through fixed options
// with the left and right arrow keys.
type Choice struct {
	Label    string
	Options  []string
	Selected int
	focused  bool
}

// NewChoice creates a selector with the option equal to def selected,
// or the first option if def is not listed.
func NewChoice(label string, options []string, def string) Choice {
	c := Choice{Label: label, Options: options}
	for i, o := range options {
		if o == def {
			c.Selected = i
			break
		}
	}
	return c
}

// Focus makes the selector respond to arrow keys.
func (c *Choice) Focus() { c.focused = true }

// Blur stops the selector from responding to keys.
func (c *Choice) Blur() { c.focused = false }

// Focused reports whether the selector has focus.
func (c Choice) Focused() bool { return c.focused }

// Value returns the selected option.
func (c Choice) Value() string {
	if len(c.Options) == 0 {
		return ""
	}
	return c.Options[c.Selected]
}

// Update cycles the selection when focused.
func (c Choice) Update(msg tea.Msg) (Choice, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || !c.focused || len(c.Options) == 0 {
		return c, nil
	}
	switch kmsg.String() {
	case "left", "h":
		c.Selected = (c.Selected - 1 + len(c.Options)) % len(c.Options)
	case "right", "l", "space":
		c.Selected = (c.Selected + 1) % len(c.Options)
	}
	return c, nil
}

// View renders the label and the current option between arrows.
func (c Choice) View() string {
	if c.focused {
		return theme.Selected.Render(c.Label) + "\n" +
			theme.Selected.Render("◂ "+c.Value()+" ▸")
	}
	return theme.Label.Render(c.Label) + "\n" + theme.Body.Render("  "+c.Value())
}
