package app

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lessonplan/internal/router"
	"github.com/abhisek/lessonplan/internal/screen"
	"github.com/abhisek/lessonplan/internal/screens/home"
	"github.com/abhisek/lessonplan/internal/session"
	"github.com/abhisek/lessonplan/internal/ui/layout"
)

// Options holds the dependencies the TUI needs.
type Options struct {
	Controller *session.Controller
	ExportDir  string
	// Status is shown on the right of the header, e.g. the active model.
	Status string
}

type historyLoadedMsg struct{ err error }

// AppModel is the root Bubble Tea model.
type AppModel struct {
	ctrl   *session.Controller
	router *router.Router
	status string
	width  int
	height int
}

// newAppModel creates a new AppModel with the home screen.
func newAppModel(opts Options) AppModel {
	return AppModel{
		ctrl:   opts.Controller,
		router: router.New(home.New(opts.Controller, opts.ExportDir)),
		status: opts.Status,
	}
}

func (m AppModel) Init() tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		return historyLoadedMsg{err: ctrl.Reload(context.Background())}
	}
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case historyLoadedMsg:
		if msg.err != nil {
			m.status = "history unavailable"
		}
		if rf, ok := m.router.Active().(screen.Refresher); ok {
			return m, rf.Refresh()
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "q":
			if m.router.Depth() == 1 && !capturing(m.router.Active()) {
				return m, tea.Quit
			}
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func capturing(s screen.Screen) bool {
	c, ok := s.(screen.InputCapturer)
	return ok && c.CapturingInput()
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	v.SetContent(m.render())
	return v
}

// render draws the full frame for the current terminal size.
func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	active := m.router.Active()
	frame := layout.Frame{Status: m.status, Hints: m.hints(active)}
	if active != nil {
		frame.Title = active.Title()
	}
	if m.ctrl.Busy() {
		frame.Status = "working..."
	}
	return frame.Render(m.width, m.height, m.router.View)
}

// hints are the active screen's own key hints, or generic ones.
func (m AppModel) hints(active screen.Screen) []layout.KeyHint {
	if kp, ok := active.(screen.KeyHintProvider); ok {
		return kp.KeyHints()
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "q", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
