// Package history lists saved lesson plans.
package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lessonplan/internal/lessonplan"
	"github.com/abhisek/lessonplan/internal/router"
	"github.com/abhisek/lessonplan/internal/screen"
	"github.com/abhisek/lessonplan/internal/screens/preview"
	"github.com/abhisek/lessonplan/internal/session"
	"github.com/abhisek/lessonplan/internal/ui/layout"
	"github.com/abhisek/lessonplan/internal/ui/theme"
)

type historyLoadedMsg struct {
	Err error
}

type deletedMsg struct {
	ID  string
	Err error
}

// HistoryScreen displays saved plans, most recent first.
type HistoryScreen struct {
	ctrl      *session.Controller
	exportDir string
	plans     []lessonplan.LessonPlan
	selected  int
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)
var _ screen.Refresher = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(ctrl *session.Controller, exportDir string) *HistoryScreen {
	return &HistoryScreen{ctrl: ctrl, exportDir: exportDir}
}

func (s *HistoryScreen) Init() tea.Cmd {
	ctrl := s.ctrl
	return func() tea.Msg {
		return historyLoadedMsg{Err: ctrl.Reload(context.Background())}
	}
}

// Refresh reloads the list when returning from a preview, which may have
// refined or deleted entries.
func (s *HistoryScreen) Refresh() tea.Cmd {
	return s.Init()
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Open"},
		{Key: "d", Description: "Delete"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		s.loaded = true
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.errMsg = ""
		}
		s.plans = s.ctrl.History()
		s.clampSelection()
		return s, nil

	case deletedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		}
		s.plans = s.ctrl.History()
		s.clampSelection()
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.plans)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			return s, s.open()
		case "d", "delete":
			return s, s.delete()
		}
	}
	return s, nil
}

func (s *HistoryScreen) clampSelection() {
	if s.selected >= len(s.plans) {
		s.selected = len(s.plans) - 1
	}
	if s.selected < 0 {
		s.selected = 0
	}
}

func (s *HistoryScreen) open() tea.Cmd {
	if len(s.plans) == 0 {
		return nil
	}
	plan, err := s.ctrl.Open(s.plans[s.selected].ID)
	if err != nil {
		s.errMsg = err.Error()
		return nil
	}
	pv := preview.New(s.ctrl, s.exportDir, plan)
	return func() tea.Msg { return router.PushScreenMsg{Screen: pv} }
}

func (s *HistoryScreen) delete() tea.Cmd {
	if len(s.plans) == 0 {
		return nil
	}
	ctrl, id := s.ctrl, s.plans[s.selected].ID
	return func() tea.Msg {
		return deletedMsg{ID: id, Err: ctrl.Delete(context.Background(), id)}
	}
}

func (s *HistoryScreen) View(width, height int) string {
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Đang tải lịch sử...")
	}

	var b strings.Builder
	b.WriteString("\n")
	if s.errMsg != "" {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.StatusError.Render("Lỗi: "+s.errMsg)))
		b.WriteString("\n\n")
	}
	if len(s.plans) == 0 {
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("Chưa có giáo án nào."))
		return b.String()
	}

	titleWidth := width - 50
	if titleWidth < 20 {
		titleWidth = 20
	}
	for i, p := range s.plans {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}
		title := truncate(p.Title, titleWidth)
		line := fmt.Sprintf("%s%-*s  %-24s  %s", prefix, titleWidth, title,
			truncate(p.AgeGroup, 24), p.CreatedAt.Local().Format("02/01/2006 15:04"))

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return lipgloss.NewStyle().Padding(0, 2).MaxHeight(height).Render(b.String())
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
