package home

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lessonplan/internal/router"
	"github.com/abhisek/lessonplan/internal/screen"
	"github.com/abhisek/lessonplan/internal/screens/form"
	"github.com/abhisek/lessonplan/internal/screens/history"
	"github.com/abhisek/lessonplan/internal/screens/preview"
	"github.com/abhisek/lessonplan/internal/session"
	"github.com/abhisek/lessonplan/internal/ui/components"
	"github.com/abhisek/lessonplan/internal/ui/theme"
)

const (
	itemNew = iota
	itemCurrent
	itemHistory
	itemQuit
)

// HomeScreen is the main menu of the application.
type HomeScreen struct {
	ctrl      *session.Controller
	exportDir string
	menu      components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.Refresher = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(ctrl *session.Controller, exportDir string) *HomeScreen {
	h := &HomeScreen{ctrl: ctrl, exportDir: exportDir}

	items := []components.MenuItem{
		itemNew: {Label: "Soạn giáo án mới", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: form.New(ctrl, exportDir)}
			}
		}},
		itemCurrent: {Label: "Giáo án đang mở", Action: func() tea.Cmd {
			plan, ok := ctrl.Current()
			if !ok {
				return nil
			}
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: preview.New(ctrl, exportDir, plan)}
			}
		}},
		itemHistory: {Label: "Lịch sử", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: history.New(ctrl, exportDir)}
			}
		}},
		itemQuit: {Label: "Thoát", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}
	h.menu = components.NewMenu(items)
	h.syncCurrent()
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

// Refresh updates the menu when returning from another screen.
func (h *HomeScreen) Refresh() tea.Cmd {
	h.syncCurrent()
	return nil
}

// syncCurrent enables the "current plan" entry only while a plan is open.
func (h *HomeScreen) syncCurrent() {
	_, ok := h.ctrl.Current()
	h.menu.Items[itemCurrent].Disabled = !ok
	if !ok && h.menu.Selected == itemCurrent {
		h.menu.Selected = itemNew
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	var sections []string
	sections = append(sections, theme.Title.Render("TRỢ LÝ SOẠN GIÁO ÁN MẦM NON"))
	sections = append(sections, theme.Subtitle.Render("Giáo án chi tiết theo STEAM, 5E, Montessori..."))

	status := fmt.Sprintf("%d giáo án trong lịch sử", len(h.ctrl.History()))
	if plan, ok := h.ctrl.Current(); ok {
		status += "  ·  Đang mở: " + plan.Title
	}
	sections = append(sections, theme.Hint.Render(status))
	sections = append(sections, theme.Card.Render(strings.TrimRight(h.menu.View(), "\n")))

	content := strings.Join(sections, "\n\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
