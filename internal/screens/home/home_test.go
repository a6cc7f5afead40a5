package home

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lessonplan/internal/lessonplan"
	"github.com/abhisek/lessonplan/internal/router"
	"github.com/abhisek/lessonplan/internal/screens/form"
	"github.com/abhisek/lessonplan/internal/screens/history"
	"github.com/abhisek/lessonplan/internal/screens/preview"
	"github.com/abhisek/lessonplan/internal/session/sessiontest"
)

func key(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func TestMenuNavigation(t *testing.T) {
	env := sessiontest.New(t)
	h := New(env.Controller, t.TempDir())

	_, cmd := h.Update(key(tea.KeyEnter))
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected PushScreenMsg")
	}
	if _, ok := push.Screen.(*form.FormScreen); !ok {
		t.Errorf("expected form screen, got %T", push.Screen)
	}

	// Without an open plan the down key skips straight to History.
	h.Update(key(tea.KeyDown))
	_, cmd = h.Update(key(tea.KeyEnter))
	push = cmd().(router.PushScreenMsg)
	if _, ok := push.Screen.(*history.HistoryScreen); !ok {
		t.Errorf("expected history screen, got %T", push.Screen)
	}
}

func TestCurrentPlanEntry(t *testing.T) {
	env := sessiontest.New(t, sessiontest.Reply("Khám phá màu sắc"))
	h := New(env.Controller, t.TempDir())
	if !h.menu.Items[itemCurrent].Disabled {
		t.Fatal("current plan entry should start disabled")
	}

	if _, err := env.Controller.Generate(context.Background(), lessonplan.GenerationParams{Topic: "Colors"}); err != nil {
		t.Fatal(err)
	}
	h.Refresh()

	if !strings.Contains(h.View(100, 30), "Khám phá màu sắc") {
		t.Error("expected open plan title on home")
	}
	h.Update(key(tea.KeyDown))
	_, cmd := h.Update(key(tea.KeyEnter))
	push := cmd().(router.PushScreenMsg)
	if _, ok := push.Screen.(*preview.PreviewScreen); !ok {
		t.Errorf("expected preview screen, got %T", push.Screen)
	}
}

func TestQuitItem(t *testing.T) {
	env := sessiontest.New(t)
	h := New(env.Controller, t.TempDir())

	for i := 0; i < 5; i++ {
		h.Update(key(tea.KeyDown))
	}
	_, cmd := h.Update(key(tea.KeyEnter))
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected quit")
	}
}
