package router

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lessonplan/internal/screen"
)

type refreshMsg struct{ title string }

// fakeScreen records lifecycle calls and the messages it receives.
type fakeScreen struct {
	title     string
	inits     int
	refreshes int
	got       []tea.Msg
}

func (s *fakeScreen) Init() tea.Cmd {
	s.inits++
	return nil
}

func (s *fakeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	s.got = append(s.got, msg)
	return s, nil
}

func (s *fakeScreen) View(w, h int) string { return s.title }
func (s *fakeScreen) Title() string        { return s.title }

// refreshingScreen also implements screen.Refresher, like the history list.
type refreshingScreen struct{ fakeScreen }

func (s *refreshingScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	s.got = append(s.got, msg)
	return s, nil
}

func (s *refreshingScreen) Refresh() tea.Cmd {
	s.refreshes++
	return func() tea.Msg { return refreshMsg{s.title} }
}

func titles(r *Router) string {
	names := make([]string, len(r.stack))
	for i, s := range r.stack {
		names[i] = s.Title()
	}
	return strings.Join(names, ">")
}

// The menu opens the form, a generated plan replaces the form with the
// preview, and leaving the preview lands back on the menu.
func TestNavigation_GenerateFlow(t *testing.T) {
	menu := &fakeScreen{title: "menu"}
	form := &fakeScreen{title: "form"}
	preview := &fakeScreen{title: "preview"}
	r := New(menu)

	steps := []struct {
		msg  tea.Msg
		want string
	}{
		{PushScreenMsg{Screen: form}, "menu>form"},
		{ReplaceScreenMsg{Screen: preview}, "menu>preview"},
		{PopScreenMsg{}, "menu"},
		{PopScreenMsg{}, "menu"},
	}
	for i, st := range steps {
		r.Update(st.msg)
		if got := titles(r); got != st.want {
			t.Fatalf("step %d: stack = %s, want %s", i, got, st.want)
		}
	}

	if form.inits != 1 || preview.inits != 1 {
		t.Errorf("inits: form=%d preview=%d, want 1 each", form.inits, preview.inits)
	}
	if menu.inits != 0 {
		t.Error("the bottom screen is initialized by the app, not the router")
	}
	if r.View(80, 24) != "menu" {
		t.Errorf("View() = %q", r.View(80, 24))
	}
}

func TestPop_RefreshesUncoveredList(t *testing.T) {
	list := &refreshingScreen{fakeScreen{title: "list"}}
	r := New(&fakeScreen{title: "menu"})
	r.Push(list)
	r.Push(&fakeScreen{title: "preview"})

	cmd := r.Pop()
	if list.refreshes != 1 {
		t.Fatalf("refreshes = %d, want 1", list.refreshes)
	}
	if cmd == nil {
		t.Fatal("expected the refresh command")
	}
	if msg, ok := cmd().(refreshMsg); !ok || msg.title != "list" {
		t.Errorf("refresh command produced %#v", msg)
	}

	// A screen without Refresh just becomes active again.
	if cmd := r.Pop(); cmd != nil {
		t.Error("menu has nothing to refresh")
	}
}

func TestUpdate_ForwardsToActiveOnly(t *testing.T) {
	menu := &fakeScreen{title: "menu"}
	form := &fakeScreen{title: "form"}
	r := New(menu)
	r.Push(form)

	key := tea.KeyPressMsg{Code: 'a', Text: "a"}
	r.Update(key)

	if len(form.got) != 1 {
		t.Fatalf("form got %d messages, want 1", len(form.got))
	}
	if got, ok := form.got[0].(tea.KeyPressMsg); !ok || got.Text != "a" {
		t.Errorf("form got %#v", form.got[0])
	}
	if len(menu.got) != 0 {
		t.Errorf("covered screen got %v", menu.got)
	}

	r.Update(ReplaceScreenMsg{Screen: &fakeScreen{title: "preview"}})
	if len(form.got) != 1 {
		t.Error("navigation messages are handled by the router")
	}
}
