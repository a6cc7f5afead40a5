package form

import (
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lessonplan/internal/lessonplan"
	"github.com/abhisek/lessonplan/internal/llm"
	"github.com/abhisek/lessonplan/internal/router"
	"github.com/abhisek/lessonplan/internal/screens/preview"
	"github.com/abhisek/lessonplan/internal/session/sessiontest"
)

func press(code rune, mod tea.KeyMod) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code, Mod: mod}
}

func typeText(s *FormScreen, text string) {
	for _, r := range text {
		s.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

// drain runs cmd and any batched commands, collecting their messages.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, drain(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func find[T any](msgs []tea.Msg) (T, bool) {
	for _, m := range msgs {
		if v, ok := m.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

func TestEmptyTopicIsRejected(t *testing.T) {
	env := sessiontest.New(t)
	s := New(env.Controller, t.TempDir())
	s.Init()

	_, cmd := s.Update(press('s', tea.ModCtrl))
	if cmd != nil {
		if _, ok := find[generatedMsg](drain(cmd)); ok {
			t.Fatal("generation should not start without a topic")
		}
	}
	if s.busy {
		t.Error("form should not be busy")
	}
	if !strings.Contains(s.View(100, 40), "Vui lòng nhập chủ đề") {
		t.Error("expected topic error in view")
	}
	if env.Provider.CallCount() != 0 {
		t.Errorf("expected no provider calls, got %d", env.Provider.CallCount())
	}
}

func TestDefaultsAndChoiceCycling(t *testing.T) {
	env := sessiontest.New(t)
	s := New(env.Controller, t.TempDir())
	s.Init()

	p := s.Params()
	if p.AgeGroup != lessonplan.DefaultAgeGroup || p.Method != lessonplan.DefaultMethod ||
		p.DevelopmentField != lessonplan.DefaultDevelopmentField {
		t.Fatalf("unexpected defaults: %+v", p)
	}

	s.Update(press(tea.KeyTab, 0))
	s.Update(press(tea.KeyRight, 0))
	if got := s.Params().AgeGroup; got != lessonplan.AgeGroups[3] {
		t.Errorf("expected %q, got %q", lessonplan.AgeGroups[3], got)
	}

	s.Update(press(tea.KeyTab, 0))
	s.Update(press(tea.KeyLeft, 0))
	want := lessonplan.Methods[len(lessonplan.Methods)-1]
	if got := s.Params().Method; got != want {
		t.Errorf("expected method to wrap to %q, got %q", want, got)
	}
}

func TestShiftTabWrapsToSubmit(t *testing.T) {
	env := sessiontest.New(t)
	s := New(env.Controller, t.TempDir())
	s.Init()

	s.Update(press(tea.KeyTab, tea.ModShift))
	if focusOrder[s.focus].kind != targetSubmit {
		t.Errorf("expected focus on submit, got %+v", focusOrder[s.focus])
	}
	if s.CapturingInput() {
		t.Error("submit button should not capture input")
	}
}

func TestSubmitGeneratesAndOpensPreview(t *testing.T) {
	env := sessiontest.New(t, sessiontest.Reply("Khám phá màu sắc"))
	s := New(env.Controller, t.TempDir())
	s.Init()
	typeText(s, "Colors")

	_, cmd := s.Update(press('s', tea.ModCtrl))
	if !s.busy {
		t.Fatal("expected form to be busy after submit")
	}

	// Keys are ignored while busy.
	typeText(s, "xyz")
	if got := s.Params().Topic; got != "Colors" {
		t.Errorf("topic changed while busy: %q", got)
	}

	msg, ok := find[generatedMsg](drain(cmd))
	if !ok {
		t.Fatal("expected generatedMsg")
	}
	_, next := s.Update(msg)
	if s.busy {
		t.Error("expected busy cleared")
	}

	replace, ok := next().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatal("expected ReplaceScreenMsg")
	}
	pv, ok := replace.Screen.(*preview.PreviewScreen)
	if !ok {
		t.Fatalf("expected preview screen, got %T", replace.Screen)
	}
	if pv.Plan().Title != "Khám phá màu sắc" {
		t.Errorf("unexpected title %q", pv.Plan().Title)
	}
	if len(env.Controller.History()) != 1 {
		t.Errorf("expected 1 history entry, got %d", len(env.Controller.History()))
	}
	if call := env.Provider.Calls[0]; !strings.Contains(call.Messages[0].Content, "Colors") {
		t.Error("expected topic in prompt")
	}
}

func TestGenerationFailureShowsError(t *testing.T) {
	env := sessiontest.New(t, llm.MockResponse{Err: errors.New("upstream down")})
	s := New(env.Controller, t.TempDir())
	s.Init()
	typeText(s, "Colors")

	// Enter on the topic field only advances focus.
	s.Update(press(tea.KeyEnter, 0))
	if s.busy || s.focus != 1 {
		t.Fatal("enter on a field should advance focus")
	}

	_, cmd := s.Update(press('s', tea.ModCtrl))
	msg, ok := find[generatedMsg](drain(cmd))
	if !ok {
		t.Fatal("expected generatedMsg")
	}
	_, next := s.Update(msg)
	if next != nil {
		t.Error("no navigation expected on failure")
	}
	view := s.View(100, 40)
	if !strings.Contains(view, "Vui lòng thử lại") {
		t.Error("expected retry notice in view")
	}
	if strings.Contains(view, "upstream down") {
		t.Error("the provider error should only be logged")
	}
	if _, ok := env.Controller.Current(); ok {
		t.Error("no plan should be open after a failure")
	}
}
