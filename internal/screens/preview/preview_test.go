package preview

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lessonplan/internal/lessonplan"
	"github.com/abhisek/lessonplan/internal/llm"
	"github.com/abhisek/lessonplan/internal/session/sessiontest"
)

func press(code rune, mod tea.KeyMod) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code, Mod: mod}
}

func typeText(s *PreviewScreen, text string) {
	for _, r := range text {
		s.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

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

func newPreview(t *testing.T, responses ...llm.MockResponse) (*PreviewScreen, *sessiontest.Env) {
	t.Helper()
	all := append([]llm.MockResponse{sessiontest.Reply("Khám phá màu sắc")}, responses...)
	env := sessiontest.New(t, all...)
	res, err := env.Controller.Generate(context.Background(), lessonplan.GenerationParams{Topic: "Colors"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	s := New(env.Controller, t.TempDir(), res.Plan)
	s.Init()
	return s, env
}

func TestViewRendersPlan(t *testing.T) {
	s, _ := newPreview(t)
	view := s.View(100, 60)

	for _, want := range []string{"KHÁM PHÁ MÀU SẮC", "I. MỤC TIÊU", "II. CHUẨN BỊ",
		"III. TIẾN TRÌNH HOẠT ĐỘNG", "1. Ổn định", "2. Khám phá", "Yêu cầu chỉnh sửa"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestEmptyFeedbackIsRejected(t *testing.T) {
	s, env := newPreview(t)

	_, cmd := s.Update(press(tea.KeyEnter, 0))
	if cmd != nil {
		t.Error("no command expected for empty feedback")
	}
	if s.statusKind != statusError {
		t.Error("expected an error status")
	}
	if env.Provider.CallCount() != 1 {
		t.Errorf("expected only the generate call, got %d", env.Provider.CallCount())
	}
}

func TestRefineUpdatesPlan(t *testing.T) {
	s, env := newPreview(t, sessiontest.Reply("Khám phá màu sắc qua trò chơi"))
	id := s.Plan().ID

	typeText(s, "thêm trò chơi")
	_, cmd := s.Update(press(tea.KeyEnter, 0))
	if !s.busy {
		t.Fatal("expected busy while refining")
	}
	if !strings.Contains(s.View(100, 40), "Đang cập nhật") {
		t.Error("expected spinner while refining")
	}

	msg, ok := find[refinedMsg](drain(cmd))
	if !ok {
		t.Fatal("expected refinedMsg")
	}
	s.Update(msg)

	if s.busy {
		t.Error("expected busy cleared")
	}
	if got := s.Plan().Title; got != "Khám phá màu sắc qua trò chơi" {
		t.Errorf("unexpected title %q", got)
	}
	if s.Plan().ID != id {
		t.Error("refinement must keep the plan id")
	}
	if s.feedback.Value() != "" {
		t.Error("feedback should be cleared after a refinement")
	}
	if s.statusKind != statusOK {
		t.Errorf("expected ok status, got %q", s.status)
	}
	if !strings.Contains(env.Provider.Calls[1].Messages[0].Content, "thêm trò chơi") {
		t.Error("expected feedback in refine prompt")
	}
}

func TestRefineFailureKeepsPlan(t *testing.T) {
	s, _ := newPreview(t, llm.MockResponse{Err: errors.New("quota exceeded")})
	before := s.Plan()

	typeText(s, "ngắn hơn")
	_, cmd := s.Update(press(tea.KeyEnter, 0))
	msg, ok := find[refinedMsg](drain(cmd))
	if !ok {
		t.Fatal("expected refinedMsg")
	}
	s.Update(msg)

	if s.Plan().Title != before.Title {
		t.Error("plan must not change on failure")
	}
	if s.statusKind != statusError || s.status != "Có lỗi xảy ra khi điều chỉnh giáo án. Vui lòng thử lại." {
		t.Errorf("unexpected status %q", s.status)
	}
	if s.feedback.Value() != "ngắn hơn" {
		t.Error("feedback should be kept for retry")
	}
}

func TestExportShortcuts(t *testing.T) {
	s, _ := newPreview(t)

	for _, tc := range []struct {
		key  rune
		ext  string
		head string
	}{
		{'p', ".pdf", "%PDF"},
		{'w', ".docx", "PK"},
	} {
		_, cmd := s.Update(press(tc.key, tea.ModCtrl))
		if cmd == nil {
			t.Fatalf("ctrl+%c: expected export command", tc.key)
		}
		msg, ok := cmd().(exportedMsg)
		if !ok {
			t.Fatalf("ctrl+%c: expected exportedMsg", tc.key)
		}
		if msg.err != nil {
			t.Fatalf("ctrl+%c: %v", tc.key, msg.err)
		}
		if filepath.Ext(msg.path) != tc.ext {
			t.Errorf("unexpected path %s", msg.path)
		}
		data, err := os.ReadFile(msg.path)
		if err != nil {
			t.Fatal(err)
		}
		if !strings.HasPrefix(string(data), tc.head) {
			t.Errorf("%s: unexpected file header", msg.path)
		}

		s.Update(msg)
		if s.statusKind != statusOK {
			t.Errorf("expected ok status, got %q", s.status)
		}
	}
}

func TestScrollIsBounded(t *testing.T) {
	s, _ := newPreview(t)
	s.View(80, 12)

	for i := 0; i < 500; i++ {
		s.Update(press(tea.KeyDown, 0))
	}
	if s.offset != s.lineCount-s.bodyHeight {
		t.Errorf("expected offset %d, got %d", s.lineCount-s.bodyHeight, s.offset)
	}

	s.Update(press(tea.KeyPgUp, 0))
	s.Update(press(tea.KeyPgUp, 0))
	for i := 0; i < 500; i++ {
		s.Update(press(tea.KeyUp, 0))
	}
	if s.offset != 0 {
		t.Errorf("expected offset 0, got %d", s.offset)
	}
}

func TestWarningStatus(t *testing.T) {
	s, _ := newPreview(t)
	s.SetWarning("Chưa lưu được vào lịch sử: disk full")
	if !strings.Contains(s.View(100, 40), "disk full") {
		t.Error("expected warning in view")
	}
}
