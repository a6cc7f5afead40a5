// Package sessiontest builds controllers backed by the mock LLM provider
// and an in-memory history, for screen and command tests.
package sessiontest

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/abhisek/lessonplan/internal/history"
	"github.com/abhisek/lessonplan/internal/llm"
	"github.com/abhisek/lessonplan/internal/planner"
	"github.com/abhisek/lessonplan/internal/session"
)

// Now is the fixed clock used by controllers built here.
var Now = time.Date(2025, 3, 5, 9, 30, 0, 0, time.UTC)

// PlanJSON returns a schema-valid model response titled title.
func PlanJSON(title string) json.RawMessage {
	return json.RawMessage(fmt.Sprintf(`{
		"title": %q,
		"ageGroup": "Mẫu giáo nhỡ (4-5 tuổi)",
		"method": "STEAM",
		"developmentField": "Lĩnh vực phát triển nhận thức",
		"teacherName": "", "className": "", "schoolName": "",
		"teachingDate": "", "location": "",
		"objectives": {"knowledge": ["Nhận biết màu"], "skills": ["Pha màu"], "attitude": ["Hứng thú"]},
		"preparation": {"teacher": ["Màu nước"], "students": ["Cọ vẽ"]},
		"procedure": [
			{"step": "Ổn định", "teacherActivity": "Cô hát", "studentActivity": "Trẻ hát"},
			{"step": "Khám phá", "teacherActivity": "Cô pha màu", "studentActivity": "Trẻ thực hành"}
		]
	}`, title))
}

// Reply is a successful mock response carrying PlanJSON(title).
func Reply(title string) llm.MockResponse {
	return llm.MockResponse{Content: PlanJSON(title)}
}

// Env is a controller wired to a mock provider and a memory store.
type Env struct {
	Controller *session.Controller
	Provider   *llm.MockProvider
	History    *history.MemoryStore
}

// New builds an Env whose provider answers with responses in order.
func New(t testing.TB, responses ...llm.MockResponse) *Env {
	t.Helper()
	mock := llm.NewMockProvider(responses...)
	hist := history.NewMemoryStore()
	ids := 0
	ctrl := session.New(planner.New(mock, planner.DefaultConfig()), hist, session.Options{
		Now: func() time.Time { return Now },
		NewID: func() string {
			ids++
			return fmt.Sprintf("plan-%d", ids)
		},
	})
	return &Env{Controller: ctrl, Provider: mock, History: hist}
}
