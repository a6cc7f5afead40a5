package planner

import (
	"context"
	"encoding/json"
	"errors"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/abhisek/lessonplan/internal/lessonplan"
	"github.com/abhisek/lessonplan/internal/llm"
)

func colorsParams() lessonplan.GenerationParams {
	return lessonplan.GenerationParams{
		Topic:            "Colors",
		AgeGroup:         "Mẫu giáo nhỡ (4-5 tuổi)",
		Method:           "STEAM",
		DevelopmentField: "Lĩnh vực phát triển nhận thức",
		TeacherName:      "Nguyễn Thị Lan",
	}
}

func colorsPlan(t *testing.T) lessonplan.LessonPlan {
	t.Helper()
	var p lessonplan.LessonPlan
	if err := json.Unmarshal(colorsPlanJSON(), &p); err != nil {
		t.Fatalf("decode fixture: %v", err)
	}
	return p
}

func TestGenerate_ReturnsCompletePlan(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: colorsPlanJSON()})
	p := New(mock, DefaultConfig())

	plan, err := p.Generate(context.Background(), colorsParams())
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	if plan.Title != "Khám phá màu sắc" {
		t.Errorf("Title = %q", plan.Title)
	}
	if len(plan.Procedure) != 3 {
		t.Errorf("steps = %d, want 3", len(plan.Procedure))
	}
	if len(plan.Objectives.Knowledge) != 1 {
		t.Errorf("knowledge = %q, want 1 item", plan.Objectives.Knowledge)
	}
	if plan.ID != "" || !plan.CreatedAt.IsZero() {
		t.Error("identity is assigned by the caller, not the planner")
	}
	// The model left the teacher empty; the form value is kept.
	if plan.TeacherName != "Nguyễn Thị Lan" {
		t.Errorf("TeacherName = %q", plan.TeacherName)
	}
}

func TestGenerate_RequestShape(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: colorsPlanJSON()})
	p := New(mock, Config{MaxTokens: 4000, Temperature: 0.2})

	if _, err := p.Generate(context.Background(), colorsParams()); err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if mock.CallCount() != 1 {
		t.Fatalf("calls = %d, want 1", mock.CallCount())
	}

	req := mock.Calls[0]
	if req.System != planSystemPrompt {
		t.Error("expected the plan system prompt")
	}
	if req.Schema != PlanSchema {
		t.Error("expected PlanSchema on the request")
	}
	if req.MaxTokens != 4000 || req.Temperature != 0.2 {
		t.Errorf("MaxTokens=%d Temperature=%v, want 4000 and 0.2", req.MaxTokens, req.Temperature)
	}
	if len(req.Messages) != 1 {
		t.Fatalf("messages = %d, want 1", len(req.Messages))
	}

	msg := req.Messages[0].Content
	for _, want := range []string{
		"Topic / lesson name: Colors",
		"Method: STEAM",
		"Teacher: Nguyễn Thị Lan",
		"Class: Not provided",
		"Additional notes: None",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestGenerate_FillsCatalogueDefaults(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: colorsPlanJSON()})
	p := New(mock, DefaultConfig())

	if _, err := p.Generate(context.Background(), lessonplan.GenerationParams{Topic: "Water"}); err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	msg := mock.Calls[0].Messages[0].Content
	for _, want := range []string{"Age group: " + lessonplan.DefaultAgeGroup, "Method: " + lessonplan.DefaultMethod} {
		if !strings.Contains(msg, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestGenerate_EmptyTopic(t *testing.T) {
	mock := llm.NewMockProvider()
	p := New(mock, DefaultConfig())

	for _, topic := range []string{"", "   ", "\t\n"} {
		if _, err := p.Generate(context.Background(), lessonplan.GenerationParams{Topic: topic}); !errors.Is(err, ErrEmptyTopic) {
			t.Errorf("Generate(%q) error = %v, want ErrEmptyTopic", topic, err)
		}
	}
	if mock.CallCount() != 0 {
		t.Errorf("calls = %d, the model should not be called", mock.CallCount())
	}
}

func TestGenerate_Failures(t *testing.T) {
	tests := []struct {
		name string
		resp llm.MockResponse
	}{
		{"provider unavailable", llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("dial tcp")}}},
		{"rate limited", llm.MockResponse{Err: &llm.ErrRateLimit{RetryAfter: time.Second}}},
		{"not json", llm.MockResponse{Content: json.RawMessage(`Here is your plan!`)}},
		{"missing procedure", llm.MockResponse{Content: json.RawMessage(`{"title":"x"}`)}},
		{"empty procedure", llm.MockResponse{Content: withProcedure(t, colorsPlanJSON(), nil)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(llm.NewMockProvider(tt.resp), DefaultConfig())

			plan, err := p.Generate(context.Background(), colorsParams())

			var genErr *GenerationError
			if !errors.As(err, &genErr) {
				t.Fatalf("error = %v, want GenerationError", err)
			}
			if plan.Title != "" || plan.Procedure != nil {
				t.Errorf("expected zero plan on failure, got %+v", plan)
			}
		})
	}
}

func TestGenerate_TruncatedResponse(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"title":"Khám`), Truncated: true})
	p := New(mock, DefaultConfig())

	_, err := p.Generate(context.Background(), colorsParams())

	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("error = %v, want GenerationError", err)
	}
	var maxTok *llm.ErrMaxTokensExceeded
	if !errors.As(err, &maxTok) {
		t.Errorf("error = %v, should wrap ErrMaxTokensExceeded", err)
	}
}

func TestGenerate_NoRetry(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Err: &llm.ErrProviderUnavailable{}},
		llm.MockResponse{Content: colorsPlanJSON()},
	)
	p := New(mock, DefaultConfig())

	if _, err := p.Generate(context.Background(), colorsParams()); err == nil {
		t.Fatal("expected the first failure to surface")
	}
	if mock.CallCount() != 1 {
		t.Errorf("calls = %d, want 1", mock.CallCount())
	}
}

func TestRequestTags(t *testing.T) {
	rec := &tagRecorder{Provider: llm.NewMockProvider(
		llm.MockResponse{Content: colorsPlanJSON()},
		llm.MockResponse{Content: refinedPlanJSON()},
	)}
	p := New(rec, DefaultConfig())

	plan, err := p.Generate(context.Background(), colorsParams())
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	plan.ID = "plan-9"
	if _, err := p.Refine(context.Background(), plan, "more games"); err != nil {
		t.Fatalf("Refine() error: %v", err)
	}

	if want := []string{PurposeGenerate, PurposeRefine}; !slices.Equal(rec.purposes, want) {
		t.Errorf("purposes = %v, want %v", rec.purposes, want)
	}
	if want := []string{"", "plan-9"}; !slices.Equal(rec.planIDs, want) {
		t.Errorf("plan ids = %q, want %q", rec.planIDs, want)
	}
}

func TestRefine_PreservesIdentityAfterReattach(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: refinedPlanJSON()})
	p := New(mock, DefaultConfig())

	current := colorsPlan(t)
	current.ID = "plan-1"
	current.CreatedAt = lessonplan.NewTimestamp(time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC))
	current.Location = "Hà Nội"

	refined, err := p.Refine(context.Background(), current, "Add a warm-up game")
	if err != nil {
		t.Fatalf("Refine() error: %v", err)
	}
	if refined.ID != "" {
		t.Errorf("ID = %q, the planner leaves identity to the caller", refined.ID)
	}

	refined = refined.WithIdentityOf(current)
	if refined.ID != "plan-1" || !refined.CreatedAt.Equal(current.CreatedAt.Time) {
		t.Errorf("identity not reattached: %s %v", refined.ID, refined.CreatedAt.Time)
	}
	if refined.Title != "Khám phá màu sắc qua trò chơi" {
		t.Errorf("Title = %q", refined.Title)
	}
	if refined.ClassName != "Lớp Chồi 2" {
		t.Errorf("ClassName = %q, the model's value wins", refined.ClassName)
	}
	if refined.Location != "Hà Nội" {
		t.Errorf("Location = %q, empty model values keep the current ones", refined.Location)
	}
	if refined.Preparation.Students == nil || len(refined.Preparation.Students) != 0 {
		t.Errorf("Students = %#v, want empty list", refined.Preparation.Students)
	}
}

func TestRefine_PromptCarriesPlanAndFeedback(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: refinedPlanJSON()})
	p := New(mock, DefaultConfig())

	current := colorsPlan(t)
	current.ID = "secret-id"
	current.CreatedAt = lessonplan.NewTimestamp(time.Now())

	if _, err := p.Refine(context.Background(), current, "  Add a warm-up game  "); err != nil {
		t.Fatalf("Refine() error: %v", err)
	}

	msg := mock.Calls[0].Messages[0].Content
	for _, want := range []string{`"title": "Khám phá màu sắc"`, `"Add a warm-up game"`, "complete updated plan"} {
		if !strings.Contains(msg, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
	for _, leak := range []string{"secret-id", "createdAt"} {
		if strings.Contains(msg, leak) {
			t.Errorf("prompt should not contain %q", leak)
		}
	}
}

func TestRefine_EmptyFeedback(t *testing.T) {
	mock := llm.NewMockProvider()
	p := New(mock, DefaultConfig())

	if _, err := p.Refine(context.Background(), lessonplan.LessonPlan{Title: "x"}, "  "); !errors.Is(err, ErrEmptyFeedback) {
		t.Errorf("Refine() error = %v, want ErrEmptyFeedback", err)
	}
	if mock.CallCount() != 0 {
		t.Errorf("calls = %d, the model should not be called", mock.CallCount())
	}
}

func TestRefine_Failure(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"title": 5}`)})
	p := New(mock, DefaultConfig())

	_, err := p.Refine(context.Background(), lessonplan.LessonPlan{Title: "x"}, "shorter")

	var refErr *RefinementError
	if !errors.As(err, &refErr) {
		t.Fatalf("error = %v, want RefinementError", err)
	}
	var invalid *llm.ErrInvalidResponse
	if !errors.As(err, &invalid) {
		t.Errorf("error = %v, should wrap ErrInvalidResponse", err)
	}
}

func TestPlanSchema_AcceptsFixtures(t *testing.T) {
	for i, raw := range []json.RawMessage{colorsPlanJSON(), refinedPlanJSON()} {
		mock := llm.NewMockProvider(llm.MockResponse{Content: raw})
		if _, err := mock.Generate(context.Background(), llm.Request{Schema: PlanSchema}); err != nil {
			t.Errorf("fixture %d rejected: %v", i, err)
		}
	}
}

// tagRecorder notes the request labels each call carries.
type tagRecorder struct {
	llm.Provider
	purposes []string
	planIDs  []string
}

func (r *tagRecorder) Generate(ctx context.Context, req llm.Request) (*llm.Response, error) {
	r.purposes = append(r.purposes, llm.PurposeFrom(ctx))
	r.planIDs = append(r.planIDs, llm.PlanIDFrom(ctx))
	return r.Provider.Generate(ctx, req)
}

func withProcedure(t *testing.T, raw json.RawMessage, steps []lessonplan.Step) json.RawMessage {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		t.Fatal(err)
	}
	if steps == nil {
		m["procedure"] = []any{}
	} else {
		m["procedure"] = steps
	}
	out, err := json.Marshal(m)
	if err != nil {
		t.Fatal(err)
	}
	return out
}
