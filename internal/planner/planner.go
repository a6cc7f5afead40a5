// Package planner drafts and refines lesson plans through an LLM provider.
package planner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/lessonplan/internal/lessonplan"
	"github.com/abhisek/lessonplan/internal/llm"
)

// Purposes recorded with each LLM event.
const (
	PurposeGenerate = "plan-generate"
	PurposeRefine   = "plan-refine"
)

// Planner turns form parameters and feedback into lesson plans. It holds
// no state between calls and never retries on its own.
type Planner struct {
	provider llm.Provider
	cfg      Config
}

// New creates a Planner backed by the given provider.
func New(provider llm.Provider, cfg Config) *Planner {
	return &Planner{provider: provider, cfg: cfg}
}

// Generate drafts a new plan. The returned plan has no ID or CreatedAt;
// the caller assigns both. Every failure after local validation is a
// *GenerationError.
func (p *Planner) Generate(ctx context.Context, params lessonplan.GenerationParams) (lessonplan.LessonPlan, error) {
	if !params.HasTopic() {
		return lessonplan.LessonPlan{}, ErrEmptyTopic
	}
	params = params.WithDefaults()

	plan, err := p.call(llm.WithPurpose(ctx, PurposeGenerate), buildGenerateUserMessage(params))
	if err != nil {
		return lessonplan.LessonPlan{}, &GenerationError{Err: err}
	}

	fillMetadata(&plan, lessonplan.LessonPlan{
		TeacherName:  params.TeacherName,
		ClassName:    params.ClassName,
		SchoolName:   params.SchoolName,
		TeachingDate: params.TeachingDate,
		Location:     params.Location,
	})
	return plan, nil
}

// Refine asks the model to rewrite current according to feedback. The
// result carries no identity; reattach it with WithIdentityOf. Every
// failure after local validation is a *RefinementError.
func (p *Planner) Refine(ctx context.Context, current lessonplan.LessonPlan, feedback string) (lessonplan.LessonPlan, error) {
	if strings.TrimSpace(feedback) == "" {
		return lessonplan.LessonPlan{}, ErrEmptyFeedback
	}

	msg, err := buildRefineUserMessage(current, feedback)
	if err != nil {
		return lessonplan.LessonPlan{}, &RefinementError{Err: err}
	}

	plan, err := p.call(llm.WithPlanID(llm.WithPurpose(ctx, PurposeRefine), current.ID), msg)
	if err != nil {
		return lessonplan.LessonPlan{}, &RefinementError{Err: err}
	}

	fillMetadata(&plan, current)
	return plan, nil
}

func (p *Planner) call(ctx context.Context, userMsg string) (lessonplan.LessonPlan, error) {
	req := llm.Request{
		System: planSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: userMsg},
		},
		Schema:      PlanSchema,
		MaxTokens:   p.cfg.MaxTokens,
		Temperature: p.cfg.Temperature,
	}

	resp, err := p.provider.Generate(ctx, req)
	if err != nil {
		return lessonplan.LessonPlan{}, err
	}

	var plan lessonplan.LessonPlan
	if err := json.Unmarshal(resp.Content, &plan); err != nil {
		return lessonplan.LessonPlan{}, fmt.Errorf("decode plan: %w", err)
	}
	if err := checkComplete(plan); err != nil {
		return lessonplan.LessonPlan{}, err
	}

	plan.ID = ""
	plan.CreatedAt = lessonplan.Timestamp{}
	plan.Normalize()
	return plan, nil
}

var (
	errNoTitle     = errors.New("plan has no title")
	errNoProcedure = errors.New("plan has no procedure steps")
)

// checkComplete rejects plans that pass the schema but cannot be shown
// or exported meaningfully.
func checkComplete(plan lessonplan.LessonPlan) error {
	if strings.TrimSpace(plan.Title) == "" {
		return errNoTitle
	}
	if len(plan.Procedure) == 0 {
		return errNoProcedure
	}
	return nil
}

// fillMetadata keeps known header details when the model leaves them out.
func fillMetadata(plan *lessonplan.LessonPlan, from lessonplan.LessonPlan) {
	fill := func(dst *string, src string) {
		if strings.TrimSpace(*dst) == "" {
			*dst = src
		}
	}
	fill(&plan.TeacherName, from.TeacherName)
	fill(&plan.ClassName, from.ClassName)
	fill(&plan.SchoolName, from.SchoolName)
	fill(&plan.TeachingDate, from.TeachingDate)
	fill(&plan.Location, from.Location)
}
