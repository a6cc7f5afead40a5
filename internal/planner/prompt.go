package planner

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhisek/lessonplan/internal/lessonplan"
)

const (
	notProvided = "Not provided"
	noneGiven   = "None"
)

const planSystemPrompt = `You are a senior preschool education consultant in Vietnam. Your job is to write detailed lesson plans for preschool teachers.

Content rules:
1. Write every field in standard Vietnamese preschool pedagogical language.
2. Objectives must be measurable.
3. The procedure must be detailed, creative and child-centred. Each step names what the teacher does and what the children do.
4. Integrate the pedagogical method the teacher asked for (STEAM, 5E, Montessori, etc.) faithfully.
5. Copy the teacher, class, school, date and location you are given into the matching fields, or leave them empty when they are not provided.

Return a single JSON object matching the lesson plan schema.`

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func buildGenerateUserMessage(p lessonplan.GenerationParams) string {
	var b strings.Builder

	b.WriteString("Write a preschool lesson plan with the following details:\n")
	b.WriteString(fmt.Sprintf("- Topic / lesson name: %s\n", strings.TrimSpace(p.Topic)))
	b.WriteString(fmt.Sprintf("- Age group: %s\n", p.AgeGroup))
	b.WriteString(fmt.Sprintf("- Method: %s\n", p.Method))
	b.WriteString(fmt.Sprintf("- Development field: %s\n", p.DevelopmentField))
	b.WriteString(fmt.Sprintf("- Teacher: %s\n", orDefault(p.TeacherName, notProvided)))
	b.WriteString(fmt.Sprintf("- Class: %s\n", orDefault(p.ClassName, notProvided)))
	b.WriteString(fmt.Sprintf("- School: %s\n", orDefault(p.SchoolName, notProvided)))
	b.WriteString(fmt.Sprintf("- Teaching date: %s\n", orDefault(p.TeachingDate, notProvided)))
	b.WriteString(fmt.Sprintf("- Location (commune/city): %s\n", orDefault(p.Location, notProvided)))
	b.WriteString(fmt.Sprintf("- Additional notes: %s\n", orDefault(p.Notes, noneGiven)))

	b.WriteString("\nReturn the complete plan as JSON in the format described in the instructions.")
	return b.String()
}

// planBody is the plan as the model sees it: identity fields are shadowed
// by nil pointers so they are omitted.
type planBody struct {
	lessonplan.LessonPlan
	ID        *struct{} `json:"id,omitempty"`
	CreatedAt *struct{} `json:"createdAt,omitempty"`
}

func buildRefineUserMessage(current lessonplan.LessonPlan, feedback string) (string, error) {
	current.Normalize()
	body, err := json.MarshalIndent(planBody{LessonPlan: current}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal current plan: %w", err)
	}

	var b strings.Builder
	b.WriteString("Here is the current lesson plan:\n")
	b.Write(body)
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("The teacher wants the following changes: %q\n\n", strings.TrimSpace(feedback)))
	b.WriteString("Update the lesson plan accordingly and return the complete updated plan as JSON, not just the changes.")
	return b.String(), nil
}
