package planner

import "github.com/abhisek/lessonplan/internal/llm"

func stringList(description string) map[string]any {
	return map[string]any{
		"type":        "array",
		"items":       map[string]any{"type": "string"},
		"description": description,
	}
}

func stringField(description string) map[string]any {
	return map[string]any{"type": "string", "description": description}
}

// PlanSchema is the structured output shape of a lesson plan. It mirrors
// lessonplan.LessonPlan without the id and createdAt fields, which are
// assigned locally.
var PlanSchema = &llm.Schema{
	Name:        "lesson-plan",
	Description: "A complete preschool lesson plan with objectives, preparation and procedure",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title":            stringField("Lesson title"),
			"ageGroup":         stringField("Target age group"),
			"method":           stringField("Pedagogical method used"),
			"developmentField": stringField("Developmental domain"),
			"teacherName":      stringField("Teacher name, empty if unknown"),
			"className":        stringField("Class name, empty if unknown"),
			"schoolName":       stringField("School name, empty if unknown"),
			"teachingDate":     stringField("Teaching date, empty if unknown"),
			"location":         stringField("Commune or city, empty if unknown"),
			"objectives": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"knowledge": stringList("Measurable knowledge objectives"),
					"skills":    stringList("Measurable skill objectives"),
					"attitude":  stringList("Attitude objectives"),
				},
				"required":             []any{"knowledge", "skills", "attitude"},
				"additionalProperties": false,
			},
			"preparation": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"teacher":  stringList("Materials the teacher prepares"),
					"students": stringList("Materials for the children"),
				},
				"required":             []any{"teacher", "students"},
				"additionalProperties": false,
			},
			"procedure": map[string]any{
				"type":        "array",
				"description": "Ordered lesson steps",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"step":            stringField("Step name, e.g. warm-up"),
						"teacherActivity": stringField("What the teacher does"),
						"studentActivity": stringField("What the children do"),
					},
					"required":             []any{"step", "teacherActivity", "studentActivity"},
					"additionalProperties": false,
				},
			},
		},
		"required": []any{
			"title", "ageGroup", "method", "developmentField",
			"teacherName", "className", "schoolName", "teachingDate", "location",
			"objectives", "preparation", "procedure",
		},
		"additionalProperties": false,
	},
}
