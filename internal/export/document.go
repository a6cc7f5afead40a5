// Package export renders lesson plans as PDF and Word documents.
//
// Both renderers are pure functions of the plan and the supplied time:
// the same inputs always produce the same bytes.
package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/lessonplan/internal/lessonplan"
)

// placeholder stands in for metadata the teacher did not fill in.
const placeholder = "................"

const (
	headingObjectives  = "I. MỤC TIÊU"
	headingPreparation = "II. CHUẨN BỊ"
	headingProcedure   = "III. TIẾN TRÌNH HOẠT ĐỘNG"
)

var procedureHeader = [3]string{"Bước", "Hoạt động của Cô", "Hoạt động của Trẻ"}

type field struct {
	Label string
	Value string
}

func (f field) String() string {
	return f.Label + ": " + f.Value
}

// group is a labeled list, e.g. "Kiến thức" and its objectives.
type group struct {
	Label string
	Items []string
}

type section struct {
	Heading string
	Groups  []group
	Table   bool
	Steps   []lessonplan.Step
}

type signature struct {
	Left  []string
	Right []string
}

// document is the layout-independent content shared by both renderers.
type document struct {
	Title      string // upper-cased for display
	PlainTitle string
	MetaLeft   []field
	MetaRight  []field
	Sections   []section
	Signature  signature
}

func orPlaceholder(s string) string {
	if strings.TrimSpace(s) == "" {
		return placeholder
	}
	return s
}

func buildDocument(plan lessonplan.LessonPlan, now time.Time) document {
	return document{
		Title:      strings.ToUpper(plan.Title),
		PlainTitle: plan.Title,
		MetaLeft: []field{
			{"Độ tuổi", orPlaceholder(plan.AgeGroup)},
			{"Phương pháp", orPlaceholder(plan.Method)},
			{"Lĩnh vực phát triển", orPlaceholder(plan.DevelopmentField)},
			{"Ngày dạy", orPlaceholder(plan.TeachingDate)},
		},
		MetaRight: []field{
			{"Giáo viên", orPlaceholder(plan.TeacherName)},
			{"Lớp", orPlaceholder(plan.ClassName)},
			{"Trường", orPlaceholder(plan.SchoolName)},
			{"Địa điểm", orPlaceholder(plan.Location)},
		},
		Sections:  sections(plan),
		Signature: signatureFor(plan, now),
	}
}

// sections returns the numbered body of the plan in display order.
func sections(plan lessonplan.LessonPlan) []section {
	return []section{
		{
			Heading: headingObjectives,
			Groups: []group{
				{"Kiến thức", plan.Objectives.Knowledge},
				{"Kỹ năng", plan.Objectives.Skills},
				{"Thái độ", plan.Objectives.Attitude},
			},
		},
		{
			Heading: headingPreparation,
			Groups: []group{
				{"Cô", plan.Preparation.Teacher},
				{"Trẻ", plan.Preparation.Students},
			},
		},
		{
			Heading: headingProcedure,
			Table:   true,
			Steps:   plan.Procedure,
		},
	}
}

func signatureFor(plan lessonplan.LessonPlan, now time.Time) signature {
	return signature{
		Left: []string{"BAN GIÁM HIỆU", "(Ký và ghi rõ họ tên)"},
		Right: []string{
			fmt.Sprintf("%s, %s", orPlaceholder(plan.Location), vietnameseDate(now)),
			"GIÁO VIÊN THỰC HIỆN",
			orPlaceholder(plan.TeacherName),
		},
	}
}

// vietnameseDate formats t as "Ngày D tháng M năm YYYY".
func vietnameseDate(t time.Time) string {
	return fmt.Sprintf("Ngày %d tháng %d năm %d", t.Day(), int(t.Month()), t.Year())
}
