package lessonplan

import (
	"encoding/json"
	"time"
)

// LessonPlan is a structured preschool lesson plan.
//
// ID and CreatedAt identify a plan for its whole lifetime. Refinement
// replaces every other field but never these two.
type LessonPlan struct {
	ID               string `json:"id"`
	Title            string `json:"title"`
	AgeGroup         string `json:"ageGroup"`
	Method           string `json:"method"`
	DevelopmentField string `json:"developmentField"`

	TeacherName  string `json:"teacherName,omitempty"`
	ClassName    string `json:"className,omitempty"`
	SchoolName   string `json:"schoolName,omitempty"`
	TeachingDate string `json:"teachingDate,omitempty"`
	Location     string `json:"location,omitempty"`

	Objectives  Objectives  `json:"objectives"`
	Preparation Preparation `json:"preparation"`
	Procedure   []Step      `json:"procedure"`

	CreatedAt Timestamp `json:"createdAt"`
}

// Objectives groups the learning goals of a lesson.
type Objectives struct {
	Knowledge []string `json:"knowledge"`
	Skills    []string `json:"skills"`
	Attitude  []string `json:"attitude"`
}

// Preparation lists the materials the teacher and the children need.
type Preparation struct {
	Teacher  []string `json:"teacher"`
	Students []string `json:"students"`
}

// Step is one stage of the lesson procedure.
type Step struct {
	Step            string `json:"step"`
	TeacherActivity string `json:"teacherActivity"`
	StudentActivity string `json:"studentActivity"`
}

// Normalize replaces nil lists with empty ones so the plan always
// serializes every list field as a JSON array.
func (p *LessonPlan) Normalize() {
	p.Objectives.Knowledge = nonNil(p.Objectives.Knowledge)
	p.Objectives.Skills = nonNil(p.Objectives.Skills)
	p.Objectives.Attitude = nonNil(p.Objectives.Attitude)
	p.Preparation.Teacher = nonNil(p.Preparation.Teacher)
	p.Preparation.Students = nonNil(p.Preparation.Students)
	if p.Procedure == nil {
		p.Procedure = []Step{}
	}
}

// WithIdentityOf returns a copy of p carrying the ID and CreatedAt of orig.
func (p LessonPlan) WithIdentityOf(orig LessonPlan) LessonPlan {
	p.ID = orig.ID
	p.CreatedAt = orig.CreatedAt
	return p
}

// Clone returns a deep copy of the plan.
func (p LessonPlan) Clone() LessonPlan {
	c := p
	c.Objectives = Objectives{
		Knowledge: cloneStrings(p.Objectives.Knowledge),
		Skills:    cloneStrings(p.Objectives.Skills),
		Attitude:  cloneStrings(p.Objectives.Attitude),
	}
	c.Preparation = Preparation{
		Teacher:  cloneStrings(p.Preparation.Teacher),
		Students: cloneStrings(p.Preparation.Students),
	}
	if p.Procedure != nil {
		c.Procedure = append([]Step{}, p.Procedure...)
	}
	return c
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append([]string{}, s...)
}

// Timestamp is a point in time encoded in JSON as Unix milliseconds,
// the format used by persisted histories.
type Timestamp struct {
	time.Time
}

// NewTimestamp truncates t to millisecond precision so it round-trips
// through JSON unchanged.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: time.UnixMilli(t.UnixMilli())}
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("0"), nil
	}
	return json.Marshal(t.UnixMilli())
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var ms int64
	if err := json.Unmarshal(b, &ms); err != nil {
		return err
	}
	if ms == 0 {
		t.Time = time.Time{}
		return nil
	}
	t.Time = time.UnixMilli(ms)
	return nil
}
