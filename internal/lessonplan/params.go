package lessonplan

import (
	"strings"

	"github.com/google/uuid"
)

// GenerationParams is the form input used to draft a new plan.
type GenerationParams struct {
	Topic            string
	AgeGroup         string
	Method           string
	DevelopmentField string

	TeacherName  string
	ClassName    string
	SchoolName   string
	TeachingDate string
	Location     string
	Notes        string
}

// HasTopic reports whether the required topic is present.
func (p GenerationParams) HasTopic() bool {
	return strings.TrimSpace(p.Topic) != ""
}

// WithDefaults fills empty classification fields with the catalogue defaults.
func (p GenerationParams) WithDefaults() GenerationParams {
	if strings.TrimSpace(p.AgeGroup) == "" {
		p.AgeGroup = DefaultAgeGroup
	}
	if strings.TrimSpace(p.Method) == "" {
		p.Method = DefaultMethod
	}
	if strings.TrimSpace(p.DevelopmentField) == "" {
		p.DevelopmentField = DefaultDevelopmentField
	}
	return p
}

// NewID returns a fresh opaque plan identifier.
func NewID() string {
	return uuid.NewString()
}

// Form catalogues.
var (
	AgeGroups = []string{
		"Nhà trẻ (24-36 tháng)",
		"Mẫu giáo bé (3-4 tuổi)",
		"Mẫu giáo nhỡ (4-5 tuổi)",
		"Mẫu giáo lớn (5-6 tuổi)",
	}

	Methods = []string{
		"STEAM",
		"5E",
		"Montessori",
		"EDP (Quy trình thiết kế kỹ thuật)",
		"Lấy trẻ làm trung tâm",
	}

	DevelopmentFields = []string{
		"Lĩnh vực phát triển nhận thức",
		"Lĩnh vực phát triển ngôn ngữ",
		"Lĩnh vực phát triển thể chất",
		"Lĩnh vực phát triển thẩm mỹ",
		"Lĩnh vực phát triển tình cảm kỹ năng xã hội",
	}
)

var (
	DefaultAgeGroup         = AgeGroups[2]
	DefaultMethod           = Methods[0]
	DefaultDevelopmentField = DevelopmentFields[0]
)
