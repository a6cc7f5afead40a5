// Package form implements the screen where a teacher describes the lesson
// to generate.
package form

import (
	"context"
	"errors"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lessonplan/internal/lessonplan"
	"github.com/abhisek/lessonplan/internal/planner"
	"github.com/abhisek/lessonplan/internal/router"
	"github.com/abhisek/lessonplan/internal/screen"
	"github.com/abhisek/lessonplan/internal/screens/preview"
	"github.com/abhisek/lessonplan/internal/session"
	"github.com/abhisek/lessonplan/internal/ui/components"
	"github.com/abhisek/lessonplan/internal/ui/layout"
	"github.com/abhisek/lessonplan/internal/ui/theme"
)

const (
	inputTopic = iota
	inputTeacher
	inputClass
	inputSchool
	inputDate
	inputLocation
	inputNotes
	numInputs
)

const (
	choiceAge = iota
	choiceMethod
	choiceField
	numChoices
)

type targetKind int

const (
	targetInput targetKind = iota
	targetChoice
	targetSubmit
)

type target struct {
	kind targetKind
	idx  int
}

// focusOrder lists the form controls in tab order.
var focusOrder = []target{
	{targetInput, inputTopic},
	{targetChoice, choiceAge},
	{targetChoice, choiceMethod},
	{targetChoice, choiceField},
	{targetInput, inputTeacher},
	{targetInput, inputClass},
	{targetInput, inputSchool},
	{targetInput, inputDate},
	{targetInput, inputLocation},
	{targetInput, inputNotes},
	{targetSubmit, 0},
}

type generatedMsg struct {
	res session.Result
	err error
}

// FormScreen collects generation parameters and runs the generation.
type FormScreen struct {
	ctrl      *session.Controller
	exportDir string

	inputs  [numInputs]components.TextInput
	choices [numChoices]components.Choice
	focus   int

	spinner components.Spinner
	busy    bool
	errMsg  string
}

var _ screen.Screen = (*FormScreen)(nil)
var _ screen.KeyHintProvider = (*FormScreen)(nil)
var _ screen.InputCapturer = (*FormScreen)(nil)

// New creates a FormScreen.
func New(ctrl *session.Controller, exportDir string) *FormScreen {
	s := &FormScreen{
		ctrl:      ctrl,
		exportDir: exportDir,
		spinner:   components.Spinner{Label: "Đang soạn giáo án..."},
	}
	s.inputs[inputTopic] = components.NewTextInput("Chủ đề / Tên bài *", "Ví dụ: Khám phá màu sắc", 200)
	s.inputs[inputTeacher] = components.NewTextInput("Giáo viên", "", 100)
	s.inputs[inputClass] = components.NewTextInput("Lớp", "", 100)
	s.inputs[inputSchool] = components.NewTextInput("Trường", "", 150)
	s.inputs[inputDate] = components.NewTextInput("Ngày dạy", "dd/mm/yyyy", 40)
	s.inputs[inputLocation] = components.NewTextInput("Địa điểm (Xã/Thành phố)", "", 100)
	s.inputs[inputNotes] = components.NewTextInput("Ghi chú thêm", "", 500)

	s.choices[choiceAge] = components.NewChoice("Độ tuổi", lessonplan.AgeGroups, lessonplan.DefaultAgeGroup)
	s.choices[choiceMethod] = components.NewChoice("Phương pháp", lessonplan.Methods, lessonplan.DefaultMethod)
	s.choices[choiceField] = components.NewChoice("Lĩnh vực phát triển", lessonplan.DevelopmentFields, lessonplan.DefaultDevelopmentField)
	return s
}

func (s *FormScreen) Init() tea.Cmd {
	return s.setFocus(0)
}

func (s *FormScreen) Title() string {
	return "New lesson plan"
}

func (s *FormScreen) CapturingInput() bool {
	return focusOrder[s.focus].kind == targetInput
}

func (s *FormScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next"},
		{Key: "←→", Description: "Change"},
		{Key: "Ctrl+S", Description: "Generate"},
		{Key: "Esc", Description: "Back"},
	}
}

// Params returns the generation parameters currently entered.
func (s *FormScreen) Params() lessonplan.GenerationParams {
	v := func(i int) string { return strings.TrimSpace(s.inputs[i].Value()) }
	return lessonplan.GenerationParams{
		Topic:            v(inputTopic),
		AgeGroup:         s.choices[choiceAge].Value(),
		Method:           s.choices[choiceMethod].Value(),
		DevelopmentField: s.choices[choiceField].Value(),
		TeacherName:      v(inputTeacher),
		ClassName:        v(inputClass),
		SchoolName:       v(inputSchool),
		TeachingDate:     v(inputDate),
		Location:         v(inputLocation),
		Notes:            v(inputNotes),
	}
}

func (s *FormScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case generatedMsg:
		s.busy = false
		if msg.err != nil {
			s.errMsg = generationMessage(msg.err)
			return s, nil
		}
		pv := preview.New(s.ctrl, s.exportDir, msg.res.Plan)
		if msg.res.Warning != nil {
			pv.SetWarning("Chưa lưu được vào lịch sử: " + msg.res.Warning.Error())
		}
		return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: pv} }

	case components.SpinnerTickMsg:
		if !s.busy {
			return s, nil
		}
		s.spinner = s.spinner.Advance()
		return s, s.spinner.Tick()

	case tea.KeyMsg:
		if s.busy {
			return s, nil
		}
		switch msg.String() {
		case "tab", "down":
			return s, s.setFocus((s.focus + 1) % len(focusOrder))
		case "shift+tab", "up":
			return s, s.setFocus((s.focus - 1 + len(focusOrder)) % len(focusOrder))
		case "ctrl+s":
			return s, s.submit()
		case "enter":
			if focusOrder[s.focus].kind == targetSubmit {
				return s, s.submit()
			}
			return s, s.setFocus((s.focus + 1) % len(focusOrder))
		}
	}

	if s.busy {
		return s, nil
	}

	t := focusOrder[s.focus]
	var cmd tea.Cmd
	switch t.kind {
	case targetInput:
		s.inputs[t.idx], cmd = s.inputs[t.idx].Update(msg)
	case targetChoice:
		s.choices[t.idx], cmd = s.choices[t.idx].Update(msg)
	}
	return s, cmd
}

func (s *FormScreen) setFocus(i int) tea.Cmd {
	for j := range s.inputs {
		s.inputs[j].Blur()
	}
	for j := range s.choices {
		s.choices[j].Blur()
	}
	s.focus = i
	t := focusOrder[i]
	switch t.kind {
	case targetInput:
		return s.inputs[t.idx].Focus()
	case targetChoice:
		s.choices[t.idx].Focus()
	}
	return nil
}

func (s *FormScreen) submit() tea.Cmd {
	params := s.Params()
	if !params.HasTopic() {
		s.errMsg = "Vui lòng nhập chủ đề bài dạy."
		return s.setFocus(0)
	}
	if s.ctrl.Busy() {
		s.errMsg = session.ErrBusy.Error()
		return nil
	}
	s.errMsg = ""
	s.busy = true
	ctrl := s.ctrl
	generate := func() tea.Msg {
		res, err := ctrl.Generate(context.Background(), params)
		return generatedMsg{res: res, err: err}
	}
	return tea.Batch(generate, s.spinner.Tick())
}

func (s *FormScreen) View(width, height int) string {
	fieldWidth := width - 8
	if fieldWidth > 60 {
		fieldWidth = 60
	}

	var blocks []string
	for _, t := range focusOrder {
		switch t.kind {
		case targetInput:
			s.inputs[t.idx].SetWidth(fieldWidth)
			blocks = append(blocks, s.inputs[t.idx].View())
		case targetChoice:
			blocks = append(blocks, s.choices[t.idx].View())
		case targetSubmit:
			btn := components.NewButton("Soạn giáo án", !s.busy)
			btn.Focused = focusOrder[s.focus].kind == targetSubmit
			blocks = append(blocks, btn.View())
		}
	}

	var cols string
	if layout.IsCompactWidth(width) {
		cols = strings.Join(blocks, "\n")
	} else {
		half := (len(blocks) + 1) / 2
		left := lipgloss.NewStyle().Width(width/2 - 2).Render(strings.Join(blocks[:half], "\n"))
		right := lipgloss.NewStyle().Width(width/2 - 2).Render(strings.Join(blocks[half:], "\n"))
		cols = lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	}

	var status string
	switch {
	case s.busy:
		status = s.spinner.View()
	case s.errMsg != "":
		status = theme.StatusError.Render(s.errMsg)
	}

	content := lipgloss.JoinVertical(lipgloss.Left, cols, "", status)
	return lipgloss.NewStyle().Padding(1, 2).MaxHeight(height).Render(content)
}

// generationMessage hides model failures behind a retry notice. The cause
// is already logged by the controller.
func generationMessage(err error) string {
	var genErr *planner.GenerationError
	if errors.As(err, &genErr) {
		return "Có lỗi xảy ra khi soạn bài. Vui lòng thử lại."
	}
	return err.Error()
}
