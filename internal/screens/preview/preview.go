// Package preview shows a lesson plan and lets the teacher refine and
// export it.
package preview

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lessonplan/internal/export"
	"github.com/abhisek/lessonplan/internal/lessonplan"
	"github.com/abhisek/lessonplan/internal/planner"
	"github.com/abhisek/lessonplan/internal/screen"
	"github.com/abhisek/lessonplan/internal/session"
	"github.com/abhisek/lessonplan/internal/ui/components"
	"github.com/abhisek/lessonplan/internal/ui/layout"
	"github.com/abhisek/lessonplan/internal/ui/theme"
)

type statusKind int

const (
	statusNone statusKind = iota
	statusOK
	statusWarn
	statusError
)

type refinedMsg struct {
	res session.Result
	err error
}

type exportedMsg struct {
	path string
	err  error
}

// PreviewScreen renders the current plan.
type PreviewScreen struct {
	ctrl      *session.Controller
	exportDir string
	plan      lessonplan.LessonPlan

	feedback components.TextInput
	spinner  components.Spinner
	busy     bool

	status     string
	statusKind statusKind

	offset     int
	bodyHeight int
	lineCount  int
}

var _ screen.Screen = (*PreviewScreen)(nil)
var _ screen.KeyHintProvider = (*PreviewScreen)(nil)
var _ screen.InputCapturer = (*PreviewScreen)(nil)

// New creates a PreviewScreen for plan, which must be the controller's
// current plan.
func New(ctrl *session.Controller, exportDir string, plan lessonplan.LessonPlan) *PreviewScreen {
	return &PreviewScreen{
		ctrl:      ctrl,
		exportDir: exportDir,
		plan:      plan,
		feedback:  components.NewTextInput("Yêu cầu chỉnh sửa", "Ví dụ: Thêm một trò chơi vận động", 500),
		spinner:   components.Spinner{Label: "Đang cập nhật giáo án..."},
	}
}

// SetWarning shows a warning in the status line.
func (s *PreviewScreen) SetWarning(msg string) {
	s.status, s.statusKind = msg, statusWarn
}

// Plan returns the plan on display.
func (s *PreviewScreen) Plan() lessonplan.LessonPlan {
	return s.plan
}

func (s *PreviewScreen) Init() tea.Cmd {
	return s.feedback.Focus()
}

func (s *PreviewScreen) Title() string {
	return "Preview"
}

func (s *PreviewScreen) CapturingInput() bool {
	return true
}

func (s *PreviewScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Enter", Description: "Refine"},
		{Key: "Ctrl+P", Description: "PDF"},
		{Key: "Ctrl+W", Description: "Word"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *PreviewScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case refinedMsg:
		s.busy = false
		if msg.err != nil {
			s.status, s.statusKind = refinementMessage(msg.err), statusError
			return s, nil
		}
		s.plan = msg.res.Plan
		s.feedback.Reset()
		if msg.res.Warning != nil {
			s.SetWarning("Chưa lưu được vào lịch sử: " + msg.res.Warning.Error())
		} else {
			s.status, s.statusKind = "Đã cập nhật giáo án.", statusOK
		}
		return s, nil

	case exportedMsg:
		if msg.err != nil {
			s.status, s.statusKind = "Xuất file thất bại: "+msg.err.Error(), statusError
		} else {
			s.status, s.statusKind = "Đã lưu "+msg.path, statusOK
		}
		return s, nil

	case components.SpinnerTickMsg:
		if !s.busy {
			return s, nil
		}
		s.spinner = s.spinner.Advance()
		return s, s.spinner.Tick()

	case tea.KeyMsg:
		switch msg.String() {
		case "up":
			s.scroll(-1)
			return s, nil
		case "down":
			s.scroll(1)
			return s, nil
		case "pgup":
			s.scroll(-s.bodyHeight)
			return s, nil
		case "pgdown":
			s.scroll(s.bodyHeight)
			return s, nil
		case "ctrl+p":
			return s, s.export(export.FormatPDF)
		case "ctrl+w":
			return s, s.export(export.FormatWord)
		case "enter":
			return s, s.refine()
		}
	}

	if s.busy {
		return s, nil
	}
	var cmd tea.Cmd
	s.feedback, cmd = s.feedback.Update(msg)
	return s, cmd
}

func (s *PreviewScreen) scroll(delta int) {
	s.offset += delta
	if limit := s.lineCount - s.bodyHeight; s.offset > limit {
		s.offset = limit
	}
	if s.offset < 0 {
		s.offset = 0
	}
}

func (s *PreviewScreen) refine() tea.Cmd {
	if s.busy || s.ctrl.Busy() {
		return nil
	}
	feedback := strings.TrimSpace(s.feedback.Value())
	if feedback == "" {
		s.status, s.statusKind = "Vui lòng nhập yêu cầu chỉnh sửa.", statusError
		return nil
	}
	s.busy = true
	s.status, s.statusKind = "", statusNone
	ctrl := s.ctrl
	run := func() tea.Msg {
		res, err := ctrl.Refine(context.Background(), feedback)
		return refinedMsg{res: res, err: err}
	}
	return tea.Batch(run, s.spinner.Tick())
}

func (s *PreviewScreen) export(format export.Format) tea.Cmd {
	ctrl, dir := s.ctrl, s.exportDir
	return func() tea.Msg {
		path, err := ctrl.Export(dir, format)
		return exportedMsg{path: path, err: err}
	}
}

func (s *PreviewScreen) View(width, height int) string {
	var bottom strings.Builder
	switch {
	case s.busy:
		bottom.WriteString(s.spinner.View())
	case s.statusKind == statusOK:
		bottom.WriteString(theme.StatusOK.Render(s.status))
	case s.statusKind == statusWarn:
		bottom.WriteString(theme.StatusWarn.Render(s.status))
	case s.statusKind == statusError:
		bottom.WriteString(theme.StatusError.Render(s.status))
	}
	bottom.WriteString("\n")
	s.feedback.SetWidth(width - 8)
	bottom.WriteString(s.feedback.View())
	bottomView := lipgloss.NewStyle().Padding(0, 2).Render(bottom.String())

	s.bodyHeight = height - lipgloss.Height(bottomView) - 1
	if s.bodyHeight < 1 {
		s.bodyHeight = 1
	}

	lines := strings.Split(RenderPlan(s.plan, width-4), "\n")
	s.lineCount = len(lines)
	s.scroll(0)
	end := s.offset + s.bodyHeight
	if end > len(lines) {
		end = len(lines)
	}
	body := lipgloss.NewStyle().Padding(0, 2).Height(s.bodyHeight).
		Render(strings.Join(lines[s.offset:end], "\n"))

	return lipgloss.JoinVertical(lipgloss.Left, body, "", bottomView)
}

// RenderPlan lays out a plan as styled text wrapped to width.
func RenderPlan(p lessonplan.LessonPlan, width int) string {
	if width < 20 {
		width = 20
	}
	wrap := lipgloss.NewStyle().Width(width)

	var b strings.Builder
	b.WriteString(theme.Title.Render(wrap.Render(strings.ToUpper(p.Title))))
	b.WriteString("\n\n")

	meta := []struct{ label, value string }{
		{"Độ tuổi", p.AgeGroup},
		{"Phương pháp", p.Method},
		{"Lĩnh vực", p.DevelopmentField},
		{"Giáo viên", p.TeacherName},
		{"Lớp", p.ClassName},
		{"Trường", p.SchoolName},
		{"Ngày dạy", p.TeachingDate},
		{"Địa điểm", p.Location},
	}
	for _, m := range meta {
		if m.value == "" {
			continue
		}
		b.WriteString(theme.Label.Render(m.label+": ") + theme.Body.Render(m.value) + "\n")
	}

	list := func(label string, items []string) {
		b.WriteString(theme.Label.Render(label) + "\n")
		if len(items) == 0 {
			b.WriteString(theme.Hint.Render("  ...") + "\n")
		}
		for _, it := range items {
			b.WriteString(theme.Body.Render(wrap.Render("  • "+it)) + "\n")
		}
	}

	b.WriteString("\n" + theme.Heading.Render("I. MỤC TIÊU") + "\n")
	list("Kiến thức", p.Objectives.Knowledge)
	list("Kỹ năng", p.Objectives.Skills)
	list("Thái độ", p.Objectives.Attitude)

	b.WriteString("\n" + theme.Heading.Render("II. CHUẨN BỊ") + "\n")
	list("Đồ dùng của cô", p.Preparation.Teacher)
	list("Đồ dùng của trẻ", p.Preparation.Students)

	b.WriteString("\n" + theme.Heading.Render("III. TIẾN TRÌNH HOẠT ĐỘNG") + "\n")
	for i, st := range p.Procedure {
		b.WriteString(theme.Subtitle.Render(fmt.Sprintf("%d. %s", i+1, st.Step)) + "\n")
		b.WriteString(theme.Label.Render("  Hoạt động của Cô") + "\n")
		b.WriteString(theme.Body.Render(wrap.Render("    "+st.TeacherActivity)) + "\n")
		b.WriteString(theme.Label.Render("  Hoạt động của Trẻ") + "\n")
		b.WriteString(theme.Body.Render(wrap.Render("    "+st.StudentActivity)) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// refinementMessage hides model failures behind a retry notice. The cause
// is already logged by the controller.
func refinementMessage(err error) string {
	var refErr *planner.RefinementError
	if errors.As(err, &refErr) {
		return "Có lỗi xảy ra khi điều chỉnh giáo án. Vui lòng thử lại."
	}
	return err.Error()
}
