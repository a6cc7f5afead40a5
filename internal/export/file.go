package export

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/abhisek/lessonplan/internal/lessonplan"
)

// Format is an export file format.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatWord Format = "docx"
)

// ParseFormat accepts "pdf", "docx" or "word", case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pdf":
		return FormatPDF, nil
	case "docx", "word", "doc":
		return FormatWord, nil
	default:
		return "", fmt.Errorf("unknown export format %q (want pdf or docx)", s)
	}
}

// Render produces the document bytes for the given format.
func Render(plan lessonplan.LessonPlan, format Format, now time.Time) ([]byte, error) {
	switch format {
	case FormatPDF:
		return PDF(plan, now)
	case FormatWord:
		return Word(plan, now)
	default:
		return nil, fmt.Errorf("unknown export format %q", format)
	}
}

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	unsafeChars   = regexp.MustCompile(`[/\\:*?"<>|\x00-\x1f]`)
)

// FileName returns the download name for a plan: "Giao_an_" followed by
// the title with whitespace runs replaced by underscores.
func FileName(title string, format Format) string {
	name := strings.TrimSpace(title)
	name = unsafeChars.ReplaceAllString(name, "_")
	name = whitespaceRun.ReplaceAllString(name, "_")
	if name == "" {
		name = "untitled"
	}
	return "Giao_an_" + name + "." + string(format)
}

// WriteFile renders plan into dir and returns the written path. The file
// appears atomically; an existing file with the same name is replaced.
func WriteFile(dir string, plan lessonplan.LessonPlan, format Format, now time.Time) (string, error) {
	data, err := Render(plan, format, now)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".lessonplan-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write export: %w", err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return "", fmt.Errorf("chmod export: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close export: %w", err)
	}

	path := filepath.Join(dir, FileName(plan.Title, format))
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("rename export: %w", err)
	}
	return path, nil
}
