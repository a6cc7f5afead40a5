package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/lessonplan/internal/export"
	"github.com/abhisek/lessonplan/internal/lessonplan"
	"github.com/abhisek/lessonplan/internal/session"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a new lesson plan",
	Example: `  lessonplan generate --topic "Khám phá màu sắc" --age-group "Mẫu giáo nhỡ (4-5 tuổi)" --pdf
  lessonplan generate --topic "Con vật nuôi" --method 5E --teacher "Nguyễn Thị Lan" --docx --out ./plans`,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := setup(cmd)
		if err != nil {
			return err
		}
		defer d.Close()
		if err := d.requireLLM(); err != nil {
			return err
		}

		flag := func(name string) string {
			v, _ := cmd.Flags().GetString(name)
			return strings.TrimSpace(v)
		}
		params := lessonplan.GenerationParams{
			Topic:            flag("topic"),
			AgeGroup:         flag("age-group"),
			Method:           flag("method"),
			DevelopmentField: flag("field"),
			TeacherName:      flag("teacher"),
			ClassName:        flag("class"),
			SchoolName:       flag("school"),
			TeachingDate:     flag("date"),
			Location:         flag("location"),
			Notes:            flag("notes"),
		}

		res, err := d.ctrl.Generate(cmd.Context(), params)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		reportResult(cmd, res)
		return exportRequested(cmd, out, d, exportDir(cmd, d))
	},
}

// reportResult prints the outcome of a generate or refine.
func reportResult(cmd *cobra.Command, res session.Result) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s  %s\n", res.Plan.ID, res.Plan.Title)
	fmt.Fprintf(out, "  %d objectives, %d procedure steps\n",
		len(res.Plan.Objectives.Knowledge)+len(res.Plan.Objectives.Skills)+len(res.Plan.Objectives.Attitude),
		len(res.Plan.Procedure))
	if res.Warning != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "warning: plan not saved to history:", res.Warning)
	}
}

// exportRequested writes the current plan in the formats selected by
// --pdf and --docx.
func exportRequested(cmd *cobra.Command, out io.Writer, d *deps, dir string) error {
	var formats []export.Format
	if v, _ := cmd.Flags().GetBool("pdf"); v {
		formats = append(formats, export.FormatPDF)
	}
	if v, _ := cmd.Flags().GetBool("docx"); v {
		formats = append(formats, export.FormatWord)
	}
	for _, f := range formats {
		path, err := d.ctrl.Export(dir, f)
		if err != nil {
			return fmt.Errorf("export %s: %w", f, err)
		}
		fmt.Fprintln(out, "wrote", path)
	}
	return nil
}

// exportDir returns --out when set, else the configured export directory.
func exportDir(cmd *cobra.Command, d *deps) string {
	if v, _ := cmd.Flags().GetString("out"); v != "" {
		return v
	}
	return d.cfg.ExportDir
}

func addExportFlags(c *cobra.Command) {
	c.Flags().Bool("pdf", false, "Export the plan as PDF")
	c.Flags().Bool("docx", false, "Export the plan as Word (.docx)")
	c.Flags().StringP("out", "o", "", "Directory for exported files (default: export_dir from config)")
}

func init() {
	f := generateCmd.Flags()
	f.StringP("topic", "t", "", "Lesson topic (required)")
	f.String("age-group", lessonplan.DefaultAgeGroup, "Age group")
	f.String("method", lessonplan.DefaultMethod, "Teaching method, e.g. STEAM, 5E, Montessori")
	f.String("field", lessonplan.DefaultDevelopmentField, "Development field")
	f.String("teacher", "", "Teacher name")
	f.String("class", "", "Class name")
	f.String("school", "", "School name")
	f.String("date", "", "Teaching date")
	f.String("location", "", "Commune or city, used in the signature line")
	f.String("notes", "", "Additional notes for the model")
	_ = generateCmd.MarkFlagRequired("topic")
	addExportFlags(generateCmd)
}
