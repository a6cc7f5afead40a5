package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/lessonplan/internal/lessonplan"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List, show and delete saved lesson plans",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved lesson plans, most recent first",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := setup(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		plans, err := d.history.LoadAll(cmd.Context())
		if err != nil {
			return fmt.Errorf("load history: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(plans) == 0 {
			fmt.Fprintln(out, "No lesson plans saved yet.")
			return nil
		}

		fmt.Fprintf(out, "%-36s  %-16s  %-24s  %s\n", "ID", "Created", "Age group", "Title")
		fmt.Fprintln(out, strings.Repeat("\u2500", 100))
		for _, p := range plans {
			fmt.Fprintf(out, "%-36s  %-16s  %-24s  %s\n",
				p.ID,
				p.CreatedAt.Local().Format("2006-01-02 15:04"),
				truncate(p.AgeGroup, 24),
				p.Title,
			)
		}
		return nil
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a saved lesson plan",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")

		d, err := setup(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		if err := openPlan(cmd, d, args[0]); err != nil {
			return err
		}
		plan, _ := d.ctrl.Current()

		out := cmd.OutOrStdout()
		if asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			enc.SetEscapeHTML(false)
			return enc.Encode(plan)
		}
		printPlan(out, plan)
		return nil
	},
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a saved lesson plan",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := setup(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		// Unknown IDs are not an error; there is nothing left to delete.
		if err := d.ctrl.Delete(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("delete: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "deleted", args[0])
		return nil
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all saved lesson plans, including unreadable history data",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := setup(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		if err := d.history.Clear(cmd.Context()); err != nil {
			return fmt.Errorf("clear history: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "history cleared")
		return nil
	},
}

// printPlan writes a plain-text rendering of plan.
func printPlan(w io.Writer, p lessonplan.LessonPlan) {
	fmt.Fprintln(w, strings.ToUpper(p.Title))
	fmt.Fprintln(w)
	for _, m := range []struct{ label, value string }{
		{"Độ tuổi", p.AgeGroup},
		{"Phương pháp", p.Method},
		{"Lĩnh vực", p.DevelopmentField},
		{"Giáo viên", p.TeacherName},
		{"Lớp", p.ClassName},
		{"Trường", p.SchoolName},
		{"Ngày dạy", p.TeachingDate},
		{"Địa điểm", p.Location},
	} {
		if m.value != "" {
			fmt.Fprintf(w, "%s: %s\n", m.label, m.value)
		}
	}

	list := func(label string, items []string) {
		fmt.Fprintf(w, "  %s:\n", label)
		for _, it := range items {
			fmt.Fprintf(w, "    - %s\n", it)
		}
	}

	fmt.Fprintln(w, "\nI. MỤC TIÊU")
	list("Kiến thức", p.Objectives.Knowledge)
	list("Kỹ năng", p.Objectives.Skills)
	list("Thái độ", p.Objectives.Attitude)

	fmt.Fprintln(w, "\nII. CHUẨN BỊ")
	list("Đồ dùng của cô", p.Preparation.Teacher)
	list("Đồ dùng của trẻ", p.Preparation.Students)

	fmt.Fprintln(w, "\nIII. TIẾN TRÌNH HOẠT ĐỘNG")
	for i, st := range p.Procedure {
		fmt.Fprintf(w, "  %d. %s\n", i+1, st.Step)
		fmt.Fprintf(w, "     Cô:  %s\n", st.TeacherActivity)
		fmt.Fprintf(w, "     Trẻ: %s\n", st.StudentActivity)
	}
}

func init() {
	historyShowCmd.Flags().Bool("json", false, "Print the stored JSON")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyDeleteCmd)
	historyCmd.AddCommand(historyClearCmd)
}
