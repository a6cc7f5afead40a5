package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/lessonplan/internal/export"
)

var exportCmd = &cobra.Command{
	Use:   "export <id>",
	Short: "Export a saved lesson plan as PDF or Word",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("format")
		format, err := export.ParseFormat(name)
		if err != nil {
			return err
		}

		d, err := setup(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		if err := openPlan(cmd, d, args[0]); err != nil {
			return err
		}
		path, err := d.ctrl.Export(exportDir(cmd, d), format)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "wrote", path)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringP("format", "f", "pdf", "Output format: pdf or docx")
	exportCmd.Flags().StringP("out", "o", "", "Directory for the exported file (default: export_dir from config)")
}
