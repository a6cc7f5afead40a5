package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/lessonplan/internal/session"
)

var refineCmd = &cobra.Command{
	Use:   "refine <id>",
	Short: "Refine a saved lesson plan with feedback",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		feedback, _ := cmd.Flags().GetString("feedback")

		d, err := setup(cmd)
		if err != nil {
			return err
		}
		defer d.Close()
		if err := d.requireLLM(); err != nil {
			return err
		}

		if err := openPlan(cmd, d, args[0]); err != nil {
			return err
		}
		res, err := d.ctrl.Refine(cmd.Context(), feedback)
		if err != nil {
			return err
		}
		reportResult(cmd, res)
		return exportRequested(cmd, cmd.OutOrStdout(), d, exportDir(cmd, d))
	},
}

// openPlan loads history and makes the plan with id current.
func openPlan(cmd *cobra.Command, d *deps, id string) error {
	if err := d.ctrl.Reload(cmd.Context()); err != nil {
		return fmt.Errorf("load history: %w", err)
	}
	if _, err := d.ctrl.Open(id); err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return fmt.Errorf("plan %q not found in history", id)
		}
		return err
	}
	return nil
}

func init() {
	refineCmd.Flags().StringP("feedback", "f", "", "What to change (required)")
	_ = refineCmd.MarkFlagRequired("feedback")
	addExportFlags(refineCmd)
}
