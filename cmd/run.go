package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/lessonplan/internal/app"
)

// runApp builds dependencies and launches the TUI.
func runApp(cmd *cobra.Command) error {
	d, err := setup(cmd)
	if err != nil {
		return err
	}
	defer d.Close()

	status := d.model
	if d.llmErr != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", d.llmErr)
		fmt.Fprintln(os.Stderr, "Generation and refinement will be unavailable.")
		status = "offline"
	}

	return app.Run(app.Options{
		Controller: d.ctrl,
		ExportDir:  d.cfg.ExportDir,
		Status:     status,
	})
}
