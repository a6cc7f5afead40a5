package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/lessonplan/internal/config"
	"github.com/abhisek/lessonplan/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "lessonplan",
	Short: "AI lesson plans for preschool teachers",
	Long: "lessonplan drafts structured preschool lesson plans with an LLM, refines them\n" +
		"from teacher feedback, keeps a local history and exports PDF and Word documents.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides LESSONPLAN_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to YAML config file (overrides LESSONPLAN_CONFIG env var)")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(refineCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the config file named by --config, or the default one.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	return config.Load(path)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then the configured path (file or LESSONPLAN_DB), then the default XDG path.
func resolveDBPath(cmd *cobra.Command, cfg config.Config) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg.DB != "" {
		return cfg.DB, store.EnsureDir(cfg.DB)
	}
	return store.DefaultDBPath()
}
