package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/studycentre/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "studycentre",
	Short: "Health and safety courses with quizzes and mock exams",
	Long:  "Study Centre: read course sections, answer knowledge checks, take section quizzes and timed mock exams in the terminal.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, nil)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides STUDYCENTRE_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default studycentre.yaml)")
	rootCmd.PersistentFlags().String("content", "", "Directory of course JSON documents (default: built-in courses)")
	rootCmd.PersistentFlags().String("learner", "", "Learner name (skips the welcome screen)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(coursesCmd)
	rootCmd.AddCommand(examsCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then db_path from config, then STUDYCENTRE_DB and the default XDG path.
func resolveDBPath(cmd *cobra.Command, configured string) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if configured != "" {
		return configured, store.EnsureDir(configured)
	}
	return store.DefaultDBPath()
}
