package cmd

import (
	"github.com/abhisek/twotor/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "twotor",
	Short:        "Mastery tracking and score forecasting for tutored courses",
	Long:         "TwoTor tracks each learner's skill mastery across quizzes and lessons and forecasts their next quiz score.",
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Path to YAML config file")
	pf.String("db", "", "Path to SQLite database file (overrides TWOTOR_DB env var)")
	pf.String("content", "", "Path to course content JSON (overrides TWOTOR_CONTENT env var)")
	pf.String("log", "", "Log mode: dev, prod or off (overrides TWOTOR_LOG env var)")

	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(listQuizzesCmd)
	rootCmd.AddCommand(listLessonsCmd)
	rootCmd.AddCommand(takeQuizCmd)
	rootCmd.AddCommand(lessonCmd)
	rootCmd.AddCommand(predictCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(requestHelpCmd)
	rootCmd.AddCommand(exportGradesCmd)
	rootCmd.AddCommand(validateUsernameCmd)
	rootCmd.AddCommand(navCmd)
	rootCmd.AddCommand(reloadCmd)
	rootCmd.AddCommand(rebuildCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then the config file or TWOTOR_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command, configured string) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if configured != "" {
		return configured, store.EnsureDir(configured)
	}
	return store.DefaultDBPath()
}
