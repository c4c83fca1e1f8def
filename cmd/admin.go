package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/abhisek/twotor/internal/policy"
	"github.com/abhisek/twotor/internal/tutoring"
	"github.com/spf13/cobra"
)

var exportGradesCmd = &cobra.Command{
	Use:   "export-grades",
	Short: "Export the gradebook as CSV or XLSX",
	RunE: func(cmd *cobra.Command, args []string) error {
		dest, _ := cmd.Flags().GetString("dest")
		return withEngine(cmd, func(sys *tutoring.System) (any, error) {
			n, err := sys.ExportGrades(dest)
			if err != nil {
				return nil, fmt.Errorf("export grades: %w", err)
			}
			abs, err := filepath.Abs(dest)
			if err != nil {
				abs = dest
			}
			return map[string]any{"path": abs, "rows": n}, nil
		})
	},
}

var validateUsernameCmd = &cobra.Command{
	Use:   "validate-username <name>",
	Short: "Check a username against the naming policy",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res := policy.NewUsernamePolicy(nil).Validate(args[0])
		return printJSON(cmd.OutOrStdout(), res)
	},
}

var reloadCmd = &cobra.Command{
	Use:   "reload",
	Short: "Reload a student's mastery from the database",
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, _ := cmd.Flags().GetString("user")
		return withEngine(cmd, func(sys *tutoring.System) (any, error) {
			return sys.ReloadMasteryFromStore(cmd.Context(), userID)
		})
	},
}

var rebuildCmd = &cobra.Command{
	Use:   "rebuild",
	Short: "Recompute a student's mastery from their attempt and lesson history",
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, _ := cmd.Flags().GetString("user")
		return withEngine(cmd, func(sys *tutoring.System) (any, error) {
			return sys.RebuildMastery(cmd.Context(), userID)
		})
	},
}

func init() {
	exportGradesCmd.Flags().String("dest", "gradebook.csv", "Output file; .xlsx writes a spreadsheet")

	reloadCmd.Flags().String("user", "", "Student user id")
	_ = reloadCmd.MarkFlagRequired("user")

	rebuildCmd.Flags().String("user", "", "Student user id")
	_ = rebuildCmd.MarkFlagRequired("user")
}
