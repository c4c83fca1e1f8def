package cmd

import (
	"github.com/abhisek/twotor/internal/tutoring"
	"github.com/spf13/cobra"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show the student or teacher dashboard for a user",
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, _ := cmd.Flags().GetString("user")
		return withEngine(cmd, func(sys *tutoring.System) (any, error) {
			return sys.Dashboard(userID)
		})
	},
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show a student's profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, _ := cmd.Flags().GetString("user")
		return withEngine(cmd, func(sys *tutoring.System) (any, error) {
			return sys.StudentProfile(userID)
		})
	},
}

var navCmd = &cobra.Command{
	Use:   "nav",
	Short: "List the navigation sections",
	RunE: func(cmd *cobra.Command, args []string) error {
		return printJSON(cmd.OutOrStdout(), tutoring.Navigation)
	},
}

func init() {
	dashboardCmd.Flags().String("user", "", "User id")
	_ = dashboardCmd.MarkFlagRequired("user")

	profileCmd.Flags().String("user", "", "Student user id")
	_ = profileCmd.MarkFlagRequired("user")
}
