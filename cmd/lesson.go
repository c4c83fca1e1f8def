package cmd

import (
	"github.com/abhisek/twotor/internal/tutoring"
	"github.com/spf13/cobra"
)

var listLessonsCmd = &cobra.Command{
	Use:   "list-lessons",
	Short: "List available lessons",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEngine(cmd, func(sys *tutoring.System) (any, error) {
			return sys.ListLessons(), nil
		})
	},
}

var lessonCmd = &cobra.Command{
	Use:   "lesson",
	Short: "Record time a student spent on a lesson",
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, _ := cmd.Flags().GetString("user")
		lessonID, _ := cmd.Flags().GetString("lesson")
		minutes, _ := cmd.Flags().GetInt("minutes")
		return withEngine(cmd, func(sys *tutoring.System) (any, error) {
			return sys.RecordLessonParticipation(cmd.Context(), userID, lessonID, minutes)
		})
	},
}

var requestHelpCmd = &cobra.Command{
	Use:   "request-help",
	Short: "Ask for help by appointment or on an assignment",
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, _ := cmd.Flags().GetString("user")
		channel, _ := cmd.Flags().GetString("channel")
		question, _ := cmd.Flags().GetString("question")
		return withEngine(cmd, func(sys *tutoring.System) (any, error) {
			return sys.RequestHelp(cmd.Context(), userID, channel, question)
		})
	},
}

func init() {
	lessonCmd.Flags().String("user", "", "Student user id")
	lessonCmd.Flags().String("lesson", "", "Lesson id")
	lessonCmd.Flags().Int("minutes", 10, "Minutes spent on the lesson")
	_ = lessonCmd.MarkFlagRequired("user")
	_ = lessonCmd.MarkFlagRequired("lesson")

	requestHelpCmd.Flags().String("user", "", "User id")
	requestHelpCmd.Flags().String("channel", "assignment", "Help channel: appointment or assignment")
	requestHelpCmd.Flags().String("question", "", "What you need help with")
	_ = requestHelpCmd.MarkFlagRequired("user")
	_ = requestHelpCmd.MarkFlagRequired("question")
}
