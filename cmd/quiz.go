package cmd

import (
	"fmt"

	"github.com/abhisek/twotor/internal/tutoring"
	"github.com/spf13/cobra"
)

var listQuizzesCmd = &cobra.Command{
	Use:   "list-quizzes",
	Short: "List available quizzes",
	RunE: func(cmd *cobra.Command, args []string) error {
		gradedOnly, _ := cmd.Flags().GetBool("graded-only")
		return withEngine(cmd, func(sys *tutoring.System) (any, error) {
			return sys.ListQuizzes(gradedOnly), nil
		})
	},
}

var takeQuizCmd = &cobra.Command{
	Use:   "take-quiz",
	Short: "Submit answers to a quiz and show the graded result",
	Long: `Submit answers to a quiz. Answers are 1-based choice numbers in question
order, as shown to students, e.g. --answers 2,3,1.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, _ := cmd.Flags().GetString("user")
		quizID, _ := cmd.Flags().GetString("quiz")
		shown, _ := cmd.Flags().GetIntSlice("answers")
		seconds, _ := cmd.Flags().GetInt("time-seconds")
		if seconds < 0 {
			return fmt.Errorf("--time-seconds must not be negative")
		}

		answers := make([]int, len(shown))
		for i, a := range shown {
			answers[i] = a - 1
		}
		return withEngine(cmd, func(sys *tutoring.System) (any, error) {
			return sys.GradeQuiz(cmd.Context(), userID, quizID, answers, seconds)
		})
	},
}

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Forecast a student's next quiz score",
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, _ := cmd.Flags().GetString("user")
		return withEngine(cmd, func(sys *tutoring.System) (any, error) {
			score, err := sys.PredictNextScore(userID)
			if err != nil {
				return nil, err
			}
			return map[string]any{"user_id": userID, "predicted_next_score": score}, nil
		})
	},
}

func init() {
	listQuizzesCmd.Flags().Bool("graded-only", false, "Only list graded quizzes")

	f := takeQuizCmd.Flags()
	f.String("user", "", "Student user id")
	f.String("quiz", "", "Quiz id")
	f.IntSlice("answers", nil, "Comma-separated 1-based choice numbers, one per question")
	f.Int("time-seconds", 0, "Time taken in seconds")
	_ = takeQuizCmd.MarkFlagRequired("user")
	_ = takeQuizCmd.MarkFlagRequired("quiz")
	_ = takeQuizCmd.MarkFlagRequired("answers")

	predictCmd.Flags().String("user", "", "Student user id")
	_ = predictCmd.MarkFlagRequired("user")
}
