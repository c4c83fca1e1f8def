package grading

import (
	"fmt"
	"strings"

	"github.com/abhisek/twotor/internal/content"
)

// Feedback builds one descriptive block per question: the prompt, the
// numbered choices, what was selected and the correct answer. Choice numbers
// are 1-based as shown to students.
func Feedback(quiz *content.Quiz, answers []int) []string {
	lines := make([]string, 0, len(quiz.Questions))
	for i, q := range quiz.Questions {
		chosen := -1
		if i < len(answers) {
			chosen = answers[i]
		}

		options := make([]string, len(q.Choices))
		for j, c := range q.Choices {
			options[j] = fmt.Sprintf("%d. %s", j+1, c)
		}

		verdict := "Incorrect"
		if chosen == q.CorrectChoice {
			verdict = "Correct"
		}

		var b strings.Builder
		fmt.Fprintf(&b, "Q%d: %s\n", i+1, q.Prompt)
		fmt.Fprintf(&b, "Choices: %s\n", strings.Join(options, "; "))
		fmt.Fprintf(&b, "Selected: %d - %s (Answer: %d)\n", chosen+1, verdict, q.CorrectChoice+1)
		lines = append(lines, b.String())
	}
	return lines
}
