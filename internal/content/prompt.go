package content

import (
	"fmt"
	"strings"

	"github.com/abhisek/venusquiz/internal/config"
	"github.com/abhisek/venusquiz/internal/quiz"
)

func buildSystemPrompt(p config.Profile) string {
	return fmt.Sprintf(`You write recruitment tests for the %s community. Candidates are applying for the %s role.

Rules:
- Write every question, option and explanation in %s.
- Each question has exactly 4 options and exactly one correct answer.
- correctAnswer is the 0-based index of the correct option.
- difficulty is one of: easy, medium, hard.`, p.Brand, p.Role, p.Language)
}

// buildGenerationMessage asks for a full question set shaped by the profile.
func buildGenerationMessage(p config.Profile) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Generate %d unique, professional %s questions for a %q admin recruitment test.\n", p.Questions.Count, p.Topic, p.Brand)
	fmt.Fprintf(&b, "The user is applying for a %s role.\n", p.Role)

	b.WriteString("\nRequirements:\n")
	fmt.Fprintf(&b, "- Language: %s.\n", p.Language)
	if mix := p.Questions; mix.Easy+mix.Medium+mix.Hard > 0 {
		fmt.Fprintf(&b, "- Difficulty: Progressive (%d Easy, %d Medium, %d Hard).\n", mix.Easy, mix.Medium, mix.Hard)
	}
	b.WriteString("- Options: 4 options per question.\n")
	for _, s := range p.Style {
		fmt.Fprintf(&b, "- %s\n", s)
	}

	return b.String()
}

const evaluationSystemPrompt = `You are the head of staff reviewing a recruitment test. Reply with plain prose only.`

// buildEvaluationMessage asks for feedback on a finished attempt.
func buildEvaluationMessage(p config.Profile, result quiz.QuizResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Analyze a %s Management Quiz result.\n", p.Brand)
	fmt.Fprintf(&b, "User scored %d out of %d.\n", result.Score, result.TotalQuestions)
	fmt.Fprintf(&b, "Provide a professional, motivating summary in %s about their management skills as if you are a head of staff.\n", p.Language)
	b.WriteString("Include a tip for improvement. Keep it concise, high-end, and inspiring.")

	return b.String()
}
