package quiz

import (
	"fmt"
	"strings"
)

// OptionCount is the number of options every question carries.
const OptionCount = 4

// Difficulty is the ordered difficulty of a question.
type Difficulty int

const (
	DifficultyEasy Difficulty = iota
	DifficultyMedium
	DifficultyHard
)

// String returns the canonical wire name of the difficulty.
func (d Difficulty) String() string {
	switch d {
	case DifficultyEasy:
		return "easy"
	case DifficultyMedium:
		return "medium"
	case DifficultyHard:
		return "hard"
	default:
		return fmt.Sprintf("difficulty(%d)", int(d))
	}
}

// Valid reports whether d is one of the three known levels.
func (d Difficulty) Valid() bool {
	return d >= DifficultyEasy && d <= DifficultyHard
}

// DifficultyLabels maps each difficulty to a display label.
type DifficultyLabels struct {
	Easy   string `yaml:"easy" json:"easy"`
	Medium string `yaml:"medium" json:"medium"`
	Hard   string `yaml:"hard" json:"hard"`
}

// Label returns the display label for d, falling back to the wire name.
func (l DifficultyLabels) Label(d Difficulty) string {
	var s string
	switch d {
	case DifficultyEasy:
		s = l.Easy
	case DifficultyMedium:
		s = l.Medium
	case DifficultyHard:
		s = l.Hard
	}
	if s == "" {
		return d.String()
	}
	return s
}

// ParseDifficulty accepts the wire names and, when given, the display labels.
func ParseDifficulty(s string, labels DifficultyLabels) (Difficulty, error) {
	v := strings.TrimSpace(s)
	switch {
	case strings.EqualFold(v, "easy"), labels.Easy != "" && v == labels.Easy:
		return DifficultyEasy, nil
	case strings.EqualFold(v, "medium"), labels.Medium != "" && v == labels.Medium:
		return DifficultyMedium, nil
	case strings.EqualFold(v, "hard"), labels.Hard != "" && v == labels.Hard:
		return DifficultyHard, nil
	}
	return 0, fmt.Errorf("unknown difficulty %q", s)
}

// Question is a single multiple-choice question. Immutable once generated.
type Question struct {
	ID            int
	Difficulty    Difficulty
	Text          string
	Options       [OptionCount]string
	CorrectAnswer int
	Explanation   string
}

// IsCorrect reports whether option is the correct answer.
func (q Question) IsCorrect(option int) bool {
	return option == q.CorrectAnswer
}

// UserResponse records the answer given to one question.
type UserResponse struct {
	QuestionID     int
	SelectedOption int
	IsCorrect      bool
}

// QuizResult is the scored outcome of a completed attempt.
type QuizResult struct {
	Score          int
	TotalQuestions int
	Responses      []UserResponse
}

// NewResult scores responses against a question set of size total.
func NewResult(total int, responses []UserResponse) QuizResult {
	score := 0
	for _, r := range responses {
		if r.IsCorrect {
			score++
		}
	}
	return QuizResult{
		Score:          score,
		TotalQuestions: total,
		Responses:      append([]UserResponse(nil), responses...),
	}
}

// Percent returns the score as a fraction in [0,1].
func (r QuizResult) Percent() float64 {
	if r.TotalQuestions == 0 {
		return 0
	}
	return float64(r.Score) / float64(r.TotalQuestions)
}

// ResponseFor returns the response recorded for questionID.
func (r QuizResult) ResponseFor(questionID int) (UserResponse, bool) {
	for _, resp := range r.Responses {
		if resp.QuestionID == questionID {
			return resp, true
		}
	}
	return UserResponse{}, false
}
