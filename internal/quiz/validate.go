package quiz

import "strings"

// ValidateQuestionSet checks a generated set before it may enter session state.
// It requires at least one question, unique ids, known difficulties, non-empty
// text and explanation, exactly four non-empty options and an in-range answer.
func ValidateQuestionSet(questions []Question) error {
	if len(questions) == 0 {
		return &ValidationError{Index: -1, Message: "no questions"}
	}

	seen := make(map[int]bool, len(questions))
	for i, q := range questions {
		if seen[q.ID] {
			return &ValidationError{Index: i, Message: "duplicate id"}
		}
		seen[q.ID] = true

		if !q.Difficulty.Valid() {
			return &ValidationError{Index: i, Message: "unknown difficulty"}
		}
		if strings.TrimSpace(q.Text) == "" {
			return &ValidationError{Index: i, Message: "text is empty"}
		}
		if strings.TrimSpace(q.Explanation) == "" {
			return &ValidationError{Index: i, Message: "explanation is empty"}
		}
		for j, opt := range q.Options {
			if strings.TrimSpace(opt) == "" {
				return &ValidationError{Index: i, Message: "option " + string(rune('A'+j)) + " is empty"}
			}
		}
		if q.CorrectAnswer < 0 || q.CorrectAnswer >= OptionCount {
			return &ValidationError{Index: i, Message: "correct answer out of range"}
		}
	}
	return nil
}
