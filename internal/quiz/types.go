// Package quiz turns free-form model output into typed quiz questions
// and scores submitted answers.
package quiz

// QuestionType is the closed set of supported question kinds. Adding a
// kind requires touching every switch over this type.
type QuestionType string

const (
	TypeMultipleChoice QuestionType = "multiple-choice"
	TypeTrueFalse      QuestionType = "true-false"
	TypeShortAnswer    QuestionType = "short-answer"
)

// Difficulty is the model's difficulty label for a question.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Question is a quiz question that passed validation and is safe to
// persist and display.
//
// Invariants: for multiple-choice, Options holds exactly 4 unique
// strings and CorrectAnswer is one of them. For true-false, Options is
// always ["True", "False"] and CorrectAnswer is one of those. For
// short-answer, Options is nil.
type Question struct {
	Question      string       `json:"question"`
	Type          QuestionType `json:"type"`
	Options       []string     `json:"options,omitempty"`
	CorrectAnswer string       `json:"correct_answer"`
	Explanation   string       `json:"explanation,omitempty"`
	Difficulty    Difficulty   `json:"difficulty"`
}
