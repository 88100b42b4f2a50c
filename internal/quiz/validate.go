package quiz

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// rawQuestion mirrors the wire shape of one model-produced question.
// Explanation is any because models sometimes emit null or a number
// there; only strings are kept.
type rawQuestion struct {
	Question      string   `json:"question"`
	Type          string   `json:"type"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   any      `json:"explanation"`
	Difficulty    string   `json:"difficulty"`
}

// Validate normalizes one raw question into a Question. A question that
// cannot be normalized is rejected whole; there is no partial
// acceptance. Callers drop rejected questions from the batch and log
// the reason.
func Validate(raw json.RawMessage) (*Question, error) {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if _, ok := parsed.(map[string]any); !ok {
		return nil, errors.New("question is not an object")
	}

	schema, err := compileQuestionSchema()
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(parsed); err != nil {
		return nil, fmt.Errorf("structural check failed: %w", err)
	}

	var rq rawQuestion
	if err := json.Unmarshal(raw, &rq); err != nil {
		return nil, fmt.Errorf("decode question: %w", err)
	}

	if strings.TrimSpace(rq.Question) == "" {
		return nil, errors.New("question text is blank")
	}
	if strings.TrimSpace(rq.CorrectAnswer) == "" {
		return nil, errors.New("correct_answer is blank")
	}

	q := &Question{
		Question:      rq.Question,
		Type:          QuestionType(rq.Type),
		CorrectAnswer: rq.CorrectAnswer,
		Difficulty:    Difficulty(rq.Difficulty),
	}
	if s, ok := rq.Explanation.(string); ok {
		q.Explanation = s
	}

	switch q.Type {
	case TypeMultipleChoice:
		if len(rq.Options) != 4 {
			return nil, fmt.Errorf("multiple-choice needs exactly 4 options, got %d", len(rq.Options))
		}
		seen := make(map[string]struct{}, 4)
		for _, opt := range rq.Options {
			if _, dup := seen[opt]; dup {
				return nil, fmt.Errorf("duplicate option %q", opt)
			}
			seen[opt] = struct{}{}
		}
		if _, ok := seen[rq.CorrectAnswer]; !ok {
			return nil, fmt.Errorf("correct_answer %q is not one of the options", rq.CorrectAnswer)
		}
		q.Options = rq.Options

	case TypeTrueFalse:
		normalized := capitalize(rq.CorrectAnswer)
		if normalized != "True" && normalized != "False" {
			return nil, fmt.Errorf("true-false answer must be True or False, got %q", rq.CorrectAnswer)
		}
		q.CorrectAnswer = normalized
		// Whatever the model offered, the canonical pair wins.
		q.Options = []string{"True", "False"}

	case TypeShortAnswer:
		q.Options = nil

	default:
		// The schema enum makes this unreachable; keep the rejection so a
		// fourth type cannot slip through a future schema edit.
		return nil, fmt.Errorf("unknown question type %q", rq.Type)
	}

	return q, nil
}

// capitalize upper-cases the first rune and lower-cases the rest, so
// "tRUE" becomes "True".
func capitalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
