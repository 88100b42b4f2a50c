package quiz

import (
	"math"
	"strconv"
	"strings"
)

// TypeScore is the per-type slice of a score breakdown.
type TypeScore struct {
	Type       string  `json:"type"`
	Correct    int     `json:"correct"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
}

// ScoreResult is the outcome of scoring one quiz attempt.
type ScoreResult struct {
	TotalCorrect   int         `json:"total_correct"`
	TotalQuestions int         `json:"total_questions"`
	Percentage     float64     `json:"percentage"`
	Breakdown      []TypeScore `json:"breakdown"`
}

// Score grades submitted answers against the question set. Answers are
// keyed by the question's 1-based position as a string; a missing or
// empty submission counts as incorrect. Breakdown groups appear in the
// order their types are first encountered.
func Score(questions []Question, answers map[string]string) ScoreResult {
	result := ScoreResult{TotalQuestions: len(questions)}

	groups := make(map[string]*TypeScore)
	var order []string

	for i, q := range questions {
		key := string(q.Type)
		if key == "" {
			key = "unknown"
		}
		g := groups[key]
		if g == nil {
			g = &TypeScore{Type: key}
			groups[key] = g
			order = append(order, key)
		}
		g.Total++

		if isCorrect(q, answers[strconv.Itoa(i+1)]) {
			result.TotalCorrect++
			g.Correct++
		}
	}

	result.Percentage = percentage(result.TotalCorrect, result.TotalQuestions)
	for _, key := range order {
		g := groups[key]
		g.Percentage = percentage(g.Correct, g.Total)
		result.Breakdown = append(result.Breakdown, *g)
	}
	return result
}

// isCorrect applies the type-specific comparison rule. Choice-based
// questions demand an exact match; short answers (and anything
// unrecognized) compare trimmed and case-insensitively.
func isCorrect(q Question, submitted string) bool {
	if submitted == "" {
		return false
	}
	switch q.Type {
	case TypeMultipleChoice, TypeTrueFalse:
		return submitted == q.CorrectAnswer
	case TypeShortAnswer:
		return looseEqual(submitted, q.CorrectAnswer)
	default:
		return looseEqual(submitted, q.CorrectAnswer)
	}
}

func looseEqual(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// percentage rounds to two decimal places; an empty set scores 0
// rather than NaN.
func percentage(correct, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(correct)/float64(total)*10000) / 100
}
