package quiz

import (
	"encoding/json"
	"testing"
)

func mustValidate(t *testing.T, raw string) *Question {
	t.Helper()
	q, err := Validate(json.RawMessage(raw))
	if err != nil {
		t.Fatalf("unexpected rejection: %v", err)
	}
	return q
}

func mustReject(t *testing.T, raw string) {
	t.Helper()
	if q, err := Validate(json.RawMessage(raw)); err == nil {
		t.Fatalf("expected rejection, got %+v", q)
	}
}

func TestValidate_MultipleChoice(t *testing.T) {
	q := mustValidate(t, `{
		"question": "Capital of France?",
		"type": "multiple-choice",
		"options": ["Paris", "London", "Berlin", "Madrid"],
		"correct_answer": "Paris",
		"explanation": "Paris is the capital of France.",
		"difficulty": "easy"
	}`)
	if q.Type != TypeMultipleChoice {
		t.Errorf("wrong type: %s", q.Type)
	}
	if len(q.Options) != 4 {
		t.Errorf("expected 4 options, got %d", len(q.Options))
	}
	if q.CorrectAnswer != "Paris" {
		t.Errorf("wrong answer: %s", q.CorrectAnswer)
	}
}

func TestValidate_MultipleChoiceThreeOptions(t *testing.T) {
	mustReject(t, `{
		"question": "Q?",
		"type": "multiple-choice",
		"options": ["A", "B", "C"],
		"correct_answer": "A",
		"difficulty": "easy"
	}`)
}

func TestValidate_MultipleChoiceAnswerNotAnOption(t *testing.T) {
	mustReject(t, `{
		"question": "Q?",
		"type": "multiple-choice",
		"options": ["A", "B", "C", "D"],
		"correct_answer": "E",
		"difficulty": "medium"
	}`)
}

func TestValidate_MultipleChoiceAnswerCaseSensitive(t *testing.T) {
	mustReject(t, `{
		"question": "Q?",
		"type": "multiple-choice",
		"options": ["Paris", "London", "Berlin", "Madrid"],
		"correct_answer": "paris",
		"difficulty": "easy"
	}`)
}

func TestValidate_MultipleChoiceDuplicateOptions(t *testing.T) {
	mustReject(t, `{
		"question": "Q?",
		"type": "multiple-choice",
		"options": ["A", "A", "B", "C"],
		"correct_answer": "A",
		"difficulty": "easy"
	}`)
}

func TestValidate_TrueFalseNormalization(t *testing.T) {
	q := mustValidate(t, `{
		"question": "Water boils at 100C at sea level.",
		"type": "true-false",
		"correct_answer": "tRUE",
		"difficulty": "easy"
	}`)
	if q.CorrectAnswer != "True" {
		t.Errorf("expected normalized True, got %q", q.CorrectAnswer)
	}
	if len(q.Options) != 2 || q.Options[0] != "True" || q.Options[1] != "False" {
		t.Errorf("expected canonical options, got %v", q.Options)
	}
}

func TestValidate_TrueFalseOverwritesProvidedOptions(t *testing.T) {
	q := mustValidate(t, `{
		"question": "Q?",
		"type": "true-false",
		"options": ["Yes", "No"],
		"correct_answer": "false",
		"difficulty": "hard"
	}`)
	if q.Options[0] != "True" || q.Options[1] != "False" {
		t.Errorf("provided options should be replaced, got %v", q.Options)
	}
	if q.CorrectAnswer != "False" {
		t.Errorf("expected False, got %q", q.CorrectAnswer)
	}
}

func TestValidate_TrueFalseMaybe(t *testing.T) {
	mustReject(t, `{
		"question": "Q?",
		"type": "true-false",
		"correct_answer": "Maybe",
		"difficulty": "easy"
	}`)
}

func TestValidate_ShortAnswer(t *testing.T) {
	q := mustValidate(t, `{
		"question": "Chemical formula of water?",
		"type": "short-answer",
		"options": ["ignored"],
		"correct_answer": "H2O",
		"difficulty": "medium"
	}`)
	if q.Options != nil {
		t.Errorf("short-answer options must be nil, got %v", q.Options)
	}
	if q.CorrectAnswer != "H2O" {
		t.Errorf("answer must be kept verbatim, got %q", q.CorrectAnswer)
	}
}

func TestValidate_RejectsNonObject(t *testing.T) {
	mustReject(t, `"just a string"`)
	mustReject(t, `[1, 2, 3]`)
	mustReject(t, `42`)
}

func TestValidate_RejectsMissingFields(t *testing.T) {
	mustReject(t, `{"type": "short-answer", "correct_answer": "x", "difficulty": "easy"}`)
	mustReject(t, `{"question": "Q?", "correct_answer": "x", "difficulty": "easy"}`)
	mustReject(t, `{"question": "Q?", "type": "short-answer", "difficulty": "easy"}`)
	mustReject(t, `{"question": "Q?", "type": "short-answer", "correct_answer": "x"}`)
}

func TestValidate_RejectsBlankFields(t *testing.T) {
	mustReject(t, `{"question": "   ", "type": "short-answer", "correct_answer": "x", "difficulty": "easy"}`)
	mustReject(t, `{"question": "Q?", "type": "short-answer", "correct_answer": " ", "difficulty": "easy"}`)
}

func TestValidate_RejectsUnknownEnums(t *testing.T) {
	mustReject(t, `{"question": "Q?", "type": "essay", "correct_answer": "x", "difficulty": "easy"}`)
	mustReject(t, `{"question": "Q?", "type": "short-answer", "correct_answer": "x", "difficulty": "brutal"}`)
}

func TestValidate_NonStringExplanationDropped(t *testing.T) {
	q := mustValidate(t, `{
		"question": "Q?",
		"type": "short-answer",
		"correct_answer": "x",
		"explanation": 7,
		"difficulty": "easy"
	}`)
	if q.Explanation != "" {
		t.Errorf("expected empty explanation, got %q", q.Explanation)
	}
}
