package quiz

import "testing"

func scoringQuestions() []Question {
	return []Question{
		{
			Question:      "Capital of France?",
			Type:          TypeMultipleChoice,
			Options:       []string{"Paris", "London", "Berlin", "Madrid"},
			CorrectAnswer: "Paris",
			Difficulty:    DifficultyEasy,
		},
		{
			Question:      "Water boils at 100C at sea level.",
			Type:          TypeTrueFalse,
			Options:       []string{"True", "False"},
			CorrectAnswer: "True",
			Difficulty:    DifficultyEasy,
		},
		{
			Question:      "Chemical formula of water?",
			Type:          TypeShortAnswer,
			CorrectAnswer: "H2O",
			Difficulty:    DifficultyMedium,
		},
	}
}

func TestScore_AllCorrect(t *testing.T) {
	result := Score(scoringQuestions(), map[string]string{
		"1": "Paris", "2": "True", "3": "H2O",
	})
	if result.TotalCorrect != 3 {
		t.Errorf("expected 3 correct, got %d", result.TotalCorrect)
	}
	if result.Percentage != 100 {
		t.Errorf("expected 100%%, got %v", result.Percentage)
	}
}

func TestScore_AllWrong(t *testing.T) {
	result := Score(scoringQuestions(), map[string]string{
		"1": "London", "2": "False", "3": "CO2",
	})
	if result.TotalCorrect != 0 {
		t.Errorf("expected 0 correct, got %d", result.TotalCorrect)
	}
	if result.Percentage != 0 {
		t.Errorf("expected 0%%, got %v", result.Percentage)
	}
}

func TestScore_MultipleChoiceIsCaseSensitive(t *testing.T) {
	result := Score(scoringQuestions(), map[string]string{"1": "paris"})
	if result.TotalCorrect != 0 {
		t.Errorf("lowercase MC answer must be wrong, got %d correct", result.TotalCorrect)
	}
}

func TestScore_ShortAnswerIsLoose(t *testing.T) {
	result := Score(scoringQuestions(), map[string]string{"3": " h2o "})
	if result.TotalCorrect != 1 {
		t.Errorf("trimmed case-insensitive short answer must be right, got %d correct", result.TotalCorrect)
	}
}

func TestScore_MissingAnswersCountIncorrect(t *testing.T) {
	result := Score(scoringQuestions(), nil)
	if result.TotalCorrect != 0 {
		t.Errorf("expected 0 correct, got %d", result.TotalCorrect)
	}
	if result.TotalQuestions != 3 {
		t.Errorf("expected 3 questions, got %d", result.TotalQuestions)
	}
}

func TestScore_EmptyQuiz(t *testing.T) {
	result := Score(nil, map[string]string{"1": "x"})
	if result.Percentage != 0 {
		t.Errorf("empty quiz must score 0, got %v", result.Percentage)
	}
	if len(result.Breakdown) != 0 {
		t.Errorf("empty quiz has no breakdown, got %v", result.Breakdown)
	}
}

func TestScore_BreakdownOrderAndGrouping(t *testing.T) {
	questions := scoringQuestions()
	questions = append(questions, Question{
		Question:      "Another short one?",
		Type:          TypeShortAnswer,
		CorrectAnswer: "yes",
	})
	result := Score(questions, map[string]string{"1": "Paris", "4": "Yes"})

	if len(result.Breakdown) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(result.Breakdown))
	}
	wantOrder := []string{"multiple-choice", "true-false", "short-answer"}
	for i, want := range wantOrder {
		if result.Breakdown[i].Type != want {
			t.Errorf("group %d: expected %s, got %s", i, want, result.Breakdown[i].Type)
		}
	}
	sa := result.Breakdown[2]
	if sa.Total != 2 || sa.Correct != 1 || sa.Percentage != 50 {
		t.Errorf("short-answer group wrong: %+v", sa)
	}
}

func TestScore_UnknownTypeGroupsAndComparesLoose(t *testing.T) {
	questions := []Question{{Question: "Q?", CorrectAnswer: "Answer"}}
	result := Score(questions, map[string]string{"1": "answer"})
	if result.TotalCorrect != 1 {
		t.Error("unrecognized types compare case-insensitively")
	}
	if result.Breakdown[0].Type != "unknown" {
		t.Errorf("expected unknown group, got %s", result.Breakdown[0].Type)
	}
}

func TestScore_RoundsToTwoDecimals(t *testing.T) {
	questions := make([]Question, 3)
	for i := range questions {
		questions[i] = Question{Type: TypeShortAnswer, CorrectAnswer: "a"}
	}
	result := Score(questions, map[string]string{"1": "a"})
	if result.Percentage != 33.33 {
		t.Errorf("expected 33.33, got %v", result.Percentage)
	}
}
