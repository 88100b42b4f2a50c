package store

import (
	"context"
	"time"

	"studybuddy/internal/quiz"
)

// ContentUpdate carries a partial update for a document's generated
// content. Nil fields leave the stored value untouched.
type ContentUpdate struct {
	Summary   *string
	KeyPoints *string
}

// GeneratedContent is the persisted summary and key points for one
// document.
type GeneratedContent struct {
	DocumentID string
	Summary    string
	KeyPoints  string
	UpdatedAt  time.Time
}

// ContentRepo stores per-document generated content.
type ContentRepo interface {
	// SaveGeneratedContent upserts the given fields for the document.
	SaveGeneratedContent(ctx context.Context, documentID string, upd ContentUpdate) error

	// Content returns the stored content, or nil when the document has
	// none yet.
	Content(ctx context.Context, documentID string) (*GeneratedContent, error)
}

// StoredQuiz is one persisted quiz with its validated questions.
type StoredQuiz struct {
	ID         string
	DocumentID string
	Questions  []quiz.Question
	CreatedAt  time.Time
}

// Attempt is one scored submission against a quiz.
type Attempt struct {
	ID        string
	QuizID    string
	Answers   map[string]string
	Result    quiz.ScoreResult
	CreatedAt time.Time
}

// QuizRepo stores quizzes and scored attempts.
type QuizRepo interface {
	// SaveQuiz persists a new quiz and returns its generated ID.
	SaveQuiz(ctx context.Context, documentID string, questions []quiz.Question) (string, error)

	// Quiz returns the quiz with the given ID, or nil when absent.
	Quiz(ctx context.Context, id string) (*StoredQuiz, error)

	// QuizzesForDocument lists quizzes for a document, newest first.
	QuizzesForDocument(ctx context.Context, documentID string) ([]StoredQuiz, error)

	// SaveAttempt persists a scored attempt and returns its ID.
	SaveAttempt(ctx context.Context, quizID string, answers map[string]string, result quiz.ScoreResult) (string, error)

	// Attempts lists attempts for a quiz, newest first.
	Attempts(ctx context.Context, quizID string) ([]Attempt, error)
}

// GenerationEventData captures one generation request for the event
// log.
type GenerationEventData struct {
	DocumentID   string
	Operation    string
	Model        string
	LatencyMs    int64
	Fragments    int
	Success      bool
	ErrorMessage string
}

// GenerationEvent is a logged generation request.
type GenerationEvent struct {
	ID        int64
	CreatedAt time.Time
	GenerationEventData
}

// EventQuery narrows RecentGenerations. The zero value matches
// everything.
type EventQuery struct {
	// Operation filters to one operation when non-empty.
	Operation string

	// Limit caps the row count after filtering (0 = no limit).
	Limit int
}

// EventRepo provides append and query access to the generation event
// log.
type EventRepo interface {
	// AppendGeneration records one generation request.
	AppendGeneration(ctx context.Context, data GenerationEventData) error

	// RecentGenerations lists the newest matching events.
	RecentGenerations(ctx context.Context, q EventQuery) ([]GenerationEvent, error)
}
