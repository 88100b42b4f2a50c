package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"studybuddy/internal/quiz"
)

type quizRepo struct {
	db *sql.DB
}

func (r *quizRepo) SaveQuiz(ctx context.Context, documentID string, questions []quiz.Question) (string, error) {
	if documentID == "" {
		return "", errors.New("document ID is empty")
	}
	if len(questions) == 0 {
		return "", errors.New("quiz has no questions")
	}

	data, err := json.Marshal(questions)
	if err != nil {
		return "", fmt.Errorf("encode questions: %w", err)
	}

	id := uuid.NewString()
	_, err = r.db.ExecContext(ctx, `
INSERT INTO quizzes (id, document_id, questions, created_at)
VALUES (?, ?, ?, ?)`,
		id, documentID, string(data), time.Now().UTC())
	if err != nil {
		return "", fmt.Errorf("save quiz: %w", err)
	}
	return id, nil
}

func (r *quizRepo) Quiz(ctx context.Context, id string) (*StoredQuiz, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, document_id, questions, created_at FROM quizzes WHERE id = ?`, id)
	q, err := scanQuiz(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return q, nil
}

func (r *quizRepo) QuizzesForDocument(ctx context.Context, documentID string) ([]StoredQuiz, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, document_id, questions, created_at
FROM quizzes WHERE document_id = ? ORDER BY created_at DESC`, documentID)
	if err != nil {
		return nil, fmt.Errorf("list quizzes: %w", err)
	}
	defer rows.Close()

	var out []StoredQuiz
	for rows.Next() {
		q, err := scanQuiz(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *q)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanQuiz(row rowScanner) (*StoredQuiz, error) {
	var q StoredQuiz
	var questionsJSON string
	if err := row.Scan(&q.ID, &q.DocumentID, &questionsJSON, &q.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(questionsJSON), &q.Questions); err != nil {
		return nil, fmt.Errorf("decode questions for quiz %s: %w", q.ID, err)
	}
	return &q, nil
}

func (r *quizRepo) SaveAttempt(ctx context.Context, quizID string, answers map[string]string, result quiz.ScoreResult) (string, error) {
	if quizID == "" {
		return "", errors.New("quiz ID is empty")
	}

	answersJSON, err := json.Marshal(answers)
	if err != nil {
		return "", fmt.Errorf("encode answers: %w", err)
	}
	breakdownJSON, err := json.Marshal(result.Breakdown)
	if err != nil {
		return "", fmt.Errorf("encode breakdown: %w", err)
	}

	id := uuid.NewString()
	_, err = r.db.ExecContext(ctx, `
INSERT INTO attempts (id, quiz_id, answers, total_correct, total_questions, percentage, breakdown, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, quizID, string(answersJSON),
		result.TotalCorrect, result.TotalQuestions, result.Percentage,
		string(breakdownJSON), time.Now().UTC())
	if err != nil {
		return "", fmt.Errorf("save attempt: %w", err)
	}
	return id, nil
}

func (r *quizRepo) Attempts(ctx context.Context, quizID string) ([]Attempt, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, quiz_id, answers, total_correct, total_questions, percentage, breakdown, created_at
FROM attempts WHERE quiz_id = ? ORDER BY created_at DESC`, quizID)
	if err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	defer rows.Close()

	var out []Attempt
	for rows.Next() {
		var a Attempt
		var answersJSON, breakdownJSON string
		if err := rows.Scan(&a.ID, &a.QuizID, &answersJSON,
			&a.Result.TotalCorrect, &a.Result.TotalQuestions, &a.Result.Percentage,
			&breakdownJSON, &a.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(answersJSON), &a.Answers); err != nil {
			return nil, fmt.Errorf("decode answers for attempt %s: %w", a.ID, err)
		}
		if err := json.Unmarshal([]byte(breakdownJSON), &a.Result.Breakdown); err != nil {
			return nil, fmt.Errorf("decode breakdown for attempt %s: %w", a.ID, err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
