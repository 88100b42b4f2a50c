// Package generation orchestrates the content pipeline: prompt
// building, streaming inference, chunking for long documents, output
// parsing, and persistence.
package generation

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"studybuddy/internal/chunker"
	"studybuddy/internal/ollama"
	"studybuddy/internal/prompt"
	"studybuddy/internal/quiz"
	"studybuddy/internal/store"
)

// ErrNoUsableQuestions indicates quiz generation produced output that
// could not be turned into a single valid question.
var ErrNoUsableQuestions = errors.New("quiz generation produced nothing usable")

// Client is the slice of the inference client the service needs.
type Client interface {
	Generate(ctx context.Context, req ollama.GenerateRequest) (<-chan ollama.Event, error)
}

// Config controls generation behavior.
type Config struct {
	// Model is the model name sent with every request.
	Model string

	// ChunkSize and ChunkOverlap drive splitting of long documents;
	// documents at or under ChunkSize runes are sent whole.
	ChunkSize    int
	ChunkOverlap int

	// MaxPromptChars caps the finished prompt length.
	MaxPromptChars int

	// QuizQuestions is the default question count when a request does
	// not specify one.
	QuizQuestions int
}

// DefaultConfig returns the standard generation settings.
func DefaultConfig() Config {
	return Config{
		Model:          "llama3.2",
		ChunkSize:      4000,
		ChunkOverlap:   200,
		MaxPromptChars: 12000,
		QuizQuestions:  5,
	}
}

// Options wires the service's collaborators. Client is required;
// everything else is optional.
type Options struct {
	Client  Client
	Content store.ContentRepo
	Quizzes store.QuizRepo
	Events  store.EventRepo
	Sink    Sink
	Logger  *zap.Logger
	Config  Config
}

// Service runs the generation operations.
type Service struct {
	client  Client
	content store.ContentRepo
	quizzes store.QuizRepo
	events  store.EventRepo
	sink    Sink
	builder *prompt.Builder
	cfg     Config
	logger  *zap.Logger
}

// NewService builds a Service from options.
func NewService(opts Options) (*Service, error) {
	if opts.Client == nil {
		return nil, errors.New("generation: client is required")
	}
	cfg := opts.Config
	if cfg.Model == "" {
		cfg.Model = DefaultConfig().Model
	}
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = DefaultConfig().ChunkSize
	}
	if cfg.ChunkOverlap < 0 {
		cfg.ChunkOverlap = DefaultConfig().ChunkOverlap
	}
	if cfg.MaxPromptChars <= 0 {
		cfg.MaxPromptChars = DefaultConfig().MaxPromptChars
	}
	if cfg.QuizQuestions <= 0 {
		cfg.QuizQuestions = DefaultConfig().QuizQuestions
	}

	sink := opts.Sink
	if sink == nil {
		sink = discardSink{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{
		client:  opts.Client,
		content: opts.Content,
		quizzes: opts.Quizzes,
		events:  opts.Events,
		sink:    sink,
		builder: prompt.NewBuilder(cfg.MaxPromptChars),
		cfg:     cfg,
		logger:  logger,
	}, nil
}

// Summarize generates a summary for the document. Long documents are
// split into overlapping chunks, summarized per chunk, and the partial
// summaries merged in a final pass.
func (s *Service) Summarize(ctx context.Context, documentID, text string) (string, error) {
	summary, err := s.run(ctx, documentID, OpSummary, func(ctx context.Context) (string, int, error) {
		if len([]rune(text)) <= s.cfg.ChunkSize {
			p := s.buildPrompt(documentID, OpSummary, text, prompt.SummaryTemplate, nil)
			return s.collect(ctx, documentID, OpSummary, p)
		}
		return s.summarizeChunked(ctx, documentID, text)
	})
	if err != nil {
		return "", err
	}

	summary = strings.TrimSpace(summary)
	if s.content != nil {
		if err := s.content.SaveGeneratedContent(ctx, documentID, store.ContentUpdate{Summary: &summary}); err != nil {
			return "", fmt.Errorf("persist summary: %w", err)
		}
	}
	return summary, nil
}

// ExtractKeyPoints generates a bulleted key-point list for the
// document. Long documents are processed per chunk and the lists
// concatenated.
func (s *Service) ExtractKeyPoints(ctx context.Context, documentID, text string) (string, error) {
	points, err := s.run(ctx, documentID, OpKeyPoints, func(ctx context.Context) (string, int, error) {
		if len([]rune(text)) <= s.cfg.ChunkSize {
			p := s.buildPrompt(documentID, OpKeyPoints, text, prompt.KeyPointsTemplate, nil)
			return s.collect(ctx, documentID, OpKeyPoints, p)
		}

		var parts []string
		var fragments int
		for _, c := range chunker.Split(text, s.cfg.ChunkSize, s.cfg.ChunkOverlap) {
			p := s.buildPrompt(documentID, OpKeyPoints, c.Text, prompt.KeyPointsTemplate, nil)
			part, n, err := s.collect(ctx, documentID, OpKeyPoints, p)
			fragments += n
			if err != nil {
				return "", fragments, err
			}
			parts = append(parts, strings.TrimSpace(part))
		}
		return strings.Join(parts, "\n"), fragments, nil
	})
	if err != nil {
		return "", err
	}

	points = strings.TrimSpace(points)
	if s.content != nil {
		if err := s.content.SaveGeneratedContent(ctx, documentID, store.ContentUpdate{KeyPoints: &points}); err != nil {
			return "", fmt.Errorf("persist key points: %w", err)
		}
	}
	return points, nil
}

// QuizOptions tunes quiz generation.
type QuizOptions struct {
	Count      int
	Difficulty quiz.Difficulty
}

// GenerateQuiz generates, parses, and validates a quiz for the
// document. Invalid questions are dropped individually; the call fails
// only when nothing validates. Returns the surviving questions and the
// stored quiz ID (empty when no quiz repository is configured).
func (s *Service) GenerateQuiz(ctx context.Context, documentID, text string, opts QuizOptions) ([]quiz.Question, string, error) {
	count := opts.Count
	if count <= 0 {
		count = s.cfg.QuizQuestions
	}
	difficulty := opts.Difficulty
	if difficulty == "" {
		difficulty = quiz.DifficultyMedium
	}

	raw, err := s.run(ctx, documentID, OpQuiz, func(ctx context.Context) (string, int, error) {
		p := s.buildPrompt(documentID, OpQuiz, text, prompt.QuizTemplate, map[string]string{
			"count":      strconv.Itoa(count),
			"difficulty": string(difficulty),
		})
		return s.collect(ctx, documentID, OpQuiz, p)
	})
	if err != nil {
		return nil, "", err
	}

	items, err := quiz.ParseArray(raw)
	if err != nil {
		s.logger.Warn("quiz output unparseable",
			zap.String("document_id", documentID), zap.Error(err))
		return nil, "", ErrNoUsableQuestions
	}

	questions := make([]quiz.Question, 0, len(items))
	for i, item := range items {
		q, err := quiz.Validate(item)
		if err != nil {
			s.logger.Warn("dropping invalid question",
				zap.String("document_id", documentID),
				zap.Int("index", i), zap.Error(err))
			continue
		}
		questions = append(questions, *q)
	}
	if len(questions) == 0 {
		return nil, "", ErrNoUsableQuestions
	}

	var quizID string
	if s.quizzes != nil {
		quizID, err = s.quizzes.SaveQuiz(ctx, documentID, questions)
		if err != nil {
			return nil, "", fmt.Errorf("persist quiz: %w", err)
		}
	}
	return questions, quizID, nil
}

// summarizeChunked summarizes each chunk, then merges the partials.
func (s *Service) summarizeChunked(ctx context.Context, documentID, text string) (string, int, error) {
	chunks := chunker.Split(text, s.cfg.ChunkSize, s.cfg.ChunkOverlap)
	s.logger.Info("summarizing in chunks",
		zap.String("document_id", documentID), zap.Int("chunks", len(chunks)))

	var partials []string
	var fragments int
	for _, c := range chunks {
		p := s.buildPrompt(documentID, OpSummary, c.Text, prompt.ChunkSummaryTemplate, nil)
		partial, n, err := s.collect(ctx, documentID, OpSummary, p)
		fragments += n
		if err != nil {
			return "", fragments, err
		}
		partials = append(partials, strings.TrimSpace(partial))
	}

	combined := strings.Join(partials, "\n\n")
	p := s.buildPrompt(documentID, OpSummary, combined, prompt.CombineSummariesTemplate, nil)
	merged, n, err := s.collect(ctx, documentID, OpSummary, p)
	fragments += n
	return merged, fragments, err
}

// buildPrompt fills the template and logs the degenerate-budget case.
func (s *Service) buildPrompt(documentID string, op Operation, text, template string, vars map[string]string) string {
	p, degraded := s.builder.Build(text, template, vars)
	if degraded {
		s.logger.Warn("prompt budget exhausted by template, document text dropped",
			zap.String("document_id", documentID), zap.String("operation", string(op)))
	}
	return p
}

// collect drives one streaming generation, forwarding fragments to the
// sink and accumulating them. Returns the full text and fragment count.
func (s *Service) collect(ctx context.Context, documentID string, op Operation, promptText string) (string, int, error) {
	events, err := s.client.Generate(ctx, ollama.GenerateRequest{
		Model:  s.cfg.Model,
		Prompt: promptText,
	})
	if err != nil {
		return "", 0, err
	}

	var b strings.Builder
	fragments := 0
	for ev := range events {
		if ev.Err != nil {
			return b.String(), fragments, ev.Err
		}
		if ev.Done {
			break
		}
		b.WriteString(ev.Fragment)
		fragments++
		s.sink.Emit(ProgressEvent{DocumentID: documentID, Operation: op, Chunk: ev.Fragment})
	}
	return b.String(), fragments, nil
}

// run wraps an operation with sink termination events and the
// generation event log.
func (s *Service) run(ctx context.Context, documentID string, op Operation, fn func(context.Context) (string, int, error)) (string, error) {
	start := time.Now()
	out, fragments, err := fn(ctx)

	if s.events != nil {
		data := store.GenerationEventData{
			DocumentID: documentID,
			Operation:  string(op),
			Model:      s.cfg.Model,
			LatencyMs:  time.Since(start).Milliseconds(),
			Fragments:  fragments,
			Success:    err == nil,
		}
		if err != nil {
			data.ErrorMessage = err.Error()
		}
		if logErr := s.events.AppendGeneration(ctx, data); logErr != nil {
			s.logger.Warn("failed to log generation event", zap.Error(logErr))
		}
	}

	if err != nil {
		s.sink.Emit(ProgressEvent{DocumentID: documentID, Operation: op, Err: err})
		return "", err
	}
	s.sink.Emit(ProgressEvent{DocumentID: documentID, Operation: op, Done: true})
	return out, nil
}
