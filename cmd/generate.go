package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"studybuddy/internal/generation"
	"studybuddy/internal/quiz"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate study material from a document",
}

var generateSummaryCmd = &cobra.Command{
	Use:   "summary <file>",
	Short: "Stream a summary of the document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGeneration(cmd, args[0], func(svc *generation.Service, docID, text string) error {
			_, err := svc.Summarize(cmd.Context(), docID, text)
			return err
		})
	},
}

var generateKeyPointsCmd = &cobra.Command{
	Use:   "keypoints <file>",
	Short: "Stream a key-point list for the document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGeneration(cmd, args[0], func(svc *generation.Service, docID, text string) error {
			_, err := svc.ExtractKeyPoints(cmd.Context(), docID, text)
			return err
		})
	},
}

var generateQuizCmd = &cobra.Command{
	Use:   "quiz <file>",
	Short: "Generate a quiz from the document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		count, _ := cmd.Flags().GetInt("count")
		difficulty, _ := cmd.Flags().GetString("difficulty")

		var questions []quiz.Question
		var quizID string
		err := runGeneration(cmd, args[0], func(svc *generation.Service, docID, text string) error {
			var err error
			questions, quizID, err = svc.GenerateQuiz(cmd.Context(), docID, text, generation.QuizOptions{
				Count:      count,
				Difficulty: quiz.Difficulty(difficulty),
			})
			return err
		})
		if err != nil {
			return err
		}

		fmt.Println()
		printQuiz(questions)
		if quizID != "" {
			fmt.Println(dimStyle.Render("Quiz saved as " + quizID))
		}
		return nil
	},
}

func init() {
	generateQuizCmd.Flags().IntP("count", "n", 5, "Number of questions")
	generateQuizCmd.Flags().StringP("difficulty", "d", "medium", "Difficulty: easy, medium, or hard")

	generateCmd.AddCommand(generateSummaryCmd)
	generateCmd.AddCommand(generateKeyPointsCmd)
	generateCmd.AddCommand(generateQuizCmd)

	for _, c := range []*cobra.Command{generateSummaryCmd, generateKeyPointsCmd, generateQuizCmd} {
		c.Flags().String("doc", "", "Document ID (defaults to the file name without extension)")
	}
}

// runGeneration wires the pipeline for one document and invokes op,
// streaming fragments to stdout as they arrive.
func runGeneration(cmd *cobra.Command, file string, op func(svc *generation.Service, docID, text string) error) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync()

	data, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("read document: %w", err)
	}
	text := string(data)
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("document %s is empty", file)
	}

	docID, _ := cmd.Flags().GetString("doc")
	if docID == "" {
		docID = strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	svc, err := generation.NewService(generation.Options{
		Client:  newClient(cfg, logger),
		Content: st.ContentRepo(),
		Quizzes: st.QuizRepo(),
		Events:  st.EventRepo(),
		Logger:  logger,
		Sink: generation.SinkFunc(func(ev generation.ProgressEvent) {
			if ev.Chunk != "" {
				fmt.Print(ev.Chunk)
			}
			if ev.Done {
				fmt.Println()
			}
		}),
		Config: generation.Config{
			Model:          cfg.Model,
			ChunkSize:      cfg.ChunkSize,
			ChunkOverlap:   cfg.ChunkOverlap,
			MaxPromptChars: cfg.MaxPromptChars,
		},
	})
	if err != nil {
		return err
	}

	return op(svc, docID, text)
}

func printQuiz(questions []quiz.Question) {
	for i, q := range questions {
		fmt.Printf("%s %s\n", titleStyle.Render(fmt.Sprintf("Q%d.", i+1)), q.Question)
		for j, opt := range q.Options {
			fmt.Printf("   %c) %s\n", 'A'+j, opt)
		}
		fmt.Printf("   %s %s\n", dimStyle.Render("Answer:"), q.CorrectAnswer)
		if q.Explanation != "" {
			fmt.Printf("   %s\n", dimStyle.Render(q.Explanation))
		}
		fmt.Println()
	}
}
