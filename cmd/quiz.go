package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"studybuddy/internal/quiz"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Inspect and score saved quizzes",
}

var quizListCmd = &cobra.Command{
	Use:   "list <document-id>",
	Short: "List saved quizzes for a document, newest first",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		st, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		quizzes, err := st.QuizRepo().QuizzesForDocument(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("list quizzes: %w", err)
		}
		if len(quizzes) == 0 {
			fmt.Println("No quizzes found for", args[0])
			return nil
		}

		fmt.Printf("%-36s  %-19s  %s\n", "ID", "Created", "Questions")
		fmt.Println(strings.Repeat("─", 68))
		for _, q := range quizzes {
			fmt.Printf("%-36s  %-19s  %d\n",
				q.ID, q.CreatedAt.Local().Format("2006-01-02 15:04:05"), len(q.Questions))
		}
		return nil
	},
}

var quizShowCmd = &cobra.Command{
	Use:   "show <quiz-id>",
	Short: "Print a saved quiz",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		st, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		q, err := st.QuizRepo().Quiz(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("load quiz: %w", err)
		}
		if q == nil {
			return fmt.Errorf("quiz %s not found", args[0])
		}

		fmt.Println(titleStyle.Render("Quiz " + q.ID))
		fmt.Println(dimStyle.Render("Document: " + q.DocumentID))
		fmt.Println()
		printQuiz(q.Questions)
		return nil
	},
}

var quizScoreCmd = &cobra.Command{
	Use:   "score <quiz-id>",
	Short: "Score answers against a saved quiz",
	Long: `Score answers against a saved quiz. Answers are a JSON object keyed
by question number, e.g. '{"1": "Paris", "2": "True"}'. Pass them with
--answers or in a file with --answers-file.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		answers, err := readAnswers(cmd)
		if err != nil {
			return err
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		st, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		repo := st.QuizRepo()
		q, err := repo.Quiz(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("load quiz: %w", err)
		}
		if q == nil {
			return fmt.Errorf("quiz %s not found", args[0])
		}

		result := quiz.Score(q.Questions, answers)
		if _, err := repo.SaveAttempt(cmd.Context(), q.ID, answers, result); err != nil {
			return fmt.Errorf("save attempt: %w", err)
		}

		printResult(result)
		return nil
	},
}

var quizAttemptsCmd = &cobra.Command{
	Use:   "attempts <quiz-id>",
	Short: "List scored attempts for a quiz, newest first",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		st, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		attempts, err := st.QuizRepo().Attempts(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("list attempts: %w", err)
		}
		if len(attempts) == 0 {
			fmt.Println("No attempts recorded for", args[0])
			return nil
		}

		fmt.Printf("%-19s  %-7s  %s\n", "When", "Score", "Percent")
		fmt.Println(strings.Repeat("─", 40))
		for _, a := range attempts {
			fmt.Printf("%-19s  %d/%-5d  %.2f%%\n",
				a.CreatedAt.Local().Format("2006-01-02 15:04:05"),
				a.Result.TotalCorrect, a.Result.TotalQuestions, a.Result.Percentage)
		}
		return nil
	},
}

func init() {
	quizScoreCmd.Flags().String("answers", "", "Answers as a JSON object")
	quizScoreCmd.Flags().String("answers-file", "", "Path to a JSON file of answers")

	quizCmd.AddCommand(quizListCmd)
	quizCmd.AddCommand(quizShowCmd)
	quizCmd.AddCommand(quizScoreCmd)
	quizCmd.AddCommand(quizAttemptsCmd)
}

func readAnswers(cmd *cobra.Command) (map[string]string, error) {
	raw, _ := cmd.Flags().GetString("answers")
	if file, _ := cmd.Flags().GetString("answers-file"); file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read answers file: %w", err)
		}
		raw = string(data)
	}
	if raw == "" {
		return nil, fmt.Errorf("no answers given: use --answers or --answers-file")
	}

	var answers map[string]string
	if err := json.Unmarshal([]byte(raw), &answers); err != nil {
		return nil, fmt.Errorf("parse answers: %w", err)
	}
	return answers, nil
}

func printResult(result quiz.ScoreResult) {
	pct := fmt.Sprintf("%.2f%%", result.Percentage)
	style := okStyle
	if result.TotalCorrect < result.TotalQuestions {
		style = badStyle
	}
	fmt.Printf("Score: %d/%d (%s)\n",
		result.TotalCorrect, result.TotalQuestions, style.Render(pct))

	if len(result.Breakdown) == 0 {
		return
	}
	fmt.Println()
	fmt.Printf("%-16s  %s\n", "Type", "Correct")
	fmt.Println(strings.Repeat("─", 28))
	for _, ts := range result.Breakdown {
		fmt.Printf("%-16s  %d/%d\n", ts.Type, ts.Correct, ts.Total)
	}
}
