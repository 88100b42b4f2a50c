package quiz

import (
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// questionSchemaDef is the structural contract one raw question must
// meet before type-specific normalization runs. Counting and membership
// rules (4 options, answer among them) live in Validate, not here.
var questionSchemaDef = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"question": map[string]any{
			"type":      "string",
			"minLength": 1,
		},
		"type": map[string]any{
			"type": "string",
			"enum": []any{"multiple-choice", "true-false", "short-answer"},
		},
		"options": map[string]any{
			"type":  []any{"array", "null"},
			"items": map[string]any{"type": "string"},
		},
		"correct_answer": map[string]any{
			"type":      "string",
			"minLength": 1,
		},
		"difficulty": map[string]any{
			"type": "string",
			"enum": []any{"easy", "medium", "hard"},
		},
	},
	"required": []any{"question", "type", "correct_answer", "difficulty"},
}

var compileQuestionSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	c := jsonschema.NewCompiler()
	if err := c.AddResource("schema://question.json", questionSchemaDef); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	compiled, err := c.Compile("schema://question.json")
	if err != nil {
		return nil, fmt.Errorf("compile question schema: %w", err)
	}
	return compiled, nil
})
