// Package prompt builds model prompts from templates under a fixed
// character budget.
package prompt

import "strings"

// TextPlaceholder is the reserved slot for the document body. It is
// substituted last, after the budget is known.
const TextPlaceholder = "{text}"

// DefaultMaxLength is the prompt budget in runes when none is
// configured.
const DefaultMaxLength = 12000

// Builder fills prompt templates, truncating the document text so the
// finished prompt stays within MaxLength runes.
type Builder struct {
	MaxLength int
}

// NewBuilder returns a Builder with the given budget, falling back to
// DefaultMaxLength when maxLength is not positive.
func NewBuilder(maxLength int) *Builder {
	if maxLength <= 0 {
		maxLength = DefaultMaxLength
	}
	return &Builder{MaxLength: maxLength}
}

// Build substitutes vars into template, computes the remaining budget
// for {text}, and splices in a rune-prefix of documentText that fits.
// The second return value reports a degenerate budget: the template
// alone met or exceeded MaxLength, so the document was dropped
// entirely. That is degraded but not fatal; callers should log it.
func (b *Builder) Build(documentText, template string, vars map[string]string) (string, bool) {
	filled := template
	for k, v := range vars {
		filled = strings.ReplaceAll(filled, "{"+k+"}", v)
	}

	overhead := len([]rune(filled)) - len([]rune(TextPlaceholder))
	budget := b.MaxLength - overhead

	degraded := budget <= 0
	if degraded {
		budget = 0
	}

	text := documentText
	if runes := []rune(text); len(runes) > budget {
		text = string(runes[:budget])
	}

	return strings.ReplaceAll(filled, TextPlaceholder, text), degraded
}
