package prompt

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestBuild_SubstitutesVars(t *testing.T) {
	b := NewBuilder(200)
	got, degraded := b.Build("the doc", "Make {count} questions from: {text}", map[string]string{"count": "5"})
	if degraded {
		t.Fatal("unexpected degraded flag")
	}
	want := "Make 5 questions from: the doc"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestBuild_TruncatesToBudget(t *testing.T) {
	// Template overhead is 8 runes ("prefix: "), budget is 12.
	b := NewBuilder(20)
	doc := strings.Repeat("a", 100)
	got, degraded := b.Build(doc, "prefix: {text}", nil)
	if degraded {
		t.Fatal("unexpected degraded flag")
	}
	if utf8.RuneCountInString(got) != 20 {
		t.Errorf("expected prompt of exactly 20 runes, got %d", utf8.RuneCountInString(got))
	}
	if !strings.HasPrefix(got, "prefix: ") {
		t.Errorf("template lost: %q", got)
	}
}

func TestBuild_TruncationIsRuneAware(t *testing.T) {
	b := NewBuilder(12)
	doc := strings.Repeat("é", 50)
	got, _ := b.Build(doc, "p: {text}", nil)
	if !utf8.ValidString(got) {
		t.Error("truncation split a code point")
	}
	if utf8.RuneCountInString(got) > 12 {
		t.Errorf("prompt exceeds budget: %d runes", utf8.RuneCountInString(got))
	}
}

func TestBuild_DegenerateBudget(t *testing.T) {
	b := NewBuilder(10)
	template := strings.Repeat("x", 50) + "{text}"
	got, degraded := b.Build("document body", template, nil)
	if !degraded {
		t.Fatal("expected degraded flag for zero budget")
	}
	if strings.Contains(got, "document") {
		t.Errorf("document text should be dropped, got %q", got)
	}
	// Still proceeds with the filled template rather than failing.
	if !strings.HasPrefix(got, "xxxx") {
		t.Errorf("template missing from output: %q", got)
	}
}

func TestBuild_VarsCountTowardOverhead(t *testing.T) {
	b := NewBuilder(30)
	long := strings.Repeat("v", 40)
	_, degraded := b.Build("doc", "{filler} {text}", map[string]string{"filler": long})
	if !degraded {
		t.Error("expected degraded flag when substituted vars exceed the budget")
	}
}
