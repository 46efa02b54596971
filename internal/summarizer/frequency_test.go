package summarizer

import (
	"strings"
	"testing"
)

func TestSummarize_KeepsTopSentencesInOriginalOrder(t *testing.T) {
	text := "Leads track incoming customer work. Leads can be converted into jobs. " +
		"The weather today is irrelevant. Jobs track confirmed customer work."
	s := NewFrequencySummarizer()
	got, err := s.Summarize(text, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sentences := strings.Count(got, ".")
	if sentences != 2 {
		t.Fatalf("expected 2 sentences, got %d: %q", sentences, got)
	}
	if !strings.Contains(got, "Leads") {
		t.Fatalf("expected the lead sentences to dominate, got %q", got)
	}
}

func TestSummarize_ShortTextPassesThrough(t *testing.T) {
	s := NewFrequencySummarizer()
	got, err := s.Summarize("no sentence terminator here", 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "no sentence terminator here" {
		t.Fatalf("unexpected summary: %q", got)
	}
}

func TestSummarize_FewerSentencesThanRequested(t *testing.T) {
	s := NewFrequencySummarizer()
	got, err := s.Summarize("Only one sentence.", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Only one sentence." {
		t.Fatalf("unexpected summary: %q", got)
	}
}
