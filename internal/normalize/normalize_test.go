package normalize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_Total(t *testing.T) {
	for _, raw := range []string{"", "   ", "\n\n", "This process is fully documented"} {
		got := Normalize(raw)
		assert.NotEmpty(t, got, "input %q", raw)
	}
}

func TestNormalize_EmptyFallsBackToCanned(t *testing.T) {
	assert.Equal(t, Fallback, Normalize(""))
	assert.Equal(t, Fallback, Normalize("This process is fully documented"))
}

func TestNormalize_NoAnswerShortCircuit(t *testing.T) {
	raw := "**Sorry**, that information is Not Available in the knowledge base."
	got := Normalize(raw)
	// The short-circuit fires before every other rule, markdown markers included.
	assert.Equal(t, raw, got)
}

func TestNormalize_CannotAnswerShortCircuit(t *testing.T) {
	raw := "I cannot answer that."
	assert.Equal(t, raw, Normalize(raw))
}

func TestNormalize_StripsLeadInAndRewritesTone(t *testing.T) {
	got := Normalize("The system documentation specifies that equipment cannot be added.")
	assert.NotContains(t, got, "The system documentation specifies that")
	assert.NotContains(t, got, "cannot be added")
	assert.Contains(t, got, "can't be used in")
}

func TestNormalize_StripsMarkdownMarkers(t *testing.T) {
	got := Normalize("You can do this:\n- **Open** the lead\n- Press save")
	assert.NotContains(t, got, "**")
	assert.NotContains(t, got, "- ")
}

func TestNormalize_SystemRequiresBecomesYouNeedTo(t *testing.T) {
	got := Normalize("The system requires a category for every job.")
	assert.True(t, strings.HasPrefix(got, "You need to"), "got %q", got)
}

func TestNormalize_DropsFillerLines(t *testing.T) {
	got := Normalize("You can add a job from the lead page.\nThat's it! You're done.")
	assert.Contains(t, got, "add a job")
	assert.NotContains(t, strings.ToLower(got), "that's it")
}

func TestNormalize_RemovesTransitionPhrases(t *testing.T) {
	got := Normalize("you need to follow these steps:\nOpen the lead and press convert.")
	assert.NotContains(t, got, "you need to follow these steps:")
}

func TestNormalize_ActionVerbGetsToDoThisPrefix(t *testing.T) {
	got := Normalize("Click the convert button on the lead page.")
	assert.True(t, strings.HasPrefix(got, "To do this: "), "got %q", got)
}

func TestNormalize_EquipmentOpener(t *testing.T) {
	got := Normalize("Machines are allowed in excavation and tiling jobs.")
	assert.True(t, strings.HasPrefix(got, "Here's how equipment works: "), "got %q", got)
}

func TestNormalize_RecognizedOpenerLeftAlone(t *testing.T) {
	for _, raw := range []string{
		"Yes, machines are allowed in tiling jobs.",
		"You can convert a lead from its detail page.",
		"There are three job types.",
	} {
		got := Normalize(raw)
		assert.Equal(t, raw, got, "input %q", raw)
	}
}

func TestNormalize_AtMostOnePrefix(t *testing.T) {
	// Mentions both an action verb and equipment; only the first matching
	// prefix may be applied.
	got := Normalize("Click assign to attach equipment.")
	assert.True(t, strings.HasPrefix(got, "To do this: "), "got %q", got)
	assert.NotContains(t, got, "Here's how equipment works: ")
}

// Normalize is intentionally not idempotent (re-running it may stack a second
// opener prefix), so no test asserts Normalize(Normalize(x)) == Normalize(x).
