package decompose

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedSplitter struct {
	parts []string
	err   error
}

func (s *scriptedSplitter) SplitQuestion(_ context.Context, _ string) ([]string, error) {
	return s.parts, s.err
}

func TestDecompose_UsesModelSplit(t *testing.T) {
	d := New(&scriptedSplitter{parts: []string{
		"how to create a tiling lead?",
		"how to convert a tiling lead to a job?",
	}}, nil)

	got, err := d.Decompose(context.Background(), "how to create a tiling lead and convert it to a job?")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "how to create a tiling lead?", got[0])
}

func TestDecompose_ModelErrorFallsBackToLiteralSplit(t *testing.T) {
	d := New(&scriptedSplitter{err: errors.New("model unavailable")}, nil)

	got, err := d.Decompose(context.Background(), "what is a lead and what is a job")
	require.NoError(t, err)
	assert.Equal(t, []string{"what is a lead", "what is a job"}, got)
}

func TestDecompose_SingleModelItemFallsBack(t *testing.T) {
	d := New(&scriptedSplitter{parts: []string{"rephrased question"}}, nil)

	got, err := d.Decompose(context.Background(), "which roles exist?")
	require.NoError(t, err)
	// A degenerate single-item model split means the original question is
	// answered whole, not the model's rephrasing.
	assert.Equal(t, []string{"which roles exist?"}, got)
}

func TestDecompose_EmptyModelResultFallsBack(t *testing.T) {
	d := New(&scriptedSplitter{}, nil)

	got, err := d.Decompose(context.Background(), "what is a lead")
	require.NoError(t, err)
	assert.Equal(t, []string{"what is a lead"}, got)
}

func TestLiteralSplit_NoConjunction(t *testing.T) {
	got := literalSplit("how do I create a lead?")
	assert.Equal(t, []string{"how do I create a lead?"}, got)
}

func TestLiteralSplit_PlainFragmentsUnchanged(t *testing.T) {
	got := literalSplit("what is a lead and what is a job")
	assert.Equal(t, []string{"what is a lead", "what is a job"}, got)
}

func TestLiteralSplit_HowToGetsDomainContext(t *testing.T) {
	got := literalSplit("how do I create a tiling lead and how to convert it?")
	require.Len(t, got, 2)
	assert.Contains(t, got[1], "how to tiling")
}

func TestLiteralSplit_ConvertRuleInsertsLead(t *testing.T) {
	got := literalSplit("where do I find repair leads and what should I do to convert it to a job?")
	require.Len(t, got, 2)
	assert.Contains(t, got[1], "convert repair lead to")
}

func TestLiteralSplit_WhichCanDoRule(t *testing.T) {
	got := literalSplit("where are excavation leads and which roles can do this steps?")
	require.Len(t, got, 2)
	assert.Contains(t, got[1], "the excavation lead steps")
}

func TestLiteralSplit_UnmatchedFragmentPassesThrough(t *testing.T) {
	got := literalSplit("how do I open a tiling lead and delete it afterwards?")
	require.Len(t, got, 2)
	// Known limitation: fragments matching none of the repair patterns are
	// passed through unmodified.
	assert.Equal(t, "delete it afterwards?", got[1])
}

func TestLiteralSplit_ContextAlreadyPresent(t *testing.T) {
	got := literalSplit("how do I open a tiling lead and how to close a tiling job?")
	require.Len(t, got, 2)
	assert.Equal(t, "how to close a tiling job?", got[1])
}

func TestInferContext_PriorityOrder(t *testing.T) {
	assert.Equal(t, "tiling ", inferContext("convert a Tiling repair lead"))
	assert.Equal(t, "repair ", inferContext("what is a REPAIR job"))
	assert.Equal(t, "excavation ", inferContext("excavation equipment"))
	assert.Equal(t, "", inferContext("what is a job"))
}
