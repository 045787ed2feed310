package classifier

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feedpulse/feedpulse/domain/prediction"
)

func TestLexicon_Positive(t *testing.T) {
	ctx := context.Background()
	lex := NewLexicon()

	result, err := lex.Classify(ctx, "I love this, it is awesome!")
	require.NoError(t, err)
	assert.Equal(t, prediction.LabelPositive, result.Label())
	assert.Greater(t, result.Score(), 0.5)
}

func TestLexicon_Negative(t *testing.T) {
	ctx := context.Background()
	lex := NewLexicon()

	result, err := lex.Classify(ctx, "this is honestly terrible and broken")
	require.NoError(t, err)
	assert.Equal(t, prediction.LabelNegative, result.Label())
}

func TestLexicon_Neutral(t *testing.T) {
	ctx := context.Background()
	lex := NewLexicon()

	result, err := lex.Classify(ctx, "the package was delivered on tuesday")
	require.NoError(t, err)
	assert.Equal(t, prediction.LabelNeutral, result.Label())
	assert.InDelta(t, 0.5, result.Score(), 0.001)
}

func TestLexicon_Deterministic(t *testing.T) {
	ctx := context.Background()
	lex := NewLexicon()

	first, err := lex.Classify(ctx, "great but slow")
	require.NoError(t, err)
	second, err := lex.Classify(ctx, "great but slow")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestLexicon_IgnoresPunctuationAndCase(t *testing.T) {
	ctx := context.Background()
	lex := NewLexicon()

	result, err := lex.Classify(ctx, "LOVE it!!!")
	require.NoError(t, err)
	assert.Equal(t, prediction.LabelPositive, result.Label())
}

func TestLexicon_ScoreWithinBounds(t *testing.T) {
	ctx := context.Background()
	lex := NewLexicon()

	result, err := lex.Classify(ctx, "awesome amazing great perfect wonderful")
	require.NoError(t, err)
	assert.LessOrEqual(t, result.Score(), 1.0)
	assert.GreaterOrEqual(t, result.Score(), 0.0)
}

func TestLexicon_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewLexicon().Classify(ctx, "whatever")
	assert.Error(t, err)
}
