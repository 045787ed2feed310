package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feedpulse/feedpulse/domain/prediction"
)

func TestParseSentimentReply(t *testing.T) {
	result, err := parseSentimentReply(`{"label": "POSITIVE", "score": 0.92}`)
	require.NoError(t, err)
	assert.Equal(t, prediction.LabelPositive, result.Label())
	assert.InDelta(t, 0.92, result.Score(), 0.001)
}

func TestParseSentimentReply_CodeFence(t *testing.T) {
	reply := "```json\n{\"label\": \"negative\", \"score\": 0.7}\n```"
	result, err := parseSentimentReply(reply)
	require.NoError(t, err)
	assert.Equal(t, prediction.LabelNegative, result.Label())
}

func TestParseSentimentReply_UnknownLabel(t *testing.T) {
	_, err := parseSentimentReply(`{"label": "MEH", "score": 0.5}`)
	assert.ErrorIs(t, err, prediction.ErrValidation)
}

func TestParseSentimentReply_NotJSON(t *testing.T) {
	_, err := parseSentimentReply("the sentiment is positive")
	assert.ErrorIs(t, err, prediction.ErrValidation)
}

func TestParseSentimentReply_ClampsScore(t *testing.T) {
	result, err := parseSentimentReply(`{"label": "NEUTRAL", "score": 1.7}`)
	require.NoError(t, err)
	assert.Equal(t, 1.0, result.Score())

	result, err = parseSentimentReply(`{"label": "NEUTRAL", "score": -0.2}`)
	require.NoError(t, err)
	assert.Equal(t, 0.0, result.Score())
}

func TestOpenAI_ModelName(t *testing.T) {
	c := NewOpenAI("key", "", "gpt-4o-mini")
	assert.Equal(t, "openai/gpt-4o-mini", c.ModelName())

	c = NewOpenAI("key", "", "")
	assert.Equal(t, "openai/gpt-4o-mini", c.ModelName())
}
