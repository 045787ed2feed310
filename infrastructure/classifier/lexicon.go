package classifier

import (
	"context"
	"strings"

	"github.com/feedpulse/feedpulse/domain/classify"
	"github.com/feedpulse/feedpulse/domain/prediction"
)

// LexiconModelName identifies the built-in wordlist classifier. It is a
// distinct model name so its predictions never mix with transformer output.
const LexiconModelName = "feedpulse/lexicon-v1"

var positiveWords = map[string]struct{}{
	"amazing": {}, "awesome": {}, "best": {}, "brilliant": {}, "excellent": {},
	"excited": {}, "fantastic": {}, "glad": {}, "good": {}, "great": {},
	"happy": {}, "impressive": {}, "love": {}, "loved": {}, "nice": {},
	"perfect": {}, "thanks": {}, "wonderful": {},
}

var negativeWords = map[string]struct{}{
	"angry": {}, "awful": {}, "bad": {}, "broken": {}, "disappointed": {},
	"disappointing": {}, "fail": {}, "failed": {}, "hate": {}, "horrible": {},
	"sad": {}, "slow": {}, "terrible": {}, "worst": {}, "wrong": {},
	"useless": {},
}

// Lexicon is a deterministic wordlist classifier. It needs no model files
// or network access, which makes it the fallback when no other classifier
// is available and the workhorse in tests.
type Lexicon struct {
	maxChars int
}

// NewLexicon creates a wordlist classifier.
func NewLexicon() *Lexicon {
	return &Lexicon{maxChars: classify.DefaultMaxChars}
}

// ModelName identifies the wordlist classifier.
func (l *Lexicon) ModelName() string {
	return LexiconModelName
}

// Classify counts positive and negative words and picks the majority
// sentiment. Score reflects how lopsided the count is, floored at 0.5 so a
// bare one-word majority is not reported as near-certain.
func (l *Lexicon) Classify(ctx context.Context, text string) (classify.Result, error) {
	if err := ctx.Err(); err != nil {
		return classify.Result{}, err
	}

	var pos, neg int
	for _, word := range strings.Fields(strings.ToLower(classify.Truncate(text, l.maxChars))) {
		word = strings.Trim(word, ".,!?;:'\"()#@")
		if _, ok := positiveWords[word]; ok {
			pos++
		}
		if _, ok := negativeWords[word]; ok {
			neg++
		}
	}

	switch {
	case pos > neg:
		return classify.NewResult(prediction.LabelPositive, lexiconScore(pos, neg), "positive"), nil
	case neg > pos:
		return classify.NewResult(prediction.LabelNegative, lexiconScore(neg, pos), "negative"), nil
	default:
		return classify.NewResult(prediction.LabelNeutral, 0.5, "neutral"), nil
	}
}

func lexiconScore(majority, minority int) float64 {
	score := 0.5 + 0.5*float64(majority-minority)/float64(majority+minority+1)
	if score > 1 {
		score = 1
	}
	return score
}

var _ classify.Classifier = (*Lexicon)(nil)
