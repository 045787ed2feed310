package ingest

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/feedpulse/feedpulse/domain/record"
)

// SyntheticSourceName identifies the built-in generator.
const SyntheticSourceName = "synthetic"

// DefaultSyntheticCount is how many records the generator produces when the
// caller does not say.
const DefaultSyntheticCount = 10

var syntheticTemplates = []string{
	"I love %s, this is awesome!",
	"%s is overrated tbh.",
	"Neutral take: %s exists.",
	"Hot take: %s is changing everything.",
	"Not sure how I feel about %s yet.",
	"%s is honestly terrible today.",
	"Big fan of %s.",
	"%s news is wild.",
	"Why is everyone talking about %s?",
	"%s just made my day.",
}

// Synthetic generates short texts about a topic with varying sentiment. It
// stands in for a live social feed during development and demos.
type Synthetic struct {
	rng *rand.Rand
}

// NewSynthetic creates a generator seeded from the clock.
func NewSynthetic() *Synthetic {
	return &Synthetic{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NewSyntheticWithSeed creates a deterministic generator.
func NewSyntheticWithSeed(seed int64) *Synthetic {
	return &Synthetic{rng: rand.New(rand.NewSource(seed))}
}

// Name identifies the generator.
func (s *Synthetic) Name() string {
	return SyntheticSourceName
}

// Fetch produces params.Count records on params.Topic.
func (s *Synthetic) Fetch(ctx context.Context, params Params) ([]record.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	count := params.Count
	if count <= 0 {
		count = DefaultSyntheticCount
	}
	topic := params.Topic
	if topic == "" {
		topic = "feedpulse"
	}

	now := time.Now().UTC()
	records := make([]record.Record, 0, count)
	for i := 0; i < count; i++ {
		text := fmt.Sprintf(syntheticTemplates[s.rng.Intn(len(syntheticTemplates))], topic)
		rec := record.New(topic, text).
			WithSourceTime(now).
			WithRawPayload(map[string]any{
				"source": "mock",
				"query":  topic,
				"text":   text,
			})
		records = append(records, rec)
	}
	return records, nil
}

var _ Source = (*Synthetic)(nil)
