// Package classify defines the classifier boundary: a black-box function
// from text to a canonical sentiment label with a confidence score.
package classify

import (
	"context"
	"errors"

	"github.com/feedpulse/feedpulse/domain/prediction"
)

// ErrUnavailable indicates the underlying model failed to load or respond.
// It is fatal to the current scoring pass but not to the process; a later
// pass may succeed once the model becomes available.
var ErrUnavailable = errors.New("classifier model unavailable")

// DefaultMaxChars bounds the text prefix submitted to a model. Truncation
// keeps worst-case latency and memory independent of record size.
const DefaultMaxChars = 512

// Truncate returns at most max runes of text.
func Truncate(text string, max int) string {
	if max <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max])
}

// Result is one classification outcome. The raw label preserves the model's
// own vocabulary before translation to the canonical set.
type Result struct {
	label    prediction.Label
	score    float64
	rawLabel string
}

// NewResult creates a classification result.
func NewResult(label prediction.Label, score float64, rawLabel string) Result {
	return Result{label: label, score: score, rawLabel: rawLabel}
}

// Label returns the canonical sentiment label.
func (r Result) Label() prediction.Label { return r.label }

// Score returns the confidence value in [0, 1].
func (r Result) Score() float64 { return r.score }

// RawLabel returns the untranslated model vocabulary label.
func (r Result) RawLabel() string { return r.rawLabel }

// Classifier scores a single text. Implementations construct their model
// lazily on first use, guard that construction so concurrent first callers
// share one instance, and are deterministic for fixed weights and input.
type Classifier interface {
	// ModelName identifies the classifier version/variant. Predictions are
	// keyed by this name, so a model upgrade must use a new name.
	ModelName() string

	// Classify scores one text. Implementations truncate the input to a
	// bounded prefix before submission. Returns ErrUnavailable (possibly
	// wrapped) when the model cannot be loaded.
	Classify(ctx context.Context, text string) (Result, error)
}
