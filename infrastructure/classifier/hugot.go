// Package classifier provides sentiment classifier implementations.
package classifier

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/knights-analytics/hugot"
	"github.com/knights-analytics/hugot/pipelines"

	"github.com/feedpulse/feedpulse/domain/classify"
	"github.com/feedpulse/feedpulse/domain/prediction"
)

// DefaultHugotModel is the sentiment checkpoint feedpulse ships support for.
const DefaultHugotModel = "cardiffnlp/twitter-roberta-base-sentiment"

// defaultHugotLabels translates the cardiffnlp roberta vocabulary.
func defaultHugotLabels() classify.LabelMap {
	return classify.LabelMap{
		"LABEL_0": prediction.LabelNegative,
		"LABEL_1": prediction.LabelNeutral,
		"LABEL_2": prediction.LabelPositive,
	}
}

// ortRuntime holds the process-wide ONNX Runtime session and pipeline.
// ORT only allows one active session per process, so all Hugot instances
// share it. The mutex serializes both initialization and inference (ORT is
// not thread-safe), which also guarantees that concurrent first callers
// trigger exactly one model construction.
var ortRuntime struct {
	session  *hugot.Session
	pipeline *pipelines.TextClassificationPipeline
	mu       sync.Mutex
	ready    bool
}

// Hugot classifies text locally with a HuggingFace ONNX checkpoint via the
// hugot runtime. The model is expensive to construct: it is loaded lazily
// on the first Classify call and reused for the lifetime of the process
// (no eviction).
type Hugot struct {
	modelName string
	modelDir  string
	labels    classify.LabelMap
	maxChars  int
}

// HugotOption configures a Hugot classifier.
type HugotOption func(*Hugot)

// WithHugotModelName overrides the model name recorded on predictions.
func WithHugotModelName(name string) HugotOption {
	return func(h *Hugot) { h.modelName = name }
}

// WithHugotLabels overrides the raw-label translation table.
func WithHugotLabels(labels classify.LabelMap) HugotOption {
	return func(h *Hugot) { h.labels = labels }
}

// WithHugotMaxChars overrides the input truncation bound.
func WithHugotMaxChars(n int) HugotOption {
	return func(h *Hugot) { h.maxChars = n }
}

// NewHugot creates a Hugot classifier that looks for model files in
// modelDir.
func NewHugot(modelDir string, opts ...HugotOption) *Hugot {
	h := &Hugot{
		modelName: DefaultHugotModel,
		modelDir:  modelDir,
		labels:    defaultHugotLabels(),
		maxChars:  classify.DefaultMaxChars,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// ModelName identifies the checkpoint this classifier runs.
func (h *Hugot) ModelName() string {
	return h.modelName
}

// Available reports whether usable model files exist on disk.
func (h *Hugot) Available() bool {
	_, err := h.diskModelPath()
	return err == nil
}

// Classify scores one text with the local model. The first call constructs
// the model; concurrent first callers block on the runtime mutex and share
// the constructed instance. Load failures surface as classify.ErrUnavailable.
func (h *Hugot) Classify(ctx context.Context, text string) (classify.Result, error) {
	if err := ctx.Err(); err != nil {
		return classify.Result{}, err
	}

	ortRuntime.mu.Lock()
	defer ortRuntime.mu.Unlock()

	if err := h.initializeLocked(); err != nil {
		return classify.Result{}, fmt.Errorf("%w: %w", classify.ErrUnavailable, err)
	}

	input := classify.Truncate(text, h.maxChars)
	out, err := ortRuntime.pipeline.RunPipeline([]string{input})
	if err != nil {
		return classify.Result{}, fmt.Errorf("run classification pipeline: %w", err)
	}
	if len(out.ClassificationOutputs) == 0 || len(out.ClassificationOutputs[0]) == 0 {
		return classify.Result{}, fmt.Errorf("classification pipeline returned no output")
	}

	top := out.ClassificationOutputs[0][0]
	for _, candidate := range out.ClassificationOutputs[0][1:] {
		if candidate.Score > top.Score {
			top = candidate
		}
	}

	label, ok := h.labels.Translate(top.Label)
	if !ok {
		return classify.Result{}, fmt.Errorf("%w: model emitted unmapped label %q", prediction.ErrValidation, top.Label)
	}
	return classify.NewResult(label, float64(top.Score), top.Label), nil
}

// initializeLocked constructs the shared session and pipeline once.
// Callers must hold ortRuntime.mu.
func (h *Hugot) initializeLocked() error {
	if ortRuntime.ready {
		return nil
	}

	modelPath, err := h.diskModelPath()
	if err != nil {
		return err
	}

	session, err := newHugotSession()
	if err != nil {
		return fmt.Errorf("create hugot session: %w", err)
	}

	config := hugot.TextClassificationConfig{
		ModelPath: modelPath,
		Name:      "sentiment",
	}
	pipeline, err := hugot.NewPipeline(session, config)
	if err != nil {
		_ = session.Destroy()
		return fmt.Errorf("create text classification pipeline: %w", err)
	}

	ortRuntime.session = session
	ortRuntime.pipeline = pipeline
	ortRuntime.ready = true
	return nil
}

// diskModelPath looks for usable model files inside modelDir: first a
// subdirectory named after the model, then any subdirectory containing
// tokenizer.json.
func (h *Hugot) diskModelPath() (string, error) {
	named := filepath.Join(h.modelDir, sanitizeModelName(h.modelName))
	if _, err := os.Stat(filepath.Join(named, "tokenizer.json")); err == nil {
		return named, nil
	}

	entries, err := os.ReadDir(h.modelDir)
	if err != nil {
		return "", fmt.Errorf("read model directory %s: %w", h.modelDir, err)
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		candidate := filepath.Join(h.modelDir, entry.Name())
		if _, statErr := os.Stat(filepath.Join(candidate, "tokenizer.json")); statErr == nil {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("no model subdirectory with tokenizer.json found in %s", h.modelDir)
}

// sanitizeModelName turns a HuggingFace model id into a directory name.
func sanitizeModelName(name string) string {
	return strings.ReplaceAll(name, "/", "_")
}

var _ classify.Classifier = (*Hugot)(nil)
