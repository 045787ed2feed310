package classify

import (
	"fmt"
	"os"

	"github.com/feedpulse/feedpulse/domain/prediction"
	"gopkg.in/yaml.v3"
)

// LabelMap translates one model's raw label vocabulary to the canonical
// sentiment set. Raw labels differ per model family (LABEL_0/1/2 for the
// cardiffnlp roberta checkpoints, neg/neu/pos for others), so the mapping
// is configuration rather than a hardcoded literal.
type LabelMap map[string]prediction.Label

// Translate maps a raw model label to the canonical set. Returns false when
// the raw label has no mapping.
func (m LabelMap) Translate(raw string) (prediction.Label, bool) {
	label, ok := m[raw]
	return label, ok
}

// Merge returns a copy of m with entries from other overriding on conflict.
func (m LabelMap) Merge(other LabelMap) LabelMap {
	merged := make(LabelMap, len(m)+len(other))
	for k, v := range m {
		merged[k] = v
	}
	for k, v := range other {
		merged[k] = v
	}
	return merged
}

// Validate checks that every target label belongs to the canonical set.
func (m LabelMap) Validate() error {
	for raw, label := range m {
		if !label.Valid() {
			return fmt.Errorf("%w: label map entry %q -> %q is not canonical", prediction.ErrValidation, raw, label)
		}
	}
	return nil
}

// LabelConfig holds per-model label translation tables, loadable from YAML:
//
//	models:
//	  cardiffnlp/twitter-roberta-base-sentiment:
//	    LABEL_0: NEGATIVE
//	    LABEL_1: NEUTRAL
//	    LABEL_2: POSITIVE
type LabelConfig struct {
	Models map[string]map[string]string `yaml:"models"`
}

// ForModel returns the configured label map for a model, nil when absent.
func (c LabelConfig) ForModel(modelName string) LabelMap {
	raw, ok := c.Models[modelName]
	if !ok {
		return nil
	}
	m := make(LabelMap, len(raw))
	for k, v := range raw {
		m[k] = prediction.Label(v)
	}
	return m
}

// LoadLabelConfig reads a YAML label configuration file. A missing path is
// not an error; it simply yields an empty config.
func LoadLabelConfig(path string) (LabelConfig, error) {
	if path == "" {
		return LabelConfig{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return LabelConfig{}, nil
		}
		return LabelConfig{}, fmt.Errorf("read label config: %w", err)
	}

	var cfg LabelConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return LabelConfig{}, fmt.Errorf("parse label config: %w", err)
	}

	for model, entries := range cfg.Models {
		for _, target := range entries {
			if !prediction.Label(target).Valid() {
				return LabelConfig{}, fmt.Errorf("%w: model %q maps to unknown label %q", prediction.ErrValidation, model, target)
			}
		}
	}
	return cfg, nil
}
