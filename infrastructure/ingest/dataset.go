package ingest

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/feedpulse/feedpulse/domain/record"
)

// DatasetSourceName identifies the labeled CSV loader.
const DatasetSourceName = "dataset"

// DefaultDatasetLimit caps rows loaded when the caller does not say.
const DefaultDatasetLimit = 50

// datasetLabels maps the dataset's numeric sentiment codes to canonical
// labels. Rows outside this map are skipped.
var datasetLabels = map[int]string{
	-1: "NEGATIVE",
	0:  "NEUTRAL",
	1:  "POSITIVE",
}

// Dataset loads records from a labeled sentiment CSV. Expected columns are
// clean_text and category (-1, 0, 1). The dataset label rides along in the
// raw payload so analytics can compare predictions against ground truth; it
// never pre-populates the prediction log.
type Dataset struct{}

// NewDataset creates a CSV dataset loader.
func NewDataset() *Dataset {
	return &Dataset{}
}

// Name identifies the loader.
func (d *Dataset) Name() string {
	return DatasetSourceName
}

// Fetch loads up to params.Count rows from the CSV at params.Path. Rows
// with empty text, a missing label, or a label outside the known codes are
// skipped rather than failing the whole load.
func (d *Dataset) Fetch(ctx context.Context, params Params) ([]record.Record, error) {
	if params.Path == "" {
		return nil, errors.New("dataset source requires a file path")
	}

	f, err := os.Open(params.Path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	limit := params.Count
	if limit <= 0 {
		limit = DefaultDatasetLimit
	}
	topic := params.Topic
	if topic == "" {
		topic = DatasetSourceName
	}

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read dataset header: %w", err)
	}
	textCol, labelCol := -1, -1
	for i, name := range header {
		switch strings.TrimSpace(strings.ToLower(name)) {
		case "clean_text", "text", "tweet":
			textCol = i
		case "category", "label":
			labelCol = i
		}
	}
	if textCol < 0 || labelCol < 0 {
		return nil, fmt.Errorf("dataset is missing text or label column (header: %v)", header)
	}

	now := time.Now().UTC()
	records := make([]record.Record, 0, limit)
	for len(records) < limit {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// Malformed row, keep going.
			continue
		}
		if textCol >= len(row) || labelCol >= len(row) {
			continue
		}

		text := strings.TrimSpace(row[textCol])
		labelRaw := strings.TrimSpace(row[labelCol])
		if text == "" || labelRaw == "" {
			continue
		}
		labelInt, err := strconv.Atoi(strings.TrimSuffix(labelRaw, ".0"))
		if err != nil {
			continue
		}
		label, ok := datasetLabels[labelInt]
		if !ok {
			continue
		}

		rec := record.New(topic, text).
			WithSourceTime(now).
			WithRawPayload(map[string]any{
				"source":         "twitter-sentiment-dataset",
				"dataset_label":  label,
				"original_label": labelRaw,
			})
		records = append(records, rec)
	}
	return records, nil
}

var _ Source = (*Dataset)(nil)
