package dto

// ScoredRecord joins a record with its latest prediction, if any.
type ScoredRecord struct {
	Record     Record      `json:"record"`
	Prediction *Prediction `json:"prediction,omitempty"`
}

// LatestResponse wraps a page of latest-sentiment rows.
type LatestResponse struct {
	Data []ScoredRecord `json:"data"`
	Meta ListMeta       `json:"meta"`
}

// LabelStat aggregates latest predictions sharing one label.
type LabelStat struct {
	Count     int64   `json:"count"`
	MeanScore float64 `json:"mean_score"`
}

// StatsResponse summarizes latest-per-record sentiment for one model.
type StatsResponse struct {
	ModelName string               `json:"model_name"`
	Topic     string               `json:"topic,omitempty"`
	Total     int64                `json:"total"`
	MeanScore float64              `json:"mean_score"`
	ByLabel   map[string]LabelStat `json:"by_label"`
}
