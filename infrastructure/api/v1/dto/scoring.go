package dto

import "time"

// Prediction is the wire form of one prediction log row.
type Prediction struct {
	ID        int64     `json:"id"`
	RecordID  int64     `json:"record_id"`
	ModelName string    `json:"model_name"`
	Label     string    `json:"label"`
	Score     float64   `json:"score"`
	ScoredAt  time.Time `json:"scored_at"`
}

// ScoreRequest asks for one scoring pass.
type ScoreRequest struct {
	ModelName     string     `json:"model_name,omitempty"`
	Topic         string     `json:"topic,omitempty"`
	SinceRecordID int64      `json:"since_record_id,omitempty"`
	SinceTime     *time.Time `json:"since_time,omitempty"`
	Limit         int        `json:"limit,omitempty"`
}

// ScoreResponse summarizes a completed scoring pass.
type ScoreResponse struct {
	ModelName  string `json:"model_name"`
	Candidates int    `json:"candidates"`
	Scored     int    `json:"scored"`
	Skipped    int    `json:"skipped"`
}

// ModelsResponse lists the registered classifier model names.
type ModelsResponse struct {
	Models []string `json:"models"`
}
