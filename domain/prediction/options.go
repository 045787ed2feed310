package prediction

import "github.com/feedpulse/feedpulse/domain/storage"

// WithModelName filters by the "model_name" column.
func WithModelName(name string) storage.Option {
	return storage.WithCondition("model_name", name)
}

// WithRecordID filters by the "record_id" column.
func WithRecordID(id int64) storage.Option {
	return storage.WithCondition("record_id", id)
}

// WithRecordIDIn filters by the "record_id" column using IN.
func WithRecordIDIn(ids []int64) storage.Option {
	return storage.WithConditionIn("record_id", ids)
}

// WithLabel filters by the "label" column.
func WithLabel(label Label) storage.Option {
	return storage.WithCondition("label", string(label))
}
