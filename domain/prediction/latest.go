package prediction

// LatestPerRecord reduces a set of predictions to the most recent one per
// record, applying the latest-per-group rule (max scored time, ties broken
// by max id). The storage layer returns raw rows and this reduction decides
// which row is current, so no correlated subquery or window support is
// required of the database.
func LatestPerRecord(predictions []Prediction) map[int64]Prediction {
	latest := make(map[int64]Prediction)
	for _, p := range predictions {
		current, ok := latest[p.RecordID()]
		if !ok || p.Supersedes(current) {
			latest[p.RecordID()] = p
		}
	}
	return latest
}

// LabelStat aggregates latest predictions sharing one label.
type LabelStat struct {
	count     int64
	meanScore float64
}

// Count returns the number of records whose latest prediction has this label.
func (s LabelStat) Count() int64 { return s.count }

// MeanScore returns the mean confidence over those records, 0 when empty.
func (s LabelStat) MeanScore() float64 { return s.meanScore }

// Stats summarises latest-per-record predictions for one model. Counting
// latest rows rather than log rows keeps re-scored records from inflating
// totals.
type Stats struct {
	modelName string
	total     int64
	meanScore float64
	byLabel   map[Label]LabelStat
}

// ComputeStats aggregates a latest-per-record reduction into per-label
// counts and mean scores. Every canonical label appears in the result even
// when its count is zero.
func ComputeStats(modelName string, latest map[int64]Prediction) Stats {
	counts := make(map[Label]int64, len(Labels()))
	sums := make(map[Label]float64, len(Labels()))
	var total int64
	var sum float64

	for _, p := range latest {
		counts[p.Label()]++
		sums[p.Label()] += p.Score()
		total++
		sum += p.Score()
	}

	byLabel := make(map[Label]LabelStat, len(Labels()))
	for _, label := range Labels() {
		stat := LabelStat{count: counts[label]}
		if stat.count > 0 {
			stat.meanScore = sums[label] / float64(stat.count)
		}
		byLabel[label] = stat
	}

	stats := Stats{
		modelName: modelName,
		total:     total,
		byLabel:   byLabel,
	}
	if total > 0 {
		stats.meanScore = sum / float64(total)
	}
	return stats
}

// ModelName returns the model these statistics describe.
func (s Stats) ModelName() string { return s.modelName }

// Total returns the number of distinct records with at least one prediction.
func (s Stats) Total() int64 { return s.total }

// MeanScore returns the mean confidence across all latest predictions.
func (s Stats) MeanScore() float64 { return s.meanScore }

// ByLabel returns the per-label aggregates keyed by canonical label.
func (s Stats) ByLabel() map[Label]LabelStat {
	result := make(map[Label]LabelStat, len(s.byLabel))
	for k, v := range s.byLabel {
		result[k] = v
	}
	return result
}
