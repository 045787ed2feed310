package prediction

import (
	"errors"
	"testing"
	"time"
)

func TestNew_Valid(t *testing.T) {
	p, err := New(7, "test-model", LabelPositive, 0.9)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if p.RecordID() != 7 {
		t.Errorf("RecordID() = %d, want 7", p.RecordID())
	}
	if p.ModelName() != "test-model" {
		t.Errorf("ModelName() = %q, want test-model", p.ModelName())
	}
	if p.Label() != LabelPositive {
		t.Errorf("Label() = %q, want POSITIVE", p.Label())
	}
	if p.ID() != 0 {
		t.Errorf("ID() = %d, want 0 before persistence", p.ID())
	}
}

func TestNew_InvalidLabel(t *testing.T) {
	_, err := New(1, "test-model", Label("HAPPY"), 0.5)
	if !errors.Is(err, ErrValidation) {
		t.Errorf("New() error = %v, want ErrValidation", err)
	}
}

func TestNew_ScoreOutOfRange(t *testing.T) {
	for _, score := range []float64{-0.1, 1.1} {
		_, err := New(1, "test-model", LabelNeutral, score)
		if !errors.Is(err, ErrValidation) {
			t.Errorf("New(score=%v) error = %v, want ErrValidation", score, err)
		}
	}
}

func TestNew_ScoreBoundsInclusive(t *testing.T) {
	for _, score := range []float64{0, 1} {
		if _, err := New(1, "test-model", LabelNeutral, score); err != nil {
			t.Errorf("New(score=%v) error = %v, want nil", score, err)
		}
	}
}

func TestNew_MissingModelName(t *testing.T) {
	_, err := New(1, "", LabelNeutral, 0.5)
	if !errors.Is(err, ErrValidation) {
		t.Errorf("New() error = %v, want ErrValidation", err)
	}
}

func TestLabel_Valid(t *testing.T) {
	for _, label := range Labels() {
		if !label.Valid() {
			t.Errorf("%q should be valid", label)
		}
	}
	if Label("positive").Valid() {
		t.Error("labels are case-sensitive, lowercase should be invalid")
	}
}

func TestSupersedes_LaterTimeWins(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	older := Reconstruct(1, 7, "m", LabelNegative, 0.8, base)
	newer := Reconstruct(2, 7, "m", LabelPositive, 0.6, base.Add(time.Minute))

	if !newer.Supersedes(older) {
		t.Error("newer prediction should supersede older")
	}
	if older.Supersedes(newer) {
		t.Error("older prediction should not supersede newer")
	}
}

func TestSupersedes_TieBrokenByID(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	first := Reconstruct(1, 7, "m", LabelNegative, 0.8, at)
	second := Reconstruct(2, 7, "m", LabelPositive, 0.6, at)

	if !second.Supersedes(first) {
		t.Error("on equal scored time, the larger id should supersede")
	}
	if first.Supersedes(second) {
		t.Error("smaller id should not supersede larger on equal time")
	}
}

func TestLatestPerRecord(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	rows := []Prediction{
		Reconstruct(1, 10, "m", LabelNegative, 0.9, base),
		Reconstruct(2, 10, "m", LabelPositive, 0.7, base.Add(time.Hour)),
		Reconstruct(3, 11, "m", LabelNeutral, 0.5, base),
	}

	latest := LatestPerRecord(rows)
	if len(latest) != 2 {
		t.Fatalf("len(latest) = %d, want 2", len(latest))
	}
	if latest[10].ID() != 2 {
		t.Errorf("latest for record 10 has id %d, want 2", latest[10].ID())
	}
	if latest[11].ID() != 3 {
		t.Errorf("latest for record 11 has id %d, want 3", latest[11].ID())
	}
}

func TestLatestPerRecord_OrderIndependent(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	a := Reconstruct(1, 10, "m", LabelNegative, 0.9, base)
	b := Reconstruct(2, 10, "m", LabelPositive, 0.7, base.Add(time.Hour))

	forward := LatestPerRecord([]Prediction{a, b})
	reverse := LatestPerRecord([]Prediction{b, a})

	if forward[10].ID() != reverse[10].ID() {
		t.Errorf("reduction depends on input order: %d vs %d", forward[10].ID(), reverse[10].ID())
	}
}

func TestComputeStats(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	latest := LatestPerRecord([]Prediction{
		Reconstruct(1, 10, "m", LabelPositive, 0.8, base),
		Reconstruct(2, 11, "m", LabelPositive, 0.6, base),
		Reconstruct(3, 12, "m", LabelNegative, 0.9, base),
	})

	stats := ComputeStats("m", latest)
	if stats.Total() != 3 {
		t.Errorf("Total() = %d, want 3", stats.Total())
	}

	byLabel := stats.ByLabel()
	if byLabel[LabelPositive].Count() != 2 {
		t.Errorf("positive count = %d, want 2", byLabel[LabelPositive].Count())
	}
	if got := byLabel[LabelPositive].MeanScore(); got < 0.699 || got > 0.701 {
		t.Errorf("positive mean = %v, want 0.7", got)
	}
	if byLabel[LabelNeutral].Count() != 0 {
		t.Errorf("neutral count = %d, want 0", byLabel[LabelNeutral].Count())
	}
	if _, ok := byLabel[LabelNeutral]; !ok {
		t.Error("zero-count labels should still appear in the breakdown")
	}
}

func TestComputeStats_Empty(t *testing.T) {
	stats := ComputeStats("m", nil)
	if stats.Total() != 0 {
		t.Errorf("Total() = %d, want 0", stats.Total())
	}
	if stats.MeanScore() != 0 {
		t.Errorf("MeanScore() = %v, want 0", stats.MeanScore())
	}
	if len(stats.ByLabel()) != len(Labels()) {
		t.Errorf("ByLabel() has %d entries, want %d", len(stats.ByLabel()), len(Labels()))
	}
}
