package record

import (
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	r := New("golang", "generics are fine actually")

	if r.ID() != 0 {
		t.Errorf("ID() = %d, want 0 before persistence", r.ID())
	}
	if r.Topic() != "golang" {
		t.Errorf("Topic() = %q, want golang", r.Topic())
	}
	if r.Body() != "generics are fine actually" {
		t.Errorf("Body() = %q", r.Body())
	}
	if r.HasSourceTime() {
		t.Error("HasSourceTime() should be false by default")
	}
}

func TestWithSourceTime(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	r := New("golang", "hello").WithSourceTime(at)

	if !r.HasSourceTime() {
		t.Fatal("HasSourceTime() should be true")
	}
	if !r.SourceTime().Equal(at) {
		t.Errorf("SourceTime() = %v, want %v", r.SourceTime(), at)
	}
}

func TestWithRawPayload(t *testing.T) {
	payload := map[string]any{"source": "mock", "query": "golang"}
	r := New("golang", "hello").WithRawPayload(payload)

	if r.RawPayload()["source"] != "mock" {
		t.Errorf("RawPayload()[source] = %v, want mock", r.RawPayload()["source"])
	}
}

func TestReconstruct(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	r := Reconstruct(42, "golang", "hello", time.Time{}, nil, at)

	if r.ID() != 42 {
		t.Errorf("ID() = %d, want 42", r.ID())
	}
	if !r.IngestedAt().Equal(at) {
		t.Errorf("IngestedAt() = %v, want %v", r.IngestedAt(), at)
	}
	if r.HasSourceTime() {
		t.Error("zero source time should report HasSourceTime() = false")
	}
}
