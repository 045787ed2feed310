package classify

import (
	"strings"
	"testing"
)

func TestTruncate_ShortInput(t *testing.T) {
	if got := Truncate("hello", 512); got != "hello" {
		t.Errorf("Truncate() = %q, want unchanged", got)
	}
}

func TestTruncate_LongInput(t *testing.T) {
	long := strings.Repeat("a", 600)
	got := Truncate(long, 512)
	if len(got) != 512 {
		t.Errorf("len(Truncate()) = %d, want 512", len(got))
	}
}

func TestTruncate_RuneSafe(t *testing.T) {
	// 4 runes, multibyte each
	text := "éééé"
	got := Truncate(text, 2)
	if got != "éé" {
		t.Errorf("Truncate() = %q, want éé", got)
	}
}

func TestTruncate_NoLimit(t *testing.T) {
	long := strings.Repeat("a", 600)
	if got := Truncate(long, 0); got != long {
		t.Errorf("max <= 0 should return the input unchanged")
	}
}
