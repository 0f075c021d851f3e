package ui

import (
	"testing"
	"time"
)

func TestTruncate(t *testing.T) {
	if got := truncate("hello world", 8); got != "hello..." {
		t.Fatalf("truncate = %q, want %q", got, "hello...")
	}
	if got := truncate("short", 10); got != "short" {
		t.Fatalf("truncate = %q, want unchanged", got)
	}
	if got := truncate("abc", 0); got != "" {
		t.Fatalf("truncate with zero max = %q, want empty", got)
	}
}

func TestTruncateMiddle(t *testing.T) {
	got := truncateMiddle("0123456789abcdef", 9)
	if len([]rune(got)) != 9 {
		t.Fatalf("truncateMiddle length = %d, want 9 (%q)", len([]rune(got)), got)
	}
	if got[0] != '0' {
		t.Fatalf("truncateMiddle = %q, want the start preserved", got)
	}
}

func TestFormatLatency(t *testing.T) {
	if got := formatLatency(0); got != "" {
		t.Fatalf("formatLatency(0) = %q, want empty", got)
	}
	if got := formatLatency(42 * time.Millisecond); got != "42ms" {
		t.Fatalf("formatLatency = %q, want 42ms", got)
	}
	if got := formatLatency(1500 * time.Millisecond); got != "1.5s" {
		t.Fatalf("formatLatency = %q, want 1.5s", got)
	}
}

func TestPadRight(t *testing.T) {
	if got := padRight("ab", 4); got != "ab  " {
		t.Fatalf("padRight = %q, want %q", got, "ab  ")
	}
	if got := padRight("abcdefgh", 5); got != "ab..." {
		t.Fatalf("padRight = %q, want truncated to width", got)
	}
}

func TestNextInCycle(t *testing.T) {
	options := []string{"name", "email", "phone"}
	if got := nextInCycle(options, "email"); got != "phone" {
		t.Fatalf("nextInCycle = %q, want phone", got)
	}
	if got := nextInCycle(options, "phone"); got != "name" {
		t.Fatalf("nextInCycle wraps = %q, want name", got)
	}
	if got := nextInCycle(options, "bogus"); got != "name" {
		t.Fatalf("nextInCycle unknown = %q, want first option", got)
	}
}

func TestNextTheme_Cycles(t *testing.T) {
	seen := map[string]bool{}
	name := ThemeNames()[0]
	for range ThemeNames() {
		seen[name] = true
		name = NextTheme(name)
	}
	if len(seen) != len(ThemeNames()) {
		t.Fatalf("theme cycle visited %d themes, want %d", len(seen), len(ThemeNames()))
	}
	if name != ThemeNames()[0] {
		t.Fatalf("theme cycle ended on %q, want wrap to %q", name, ThemeNames()[0])
	}
}
