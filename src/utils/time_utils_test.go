package utils

import (
	"testing"
	"time"
)

func TestResetTime(t *testing.T) {
	at := time.Date(2026, time.February, 10, 15, 42, 33, 12345, time.UTC)

	if got := ResetTime(at, "minute"); got.Second() != 0 || got.Minute() != 42 {
		t.Fatalf("minute reset wrong: %s", got)
	}
	if got := ResetTime(at, "hour"); got.Minute() != 0 || got.Hour() != 15 {
		t.Fatalf("hour reset wrong: %s", got)
	}
	if got := ResetTime(at, "day"); !got.Equal(time.Date(2026, time.February, 10, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("day reset wrong: %s", got)
	}
	if got := ResetTime(at, "week"); !got.Equal(at) {
		t.Fatalf("unknown granularity must return the input: %s", got)
	}
}
