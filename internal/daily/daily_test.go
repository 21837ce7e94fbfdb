package daily

import (
	"testing"
	"time"
)

func TestDateKeyUTC(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*3600)
	// 03:00 on the 2nd in UTC+9 is still the 1st in UTC.
	got := DateKey(time.Date(2024, 5, 2, 3, 0, 0, 0, loc))
	if got != "2024-05-01" {
		t.Errorf("DateKey() = %q, want 2024-05-01", got)
	}
}

func TestGameIndexDeterministic(t *testing.T) {
	date := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	a := GameIndex(date, "salt", 100)
	b := GameIndex(date, "salt", 100)
	if a != b {
		t.Errorf("same inputs gave %d and %d", a, b)
	}
	if a < 0 || a >= 100 {
		t.Errorf("index %d out of range", a)
	}

	// Time of day within the same UTC date must not matter.
	later := time.Date(2024, 5, 1, 23, 59, 0, 0, time.UTC)
	if GameIndex(later, "salt", 100) != a {
		t.Error("index changed within the same date")
	}

	if GameIndex(date, "other-salt", 100) == a && GameIndex(date.AddDate(0, 0, 1), "salt", 100) == a {
		t.Error("index should vary with salt or date")
	}

	if GameIndex(date, "salt", 0) != 0 {
		t.Error("empty catalog should index 0")
	}
}
