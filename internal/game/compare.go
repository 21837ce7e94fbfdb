// internal/game/compare.go
//
// Field comparison primitives for the guessing engine.
// Responsibilities:
//   - Compare one guessed value against one target value under a rule:
//     exact text, banded numeric distance (absolute or relative), calendar
//     date distance, and label-set overlap.
//   - Classify the result into a MatchStatus and attach a directional hint.
//
// Notes:
//   - A missing guessed value always classifies as unknown; it is an
//     outcome, not an error.
//   - These primitives know nothing about the game's domain shape; the
//     engine decides which attribute gets which rule.

package game

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/steamguess/go-server/internal/rules"
)

// MatchStatus is the per-attribute verdict of a guess.
type MatchStatus string

const (
	StatusExact   MatchStatus = "exact"
	StatusPartial MatchStatus = "partial"
	StatusClose   MatchStatus = "close"
	StatusWrong   MatchStatus = "wrong"
	StatusUnknown MatchStatus = "unknown"
)

// Hint points the player toward the target value.
type Hint string

const (
	HintEqual  Hint = "="
	HintApprox Hint = "≈"
	HintHigher Hint = "↑"
	HintLower  Hint = "↓"
	HintNone   Hint = ""
)

// FieldMatch is the verdict for a single attribute. Guessed is nil when the
// guess did not supply the value.
type FieldMatch struct {
	Field   string      `json:"field"`
	Guessed *string     `json:"guessedValue"`
	Target  string      `json:"correctValue"`
	Status  MatchStatus `json:"status"`
	Hint    Hint        `json:"hint,omitempty"`
}

const dateLayout = "2006-01-02"

// CompareText compares case-insensitively. Text has no partial bands: the
// verdict is exact, wrong, or unknown.
func CompareText(field string, user *string, correct string) FieldMatch {
	m := FieldMatch{Field: field, Target: correct, Status: StatusUnknown}
	if user == nil {
		return m
	}
	shown := *user
	m.Guessed = &shown
	if strings.EqualFold(strings.TrimSpace(*user), strings.TrimSpace(correct)) {
		m.Status = StatusExact
	} else {
		m.Status = StatusWrong
	}
	return m
}

// CompareNumeric measures the distance between user and correct under the
// rule's mode and classifies it against the ascending bands. Values are
// rendered through format for display only; format never affects the verdict.
func CompareNumeric(field string, user *float64, correct float64, rule rules.Rule, format func(float64) string) FieldMatch {
	if format == nil {
		format = formatNumber
	}
	m := FieldMatch{Field: field, Target: format(correct), Status: StatusUnknown}
	if user == nil {
		return m
	}
	shown := format(*user)
	m.Guessed = &shown

	dist := numericDistance(*user, correct, rule.Mode)
	m.Status = classifyAscending(dist, rule)
	m.Hint = direction(dist, *user-correct, rule.Exact)
	return m
}

// numericDistance computes the mode's distance measure.
// Relative mode uses the max/min ratio in percent (100 = equal). A zero on
// exactly one side has no meaningful ratio and saturates to +Inf, past every
// band, so it always classifies wrong instead of faulting on the division.
func numericDistance(user, correct float64, mode rules.Mode) float64 {
	if mode != rules.Relative {
		return math.Abs(user - correct)
	}
	lo, hi := math.Min(user, correct), math.Max(user, correct)
	if lo == 0 {
		if hi == 0 {
			return 0
		}
		return math.Inf(1)
	}
	return math.Abs(hi/lo) * 100
}

// CompareYear compares two calendar dates by absolute day difference.
// Both the difference and the year-denominated bands use a flat 365-day
// year (years × 365, leap days collapsed), so that "one year apart" always
// measures 365 regardless of leap years.
// Absent or unparseable dates are unknown.
func CompareYear(field string, user *string, correct string, rule rules.Rule) FieldMatch {
	m := FieldMatch{Field: field, Target: correct, Status: StatusUnknown}
	correctDate, err := time.Parse(dateLayout, correct)
	if err != nil {
		return m
	}
	if user == nil {
		return m
	}
	shown := *user
	m.Guessed = &shown
	userDate, err := time.Parse(dateLayout, strings.TrimSpace(*user))
	if err != nil {
		return m
	}

	signedDays := float64(flatDays(userDate) - flatDays(correctDate))
	dist := math.Abs(signedDays)
	days := rules.Rule{
		Mode:    rules.Absolute,
		Exact:   rule.Exact * 365,
		Partial: rule.Partial * 365,
		Close:   rule.Close * 365,
	}
	m.Status = classifyAscending(dist, days)
	m.Hint = direction(dist, signedDays, days.Exact)
	return m
}

// CompareTags classifies by the shared percentage of the union of two label
// sets. Higher overlap is better, so the bands descend; there is no
// directional hint for a set. A guess without labels is unknown.
func CompareTags(field string, user, correct []string, rule rules.Rule) FieldMatch {
	correctSet := normalizeLabels(correct)
	m := FieldMatch{Field: field, Target: strings.Join(correctSet, ", "), Status: StatusUnknown}
	userSet := normalizeLabels(user)
	if len(userSet) == 0 {
		return m
	}
	shown := strings.Join(userSet, ", ")
	m.Guessed = &shown

	m.Status = classifyOverlap(overlapPercent(userSet, correctSet), rule)
	return m
}

// overlapPercent returns intersection/union × 100 over two normalized label
// lists. An empty union yields 0.
func overlapPercent(a, b []string) float64 {
	union := make(map[string]struct{}, len(a)+len(b))
	inB := make(map[string]struct{}, len(b))
	for _, l := range b {
		union[l] = struct{}{}
		inB[l] = struct{}{}
	}
	inter := 0
	for _, l := range a {
		if _, ok := inB[l]; ok {
			inter++
		}
		union[l] = struct{}{}
	}
	if len(union) == 0 {
		return 0
	}
	return float64(inter) / float64(len(union)) * 100
}

// classifyAscending applies the inclusive ascending bands of a rule to a
// distance. Rules are validated at load time, so bands are monotonic here.
func classifyAscending(dist float64, rule rules.Rule) MatchStatus {
	switch {
	case dist <= rule.Exact:
		return StatusExact
	case dist <= rule.Partial:
		return StatusPartial
	case dist <= rule.Close:
		return StatusClose
	default:
		return StatusWrong
	}
}

// classifyOverlap applies descending overlap bands: more shared is better.
func classifyOverlap(pct float64, rule rules.Rule) MatchStatus {
	switch {
	case pct >= rule.Exact:
		return StatusExact
	case pct >= rule.Partial:
		return StatusPartial
	case pct >= rule.Close:
		return StatusClose
	default:
		return StatusWrong
	}
}

// direction derives the hint from an unsigned distance and the signed
// difference guess − target. Within 0.01 the values count as equal; within
// the exact band they count as approximately equal.
func direction(dist, signed, exactBand float64) Hint {
	switch {
	case dist <= 0.01:
		return HintEqual
	case dist <= exactBand:
		return HintApprox
	case signed > 0:
		return HintHigher
	default:
		return HintLower
	}
}

// cumulativeDays[m] is the day-of-year offset of month m+1 in a 365-day year.
var cumulativeDays = [12]int{0, 31, 59, 90, 120, 151, 181, 212, 243, 273, 304, 334}

// flatDays maps a date onto a 365-day-per-year timeline. February 29th
// collapses onto the 28th.
func flatDays(t time.Time) int {
	d := t.Day()
	if t.Month() == time.February && d == 29 {
		d = 28
	}
	return t.Year()*365 + cumulativeDays[t.Month()-1] + d
}

// normalizeLabels lowercases, trims and deduplicates labels, preserving
// first-seen order.
func normalizeLabels(labels []string) []string {
	seen := make(map[string]struct{}, len(labels))
	var out []string
	for _, label := range labels {
		l := strings.ToLower(strings.TrimSpace(label))
		if l == "" {
			continue
		}
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		out = append(out, l)
	}
	return out
}

// formatNumber is the fallback display formatter.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
