package session

import (
	"fmt"
	"time"
)

// TimestampLayout formats ProgressEntry.Timestamp in local time.
const TimestampLayout = "2006-01-02 15:04"

// RecentLimit is how many progress entries the scenario list shows.
const RecentLimit = 5

// AppendProgress adds e to log unless the last entry recorded the same
// response. Only the last entry is compared, so an answer repeated after
// a different one is logged again.
func AppendProgress(log []ProgressEntry, e ProgressEntry) []ProgressEntry {
	if n := len(log); n > 0 && log[n-1].Response == e.Response {
		return log
	}
	return append(log, e)
}

// AverageScore is the arithmetic mean of all scores, 0 for an empty log.
func AverageScore(log []ProgressEntry) float64 {
	if len(log) == 0 {
		return 0
	}
	var sum float64
	for _, e := range log {
		sum += e.Score
	}
	return sum / float64(len(log))
}

// FormatAverage renders an average as "4.0/5".
func FormatAverage(avg float64) string {
	return fmt.Sprintf("%.1f/5", avg)
}

// FormatScore renders a single score without a trailing ".0" for whole
// numbers.
func FormatScore(score float64) string {
	return fmt.Sprintf("%g/5", score)
}

// Band buckets a score for colouring.
type Band int

const (
	BandLow Band = iota
	BandMid
	BandHigh
)

// ScoreBand maps any score, in range or not, to a Band: >= 4 high,
// >= 3 mid, else low.
func ScoreBand(score float64) Band {
	switch {
	case score >= 4:
		return BandHigh
	case score >= 3:
		return BandMid
	default:
		return BandLow
	}
}

// ScoreLabelKey returns the i18n key of the label shown next to a score.
func ScoreLabelKey(score float64) string {
	switch {
	case score >= 5:
		return "score.excellent"
	case score >= 4:
		return "score.veryGood"
	case score >= 3:
		return "score.good"
	case score >= 2:
		return "score.okay"
	default:
		return "score.needsImprovement"
	}
}

// Recent returns up to n of the latest entries, oldest first.
func Recent(log []ProgressEntry, n int) []ProgressEntry {
	if n <= 0 {
		return nil
	}
	if len(log) > n {
		log = log[len(log)-n:]
	}
	return append([]ProgressEntry(nil), log...)
}

// NewestFirst returns a reversed copy of log.
func NewestFirst(log []ProgressEntry) []ProgressEntry {
	out := make([]ProgressEntry, len(log))
	for i, e := range log {
		out[len(log)-1-i] = e
	}
	return out
}

// SessionsToday counts entries stamped on now's calendar day.
func SessionsToday(log []ProgressEntry, now time.Time) int {
	today := now.Format("2006-01-02")
	n := 0
	for _, e := range log {
		if len(e.Timestamp) >= len(today) && e.Timestamp[:len(today)] == today {
			n++
		}
	}
	return n
}

// DistinctScenarios counts the scenarios that appear in log.
func DistinctScenarios(log []ProgressEntry) int {
	seen := make(map[string]struct{}, len(log))
	for _, e := range log {
		seen[e.ScenarioID] = struct{}{}
	}
	return len(seen)
}
