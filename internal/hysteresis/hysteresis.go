// Package hysteresis implements the time-windowed condition history
// filter that suppresses oscillation between updates (§4.9).
package hysteresis

import (
	"time"

	"github.com/lox/wandiweather/internal/classify"
)

// Retention is how long condition history entries are kept.
const Retention = 24 * time.Hour

// RecentWindow is the lookback used for the "recent_count" check.
const RecentWindow = 1 * time.Hour

const (
	adjacentDelta    = 15.0
	nonAdjacentDelta = 25.0
	maxDelta         = 30.0
)

// Entry is one timestamped condition in the history.
type Entry struct {
	Timestamp time.Time
	Condition classify.Condition
}

// History is the bounded condition history, exclusively owned by the
// pipeline orchestrator.
type History struct {
	entries []Entry
}

// New returns an empty history.
func New() *History { return &History{} }

// Clone returns a deep copy.
func (h *History) Clone() *History {
	out := &History{entries: make([]Entry, len(h.entries))}
	copy(out.entries, h.entries)
	return out
}

// All returns every retained entry, oldest first, for persistence.
func (h *History) All() []Entry {
	out := make([]Entry, len(h.entries))
	copy(out, h.entries)
	return out
}

// Restore replaces the history's contents with entries, which must
// already be time-sorted ascending (as returned by All), used when
// reloading persisted state.
func (h *History) Restore(entries []Entry) {
	h.entries = append([]Entry{}, entries...)
}

// Append adds an entry and evicts anything older than Retention.
func (h *History) Append(e Entry) {
	h.entries = append(h.entries, e)
	cutoff := e.Timestamp.Add(-Retention)
	idx := 0
	for idx < len(h.entries) && h.entries[idx].Timestamp.Before(cutoff) {
		idx++
	}
	if idx > 0 {
		h.entries = append([]Entry{}, h.entries[idx:]...)
	}
}

// Last returns the most recently appended condition.
func (h *History) Last() (classify.Condition, bool) {
	if len(h.entries) == 0 {
		return "", false
	}
	return h.entries[len(h.entries)-1].Condition, true
}

func (h *History) countSince(now time.Time, window time.Duration, cond classify.Condition) int {
	cutoff := now.Add(-window)
	n := 0
	for _, e := range h.entries {
		if !e.Timestamp.Before(cutoff) && !e.Timestamp.After(now) && e.Condition == cond {
			n++
		}
	}
	return n
}

// majorChangesCalm and majorChangesSevere define the bidirectional set of
// condition pairs (one calm, one severe) that always bypass hysteresis
// (§4.9).
var majorChangesCalm = map[classify.Condition]bool{
	classify.Sunny:      true,
	classify.ClearNight: true,
	classify.Fog:        true,
}

var majorChangesSevere = map[classify.Condition]bool{
	classify.LightningRainy: true,
	classify.Pouring:        true,
	classify.Snowy:          true,
	classify.Lightning:      true,
	classify.Windy:          true,
}

func isMajorChange(a, b classify.Condition) bool {
	return (majorChangesCalm[a] && majorChangesSevere[b]) || (majorChangesCalm[b] && majorChangesSevere[a])
}

var adjacentCloudTiers = map[[2]classify.Condition]bool{
	{classify.Sunny, classify.PartlyCloudy}: true,
	{classify.PartlyCloudy, classify.Sunny}: true,
	{classify.PartlyCloudy, classify.Cloudy}: true,
	{classify.Cloudy, classify.PartlyCloudy}: true,
}

func isAdjacentCloudTier(a, b classify.Condition) bool {
	return adjacentCloudTiers[[2]classify.Condition{a, b}]
}

// Filter applies the hysteresis rule to a new candidate condition given
// the current cloud cover delta from the previous update.
func (h *History) Filter(now time.Time, candidate classify.Condition, cloudCoverDelta float64) classify.Condition {
	prev, ok := h.Last()
	if !ok {
		return candidate
	}
	if candidate == prev {
		return candidate
	}

	absDelta := cloudCoverDelta
	if absDelta < 0 {
		absDelta = -absDelta
	}
	if h.countSince(now, RecentWindow, candidate) >= 1 {
		return candidate
	}

	if isMajorChange(prev, candidate) {
		return candidate
	}

	if absDelta > maxDelta {
		return prev
	}

	if isAdjacentCloudTier(prev, candidate) {
		if absDelta >= adjacentDelta {
			return candidate
		}
		return prev
	}

	if absDelta >= nonAdjacentDelta {
		return candidate
	}
	return prev
}
