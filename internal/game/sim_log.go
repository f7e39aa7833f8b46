package game

import (
	"fmt"
	"strings"
)

// SimLogEntry is one recorded session event.
type SimLogEntry struct {
	Tick     int
	Category string  // board, score, deadline, session
	Key      string  // specific event name within the category
	Value    string  // human-readable detail
	NumVal   float64 // optional numeric value for threshold checks
}

// String formats the entry as a fixed-width log line.
//
//	[T=042] board     merge            rank 3 at (210,455) +3
func (e SimLogEntry) String() string {
	return fmt.Sprintf("[T=%03d] %-9s %-16s %s", e.Tick, e.Category, e.Key, e.Value)
}

// SimLog collects structured session events. It is unbounded and
// machine-readable; the on-screen feed keeps its own ring buffer.
type SimLog struct {
	entries []SimLogEntry
	verbose bool
}

// NewSimLog creates a SimLog. If verbose is true, score_changed entries are
// recorded too.
func NewSimLog(verbose bool) *SimLog {
	return &SimLog{verbose: verbose}
}

// Add records a new entry.
func (sl *SimLog) Add(tick int, category, key, value string, numVal float64) {
	sl.entries = append(sl.entries, SimLogEntry{
		Tick:     tick,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	})
}

// AddVerbose records an entry only when verbose mode is on.
func (sl *SimLog) AddVerbose(tick int, category, key, value string, numVal float64) {
	if !sl.verbose {
		return
	}
	sl.Add(tick, category, key, value, numVal)
}

// Record is a bus Handler.
func (sl *SimLog) Record(ev Event) {
	switch ev.Kind {
	case EventDrop:
		sl.Add(ev.Tick, "board", "drop", fmt.Sprintf("rank %d at x=%.0f", ev.Rank, ev.X), float64(ev.Rank))
	case EventMerge:
		sl.Add(ev.Tick, "board", "merge", fmt.Sprintf("rank %d at (%.0f,%.0f) +%d", ev.Rank, ev.X, ev.Y, ev.Score), float64(ev.Rank))
	case EventVanish:
		sl.Add(ev.Tick, "board", "vanish", fmt.Sprintf("at (%.0f,%.0f) +%d", ev.X, ev.Y, ev.Score), float64(ev.Score))
	case EventDeadlineWarning:
		key := "cleared"
		if ev.Warning {
			key = "warning"
		}
		sl.Add(ev.Tick, "deadline", key, key, boolNum(ev.Warning))
	case EventGameOver:
		sl.Add(ev.Tick, "session", "game_over", fmt.Sprintf("final score %d", ev.Score), float64(ev.Score))
	case EventStateChanged:
		sl.Add(ev.Tick, "session", "state", fmt.Sprintf("%s → %s", ev.From, ev.To), float64(ev.To))
	case EventScoreChanged:
		sl.AddVerbose(ev.Tick, "score", "changed", fmt.Sprintf("score=%d high=%d merges=%d", ev.Score, ev.HighScore, ev.Merges), float64(ev.Score))
	}
}

func boolNum(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// Entries returns all recorded entries.
func (sl *SimLog) Entries() []SimLogEntry {
	return sl.entries
}

// Filter returns entries matching the given category and/or key.
// Pass empty string to match any value for that field.
func (sl *SimLog) Filter(category, key string) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

// FilterTickRange returns entries within [fromTick, toTick] inclusive.
func (sl *SimLog) FilterTickRange(fromTick, toTick int) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if e.Tick >= fromTick && e.Tick <= toTick {
			out = append(out, e)
		}
	}
	return out
}

// CountCategory returns how many entries match the given category and key.
func (sl *SimLog) CountCategory(category, key string) int {
	return len(sl.Filter(category, key))
}

// LastOf returns the most recent entry matching category+key, or false if none.
func (sl *SimLog) LastOf(category, key string) (SimLogEntry, bool) {
	entries := sl.Filter(category, key)
	if len(entries) == 0 {
		return SimLogEntry{}, false
	}
	return entries[len(entries)-1], true
}

// HasEntry returns true if at least one entry matches category, key, and value substring.
func (sl *SimLog) HasEntry(category, key, valueSubstr string) bool {
	for _, e := range sl.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		if valueSubstr != "" && !strings.Contains(e.Value, valueSubstr) {
			continue
		}
		return true
	}
	return false
}

// Format returns the full log as a single string for t.Log output.
func (sl *SimLog) Format() string {
	var sb strings.Builder
	for _, e := range sl.entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Summary returns a short human-readable summary of the board.
func (sl *SimLog) Summary(snap Snapshot) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- Summary at T=%03d ---\n", snap.Tick)
	fmt.Fprintf(&sb, "state=%s score=%d high=%d merges=%d drops=%d\n", snap.State, snap.Score, snap.HighScore, snap.Merges, snap.Drops)

	byRank := map[Rank]int{}
	top := Rank(0)
	for _, t := range snap.Tokens {
		byRank[t.Rank]++
		if t.Rank > top {
			top = t.Rank
		}
	}
	sb.WriteString("board: ")
	if len(snap.Tokens) == 0 {
		sb.WriteString("empty")
	}
	for r := Rank(1); r <= top; r++ {
		if n := byRank[r]; n > 0 {
			fmt.Fprintf(&sb, "r%d=%d  ", r, n)
		}
	}
	sb.WriteByte('\n')
	if snap.Warning {
		fmt.Fprintf(&sb, "deadline: warning, %s left\n", snap.GraceLeft)
	}
	return sb.String()
}
