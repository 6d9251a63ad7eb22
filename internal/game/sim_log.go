package game

import (
	"fmt"
	"strings"
)

// SimLogEntry is one recorded event during a headless test session.
type SimLogEntry struct {
	Tick     int
	Source   string  // decision id, "session", "player", or "--" for global events
	Category string  // scene, decision, stock, suspicion, level, quiz, schedule, player, env
	Key      string  // specific event name within the category
	Value    string  // human-readable detail
	NumVal   float64 // optional numeric value for threshold checks
}

// String formats the entry as a fixed-width log line.
//
//	[T=042] session  scene   change   MENU → GAMEPLAY
func (e SimLogEntry) String() string {
	return fmt.Sprintf("[T=%03d] %-24s %-10s %-16s %s",
		e.Tick, e.Source, e.Category, e.Key, e.Value)
}

// SimLog collects structured events during a headless test session.
// It is unbounded and machine-readable; tests filter it for assertions.
type SimLog struct {
	entries []SimLogEntry
	verbose bool
}

// NewSimLog creates a SimLog. If verbose is true, per-tick position/metric
// entries are also recorded (useful for detailed debugging).
func NewSimLog(verbose bool) *SimLog {
	return &SimLog{verbose: verbose}
}

// Add records a new entry.
func (sl *SimLog) Add(tick int, source, category, key, value string, numVal float64) {
	sl.entries = append(sl.entries, SimLogEntry{
		Tick:     tick,
		Source:   source,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	})
}

// AddVerbose records an entry only when verbose mode is on.
func (sl *SimLog) AddVerbose(tick int, source, category, key, value string, numVal float64) {
	if !sl.verbose {
		return
	}
	sl.Add(tick, source, category, key, value, numVal)
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

// FilterSource returns entries for a specific source label.
func (sl *SimLog) FilterSource(source string) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if e.Source == source {
			out = append(out, e)
		}
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

// Summary returns a short human-readable summary of the session state.
func (sl *SimLog) Summary(tick int, s *Session) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- Summary at T=%03d ---\n", tick)
	fmt.Fprintf(&sb, "scene=%s stock=%.2f suspicion=%.1f level=%d/%d difficulty=%s\n",
		s.Scene(), s.StockPrice(), s.Suspicion(), s.CurrentLevelID(), MaxLevel(), s.Difficulty())

	resolved, total := 0, 0
	for _, d := range s.DecisionPoints() {
		total++
		if d.Resolved {
			resolved++
		}
	}
	fmt.Fprintf(&sb, "decisions: %d/%d resolved (level progress %.0f%%)\n",
		resolved, total, s.LevelProgress()*100)

	if hist := s.StockHistory(); len(hist) > 0 {
		last := hist[len(hist)-1]
		fmt.Fprintf(&sb, "last snapshot: %q %.2f\n", last.Label, last.Price)
	}
	return sb.String()
}
