package game

import (
	"fmt"
	"sort"
	"strings"
)

// SimLogEntry is one recorded event during a simulation.
type SimLogEntry struct {
	Tick     int
	Entity   string  // label e.g. "player", "grunt", or "--" for encounter events
	Faction  string  // "player", "enemy", or "--"
	Category string  // combat, state, projectile, ai, cycle, wave, boss, event, outcome, recover
	Key      string  // specific event name within the category
	Value    string  // human-readable detail
	NumVal   float64 // optional numeric value for threshold checks
}

// String formats the entry as a fixed-width log line.
//
//	[T=042] grunt  combat     hit              took 1 (2/3 left)
func (e SimLogEntry) String() string {
	return fmt.Sprintf("[T=%03d] %-6s %-10s %-16s %s",
		e.Tick, e.Entity, e.Category, e.Key, e.Value)
}

// SimLog collects structured events during a simulation.
// Unlike CombatFeed (HUD ring buffer), SimLog is unbounded and machine-readable.
type SimLog struct {
	entries []SimLogEntry
	verbose bool
}

// NewSimLog creates a SimLog. If verbose is true, per-projectile spawn and
// expiry entries are also recorded.
func NewSimLog(verbose bool) *SimLog {
	return &SimLog{verbose: verbose}
}

// Add records a new entry.
func (sl *SimLog) Add(tick int, entity, faction, category, key, value string, numVal float64) {
	sl.entries = append(sl.entries, SimLogEntry{
		Tick:     tick,
		Entity:   entity,
		Faction:  faction,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	})
}

// AddVerbose records an entry only when verbose mode is on.
func (sl *SimLog) AddVerbose(tick int, entity, faction, category, key, value string, numVal float64) {
	if !sl.verbose {
		return
	}
	sl.Add(tick, entity, faction, category, key, value, numVal)
}

// Entries returns all recorded entries.
func (sl *SimLog) Entries() []SimLogEntry {
	return sl.entries
}

// Len returns the number of recorded entries.
func (sl *SimLog) Len() int { return len(sl.entries) }

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

// FilterEntity returns entries for a specific entity label.
func (sl *SimLog) FilterEntity(label string) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if e.Entity == label {
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

// FirstOf returns the earliest entry matching category+key, or false if none.
func (sl *SimLog) FirstOf(category, key string) (SimLogEntry, bool) {
	for _, e := range sl.entries {
		if e.Category == category && (key == "" || e.Key == key) {
			return e, true
		}
	}
	return SimLogEntry{}, false
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

// Summary returns a short human-readable summary of the encounter state.
func (sl *SimLog) Summary(tick int, combatants []*Combatant) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- Summary at T=%03d ---\n", tick)

	alive := map[Kind]int{}
	for _, c := range combatants {
		if c.Alive() {
			alive[c.kind]++
		}
	}
	kinds := make([]Kind, 0, len(alive))
	for k := range alive {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	sb.WriteString("Alive:")
	for _, k := range kinds {
		fmt.Fprintf(&sb, " %s=%d", k, alive[k])
	}
	sb.WriteByte('\n')

	fmt.Fprintf(&sb, "Hits: %d  Deaths: %d  Detonations: %d  Cover blocks: %d  Crouch blocks: %d\n",
		sl.CountCategory("combat", "hit"),
		sl.CountCategory("event", EventDefeated.String()),
		sl.CountCategory("projectile", "detonate"),
		sl.CountCategory("projectile", "cover_block"),
		sl.CountCategory("projectile", "crouch_block"))

	if e, ok := sl.LastOf("outcome", ""); ok {
		fmt.Fprintf(&sb, "Outcome: %s (%s) at T=%03d\n", e.Key, e.Value, e.Tick)
	}
	return sb.String()
}
