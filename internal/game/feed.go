package game

import "fmt"

const feedMaxEntries = 60

// FeedEntry is a single line in the combat feed.
type FeedEntry struct {
	Tick    int
	Label   string
	Faction Faction
	Kind    EventKind
	Message string
}

// CombatFeed is a ring buffer of human-readable event lines for the HUD.
// It is an EventSink.
type CombatFeed struct {
	entries []FeedEntry
	head    int
	count   int
}

// NewCombatFeed creates a feed with a fixed capacity.
func NewCombatFeed() *CombatFeed {
	return &CombatFeed{
		entries: make([]FeedEntry, feedMaxEntries),
	}
}

// Add appends an entry to the feed.
func (f *CombatFeed) Add(tick int, label string, faction Faction, kind EventKind, msg string) {
	f.entries[f.head] = FeedEntry{
		Tick:    tick,
		Label:   label,
		Faction: faction,
		Kind:    kind,
		Message: msg,
	}
	f.head = (f.head + 1) % feedMaxEntries
	if f.count < feedMaxEntries {
		f.count++
	}
}

// Emit records the events worth showing; shots and hits are too frequent.
func (f *CombatFeed) Emit(e Event) {
	var msg string
	switch e.Kind {
	case EventDefeated:
		msg = fmt.Sprintf("%s down", e.Label)
	case EventExploded:
		msg = fmt.Sprintf("blast hit %d", e.Amount)
	case EventBossActivated:
		msg = "bunker is firing"
	case EventBossDefeated:
		msg = "bunker destroyed"
	case EventWaveSpawned:
		msg = fmt.Sprintf("%d hostiles inbound", e.Amount)
	case EventVictory:
		msg = "VICTORY"
	case EventDefeat:
		msg = "DEFEAT"
	default:
		return
	}
	label := e.Label
	if label == "" {
		label = "--"
	}
	f.Add(e.Tick, label, e.Faction, e.Kind, msg)
}

// Recent returns entries in chronological order (oldest first).
func (f *CombatFeed) Recent() []FeedEntry {
	result := make([]FeedEntry, f.count)
	for i := 0; i < f.count; i++ {
		idx := (f.head - f.count + i + feedMaxEntries) % feedMaxEntries
		result[i] = f.entries[idx]
	}
	return result
}

// Len returns the number of buffered entries.
func (f *CombatFeed) Len() int { return f.count }
