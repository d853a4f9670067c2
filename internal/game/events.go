package game

// EventKind enumerates the typed events entities emit.
type EventKind int

const (
	EventFired EventKind = iota
	EventHit
	EventDied
	EventDefeated
	EventExploded
	EventBossActivated
	EventBossDefeated
	EventWaveSpawned
	EventVictory
	EventDefeat
)

func (k EventKind) String() string {
	switch k {
	case EventFired:
		return "fired"
	case EventHit:
		return "hit"
	case EventDied:
		return "died"
	case EventDefeated:
		return "defeated"
	case EventExploded:
		return "exploded"
	case EventBossActivated:
		return "boss_activated"
	case EventBossDefeated:
		return "boss_defeated"
	case EventWaveSpawned:
		return "wave_spawned"
	case EventVictory:
		return "victory"
	case EventDefeat:
		return "defeat"
	default:
		return "unknown"
	}
}

// Event is a discrete one-shot notification. Source is the emitting entity
// (zero for encounter-level events).
type Event struct {
	Tick    int
	Kind    EventKind
	Source  EntityID
	Entity  Kind
	Faction Faction
	Label   string
	Pos     Vec2
	Amount  int
}

// EventSink receives events. Implementations must not block.
type EventSink interface {
	Emit(Event)
}

// EventSinkFunc adapts a function to EventSink.
type EventSinkFunc func(Event)

// Emit calls f(ev).
func (f EventSinkFunc) Emit(ev Event) { f(ev) }

// EventBus fans events out to subscribers, synchronously and in
// subscription order.
type EventBus struct {
	byKind map[EventKind][]EventSink
	all    []EventSink
}

// NewEventBus creates an empty bus.
func NewEventBus() *EventBus {
	return &EventBus{byKind: make(map[EventKind][]EventSink)}
}

// Subscribe registers sink for a single event kind.
func (b *EventBus) Subscribe(kind EventKind, sink EventSink) {
	b.byKind[kind] = append(b.byKind[kind], sink)
}

// SubscribeAll registers sink for every event kind.
func (b *EventBus) SubscribeAll(sink EventSink) {
	b.all = append(b.all, sink)
}

// Emit dispatches ev. Subscribers added during dispatch see the next event,
// not this one.
func (b *EventBus) Emit(ev Event) {
	specific := b.byKind[ev.Kind]
	general := b.all
	for _, s := range specific {
		s.Emit(ev)
	}
	for _, s := range general {
		s.Emit(ev)
	}
}
