package game

import "container/heap"

// scheduledAction is one entry in the timeline.
type scheduledAction struct {
	at        int
	seq       uint64
	owner     EntityID // cancelled with CancelOwner(owner); zero = encounter-owned
	subject   EntityID // re-validated before running; zero = no subject
	label     string
	fn        func()
	cancelled bool
}

type actionQueue []*scheduledAction

func (q actionQueue) Len() int { return len(q) }
func (q actionQueue) Less(i, j int) bool {
	if q[i].at != q[j].at {
		return q[i].at < q[j].at
	}
	return q[i].seq < q[j].seq
}
func (q actionQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }
func (q *actionQueue) Push(x any) { *q = append(*q, x.(*scheduledAction)) }
func (q *actionQueue) Pop() any {
	old := *q
	n := len(old)
	a := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return a
}

// Timeline is the shared priority queue of actions scheduled at a tick.
// Actions scheduled for the same tick run in the order they were scheduled.
type Timeline struct {
	queue actionQueue
	seq   uint64
	now   int

	// valid reports whether subject may still be acted on. When it returns
	// false the action is dropped silently.
	valid func(subject EntityID) bool
	// onStale is told about dropped actions (for logging only).
	onStale func(label string, subject EntityID)
}

// NewTimeline creates a timeline. valid may be nil (every subject is valid).
func NewTimeline(valid func(EntityID) bool) *Timeline {
	return &Timeline{valid: valid}
}

// After schedules fn to run delay ticks from now. A delay below 1 runs on the
// next tick.
func (t *Timeline) After(delay int, owner, subject EntityID, label string, fn func()) {
	if delay < 1 {
		delay = 1
	}
	t.seq++
	heap.Push(&t.queue, &scheduledAction{
		at:      t.now + delay,
		seq:     t.seq,
		owner:   owner,
		subject: subject,
		label:   label,
		fn:      fn,
	})
}

// CancelOwner drops every pending action owned by id.
func (t *Timeline) CancelOwner(id EntityID) int {
	n := 0
	for _, a := range t.queue {
		if a.owner == id && !a.cancelled {
			a.cancelled = true
			n++
		}
	}
	return n
}

// Pending returns the number of live (uncancelled) actions.
func (t *Timeline) Pending() int {
	n := 0
	for _, a := range t.queue {
		if !a.cancelled {
			n++
		}
	}
	return n
}

// Run executes every action due at or before tick. Actions scheduled while
// running are queued for later ticks.
func (t *Timeline) Run(tick int) {
	t.now = tick
	for len(t.queue) > 0 && t.queue[0].at <= tick {
		a := heap.Pop(&t.queue).(*scheduledAction)
		if a.cancelled {
			continue
		}
		if a.subject != 0 && t.valid != nil && !t.valid(a.subject) {
			if t.onStale != nil {
				t.onStale(a.label, a.subject)
			}
			continue
		}
		a.fn()
	}
}

// Clear drops every pending action.
func (t *Timeline) Clear() {
	t.queue = t.queue[:0]
}
