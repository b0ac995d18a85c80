// Package msgqueue holds the unconsumed transient messages awaiting render
// and the sticky copy of the last rendered left-zone text.
package msgqueue

import (
	"strings"
	"time"
)

// visibleTail is how many of the most recent messages a render surfaces.
const visibleTail = 3

// Queue is the ordered, consecutively-deduplicated message queue. It is not
// safe for concurrent use; the engine serializes access.
type Queue struct {
	pending []string

	sticky string
	heldAt time.Time
	hold   time.Duration
}

// New returns a queue whose sticky text is held for at least hold after the
// queue drains.
func New(hold time.Duration) *Queue {
	return &Queue{hold: hold}
}

// Enqueue appends text unless it is empty or repeats the current tail.
// Duplicates elsewhere in history are allowed.
func (q *Queue) Enqueue(text string) {
	if text == "" {
		return
	}
	if n := len(q.pending); n > 0 && q.pending[n-1] == text {
		return
	}
	q.pending = append(q.pending, text)
	q.heldAt = time.Time{}
}

// Snapshot returns a copy of the pending queue, for consume bookkeeping.
func (q *Queue) Snapshot() []string {
	return append([]string(nil), q.pending...)
}

// Len reports the number of pending messages.
func (q *Queue) Len() int {
	return len(q.pending)
}

// Empty reports whether there is nothing left to show: no pending messages
// and no sticky text.
func (q *Queue) Empty() bool {
	return len(q.pending) == 0 && q.sticky == ""
}

// SnapshotLeft produces the left-zone text for a render at the given time.
// A non-empty queue yields its last three entries joined by line breaks,
// which becomes the new sticky text. An empty queue replays the sticky text
// until it has been held for the hold duration, after which it is cleared
// and the empty string is returned.
func (q *Queue) SnapshotLeft(now time.Time) string {
	if len(q.pending) > 0 {
		tail := q.pending
		if len(tail) > visibleTail {
			tail = tail[len(tail)-visibleTail:]
		}
		q.sticky = strings.Join(tail, "\n")
		q.heldAt = time.Time{}
		return q.sticky
	}
	if q.sticky == "" {
		return ""
	}
	if q.heldAt.IsZero() {
		q.heldAt = now
		return q.sticky
	}
	if now.Sub(q.heldAt) >= q.hold {
		q.sticky = ""
		q.heldAt = time.Time{}
		return ""
	}
	return q.sticky
}

// Consume removes the rendered messages from the queue by value, unless keep
// is set. Messages enqueued after the snapshot was taken survive only if
// their text differs from every rendered entry; text is the identity key.
func (q *Queue) Consume(rendered []string, keep bool) {
	if keep || len(rendered) == 0 {
		return
	}
	seen := make(map[string]struct{}, len(rendered))
	for _, m := range rendered {
		seen[m] = struct{}{}
	}
	kept := q.pending[:0]
	for _, m := range q.pending {
		if _, ok := seen[m]; !ok {
			kept = append(kept, m)
		}
	}
	q.pending = kept
}

// Clear drops all pending messages and the sticky text. Used by the
// interrupt path to unstick the display.
func (q *Queue) Clear() {
	q.pending = nil
	q.sticky = ""
	q.heldAt = time.Time{}
}
