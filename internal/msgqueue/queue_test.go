package msgqueue

import (
	"testing"
	"time"
)

func TestEnqueueSkipsConsecutiveDuplicates(t *testing.T) {
	q := New(5 * time.Second)
	q.Enqueue("Saved file")
	q.Enqueue("Saved file")
	if q.Len() != 1 {
		t.Fatalf("expected 1 entry after duplicate enqueue, got %d", q.Len())
	}

	q.Enqueue("Other")
	q.Enqueue("Saved file")
	if q.Len() != 3 {
		t.Fatalf("non-consecutive duplicates are allowed, expected 3 entries, got %d", q.Len())
	}
}

func TestEnqueueIgnoresEmptyText(t *testing.T) {
	q := New(5 * time.Second)
	q.Enqueue("")
	if q.Len() != 0 {
		t.Fatalf("expected empty enqueue to be dropped, got %d entries", q.Len())
	}
}

func TestSnapshotLeftSurfacesLastThree(t *testing.T) {
	q := New(5 * time.Second)
	for _, m := range []string{"a", "b", "c", "d"} {
		q.Enqueue(m)
	}
	if got := q.SnapshotLeft(time.Now()); got != "b\nc\nd" {
		t.Fatalf("expected last three entries, got %q", got)
	}
}

func TestStickyHeldThenCleared(t *testing.T) {
	q := New(5 * time.Second)
	now := time.Unix(100, 0)

	q.Enqueue("done")
	if got := q.SnapshotLeft(now); got != "done" {
		t.Fatalf("expected rendered message, got %q", got)
	}
	q.Consume([]string{"done"}, false)

	// Queue drained: sticky text replays on every redraw within the hold.
	for _, dt := range []time.Duration{0, time.Second, 4 * time.Second} {
		if got := q.SnapshotLeft(now.Add(dt)); got != "done" {
			t.Fatalf("expected sticky text at +%v, got %q", dt, got)
		}
	}
	if got := q.SnapshotLeft(now.Add(5 * time.Second)); got != "" {
		t.Fatalf("expected sticky cleared after hold, got %q", got)
	}
	if !q.Empty() {
		t.Fatalf("queue should be empty once sticky cleared")
	}
}

func TestConsumeRemovesRenderedByValue(t *testing.T) {
	q := New(5 * time.Second)
	q.Enqueue("a")
	q.Enqueue("b")
	snapshot := q.Snapshot()

	// A message arriving between snapshot and consume stays queued when its
	// text is new.
	q.Enqueue("c")
	q.Consume(snapshot, false)
	if q.Len() != 1 {
		t.Fatalf("expected only the late arrival to remain, got %d", q.Len())
	}
	if got := q.Snapshot()[0]; got != "c" {
		t.Fatalf("expected %q to remain, got %q", "c", got)
	}
}

func TestConsumeKeepLeavesQueueIntact(t *testing.T) {
	q := New(5 * time.Second)
	q.Enqueue("a")
	q.Enqueue("b")
	q.Consume(q.Snapshot(), true)
	if q.Len() != 2 {
		t.Fatalf("keep must leave the queue untouched, got %d entries", q.Len())
	}
}

func TestClearDropsEverything(t *testing.T) {
	q := New(5 * time.Second)
	q.Enqueue("stuck")
	q.SnapshotLeft(time.Now())
	q.Consume([]string{"stuck"}, false)
	q.Clear()
	if !q.Empty() {
		t.Fatalf("expected queue empty after clear")
	}
	if got := q.SnapshotLeft(time.Now()); got != "" {
		t.Fatalf("expected no sticky text after clear, got %q", got)
	}
}
