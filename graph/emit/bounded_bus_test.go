package emit

import "testing"

func TestBoundedBus_DropsOldestOnOverflow(t *testing.T) {
	b := NewBoundedBus(2)
	c, unsubscribe := b.Subscribe()
	defer unsubscribe()

	b.Publish(Event{Kind: StageStarted, NodeID: "1"})
	b.Publish(Event{Kind: StageStarted, NodeID: "2"})
	b.Publish(Event{Kind: StageStarted, NodeID: "3"})

	// Capacity 2: publishing a 3rd event drops NodeID "1", the oldest
	// still-queued event, and the next Next() surfaces a Warning describing
	// the drop before the remaining two events.
	ev, ok := c.Next()
	if !ok {
		t.Fatal("Next() returned ok=false, want a Warning event")
	}
	if ev.Kind != Warning {
		t.Fatalf("first event.Kind = %v, want Warning", ev.Kind)
	}
	if n, _ := ev.Data["dropped"].(int); n != 1 {
		t.Errorf("dropped count = %v, want 1", ev.Data["dropped"])
	}

	ev, ok = c.Next()
	if !ok || ev.NodeID != "2" {
		t.Fatalf("second event = %+v, ok=%v, want NodeID 2", ev, ok)
	}
	ev, ok = c.Next()
	if !ok || ev.NodeID != "3" {
		t.Fatalf("third event = %+v, ok=%v, want NodeID 3", ev, ok)
	}
}

func TestBoundedBus_PublishOrderWithinCapacity(t *testing.T) {
	b := NewBoundedBus(4)
	c, unsubscribe := b.Subscribe()
	defer unsubscribe()

	want := []string{"a", "b", "c"}
	for _, id := range want {
		b.Publish(Event{Kind: StageStarted, NodeID: id})
	}
	for i, id := range want {
		ev, ok := c.Next()
		if !ok {
			t.Fatalf("Next()[%d] returned ok=false", i)
		}
		if ev.NodeID != id {
			t.Errorf("event[%d].NodeID = %q, want %q", i, ev.NodeID, id)
		}
	}
}

func TestBoundedBus_CloseUnblocksNext(t *testing.T) {
	b := NewBoundedBus(1)
	c, _ := b.Subscribe()

	done := make(chan bool, 1)
	go func() {
		_, ok := c.Next()
		done <- ok
	}()

	b.Close()

	if ok := <-done; ok {
		t.Error("expected Next() to return ok=false after Close with no events queued")
	}
}

func TestBoundedBus_MinimumCapacityIsOne(t *testing.T) {
	b := NewBoundedBus(0)
	if b.cap != 1 {
		t.Errorf("cap = %d, want 1 (capacity below 1 clamped)", b.cap)
	}
}
