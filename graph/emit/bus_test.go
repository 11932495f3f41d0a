package emit

import (
	"testing"
	"time"
)

func TestBus_PublishOrder(t *testing.T) {
	b := NewBus()
	ch, unsubscribe := b.Subscribe()
	defer unsubscribe()

	want := []Kind{PipelineStarted, StageStarted, StageCompleted, PipelineCompleted}
	for _, k := range want {
		b.Publish(Event{Kind: k})
	}

	for i, k := range want {
		select {
		case ev := <-ch:
			if ev.Kind != k {
				t.Errorf("event[%d].Kind = %v, want %v", i, ev.Kind, k)
			}
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for event[%d]", i)
		}
	}
}

func TestBus_SubscribeAfterPublishMissesEarlierEvents(t *testing.T) {
	b := NewBus()
	b.Publish(Event{Kind: PipelineStarted})

	ch, unsubscribe := b.Subscribe()
	defer unsubscribe()

	b.Publish(Event{Kind: PipelineCompleted})

	select {
	case ev := <-ch:
		if ev.Kind != PipelineCompleted {
			t.Errorf("first received event = %v, want PipelineCompleted (not the pre-subscribe PipelineStarted)", ev.Kind)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestBus_MultipleConsumersEachSeeEveryEvent(t *testing.T) {
	b := NewBus()
	ch1, unsub1 := b.Subscribe()
	defer unsub1()
	ch2, unsub2 := b.Subscribe()
	defer unsub2()

	b.Publish(Event{Kind: StageStarted, NodeID: "a"})

	for _, ch := range []<-chan Event{ch1, ch2} {
		select {
		case ev := <-ch:
			if ev.NodeID != "a" {
				t.Errorf("NodeID = %q, want a", ev.NodeID)
			}
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for event")
		}
	}
}

func TestBus_UnsubscribeClosesChannel(t *testing.T) {
	b := NewBus()
	ch, unsubscribe := b.Subscribe()
	unsubscribe()

	_, ok := <-ch
	if ok {
		t.Error("expected channel closed after Unsubscribe")
	}
}

func TestBus_CloseClosesAllConsumersAndStopsPublish(t *testing.T) {
	b := NewBus()
	ch, _ := b.Subscribe()
	b.Close()

	if _, ok := <-ch; ok {
		t.Error("expected channel closed after Bus.Close")
	}

	// Publish after Close must not panic (closed consumers are never sent to).
	b.Publish(Event{Kind: Warning})
}
