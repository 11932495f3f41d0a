package interview

import (
	"testing"
	"time"
)

func TestRemoteInterviewer_AskBlocksUntilSubmit(t *testing.T) {
	r := NewRemoteInterviewer()

	done := make(chan Answer, 1)
	go func() {
		a, err := r.Ask(Question{Text: "pick one"})
		if err != nil {
			t.Errorf("Ask: %v", err)
		}
		done <- a
	}()

	// Give Ask a chance to register the pending question before polling.
	var id string
	var ok bool
	for i := 0; i < 100; i++ {
		id, _, ok = r.Pending()
		if ok {
			break
		}
		time.Sleep(time.Millisecond)
	}
	if !ok {
		t.Fatal("no question became pending")
	}

	if err := r.Submit(id, Answer{Value: AnswerYes}); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	select {
	case a := <-done:
		if a.Value != AnswerYes {
			t.Errorf("Value = %q, want yes", a.Value)
		}
	case <-time.After(time.Second):
		t.Fatal("Ask did not return after Submit")
	}
}

func TestRemoteInterviewer_SubmitWrongIDFails(t *testing.T) {
	r := NewRemoteInterviewer()
	go func() { _, _ = r.Ask(Question{Text: "pick one"}) }()

	var id string
	for i := 0; i < 100; i++ {
		var ok bool
		id, _, ok = r.Pending()
		if ok {
			break
		}
		time.Sleep(time.Millisecond)
	}

	if err := r.Submit(id+"-wrong", Answer{Value: AnswerYes}); err == nil {
		t.Error("expected error submitting with a mismatched id")
	}
}

func TestRemoteInterviewer_AskWhilePendingFailsWithoutDraining(t *testing.T) {
	r := NewRemoteInterviewer()

	go func() { _, _ = r.Ask(Question{Text: "first"}) }()
	for i := 0; i < 100; i++ {
		if _, _, ok := r.Pending(); ok {
			break
		}
		time.Sleep(time.Millisecond)
	}

	// A second Ask must not silently replace the first pending question: it
	// reports an error naming the still-pending id rather than overwriting
	// the mailbox out from under the first caller.
	_, err := r.Ask(Question{Text: "second"})
	if err == nil {
		t.Error("expected error asking a second question while one is already pending")
	}

	id, q, ok := r.Pending()
	if !ok || q.Text != "first" {
		t.Errorf("pending question = %+v (id %s), ok=%v, want the first, undisturbed question", q, id, ok)
	}
}

func TestRemoteInterviewer_InformNotifiesListeners(t *testing.T) {
	r := NewRemoteInterviewer()

	var gotMsg, gotStage string
	r.OnInform(func(message, stage string) {
		gotMsg, gotStage = message, stage
	})

	if err := r.Inform("heads up", "node-1"); err != nil {
		t.Fatalf("Inform: %v", err)
	}
	if gotMsg != "heads up" || gotStage != "node-1" {
		t.Errorf("listener saw (%q, %q), want (%q, %q)", gotMsg, gotStage, "heads up", "node-1")
	}
}
