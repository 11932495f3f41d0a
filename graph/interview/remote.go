package interview

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// RemoteInterviewer exposes a size-one mailbox for a question awaiting a
// remote (e.g. web UI) operator: Ask blocks until Submit is called with
// the matching ID; there is no way to close the mailbox. Replacing a pending question
// without draining it first is treated as an explicit error, per
// spec.md §9.
type RemoteInterviewer struct {
	mu        sync.Mutex
	pendingID string
	pending   Question
	waiting   chan Answer
	listeners []func(message, stage string)
}

// NewRemoteInterviewer creates an empty-mailbox RemoteInterviewer.
func NewRemoteInterviewer() *RemoteInterviewer {
	return &RemoteInterviewer{}
}

// Ask implements Interviewer: it posts q to the mailbox and blocks until
// Submit delivers an answer.
func (r *RemoteInterviewer) Ask(q Question) (Answer, error) {
	r.mu.Lock()
	if r.waiting != nil {
		r.mu.Unlock()
		return Answer{}, fmt.Errorf("remote interviewer: a question is already pending (id %s)", r.pendingID)
	}
	id := uuid.NewString()
	wait := make(chan Answer, 1)
	r.pendingID = id
	r.pending = q
	r.waiting = wait
	r.mu.Unlock()

	answer := <-wait

	r.mu.Lock()
	r.pendingID = ""
	r.waiting = nil
	r.mu.Unlock()

	return answer, nil
}

// AskMultiple implements Interviewer.
func (r *RemoteInterviewer) AskMultiple(qs []Question) ([]Answer, error) {
	return AskMultipleSequential(r, qs)
}

// Inform implements Interviewer by notifying every registered listener.
func (r *RemoteInterviewer) Inform(message, stage string) error {
	r.mu.Lock()
	listeners := append([]func(string, string){}, r.listeners...)
	r.mu.Unlock()
	for _, l := range listeners {
		l(message, stage)
	}
	return nil
}

// OnInform registers a listener invoked by every Inform call.
func (r *RemoteInterviewer) OnInform(fn func(message, stage string)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners = append(r.listeners, fn)
}

// Pending returns the currently pending question and its opaque ID, and
// whether one exists.
func (r *RemoteInterviewer) Pending() (id string, q Question, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.waiting == nil {
		return "", Question{}, false
	}
	return r.pendingID, r.pending, true
}

// Submit answers the pending question if id matches it. Returns an error
// if no question is pending or id does not match.
func (r *RemoteInterviewer) Submit(id string, answer Answer) error {
	r.mu.Lock()
	if r.waiting == nil || id != r.pendingID {
		r.mu.Unlock()
		return fmt.Errorf("remote interviewer: no pending question with id %s", id)
	}
	wait := r.waiting
	r.mu.Unlock()

	wait <- answer
	return nil
}
