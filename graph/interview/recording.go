package interview

import "sync"

// Exchange is one recorded question/answer pair.
type Exchange struct {
	Question Question
	Answer   Answer
}

// RecordingInterviewer wraps another Interviewer, appending every
// question/answer pair it handles to a log for later audit or replay.
type RecordingInterviewer struct {
	Inner Interviewer

	mu  sync.Mutex
	log []Exchange
}

// NewRecordingInterviewer wraps inner with recording.
func NewRecordingInterviewer(inner Interviewer) *RecordingInterviewer {
	return &RecordingInterviewer{Inner: inner}
}

// Ask implements Interviewer, delegating to Inner and recording the result.
func (r *RecordingInterviewer) Ask(q Question) (Answer, error) {
	a, err := r.Inner.Ask(q)
	if err == nil {
		r.mu.Lock()
		r.log = append(r.log, Exchange{Question: q, Answer: a})
		r.mu.Unlock()
	}
	return a, err
}

// AskMultiple implements Interviewer.
func (r *RecordingInterviewer) AskMultiple(qs []Question) ([]Answer, error) {
	return AskMultipleSequential(r, qs)
}

// Inform implements Interviewer, delegating to Inner.
func (r *RecordingInterviewer) Inform(message, stage string) error {
	return r.Inner.Inform(message, stage)
}

// Log returns a copy of the recorded question/answer pairs, in order.
func (r *RecordingInterviewer) Log() []Exchange {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Exchange(nil), r.log...)
}
