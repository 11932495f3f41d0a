package interview

import "time"

// CallbackFunc answers a Question synchronously, e.g. by prompting a
// terminal or forwarding to an external service.
type CallbackFunc func(q Question) (Answer, error)

// CallbackInterviewer delegates to a CallbackFunc. When a Question carries
// TimeoutSeconds > 0, the callback races against a timer; if the timer
// wins, the Answer is "timeout" rather than whatever the callback
// eventually returns. This is the single, timeout-aware CallbackInterviewer
// (see DESIGN.md: the distilled source's non-timeout variant is just the
// TimeoutSeconds == 0 case of this one).
type CallbackInterviewer struct {
	Callback CallbackFunc
}

// NewCallbackInterviewer creates a CallbackInterviewer wrapping fn.
func NewCallbackInterviewer(fn CallbackFunc) *CallbackInterviewer {
	return &CallbackInterviewer{Callback: fn}
}

// Ask implements Interviewer.
func (c *CallbackInterviewer) Ask(q Question) (Answer, error) {
	if q.TimeoutSeconds <= 0 {
		return c.Callback(q)
	}

	type result struct {
		answer Answer
		err    error
	}
	done := make(chan result, 1)
	go func() {
		a, err := c.Callback(q)
		done <- result{a, err}
	}()

	select {
	case r := <-done:
		return r.answer, r.err
	case <-time.After(time.Duration(q.TimeoutSeconds) * time.Second):
		return Answer{Value: AnswerTimeout, Text: AnswerTimeout}, nil
	}
}

// AskMultiple implements Interviewer.
func (c *CallbackInterviewer) AskMultiple(qs []Question) ([]Answer, error) {
	return AskMultipleSequential(c, qs)
}

// Inform implements Interviewer by invoking the callback with a freeform
// informational Question and discarding the answer, if a callback is set.
func (c *CallbackInterviewer) Inform(message, stage string) error {
	if c.Callback == nil {
		return nil
	}
	_, err := c.Callback(Question{Text: message, Type: Freeform, Stage: stage})
	return err
}
