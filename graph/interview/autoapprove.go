package interview

// AutoApproveInterviewer answers every question without human involvement,
// the default used when a pipeline runs unattended.
type AutoApproveInterviewer struct{}

// NewAutoApproveInterviewer creates an AutoApproveInterviewer.
func NewAutoApproveInterviewer() *AutoApproveInterviewer { return &AutoApproveInterviewer{} }

// Ask implements Interviewer: yes/no and confirmation questions get "yes",
// multiple-choice gets the first option, anything else is auto-approved
// freeform text.
func (a *AutoApproveInterviewer) Ask(q Question) (Answer, error) {
	switch q.Type {
	case YesNo, Confirmation:
		return Answer{Value: AnswerYes, Text: AnswerYes}, nil
	case MultipleChoice:
		if len(q.Options) > 0 {
			opt := q.Options[0]
			return Answer{Value: opt.Key, SelectedOption: &opt, Text: opt.Label}, nil
		}
		return Answer{Value: AnswerYes, Text: AnswerYes}, nil
	default:
		return Answer{Value: "auto-approved", Text: "auto-approved"}, nil
	}
}

// AskMultiple implements Interviewer.
func (a *AutoApproveInterviewer) AskMultiple(qs []Question) ([]Answer, error) {
	return AskMultipleSequential(a, qs)
}

// Inform implements Interviewer as a no-op; there is no listener to notify.
func (a *AutoApproveInterviewer) Inform(_, _ string) error { return nil }
