package interview

import "testing"

func TestAutoApproveInterviewer_Ask(t *testing.T) {
	a := NewAutoApproveInterviewer()

	cases := []struct {
		name string
		q    Question
		want string
	}{
		{"yes_no", Question{Type: YesNo}, AnswerYes},
		{"confirmation", Question{Type: Confirmation}, AnswerYes},
		{"multiple_choice_picks_first", Question{Type: MultipleChoice, Options: []Option{{Key: "a", Label: "A"}, {Key: "b", Label: "B"}}}, "a"},
		{"multiple_choice_no_options", Question{Type: MultipleChoice}, AnswerYes},
		{"freeform", Question{Type: Freeform}, "auto-approved"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := a.Ask(tc.q)
			if err != nil {
				t.Fatalf("Ask: %v", err)
			}
			if got.Value != tc.want {
				t.Errorf("Value = %q, want %q", got.Value, tc.want)
			}
		})
	}
}

func TestAutoApproveInterviewer_AskMultiple(t *testing.T) {
	a := NewAutoApproveInterviewer()
	answers, err := a.AskMultiple([]Question{{Type: YesNo}, {Type: Freeform}})
	if err != nil {
		t.Fatalf("AskMultiple: %v", err)
	}
	if len(answers) != 2 || answers[0].Value != AnswerYes || answers[1].Value != "auto-approved" {
		t.Errorf("answers = %+v, want [yes, auto-approved]", answers)
	}
}
