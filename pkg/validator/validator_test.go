package validator

import "testing"

type urgencyFilter struct {
	Urgency string `validate:"omitempty,urgency"`
}

func TestUrgencyValidation(t *testing.T) {
	cv := New()

	for _, level := range []string{"", "all", "critical", "high", "medium", "low"} {
		if err := cv.Validate(urgencyFilter{Urgency: level}); err != nil {
			t.Errorf("Validate(%q) = %v, want nil", level, err)
		}
	}
	for _, level := range []string{"urgent", "CRITICAL", "0"} {
		if err := cv.Validate(urgencyFilter{Urgency: level}); err == nil {
			t.Errorf("Validate(%q) = nil, want error", level)
		}
	}
}
