package insights

import (
	"testing"
	"time"
)

func TestDescribeDeadline(t *testing.T) {
	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)
	days := func(n int) *time.Time {
		d := now.AddDate(0, 0, n)
		return &d
	}

	cases := []struct {
		name        string
		deadline    *time.Time
		wantLabel   string
		wantOverdue bool
	}{
		{"nil deadline", nil, "Not specified", false},
		{"due today", days(0), "Due today", false},
		{"due tomorrow", days(1), "Due tomorrow", false},
		{"due in three days", days(3), "Due in 3 days", false},
		{"due in a week", days(7), "Due in 7 days", false},
		{"beyond a week", days(12), "Mar 22", false},
		{"overdue three days", days(-3), "Overdue by 3 days", true},
		{"overdue one day", days(-1), "Overdue by 1 days", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := DescribeDeadline(tc.deadline, now)
			if got.Label != tc.wantLabel {
				t.Errorf("label: got %q want %q", got.Label, tc.wantLabel)
			}
			if got.IsOverdue != tc.wantOverdue {
				t.Errorf("overdue: got %v want %v", got.IsOverdue, tc.wantOverdue)
			}
		})
	}
}

func TestDescribeDeadlinePartialDayRoundsUp(t *testing.T) {
	now := time.Date(2026, time.March, 10, 23, 0, 0, 0, time.UTC)
	deadline := time.Date(2026, time.March, 11, 9, 0, 0, 0, time.UTC)

	// 10 hours ahead: ceil(10h / 24h) = 1 day.
	got := DescribeDeadline(&deadline, now)
	if got.Label != "Due tomorrow" || got.IsOverdue {
		t.Fatalf("got %+v, want due tomorrow", got)
	}
}
