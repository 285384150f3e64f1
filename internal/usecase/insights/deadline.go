package insights

import (
	"fmt"
	"math"
	"time"
)

// DeadlineInfo is the view-ready description of a task or action-item deadline
type DeadlineInfo struct {
	Label     string `json:"label"`
	IsOverdue bool   `json:"is_overdue"`
}

// DescribeDeadline computes a relative-time label and overdue status for a
// deadline. now is an explicit parameter so the function stays pure. The same
// labels are used by the Kanban board, analytics, and action-item views.
func DescribeDeadline(deadline *time.Time, now time.Time) DeadlineInfo {
	if deadline == nil {
		return DeadlineInfo{Label: "Not specified"}
	}

	diffDays := int(math.Ceil(deadline.Sub(now).Hours() / 24))

	switch {
	case diffDays < 0:
		return DeadlineInfo{
			Label:     fmt.Sprintf("Overdue by %d days", -diffDays),
			IsOverdue: true,
		}
	case diffDays == 0:
		return DeadlineInfo{Label: "Due today"}
	case diffDays == 1:
		return DeadlineInfo{Label: "Due tomorrow"}
	case diffDays <= 7:
		return DeadlineInfo{Label: fmt.Sprintf("Due in %d days", diffDays)}
	default:
		return DeadlineInfo{Label: deadline.Format("Jan 2")}
	}
}
