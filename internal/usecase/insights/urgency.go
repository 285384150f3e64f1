package insights

import (
	"sort"

	"github.com/aftermeet-app/aftermeet/internal/domain/entities"
)

// FilterAll disables level filtering when passed to the rank functions
const FilterAll = "all"

// UrgencyRank returns the sort position for an urgency or priority level.
// Unknown levels sort after all known ones.
func UrgencyRank(level string) int {
	switch level {
	case entities.UrgencyCritical:
		return 0
	case entities.UrgencyHigh:
		return 1
	case entities.UrgencyMedium:
		return 2
	case entities.UrgencyLow:
		return 3
	default:
		return 4
	}
}

// RankActionItems returns a new slice filtered to filterLevel (exact,
// case-sensitive match; "" or "all" keeps everything) and stably sorted by
// urgency. The input is never mutated.
func RankActionItems(items []entities.ActionItem, filterLevel string) []entities.ActionItem {
	out := make([]entities.ActionItem, 0, len(items))
	for _, item := range items {
		if filterLevel != "" && filterLevel != FilterAll && item.Urgency != filterLevel {
			continue
		}
		out = append(out, item)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return UrgencyRank(out[i].Urgency) < UrgencyRank(out[j].Urgency)
	})
	return out
}

// RankTasks applies the same ordering and filtering to board tasks, which
// reuse the urgency scale as their priority.
func RankTasks(tasks []entities.Task, filterLevel string) []entities.Task {
	out := make([]entities.Task, 0, len(tasks))
	for _, task := range tasks {
		if filterLevel != "" && filterLevel != FilterAll && task.Priority != filterLevel {
			continue
		}
		out = append(out, task)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return UrgencyRank(out[i].Priority) < UrgencyRank(out[j].Priority)
	})
	return out
}
