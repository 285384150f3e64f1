package insights

import (
	"sort"

	"github.com/aftermeet-app/aftermeet/internal/domain/entities"
)

// AggregateSpeakers groups utterances by speaker (exact string match) and
// returns per-speaker counts and rounded percentages, ordered by descending
// segment count with first-seen order breaking ties. When the AI summary
// supplied per-speaker durations they are passed through unmodified;
// durations is nil otherwise. Empty input returns an empty slice.
func AggregateSpeakers(utterances []entities.Utterance, durations map[string]float64) []entities.SpeakerStat {
	total := len(utterances)
	if total == 0 {
		return []entities.SpeakerStat{}
	}

	index := make(map[string]int, 8)
	stats := make([]entities.SpeakerStat, 0, 8)
	for _, u := range utterances {
		i, seen := index[u.Speaker]
		if !seen {
			i = len(stats)
			index[u.Speaker] = i
			stats = append(stats, entities.SpeakerStat{Name: u.Speaker})
		}
		stats[i].SegmentCount++
	}

	for i := range stats {
		stats[i].Percentage = percent(stats[i].SegmentCount, total)
		if d, ok := durations[stats[i].Name]; ok {
			stats[i].DurationSeconds = d
		}
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].SegmentCount > stats[j].SegmentCount
	})
	return stats
}
