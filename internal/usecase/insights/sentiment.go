package insights

import (
	"math"

	"github.com/aftermeet-app/aftermeet/internal/domain/entities"
)

// SentimentReport is the distribution plus the dominant label for a meeting
type SentimentReport struct {
	entities.SentimentDistribution
	Dominant entities.Sentiment `json:"dominant"`
}

// AggregateSentiment counts per-utterance sentiment labels into rounded
// percentages. Missing or unrecognized labels count as neutral. Empty input
// yields all-zero percentages with a neutral dominant.
func AggregateSentiment(utterances []entities.Utterance) SentimentReport {
	report := SentimentReport{Dominant: entities.SentimentNeutral}

	total := len(utterances)
	if total == 0 {
		return report
	}

	var positive, neutral, negative int
	for _, u := range utterances {
		switch u.Sentiment {
		case entities.SentimentPositive:
			positive++
		case entities.SentimentNegative:
			negative++
		default:
			neutral++
		}
	}

	report.Positive = percent(positive, total)
	report.Neutral = percent(neutral, total)
	report.Negative = percent(negative, total)

	// Tie-break order: positive > neutral > negative.
	dominant, best := entities.SentimentPositive, positive
	if neutral > best {
		dominant, best = entities.SentimentNeutral, neutral
	}
	if negative > best {
		dominant = entities.SentimentNegative
	}
	report.Dominant = dominant

	return report
}

func percent(count, total int) int {
	return int(math.Round(float64(count) / float64(total) * 100))
}
