// Package stats derives collection-wide summary metrics from a card set.
package stats

import (
	"math"
	"time"

	"github.com/vlemaire/flashdeck/internal/models"
)

// Compute scans the given cards and returns a summary as of now.
// It recomputes everything from scratch on each call so the result can never
// drift from the collection it was derived from.
func Compute(cards []models.Card, now time.Time) models.Stats {
	var s models.Stats
	s.TotalCards = len(cards)

	var successes, totalEvents int
	for _, c := range cards {
		if c.IsDue(now) {
			s.DueForReview++
		}
		switch c.Difficulty {
		case models.DifficultyEasy:
			s.EasyCards++
		case models.DifficultyMedium:
			s.MediumCards++
		case models.DifficultyHard:
			s.HardCards++
		}
		s.TotalReviews += c.ReviewCount
		for _, entry := range c.ReviewHistory {
			totalEvents++
			if entry.Success {
				successes++
			}
		}
		if c.SuccessStreak > s.BestStreak {
			s.BestStreak = c.SuccessStreak
		}
		if c.SuccessStreak > 0 {
			s.CardsWithStreaks++
		}
	}

	// Defined as 0 when there are no review events, never a division error.
	if totalEvents > 0 {
		rate := float64(successes) / float64(totalEvents) * 100
		s.OverallSuccessRate = math.Round(rate*10) / 10
	}
	return s
}
