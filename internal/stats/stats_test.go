package stats_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vlemaire/flashdeck/internal/models"
	"github.com/vlemaire/flashdeck/internal/srs"
	"github.com/vlemaire/flashdeck/internal/stats"
)

func TestCompute_EmptyCollection(t *testing.T) {
	s := stats.Compute(nil, time.Now())

	assert.Equal(t, 0, s.TotalCards)
	assert.Equal(t, 0, s.DueForReview)
	assert.Equal(t, 0, s.TotalReviews)
	assert.Equal(t, 0.0, s.OverallSuccessRate, "no reviews means rate 0, not an error")
	assert.Equal(t, 0, s.BestStreak)
	assert.Equal(t, 0, s.CardsWithStreaks)
}

func TestCompute_SuccessRateRounding(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	card := models.Card{
		ID:         models.NewCardID(),
		Difficulty: models.DifficultyMedium,
		CreatedAt:  now,
		NextReview: now,
	}
	// 2 successes, 1 failure: 66.666... rounds to 66.7.
	card, _ = srs.ApplyReview(card, true, now)
	card, _ = srs.ApplyReview(card, true, now.Add(time.Hour))
	card, _ = srs.ApplyReview(card, false, now.Add(2*time.Hour))

	s := stats.Compute([]models.Card{card}, now.Add(3*time.Hour))

	assert.Equal(t, 66.7, s.OverallSuccessRate)
	assert.Equal(t, 3, s.TotalReviews)
}

func TestCompute_CountsAndStreaks(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	later := now.Add(time.Hour)

	easy := models.Card{ID: "a", Difficulty: models.DifficultyEasy, NextReview: now}
	easy, _ = srs.ApplyReview(easy, true, now)
	easy, _ = srs.ApplyReview(easy, true, now)

	medium := models.Card{ID: "b", Difficulty: models.DifficultyMedium, NextReview: now}
	medium, _ = srs.ApplyReview(medium, false, now)

	hard := models.Card{ID: "c", Difficulty: models.DifficultyHard, NextReview: now}

	s := stats.Compute([]models.Card{easy, medium, hard}, later)

	assert.Equal(t, 3, s.TotalCards)
	assert.Equal(t, 1, s.EasyCards)
	assert.Equal(t, 1, s.MediumCards)
	assert.Equal(t, 1, s.HardCards)
	// easy was rescheduled 7 days out, medium 3 days; only hard is still due.
	assert.Equal(t, 1, s.DueForReview)
	assert.Equal(t, 3, s.TotalReviews)
	assert.Equal(t, 2, s.BestStreak)
	assert.Equal(t, 1, s.CardsWithStreaks)
}
