package srs

import (
	"time"

	"github.com/vlemaire/flashdeck/internal/models"
)

// ApplyReview records one review outcome on a card and reschedules it.
// It appends to the history, bumps the review count, advances the streak on
// success or resets it on failure, and computes the next due time from now.
// Returns the updated card and the new streak value.
func ApplyReview(card models.Card, success bool, now time.Time) (models.Card, int) {
	card.ReviewHistory = append(card.ReviewHistory, models.ReviewEntry{
		ReviewedAt: now,
		Success:    success,
	})
	card.ReviewCount++
	if success {
		card.SuccessStreak++
	} else {
		card.SuccessStreak = 0
	}
	reviewed := now
	card.LastReviewed = &reviewed
	card.NextReview = NextReview(now, card.Difficulty)
	return card, card.SuccessStreak
}

// ChangeDifficulty updates a card's difficulty level.
//
// A card that has been reviewed is rescheduled from its last review, so the
// change applies retroactively instead of granting a fresh interval from now.
// A card that has never been reviewed keeps its original due time: it stays
// immediately due and gets studied once before difficulty spacing kicks in.
func ChangeDifficulty(card models.Card, d models.Difficulty) models.Card {
	card.Difficulty = d
	if card.LastReviewed != nil {
		card.NextReview = NextReview(*card.LastReviewed, d)
	}
	return card
}
