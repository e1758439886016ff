// Package srs implements the spaced-repetition scheduling rules: a fixed
// per-difficulty interval table, review application, and due-card shuffling.
package srs

import (
	"fmt"
	"time"

	"github.com/vlemaire/flashdeck/internal/models"
)

// Review intervals per difficulty. Deliberately a fixed table, not an
// adaptive algorithm: harder cards come back sooner.
const (
	easyInterval   = 7 * 24 * time.Hour
	mediumInterval = 3 * 24 * time.Hour
	hardInterval   = 1 * 24 * time.Hour
)

// Interval returns the review interval for a difficulty level.
// Difficulty is validated before it reaches this package; an unrecognized
// value is a caller bug and panics rather than silently defaulting.
func Interval(d models.Difficulty) time.Duration {
	switch d {
	case models.DifficultyEasy:
		return easyInterval
	case models.DifficultyMedium:
		return mediumInterval
	case models.DifficultyHard:
		return hardInterval
	}
	panic(fmt.Sprintf("srs: unrecognized difficulty %q", d))
}

// NextReview computes when a card reviewed at base becomes due again. It is
// the single source of truth for due computation; both the review path and
// the difficulty-change path go through it.
func NextReview(base time.Time, d models.Difficulty) time.Time {
	return base.Add(Interval(d))
}
