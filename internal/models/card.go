package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Difficulty determines how far out a card is rescheduled after a review.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "EASY"
	DifficultyMedium Difficulty = "MEDIUM"
	DifficultyHard   Difficulty = "HARD"
)

// ParseDifficulty parses a difficulty name. The match is case-insensitive.
func ParseDifficulty(s string) (Difficulty, error) {
	switch Difficulty(strings.ToUpper(strings.TrimSpace(s))) {
	case DifficultyEasy:
		return DifficultyEasy, nil
	case DifficultyMedium:
		return DifficultyMedium, nil
	case DifficultyHard:
		return DifficultyHard, nil
	}
	return "", fmt.Errorf("unknown difficulty %q", s)
}

// Valid reports whether d is one of the three enumerated levels.
func (d Difficulty) Valid() bool {
	return d == DifficultyEasy || d == DifficultyMedium || d == DifficultyHard
}

// ReviewEntry is one recorded review outcome. History is append-only.
type ReviewEntry struct {
	ReviewedAt time.Time `json:"reviewed_at"`
	Success    bool      `json:"success"`
}

// Card is a single flashcard owned by one user.
//
// NextReview is initialized to CreatedAt so a new card is immediately due,
// and is recomputed on every review and on every difficulty change. The
// scheduling rules live in the srs package; Card itself carries no behavior.
type Card struct {
	ID            string        `json:"card_id"`
	OwnerID       string        `json:"owner_id"`
	Front         string        `json:"front"`
	Back          string        `json:"back"`
	Difficulty    Difficulty    `json:"difficulty"`
	Category      string        `json:"category,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	LastReviewed  *time.Time    `json:"last_reviewed"`
	NextReview    time.Time     `json:"next_review"`
	ReviewCount   int           `json:"review_count"`
	ReviewHistory []ReviewEntry `json:"review_history"`
	SuccessStreak int           `json:"success_streak"`
}

// NewCardID generates an opaque card identifier.
func NewCardID() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "card_" + raw[:16]
}

// IsDue reports whether the card is due for review at the given time.
func (c Card) IsDue(now time.Time) bool {
	return !c.NextReview.After(now)
}
