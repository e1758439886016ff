package srs_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vlemaire/flashdeck/internal/models"
	"github.com/vlemaire/flashdeck/internal/srs"
)

func newTestCard(d models.Difficulty, createdAt time.Time) models.Card {
	return models.Card{
		ID:         models.NewCardID(),
		OwnerID:    "user-1",
		Front:      "bonjour",
		Back:       "hello",
		Difficulty: d,
		CreatedAt:  createdAt,
		NextReview: createdAt,
	}
}

func TestApplyReview_Success(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	card := newTestCard(models.DifficultyMedium, now.Add(-time.Hour))

	updated, streak := srs.ApplyReview(card, true, now)

	assert.Equal(t, 1, streak)
	assert.Equal(t, 1, updated.SuccessStreak)
	assert.Equal(t, 1, updated.ReviewCount)
	require.NotNil(t, updated.LastReviewed)
	assert.Equal(t, now, *updated.LastReviewed)
	assert.Equal(t, now.Add(3*24*time.Hour), updated.NextReview)
	require.Len(t, updated.ReviewHistory, 1)
	assert.True(t, updated.ReviewHistory[0].Success)
	assert.Equal(t, now, updated.ReviewHistory[0].ReviewedAt)
}

func TestApplyReview_FailureResetsStreak(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	card := newTestCard(models.DifficultyEasy, now.Add(-time.Hour))
	card.SuccessStreak = 5
	card.ReviewCount = 5
	for i := 0; i < 5; i++ {
		card.ReviewHistory = append(card.ReviewHistory, models.ReviewEntry{ReviewedAt: now.Add(-time.Hour), Success: true})
	}

	updated, streak := srs.ApplyReview(card, false, now)

	assert.Equal(t, 0, streak)
	assert.Equal(t, 0, updated.SuccessStreak)
	assert.Equal(t, 6, updated.ReviewCount, "failed review still counts")
	assert.Len(t, updated.ReviewHistory, 6)
	assert.Equal(t, now.Add(7*24*time.Hour), updated.NextReview)
}

func TestApplyReview_HistoryCountInvariant(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	card := newTestCard(models.DifficultyHard, now)

	outcomes := []bool{true, true, false, true, false, false, true}
	for i, success := range outcomes {
		card, _ = srs.ApplyReview(card, success, now.Add(time.Duration(i)*24*time.Hour))
		assert.Equal(t, card.ReviewCount, len(card.ReviewHistory))
		assert.LessOrEqual(t, card.SuccessStreak, card.ReviewCount)
	}
	assert.Equal(t, len(outcomes), card.ReviewCount)
}

// Scenario: a HARD card created at T0 is immediately due, a successful review
// schedules it one day out with streak 1, and a failed review a day later
// resets the streak and pushes it another day.
func TestReviewScenario_HardCard(t *testing.T) {
	t0 := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	card := newTestCard(models.DifficultyHard, t0)

	assert.True(t, card.IsDue(t0), "new card should be immediately due")
	assert.Nil(t, card.LastReviewed)

	card, streak := srs.ApplyReview(card, true, t0)
	assert.Equal(t, 1, streak)
	assert.Equal(t, t0.Add(24*time.Hour), card.NextReview)

	t1 := t0.Add(24 * time.Hour)
	card, streak = srs.ApplyReview(card, false, t1)
	assert.Equal(t, 0, streak)
	assert.Equal(t, t0.Add(2*24*time.Hour), card.NextReview)
	assert.Equal(t, 2, card.ReviewCount)
}

func TestChangeDifficulty_ReviewedCardReschedulesFromLastReview(t *testing.T) {
	t0 := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	card := newTestCard(models.DifficultyHard, t0)
	card, _ = srs.ApplyReview(card, true, t0)
	require.Equal(t, t0.Add(24*time.Hour), card.NextReview)

	// The reschedule anchors on the last review, not on the current time.
	card = srs.ChangeDifficulty(card, models.DifficultyEasy)
	assert.Equal(t, models.DifficultyEasy, card.Difficulty)
	assert.Equal(t, t0.Add(7*24*time.Hour), card.NextReview)
}

func TestChangeDifficulty_UnreviewedCardStaysDue(t *testing.T) {
	t0 := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	card := newTestCard(models.DifficultyMedium, t0)

	card = srs.ChangeDifficulty(card, models.DifficultyEasy)

	assert.Equal(t, models.DifficultyEasy, card.Difficulty)
	assert.Equal(t, t0, card.NextReview, "unreviewed card must stay immediately due")
	assert.True(t, card.IsDue(t0))
}
