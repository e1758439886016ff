package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vlemaire/flashdeck/internal/errors"
	"github.com/vlemaire/flashdeck/internal/models"
	"github.com/vlemaire/flashdeck/internal/repository/memory"
	"github.com/vlemaire/flashdeck/internal/services"
	"github.com/vlemaire/flashdeck/internal/testutil/mocks"
)

func newCardService(t *testing.T) (services.CardService, *mocks.FlushQueueMock) {
	t.Helper()
	flush := mocks.NewFlushQueueMock()
	return services.NewCardService(memory.NewCardRepository(), flush), flush
}

func appCode(t *testing.T, err error) string {
	t.Helper()
	appErr, ok := err.(*errors.AppError)
	require.True(t, ok, "expected *errors.AppError, got %T", err)
	return appErr.Code
}

func TestCreateCard(t *testing.T) {
	ctx := context.Background()
	svc, flush := newCardService(t)

	before := time.Now()
	card, err := svc.CreateCard(ctx, "alice", "  bonjour  ", "hello", "easy", " greetings ")
	require.NoError(t, err)

	assert.NotEmpty(t, card.ID)
	assert.Equal(t, "alice", card.OwnerID)
	assert.Equal(t, "bonjour", card.Front, "fields are trimmed")
	assert.Equal(t, models.DifficultyEasy, card.Difficulty, "difficulty parse is case-insensitive")
	assert.Equal(t, "greetings", card.Category)
	assert.Nil(t, card.LastReviewed)
	assert.Equal(t, 0, card.ReviewCount)
	assert.Equal(t, card.CreatedAt, card.NextReview, "new card is immediately due")
	assert.WithinDuration(t, before, card.CreatedAt, 5*time.Second)
	assert.Equal(t, 1, flush.CardFlushes(), "mutation triggers a flush")
}

func TestCreateCard_Validation(t *testing.T) {
	ctx := context.Background()
	svc, flush := newCardService(t)

	tests := []struct {
		name                          string
		front, back, difficulty, field string
	}{
		{"empty front", "  ", "back", "EASY", "front"},
		{"empty back", "front", "", "EASY", "back"},
		{"bad difficulty", "front", "back", "IMPOSSIBLE", "difficulty"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateCard(ctx, "alice", tt.front, tt.back, tt.difficulty, "")
			require.Error(t, err)
			assert.Equal(t, errors.ErrCodeValidation, appCode(t, err))
			assert.Contains(t, err.Error(), tt.field, "error names the violated field")
		})
	}
	assert.Equal(t, 0, flush.CardFlushes(), "rejected creates must not flush")
}

func TestGetCard_NotFoundVsForbidden(t *testing.T) {
	ctx := context.Background()
	svc, _ := newCardService(t)

	card, err := svc.CreateCard(ctx, "alice", "front", "back", "MEDIUM", "")
	require.NoError(t, err)

	_, err = svc.GetCard(ctx, "alice", "card_missing")
	assert.Equal(t, errors.ErrCodeNotFound, appCode(t, err))

	_, err = svc.GetCard(ctx, "bob", card.ID)
	assert.Equal(t, errors.ErrCodeForbidden, appCode(t, err), "another user's card is forbidden, not hidden")
}

func TestReviewCard(t *testing.T) {
	ctx := context.Background()
	svc, flush := newCardService(t)

	card, err := svc.CreateCard(ctx, "alice", "front", "back", "HARD", "")
	require.NoError(t, err)

	updated, streak, err := svc.ReviewCard(ctx, "alice", card.ID, true)
	require.NoError(t, err)
	assert.Equal(t, 1, streak)
	assert.Equal(t, 1, updated.ReviewCount)
	require.NotNil(t, updated.LastReviewed)
	assert.Equal(t, updated.LastReviewed.Add(24*time.Hour), updated.NextReview)

	updated, streak, err = svc.ReviewCard(ctx, "alice", card.ID, false)
	require.NoError(t, err)
	assert.Equal(t, 0, streak, "failed review resets the streak")
	assert.Equal(t, 2, updated.ReviewCount)
	assert.Len(t, updated.ReviewHistory, 2)

	assert.Equal(t, 3, flush.CardFlushes(), "create and both reviews flushed")
}

func TestReviewCard_OwnerScoped(t *testing.T) {
	ctx := context.Background()
	svc, _ := newCardService(t)

	card, err := svc.CreateCard(ctx, "alice", "front", "back", "HARD", "")
	require.NoError(t, err)

	_, _, err = svc.ReviewCard(ctx, "bob", card.ID, true)
	assert.Equal(t, errors.ErrCodeForbidden, appCode(t, err))

	got, err := svc.GetCard(ctx, "alice", card.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.ReviewCount, "forbidden review must not mutate the card")
}

func TestUpdateDifficulty(t *testing.T) {
	ctx := context.Background()
	svc, _ := newCardService(t)

	card, err := svc.CreateCard(ctx, "alice", "front", "back", "HARD", "")
	require.NoError(t, err)

	// Never reviewed: difficulty changes but the card stays due now.
	updated, err := svc.UpdateDifficulty(ctx, "alice", card.ID, "EASY")
	require.NoError(t, err)
	assert.Equal(t, models.DifficultyEasy, updated.Difficulty)
	assert.Equal(t, card.NextReview, updated.NextReview)

	// After a review the change reschedules from the last review time.
	reviewed, _, err := svc.ReviewCard(ctx, "alice", card.ID, true)
	require.NoError(t, err)
	updated, err = svc.UpdateDifficulty(ctx, "alice", card.ID, "HARD")
	require.NoError(t, err)
	assert.Equal(t, reviewed.LastReviewed.Add(24*time.Hour), updated.NextReview)

	_, err = svc.UpdateDifficulty(ctx, "alice", card.ID, "EXTREME")
	assert.Equal(t, errors.ErrCodeValidation, appCode(t, err))
}

func TestListDueCards(t *testing.T) {
	ctx := context.Background()
	svc, _ := newCardService(t)

	a, err := svc.CreateCard(ctx, "alice", "a", "1", "MEDIUM", "numbers")
	require.NoError(t, err)
	b, err := svc.CreateCard(ctx, "alice", "b", "2", "MEDIUM", "letters")
	require.NoError(t, err)
	c, err := svc.CreateCard(ctx, "alice", "c", "3", "MEDIUM", "numbers")
	require.NoError(t, err)

	// Reviewing pushes a card out of the due set.
	_, _, err = svc.ReviewCard(ctx, "alice", b.ID, true)
	require.NoError(t, err)

	due, err := svc.ListDueCards(ctx, "alice", "", false)
	require.NoError(t, err)
	require.Len(t, due, 2)
	assert.Equal(t, a.ID, due[0].ID, "stable order without shuffle")
	assert.Equal(t, c.ID, due[1].ID)

	numbers, err := svc.ListDueCards(ctx, "alice", "numbers", false)
	require.NoError(t, err)
	assert.Len(t, numbers, 2)

	shuffled, err := svc.ListDueCards(ctx, "alice", "", true)
	require.NoError(t, err)
	ids := map[string]bool{}
	for _, card := range shuffled {
		ids[card.ID] = true
	}
	assert.Equal(t, map[string]bool{a.ID: true, c.ID: true}, ids, "shuffle returns the same set")
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	svc, _ := newCardService(t)

	empty, err := svc.Stats(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 0.0, empty.OverallSuccessRate)
	assert.Equal(t, 0, empty.TotalCards)

	card, err := svc.CreateCard(ctx, "alice", "front", "back", "MEDIUM", "")
	require.NoError(t, err)
	for _, success := range []bool{true, true, false} {
		_, _, err = svc.ReviewCard(ctx, "alice", card.ID, success)
		require.NoError(t, err)
	}
	// Another user's cards must not leak into the stats.
	_, err = svc.CreateCard(ctx, "bob", "x", "y", "HARD", "")
	require.NoError(t, err)

	s, err := svc.Stats(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 1, s.TotalCards)
	assert.Equal(t, 1, s.MediumCards)
	assert.Equal(t, 3, s.TotalReviews)
	assert.Equal(t, 66.7, s.OverallSuccessRate)
	assert.Equal(t, 0, s.BestStreak, "streak was reset by the failed review")
}

func TestCategories(t *testing.T) {
	ctx := context.Background()
	svc, _ := newCardService(t)

	for _, c := range []struct{ front, category string }{
		{"a", "verbs"}, {"b", "animals"}, {"c", "verbs"}, {"d", ""},
	} {
		_, err := svc.CreateCard(ctx, "alice", c.front, "back", "EASY", c.category)
		require.NoError(t, err)
	}

	categories, err := svc.Categories(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"animals", "verbs"}, categories)
}
