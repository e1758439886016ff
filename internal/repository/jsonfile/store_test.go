package jsonfile_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vlemaire/flashdeck/internal/models"
	"github.com/vlemaire/flashdeck/internal/repository/jsonfile"
)

func TestStore_MissingFilesLoadEmpty(t *testing.T) {
	store, err := jsonfile.New(t.TempDir())
	require.NoError(t, err)

	cards, err := store.LoadCards(context.Background())
	require.NoError(t, err)
	assert.Empty(t, cards)

	users, err := store.LoadUsers(context.Background())
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestStore_CardRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, err := jsonfile.New(t.TempDir())
	require.NoError(t, err)

	reviewed := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	card := models.Card{
		ID:           models.NewCardID(),
		OwnerID:      "alice",
		Front:        "chien",
		Back:         "dog",
		Difficulty:   models.DifficultyHard,
		Category:     "animals",
		CreatedAt:    reviewed.Add(-24 * time.Hour),
		LastReviewed: &reviewed,
		NextReview:   reviewed.Add(24 * time.Hour),
		ReviewCount:  2,
		ReviewHistory: []models.ReviewEntry{
			{ReviewedAt: reviewed.Add(-12 * time.Hour), Success: false},
			{ReviewedAt: reviewed, Success: true},
		},
		SuccessStreak: 1,
	}

	require.NoError(t, store.SaveCards(ctx, []models.Card{card}))

	loaded, err := store.LoadCards(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	got := loaded[0]

	assert.Equal(t, card.ID, got.ID)
	assert.Equal(t, card.Difficulty, got.Difficulty)
	assert.Equal(t, card.Category, got.Category)
	require.NotNil(t, got.LastReviewed)
	assert.True(t, card.LastReviewed.Equal(*got.LastReviewed))
	assert.True(t, card.NextReview.Equal(got.NextReview))
	require.Len(t, got.ReviewHistory, 2, "review history must survive the round trip")
	assert.False(t, got.ReviewHistory[0].Success)
	assert.True(t, got.ReviewHistory[1].Success)
	assert.Equal(t, 2, got.ReviewCount)
	assert.Equal(t, 1, got.SuccessStreak)
}

func TestStore_UserRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, err := jsonfile.New(t.TempDir())
	require.NoError(t, err)

	user := models.User{
		ID:           models.NewUserID(),
		Username:     "alice",
		PasswordHash: "$2a$10$somethinghashed",
		CreatedAt:    time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC),
	}
	require.NoError(t, store.SaveUsers(ctx, []models.User{user}))

	loaded, err := store.LoadUsers(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, user.ID, loaded[0].ID)
	assert.Equal(t, user.PasswordHash, loaded[0].PasswordHash)
}

func TestStore_CorruptFileStartsEmpty(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "flashcards.json"), []byte("{not json"), 0o644))

	store, err := jsonfile.New(dir)
	require.NoError(t, err)

	cards, err := store.LoadCards(context.Background())
	require.NoError(t, err, "a corrupt file is logged, not fatal")
	assert.Empty(t, cards)
}
