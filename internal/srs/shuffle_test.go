package srs_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vlemaire/flashdeck/internal/models"
	"github.com/vlemaire/flashdeck/internal/srs"
)

func TestShuffle_IsPermutation(t *testing.T) {
	for _, size := range []int{0, 1, 2, 5, 50} {
		t.Run(fmt.Sprintf("size_%d", size), func(t *testing.T) {
			now := time.Now()
			cards := make([]models.Card, size)
			for i := range cards {
				cards[i] = models.Card{
					ID:         fmt.Sprintf("card_%d", i),
					Difficulty: models.DifficultyMedium,
					CreatedAt:  now,
					NextReview: now,
				}
			}

			before := make(map[string]int, size)
			for _, c := range cards {
				before[c.ID]++
			}

			srs.Shuffle(cards)

			after := make(map[string]int, size)
			for _, c := range cards {
				after[c.ID]++
			}
			assert.Equal(t, before, after, "shuffle must preserve the exact multiset of cards")
		})
	}
}

func TestShuffle_EventuallyReorders(t *testing.T) {
	cards := make([]models.Card, 10)
	for i := range cards {
		cards[i] = models.Card{ID: fmt.Sprintf("card_%d", i)}
	}

	moved := false
	for attempt := 0; attempt < 20 && !moved; attempt++ {
		srs.Shuffle(cards)
		for i, c := range cards {
			if c.ID != fmt.Sprintf("card_%d", i) {
				moved = true
				break
			}
		}
	}
	// 20 shuffles of 10 elements all landing on the identity permutation is
	// vanishingly unlikely; treat it as a broken shuffle.
	assert.True(t, moved, "shuffle never changed the order")
}
