package srs

import (
	"math/rand/v2"

	"github.com/vlemaire/flashdeck/internal/models"
)

// Shuffle randomizes card order in place with a Fisher-Yates shuffle.
// Callers that need the original order must pass a copy.
func Shuffle(cards []models.Card) {
	for i := len(cards) - 1; i > 0; i-- {
		j := rand.IntN(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
}
