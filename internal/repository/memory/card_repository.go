// Package memory provides the in-process repositories backing the service.
// A single RWMutex per repository serializes mutations, which is the
// single-writer guarantee the scheduling core relies on. Durability is the
// snapshot store's job, invoked by the service layer after each mutation.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/vlemaire/flashdeck/internal/models"
	"github.com/vlemaire/flashdeck/internal/repository"
)

type cardRepository struct {
	mu    sync.RWMutex
	cards map[string]models.Card
	order []string // card IDs in insertion order
}

// NewCardRepository creates an empty in-memory CardRepository.
func NewCardRepository() repository.CardRepository {
	return &cardRepository{cards: make(map[string]models.Card)}
}

func (r *cardRepository) Insert(_ context.Context, card models.Card) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.cards[card.ID]; !exists {
		r.order = append(r.order, card.ID)
	}
	r.cards[card.ID] = cloneCard(card)
	return nil
}

func (r *cardRepository) Get(_ context.Context, ownerID, cardID string) (models.Card, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	card, ok := r.cards[cardID]
	if !ok {
		return models.Card{}, repository.ErrCardNotFound
	}
	if card.OwnerID != ownerID {
		return models.Card{}, repository.ErrNotOwner
	}
	return cloneCard(card), nil
}

func (r *cardRepository) Update(_ context.Context, card models.Card) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.cards[card.ID]
	if !ok {
		return repository.ErrCardNotFound
	}
	if existing.OwnerID != card.OwnerID {
		return repository.ErrNotOwner
	}
	r.cards[card.ID] = cloneCard(card)
	return nil
}

func (r *cardRepository) Delete(_ context.Context, ownerID, cardID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	card, ok := r.cards[cardID]
	if !ok {
		return repository.ErrCardNotFound
	}
	if card.OwnerID != ownerID {
		return repository.ErrNotOwner
	}
	delete(r.cards, cardID)
	for i, id := range r.order {
		if id == cardID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *cardRepository) List(_ context.Context, ownerID, category string) ([]models.Card, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]models.Card, 0)
	for _, id := range r.order {
		card := r.cards[id]
		if card.OwnerID != ownerID {
			continue
		}
		if category != "" && card.Category != category {
			continue
		}
		result = append(result, cloneCard(card))
	}
	return result, nil
}

func (r *cardRepository) ListDue(ctx context.Context, ownerID string, now time.Time, category string) ([]models.Card, error) {
	all, err := r.List(ctx, ownerID, category)
	if err != nil {
		return nil, err
	}
	due := make([]models.Card, 0, len(all))
	for _, card := range all {
		if card.IsDue(now) {
			due = append(due, card)
		}
	}
	return due, nil
}

func (r *cardRepository) Categories(_ context.Context, ownerID string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]struct{})
	for _, card := range r.cards {
		if card.OwnerID == ownerID && card.Category != "" {
			seen[card.Category] = struct{}{}
		}
	}
	categories := make([]string, 0, len(seen))
	for c := range seen {
		categories = append(categories, c)
	}
	sort.Strings(categories)
	return categories, nil
}

func (r *cardRepository) Snapshot(_ context.Context) ([]models.Card, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cards := make([]models.Card, 0, len(r.order))
	for _, id := range r.order {
		cards = append(cards, cloneCard(r.cards[id]))
	}
	return cards, nil
}

func (r *cardRepository) ReplaceAll(_ context.Context, cards []models.Card) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.cards = make(map[string]models.Card, len(cards))
	r.order = make([]string, 0, len(cards))
	for _, card := range cards {
		if _, exists := r.cards[card.ID]; !exists {
			r.order = append(r.order, card.ID)
		}
		r.cards[card.ID] = cloneCard(card)
	}
	return nil
}

// cloneCard copies a card with its history so callers can never alias the
// repository's internal state.
func cloneCard(c models.Card) models.Card {
	if c.ReviewHistory != nil {
		history := make([]models.ReviewEntry, len(c.ReviewHistory))
		copy(history, c.ReviewHistory)
		c.ReviewHistory = history
	}
	if c.LastReviewed != nil {
		reviewed := *c.LastReviewed
		c.LastReviewed = &reviewed
	}
	return c
}
