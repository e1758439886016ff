package services

import (
	"context"
	stderrors "errors"
	"strings"
	"time"

	"github.com/vlemaire/flashdeck/internal/errors"
	"github.com/vlemaire/flashdeck/internal/jobs"
	"github.com/vlemaire/flashdeck/internal/logger"
	"github.com/vlemaire/flashdeck/internal/models"
	"github.com/vlemaire/flashdeck/internal/repository"
	"github.com/vlemaire/flashdeck/internal/srs"
	"github.com/vlemaire/flashdeck/internal/stats"
)

// CardService handles flashcard business logic. Every operation is scoped to
// the owner the API layer authenticated; ownership enforcement itself lives
// in the repository.
type CardService interface {
	CreateCard(ctx context.Context, ownerID, front, back, difficulty, category string) (models.Card, error)
	GetCard(ctx context.Context, ownerID, cardID string) (models.Card, error)
	DeleteCard(ctx context.Context, ownerID, cardID string) error
	ListCards(ctx context.Context, ownerID, category string) ([]models.Card, error)
	ListDueCards(ctx context.Context, ownerID, category string, shuffle bool) ([]models.Card, error)
	UpdateDifficulty(ctx context.Context, ownerID, cardID, difficulty string) (models.Card, error)
	ReviewCard(ctx context.Context, ownerID, cardID string, success bool) (models.Card, int, error)
	Categories(ctx context.Context, ownerID string) ([]string, error)
	Stats(ctx context.Context, ownerID string) (models.Stats, error)
}

type cardService struct {
	cards repository.CardRepository
	flush jobs.FlushQueue
	now   func() time.Time
}

// NewCardService creates a new CardService. The flush queue is notified
// after every mutation so the snapshot store stays in step with memory.
func NewCardService(cards repository.CardRepository, flush jobs.FlushQueue) CardService {
	return &cardService{cards: cards, flush: flush, now: time.Now}
}

func (s *cardService) CreateCard(ctx context.Context, ownerID, front, back, difficulty, category string) (models.Card, error) {
	log := logger.FromContext(ctx)

	front = strings.TrimSpace(front)
	back = strings.TrimSpace(back)
	category = strings.TrimSpace(category)
	if front == "" {
		return models.Card{}, errors.NewValidationError("front", "cannot be empty")
	}
	if back == "" {
		return models.Card{}, errors.NewValidationError("back", "cannot be empty")
	}
	level, err := models.ParseDifficulty(difficulty)
	if err != nil {
		return models.Card{}, errors.NewValidationError("difficulty", "must be EASY, MEDIUM or HARD")
	}

	now := s.now()
	card := models.Card{
		ID:         models.NewCardID(),
		OwnerID:    ownerID,
		Front:      front,
		Back:       back,
		Difficulty: level,
		Category:   category,
		CreatedAt:  now,
		// A new card is immediately due so it gets studied at least once
		// before difficulty spacing applies.
		NextReview: now,
	}
	if err := s.cards.Insert(ctx, card); err != nil {
		log.Error("failed to insert card: %v", err)
		return models.Card{}, errors.NewInternalError(err)
	}
	s.flush.EnqueueCardFlush()

	log.Info("card created: id=%s difficulty=%s", card.ID, card.Difficulty)
	return card, nil
}

func (s *cardService) GetCard(ctx context.Context, ownerID, cardID string) (models.Card, error) {
	card, err := s.cards.Get(ctx, ownerID, cardID)
	if err != nil {
		return models.Card{}, cardError(err, cardID)
	}
	return card, nil
}

func (s *cardService) DeleteCard(ctx context.Context, ownerID, cardID string) error {
	log := logger.FromContext(ctx)

	if err := s.cards.Delete(ctx, ownerID, cardID); err != nil {
		return cardError(err, cardID)
	}
	s.flush.EnqueueCardFlush()

	log.Info("card deleted: id=%s", cardID)
	return nil
}

func (s *cardService) ListCards(ctx context.Context, ownerID, category string) ([]models.Card, error) {
	cards, err := s.cards.List(ctx, ownerID, strings.TrimSpace(category))
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return cards, nil
}

func (s *cardService) ListDueCards(ctx context.Context, ownerID, category string, shuffle bool) ([]models.Card, error) {
	cards, err := s.cards.ListDue(ctx, ownerID, s.now(), strings.TrimSpace(category))
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if shuffle {
		srs.Shuffle(cards)
	}
	return cards, nil
}

func (s *cardService) UpdateDifficulty(ctx context.Context, ownerID, cardID, difficulty string) (models.Card, error) {
	log := logger.FromContext(ctx)

	level, err := models.ParseDifficulty(difficulty)
	if err != nil {
		return models.Card{}, errors.NewValidationError("difficulty", "must be EASY, MEDIUM or HARD")
	}

	card, err := s.cards.Get(ctx, ownerID, cardID)
	if err != nil {
		return models.Card{}, cardError(err, cardID)
	}

	card = srs.ChangeDifficulty(card, level)
	if err := s.cards.Update(ctx, card); err != nil {
		log.Error("failed to update card difficulty: %v", err)
		return models.Card{}, cardError(err, cardID)
	}
	s.flush.EnqueueCardFlush()

	log.Info("card difficulty updated: id=%s difficulty=%s", cardID, level)
	return card, nil
}

func (s *cardService) ReviewCard(ctx context.Context, ownerID, cardID string, success bool) (models.Card, int, error) {
	log := logger.FromContext(ctx)

	card, err := s.cards.Get(ctx, ownerID, cardID)
	if err != nil {
		return models.Card{}, 0, cardError(err, cardID)
	}

	card, streak := srs.ApplyReview(card, success, s.now())
	if err := s.cards.Update(ctx, card); err != nil {
		log.Error("failed to store review: %v", err)
		return models.Card{}, 0, cardError(err, cardID)
	}
	s.flush.EnqueueCardFlush()

	log.Info("card reviewed: id=%s success=%t streak=%d next_review=%s",
		cardID, success, streak, card.NextReview.Format(time.RFC3339))
	return card, streak, nil
}

func (s *cardService) Categories(ctx context.Context, ownerID string) ([]string, error) {
	categories, err := s.cards.Categories(ctx, ownerID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return categories, nil
}

func (s *cardService) Stats(ctx context.Context, ownerID string) (models.Stats, error) {
	cards, err := s.cards.List(ctx, ownerID, "")
	if err != nil {
		return models.Stats{}, errors.NewInternalError(err)
	}
	return stats.Compute(cards, s.now()), nil
}

// cardError translates repository sentinels into API-facing errors, keeping
// "doesn't exist" and "not yours" distinct.
func cardError(err error, cardID string) error {
	switch {
	case stderrors.Is(err, repository.ErrCardNotFound):
		return errors.NewNotFoundError("card", cardID)
	case stderrors.Is(err, repository.ErrNotOwner):
		return errors.NewForbiddenError("card belongs to another user")
	default:
		return errors.NewInternalError(err)
	}
}
