package worker

import (
	"context"

	"github.com/vlemaire/flashdeck/internal/logger"
	"github.com/vlemaire/flashdeck/internal/repository"
)

// FlushCardsJob snapshots the card repository and writes it to durable
// storage. The snapshot is taken when the job runs, so back-to-back flushes
// collapse to the latest state.
type FlushCardsJob struct {
	Cards repository.CardRepository
	Store repository.SnapshotStore
}

func (j *FlushCardsJob) Name() string { return "flush_cards" }

func (j *FlushCardsJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx)
	cards, err := j.Cards.Snapshot(ctx)
	if err != nil {
		return err
	}
	if err := j.Store.SaveCards(ctx, cards); err != nil {
		return err
	}
	log.Debug("flushed %d cards to storage", len(cards))
	return nil
}

// FlushUsersJob snapshots the user repository and writes it to durable
// storage.
type FlushUsersJob struct {
	Users repository.UserRepository
	Store repository.SnapshotStore
}

func (j *FlushUsersJob) Name() string { return "flush_users" }

func (j *FlushUsersJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx)
	users, err := j.Users.Snapshot(ctx)
	if err != nil {
		return err
	}
	if err := j.Store.SaveUsers(ctx, users); err != nil {
		return err
	}
	log.Debug("flushed %d users to storage", len(users))
	return nil
}
