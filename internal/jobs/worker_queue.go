package jobs

import (
	"github.com/vlemaire/flashdeck/internal/repository"
	"github.com/vlemaire/flashdeck/internal/worker"
)

// WorkerQueue implements FlushQueue on top of a worker pool. It is meant to
// run with a single worker so flushes land in submission order.
type WorkerQueue struct {
	pool  *worker.Pool
	cards repository.CardRepository
	users repository.UserRepository
	store repository.SnapshotStore
}

// NewWorkerQueue creates a new WorkerQueue implementation.
func NewWorkerQueue(
	pool *worker.Pool,
	cards repository.CardRepository,
	users repository.UserRepository,
	store repository.SnapshotStore,
) *WorkerQueue {
	return &WorkerQueue{
		pool:  pool,
		cards: cards,
		users: users,
		store: store,
	}
}

func (q *WorkerQueue) EnqueueCardFlush() {
	q.pool.Submit(&worker.FlushCardsJob{Cards: q.cards, Store: q.store})
}

func (q *WorkerQueue) EnqueueUserFlush() {
	q.pool.Submit(&worker.FlushUsersJob{Users: q.users, Store: q.store})
}
