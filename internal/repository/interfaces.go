package repository

import (
	"context"
	"time"

	"github.com/vlemaire/flashdeck/internal/models"
)

// CardRepository handles card data access. Every read and mutation is scoped
// by owner: a card belonging to another user is reported as ErrNotOwner,
// distinct from ErrCardNotFound, so the API layer can choose 404 vs 403.
type CardRepository interface {
	Insert(ctx context.Context, card models.Card) error
	Get(ctx context.Context, ownerID, cardID string) (models.Card, error)
	Update(ctx context.Context, card models.Card) error
	Delete(ctx context.Context, ownerID, cardID string) error
	List(ctx context.Context, ownerID, category string) ([]models.Card, error)
	ListDue(ctx context.Context, ownerID string, now time.Time, category string) ([]models.Card, error)
	Categories(ctx context.Context, ownerID string) ([]string, error)
	Snapshot(ctx context.Context) ([]models.Card, error)
	ReplaceAll(ctx context.Context, cards []models.Card) error
}

// UserRepository handles user account data access.
type UserRepository interface {
	Insert(ctx context.Context, user models.User) error
	ByUsername(ctx context.Context, username string) (models.User, error)
	ByID(ctx context.Context, id string) (models.User, error)
	Snapshot(ctx context.Context) ([]models.User, error)
	ReplaceAll(ctx context.Context, users []models.User) error
}

// SnapshotStore durably persists full card and user sets. Implementations
// must round-trip every field losslessly, including review history. Loads
// happen once at startup, saves after each mutation.
type SnapshotStore interface {
	LoadCards(ctx context.Context) ([]models.Card, error)
	SaveCards(ctx context.Context, cards []models.Card) error
	LoadUsers(ctx context.Context) ([]models.User, error)
	SaveUsers(ctx context.Context, users []models.User) error
	Close() error
}
