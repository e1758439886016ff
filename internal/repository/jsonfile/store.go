// Package jsonfile persists card and user snapshots as JSON files, the
// default storage driver. Each save rewrites the whole file; writes go
// through a temp file and rename so a crash never leaves a torn file.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vlemaire/flashdeck/internal/logger"
	"github.com/vlemaire/flashdeck/internal/models"
	"github.com/vlemaire/flashdeck/internal/repository"
)

const (
	cardsFile = "flashcards.json"
	usersFile = "users.json"
)

type store struct {
	dir string
	log *logger.Logger
}

// New creates a SnapshotStore writing flashcards.json and users.json under
// dir, creating the directory if needed.
func New(dir string) (repository.SnapshotStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir %s: %w", dir, err)
	}
	return &store{dir: dir, log: logger.Default().WithPrefix("jsonfile")}, nil
}

func (s *store) LoadCards(ctx context.Context) ([]models.Card, error) {
	var cards []models.Card
	if err := s.load(ctx, cardsFile, &cards); err != nil {
		return nil, err
	}
	return cards, nil
}

func (s *store) SaveCards(ctx context.Context, cards []models.Card) error {
	if cards == nil {
		cards = []models.Card{}
	}
	return s.save(ctx, cardsFile, cards)
}

func (s *store) LoadUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.load(ctx, usersFile, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *store) SaveUsers(ctx context.Context, users []models.User) error {
	if users == nil {
		users = []models.User{}
	}
	return s.save(ctx, usersFile, users)
}

func (s *store) Close() error {
	return nil
}

func (s *store) load(_ context.Context, name string, out any) error {
	path := filepath.Join(s.dir, name)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		s.log.Debug("%s does not exist yet, starting empty", name)
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		// A corrupt file should not brick the service; start empty and keep
		// the broken file on disk for inspection.
		s.log.Warn("could not parse %s, starting with an empty set: %v", path, err)
		return nil
	}
	return nil
}

func (s *store) save(_ context.Context, name string, in any) error {
	path := filepath.Join(s.dir, name)
	data, err := json.MarshalIndent(in, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", name, err)
	}

	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file for %s: %w", name, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename %s: %w", tmpName, err)
	}
	s.log.Debug("saved %s (%d bytes)", name, len(data))
	return nil
}
