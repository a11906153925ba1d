package repositories

import (
	"context"

	"github.com/backlogbot/backlog-bot/backlogbot/database/models"
	"github.com/backlogbot/backlog-bot/internal/domain/backlog"
	"github.com/uptrace/bun"
)

// Store adapts the Postgres repositories to backlog.Store.
type Store struct {
	users UserRepository
	items BacklogRepository
}

func NewStore(db *bun.DB) *Store {
	return &Store{
		users: NewUserRepository(db),
		items: NewBacklogRepository(db),
	}
}

func (s *Store) GetUserByPlatformID(ctx context.Context, platformID string) (*backlog.User, error) {
	user, err := s.users.GetByDiscordID(ctx, platformID)
	if err != nil {
		return nil, err
	}
	return &backlog.User{
		PlatformID: user.DiscordID,
		Level:      user.Level,
		Exp:        user.Exp,
		MaxExp:     user.MaxExp,
		CreatedAt:  user.CreatedAt,
	}, nil
}

func (s *Store) CreateUser(ctx context.Context, user *backlog.User) error {
	row := &models.User{
		DiscordID: user.PlatformID,
		Level:     user.Level,
		Exp:       user.Exp,
		MaxExp:    user.MaxExp,
	}
	if err := s.users.Create(ctx, row); err != nil {
		return err
	}
	user.CreatedAt = row.CreatedAt
	return nil
}

func (s *Store) CreateBacklogItem(ctx context.Context, item *backlog.BacklogItem) error {
	row := &models.BacklogItem{
		UserID:      item.UserID,
		DisplayName: item.DisplayName,
		AppID:       item.AppID,
	}
	if err := s.items.Create(ctx, row); err != nil {
		return err
	}
	item.AddedAt = row.CreatedAt
	return nil
}

func (s *Store) ListBacklogItems(ctx context.Context, platformID string) ([]*backlog.BacklogItem, error) {
	rows, err := s.items.GetAllByUserID(ctx, platformID)
	if err != nil {
		return nil, err
	}

	items := make([]*backlog.BacklogItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, &backlog.BacklogItem{
			UserID:      row.UserID,
			DisplayName: row.DisplayName,
			AppID:       row.AppID,
			AddedAt:     row.CreatedAt,
		})
	}
	return items, nil
}
