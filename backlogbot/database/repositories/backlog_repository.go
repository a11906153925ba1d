package repositories

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/backlogbot/backlog-bot/backlogbot/database/models"
	"github.com/uptrace/bun"
)

type BacklogRepository interface {
	Create(ctx context.Context, item *models.BacklogItem) error
	GetAllByUserID(ctx context.Context, userID string) ([]*models.BacklogItem, error)
}

type backlogRepository struct {
	*BaseRepository
}

func NewBacklogRepository(db *bun.DB) BacklogRepository {
	return &backlogRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *backlogRepository) Create(ctx context.Context, item *models.BacklogItem) error {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	item.CreatedAt = time.Now()

	_, err := r.db.NewInsert().Model(item).Exec(ctx)
	if err != nil {
		slog.Error("Failed to create backlog item",
			slog.String("type", "db"),
			slog.String("operation", "CreateBacklogItem"),
			slog.String("user_id", item.UserID),
			slog.Int("app_id", item.AppID),
			slog.Any("error", err))
	}
	return r.HandleErrorWithField("create", "backlog item", "(user_id, app_id)",
		fmt.Sprintf("(%s, %d)", item.UserID, item.AppID), err)
}

// GetAllByUserID returns the user's backlog, oldest first.
func (r *backlogRepository) GetAllByUserID(ctx context.Context, userID string) ([]*models.BacklogItem, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	var items []*models.BacklogItem
	err := r.db.NewSelect().
		Model(&items).
		Where("user_id = ?", userID).
		Order("created_at ASC", "id ASC").
		Scan(ctx)
	if err != nil {
		return nil, r.HandleErrorWithID("list", "backlog item", userID, err)
	}
	return items, nil
}
