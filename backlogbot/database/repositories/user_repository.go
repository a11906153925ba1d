package repositories

import (
	"context"
	"log/slog"
	"time"

	"github.com/backlogbot/backlog-bot/backlogbot/database/models"
	"github.com/uptrace/bun"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByDiscordID(ctx context.Context, discordID string) (*models.User, error)
}

type userRepository struct {
	*BaseRepository
}

func NewUserRepository(db *bun.DB) UserRepository {
	return &userRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := r.db.NewInsert().Model(user).Exec(ctx)
	if err != nil {
		slog.Error("Failed to create user",
			slog.String("type", "db"),
			slog.String("operation", "CreateUser"),
			slog.String("discord_id", user.DiscordID),
			slog.Any("error", err))
	}
	return r.HandleErrorWithField("create", "user", "discord_id", user.DiscordID, err)
}

func (r *userRepository) GetByDiscordID(ctx context.Context, discordID string) (*models.User, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	slog.Debug("UserRepository.GetByDiscordID called",
		slog.String("type", "db"),
		slog.String("operation", "GetByDiscordID"),
		slog.String("discord_id", discordID))

	user := new(models.User)
	err := r.db.NewSelect().
		Model(user).
		Where("discord_id = ?", discordID).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, r.HandleErrorWithID("get", "user", discordID, err)
	}
	return user, nil
}
