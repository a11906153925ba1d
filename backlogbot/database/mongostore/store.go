package mongostore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/backlogbot/backlog-bot/backlogbot/config"
	"github.com/backlogbot/backlog-bot/internal/domain/backlog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	usersCollection   = "users"
	backlogCollection = "backlog_items"
)

type Config struct {
	URI      string `toml:"uri"`
	Database string `toml:"database"`
}

type userDocument struct {
	PlatformID string    `bson:"platform_id"`
	Level      int       `bson:"level"`
	Exp        int       `bson:"exp"`
	MaxExp     int       `bson:"max_exp"`
	CreatedAt  time.Time `bson:"created_at"`
}

type backlogDocument struct {
	UserID      string    `bson:"user_id"`
	DisplayName string    `bson:"display_name"`
	AppID       int       `bson:"app_id"`
	AddedAt     time.Time `bson:"added_at"`
}

// Store implements backlog.Store on MongoDB. Uniqueness of users and of
// (user, app) pairs is enforced by the indexes created in EnsureIndexes.
type Store struct {
	client *mongo.Client
	users  *mongo.Collection
	items  *mongo.Collection
}

func Connect(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.URI == "" {
		return nil, fmt.Errorf("mongo uri is required")
	}
	dbName := cfg.Database
	if dbName == "" {
		dbName = "backlog"
	}

	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(config.NetworkDialTimeout))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo ping failed: %w", err)
	}

	db := client.Database(dbName)
	slog.Info("Connected to MongoDB",
		slog.String("type", "db"),
		slog.String("database", dbName))

	return &Store{
		client: client,
		users:  db.Collection(usersCollection),
		items:  db.Collection(backlogCollection),
	}, nil
}

// EnsureIndexes creates the unique indexes. Safe to run on every start.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	if _, err := s.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "platform_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return fmt.Errorf("failed to create users index: %w", err)
	}

	if _, err := s.items.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "app_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "added_at", Value: 1}},
		},
	}); err != nil {
		return fmt.Errorf("failed to create backlog indexes: %w", err)
	}

	slog.Info("MongoDB indexes ensured", slog.String("type", "db"))
	return nil
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *Store) GetUserByPlatformID(ctx context.Context, platformID string) (*backlog.User, error) {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	var doc userDocument
	if err := s.users.FindOne(ctx, bson.M{"platform_id": platformID}).Decode(&doc); err != nil {
		return nil, classify("get user", err)
	}
	return &backlog.User{
		PlatformID: doc.PlatformID,
		Level:      doc.Level,
		Exp:        doc.Exp,
		MaxExp:     doc.MaxExp,
		CreatedAt:  doc.CreatedAt,
	}, nil
}

func (s *Store) CreateUser(ctx context.Context, user *backlog.User) error {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	doc := userDocument{
		PlatformID: user.PlatformID,
		Level:      user.Level,
		Exp:        user.Exp,
		MaxExp:     user.MaxExp,
		CreatedAt:  time.Now().UTC(),
	}
	if _, err := s.users.InsertOne(ctx, doc); err != nil {
		slog.Error("Failed to create user",
			slog.String("type", "db"),
			slog.String("operation", "CreateUser"),
			slog.String("discord_id", user.PlatformID),
			slog.Any("error", err))
		return classify("create user", err)
	}
	user.CreatedAt = doc.CreatedAt
	return nil
}

// CreateBacklogItem checks the owner exists first; Mongo has no foreign keys.
func (s *Store) CreateBacklogItem(ctx context.Context, item *backlog.BacklogItem) error {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	n, err := s.users.CountDocuments(ctx, bson.M{"platform_id": item.UserID}, options.Count().SetLimit(1))
	if err != nil {
		return classify("check user", err)
	}
	if n == 0 {
		return fmt.Errorf("user %s: %w", item.UserID, backlog.ErrStoreNotFound)
	}

	doc := backlogDocument{
		UserID:      item.UserID,
		DisplayName: item.DisplayName,
		AppID:       item.AppID,
		AddedAt:     time.Now().UTC(),
	}
	if _, err := s.items.InsertOne(ctx, doc); err != nil {
		slog.Error("Failed to create backlog item",
			slog.String("type", "db"),
			slog.String("operation", "CreateBacklogItem"),
			slog.String("user_id", item.UserID),
			slog.Int("app_id", item.AppID),
			slog.Any("error", err))
		return classify("create backlog item", err)
	}
	item.AddedAt = doc.AddedAt
	return nil
}

func (s *Store) ListBacklogItems(ctx context.Context, platformID string) ([]*backlog.BacklogItem, error) {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	cursor, err := s.items.Find(ctx,
		bson.M{"user_id": platformID},
		options.Find().SetSort(bson.D{{Key: "added_at", Value: 1}, {Key: "_id", Value: 1}}))
	if err != nil {
		return nil, classify("list backlog items", err)
	}

	var docs []backlogDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, classify("list backlog items", err)
	}

	items := make([]*backlog.BacklogItem, 0, len(docs))
	for _, doc := range docs {
		items = append(items, &backlog.BacklogItem{
			UserID:      doc.UserID,
			DisplayName: doc.DisplayName,
			AppID:       doc.AppID,
			AddedAt:     doc.AddedAt,
		})
	}
	return items, nil
}

// classify maps driver errors onto the store sentinels.
func classify(op string, err error) error {
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return fmt.Errorf("%s: %w", op, backlog.ErrStoreNotFound)
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%s: %w", op, backlog.ErrStoreConstraint)
	default:
		return fmt.Errorf("%s: %w: %w", op, backlog.ErrStoreUnavailable, err)
	}
}
