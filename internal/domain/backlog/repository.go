package backlog

import "context"

//go:generate mockgen -source=repository.go -destination=mock/repository.go -package=mock

// Store persists users and their backlog entries.
type Store interface {
	GetUserByPlatformID(ctx context.Context, platformID string) (*User, error)
	CreateUser(ctx context.Context, user *User) error
	CreateBacklogItem(ctx context.Context, item *BacklogItem) error
	ListBacklogItems(ctx context.Context, platformID string) ([]*BacklogItem, error)
}

// GameLookup reads the Steam catalog and store pages.
type GameLookup interface {
	FetchCatalog(ctx context.Context) ([]GameSummary, error)
	FetchDetail(ctx context.Context, appID int) (*GameDetail, error)
}
