package backlog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sahilm/fuzzy"
)

const (
	// MaxSearchResults caps how many matches a search renders (one reply plus follow-ups).
	MaxSearchResults = 6
	MaxSuggestions   = 3
)

type Service interface {
	Register(ctx context.Context, platformID string) (RegisterResult, error)
	Account(ctx context.Context, platformID string) (*User, error)
	Search(ctx context.Context, term string) (SearchResult, error)
	GameDetail(ctx context.Context, appID int) (*GameDetail, error)
	AddToBacklog(ctx context.Context, platformID string, appID int) (*BacklogItem, error)
	Backlog(ctx context.Context, platformID string) ([]*BacklogItem, error)
}

type RegisterResult struct {
	User          *User
	AlreadyExists bool
}

type SearchResult struct {
	Term        string
	Matches     []GameSummary
	Suggestions []string
}

// Shown returns the matches that get rendered, in catalog order.
func (r SearchResult) Shown() []GameSummary {
	if len(r.Matches) > MaxSearchResults {
		return r.Matches[:MaxSearchResults]
	}
	return r.Matches
}

type service struct {
	store  Store
	lookup GameLookup
}

func NewService(store Store, lookup GameLookup) *service {
	return &service{
		store:  store,
		lookup: lookup,
	}
}

func (s *service) Register(ctx context.Context, platformID string) (RegisterResult, error) {
	user, err := s.store.GetUserByPlatformID(ctx, platformID)
	if err == nil {
		return RegisterResult{User: user, AlreadyExists: true}, nil
	}
	if !errors.Is(err, ErrStoreNotFound) {
		return RegisterResult{}, fmt.Errorf("failed to look up user: %w", err)
	}

	user = NewUser(platformID)
	if err = s.store.CreateUser(ctx, user); err != nil {
		// a concurrent register from the same user won the insert
		if errors.Is(err, ErrStoreConstraint) {
			return RegisterResult{AlreadyExists: true}, nil
		}
		return RegisterResult{}, fmt.Errorf("failed to create user: %w", err)
	}
	return RegisterResult{User: user}, nil
}

func (s *service) Account(ctx context.Context, platformID string) (*User, error) {
	user, err := s.store.GetUserByPlatformID(ctx, platformID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	return user, nil
}

func (s *service) Search(ctx context.Context, term string) (SearchResult, error) {
	catalog, err := s.lookup.FetchCatalog(ctx)
	if err != nil {
		return SearchResult{}, fmt.Errorf("failed to fetch catalog: %w", err)
	}

	result := SearchResult{
		Term:    term,
		Matches: MatchCatalog(catalog, term),
	}
	if len(result.Matches) == 0 {
		result.Suggestions = Suggest(catalog, term, MaxSuggestions)
	}

	slog.Debug("Catalog searched",
		slog.String("type", "sys"),
		slog.String("term", term),
		slog.Int("catalog_size", len(catalog)),
		slog.Int("matches", len(result.Matches)))

	return result, nil
}

func (s *service) GameDetail(ctx context.Context, appID int) (*GameDetail, error) {
	detail, err := s.lookup.FetchDetail(ctx, appID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch app %d: %w", appID, err)
	}
	return detail, nil
}

// AddToBacklog registers the user on first use so every item references an existing user.
func (s *service) AddToBacklog(ctx context.Context, platformID string, appID int) (*BacklogItem, error) {
	detail, err := s.GameDetail(ctx, appID)
	if err != nil {
		return nil, err
	}

	if err = s.ensureUser(ctx, platformID); err != nil {
		return nil, err
	}

	item := &BacklogItem{
		UserID:      platformID,
		DisplayName: detail.Name,
		AppID:       detail.AppID,
	}
	if item.AppID == 0 {
		item.AppID = appID
	}

	if err = s.store.CreateBacklogItem(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to add app %d to backlog: %w", item.AppID, err)
	}
	return item, nil
}

func (s *service) Backlog(ctx context.Context, platformID string) ([]*BacklogItem, error) {
	if _, err := s.store.GetUserByPlatformID(ctx, platformID); err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	items, err := s.store.ListBacklogItems(ctx, platformID)
	if err != nil {
		return nil, fmt.Errorf("failed to list backlog: %w", err)
	}
	return items, nil
}

func (s *service) ensureUser(ctx context.Context, platformID string) error {
	_, err := s.store.GetUserByPlatformID(ctx, platformID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrStoreNotFound) {
		return fmt.Errorf("failed to look up user: %w", err)
	}

	if err = s.store.CreateUser(ctx, NewUser(platformID)); err != nil {
		// registered concurrently
		if errors.Is(err, ErrStoreConstraint) {
			return nil
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	slog.Info("User registered on first backlog add",
		slog.String("type", "db"),
		slog.String("user_id", platformID))
	return nil
}

// MatchCatalog returns the entries whose name contains term, ignoring case, in catalog order.
func MatchCatalog(catalog []GameSummary, term string) []GameSummary {
	needle := strings.ToLower(term)

	var matches []GameSummary
	for _, game := range catalog {
		if strings.Contains(strings.ToLower(game.Name), needle) {
			matches = append(matches, game)
		}
	}
	return matches
}

type catalogSource []GameSummary

func (c catalogSource) String(i int) string { return c[i].Name }
func (c catalogSource) Len() int            { return len(c) }

// Suggest returns up to limit catalog names that fuzzily resemble term, best first.
func Suggest(catalog []GameSummary, term string, limit int) []string {
	if strings.TrimSpace(term) == "" || limit <= 0 {
		return nil
	}

	matches := fuzzy.FindFrom(term, catalogSource(catalog))

	seen := make(map[string]struct{}, limit)
	suggestions := make([]string, 0, limit)
	for _, match := range matches {
		name := catalog[match.Index].Name
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		suggestions = append(suggestions, name)
		if len(suggestions) == limit {
			break
		}
	}
	return suggestions
}
