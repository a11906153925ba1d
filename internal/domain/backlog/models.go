package backlog

import (
	"fmt"
	"time"
)

const (
	DefaultLevel  = 1
	DefaultExp    = 0
	DefaultMaxExp = 100
)

// User is a registered bot user, keyed by Discord user id.
type User struct {
	PlatformID string
	Level      int
	Exp        int
	MaxExp     int
	CreatedAt  time.Time
}

// NewUser returns a user with the starting level and experience values.
func NewUser(platformID string) *User {
	return &User{
		PlatformID: platformID,
		Level:      DefaultLevel,
		Exp:        DefaultExp,
		MaxExp:     DefaultMaxExp,
	}
}

type BacklogItem struct {
	UserID      string
	DisplayName string
	AppID       int
	AddedAt     time.Time
}

// GameSummary is one entry of the Steam app catalog.
type GameSummary struct {
	AppID int
	Name  string
}

// GameDetail is the subset of a Steam store page the bot renders.
type GameDetail struct {
	AppID             int
	Name              string
	ShortDescription  string
	HeaderImage       string
	IsFree            bool
	Price             *string
	ControllerSupport string
}

func StorePageURL(appID int) string {
	return fmt.Sprintf("https://store.steampowered.com/app/%d", appID)
}
