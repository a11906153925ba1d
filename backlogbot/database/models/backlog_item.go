package models

import (
	"time"

	"github.com/uptrace/bun"
)

// BacklogItem references its owner by Discord id; the foreign key and the
// (user_id, app_id) unique index are created in InitializeSchema.
type BacklogItem struct {
	bun.BaseModel `bun:"table:backlog_items,alias:bi"`

	ID          int64     `bun:"id,pk,autoincrement"`
	UserID      string    `bun:"user_id,notnull"`
	DisplayName string    `bun:"display_name,notnull"`
	AppID       int       `bun:"app_id,notnull"`
	CreatedAt   time.Time `bun:"created_at,notnull,default:current_timestamp"`
}
