package contract

import (
	"context"

	"intellinote-be/internal/entity"
)

// IHistoryRepository owns the ordered sequence of past generations,
// most-recent-first. Every mutation persists the full sequence; persistence
// failures degrade to in-memory-only operation and are never surfaced.
type IHistoryRepository interface {
	All(ctx context.Context) []*entity.HistoryEntry
	Find(ctx context.Context, id string) *entity.HistoryEntry
	Insert(ctx context.Context, entry *entity.HistoryEntry) error
	Remove(ctx context.Context, id string) error
	Clear(ctx context.Context) error
}
