package implementation

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"intellinote-be/internal/entity"
	"intellinote-be/internal/pkg/logger"
	"intellinote-be/internal/repository/contract"
	"intellinote-be/pkg/storage"
)

// HistoryStorageKey is the single durable slot holding the serialized
// history sequence for this installation.
const HistoryStorageKey = "intellinote-ai-history"

type historyRepository struct {
	mu      sync.Mutex
	entries []*entity.HistoryEntry
	store   storage.KeyValue
	logger  logger.ILogger
}

// NewHistoryRepository loads the persisted sequence once at startup. A missing
// or corrupt slot yields an empty history, never an error.
func NewHistoryRepository(ctx context.Context, store storage.KeyValue, sysLogger logger.ILogger) contract.IHistoryRepository {
	repo := &historyRepository{
		store:  store,
		logger: sysLogger,
	}
	repo.entries = repo.load(ctx)
	return repo
}

func (r *historyRepository) load(ctx context.Context) []*entity.HistoryEntry {
	data, err := r.store.Get(ctx, HistoryStorageKey)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			r.logger.Warn("history", "Failed to load history, starting empty", map[string]interface{}{
				"error": err.Error(),
			})
		}
		return []*entity.HistoryEntry{}
	}

	var entries []*entity.HistoryEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		r.logger.Warn("history", "Corrupt history payload, starting empty", map[string]interface{}{
			"error": err.Error(),
		})
		return []*entity.HistoryEntry{}
	}
	if entries == nil {
		entries = []*entity.HistoryEntry{}
	}
	return entries
}

func (r *historyRepository) All(ctx context.Context) []*entity.HistoryEntry {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*entity.HistoryEntry, len(r.entries))
	copy(out, r.entries)
	return out
}

func (r *historyRepository) Find(ctx context.Context, id string) *entity.HistoryEntry {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, entry := range r.entries {
		if entry.Id == id {
			return entry
		}
	}
	return nil
}

func (r *historyRepository) Insert(ctx context.Context, entry *entity.HistoryEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = append([]*entity.HistoryEntry{entry}, r.entries...)
	r.persist(ctx)
	return nil
}

// Remove filters out the entry with the given id. A missing id is a no-op.
func (r *historyRepository) Remove(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	filtered := r.entries[:0:0]
	for _, entry := range r.entries {
		if entry.Id != id {
			filtered = append(filtered, entry)
		}
	}
	r.entries = filtered
	r.persist(ctx)
	return nil
}

func (r *historyRepository) Clear(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = []*entity.HistoryEntry{}
	r.persist(ctx)
	return nil
}

// persist overwrites the full sequence. O(history size) per mutation, which is
// fine at the expected scale of tens to low hundreds of entries. Failures are
// logged and swallowed so storage trouble degrades to an in-memory history
// instead of blocking usage. Caller must hold r.mu.
func (r *historyRepository) persist(ctx context.Context) {
	data, err := json.Marshal(r.entries)
	if err != nil {
		r.logger.Error("history", "Failed to marshal history", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	if err := r.store.Set(ctx, HistoryStorageKey, data); err != nil {
		r.logger.Error("history", "Failed to persist history", map[string]interface{}{
			"error": err.Error(),
			"count": len(r.entries),
		})
	}
}
