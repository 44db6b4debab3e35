package memory

import (
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"intellinote-be/pkg/store"
)

// SessionRepository keeps per-client session state in an expiring in-memory
// cache. Fiber handlers run concurrently, so all access goes through the
// repository lock and callers only ever see copies; mutations happen inside
// Update so check-then-act sequences stay atomic.
type SessionRepository struct {
	mu    sync.Mutex
	cache *cache.Cache
}

func NewSessionRepository() *SessionRepository {
	// Sessions live for a day of inactivity; expired ones are purged hourly
	c := cache.New(24*time.Hour, 1*time.Hour)
	return &SessionRepository{
		cache: c,
	}
}

func (r *SessionRepository) Save(session *store.Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *session
	r.cache.Set(session.ID, &copied, cache.DefaultExpiration)
}

// Get returns a snapshot of the session. Mutating the returned value has no
// effect on the stored state; use Update for that.
func (r *SessionRepository) Get(sessionID string) (*store.Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if x, found := r.cache.Get(sessionID); found {
		copied := *(x.(*store.Session))
		return &copied, true
	}
	return nil, false
}

// Update applies fn to the session under the repository lock and stores the
// result. The second return is false when the session does not exist. An
// error from fn aborts the update and is returned as-is.
func (r *SessionRepository) Update(sessionID string, fn func(*store.Session) error) (*store.Session, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	x, found := r.cache.Get(sessionID)
	if !found {
		return nil, false, nil
	}

	copied := *(x.(*store.Session))
	if err := fn(&copied); err != nil {
		return nil, true, err
	}
	r.cache.Set(copied.ID, &copied, cache.DefaultExpiration)
	return &copied, true, nil
}

func (r *SessionRepository) Delete(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache.Delete(sessionID)
}
