package memory

import (
	"time"

	"irene-companion-be/internal/session"

	"github.com/patrickmn/go-cache"
)

// SessionStateRepository keeps the transient per-session state (active
// conversation, optimistic snapshot, loading flag). Entries expire with the
// session; nothing here survives a restart.
type SessionStateRepository struct {
	cache *cache.Cache
}

func NewSessionStateRepository() *SessionStateRepository {
	// Default expiration of 1 hour, purge sweep every 10 minutes.
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &SessionStateRepository{
		cache: c,
	}
}

func (r *SessionStateRepository) Save(state *session.State) {
	r.cache.Set(state.ID, state, cache.DefaultExpiration)
}

func (r *SessionStateRepository) Get(sessionID string) (*session.State, bool) {
	if x, found := r.cache.Get(sessionID); found {
		return x.(*session.State), true
	}
	return nil, false
}

func (r *SessionStateRepository) Delete(sessionID string) {
	r.cache.Delete(sessionID)
}
