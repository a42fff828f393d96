package memory

import (
	"sync"

	"retail-assistant-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

// SessionRegistry keeps live dialogue sessions in process memory.
// Repeated lookups for the same id return the same *store.Session
// pointer, so every caller observes one shared transcript.
type SessionRegistry struct {
	mu    sync.Mutex
	cache *cache.Cache
}

func NewSessionRegistry() *SessionRegistry {
	// Sessions never expire on their own; the assistant decides when a
	// conversation is over.
	c := cache.New(cache.NoExpiration, cache.NoExpiration)
	return &SessionRegistry{
		cache: c,
	}
}

func (r *SessionRegistry) GetOrCreate(sessionID string) *store.Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	if x, found := r.cache.Get(sessionID); found {
		return x.(*store.Session)
	}
	session := store.NewSession(sessionID)
	r.cache.Set(sessionID, session, cache.NoExpiration)
	return session
}

func (r *SessionRegistry) Get(sessionID string) (*store.Session, bool) {
	if x, found := r.cache.Get(sessionID); found {
		return x.(*store.Session), true
	}
	return nil, false
}

func (r *SessionRegistry) Delete(sessionID string) {
	r.cache.Delete(sessionID)
}

// List returns all live sessions in no particular order.
func (r *SessionRegistry) List() []*store.Session {
	items := r.cache.Items()
	sessions := make([]*store.Session, 0, len(items))
	for _, item := range items {
		sessions = append(sessions, item.Object.(*store.Session))
	}
	return sessions
}
