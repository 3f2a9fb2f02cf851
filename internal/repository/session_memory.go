package repository

import (
	"context"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
)

var _ SessionRepository = (*MemorySessionRepository)(nil)

type memoryEntry struct {
	session   entity.Session
	expiresAt time.Time
}

// MemorySessionRepository keeps sessions in process.
type MemorySessionRepository struct {
	mu       sync.Mutex
	sessions map[string]memoryEntry
	ttl      time.Duration
	now      func() time.Time
}

// NewMemorySessionRepository returns an in-process store. Expired entries are
// dropped on access and by RunReaper; a zero ttl disables expiry.
func NewMemorySessionRepository(ttl time.Duration) *MemorySessionRepository {
	return &MemorySessionRepository{
		sessions: make(map[string]memoryEntry),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (that *MemorySessionRepository) CreateOrUpdate(_ context.Context, session *entity.Session) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	entry := memoryEntry{session: cloneSession(session)}
	if that.ttl > 0 {
		entry.expiresAt = that.now().Add(that.ttl)
	}

	that.sessions[session.ID] = entry

	return nil
}

func (that *MemorySessionRepository) GetByID(_ context.Context, id string) (*entity.Session, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	entry, ok := that.lookup(id)
	if !ok {
		return nil, ErrSessionNotFound
	}

	session := cloneSession(&entry.session)

	return &session, nil
}

func (that *MemorySessionRepository) DeleteByID(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.lookup(id); !ok {
		return ErrSessionNotFound
	}

	delete(that.sessions, id)

	return nil
}

// RunReaper removes expired sessions every half ttl until ctx is done.
// It returns at once when expiry is disabled.
func (that *MemorySessionRepository) RunReaper(ctx context.Context) {
	if that.ttl <= 0 {
		return
	}

	ticker := time.NewTicker(that.ttl / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			that.reap()
		}
	}
}

// reap drops every expired entry and reports how many were removed.
func (that *MemorySessionRepository) reap() int {
	that.mu.Lock()
	defer that.mu.Unlock()

	now := that.now()
	removed := 0

	for id, entry := range that.sessions {
		if isExpired(entry, now) {
			delete(that.sessions, id)
			removed++
		}
	}

	return removed
}

// lookup must be called with mu held.
func (that *MemorySessionRepository) lookup(id string) (memoryEntry, bool) {
	entry, ok := that.sessions[id]
	if !ok {
		return memoryEntry{}, false
	}

	if isExpired(entry, that.now()) {
		delete(that.sessions, id)
		return memoryEntry{}, false
	}

	return entry, true
}

func isExpired(entry memoryEntry, now time.Time) bool {
	return !entry.expiresAt.IsZero() && !now.Before(entry.expiresAt)
}

func cloneSession(session *entity.Session) entity.Session {
	history := make([]entity.Board, len(session.History))
	copy(history, session.History)

	return entity.Session{
		ID:      session.ID,
		History: history,
		Step:    session.Step,
	}
}
