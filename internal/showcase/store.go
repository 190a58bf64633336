package showcase

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"radient/internal/catalog"
	"radient/pkg/realtime"
)

// Store keeps live sessions and expires them after IdleTTL without activity.
type Store struct {
	rooms    *realtime.RoomStore[*Session]
	cat      *catalog.Catalog
	settings Settings
	ttl      time.Duration
	now      func() time.Time
}

// NewStore creates a store serving cat. Sessions idle for longer than ttl are
// closed and removed.
func NewStore(cat *catalog.Catalog, settings Settings, ttl time.Duration) *Store {
	return &Store{
		rooms:    realtime.NewRoomStore[*Session](),
		cat:      cat,
		settings: settings,
		ttl:      ttl,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Catalog returns the content the sessions render.
func (s *Store) Catalog() *catalog.Catalog { return s.cat }

// Create starts a new session with a random id.
func (s *Store) Create() (*Session, error) {
	id := uuid.NewString()
	sess, err := NewSession(id, s.cat, s.settings, s.now(), func(event string) {
		s.rooms.Publish(id, event)
	})
	if err != nil {
		return nil, fmt.Errorf("new session: %w", err)
	}
	s.rooms.Create(id, sess)
	s.startExpiry(id)
	return sess, nil
}

// Get returns a live session.
func (s *Store) Get(id string) (*Session, bool) {
	r, ok := s.rooms.Get(id)
	if !ok {
		return nil, false
	}
	return r.State, true
}

// Touch records activity on the session, if it exists.
func (s *Store) Touch(id string) (*Session, bool) {
	sess, ok := s.Get(id)
	if ok {
		sess.Touch(s.now())
	}
	return sess, ok
}

// Delete closes and removes the session and ends its streams.
func (s *Store) Delete(id string) bool {
	r, ok := s.rooms.Delete(id)
	if ok {
		r.State.Close()
	}
	return ok
}

// Len reports the number of live sessions.
func (s *Store) Len() int { return s.rooms.Len() }

// Broadcaster returns the session's event hub.
func (s *Store) Broadcaster(id string) (*realtime.Broadcaster, bool) {
	return s.rooms.Broadcaster(id)
}

// Publish notifies the session's subscribers.
func (s *Store) Publish(id, event string) {
	s.rooms.Publish(id, event)
}

// Close removes every session.
func (s *Store) Close() {
	for _, id := range s.rooms.IDs() {
		s.Delete(id)
	}
}

func (s *Store) startExpiry(id string) {
	getState := func() *Session {
		sess, _ := s.Get(id)
		return sess
	}
	s.rooms.RunLoop(id, getState, func(sess *Session, now time.Time) (time.Time, []string, bool) {
		if sess == nil {
			return time.Time{}, nil, true
		}
		deadline := sess.LastSeen().Add(s.ttl)
		if !now.Before(deadline) {
			log.Printf("[showcase] expiring %s after %s idle", id, s.ttl)
			s.Delete(id)
			return time.Time{}, nil, true
		}
		return deadline, nil, false
	})
}
