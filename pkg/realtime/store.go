package realtime

import (
	"context"
	"sync"
	"time"
)

// Room pairs one owner's state with its broadcaster.
type Room[T any] struct {
	ID    string
	State T
	hub   *Broadcaster
}

// RoomStore keeps rooms by id, each with an optional timing loop.
type RoomStore[T any] struct {
	mu    sync.RWMutex
	rooms map[string]*Room[T]
	loops map[string]context.CancelFunc
	wakes map[string]chan struct{}
}

// NewRoomStore creates an empty room store.
func NewRoomStore[T any]() *RoomStore[T] {
	return &RoomStore[T]{
		rooms: make(map[string]*Room[T]),
		loops: make(map[string]context.CancelFunc),
		wakes: make(map[string]chan struct{}),
	}
}

// Create adds a room with the given id and state, and a new Broadcaster.
func (s *RoomStore[T]) Create(id string, state T) *Room[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := &Room[T]{ID: id, State: state, hub: NewBroadcaster()}
	s.rooms[id] = r
	return r
}

// Get returns the room by ID if it exists.
func (s *RoomStore[T]) Get(id string) (*Room[T], bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.rooms[id]
	return r, ok
}

// Len reports how many rooms are live.
func (s *RoomStore[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rooms)
}

// IDs lists the live rooms in no particular order.
func (s *RoomStore[T]) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.rooms))
	for id := range s.rooms {
		ids = append(ids, id)
	}
	return ids
}

// Delete removes the room, stops its loop and closes its broadcaster. It
// returns the removed room so the caller can tear its state down.
func (s *RoomStore[T]) Delete(id string) (*Room[T], bool) {
	s.mu.Lock()
	r, ok := s.rooms[id]
	delete(s.rooms, id)
	cancel, looping := s.loops[id]
	delete(s.loops, id)
	delete(s.wakes, id)
	s.mu.Unlock()

	if looping {
		cancel()
	}
	if ok {
		r.hub.Close()
	}
	return r, ok
}

// Publish notifies subscribers of the room. Unknown rooms are ignored, so a
// late timer cannot resurrect a deleted room.
func (s *RoomStore[T]) Publish(id string, event string) {
	if hub, ok := s.Broadcaster(id); ok {
		hub.Publish(event)
	}
}

// Broadcaster returns the room's broadcaster.
func (s *RoomStore[T]) Broadcaster(id string) (*Broadcaster, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.rooms[id]
	if !ok {
		return nil, false
	}
	return r.hub, true
}

// TickFunc is called by RunLoop to determine the next wake time and events to publish.
// stop true means exit the loop.
type TickFunc[T any] func(state T, now time.Time) (next time.Time, events []string, stop bool)

// RunLoop starts a timing loop for the room. If a loop already exists for id, it is not started again.
func (s *RoomStore[T]) RunLoop(id string, getState func() T, tick TickFunc[T]) {
	s.mu.Lock()
	if _, ok := s.loops[id]; ok {
		s.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	wake := make(chan struct{}, 1)
	s.loops[id] = cancel
	s.wakes[id] = wake
	s.mu.Unlock()

	go func() {
		defer func() {
			s.mu.Lock()
			if s.wakes[id] == wake {
				delete(s.loops, id)
				delete(s.wakes, id)
			}
			s.mu.Unlock()
			cancel()
		}()

		for {
			if ctx.Err() != nil {
				return
			}
			state := getState()
			now := time.Now().UTC()
			next, events, stop := tick(state, now)
			if stop {
				return
			}
			for _, e := range events {
				s.Publish(id, e)
			}
			wait := time.Until(next)
			if wait < 0 {
				wait = 0
			}
			timer := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
			case <-wake:
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
			}
		}
	}()
}

// Wake unblocks the room's loop so it recomputes immediately.
func (s *RoomStore[T]) Wake(id string) {
	s.mu.RLock()
	wake, ok := s.wakes[id]
	s.mu.RUnlock()
	if !ok {
		return
	}
	select {
	case wake <- struct{}{}:
	default:
	}
}

// Looping reports whether a loop is running for id.
func (s *RoomStore[T]) Looping(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.loops[id]
	return ok
}
