// Package showcase owns the per-visitor state behind the interactive page:
// the component gallery tabs, the preview toggle, the FAQ accordion and the
// transient "Copied!" and "Subscribed!" confirmations.
package showcase

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"sync"
	"time"

	"radient/internal/accordion"
	"radient/internal/catalog"
	"radient/internal/scatter"
	"radient/internal/selection"
	"radient/pkg/realtime"
)

// Playback is the preview/edit toggle of the gallery.
type Playback string

const (
	Paused  Playback = "paused"
	Playing Playback = "playing"
)

// Events published to a session's stream.
const (
	EventTab       = "tab"
	EventPlayback  = "playback"
	EventCopy      = "copy"
	EventForms     = "forms"
	EventFAQ       = "faq"
	EventSubscribe = "subscribe"
)

var (
	ErrEmailRequired = errors.New("email required")
	ErrInvalidEmail  = errors.New("invalid email")
	ErrClosed        = errors.New("session closed")
)

// Settings are the per-session knobs taken from configuration.
type Settings struct {
	CopyReset      time.Duration
	SubscribeReset time.Duration
	Particles      int
	Sparkles       int
	// Scheduler drives the confirmation resets; nil means the wall clock.
	Scheduler realtime.Scheduler
}

// Session is one visitor's page state. All methods are safe for concurrent
// use; HTTP handlers and timer callbacks share it.
type Session struct {
	mu        sync.Mutex
	ID        string
	CreatedAt time.Time
	lastSeen  time.Time
	closed    bool

	cat           *catalog.Catalog
	tabs          *selection.Machine[catalog.Category]
	playback      *selection.Machine[Playback]
	faq           *accordion.Engine
	notifications bool

	copied     *realtime.Flag
	subscribed *realtime.Flag

	// Generated once here and never recomputed, so every render of this
	// session draws the same layers.
	particles []scatter.Point
	sparkles  []scatter.Point
}

// NewSession builds the state for one visitor. publish receives event names
// when state changes, including from timer goroutines.
func NewSession(id string, cat *catalog.Catalog, s Settings, now time.Time, publish func(event string)) (*Session, error) {
	tabIDs := cat.TabIDs()
	tabs, err := selection.New(tabIDs, selection.WithDefault(tabIDs[0]))
	if err != nil {
		return nil, fmt.Errorf("tabs: %w", err)
	}
	playback, err := selection.New([]Playback{Paused, Playing}, selection.WithDefault(Paused))
	if err != nil {
		return nil, fmt.Errorf("playback: %w", err)
	}
	faq, err := accordion.New(cat.FAQ, cat.FAQCategories)
	if err != nil {
		return nil, fmt.Errorf("faq: %w", err)
	}
	if publish == nil {
		publish = func(string) {}
	}
	sched := s.Scheduler
	if sched == nil {
		sched = realtime.WallClock
	}

	return &Session{
		ID:        id,
		CreatedAt: now,
		lastSeen:  now,
		cat:       cat,
		tabs:      tabs,
		playback:  playback,
		faq:       faq,
		copied: realtime.NewFlag(s.CopyReset,
			realtime.WithScheduler(sched),
			realtime.WithOnChange(func(bool) { publish(EventCopy) })),
		subscribed: realtime.NewFlag(s.SubscribeReset,
			realtime.WithScheduler(sched),
			realtime.WithOnChange(func(bool) { publish(EventSubscribe) })),
		particles: scatter.Generate(s.Particles, scatter.Particles),
		sparkles:  scatter.Generate(s.Sparkles, scatter.Sparkles),
	}, nil
}

// SelectTab switches the gallery to another category.
func (s *Session) SelectTab(id catalog.Category) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false, ErrClosed
	}
	return s.tabs.Select(id)
}

// SetPlayback sets the preview toggle.
func (s *Session) SetPlayback(p Playback) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false, ErrClosed
	}
	return s.playback.Select(p)
}

// TogglePlayback flips between paused and playing.
func (s *Session) TogglePlayback() Playback {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := Playing
	if s.playback.IsActive(Playing) {
		next = Paused
	}
	if !s.closed {
		_, _ = s.playback.Select(next)
	}
	current, _ := s.playback.Current()
	return current
}

// CopyCode raises the "Copied!" confirmation.
func (s *Session) CopyCode() {
	s.copied.Trigger()
}

// ToggleNotifications flips the forms demo switch.
func (s *Session) ToggleNotifications() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.notifications = !s.notifications
	}
	return s.notifications
}

// SetFAQCategory filters the FAQ.
func (s *Session) SetFAQCategory(c catalog.Category) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false, ErrClosed
	}
	return s.faq.SetCategory(c)
}

// ToggleFAQ opens or closes one FAQ entry.
func (s *Session) ToggleFAQ(id catalog.ItemID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	return s.faq.Toggle(id)
}

// Subscribe validates the address and raises the "Subscribed!" confirmation.
// The address is not kept.
func (s *Session) Subscribe(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ErrEmailRequired
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidEmail, err)
	}
	s.subscribed.Trigger()
	return nil
}

// Touch records activity, pushing back expiry.
func (s *Session) Touch(now time.Time) {
	s.mu.Lock()
	if now.After(s.lastSeen) {
		s.lastSeen = now
	}
	s.mu.Unlock()
}

// LastSeen returns the time of the last recorded activity.
func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// Close cancels pending confirmation resets. Further mutations fail or are
// ignored.
func (s *Session) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.copied.Close()
	s.subscribed.Close()
}

// Snapshot is a consistent copy of the session for rendering.
type Snapshot struct {
	ID            string
	Tabs          []catalog.Tab
	ActiveTab     catalog.Tab
	Examples      []catalog.Item
	Playback      Playback
	Copied        bool
	Notifications bool
	FAQCategories []catalog.Category
	FAQCategory   catalog.Category
	FAQ           []catalog.Item
	OpenFAQ       catalog.ItemID
	FAQOpen       bool
	Subscribed    bool
	Particles     []scatter.Point
	Sparkles      []scatter.Point
}

// Snapshot captures the state needed to render every interactive surface.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	tabID, _ := s.tabs.Current()
	tab, _ := s.cat.Tab(tabID)
	playback, _ := s.playback.Current()
	openID, open := s.faq.OpenID()
	return Snapshot{
		ID:            s.ID,
		Tabs:          s.cat.Tabs,
		ActiveTab:     tab,
		Examples:      s.cat.ExamplesFor(tabID),
		Playback:      playback,
		Copied:        s.copied.Value(),
		Notifications: s.notifications,
		FAQCategories: s.faq.Categories(),
		FAQCategory:   s.faq.Category(),
		FAQ:           s.faq.Visible(),
		OpenFAQ:       openID,
		FAQOpen:       open,
		Subscribed:    s.subscribed.Value(),
		Particles:     s.particles,
		Sparkles:      s.sparkles,
	}
}
