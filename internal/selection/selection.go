// Package selection implements "one active choice among a fixed set".
//
// A Machine switches atomically from one option to another; there is never an
// observable moment with nothing selected once something has been. Views key
// their enter/exit transitions on Current, so both may be on screen for a
// while, but the machine itself only ever holds one value.
package selection

import (
	"errors"
	"fmt"

	"github.com/agnivade/levenshtein"
)

var (
	ErrUnknownOption = errors.New("unknown option")
	ErrNoOptions     = errors.New("no options")
	ErrDuplicate     = errors.New("duplicate option")
)

// Machine holds at most one active option. It is not safe for concurrent
// use; its owner serializes access.
type Machine[T comparable] struct {
	options []T
	index   map[T]int
	active  T
	has     bool
}

// Option configures a Machine.
type Option[T comparable] func(*config[T])

type config[T comparable] struct {
	def    T
	hasDef bool
}

// WithDefault starts the machine on v instead of "none".
func WithDefault[T comparable](v T) Option[T] {
	return func(c *config[T]) {
		c.def = v
		c.hasDef = true
	}
}

// New builds a machine over options, which must be non-empty and distinct.
func New[T comparable](options []T, opts ...Option[T]) (*Machine[T], error) {
	if len(options) == 0 {
		return nil, ErrNoOptions
	}
	m := &Machine[T]{
		options: append([]T(nil), options...),
		index:   make(map[T]int, len(options)),
	}
	for i, o := range options {
		if _, dup := m.index[o]; dup {
			return nil, fmt.Errorf("%w: %v", ErrDuplicate, o)
		}
		m.index[o] = i
	}
	var c config[T]
	for _, opt := range opts {
		opt(&c)
	}
	if c.hasDef {
		if _, err := m.Select(c.def); err != nil {
			return nil, fmt.Errorf("default: %w", err)
		}
	}
	return m, nil
}

// Select makes v the active option. Re-selecting the active option is a
// no-op and reports changed=false. An unknown v leaves the state untouched.
func (m *Machine[T]) Select(v T) (changed bool, err error) {
	if _, ok := m.index[v]; !ok {
		return false, m.unknown(v)
	}
	if m.has && m.active == v {
		return false, nil
	}
	m.active = v
	m.has = true
	return true, nil
}

// Current returns the active option, or false if none was ever selected.
func (m *Machine[T]) Current() (T, bool) {
	return m.active, m.has
}

// IsActive reports whether v is the active option.
func (m *Machine[T]) IsActive(v T) bool {
	return m.has && m.active == v
}

// Options returns the configured options in order.
func (m *Machine[T]) Options() []T {
	return append([]T(nil), m.options...)
}

// Contains reports whether v is one of the options.
func (m *Machine[T]) Contains(v T) bool {
	_, ok := m.index[v]
	return ok
}

func (m *Machine[T]) unknown(v T) error {
	if s, ok := m.suggest(v); ok {
		return fmt.Errorf("%w %q (did you mean %q?)", ErrUnknownOption, fmt.Sprint(v), s)
	}
	return fmt.Errorf("%w %q", ErrUnknownOption, fmt.Sprint(v))
}

// suggest finds the closest option by edit distance, if it is close enough
// to be a plausible typo.
func (m *Machine[T]) suggest(v T) (string, bool) {
	want := fmt.Sprint(v)
	best, bestDist := "", -1
	for _, o := range m.options {
		s := fmt.Sprint(o)
		d := levenshtein.ComputeDistance(want, s)
		if bestDist < 0 || d < bestDist {
			best, bestDist = s, d
		}
	}
	limit := len([]rune(want)) / 3
	if limit < 2 {
		limit = 2
	}
	if bestDist < 0 || bestDist > limit {
		return "", false
	}
	return best, true
}
