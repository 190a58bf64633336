// Package accordion combines a category filter with a single-open item list.
//
// The open item is tracked by id and always belongs to the visible list:
// narrowing the filter so the open item disappears closes it.
package accordion

import (
	"errors"
	"fmt"

	"radient/internal/catalog"
	"radient/internal/selection"
)

var (
	ErrUnknownItem = errors.New("unknown item")
	ErrHiddenItem  = errors.New("item not visible under current category")
)

// Engine is owned by one surface and is not safe for concurrent use.
type Engine struct {
	items   []catalog.Item
	known   map[catalog.ItemID]struct{}
	filter  *selection.Machine[catalog.Category]
	visible []catalog.Item
	openID  catalog.ItemID
	open    bool
}

// New builds an engine over items with the filter starting on catalog.All.
func New(items []catalog.Item, categories []catalog.Category) (*Engine, error) {
	options := make([]catalog.Category, 0, len(categories)+1)
	options = append(options, catalog.All)
	options = append(options, categories...)
	filter, err := selection.New(options, selection.WithDefault(catalog.All))
	if err != nil {
		return nil, fmt.Errorf("category filter: %w", err)
	}
	e := &Engine{
		items:  append([]catalog.Item(nil), items...),
		known:  make(map[catalog.ItemID]struct{}, len(items)),
		filter: filter,
	}
	for _, item := range items {
		if _, dup := e.known[item.ID]; dup {
			return nil, fmt.Errorf("%w: %q", selection.ErrDuplicate, item.ID)
		}
		if item.Category == catalog.All || !filter.Contains(item.Category) {
			return nil, fmt.Errorf("item %q: %w %q", item.ID, selection.ErrUnknownOption, item.Category)
		}
		e.known[item.ID] = struct{}{}
	}
	e.refilter()
	return e, nil
}

// SetCategory changes the filter and recomputes the visible list. The open
// item is closed if it is no longer visible.
func (e *Engine) SetCategory(c catalog.Category) (bool, error) {
	changed, err := e.filter.Select(c)
	if err != nil || !changed {
		return false, err
	}
	e.refilter()
	if e.open && !e.visibleID(e.openID) {
		e.open = false
		e.openID = ""
	}
	return true, nil
}

// Toggle closes id if it is open, otherwise opens it in place of any other.
func (e *Engine) Toggle(id catalog.ItemID) error {
	if _, ok := e.known[id]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownItem, id)
	}
	if !e.visibleID(id) {
		return fmt.Errorf("%w: %q", ErrHiddenItem, id)
	}
	if e.open && e.openID == id {
		e.open = false
		e.openID = ""
		return nil
	}
	e.open = true
	e.openID = id
	return nil
}

// Category returns the active filter.
func (e *Engine) Category() catalog.Category {
	c, _ := e.filter.Current()
	return c
}

// Categories returns the filter options, All first.
func (e *Engine) Categories() []catalog.Category {
	return e.filter.Options()
}

// Visible returns the filtered items in catalog order.
func (e *Engine) Visible() []catalog.Item {
	return append([]catalog.Item(nil), e.visible...)
}

// OpenID returns the open item, if any.
func (e *Engine) OpenID() (catalog.ItemID, bool) {
	return e.openID, e.open
}

// IsOpen reports whether id is the open item.
func (e *Engine) IsOpen(id catalog.ItemID) bool {
	return e.open && e.openID == id
}

func (e *Engine) refilter() {
	c := e.Category()
	e.visible = e.visible[:0]
	for _, item := range e.items {
		if c == catalog.All || item.Category == c {
			e.visible = append(e.visible, item)
		}
	}
}

func (e *Engine) visibleID(id catalog.ItemID) bool {
	for _, item := range e.visible {
		if item.ID == id {
			return true
		}
	}
	return false
}
