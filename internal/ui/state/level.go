package state

import (
	"strings"

	"github.com/atomicstack/assetgrid/internal/menu"
)

// Level holds one sidebar list: its items, fuzzy filter, cursor, viewport
// and the facet values currently highlighted.
type Level struct {
	ID             string
	Title          string
	Items          []menu.Item
	Full           []menu.Item
	Filter         Prompt
	Cursor         int
	MultiSelect    bool
	Selected       map[string]struct{}
	LastCursor     int
	Node           *menu.Node
	ViewportOffset int
}

// NewLevel constructs a Level using the provided items and menu node.
func NewLevel(id, title string, items []menu.Item, node *menu.Node) *Level {
	l := &Level{
		ID:         id,
		Title:      title,
		LastCursor: -1,
		Selected:   make(map[string]struct{}),
		Node:       node,
	}
	if node != nil {
		l.MultiSelect = node.MultiSelect
	}
	l.UpdateItems(items)
	return l
}

// IndexOf returns the index for a given item identifier.
func (l *Level) IndexOf(id string) int {
	for i, item := range l.Items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// Current returns the item under the cursor.
func (l *Level) Current() (menu.Item, bool) {
	if l.Cursor < 0 || l.Cursor >= len(l.Items) {
		return menu.Item{}, false
	}
	return l.Items[l.Cursor], true
}

// UpdateItems refreshes the level items while preserving the cursor item
// and selections where possible.
func (l *Level) UpdateItems(items []menu.Item) {
	var currentID string
	if item, ok := l.Current(); ok {
		currentID = item.ID
	}
	l.Full = CloneItems(items)
	l.dropUnknownMarks()
	l.applyFilter()
	if idx := l.IndexOf(currentID); idx >= 0 {
		l.Cursor = idx
	}
	if l.ViewportOffset > len(l.Items)-1 || l.ViewportOffset < 0 {
		l.ViewportOffset = 0
	}
}

// SetFilter updates the filter query and cursor position. The list cursor
// jumps to the best match while filtering and returns to where it was once
// the filter is cleared.
func (l *Level) SetFilter(query string, cursor int) {
	trimmed := strings.TrimSpace(query)
	prevTrimmed := strings.TrimSpace(l.Filter.Value)
	l.Filter.Set(query, cursor)
	if trimmed != "" && prevTrimmed == "" {
		l.LastCursor = l.Cursor
	}
	l.applyFilter()
	switch {
	case trimmed != "":
		if idx := BestMatchIndex(l.Items, trimmed); idx >= 0 {
			l.Cursor = idx
		}
	case prevTrimmed != "":
		if l.LastCursor >= 0 && l.LastCursor < len(l.Items) {
			l.Cursor = l.LastCursor
		}
		l.LastCursor = -1
	}
}

// EditFilter applies a prompt edit and refilters when it changed the text.
func (l *Level) EditFilter(edit func(*Prompt) bool) bool {
	p := l.Filter
	if !edit(&p) {
		return false
	}
	if p.Value == l.Filter.Value {
		l.Filter.Cursor = p.Cursor
		return true
	}
	l.SetFilter(p.Value, p.Cursor)
	return true
}

func (l *Level) applyFilter() {
	l.Items = FilterItems(l.Full, l.Filter.Value)
	if len(l.Items) == 0 {
		l.Cursor = 0
		l.ViewportOffset = 0
		return
	}
	if l.Cursor < 0 {
		l.Cursor = 0
	}
	if l.Cursor >= len(l.Items) {
		l.Cursor = len(l.Items) - 1
	}
}
